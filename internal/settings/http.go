package settings

import (
	"encoding/json"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vistoriapro/api/internal/apperror"
	"github.com/vistoriapro/api/internal/principal"
	"github.com/vistoriapro/api/internal/storage"
)

const maxLogoBytes = 5 << 20 // 5 MB

// Handler expõe as rotas de configurações do sistema.
type Handler struct {
	repo     *Repository
	uploader storage.Uploader
}

func NewHandler(repo *Repository, uploader storage.Uploader) *Handler {
	return &Handler{repo: repo, uploader: uploader}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/configuracoes", func(r chi.Router) {
		r.Get("/", h.handleGet)
		r.Put("/", h.handlePut)
		r.Post("/logo", h.handleUploadLogo)
	})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	s, err := h.repo.Get(r.Context())
	if err != nil {
		writeClassified(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *Handler) handlePut(w http.ResponseWriter, r *http.Request) {
	var in struct {
		LogoURL *string `json:"logo_url"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDACAO", "payload inválido", nil)
		return
	}

	s, err := h.repo.SetLogoURL(r.Context(), in.LogoURL)
	if err != nil {
		writeClassified(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (h *Handler) handleUploadLogo(w http.ResponseWriter, r *http.Request) {
	user, err := principal.FromContext(r.Context())
	if err != nil {
		writeClassified(w, err)
		return
	}

	if err := r.ParseMultipartForm(maxLogoBytes); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDACAO", "arquivo inválido ou grande demais", nil)
		return
	}

	file, header, err := r.FormFile("logo")
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDACAO", "campo logo ausente", nil)
		return
	}
	defer file.Close()

	body, err := io.ReadAll(io.LimitReader(file, maxLogoBytes+1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDACAO", "falha ao ler arquivo", nil)
		return
	}
	if len(body) > maxLogoBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "VALIDACAO", "logo deve ter no máximo 5 MB", nil)
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	key := user.String() + "/" + uuid.NewString() + ext

	result, err := h.uploader.Upload(r.Context(), storage.UploadInput{
		Bucket:      storage.BucketLogos,
		Key:         key,
		Body:        body,
		ContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		writeClassified(w, err)
		return
	}

	s, err := h.repo.SetLogoURL(r.Context(), &result.URL)
	if err != nil {
		writeClassified(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s)
}

// Helpers de resposta JSON compatíveis com o resto do projeto.
type successEnvelope struct {
	Data  any `json:"data"`
	Error any `json:"error"`
}

type errorEnvelope struct {
	Data  any            `json:"data"`
	Error *errorResponse `json:"error"`
}

type errorResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(successEnvelope{Data: payload, Error: nil})
}

func writeError(w http.ResponseWriter, status int, code, message string, details interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Data: nil, Error: &errorResponse{Code: code, Message: message, Details: details}})
}

func writeClassified(w http.ResponseWriter, err error) {
	if c, ok := err.(apperror.Classification); ok {
		writeError(w, c.Status, c.Code, c.Message, nil)
		return
	}
	c := apperror.Classify(err, "configuracoes")
	writeError(w, c.Status, c.Code, c.Message, nil)
}
