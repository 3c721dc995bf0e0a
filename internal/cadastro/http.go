package cadastro

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vistoriapro/api/internal/apperror"
	"github.com/vistoriapro/api/internal/crud"
	"github.com/vistoriapro/api/internal/validation"
)

// Handler expõe as rotas CRUD das três coleções de pessoa.
type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	registerPessoaRoutes(r, "/clientes", h.repo.Clientes)
	registerPessoaRoutes(r, "/vistoriadores", h.repo.Vistoriadores)
	registerPessoaRoutes(r, "/digitadores", h.repo.Digitadores)
}

func registerPessoaRoutes(r chi.Router, path string, store *crud.Store[Pessoa]) {
	r.Route(path, func(r chi.Router) {
		r.Get("/", handleList(store))
		r.Post("/", handleCreate(store))
		r.Put("/{id}", handleUpdate(store))
		r.Delete("/{id}", handleDelete(store))
	})
}

func handleList(store *crud.Store[Pessoa]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pessoas, err := store.ListAll(r.Context())
		if err != nil {
			writeClassified(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pessoas)
	}
}

func handleCreate(store *crud.Store[Pessoa]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in PessoaInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "VALIDACAO", "payload inválido", nil)
			return
		}

		if errs := validar(in); len(errs) > 0 {
			writeError(w, http.StatusUnprocessableEntity, "VALIDACAO", "dados inválidos", errs)
			return
		}

		pessoa, err := store.Create(r.Context(), in.Fields())
		if err != nil {
			writeClassified(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, pessoa)
	}
}

func handleUpdate(store *crud.Store[Pessoa]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "VALIDACAO", "id inválido", nil)
			return
		}

		var in PessoaInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "VALIDACAO", "payload inválido", nil)
			return
		}

		if errs := validar(in); len(errs) > 0 {
			writeError(w, http.StatusUnprocessableEntity, "VALIDACAO", "dados inválidos", errs)
			return
		}

		pessoa, err := store.Update(r.Context(), id, in.Fields())
		if err != nil {
			writeClassified(w, err)
			return
		}
		writeJSON(w, http.StatusOK, pessoa)
	}
}

func handleDelete(store *crud.Store[Pessoa]) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "VALIDACAO", "id inválido", nil)
			return
		}

		if err := store.Delete(r.Context(), id); err != nil {
			writeClassified(w, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

func validar(in PessoaInput) []validation.FieldError {
	return validation.ValidateCliente(validation.ClienteInput{
		Nome:        in.Nome,
		CPF:         in.CPF,
		Observacoes: in.Observacoes,
		FotoURL:     in.FotoURL,
	})
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
	c := apperror.Classify(err, "cadastro")
	writeError(w, c.Status, c.Code, c.Message, nil)
}
