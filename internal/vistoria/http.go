package vistoria

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vistoriapro/api/internal/apperror"
	"github.com/vistoriapro/api/internal/report"
	"github.com/vistoriapro/api/internal/storage"
	"github.com/vistoriapro/api/internal/validation"
)

const maxFotoBytes = 10 << 20

// Handler expõe as rotas de vistoria, incluindo edições rápidas, upload de
// fotos e exportação de relatórios.
type Handler struct {
	repo     *Repository
	uploader storage.Uploader
}

func NewHandler(repo *Repository, uploader storage.Uploader) *Handler {
	return &Handler{repo: repo, uploader: uploader}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/vistorias", func(r chi.Router) {
		r.Get("/", h.handleList)
		r.Post("/", h.handleCreate)
		r.Get("/relatorio.pdf", h.handleRelatorioPDF)
		r.Get("/relatorio.xlsx", h.handleRelatorioXLSX)
		r.Put("/{id}", h.handleUpdate)
		r.Patch("/{id}/situacao", h.handleSituacao)
		r.Patch("/{id}/pagamento", h.handlePagamento)
		r.Delete("/{id}", h.handleDelete)
		r.Post("/{id}/fotos", h.handleUploadFoto)
	})
}

// Filtro reproduz os filtros da listagem: situação, pagamento, placa e
// intervalo de datas de criação.
type Filtro struct {
	Situacao  string
	Pagamento string
	Placa     string
	Inicio    *time.Time
	Fim       *time.Time
}

func filtroFromQuery(r *http.Request) (Filtro, error) {
	q := r.URL.Query()
	f := Filtro{
		Situacao:  strings.ToUpper(strings.TrimSpace(q.Get("situacao"))),
		Pagamento: strings.ToUpper(strings.TrimSpace(q.Get("pagamento"))),
		Placa:     semSeparador(strings.ToUpper(strings.TrimSpace(q.Get("placa")))),
	}

	if v := q.Get("inicio"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return Filtro{}, fmt.Errorf("data inicial inválida")
		}
		f.Inicio = &t
	}
	if v := q.Get("fim"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			return Filtro{}, fmt.Errorf("data final inválida")
		}
		// inclui o dia final inteiro
		t = t.Add(24*time.Hour - time.Nanosecond)
		f.Fim = &t
	}

	return f, nil
}

// semSeparador compara placas ignorando o traço: "ABC1234" encontra
// "ABC-1234" e vice-versa.
func semSeparador(placa string) string {
	return strings.ReplaceAll(placa, "-", "")
}

// Aplica devolve as vistorias que atendem a todos os critérios, preservando
// a ordem de entrada.
func (f Filtro) Aplica(vs []Vistoria) []Vistoria {
	out := make([]Vistoria, 0, len(vs))
	for _, v := range vs {
		if f.Situacao != "" && v.Situacao != f.Situacao {
			continue
		}
		if f.Pagamento != "" && v.Pagamento != f.Pagamento {
			continue
		}
		if f.Placa != "" && !strings.Contains(semSeparador(v.Placa), f.Placa) {
			continue
		}
		if f.Inicio != nil && v.CreatedAt.Before(*f.Inicio) {
			continue
		}
		if f.Fim != nil && v.CreatedAt.After(*f.Fim) {
			continue
		}
		out = append(out, v)
	}
	return out
}

func (h *Handler) listFiltered(r *http.Request) ([]Vistoria, error) {
	filtro, err := filtroFromQuery(r)
	if err != nil {
		return nil, apperror.Classification{Code: apperror.CodeDadosInvalidos, Message: err.Error(), Status: http.StatusBadRequest}
	}

	vs, err := h.repo.ListAll(r.Context())
	if err != nil {
		return nil, err
	}
	return filtro.Aplica(vs), nil
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	vs, err := h.listFiltered(r)
	if err != nil {
		writeClassified(w, err)
		return
	}
	writeJSON(w, http.StatusOK, vs)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDACAO", "payload inválido", nil)
		return
	}

	if errs := validarVistoria(in); len(errs) > 0 {
		writeError(w, http.StatusUnprocessableEntity, "VALIDACAO", "dados inválidos", errs)
		return
	}

	v, err := h.repo.Create(r.Context(), in)
	if err != nil {
		writeClassified(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, v)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDACAO", "id inválido", nil)
		return
	}

	var in UpdateInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDACAO", "payload inválido", nil)
		return
	}

	if errs := validarUpdate(in); len(errs) > 0 {
		writeError(w, http.StatusUnprocessableEntity, "VALIDACAO", "dados inválidos", errs)
		return
	}

	v, err := h.repo.Update(r.Context(), id, in)
	if err != nil {
		writeClassified(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) handleSituacao(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDACAO", "id inválido", nil)
		return
	}

	var payload struct {
		Situacao string `json:"situacao"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDACAO", "payload inválido", nil)
		return
	}

	v, err := h.repo.UpdateSituacao(r.Context(), id, payload.Situacao)
	if err != nil {
		writeClassified(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) handlePagamento(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDACAO", "id inválido", nil)
		return
	}

	var payload struct {
		Pagamento string `json:"pagamento"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDACAO", "payload inválido", nil)
		return
	}

	v, err := h.repo.UpdatePagamento(r.Context(), id, payload.Pagamento)
	if err != nil {
		writeClassified(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDACAO", "id inválido", nil)
		return
	}

	if err := h.repo.Delete(r.Context(), id); err != nil {
		writeClassified(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleUploadFoto(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDACAO", "id inválido", nil)
		return
	}

	if err := r.ParseMultipartForm(maxFotoBytes); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDACAO", "arquivo inválido", nil)
		return
	}

	file, header, err := r.FormFile("foto")
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDACAO", "campo foto obrigatório", nil)
		return
	}
	defer file.Close()

	body, err := io.ReadAll(io.LimitReader(file, maxFotoBytes))
	if err != nil {
		writeClassified(w, err)
		return
	}

	key := fmt.Sprintf("%s/%s%s", id, uuid.NewString(), filepath.Ext(header.Filename))
	result, err := h.uploader.Upload(r.Context(), storage.UploadInput{
		Bucket:      storage.BucketVistoriaFotos,
		Key:         key,
		Body:        body,
		ContentType: header.Header.Get("Content-Type"),
	})
	if err != nil {
		writeClassified(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"url": result.URL})
}

func (h *Handler) handleRelatorioPDF(w http.ResponseWriter, r *http.Request) {
	vs, err := h.listFiltered(r)
	if err != nil {
		writeClassified(w, err)
		return
	}

	out, err := report.PDF(linhasRelatorio(vs))
	if err != nil {
		writeClassified(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename("pdf")))
	_, _ = w.Write(out)
}

func (h *Handler) handleRelatorioXLSX(w http.ResponseWriter, r *http.Request) {
	vs, err := h.listFiltered(r)
	if err != nil {
		writeClassified(w, err)
		return
	}

	out, err := report.XLSX(linhasRelatorio(vs))
	if err != nil {
		writeClassified(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.Filename("xlsx")))
	_, _ = w.Write(out)
}

// linhasRelatorio projeta as vistorias nas sete colunas de exibição,
// preservando a ordem.
func linhasRelatorio(vs []Vistoria) []report.Linha {
	linhas := make([]report.Linha, len(vs))
	for i, v := range vs {
		linhas[i] = report.Linha{
			Data:      v.CriadoEm,
			Placa:     v.Placa,
			Modelo:    v.Modelo,
			Cliente:   v.ClienteNome,
			Valor:     v.ValorExibicao,
			Pagamento: v.Pagamento,
			Situacao:  v.Situacao,
		}
	}
	return linhas
}

func validarVistoria(in Input) []validation.FieldError {
	errs := validation.ValidateVistoria(validation.VistoriaInput{
		Placa:       in.Placa,
		Modelo:      in.Modelo,
		Tipo:        in.Tipo,
		Valor:       float64(in.Valor),
		Pagamento:   in.Pagamento,
		ClienteNome: in.ClienteNome,
		ClienteCPF:  in.ClienteCPF,
		Digitador:   in.Digitador,
		Liberador:   in.Liberador,
	})

	// Regra do cliente avulso: sem cadastro vinculado, nome e CPF capturados
	// na hora são obrigatórios.
	if in.ClienteID == nil && strings.TrimSpace(in.ClienteCPF) == "" {
		errs = append(errs, validation.FieldError{Field: "cliente_cpf", Message: validation.MsgObrigatorio})
	}

	if in.Situacao != "" && !IsValidSituacao(in.Situacao) {
		errs = append(errs, validation.FieldError{Field: "situacao", Message: "Situação inválida"})
	}
	if in.Pagamento != "" && !IsValidPagamento(in.Pagamento) {
		errs = append(errs, validation.FieldError{Field: "pagamento", Message: "Forma de pagamento inválida"})
	}
	if in.Modalidade != "" && !IsValidModalidade(in.Modalidade) {
		errs = append(errs, validation.FieldError{Field: "modalidade", Message: "Modalidade inválida"})
	}

	return errs
}

func validarUpdate(in UpdateInput) []validation.FieldError {
	var errs []validation.FieldError

	if in.Placa != nil && !validation.ValidPlaca(*in.Placa) {
		errs = append(errs, validation.FieldError{Field: "placa", Message: validation.MsgPlacaInvalida})
	}
	if in.Modelo != nil {
		m := strings.TrimSpace(*in.Modelo)
		if len([]rune(m)) < validation.ModeloMin {
			errs = append(errs, validation.FieldError{Field: "modelo", Message: validation.MsgModeloMin})
		} else if len([]rune(m)) > validation.ModeloMax {
			errs = append(errs, validation.FieldError{Field: "modelo", Message: validation.MsgModeloMax})
		}
	}
	if in.Tipo != nil && strings.TrimSpace(*in.Tipo) == "" {
		errs = append(errs, validation.FieldError{Field: "tipo", Message: validation.MsgObrigatorio})
	}
	if in.Modalidade != nil && !IsValidModalidade(*in.Modalidade) {
		errs = append(errs, validation.FieldError{Field: "modalidade", Message: "Modalidade inválida"})
	}
	if in.ClienteNome != nil {
		n := strings.TrimSpace(*in.ClienteNome)
		if len([]rune(n)) < validation.NomeMin {
			errs = append(errs, validation.FieldError{Field: "cliente_nome", Message: validation.MsgNomeMin})
		} else if len([]rune(n)) > validation.NomeMax {
			errs = append(errs, validation.FieldError{Field: "cliente_nome", Message: validation.MsgNomeMax})
		}
	}
	if in.Valor != nil {
		if *in.Valor <= 0 {
			errs = append(errs, validation.FieldError{Field: "valor", Message: validation.MsgValorPositivo})
		} else if float64(*in.Valor) > validation.ValorMax {
			errs = append(errs, validation.FieldError{Field: "valor", Message: validation.MsgValorAlto})
		}
	}
	if in.Situacao != nil && !IsValidSituacao(*in.Situacao) {
		errs = append(errs, validation.FieldError{Field: "situacao", Message: "Situação inválida"})
	}
	if in.Pagamento != nil && !IsValidPagamento(*in.Pagamento) {
		errs = append(errs, validation.FieldError{Field: "pagamento", Message: "Forma de pagamento inválida"})
	}
	if in.ClienteCPF != nil && *in.ClienteCPF != "" && !validation.ValidCPF(*in.ClienteCPF) {
		errs = append(errs, validation.FieldError{Field: "cliente_cpf", Message: "CPF do cliente inválido"})
	}

	return errs
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
	c := apperror.Classify(err, "vistoria")
	writeError(w, c.Status, c.Code, c.Message, nil)
}
