package vistoria

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/vistoriapro/api/internal/storage"
	"github.com/vistoriapro/api/internal/validation"
)

func vistoriasExemplo() []Vistoria {
	base := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	return []Vistoria{
		{Placa: "ABC-1234", Situacao: "APROVADO", Pagamento: "PIX", CreatedAt: base.AddDate(0, 0, 2)},
		{Placa: "DEF-5678", Situacao: "PENDENTE", Pagamento: "DINHEIRO", CreatedAt: base.AddDate(0, 0, 1)},
		{Placa: "ABC-9B01", Situacao: "APROVADO", Pagamento: "DINHEIRO", CreatedAt: base},
	}
}

func TestFiltroAplica(t *testing.T) {
	vs := vistoriasExemplo()

	t.Run("sem filtros devolve tudo", func(t *testing.T) {
		if got := (Filtro{}).Aplica(vs); len(got) != 3 {
			t.Fatalf("esperava 3, obteve %d", len(got))
		}
	})

	t.Run("por situação", func(t *testing.T) {
		got := Filtro{Situacao: "APROVADO"}.Aplica(vs)
		if len(got) != 2 {
			t.Fatalf("esperava 2, obteve %d", len(got))
		}
	})

	t.Run("combinação de critérios", func(t *testing.T) {
		got := Filtro{Situacao: "APROVADO", Pagamento: "DINHEIRO"}.Aplica(vs)
		if len(got) != 1 || got[0].Placa != "ABC-9B01" {
			t.Fatalf("resultado inesperado: %+v", got)
		}
	})

	t.Run("placa por substring", func(t *testing.T) {
		got := Filtro{Placa: "ABC"}.Aplica(vs)
		if len(got) != 2 {
			t.Fatalf("esperava 2, obteve %d", len(got))
		}
	})

	t.Run("placa sem separador encontra placa armazenada com traço", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/vistorias?placa=ABC1234", nil)
		f, err := filtroFromQuery(r)
		if err != nil {
			t.Fatalf("erro inesperado: %v", err)
		}
		got := f.Aplica(vs)
		if len(got) != 1 || got[0].Placa != "ABC-1234" {
			t.Fatalf("resultado inesperado: %+v", got)
		}
	})

	t.Run("intervalo de datas", func(t *testing.T) {
		inicio := time.Date(2026, 3, 6, 0, 0, 0, 0, time.UTC)
		got := Filtro{Inicio: &inicio}.Aplica(vs)
		if len(got) != 2 {
			t.Fatalf("esperava 2, obteve %d", len(got))
		}
	})

	t.Run("preserva ordem de entrada", func(t *testing.T) {
		got := Filtro{Pagamento: "DINHEIRO"}.Aplica(vs)
		if got[0].Placa != "DEF-5678" || got[1].Placa != "ABC-9B01" {
			t.Fatalf("ordem alterada: %+v", got)
		}
	})
}

func TestFiltroFromQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/vistorias?situacao=aprovado&placa=abc&inicio=2026-03-01&fim=2026-03-07", nil)
	f, err := filtroFromQuery(r)
	if err != nil {
		t.Fatalf("erro inesperado: %v", err)
	}
	if f.Situacao != "APROVADO" || f.Placa != "ABC" {
		t.Fatalf("normalização incorreta: %+v", f)
	}
	if f.Inicio == nil || f.Fim == nil {
		t.Fatal("datas não interpretadas")
	}
	// fim inclui o dia inteiro
	if f.Fim.Day() != 7 || f.Fim.Hour() != 23 {
		t.Fatalf("data final deveria cobrir o dia inteiro: %v", f.Fim)
	}

	r = httptest.NewRequest(http.MethodGet, "/vistorias?inicio=07/03/2026", nil)
	if _, err := filtroFromQuery(r); err == nil {
		t.Fatal("data fora do formato ISO deveria falhar")
	}
}

func TestValidarVistoriaClienteAvulso(t *testing.T) {
	in := Input{
		Placa:       "ABC-1D23",
		Modelo:      "Onix",
		Valor:       150,
		ClienteNome: "Alice Silva",
	}

	errs := validarVistoria(in)
	found := false
	for _, e := range errs {
		if e.Field == "cliente_cpf" {
			found = true
		}
	}
	if !found {
		t.Fatal("cliente sem cadastro e sem CPF deveria ser rejeitado")
	}

	// Com cadastro vinculado o CPF avulso deixa de ser obrigatório.
	id := uuid.New()
	in.ClienteID = &id
	for _, e := range validarVistoria(in) {
		if e.Field == "cliente_cpf" {
			t.Fatal("cliente cadastrado não exige CPF avulso")
		}
	}
}

func TestValidarVistoriaConjuntosFechados(t *testing.T) {
	id := uuid.New()
	in := Input{
		Placa:       "ABC-1D23",
		Modelo:      "Onix",
		Valor:       150,
		ClienteNome: "Alice Silva",
		ClienteID:   &id,
		Situacao:    "EM_ANALISE",
		Pagamento:   "CHEQUE",
		Modalidade:  "HIBRIDO",
	}

	errs := validarVistoria(in)
	campos := map[string]bool{}
	for _, e := range errs {
		campos[e.Field] = true
	}
	for _, campo := range []string{"situacao", "modalidade"} {
		if !campos[campo] {
			t.Errorf("esperava violação em %s: %+v", campo, errs)
		}
	}
}

func TestValidarUpdateParcial(t *testing.T) {
	if errs := validarUpdate(UpdateInput{}); len(errs) != 0 {
		t.Fatalf("payload vazio não tem o que validar: %+v", errs)
	}

	placa := "XY"
	valor := Valor(-10)
	situacao := "INVALIDA"
	errs := validarUpdate(UpdateInput{Placa: &placa, Valor: &valor, Situacao: &situacao})
	if len(errs) != 3 {
		t.Fatalf("esperava 3 violações, obteve %d: %+v", len(errs), errs)
	}
}

func TestValidarUpdateMesmasRegrasDaCriacao(t *testing.T) {
	// Os campos opcionais da edição parcial obedecem às mesmas regras da
	// criação quando presentes: nada passa direto para o banco.
	tipo := ""
	modalidade := "HIBRIDO"
	clienteNome := "Al"
	errs := validarUpdate(UpdateInput{Tipo: &tipo, Modalidade: &modalidade, ClienteNome: &clienteNome})

	campos := map[string]string{}
	for _, e := range errs {
		campos[e.Field] = e.Message
	}
	if len(errs) != 3 {
		t.Fatalf("esperava 3 violações, obteve %d: %+v", len(errs), errs)
	}
	if campos["tipo"] != validation.MsgObrigatorio {
		t.Errorf("tipo vazio deveria ser obrigatório: %+v", errs)
	}
	if campos["modalidade"] != "Modalidade inválida" {
		t.Errorf("modalidade fora do conjunto deveria ser rejeitada: %+v", errs)
	}
	if campos["cliente_nome"] != validation.MsgNomeMin {
		t.Errorf("cliente_nome curto deveria ser rejeitado: %+v", errs)
	}
}

func TestValidarUpdateModeloLongo(t *testing.T) {
	modelo := strings.Repeat("x", validation.ModeloMax+1)
	errs := validarUpdate(UpdateInput{Modelo: &modelo})
	if len(errs) != 1 || errs[0].Message != validation.MsgModeloMax {
		t.Fatalf("modelo longo deveria apontar o limite máximo: %+v", errs)
	}
}

func newTestRouter() http.Handler {
	h := NewHandler(NewRepository(nil), storage.NoopUploader{})
	r := chi.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) (string, string) {
	t.Helper()
	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("resposta não é envelope JSON: %v", err)
	}
	return envelope.Error.Code, envelope.Error.Message
}

func TestHandleSituacaoInvalida(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPatch, "/vistorias/"+uuid.NewString()+"/situacao",
		strings.NewReader(`{"situacao":"EM_ANALISE"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("esperava 422, obteve %d", rec.Code)
	}
	if code, _ := decodeError(t, rec); code != "DADOS_INVALIDOS" {
		t.Fatalf("código inesperado: %s", code)
	}
}

func TestHandleSituacaoSemSessao(t *testing.T) {
	router := newTestRouter()

	// Situação válida, mas sem usuário no contexto: falha fechada antes de
	// qualquer acesso ao banco (repositório criado sem conexão alguma).
	req := httptest.NewRequest(http.MethodPatch, "/vistorias/"+uuid.NewString()+"/situacao",
		strings.NewReader(`{"situacao":"APROVADO"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("esperava 401, obteve %d", rec.Code)
	}
	if code, _ := decodeError(t, rec); code != "AUTH_OBRIGATORIO" {
		t.Fatalf("código inesperado: %s", code)
	}
}

func TestHandleCreatePayloadInvalido(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/vistorias/", strings.NewReader(`{"valor":"abc"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("valor não interpretável deveria dar 400, obteve %d", rec.Code)
	}
}

func TestHandleUploadFotoSemCampo(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/vistorias/"+uuid.NewString()+"/fotos", strings.NewReader(""))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xxx")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("esperava 400, obteve %d", rec.Code)
	}
}
