package apperror

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vistoriapro/api/internal/principal"
)

func TestClassifyNil(t *testing.T) {
	c := Classify(nil, "teste")
	if c.Code != CodeDesconhecido || c.Message == "" {
		t.Fatalf("classificação de nil: %+v", c)
	}
}

func TestClassifyUniqueViolation(t *testing.T) {
	raw := &pgconn.PgError{
		Code:           "23505",
		Message:        `duplicate key value violates unique constraint "clientes_cpf_key"`,
		ConstraintName: "clientes_cpf_key",
	}

	c := Classify(raw, "salvar cliente")
	if c.Code != CodeDuplicado {
		t.Errorf("código = %q, esperava %q", c.Code, CodeDuplicado)
	}
	if c.Message != "CPF já cadastrado" {
		t.Errorf("mensagem = %q", c.Message)
	}
	if strings.Contains(c.Message, "duplicate key") {
		t.Error("mensagem crua do backend vazou para o usuário")
	}
	if c.Status != http.StatusConflict {
		t.Errorf("status = %d", c.Status)
	}
}

func TestClassifyUniqueViolationGenerica(t *testing.T) {
	raw := &pgconn.PgError{Code: "23505", Message: "duplicate key value", ConstraintName: "vistorias_placa_key"}
	if c := Classify(raw, ""); c.Message != "Registro duplicado" {
		t.Errorf("mensagem = %q", c.Message)
	}
}

func TestClassifyForeignKey(t *testing.T) {
	raw := &pgconn.PgError{Code: "23503", Message: "violates foreign key constraint"}
	if c := Classify(raw, ""); c.Code != CodeReferencia {
		t.Errorf("código = %q", c.Code)
	}
}

func TestClassifyCheckViolationPorCampo(t *testing.T) {
	tests := []struct {
		constraint string
		want       string
	}{
		{"clientes_cpf_check", "CPF inválido"},
		{"vistorias_placa_check", "Formato de placa inválido"},
		{"vistorias_valor_check", "Valor inválido"},
		{"outra_check", "Dados inválidos"},
	}

	for _, tc := range tests {
		raw := &pgconn.PgError{Code: "23514", ConstraintName: tc.constraint}
		if c := Classify(raw, ""); c.Message != tc.want {
			t.Errorf("constraint %q: mensagem %q, esperava %q", tc.constraint, c.Message, tc.want)
		}
	}
}

func TestClassifyNotNull(t *testing.T) {
	raw := &pgconn.PgError{Code: "23502", ColumnName: "nome"}
	if c := Classify(raw, ""); c.Code != CodeCamposObrigatorios {
		t.Errorf("código = %q", c.Code)
	}
}

func TestClassifyAuth(t *testing.T) {
	if c := Classify(errors.New("Invalid login credentials"), ""); c.Code != CodeAuthCredenciais {
		t.Errorf("credenciais: %q", c.Code)
	}
	if c := Classify(principal.ErrNaoAutenticado, ""); c.Code != CodeAuthObrigatorio {
		t.Errorf("não autenticado: %q", c.Code)
	}
	if c := Classify(&StatusError{Status: http.StatusUnauthorized}, ""); c.Code != CodeAuthExpirado {
		t.Errorf("401: %q", c.Code)
	}
	if c := Classify(&StatusError{Status: http.StatusForbidden}, ""); c.Code != CodeAuthProibido {
		t.Errorf("403: %q", c.Code)
	}
}

func TestClassifyRede(t *testing.T) {
	if c := Classify(errors.New("Failed to fetch"), ""); c.Code != CodeTransiente {
		t.Errorf("fetch: %q", c.Code)
	}
	if c := Classify(errors.New("dial tcp: connection refused"), ""); c.Code != CodeTransiente {
		t.Errorf("refused: %q", c.Code)
	}
}

func TestClassifyStatusHTTP(t *testing.T) {
	tests := []struct {
		status int
		want   string
	}{
		{404, CodeNaoEncontrado},
		{409, CodeConflito},
		{422, CodeDadosInvalidos},
		{500, CodeTransiente},
		{503, CodeTransiente},
	}

	for _, tc := range tests {
		if c := Classify(&StatusError{Status: tc.status}, ""); c.Code != tc.want {
			t.Errorf("status %d: código %q, esperava %q", tc.status, c.Code, tc.want)
		}
	}
}

func TestClassifyNoRows(t *testing.T) {
	if c := Classify(pgx.ErrNoRows, "excluir vistoria"); c.Code != CodeNaoEncontrado {
		t.Errorf("código = %q", c.Code)
	}
}

func TestClassifyNuncaVazaMensagemCrua(t *testing.T) {
	inputs := []error{
		nil,
		&pgconn.PgError{Code: "23505", Message: `duplicate key value violates unique constraint "clientes_cpf_key"`},
		&StatusError{Status: 401},
		errors.New("Failed to fetch"),
		errors.New("segredo interno: senha=abc"),
	}

	for _, in := range inputs {
		c := Classify(in, "op")
		if c.Message == "" {
			t.Errorf("mensagem vazia para %v", in)
		}
		if in != nil && c.Message == in.Error() {
			t.Errorf("mensagem crua devolvida verbatim: %q", c.Message)
		}
	}
}

func TestClassificationComoErro(t *testing.T) {
	var err error = Classification{Code: CodeDuplicado, Message: "Registro duplicado"}
	if err.Error() != "Registro duplicado" {
		t.Errorf("Error() = %q", err.Error())
	}
}
