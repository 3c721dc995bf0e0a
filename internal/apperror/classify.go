// Package apperror normaliza qualquer falha vinda do banco, da autenticação
// ou do transporte em um conjunto fechado de mensagens seguras para exibir
// ao usuário. O erro original completo nunca chega à resposta: ele é emitido
// apenas no canal de diagnóstico (zerolog em nível Debug, silencioso em
// produção).
package apperror

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"

	"github.com/vistoriapro/api/internal/principal"
)

// Códigos do conjunto fechado de classificação.
const (
	CodeDuplicado          = "DUPLICADO"
	CodeReferencia         = "REFERENCIA"
	CodeDadosInvalidos     = "DADOS_INVALIDOS"
	CodeCamposObrigatorios = "CAMPOS_OBRIGATORIOS"
	CodeAuthCredenciais    = "AUTH_CREDENCIAIS"
	CodeAuthObrigatorio    = "AUTH_OBRIGATORIO"
	CodeAuthProibido       = "AUTH_PROIBIDO"
	CodeAuthExpirado       = "AUTH_EXPIRADO"
	CodeNaoEncontrado      = "NAO_ENCONTRADO"
	CodeConflito           = "CONFLITO"
	CodeTransiente         = "TRANSIENTE"
	CodeDesconhecido       = "DESCONHECIDO"
)

// Classification carrega o código fechado, a mensagem exibível e o status
// HTTP correspondente.
type Classification struct {
	Code    string
	Message string
	Status  int
}

// Error permite usar a classificação como erro nas camadas superiores.
func (c Classification) Error() string { return c.Message }

const msgGenerica = "Erro ao processar. Tente novamente."

// Códigos de violação do Postgres inspecionados na classificação.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgNotNullViolation    = "23502"
	pgCheckViolation      = "23514"
)

// Classify converte um erro de formato desconhecido em uma classificação do
// conjunto fechado. Nunca entra em pânico e nunca devolve a mensagem crua do
// backend. O rótulo de contexto aparece apenas no canal de diagnóstico.
func Classify(err error, contexto string) Classification {
	debugLog(err, contexto)

	if err == nil {
		return Classification{Code: CodeDesconhecido, Message: msgGenerica, Status: http.StatusInternalServerError}
	}

	// Sentinelas internas primeiro: são as formas mais precisas.
	if errors.Is(err, principal.ErrNaoAutenticado) {
		return Classification{Code: CodeAuthObrigatorio, Message: "Você precisa estar logado", Status: http.StatusUnauthorized}
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return Classification{Code: CodeNaoEncontrado, Message: "Registro não encontrado", Status: http.StatusNotFound}
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return classifyPg(pgErr)
	}

	msg := strings.ToLower(err.Error())

	switch {
	case strings.Contains(msg, "invalid login") || strings.Contains(msg, "invalid credentials") ||
		strings.Contains(msg, "incorrect") || strings.Contains(msg, "credenciais"):
		return Classification{Code: CodeAuthCredenciais, Message: "E-mail ou senha incorretos", Status: http.StatusUnauthorized}
	case strings.Contains(msg, "not authenticated") || strings.Contains(msg, "não autenticado") ||
		strings.Contains(msg, "jwt expired") || strings.Contains(msg, "token is expired"):
		return Classification{Code: CodeAuthObrigatorio, Message: "Você precisa estar logado", Status: http.StatusUnauthorized}
	case strings.Contains(msg, "failed to fetch") || strings.Contains(msg, "network") ||
		strings.Contains(msg, "connection refused") || strings.Contains(msg, "timeout") || isNetError(err):
		return Classification{Code: CodeTransiente, Message: "Erro de conexão. Verifique sua internet e tente novamente", Status: http.StatusServiceUnavailable}
	}

	var httpErr *StatusError
	if errors.As(err, &httpErr) {
		return classifyStatus(httpErr.Status)
	}

	return Classification{Code: CodeDesconhecido, Message: msgGenerica, Status: http.StatusInternalServerError}
}

// StatusError embrulha uma falha HTTP de um colaborador externo (storage,
// provedores) preservando o status para classificação.
type StatusError struct {
	Status int
	Err    error
}

func (e *StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Status)
}

func (e *StatusError) Unwrap() error { return e.Err }

func classifyPg(pgErr *pgconn.PgError) Classification {
	msg := strings.ToLower(pgErr.Message + " " + pgErr.ConstraintName)

	switch pgErr.Code {
	case pgUniqueViolation:
		if strings.Contains(msg, "cpf") {
			return Classification{Code: CodeDuplicado, Message: "CPF já cadastrado", Status: http.StatusConflict}
		}
		return Classification{Code: CodeDuplicado, Message: "Registro duplicado", Status: http.StatusConflict}
	case pgForeignKeyViolation:
		return Classification{Code: CodeReferencia, Message: "Operação não permitida: registro relacionado não existe", Status: http.StatusConflict}
	case pgCheckViolation:
		switch {
		case strings.Contains(msg, "cpf"):
			return Classification{Code: CodeDadosInvalidos, Message: "CPF inválido", Status: http.StatusUnprocessableEntity}
		case strings.Contains(msg, "placa"):
			return Classification{Code: CodeDadosInvalidos, Message: "Formato de placa inválido", Status: http.StatusUnprocessableEntity}
		case strings.Contains(msg, "nome"):
			return Classification{Code: CodeDadosInvalidos, Message: "Nome inválido", Status: http.StatusUnprocessableEntity}
		case strings.Contains(msg, "valor"):
			return Classification{Code: CodeDadosInvalidos, Message: "Valor inválido", Status: http.StatusUnprocessableEntity}
		default:
			return Classification{Code: CodeDadosInvalidos, Message: "Dados inválidos", Status: http.StatusUnprocessableEntity}
		}
	case pgNotNullViolation:
		return Classification{Code: CodeCamposObrigatorios, Message: "Campos obrigatórios faltando", Status: http.StatusUnprocessableEntity}
	}

	return Classification{Code: CodeDesconhecido, Message: msgGenerica, Status: http.StatusInternalServerError}
}

func classifyStatus(status int) Classification {
	switch {
	case status == http.StatusUnauthorized:
		return Classification{Code: CodeAuthExpirado, Message: "Sessão expirada. Faça login novamente", Status: status}
	case status == http.StatusForbidden:
		return Classification{Code: CodeAuthProibido, Message: "Você não tem permissão para esta operação", Status: status}
	case status == http.StatusNotFound:
		return Classification{Code: CodeNaoEncontrado, Message: "Registro não encontrado", Status: status}
	case status == http.StatusConflict:
		return Classification{Code: CodeConflito, Message: "Conflito ao salvar. Recarregue e tente novamente", Status: status}
	case status == http.StatusUnprocessableEntity:
		return Classification{Code: CodeDadosInvalidos, Message: "Dados inválidos", Status: status}
	case status >= 500:
		return Classification{Code: CodeTransiente, Message: "Serviço indisponível no momento. Tente novamente", Status: http.StatusServiceUnavailable}
	default:
		return Classification{Code: CodeDesconhecido, Message: msgGenerica, Status: http.StatusInternalServerError}
	}
}

func isNetError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// debugLog emite o erro original completo no canal de diagnóstico. Em
// produção o nível global fica acima de Debug e nada é escrito.
func debugLog(err error, contexto string) {
	ev := log.Debug()
	if contexto != "" {
		ev = ev.Str("contexto", contexto)
	}
	ev.Err(err).Msg("erro classificado")
}
