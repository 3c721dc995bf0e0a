// Package vistoria implementa o registro de vistorias veiculares: modelo,
// vínculo com a camada genérica de acesso (com coerção de valor monetário) e
// rotas HTTP, incluindo as edições rápidas de situação e pagamento.
package vistoria

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vistoriapro/api/internal/crud"
	"github.com/vistoriapro/api/internal/format"
)

// Tipos de laudo disponíveis.
var Tipos = []string{
	"ECV/TRANSFERENCIA",
	"REVISTORIA/INFRAÇÃO DE TRÂNSITO",
	"INSTALAÇÃO DE EQUIPAMENTO GÁS/GNV/ACESSIBILIDADE",
	"DESCARACTERIZAÇÃO DE BLINDAGEM",
	"DESCARACTERIZAÇÃO",
	"TROCA DE MOTOR",
	"TROCA DE CARROCERIA",
	"AVARIAS",
	"AUTORIZAÇÃO ESTRANGEIRO",
	"OUTROS",
}

// Modalidades de vistoria. Afetam apenas destaque visual, nunca o fluxo.
const (
	ModalidadeInterno = "INTERNO"
	ModalidadeExterno = "EXTERNO"
)

// Situações possíveis. Não há grafo de transição: qualquer situação pode ir
// para qualquer outra por ação direta do usuário.
const (
	SituacaoPendente            = "PENDENTE"
	SituacaoAprovado            = "APROVADO"
	SituacaoReprovado           = "REPROVADO"
	SituacaoAprovadoComRessalva = "APROVADO_COM_RESSALVAS"
	SituacaoSuspeitaAdulteracao = "SUSPEITA_ADULTERACAO"
	SituacaoConforme            = "CONFORME"
	SituacaoNaoConforme         = "NAO_CONFORME"
)

// Formas de pagamento.
const (
	PagamentoDinheiro = "DINHEIRO"
	PagamentoPix      = "PIX"
	PagamentoDebito   = "DÉBITO"
	PagamentoCredito  = "CRÉDITO"
	PagamentoBoleto   = "BOLETO"
	PagamentoFaturado = "FATURADO"
)

var (
	validSituacoes = map[string]struct{}{
		SituacaoPendente:            {},
		SituacaoAprovado:            {},
		SituacaoReprovado:           {},
		SituacaoAprovadoComRessalva: {},
		SituacaoSuspeitaAdulteracao: {},
		SituacaoConforme:            {},
		SituacaoNaoConforme:         {},
	}
	validPagamentos = map[string]struct{}{
		PagamentoDinheiro: {},
		PagamentoPix:      {},
		PagamentoDebito:   {},
		PagamentoCredito:  {},
		PagamentoBoleto:   {},
		PagamentoFaturado: {},
	}
	validModalidades = map[string]struct{}{
		ModalidadeInterno: {},
		ModalidadeExterno: {},
	}
)

// IsValidSituacao indica se a situação pertence ao conjunto fechado.
func IsValidSituacao(s string) bool {
	_, ok := validSituacoes[strings.ToUpper(strings.TrimSpace(s))]
	return ok
}

// IsValidPagamento indica se a forma de pagamento é aceita.
func IsValidPagamento(p string) bool {
	_, ok := validPagamentos[strings.ToUpper(strings.TrimSpace(p))]
	return ok
}

// IsValidModalidade indica se a modalidade é aceita.
func IsValidModalidade(m string) bool {
	_, ok := validModalidades[strings.ToUpper(strings.TrimSpace(m))]
	return ok
}

// Valor aceita tanto número JSON quanto string monetária formatada
// ("R$ 1.234,56"). A string é convertida pela variante estrita do parser:
// entrada não interpretável falha em vez de degradar para zero.
type Valor float64

func (v *Valor) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := format.ParseCurrency(s)
		if err != nil {
			return err
		}
		*v = Valor(parsed)
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*v = Valor(f)
	return nil
}

// Vistoria é o registro persistido. Digitador e liberador são texto livre:
// cópia da identidade no momento do registro, sem vínculo relacional. Assim
// renomear ou excluir um vistoriador não altera vistorias antigas.
// ValorExibicao e CriadoEm são apelidos de exibição preenchidos na leitura.
type Vistoria struct {
	ID            uuid.UUID  `json:"id"`
	Placa         string     `json:"placa"`
	Modelo        string     `json:"modelo"`
	Tipo          string     `json:"tipo"`
	Modalidade    string     `json:"modalidade"`
	Pagamento     string     `json:"pagamento"`
	Valor         float64    `json:"valor"`
	ValorExibicao string     `json:"valor_exibicao"`
	Situacao      string     `json:"situacao"`
	ClienteID     *uuid.UUID `json:"cliente_id,omitempty"`
	ClienteNome   string     `json:"cliente_nome"`
	ClienteCPF    string     `json:"cliente_cpf,omitempty"`
	Digitador     string     `json:"digitador,omitempty"`
	Liberador     string     `json:"liberador,omitempty"`
	Fotos         []string   `json:"fotos"`
	UserID        uuid.UUID  `json:"user_id"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	CriadoEm      string     `json:"criado_em"`
}

func vistoriaCollection() crud.Collection[Vistoria] {
	return crud.Collection[Vistoria]{
		Table: "vistorias",
		Columns: []string{
			"id", "placa", "modelo", "tipo", "modalidade", "pagamento", "valor",
			"situacao", "cliente_id", "cliente_nome", "cliente_cpf",
			"digitador", "liberador", "fotos", "user_id", "created_at", "updated_at",
		},
		Writable: []string{
			"placa", "modelo", "tipo", "modalidade", "pagamento", "valor",
			"situacao", "cliente_id", "cliente_nome", "cliente_cpf",
			"digitador", "liberador", "fotos",
		},
		HasUpdatedAt: true,
		Scan:         scanVistoria,
	}
}

func scanVistoria(row pgx.Row) (Vistoria, error) {
	var (
		v          Vistoria
		clienteCPF *string
		digitador  *string
		liberador  *string
	)
	err := row.Scan(
		&v.ID, &v.Placa, &v.Modelo, &v.Tipo, &v.Modalidade, &v.Pagamento, &v.Valor,
		&v.Situacao, &v.ClienteID, &v.ClienteNome, &clienteCPF,
		&digitador, &liberador, &v.Fotos, &v.UserID, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return Vistoria{}, err
	}

	if clienteCPF != nil {
		v.ClienteCPF = *clienteCPF
	}
	if digitador != nil {
		v.Digitador = *digitador
	}
	if liberador != nil {
		v.Liberador = *liberador
	}
	if v.Fotos == nil {
		v.Fotos = []string{}
	}
	v.ValorExibicao = format.Currency(v.Valor)
	v.CriadoEm = format.Date(v.CreatedAt, format.DateShort)
	return v, nil
}
