package vistoria

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/vistoriapro/api/internal/apperror"
	"github.com/vistoriapro/api/internal/crud"
	"github.com/vistoriapro/api/internal/format"
)

// Input reúne os campos aceitos na criação e na edição completa.
type Input struct {
	Placa       string     `json:"placa"`
	Modelo      string     `json:"modelo"`
	Tipo        string     `json:"tipo"`
	Modalidade  string     `json:"modalidade"`
	Pagamento   string     `json:"pagamento"`
	Valor       Valor      `json:"valor"`
	Situacao    string     `json:"situacao"`
	ClienteID   *uuid.UUID `json:"cliente_id"`
	ClienteNome string     `json:"cliente_nome"`
	ClienteCPF  string     `json:"cliente_cpf"`
	Digitador   string     `json:"digitador"`
	Liberador   string     `json:"liberador"`
	Fotos       []string   `json:"fotos"`
}

// Fields converte a entrada para o mapa de colunas graváveis. Placa e CPF
// são normalizados; situação e modalidade ganham os padrões do sistema.
func (in Input) Fields() map[string]any {
	situacao := strings.ToUpper(strings.TrimSpace(in.Situacao))
	if situacao == "" {
		situacao = SituacaoPendente
	}
	modalidade := strings.ToUpper(strings.TrimSpace(in.Modalidade))
	if modalidade == "" {
		modalidade = ModalidadeInterno
	}
	fotos := in.Fotos
	if fotos == nil {
		fotos = []string{}
	}

	return map[string]any{
		"placa":        format.Placa(in.Placa),
		"modelo":       strings.TrimSpace(in.Modelo),
		"tipo":         in.Tipo,
		"modalidade":   modalidade,
		"pagamento":    in.Pagamento,
		"valor":        float64(in.Valor),
		"situacao":     situacao,
		"cliente_id":   in.ClienteID,
		"cliente_nome": strings.TrimSpace(in.ClienteNome),
		"cliente_cpf":  format.CPF(in.ClienteCPF),
		"digitador":    in.Digitador,
		"liberador":    in.Liberador,
		"fotos":        fotos,
	}
}

// UpdateInput carrega apenas os campos presentes no payload; os ausentes
// permanecem intocados no banco.
type UpdateInput struct {
	Placa       *string   `json:"placa"`
	Modelo      *string   `json:"modelo"`
	Tipo        *string   `json:"tipo"`
	Modalidade  *string   `json:"modalidade"`
	Pagamento   *string   `json:"pagamento"`
	Valor       *Valor    `json:"valor"`
	Situacao    *string   `json:"situacao"`
	ClienteNome *string   `json:"cliente_nome"`
	ClienteCPF  *string   `json:"cliente_cpf"`
	Digitador   *string   `json:"digitador"`
	Liberador   *string   `json:"liberador"`
	Fotos       *[]string `json:"fotos"`
}

// Fields monta o mapa somente com os campos informados.
func (in UpdateInput) Fields() map[string]any {
	fields := map[string]any{}

	if in.Placa != nil {
		fields["placa"] = format.Placa(*in.Placa)
	}
	if in.Modelo != nil {
		fields["modelo"] = strings.TrimSpace(*in.Modelo)
	}
	if in.Tipo != nil {
		fields["tipo"] = *in.Tipo
	}
	if in.Modalidade != nil {
		fields["modalidade"] = strings.ToUpper(strings.TrimSpace(*in.Modalidade))
	}
	if in.Pagamento != nil {
		fields["pagamento"] = *in.Pagamento
	}
	if in.Valor != nil {
		fields["valor"] = float64(*in.Valor)
	}
	if in.Situacao != nil {
		fields["situacao"] = strings.ToUpper(strings.TrimSpace(*in.Situacao))
	}
	if in.ClienteNome != nil {
		fields["cliente_nome"] = strings.TrimSpace(*in.ClienteNome)
	}
	if in.ClienteCPF != nil {
		fields["cliente_cpf"] = format.CPF(*in.ClienteCPF)
	}
	if in.Digitador != nil {
		fields["digitador"] = *in.Digitador
	}
	if in.Liberador != nil {
		fields["liberador"] = *in.Liberador
	}
	if in.Fotos != nil {
		fields["fotos"] = *in.Fotos
	}

	return fields
}

// Repository é o vínculo da vistoria com a camada genérica de acesso.
type Repository struct {
	store *crud.Store[Vistoria]
}

// NewRepository cria o vínculo sobre o banco informado.
func NewRepository(db crud.DB) *Repository {
	return &Repository{store: crud.NewStore(db, vistoriaCollection())}
}

// ListAll devolve as vistorias do principal, mais recentes primeiro.
func (r *Repository) ListAll(ctx context.Context) ([]Vistoria, error) {
	return r.store.ListAll(ctx)
}

// Create persiste uma nova vistoria.
func (r *Repository) Create(ctx context.Context, in Input) (Vistoria, error) {
	return r.store.Create(ctx, in.Fields())
}

// Update aplica edição parcial: somente os campos presentes no payload.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, in UpdateInput) (Vistoria, error) {
	return r.store.Update(ctx, id, in.Fields())
}

// UpdateSituacao é a edição rápida de situação (dropdown na listagem).
func (r *Repository) UpdateSituacao(ctx context.Context, id uuid.UUID, situacao string) (Vistoria, error) {
	situacao = strings.ToUpper(strings.TrimSpace(situacao))
	if !IsValidSituacao(situacao) {
		return Vistoria{}, apperror.Classification{
			Code:    apperror.CodeDadosInvalidos,
			Message: "Situação inválida",
			Status:  422,
		}
	}
	return r.store.Update(ctx, id, map[string]any{"situacao": situacao})
}

// UpdatePagamento é a edição rápida da forma de pagamento.
func (r *Repository) UpdatePagamento(ctx context.Context, id uuid.UUID, pagamento string) (Vistoria, error) {
	pagamento = strings.ToUpper(strings.TrimSpace(pagamento))
	if !IsValidPagamento(pagamento) {
		return Vistoria{}, apperror.Classification{
			Code:    apperror.CodeDadosInvalidos,
			Message: "Forma de pagamento inválida",
			Status:  422,
		}
	}
	return r.store.Update(ctx, id, map[string]any{"pagamento": pagamento})
}

// Delete exclui a vistoria definitivamente.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.store.Delete(ctx, id)
}
