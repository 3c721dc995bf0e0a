// Package cadastro cobre os registros de pessoa do sistema: clientes,
// vistoriadores e digitadores. As três coleções compartilham o mesmo formato
// e as mesmas regras; mudam apenas as tabelas.
package cadastro

import (
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/vistoriapro/api/internal/crud"
	"github.com/vistoriapro/api/internal/format"
)

// Nomes das coleções de pessoa.
const (
	TabelaClientes      = "clientes"
	TabelaVistoriadores = "vistoriadores"
	TabelaDigitadores   = "digitadores"
)

// Pessoa representa um cadastro de cliente, vistoriador ou digitador.
// CriadoEm é o apelido de exibição do timestamp de criação, preenchido na
// leitura.
type Pessoa struct {
	ID          uuid.UUID `json:"id"`
	Nome        string    `json:"nome"`
	CPF         string    `json:"cpf"`
	Observacoes string    `json:"observacoes,omitempty"`
	FotoURL     string    `json:"foto_url,omitempty"`
	UserID      uuid.UUID `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	CriadoEm    string    `json:"criado_em"`
}

// PessoaInput reúne os campos aceitos na criação/edição.
type PessoaInput struct {
	Nome        string `json:"nome"`
	CPF         string `json:"cpf"`
	Observacoes string `json:"observacoes"`
	FotoURL     string `json:"foto_url"`
}

// Fields converte a entrada para o mapa de colunas graváveis, normalizando
// o CPF para o formato pontuado.
func (in PessoaInput) Fields() map[string]any {
	return map[string]any{
		"nome":        in.Nome,
		"cpf":         format.CPF(in.CPF),
		"observacoes": in.Observacoes,
		"foto_url":    in.FotoURL,
	}
}

func pessoaCollection(table string) crud.Collection[Pessoa] {
	return crud.Collection[Pessoa]{
		Table:        table,
		Columns:      []string{"id", "nome", "cpf", "observacoes", "foto_url", "user_id", "created_at", "updated_at"},
		Writable:     []string{"nome", "cpf", "observacoes", "foto_url"},
		HasUpdatedAt: true,
		Scan:         scanPessoa,
	}
}

func scanPessoa(row pgx.Row) (Pessoa, error) {
	var (
		p           Pessoa
		observacoes *string
		fotoURL     *string
	)
	if err := row.Scan(&p.ID, &p.Nome, &p.CPF, &observacoes, &fotoURL, &p.UserID, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return Pessoa{}, err
	}
	if observacoes != nil {
		p.Observacoes = *observacoes
	}
	if fotoURL != nil {
		p.FotoURL = *fotoURL
	}
	p.CriadoEm = format.Date(p.CreatedAt, format.DateShort)
	return p, nil
}
