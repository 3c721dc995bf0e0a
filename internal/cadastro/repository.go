package cadastro

import "github.com/vistoriapro/api/internal/crud"

// Repository agrupa os três vínculos de pessoa sobre a camada genérica.
// Nenhum deles adiciona coerção: são passagens diretas.
type Repository struct {
	Clientes      *crud.Store[Pessoa]
	Vistoriadores *crud.Store[Pessoa]
	Digitadores   *crud.Store[Pessoa]
}

// NewRepository cria os stores das três coleções.
func NewRepository(db crud.DB) *Repository {
	return &Repository{
		Clientes:      crud.NewStore(db, pessoaCollection(TabelaClientes)),
		Vistoriadores: crud.NewStore(db, pessoaCollection(TabelaVistoriadores)),
		Digitadores:   crud.NewStore(db, pessoaCollection(TabelaDigitadores)),
	}
}
