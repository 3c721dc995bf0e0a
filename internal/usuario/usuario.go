// Package usuario persiste as contas que acessam o sistema. Cada usuário é
// dono dos próprios cadastros e vistorias.
package usuario

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/vistoriapro/api/internal/crud"
)

// Usuario representa uma conta de acesso.
type Usuario struct {
	ID        uuid.UUID
	Nome      string
	Email     string
	SenhaHash string
	Ativo     bool
	CreatedAt time.Time
}

const (
	sqlInsertUsuario = `
        INSERT INTO usuarios (id, nome, email, senha_hash)
        VALUES ($1, $2, $3, $4)
        RETURNING id, nome, email, senha_hash, ativo, created_at`

	sqlUsuarioByEmail = `
        SELECT id, nome, email, senha_hash, ativo, created_at
        FROM usuarios
        WHERE email = $1`

	sqlUsuarioByID = `
        SELECT id, nome, email, senha_hash, ativo, created_at
        FROM usuarios
        WHERE id = $1`
)

// Repository concentra o acesso à tabela usuarios.
type Repository struct {
	db crud.DB
}

// NewRepository cria o repositório.
func NewRepository(db crud.DB) *Repository {
	return &Repository{db: db}
}

// Create insere uma conta nova com o e-mail já normalizado.
func (r *Repository) Create(ctx context.Context, nome, email, senhaHash string) (Usuario, error) {
	row := r.db.QueryRow(ctx, sqlInsertUsuario, uuid.New(), strings.TrimSpace(nome), normalizeEmail(email), senhaHash)
	return scanUsuario(row)
}

// FindByEmail busca a conta pelo e-mail normalizado.
func (r *Repository) FindByEmail(ctx context.Context, email string) (Usuario, error) {
	row := r.db.QueryRow(ctx, sqlUsuarioByEmail, normalizeEmail(email))
	return scanUsuario(row)
}

// FindByID busca a conta pelo identificador.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (Usuario, error) {
	row := r.db.QueryRow(ctx, sqlUsuarioByID, id)
	return scanUsuario(row)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func scanUsuario(row interface{ Scan(dest ...any) error }) (Usuario, error) {
	var u Usuario
	err := row.Scan(&u.ID, &u.Nome, &u.Email, &u.SenhaHash, &u.Ativo, &u.CreatedAt)
	return u, err
}
