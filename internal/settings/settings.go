// Package settings guarda as configurações do sistema por usuário, hoje
// restritas à identidade visual dos laudos (logo).
package settings

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/vistoriapro/api/internal/crud"
	"github.com/vistoriapro/api/internal/principal"
)

// Settings representa a linha única de configurações de um usuário.
type Settings struct {
	LogoURL   *string    `json:"logo_url"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

const (
	sqlSelectSettings = `
        SELECT logo_url, updated_at
        FROM system_settings
        WHERE user_id = $1`

	// Uma linha por usuário; escrita sempre via upsert.
	sqlUpsertSettings = `
        INSERT INTO system_settings (user_id, logo_url, updated_at)
        VALUES ($1, $2, now())
        ON CONFLICT (user_id)
        DO UPDATE SET logo_url = EXCLUDED.logo_url, updated_at = now()
        RETURNING logo_url, updated_at`
)

// Repository concentra o acesso à tabela system_settings.
type Repository struct {
	db crud.DB
}

// NewRepository cria o repositório.
func NewRepository(db crud.DB) *Repository {
	return &Repository{db: db}
}

// Get devolve as configurações do usuário autenticado. A ausência de linha
// não é erro: devolve o zero value para o frontend montar a tela vazia.
func (r *Repository) Get(ctx context.Context) (Settings, error) {
	user, err := principal.FromContext(ctx)
	if err != nil {
		return Settings{}, err
	}

	var s Settings
	err = r.db.QueryRow(ctx, sqlSelectSettings, user).Scan(&s.LogoURL, &s.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Settings{}, nil
	}
	if err != nil {
		return Settings{}, err
	}
	return s, nil
}

// SetLogoURL grava (ou substitui) a URL da logo do usuário autenticado.
func (r *Repository) SetLogoURL(ctx context.Context, logoURL *string) (Settings, error) {
	user, err := principal.FromContext(ctx)
	if err != nil {
		return Settings{}, err
	}

	var s Settings
	err = r.db.QueryRow(ctx, sqlUpsertSettings, user, logoURL).Scan(&s.LogoURL, &s.UpdatedAt)
	if err != nil {
		return Settings{}, err
	}
	return s, nil
}
