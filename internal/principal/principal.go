// Package principal carrega o usuário autenticado pelo contexto. Toda
// operação de leitura/escrita da camada de dados resolve o principal por
// aqui e falha fechado quando ele não existe.
package principal

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

type contextKey struct{}

// ErrNaoAutenticado indica ausência de principal resolvível no contexto.
var ErrNaoAutenticado = errors.New("usuário não autenticado")

// WithUser devolve um contexto carregando o id do usuário autenticado.
func WithUser(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, contextKey{}, userID)
}

// FromContext resolve o principal ou falha com ErrNaoAutenticado.
func FromContext(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(contextKey{}).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, ErrNaoAutenticado
	}
	return id, nil
}
