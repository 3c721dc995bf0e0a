// Package crud implementa o acesso genérico a entidades: quatro operações
// (listar, criar, atualizar, excluir) parametrizadas pela descrição da
// coleção, sempre restritas ao principal autenticado e com toda falha
// normalizada pelo classificador antes de chegar ao chamador.
package crud

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/vistoriapro/api/internal/apperror"
	"github.com/vistoriapro/api/internal/principal"
)

// DB cobre o subconjunto de pgxpool.Pool usado pelo store.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Collection descreve o mapeamento explícito de uma entidade para sua
// tabela: colunas lidas, colunas graváveis e a função de scan tipada.
// Campos fora de Writable são rejeitados em vez de confiados ao banco.
type Collection[T any] struct {
	Table        string
	Columns      []string
	Writable     []string
	HasUpdatedAt bool
	Scan         func(row pgx.Row) (T, error)
}

// Store executa as operações CRUD de uma coleção.
type Store[T any] struct {
	db       DB
	col      Collection[T]
	writable map[string]struct{}
}

// NewStore cria o store de uma coleção.
func NewStore[T any](db DB, col Collection[T]) *Store[T] {
	writable := make(map[string]struct{}, len(col.Writable))
	for _, c := range col.Writable {
		writable[c] = struct{}{}
	}
	return &Store[T]{db: db, col: col, writable: writable}
}

// ListAll devolve todos os registros do principal, mais recentes primeiro.
// A lista volta completa ou a chamada falha por inteiro.
func (s *Store[T]) ListAll(ctx context.Context) ([]T, error) {
	uid, err := principal.FromContext(ctx)
	if err != nil {
		return nil, apperror.Classify(err, "listar "+s.col.Table)
	}

	query := fmt.Sprintf(
		"SELECT %s FROM %s WHERE user_id = $1 ORDER BY created_at DESC",
		strings.Join(s.col.Columns, ", "), s.col.Table,
	)

	rows, err := s.db.Query(ctx, query, uid)
	if err != nil {
		return nil, apperror.Classify(err, "listar "+s.col.Table)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		item, err := s.col.Scan(rows)
		if err != nil {
			return nil, apperror.Classify(err, "listar "+s.col.Table)
		}
		out = append(out, item)
	}
	if rows.Err() != nil {
		return nil, apperror.Classify(rows.Err(), "listar "+s.col.Table)
	}

	if out == nil {
		out = []T{}
	}
	return out, nil
}

// Create insere um registro com o principal como dono e devolve a linha
// persistida (id e timestamps atribuídos pelo banco).
func (s *Store[T]) Create(ctx context.Context, fields map[string]any) (T, error) {
	var zero T

	uid, err := principal.FromContext(ctx)
	if err != nil {
		return zero, apperror.Classify(err, "criar "+s.col.Table)
	}

	cols, args, err := s.writableFields(fields)
	if err != nil {
		return zero, err
	}
	cols = append(cols, "user_id")
	args = append(args, uid)

	placeholders := make([]string, len(cols))
	for i := range cols {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	query := fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s) RETURNING %s",
		s.col.Table,
		strings.Join(cols, ", "),
		strings.Join(placeholders, ", "),
		strings.Join(s.col.Columns, ", "),
	)

	item, err := s.col.Scan(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		return zero, apperror.Classify(err, "criar "+s.col.Table)
	}
	return item, nil
}

// Update modifica somente os campos informados; os demais permanecem
// intocados. Devolve a linha completa atualizada.
func (s *Store[T]) Update(ctx context.Context, id uuid.UUID, fields map[string]any) (T, error) {
	var zero T

	uid, err := principal.FromContext(ctx)
	if err != nil {
		return zero, apperror.Classify(err, "atualizar "+s.col.Table)
	}

	cols, args, err := s.writableFields(fields)
	if err != nil {
		return zero, err
	}
	if len(cols) == 0 {
		return zero, apperror.Classification{
			Code:    apperror.CodeDadosInvalidos,
			Message: "Nenhum campo para atualizar",
			Status:  422,
		}
	}

	setParts := make([]string, 0, len(cols)+1)
	for i, c := range cols {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", c, i+1))
	}
	if s.col.HasUpdatedAt {
		setParts = append(setParts, "updated_at = now()")
	}

	idx := len(cols) + 1
	args = append(args, id, uid)
	query := fmt.Sprintf(
		"UPDATE %s SET %s WHERE id = $%d AND user_id = $%d RETURNING %s",
		s.col.Table,
		strings.Join(setParts, ", "),
		idx, idx+1,
		strings.Join(s.col.Columns, ", "),
	)

	item, err := s.col.Scan(s.db.QueryRow(ctx, query, args...))
	if err != nil {
		return zero, apperror.Classify(err, "atualizar "+s.col.Table)
	}
	return item, nil
}

// Delete remove o registro pelo id. Excluir um id inexistente não é
// silencioso: a falha do banco passa pelo classificador como qualquer outra.
func (s *Store[T]) Delete(ctx context.Context, id uuid.UUID) error {
	uid, err := principal.FromContext(ctx)
	if err != nil {
		return apperror.Classify(err, "excluir "+s.col.Table)
	}

	query := fmt.Sprintf("DELETE FROM %s WHERE id = $1 AND user_id = $2", s.col.Table)
	tag, err := s.db.Exec(ctx, query, id, uid)
	if err != nil {
		return apperror.Classify(err, "excluir "+s.col.Table)
	}
	if tag.RowsAffected() == 0 {
		return apperror.Classify(pgx.ErrNoRows, "excluir "+s.col.Table)
	}
	return nil
}

// writableFields filtra o mapa de campos contra o conjunto gravável da
// coleção, em ordem determinística. Campo desconhecido é rejeitado.
func (s *Store[T]) writableFields(fields map[string]any) ([]string, []any, error) {
	cols := make([]string, 0, len(fields))
	for c := range fields {
		if _, ok := s.writable[c]; !ok {
			return nil, nil, apperror.Classification{
				Code:    apperror.CodeDadosInvalidos,
				Message: "Dados inválidos",
				Status:  422,
			}
		}
		cols = append(cols, c)
	}
	sort.Strings(cols)

	args := make([]any, 0, len(cols))
	for _, c := range cols {
		args = append(args, fields[c])
	}
	return cols, args, nil
}
