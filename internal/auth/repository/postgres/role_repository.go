package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/adminkit/session-service/internal/audit"
	"github.com/adminkit/session-service/internal/auth/domain"
	autherror "github.com/adminkit/session-service/internal/errors"
)

// RoleRepository is wrapped with diff-and-record auditing at its construction
// site: every mutation loads prior state, performs the write and appends the
// audit row on the same transaction, so both share one commit or rollback.
// Before and after values live as locals in the mutation's scope; there is no
// cross-call snapshot cache.
type RoleRepository struct {
	db     DB
	writer *audit.Writer
}

func NewRoleRepository(db DB, writer *audit.Writer) *RoleRepository {
	return &RoleRepository{db: db, writer: writer}
}

func (r *RoleRepository) Get(ctx context.Context, id int) (*domain.Role, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name
		FROM roles
		WHERE id = $1
		LIMIT 1`, id)

	var role domain.Role
	if err := row.Scan(&role.ID, &role.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}

	return &role, nil
}

func (r *RoleRepository) Create(ctx context.Context, role *domain.Role) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		if err := tx.QueryRow(ctx, `
			INSERT INTO roles (name)
			VALUES ($1)
			RETURNING id`, role.Name).Scan(&role.ID); err != nil {
			return fmt.Errorf("failed to create role: %w", err)
		}

		return r.writer.Record(ctx, tx, audit.Entry{
			Action:   audit.ActionCreate,
			Model:    "role",
			EntityID: fmt.Sprint(role.ID),
			Diff:     map[string]any{"created": map[string]any{"name": role.Name}},
		})
	})
}

// UpdateName captures the row's prior state, applies the change and records
// only the changed keys, all inside one transaction.
func (r *RoleRepository) UpdateName(ctx context.Context, id int, name string) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		var before string
		if err := tx.QueryRow(ctx, `
			SELECT name
			FROM roles
			WHERE id = $1
			FOR UPDATE`, id).Scan(&before); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return autherror.NotFound("role not found")
			}
			return fmt.Errorf("failed to load role for update: %w", err)
		}

		if _, err := tx.Exec(ctx, `
			UPDATE roles
			SET name = $2
			WHERE id = $1`, id, name); err != nil {
			return fmt.Errorf("failed to update role: %w", err)
		}

		changed := audit.Diff(
			map[string]any{"name": before},
			map[string]any{"name": name},
		)
		if len(changed) == 0 {
			return nil
		}

		return r.writer.Record(ctx, tx, audit.Entry{
			Action:   audit.ActionUpdate,
			Model:    "role",
			EntityID: fmt.Sprint(id),
			Diff:     map[string]any{"changed": changed},
		})
	})
}

func (r *RoleRepository) Delete(ctx context.Context, id int) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		var before string
		if err := tx.QueryRow(ctx, `
			SELECT name
			FROM roles
			WHERE id = $1
			FOR UPDATE`, id).Scan(&before); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return autherror.NotFound("role not found")
			}
			return fmt.Errorf("failed to load role for delete: %w", err)
		}

		if _, err := tx.Exec(ctx, `
			DELETE FROM roles
			WHERE id = $1`, id); err != nil {
			return fmt.Errorf("failed to delete role: %w", err)
		}

		return r.writer.Record(ctx, tx, audit.Entry{
			Action:   audit.ActionDelete,
			Model:    "role",
			EntityID: fmt.Sprint(id),
			Diff:     map[string]any{"deleted": map[string]any{"name": before}},
		})
	})
}

func (r *RoleRepository) inTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		err = tx.Commit(ctx)
	}()

	err = fn(tx)
	return err
}
