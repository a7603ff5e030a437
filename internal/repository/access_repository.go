package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"filemanager/internal/domain"
)

type AccessRepository struct {
	db *sqlx.DB
}

func NewAccessRepository(db *sqlx.DB) *AccessRepository {
	return &AccessRepository{db: db}
}

func (r *AccessRepository) Create(ctx context.Context, grant *domain.AccessGrant) error {
	query := `
        INSERT INTO access_grants (guid, file_id, user_id, kind)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at`

	err := r.db.QueryRowContext(
		ctx,
		query,
		grant.GUID,
		grant.FileID,
		grant.UserID,
		grant.Kind,
	).Scan(&grant.ID, &grant.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create access grant: %w", err)
	}

	return nil
}

// HasActive проверяет наличие активного права данного вида для пары (файл, пользователь)
func (r *AccessRepository) HasActive(ctx context.Context, fileID, userID int64, kind domain.AccessKind) (bool, error) {
	var exists bool
	query := `
        SELECT EXISTS (
            SELECT 1 FROM access_grants
            WHERE file_id = $1 AND user_id = $2 AND kind = $3 AND is_deleted = FALSE)`

	err := r.db.GetContext(ctx, &exists, query, fileID, userID, kind)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// ExistsAny проверяет наличие записи о праве без учета пометки удаления
func (r *AccessRepository) ExistsAny(ctx context.Context, fileID, userID int64, kind domain.AccessKind) (bool, error) {
	var exists bool
	query := `
        SELECT EXISTS (
            SELECT 1 FROM access_grants
            WHERE file_id = $1 AND user_id = $2 AND kind = $3)`

	err := r.db.GetContext(ctx, &exists, query, fileID, userID, kind)
	if err != nil {
		return false, err
	}

	return exists, nil
}

// Revoke помечает удаленными все записи права данного вида для пары
func (r *AccessRepository) Revoke(ctx context.Context, fileID, userID int64, kind domain.AccessKind) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
        UPDATE access_grants
        SET is_deleted = TRUE,
            deleted_at = CURRENT_TIMESTAMP
        WHERE file_id = $1 AND user_id = $2 AND kind = $3`

	if _, err := tx.ExecContext(ctx, query, fileID, userID, kind); err != nil {
		return fmt.Errorf("failed to revoke access: %w", err)
	}

	return tx.Commit()
}

// ListUsersByKind возвращает пользователей с активным правом данного вида на файл
func (r *AccessRepository) ListUsersByKind(ctx context.Context, fileID int64, kind domain.AccessKind) ([]domain.UserSummary, error) {
	var users []domain.UserSummary
	query := `
        SELECT u.guid, u.created_at, u.name, u.email
        FROM access_grants g
        JOIN users u ON u.id = g.user_id
        WHERE g.file_id = $1 AND g.kind = $2 AND g.is_deleted = FALSE
          AND u.is_deleted = FALSE
        ORDER BY g.id`

	err := r.db.SelectContext(ctx, &users, query, fileID, kind)
	if err != nil {
		return nil, err
	}

	return users, nil
}
