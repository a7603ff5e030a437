package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"filemanager/internal/domain"
)

type FileRepository struct {
	db *sqlx.DB
}

func NewFileRepository(db *sqlx.DB) *FileRepository {
	return &FileRepository{db: db}
}

// Create сохраняет файл и в той же транзакции выдает владельцу все три права.
// Файл не должен существовать без полного набора прав владельца.
func (r *FileRepository) Create(ctx context.Context, file *domain.File) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Вставляем файл
	query := `
        INSERT INTO files (guid, name, content_key, owner_id)
        VALUES ($1, $2, $3, $4)
        RETURNING id, created_at, updated_at`

	err = tx.QueryRowContext(
		ctx,
		query,
		file.GUID,
		file.Name,
		file.ContentKey,
		file.OwnerID,
	).Scan(&file.ID, &file.CreatedAt, &file.UpdatedAt)
	if err != nil {
		return err
	}

	// Права владельца на чтение, запись и удаление
	grantQuery := `
        INSERT INTO access_grants (guid, file_id, user_id, kind)
        VALUES ($1, $2, $3, $4)`

	for _, kind := range []domain.AccessKind{domain.AccessRead, domain.AccessWrite, domain.AccessDelete} {
		if _, err := tx.ExecContext(ctx, grantQuery, uuid.New(), file.ID, file.OwnerID, kind); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *FileRepository) GetByGUID(ctx context.Context, guid uuid.UUID) (*domain.File, error) {
	var file domain.File
	query := `SELECT * FROM files WHERE guid = $1 AND is_deleted = FALSE`

	err := r.db.GetContext(ctx, &file, query, guid)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrFileNotFound
		}
		return nil, err
	}

	return &file, nil
}

// GetByGUIDAnyState находит файл независимо от пометки удаления.
// Используется выдачей и отзывом прав.
func (r *FileRepository) GetByGUIDAnyState(ctx context.Context, guid uuid.UUID) (*domain.File, error) {
	var file domain.File
	query := `SELECT * FROM files WHERE guid = $1`

	err := r.db.GetContext(ctx, &file, query, guid)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrFileNotFound
		}
		return nil, err
	}

	return &file, nil
}

func (r *FileRepository) GetOwnerGUID(ctx context.Context, fileID int64) (uuid.UUID, error) {
	var ownerGUID uuid.UUID
	query := `
        SELECT u.guid FROM users u
        JOIN files f ON f.owner_id = u.id
        WHERE f.id = $1`

	if err := r.db.GetContext(ctx, &ownerGUID, query, fileID); err != nil {
		return uuid.Nil, fmt.Errorf("failed to get file owner: %w", err)
	}

	return ownerGUID, nil
}

func (r *FileRepository) Update(ctx context.Context, file *domain.File) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
        UPDATE files
        SET name = $1,
            content_key = $2,
            updated_at = CURRENT_TIMESTAMP
        WHERE id = $3
        RETURNING updated_at`

	if err := tx.QueryRowContext(ctx, query, file.Name, file.ContentKey, file.ID).Scan(&file.UpdatedAt); err != nil {
		return fmt.Errorf("error updating file: %w", err)
	}

	return tx.Commit()
}

// SoftDelete помечает файл удаленным, содержимое и права остаются
func (r *FileRepository) SoftDelete(ctx context.Context, id int64) error {
	query := `
        UPDATE files
        SET is_deleted = TRUE,
            deleted_at = CURRENT_TIMESTAMP
        WHERE id = $1`

	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("error deleting file: %w", err)
	}

	return nil
}

// ListAccessible возвращает страницу файлов, которыми пользователь владеет
// или на которые у него есть активное право чтения. Удаленные файлы
// исключаются в обеих ветках, порядок стабильный по первичному ключу.
func (r *FileRepository) ListAccessible(ctx context.Context, userID int64, limit, offset int) ([]domain.FileSummary, error) {
	var files []domain.FileSummary
	query := `
        SELECT f.guid, f.created_at, f.name, f.content_key, u.guid AS owner_guid
        FROM files f
        JOIN users u ON u.id = f.owner_id
        WHERE f.is_deleted = FALSE
          AND (f.owner_id = $1 OR EXISTS (
              SELECT 1 FROM access_grants g
              WHERE g.file_id = f.id
                AND g.user_id = $1
                AND g.kind = 'read'
                AND g.is_deleted = FALSE))
        ORDER BY f.id
        LIMIT $2 OFFSET $3`

	err := r.db.SelectContext(ctx, &files, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}

	return files, nil
}

func (r *FileRepository) CountAccessible(ctx context.Context, userID int64) (int, error) {
	var total int
	query := `
        SELECT COUNT(*)
        FROM files f
        WHERE f.is_deleted = FALSE
          AND (f.owner_id = $1 OR EXISTS (
              SELECT 1 FROM access_grants g
              WHERE g.file_id = f.id
                AND g.user_id = $1
                AND g.kind = 'read'
                AND g.is_deleted = FALSE))`

	err := r.db.GetContext(ctx, &total, query, userID)
	if err != nil {
		return 0, err
	}

	return total, nil
}
