package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"filemanager/internal/domain"
	"filemanager/internal/repository"
)

// AccessService выдает и отзывает права доступа к файлам.
// Целевой пользователь задается email, файл — guid.
type AccessService struct {
	accessRepo *repository.AccessRepository
	fileRepo   *repository.FileRepository
	userRepo   *repository.UserRepository
}

func NewAccessService(
	accessRepo *repository.AccessRepository,
	fileRepo *repository.FileRepository,
	userRepo *repository.UserRepository,
) *AccessService {
	return &AccessService{
		accessRepo: accessRepo,
		fileRepo:   fileRepo,
		userRepo:   userRepo,
	}
}

// Grant создает право данного вида. Повторная выдача при уже активном
// праве отклоняется. Возвращает имя пользователя для текста ответа.
func (s *AccessService) Grant(ctx context.Context, kind domain.AccessKind, userEmail string, fileGUID uuid.UUID) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("unknown access kind: %s", kind)
	}

	user, err := s.userRepo.GetByEmail(ctx, userEmail)
	if err != nil {
		return "", err
	}

	// Поиск файла без фильтра по пометке удаления, как в исходном сервисе
	file, err := s.fileRepo.GetByGUIDAnyState(ctx, fileGUID)
	if err != nil {
		return "", err
	}

	active, err := s.accessRepo.HasActive(ctx, file.ID, user.ID, kind)
	if err != nil {
		return "", err
	}
	if active {
		return user.Name, domain.ErrAccessExists
	}

	grant := &domain.AccessGrant{
		GUID:   uuid.New(),
		FileID: file.ID,
		UserID: user.ID,
		Kind:   kind,
	}
	if err := s.accessRepo.Create(ctx, grant); err != nil {
		return "", err
	}

	return user.Name, nil
}

// Revoke помечает право удаленным. Наличие записи проверяется без учета
// пометки удаления: пара без единой записи дает конфликт, уже отозванное
// право отзывается повторно без ошибки.
func (s *AccessService) Revoke(ctx context.Context, kind domain.AccessKind, userEmail string, fileGUID uuid.UUID) (string, error) {
	if !kind.Valid() {
		return "", fmt.Errorf("unknown access kind: %s", kind)
	}

	user, err := s.userRepo.GetByEmail(ctx, userEmail)
	if err != nil {
		return "", err
	}

	file, err := s.fileRepo.GetByGUIDAnyState(ctx, fileGUID)
	if err != nil {
		return "", err
	}

	exists, err := s.accessRepo.ExistsAny(ctx, file.ID, user.ID, kind)
	if err != nil {
		return "", err
	}
	if !exists {
		return user.Name, domain.ErrAccessMissing
	}

	if err := s.accessRepo.Revoke(ctx, file.ID, user.ID, kind); err != nil {
		return "", err
	}

	return user.Name, nil
}
