package service

import (
	"context"

	"filemanager/internal/domain"
	"filemanager/internal/repository"
)

// PermissionService отвечает на вопрос, разрешена ли операция над файлом.
// Право дает только активная запись нужного вида: владелец получает свои
// записи при загрузке и после их отзыва отдельной привилегии не имеет.
type PermissionService struct {
	accessRepo *repository.AccessRepository
}

func NewPermissionService(accessRepo *repository.AccessRepository) *PermissionService {
	return &PermissionService{accessRepo: accessRepo}
}

// Can проверяет право пользователя на операцию данного вида.
// Для удаленного файла всегда false.
func (s *PermissionService) Can(ctx context.Context, userID int64, file *domain.File, kind domain.AccessKind) (bool, error) {
	if file == nil || file.IsDeleted {
		return false, nil
	}

	return s.accessRepo.HasActive(ctx, file.ID, userID, kind)
}
