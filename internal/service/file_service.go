package service

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"

	"github.com/google/uuid"

	"filemanager/internal/domain"
	"filemanager/internal/repository"
	"filemanager/internal/service/s3"
)

// FileService управляет жизненным циклом файла: загрузка, обновление,
// удаление, списки. Все мутации проходят через проверку прав.
type FileService struct {
	fileRepo    *repository.FileRepository
	userRepo    *repository.UserRepository
	accessRepo  *repository.AccessRepository
	permissions *PermissionService
	storage     s3.Storage
}

func NewFileService(
	fileRepo *repository.FileRepository,
	userRepo *repository.UserRepository,
	accessRepo *repository.AccessRepository,
	permissions *PermissionService,
	storage s3.Storage,
) *FileService {
	return &FileService{
		fileRepo:    fileRepo,
		userRepo:    userRepo,
		accessRepo:  accessRepo,
		permissions: permissions,
		storage:     storage,
	}
}

func contentKey(fileGUID uuid.UUID) string {
	return fmt.Sprintf("uploads/file/%s", fileGUID)
}

// Upload сохраняет содержимое в S3 и создает запись файла вместе с тремя
// правами владельца в одной транзакции. При ошибке записи в базу
// загруженный объект подчищается.
func (s *FileService) Upload(ctx context.Context, ownerGUID uuid.UUID, name string, content multipart.File) (*domain.File, error) {
	owner, err := s.userRepo.GetByGUID(ctx, ownerGUID)
	if err != nil {
		return nil, err
	}

	file := &domain.File{
		GUID:    uuid.New(),
		Name:    name,
		OwnerID: owner.ID,
	}
	file.ContentKey = contentKey(file.GUID)

	if err := s.storage.UploadFile(file.ContentKey, content); err != nil {
		return nil, fmt.Errorf("failed to upload file content: %w", err)
	}

	if err := s.fileRepo.Create(ctx, file); err != nil {
		if delErr := s.storage.DeleteObject(file.ContentKey); delErr != nil {
			log.Printf("[Upload] Failed to clean up object %s: %v", file.ContentKey, delErr)
		}
		return nil, fmt.Errorf("failed to create file record: %w", err)
	}

	return file, nil
}

// Update перезаписывает имя и содержимое файла. Требуется активное право
// чтения: так проверял исходный сервис, право записи здесь не участвует.
func (s *FileService) Update(ctx context.Context, requesterGUID, fileGUID uuid.UUID, name string, content multipart.File) (*domain.File, error) {
	requester, err := s.userRepo.GetByGUID(ctx, requesterGUID)
	if err != nil {
		return nil, err
	}

	file, err := s.fileRepo.GetByGUID(ctx, fileGUID)
	if err != nil {
		return nil, err
	}

	ok, err := s.permissions.Can(ctx, requester.ID, file, domain.AccessRead)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrAccessDenied
	}

	if err := s.storage.UploadFile(file.ContentKey, content); err != nil {
		return nil, fmt.Errorf("failed to upload file content: %w", err)
	}

	file.Name = name
	if err := s.fileRepo.Update(ctx, file); err != nil {
		return nil, err
	}

	return file, nil
}

// Delete помечает файл удаленным. Содержимое и права не трогаются.
func (s *FileService) Delete(ctx context.Context, requesterGUID, fileGUID uuid.UUID) error {
	requester, err := s.userRepo.GetByGUID(ctx, requesterGUID)
	if err != nil {
		return err
	}

	file, err := s.fileRepo.GetByGUID(ctx, fileGUID)
	if err != nil {
		return err
	}

	ok, err := s.permissions.Can(ctx, requester.ID, file, domain.AccessDelete)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrAccessDenied
	}

	return s.fileRepo.SoftDelete(ctx, file.ID)
}

// List возвращает страницу из объединения собственных файлов и файлов
// с активным правом чтения. Нумерация страниц с нуля.
func (s *FileService) List(ctx context.Context, requesterGUID uuid.UUID, page, size int) (*domain.FilePage, error) {
	requester, err := s.userRepo.GetByGUID(ctx, requesterGUID)
	if err != nil {
		return nil, err
	}

	if size < 1 {
		size = 30
	}
	if page < 0 {
		page = 0
	}

	total, err := s.fileRepo.CountAccessible(ctx, requester.ID)
	if err != nil {
		return nil, err
	}

	files, err := s.fileRepo.ListAccessible(ctx, requester.ID, size, page*size)
	if err != nil {
		return nil, err
	}
	if files == nil {
		files = []domain.FileSummary{}
	}
	for i := range files {
		files[i].URL = s.storage.ObjectURL(files[i].ContentKey)
	}

	totalPages := (total + size - 1) / size

	return &domain.FilePage{
		Page:       page,
		Size:       size,
		TotalItems: total,
		TotalPages: totalPages,
		HasNext:    (page + 1) < totalPages,
		HasPrev:    page > 1,
		Data:       files,
	}, nil
}

// Details возвращает карточку файла со списками пользователей, имеющих
// активные права каждого вида. Отсутствие файла и отсутствие права чтения
// различаются: первое NotFound, второе Unauthorized.
func (s *FileService) Details(ctx context.Context, requesterGUID, fileGUID uuid.UUID) (*domain.FileDetails, error) {
	requester, err := s.userRepo.GetByGUID(ctx, requesterGUID)
	if err != nil {
		return nil, err
	}

	file, err := s.fileRepo.GetByGUID(ctx, fileGUID)
	if err != nil {
		return nil, err
	}

	ok, err := s.permissions.Can(ctx, requester.ID, file, domain.AccessRead)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrAccessDenied
	}

	ownerGUID, err := s.fileRepo.GetOwnerGUID(ctx, file.ID)
	if err != nil {
		return nil, err
	}

	details := &domain.FileDetails{
		GUID:      file.GUID,
		CreatedAt: file.CreatedAt,
		UpdatedAt: file.UpdatedAt,
		Name:      file.Name,
		OwnerGUID: ownerGUID,
		URL:       s.storage.ObjectURL(file.ContentKey),
	}

	for _, entry := range []struct {
		kind domain.AccessKind
		dst  *[]domain.UserSummary
	}{
		{domain.AccessRead, &details.UserReadAccess},
		{domain.AccessWrite, &details.UserWriteAccess},
		{domain.AccessDelete, &details.UserDeleteAccess},
	} {
		users, err := s.accessRepo.ListUsersByKind(ctx, file.ID, entry.kind)
		if err != nil {
			return nil, err
		}
		if users == nil {
			users = []domain.UserSummary{}
		}
		*entry.dst = users
	}

	return details, nil
}

// Download отдает содержимое файла из S3. Требует активное право чтения,
// как и просмотр карточки.
func (s *FileService) Download(ctx context.Context, requesterGUID, fileGUID uuid.UUID) (*domain.FileDownload, error) {
	requester, err := s.userRepo.GetByGUID(ctx, requesterGUID)
	if err != nil {
		return nil, err
	}

	file, err := s.fileRepo.GetByGUID(ctx, fileGUID)
	if err != nil {
		return nil, err
	}

	ok, err := s.permissions.Can(ctx, requester.ID, file, domain.AccessRead)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrAccessDenied
	}

	object, err := s.storage.GetObject(ctx, file.ContentKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get file content: %w", err)
	}

	return &domain.FileDownload{
		Name:          file.Name,
		ContentType:   object.ContentType(),
		ContentLength: object.ContentLength(),
		Body:          object,
	}, nil
}
