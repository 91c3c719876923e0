package services

import (
	"context"
	"errors"
	"io"
	"path"

	"go.uber.org/zap"

	"maintenance-system/internal/dto"
	"maintenance-system/internal/entities"
	"maintenance-system/internal/repositories"
	"maintenance-system/pkg/constants"
	apperrors "maintenance-system/pkg/errors"
	"maintenance-system/pkg/filestorage"
	"maintenance-system/pkg/utils"
)

type AttachmentServiceInterface interface {
	Upload(ctx context.Context, requestID uint64, file io.Reader, fileName string, uploadedBy uint64) (*dto.AttachmentDTO, error)
	ListByRequest(ctx context.Context, requestID uint64) ([]dto.AttachmentDTO, error)
	Delete(ctx context.Context, id uint64) error
}

type AttachmentService struct {
	attachmentRepo repositories.AttachmentRepositoryInterface
	requestRepo    repositories.RequestRepositoryInterface
	fileStorage    filestorage.FileStorageInterface
	logger         *zap.Logger
}

func NewAttachmentService(
	attachmentRepo repositories.AttachmentRepositoryInterface,
	requestRepo repositories.RequestRepositoryInterface,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) AttachmentServiceInterface {
	return &AttachmentService{
		attachmentRepo: attachmentRepo,
		requestRepo:    requestRepo,
		fileStorage:    fileStorage,
		logger:         logger,
	}
}

func (s *AttachmentService) Upload(ctx context.Context, requestID uint64, file io.Reader, fileName string, uploadedBy uint64) (*dto.AttachmentDTO, error) {
	if _, err := s.requestRepo.FindRequest(ctx, requestID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("заявка не найдена")
		}
		return nil, err
	}

	filePath, err := s.fileStorage.Save(file, fileName, constants.UploadContextRequestAttachment.String())
	if err != nil {
		return nil, err
	}

	newID, err := s.attachmentRepo.Create(ctx, entities.Attachment{
		RequestID:  requestID,
		FilePath:   filePath,
		FileName:   fileName,
		UploadedBy: &uploadedBy,
	})
	if err != nil {
		// Строка не записалась, файл осиротел. Убираем его сразу.
		if cleanupErr := s.fileStorage.Delete(filePath); cleanupErr != nil {
			s.logger.Warn("Не удалось удалить осиротевший файл",
				zap.String("path", filePath), zap.Error(cleanupErr))
		}
		return nil, err
	}

	attachment, err := s.attachmentRepo.FindByID(ctx, newID)
	if err != nil {
		return nil, err
	}
	return toAttachmentDTO(attachment), nil
}

func (s *AttachmentService) ListByRequest(ctx context.Context, requestID uint64) ([]dto.AttachmentDTO, error) {
	attachments, err := s.attachmentRepo.FindByRequestID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	result := make([]dto.AttachmentDTO, 0, len(attachments))
	for i := range attachments {
		result = append(result, *toAttachmentDTO(&attachments[i]))
	}
	return result, nil
}

func (s *AttachmentService) Delete(ctx context.Context, id uint64) error {
	attachment, err := s.attachmentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewNotFoundError("вложение не найдено")
		}
		return err
	}

	if err := s.attachmentRepo.Delete(ctx, id); err != nil {
		return err
	}

	if err := s.fileStorage.Delete(attachment.FilePath); err != nil {
		s.logger.Warn("Не удалось удалить файл вложения",
			zap.String("path", attachment.FilePath), zap.Error(err))
	}
	return nil
}

func toAttachmentDTO(attachment *entities.Attachment) *dto.AttachmentDTO {
	var uploader *string
	if attachment.UploadedBy != nil {
		uploader = utils.ToPtr(utils.PtrToString(attachment.UploadedBy))
	}
	return &dto.AttachmentDTO{
		ID:        attachment.ID,
		RequestID: attachment.RequestID,
		FileName:  attachment.FileName,
		FileURL:   path.Join("/uploads", attachment.FilePath),
		CreatedAt: attachment.CreatedAt.Local().Format("2006-01-02 15:04:05"),
		Uploader:  uploader,
	}
}
