package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/inkhaus/backoffice-api/internal/domain"
	"github.com/inkhaus/backoffice-api/internal/mapper"
	"github.com/inkhaus/backoffice-api/internal/repository"
	"github.com/inkhaus/backoffice-api/internal/storage"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ArtworkService manages print-ready artwork files attached to orders. File
// bytes go to the configured storage backend; metadata lives in the database.
type ArtworkService struct {
	artworkRepo *repository.ArtworkFileRepository
	orderRepo   *repository.OrderRepository
	store       storage.Storage
	logger      *zap.Logger
}

func NewArtworkService(
	artworkRepo *repository.ArtworkFileRepository,
	orderRepo *repository.OrderRepository,
	store storage.Storage,
	logger *zap.Logger,
) *ArtworkService {
	return &ArtworkService{
		artworkRepo: artworkRepo,
		orderRepo:   orderRepo,
		store:       store,
		logger:      logger,
	}
}

func (s *ArtworkService) Upload(ctx context.Context, orderID uuid.UUID, filename, contentType string, data io.Reader, uploadedBy string) (*domain.ArtworkFileDTO, error) {
	if _, err := s.orderRepo.GetByID(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	storagePath, size, err := s.store.Upload(ctx, filename, contentType, data)
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	file := &domain.ArtworkFile{
		OrderID:     orderID,
		Filename:    filename,
		ContentType: contentType,
		Size:        size,
		StoragePath: storagePath,
		UploadedBy:  uploadedBy,
	}
	if err := s.artworkRepo.Create(ctx, file); err != nil {
		// Orphaned blobs are worse than a failed upload; best effort cleanup.
		if delErr := s.store.Delete(ctx, storagePath); delErr != nil {
			s.logger.Warn("failed to clean up orphaned file",
				zap.String("storage_path", storagePath),
				zap.Error(delErr),
			)
		}
		return nil, fmt.Errorf("failed to record file: %w", err)
	}

	s.logger.Info("artwork uploaded",
		zap.String("file_id", file.ID.String()),
		zap.String("order_id", orderID.String()),
		zap.Int64("size", size),
	)

	dto := mapper.ToArtworkFileDTO(file)
	return &dto, nil
}

// Download returns the file metadata and a reader over its bytes. The caller
// owns closing the reader.
func (s *ArtworkService) Download(ctx context.Context, orderID, fileID uuid.UUID) (*domain.ArtworkFile, io.ReadCloser, error) {
	file, err := s.artworkRepo.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to get file: %w", err)
	}
	if file.OrderID != orderID {
		return nil, nil, ErrNotFound
	}

	reader, err := s.store.Download(ctx, file.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to download file: %w", err)
	}

	return file, reader, nil
}

func (s *ArtworkService) List(ctx context.Context, orderID uuid.UUID) ([]domain.ArtworkFileDTO, error) {
	if _, err := s.orderRepo.GetByID(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	files, err := s.artworkRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	dtos := make([]domain.ArtworkFileDTO, 0, len(files))
	for i := range files {
		dtos = append(dtos, mapper.ToArtworkFileDTO(&files[i]))
	}
	return dtos, nil
}

// Delete removes the metadata row first, then the stored bytes. A storage
// failure after the row is gone only leaves an unreferenced blob behind.
func (s *ArtworkService) Delete(ctx context.Context, orderID, fileID uuid.UUID) error {
	file, err := s.artworkRepo.GetByID(ctx, fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get file: %w", err)
	}
	if file.OrderID != orderID {
		return ErrNotFound
	}

	if err := s.artworkRepo.Delete(ctx, fileID); err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}

	if err := s.store.Delete(ctx, file.StoragePath); err != nil {
		s.logger.Warn("failed to delete stored file",
			zap.String("storage_path", file.StoragePath),
			zap.Error(err),
		)
	}

	s.logger.Info("artwork deleted",
		zap.String("file_id", fileID.String()),
		zap.String("order_id", orderID.String()),
	)
	return nil
}
