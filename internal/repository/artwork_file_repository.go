package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/inkhaus/backoffice-api/internal/domain"
	"gorm.io/gorm"
)

type ArtworkFileRepository struct {
	db *gorm.DB
}

func NewArtworkFileRepository(db *gorm.DB) *ArtworkFileRepository {
	return &ArtworkFileRepository{db: db}
}

func (r *ArtworkFileRepository) Create(ctx context.Context, file *domain.ArtworkFile) error {
	return r.db.WithContext(ctx).Create(file).Error
}

func (r *ArtworkFileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.ArtworkFile, error) {
	var file domain.ArtworkFile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&file).Error
	if err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *ArtworkFileRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]domain.ArtworkFile, error) {
	var files []domain.ArtworkFile
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Order("created_at DESC").Find(&files).Error
	return files, err
}

func (r *ArtworkFileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.ArtworkFile{}, "id = ?", id).Error
}
