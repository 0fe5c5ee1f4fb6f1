package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/inkhaus/backoffice-api/internal/domain"
	"gorm.io/gorm"
)

type ProfitSettingsRepository struct {
	db *gorm.DB
}

func NewProfitSettingsRepository(db *gorm.DB) *ProfitSettingsRepository {
	return &ProfitSettingsRepository{db: db}
}

// Get returns the singleton settings row, creating a disabled default row on
// first access.
func (r *ProfitSettingsRepository) Get(ctx context.Context) (*domain.ProfitSettings, error) {
	var settings domain.ProfitSettings
	err := r.db.WithContext(ctx).Preload("Overrides").First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = domain.ProfitSettings{
			Enabled:          false,
			CalculationBasis: domain.BasisUnitPrice,
		}
		if err := r.db.WithContext(ctx).Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (r *ProfitSettingsRepository) Update(ctx context.Context, settings *domain.ProfitSettings) error {
	return r.db.WithContext(ctx).Save(settings).Error
}

// Override operations

func (r *ProfitSettingsRepository) AddOverride(ctx context.Context, override *domain.ProfitOverride) error {
	return r.db.WithContext(ctx).Create(override).Error
}

func (r *ProfitSettingsRepository) GetOverride(ctx context.Context, id uuid.UUID) (*domain.ProfitOverride, error) {
	var override domain.ProfitOverride
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&override).Error
	if err != nil {
		return nil, err
	}
	return &override, nil
}

func (r *ProfitSettingsRepository) UpdateOverride(ctx context.Context, override *domain.ProfitOverride) error {
	return r.db.WithContext(ctx).Save(override).Error
}

func (r *ProfitSettingsRepository) DeleteOverride(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.ProfitOverride{}, "id = ?", id).Error
}
