package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/inkhaus/backoffice-api/internal/domain"
	"github.com/inkhaus/backoffice-api/internal/mapper"
	"github.com/inkhaus/backoffice-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SettingsService manages the shop-wide profit configuration and its
// per-item and per-category overrides.
type SettingsService struct {
	settingsRepo *repository.ProfitSettingsRepository
	logger       *zap.Logger
}

func NewSettingsService(settingsRepo *repository.ProfitSettingsRepository, logger *zap.Logger) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

func (s *SettingsService) Get(ctx context.Context) (*domain.ProfitSettingsDTO, error) {
	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load profit settings: %w", err)
	}

	dto := mapper.ToProfitSettingsDTO(settings)
	return &dto, nil
}

func (s *SettingsService) Update(ctx context.Context, req *domain.UpdateProfitSettingsRequest) (*domain.ProfitSettingsDTO, error) {
	if !req.CalculationBasis.IsValid() {
		return nil, fmt.Errorf("%w: unknown calculation basis %q", ErrInvalidInput, req.CalculationBasis)
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load profit settings: %w", err)
	}

	settings.Enabled = req.Enabled
	settings.CalculationBasis = req.CalculationBasis
	settings.DefaultProfitPercentage = req.DefaultProfitPercentage
	settings.IncludeLabor = req.IncludeLabor
	settings.LaborPercentage = req.LaborPercentage

	if err := s.settingsRepo.Update(ctx, settings); err != nil {
		return nil, fmt.Errorf("failed to update profit settings: %w", err)
	}

	s.logger.Info("profit settings updated",
		zap.Bool("enabled", settings.Enabled),
		zap.String("basis", string(settings.CalculationBasis)),
	)

	return s.Get(ctx)
}

func (s *SettingsService) AddOverride(ctx context.Context, req *domain.CreateProfitOverrideRequest) (*domain.ProfitOverrideDTO, error) {
	if req.Type != domain.OverrideItem && req.Type != domain.OverrideCategory {
		return nil, fmt.Errorf("%w: unknown override type %q", ErrInvalidInput, req.Type)
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load profit settings: %w", err)
	}

	override := &domain.ProfitOverride{
		SettingsID:       settings.ID,
		Type:             req.Type,
		TargetID:         req.TargetID,
		Name:             req.Name,
		ProfitPercentage: req.ProfitPercentage,
		LaborPercentage:  req.LaborPercentage,
	}

	if err := s.settingsRepo.AddOverride(ctx, override); err != nil {
		return nil, fmt.Errorf("failed to add override: %w", err)
	}

	dto := mapper.ToProfitOverrideDTO(override)
	return &dto, nil
}

func (s *SettingsService) UpdateOverride(ctx context.Context, id uuid.UUID, req *domain.CreateProfitOverrideRequest) (*domain.ProfitOverrideDTO, error) {
	if req.Type != domain.OverrideItem && req.Type != domain.OverrideCategory {
		return nil, fmt.Errorf("%w: unknown override type %q", ErrInvalidInput, req.Type)
	}

	override, err := s.settingsRepo.GetOverride(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get override: %w", err)
	}

	override.Type = req.Type
	override.TargetID = req.TargetID
	override.Name = req.Name
	override.ProfitPercentage = req.ProfitPercentage
	override.LaborPercentage = req.LaborPercentage

	if err := s.settingsRepo.UpdateOverride(ctx, override); err != nil {
		return nil, fmt.Errorf("failed to update override: %w", err)
	}

	dto := mapper.ToProfitOverrideDTO(override)
	return &dto, nil
}

func (s *SettingsService) DeleteOverride(ctx context.Context, id uuid.UUID) error {
	if _, err := s.settingsRepo.GetOverride(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get override: %w", err)
	}

	if err := s.settingsRepo.DeleteOverride(ctx, id); err != nil {
		return fmt.Errorf("failed to delete override: %w", err)
	}
	return nil
}
