package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/inkhaus/backoffice-api/internal/domain"
	"github.com/inkhaus/backoffice-api/internal/finance"
	"github.com/inkhaus/backoffice-api/internal/mapper"
	"github.com/inkhaus/backoffice-api/internal/repository"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MaterialService struct {
	materialRepo *repository.MaterialRepository
	logger       *zap.Logger
}

func NewMaterialService(materialRepo *repository.MaterialRepository, logger *zap.Logger) *MaterialService {
	return &MaterialService{
		materialRepo: materialRepo,
		logger:       logger,
	}
}

func (s *MaterialService) Create(ctx context.Context, req *domain.CreateMaterialPurchaseRequest) (*domain.MaterialPurchaseDTO, error) {
	purchase := &domain.MaterialPurchase{
		SupplierName:  req.SupplierName,
		MaterialName:  req.MaterialName,
		PurchaseDate:  req.PurchaseDate,
		Quantity:      req.Quantity,
		UnitPrice:     req.UnitPrice,
		TotalAmount:   finance.Round2(req.Quantity * req.UnitPrice),
		PaymentStatus: domain.PaymentStatusUnpaid,
	}

	if err := s.materialRepo.Create(ctx, purchase); err != nil {
		return nil, fmt.Errorf("failed to create material purchase: %w", err)
	}

	s.logger.Info("material purchase created",
		zap.String("purchase_id", purchase.ID.String()),
		zap.String("supplier", purchase.SupplierName),
	)

	dto := mapper.ToMaterialPurchaseDTO(purchase)
	return &dto, nil
}

func (s *MaterialService) Get(ctx context.Context, id uuid.UUID) (*domain.MaterialPurchaseDTO, error) {
	purchase, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get material purchase: %w", err)
	}

	dto := mapper.ToMaterialPurchaseDTO(purchase)
	return &dto, nil
}

// Update changes the purchase head fields and recomputes the total and the
// derived payment status against the payments already recorded
func (s *MaterialService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateMaterialPurchaseRequest) (*domain.MaterialPurchaseDTO, error) {
	purchase, err := s.materialRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get material purchase: %w", err)
	}

	purchase.SupplierName = req.SupplierName
	purchase.MaterialName = req.MaterialName
	purchase.PurchaseDate = req.PurchaseDate
	purchase.Quantity = req.Quantity
	purchase.UnitPrice = req.UnitPrice
	purchase.TotalAmount = finance.Round2(req.Quantity * req.UnitPrice)
	purchase.PaymentStatus = finance.PaymentStatusFor(purchase.TotalAmount, purchase.AmountPaid)

	if err := s.materialRepo.Update(ctx, purchase); err != nil {
		return nil, fmt.Errorf("failed to update material purchase: %w", err)
	}

	return s.Get(ctx, id)
}

func (s *MaterialService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.materialRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get material purchase: %w", err)
	}

	if err := s.materialRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete material purchase: %w", err)
	}

	s.logger.Info("material purchase deleted", zap.String("purchase_id", id.String()))
	return nil
}

func (s *MaterialService) List(ctx context.Context, page, pageSize int, filter repository.MaterialFilter) (*domain.PaginatedResponse, error) {
	purchases, total, err := s.materialRepo.List(ctx, page, pageSize, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list material purchases: %w", err)
	}

	dtos := make([]domain.MaterialPurchaseDTO, 0, len(purchases))
	for i := range purchases {
		dtos = append(dtos, mapper.ToMaterialPurchaseDTO(&purchases[i]))
	}

	return paginate(dtos, total, page, pageSize), nil
}

// Payment operations. AmountPaid and PaymentStatus are derived from the
// payment rows and rewritten after every payment mutation.

func (s *MaterialService) AddPayment(ctx context.Context, purchaseID uuid.UUID, req *domain.CreatePaymentRequest) (*domain.MaterialPurchaseDTO, error) {
	if _, err := s.materialRepo.GetByID(ctx, purchaseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get material purchase: %w", err)
	}

	payment := &domain.MaterialPayment{
		PurchaseID:    purchaseID,
		Amount:        req.Amount,
		PaymentDate:   req.PaymentDate,
		PaymentMethod: req.PaymentMethod,
	}
	if err := s.materialRepo.AddPayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to add payment: %w", err)
	}

	if err := s.recomputePaymentState(ctx, purchaseID); err != nil {
		return nil, err
	}

	return s.Get(ctx, purchaseID)
}

func (s *MaterialService) DeletePayment(ctx context.Context, purchaseID, paymentID uuid.UUID) (*domain.MaterialPurchaseDTO, error) {
	payment, err := s.materialRepo.GetPayment(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	if payment.PurchaseID != purchaseID {
		return nil, ErrNotFound
	}

	if err := s.materialRepo.DeletePayment(ctx, paymentID); err != nil {
		return nil, fmt.Errorf("failed to delete payment: %w", err)
	}

	if err := s.recomputePaymentState(ctx, purchaseID); err != nil {
		return nil, err
	}

	return s.Get(ctx, purchaseID)
}

func (s *MaterialService) recomputePaymentState(ctx context.Context, purchaseID uuid.UUID) error {
	purchase, err := s.materialRepo.GetByID(ctx, purchaseID)
	if err != nil {
		return fmt.Errorf("failed to get material purchase: %w", err)
	}

	amountPaid, err := s.materialRepo.SumPayments(ctx, purchaseID)
	if err != nil {
		return fmt.Errorf("failed to sum payments: %w", err)
	}

	status := finance.PaymentStatusFor(purchase.TotalAmount, amountPaid)
	if err := s.materialRepo.UpdatePaymentState(ctx, purchaseID, amountPaid, status); err != nil {
		return fmt.Errorf("failed to update payment state: %w", err)
	}
	return nil
}

// Installment operations

// GenerateInstallments replaces the pending installment plan with a new one
// covering the purchase's current outstanding balance
func (s *MaterialService) GenerateInstallments(ctx context.Context, purchaseID uuid.UUID, req *domain.GenerateInstallmentsRequest) (*domain.MaterialPurchaseDTO, error) {
	purchase, err := s.materialRepo.GetByID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get material purchase: %w", err)
	}

	outstanding := finance.Round2(purchase.TotalAmount - purchase.AmountPaid)
	plan, err := finance.GeneratePlan(outstanding, req.TotalInstallments, req.Frequency, req.FirstPaymentDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	installments := make([]domain.MaterialInstallment, 0, len(plan))
	for _, p := range plan {
		installments = append(installments, domain.MaterialInstallment{
			PurchaseID:        purchaseID,
			InstallmentNumber: p.InstallmentNumber,
			Amount:            p.Amount,
			DueDate:           p.DueDate,
			Status:            domain.InstallmentStatusPending,
		})
	}

	if err := s.materialRepo.ReplaceInstallments(ctx, purchaseID, installments); err != nil {
		return nil, fmt.Errorf("failed to replace installments: %w", err)
	}

	s.logger.Info("installment plan generated",
		zap.String("purchase_id", purchaseID.String()),
		zap.Int("installments", len(installments)),
	)

	return s.Get(ctx, purchaseID)
}

func (s *MaterialService) UpdateInstallmentStatus(ctx context.Context, purchaseID, installmentID uuid.UUID, status domain.InstallmentStatus) (*domain.MaterialPurchaseDTO, error) {
	switch status {
	case domain.InstallmentStatusPending, domain.InstallmentStatusPaid, domain.InstallmentStatusOverdue:
	default:
		return nil, fmt.Errorf("%w: unknown installment status %q", ErrInvalidInput, status)
	}

	installment, err := s.materialRepo.GetInstallment(ctx, installmentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get installment: %w", err)
	}
	if installment.PurchaseID != purchaseID {
		return nil, ErrNotFound
	}

	installment.Status = status
	if err := s.materialRepo.UpdateInstallment(ctx, installment); err != nil {
		return nil, fmt.Errorf("failed to update installment: %w", err)
	}

	return s.Get(ctx, purchaseID)
}

// Note operations

func (s *MaterialService) AddNote(ctx context.Context, purchaseID uuid.UUID, req *domain.CreateMaterialNoteRequest, authorName string) (*domain.MaterialPurchaseDTO, error) {
	if _, err := s.materialRepo.GetByID(ctx, purchaseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get material purchase: %w", err)
	}

	note := &domain.MaterialNote{
		PurchaseID: purchaseID,
		Body:       req.Body,
		AuthorName: authorName,
	}
	if err := s.materialRepo.AddNote(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to add note: %w", err)
	}

	return s.Get(ctx, purchaseID)
}

func (s *MaterialService) DeleteNote(ctx context.Context, purchaseID, noteID uuid.UUID) error {
	purchase, err := s.materialRepo.GetByID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get material purchase: %w", err)
	}

	found := false
	for _, note := range purchase.Notes {
		if note.ID == noteID {
			found = true
			break
		}
	}
	if !found {
		return ErrNotFound
	}

	if err := s.materialRepo.DeleteNote(ctx, noteID); err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}
