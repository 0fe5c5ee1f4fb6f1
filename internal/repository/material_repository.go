package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/inkhaus/backoffice-api/internal/domain"
	"gorm.io/gorm"
)

type MaterialRepository struct {
	db *gorm.DB
}

func NewMaterialRepository(db *gorm.DB) *MaterialRepository {
	return &MaterialRepository{db: db}
}

func (r *MaterialRepository) Create(ctx context.Context, purchase *domain.MaterialPurchase) error {
	return r.db.WithContext(ctx).Create(purchase).Error
}

func (r *MaterialRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.MaterialPurchase, error) {
	var purchase domain.MaterialPurchase
	err := r.db.WithContext(ctx).
		Preload("Payments").
		Preload("Installments", func(db *gorm.DB) *gorm.DB {
			return db.Order("installment_number")
		}).
		Preload("Notes").
		Where("id = ?", id).
		First(&purchase).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

func (r *MaterialRepository) Update(ctx context.Context, purchase *domain.MaterialPurchase) error {
	return r.db.WithContext(ctx).Save(purchase).Error
}

func (r *MaterialRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Select("Payments", "Installments", "Notes").
		Delete(&domain.MaterialPurchase{BaseModel: domain.BaseModel{ID: id}}).Error
}

// MaterialFilter narrows List results
type MaterialFilter struct {
	PaymentStatus *domain.PaymentStatus
	Search        string
}

func (r *MaterialRepository) List(ctx context.Context, page, pageSize int, filter MaterialFilter) ([]domain.MaterialPurchase, int64, error) {
	var purchases []domain.MaterialPurchase
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.MaterialPurchase{})

	if filter.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *filter.PaymentStatus)
	}
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(supplier_name) LIKE ? OR LOWER(material_name) LIKE ?",
			searchPattern, searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Offset(offset).Limit(pageSize).Order("purchase_date DESC").Find(&purchases).Error

	return purchases, total, err
}

// UpdatePaymentState writes the derived amount-paid and payment-status columns
func (r *MaterialRepository) UpdatePaymentState(ctx context.Context, purchaseID uuid.UUID, amountPaid float64, status domain.PaymentStatus) error {
	return r.db.WithContext(ctx).Model(&domain.MaterialPurchase{}).
		Where("id = ?", purchaseID).
		Updates(map[string]interface{}{
			"amount_paid":    amountPaid,
			"payment_status": status,
		}).Error
}

// Payment operations

func (r *MaterialRepository) AddPayment(ctx context.Context, payment *domain.MaterialPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *MaterialRepository) GetPayment(ctx context.Context, paymentID uuid.UUID) (*domain.MaterialPayment, error) {
	var payment domain.MaterialPayment
	err := r.db.WithContext(ctx).Where("id = ?", paymentID).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *MaterialRepository) DeletePayment(ctx context.Context, paymentID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.MaterialPayment{}, "id = ?", paymentID).Error
}

func (r *MaterialRepository) SumPayments(ctx context.Context, purchaseID uuid.UUID) (float64, error) {
	var sum float64
	err := r.db.WithContext(ctx).Model(&domain.MaterialPayment{}).
		Where("purchase_id = ?", purchaseID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&sum).Error
	return sum, err
}

// Installment operations

// ReplaceInstallments drops the purchase's pending installments and inserts
// the new plan in one transaction. Paid installments are left untouched.
func (r *MaterialRepository) ReplaceInstallments(ctx context.Context, purchaseID uuid.UUID, installments []domain.MaterialInstallment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("purchase_id = ? AND status = ?", purchaseID, domain.InstallmentStatusPending).
			Delete(&domain.MaterialInstallment{}).Error; err != nil {
			return err
		}
		if len(installments) == 0 {
			return nil
		}
		return tx.Create(&installments).Error
	})
}

func (r *MaterialRepository) GetInstallment(ctx context.Context, installmentID uuid.UUID) (*domain.MaterialInstallment, error) {
	var installment domain.MaterialInstallment
	err := r.db.WithContext(ctx).Where("id = ?", installmentID).First(&installment).Error
	if err != nil {
		return nil, err
	}
	return &installment, nil
}

func (r *MaterialRepository) UpdateInstallment(ctx context.Context, installment *domain.MaterialInstallment) error {
	return r.db.WithContext(ctx).Save(installment).Error
}

// Note operations

func (r *MaterialRepository) AddNote(ctx context.Context, note *domain.MaterialNote) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *MaterialRepository) DeleteNote(ctx context.Context, noteID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.MaterialNote{}, "id = ?", noteID).Error
}
