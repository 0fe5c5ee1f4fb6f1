package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/inkhaus/backoffice-api/internal/domain"
	"github.com/inkhaus/backoffice-api/internal/finance"
	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *OrderRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	var order domain.Order
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Items").
		Preload("Payments").
		Preload("ArtworkFiles").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *OrderRepository) Update(ctx context.Context, order *domain.Order) error {
	return r.db.WithContext(ctx).Save(order).Error
}

func (r *OrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Select("Items", "Payments").Delete(&domain.Order{BaseModel: domain.BaseModel{ID: id}}).Error
}

// OrderFilter narrows List results
type OrderFilter struct {
	ClientID      *uuid.UUID
	Status        *domain.OrderStatus
	PaymentStatus *domain.PaymentStatus
	From          *time.Time
	To            *time.Time
	Search        string
}

func (r *OrderRepository) List(ctx context.Context, page, pageSize int, filter OrderFilter) ([]domain.Order, int64, error) {
	var orders []domain.Order
	var total int64

	query := r.db.WithContext(ctx).Model(&domain.Order{})

	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.PaymentStatus != nil {
		query = query.Where("payment_status = ?", *filter.PaymentStatus)
	}
	if filter.From != nil {
		query = query.Where("order_date >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("order_date <= ?", *filter.To)
	}
	if filter.Search != "" {
		searchPattern := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(notes) LIKE ?", searchPattern)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Client").
		Offset(offset).Limit(pageSize).
		Order("order_date DESC, created_at DESC").
		Find(&orders).Error

	return orders, total, err
}

// RecomputeTotals reloads the order's items and payments and writes the
// derived total, paid, balance, and payment status columns in one update.
func (r *OrderRepository) RecomputeTotals(ctx context.Context, orderID uuid.UUID) (*finance.OrderTotals, error) {
	var items []domain.OrderItem
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Find(&items).Error; err != nil {
		return nil, err
	}

	var payments []domain.OrderPayment
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).Find(&payments).Error; err != nil {
		return nil, err
	}

	totals := finance.ComputeOrderTotals(items, payments)

	err := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", orderID).
		Updates(map[string]interface{}{
			"total_amount":   totals.TotalAmount,
			"amount_paid":    totals.AmountPaid,
			"balance":        totals.Balance,
			"payment_status": totals.PaymentStatus,
		}).Error
	if err != nil {
		return nil, err
	}

	return &totals, nil
}

// Item operations

func (r *OrderRepository) AddItem(ctx context.Context, item *domain.OrderItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *OrderRepository) GetItem(ctx context.Context, itemID uuid.UUID) (*domain.OrderItem, error) {
	var item domain.OrderItem
	err := r.db.WithContext(ctx).Where("id = ?", itemID).First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *OrderRepository) UpdateItem(ctx context.Context, item *domain.OrderItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *OrderRepository) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.OrderItem{}, "id = ?", itemID).Error
}

// Payment operations

func (r *OrderRepository) AddPayment(ctx context.Context, payment *domain.OrderPayment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *OrderRepository) GetPayment(ctx context.Context, paymentID uuid.UUID) (*domain.OrderPayment, error) {
	var payment domain.OrderPayment
	err := r.db.WithContext(ctx).Where("id = ?", paymentID).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *OrderRepository) DeletePayment(ctx context.Context, paymentID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&domain.OrderPayment{}, "id = ?", paymentID).Error
}
