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

type OrderService struct {
	orderRepo     *repository.OrderRepository
	clientRepo    *repository.ClientRepository
	settingsRepo  *repository.ProfitSettingsRepository
	notifications *NotificationService
	logger        *zap.Logger
}

func NewOrderService(
	orderRepo *repository.OrderRepository,
	clientRepo *repository.ClientRepository,
	settingsRepo *repository.ProfitSettingsRepository,
	notifications *NotificationService,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		orderRepo:     orderRepo,
		clientRepo:    clientRepo,
		settingsRepo:  settingsRepo,
		notifications: notifications,
		logger:        logger,
	}
}

func (s *OrderService) Create(ctx context.Context, req *domain.CreateOrderRequest) (*domain.OrderDTO, error) {
	if _, err := s.clientRepo.GetByID(ctx, req.ClientID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: client not found", ErrInvalidInput)
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	status := req.Status
	if status == "" {
		status = domain.OrderStatusPending
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrInvalidInput, status)
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load profit settings: %w", err)
	}

	order := &domain.Order{
		ClientID:      req.ClientID,
		OrderDate:     req.OrderDate,
		Status:        status,
		PaymentStatus: domain.PaymentStatusUnpaid,
		Notes:         req.Notes,
	}
	for _, itemReq := range req.Items {
		order.Items = append(order.Items, buildOrderItem(uuid.Nil, &itemReq, settings))
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if len(order.Items) > 0 {
		s.recomputeTotals(ctx, order.ID)
	}

	s.logger.Info("order created",
		zap.String("order_id", order.ID.String()),
		zap.String("client_id", order.ClientID.String()),
		zap.Int("items", len(order.Items)),
	)

	return s.Get(ctx, order.ID)
}

func (s *OrderService) Get(ctx context.Context, id uuid.UUID) (*domain.OrderDTO, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	dto := mapper.ToOrderDTO(order)
	return &dto, nil
}

func (s *OrderService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateOrderRequest) (*domain.OrderDTO, error) {
	if !req.Status.IsValid() {
		return nil, fmt.Errorf("%w: unknown order status %q", ErrInvalidInput, req.Status)
	}

	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	order.OrderDate = req.OrderDate
	order.Status = req.Status
	order.Notes = req.Notes

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	return s.Get(ctx, id)
}

func (s *OrderService) Delete(ctx context.Context, id uuid.UUID) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to get order: %w", err)
	}

	if err := s.orderRepo.Delete(ctx, order.ID); err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}

	s.logger.Info("order deleted", zap.String("order_id", id.String()))
	return nil
}

// Recalculate rebuilds the order's stored totals from its items and payments.
// Normally every mutation keeps them current; this is the manual repair path.
func (s *OrderService) Recalculate(ctx context.Context, id uuid.UUID) (*domain.OrderDTO, error) {
	if _, err := s.orderRepo.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	if _, err := s.orderRepo.RecomputeTotals(ctx, id); err != nil {
		return nil, fmt.Errorf("failed to recompute order totals: %w", err)
	}

	return s.Get(ctx, id)
}

func (s *OrderService) List(ctx context.Context, page, pageSize int, filter repository.OrderFilter) (*domain.PaginatedResponse, error) {
	orders, total, err := s.orderRepo.List(ctx, page, pageSize, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	dtos := make([]domain.OrderDTO, 0, len(orders))
	for i := range orders {
		dtos = append(dtos, mapper.ToOrderDTO(&orders[i]))
	}

	return paginate(dtos, total, page, pageSize), nil
}

// Item operations. Every item mutation recomputes the order's stored totals
// best-effort: the item write is what the caller asked for, the totals are
// derived state.

func (s *OrderService) AddItem(ctx context.Context, orderID uuid.UUID, req *domain.CreateOrderItemRequest) (*domain.OrderDTO, error) {
	if _, err := s.orderRepo.GetByID(ctx, orderID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load profit settings: %w", err)
	}

	item := buildOrderItem(orderID, req, settings)
	if err := s.orderRepo.AddItem(ctx, &item); err != nil {
		return nil, fmt.Errorf("failed to add item: %w", err)
	}

	s.recomputeTotals(ctx, orderID)

	return s.Get(ctx, orderID)
}

func (s *OrderService) UpdateItem(ctx context.Context, orderID, itemID uuid.UUID, req *domain.CreateOrderItemRequest) (*domain.OrderDTO, error) {
	item, err := s.orderRepo.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if item.OrderID != orderID {
		return nil, ErrNotFound
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load profit settings: %w", err)
	}

	updated := buildOrderItem(orderID, req, settings)
	updated.BaseModel = item.BaseModel

	if err := s.orderRepo.UpdateItem(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	s.recomputeTotals(ctx, orderID)

	return s.Get(ctx, orderID)
}

func (s *OrderService) DeleteItem(ctx context.Context, orderID, itemID uuid.UUID) (*domain.OrderDTO, error) {
	item, err := s.orderRepo.GetItem(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	if item.OrderID != orderID {
		return nil, ErrNotFound
	}

	if err := s.orderRepo.DeleteItem(ctx, itemID); err != nil {
		return nil, fmt.Errorf("failed to delete item: %w", err)
	}

	s.recomputeTotals(ctx, orderID)

	return s.Get(ctx, orderID)
}

// Payment operations. Payments are append/delete only; every mutation
// recomputes totals, and a transition into the paid state notifies all
// active users.

func (s *OrderService) AddPayment(ctx context.Context, orderID uuid.UUID, req *domain.CreatePaymentRequest) (*domain.OrderDTO, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	wasPaid := order.PaymentStatus == domain.PaymentStatusPaid

	payment := &domain.OrderPayment{
		OrderID:       orderID,
		Amount:        req.Amount,
		PaymentDate:   req.PaymentDate,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}
	if err := s.orderRepo.AddPayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to add payment: %w", err)
	}

	totals := s.recomputeTotals(ctx, orderID)
	if totals.Ok() && !wasPaid && totals.Value.PaymentStatus == domain.PaymentStatusPaid {
		s.notifyOrderPaid(ctx, order)
	}

	return s.Get(ctx, orderID)
}

func (s *OrderService) DeletePayment(ctx context.Context, orderID, paymentID uuid.UUID) (*domain.OrderDTO, error) {
	payment, err := s.orderRepo.GetPayment(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	if payment.OrderID != orderID {
		return nil, ErrNotFound
	}

	if err := s.orderRepo.DeletePayment(ctx, paymentID); err != nil {
		return nil, fmt.Errorf("failed to delete payment: %w", err)
	}

	s.recomputeTotals(ctx, orderID)

	return s.Get(ctx, orderID)
}

// recomputeTotals refreshes the order's stored totals after a mutation. The
// mutation itself has already persisted, so a totals failure is logged and
// the stale row left for the recalculate endpoint instead of failing the
// caller.
func (s *OrderService) recomputeTotals(ctx context.Context, orderID uuid.UUID) finance.BestEffort[*finance.OrderTotals] {
	totals, err := s.orderRepo.RecomputeTotals(ctx, orderID)
	if err != nil {
		s.logger.Error("failed to recompute order totals",
			zap.String("order_id", orderID.String()),
			zap.Error(err),
		)
		return finance.Fail[*finance.OrderTotals](err)
	}
	return finance.Succeed(totals)
}

// notifyOrderPaid fans out a notification; failures are logged and swallowed
// so a notification problem never fails the payment itself
func (s *OrderService) notifyOrderPaid(ctx context.Context, order *domain.Order) {
	clientName := ""
	if order.Client != nil {
		clientName = order.Client.Name
	}
	orderID := order.ID
	err := s.notifications.NotifyAll(ctx, domain.Notification{
		Type:       string(domain.NotificationTypeOrderPaid),
		Title:      "Order fully paid",
		Message:    fmt.Sprintf("Order for %s has been fully paid", clientName),
		EntityID:   &orderID,
		EntityType: "order",
	})
	if err != nil {
		s.logger.Warn("failed to send order paid notification",
			zap.String("order_id", order.ID.String()),
			zap.Error(err),
		)
	}
}

// buildOrderItem computes the line total and the stored profit/labor amounts
func buildOrderItem(orderID uuid.UUID, req *domain.CreateOrderItemRequest, settings *domain.ProfitSettings) domain.OrderItem {
	totalAmount := finance.Round2(req.Quantity * req.UnitPrice)

	result := finance.ComputeProfitAndLabor(finance.LineItem{
		ItemID:       req.ItemID,
		ItemName:     req.ItemName,
		CategoryID:   req.CategoryID,
		CategoryName: req.CategoryName,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		TotalAmount:  totalAmount,
	}, settings)

	return domain.OrderItem{
		OrderID:      orderID,
		ItemID:       req.ItemID,
		ItemName:     req.ItemName,
		CategoryID:   req.CategoryID,
		CategoryName: req.CategoryName,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		TotalAmount:  totalAmount,
		ProfitAmount: result.ProfitAmount,
		LaborAmount:  result.LaborAmount,
	}
}
