package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/inkhaus/backoffice-api/internal/domain"
	"github.com/inkhaus/backoffice-api/internal/legacy"
	"github.com/inkhaus/backoffice-api/internal/repository"
	"go.uber.org/zap"
)

// LegacyImportService pulls clients and completed orders out of the old POS
// database and recreates them here. Imports are idempotent: each imported row
// carries a reference marker and is skipped on re-run.
type LegacyImportService struct {
	legacyClient *legacy.Client
	clientRepo   *repository.ClientRepository
	orderRepo    *repository.OrderRepository
	logger       *zap.Logger
}

func NewLegacyImportService(
	legacyClient *legacy.Client,
	clientRepo *repository.ClientRepository,
	orderRepo *repository.OrderRepository,
	logger *zap.Logger,
) *LegacyImportService {
	return &LegacyImportService{
		legacyClient: legacyClient,
		clientRepo:   clientRepo,
		orderRepo:    orderRepo,
		logger:       logger,
	}
}

// Enabled reports whether a legacy POS connection is configured
func (s *LegacyImportService) Enabled() bool {
	return s.legacyClient != nil && s.legacyClient.IsEnabled()
}

// ImportClients copies POS customers created since the given time. Customers
// already present (matched by name and phone) are skipped.
func (s *LegacyImportService) ImportClients(ctx context.Context, since time.Time) (*domain.BatchReport, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("%w: legacy POS connection is not configured", ErrInvalidInput)
	}

	rows, err := s.legacyClient.FetchClients(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch legacy clients: %w", err)
	}

	report := &domain.BatchReport{Processed: len(rows)}
	for _, row := range rows {
		if err := s.importClient(ctx, row); err != nil {
			report.Failed++
			report.Errors = append(report.Errors, domain.BatchItemError{
				ID:     uuid.Nil,
				Reason: fmt.Sprintf("client %s: %v", row.ExternalID, err),
			})
			continue
		}
		report.Succeeded++
	}

	s.logger.Info("legacy client import finished",
		zap.Int("processed", report.Processed),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

// ImportOrders copies completed POS orders since the given time. Each order
// becomes one order with a single line item and, when money was received, a
// single payment.
func (s *LegacyImportService) ImportOrders(ctx context.Context, since time.Time) (*domain.BatchReport, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("%w: legacy POS connection is not configured", ErrInvalidInput)
	}

	rows, err := s.legacyClient.FetchOrders(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch legacy orders: %w", err)
	}

	clientRows, err := s.legacyClient.FetchClients(ctx, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch legacy clients: %w", err)
	}
	clientNames := make(map[string]legacy.LegacyClient, len(clientRows))
	for _, c := range clientRows {
		clientNames[c.ExternalID] = c
	}

	report := &domain.BatchReport{Processed: len(rows)}
	for _, row := range rows {
		if err := s.importOrder(ctx, row, clientNames); err != nil {
			report.Failed++
			report.Errors = append(report.Errors, domain.BatchItemError{
				ID:     uuid.Nil,
				Reason: fmt.Sprintf("order %s: %v", row.ExternalID, err),
			})
			continue
		}
		report.Succeeded++
	}

	s.logger.Info("legacy order import finished",
		zap.Int("processed", report.Processed),
		zap.Int("succeeded", report.Succeeded),
		zap.Int("failed", report.Failed),
	)
	return report, nil
}

func (s *LegacyImportService) importClient(ctx context.Context, row legacy.LegacyClient) error {
	if _, err := s.findClient(ctx, row.Name, row.Phone); err == nil {
		return nil
	}

	client := &domain.Client{
		Name:     row.Name,
		Phone:    row.Phone,
		Email:    row.Email,
		Notes:    legacyRef("client", row.ExternalID),
		IsActive: true,
	}
	if err := s.clientRepo.Create(ctx, client); err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	return nil
}

func (s *LegacyImportService) importOrder(ctx context.Context, row legacy.LegacyOrder, clientNames map[string]legacy.LegacyClient) error {
	ref := legacyRef("order", row.ExternalID)

	_, total, err := s.orderRepo.List(ctx, 1, 1, repository.OrderFilter{Search: ref})
	if err != nil {
		return fmt.Errorf("failed to check for existing import: %w", err)
	}
	if total > 0 {
		return nil
	}

	legacyOwner, ok := clientNames[row.ClientID]
	if !ok {
		return fmt.Errorf("unknown legacy client %s", row.ClientID)
	}
	client, err := s.findClient(ctx, legacyOwner.Name, legacyOwner.Phone)
	if err != nil {
		return fmt.Errorf("client %q not imported yet", legacyOwner.Name)
	}

	itemName := row.Description
	if itemName == "" {
		itemName = "Legacy POS order"
	}

	order := &domain.Order{
		ClientID:      client.ID,
		OrderDate:     row.OrderDate,
		Status:        domain.OrderStatusDelivered,
		PaymentStatus: domain.PaymentStatusUnpaid,
		Notes:         ref,
		Items: []domain.OrderItem{{
			ItemName:    itemName,
			Quantity:    1,
			UnitPrice:   row.TotalAmount,
			TotalAmount: row.TotalAmount,
		}},
	}
	if row.AmountPaid > 0 {
		order.Payments = []domain.OrderPayment{{
			Amount:        row.AmountPaid,
			PaymentDate:   row.OrderDate,
			PaymentMethod: "legacy_import",
		}}
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	if _, err := s.orderRepo.RecomputeTotals(ctx, order.ID); err != nil {
		return fmt.Errorf("failed to recompute totals: %w", err)
	}
	return nil
}

func (s *LegacyImportService) findClient(ctx context.Context, name, phone string) (*domain.Client, error) {
	clients, _, err := s.clientRepo.List(ctx, 1, 50, name)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		if clients[i].Name == name && clients[i].Phone == phone {
			return &clients[i], nil
		}
	}
	return nil, ErrNotFound
}

func legacyRef(kind, externalID string) string {
	return fmt.Sprintf("[legacy %s %s]", kind, externalID)
}
