package finance

import (
	"github.com/inkhaus/backoffice-api/internal/domain"
)

// OrderTotals is the derived financial state of an order.
type OrderTotals struct {
	TotalAmount   float64
	AmountPaid    float64
	Balance       float64
	PaymentStatus domain.PaymentStatus
}

// ComputeOrderTotals recomputes an order's derived totals from its items and
// payments. The payment status is unpaid when the order totals zero or
// nothing has been paid, paid when payments cover the total, and
// partially_paid otherwise. The computation is idempotent: the same inputs
// always produce the same totals.
func ComputeOrderTotals(items []domain.OrderItem, payments []domain.OrderPayment) OrderTotals {
	var total, paid float64
	for _, item := range items {
		total = Round2(total + item.TotalAmount)
	}
	for _, p := range payments {
		paid = Round2(paid + p.Amount)
	}

	return OrderTotals{
		TotalAmount:   total,
		AmountPaid:    paid,
		Balance:       Round2(sub(total, paid)),
		PaymentStatus: PaymentStatusFor(total, paid),
	}
}

// PaymentStatusFor derives the tri-state payment status from a total and the
// amount paid against it.
func PaymentStatusFor(totalAmount, amountPaid float64) domain.PaymentStatus {
	switch {
	case totalAmount == 0 || amountPaid <= 0:
		return domain.PaymentStatusUnpaid
	case amountPaid >= totalAmount:
		return domain.PaymentStatusPaid
	default:
		return domain.PaymentStatusPartiallyPaid
	}
}
