package finance

import (
	"sort"

	"github.com/google/uuid"
	"github.com/inkhaus/backoffice-api/internal/domain"
)

// Allocation is one account's share of an allocated amount.
type Allocation struct {
	AccountID uuid.UUID
	RuleID    uuid.UUID
	Amount    float64
}

// TotalActivePercentage sums the percentages of the active rules in the set.
func TotalActivePercentage(rules []domain.AllocationRule) float64 {
	var total float64
	for _, r := range rules {
		if r.IsActive {
			total += r.Percentage
		}
	}
	return total
}

// ComputeAllocations distributes amount across the given rules according to
// their percentages. Inactive rules are skipped. Rules are processed in
// percentage-descending order with rule ID as a stable tie-break. Each share
// is rounded to the currency minor unit; any rounding drift between the sum
// of shares and amount * totalPct/100 is absorbed by the largest share so
// the allocated total is exact.
//
// An empty rule set, or one whose active percentages sum to zero, yields an
// empty slice. The caller is trusted to have enforced the <=100% invariant
// at rule-configuration time; no check is repeated here.
func ComputeAllocations(amount float64, rules []domain.AllocationRule) []Allocation {
	active := make([]domain.AllocationRule, 0, len(rules))
	for _, r := range rules {
		if r.IsActive && r.Percentage > 0 {
			active = append(active, r)
		}
	}
	if len(active) == 0 {
		return []Allocation{}
	}

	sort.SliceStable(active, func(i, j int) bool {
		if active[i].Percentage != active[j].Percentage {
			return active[i].Percentage > active[j].Percentage
		}
		return active[i].ID.String() < active[j].ID.String()
	})

	allocations := make([]Allocation, 0, len(active))
	var allocated float64
	var totalPct float64
	for _, r := range active {
		share := mulPercent(amount, r.Percentage)
		allocations = append(allocations, Allocation{
			AccountID: r.AccountID,
			RuleID:    r.ID,
			Amount:    share,
		})
		allocated = Round2(allocated + share)
		totalPct += r.Percentage
	}

	// The largest share absorbs rounding drift. Shares are sorted
	// percentage-descending, so that is index 0.
	expected := mulPercent(amount, totalPct)
	if drift := Round2(sub(expected, allocated)); drift != 0 {
		allocations[0].Amount = Round2(allocations[0].Amount + drift)
	}

	return allocations
}

// TransactionTypeFor returns the ledger transaction type for allocations of
// the given source: money flowing in (profit, labor, order payments) is a
// credit; expense allocations are debits.
func TransactionTypeFor(sourceType domain.SourceType) domain.TransactionType {
	if sourceType == domain.SourceExpense {
		return domain.TransactionDebit
	}
	return domain.TransactionCredit
}
