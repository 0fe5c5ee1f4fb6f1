package mapper

import (
	"time"

	"github.com/inkhaus/backoffice-api/internal/domain"
)

const (
	timestampLayout = "2006-01-02T15:04:05Z"
	dateLayout      = "2006-01-02"
)

func formatDatePtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func formatTimestampPtr(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timestampLayout)
}

// ToUserDTO converts User to UserDTO. The password and PIN hashes never leave
// the service layer.
func ToUserDTO(user *domain.User) domain.UserDTO {
	return domain.UserDTO{
		ID:          user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		Role:        user.Role,
		IsActive:    user.IsActive,
		LastLoginAt: formatTimestampPtr(user.LastLoginAt),
		CreatedAt:   user.CreatedAt.Format(timestampLayout),
	}
}

// ToClientDTO converts Client to ClientDTO
func ToClientDTO(client *domain.Client, ordersCount int) domain.ClientDTO {
	return domain.ClientDTO{
		ID:           client.ID,
		Name:         client.Name,
		BusinessName: client.BusinessName,
		Phone:        client.Phone,
		Email:        client.Email,
		Address:      client.Address,
		Notes:        client.Notes,
		IsActive:     client.IsActive,
		OrdersCount:  ordersCount,
		CreatedAt:    client.CreatedAt.Format(timestampLayout),
		UpdatedAt:    client.UpdatedAt.Format(timestampLayout),
	}
}

// ToOrderDTO converts Order to OrderDTO including loaded associations
func ToOrderDTO(order *domain.Order) domain.OrderDTO {
	dto := domain.OrderDTO{
		ID:            order.ID,
		ClientID:      order.ClientID,
		OrderDate:     order.OrderDate.Format(dateLayout),
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		TotalAmount:   order.TotalAmount,
		AmountPaid:    order.AmountPaid,
		Balance:       order.Balance,
		Notes:         order.Notes,
		CreatedAt:     order.CreatedAt.Format(timestampLayout),
		UpdatedAt:     order.UpdatedAt.Format(timestampLayout),
	}

	if order.Client != nil {
		dto.ClientName = order.Client.Name
	}

	for i := range order.Items {
		dto.Items = append(dto.Items, ToOrderItemDTO(&order.Items[i]))
	}
	for i := range order.Payments {
		dto.Payments = append(dto.Payments, ToOrderPaymentDTO(&order.Payments[i]))
	}
	for i := range order.ArtworkFiles {
		dto.ArtworkFiles = append(dto.ArtworkFiles, ToArtworkFileDTO(&order.ArtworkFiles[i]))
	}

	return dto
}

// ToOrderItemDTO converts OrderItem to OrderItemDTO
func ToOrderItemDTO(item *domain.OrderItem) domain.OrderItemDTO {
	return domain.OrderItemDTO{
		ID:           item.ID,
		ItemID:       item.ItemID,
		ItemName:     item.ItemName,
		CategoryID:   item.CategoryID,
		CategoryName: item.CategoryName,
		Quantity:     item.Quantity,
		UnitPrice:    item.UnitPrice,
		TotalAmount:  item.TotalAmount,
		ProfitAmount: item.ProfitAmount,
		LaborAmount:  item.LaborAmount,
	}
}

// ToOrderPaymentDTO converts OrderPayment to PaymentDTO
func ToOrderPaymentDTO(payment *domain.OrderPayment) domain.PaymentDTO {
	return domain.PaymentDTO{
		ID:            payment.ID,
		Amount:        payment.Amount,
		PaymentDate:   payment.PaymentDate.Format(dateLayout),
		PaymentMethod: payment.PaymentMethod,
		Notes:         payment.Notes,
	}
}

// ToArtworkFileDTO converts ArtworkFile to ArtworkFileDTO
func ToArtworkFileDTO(file *domain.ArtworkFile) domain.ArtworkFileDTO {
	return domain.ArtworkFileDTO{
		ID:          file.ID,
		OrderID:     file.OrderID,
		Filename:    file.Filename,
		ContentType: file.ContentType,
		Size:        file.Size,
		UploadedBy:  file.UploadedBy,
		CreatedAt:   file.CreatedAt.Format(timestampLayout),
	}
}

// ToMaterialPurchaseDTO converts MaterialPurchase to MaterialPurchaseDTO
func ToMaterialPurchaseDTO(purchase *domain.MaterialPurchase) domain.MaterialPurchaseDTO {
	dto := domain.MaterialPurchaseDTO{
		ID:            purchase.ID,
		SupplierName:  purchase.SupplierName,
		MaterialName:  purchase.MaterialName,
		PurchaseDate:  purchase.PurchaseDate.Format(dateLayout),
		Quantity:      purchase.Quantity,
		UnitPrice:     purchase.UnitPrice,
		TotalAmount:   purchase.TotalAmount,
		AmountPaid:    purchase.AmountPaid,
		Balance:       purchase.TotalAmount - purchase.AmountPaid,
		PaymentStatus: purchase.PaymentStatus,
		CreatedAt:     purchase.CreatedAt.Format(timestampLayout),
		UpdatedAt:     purchase.UpdatedAt.Format(timestampLayout),
	}

	for i := range purchase.Payments {
		p := &purchase.Payments[i]
		dto.Payments = append(dto.Payments, domain.PaymentDTO{
			ID:            p.ID,
			Amount:        p.Amount,
			PaymentDate:   p.PaymentDate.Format(dateLayout),
			PaymentMethod: p.PaymentMethod,
		})
	}
	for i := range purchase.Installments {
		dto.Installments = append(dto.Installments, ToMaterialInstallmentDTO(&purchase.Installments[i]))
	}
	for i := range purchase.Notes {
		n := &purchase.Notes[i]
		dto.Notes = append(dto.Notes, domain.MaterialNoteDTO{
			ID:         n.ID,
			Body:       n.Body,
			AuthorName: n.AuthorName,
			CreatedAt:  n.CreatedAt.Format(timestampLayout),
		})
	}

	return dto
}

// ToMaterialInstallmentDTO converts MaterialInstallment to its DTO
func ToMaterialInstallmentDTO(installment *domain.MaterialInstallment) domain.MaterialInstallmentDTO {
	return domain.MaterialInstallmentDTO{
		ID:                installment.ID,
		InstallmentNumber: installment.InstallmentNumber,
		Amount:            installment.Amount,
		DueDate:           installment.DueDate.Format(dateLayout),
		Status:            installment.Status,
	}
}

// ToExpenseDTO converts Expense to ExpenseDTO
func ToExpenseDTO(expense *domain.Expense) domain.ExpenseDTO {
	return domain.ExpenseDTO{
		ID:                 expense.ID,
		Category:           expense.Category,
		ItemName:           expense.ItemName,
		ExpenseDate:        expense.ExpenseDate.Format(dateLayout),
		TotalAmount:        expense.TotalAmount,
		AmountPaid:         expense.AmountPaid,
		PaymentStatus:      expense.PaymentStatus,
		IsRecurring:        expense.IsRecurring,
		Frequency:          expense.Frequency,
		DayOfMonth:         expense.DayOfMonth,
		RecurrenceEndDate:  formatDatePtr(expense.RecurrenceEndDate),
		NextOccurrenceDate: formatDatePtr(expense.NextOccurrenceDate),
		ReminderDays:       expense.ReminderDays,
		CreatedAt:          expense.CreatedAt.Format(timestampLayout),
		UpdatedAt:          expense.UpdatedAt.Format(timestampLayout),
	}
}

// ToOccurrenceDTO converts RecurringExpenseOccurrence to OccurrenceDTO
func ToOccurrenceDTO(occ *domain.RecurringExpenseOccurrence) domain.OccurrenceDTO {
	dto := domain.OccurrenceDTO{
		ID:              occ.ID,
		ParentExpenseID: occ.ParentExpenseID,
		OccurrenceDate:  occ.OccurrenceDate.Format(dateLayout),
		Status:          occ.Status,
		LinkedExpenseID: occ.LinkedExpenseID,
		CompletedDate:   formatDatePtr(occ.CompletedDate),
		CreatedAt:       occ.CreatedAt.Format(timestampLayout),
	}
	if occ.ParentExpense != nil {
		dto.ParentItemName = occ.ParentExpense.ItemName
	}
	return dto
}

// ToAccountDTO converts Account to AccountDTO with its computed balance
func ToAccountDTO(account *domain.Account, balance float64, transactionCount int64) domain.AccountDTO {
	return domain.AccountDTO{
		ID:               account.ID,
		Name:             account.Name,
		Type:             account.Type,
		Description:      account.Description,
		IsActive:         account.IsActive,
		Balance:          balance,
		TransactionCount: transactionCount,
		CreatedAt:        account.CreatedAt.Format(timestampLayout),
		UpdatedAt:        account.UpdatedAt.Format(timestampLayout),
	}
}

// ToTransactionDTO converts AccountTransaction to TransactionDTO
func ToTransactionDTO(txn *domain.AccountTransaction) domain.TransactionDTO {
	return domain.TransactionDTO{
		ID:              txn.ID,
		AccountID:       txn.AccountID,
		Amount:          txn.Amount,
		TransactionType: txn.TransactionType,
		SourceType:      txn.SourceType,
		SourceID:        txn.SourceID,
		Description:     txn.Description,
		CreatedAt:       txn.CreatedAt.Format(timestampLayout),
	}
}

// ToAllocationRuleDTO converts AllocationRule to AllocationRuleDTO
func ToAllocationRuleDTO(rule *domain.AllocationRule) domain.AllocationRuleDTO {
	dto := domain.AllocationRuleDTO{
		ID:         rule.ID,
		SourceType: rule.SourceType,
		AccountID:  rule.AccountID,
		Percentage: rule.Percentage,
		IsActive:   rule.IsActive,
		CreatedAt:  rule.CreatedAt.Format(timestampLayout),
		UpdatedAt:  rule.UpdatedAt.Format(timestampLayout),
	}
	if rule.Account != nil {
		dto.AccountName = rule.Account.Name
	}
	return dto
}

// ToProfitSettingsDTO converts ProfitSettings to ProfitSettingsDTO
func ToProfitSettingsDTO(settings *domain.ProfitSettings) domain.ProfitSettingsDTO {
	dto := domain.ProfitSettingsDTO{
		ID:                      settings.ID,
		Enabled:                 settings.Enabled,
		CalculationBasis:        settings.CalculationBasis,
		DefaultProfitPercentage: settings.DefaultProfitPercentage,
		IncludeLabor:            settings.IncludeLabor,
		LaborPercentage:         settings.LaborPercentage,
		UpdatedAt:               settings.UpdatedAt.Format(timestampLayout),
	}
	for i := range settings.Overrides {
		dto.Overrides = append(dto.Overrides, ToProfitOverrideDTO(&settings.Overrides[i]))
	}
	return dto
}

// ToProfitOverrideDTO converts ProfitOverride to ProfitOverrideDTO
func ToProfitOverrideDTO(override *domain.ProfitOverride) domain.ProfitOverrideDTO {
	return domain.ProfitOverrideDTO{
		ID:               override.ID,
		Type:             override.Type,
		TargetID:         override.TargetID,
		Name:             override.Name,
		ProfitPercentage: override.ProfitPercentage,
		LaborPercentage:  override.LaborPercentage,
	}
}

// ToNotificationDTO converts Notification to NotificationDTO
func ToNotificationDTO(n *domain.Notification) domain.NotificationDTO {
	return domain.NotificationDTO{
		ID:         n.ID,
		Type:       n.Type,
		Title:      n.Title,
		Message:    n.Message,
		Read:       n.Read,
		ReadAt:     formatTimestampPtr(n.ReadAt),
		EntityID:   n.EntityID,
		EntityType: n.EntityType,
		CreatedAt:  n.CreatedAt.Format(timestampLayout),
	}
}
