package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns the row ID. The Postgres schema also carries a
// gen_random_uuid() default in the migrations; it is kept out of the
// struct tag so AutoMigrate stays portable to sqlite.
func (b *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// UserRole represents the access level of a back-office user
type UserRole string

const (
	RoleAdmin   UserRole = "admin"
	RoleManager UserRole = "manager"
	RoleStaff   UserRole = "staff"
)

// IsValid checks if the UserRole is a valid enum value
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	}
	return false
}

// User represents a back-office user. Login is password-based; a second PIN
// verification step upgrades the session for sensitive operations.
type User struct {
	BaseModel
	Email        string     `gorm:"type:varchar(255);not null;uniqueIndex"`
	DisplayName  string     `gorm:"type:varchar(200);not null;column:display_name"`
	PasswordHash string     `gorm:"type:varchar(100);not null;column:password_hash"`
	PINHash      string     `gorm:"type:varchar(100);column:pin_hash"`
	Role         UserRole   `gorm:"type:varchar(20);not null;default:'staff';index"`
	IsActive     bool       `gorm:"not null;default:true;column:is_active"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
}

// Client represents a customer of the print shop
type Client struct {
	BaseModel
	Name         string  `gorm:"type:varchar(200);not null;index"`
	BusinessName string  `gorm:"type:varchar(200);column:business_name"`
	Phone        string  `gorm:"type:varchar(50)"`
	Email        string  `gorm:"type:varchar(255)"`
	Address      string  `gorm:"type:varchar(500)"`
	Notes        string  `gorm:"type:text"`
	IsActive     bool    `gorm:"not null;default:true;column:is_active"`
	Orders       []Order `gorm:"foreignKey:ClientID"`
}

// PaymentStatus is the tri-state payment status shared by orders, material
// purchases, and expenses.
type PaymentStatus string

const (
	PaymentStatusUnpaid        PaymentStatus = "unpaid"
	PaymentStatusPartiallyPaid PaymentStatus = "partially_paid"
	PaymentStatusPaid          PaymentStatus = "paid"
)

// OrderStatus represents the production status of an order
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusInProgress OrderStatus = "in_progress"
	OrderStatusCompleted  OrderStatus = "completed"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValid checks if the OrderStatus is a valid enum value
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusCompleted, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order represents a print job for a client.
// TotalAmount, AmountPaid, Balance, and PaymentStatus are derived from the
// order's items and payments and recomputed after every item or payment
// mutation.
type Order struct {
	BaseModel
	ClientID      uuid.UUID      `gorm:"type:uuid;not null;index;column:client_id"`
	Client        *Client        `gorm:"foreignKey:ClientID"`
	OrderDate     time.Time      `gorm:"type:date;not null;column:order_date"`
	Status        OrderStatus    `gorm:"type:varchar(50);not null;default:'pending';index"`
	PaymentStatus PaymentStatus  `gorm:"type:varchar(50);not null;default:'unpaid';column:payment_status;index"`
	TotalAmount   float64        `gorm:"type:decimal(15,2);not null;default:0;column:total_amount"`
	AmountPaid    float64        `gorm:"type:decimal(15,2);not null;default:0;column:amount_paid"`
	Balance       float64        `gorm:"type:decimal(15,2);not null;default:0"`
	Notes         string         `gorm:"type:text"`
	Items         []OrderItem    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Payments      []OrderPayment `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	ArtworkFiles  []ArtworkFile  `gorm:"foreignKey:OrderID"`
}

// OrderItem represents a line item on an order. ProfitAmount and LaborAmount
// are computed once at create/update time and stored, not recomputed lazily.
type OrderItem struct {
	BaseModel
	OrderID      uuid.UUID  `gorm:"type:uuid;not null;index;column:order_id"`
	Order        *Order     `gorm:"foreignKey:OrderID"`
	ItemID       *uuid.UUID `gorm:"type:uuid;column:item_id"`
	ItemName     string     `gorm:"type:varchar(200);not null;column:item_name"`
	CategoryID   *uuid.UUID `gorm:"type:uuid;column:category_id"`
	CategoryName string     `gorm:"type:varchar(200);column:category_name"`
	Quantity     float64    `gorm:"type:decimal(10,2);not null;default:1"`
	UnitPrice    float64    `gorm:"type:decimal(15,2);not null;column:unit_price"`
	TotalAmount  float64    `gorm:"type:decimal(15,2);not null;column:total_amount"`
	ProfitAmount float64    `gorm:"type:decimal(15,2);not null;default:0;column:profit_amount"`
	LaborAmount  float64    `gorm:"type:decimal(15,2);not null;default:0;column:labor_amount"`
}

// OrderPayment represents a payment received against an order.
// Payments are append/delete only; each mutation triggers a totals recompute.
type OrderPayment struct {
	BaseModel
	OrderID       uuid.UUID `gorm:"type:uuid;not null;index;column:order_id"`
	Order         *Order    `gorm:"foreignKey:OrderID"`
	Amount        float64   `gorm:"type:decimal(15,2);not null"`
	PaymentDate   time.Time `gorm:"type:date;not null;column:payment_date"`
	PaymentMethod string    `gorm:"type:varchar(50);not null;column:payment_method"`
	Notes         string    `gorm:"type:varchar(500)"`
}

// ArtworkFile represents a print-ready artwork file attached to an order
type ArtworkFile struct {
	BaseModel
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index;column:order_id"`
	Order       *Order    `gorm:"foreignKey:OrderID"`
	Filename    string    `gorm:"type:varchar(255);not null"`
	ContentType string    `gorm:"type:varchar(100);not null;column:content_type"`
	Size        int64     `gorm:"not null"`
	StoragePath string    `gorm:"type:varchar(500);not null;unique;column:storage_path"`
	UploadedBy  string    `gorm:"type:varchar(200);column:uploaded_by"`
}

// InstallmentFrequency represents the spacing of installment due dates
type InstallmentFrequency string

const (
	FrequencyWeekly    InstallmentFrequency = "weekly"
	FrequencyBiweekly  InstallmentFrequency = "biweekly"
	FrequencyMonthly   InstallmentFrequency = "monthly"
	FrequencyQuarterly InstallmentFrequency = "quarterly"
)

// InstallmentStatus represents the payment state of a single installment
type InstallmentStatus string

const (
	InstallmentStatusPending InstallmentStatus = "pending"
	InstallmentStatusPaid    InstallmentStatus = "paid"
	InstallmentStatusOverdue InstallmentStatus = "overdue"
)

// MaterialPurchase represents stock bought from a supplier.
// PaymentStatus is derived and recomputed whenever AmountPaid changes.
// Deleting a purchase cascades to its payments, installments, and notes.
type MaterialPurchase struct {
	BaseModel
	SupplierName  string                `gorm:"type:varchar(200);not null;index;column:supplier_name"`
	MaterialName  string                `gorm:"type:varchar(200);not null;column:material_name"`
	PurchaseDate  time.Time             `gorm:"type:date;not null;column:purchase_date"`
	Quantity      float64               `gorm:"type:decimal(10,2);not null"`
	UnitPrice     float64               `gorm:"type:decimal(15,2);not null;column:unit_price"`
	TotalAmount   float64               `gorm:"type:decimal(15,2);not null;column:total_amount"`
	AmountPaid    float64               `gorm:"type:decimal(15,2);not null;default:0;column:amount_paid"`
	PaymentStatus PaymentStatus         `gorm:"type:varchar(50);not null;default:'unpaid';column:payment_status;index"`
	Payments      []MaterialPayment     `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE"`
	Installments  []MaterialInstallment `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE"`
	Notes         []MaterialNote        `gorm:"foreignKey:PurchaseID;constraint:OnDelete:CASCADE"`
}

// MaterialPayment represents a payment made towards a material purchase
type MaterialPayment struct {
	BaseModel
	PurchaseID    uuid.UUID         `gorm:"type:uuid;not null;index;column:purchase_id"`
	Purchase      *MaterialPurchase `gorm:"foreignKey:PurchaseID"`
	Amount        float64           `gorm:"type:decimal(15,2);not null"`
	PaymentDate   time.Time         `gorm:"type:date;not null;column:payment_date"`
	PaymentMethod string            `gorm:"type:varchar(50);column:payment_method"`
}

// MaterialInstallment represents one scheduled installment of a purchase's
// outstanding balance. Generated as a batch; the sum of all installment
// amounts equals the outstanding balance at generation time exactly.
type MaterialInstallment struct {
	BaseModel
	PurchaseID        uuid.UUID         `gorm:"type:uuid;not null;index;column:purchase_id"`
	Purchase          *MaterialPurchase `gorm:"foreignKey:PurchaseID"`
	InstallmentNumber int               `gorm:"not null;column:installment_number"`
	Amount            float64           `gorm:"type:decimal(15,2);not null"`
	DueDate           time.Time         `gorm:"type:date;not null;column:due_date"`
	Status            InstallmentStatus `gorm:"type:varchar(50);not null;default:'pending'"`
}

// MaterialNote is a free-text note attached to a purchase
type MaterialNote struct {
	BaseModel
	PurchaseID uuid.UUID         `gorm:"type:uuid;not null;index;column:purchase_id"`
	Purchase   *MaterialPurchase `gorm:"foreignKey:PurchaseID"`
	Body       string            `gorm:"type:text;not null"`
	AuthorName string            `gorm:"type:varchar(200);column:author_name"`
}

// RecurrenceFrequency represents how often a recurring expense repeats
type RecurrenceFrequency string

const (
	RecurrenceWeekly    RecurrenceFrequency = "weekly"
	RecurrenceMonthly   RecurrenceFrequency = "monthly"
	RecurrenceQuarterly RecurrenceFrequency = "quarterly"
	RecurrenceYearly    RecurrenceFrequency = "yearly"
)

// IsValid checks if the RecurrenceFrequency is a valid enum value
func (f RecurrenceFrequency) IsValid() bool {
	switch f {
	case RecurrenceWeekly, RecurrenceMonthly, RecurrenceQuarterly, RecurrenceYearly:
		return true
	}
	return false
}

// Expense represents a business expense. When IsRecurring is set the row acts
// as a template from which RecurringExpenseOccurrence rows are generated.
type Expense struct {
	BaseModel
	Category           string               `gorm:"type:varchar(100);not null;index"`
	ItemName           string               `gorm:"type:varchar(200);not null;column:item_name"`
	ExpenseDate        time.Time            `gorm:"type:date;not null;column:expense_date"`
	TotalAmount        float64              `gorm:"type:decimal(15,2);not null;column:total_amount"`
	AmountPaid         float64              `gorm:"type:decimal(15,2);not null;default:0;column:amount_paid"`
	PaymentStatus      PaymentStatus        `gorm:"type:varchar(50);not null;default:'unpaid';column:payment_status"`
	IsRecurring        bool                 `gorm:"not null;default:false;column:is_recurring;index"`
	Frequency          *RecurrenceFrequency `gorm:"type:varchar(50)"`
	DayOfMonth         *int                 `gorm:"column:day_of_month"`
	RecurrenceEndDate  *time.Time           `gorm:"type:date;column:recurrence_end_date"`
	NextOccurrenceDate *time.Time           `gorm:"type:date;column:next_occurrence_date;index"`
	ReminderDays       *int                 `gorm:"column:reminder_days"`
}

// OccurrenceStatus represents the state of one recurring expense occurrence
type OccurrenceStatus string

const (
	OccurrenceStatusPending   OccurrenceStatus = "pending"
	OccurrenceStatusCompleted OccurrenceStatus = "completed"
	OccurrenceStatusSkipped   OccurrenceStatus = "skipped"
)

// RecurringExpenseOccurrence is one concrete instance of a recurring expense
// template, due on a specific date. Completing an occurrence creates a paid
// Expense row and links it back; completed and skipped are terminal states.
type RecurringExpenseOccurrence struct {
	BaseModel
	ParentExpenseID uuid.UUID        `gorm:"type:uuid;not null;index;column:parent_expense_id"`
	ParentExpense   *Expense         `gorm:"foreignKey:ParentExpenseID"`
	OccurrenceDate  time.Time        `gorm:"type:date;not null;column:occurrence_date"`
	Status          OccurrenceStatus `gorm:"type:varchar(50);not null;default:'pending';index"`
	LinkedExpenseID *uuid.UUID       `gorm:"type:uuid;column:linked_expense_id"`
	CompletedDate   *time.Time       `gorm:"type:date;column:completed_date"`
}

// AccountType classifies a ledger account
type AccountType string

const (
	AccountTypeProfit  AccountType = "profit"
	AccountTypeLabor   AccountType = "labor"
	AccountTypeExpense AccountType = "expense"
	AccountTypeRevenue AccountType = "revenue"
	AccountTypeCustom  AccountType = "custom"
)

// IsValid checks if the AccountType is a valid enum value
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeProfit, AccountTypeLabor, AccountTypeExpense, AccountTypeRevenue, AccountTypeCustom:
		return true
	}
	return false
}

// Account is a ledger account money can be allocated into.
// An account cannot be deleted while transactions reference it.
type Account struct {
	BaseModel
	Name         string               `gorm:"type:varchar(200);not null;uniqueIndex"`
	Type         AccountType          `gorm:"type:varchar(50);not null;default:'custom'"`
	Description  string               `gorm:"type:varchar(500)"`
	IsActive     bool                 `gorm:"not null;default:true;column:is_active"`
	Transactions []AccountTransaction `gorm:"foreignKey:AccountID"`
}

// SourceType identifies where allocated money originates
type SourceType string

const (
	SourceProfit       SourceType = "profit"
	SourceLabor        SourceType = "labor"
	SourceOrderPayment SourceType = "order_payment"
	SourceExpense      SourceType = "expense"
)

// IsValid checks if the SourceType is a valid enum value
func (s SourceType) IsValid() bool {
	switch s {
	case SourceProfit, SourceLabor, SourceOrderPayment, SourceExpense:
		return true
	}
	return false
}

// TransactionType marks a ledger entry as money in or money out
type TransactionType string

const (
	TransactionCredit TransactionType = "credit"
	TransactionDebit  TransactionType = "debit"
)

// AccountTransaction is an append-only ledger entry. There is no update
// endpoint; rows are immutable once created.
type AccountTransaction struct {
	ID              uuid.UUID       `gorm:"type:uuid;primary_key"`
	AccountID       uuid.UUID       `gorm:"type:uuid;not null;index;column:account_id"`
	Account         *Account        `gorm:"foreignKey:AccountID"`
	Amount          float64         `gorm:"type:decimal(15,2);not null"`
	TransactionType TransactionType `gorm:"type:varchar(20);not null;column:transaction_type"`
	SourceType      SourceType      `gorm:"type:varchar(50);not null;column:source_type;index"`
	SourceID        *uuid.UUID      `gorm:"type:uuid;column:source_id"`
	Description     string          `gorm:"type:varchar(500)"`
	CreatedAt       time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

// BeforeCreate assigns an ID when the database default is unavailable
func (t *AccountTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// AllocationRule is a configured percentage split of incoming money to a
// ledger account. For a given source type the active rule percentages must
// never sum above 100; this is enforced at rule create/update time only.
type AllocationRule struct {
	BaseModel
	SourceType SourceType `gorm:"type:varchar(50);not null;column:source_type;index"`
	AccountID  uuid.UUID  `gorm:"type:uuid;not null;index;column:account_id"`
	Account    *Account   `gorm:"foreignKey:AccountID"`
	Percentage float64    `gorm:"type:decimal(5,2);not null"`
	IsActive   bool       `gorm:"not null;default:true;column:is_active"`
}

// CalculationBasis selects which amount profit/labor percentages apply to
type CalculationBasis string

const (
	BasisUnitPrice CalculationBasis = "unit_price"
	BasisTotalCost CalculationBasis = "total_cost"
)

// IsValid checks if the CalculationBasis is a valid enum value
func (b CalculationBasis) IsValid() bool {
	return b == BasisUnitPrice || b == BasisTotalCost
}

// ProfitSettings is the shop-wide profit configuration, stored as a single
// row and loaded explicitly per operation.
type ProfitSettings struct {
	BaseModel
	Enabled                 bool             `gorm:"not null;default:false"`
	CalculationBasis        CalculationBasis `gorm:"type:varchar(50);not null;default:'unit_price';column:calculation_basis"`
	DefaultProfitPercentage float64          `gorm:"type:decimal(5,2);not null;default:0;column:default_profit_percentage"`
	IncludeLabor            bool             `gorm:"not null;default:false;column:include_labor"`
	LaborPercentage         float64          `gorm:"type:decimal(5,2);not null;default:0;column:labor_percentage"`
	Overrides               []ProfitOverride `gorm:"foreignKey:SettingsID;constraint:OnDelete:CASCADE"`
}

// OverrideType scopes a profit override to an item or a category
type OverrideType string

const (
	OverrideItem     OverrideType = "item"
	OverrideCategory OverrideType = "category"
)

// ProfitOverride overrides the global profit/labor percentages for a specific
// item or category. Lookup precedence: item-by-id, item-by-name,
// category-by-id, category-by-name, then the global default.
type ProfitOverride struct {
	BaseModel
	SettingsID       uuid.UUID    `gorm:"type:uuid;not null;index;column:settings_id"`
	Type             OverrideType `gorm:"type:varchar(20);not null"`
	TargetID         *uuid.UUID   `gorm:"type:uuid;column:target_id"`
	Name             string       `gorm:"type:varchar(200);not null"`
	ProfitPercentage float64      `gorm:"type:decimal(5,2);not null;column:profit_percentage"`
	LaborPercentage  float64      `gorm:"type:decimal(5,2);not null;column:labor_percentage"`
}

// NotificationType represents the type of notification
type NotificationType string

const (
	NotificationTypeExpenseReminder NotificationType = "expense_reminder"
	NotificationTypeOccurrenceDue   NotificationType = "occurrence_due"
	NotificationTypeInstallmentDue  NotificationType = "installment_due"
	NotificationTypeOrderPaid       NotificationType = "order_paid"
)

// Notification represents a user notification
type Notification struct {
	BaseModel
	UserID     uuid.UUID `gorm:"type:uuid;not null;index;column:user_id"`
	Type       string    `gorm:"type:varchar(50);not null"`
	Title      string    `gorm:"type:varchar(200);not null"`
	Message    string    `gorm:"type:varchar(500);not null"`
	Read       bool      `gorm:"column:read;not null;default:false;index"`
	ReadAt     *time.Time
	EntityID   *uuid.UUID `gorm:"type:uuid;column:entity_id"`
	EntityType string     `gorm:"type:varchar(50);column:entity_type"`
}
