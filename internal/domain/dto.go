package domain

import (
	"time"

	"github.com/google/uuid"
)

// DTOs for API responses

type UserDTO struct {
	ID          uuid.UUID `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"displayName"`
	Role        UserRole  `json:"role"`
	IsActive    bool      `json:"isActive"`
	LastLoginAt string    `json:"lastLoginAt,omitempty"` // ISO 8601
	CreatedAt   string    `json:"createdAt"`             // ISO 8601
}

type ClientDTO struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	BusinessName string    `json:"businessName,omitempty"`
	Phone        string    `json:"phone,omitempty"`
	Email        string    `json:"email,omitempty"`
	Address      string    `json:"address,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	IsActive     bool      `json:"isActive"`
	OrdersCount  int       `json:"ordersCount,omitempty"`
	CreatedAt    string    `json:"createdAt"` // ISO 8601
	UpdatedAt    string    `json:"updatedAt"` // ISO 8601
}

type OrderDTO struct {
	ID            uuid.UUID        `json:"id"`
	ClientID      uuid.UUID        `json:"clientId"`
	ClientName    string           `json:"clientName,omitempty"`
	OrderDate     string           `json:"orderDate"` // ISO 8601 date
	Status        OrderStatus      `json:"status"`
	PaymentStatus PaymentStatus    `json:"paymentStatus"`
	TotalAmount   float64          `json:"totalAmount"`
	AmountPaid    float64          `json:"amountPaid"`
	Balance       float64          `json:"balance"`
	Notes         string           `json:"notes,omitempty"`
	Items         []OrderItemDTO   `json:"items,omitempty"`
	Payments      []PaymentDTO     `json:"payments,omitempty"`
	ArtworkFiles  []ArtworkFileDTO `json:"artworkFiles,omitempty"`
	CreatedAt     string           `json:"createdAt"` // ISO 8601
	UpdatedAt     string           `json:"updatedAt"` // ISO 8601
}

type OrderItemDTO struct {
	ID           uuid.UUID  `json:"id"`
	ItemID       *uuid.UUID `json:"itemId,omitempty"`
	ItemName     string     `json:"itemName"`
	CategoryID   *uuid.UUID `json:"categoryId,omitempty"`
	CategoryName string     `json:"categoryName,omitempty"`
	Quantity     float64    `json:"quantity"`
	UnitPrice    float64    `json:"unitPrice"`
	TotalAmount  float64    `json:"totalAmount"`
	ProfitAmount float64    `json:"profitAmount"`
	LaborAmount  float64    `json:"laborAmount"`
}

// PaymentDTO is shared by order and material purchase payments
type PaymentDTO struct {
	ID            uuid.UUID `json:"id"`
	Amount        float64   `json:"amount"`
	PaymentDate   string    `json:"paymentDate"` // ISO 8601 date
	PaymentMethod string    `json:"paymentMethod,omitempty"`
	Notes         string    `json:"notes,omitempty"`
}

type ArtworkFileDTO struct {
	ID          uuid.UUID `json:"id"`
	OrderID     uuid.UUID `json:"orderId"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	UploadedBy  string    `json:"uploadedBy,omitempty"`
	CreatedAt   string    `json:"createdAt"` // ISO 8601
}

type MaterialPurchaseDTO struct {
	ID            uuid.UUID                `json:"id"`
	SupplierName  string                   `json:"supplierName"`
	MaterialName  string                   `json:"materialName"`
	PurchaseDate  string                   `json:"purchaseDate"` // ISO 8601 date
	Quantity      float64                  `json:"quantity"`
	UnitPrice     float64                  `json:"unitPrice"`
	TotalAmount   float64                  `json:"totalAmount"`
	AmountPaid    float64                  `json:"amountPaid"`
	Balance       float64                  `json:"balance"`
	PaymentStatus PaymentStatus            `json:"paymentStatus"`
	Payments      []PaymentDTO             `json:"payments,omitempty"`
	Installments  []MaterialInstallmentDTO `json:"installments,omitempty"`
	Notes         []MaterialNoteDTO        `json:"notes,omitempty"`
	CreatedAt     string                   `json:"createdAt"` // ISO 8601
	UpdatedAt     string                   `json:"updatedAt"` // ISO 8601
}

type MaterialInstallmentDTO struct {
	ID                uuid.UUID         `json:"id"`
	InstallmentNumber int               `json:"installmentNumber"`
	Amount            float64           `json:"amount"`
	DueDate           string            `json:"dueDate"` // ISO 8601 date
	Status            InstallmentStatus `json:"status"`
}

type MaterialNoteDTO struct {
	ID         uuid.UUID `json:"id"`
	Body       string    `json:"body"`
	AuthorName string    `json:"authorName,omitempty"`
	CreatedAt  string    `json:"createdAt"` // ISO 8601
}

type ExpenseDTO struct {
	ID                 uuid.UUID            `json:"id"`
	Category           string               `json:"category"`
	ItemName           string               `json:"itemName"`
	ExpenseDate        string               `json:"expenseDate"` // ISO 8601 date
	TotalAmount        float64              `json:"totalAmount"`
	AmountPaid         float64              `json:"amountPaid"`
	PaymentStatus      PaymentStatus        `json:"paymentStatus"`
	IsRecurring        bool                 `json:"isRecurring"`
	Frequency          *RecurrenceFrequency `json:"frequency,omitempty"`
	DayOfMonth         *int                 `json:"dayOfMonth,omitempty"`
	RecurrenceEndDate  string               `json:"recurrenceEndDate,omitempty"`  // ISO 8601 date
	NextOccurrenceDate string               `json:"nextOccurrenceDate,omitempty"` // ISO 8601 date
	ReminderDays       *int                 `json:"reminderDays,omitempty"`
	CreatedAt          string               `json:"createdAt"` // ISO 8601
	UpdatedAt          string               `json:"updatedAt"` // ISO 8601
}

type OccurrenceDTO struct {
	ID              uuid.UUID        `json:"id"`
	ParentExpenseID uuid.UUID        `json:"parentExpenseId"`
	ParentItemName  string           `json:"parentItemName,omitempty"`
	OccurrenceDate  string           `json:"occurrenceDate"` // ISO 8601 date
	Status          OccurrenceStatus `json:"status"`
	LinkedExpenseID *uuid.UUID       `json:"linkedExpenseId,omitempty"`
	CompletedDate   string           `json:"completedDate,omitempty"` // ISO 8601 date
	CreatedAt       string           `json:"createdAt"`               // ISO 8601
}

type AccountDTO struct {
	ID               uuid.UUID   `json:"id"`
	Name             string      `json:"name"`
	Type             AccountType `json:"type"`
	Description      string      `json:"description,omitempty"`
	IsActive         bool        `json:"isActive"`
	Balance          float64     `json:"balance"`
	TransactionCount int64       `json:"transactionCount,omitempty"`
	CreatedAt        string      `json:"createdAt"` // ISO 8601
	UpdatedAt        string      `json:"updatedAt"` // ISO 8601
}

type TransactionDTO struct {
	ID              uuid.UUID       `json:"id"`
	AccountID       uuid.UUID       `json:"accountId"`
	Amount          float64         `json:"amount"`
	TransactionType TransactionType `json:"transactionType"`
	SourceType      SourceType      `json:"sourceType"`
	SourceID        *uuid.UUID      `json:"sourceId,omitempty"`
	Description     string          `json:"description,omitempty"`
	CreatedAt       string          `json:"createdAt"` // ISO 8601
}

type AllocationRuleDTO struct {
	ID          uuid.UUID  `json:"id"`
	SourceType  SourceType `json:"sourceType"`
	AccountID   uuid.UUID  `json:"accountId"`
	AccountName string     `json:"accountName,omitempty"`
	Percentage  float64    `json:"percentage"`
	IsActive    bool       `json:"isActive"`
	CreatedAt   string     `json:"createdAt"` // ISO 8601
	UpdatedAt   string     `json:"updatedAt"` // ISO 8601
}

// AllocationPreviewDTO is one computed share of an allocation run
type AllocationPreviewDTO struct {
	AccountID   uuid.UUID `json:"accountId"`
	AccountName string    `json:"accountName,omitempty"`
	RuleID      uuid.UUID `json:"ruleId"`
	Amount      float64   `json:"amount"`
}

type ProfitSettingsDTO struct {
	ID                      uuid.UUID           `json:"id"`
	Enabled                 bool                `json:"enabled"`
	CalculationBasis        CalculationBasis    `json:"calculationBasis"`
	DefaultProfitPercentage float64             `json:"defaultProfitPercentage"`
	IncludeLabor            bool                `json:"includeLabor"`
	LaborPercentage         float64             `json:"laborPercentage"`
	Overrides               []ProfitOverrideDTO `json:"overrides,omitempty"`
	UpdatedAt               string              `json:"updatedAt"` // ISO 8601
}

type ProfitOverrideDTO struct {
	ID               uuid.UUID    `json:"id"`
	Type             OverrideType `json:"type"`
	TargetID         *uuid.UUID   `json:"targetId,omitempty"`
	Name             string       `json:"name"`
	ProfitPercentage float64      `json:"profitPercentage"`
	LaborPercentage  float64      `json:"laborPercentage"`
}

type NotificationDTO struct {
	ID         uuid.UUID  `json:"id"`
	Type       string     `json:"type"`
	Title      string     `json:"title"`
	Message    string     `json:"message"`
	Read       bool       `json:"read"`
	ReadAt     string     `json:"readAt,omitempty"` // ISO 8601
	EntityID   *uuid.UUID `json:"entityId,omitempty"`
	EntityType string     `json:"entityType,omitempty"`
	CreatedAt  string     `json:"createdAt"` // ISO 8601
}

// PaginatedResponse wraps list responses
type PaginatedResponse struct {
	Data       interface{} `json:"data"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"pageSize"`
	TotalPages int         `json:"totalPages"`
}

// APIResponse wraps single-object responses
type APIResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
}

// BatchItemError is one failed item in a batch operation
type BatchItemError struct {
	ID     uuid.UUID `json:"id"`
	Reason string    `json:"reason"`
}

// BatchReport summarizes a batch run where individual items may fail without
// failing the whole operation
type BatchReport struct {
	Processed int              `json:"processed"`
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
	Errors    []BatchItemError `json:"errors,omitempty"`
}

// Auth requests and responses

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginResponse struct {
	Token       string  `json:"token"`
	PINRequired bool    `json:"pinRequired"`
	User        UserDTO `json:"user"`
}

type VerifyPINRequest struct {
	PIN string `json:"pin" validate:"required,min=4,max=12"`
}

type CreateUserRequest struct {
	Email       string   `json:"email" validate:"required,email"`
	DisplayName string   `json:"displayName" validate:"required,max=200"`
	Password    string   `json:"password" validate:"required,min=8"`
	PIN         string   `json:"pin,omitempty" validate:"omitempty,min=4,max=12"`
	Role        UserRole `json:"role" validate:"required"`
}

type UpdateUserRequest struct {
	DisplayName string   `json:"displayName" validate:"required,max=200"`
	Role        UserRole `json:"role" validate:"required"`
	IsActive    bool     `json:"isActive"`
}

type ChangePINRequest struct {
	Password string `json:"password" validate:"required"`
	NewPIN   string `json:"newPin" validate:"required,min=4,max=12"`
}

// Client requests

type CreateClientRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	BusinessName string `json:"businessName,omitempty" validate:"max=200"`
	Phone        string `json:"phone,omitempty" validate:"max=50"`
	Email        string `json:"email,omitempty" validate:"omitempty,email"`
	Address      string `json:"address,omitempty" validate:"max=500"`
	Notes        string `json:"notes,omitempty"`
}

type UpdateClientRequest struct {
	Name         string `json:"name" validate:"required,max=200"`
	BusinessName string `json:"businessName,omitempty" validate:"max=200"`
	Phone        string `json:"phone,omitempty" validate:"max=50"`
	Email        string `json:"email,omitempty" validate:"omitempty,email"`
	Address      string `json:"address,omitempty" validate:"max=500"`
	Notes        string `json:"notes,omitempty"`
	IsActive     bool   `json:"isActive"`
}

// Order requests

type CreateOrderRequest struct {
	ClientID  uuid.UUID                `json:"clientId" validate:"required"`
	OrderDate time.Time                `json:"orderDate" validate:"required"`
	Status    OrderStatus              `json:"status,omitempty"`
	Notes     string                   `json:"notes,omitempty"`
	Items     []CreateOrderItemRequest `json:"items,omitempty" validate:"dive"`
}

type UpdateOrderRequest struct {
	OrderDate time.Time   `json:"orderDate" validate:"required"`
	Status    OrderStatus `json:"status" validate:"required"`
	Notes     string      `json:"notes,omitempty"`
}

type CreateOrderItemRequest struct {
	ItemID       *uuid.UUID `json:"itemId,omitempty"`
	ItemName     string     `json:"itemName" validate:"required,max=200"`
	CategoryID   *uuid.UUID `json:"categoryId,omitempty"`
	CategoryName string     `json:"categoryName,omitempty" validate:"max=200"`
	Quantity     float64    `json:"quantity" validate:"required,gt=0"`
	UnitPrice    float64    `json:"unitPrice" validate:"gte=0"`
}

type CreatePaymentRequest struct {
	Amount        float64   `json:"amount" validate:"required,gt=0"`
	PaymentDate   time.Time `json:"paymentDate" validate:"required"`
	PaymentMethod string    `json:"paymentMethod,omitempty" validate:"max=50"`
	Notes         string    `json:"notes,omitempty" validate:"max=500"`
}

// Material purchase requests

type CreateMaterialPurchaseRequest struct {
	SupplierName string    `json:"supplierName" validate:"required,max=200"`
	MaterialName string    `json:"materialName" validate:"required,max=200"`
	PurchaseDate time.Time `json:"purchaseDate" validate:"required"`
	Quantity     float64   `json:"quantity" validate:"required,gt=0"`
	UnitPrice    float64   `json:"unitPrice" validate:"required,gte=0"`
}

type UpdateMaterialPurchaseRequest struct {
	SupplierName string    `json:"supplierName" validate:"required,max=200"`
	MaterialName string    `json:"materialName" validate:"required,max=200"`
	PurchaseDate time.Time `json:"purchaseDate" validate:"required"`
	Quantity     float64   `json:"quantity" validate:"required,gt=0"`
	UnitPrice    float64   `json:"unitPrice" validate:"required,gte=0"`
}

type GenerateInstallmentsRequest struct {
	TotalInstallments int                  `json:"totalInstallments" validate:"required,min=1,max=60"`
	Frequency         InstallmentFrequency `json:"frequency" validate:"required"`
	FirstPaymentDate  time.Time            `json:"firstPaymentDate" validate:"required"`
}

type CreateMaterialNoteRequest struct {
	Body string `json:"body" validate:"required"`
}

type UpdateInstallmentStatusRequest struct {
	Status InstallmentStatus `json:"status" validate:"required"`
}

// Expense requests

type CreateExpenseRequest struct {
	Category          string               `json:"category" validate:"required,max=100"`
	ItemName          string               `json:"itemName" validate:"required,max=200"`
	ExpenseDate       time.Time            `json:"expenseDate" validate:"required"`
	TotalAmount       float64              `json:"totalAmount" validate:"required,gt=0"`
	AmountPaid        float64              `json:"amountPaid" validate:"gte=0"`
	IsRecurring       bool                 `json:"isRecurring"`
	Frequency         *RecurrenceFrequency `json:"frequency,omitempty"`
	DayOfMonth        *int                 `json:"dayOfMonth,omitempty" validate:"omitempty,min=1,max=31"`
	RecurrenceEndDate *time.Time           `json:"recurrenceEndDate,omitempty"`
	ReminderDays      *int                 `json:"reminderDays,omitempty" validate:"omitempty,min=0,max=90"`
}

type UpdateExpenseRequest struct {
	Category          string               `json:"category" validate:"required,max=100"`
	ItemName          string               `json:"itemName" validate:"required,max=200"`
	ExpenseDate       time.Time            `json:"expenseDate" validate:"required"`
	TotalAmount       float64              `json:"totalAmount" validate:"required,gt=0"`
	AmountPaid        float64              `json:"amountPaid" validate:"gte=0"`
	IsRecurring       bool                 `json:"isRecurring"`
	Frequency         *RecurrenceFrequency `json:"frequency,omitempty"`
	DayOfMonth        *int                 `json:"dayOfMonth,omitempty" validate:"omitempty,min=1,max=31"`
	RecurrenceEndDate *time.Time           `json:"recurrenceEndDate,omitempty"`
	ReminderDays      *int                 `json:"reminderDays,omitempty" validate:"omitempty,min=0,max=90"`
}

type CompleteOccurrenceRequest struct {
	CompletedDate *time.Time `json:"completedDate,omitempty"`
	AmountPaid    *float64   `json:"amountPaid,omitempty" validate:"omitempty,gt=0"`
}

// Account and allocation requests

type CreateAccountRequest struct {
	Name        string      `json:"name" validate:"required,max=200"`
	Type        AccountType `json:"type" validate:"required"`
	Description string      `json:"description,omitempty" validate:"max=500"`
}

type UpdateAccountRequest struct {
	Name        string      `json:"name" validate:"required,max=200"`
	Type        AccountType `json:"type" validate:"required"`
	Description string      `json:"description,omitempty" validate:"max=500"`
	IsActive    bool        `json:"isActive"`
}

type CreateAllocationRuleRequest struct {
	SourceType SourceType `json:"sourceType" validate:"required"`
	AccountID  uuid.UUID  `json:"accountId" validate:"required"`
	Percentage float64    `json:"percentage" validate:"required,gt=0,lte=100"`
}

type UpdateAllocationRuleRequest struct {
	AccountID  uuid.UUID `json:"accountId" validate:"required"`
	Percentage float64   `json:"percentage" validate:"required,gt=0,lte=100"`
	IsActive   bool      `json:"isActive"`
}

type AllocateRequest struct {
	SourceType  SourceType `json:"sourceType" validate:"required"`
	Amount      float64    `json:"amount" validate:"required,gt=0"`
	SourceID    *uuid.UUID `json:"sourceId,omitempty"`
	Description string     `json:"description,omitempty" validate:"max=500"`
}

// Profit settings requests

type UpdateProfitSettingsRequest struct {
	Enabled                 bool             `json:"enabled"`
	CalculationBasis        CalculationBasis `json:"calculationBasis" validate:"required"`
	DefaultProfitPercentage float64          `json:"defaultProfitPercentage" validate:"gte=0,lte=100"`
	IncludeLabor            bool             `json:"includeLabor"`
	LaborPercentage         float64          `json:"laborPercentage" validate:"gte=0,lte=100"`
}

type CreateProfitOverrideRequest struct {
	Type             OverrideType `json:"type" validate:"required"`
	TargetID         *uuid.UUID   `json:"targetId,omitempty"`
	Name             string       `json:"name" validate:"required,max=200"`
	ProfitPercentage float64      `json:"profitPercentage" validate:"gte=0,lte=100"`
	LaborPercentage  float64      `json:"laborPercentage" validate:"gte=0,lte=100"`
}
