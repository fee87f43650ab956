package dto

import (
	"time"

	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExpenseRequest is the body of POST /expenses.
type CreateExpenseRequest struct {
	Date          *Date                `json:"date"`
	Category      string               `json:"category" binding:"required,max=120"`
	Amount        Amount               `json:"amount"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required,oneof=CASH BANK"`
	Description   string               `json:"description"`
	AttachmentURL *string              `json:"attachmentUrl" binding:"omitempty,url"`
}

// ListExpensesParams defines query parameters for listing expenses.
type ListExpensesParams struct {
	From string `form:"from"`
	To   string `form:"to"`
}

// ExpenseResponse is a persisted expense.
type ExpenseResponse struct {
	ExpenseID      string               `json:"expenseID"`
	Date           time.Time            `json:"date"`
	Category       string               `json:"category"`
	Amount         decimal.Decimal      `json:"amount"`
	PaymentMethod  domain.PaymentMethod `json:"paymentMethod"`
	Description    string               `json:"description"`
	AttachmentURL  *string              `json:"attachmentUrl,omitempty"`
	Posted         bool                 `json:"posted"`
	JournalEntryID *string              `json:"journalEntryID,omitempty"`
	CreatedAt      time.Time            `json:"createdAt"`
	CreatedBy      string               `json:"createdBy"`
}

// ToExpenseResponse converts a domain expense into its response DTO.
func ToExpenseResponse(e *domain.Expense) ExpenseResponse {
	return ExpenseResponse{
		ExpenseID:      e.ExpenseID,
		Date:           e.ExpenseDate,
		Category:       e.Category,
		Amount:         e.Amount,
		PaymentMethod:  e.PaymentMethod,
		Description:    e.Description,
		AttachmentURL:  e.AttachmentURL,
		Posted:         e.Posted,
		JournalEntryID: e.JournalEntryID,
		CreatedAt:      e.CreatedAt,
		CreatedBy:      e.CreatedBy,
	}
}

// ToListExpenseResponse converts a slice of expenses.
func ToListExpenseResponse(expenses []domain.Expense) []ExpenseResponse {
	res := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		res[i] = ToExpenseResponse(&expenses[i])
	}
	return res
}
