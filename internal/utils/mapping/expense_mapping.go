package mapping

import (
	"github.com/bazaarhq/storefront_backoffice/internal/core/domain"
	"github.com/bazaarhq/storefront_backoffice/internal/models"
)

func ToModelExpense(d domain.Expense) models.Expense {
	return models.Expense{
		ExpenseID:      d.ExpenseID,
		ExpenseDate:    d.ExpenseDate,
		Category:       d.Category,
		Amount:         d.Amount,
		PaymentMethod:  string(d.PaymentMethod),
		Description:    NullString(d.Description),
		AttachmentURL:  NullStringPtr(d.AttachmentURL),
		Posted:         d.Posted,
		JournalEntryID: NullStringPtr(d.JournalEntryID),
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
}

func ToDomainExpense(m models.Expense) domain.Expense {
	return domain.Expense{
		ExpenseID:      m.ExpenseID,
		ExpenseDate:    m.ExpenseDate,
		Category:       m.Category,
		Amount:         m.Amount,
		PaymentMethod:  domain.PaymentMethod(m.PaymentMethod),
		Description:    m.Description.String,
		AttachmentURL:  StringPtr(m.AttachmentURL),
		Posted:         m.Posted,
		JournalEntryID: StringPtr(m.JournalEntryID),
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
}

func ToModelPostingRetry(d domain.ExpensePostingRetry) models.ExpensePostingRetry {
	return models.ExpensePostingRetry{
		RetryID:       d.RetryID,
		ExpenseID:     d.ExpenseID,
		Status:        string(d.Status),
		Attempts:      d.Attempts,
		LastError:     NullString(d.LastError),
		NextAttemptAt: d.NextAttemptAt,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

func ToDomainPostingRetry(m models.ExpensePostingRetry) domain.ExpensePostingRetry {
	return domain.ExpensePostingRetry{
		RetryID:       m.RetryID,
		ExpenseID:     m.ExpenseID,
		Status:        domain.PostingRetryStatus(m.Status),
		Attempts:      m.Attempts,
		LastError:     m.LastError.String,
		NextAttemptAt: m.NextAttemptAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
