package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset       AccountType = "ASSET"
	Liability   AccountType = "LIABILITY"
	Equity      AccountType = "EQUITY"
	Revenue     AccountType = "REVENUE"
	ExpenseType AccountType = "EXPENSE"
)

// IsValid reports whether t is one of the five supported account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, ExpenseType:
		return true
	}
	return false
}

// Account is a node in the chart of accounts. Code is globally unique and
// AccountType never changes after creation.
type Account struct {
	AccountID       string      `json:"accountID"`
	Code            string      `json:"code"`
	Name            string      `json:"name"`
	AccountType     AccountType `json:"accountType"`
	ParentAccountID *string     `json:"parentAccountID,omitempty"`
	IsActive        bool        `json:"isActive"`
	AuditFields
}
