package models

import "database/sql"

// Account is a row of the accounts table.
type Account struct {
	AccountID       string         `db:"account_id"`
	Code            string         `db:"code"`
	Name            string         `db:"name"`
	AccountType     string         `db:"account_type"`
	ParentAccountID sql.NullString `db:"parent_account_id"`
	IsActive        bool           `db:"is_active"`
	AuditFields
}
