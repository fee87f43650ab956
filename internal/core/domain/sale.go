package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is a completed POS or online order that needs to hit the ledger.
type Sale struct {
	SaleDate      time.Time
	Source        string // SourcePOS or SourceOrder
	Ref           string
	Notes         string
	PaymentMethod PaymentMethod
	NetAmount     decimal.Decimal
	TaxAmount     decimal.Decimal
	CostAmount    decimal.Decimal
}
