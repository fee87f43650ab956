package dto

import "github.com/bazaarhq/storefront_backoffice/internal/core/domain"

// PostSaleRequest records a completed POS sale or online order in the ledger.
type PostSaleRequest struct {
	Date          *Date                `json:"date"`
	Source        string               `json:"source" binding:"required,oneof=POS ORDER"`
	Ref           string               `json:"ref" binding:"required,max=120"`
	Notes         string               `json:"notes"`
	PaymentMethod domain.PaymentMethod `json:"paymentMethod" binding:"required,oneof=CASH BANK CREDIT"`
	NetAmount     Amount               `json:"netAmount"`
	TaxAmount     Amount               `json:"taxAmount"`
	CostAmount    Amount               `json:"costAmount"`
}
