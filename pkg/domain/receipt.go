package domain

// ReceiptScan holds the fields extracted from a receipt image.
type ReceiptScan struct {
	MerchantName string `json:"merchantName"`
	Amount       Money  `json:"amount"`
	Date         string `json:"date"`
	Category     string `json:"category,omitempty"`
	CategoryID   int64  `json:"categoryId,omitempty"`
	Description  string `json:"description,omitempty"`
}

// Transaction converts the scan into a debit on the given account. When the
// scanner could not match a category, fallbackCategory is used.
func (r ReceiptScan) Transaction(accountID, fallbackCategory int64) TransactionInput {
	cat := r.CategoryID
	if cat == 0 {
		cat = fallbackCategory
	}
	desc := r.Description
	if desc == "" {
		desc = r.MerchantName
	}
	return TransactionInput{
		AccountID:       accountID,
		CategoryID:      cat,
		Amount:          r.Amount.Float(),
		Type:            Debit,
		Description:     desc,
		TransactionDate: r.Date,
	}
}
