package domain

import (
	"encoding/json"
	"strings"
)

// TransactionType is the direction of money flow.
type TransactionType string

const (
	Credit TransactionType = "CREDIT"
	Debit  TransactionType = "DEBIT"
)

// Transaction is a single ledger entry.
type Transaction struct {
	ID              int64           `json:"id"`
	AccountID       int64           `json:"accountId"`
	AccountName     string          `json:"accountName,omitempty"`
	CategoryID      int64           `json:"categoryId"`
	CategoryName    string          `json:"categoryName,omitempty"`
	Amount          Money           `json:"amount"`
	Type            TransactionType `json:"type"`
	Description     string          `json:"description,omitempty"`
	TransactionDate string          `json:"transactionDate"`
}

// Signed returns the amount, negated for debits.
func (t Transaction) Signed() float64 {
	if t.Type == Debit {
		return -t.Amount.Float()
	}
	return t.Amount.Float()
}

// TransactionInput is the create/update payload for a transaction.
type TransactionInput struct {
	AccountID       int64           `json:"accountId" validate:"gt=0"`
	CategoryID      int64           `json:"categoryId" validate:"gt=0"`
	Amount          float64         `json:"amount" validate:"gt=0"`
	Type            TransactionType `json:"type" validate:"oneof=CREDIT DEBIT"`
	Description     string          `json:"description,omitempty"`
	TransactionDate string          `json:"transactionDate" validate:"datetime=2006-01-02"`
}

// ParseTransactionType accepts debit/credit or expense/income in any case.
func ParseTransactionType(s string) (TransactionType, bool) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBIT", "EXPENSE":
		return Debit, true
	case "CREDIT", "INCOME":
		return Credit, true
	}
	return "", false
}

// InDateRange reports whether the transaction falls between from and to,
// both YYYY-MM-DD and inclusive. An empty bound is open.
func (t Transaction) InDateRange(from, to string) bool {
	day := t.TransactionDate
	if len(day) > len("2006-01-02") {
		day = day[:len("2006-01-02")]
	}
	if from != "" && day < from {
		return false
	}
	if to != "" && day > to {
		return false
	}
	return true
}

// TransactionSummary holds income and expense totals.
type TransactionSummary struct {
	TotalIncome   Money `json:"totalIncome"`
	TotalExpenses Money `json:"totalExpenses"`
}

// UnmarshalJSON accepts both the totalIncome/totalExpenses and the older
// income/expenses field names.
func (s *TransactionSummary) UnmarshalJSON(data []byte) error {
	var raw struct {
		TotalIncome   *Money `json:"totalIncome"`
		Income        *Money `json:"income"`
		TotalExpenses *Money `json:"totalExpenses"`
		Expenses      *Money `json:"expenses"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = TransactionSummary{}
	switch {
	case raw.TotalIncome != nil:
		s.TotalIncome = *raw.TotalIncome
	case raw.Income != nil:
		s.TotalIncome = *raw.Income
	}
	switch {
	case raw.TotalExpenses != nil:
		s.TotalExpenses = *raw.TotalExpenses
	case raw.Expenses != nil:
		s.TotalExpenses = *raw.Expenses
	}
	return nil
}

// Net returns income minus expenses.
func (s TransactionSummary) Net() float64 {
	return s.TotalIncome.Float() - s.TotalExpenses.Float()
}

// CategorySpending is one row of the spending-by-category breakdown.
type CategorySpending struct {
	CategoryName string `json:"categoryName"`
	TotalAmount  Money  `json:"totalAmount"`
}
