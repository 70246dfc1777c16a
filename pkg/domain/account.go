package domain

import "strings"

// AccountType is the kind of a financial account.
type AccountType string

const (
	AccountChecking   AccountType = "CHECKING"
	AccountSavings    AccountType = "SAVINGS"
	AccountCreditCard AccountType = "CREDIT_CARD"
	AccountInvestment AccountType = "INVESTMENT"
)

var accountTypeNames = map[AccountType]string{
	AccountChecking:   "Checking",
	AccountSavings:    "Savings",
	AccountCreditCard: "Credit Card",
	AccountInvestment: "Investment",
}

// AccountTypeName returns the display name of t. Unknown types are returned as-is.
func AccountTypeName(t AccountType) string {
	if name, ok := accountTypeNames[t]; ok {
		return name
	}
	return string(t)
}

// ParseAccountType accepts a type constant or display name in any case, so
// "credit card", "Credit Card" and "CREDIT_CARD" all parse.
func ParseAccountType(s string) (AccountType, bool) {
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	t := AccountType(strings.ToUpper(strings.Join(words, "_")))
	if _, ok := accountTypeNames[t]; !ok {
		return "", false
	}
	return t, true
}

// Account is a user-owned financial account.
type Account struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Type        AccountType `json:"type"`
	Balance     Money       `json:"balance"`
	Currency    string      `json:"currency,omitempty"`
	Description string      `json:"description,omitempty"`
}

// AccountInput is the create/update payload for an account.
type AccountInput struct {
	Name        string      `json:"name" validate:"required"`
	Type        AccountType `json:"type" validate:"oneof=CHECKING SAVINGS CREDIT_CARD INVESTMENT"`
	Balance     float64     `json:"balance"`
	Currency    string      `json:"currency,omitempty" validate:"omitempty,len=3"`
	Description string      `json:"description,omitempty"`
}

// AccountBalance is the body of the balance endpoint.
type AccountBalance struct {
	AccountID int64 `json:"accountId"`
	Balance   Money `json:"balance"`
}

// TotalBalance sums the balances of all accounts.
func TotalBalance(accounts []Account) float64 {
	var total float64
	for _, a := range accounts {
		total += a.Balance.Float()
	}
	return total
}
