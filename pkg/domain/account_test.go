package domain

import "testing"

func TestAccountTypeName(t *testing.T) {
	tests := []struct {
		typ  AccountType
		want string
	}{
		{AccountChecking, "Checking"},
		{AccountSavings, "Savings"},
		{AccountCreditCard, "Credit Card"},
		{AccountInvestment, "Investment"},
		{"BROKERAGE", "BROKERAGE"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			if got := AccountTypeName(tt.typ); got != tt.want {
				t.Errorf("AccountTypeName(%q) = %q, want %q", tt.typ, got, tt.want)
			}
		})
	}
}

func TestTotalBalance(t *testing.T) {
	accounts := []Account{{Balance: 100.5}, {Balance: -20.25}, {Balance: 0}}
	if got := TotalBalance(accounts); got != 80.25 {
		t.Errorf("TotalBalance = %v, want 80.25", got)
	}
}

func TestParseAccountType(t *testing.T) {
	tests := []struct {
		in     string
		want   AccountType
		wantOK bool
	}{
		{"CHECKING", AccountChecking, true},
		{"savings", AccountSavings, true},
		{"Credit Card", AccountCreditCard, true},
		{"credit_card", AccountCreditCard, true},
		{"  investment ", AccountInvestment, true},
		{"brokerage", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseAccountType(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseAccountType(%q) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}
