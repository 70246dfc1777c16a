package domain

import "testing"

func TestParseTransactionType(t *testing.T) {
	tests := []struct {
		in     string
		want   TransactionType
		wantOK bool
	}{
		{"DEBIT", Debit, true},
		{"expense", Debit, true},
		{"credit", Credit, true},
		{" Income ", Credit, true},
		{"refund", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseTransactionType(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseTransactionType(%q) = %q, %v, want %q, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestTransactionInDateRange(t *testing.T) {
	tx := Transaction{TransactionDate: "2024-02-28T09:30:00"}
	tests := []struct {
		from, to string
		want     bool
	}{
		{"", "", true},
		{"2024-02-01", "2024-02-29", true},
		{"2024-02-28", "2024-02-28", true},
		{"2024-03-01", "", false},
		{"", "2024-02-27", false},
		{"2024-01-01", "", true},
	}
	for _, tt := range tests {
		if got := tx.InDateRange(tt.from, tt.to); got != tt.want {
			t.Errorf("InDateRange(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}
