package writer

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/camt-mt940-converter/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"1234.5", "1234,50"},
		{"0", "0,00"},
		{"50.00", "50,00"},
		{"1234567.891", "1234567,89"},
		{"0.005", "0,01"},
		{"-5.555", "-5,56"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := FormatAmount(decimal.RequireFromString(tt.input))
			if got != tt.expected {
				t.Errorf("FormatAmount(%s): got %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFormatDate(t *testing.T) {
	if got := FormatDate(date(2024, 1, 2)); got != "240102" {
		t.Errorf("got %q, want %q", got, "240102")
	}
	if got := FormatDate(date(1999, 12, 31)); got != "991231" {
		t.Errorf("got %q, want %q", got, "991231")
	}
}

func TestFormatBalance(t *testing.T) {
	tests := []struct {
		name     string
		tag      string
		balance  models.Balance
		expected string
	}{
		{
			name:     "credit",
			tag:      ":60F:",
			balance:  models.Balance{CreditDebit: models.Credit, Date: date(2024, 1, 1), Currency: "EUR", Amount: decimal.RequireFromString("100.00")},
			expected: ":60F:C240101EUR100,00",
		},
		{
			name:     "debit",
			tag:      ":62F:",
			balance:  models.Balance{CreditDebit: models.Debit, Date: date(2024, 2, 29), Currency: "USD", Amount: decimal.RequireFromString("0.5")},
			expected: ":62F:D240229USD0,50",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatBalance(tt.tag, tt.balance); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestEntryIndicator(t *testing.T) {
	tests := []struct {
		cd       models.CreditDebit
		reversal bool
		expected string
	}{
		{models.Credit, false, "C"},
		{models.Debit, false, "D"},
		{models.Credit, true, "RC"},
		{models.Debit, true, "RD"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			got := EntryIndicator(models.Entry{CreditDebit: tt.cd, Reversal: tt.reversal})
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestFormatTransaction(t *testing.T) {
	base := models.Entry{
		CreditDebit: models.Credit,
		Amount:      decimal.RequireFromString("50.00"),
		ValueDate:   date(2024, 1, 2),
		BookingDate: date(2024, 1, 3),
	}

	tests := []struct {
		name     string
		modify   func(e *models.Entry)
		expected string
	}{
		{
			name: "proprietary code truncated",
			modify: func(e *models.Entry) {
				e.BankTransactionCode.ProprietaryCode = "ABCD1234"
				e.ServiceReference = "REF0001"
			},
			expected: ":61:2401020103C50,00NABCDREF0001",
		},
		{
			name:     "default code",
			modify:   func(e *models.Entry) {},
			expected: ":61:2401020103C50,00NNMSC",
		},
		{
			name: "reference truncated to 16",
			modify: func(e *models.Entry) {
				e.BankTransactionCode.ProprietaryCode = "TRF"
				e.ServiceReference = "0123456789ABCDEFGHIJ"
			},
			expected: ":61:2401020103C50,00NTRF0123456789ABCDEF",
		},
		{
			name: "short code not padded",
			modify: func(e *models.Entry) {
				e.BankTransactionCode.ProprietaryCode = "AB"
				e.ServiceReference = "REF0001"
			},
			expected: ":61:2401020103C50,00NABREF0001",
		},
		{
			name: "reversed debit",
			modify: func(e *models.Entry) {
				e.CreditDebit = models.Debit
				e.Reversal = true
			},
			expected: ":61:2401020103RD50,00NNMSC",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := base
			tt.modify(&e)
			if got := FormatTransaction(e); got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestTruncateAndChunk(t *testing.T) {
	if got := truncate("Überweisung", 4); got != "Über" {
		t.Errorf("truncate: got %q", got)
	}
	if got := truncate("abc", 10); got != "abc" {
		t.Errorf("truncate: got %q", got)
	}
	got := chunk("abcdefg", 3)
	if len(got) != 3 || got[0] != "abc" || got[1] != "def" || got[2] != "g" {
		t.Errorf("chunk: got %q", got)
	}
	if len(chunk("", 3)) != 0 {
		t.Error("chunk of empty string should be empty")
	}
}
