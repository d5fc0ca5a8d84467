package writer

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/insightdelivered/camt-mt940-converter/internal/models"
)

// FormatDate renders a calendar date as YYMMDD.
func FormatDate(t time.Time) string {
	return t.Format("060102")
}

// FormatAmount renders an amount with two fraction digits, a comma as the
// decimal separator and no grouping, e.g. 1234.5 -> "1234,50".
func FormatAmount(amount decimal.Decimal) string {
	return strings.Replace(amount.StringFixed(2), ".", ",", 1)
}

// FormatBalance builds a :60F: or :62F: line.
func FormatBalance(tag string, b models.Balance) string {
	return tag + balanceIndicator(b.CreditDebit) + FormatDate(b.Date) + b.Currency + FormatAmount(b.Amount)
}

// FormatTransaction builds the :61: statement line of an entry:
// :61:YYMMDDMMDD[C|D|RC|RD]amountNcodereference
func FormatTransaction(e models.Entry) string {
	var sb strings.Builder
	sb.WriteString(":61:")
	sb.WriteString(FormatDate(e.ValueDate))
	sb.WriteString(FormatDate(e.BookingDate)[2:])
	sb.WriteString(EntryIndicator(e))
	sb.WriteString(FormatAmount(e.Amount))
	sb.WriteString("N")
	sb.WriteString(bookingCode(e.BankTransactionCode.ProprietaryCode))
	sb.WriteString(truncate(e.ServiceReference, 16))
	return sb.String()
}

// EntryIndicator returns C or D, prefixed with R for reversals.
func EntryIndicator(e models.Entry) string {
	ind := balanceIndicator(e.CreditDebit)
	if e.Reversal {
		return "R" + ind
	}
	return ind
}

func balanceIndicator(cd models.CreditDebit) string {
	if cd == models.Credit {
		return "C"
	}
	return "D"
}

// bookingCode returns the proprietary code cut to 4 characters, or NMSC when
// the bank sent none. Shorter codes are emitted as they are, without padding.
func bookingCode(proprietary string) string {
	if proprietary == "" {
		return "NMSC"
	}
	return truncate(proprietary, 4)
}

// truncate cuts s to at most n characters. Lengths count characters rather
// than UTF-8 bytes because the output is written in a single-byte charset.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// chunk splits s into consecutive pieces of n characters.
func chunk(s string, n int) []string {
	runes := []rune(s)
	var out []string
	for len(runes) > 0 {
		size := n
		if len(runes) < size {
			size = len(runes)
		}
		out = append(out, string(runes[:size]))
		runes = runes[size:]
	}
	return out
}
