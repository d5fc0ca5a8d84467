package writer

import (
	"fmt"
	"unicode/utf8"

	"github.com/insightdelivered/camt-mt940-converter/internal/gvc"
	"github.com/insightdelivered/camt-mt940-converter/internal/iban"
	"github.com/insightdelivered/camt-mt940-converter/internal/models"
)

const (
	// MaxLineLength bounds every :86: output line, tag included. It counts
	// characters, so it holds in bytes for ISO-8859-1 output; UTF-8 output
	// with non-ASCII text can exceed it in bytes.
	MaxLineLength = 65

	defaultBookingText = "SEPA-Überweisung"
	purposeChunk       = 27
	maxPurposeChunks   = 10
)

// SubField is one ?NN element of the :86: narrative.
type SubField struct {
	Code  int
	Value string
}

func (f SubField) String() string {
	return fmt.Sprintf("?%02d%s", f.Code, f.Value)
}

// RemittanceFields collects the :86: sub-fields of an entry in output order.
func RemittanceFields(e models.Entry) []SubField {
	text := defaultBookingText
	if e.HasAdditionalInfo {
		text = e.AdditionalInfo
	}
	fields := []SubField{{Code: 0, Value: truncate(text, 24)}}

	d := e.Detail
	if d == nil {
		d = &models.TransactionDetail{}
	}

	if d.PaymentInfoID != "" {
		fields = append(fields, SubField{Code: 10, Value: truncate(d.PaymentInfoID, 27)})
	}

	for i, part := range chunk(d.RemittanceUnstructured, purposeChunk) {
		if i == maxPurposeChunks {
			break
		}
		fields = append(fields, SubField{Code: 20 + i, Value: part})
	}

	bankCode, account := iban.Decompose(d.RelatedParty.CounterpartyIBAN())
	if bankCode != "" {
		fields = append(fields, SubField{Code: 30, Value: bankCode})
	}
	if account != "" {
		fields = append(fields, SubField{Code: 31, Value: account})
	}

	if name := chunk(d.RelatedParty.CounterpartyName(), purposeChunk); len(name) > 0 {
		fields = append(fields, SubField{Code: 32, Value: name[0]})
		if len(name) > 1 {
			fields = append(fields, SubField{Code: 33, Value: name[1]})
		}
	}

	for _, f := range []SubField{
		{Code: 60, Value: d.EndToEndID},
		{Code: 61, Value: d.MandateID},
		{Code: 62, Value: d.CreditorOtherID},
		{Code: 63, Value: d.CreditorReferenceInfo},
	} {
		if f.Value != "" {
			fields = append(fields, SubField{Code: f.Code, Value: truncate(f.Value, 27)})
		}
	}
	return fields
}

// PackRemittance lays the sub-fields out on :86: lines of at most
// MaxLineLength characters. The first field carries the transaction code in
// front of its ?NN marker; continuation lines do not repeat the tag. A
// field set that produces nothing yields no lines.
func PackRemittance(code string, fields []SubField) []string {
	const tag = ":86:"

	var lines []string
	current := tag
	for i, f := range fields {
		text := f.String()
		if i == 0 {
			text = code + text
		}
		if utf8.RuneCountInString(current)+utf8.RuneCountInString(text) > MaxLineLength {
			lines = append(lines, current)
			current = text
			continue
		}
		current += text
	}
	if current != tag {
		lines = append(lines, current)
	}
	return lines
}

// FormatRemittance builds the :86: lines of an entry.
func FormatRemittance(e models.Entry) []string {
	btc := e.BankTransactionCode
	return PackRemittance(gvc.Resolve(btc.Domain, btc.Family, btc.SubFamily), RemittanceFields(e))
}
