package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditDebit is the camt.053 credit/debit indicator.
type CreditDebit string

const (
	Credit CreditDebit = "CRDT"
	Debit  CreditDebit = "DBIT"
)

// Statement is one camt.053 <Stmt> block.
type Statement struct {
	ID             string
	SequenceNumber string // defaults to "1"
	AccountIBAN    string
	OpeningBalance Balance
	ClosingBalance Balance
	Entries        []Entry
}

// Balance holds a statement balance (first and second <Bal> in document order).
type Balance struct {
	CreditDebit CreditDebit
	Date        time.Time
	Currency    string
	Amount      decimal.Decimal
}

// BankTransactionCode is the ISO domain/family/sub-family triple plus the
// proprietary code some banks send alongside it.
type BankTransactionCode struct {
	Domain          string
	Family          string
	SubFamily       string
	ProprietaryCode string
}

// Entry represents a single statement line item (<Ntry>).
type Entry struct {
	CreditDebit         CreditDebit
	Reversal            bool
	Amount              decimal.Decimal
	ValueDate           time.Time
	BookingDate         time.Time
	BankTransactionCode BankTransactionCode
	ServiceReference    string
	AdditionalInfo      string
	HasAdditionalInfo   bool
	Detail              *TransactionDetail
}

// TransactionDetail carries the optional <NtryDtls><TxDtls> data.
type TransactionDetail struct {
	PaymentInfoID          string
	RemittanceUnstructured string
	EndToEndID             string
	MandateID              string
	CreditorOtherID        string
	CreditorReferenceInfo  string
	RelatedParty           RelatedParty
}

// RelatedParty holds the counterparty accounts and names. Debtor data is
// preferred over creditor data when both are present.
type RelatedParty struct {
	DebtorIBAN   string
	DebtorName   string
	CreditorIBAN string
	CreditorName string
}

// CounterpartyIBAN returns the debtor account IBAN, else the creditor one.
func (p RelatedParty) CounterpartyIBAN() string {
	if p.DebtorIBAN != "" {
		return p.DebtorIBAN
	}
	return p.CreditorIBAN
}

// CounterpartyName returns the debtor name, else the creditor name.
func (p RelatedParty) CounterpartyName() string {
	if p.DebtorName != "" {
		return p.DebtorName
	}
	return p.CreditorName
}
