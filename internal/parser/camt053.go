package parser

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/insightdelivered/camt-mt940-converter/internal/models"
)

// Namespace is the only camt.053 version this parser reads. Statements in
// other namespaces are ignored.
const Namespace = "urn:iso:std:iso:20022:tech:xsd:camt.053.001.08"

// CAMT053Parser extracts statements from ISO 20022 camt.053.001.08 documents.
//
// The document is streamed; every <Stmt> element in the camt namespace is
// decoded into typed structs and then mapped onto models.Statement, so all
// optional-node handling happens here and nowhere downstream.
type CAMT053Parser struct{}

func (p *CAMT053Parser) FormatName() string {
	return "camt.053.001.08"
}

func (p *CAMT053Parser) Parse(r io.Reader) ([]models.Statement, error) {
	dec := xml.NewDecoder(r)

	var statements []models.Statement
	sawElement := false

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		sawElement = true
		if start.Name.Space != Namespace || start.Name.Local != "Stmt" {
			continue
		}

		var raw xmlStatement
		if err := dec.DecodeElement(&raw, &start); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
		}
		stmt, err := raw.toModel()
		if err != nil {
			return nil, fmt.Errorf("statement %d (%s): %w", len(statements)+1, raw.ID, err)
		}
		statements = append(statements, stmt)
	}

	if !sawElement {
		return nil, fmt.Errorf("%w: no root element", ErrMalformedDocument)
	}
	return statements, nil
}

type xmlStatement struct {
	ID           string `xml:"Id"`
	ElctrncSeqNb string `xml:"ElctrncSeqNb"`
	Acct         struct {
		ID struct {
			IBAN string `xml:"IBAN"`
		} `xml:"Id"`
	} `xml:"Acct"`
	Bal  []xmlBalance `xml:"Bal"`
	Ntry []xmlEntry   `xml:"Ntry"`
}

type xmlAmount struct {
	Value string `xml:",chardata"`
	Ccy   string `xml:"Ccy,attr"`
}

type xmlDate struct {
	Dt   string `xml:"Dt"`
	DtTm string `xml:"DtTm"`
}

func (d xmlDate) value() string {
	return firstNonEmpty(strings.TrimSpace(d.Dt), strings.TrimSpace(d.DtTm))
}

type xmlBalance struct {
	Amt       xmlAmount `xml:"Amt"`
	CdtDbtInd string    `xml:"CdtDbtInd"`
	Dt        xmlDate   `xml:"Dt"`
}

type xmlEntry struct {
	Amt         xmlAmount `xml:"Amt"`
	CdtDbtInd   string    `xml:"CdtDbtInd"`
	RvslInd     string    `xml:"RvslInd"`
	BookgDt     xmlDate   `xml:"BookgDt"`
	ValDt       xmlDate   `xml:"ValDt"`
	AcctSvcrRef string    `xml:"AcctSvcrRef"`
	BkTxCd      struct {
		Domn struct {
			Cd   string `xml:"Cd"`
			Fmly struct {
				Cd        string `xml:"Cd"`
				SubFmlyCd string `xml:"SubFmlyCd"`
			} `xml:"Fmly"`
		} `xml:"Domn"`
		Prtry struct {
			Cd string `xml:"Cd"`
		} `xml:"Prtry"`
	} `xml:"BkTxCd"`
	AddtlNtryInf *string `xml:"AddtlNtryInf"`
	NtryDtls     struct {
		TxDtls []xmlTxDetails `xml:"TxDtls"`
	} `xml:"NtryDtls"`
}

type xmlTxDetails struct {
	Refs struct {
		PmtInfID   string `xml:"PmtInfId"`
		EndToEndID string `xml:"EndToEndId"`
		MndtID     string `xml:"MndtId"`
	} `xml:"Refs"`
	RmtInf struct {
		Ustrd []string `xml:"Ustrd"`
		Strd  []struct {
			CdtrRefInf struct {
				Ref string `xml:"Ref"`
			} `xml:"CdtrRefInf"`
		} `xml:"Strd"`
	} `xml:"RmtInf"`
	RltdPties struct {
		Dbtr     xmlParty   `xml:"Dbtr"`
		DbtrAcct xmlAccount `xml:"DbtrAcct"`
		Cdtr     xmlParty   `xml:"Cdtr"`
		CdtrAcct xmlAccount `xml:"CdtrAcct"`
	} `xml:"RltdPties"`
	Cdtr xmlParty `xml:"Cdtr"`
}

// xmlParty covers both the flat (Nm, Id) and the camt.053.001.08
// Party40Choice (Pty/Nm, Pty/Id) shapes.
type xmlParty struct {
	Nm  string     `xml:"Nm"`
	ID  xmlPartyID `xml:"Id"`
	Pty struct {
		Nm string     `xml:"Nm"`
		ID xmlPartyID `xml:"Id"`
	} `xml:"Pty"`
}

func (p xmlParty) name() string {
	return firstNonEmpty(p.Nm, p.Pty.Nm)
}

func (p xmlParty) orgOtherID() string {
	return firstNonEmpty(p.ID.otherID(), p.Pty.ID.otherID())
}

type xmlPartyID struct {
	OrgID struct {
		Othr []struct {
			ID string `xml:"Id"`
		} `xml:"Othr"`
	} `xml:"OrgId"`
}

func (id xmlPartyID) otherID() string {
	if len(id.OrgID.Othr) == 0 {
		return ""
	}
	return id.OrgID.Othr[0].ID
}

type xmlAccount struct {
	ID struct {
		IBAN string `xml:"IBAN"`
	} `xml:"Id"`
}

func (s xmlStatement) toModel() (models.Statement, error) {
	iban := strings.TrimSpace(s.Acct.ID.IBAN)
	if iban == "" {
		return models.Statement{}, ErrMissingIBAN
	}
	if len(s.Bal) < 2 {
		return models.Statement{}, fmt.Errorf("%w: found %d <Bal>, need 2", ErrMissingBalance, len(s.Bal))
	}

	opening, err := s.Bal[0].toModel()
	if err != nil {
		return models.Statement{}, fmt.Errorf("opening balance: %w", err)
	}
	closing, err := s.Bal[1].toModel()
	if err != nil {
		return models.Statement{}, fmt.Errorf("closing balance: %w", err)
	}

	stmt := models.Statement{
		ID:             s.ID,
		SequenceNumber: firstNonEmpty(strings.TrimSpace(s.ElctrncSeqNb), "1"),
		AccountIBAN:    iban,
		OpeningBalance: opening,
		ClosingBalance: closing,
		Entries:        make([]models.Entry, 0, len(s.Ntry)),
	}

	for i, n := range s.Ntry {
		entry, err := n.toModel()
		if err != nil {
			return models.Statement{}, fmt.Errorf("entry %d: %w", i+1, err)
		}
		stmt.Entries = append(stmt.Entries, entry)
	}
	return stmt, nil
}

func (b xmlBalance) toModel() (models.Balance, error) {
	amount, err := parseAmount(b.Amt.Value)
	if err != nil {
		return models.Balance{}, err
	}
	date, err := parseDate(b.Dt.value())
	if err != nil {
		return models.Balance{}, err
	}
	return models.Balance{
		CreditDebit: creditDebit(b.CdtDbtInd),
		Date:        date,
		Currency:    strings.TrimSpace(b.Amt.Ccy),
		Amount:      amount,
	}, nil
}

func (n xmlEntry) toModel() (models.Entry, error) {
	amount, err := parseAmount(n.Amt.Value)
	if err != nil {
		return models.Entry{}, err
	}

	// Either date stands in for the other when only one is sent.
	valueDate, bookingDate, err := entryDates(n.ValDt.value(), n.BookgDt.value())
	if err != nil {
		return models.Entry{}, err
	}

	entry := models.Entry{
		CreditDebit: creditDebit(n.CdtDbtInd),
		Reversal:    strings.TrimSpace(n.RvslInd) == "true",
		Amount:      amount,
		ValueDate:   valueDate,
		BookingDate: bookingDate,
		BankTransactionCode: models.BankTransactionCode{
			Domain:          strings.TrimSpace(n.BkTxCd.Domn.Cd),
			Family:          strings.TrimSpace(n.BkTxCd.Domn.Fmly.Cd),
			SubFamily:       strings.TrimSpace(n.BkTxCd.Domn.Fmly.SubFmlyCd),
			ProprietaryCode: strings.TrimSpace(n.BkTxCd.Prtry.Cd),
		},
		ServiceReference: n.AcctSvcrRef,
	}
	if n.AddtlNtryInf != nil {
		entry.AdditionalInfo = *n.AddtlNtryInf
		entry.HasAdditionalInfo = true
	}
	if len(n.NtryDtls.TxDtls) > 0 {
		entry.Detail = n.NtryDtls.TxDtls[0].toModel()
	}
	return entry, nil
}

func (tx xmlTxDetails) toModel() *models.TransactionDetail {
	d := &models.TransactionDetail{
		PaymentInfoID:   tx.Refs.PmtInfID,
		EndToEndID:      tx.Refs.EndToEndID,
		MandateID:       tx.Refs.MndtID,
		CreditorOtherID: firstNonEmpty(tx.Cdtr.orgOtherID(), tx.RltdPties.Cdtr.orgOtherID()),
		RelatedParty: models.RelatedParty{
			DebtorIBAN:   strings.TrimSpace(tx.RltdPties.DbtrAcct.ID.IBAN),
			DebtorName:   tx.RltdPties.Dbtr.name(),
			CreditorIBAN: strings.TrimSpace(tx.RltdPties.CdtrAcct.ID.IBAN),
			CreditorName: tx.RltdPties.Cdtr.name(),
		},
	}
	if len(tx.RmtInf.Ustrd) > 0 {
		d.RemittanceUnstructured = tx.RmtInf.Ustrd[0]
	}
	if len(tx.RmtInf.Strd) > 0 {
		d.CreditorReferenceInfo = tx.RmtInf.Strd[0].CdtrRefInf.Ref
	}
	return d
}

func entryDates(value, booking string) (time.Time, time.Time, error) {
	value = firstNonEmpty(value, booking)
	booking = firstNonEmpty(booking, value)
	if value == "" {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: entry has neither value nor booking date", ErrInvalidDate)
	}
	vd, err := parseDate(value)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("value date: %w", err)
	}
	bd, err := parseDate(booking)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("booking date: %w", err)
	}
	return vd, bd, nil
}

func creditDebit(ind string) models.CreditDebit {
	if strings.TrimSpace(ind) == string(models.Credit) {
		return models.Credit
	}
	return models.Debit
}
