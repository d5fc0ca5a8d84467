package parser

import (
	"errors"
	"io"

	"github.com/insightdelivered/camt-mt940-converter/internal/models"
)

var (
	// ErrMalformedDocument is returned when the input is not well-formed XML.
	ErrMalformedDocument = errors.New("malformed document")
	// ErrMissingIBAN is returned when a statement has no account IBAN.
	ErrMissingIBAN = errors.New("statement account IBAN missing")
	// ErrMissingBalance is returned when a statement lacks opening or closing balance.
	ErrMissingBalance = errors.New("statement balance missing")
	// ErrInvalidDate is returned for absent or unparseable dates.
	ErrInvalidDate = errors.New("invalid date")
	// ErrInvalidAmount is returned for unparseable amounts.
	ErrInvalidAmount = errors.New("invalid amount")
)

// Parser defines the interface for statement document parsers.
type Parser interface {
	// Parse reads a whole document and returns its statements in document order.
	Parse(r io.Reader) ([]models.Statement, error)
	// FormatName returns the human-readable name of the document format.
	FormatName() string
}

// New returns the camt.053.001.08 parser.
func New() Parser {
	return &CAMT053Parser{}
}
