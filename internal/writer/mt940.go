package writer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/insightdelivered/camt-mt940-converter/internal/iban"
	"github.com/insightdelivered/camt-mt940-converter/internal/models"
)

const (
	// LineSeparator terminates lines within a statement.
	LineSeparator = "\r\n"
	// StatementSeparator sits between two statement blocks.
	StatementSeparator = "\r\n-\r\n"
	// DocumentTerminator is appended after the last statement block.
	DocumentTerminator = "\r\n-"

	// outputFileMode is applied to written statement files; temp files
	// start out as 0600.
	outputFileMode os.FileMode = 0o644
)

// EncodeStatement returns the MT940 lines of one statement in output order.
func EncodeStatement(s models.Statement) []string {
	lines := []string{
		":20:" + s.ID,
		":25:" + iban.Combined(s.AccountIBAN),
		":28C:" + s.SequenceNumber,
		FormatBalance(":60F:", s.OpeningBalance),
	}
	for _, e := range s.Entries {
		lines = append(lines, FormatTransaction(e))
		lines = append(lines, FormatRemittance(e)...)
	}
	return append(lines, FormatBalance(":62F:", s.ClosingBalance))
}

// EncodeDocument joins the encoded statements into the full MT940 text. A
// document without statements yields the terminator alone.
func EncodeDocument(statements []models.Statement) string {
	blocks := make([]string, 0, len(statements))
	for _, s := range statements {
		blocks = append(blocks, strings.Join(EncodeStatement(s), LineSeparator))
	}
	return strings.Join(blocks, StatementSeparator) + DocumentTerminator
}

// MT940Writer writes statements as MT940 text.
type MT940Writer struct {
	// Latin1 transcodes the output to ISO-8859-1, the charset legacy
	// accounting systems expect. Otherwise the text is written as UTF-8.
	Latin1 bool
}

// Write writes the MT940 rendition of statements to out.
func (w *MT940Writer) Write(out io.Writer, statements []models.Statement) error {
	data := []byte(EncodeDocument(statements))
	if w.Latin1 {
		data = EncodeLatin1(string(data))
	}
	if _, err := out.Write(data); err != nil {
		return fmt.Errorf("failed to write MT940 output: %w", err)
	}
	return nil
}

// WriteToFile writes statements to path. The content goes to a temporary
// sibling first and is renamed into place so a failed write leaves no
// partial file behind.
func (w *MT940Writer) WriteToFile(path string, statements []models.Statement) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*")
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if err := w.Write(tmp, statements); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(outputFileMode); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to set permissions on %q: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close output file %q: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move output into place %q: %w", path, err)
	}
	return nil
}
