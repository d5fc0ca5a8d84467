// Package converter turns camt.053 documents into MT940 text.
package converter

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/insightdelivered/camt-mt940-converter/internal/models"
	"github.com/insightdelivered/camt-mt940-converter/internal/parser"
	"github.com/insightdelivered/camt-mt940-converter/internal/writer"
)

// Converter drives the parser and the MT940 encoder for one document at a
// time. It holds no per-document state and is safe for concurrent use.
type Converter struct {
	parser parser.Parser
}

// New returns a Converter for camt.053.001.08 input.
func New() *Converter {
	return &Converter{parser: parser.New()}
}

// NewWithParser returns a Converter using p.
func NewWithParser(p parser.Parser) *Converter {
	return &Converter{parser: p}
}

// Parse reads all statements of a document.
func (c *Converter) Parse(r io.Reader) ([]models.Statement, error) {
	statements, err := c.parser.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.parser.FormatName(), err)
	}
	return statements, nil
}

// Convert returns the MT940 text (UTF-8) for a whole document.
func (c *Converter) Convert(r io.Reader) (string, error) {
	statements, err := c.Parse(r)
	if err != nil {
		return "", err
	}
	return writer.EncodeDocument(statements), nil
}

// ConvertString is Convert for in-memory documents.
func (c *Converter) ConvertString(doc string) (string, error) {
	return c.Convert(strings.NewReader(doc))
}

// ConvertFile converts camtPath and writes ISO-8859-1 MT940 to mt940Path.
// Nothing is written when the conversion fails.
func (c *Converter) ConvertFile(camtPath, mt940Path string) ([]models.Statement, error) {
	f, err := os.Open(camtPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", camtPath, err)
	}
	defer f.Close()

	statements, err := c.Parse(f)
	if err != nil {
		return nil, err
	}

	w := &writer.MT940Writer{Latin1: true}
	if err := w.WriteToFile(mt940Path, statements); err != nil {
		return nil, err
	}
	return statements, nil
}
