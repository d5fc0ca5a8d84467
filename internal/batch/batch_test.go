package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/camt-mt940-converter/internal/converter"
	"github.com/insightdelivered/camt-mt940-converter/internal/logger"
	"github.com/insightdelivered/camt-mt940-converter/internal/models"
)

const validDocument = `<?xml version="1.0" encoding="UTF-8"?>
<Document xmlns="urn:iso:std:iso:20022:tech:xsd:camt.053.001.08">
  <BkToCstmrStmt>
    <Stmt>
      <Id>STMT001</Id>
      <Acct><Id><IBAN>DE89370400440532013000</IBAN></Id></Acct>
      <Bal><Amt Ccy="EUR">100.00</Amt><CdtDbtInd>CRDT</CdtDbtInd><Dt><Dt>2024-01-01</Dt></Dt></Bal>
      <Bal><Amt Ccy="EUR">100.00</Amt><CdtDbtInd>CRDT</CdtDbtInd><Dt><Dt>2024-01-02</Dt></Dt></Bal>
    </Stmt>
  </BkToCstmrStmt>
</Document>`

func newProcessor() *Processor {
	return New(converter.New(), Options{}, logger.Discard())
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func TestRun_Success(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "january.xml", validDocument)

	report, err := newProcessor().Run(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.NotEmpty(t, report.RunID)

	res := report.Results[0]
	assert.Equal(t, models.StatusOK, res.Status)
	assert.Equal(t, "january.STA", res.Output)
	assert.Empty(t, res.Error)

	data, err := os.ReadFile(filepath.Join(dir, "january.STA"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), ":20:STMT001\r\n:25:37040044/0532013000\r\n:28C:1\r\n"))
	assert.True(t, strings.HasSuffix(string(data), "\r\n-"))

	info, err := os.Stat(filepath.Join(dir, "january.STA"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	assert.False(t, exists(filepath.Join(dir, "january.xml")))
	assert.True(t, exists(filepath.Join(dir, "save", "january.xml")))
	assert.False(t, exists(filepath.Join(dir, "error")))
}

func TestRun_FailureMovesToError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "broken.xml", "<Document><Stmt>")

	report, err := newProcessor().Run(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, report.Results, 1)

	res := report.Results[0]
	assert.Equal(t, models.StatusFailed, res.Status)
	assert.Contains(t, res.Error, "malformed document")
	assert.Equal(t, 1, report.Failed())

	assert.True(t, exists(filepath.Join(dir, "error", "broken.xml")))
	assert.False(t, exists(filepath.Join(dir, "broken.xml")))
	assert.False(t, exists(filepath.Join(dir, "broken.STA")))
}

func TestRun_ArchiveFailureRemovesOutput(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "march.xml", validDocument)
	// a regular file named like the save directory makes the archive step fail
	writeFile(t, dir, "save", "")

	report, err := newProcessor().Run(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, report.Results, 1)

	res := report.Results[0]
	assert.Equal(t, models.StatusFailed, res.Status)
	assert.Contains(t, res.Error, "could not archive input")
	assert.Empty(t, res.Output)

	assert.False(t, exists(filepath.Join(dir, "march.STA")))
	assert.False(t, exists(filepath.Join(dir, "march.xml")))
	assert.True(t, exists(filepath.Join(dir, "error", "march.xml")))
}

func TestRun_MixedFilesContinueAfterFailure(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a-broken.xml", "not xml")
	writeFile(t, dir, "b-good.XML", validDocument)
	writeFile(t, dir, "notes.txt", "ignored")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.xml"), 0o755))

	report, err := newProcessor().Run(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, report.Results, 2)

	assert.Equal(t, "a-broken.xml", report.Results[0].File)
	assert.Equal(t, models.StatusFailed, report.Results[0].Status)
	assert.Equal(t, "b-good.XML", report.Results[1].File)
	assert.Equal(t, models.StatusOK, report.Results[1].Status)
	assert.Equal(t, "b-good.STA", report.Results[1].Output)

	assert.True(t, exists(filepath.Join(dir, "notes.txt")))
	assert.True(t, exists(filepath.Join(dir, "sub.xml")))
}

func TestRun_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()

	report, err := newProcessor().Run(context.Background(), dir)
	require.NoError(t, err)
	assert.Empty(t, report.Results)
	assert.False(t, exists(filepath.Join(dir, "save")))
}

func TestRun_CustomOptions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "feb.xml", validDocument)

	p := New(converter.New(), Options{OutputExtension: ".mt940", SaveDirName: "done"}, logger.Discard())
	report, err := p.Run(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, report.Results, 1)

	assert.True(t, exists(filepath.Join(dir, "feb.mt940")))
	assert.True(t, exists(filepath.Join(dir, "done", "feb.xml")))
}

func TestRun_NotADirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "file.xml", validDocument)

	_, err := newProcessor().Run(context.Background(), filepath.Join(dir, "missing"))
	assert.True(t, errors.Is(err, ErrNotDirectory))

	_, err = newProcessor().Run(context.Background(), filepath.Join(dir, "file.xml"))
	assert.True(t, errors.Is(err, ErrNotDirectory))
}

func TestRun_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.xml", validDocument)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := newProcessor().Run(ctx, dir)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, report.Results)
	assert.True(t, exists(filepath.Join(dir, "a.xml")))
}
