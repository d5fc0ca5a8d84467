// Package batch converts every camt.053 file of a directory and files the
// inputs away into save/ or error/ sub-directories.
//
// Conversion and archiving are separate filesystem steps. The .STA output is
// written atomically; if the input cannot be moved to save/ afterwards the
// output is removed again and the input is treated as failed, so an input
// in save/ always has its .STA next to the input directory. A crash between
// writing the output and moving the input can still leave both in place.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/insightdelivered/camt-mt940-converter/internal/converter"
	"github.com/insightdelivered/camt-mt940-converter/internal/models"
)

// Options controls output naming and the archive sub-directories.
type Options struct {
	OutputExtension string
	SaveDirName     string
	ErrorDirName    string
}

// DefaultOptions mirrors the classic layout: <name>.STA, save/ and error/.
func DefaultOptions() Options {
	return Options{
		OutputExtension: ".STA",
		SaveDirName:     "save",
		ErrorDirName:    "error",
	}
}

// Processor runs batch conversions. Files are processed one at a time in
// directory order.
type Processor struct {
	conv *converter.Converter
	opts Options
	log  *logrus.Logger
}

// New returns a Processor. Empty option fields take their defaults.
func New(conv *converter.Converter, opts Options, log *logrus.Logger) *Processor {
	def := DefaultOptions()
	if opts.OutputExtension == "" {
		opts.OutputExtension = def.OutputExtension
	}
	if opts.SaveDirName == "" {
		opts.SaveDirName = def.SaveDirName
	}
	if opts.ErrorDirName == "" {
		opts.ErrorDirName = def.ErrorDirName
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Processor{conv: conv, opts: opts, log: log}
}

// ErrNotDirectory is returned when the input path is missing or not a directory.
var ErrNotDirectory = errors.New("not a directory")

// Run converts all *.xml files (case-insensitive, non-recursive) in dir.
// Per-file failures are recorded in the report and never stop the run; only
// an unreadable directory or a cancelled context returns an error, together
// with the results gathered so far.
func (p *Processor) Run(ctx context.Context, dir string) (*models.Report, error) {
	report := &models.Report{RunID: uuid.NewString(), Dir: dir}
	log := p.log.WithField("run_id", report.RunID)

	info, err := os.Stat(dir)
	if err != nil {
		return report, fmt.Errorf("%w: %s: %v", ErrNotDirectory, dir, err)
	}
	if !info.IsDir() {
		return report, fmt.Errorf("%w: %s", ErrNotDirectory, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return report, fmt.Errorf("failed to read directory %q: %w", dir, err)
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if !strings.EqualFold(filepath.Ext(e.Name()), ".xml") {
			continue
		}
		fi, err := os.Stat(filepath.Join(dir, e.Name()))
		if err != nil || !fi.Mode().IsRegular() {
			continue
		}

		res := p.processFile(dir, e.Name())
		entry := log.WithFields(logrus.Fields{"file": res.File, "status": res.Status})
		if res.Status == models.StatusOK {
			entry.WithField("output", res.Output).Info("converted")
		} else {
			entry.WithField("error", res.Error).Warn("conversion failed")
		}
		report.Results = append(report.Results, res)
	}

	log.WithFields(logrus.Fields{"files": len(report.Results), "failed": report.Failed()}).Info("batch finished")
	return report, nil
}

func (p *Processor) processFile(dir, name string) models.FileResult {
	src := filepath.Join(dir, name)
	output := strings.TrimSuffix(name, filepath.Ext(name)) + p.opts.OutputExtension
	dst := filepath.Join(dir, output)
	res := models.FileResult{File: name}

	if _, err := p.conv.ConvertFile(src, dst); err != nil {
		return p.fail(res, src, err)
	}

	if err := moveInto(src, filepath.Join(dir, p.opts.SaveDirName)); err != nil {
		if rmErr := os.Remove(dst); rmErr != nil && !os.IsNotExist(rmErr) {
			p.log.WithField("file", output).Errorf("failed to remove output after archive failure: %v", rmErr)
		}
		return p.fail(res, src, fmt.Errorf("converted but could not archive input: %w", err))
	}

	res.Output = output
	res.Status = models.StatusOK
	return res
}

// fail moves the input into the error directory and records the reason. If
// even that move fails the input stays where it is and both reasons are kept.
func (p *Processor) fail(res models.FileResult, src string, cause error) models.FileResult {
	res.Status = models.StatusFailed
	res.Error = cause.Error()
	if err := moveInto(src, filepath.Join(filepath.Dir(src), p.opts.ErrorDirName)); err != nil {
		res.Error += "; " + err.Error()
	}
	return res
}

func moveInto(src, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %q: %w", dir, err)
	}
	if err := os.Rename(src, filepath.Join(dir, filepath.Base(src))); err != nil {
		return fmt.Errorf("failed to move %q: %w", src, err)
	}
	return nil
}
