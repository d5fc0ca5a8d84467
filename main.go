package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/insightdelivered/camt-mt940-converter/internal/api"
	"github.com/insightdelivered/camt-mt940-converter/internal/batch"
	"github.com/insightdelivered/camt-mt940-converter/internal/config"
	"github.com/insightdelivered/camt-mt940-converter/internal/converter"
	"github.com/insightdelivered/camt-mt940-converter/internal/logger"
	"github.com/insightdelivered/camt-mt940-converter/internal/models"
)

const version = "1.0.0"

const timestampFormat = "2006-01-02 15:04:05"

var (
	cfg      *config.AppConfig
	log      *logrus.Logger
	logLevel string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "camt2mt940 <directory>",
		Short: "Convert camt.053 XML statements to MT940",
		Long: `Converts every camt.053.001.08 XML file in a directory into an MT940
statement (<name>.STA, ISO-8859-1). Converted inputs are moved to save/,
inputs that fail to convert are moved to error/.`,
		Args:          cobra.MaximumNArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cfg = config.Load()
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			log = logger.New(cfg.LogLevel, os.Stderr)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd.Context(), cmd.OutOrStdout(), args)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default from LOG_LEVEL)")

	root.AddCommand(newConvertCmd(), newServeCmd())
	return root
}

// runBatch prints usage or an error message for a bad directory argument
// without failing the process; the batch report goes to out.
func runBatch(ctx context.Context, out io.Writer, args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(out, `Usage: camt2mt940 "C:\MyDirectory"`)
		return nil
	}
	dir := args[0]
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		fmt.Fprintf(out, "Directory not found: %s\n", dir)
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	fmt.Fprintf(out, "%s Start conversion\n", time.Now().Format(timestampFormat))

	p := batch.New(converter.New(), batch.Options{
		OutputExtension: cfg.OutputExtension,
		SaveDirName:     cfg.SaveDirName,
		ErrorDirName:    cfg.ErrorDirName,
	}, log)
	report, err := p.Run(ctx, dir)
	printReport(out, report)
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
	}

	fmt.Fprintf(out, "%s End conversion\n", time.Now().Format(timestampFormat))
	return nil
}

func printReport(out io.Writer, report *models.Report) {
	if report == nil || len(report.Results) == 0 {
		fmt.Fprintln(out, "Nothing to do.")
		return
	}
	for _, res := range report.Results {
		status := string(res.Status)
		if res.Status != models.StatusOK {
			status = res.Error
		}
		fmt.Fprintf(out, "Processed: %s %s\n", res.File, status)
	}
}

func newConvertCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "convert <input.xml>",
		Short: "Convert a single camt.053 file",
		Long:  "Converts one file. Without --output the MT940 text is printed to stdout as UTF-8; with --output it is written as ISO-8859-1.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if !strings.EqualFold(filepath.Ext(input), ".xml") {
				return fmt.Errorf("expected .xml file, got %q", filepath.Ext(input))
			}
			conv := converter.New()

			if output == "" {
				f, err := os.Open(input)
				if err != nil {
					return fmt.Errorf("input file not found: %s", input)
				}
				defer f.Close()

				text, err := conv.Convert(f)
				if err != nil {
					return fmt.Errorf("conversion failed: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}

			statements, err := conv.ConvertFile(input, output)
			if err != nil {
				return fmt.Errorf("conversion failed: %w", err)
			}
			log.WithFields(logrus.Fields{"input": input, "output": output, "statements": len(statements)}).Info("converted")
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output MT940 file path")
	return cmd
}

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP conversion API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if port == "" {
				port = cfg.Port
			}
			app := api.NewApp(&api.Handler{Converter: converter.New(), Log: log}, int(cfg.MaxUploadSizeBytes))

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			go func() {
				<-ctx.Done()
				if err := app.Shutdown(); err != nil {
					log.Errorf("shutdown: %v", err)
				}
			}()

			log.Infof("listening on :%s", port)
			return app.Listen(":" + port)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "Listen port (default from PORT)")
	return cmd
}
