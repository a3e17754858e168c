package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/FACorreiaa/fatura-engine/internal/domain/extract"
	"github.com/FACorreiaa/fatura-engine/internal/domain/ingest"
	"github.com/FACorreiaa/fatura-engine/internal/domain/ledger"
	"github.com/FACorreiaa/fatura-engine/internal/domain/store"
	"github.com/FACorreiaa/fatura-engine/internal/pdfio"
	"github.com/FACorreiaa/fatura-engine/pkg/config"
	"github.com/FACorreiaa/fatura-engine/pkg/money"
)

func main() {
	var (
		output    string
		merge     bool
		localeStr string
		layoutStr string
		enhanced  bool
		totalStr  string
		year      int
		sortSpec  string
		noHeaders bool
		rename    bool
		useDB     bool
	)

	flag.StringVar(&output, "output", "", "Path of the merged CSV table (defaults to FATURA_OUTPUT)")
	flag.BoolVar(&merge, "merge", true, "Merge all inputs into one table; false writes one CSV per input")
	flag.StringVar(&localeStr, "locale", "", "Output locale: pt-br or en-us (defaults to FATURA_LOCALE)")
	flag.StringVar(&layoutStr, "layout", "", "Force document layout: legacy or modern (default: infer from due date)")
	flag.BoolVar(&enhanced, "enhanced", false, "Parse category/location context and emit the extra columns")
	flag.StringVar(&totalStr, "total", "", "Manual statement total, overrides the printed-total heuristics")
	flag.IntVar(&year, "year", 0, "Fallback year for documents without a due date")
	flag.StringVar(&sortSpec, "sort", "", "Sort rows: '<column> [ASC|DESC]' over transaction_date, payment_date, description, amount")
	flag.BoolVar(&noHeaders, "no-headers", false, "Omit the CSV header row")
	flag.BoolVar(&rename, "rename", false, "Rename inputs to Itau_<last4>_<year>_<month>.pdf after processing")
	flag.BoolVar(&useDB, "db", false, "Import statements into Postgres (connection from POSTGRES_* env)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load()
	if err != nil {
		fatal(logger, "loading configuration", err)
	}
	if output == "" {
		output = cfg.Extraction.OutputPath
	}
	if localeStr == "" {
		localeStr = cfg.Extraction.Locale
	}
	if !enhanced {
		enhanced = cfg.Extraction.Enhanced
	}

	locale, err := money.ParseLocale(localeStr)
	if err != nil {
		fatal(logger, "parsing locale", err)
	}

	var layout extract.Layout
	if layoutStr != "" {
		l, ok := extract.ParseLayout(layoutStr)
		if !ok {
			fatal(logger, "parsing layout", fmt.Errorf("unknown layout %q (expected legacy or modern)", layoutStr))
		}
		layout = l
	}

	opts := ingest.Options{Layout: layout, Year: year}
	if enhanced {
		opts.Mode = extract.ModeEnhanced
	}
	if totalStr != "" {
		total, err := money.Parse(totalStr)
		if err != nil {
			fatal(logger, "parsing manual total", err)
		}
		opts.ManualTotal = &total
	}

	inputs, err := expandInputs(flag.Args())
	if err != nil {
		fatal(logger, "resolving inputs", err)
	}
	if len(inputs) == 0 {
		fmt.Fprintln(os.Stderr, "usage: fatura [flags] <statement.pdf> ...")
		flag.PrintDefaults()
		os.Exit(2)
	}

	ctx := context.Background()
	svc := ingest.NewService(openPDF, logger)
	results, err := svc.ProcessBatch(ctx, inputs, opts)
	if err != nil {
		fatal(logger, "processing batch", err)
	}

	writeOpts := ledger.WriteOptions{IncludeHeaders: !noHeaders, Enhanced: enhanced}
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}

	if merge {
		if err := writeMerged(logger, results, output, sortSpec, locale, writeOpts); err != nil {
			fatal(logger, "writing merged table", err)
		}
	} else {
		if err := writePerFile(logger, results, sortSpec, locale, writeOpts); err != nil {
			fatal(logger, "writing per-file tables", err)
		}
	}

	if useDB {
		if err := importToDatabase(ctx, logger, cfg, results); err != nil {
			fatal(logger, "importing to database", err)
		}
	}

	if rename {
		renameInputs(logger, results)
	}

	if failed > 0 {
		logger.Error("batch finished with failures", slog.Int("failed", failed), slog.Int("total", len(results)))
		os.Exit(1)
	}
}

func openPDF(path string) (ingest.Source, error) {
	return pdfio.Open(path)
}

// expandInputs resolves glob patterns so shells without expansion still work.
func expandInputs(args []string) ([]string, error) {
	var inputs []string
	for _, arg := range args {
		if strings.ContainsAny(arg, "*?[") {
			matches, err := filepath.Glob(arg)
			if err != nil {
				return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
			}
			inputs = append(inputs, matches...)
			continue
		}
		inputs = append(inputs, arg)
	}
	return inputs, nil
}

// writeMerged combines every successful document into one table. IDs are
// assigned over the final combined order so re-running the same inputs
// produces the same rows and the merge dedup holds.
func writeMerged(logger *slog.Logger, results []ingest.DocumentResult, output, sortSpec string, locale money.Locale, opts ledger.WriteOptions) error {
	var statements []ledger.Statement
	for _, r := range results {
		if r.Err == nil {
			statements = append(statements, r.Statements...)
		}
	}
	if err := ledger.SortStatements(statements, sortSpec); err != nil {
		return err
	}
	ledger.AssignIDs(statements)

	rows := ledger.FormatRows(statements, locale)
	result, err := ledger.MergeCSV(output, rows, opts)
	if err != nil {
		return err
	}
	logger.Info("table merged",
		slog.String("output", output),
		slog.Int("inserted", result.Inserted),
		slog.Int("skipped", result.Skipped))
	return nil
}

// writePerFile writes one table next to each input, named after it.
func writePerFile(logger *slog.Logger, results []ingest.DocumentResult, sortSpec string, locale money.Locale, opts ledger.WriteOptions) error {
	for i := range results {
		r := &results[i]
		if r.Err != nil {
			continue
		}
		if err := ledger.SortStatements(r.Statements, sortSpec); err != nil {
			return err
		}
		ledger.AssignIDs(r.Statements)

		out := strings.TrimSuffix(r.Path, filepath.Ext(r.Path)) + ".csv"
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("creating %s: %w", out, err)
		}
		err = ledger.WriteCSV(f, ledger.FormatRows(r.Statements, locale), opts)
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
		if err != nil {
			return fmt.Errorf("writing %s: %w", out, err)
		}
		logger.Info("table written", slog.String("output", out), slog.Int("rows", len(r.Statements)))
	}
	return nil
}

func importToDatabase(ctx context.Context, logger *slog.Logger, cfg *config.Config, results []ingest.DocumentResult) error {
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()

	st := store.New(pool)
	if err := st.InitSchema(ctx); err != nil {
		return err
	}

	for _, r := range results {
		if r.Err != nil {
			continue
		}
		result, err := st.ImportStatements(ctx, filepath.Base(r.Path), r.Statements)
		if err != nil {
			return err
		}
		logger.Info("statements imported",
			slog.String("document", r.Path),
			slog.Int("inserted", result.Inserted),
			slog.Int("skipped", result.Skipped))
	}
	return nil
}

func renameInputs(logger *slog.Logger, results []ingest.DocumentResult) {
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		target, ok := canonicalName(r)
		if !ok {
			logger.Warn("cannot rename without card and due date metadata", slog.String("document", r.Path))
			continue
		}
		if filepath.Base(r.Path) == target {
			continue
		}
		dest := filepath.Join(filepath.Dir(r.Path), target)
		if err := os.Rename(r.Path, dest); err != nil {
			logger.Warn("rename failed", slog.String("document", r.Path), slog.Any("error", err))
			continue
		}
		logger.Info("document renamed", slog.String("from", r.Path), slog.String("to", dest))
	}
}

// canonicalName builds the archive filename Itau_<last4>_<year>_<month>.pdf
// from the statement's due date.
func canonicalName(r ingest.DocumentResult) (string, bool) {
	if r.Meta.Last4 == "" || r.Meta.DueDate.IsZero() {
		return "", false
	}
	return fmt.Sprintf("Itau_%s_%d_%02d.pdf", r.Meta.Last4, r.Meta.DueDate.Year(), int(r.Meta.DueDate.Month())), true
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, slog.Any("error", err))
	os.Exit(1)
}
