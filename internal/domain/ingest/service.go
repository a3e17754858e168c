// Package ingest runs the full extraction pipeline over batches of statement
// PDFs and collects per-document results.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/fatura-engine/internal/domain/extract"
	"github.com/FACorreiaa/fatura-engine/internal/domain/ledger"
	"github.com/FACorreiaa/fatura-engine/internal/domain/reconcile"
)

// Source is a readable document. The pipeline closes it when done.
type Source interface {
	extract.PageSource
	Close() error
}

// OpenFunc opens a document by path. Injected so tests can feed synthetic
// pages instead of real PDFs.
type OpenFunc func(path string) (Source, error)

// Options configures one pipeline run; zero values mean "infer from the
// document".
type Options struct {
	Layout      extract.Layout
	Mode        extract.Mode
	Year        int              // fallback year when the document has no due date
	ManualTotal *decimal.Decimal // overrides the printed-total heuristics
}

// DocumentResult is the pipeline output for a single document. Err is set
// when the document could not be processed at all; a failed reconciliation
// only sets Reconciliation and keeps the statements.
type DocumentResult struct {
	Path           string
	Statements     []ledger.Statement
	Meta           extract.Metadata
	Layout         extract.Layout
	Reconciliation reconcile.Result
	Err            error
}

// Service wires the extraction stages together.
type Service struct {
	open   OpenFunc
	logger *slog.Logger
}

// NewService creates a pipeline service reading documents through open.
func NewService(open OpenFunc, logger *slog.Logger) *Service {
	return &Service{open: open, logger: logger}
}

// ProcessDocument runs one document through extraction, normalization,
// reconciliation, and the final sign flip. IDs are not assigned here; they
// are stamped over the combined row set at merge time.
func (s *Service) ProcessDocument(path string, opts Options) DocumentResult {
	result := DocumentResult{Path: path}

	src, err := s.open(path)
	if err != nil {
		result.Err = fmt.Errorf("opening %s: %w", path, err)
		return result
	}
	defer src.Close()

	doc, err := extract.ExtractDocument(src, extract.DocumentContext{
		Layout: opts.Layout,
		Mode:   opts.Mode,
	})
	if err != nil {
		result.Err = fmt.Errorf("extracting %s: %w", path, err)
		return result
	}
	result.Meta = doc.Meta
	result.Layout = doc.Layout

	fallbackYear := opts.Year
	if fallbackYear == 0 {
		fallbackYear = time.Now().Year()
	}
	ref := ledger.RefDate{Due: doc.Meta.DueDate, Year: doc.Meta.RefYear(fallbackYear)}
	statements := make([]ledger.Statement, 0, len(doc.Raw))
	for _, raw := range doc.Raw {
		st, err := ledger.FromRaw(raw, ref)
		if err != nil {
			result.Err = fmt.Errorf("normalizing %s: %w", path, err)
			return result
		}
		statements = append(statements, st)
	}

	expected := opts.ManualTotal
	if expected == nil {
		if total, ok := reconcile.ExtractPrintedTotal(doc.Text); ok {
			expected = &total
		}
	}
	result.Reconciliation = reconcile.Check(ledger.Amounts(statements), expected)
	if warning := result.Reconciliation.Warning(); warning != "" {
		s.logger.Warn("reconciliation",
			slog.String("document", path),
			slog.String("detail", warning))
	}

	ledger.FlipSigns(statements)
	result.Statements = statements

	s.logger.Info("document processed",
		slog.String("document", path),
		slog.String("layout", string(doc.Layout)),
		slog.Int("statements", len(statements)),
		slog.Bool("reconciled", result.Reconciliation.Matches))
	return result
}

// ProcessBatch runs each document in order. A document failure is recorded in
// its result and logged, not propagated: one unreadable PDF must not sink the
// batch. The context aborts between documents.
func (s *Service) ProcessBatch(ctx context.Context, paths []string, opts Options) ([]DocumentResult, error) {
	results := make([]DocumentResult, 0, len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		result := s.ProcessDocument(path, opts)
		if result.Err != nil {
			s.logger.Error("document failed", slog.String("document", path), slog.Any("error", result.Err))
		}
		results = append(results, result)
	}
	return results, nil
}
