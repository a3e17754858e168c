package ledger

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// MergeResult reports what an idempotent write actually changed.
type MergeResult struct {
	Inserted int
	Skipped  int
}

// WriteOptions configures the merge writer.
type WriteOptions struct {
	IncludeHeaders bool // write a header row when creating the table
	Enhanced       bool // include category/location columns
}

// LoadTable reads an existing output table. A missing file is an empty
// table, not an error. Headered tables (either column variant) unmarshal via
// gocsv; tables written with IncludeHeaders=false fall back to positional
// column mapping.
func LoadTable(path string) ([]Row, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening table %s: %w", path, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading table %s: %w", path, err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	if records[0][0] == "id" {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return nil, err
		}
		var rows []Row
		if err := gocsv.Unmarshal(f, &rows); err != nil {
			if errors.Is(err, gocsv.ErrEmptyCSVFile) {
				return nil, nil
			}
			return nil, fmt.Errorf("reading table %s: %w", path, err)
		}
		return rows, nil
	}

	rows := make([]Row, 0, len(records))
	for _, rec := range records {
		rows = append(rows, rowFromRecord(rec))
	}
	return rows, nil
}

// rowFromRecord maps a headerless record by canonical column position.
func rowFromRecord(rec []string) Row {
	get := func(i int) string {
		if i < len(rec) {
			return rec[i]
		}
		return ""
	}
	return Row{
		ID:              get(0),
		TransactionDate: get(1),
		PaymentDate:     get(2),
		Description:     get(3),
		Amount:          get(4),
		Category:        get(5),
		Location:        get(6),
	}
}

// MergeCSV appends rows to the table at path, skipping any row whose key is
// already present. Writing is strictly append-only: existing rows are never
// rewritten, so re-running the same extraction is a no-op.
func MergeCSV(path string, rows []Row, opts WriteOptions) (MergeResult, error) {
	existing, err := LoadTable(path)
	if err != nil {
		return MergeResult{}, err
	}

	seen := make(map[string]struct{}, len(existing))
	for _, r := range existing {
		seen[r.Key(opts.Enhanced)] = struct{}{}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return MergeResult{}, fmt.Errorf("creating output directory: %w", err)
	}

	isNew := len(existing) == 0
	if _, statErr := os.Stat(path); statErr == nil {
		isNew = false
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return MergeResult{}, fmt.Errorf("opening table %s: %w", path, err)
	}
	defer f.Close()

	var result MergeResult
	if err := writeRows(f, rows, seen, opts, isNew, &result); err != nil {
		return MergeResult{}, fmt.Errorf("writing table %s: %w", path, err)
	}
	return result, nil
}

// WriteCSV writes rows to w without dedup, headers included per options.
// Used for per-file output and stdout.
func WriteCSV(w io.Writer, rows []Row, opts WriteOptions) error {
	var result MergeResult
	return writeRows(w, rows, nil, opts, true, &result)
}

func writeRows(w io.Writer, rows []Row, seen map[string]struct{}, opts WriteOptions, withHeaders bool, result *MergeResult) error {
	cw := csv.NewWriter(w)

	if withHeaders && opts.IncludeHeaders {
		if err := cw.Write(Headers(opts.Enhanced)); err != nil {
			return err
		}
	}

	for _, r := range rows {
		key := r.Key(opts.Enhanced)
		if seen != nil {
			if _, dup := seen[key]; dup {
				result.Skipped++
				continue
			}
			seen[key] = struct{}{}
		}
		if err := cw.Write(r.Fields(opts.Enhanced)); err != nil {
			return err
		}
		result.Inserted++
	}

	cw.Flush()
	return cw.Error()
}
