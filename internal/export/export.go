// Package export produces secondary, non-authoritative renderings of the
// current record collection: a CSV file mirroring the backing format and a
// paginated document built by an injected Renderer.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/ukane-philemon/srms/internal/ops"
	"github.com/ukane-philemon/srms/internal/record"
)

var (
	// ErrFeatureUnavailable is returned when a document export is requested
	// but no Renderer implementation was provided.
	ErrFeatureUnavailable = errors.New("document rendering is not available")

	// ErrRenderFailed is returned when the Renderer reports a failure.
	ErrRenderFailed = errors.New("failed to render document")
)

// Meta describes a single document export run.
type Meta struct {
	// ReportID uniquely identifies the export run and appears in the
	// rendered document.
	ReportID     string
	GeneratedAt  time.Time
	TotalRecords int
}

// Renderer lays an ordered sequence of rows out into a paginated document at
// path. Implementations own page layout and typesetting; callers own the row
// contents.
type Renderer interface {
	Render(path string, title string, meta Meta, headers []string, rows [][]string) error
}

// DocumentHeaders is the column order of rendered documents.
var DocumentHeaders = []string{"Roll", "Name", "Score", "Grade"}

// CSV writes the collection to path as a CSV file: header row plus one row
// per record, in the given order, with the same field order as the backing
// file. The file is written to a temporary sibling and renamed into place so
// a failed export leaves any prior file at path untouched.
func CSV(path string, records []*record.Record) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}

	err = writeCSV(tmp, records)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmp.Name(), path)
	}
	if err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to export %s: %w", path, err)
	}

	return nil
}

func writeCSV(w io.Writer, records []*record.Record) error {
	writer := csv.NewWriter(w)

	err := writer.Write(record.FieldNames)
	if err != nil {
		return err
	}

	for _, r := range records {
		err = writer.Write(r.Fields())
		if err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

// Document renders the collection as a paginated document at path using the
// provided renderer. Returns ErrFeatureUnavailable if renderer is nil and an
// error wrapping ErrRenderFailed if the renderer fails.
func Document(renderer Renderer, path string, title string, records []*record.Record) (Meta, error) {
	if renderer == nil {
		return Meta{}, ErrFeatureUnavailable
	}

	meta := Meta{
		ReportID:     uuid.NewString(),
		GeneratedAt:  time.Now(),
		TotalRecords: len(records),
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			r.Roll,
			r.Name,
			record.FormatScore(r.Score),
			ops.Grade(r.Score),
		})
	}

	err := renderer.Render(path, title, meta, DocumentHeaders, rows)
	if err != nil {
		return Meta{}, fmt.Errorf("%w: %v", ErrRenderFailed, err)
	}

	return meta, nil
}
