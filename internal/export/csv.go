// Package export writes a brand's post history as CSV.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"socialpost/internal/logging"
	"socialpost/internal/types"
)

// ErrNoPosts is returned when there is nothing to export.
var ErrNoPosts = errors.New("no posts to export")

// Header is the first CSV row.
var Header = []string{"Date", "Platform", "Topic", "Text", "TOV Phrase", "Hashtags"}

// WriteCSV writes one row per post after the header. A field is quoted when it
// contains a comma, a quote or a line break, and inner quotes are doubled.
// encoding/csv also quotes a field that starts with a space and the field \.
// so both read back unchanged.
func WriteCSV(w io.Writer, posts []types.Post) error {
	if len(posts) == 0 {
		return ErrNoPosts
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, p := range posts {
		if err := cw.Write(Row(p)); err != nil {
			return fmt.Errorf("failed to write post %s: %w", p.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}

	logging.Get(logging.CategoryExport).Info("exported %d posts", len(posts))
	return nil
}

// Row projects a post onto the CSV columns.
func Row(p types.Post) []string {
	platform := ""
	if p.Platform.Valid() {
		platform = p.Platform.String()
	}
	date := ""
	if !p.DateGenerated.IsZero() {
		date = p.DateGenerated.UTC().Format(time.RFC3339)
	}
	return []string{
		date,
		platform,
		p.Topic,
		p.Text,
		p.TovPhrase,
		strings.Join(p.Hashtags, " "),
	}
}

// FileName is the suggested export file name for a brand.
func FileName(b types.Brand) string {
	name := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '_'
		}
		return r
	}, strings.TrimSpace(b.Name))
	if name == "" {
		name = "brand"
	}
	return name + "_content_history.csv"
}
