package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Kind identifies which dataset a file carries, by the filename-substring
// convention of the export jobs.
type Kind int

const (
	KindUnknown Kind = iota
	KindLeads        // filename contains "hubspot"
	KindSpend        // filename contains "gasto"
)

func KindOf(filename string) Kind {
	name := strings.ToLower(filename)
	switch {
	case strings.Contains(name, "hubspot"):
		return KindLeads
	case strings.Contains(name, "gasto"):
		return KindSpend
	}
	return KindUnknown
}

// Table is a decoded tabular dataset: one header row plus data rows. Rows are
// padded to the header width so positional access never goes out of range.
type Table struct {
	Name   string
	Header []string
	Rows   [][]string
}

// ReadTable decodes a CSV dataset. The separator is sniffed from the header
// line, so the semicolon-separated spend variant loads without configuration.
// Malformed rows are skipped, never fatal; only an unreadable header aborts.
func ReadTable(name string, r io.Reader, log *slog.Logger) (*Table, error) {
	br := bufio.NewReader(r)
	head, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	cr := csv.NewReader(br)
	cr.Comma = sniffComma(head)
	cr.FieldsPerRecord = -1 // pad/truncate ourselves

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read %s header: %w", name, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	t := &Table{Name: name, Header: header}
	skipped := 0
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			skipped++
			continue
		}
		t.Rows = append(t.Rows, pad(row, len(header)))
	}
	if skipped > 0 && log != nil {
		log.Warn("skipped malformed rows", slog.String("dataset", name), slog.Int("rows", skipped))
	}
	return t, nil
}

// Col returns the position of a header, or -1 when the source omits it.
func (t *Table) Col(header string) int {
	for i, h := range t.Header {
		if h == header {
			return i
		}
	}
	return -1
}

// Field returns the trimmed cell at (row, col), tolerating col == -1.
func (t *Table) Field(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func sniffComma(head []byte) rune {
	line := string(head)
	if i := strings.IndexAny(line, "\r\n"); i >= 0 {
		line = line[:i]
	}
	if strings.Count(line, ";") > strings.Count(line, ",") {
		return ';'
	}
	return ','
}

func pad(row []string, n int) []string {
	for len(row) < n {
		row = append(row, "")
	}
	return row[:n]
}
