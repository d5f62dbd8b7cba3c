// Package tabular reads and writes the guest list CSV file.
//
// The file has the header name,phoneNumber,maxGuests,response,attending_count
// and one row per guest. Rows are keyed by phoneNumber when merging.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"rsvptracker/internal/domain"
)

// Column names, in file order.
const (
	ColName           = "name"
	ColPhoneNumber    = "phoneNumber"
	ColMaxGuests      = "maxGuests"
	ColResponse       = "response"
	ColAttendingCount = "attending_count"
)

// Header is the exact header row written on export.
var Header = []string{ColName, ColPhoneNumber, ColMaxGuests, ColResponse, ColAttendingCount}

// ErrMissingColumn is returned when a file lacks name or phoneNumber.
var ErrMissingColumn = errors.New("tabular: missing required column")

// Row is one guest line with cells kept as text, so rows that only live in
// the file round-trip unchanged.
type Row struct {
	Name           string
	PhoneNumber    string
	MaxGuests      string
	Response       string
	AttendingCount string
}

// FromGuest converts a stored guest to its file row.
func FromGuest(g *domain.Guest) Row {
	return Row{
		Name:           g.Name,
		PhoneNumber:    g.PhoneNumber,
		MaxGuests:      g.MaxGuests,
		Response:       string(g.Response),
		AttendingCount: strconv.Itoa(g.AttendingCount),
	}
}

// Guest builds a guest from the row for loading. Cells are trimmed and empty
// ones get the creation defaults. It fails on an unknown response or a
// non-integer count.
func (r Row) Guest() (*domain.Guest, error) {
	phone := strings.TrimSpace(r.PhoneNumber)
	if phone == "" {
		return nil, fmt.Errorf("%w: empty phoneNumber", domain.ErrInvalidInput)
	}
	g := domain.NewGuest(strings.TrimSpace(r.Name), phone, strings.TrimSpace(r.MaxGuests))
	if resp := strings.TrimSpace(r.Response); resp != "" {
		st, err := domain.ParseRSVPStatus(resp)
		if err != nil {
			return nil, err
		}
		g.Response = st
	}
	if s := strings.TrimSpace(r.AttendingCount); s != "" {
		n, err := parseCount(s)
		if err != nil {
			return nil, fmt.Errorf("%w: attending_count %q", domain.ErrInvalidInput, r.AttendingCount)
		}
		g.AttendingCount = n
	}
	return g, nil
}

// parseCount accepts integers and integral floats ("2.0"), which spreadsheet
// tools tend to produce.
func parseCount(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("not an integer: %q", s)
	}
	return int(f), nil
}

func (r Row) record() []string {
	return []string{r.Name, r.PhoneNumber, r.MaxGuests, r.Response, r.AttendingCount}
}

// Read parses a guest file. Columns may appear in any order; only name and
// phoneNumber are required, absent optional columns read as empty cells.
// Cells are returned verbatim so rows written by Write read back equal.
func Read(in io.Reader) ([]Row, error) {
	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return []Row{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	index := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		index[h] = i
	}
	for _, required := range []string{ColName, ColPhoneNumber} {
		if _, ok := index[required]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, required)
		}
	}

	cell := func(rec []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	rows := make([]Row, 0)
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if len(rec) == 1 && strings.TrimSpace(rec[0]) == "" {
			continue
		}
		rows = append(rows, Row{
			Name:           cell(rec, ColName),
			PhoneNumber:    cell(rec, ColPhoneNumber),
			MaxGuests:      cell(rec, ColMaxGuests),
			Response:       cell(rec, ColResponse),
			AttendingCount: cell(rec, ColAttendingCount),
		})
	}
	return rows, nil
}

// ReadFile opens path and parses it with Read. A missing file yields an
// error matching fs.ErrNotExist.
func ReadFile(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// Write writes the header followed by rows.
func Write(out io.Writer, rows []Row) error {
	w := csv.NewWriter(out)
	if err := w.Write(Header); err != nil {
		return err
	}
	for _, r := range rows {
		if err := w.Write(r.record()); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteFile replaces path with the encoded rows. The content goes to a
// temporary file in the same directory first and is renamed into place.
func WriteFile(path string, rows []Row) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := Write(tmp, rows); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write rows: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// SortRows orders rows by name, then phone number.
func SortRows(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].PhoneNumber < rows[j].PhoneNumber
	})
}

// Merge overlays current on existing, keyed by phone number. Current rows win
// on conflict; rows only present in existing are kept. Duplicate phone
// numbers within existing collapse to the last occurrence. The result is
// sorted with SortRows.
func Merge(existing, current []Row) ([]Row, domain.MergeStats) {
	var stats domain.MergeStats

	byPhone := make(map[string]Row, len(existing)+len(current))
	order := make([]string, 0, len(existing)+len(current))
	fromFile := make(map[string]bool, len(existing))
	for _, r := range existing {
		if _, seen := byPhone[r.PhoneNumber]; !seen {
			order = append(order, r.PhoneNumber)
		}
		byPhone[r.PhoneNumber] = r
		fromFile[r.PhoneNumber] = true
	}

	touched := make(map[string]bool, len(current))
	for _, r := range current {
		old, inFile := byPhone[r.PhoneNumber]
		switch {
		case !inFile:
			stats.Added++
			order = append(order, r.PhoneNumber)
		case old == r:
			stats.Unchanged++
		default:
			stats.Updated++
		}
		byPhone[r.PhoneNumber] = r
		touched[r.PhoneNumber] = true
	}
	for phone := range fromFile {
		if !touched[phone] {
			stats.Preserved++
		}
	}

	merged := make([]Row, 0, len(order))
	for _, phone := range order {
		merged = append(merged, byPhone[phone])
	}
	SortRows(merged)
	return merged, stats
}
