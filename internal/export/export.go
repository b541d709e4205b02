// Package export encodes differentiation matrices for consumers outside Go.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
	"time"

	"github.com/san-kum/colloc/internal/collocation"
)

var (
	ErrMalformed = errors.New("export: malformed document")
	ErrStale     = errors.New("export: matrix does not match its points")
)

type Document struct {
	ID           string      `json:"id,omitempty"`
	Size         int         `json:"size"`
	Distribution string      `json:"distribution"`
	Precision    string      `json:"precision"`
	Created      time.Time   `json:"created"`
	Points       []float64   `json:"points"`
	Matrix       [][]float64 `json:"matrix"`
}

// NewDocument captures pts and d, widened to float64.
func NewDocument[S collocation.Scalar](distribution string, pts collocation.Points[S], d *collocation.Matrix[S]) (*Document, error) {
	if d.Size() != len(pts) {
		return nil, fmt.Errorf("%w: matrix %d, points %d", collocation.ErrDimensionMismatch, d.Size(), len(pts))
	}
	var zero S
	return &Document{
		Size:         d.Size(),
		Distribution: distribution,
		Precision:    fmt.Sprintf("float%d", reflect.TypeOf(zero).Bits()),
		Created:      time.Now().UTC(),
		Points:       pts.Float64s(),
		Matrix:       d.Float64s(),
	}, nil
}

// Validate checks that the shapes agree and every value is finite.
func (d *Document) Validate() error {
	if d.Size < 1 {
		return fmt.Errorf("%w: size %d", ErrMalformed, d.Size)
	}
	if len(d.Points) != d.Size || len(d.Matrix) != d.Size {
		return fmt.Errorf("%w: size %d with %d points and %d rows", ErrMalformed, d.Size, len(d.Points), len(d.Matrix))
	}
	for j, row := range d.Matrix {
		if len(row) != d.Size {
			return fmt.Errorf("%w: row %d has %d entries", ErrMalformed, j, len(row))
		}
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: row %d holds %v", ErrMalformed, j, v)
			}
		}
	}
	return nil
}

// Verify rebuilds the matrix from the stored points and compares entries
// within tol, relative to each entry's magnitude.
func (d *Document) Verify(tol float64) error {
	if err := d.Validate(); err != nil {
		return err
	}
	m, err := collocation.Build(collocation.Points[float64](d.Points))
	if err != nil {
		return err
	}
	for j, row := range d.Matrix {
		for i, v := range row {
			want := m.At(j, i)
			if math.Abs(v-want) > tol*(1+math.Abs(want)) {
				return fmt.Errorf("%w: entry (%d,%d) is %g, rebuilt %g", ErrStale, j, i, v, want)
			}
		}
	}
	return nil
}

func WriteJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

func ReadJSON(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// WriteCSV writes one matrix row per line. digits < 0 keeps the shortest
// representation that round-trips.
func WriteCSV(w io.Writer, rows [][]float64, digits int) error {
	cw := csv.NewWriter(w)
	for _, row := range rows {
		record := make([]string, len(row))
		for i, v := range row {
			if digits < 0 {
				record[i] = strconv.FormatFloat(v, 'g', -1, 64)
			} else {
				record[i] = strconv.FormatFloat(v, 'f', digits, 64)
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a square matrix written by WriteCSV.
func ReadCSV(r io.Reader) ([][]float64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	rows := make([][]float64, len(records))
	for j, record := range records {
		if len(record) != len(records) {
			return nil, fmt.Errorf("%w: row %d has %d entries, want %d", ErrMalformed, j, len(record), len(records))
		}
		rows[j] = make([]float64, len(record))
		for i, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: row %d: %w", ErrMalformed, j, err)
			}
			rows[j][i] = v
		}
	}
	return rows, nil
}
