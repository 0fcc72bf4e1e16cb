// SPDX-License-Identifier: MIT

// Package mmio reads and writes matrices in the NIST Matrix Market exchange
// format and converts them to and from csr.Matrix.
//
// Supported on read:
//   - coordinate: real | integer | pattern, general | symmetric | skew-symmetric
//   - array:      real | integer, general (column-major values)
//
// Write always emits "coordinate real general" with 1-based indices and the
// shortest decimal form that round-trips each value.
package mmio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/katalvlaran/csrkit/csr"
)

var (
	// ErrHeader is returned when the %%MatrixMarket banner is missing or malformed.
	ErrHeader = errors.New("mmio: invalid header")

	// ErrFormat is returned for malformed size or entry lines.
	ErrFormat = errors.New("mmio: malformed data")

	// ErrUnsupported is returned for valid but unsupported variants
	// (complex fields, hermitian or symmetric array storage).
	ErrUnsupported = errors.New("mmio: unsupported matrix variant")
)

const banner = "%%matrixmarket"

// maxLine bounds a single input line; entry lines are short.
const maxLine = 1 << 20

// maxPrealloc caps the entry capacity taken from an untrusted size line.
const maxPrealloc = 1 << 16

// header describes the banner line.
type header struct {
	format   string // coordinate | array
	field    string // real | integer | pattern
	symmetry string // general | symmetric | skew-symmetric
}

// ReadFile opens path and decodes it with Read.
func ReadFile(path string) (*csr.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return m, nil
}

// Read decodes a Matrix Market stream into a canonical CSR matrix.
// Duplicate coordinate entries are summed.
func Read(r io.Reader) (*csr.Matrix, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("empty input: %w", ErrHeader)
	}
	h, err := parseHeader(sc.Text())
	if err != nil {
		return nil, err
	}

	// Size line: first non-comment, non-blank line.
	var size []string
	line := 1
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "%") {
			continue
		}
		size = strings.Fields(text)
		break
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if size == nil {
		return nil, fmt.Errorf("missing size line: %w", ErrFormat)
	}

	switch h.format {
	case "coordinate":
		return readCoordinate(sc, h, size, line)
	default:
		return readArray(sc, h, size, line)
	}
}

// parseHeader validates the banner line.
func parseHeader(text string) (header, error) {
	f := strings.Fields(strings.ToLower(text))
	if len(f) != 5 || f[0] != banner || f[1] != "matrix" {
		return header{}, fmt.Errorf("%q: %w", text, ErrHeader)
	}
	h := header{format: f[2], field: f[3], symmetry: f[4]}

	switch h.format {
	case "coordinate", "array":
	default:
		return header{}, fmt.Errorf("format %q: %w", h.format, ErrHeader)
	}
	switch h.field {
	case "real", "integer", "double":
		h.field = "real"
	case "pattern":
		if h.format == "array" {
			return header{}, fmt.Errorf("pattern array: %w", ErrHeader)
		}
	case "complex":
		return header{}, fmt.Errorf("field %q: %w", h.field, ErrUnsupported)
	default:
		return header{}, fmt.Errorf("field %q: %w", h.field, ErrHeader)
	}
	switch h.symmetry {
	case "general":
	case "symmetric", "skew-symmetric":
		if h.format == "array" {
			return header{}, fmt.Errorf("%s array: %w", h.symmetry, ErrUnsupported)
		}
	case "hermitian":
		return header{}, fmt.Errorf("symmetry %q: %w", h.symmetry, ErrUnsupported)
	default:
		return header{}, fmt.Errorf("symmetry %q: %w", h.symmetry, ErrHeader)
	}

	return h, nil
}

// parseDims parses non-negative integers from fields.
func parseDims(fields []string, want int, line int) ([]int, error) {
	if len(fields) != want {
		return nil, fmt.Errorf("line %d: want %d size fields, got %d: %w", line, want, len(fields), ErrFormat)
	}
	out := make([]int, want)
	for i, s := range fields {
		v, err := strconv.Atoi(s)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("line %d: size %q: %w", line, s, ErrFormat)
		}
		out[i] = v
	}

	return out, nil
}

// cellCount returns rows*cols, or false when the product overflows int.
func cellCount(rows, cols int) (int, bool) {
	if rows != 0 && cols > math.MaxInt/rows {
		return 0, false
	}

	return rows * cols, true
}

func readCoordinate(sc *bufio.Scanner, h header, size []string, line int) (*csr.Matrix, error) {
	dims, err := parseDims(size, 3, line)
	if err != nil {
		return nil, err
	}
	rows, cols, nnz := dims[0], dims[1], dims[2]
	if h.symmetry != "general" && rows != cols {
		return nil, fmt.Errorf("%s %dx%d: %w", h.symmetry, rows, cols, ErrFormat)
	}
	if cells, ok := cellCount(rows, cols); ok && h.symmetry == "general" && nnz > cells {
		return nil, fmt.Errorf("line %d: %d entries exceed %dx%d: %w", line, nnz, rows, cols, ErrFormat)
	}

	entries := make([]csr.Triplet, 0, min(nnz, maxPrealloc))
	seen := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "%") {
			continue
		}
		if seen == nnz {
			return nil, fmt.Errorf("line %d: more than %d entries: %w", line, nnz, ErrFormat)
		}
		f := strings.Fields(text)
		wantFields := 3
		if h.field == "pattern" {
			wantFields = 2
		}
		if len(f) != wantFields {
			return nil, fmt.Errorf("line %d: want %d fields, got %d: %w", line, wantFields, len(f), ErrFormat)
		}
		i, errI := strconv.Atoi(f[0])
		j, errJ := strconv.Atoi(f[1])
		if errI != nil || errJ != nil || i < 1 || i > rows || j < 1 || j > cols {
			return nil, fmt.Errorf("line %d: index (%s,%s): %w", line, f[0], f[1], ErrFormat)
		}
		v := 1.0
		if h.field != "pattern" {
			if v, err = strconv.ParseFloat(f[2], 64); err != nil {
				return nil, fmt.Errorf("line %d: value %q: %w", line, f[2], ErrFormat)
			}
		}

		entries = append(entries, csr.Triplet{Row: i - 1, Col: j - 1, Val: v})
		if i != j {
			switch h.symmetry {
			case "symmetric":
				entries = append(entries, csr.Triplet{Row: j - 1, Col: i - 1, Val: v})
			case "skew-symmetric":
				entries = append(entries, csr.Triplet{Row: j - 1, Col: i - 1, Val: -v})
			}
		}
		seen++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if seen != nnz {
		return nil, fmt.Errorf("got %d entries, header says %d: %w", seen, nnz, ErrFormat)
	}

	return csr.FromTriplets(rows, cols, entries)
}

func readArray(sc *bufio.Scanner, _ header, size []string, line int) (*csr.Matrix, error) {
	dims, err := parseDims(size, 2, line)
	if err != nil {
		return nil, err
	}
	rows, cols := dims[0], dims[1]
	total, ok := cellCount(rows, cols)
	if !ok {
		return nil, fmt.Errorf("line %d: %dx%d overflows: %w", line, rows, cols, ErrFormat)
	}

	entries := make([]csr.Triplet, 0)
	k := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "%") {
			continue
		}
		if k == total {
			return nil, fmt.Errorf("line %d: more than %d values: %w", line, total, ErrFormat)
		}
		v, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: value %q: %w", line, text, ErrFormat)
		}
		if v != 0 {
			// Column-major order.
			entries = append(entries, csr.Triplet{Row: k % rows, Col: k / rows, Val: v})
		}
		k++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if k != total {
		return nil, fmt.Errorf("got %d values, want %d: %w", k, total, ErrFormat)
	}

	return csr.FromTriplets(rows, cols, entries)
}

// Write encodes m as "coordinate real general", rows in order.
func Write(w io.Writer, m *csr.Matrix) error {
	if m == nil {
		return csr.ErrNilMatrix
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "%%MatrixMarket matrix coordinate real general")
	fmt.Fprintf(bw, "%d %d %d\n", m.Rows(), m.Cols(), m.Nnz())

	buf := make([]byte, 0, 64)
	for i := 0; i < m.Rows(); i++ {
		cols, vals := m.Row(i)
		for k, j := range cols {
			buf = buf[:0]
			buf = strconv.AppendInt(buf, int64(i+1), 10)
			buf = append(buf, ' ')
			buf = strconv.AppendInt(buf, int64(j+1), 10)
			buf = append(buf, ' ')
			buf = strconv.AppendFloat(buf, vals[k], 'g', -1, 64)
			buf = append(buf, '\n')
			if _, err := bw.Write(buf); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}

// WriteFile creates (or truncates) path and writes m to it.
func WriteFile(path string, m *csr.Matrix) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return Write(f, m)
}
