// Package matrix provides the dense row-major float64 matrix used for point
// sets and centroid sets. The flat single-slice layout keeps rows contiguous
// so distance kernels operate on plain subslices without copying.
package matrix

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Dense is a rows×cols matrix backed by a single row-major slice.
type Dense struct {
	rows, cols int
	data       []float64
}

// NewDense creates a zero-valued rows×cols matrix.
// It panics if rows or cols is not positive.
func NewDense(rows, cols int) *Dense {
	if rows <= 0 || cols <= 0 {
		panic(fmt.Sprintf("matrix: invalid shape %dx%d", rows, cols))
	}
	return &Dense{
		rows: rows,
		cols: cols,
		data: make([]float64, rows*cols),
	}
}

// NewDenseData creates a rows×cols matrix adopting data as its backing slice.
// It panics if len(data) != rows*cols.
func NewDenseData(rows, cols int, data []float64) *Dense {
	if len(data) != rows*cols {
		panic(fmt.Sprintf("matrix: data length %d does not match shape %dx%d", len(data), rows, cols))
	}
	return &Dense{rows: rows, cols: cols, data: data}
}

// Dims returns the number of rows and columns.
func (m *Dense) Dims() (rows, cols int) { return m.rows, m.cols }

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.cols }

// At returns the element at row i, column j.
func (m *Dense) At(i, j int) float64 { return m.data[i*m.cols+j] }

// Set assigns v to the element at row i, column j.
func (m *Dense) Set(i, j int, v float64) { m.data[i*m.cols+j] = v }

// Row returns row i as a subslice of the backing storage.
// Mutating the returned slice mutates the matrix.
func (m *Dense) Row(i int) []float64 {
	return m.data[i*m.cols : (i+1)*m.cols]
}

// SetRow copies src into row i.
// It panics if len(src) != Cols().
func (m *Dense) SetRow(i int, src []float64) {
	if len(src) != m.cols {
		panic(fmt.Sprintf("matrix: row length %d does not match %d columns", len(src), m.cols))
	}
	copy(m.Row(i), src)
}

// Clone returns a deep copy of the matrix.
func (m *Dense) Clone() *Dense {
	data := make([]float64, len(m.data))
	copy(data, m.data)
	return &Dense{rows: m.rows, cols: m.cols, data: data}
}

// Equal reports whether m and other have the same shape and every element
// agrees within tol.
func (m *Dense) Equal(other *Dense, tol float64) bool {
	if other == nil || m.rows != other.rows || m.cols != other.cols {
		return false
	}
	return floats.EqualApprox(m.data, other.data, tol)
}

// AppendColumn grows the matrix in place to rows×(cols+1), filling the new
// trailing column from col. The receiver keeps its identity, so callers that
// hold the matrix observe the mutation.
// It panics if len(col) != Rows().
func (m *Dense) AppendColumn(col []float64) {
	if len(col) != m.rows {
		panic(fmt.Sprintf("matrix: column length %d does not match %d rows", len(col), m.rows))
	}
	data := make([]float64, m.rows*(m.cols+1))
	for i := 0; i < m.rows; i++ {
		copy(data[i*(m.cols+1):], m.data[i*m.cols:(i+1)*m.cols])
		data[i*(m.cols+1)+m.cols] = col[i]
	}
	m.data = data
	m.cols++
}

// RemoveRow removes row i in place, shifting later rows up.
// It panics if the matrix has a single row.
func (m *Dense) RemoveRow(i int) {
	if m.rows <= 1 {
		panic("matrix: cannot remove the only row")
	}
	copy(m.data[i*m.cols:], m.data[(i+1)*m.cols:])
	m.rows--
	m.data = m.data[:m.rows*m.cols]
}

// Gather returns a new matrix containing the given rows of m, in order.
func (m *Dense) Gather(rows []int) *Dense {
	out := NewDense(len(rows), m.cols)
	for i, r := range rows {
		copy(out.Row(i), m.Row(r))
	}
	return out
}

// Scale multiplies row i by v.
func (m *Dense) Scale(i int, v float64) {
	floats.Scale(v, m.Row(i))
}

// AddTo accumulates src into row i.
func (m *Dense) AddTo(i int, src []float64) {
	floats.Add(m.Row(i), src)
}
