package linalg

import (
	"fmt"

	"github.com/taigrr/halfblock/pkg/math3d"
)

// Matrix is a dense row-major matrix.
type Matrix[T Number] struct {
	rows, cols int
	data       []T
}

// NewMatrix returns a rows×cols zero matrix.
func NewMatrix[T Number](rows, cols int) Matrix[T] {
	if rows < 0 || cols < 0 {
		rows, cols = 0, 0
	}
	return Matrix[T]{rows: rows, cols: cols, data: make([]T, rows*cols)}
}

// Identity returns the n×n identity matrix.
func Identity[T Number](n int) Matrix[T] {
	m := NewMatrix[T](n, n)
	for i := range n {
		m.data[i*n+i] = 1
	}
	return m
}

// FromRows builds a matrix from equal-length rows.
func FromRows[T Number](rows ...Vector[T]) (Matrix[T], error) {
	if len(rows) == 0 {
		return NewMatrix[T](0, 0), nil
	}
	cols := len(rows[0])
	m := NewMatrix[T](len(rows), cols)
	for i, r := range rows {
		if len(r) != cols {
			return Matrix[T]{}, fmt.Errorf("row %d: %w: %d vs %d columns", i, ErrDimension, len(r), cols)
		}
		copy(m.data[i*cols:], r)
	}
	return m, nil
}

// Rows returns the row count.
func (m Matrix[T]) Rows() int { return m.rows }

// Cols returns the column count.
func (m Matrix[T]) Cols() int { return m.cols }

// At returns the element at row i, column j. It panics when out of range.
func (m Matrix[T]) At(i, j int) T {
	m.check(i, j)
	return m.data[i*m.cols+j]
}

// Set stores v at row i, column j. It panics when out of range.
func (m Matrix[T]) Set(i, j int, v T) {
	m.check(i, j)
	m.data[i*m.cols+j] = v
}

func (m Matrix[T]) check(i, j int) {
	if i < 0 || i >= m.rows || j < 0 || j >= m.cols {
		panic(fmt.Sprintf("linalg: index (%d, %d) out of range for %dx%d matrix", i, j, m.rows, m.cols))
	}
}

// Row returns a copy of row i.
func (m Matrix[T]) Row(i int) Vector[T] {
	m.check(i, 0)
	return Vec(m.data[i*m.cols : (i+1)*m.cols]...)
}

// Col returns a copy of column j.
func (m Matrix[T]) Col(j int) Vector[T] {
	m.check(0, j)
	out := make(Vector[T], m.rows)
	for i := range m.rows {
		out[i] = m.data[i*m.cols+j]
	}
	return out
}

// Mul returns m · o. The column count of m must equal the row count of o.
func (m Matrix[T]) Mul(o Matrix[T]) (Matrix[T], error) {
	if m.cols != o.rows {
		return Matrix[T]{}, fmt.Errorf("%w: %dx%d · %dx%d", ErrDimension, m.rows, m.cols, o.rows, o.cols)
	}
	out := NewMatrix[T](m.rows, o.cols)
	for i := range m.rows {
		for j := range o.cols {
			var sum T
			for k := range m.cols {
				sum += m.data[i*m.cols+k] * o.data[k*o.cols+j]
			}
			out.data[i*o.cols+j] = sum
		}
	}
	return out, nil
}

// MulVector returns the row vector product v · m.
func (m Matrix[T]) MulVector(v Vector[T]) (Vector[T], error) {
	if len(v) != m.rows {
		return nil, fmt.Errorf("%w: %d-vector · %dx%d", ErrDimension, len(v), m.rows, m.cols)
	}
	out := make(Vector[T], m.cols)
	for j := range m.cols {
		var sum T
		for i := range m.rows {
			sum += v[i] * m.data[i*m.cols+j]
		}
		out[j] = sum
	}
	return out, nil
}

// Transpose returns the transposed matrix.
func (m Matrix[T]) Transpose() Matrix[T] {
	out := NewMatrix[T](m.cols, m.rows)
	for i := range m.rows {
		for j := range m.cols {
			out.data[j*m.rows+i] = m.data[i*m.cols+j]
		}
	}
	return out
}

// Mat4 converts a 4×4 matrix to math3d.Mat4.
func (m Matrix[T]) Mat4() (math3d.Mat4, error) {
	if m.rows != 4 || m.cols != 4 {
		return math3d.Mat4{}, fmt.Errorf("%w: want 4x4, got %dx%d", ErrDimension, m.rows, m.cols)
	}
	var out math3d.Mat4
	for i := range 4 {
		for j := range 4 {
			out[i][j] = float64(m.data[i*4+j])
		}
	}
	return out, nil
}

// FromMat4 converts a math3d.Mat4 to a float64 Matrix.
func FromMat4(src math3d.Mat4) Matrix[float64] {
	m := NewMatrix[float64](4, 4)
	for i := range 4 {
		copy(m.data[i*4:], src[i][:])
	}
	return m
}
