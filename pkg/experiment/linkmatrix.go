package experiment

import (
	"fmt"
	"reflect"
)

// LinkMatrix is an ordered set of (sample index, element index) pairs
// recording one relationship between the sample table and one collection.
// Both indices are 1-based. Duplicate sample indices (n:1, n:m) and
// duplicate element indices (1:n, n:m) are permitted; a zero-row matrix is
// valid and means no relationship has been recorded.
type LinkMatrix [][2]int

// NewLinkMatrix builds a link matrix from raw rows, enforcing the
// two-column shape. Bounds are checked separately by Validate, since only
// the registry knows the lengths involved.
func NewLinkMatrix(rows [][]int) (LinkMatrix, error) {
	out := make(LinkMatrix, 0, len(rows))
	for i, row := range rows {
		if len(row) != 2 {
			return nil, MalformedLinkError{Reason: fmt.Sprintf("row %d has %d columns, want 2", i+1, len(row))}
		}
		out = append(out, [2]int{row[0], row[1]})
	}
	return out, nil
}

// Validate checks every row against the permitted bounds: sample indices in
// [1, maxFrom], element indices in [1, maxTo].
func (m LinkMatrix) Validate(maxFrom, maxTo int) error {
	for i, row := range m {
		if row[0] < 1 || row[0] > maxFrom {
			return OutOfRangeLinkError{Row: i + 1, Column: 1, Value: row[0], Max: maxFrom}
		}
		if row[1] < 1 || row[1] > maxTo {
			return OutOfRangeLinkError{Row: i + 1, Column: 2, Value: row[1], Max: maxTo}
		}
	}
	return nil
}

// Clone returns a copy of the matrix.
func (m LinkMatrix) Clone() LinkMatrix {
	if m == nil {
		return nil
	}
	return append(LinkMatrix(nil), m...)
}

// BuildLinks constructs the link matrix pairing every i where
// fromKeys[i] equals toKeys[j], for every matching j: a full cross product
// on ties, inner-join semantics (keys present on only one side contribute
// no rows). Rows are ordered by sample index ascending, then element index
// ascending. Equality is by value; values of incomparable dynamic types
// never match.
func BuildLinks(fromKeys, toKeys []any) LinkMatrix {
	var out LinkMatrix
	for i, from := range fromKeys {
		for j, to := range toKeys {
			if keyEqual(from, to) {
				out = append(out, [2]int{i + 1, j + 1})
			}
		}
	}
	return out
}

// keyEqual compares join key values without panicking on incomparable
// dynamic types such as slices.
func keyEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if !ta.Comparable() || !tb.Comparable() {
		return false
	}
	return a == b
}
