package experiment

import (
	"fmt"
	"sort"
	"strings"
)

// MalformedLinkError reports a link matrix or link request with the wrong
// shape: mismatched index vectors, a non-2-column row, or conflicting
// calling conventions.
type MalformedLinkError struct {
	Reason string
}

func (e MalformedLinkError) Error() string {
	return fmt.Sprintf("malformed link: %s", e.Reason)
}

// OutOfRangeLinkError reports a link matrix value outside its permitted
// bounds. Column 1 is the sample index, column 2 the element index.
type OutOfRangeLinkError struct {
	Row    int // 1-based matrix row
	Column int // 1 or 2
	Value  int
	Max    int
}

func (e OutOfRangeLinkError) Error() string {
	side := "sample"
	if e.Column == 2 {
		side = "element"
	}
	return fmt.Sprintf("link row %d: %s index %d out of range [1, %d]", e.Row, side, e.Value, e.Max)
}

// UnknownSlotError reports an address whose slot component does not name a
// declared storage location of the container.
type UnknownSlotError struct {
	Slot string
}

func (e UnknownSlotError) Error() string {
	return fmt.Sprintf("unknown slot %q (declared slots: %s)", e.Slot, strings.Join(slotNames(), ", "))
}

// EmptyTargetError reports an attempt to link against a zero-length
// collection.
type EmptyTargetError struct {
	Address string
}

func (e EmptyTargetError) Error() string {
	return fmt.Sprintf("cannot link %q: target collection is empty", e.Address)
}

// JoinFormatError reports a join expression that is not of the supported
// "<address> = <address>" form.
type JoinFormatError struct {
	Expr string
}

func (e JoinFormatError) Error() string {
	return fmt.Sprintf("unsupported join format %q: expected \"<slot.field> = <slot.field>\"", e.Expr)
}

// AmbiguousMappingError is the non-fatal diagnostic raised when a
// first-match owner lookup finds element indices mapped by more than one
// link row. The lookup still returns a deterministic first match; callers
// decide whether to escalate.
type AmbiguousMappingError struct {
	Elements []int // 1-based element indices with duplicate mappings
}

func (e AmbiguousMappingError) Error() string {
	elems := append([]int(nil), e.Elements...)
	sort.Ints(elems)
	parts := make([]string, len(elems))
	for i, el := range elems {
		parts[i] = fmt.Sprintf("%d", el)
	}
	return fmt.Sprintf("ambiguous mapping: elements [%s] belong to multiple samples; first match returned", strings.Join(parts, " "))
}
