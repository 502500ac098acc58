package experiment

import (
	"fmt"
	"strings"
)

// ParseJoin parses a declarative join expression of the exact form
// "<address> = <address>" (a single equals sign, arbitrary surrounding
// whitespace). Any other shape fails with JoinFormatError; an address that
// does not name a declared slot fails with UnknownSlotError.
func ParseJoin(expr string) (Address, Address, error) {
	parts := strings.Split(expr, "=")
	if len(parts) != 2 {
		return Address{}, Address{}, JoinFormatError{Expr: expr}
	}
	left := strings.TrimSpace(parts[0])
	right := strings.TrimSpace(parts[1])
	if left == "" || right == "" {
		return Address{}, Address{}, JoinFormatError{Expr: expr}
	}
	leftAddr, err := ParseAddress(left)
	if err != nil {
		return Address{}, Address{}, err
	}
	rightAddr, err := ParseAddress(right)
	if err != nil {
		return Address{}, Address{}, err
	}
	return leftAddr, rightAddr, nil
}

// resolveJoin evaluates the join expression against the container: it
// fetches the value vector behind each address and builds the link matrix
// by equality matching. The left side must address the sample table; the
// right side must address the link target.
func (e Experiment) resolveJoin(expr string, target Address) (LinkMatrix, error) {
	left, right, err := ParseJoin(expr)
	if err != nil {
		return nil, err
	}
	// Accept the two sides in either order relative to the target.
	if right.Slot == SlotSampleData && left.Slot == target.Slot {
		left, right = right, left
	}
	if left.Slot != SlotSampleData {
		return nil, JoinFormatError{Expr: expr}
	}
	if right.Slot != target.Slot {
		return nil, fmt.Errorf("join %q does not reference link target %q", expr, target)
	}
	fromKeys, err := e.fieldValues(left)
	if err != nil {
		return nil, err
	}
	toKeys, err := e.fieldValues(right)
	if err != nil {
		return nil, err
	}
	return BuildLinks(fromKeys, toKeys), nil
}

// fieldValues resolves an address to the per-element value vector used for
// join matching. Unlike Element, join resolution treats a missing field as
// an error: a join against an absent field can never match anything and
// almost always indicates a typo.
func (e Experiment) fieldValues(addr Address) ([]any, error) {
	value, err := e.Element(addr.String())
	if err != nil {
		return nil, err
	}
	switch v := value.(type) {
	case nil:
		return nil, fmt.Errorf("address %q does not resolve to a field", addr)
	case []any:
		return v, nil
	case interface{ Values() []any }:
		return v.Values(), nil
	default:
		return nil, fmt.Errorf("address %q resolves to %T, not a field vector", addr, value)
	}
}
