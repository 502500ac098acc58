package experiment

import "fmt"

// LinkRequest describes one linking operation between the sample table and
// a target collection. Exactly one calling convention must be used:
// explicit index pairs (SampleIndex + TargetIndex, equal length) or a
// declarative Join expression. Target may be left empty with a join; it is
// then derived from the non-sample side of the expression.
type LinkRequest struct {
	// Target addresses the collection to link ("spectra",
	// "quantification", "experimentFiles.<group>", ...).
	Target string
	// SampleIndex and TargetIndex are the explicit 1-based index pairs.
	SampleIndex []int
	TargetIndex []int
	// Join is the declarative expression "<address> = <address>"; one side
	// must address a sample table field.
	Join string
	// SubsetBy selects the subset policy: SubsetByRow (default) or
	// SubsetByColumn.
	SubsetBy int
}

// LinkSampleData records a relationship between the sample table and the
// target collection, returning the resulting container. The computed link
// matrix is validated against the current sample count and target length;
// a non-empty matrix replaces any previous entry for the target address,
// while an empty one leaves the registry untouched. The receiving
// container is never modified.
func (e Experiment) LinkSampleData(req LinkRequest) (Experiment, error) {
	explicit := len(req.SampleIndex) > 0 || len(req.TargetIndex) > 0
	if explicit && req.Join != "" {
		return Experiment{}, MalformedLinkError{Reason: "specify index pairs or a join expression, not both"}
	}
	if !explicit && req.Join == "" {
		return Experiment{}, MalformedLinkError{Reason: "no index pairs or join expression supplied"}
	}

	target, err := e.resolveTarget(req)
	if err != nil {
		return Experiment{}, err
	}
	collection, err := e.collectionAt(target)
	if err != nil {
		return Experiment{}, err
	}
	if collection.Len() == 0 {
		return Experiment{}, EmptyTargetError{Address: target.String()}
	}

	var matrix LinkMatrix
	if explicit {
		if len(req.SampleIndex) != len(req.TargetIndex) {
			return Experiment{}, MalformedLinkError{
				Reason: fmt.Sprintf("sample index has %d entries, target index has %d", len(req.SampleIndex), len(req.TargetIndex)),
			}
		}
		matrix = make(LinkMatrix, len(req.SampleIndex))
		for i := range req.SampleIndex {
			matrix[i] = [2]int{req.SampleIndex[i], req.TargetIndex[i]}
		}
	} else {
		matrix, err = e.resolveJoin(req.Join, target)
		if err != nil {
			return Experiment{}, err
		}
	}

	if err := matrix.Validate(e.SampleCount(), collection.Len()); err != nil {
		return Experiment{}, err
	}

	subsetBy := req.SubsetBy
	if subsetBy == 0 {
		subsetBy = SubsetByRow
	}
	if subsetBy != SubsetByRow && subsetBy != SubsetByColumn {
		return Experiment{}, fmt.Errorf("invalid subsetBy %d: must be %d or %d", subsetBy, SubsetByRow, SubsetByColumn)
	}

	// A join that matched nothing records no relationship at all.
	if len(matrix) == 0 {
		return e, nil
	}

	out := e.clone()
	out.links.set(target.String(), Link{Matrix: matrix, SubsetBy: subsetBy})
	return out, nil
}

// resolveTarget determines the registry address for the request, deriving
// it from the join expression when Target is empty.
func (e Experiment) resolveTarget(req LinkRequest) (Address, error) {
	if req.Target != "" {
		address, err := ParseAddress(req.Target)
		if err != nil {
			return Address{}, err
		}
		return targetAddress(address), nil
	}
	if req.Join == "" {
		return Address{}, MalformedLinkError{Reason: "no target address supplied"}
	}
	left, right, err := ParseJoin(req.Join)
	if err != nil {
		return Address{}, err
	}
	if left.Slot == SlotSampleData && right.Slot != SlotSampleData {
		return targetAddress(right), nil
	}
	if right.Slot == SlotSampleData && left.Slot != SlotSampleData {
		return targetAddress(left), nil
	}
	return Address{}, JoinFormatError{Expr: req.Join}
}
