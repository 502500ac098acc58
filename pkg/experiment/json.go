package experiment

import (
	"encoding/json"

	"msexperiment/pkg/assay"
)

// linkJSON is one serialized registry entry; entries are stored as an
// ordered array so registration order survives round-trips.
type linkJSON struct {
	Target   string     `json:"target"`
	Matrix   LinkMatrix `json:"matrix"`
	SubsetBy int        `json:"subsetBy"`
}

type experimentJSON struct {
	Samples        *assay.Table      `json:"sampleData"`
	Files          *assay.FileGroups `json:"experimentFiles"`
	Metadata       *assay.Table      `json:"metadata"`
	Quantification *assay.Table      `json:"quantification"`
	Spectra        *assay.Spectra    `json:"spectra"`
	Links          []linkJSON        `json:"links"`
}

// MarshalJSON encodes the container, slots and registry included, in a
// stable order suitable for snapshot persistence.
func (e Experiment) MarshalJSON() ([]byte, error) {
	payload := experimentJSON{
		Samples:        e.samples,
		Files:          e.files,
		Metadata:       e.metadata,
		Quantification: e.quant,
		Spectra:        e.spectra,
	}
	for _, target := range e.links.addresses() {
		link := e.links.entries[target]
		payload.Links = append(payload.Links, linkJSON{Target: target, Matrix: link.Matrix, SubsetBy: link.SubsetBy})
	}
	return json.Marshal(payload)
}

// UnmarshalJSON decodes a serialized container.
func (e *Experiment) UnmarshalJSON(data []byte) error {
	var payload experimentJSON
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	decoded := New(Config{
		Samples:        payload.Samples,
		Files:          payload.Files,
		Metadata:       payload.Metadata,
		Quantification: payload.Quantification,
		Spectra:        payload.Spectra,
	})
	for _, link := range payload.Links {
		decoded.links.set(link.Target, Link{Matrix: link.Matrix.Clone(), SubsetBy: link.SubsetBy})
	}
	*e = decoded
	return nil
}
