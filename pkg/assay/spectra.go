package assay

import "encoding/json"

// Spectrum variable names exposed through Field for join matching.
const (
	SpectrumVarMSLevel    = "msLevel"
	SpectrumVarRTime      = "rtime"
	SpectrumVarScanIndex  = "scanIndex"
	SpectrumVarDataOrigin = "dataOrigin"
)

// Spectrum carries the per-spectrum variables the linking engine may match
// against. Peak data, filtering and backend concerns live in the acquiring
// layer; the engine only ever indexes and selects whole spectra.
type Spectrum struct {
	MSLevel    int     `json:"msLevel"`
	RTime      float64 `json:"rtime"`
	ScanIndex  int     `json:"scanIndex"`
	DataOrigin string  `json:"dataOrigin"`
}

// Spectra is an ordered set of spectrum records. DataOrigin names the raw
// file each spectrum was read from and is the conventional join key against
// an experimentFiles group.
type Spectra struct {
	spectra []Spectrum
}

// NewSpectra returns a spectra collection over the given records.
func NewSpectra(spectra []Spectrum) *Spectra {
	return &Spectra{spectra: append([]Spectrum(nil), spectra...)}
}

// Len returns the number of spectra.
func (s *Spectra) Len() int {
	if s == nil {
		return 0
	}
	return len(s.spectra)
}

// At returns the 1-based spectrum record.
func (s *Spectra) At(i int) Spectrum {
	checkIndices("spectra", []int{i}, len(s.spectra))
	return s.spectra[i-1]
}

// Field returns the named spectrum variable as a value vector.
func (s *Spectra) Field(name string) ([]any, bool) {
	if s == nil {
		return nil, false
	}
	out := make([]any, len(s.spectra))
	switch name {
	case SpectrumVarMSLevel:
		for i, sp := range s.spectra {
			out[i] = sp.MSLevel
		}
	case SpectrumVarRTime:
		for i, sp := range s.spectra {
			out[i] = sp.RTime
		}
	case SpectrumVarScanIndex:
		for i, sp := range s.spectra {
			out[i] = sp.ScanIndex
		}
	case SpectrumVarDataOrigin:
		for i, sp := range s.spectra {
			out[i] = sp.DataOrigin
		}
	default:
		return nil, false
	}
	return out, true
}

// Select returns the spectra at the given 1-based indices, preserving
// repeats.
func (s *Spectra) Select(indices []int) Collection {
	checkIndices("spectra", indices, len(s.spectra))
	out := make([]Spectrum, len(indices))
	for k, idx := range indices {
		out[k] = s.spectra[idx-1]
	}
	return &Spectra{spectra: out}
}

// Records returns a copy of the spectrum records in order.
func (s *Spectra) Records() []Spectrum {
	if s == nil {
		return nil
	}
	return append([]Spectrum(nil), s.spectra...)
}

// Clone returns a deep copy of the collection.
func (s *Spectra) Clone() *Spectra {
	if s == nil {
		return nil
	}
	return NewSpectra(s.spectra)
}

// MarshalJSON encodes the spectrum records as an array.
func (s *Spectra) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.spectra)
}

// UnmarshalJSON decodes a spectrum record array.
func (s *Spectra) UnmarshalJSON(data []byte) error {
	var records []Spectrum
	if err := json.Unmarshal(data, &records); err != nil {
		return err
	}
	s.spectra = records
	return nil
}
