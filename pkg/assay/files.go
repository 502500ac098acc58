package assay

import (
	"encoding/json"
	"fmt"
)

// Files is an ordered list of data file paths. A Files value is the usual
// target of a sample link inside the experimentFiles slot: one raw file per
// sample, or a single shared annotation file referenced by many samples.
type Files []string

// Len returns the number of file entries.
func (f Files) Len() int { return len(f) }

// Field reports no named fields; file lists are plain vectors.
func (f Files) Field(string) ([]any, bool) { return nil, false }

// Select returns the file entries at the given 1-based indices, preserving
// repeats.
func (f Files) Select(indices []int) Collection {
	checkIndices("files", indices, len(f))
	out := make(Files, len(indices))
	for k, idx := range indices {
		out[k] = f[idx-1]
	}
	return out
}

// Values returns the paths as a generic value vector for join matching.
func (f Files) Values() []any {
	out := make([]any, len(f))
	for i, p := range f {
		out[i] = p
	}
	return out
}

// Clone returns a copy of the file list.
func (f Files) Clone() Files { return append(Files(nil), f...) }

// FileGroups is the experimentFiles slot: named groups of file paths, such
// as spectraFiles or annotations. Group order is preserved. The groups are
// the linkable collections; the group set itself is not linked.
type FileGroups struct {
	names  []string
	groups map[string]Files
}

// NewFileGroups returns an empty group set.
func NewFileGroups() *FileGroups {
	return &FileGroups{groups: make(map[string]Files)}
}

// GroupNames returns the group names in declaration order.
func (g *FileGroups) GroupNames() []string {
	if g == nil {
		return nil
	}
	return append([]string(nil), g.names...)
}

// Group returns a copy of the named group and whether it exists.
func (g *FileGroups) Group(name string) (Files, bool) {
	if g == nil {
		return nil, false
	}
	files, ok := g.groups[name]
	if !ok {
		return nil, false
	}
	return files.Clone(), true
}

// SetGroup assigns the named group, creating it when absent.
func (g *FileGroups) SetGroup(name string, files Files) error {
	if name == "" {
		return fmt.Errorf("assay: file group name cannot be empty")
	}
	if _, exists := g.groups[name]; !exists {
		g.names = append(g.names, name)
	}
	g.groups[name] = files.Clone()
	return nil
}

// Clone returns a deep copy of the group set.
func (g *FileGroups) Clone() *FileGroups {
	if g == nil {
		return nil
	}
	out := NewFileGroups()
	out.names = append([]string(nil), g.names...)
	for name, files := range g.groups {
		out.groups[name] = files.Clone()
	}
	return out
}

type fileGroupJSON struct {
	Name  string `json:"name"`
	Files Files  `json:"files"`
}

// MarshalJSON encodes groups with declaration order preserved.
func (g *FileGroups) MarshalJSON() ([]byte, error) {
	payload := make([]fileGroupJSON, 0, len(g.names))
	for _, name := range g.names {
		payload = append(payload, fileGroupJSON{Name: name, Files: g.groups[name]})
	}
	return json.Marshal(payload)
}

// UnmarshalJSON decodes the ordered group list.
func (g *FileGroups) UnmarshalJSON(data []byte) error {
	var payload []fileGroupJSON
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	decoded := NewFileGroups()
	for _, group := range payload {
		if err := decoded.SetGroup(group.Name, group.Files); err != nil {
			return err
		}
	}
	*g = *decoded
	return nil
}
