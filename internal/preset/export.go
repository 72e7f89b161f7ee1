package preset

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// ExportText renders a preset as a standalone YAML document.
func ExportText(p Preset) (string, error) {
	b, err := yaml.Marshal(p)
	if err != nil {
		return "", err
	}
	header := "# " + p.Name + "\n"
	return header + string(b), nil
}

// Import saves a YAML document produced by ExportText. name overrides the
// name inside the document when non-empty.
func (s *Store) Import(name string, doc []byte) (Preset, error) {
	var r record
	if err := yaml.Unmarshal(doc, &r); err != nil {
		return Preset{}, fmt.Errorf("invalid preset document: %w", err)
	}
	if name == "" {
		name = r.Name
	}
	p, err := s.decode(r)
	if err != nil {
		return Preset{}, err
	}
	return s.Save(name, p.Config)
}
