package codec

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/journal/pkg/core"
)

// YAMLSerializer handles the YAML form of the collection.
type YAMLSerializer struct{}

// NewYAML creates a YAML serializer.
func NewYAML() *YAMLSerializer {
	return &YAMLSerializer{}
}

func (s *YAMLSerializer) Name() string { return "yaml" }

func (s *YAMLSerializer) Ext() string { return ".yaml" }

func (s *YAMLSerializer) MarshalNotes(notes []core.Note) ([]byte, error) {
	return yaml.Marshal(normalize(notes))
}

func (s *YAMLSerializer) UnmarshalNotes(data []byte) ([]core.Note, error) {
	var notes []core.Note
	if err := yaml.Unmarshal(data, &notes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	for i, n := range notes {
		if n.ID == "" {
			return nil, fmt.Errorf("%w: note %d has no id", ErrCorrupt, i)
		}
		if n.Tags == nil {
			notes[i].Tags = []string{}
		}
	}
	if notes == nil {
		notes = []core.Note{}
	}
	return notes, nil
}
