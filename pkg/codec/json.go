package codec

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/tailscale/hujson"
	"github.com/xeipuuv/gojsonschema"

	"github.com/aretw0/journal/pkg/core"
)

// collectionSchema describes the persisted collection. Title and content may
// be missing (they decode as empty strings); id and createdAt may not.
const collectionSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "createdAt"],
    "properties": {
      "id":        { "type": "string" },
      "title":     { "type": "string" },
      "content":   { "type": "string" },
      "tags":      { "type": ["array", "null"], "items": { "type": "string" } },
      "createdAt": { "type": "integer" }
    }
  }
}`

var compiledSchema = sync.OnceValues(func() (*gojsonschema.Schema, error) {
	return gojsonschema.NewSchema(gojsonschema.NewStringLoader(collectionSchema))
})

// JSONSerializer handles the JSON form of the collection.
// Reads accept JSON with comments and trailing commas (HuJSON), so a file
// edited by hand still loads.
type JSONSerializer struct {
	// Indent is used for pretty printing; empty writes compact JSON.
	Indent string
}

// NewJSON creates a JSON serializer that pretty prints with two spaces.
func NewJSON() *JSONSerializer {
	return &JSONSerializer{Indent: "  "}
}

func (s *JSONSerializer) Name() string { return "json" }

func (s *JSONSerializer) Ext() string { return ".json" }

func (s *JSONSerializer) MarshalNotes(notes []core.Note) ([]byte, error) {
	if s.Indent == "" {
		return json.Marshal(normalize(notes))
	}
	return json.MarshalIndent(normalize(notes), "", s.Indent)
}

func (s *JSONSerializer) UnmarshalNotes(data []byte) ([]core.Note, error) {
	standard, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	if err := validate(standard); err != nil {
		return nil, err
	}

	var notes []core.Note
	if err := json.Unmarshal(standard, &notes); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	for i := range notes {
		if notes[i].Tags == nil {
			notes[i].Tags = []string{}
		}
	}
	if notes == nil {
		notes = []core.Note{}
	}
	return notes, nil
}

func validate(data []byte) error {
	schema, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compile collection schema: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrCorrupt, strings.Join(msgs, "; "))
}
