package reload

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Codec turns a raw document into the flat key/value map a Configuration
// accepts. A blank document decodes to an empty map.
type Codec interface {
	Decode(data []byte) (map[string]any, error)

	// ContentType is reported on decode failures.
	ContentType() string
}

// JSONCodec decodes JSON objects. Numbers decode as float64 and are not
// converted, so integer validators must accept float64 or the document
// must use YAML.
type JSONCodec struct{}

// Decode parses a single JSON object.
func (JSONCodec) Decode(data []byte) (map[string]any, error) {
	if isBlank(data) {
		return map[string]any{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	var values map[string]any
	if err := dec.Decode(&values); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after JSON object")
	}
	return orEmpty(values), nil
}

// ContentType returns the JSON MIME type.
func (JSONCodec) ContentType() string {
	return "application/json"
}

// YAMLCodec decodes YAML mappings. Integers decode as int.
type YAMLCodec struct{}

// Decode parses a YAML mapping. JSON objects are accepted too.
func (YAMLCodec) Decode(data []byte) (map[string]any, error) {
	if isBlank(data) {
		return map[string]any{}, nil
	}
	var values map[string]any
	if err := yaml.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return orEmpty(values), nil
}

// ContentType returns the YAML MIME type.
func (YAMLCodec) ContentType() string {
	return "application/x-yaml"
}

var (
	_ Codec = JSONCodec{}
	_ Codec = YAMLCodec{}
)

// CodecFor picks a Codec from a file extension: JSONCodec for ".json",
// YAMLCodec for anything else.
func CodecFor(path string) Codec {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return JSONCodec{}
	}
	return YAMLCodec{}
}

func isBlank(data []byte) bool {
	return len(bytes.TrimSpace(data)) == 0
}

func orEmpty(values map[string]any) map[string]any {
	if values == nil {
		return map[string]any{}
	}
	return values
}
