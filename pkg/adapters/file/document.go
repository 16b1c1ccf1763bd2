package file

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/aretw0/tracetm/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// ParseYAML decodes a YAML machine document.
//
// Transitions may be written as maps (from/read/next/write/move), as five-element
// lists, or as "from,read,next,write,move" strings. Numeric symbols are accepted.
func ParseYAML(data []byte) (*domain.Definition, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidMachine, err)
	}
	return decode(raw)
}

// ParseJSON decodes a JSON machine document with the same shapes as ParseYAML.
func ParseJSON(data []byte) (*domain.Definition, error) {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidMachine, err)
	}
	return decode(raw)
}

func decode(raw map[string]any) (*domain.Definition, error) {
	if raw == nil {
		return nil, fmt.Errorf("%w: empty document", domain.ErrInvalidMachine)
	}

	var def domain.Definition
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       transitionHook,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &def,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidMachine, err)
	}
	return &def, nil
}

var transitionType = reflect.TypeOf(domain.Transition{})

// transitionHook expands the compact row forms into the map form.
func transitionHook(from, to reflect.Type, data any) (any, error) {
	if to != transitionType {
		return data, nil
	}

	var parts []string
	switch v := data.(type) {
	case string:
		for _, p := range strings.Split(v, ",") {
			parts = append(parts, strings.TrimSpace(p))
		}
	case []any:
		for _, p := range v {
			parts = append(parts, strings.TrimSpace(fmt.Sprint(p)))
		}
	default:
		return data, nil
	}

	if len(parts) != 5 {
		return nil, fmt.Errorf("transition %v: expected 5 fields (from,read,next,write,move), got %d", data, len(parts))
	}
	return map[string]any{
		"from":  parts[0],
		"read":  parts[1],
		"next":  parts[2],
		"write": parts[3],
		"move":  parts[4],
	}, nil
}
