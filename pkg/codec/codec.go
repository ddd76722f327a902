// Package codec converts a core.Record to and from the string blob kept in
// storage.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/imran-moonward/mynote/pkg/core"
)

// Codec defines how a record is laid out in storage.
type Codec interface {
	// Name identifies the format (e.g. "json").
	Name() string
	// Encode converts the record to bytes.
	Encode(rec core.Record) ([]byte, error)
	// Decode parses data into a record. Missing collections decode as empty.
	Decode(data []byte) (core.Record, error)
}

// Default is the codec used when none is configured.
var Default Codec = JSON{}

// ByName returns the codec registered under name.
func ByName(name string) (Codec, error) {
	switch name {
	case "", "json":
		return JSON{}, nil
	case "yaml", "yml":
		return YAML{}, nil
	default:
		return nil, fmt.Errorf("unknown codec: %s", name)
	}
}

// --- JSON Codec ---

// JSON reads and writes the record as a compact JSON object.
type JSON struct{}

func (JSON) Name() string { return "json" }

func (JSON) Encode(rec core.Record) ([]byte, error) {
	rec.Normalize()
	return json.Marshal(rec)
}

func (JSON) Decode(data []byte) (core.Record, error) {
	var rec *core.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return core.Record{}, fmt.Errorf("invalid json: %w", err)
	}
	if rec == nil {
		return core.Record{}, fmt.Errorf("invalid json: null document")
	}
	rec.Normalize()
	return *rec, nil
}

// --- YAML Codec ---

// YAML reads and writes the record as a YAML document.
type YAML struct{}

func (YAML) Name() string { return "yaml" }

func (YAML) Encode(rec core.Record) ([]byte, error) {
	rec.Normalize()

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(rec); err != nil {
		return nil, fmt.Errorf("failed to encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (YAML) Decode(data []byte) (core.Record, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))

	var rec *core.Record
	if err := dec.Decode(&rec); err != nil {
		if errors.Is(err, io.EOF) {
			return core.Record{}, fmt.Errorf("invalid yaml: empty document")
		}
		return core.Record{}, fmt.Errorf("invalid yaml: %w", err)
	}
	if rec == nil {
		return core.Record{}, fmt.Errorf("invalid yaml: null document")
	}

	// A second document means two writes were concatenated.
	var extra yaml.Node
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return core.Record{}, fmt.Errorf("invalid yaml: trailing data after record")
	}

	rec.Normalize()
	return *rec, nil
}
