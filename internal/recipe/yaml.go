package recipe

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// DecodeYAML decodes one recipe definition. Unknown fields are rejected.
func DecodeYAML(r io.Reader) (Definition, error) {
	var d Definition
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&d); err != nil {
		if err == io.EOF {
			return Definition{}, fmt.Errorf("empty recipe document")
		}
		return Definition{}, fmt.Errorf("parsing YAML: %w", err)
	}
	return d, nil
}

// LoadYAMLFile reads and builds the recipe in path.
func LoadYAMLFile(path string) (*Recipe, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading recipe file: %w", err)
	}
	d, err := DecodeYAML(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	r, err := Build(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// MarshalYAML encodes d in the same form DecodeYAML reads.
func MarshalYAML(d Definition) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
