package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/algotrace/pkg/errors"
)

// ReadJSON decodes a node-link JSON graph from r.
//
// The input must be a JSON object with "nodes" and "edges" arrays. The
// returned Data is not validated; call [Data.Validate] before running an
// algorithm on it. ReadJSON does not close r.
func ReadJSON(r io.Reader) (Data, error) {
	var d Data
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Data{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode JSON graph")
	}
	return d, nil
}

// ReadYAML decodes a YAML graph from r using the same field names as JSON.
func ReadYAML(r io.Reader) (Data, error) {
	var d Data
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		return Data{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "decode YAML graph")
	}
	return d, nil
}

// ReadFile reads a graph file, choosing the decoder by extension
// (.yaml and .yml use YAML, everything else JSON), and validates it.
func ReadFile(path string) (Data, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return Data{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "graph file %s", path)
	}
	if err != nil {
		return Data{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var d Data
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		d, err = ReadYAML(f)
	default:
		d, err = ReadJSON(f)
	}
	if err != nil {
		return Data{}, fmt.Errorf("%s: %w", path, err)
	}
	if err := d.Validate(); err != nil {
		return Data{}, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// WriteJSON writes d as indented JSON to w.
func WriteJSON(d Data, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// Marshal returns the compact JSON encoding of d. The encoding is
// deterministic and is used as the content identity of a graph.
func Marshal(d Data) ([]byte, error) {
	return json.Marshal(d)
}
