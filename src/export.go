package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/plusk0/periodic-table/src/periodic"
)

// exportFile is the document written by export: the elements plus the
// filter that was active.
type exportFile struct {
	Elements []periodic.Element `json:"elements" yaml:"elements"`
	Filter   string             `json:"filter,omitempty" yaml:"filter,omitempty"`
}

type fileFormat int

const (
	formatJSON fileFormat = iota
	formatYAML
)

// formatFor picks the format from a file name. Unknown extensions are JSON.
func formatFor(name string) fileFormat {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return formatYAML
	default:
		return formatJSON
	}
}

// writeExport serializes elements to w.
func writeExport(w io.Writer, format fileFormat, elements []periodic.Element, filter string) error {
	out := exportFile{Elements: elements, Filter: filter}
	switch format {
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	default:
		data, err := json.MarshalIndent(out, "", "  ")
		if err != nil {
			return err
		}
		_, err = w.Write(append(data, '\n'))
		return err
	}
}

// readImport parses an export document. It accepts either a bare list of
// elements or an object with an "elements" key. Records without an id get
// one from ids.
func readImport(r io.Reader, format fileFormat, ids periodic.IDGenerator) ([]periodic.Element, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var elements []periodic.Element
	switch format {
	case formatYAML:
		elements, err = decodeYAMLImport(data)
	default:
		elements, err = decodeJSONImport(data)
	}
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	for i := range elements {
		if elements[i].ID == "" || seen[elements[i].ID] {
			elements[i].ID = ids.NewID()
		}
		seen[elements[i].ID] = true
	}
	return elements, nil
}

func decodeJSONImport(data []byte) ([]periodic.Element, error) {
	// detect if file is an array of elements or an object { "elements": [...] }
	var j interface{}
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, err
	}
	switch j.(type) {
	case []interface{}:
		var elements []periodic.Element
		if err := json.Unmarshal(data, &elements); err != nil {
			return nil, err
		}
		return elements, nil
	case map[string]interface{}:
		var doc exportFile
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		return doc.Elements, nil
	default:
		return nil, fmt.Errorf("unknown import format")
	}
}

func decodeYAMLImport(data []byte) ([]periodic.Element, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}
	switch node.Content[0].Kind {
	case yaml.SequenceNode:
		var elements []periodic.Element
		if err := node.Decode(&elements); err != nil {
			return nil, err
		}
		return elements, nil
	case yaml.MappingNode:
		var doc exportFile
		if err := node.Decode(&doc); err != nil {
			return nil, err
		}
		return doc.Elements, nil
	default:
		return nil, fmt.Errorf("unknown import format")
	}
}
