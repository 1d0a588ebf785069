package gradebook

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of a gradebook file.
type Format int

const (
	FormatUnknown Format = iota
	FormatYAML
	FormatJSON
)

// String returns the human-readable name of the format.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	default:
		return "unknown"
	}
}

// FormatFor picks the format from a file extension.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatUnknown
	}
}

// Document is a decoded gradebook file.
type Document struct {
	Path     string
	Format   Format
	Semester *Semester
	// Data is the generic form of the file, used for schema validation.
	Data  map[string]any
	lines map[string]int
}

// Line returns the source line of a path such as "courses[0].assignments[1]",
// or 0 when unknown.
func (d *Document) Line(path string) int {
	if d == nil || d.lines == nil {
		return 0
	}
	return d.lines[path]
}

// Load reads and decodes a gradebook file.
func Load(path string) (*Document, error) {
	format := FormatFor(path)
	if format == FormatUnknown {
		return nil, fmt.Errorf("unsupported gradebook file %s: expected .yaml, .yml or .json", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read gradebook: %w", err)
	}

	doc, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	doc.Path = path
	return doc, nil
}

// Decode parses gradebook content in the given format.
func Decode(data []byte, format Format) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("gradebook is empty")
	}

	switch format {
	case FormatYAML:
		return decodeYAML(data)
	case FormatJSON:
		return decodeJSON(data)
	default:
		return nil, fmt.Errorf("unsupported gradebook format: %s", format)
	}
}

func decodeYAML(data []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("error parsing gradebook: %w", err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, fmt.Errorf("gradebook is empty")
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("gradebook must be a mapping at the top level")
	}

	var semester Semester
	if err := top.Decode(&semester); err != nil {
		return nil, fmt.Errorf("error decoding gradebook: %w", err)
	}

	var raw map[string]any
	if err := top.Decode(&raw); err != nil {
		return nil, fmt.Errorf("error decoding gradebook: %w", err)
	}

	lines := make(map[string]int)
	collectLines(top, "", lines)

	return &Document{
		Format:   FormatYAML,
		Semester: &semester,
		Data:     raw,
		lines:    lines,
	}, nil
}

func decodeJSON(data []byte) (*Document, error) {
	var semester Semester
	if err := json.Unmarshal(data, &semester); err != nil {
		return nil, fmt.Errorf("error parsing gradebook: %w", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("error parsing gradebook: %w", err)
	}

	return &Document{
		Format:   FormatJSON,
		Semester: &semester,
		Data:     raw,
	}, nil
}

// collectLines records the line of every mapping key and sequence item.
func collectLines(node *yaml.Node, path string, lines map[string]int) {
	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			child := key.Value
			if path != "" {
				child = path + "." + key.Value
			}
			lines[child] = key.Line
			collectLines(value, child, lines)
		}
	case yaml.SequenceNode:
		for i, item := range node.Content {
			child := path + "[" + strconv.Itoa(i) + "]"
			lines[child] = item.Line
			collectLines(item, child, lines)
		}
	}
}

// Marshal encodes a semester in the canonical gradebook layout.
func Marshal(s *Semester, format Format) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(s); err != nil {
			return nil, fmt.Errorf("error encoding gradebook: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return nil, fmt.Errorf("error encoding gradebook: %w", err)
		}
		return buf.Bytes(), nil
	case FormatJSON:
		data, err := json.MarshalIndent(s, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("error encoding gradebook: %w", err)
		}
		return append(data, '\n'), nil
	default:
		return nil, fmt.Errorf("unsupported gradebook format: %s", format)
	}
}
