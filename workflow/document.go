package workflow

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Document is a loaded workflow graph. Patches splice values into the raw
// bytes, so everything the builder does not touch round-trips byte-identical
// and the emitted file loads in ComfyUI exactly like the template would.
type Document struct {
	raw []byte
}

// Load reads a workflow document from a template file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading base workflow %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("error parsing base workflow %s: %w", path, err)
	}
	return doc, nil
}

// Parse wraps raw template bytes in a Document.
func Parse(data []byte) (*Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("not valid JSON")
	}
	if !gjson.GetBytes(data, "nodes").IsArray() {
		return nil, fmt.Errorf("no nodes array")
	}
	return &Document{raw: data}, nil
}

// Clone returns an independent copy. The builder only ever patches clones,
// never the loaded template.
func (d *Document) Clone() *Document {
	raw := make([]byte, len(d.raw))
	copy(raw, d.raw)
	return &Document{raw: raw}
}

// Bytes returns the serialized document.
func (d *Document) Bytes() []byte {
	return d.raw
}

// Pretty returns a re-indented copy of the document. Only for human eyes;
// the default output keeps the template's own formatting.
func (d *Document) Pretty() *Document {
	return &Document{raw: pretty.Pretty(d.raw)}
}

// nodePath locates the node with the given id and returns its gjson path
// prefix, e.g. "nodes.12".
func (d *Document) nodePath(role string, id int) (string, error) {
	idx := -1
	i := 0
	gjson.GetBytes(d.raw, "nodes").ForEach(func(_, node gjson.Result) bool {
		if node.Get("id").Int() == int64(id) {
			idx = i
			return false
		}
		i++
		return true
	})
	if idx < 0 {
		return "", &MissingNodeError{Role: role, ID: id}
	}
	return fmt.Sprintf("nodes.%d", idx), nil
}

func (d *Document) get(path string) gjson.Result {
	return gjson.GetBytes(d.raw, path)
}

func (d *Document) set(path string, value any) error {
	raw, err := sjson.SetBytes(d.raw, path, value)
	if err != nil {
		return fmt.Errorf("error setting %s: %w", path, err)
	}
	d.raw = raw
	return nil
}

// WriteFile writes the document atomically: a uniquely named temp file next
// to the destination, renamed into place on success. An aborted run never
// leaves a half-written file that ComfyUI could load.
func (d *Document) WriteFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("error creating output directory %s: %w", dir, err)
	}

	tmpPath := fmt.Sprintf("%s.%s.tmp", path, uuid.New().String()[:8])
	if err := os.WriteFile(tmpPath, d.raw, 0o644); err != nil {
		return fmt.Errorf("error writing %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath) // cleanup on failure
		return fmt.Errorf("error renaming %s to %s: %w", tmpPath, path, err)
	}

	return nil
}
