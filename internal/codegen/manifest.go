package codegen

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ManifestBuilder accumulates (source type, converter type) associations over
// one build pass and persists them once, at the end of the pass. The manifest
// is a discovery shortcut for the run-time registry; the scanner and emitter
// never read it.
type ManifestBuilder struct {
	entries map[string]string
}

func NewManifestBuilder() *ManifestBuilder {
	return &ManifestBuilder{entries: make(map[string]string)}
}

// Add records one association. Keys are unique; a re-registered source type
// keeps the latest converter, matching one-pass overwrite semantics.
func (b *ManifestBuilder) Add(sourceFQN, converterFQN string) {
	b.entries[sourceFQN] = converterFQN
}

// AddType records the association for a scanned type declaration.
func (b *ManifestBuilder) AddType(t TypeDecl) {
	b.Add(t.SourceFQN(), t.ConverterFQN())
}

func (b *ManifestBuilder) Len() int {
	return len(b.entries)
}

// Entries returns a copy of the accumulated associations.
func (b *ManifestBuilder) Entries() map[string]string {
	out := make(map[string]string, len(b.entries))
	for k, v := range b.entries {
		out[k] = v
	}
	return out
}

// Write serializes the manifest as a single JSON object (sorted keys) to path,
// creating parent directories as needed. An empty builder writes nothing.
func (b *ManifestBuilder) Write(path string) error {
	if len(b.entries) == 0 {
		return nil
	}
	data, err := json.MarshalIndent(b.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}
	data = append(data, '\n')
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create manifest dir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write manifest %s: %w", path, err)
	}
	return nil
}
