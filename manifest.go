package automap

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// DefaultManifestPath is the conventional location of the build manifest,
// relative to the directory automap-gen ran in.
const DefaultManifestPath = ".automap/manifest.json"

// Manifest is the persisted mapping from declared record type names to
// generated converter type names, written once per build by automap-gen. It is
// an unversioned key/value snapshot of one build pass: no schema header, no
// version field.
type Manifest map[string]string

// LoadManifest reads a manifest from path. A missing or unreadable file, or a
// file that is not a JSON object of strings, is an error; a blank file yields
// an empty manifest. Callers that want the graceful degradation described by
// Load should treat any error here as "fall back to the full converter set".
func LoadManifest(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest %s: %w", path, err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return Manifest{}, nil
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	return m, nil
}

// ConverterNames returns the set of simple converter type names recorded in
// the manifest's values, with any package qualification stripped.
func (m Manifest) ConverterNames() map[string]struct{} {
	names := make(map[string]struct{}, len(m))
	for _, fqn := range m {
		names[simpleName(fqn)] = struct{}{}
	}
	return names
}

// simpleName strips an import-path qualification from a fully qualified type
// name, e.g. "github.com/acme/models.User_MapConverter" -> "User_MapConverter".
func simpleName(fqn string) string {
	if i := strings.LastIndex(fqn, "."); i >= 0 {
		return fqn[i+1:]
	}
	return fqn
}
