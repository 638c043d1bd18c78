package main

import (
	"encoding/json"
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(manifestPath string) *Generator {
	config := DefaultConfig()
	config.Generation.Module = "example.com/app"
	return &Generator{config: config, manifestPath: manifestPath}
}

func writeModelSource(t *testing.T, dir string) {
	t.Helper()
	src := `package models

type Audit struct {
	CreatedBy string
}

//automap:convert
type User struct {
	Audit
	Name  string
	Email string ` + "`automap:\"target=mail\"`" + `
	Token string ` + "`automap:\"nomap\"`" + `
}

//automap:convert exclude=Internal
type Order struct {
	ID       string
	Amount   float64
	Internal string
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "model.go"), []byte(src), 0644))
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	writeModelSource(t, dir)
	manifestPath := filepath.Join(dir, ".automap", "manifest.json")

	g := newTestGenerator(manifestPath)
	require.NoError(t, g.Generate([]string{dir}, false))

	t.Run("writes one converter file per source file", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(dir, "model_automap.go"))
		require.NoError(t, err)
		src := string(data)

		assert.Contains(t, src, "type User_MapConverter struct{}")
		assert.Contains(t, src, "type Order_MapConverter struct{}")
		assert.Contains(t, src, `m["mail"] = e.Email`)
		assert.Contains(t, src, `m["CreatedBy"] = e.Audit.CreatedBy`)
		assert.NotContains(t, src, `m["Token"]`)
		assert.NotContains(t, src, `data["Internal"]`)
	})

	t.Run("writes the package registry constructor", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(dir, "automap_registry.go"))
		require.NoError(t, err)
		src := string(data)

		assert.Contains(t, src, "func NewMapRegistry() *automap.Registry")
		assert.Contains(t, src, "User_MapConverter{},")
		assert.Contains(t, src, "Order_MapConverter{},")
	})

	t.Run("writes the manifest once with all entries", func(t *testing.T) {
		data, err := os.ReadFile(manifestPath)
		require.NoError(t, err)

		var manifest map[string]string
		require.NoError(t, json.Unmarshal(data, &manifest))
		require.Len(t, manifest, 2)

		userKey := path.Join("example.com/app", filepath.ToSlash(dir)) + ".User"
		assert.Contains(t, manifest[userKey], "User_MapConverter")
	})
}

func TestGenerateDryRun(t *testing.T) {
	dir := t.TempDir()
	writeModelSource(t, dir)
	manifestPath := filepath.Join(dir, ".automap", "manifest.json")

	g := newTestGenerator(manifestPath)
	require.NoError(t, g.Generate([]string{dir}, true))

	_, err := os.Stat(filepath.Join(dir, "model_automap.go"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(manifestPath)
	assert.True(t, os.IsNotExist(err))
}

func TestGenerateValidationFailureAborts(t *testing.T) {
	dir := t.TempDir()
	src := `package models

//automap:convert
type Broken struct {
	Name string ` + "`automap:\"frobnicate\"`" + `
}
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "model.go"), []byte(src), 0644))

	g := newTestGenerator(filepath.Join(dir, "manifest.json"))
	err := g.Generate([]string{dir}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	_, statErr := os.Stat(filepath.Join(dir, "model_automap.go"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerateSkipsConfiguredPackages(t *testing.T) {
	dir := t.TempDir()
	writeModelSource(t, dir)

	g := newTestGenerator(filepath.Join(dir, "manifest.json"))
	g.config.Packages[dir] = PackageConfig{Skip: true}

	require.NoError(t, g.Generate([]string{dir}, false))

	_, err := os.Stat(filepath.Join(dir, "model_automap.go"))
	assert.True(t, os.IsNotExist(err))
}
