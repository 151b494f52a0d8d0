// Package templates provides embedded known-good runbook templates
// that authors can start from. Every template must satisfy the full
// structural schema.
package templates

import (
	"embed"
	"fmt"
	"strings"

	"github.com/ethpandaops/runbook-lint/pkg/parser"
	"github.com/ethpandaops/runbook-lint/pkg/types"
)

//go:embed *.md
var templateFiles embed.FS

// Load reads all embedded markdown files and parses them into Document
// trees.
func Load() ([]types.Document, error) {
	entries, err := templateFiles.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("reading template directory: %w", err)
	}

	docs := make([]types.Document, 0, len(entries))

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		data, err := templateFiles.ReadFile(entry.Name())
		if err != nil {
			return nil, fmt.Errorf("reading template %s: %w", entry.Name(), err)
		}

		doc, err := parser.Parse(string(data))
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", entry.Name(), err)
		}

		doc.FilePath = entry.Name()
		docs = append(docs, *doc)
	}

	return docs, nil
}

// Raw returns the raw markdown of an embedded template by file name.
func Raw(name string) ([]byte, error) {
	data, err := templateFiles.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("reading template %s: %w", name, err)
	}

	return data, nil
}
