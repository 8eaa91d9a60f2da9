package affirm

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/Conceptual-Machines/mindloop/pkg/embedded"
	"gopkg.in/yaml.v3"
)

var (
	ErrEmptyCatalog        = errors.New("catalog has no affirmations")
	ErrEmptySupportMessage = errors.New("catalog has no support message")
)

// Catalog is the fixed set of affirmations plus the safety data that guards them.
// A Catalog is immutable once loaded; accessors return copies.
type Catalog struct {
	affirmations []string
	bannedWords  []string
	support      []string
}

type catalogFile struct {
	Affirmations   []string `yaml:"affirmations"`
	BannedWords    []string `yaml:"banned_words"`
	SupportMessage []string `yaml:"support_message"`
}

// ParseCatalog decodes a YAML catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	catalog := &Catalog{
		affirmations: compact(file.Affirmations),
		bannedWords:  compact(file.BannedWords),
		support:      compact(file.SupportMessage),
	}
	if len(catalog.affirmations) == 0 {
		return nil, ErrEmptyCatalog
	}
	if len(catalog.support) == 0 {
		return nil, ErrEmptySupportMessage
	}
	return catalog, nil
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return ParseCatalog(embedded.CatalogYAML)
})

// DefaultCatalog returns the catalog embedded in the binary.
func DefaultCatalog() (*Catalog, error) {
	return loadDefault()
}

// Size returns the number of affirmations in the catalog
func (c *Catalog) Size() int {
	return len(c.affirmations)
}

// Affirmations returns the affirmations in catalog order
func (c *Catalog) Affirmations() []string {
	return slices.Clone(c.affirmations)
}

// Contains reports whether line is one of the catalog affirmations
func (c *Catalog) Contains(line string) bool {
	return slices.Contains(c.affirmations, line)
}

// BannedWords returns the safety filter substrings
func (c *Catalog) BannedWords() []string {
	return slices.Clone(c.bannedWords)
}

// SupportMessage returns the fixed message served instead of affirmations for unsafe prompts.
func (c *Catalog) SupportMessage() string {
	return strings.Join(c.support, "\n")
}

func (c *Catalog) at(i int) string {
	return c.affirmations[i]
}

// compact trims entries and drops empty and duplicate ones, keeping order.
func compact(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
