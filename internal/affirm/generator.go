package affirm

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
)

const (
	defaultCount   = 1
	defaultSubject = "you"
)

// GenerationRequest is a single affirmation request.
type GenerationRequest struct {
	Prompt string
	Count  int
}

// GenerationResponse carries the formatted block and how it was produced.
type GenerationResponse struct {
	Text         string
	Prompt       string   // sanitized prompt
	Affirmations []string // selected lines, in selection order; empty when redirected
	Requested    int
	Count        int
	Capped       bool // Requested exceeded the catalog size
	Redirected   bool // the safety filter replaced the response
	MatchedWord  string
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source used for sampling.
func WithRand(r *rand.Rand) Option {
	return func(g *Generator) {
		g.rng = r
	}
}

// Generator samples affirmations from a Catalog. It keeps no state between calls
// other than its random source and is safe for concurrent use.
type Generator struct {
	catalog *Catalog
	filter  *SafetyFilter

	mu  sync.Mutex
	rng *rand.Rand
}

func NewGenerator(catalog *Catalog, opts ...Option) *Generator {
	g := &Generator{
		catalog: catalog,
		filter:  NewSafetyFilter(catalog.bannedWords),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g
}

// Catalog returns the catalog the generator samples from
func (g *Generator) Catalog() *Catalog {
	return g.catalog
}

// Generate builds the response for req.
func (g *Generator) Generate(req GenerationRequest) GenerationResponse {
	prompt := SanitizePrompt(req.Prompt)

	if word, unsafe := g.filter.Match(prompt); unsafe {
		return GenerationResponse{
			Text:        g.catalog.SupportMessage(),
			Prompt:      prompt,
			Requested:   req.Count,
			Redirected:  true,
			MatchedWord: word,
		}
	}

	count, capped := NormalizeCount(req.Count, g.catalog.Size())
	lines := g.sample(count)

	return GenerationResponse{
		Text:         FormatBlock(prompt, lines),
		Prompt:       prompt,
		Affirmations: lines,
		Requested:    req.Count,
		Count:        len(lines),
		Capped:       capped,
	}
}

// NormalizeCount clamps a requested count to [1, size]. capped reports whether
// the request asked for more than the catalog holds.
func NormalizeCount(requested, size int) (count int, capped bool) {
	if requested < 1 {
		requested = defaultCount
	}
	if requested > size {
		return size, true
	}
	return requested, false
}

// sample draws count distinct catalog entries with a partial Fisher-Yates shuffle.
func (g *Generator) sample(count int) []string {
	n := g.catalog.Size()
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	g.mu.Lock()
	for i := 0; i < count; i++ {
		j := i + g.rng.IntN(n-i)
		idx[i], idx[j] = idx[j], idx[i]
	}
	g.mu.Unlock()

	lines := make([]string, count)
	for i := 0; i < count; i++ {
		lines[i] = g.catalog.at(idx[i])
	}
	return lines
}

// FormatBlock renders the header line, a blank line and one affirmation per line.
func FormatBlock(prompt string, lines []string) string {
	subject := prompt
	if subject == "" {
		subject = defaultSubject
	}
	out := make([]string, 0, len(lines)+2)
	out = append(out, fmt.Sprintf("✨ Affirmations for *%s*:", subject), "")
	out = append(out, lines...)
	return strings.Join(out, "\n")
}
