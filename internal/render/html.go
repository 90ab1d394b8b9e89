package render

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"

	lru "github.com/hashicorp/golang-lru/v2"
)

//go:embed templates/*.html
var templateFS embed.FS

const DefaultCardCacheSize = 512

// Renderer executes the embedded page templates. Card fragments are cached by
// card value, so an unchanged aircraft is rendered once and reused until it
// falls out of the cache.
type Renderer struct {
	tmpl  *template.Template
	cards *lru.Cache[Card, template.HTML]
}

func NewRenderer(cardCacheSize int) (*Renderer, error) {
	if cardCacheSize <= 0 {
		cardCacheSize = DefaultCardCacheSize
	}
	cache, err := lru.New[Card, template.HTML](cardCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create card cache: %w", err)
	}

	r := &Renderer{cards: cache}
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"card": r.Card,
		"json": toJSON,
		"dict": dict,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// Card renders a single card fragment
func (r *Renderer) Card(c Card) (template.HTML, error) {
	if html, ok := r.cards.Get(c); ok {
		return html, nil
	}

	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "card", c); err != nil {
		return "", fmt.Errorf("failed to render card %s: %w", c.ICAO, err)
	}
	html := template.HTML(buf.String())
	r.cards.Add(c, html)
	return html, nil
}

// CachedCards is the number of card fragments currently cached
func (r *Renderer) CachedCards() int {
	return r.cards.Len()
}

func (r *Renderer) Dashboard(w io.Writer, page DashboardPage) error {
	return r.execute(w, "dashboard", page)
}

// Grid renders the grid fragment used for in-place refreshes
func (r *Renderer) Grid(w io.Writer, grid Grid) error {
	return r.execute(w, "grid", grid)
}

func (r *Renderer) Config(w io.Writer, page ConfigPage) error {
	return r.execute(w, "config", page)
}

// execute renders into a buffer first so a failing template never leaves a
// half-written response
func (r *Renderer) execute(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func toJSON(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// dict builds a map from alternating keys and values for sub-templates
func dict(pairs ...any) (map[string]any, error) {
	if len(pairs)%2 != 0 {
		return nil, fmt.Errorf("dict needs an even number of arguments, got %d", len(pairs))
	}
	m := make(map[string]any, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			return nil, fmt.Errorf("dict key %v is not a string", pairs[i])
		}
		m[key] = pairs[i+1]
	}
	return m, nil
}
