package catalog

import (
	"math/rand"
	"sync"
)

// Footballer is one secret subject: non-impostors see everything including
// the image, impostors see the card without the image plus a single hint.
type Footballer struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Position string   `json:"position"`
	Country  string   `json:"country"`
	ImageURL string   `json:"imageUrl,omitempty"`
	Hints    []string `json:"hints,omitempty"`
}

// WithoutImage returns the impostor-facing copy of the subject.
func (f Footballer) WithoutImage() Footballer {
	f.ImageURL = ""
	return f
}

// Provider supplies one subject drawn uniformly at random from a fixed set.
type Provider interface {
	Random() Footballer
}

// StaticProvider serves subjects from an in-memory catalog. The random source
// is injected so tests can pin the draw.
type StaticProvider struct {
	players []Footballer
	mu      sync.Mutex
	rng     *rand.Rand
}

// NewStaticProvider builds a provider over the default catalog.
func NewStaticProvider(rng *rand.Rand) *StaticProvider {
	return NewStaticProviderWithCatalog(Footballers, rng)
}

// NewStaticProviderWithCatalog builds a provider over a custom subject set.
func NewStaticProviderWithCatalog(players []Footballer, rng *rand.Rand) *StaticProvider {
	if len(players) == 0 {
		panic("catalog: empty subject set")
	}
	return &StaticProvider{players: players, rng: rng}
}

// Random draws one subject uniformly.
func (p *StaticProvider) Random() Footballer {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.players[p.rng.Intn(len(p.players))]
}
