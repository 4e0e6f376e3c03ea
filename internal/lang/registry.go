package lang

import "fmt"

// Registry holds the compiled pattern sets for the configured languages.
type Registry struct {
	packs    map[Code]*Compiled
	fallback Code
}

// NewRegistry compiles the given packs. The first pack is the fallback
// returned by Default and for unknown codes.
func NewRegistry(packs ...Pack) (*Registry, error) {
	if len(packs) == 0 {
		return nil, fmt.Errorf("lang: registry needs at least one pack")
	}
	r := &Registry{
		packs:    make(map[Code]*Compiled, len(packs)),
		fallback: packs[0].Code(),
	}
	for _, p := range packs {
		if _, dup := r.packs[p.Code()]; dup {
			return nil, fmt.Errorf("lang: duplicate pack %q", p.Code())
		}
		c, err := Compile(p)
		if err != nil {
			return nil, err
		}
		r.packs[p.Code()] = c
	}
	return r, nil
}

// Get returns the compiled pack for code.
func (r *Registry) Get(code Code) (*Compiled, bool) {
	c, ok := r.packs[code]
	return c, ok
}

// Resolve returns the compiled pack for code, falling back to the default
// language when code is empty or unknown.
func (r *Registry) Resolve(code Code) *Compiled {
	if c, ok := r.packs[code]; ok {
		return c
	}
	return r.packs[r.fallback]
}

// Default returns the fallback pack.
func (r *Registry) Default() *Compiled { return r.packs[r.fallback] }

// Codes returns the registered language codes.
func (r *Registry) Codes() []Code {
	out := make([]Code, 0, len(r.packs))
	for code := range r.packs {
		out = append(out, code)
	}
	return out
}
