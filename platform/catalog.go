package platform

import (
	"fmt"
	"image/color"
	"math/rand/v2"

	"github.com/milk9111/lavaclimb/ecs/component"
	"github.com/milk9111/lavaclimb/prefabs"
)

var fallbackColor = color.NRGBA{R: 0x8a, G: 0x8f, B: 0x98, A: 0xff}

// PlatformType is one catalog entry. Weight is a relative likelihood.
type PlatformType struct {
	Key         component.PlatformKind
	DisplayName string
	Color       color.NRGBA
	Weight      float64
}

// Catalog is the immutable list of spawnable platform types.
type Catalog struct {
	types []PlatformType
	byKey map[component.PlatformKind]int
}

func NewCatalog(types []PlatformType) (*Catalog, error) {
	if len(types) == 0 {
		return nil, fmt.Errorf("platform: empty catalog")
	}
	c := &Catalog{
		types: append([]PlatformType(nil), types...),
		byKey: make(map[component.PlatformKind]int, len(types)),
	}
	for i, t := range c.types {
		if !t.Key.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKind, t.Key)
		}
		if t.Weight < 0 {
			return nil, fmt.Errorf("platform: negative weight for %s", t.Key)
		}
		if _, dup := c.byKey[t.Key]; dup {
			return nil, fmt.Errorf("platform: duplicate catalog key %s", t.Key)
		}
		c.byKey[t.Key] = i
	}
	return c, nil
}

func CatalogFromSpec(spec *prefabs.PlatformSpec) (*Catalog, error) {
	if spec == nil {
		return nil, fmt.Errorf("platform: nil spec")
	}
	types := make([]PlatformType, 0, len(spec.Catalog))
	for _, entry := range spec.Catalog {
		types = append(types, PlatformType{
			Key:         component.PlatformKind(entry.Key),
			DisplayName: entry.DisplayName,
			Color:       entry.Color.NRGBA,
			Weight:      entry.Weight,
		})
	}
	return NewCatalog(types)
}

// Types returns a copy of the entries in catalog order.
func (c *Catalog) Types() []PlatformType {
	return append([]PlatformType(nil), c.types...)
}

func (c *Catalog) Lookup(k component.PlatformKind) (PlatformType, bool) {
	i, ok := c.byKey[k]
	if !ok {
		return PlatformType{}, false
	}
	return c.types[i], true
}

// Color resolves the palette tint for k.
func (c *Catalog) Color(k component.PlatformKind) color.NRGBA {
	if t, ok := c.Lookup(k); ok {
		return t.Color
	}
	return fallbackColor
}

// Weights returns kind -> weight.
func (c *Catalog) Weights() map[component.PlatformKind]float64 {
	out := make(map[component.PlatformKind]float64, len(c.types))
	for _, t := range c.types {
		out[t.Key] = t.Weight
	}
	return out
}

// WeightModifier rescales catalog weights, e.g. by climbed altitude.
type WeightModifier interface {
	Modify(altitude float64, weights map[component.PlatformKind]float64) (map[component.PlatformKind]float64, error)
}

// Selector draws platform kinds from a catalog.
type Selector struct {
	catalog  *Catalog
	rng      *rand.Rand
	modifier WeightModifier

	// onModifierError is told about the first failing modifier call only.
	onModifierError func(error)
	modifierFailed  bool
}

func NewSelector(c *Catalog, rng *rand.Rand) *Selector {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Selector{catalog: c, rng: rng}
}

// Choose draws r in [0,total) and walks the entries subtracting weights;
// the first entry that brings the remainder to <= 0 wins. Zero weights
// never win. Falls back to normal.
func (s *Selector) Choose(altitude float64) component.PlatformKind {
	if s == nil || s.catalog == nil {
		return component.KindNormal
	}
	weights := s.weights(altitude)

	total := 0.0
	for _, t := range s.catalog.types {
		total += weights[t.Key]
	}
	if total <= 0 {
		return component.KindNormal
	}

	r := s.rng.Float64() * total
	for _, t := range s.catalog.types {
		w := weights[t.Key]
		if w <= 0 {
			continue
		}
		r -= w
		if r <= 0 {
			return t.Key
		}
	}
	return component.KindNormal
}

func (s *Selector) weights(altitude float64) map[component.PlatformKind]float64 {
	base := s.catalog.Weights()
	if s.modifier == nil {
		return base
	}
	mod, err := s.modifier.Modify(altitude, base)
	if err != nil {
		if !s.modifierFailed && s.onModifierError != nil {
			s.onModifierError(err)
		}
		s.modifierFailed = true
		return base
	}
	out := make(map[component.PlatformKind]float64, len(base))
	for k := range base {
		w, ok := mod[k]
		if !ok {
			w = base[k]
		}
		if w < 0 {
			w = 0
		}
		out[k] = w
	}
	return out
}
