package platform

import (
	"math/rand/v2"
	"testing"

	"github.com/milk9111/lavaclimb/ecs/component"
)

func TestScriptModifier(t *testing.T) {
	base := map[component.PlatformKind]float64{
		component.KindNormal:  50,
		component.KindFragile: 10,
	}

	t.Run("embedded_curve", func(t *testing.T) {
		m, err := LoadScriptModifier("difficulty.tengo")
		if err != nil {
			t.Fatalf("LoadScriptModifier: %v", err)
		}
		flat, err := m.Modify(0, base)
		if err != nil {
			t.Fatalf("Modify(0): %v", err)
		}
		if flat[component.KindNormal] != 50 || flat[component.KindFragile] != 10 {
			t.Fatalf("altitude 0 should keep weights, got %v", flat)
		}
		high, err := m.Modify(12000, base)
		if err != nil {
			t.Fatalf("Modify(12000): %v", err)
		}
		if high[component.KindNormal] >= 50 || high[component.KindFragile] <= 10 {
			t.Fatalf("expected hazards to grow with altitude, got %v", high)
		}
	})

	t.Run("int_results", func(t *testing.T) {
		m, err := NewScriptModifier("inline", []byte(`result := {normal: 0, fragile: 7}`))
		if err != nil {
			t.Fatalf("NewScriptModifier: %v", err)
		}
		got, err := m.Modify(0, base)
		if err != nil {
			t.Fatalf("Modify: %v", err)
		}
		if got[component.KindNormal] != 0 || got[component.KindFragile] != 7 {
			t.Fatalf("unexpected weights %v", got)
		}
	})

	t.Run("missing_result", func(t *testing.T) {
		m, err := NewScriptModifier("inline", []byte(`x := altitude`))
		if err != nil {
			t.Fatalf("NewScriptModifier: %v", err)
		}
		if _, err := m.Modify(0, base); err == nil {
			t.Fatalf("expected an error when result is not defined")
		}
	})

	t.Run("compile_error", func(t *testing.T) {
		if _, err := NewScriptModifier("inline", []byte(`result := {`)); err == nil {
			t.Fatalf("expected a compile error")
		}
	})

	t.Run("drives_selector", func(t *testing.T) {
		c, err := NewCatalog([]PlatformType{
			{Key: component.KindNormal, Weight: 1},
			{Key: component.KindFragile, Weight: 1},
		})
		if err != nil {
			t.Fatalf("NewCatalog: %v", err)
		}
		m, err := NewScriptModifier("inline", []byte(`
result := {}
for k, w in weights {
	result[k] = k == "fragile" && altitude > 100 ? w : 0
}
`))
		if err != nil {
			t.Fatalf("NewScriptModifier: %v", err)
		}
		s := NewSelector(c, rand.New(rand.NewPCG(3, 4)))
		s.modifier = m
		if got := s.Choose(0); got != component.KindNormal {
			t.Fatalf("all zero weights should fall back to normal, got %s", got)
		}
		for i := 0; i < 50; i++ {
			if got := s.Choose(500); got != component.KindFragile {
				t.Fatalf("expected only fragile above 100, got %s", got)
			}
		}
	})
}
