package platform

import (
	"fmt"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/lavaclimb/ecs/component"
	"github.com/milk9111/lavaclimb/prefabs"
)

// ScriptModifier runs a tengo script to rescale spawn weights. The script
// reads `altitude` (float) and `weights` (map kind -> float) and must set
// `result` to a map of the same shape.
type ScriptModifier struct {
	path     string
	compiled *tengo.Compiled
}

func LoadScriptModifier(path string) (*ScriptModifier, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("platform: load script %s: %w", path, err)
	}
	return NewScriptModifier(path, src)
}

func NewScriptModifier(path string, src []byte) (*ScriptModifier, error) {
	script := tengo.NewScript(src)
	_ = script.Add("altitude", 0.0)
	_ = script.Add("weights", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("platform: compile %s: %w", path, err)
	}
	return &ScriptModifier{path: path, compiled: compiled}, nil
}

func (m *ScriptModifier) Modify(altitude float64, weights map[component.PlatformKind]float64) (map[component.PlatformKind]float64, error) {
	in := make(map[string]any, len(weights))
	for k, w := range weights {
		in[string(k)] = w
	}
	if err := m.compiled.Set("altitude", altitude); err != nil {
		return nil, err
	}
	if err := m.compiled.Set("weights", in); err != nil {
		return nil, err
	}
	if err := m.compiled.Run(); err != nil {
		return nil, fmt.Errorf("platform: run %s: %w", m.path, err)
	}
	if !m.compiled.IsDefined("result") {
		return nil, fmt.Errorf("platform: %s did not define result", m.path)
	}

	out := make(map[component.PlatformKind]float64, len(weights))
	for k, v := range m.compiled.Get("result").Map() {
		switch n := v.(type) {
		case float64:
			out[component.PlatformKind(k)] = n
		case int64:
			out[component.PlatformKind(k)] = float64(n)
		default:
			return nil, fmt.Errorf("platform: %s: weight %s is %T", m.path, k, v)
		}
	}
	return out, nil
}
