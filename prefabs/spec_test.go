package prefabs

import (
	"errors"
	"image/color"
	"testing"
)

func TestLoadPlatformSpecEmbedded(t *testing.T) {
	spec, err := LoadPlatformSpec()
	if err != nil {
		t.Fatalf("LoadPlatformSpec: %v", err)
	}
	if len(spec.Catalog) != 8 {
		t.Fatalf("expected 8 catalog entries, got %d", len(spec.Catalog))
	}
	if spec.Tuning.MinPlatforms != 14 {
		t.Fatalf("expected min_platforms 14, got %d", spec.Tuning.MinPlatforms)
	}
	if spec.Tuning.FragileOverlapMS != 500 || spec.Tuning.TimedStayMS != 1000 || spec.Tuning.TimedRespawnMS != 500 {
		t.Fatalf("unexpected timing tuning %+v", spec.Tuning)
	}
	if spec.DifficultyScript == "" {
		t.Fatalf("expected a difficulty script")
	}
	if _, err := LoadScript(spec.DifficultyScript); err != nil {
		t.Fatalf("LoadScript(%s): %v", spec.DifficultyScript, err)
	}
}

func TestParsePlatformSpec(t *testing.T) {
	cases := []struct {
		name    string
		yaml    string
		wantErr error
		check   func(t *testing.T, s *PlatformSpec)
	}{
		{
			name: "colors_with_and_without_alpha",
			yaml: `
catalog:
  - {key: normal, display_name: Stone, color: "#102030", weight: 1}
  - {key: ice, display_name: Ice, color: "10203040", weight: 0}
`,
			check: func(t *testing.T, s *PlatformSpec) {
				want := color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}
				if s.Catalog[0].Color.NRGBA != want {
					t.Fatalf("color = %v, want %v", s.Catalog[0].Color.NRGBA, want)
				}
				if s.Catalog[1].Color.A != 0x40 {
					t.Fatalf("alpha = %x, want 40", s.Catalog[1].Color.A)
				}
			},
		},
		{
			name: "negative_weight",
			yaml: `
catalog:
  - {key: normal, color: "#000000", weight: -1}
`,
			wantErr: ErrNegativeWeight,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, err := ParsePlatformSpec([]byte(c.yaml))
			if c.wantErr != nil {
				if !errors.Is(err, c.wantErr) {
					t.Fatalf("expected %v, got %v", c.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePlatformSpec: %v", err)
			}
			c.check(t, s)
		})
	}
}

func TestParsePlatformSpecRejects(t *testing.T) {
	bad := []string{
		"catalog: []",
		"catalog:\n  - {key: normal, color: \"#00\", weight: 1}",
		"catalog:\n  - {key: normal, color: \"#000000\", weight: 1}\n  - {key: normal, color: \"#000000\", weight: 2}",
	}
	for _, y := range bad {
		if _, err := ParsePlatformSpec([]byte(y)); err == nil {
			t.Fatalf("expected error for %q", y)
		}
	}
}

func TestCleanScriptPath(t *testing.T) {
	cases := map[string]string{
		"difficulty.tengo":                 "scripts/difficulty.tengo",
		"scripts/difficulty.tengo":         "scripts/difficulty.tengo",
		"prefabs/scripts/difficulty.tengo": "scripts/difficulty.tengo",
		"prefabs/difficulty.tengo":         "scripts/difficulty.tengo",
	}
	for in, want := range cases {
		if got := cleanScriptPath(in); got != want {
			t.Fatalf("cleanScriptPath(%q) = %q, want %q", in, got, want)
		}
	}
}
