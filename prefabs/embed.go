package prefabs

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var PrefabsFS embed.FS

// Dir is the on-disk directory consulted before the embedded copies, so
// edited files win over the compiled-in ones.
var Dir = "prefabs"

// Load reads a spec file, preferring Dir over the embedded copy.
func Load(name string) ([]byte, error) {
	return read(PrefabsFS, cleanPrefabPath(name))
}

// LoadScript reads a tengo script from scripts/, preferring Dir.
func LoadScript(name string) ([]byte, error) {
	return read(ScriptsFS, cleanScriptPath(name))
}

func read(fsys embed.FS, rel string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join(Dir, filepath.FromSlash(rel))); err == nil {
		return data, nil
	}
	return fsys.ReadFile(rel)
}

func cleanPrefabPath(p string) string {
	s := filepath.ToSlash(p)
	return strings.TrimPrefix(s, "prefabs/")
}

// cleanScriptPath accepts a bare name or any prefix of
// prefabs/scripts/<name> and returns scripts/<name>.
func cleanScriptPath(p string) string {
	s := cleanPrefabPath(p)
	s = strings.TrimPrefix(s, "scripts/")
	return path.Join("scripts", s)
}
