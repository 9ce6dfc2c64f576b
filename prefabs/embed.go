package prefabs

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

//go:embed *.yaml
var PrefabsFS embed.FS

//go:embed scenarios/*.tengo
var ScenariosFS embed.FS

var (
	overrideMu  sync.RWMutex
	overrideDir = "prefabs"
)

// SetOverrideDir sets the directory checked for on-disk copies of prefab
// files before falling back to the embedded ones. An empty dir disables
// overrides.
func SetOverrideDir(dir string) {
	overrideMu.Lock()
	defer overrideMu.Unlock()
	overrideDir = dir
}

func OverrideDir() string {
	overrideMu.RLock()
	defer overrideMu.RUnlock()
	return overrideDir
}

// Load returns a prefab file, preferring the on-disk override.
func Load(name string) ([]byte, error) {
	clean := cleanPrefabPath(name)
	if p := diskPath(clean); p != "" {
		if data, err := os.ReadFile(p); err == nil {
			return data, nil
		}
	}
	return PrefabsFS.ReadFile(clean)
}

// LoadScript returns a scenario script by name, preferring the on-disk override.
func LoadScript(name string) ([]byte, error) {
	clean := cleanScriptPath(name)
	if p := diskPath(clean); p != "" {
		if data, err := os.ReadFile(p); err == nil {
			return data, nil
		}
	}
	return ScenariosFS.ReadFile(clean)
}

// ScenarioNames lists the embedded scenarios without extension, sorted.
func ScenarioNames() ([]string, error) {
	entries, err := fs.ReadDir(ScenariosFS, "scenarios")
	if err != nil {
		return nil, fmt.Errorf("prefabs: list scenarios: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isScriptFile(e.Name()) {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names, nil
}

func cleanPrefabPath(p string) string {
	s := filepath.ToSlash(p)
	if after, ok := strings.CutPrefix(s, "prefabs/"); ok {
		return after
	}
	return s
}

func cleanScriptPath(p string) string {
	s := cleanPrefabPath(p)
	if after, ok := strings.CutPrefix(s, "scenarios/"); ok {
		s = after
	}
	if path.Ext(s) == "" {
		s += ".tengo"
	}
	return "scenarios/" + s
}

func diskPath(clean string) string {
	dir := OverrideDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, filepath.FromSlash(clean))
}
