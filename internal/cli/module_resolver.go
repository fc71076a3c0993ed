package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"
)

// ModuleResolver resolves the module path that owns a scanned directory by
// walking up to the nearest go.mod.
type ModuleResolver struct {
	cache map[string]string
}

// NewModuleResolver creates a new module resolver
func NewModuleResolver() *ModuleResolver {
	return &ModuleResolver{cache: make(map[string]string)}
}

// Resolve returns the module path declared by the go.mod governing dir.
func (r *ModuleResolver) Resolve(dir string) (string, error) {
	currentDir := filepath.Clean(dir)

	for {
		if module, ok := r.cache[currentDir]; ok {
			return module, nil
		}

		goModPath := filepath.Join(currentDir, "go.mod")
		if data, err := os.ReadFile(goModPath); err == nil {
			mod, err := modfile.Parse(goModPath, data, nil)
			if err != nil {
				return "", fmt.Errorf("failed to parse %s: %w", goModPath, err)
			}
			if mod.Module == nil {
				return "", fmt.Errorf("no module declaration found in %s", goModPath)
			}
			r.cache[filepath.Clean(dir)] = mod.Module.Mod.Path
			return mod.Module.Mod.Path, nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", fmt.Errorf("go.mod not found above %s", dir)
		}
		currentDir = parentDir
	}
}
