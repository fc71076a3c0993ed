package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScannedFile is one candidate source file. Rel is its path relative to
// the scan root that produced it, used to mirror output trees.
type ScannedFile struct {
	Path string
	Rel  string
}

// DirectoryScanner resolves directory arguments into the set of Go files
// to consider. Supports Go-style patterns like "./..." for recursive
// scanning.
type DirectoryScanner struct{}

// NewDirectoryScanner creates a new directory scanner
func NewDirectoryScanner() *DirectoryScanner {
	return &DirectoryScanner{}
}

// ScanDirectories expands the provided directory patterns into Go files.
// Test files, vendored code and hidden or underscore-prefixed directories
// are left alone.
func (s *DirectoryScanner) ScanDirectories(rootDirs []string) ([]ScannedFile, error) {
	var files []ScannedFile
	seen := make(map[string]bool)

	for _, rootDir := range rootDirs {
		recursive := false
		baseDir := rootDir
		if strings.HasSuffix(rootDir, "/...") {
			recursive = true
			baseDir = strings.TrimSuffix(rootDir, "/...")
			if baseDir == "" {
				baseDir = "."
			}
		}

		cleanPath, err := filepath.Abs(baseDir)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve path %s: %w", baseDir, err)
		}

		found, err := s.scanDirectory(cleanPath, recursive)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			if !seen[f.Path] {
				seen[f.Path] = true
				files = append(files, f)
			}
		}
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

func (s *DirectoryScanner) scanDirectory(root string, recursive bool) ([]ScannedFile, error) {
	var files []ScannedFile

	if !recursive {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, fmt.Errorf("failed to read directory %s: %w", root, err)
		}
		for _, entry := range entries {
			if entry.IsDir() || !isCandidateFile(entry.Name()) {
				continue
			}
			files = append(files, ScannedFile{
				Path: filepath.Join(root, entry.Name()),
				Rel:  entry.Name(),
			})
		}
		return files, nil
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && shouldSkipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !isCandidateFile(d.Name()) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, ScannedFile{Path: path, Rel: rel})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory %s: %w", root, err)
	}
	return files, nil
}

func isCandidateFile(name string) bool {
	return strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go")
}

func shouldSkipDir(name string) bool {
	return name == "vendor" || name == "testdata" ||
		strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}
