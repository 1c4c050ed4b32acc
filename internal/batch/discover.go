package batch

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover lists the files directly inside dir whose names end in one of the
// recognized extensions. Matching is case-sensitive unless caseInsensitive is
// set. The result is sorted by name; subdirectories are not descended into.
// A missing directory surfaces as the os.ReadDir error (fs.ErrNotExist).
func Discover(dir string, extensions []string, caseInsensitive bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if matchesExtension(entry.Name(), extensions, caseInsensitive) {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

func matchesExtension(name string, extensions []string, caseInsensitive bool) bool {
	if caseInsensitive {
		name = strings.ToLower(name)
	}
	for _, ext := range extensions {
		if caseInsensitive {
			ext = strings.ToLower(ext)
		}
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
