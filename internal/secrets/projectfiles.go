package secrets

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// FindProjectJSONFiles resolves glob patterns against the project path and
// returns the matching JSON files, deduplicated. Used by remove-service to
// locate every file that may reference the removed service. Relative
// patterns are resolved from the project root; ** is supported.
func FindProjectJSONFiles(projectPath string, patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, pattern := range patterns {
		absPattern := pattern
		if !filepath.IsAbs(pattern) {
			absPattern = filepath.Join(projectPath, pattern)
		}

		matches, err := doublestar.FilepathGlob(absPattern)
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}

		for _, m := range matches {
			info, err := os.Stat(m)
			if err != nil || info.IsDir() {
				continue
			}
			if filepath.Ext(m) != ".json" {
				continue
			}
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}

	return files, nil
}

// DeleteServiceFromFile runs deep deletion against a JSON file on disk,
// rewriting it only when something was removed. Reports whether the file
// changed.
func DeleteServiceFromFile(path, serviceName string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var tree any
	if err := json.Unmarshal(data, &tree); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	result, modified := DeepDeleteServiceReferences(tree, serviceName)
	if !modified {
		return false, nil
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return false, fmt.Errorf("failed to encode %s: %w", path, err)
	}
	out = append(out, '\n')

	if err := os.WriteFile(path, out, 0600); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}

	return true, nil
}
