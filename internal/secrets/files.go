package secrets

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	kerrors "github.com/kauri-framework/kauri/internal/errors"
)

// LoadSecretsFile loads an optional secrets file. A missing or unparsable
// file returns (nil, nil): first-run and corrupted-file cases are
// indistinguishable and both degrade to "generate fresh".
func LoadSecretsFile(path string) (*SecretsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read secrets file at %s: %w", path, err)
	}

	file := NewSecretsFile()
	if err := json.Unmarshal(data, file); err != nil {
		return nil, nil
	}

	return file, nil
}

// LoadLocalSecretsFile loads the merged local file. Unlike the framework
// and user files, its absence is an error: the caller must run generation
// first.
func LoadLocalSecretsFile(path string) (*SecretsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, kerrors.ErrLocalSecretsMissing
		}
		return nil, fmt.Errorf("failed to read local secrets file at %s: %w", path, err)
	}

	file := NewSecretsFile()
	if err := json.Unmarshal(data, file); err != nil {
		return nil, fmt.Errorf("failed to parse local secrets file at %s: %w", path, err)
	}

	return file, nil
}

// WriteSecretsFile writes a secrets file with stable formatting. Key order
// is deterministic, so regenerating an unchanged file is byte-stable.
func WriteSecretsFile(path string, file *SecretsFile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode secrets file: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
