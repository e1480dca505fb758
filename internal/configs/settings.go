package configs

import (
	"fmt"
	"path/filepath"

	"github.com/kauri-framework/kauri/internal/utils"
)

// File names under the project's .kauri directory.
const (
	FrameworkSecretsFileName = "secrets.framework.json"
	UserSecretsFileName      = "secrets.user.json"
	LocalSecretsFileName     = "secrets.local.json"
)

type ProjectSettings struct {
	ProjectName          string
	ProjectPath          string
	KauriDir             string
	FrameworkSecretsPath string
	UserSecretsPath      string
	LocalSecretsPath     string
}

var ProjectKauriSettings *ProjectSettings

func init() {
	ProjectKauriSettings = &ProjectSettings{}
}

// InitProjectSettings discovers the project root and fills in the paths to
// the three secrets files. An uninitialized project leaves ProjectPath empty;
// commands decide whether that is an error.
func InitProjectSettings() error {
	projectPath, err := utils.FindProjectRoot()
	if err != nil {
		return fmt.Errorf("error getting project root: %w", err)
	}

	if projectPath == "" {
		ProjectKauriSettings = &ProjectSettings{}
		return nil
	}

	kauriDir := filepath.Join(projectPath, ".kauri")
	ProjectKauriSettings = &ProjectSettings{
		ProjectName:          filepath.Base(projectPath),
		ProjectPath:          projectPath,
		KauriDir:             kauriDir,
		FrameworkSecretsPath: filepath.Join(kauriDir, FrameworkSecretsFileName),
		UserSecretsPath:      filepath.Join(kauriDir, UserSecretsFileName),
		LocalSecretsPath:     filepath.Join(kauriDir, LocalSecretsFileName),
	}

	return nil
}
