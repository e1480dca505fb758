package secrets

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kauri-framework/kauri/internal/configs"
	kerrors "github.com/kauri-framework/kauri/internal/errors"
)

// ServiceEnvironment returns the fully-resolved variables for one service
// from the merged local file. Worker services read their base service's
// environment.
func ServiceEnvironment(local *SecretsFile, config *configs.FrameworkConfig, serviceName string) (map[string]string, error) {
	lookup := serviceName
	for _, svc := range config.Services {
		if svc.Name == serviceName && svc.IsWorker() && svc.BaseService != "" {
			lookup = svc.BaseService
			break
		}
	}

	section, ok := local.Services[lookup]
	if !ok {
		return nil, fmt.Errorf("%q: %w", serviceName, kerrors.ErrServiceNotFound)
	}

	env := make(map[string]string, len(section.Values))
	for k, v := range section.Values {
		env[k] = v
	}
	return env, nil
}

// WriteServiceEnvFiles writes one .env file per non-worker service into
// outputDir, named {service}.env, from the merged local file. Returns the
// paths written.
func WriteServiceEnvFiles(local *SecretsFile, config *configs.FrameworkConfig, outputDir string) ([]string, error) {
	if err := os.MkdirAll(outputDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	for _, svc := range config.Services {
		if svc.IsWorker() {
			continue
		}

		env, err := ServiceEnvironment(local, config, svc.Name)
		if err != nil {
			return nil, err
		}

		path := filepath.Join(outputDir, svc.Name+".env")
		if err := godotenv.Write(env, path); err != nil {
			return nil, fmt.Errorf("failed to write env file for %s: %w", svc.Name, err)
		}
		written = append(written, path)
	}

	return written, nil
}
