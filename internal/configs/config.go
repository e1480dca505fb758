package configs

import (
	"fmt"
	"os"
	"path/filepath"

	kerrors "github.com/kauri-framework/kauri/internal/errors"
	"github.com/kauri-framework/kauri/internal/utils"
)

// Service types the scaffold emits. Anything not listed as a frontend or
// worker type is treated as a backend.
const (
	ServiceTypeNestJS = "nestjs"
	ServiceTypeNextJS = "nextjs"
	ServiceTypeSPA    = "spa"
	ServiceTypeWorker = "worker"
)

// TemplateAuth enables JWT signing material and the auth-service secret set.
const TemplateAuth = "auth"

type FrameworkConfig struct {
	Project  Project            `toml:"project"`
	Services []FrameworkService `toml:"services"`
}

type Project struct {
	Name      string   `toml:"name"`
	Templates []string `toml:"templates"`
}

type FrameworkService struct {
	Name         string `toml:"name"`
	Type         string `toml:"type"`
	Port         int    `toml:"port,omitempty"`
	HasDatabase  bool   `toml:"has_database,omitempty"`
	DatabasePort int    `toml:"database_port,omitempty"`
	BaseService  string `toml:"base_service,omitempty"`
}

// IsFrontend reports whether the service is a browser-facing type.
func (s FrameworkService) IsFrontend() bool {
	return s.Type == ServiceTypeNextJS || s.Type == ServiceTypeSPA
}

// IsWorker reports whether the service shares its base service's secrets
// and contributes no section of its own.
func (s FrameworkService) IsWorker() bool {
	return s.Type == ServiceTypeWorker
}

// IsBackend reports whether the service receives an API key, a URL, and a
// full-mesh secrets array.
func (s FrameworkService) IsBackend() bool {
	return !s.IsFrontend() && !s.IsWorker()
}

// HasAuthTemplate reports whether the auth template is enabled for the project.
func (c *FrameworkConfig) HasAuthTemplate() bool {
	for _, t := range c.Project.Templates {
		if t == TemplateAuth {
			return true
		}
	}
	return false
}

// BackendServices returns the backend services in config order.
func (c *FrameworkConfig) BackendServices() []FrameworkService {
	var backends []FrameworkService
	for _, svc := range c.Services {
		if svc.IsBackend() {
			backends = append(backends, svc)
		}
	}
	return backends
}

// FrontendServices returns the frontend services in config order.
func (c *FrameworkConfig) FrontendServices() []FrameworkService {
	var frontends []FrameworkService
	for _, svc := range c.Services {
		if svc.IsFrontend() {
			frontends = append(frontends, svc)
		}
	}
	return frontends
}

// Validate checks that every service name is lowercase kebab-case and every
// non-worker service has a port. Generation must not start on an invalid
// config: a half-written framework file would drop preserved secrets on the
// next run.
func (c *FrameworkConfig) Validate() error {
	seen := make(map[string]bool)
	for _, svc := range c.Services {
		if !utils.IsValidServiceName(svc.Name) {
			return &kerrors.ConfigError{Service: svc.Name, Field: "name", Err: kerrors.ErrInvalidServiceName}
		}
		if seen[svc.Name] {
			return &kerrors.ConfigError{Service: svc.Name, Field: "name", Err: fmt.Errorf("duplicate service name")}
		}
		seen[svc.Name] = true

		if !svc.IsWorker() && svc.Port == 0 {
			return &kerrors.ConfigError{Service: svc.Name, Field: "port", Err: kerrors.ErrMissingPort}
		}
	}
	return nil
}

// LoadFrameworkConfig loads kauri.toml from the project root.
func LoadFrameworkConfig(projectPath string) (*FrameworkConfig, error) {
	configPath := filepath.Join(projectPath, "kauri.toml")

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, kerrors.ErrProjectNotInitialized
	}

	config := &FrameworkConfig{}
	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load framework config: %w", kerrors.ErrInvalidProjectConfig)
	}

	return config, nil
}

// SaveFrameworkConfig saves kauri.toml to the project root.
func SaveFrameworkConfig(projectPath string, config *FrameworkConfig) error {
	configPath := filepath.Join(projectPath, "kauri.toml")

	if err := SaveTOML(configPath, config); err != nil {
		return fmt.Errorf("failed to save framework config: %w", err)
	}

	return nil
}
