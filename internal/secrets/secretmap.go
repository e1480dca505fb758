package secrets

import (
	"github.com/kauri-framework/kauri/internal/configs"
)

// GenerateSecretMap builds the service-to-variable-names manifest consumed
// by deployment tooling. For every non-worker service in the config, the
// names contributed by the framework and user sections are unioned
// (framework first, order-preserving, deduplicated) and DATABASE_URL is
// appended when the framework section carries one. Services absent from
// both files still get an entry with an empty array, so tooling can iterate
// the map without consulting the config again.
func GenerateSecretMap(framework, user *SecretsFile, config *configs.FrameworkConfig) map[string][]string {
	secretMap := make(map[string][]string)

	for _, svc := range config.Services {
		if svc.IsWorker() {
			continue
		}

		names := []string{}
		seen := make(map[string]bool)

		appendNames := func(file *SecretsFile) {
			if file == nil {
				return
			}
			section, ok := file.Services[svc.Name]
			if !ok {
				return
			}
			for _, name := range section.Secrets {
				if !seen[name] {
					seen[name] = true
					names = append(names, name)
				}
			}
		}

		appendNames(framework)
		appendNames(user)

		if framework != nil {
			if section, ok := framework.Services[svc.Name]; ok {
				if _, hasDB := section.Values["DATABASE_URL"]; hasDB && !seen["DATABASE_URL"] {
					names = append(names, "DATABASE_URL")
				}
			}
		}

		secretMap[svc.Name] = names
	}

	return secretMap
}
