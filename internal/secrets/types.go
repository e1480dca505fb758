package secrets

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// SecretsFile is the on-disk JSON shape shared by the framework, user, and
// local secrets files. Top-level keys fall into three groups:
//
//   - keys starting with "$" are metadata (comments, timestamps) and never
//     participate in merging beyond pass-through
//   - "secrets" is a flat map of variable name to string value
//   - every other key is a service section
//
// Sections are usually ServiceSecrets objects; a raw string or array is
// tolerated and carried through opaquely.
type SecretsFile struct {
	Metadata map[string]any
	Secrets  map[string]string
	Services map[string]*ServiceSecrets
	Opaque   map[string]any
}

// ServiceSecrets is the sub-object of a secrets file keyed by a service's
// name. Secrets lists the variable names the service is entitled to; Values
// holds direct properties (PORT, API_KEY, DATABASE_URL, and, after
// resolution, the literal value of every name that was in Secrets).
//
// A nil Secrets slice means the array is absent (e.g. after resolution); an
// empty non-nil slice is serialized as [].
type ServiceSecrets struct {
	Secrets []string
	Values  map[string]string
}

// NewSecretsFile returns an empty file with all maps allocated.
func NewSecretsFile() *SecretsFile {
	return &SecretsFile{
		Metadata: make(map[string]any),
		Secrets:  make(map[string]string),
		Services: make(map[string]*ServiceSecrets),
		Opaque:   make(map[string]any),
	}
}

// Section returns the named service section, creating it if absent.
func (f *SecretsFile) Section(name string) *ServiceSecrets {
	if f.Services == nil {
		f.Services = make(map[string]*ServiceSecrets)
	}
	section, ok := f.Services[name]
	if !ok {
		section = &ServiceSecrets{Values: make(map[string]string)}
		f.Services[name] = section
	}
	return section
}

// Clone returns a deep copy of the file.
func (f *SecretsFile) Clone() *SecretsFile {
	clone := NewSecretsFile()
	for k, v := range f.Metadata {
		clone.Metadata[k] = v
	}
	for k, v := range f.Secrets {
		clone.Secrets[k] = v
	}
	for name, section := range f.Services {
		clone.Services[name] = section.Clone()
	}
	for k, v := range f.Opaque {
		clone.Opaque[k] = v
	}
	return clone
}

// Clone returns a deep copy of the section.
func (s *ServiceSecrets) Clone() *ServiceSecrets {
	clone := &ServiceSecrets{Values: make(map[string]string, len(s.Values))}
	if s.Secrets != nil {
		clone.Secrets = append([]string{}, s.Secrets...)
	}
	for k, v := range s.Values {
		clone.Values[k] = v
	}
	return clone
}

// HasSecret reports whether name is in the section's secrets array.
func (s *ServiceSecrets) HasSecret(name string) bool {
	for _, existing := range s.Secrets {
		if existing == name {
			return true
		}
	}
	return false
}

// AddSecret appends name to the secrets array if not already present.
func (s *ServiceSecrets) AddSecret(name string) {
	if !s.HasSecret(name) {
		s.Secrets = append(s.Secrets, name)
	}
}

// MarshalJSON writes the canonical on-disk shape. encoding/json sorts map
// keys, and "$" sorts before identifiers, so metadata leads the output and
// repeated marshals of equal files are byte-identical.
func (f *SecretsFile) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(f.Metadata)+len(f.Services)+len(f.Opaque)+1)
	for k, v := range f.Metadata {
		out[k] = v
	}
	out["secrets"] = f.Secrets
	for name, section := range f.Services {
		out[name] = section
	}
	for name, raw := range f.Opaque {
		if _, taken := out[name]; !taken {
			out[name] = raw
		}
	}
	return json.Marshal(out)
}

// MarshalJSON serializes Values as direct properties with the secrets array
// (when present) alongside them.
func (s *ServiceSecrets) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(s.Values)+1)
	for k, v := range s.Values {
		out[k] = v
	}
	if s.Secrets != nil {
		out["secrets"] = s.Secrets
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts the on-disk shape, flattening legacy nested objects
// inside the top-level secrets map and tolerating raw (non-object) service
// sections.
func (f *SecretsFile) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*f = *NewSecretsFile()

	for key, value := range raw {
		switch {
		case strings.HasPrefix(key, "$"):
			var meta any
			if err := json.Unmarshal(value, &meta); err != nil {
				return fmt.Errorf("failed to parse metadata key %q: %w", key, err)
			}
			f.Metadata[key] = meta

		case key == "secrets":
			if err := f.unmarshalSecrets(value); err != nil {
				return err
			}

		default:
			section := &ServiceSecrets{}
			if err := json.Unmarshal(value, section); err != nil {
				// Raw strings and arrays are tolerated as opaque sections.
				var opaque any
				if err := json.Unmarshal(value, &opaque); err != nil {
					return fmt.Errorf("failed to parse section %q: %w", key, err)
				}
				f.Opaque[key] = opaque
				continue
			}
			f.Services[key] = section
		}
	}

	return nil
}

// unmarshalSecrets reads the top-level secrets map. Every value must end up
// a string: legacy nested objects (e.g. a REDIS object) are flattened into
// prefixed keys, and stray numbers or booleans are stringified.
func (f *SecretsFile) unmarshalSecrets(data []byte) error {
	var entries map[string]any
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("failed to parse secrets map: %w", err)
	}

	for key, value := range entries {
		switch v := value.(type) {
		case string:
			f.Secrets[key] = v
		case map[string]any:
			for childKey, childValue := range v {
				name := childKey
				if !strings.HasPrefix(childKey, key+"_") {
					name = key + "_" + childKey
				}
				f.Secrets[name] = stringify(childValue)
			}
		default:
			f.Secrets[key] = stringify(value)
		}
	}

	return nil
}

// UnmarshalJSON reads a service section object: a "secrets" key holds the
// string array, every other key is a direct string property.
func (s *ServiceSecrets) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.Values = make(map[string]string)
	s.Secrets = nil

	for key, value := range raw {
		if key == "secrets" {
			var names []string
			if err := json.Unmarshal(value, &names); err != nil {
				return fmt.Errorf("failed to parse secrets array: %w", err)
			}
			if names == nil {
				names = []string{}
			}
			s.Secrets = names
			continue
		}

		var str string
		if err := json.Unmarshal(value, &str); err != nil {
			var other any
			if err := json.Unmarshal(value, &other); err != nil {
				return err
			}
			str = stringify(other)
		}
		s.Values[key] = str
	}

	return nil
}

// Equal reports whether two files serialize to identical bytes. Sync and
// regeneration use this to decide whether a write is needed.
func (f *SecretsFile) Equal(other *SecretsFile) bool {
	if other == nil {
		return false
	}
	a, errA := json.Marshal(f)
	b, errB := json.Marshal(other)
	if errA != nil || errB != nil {
		return false
	}
	return bytes.Equal(a, b)
}

// ServiceNames returns the section names in sorted order.
func (f *SecretsFile) ServiceNames() []string {
	names := make([]string, 0, len(f.Services))
	for name := range f.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// stringify renders a scalar JSON value as a string. json.Unmarshal into any
// gives float64 for numbers; integral values print without a decimal point.
func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v == float64(int64(v)) {
			return fmt.Sprintf("%d", int64(v))
		}
		return fmt.Sprintf("%g", v)
	case bool:
		return fmt.Sprintf("%t", v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
