package secrets

import "strings"

// DeepDeleteServiceReferences removes every key, section, and string value
// that structurally belongs to serviceName from an arbitrary JSON tree
// (map[string]any / []any / primitives, as produced by encoding/json).
// It is used when a service is deleted from the project, against any file
// that may reference it. Rules, applied depth-first:
//
//   - an object key exactly equal to serviceName is dropped
//   - an object key starting with the SCREAMING_SNAKE prefix plus an
//     underscore is dropped; the trailing underscore avoids collateral
//     damage to e.g. DEMOX_SERVICE_KEY when deleting demo-service. This is
//     a pure prefix match: DEMO_SERVICE_DEMO_KEY also goes, a documented
//     sharp edge kept for compatibility
//   - a string value containing the uppercase service name is dropped,
//     covering stray references embedded in free-text values
//
// Arrays are filtered; objects that lose all keys remain as empty objects.
// The input is never mutated: a new tree is returned along with a flag
// telling callers whether anything changed, so they can skip a write.
func DeepDeleteServiceReferences(tree any, serviceName string) (any, bool) {
	upper := ToScreamingSnakeCase(serviceName)
	result, _, modified := deepDelete(tree, serviceName, upper)
	return result, modified
}

// deepDelete walks one node. dropped reports that the node itself must be
// removed from its parent; modified reports that the node or any descendant
// changed.
func deepDelete(node any, serviceName, upper string) (result any, dropped bool, modified bool) {
	switch v := node.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		changed := false
		for key, value := range v {
			if key == serviceName || strings.HasPrefix(key, upper+"_") {
				changed = true
				continue
			}
			child, childDropped, childModified := deepDelete(value, serviceName, upper)
			if childDropped {
				changed = true
				continue
			}
			if childModified {
				changed = true
			}
			out[key] = child
		}
		return out, false, changed

	case []any:
		out := make([]any, 0, len(v))
		changed := false
		for _, element := range v {
			child, childDropped, childModified := deepDelete(element, serviceName, upper)
			if childDropped {
				changed = true
				continue
			}
			if childModified {
				changed = true
			}
			out = append(out, child)
		}
		return out, false, changed

	case string:
		if strings.Contains(v, upper) {
			return nil, true, true
		}
		return v, false, false

	default:
		return v, false, false
	}
}
