// Package secrets implements the secrets generation and merging engine for
// Kauri projects.
//
// # File Model
//
// Two independently-edited source files merge into one effective
// configuration:
//
//   - secrets.framework.json is regenerated on every run and owns
//     machine-to-machine credentials: JWT signing material, the gateway
//     trust token, per-service API keys and URLs, database credentials.
//     Regeneration is value-stable: a preserve-marked value present in the
//     prior file is carried over byte-for-byte, never re-generated.
//   - secrets.user.json is created once and only ever additively synced.
//     It owns human-configurable values: token TTLs, domain, app URL, CORS
//     origins. User edits are never overwritten.
//   - secrets.local.json is the derived merge of the two, with user values
//     taking precedence and every reference resolved to a literal. It is
//     always safe to delete and regenerate.
//
// # Reference Resolution
//
// Service sections grant access by listing variable names in a secrets
// array. Merging resolves each name against the combined top-level secrets
// map and promotes it to a direct property; an unresolvable name aborts the
// merge. Resolution happens at generation time so missing credentials
// surface before a service ever boots without one.
//
// # Concurrency
//
// Everything here is a synchronous in-memory transform or a single local
// file read/write. The engine is designed for repeated invocation, not
// parallel invocation; builders either return a new structure or document
// in-place mutation.
package secrets
