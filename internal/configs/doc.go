// Package configs manages project configuration for Kauri.
//
// A Kauri project is described by kauri.toml at the monorepo root:
//
//	[project]
//	name = "shop"
//	templates = ["auth"]
//
//	[[services]]
//	name = "auth-service"
//	type = "nestjs"
//	port = 3001
//	has_database = true
//
// The service list drives secrets generation: backend services receive API
// keys, URLs, and full-mesh secrets arrays; frontend services (nextjs, spa)
// receive browser-safe subsets; worker services inherit their base service's
// section and contribute nothing of their own.
//
// # Settings
//
// Call InitProjectSettings() before accessing ProjectKauriSettings. It walks
// up the directory tree to find the nearest kauri.toml and derives the paths
// of the three secrets files under .kauri/:
//
//   - secrets.framework.json: regenerated, machine-to-machine credentials
//   - secrets.user.json: hand-edited, human-configurable values
//   - secrets.local.json: derived, fully-resolved merge of the other two
package configs
