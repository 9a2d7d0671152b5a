// Package driving declares what the CLI, HTTP API, MCP server, TUI and inbox
// watcher may ask of docshelf. internal/core/services implements it.
package driving
