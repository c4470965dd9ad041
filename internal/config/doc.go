// Package config loads, normalizes, and validates radar configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// GITHUB_TOKEN, NOTION_TOKEN, and NOTION_DB_ID. The Config type centralizes
// every knob the CLI needs: state and digest locations, discovery thresholds,
// and tracking-database credentials.
//
// Notion credentials are validated lazily via RequireNotion so that discovery
// and review can run without them while an import fails fast before any
// network activity.
package config
