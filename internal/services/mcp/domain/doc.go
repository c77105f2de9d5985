// Package domain defines the MCP tools and resources exposed over the archive.
//
// Handlers read through an AssetSource so the same bindings serve stdio and
// HTTP transports, and tests can point them at a temporary asset root.
package domain
