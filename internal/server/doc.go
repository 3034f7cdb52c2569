// Package server implements the MCP (Model Context Protocol) server for pattern tools.
//
// The server exposes the pattern value model (patterns, named positions,
// anchors and colour profiles) to MCP clients so they can describe UI
// templates and reason about where a match of a template leads.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported MCP methods: initialize, notifications/initialized, tools/list,
// tools/call and ping.
//
// # Available Tools
//
// Images:
//   - image_load: Load image and get metadata
//
// Pattern lifecycle:
//   - pattern_create: Build a pattern from options and an optional image file
//   - pattern_from_region: Crop a screenshot region into a pattern
//   - pattern_get, pattern_list, pattern_delete: Inspect and remove patterns
//   - pattern_equals: Compare two patterns
//
// Pattern geometry and colour:
//   - pattern_locate: Project the pattern position and anchors into a match
//   - pattern_sample_color: Colour at the pattern position
//   - pattern_color_profiles: k-means colour profiles
//
// Positions:
//   - position_lookup: Coordinates of a named position
//
// # State
//
// Loaded images are cached by path for the lifetime of the process. Patterns
// live in an in-memory Store under generated ids; nothing is persisted.
//
// # Error Handling
//
// Tool execution errors are returned as JSON-RPC error responses with code
// -32000 and the Go error string as data. Malformed tools/call params give
// -32602 and unknown methods -32601.
package server
