// Package logging builds the zap logger shared by the server and the CLI.
//
// Logs always go to stderr; stdout carries the MCP protocol stream.
package logging
