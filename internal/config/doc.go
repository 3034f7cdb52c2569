// Package config loads server settings from an optional YAML file and the environment.
//
// Values are resolved by viper in this order: PATTERN_MCP_* environment
// variables, then the config file, then the built-in defaults.
package config
