// Package config loads the application configuration from environment
// variables (prefix FMCG) layered over an optional YAML file, and builds
// the process-wide structured logger. Environment variables take
// precedence over the file; defaults cover a zero-config run against a
// local data directory.
package config
