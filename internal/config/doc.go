// Package config manages user-level settings stored in config.yaml inside
// the configuration directory. Settings supply defaults for the author
// identity, the license and the log level; each key can be overridden by a
// PUTUP_-prefixed environment variable.
package config
