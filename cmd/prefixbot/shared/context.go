// Package shared holds the context passed to all CLI commands.
package shared

// Context carries global CLI state (flags set on the root command).
type Context struct {
	// ConfigPath is the YAML configuration file. Defaults apply when it does not exist.
	ConfigPath string

	// EnvFile is the .env file loaded before the environment is read.
	EnvFile string
}
