// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown command, task number out of range).
	UserError = 1

	// ConfigError indicates bad configuration or an unusable local preference store.
	ConfigError = 2

	// BackendError indicates a transport, status or decode failure talking to the store.
	BackendError = 3
)
