// Package cli is responsible for parsing the declparse tool's own
// command-line arguments, validating user input, and handling process-level
// concerns like exit codes. It translates cobra flags into the
// application's configuration and hands parse results to the reporter.
package cli
