// Package app contains the core application logic of the declparse tool. It
// loads a declared parser tree, runs it over command-line tokens and writes
// the resulting namespace, decoupled from the cobra commands that drive it.
package app
