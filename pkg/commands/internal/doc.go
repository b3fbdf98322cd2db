// Package internal resolves the project root, configuration and
// collaborators shared by the command implementations.
package internal
