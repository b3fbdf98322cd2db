// Package deps implements the deps command, running the dependency step
// of the pipeline on its own.
package deps
