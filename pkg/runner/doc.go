// Package runner executes the external processes vendorsync depends on:
// the version-control client, the package installer and the upstream tree
// generator. Every call blocks until the process exits; output is captured
// and optionally streamed to the console.
package runner
