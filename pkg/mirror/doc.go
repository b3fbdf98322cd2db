// Package mirror manages the local clone of the upstream repository and
// regenerates the flattened source tree from it.
//
// The clone is driven through a VCS backend. GitCLI shells out to the git
// client; GoGit does the same work in-process with go-git and needs no git
// binary. The tree itself is always produced by the upstream generator,
// run as a subprocess with the clone as its working directory.
package mirror
