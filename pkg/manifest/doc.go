// Package manifest regenerates the source list of the library target in a
// CMake build manifest.
//
// Discover collects the C and C++ sources under a set of subdirectories in
// a stable order. Rewrite replaces the body of the first block opened by a
// line matching the start pattern and closed by a line matching the end
// pattern with one indented line per source, leaving every other line byte
// for byte as it was. Update and Check apply Rewrite to a file on disk.
package manifest
