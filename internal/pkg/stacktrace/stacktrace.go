// Package stacktrace extracts the frames of this module from a raw goroutine
// stack dump, so panic logs stay readable.
package stacktrace

import "strings"

// InternalPaths returns the internal/ source locations found in a raw stack
// trace, trimmed to path:line.
func InternalPaths(stack []byte) []string {
	var paths []string

	for _, line := range strings.Split(string(stack), "\n") {
		line = strings.TrimSpace(line)

		at := strings.Index(line, ".go:")
		if at == -1 {
			continue
		}

		end := len(line)
		if sp := strings.Index(line[at:], " "); sp != -1 {
			end = at + sp
		}

		loc := line[:end]
		if idx := strings.Index(loc, "/internal/"); idx != -1 {
			paths = append(paths, loc[idx+1:])
		}
	}

	return paths
}
