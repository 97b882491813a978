// Package stacktrace shortens runtime stack dumps for log output.
package stacktrace

import "strings"

const marker = "/internal/"

// InternalPaths returns the "internal/<pkg>/<file>.go:<line>" frames of a raw
// stack produced by runtime/debug.Stack, innermost first. Frames outside this
// module's internal tree (runtime, net/http, third-party) are dropped.
func InternalPaths(stack []byte) []string {
	lines := strings.Split(string(stack), "\n")
	paths := make([]string, 0, len(lines)/2)

	for _, line := range lines {
		// file lines are indented with a tab; function lines are not
		if !strings.HasPrefix(line, "\t") {
			continue
		}

		line = strings.TrimSpace(line)
		idx := strings.Index(line, marker)
		if idx == -1 || !strings.Contains(line, ".go:") {
			continue
		}

		frame := line[idx+1:]
		if sp := strings.IndexByte(frame, ' '); sp != -1 {
			frame = frame[:sp] // drop " +0x1c"
		}
		paths = append(paths, frame)
	}

	return paths
}
