package engine

import (
	"bufio"
	"strings"

	mapset "github.com/deckarep/golang-set"
)

// ApplyIgnore mutates tree in place, removing every path named by a line
// of text. Each non-empty trimmed line is a relative path; a trailing '/'
// marks it as a directory, otherwise it is a file (see DirNode.RemovePath
// for the exact, intentionally asymmetric removal semantics). The ignore
// language is deliberately minimal: literal paths only, no globs, no
// negation, no comment syntax - every non-empty line is consumed as a
// path, including one that happens to start with '#'.
//
// Lines are deduplicated before being applied (using the same
// mapset.Set-based set-difference idiom the teacher lineage uses in
// difftreelib/tree_entry.go to compare two directories' entries, here
// turned toward deduplicating one ignore file's own requested removals),
// so a path listed twice in the ignore spec is only counted once.
//
// ApplyIgnore returns the number of distinct lines that were successfully
// applied; a line that fails (e.g. an intermediate path component doesn't
// exist) has no effect and is not counted, but does not stop processing
// of the remaining lines.
func ApplyIgnore(tree *DirNode, text string) int {
	lines := mapset.NewThreadUnsafeSet()
	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		lines.Add(line)
	}

	applied := 0
	for _, raw := range lines.ToSlice() {
		line := raw.(string)
		isDir := strings.HasSuffix(line, "/")
		path := strings.TrimSuffix(line, "/")
		if path == "" {
			continue
		}
		if err := tree.RemovePath(path, isDir); err != nil {
			log.WithField("line", line).WithError(err).Debug("ignore line had no effect")
			continue
		}
		applied++
	}
	return applied
}
