package rules

import (
	"path"
	"strings"
)

// MatchGlob matches a file path against a rule glob. Single segments use
// path.Match semantics; a "**" segment spans any number of directories, so
// "src/legacy/**" matches everything under src/legacy. A bare pattern with
// no separator also matches against the path's base name, which lets rules
// say "*.stories.tsx" without spelling out the tree.
func MatchGlob(pattern, p string) (bool, error) {
	pattern = path.Clean(strings.ReplaceAll(pattern, "\\", "/"))
	p = path.Clean(strings.ReplaceAll(p, "\\", "/"))

	if !strings.Contains(pattern, "**") {
		ok, err := path.Match(pattern, p)
		if err != nil || ok {
			return ok, err
		}
		if !strings.Contains(pattern, "/") {
			return path.Match(pattern, path.Base(p))
		}
		return false, nil
	}

	return matchSegments(strings.Split(pattern, "/"), strings.Split(p, "/"))
}

// matchSegments matches pattern segments against path segments, where a
// "**" pattern segment consumes zero or more path segments.
func matchSegments(pattern, segs []string) (bool, error) {
	if len(pattern) == 0 {
		return len(segs) == 0, nil
	}

	if pattern[0] == "**" {
		// Trailing ** matches the rest of the path, including nothing.
		if len(pattern) == 1 {
			return true, nil
		}
		for skip := 0; skip <= len(segs); skip++ {
			ok, err := matchSegments(pattern[1:], segs[skip:])
			if err != nil || ok {
				return ok, err
			}
		}
		return false, nil
	}

	if len(segs) == 0 {
		return false, nil
	}
	ok, err := path.Match(pattern[0], segs[0])
	if err != nil || !ok {
		return ok, err
	}
	return matchSegments(pattern[1:], segs[1:])
}
