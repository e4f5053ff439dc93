package mapping

import (
	"errors"
	"strings"
)

// DotPath is an immutable ordered sequence of path segments, parsed from a
// dotted identifier such as "department.manager.name". Segments are
// separated by a literal '.' with no escaping mechanism.
type DotPath []string

// ParseDotPath splits a dotted path into its segments. Empty paths and
// empty segments are rejected.
func ParseDotPath(path string) (DotPath, error) {
	if path == "" {
		return nil, NewResolutionError("", "", path, "empty path")
	}
	segs := strings.Split(path, ".")
	for _, s := range segs {
		if s == "" {
			return nil, NewResolutionError("", s, path, "empty path segment")
		}
	}
	return DotPath(segs), nil
}

// String returns the dotted form of the path.
func (p DotPath) String() string {
	return strings.Join(p, ".")
}

// Resolve walks the path segment-by-segment starting at root, left to
// right with no backtracking, and returns the part the last segment
// resolves to.
//
// If the path starts with the root's own full navigable path, that prefix
// is consumed without a lookup. This short-circuits already-resolved
// references: resolving "Employee.department" against the Employee entity
// skips the "Employee" segment.
func (p DotPath) Resolve(root Queryable) (ModelPart, error) {
	if len(p) == 0 {
		return nil, NewResolutionError(root.Role().FullPath(), "", "", "empty path")
	}
	full := p.String()
	segs := []string(p)
	if rootPath := root.Role().FullPath(); rootPath != "" {
		if full == rootPath {
			return root, nil
		}
		if strings.HasPrefix(full, rootPath+".") {
			segs = strings.Split(full[len(rootPath)+1:], ".")
		}
	}
	current := root
	for i, seg := range segs {
		part, err := current.SubPart(seg, nil)
		if err != nil {
			var rerr *ResolutionError
			if errors.As(err, &rerr) && rerr.Path == "" {
				rerr.Path = full
			}
			return nil, err
		}
		if i == len(segs)-1 {
			return part, nil
		}
		next, ok := part.(Queryable)
		if !ok {
			return nil, NewResolutionError(current.Role().FullPath(), seg, full, "part is not a container")
		}
		current = next
	}
	return current, nil
}
