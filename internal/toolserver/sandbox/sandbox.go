// Package sandbox confines all tool filesystem access to a per-instance
// root directory.
package sandbox

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrAccessDenied is returned when a path resolves outside the sandbox root.
var ErrAccessDenied = errors.New("access denied")

// Root validates caller-supplied relative paths against a fixed base
// directory. The base is resolved once at construction; every Resolve call
// re-resolves symlinks so a link inside the root cannot point out of it.
type Root struct {
	// dir is the absolute, lexically clean root path.
	dir string

	// resolved is dir with symlinks evaluated, used for containment checks.
	resolved string
}

// NewRoot creates a Root for dir. The directory does not have to exist yet;
// a missing root simply makes every lookup report not-found at the tool
// layer.
func NewRoot(dir string) (*Root, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to absolutize sandbox root %q: %w", dir, err)
	}

	resolved, err := resolveSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sandbox root %q: %w", dir, err)
	}

	return &Root{dir: abs, resolved: resolved}, nil
}

// Dir returns the sandbox root path.
func (r *Root) Dir() string {
	return r.dir
}

// Resolve maps a caller-supplied relative path to an absolute path inside
// the root. It rejects absolute paths, ".." traversal and symlink escapes
// with ErrAccessDenied before any content access happens. The returned path
// has symlinks resolved, so callers operate on the verified target.
func (r *Root) Resolve(rel string) (string, error) {
	if filepath.IsAbs(rel) {
		return "", fmt.Errorf("%w: path %q is outside user directory", ErrAccessDenied, rel)
	}

	// Join cleans ".." segments lexically; anything that climbs above the
	// root no longer has it as a prefix afterwards.
	target := filepath.Join(r.dir, rel)
	if !contains(r.dir, target) {
		return "", fmt.Errorf("%w: path %q is outside user directory", ErrAccessDenied, rel)
	}

	resolved, err := resolveSymlinks(target)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path %q: %w", rel, err)
	}
	if !contains(r.resolved, resolved) {
		return "", fmt.Errorf("%w: path %q is outside user directory", ErrAccessDenied, rel)
	}

	return resolved, nil
}

// contains reports whether p is root itself or a descendant of it. The
// comparison is per path segment: appending the separator to the root keeps
// sibling directories that share a literal prefix (/base/u1 vs /base/u10)
// apart.
func contains(root, p string) bool {
	if p == root {
		return true
	}
	return strings.HasPrefix(p, root+string(filepath.Separator))
}

// resolveSymlinks evaluates symlinks in path. Trailing components that do
// not exist yet are tolerated: the deepest existing ancestor is resolved and
// the remainder re-appended, so not-found surfaces at the tool layer rather
// than here.
func resolveSymlinks(path string) (string, error) {
	resolved, err := filepath.EvalSymlinks(path)
	if err == nil {
		return resolved, nil
	}
	if !os.IsNotExist(err) {
		return "", err
	}

	dir := filepath.Dir(path)
	if dir == path {
		// Filesystem root; nothing left to resolve.
		return path, nil
	}

	resolvedDir, err := resolveSymlinks(dir)
	if err != nil {
		return "", err
	}
	return filepath.Join(resolvedDir, filepath.Base(path)), nil
}
