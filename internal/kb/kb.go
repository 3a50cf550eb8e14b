// Package kb provides sandboxed read access to the admissions knowledge base.
//
// The knowledge base is a directory of markdown documents (syllabus,
// lectures, assignments, scraped site content). All tool reads go through
// Library, which confines paths to the configured root and reports policy
// violations as machine-readable ToolError values suitable for returning to
// the model verbatim.
package kb

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ToolError is a machine-readable error body surfaced back to the model as JSON.
type ToolError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error returns a compact single-line JSON string to keep tool results small.
func (e ToolError) Error() string {
	b, _ := json.Marshal(e)
	return string(b)
}

// Library is a read-only view of the knowledge-base directory.
type Library struct {
	root string
}

// Open resolves root to an absolute, symlink-free path and returns a Library
// over it. Empty root defaults to the working directory.
func Open(root string) (*Library, error) {
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getwd: %w", err)
		}
		root = cwd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("abs(root): %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	return &Library{root: abs}, nil
}

// Root returns the resolved knowledge-base root.
func (l *Library) Root() string { return l.root }

// resolve validates rel against the root and returns an absolute path inside
// it. Absolute inputs, parent traversal, and symlink escapes are rejected.
func (l *Library) resolve(rel string) (string, error) {
	if filepath.IsAbs(rel) {
		return "", ToolError{Code: "ERR_PATH_OUTSIDE_LIBRARY", Message: "absolute paths are not allowed"}
	}
	cleaned := filepath.Clean(rel)
	if cleaned == "" {
		cleaned = "."
	}
	candidate := filepath.Join(l.root, cleaned)

	// Best-effort symlink resolution: resolve the whole candidate when it
	// exists, else the deepest existing ancestor rejoined with the leaf, so
	// escapes through a symlinked parent are still revealed.
	if resolved, err := filepath.EvalSymlinks(candidate); err == nil {
		candidate = resolved
	} else if resolvedParent, err2 := filepath.EvalSymlinks(filepath.Dir(candidate)); err2 == nil {
		candidate = filepath.Join(resolvedParent, filepath.Base(candidate))
	}

	relBack, err := filepath.Rel(l.root, candidate)
	if err != nil || relBack == ".." || strings.HasPrefix(relBack, ".."+string(filepath.Separator)) || filepath.IsAbs(relBack) {
		return "", ToolError{Code: "ERR_PATH_OUTSIDE_LIBRARY", Message: "requested path resolves outside the knowledge base"}
	}
	return candidate, nil
}

// Read returns the contents of one document addressed relative to the root.
func (l *Library) Read(rel string) (string, error) {
	abs, err := l.resolve(rel)
	if err != nil {
		return "", err
	}
	fi, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", ToolError{Code: "ERR_NOT_FOUND", Message: fmt.Sprintf("no document at %q", rel)}
		}
		return "", err
	}
	if fi.IsDir() {
		return "", ToolError{Code: "ERR_NOT_A_FILE", Message: "path is a directory"}
	}
	b, err := os.ReadFile(abs)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Documents walks the library and returns the relative paths of all regular
// files, sorted by the walk order (lexical within each directory).
func (l *Library) Documents() ([]string, error) {
	var out []string
	err := filepath.WalkDir(l.root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(l.root, path)
		if err != nil {
			return err
		}
		out = append(out, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
