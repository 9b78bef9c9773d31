package util

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// SlashPath cleans a path and converts it to forward slashes so scopes and
// exclude patterns compare the same on every platform.
func SlashPath(s string) string {
	trimmed := strings.TrimSpace(strings.ReplaceAll(s, "\\", "/"))
	if trimmed == "" {
		return ""
	}
	clean := path.Clean(trimmed)
	if clean == "." {
		return ""
	}
	return strings.TrimPrefix(clean, "./")
}

// RelativeTo rewrites p relative to root when p lies under it. Paths outside
// root, and module names, come back slash-cleaned but otherwise unchanged.
func RelativeTo(root, p string) string {
	if root == "" || !filepath.IsAbs(p) {
		return SlashPath(p)
	}
	rel, err := filepath.Rel(root, p)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return SlashPath(p)
	}
	return SlashPath(rel)
}

// HasPathPrefix returns true when p equals prefix or is contained within it.
func HasPathPrefix(p, prefix string) bool {
	p = SlashPath(p)
	prefix = SlashPath(prefix)
	if p == "" || prefix == "" {
		return p == prefix
	}
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}

// SortedKeys returns the map's keys in sorted order.
func SortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// WriteFileAtomic writes data next to p and renames it into place, creating
// parent directories (0755) first. Readers never observe a partial report.
func WriteFileAtomic(p string, data []byte, perm fs.FileMode) error {
	dir := filepath.Dir(p)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(p)+".*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, p)
}
