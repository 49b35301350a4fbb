package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	fileNamePattern = regexp.MustCompile(`^(\d+)_([a-z0-9_]+)\.(up|down)\.sql$`)
	slugBreak       = regexp.MustCompile(`[\s\-_]+`)
	slugDrop        = regexp.MustCompile(`[^a-z0-9_]`)
)

// File is one up/down pair on disk.
type File struct {
	Version  uint64
	Name     string
	UpPath   string
	DownPath string
}

// BaseName returns the shared prefix of the pair, e.g. 000002_add_tips.
func (f File) BaseName() string {
	return fmt.Sprintf("%06d_%s", f.Version, f.Name)
}

// Create writes an empty up/down pair numbered one past the highest version
// already present in dir.
func Create(dir, name string) (*File, error) {
	slug := slugify(name)
	if slug == "" {
		return nil, fmt.Errorf("migration name %q has no usable characters", name)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create migrations directory: %w", err)
	}

	existing, err := List(dir)
	if err != nil {
		return nil, err
	}
	var next uint64 = 1
	if n := len(existing); n > 0 {
		next = existing[n-1].Version + 1
	}

	f := &File{Version: next, Name: slug}
	f.UpPath = filepath.Join(dir, f.BaseName()+".up.sql")
	f.DownPath = filepath.Join(dir, f.BaseName()+".down.sql")

	if err := os.WriteFile(f.UpPath, []byte("-- "+name+"\n"), 0o644); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", f.UpPath, err)
	}
	if err := os.WriteFile(f.DownPath, []byte("-- revert "+name+"\n"), 0o644); err != nil {
		_ = os.Remove(f.UpPath)
		return nil, fmt.Errorf("failed to write %s: %w", f.DownPath, err)
	}
	return f, nil
}

// List returns the migration pairs in dir ordered by version. A missing
// directory yields an empty list. An up file without its down file is an error.
func List(dir string) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read migrations directory: %w", err)
	}

	byVersion := make(map[uint64]*File)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match := fileNamePattern.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		version, err := strconv.ParseUint(match[1], 10, 64)
		if err != nil {
			continue
		}
		f, ok := byVersion[version]
		if !ok {
			f = &File{Version: version, Name: match[2]}
			byVersion[version] = f
		}
		path := filepath.Join(dir, entry.Name())
		if match[3] == "up" {
			f.UpPath = path
		} else {
			f.DownPath = path
		}
	}

	files := make([]File, 0, len(byVersion))
	for _, f := range byVersion {
		if f.UpPath == "" || f.DownPath == "" {
			return nil, fmt.Errorf("migration %s is missing its up or down file", f.BaseName())
		}
		files = append(files, *f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Version < files[j].Version })
	return files, nil
}

func slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugBreak.ReplaceAllString(s, "_")
	s = slugDrop.ReplaceAllString(s, "")
	return strings.Trim(s, "_")
}
