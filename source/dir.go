// Package source resolves species names to data files inside an explicit
// data directory.
//
// The layout mirrors the published data sets:
//
//	<root>/Lines/line_<species>.dat          one radiative file per species
//	<root>/Collisions/*<species>[_.]dat     one file per species × partner
//
// Callers build a Dir once and hand it to the parsers, so no package ever
// depends on the process working directory.
package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Default sub-directories below the data root.
const (
	DefaultLinesDir      = "Lines"
	DefaultCollisionsDir = "Collisions"
)

// Option configures a Dir.
type Option func(*Dir)

// WithLinesDir overrides the directory holding line files. Relative paths
// are resolved against the data root.
func WithLinesDir(path string) Option {
	return func(d *Dir) { d.lines = path }
}

// WithCollisionsDir overrides the directory holding collision files. Relative
// paths are resolved against the data root.
func WithCollisionsDir(path string) Option {
	return func(d *Dir) { d.collisions = path }
}

// Dir is a read-only handle on a data directory.
type Dir struct {
	root       string
	lines      string
	collisions string
}

// NewDir validates root and returns a handle on it.
// Returns ErrNotDirectory when root does not exist or is a regular file.
func NewDir(root string, opts ...Option) (*Dir, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrNotDirectory, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}

	d := &Dir{root: root, lines: DefaultLinesDir, collisions: DefaultCollisionsDir}
	for _, opt := range opts {
		opt(d)
	}
	if !filepath.IsAbs(d.lines) {
		d.lines = filepath.Join(root, d.lines)
	}
	if !filepath.IsAbs(d.collisions) {
		d.collisions = filepath.Join(root, d.collisions)
	}

	return d, nil
}

// Root returns the data root.
func (d *Dir) Root() string { return d.root }

// LinesDir returns the resolved line-file directory.
func (d *Dir) LinesDir() string { return d.lines }

// CollisionsDir returns the resolved collision-file directory.
func (d *Dir) CollisionsDir() string { return d.collisions }

// LineFile returns the single line file matching any of the species names.
// Zero matches yield ErrMissingSource, more than one ErrAmbiguousSource, both
// wrapped in a *SourceError listing what was found.
func (d *Dir) LineFile(species ...string) (string, error) {
	matches, err := d.glob(d.lines, species, func(s string) string {
		return "line_" + s + ".dat"
	})
	if err != nil {
		return "", err
	}

	switch len(matches) {
	case 0:
		return "", &SourceError{Dir: d.lines, Species: species, Err: ErrMissingSource}
	case 1:
		return matches[0], nil
	default:
		return "", &SourceError{Dir: d.lines, Species: species, Matches: matches, Err: ErrAmbiguousSource}
	}
}

// CollisionFiles returns every collision file matching any of the species
// names, sorted and without duplicates. Zero matches yield ErrMissingSource.
func (d *Dir) CollisionFiles(species ...string) ([]string, error) {
	matches, err := d.glob(d.collisions, species, func(s string) string {
		return "*" + s + "[_.]dat"
	})
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, &SourceError{Dir: d.collisions, Species: species, Err: ErrMissingSource}
	}

	return matches, nil
}

// glob expands pattern(s) for every species inside dir and returns the
// sorted, de-duplicated union.
func (d *Dir) glob(dir string, species []string, pattern func(string) string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	for _, s := range species {
		found, err := filepath.Glob(filepath.Join(dir, pattern(s)))
		if err != nil {
			return nil, fmt.Errorf("source: species %q: %w", s, err)
		}
		for _, f := range found {
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			out = append(out, f)
		}
	}
	sort.Strings(out)

	return out, nil
}
