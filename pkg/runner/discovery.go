package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
)

// Discover finds Markdown files for opts. It returns sorted absolute paths
// without duplicates. Explicitly named files are kept even when hidden.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	d := &discoverer{
		ctx:        ctx,
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		opts:       opts,
		seen:       make(map[string]struct{}),
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, absPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if d.accepts(absPath) {
				d.add(absPath)
			}
			continue
		}

		if err := d.walk(absPath); err != nil {
			return nil, err
		}
	}

	slices.Sort(d.files)
	return d.files, nil
}

type discoverer struct {
	ctx        context.Context
	workDir    string
	extensions []string
	opts       Options
	seen       map[string]struct{}
	files      []string
}

func (d *discoverer) add(p string) {
	if _, ok := d.seen[p]; ok {
		return
	}
	d.seen[p] = struct{}{}
	d.files = append(d.files, p)
}

func (d *discoverer) rel(p string) string {
	relPath, err := filepath.Rel(d.workDir, p)
	if err != nil {
		return p
	}
	return relPath
}

// accepts checks extension and exclude patterns.
func (d *discoverer) accepts(p string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	if !slices.ContainsFunc(d.extensions, func(e string) bool { return strings.EqualFold(e, ext) }) {
		return false
	}
	return !matchesAny(d.rel(p), d.opts.ExcludeGlobs)
}

func (d *discoverer) walk(root string) error {
	err := filepath.WalkDir(root, func(p string, entry fs.DirEntry, walkErr error) error {
		if err := d.ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		hidden := p != root && strings.HasPrefix(entry.Name(), ".")

		if entry.IsDir() {
			if hidden || matchesAny(d.rel(p), d.opts.ExcludeGlobs) {
				return filepath.SkipDir
			}
			return nil
		}

		if hidden {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := filepath.EvalSymlinks(p)
			if err != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped.
			}
			info, err := os.Stat(target)
			if err != nil {
				return nil //nolint:nilerr // Unreadable targets are skipped.
			}
			if info.IsDir() {
				if !d.opts.FollowSymlinks {
					return nil
				}
				// Walk the target; WalkDir does not follow the link itself.
				return d.walk(target)
			}
		}

		if d.accepts(p) {
			d.add(p)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

func matchesAny(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if MatchGlob(relPath, pattern) {
			return true
		}
	}
	return false
}

// MatchGlob matches a slash-separated relative path against a glob pattern.
// "**" matches any number of path segments. A pattern without a slash also
// matches the base name, so "*.md" excludes Markdown files at any depth.
func MatchGlob(relPath, pattern string) bool {
	relPath = filepath.ToSlash(relPath)
	pattern = filepath.ToSlash(pattern)

	if !strings.Contains(pattern, "/") && !strings.Contains(pattern, "**") {
		if ok, _ := path.Match(pattern, path.Base(relPath)); ok {
			return true
		}
	}

	return matchSegments(strings.Split(relPath, "/"), strings.Split(pattern, "/"))
}

func matchSegments(segs, pats []string) bool {
	for len(pats) > 0 {
		if pats[0] == "**" {
			rest := pats[1:]
			// "**" absorbs zero or more segments.
			for i := 0; i <= len(segs); i++ {
				if matchSegments(segs[i:], rest) {
					return true
				}
			}
			return false
		}
		if len(segs) == 0 {
			return false
		}
		if ok, err := path.Match(pats[0], segs[0]); err != nil || !ok {
			return false
		}
		segs, pats = segs[1:], pats[1:]
	}
	return len(segs) == 0
}
