package scanner

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/gobwas/glob"

	"github.com/dbsmedya/phpmigrate/internal/config"
	"github.com/dbsmedya/phpmigrate/internal/logger"
	"github.com/dbsmedya/phpmigrate/internal/types"
)

// Discovery walks the scan root and collects the files a scan will process.
// Files are returned in walk order, which is lexical within each directory,
// so repeated runs over an unchanged tree visit files in the same order.
type Discovery struct {
	root       string
	extensions map[string]bool
	dirGlobs   []glob.Glob
	fileGlobs  []glob.Glob
	logger     *logger.Logger
}

// NewDiscovery creates a Discovery for the given scan settings.
func NewDiscovery(cfg *config.ScanConfig, log *logger.Logger) (*Discovery, error) {
	if cfg == nil {
		return nil, fmt.Errorf("scan config is nil")
	}
	if cfg.Root == "" {
		return nil, fmt.Errorf("scan root is required")
	}
	if log == nil {
		log = logger.NewDefault()
	}

	extensions := make(map[string]bool, len(cfg.Extensions))
	for _, ext := range cfg.Extensions {
		extensions[ext] = true
	}

	dirGlobs, err := compileGlobs(cfg.Exclude.Dirs)
	if err != nil {
		return nil, fmt.Errorf("invalid directory exclude: %w", err)
	}
	fileGlobs, err := compileGlobs(cfg.Exclude.Files)
	if err != nil {
		return nil, fmt.Errorf("invalid file exclude: %w", err)
	}

	return &Discovery{
		root:       cfg.Root,
		extensions: extensions,
		dirGlobs:   dirGlobs,
		fileGlobs:  fileGlobs,
		logger:     log,
	}, nil
}

// Discover walks the root and returns every file whose extension is
// configured and whose base name no exclude pattern matches. Directories
// matching an exclude pattern are pruned with their whole subtree.
func (d *Discovery) Discover() (*types.FileSet, error) {
	start := time.Now()
	result := &types.FileSet{}

	d.logger.Debugw("Starting file discovery", "root", d.root)

	err := filepath.WalkDir(d.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		base := filepath.Base(path)

		if entry.IsDir() {
			if path != d.root && matchesAny(d.dirGlobs, base) {
				result.Stats.DirsSkipped++
				d.logger.Debugw("Skipping directory", "path", path)
				return filepath.SkipDir
			}
			return nil
		}

		if !d.extensions[filepath.Ext(path)] {
			return nil
		}
		if matchesAny(d.fileGlobs, base) {
			return nil
		}

		if info, err := entry.Info(); err == nil {
			result.Stats.TotalBytes += info.Size()
		}
		result.Paths = append(result.Paths, path)
		result.Stats.FilesFound++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", d.root, err)
	}

	result.Stats.Duration = time.Since(start)

	d.logger.Infow("File discovery complete",
		"files", result.Stats.FilesFound,
		"dirs_skipped", result.Stats.DirsSkipped,
		"bytes", result.Stats.TotalBytes,
		"duration", result.Stats.Duration,
	)

	return result, nil
}

func compileGlobs(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

func matchesAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}
