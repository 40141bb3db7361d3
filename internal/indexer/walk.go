package indexer

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	ignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"

	"github.com/robertluiz/mcp-code-validator-sub000/internal/parser"
)

// Directories never worth indexing regardless of ignore rules.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	".next":        true,
	"dist":         true,
	"build":        true,
}

// IndexDirectory walks a source tree, honouring the root .gitignore,
// and indexes every supported file. Per-file failures are reported in
// that file's Result; the walk continues.
func (ix *Indexer) IndexDirectory(ctx context.Context, gctx, root string) ([]*Result, error) {
	var matcher *ignore.GitIgnore
	if gi, err := ignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
		matcher = gi
	}

	var results []*Result
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		if d.IsDir() {
			if skipDirs[d.Name()] || (matcher != nil && rel != "." && matcher.MatchesPath(rel)) {
				return filepath.SkipDir
			}
			return nil
		}
		if !parser.Supported(path) {
			return nil
		}
		if matcher != nil && matcher.MatchesPath(rel) {
			return nil
		}

		source, readErr := os.ReadFile(path)
		if readErr != nil {
			ix.log.Warn("skipping unreadable file", zap.String("file", path), zap.Error(readErr))
			return nil
		}
		elements := parser.Parse(path, string(source))
		results = append(results, ix.IndexElements(ctx, gctx, filepath.ToSlash(rel), elements))
		return nil
	})
	if err != nil {
		return results, err
	}
	return results, nil
}
