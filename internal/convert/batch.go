package convert

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// BatchResult of ConvertDir, one Result per matched file in name order
type BatchResult struct {
	Results []Result
}

// Total number of files attempted
func (b BatchResult) Total() int { return len(b.Results) }

// Succeeded number of successful conversions
func (b BatchResult) Succeeded() int {
	n := 0
	for _, r := range b.Results {
		if r.Succeeded() {
			n++
		}
	}
	return n
}

// Err is the first failure or nil if all succeeded
func (b BatchResult) Err() error {
	for _, r := range b.Results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

// MatchFiles returns names of regular files directly in dir whose name ends
// with ext, compared case-insensitively. Symlinks count if they point to a
// regular file. Sorted by name.
func MatchFiles(dir, ext string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	ext = strings.ToLower(ext)
	var names []string
	for _, e := range entries {
		if !strings.HasSuffix(strings.ToLower(e.Name()), ext) {
			continue
		}
		mode := e.Type()
		if mode&os.ModeSymlink != 0 {
			fi, err := os.Stat(filepath.Join(dir, e.Name()))
			if err != nil {
				continue
			}
			mode = fi.Mode()
		}
		if !mode.IsRegular() {
			continue
		}
		names = append(names, e.Name())
	}
	return names, nil
}

func (c *Converter) ext() string {
	if c.Ext != "" {
		return c.Ext
	}
	return DefaultExt
}

// ConvertDir converts every matching file in dir into outDir (dir if empty),
// one at a time. A failed file does not stop the batch, cancelling ctx does.
// The returned error is only about the batch itself, per file failures are
// in BatchResult.
func (c *Converter) ConvertDir(ctx context.Context, dir, outDir string, opts Options) (BatchResult, error) {
	var br BatchResult

	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		c.Log.Error("Directory not found: %s", dir)
		return br, errors.Wrap(ErrDirectoryNotFound, dir)
	}
	if outDir == "" {
		outDir = dir
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		c.Log.Error("Cannot create output directory: %s", outDir)
		return br, errors.Wrap(err, "create output directory")
	}

	label := strings.ToUpper(strings.TrimPrefix(c.ext(), "."))
	names, err := MatchFiles(dir, c.ext())
	if err != nil {
		c.Log.Error("Cannot read directory: %s", dir)
		return br, errors.Wrap(ErrDirectoryNotFound, err.Error())
	}
	if len(names) == 0 {
		c.Log.Info("No %s files found", label)
		return br, errors.Wrapf(ErrNoMatchingFiles, "no %s files in %s", label, dir)
	}

	c.Log.Info("Found %d %s files", len(names), label)

	for _, name := range names {
		if ctx.Err() != nil {
			return br, errors.Wrap(ErrCancelled, "batch interrupted")
		}

		input := filepath.Join(dir, name)
		output := filepath.Join(outDir, filepath.Base(OutputPath(name)))

		c.Log.Info("")
		c.Log.Info("--- Converting %s ---", name)
		r := c.Convert(ctx, input, output, opts)
		br.Results = append(br.Results, r)

		if errors.Is(r.Err, ErrCancelled) {
			return br, r.Err
		}
	}

	c.Log.Info("")
	if br.Succeeded() == br.Total() {
		c.Log.Success("🎉 Converted %d/%d files", br.Succeeded(), br.Total())
	} else {
		c.Log.Warn("Converted %d/%d files", br.Succeeded(), br.Total())
	}

	return br, nil
}
