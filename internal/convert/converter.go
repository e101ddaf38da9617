// Package convert turns videos into animated webp images by running ffmpeg.
//
// A Converter checks that ffmpeg is available, builds the ffmpeg argument
// list from Options, runs it and verifies that the output file exists.
// ConvertDir does the same for every matching file in a directory, one file
// at a time.
package convert

import (
	"context"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/wader/vid2webp/internal/display"
	"github.com/wader/vid2webp/internal/goffmpeg"
)

// Logger is the status output used by Converter
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
	Debug(string, ...interface{})
}

// Result of one conversion. Output and Size are set only on success.
type Result struct {
	Input  string
	Output string
	Size   int64
	Stderr []string // last ffmpeg stderr lines
	Err    error
}

// Succeeded reports whether the output was written
func (r Result) Succeeded() bool { return r.Err == nil }

// Converter converts video files to animated webp
type Converter struct {
	Checker ToolChecker
	Runner  Runner
	Log     Logger
	Ext     string // input extension for ConvertDir, defaults to DefaultExt
}

// New returns a Converter running ffmpeg from PATH
func New(log Logger, debugLog goffmpeg.Printer) *Converter {
	return &Converter{
		Checker: FFmpegChecker{Log: log},
		Runner:  ExecRunner{DebugLog: debugLog},
		Log:     log,
	}
}

func (c *Converter) fail(r Result, err error) Result {
	r.Output = ""
	r.Size = 0
	r.Err = err
	return r
}

// Convert converts input to output. An empty output is derived with
// OutputPath. ffmpeg is run at most once and only if it is available and
// input exists.
func (c *Converter) Convert(ctx context.Context, input, output string, opts Options) Result {
	r := Result{Input: input}

	if err := opts.Validate(); err != nil {
		c.Log.Error("%v", err)
		return c.fail(r, err)
	}

	if ctx.Err() != nil {
		c.Log.Error("Cancelled by user")
		return c.fail(r, errors.Wrap(ErrCancelled, input))
	}

	if err := c.Checker.Available(ctx); err != nil {
		c.Log.Error("FFmpeg not found!")
		c.Log.Info("%s", InstallHint)
		return c.fail(r, err)
	}

	fi, err := os.Stat(input)
	if err != nil {
		c.Log.Error("Input file not found: %s", input)
		return c.fail(r, errors.Wrap(ErrInputNotFound, input))
	}
	if fi.IsDir() {
		c.Log.Error("Input is a directory: %s", input)
		return c.fail(r, errors.Wrapf(ErrInputNotFound, "%s is a directory", input))
	}

	if output == "" {
		output = OutputPath(input)
	}
	c.Log.Info("Converting %s to %s...", input, output)

	args := BuildArgs(opts, input, output)
	c.Log.Info("Running: %s", strings.Join(append([]string{"ffmpeg"}, args...), " "))

	stderr, err := c.Runner.Run(ctx, args)
	r.Stderr = stderr
	if err != nil {
		var exitErr *goffmpeg.ExitError
		switch {
		case ctx.Err() != nil:
			c.Log.Error("Cancelled by user")
			return c.fail(r, errors.Wrap(ErrCancelled, input))
		case errors.As(err, &exitErr):
			c.Log.Error("FFmpeg error:\n%s", strings.Join(stderr, "\n"))
			return c.fail(r, errors.Wrapf(ErrNonZeroToolExit, "%s: exit status %d", input, exitErr.ExitCode()))
		default:
			c.Log.Error("Error running FFmpeg: %v", err)
			return c.fail(r, errors.Wrap(ErrLaunchFailure, err.Error()))
		}
	}

	// ffmpeg can exit 0 without writing anything
	ofi, err := os.Stat(output)
	if err != nil || ofi.IsDir() {
		c.Log.Error("Output file was not created")
		return c.fail(r, errors.Wrap(ErrOutputNotCreated, output))
	}

	r.Output = output
	r.Size = ofi.Size()
	c.Log.Success("Conversion successful!")
	c.Log.Info("📁 Output: %s", output)
	c.Log.Info("📊 Size: %s", display.FormatMB(r.Size))

	return r
}
