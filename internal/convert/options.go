package convert

import (
	"math"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// OutputSuffix is appended to the input base name when no output is given
const OutputSuffix = "_algorithm_viz.webp"

// DefaultExt is the input extension matched in batch mode
const DefaultExt = ".mkv"

// Options for one conversion. Zero Duration, Width and Height mean unset.
type Options struct {
	StartTime float64 // seconds, >= 0
	Duration  float64 // seconds, > 0 when set
	FrameRate int
	Width     int
	Height    int
	Quality   int // 0-100, ignored when Lossless
	Lossless  bool
	Loop      bool
	Verbose   bool
}

// DefaultOptions 12 fps, quality 80, infinite loop
func DefaultOptions() Options {
	return Options{
		FrameRate: 12,
		Quality:   80,
		Loop:      true,
	}
}

// Validate checks ranges
func (o Options) Validate() error {
	switch {
	case !finite(o.StartTime):
		return errors.Wrapf(ErrInvalidOptions, "start time must be a number of seconds (got %v)", o.StartTime)
	case !finite(o.Duration):
		return errors.Wrapf(ErrInvalidOptions, "duration must be a number of seconds (got %v)", o.Duration)
	case o.StartTime < 0:
		return errors.Wrapf(ErrInvalidOptions, "start time must not be negative (got %v)", o.StartTime)
	case o.Duration < 0:
		return errors.Wrapf(ErrInvalidOptions, "duration must be positive (got %v)", o.Duration)
	case o.FrameRate <= 0:
		return errors.Wrapf(ErrInvalidOptions, "fps must be positive (got %d)", o.FrameRate)
	case o.Width < 0:
		return errors.Wrapf(ErrInvalidOptions, "width must be positive (got %d)", o.Width)
	case o.Height < 0:
		return errors.Wrapf(ErrInvalidOptions, "height must be positive (got %d)", o.Height)
	case o.Quality < 0 || o.Quality > 100:
		return errors.Wrapf(ErrInvalidOptions, "quality must be 0-100 (got %d)", o.Quality)
	}
	return nil
}

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }

// OutputPath derives the output path for input: extension stripped,
// OutputSuffix appended. "dir/clip.mkv" -> "dir/clip_algorithm_viz.webp"
func OutputPath(input string) string {
	ext := filepath.Ext(input)
	// a leading dot is part of the name, ".clip" has no extension
	if ext == filepath.Base(input) {
		ext = ""
	}
	return strings.TrimSuffix(input, ext) + OutputSuffix
}
