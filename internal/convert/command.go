package convert

import (
	"fmt"
	"strconv"
)

// ScaleFilter returns the scale filter for the requested size, keeping the
// aspect ratio when only one side is given. Empty when neither is set.
func ScaleFilter(width, height int) string {
	switch {
	case width > 0 && height > 0:
		return fmt.Sprintf("scale=%d:%d", width, height)
	case width > 0:
		return fmt.Sprintf("scale=%d:-1", width)
	case height > 0:
		return fmt.Sprintf("scale=-1:%d", height)
	}
	return ""
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}

// BuildArgs builds the ffmpeg arguments (without program name) converting
// input to an animated webp at output. The order is fixed:
//
//	-i input [-ss start] [-t duration] -r fps [-vf scale] (-lossless 1 | -quality q)
//	[-loop 0] -y output [-loglevel error]
func BuildArgs(opts Options, input, output string) []string {
	args := []string{"-i", input}

	if opts.StartTime > 0 {
		args = append(args, "-ss", formatSeconds(opts.StartTime))
	}
	if opts.Duration > 0 {
		args = append(args, "-t", formatSeconds(opts.Duration))
	}

	filter := ScaleFilter(opts.Width, opts.Height)

	args = append(args, "-r", strconv.Itoa(opts.FrameRate))
	if filter != "" {
		args = append(args, "-vf", filter)
	}

	if opts.Lossless {
		args = append(args, "-lossless", "1")
	} else {
		args = append(args, "-quality", strconv.Itoa(opts.Quality))
	}

	// 0 is infinite loop for animated webp
	if opts.Loop {
		args = append(args, "-loop", "0")
	}

	// existing output is always replaced
	args = append(args, "-y", output)

	if !opts.Verbose {
		args = append(args, "-loglevel", "error")
	}

	return args
}
