package goffmpeg

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/wader/vid2webp/internal/goffmpeg/internal/linebuffer"
)

// FFProbeResult ffprobe result
type FFProbeResult struct {
	Format  FFProbeFormat   `json:"format"`
	Streams []FFProbeStream `json:"streams"`
}

// FFProbeStream ffprobe stream result
type FFProbeStream struct {
	Index         uint              `json:"index"`
	CodecName     string            `json:"codec_name"`
	CodecLongName string            `json:"codec_long_name"`
	CodecType     string            `json:"codec_type"`
	RFrameRate    string            `json:"r_frame_rate"`
	AvgFrameRate  string            `json:"avg_frame_rate"`
	TimeBase      string            `json:"time_base"`
	StartTime     string            `json:"start_time"`
	Duration      string            `json:"duration"`
	BitRate       string            `json:"bit_rate"`
	NbFrames      string            `json:"nb_frames"`
	Width         uint              `json:"width"`
	Height        uint              `json:"height"`
	PixFmt        string            `json:"pix_fmt"`
	Tags          map[string]string `json:"tags"`
}

// FFProbeFormat ffprobe format result
type FFProbeFormat struct {
	Filename       string            `json:"filename"`
	NbStreams      uint              `json:"nb_streams"`
	FormatName     string            `json:"format_name"`
	FormatLongName string            `json:"format_long_name"`
	StartTime      string            `json:"start_time"`
	Duration       string            `json:"duration"`
	Size           string            `json:"size"`
	BitRate        string            `json:"bit_rate"`
	Tags           map[string]string `json:"tags"`
}

// ParseProbeJSON decodes "ffprobe -print_format json" output
func ParseProbeJSON(data []byte) (FFProbeResult, error) {
	var r FFProbeResult
	if err := json.Unmarshal(data, &r); err != nil {
		return FFProbeResult{}, fmt.Errorf("parse ffprobe json: %w", err)
	}
	return r, nil
}

// FindFirstStreamCodecType find first stream with codec type
func (fpr FFProbeResult) FindFirstStreamCodecType(codecType string) (FFProbeStream, bool) {
	for _, s := range fpr.Streams {
		if s.CodecType == codecType {
			return s, true
		}
	}
	return FFProbeStream{}, false
}

// FormatName probed format (first value if comma separated)
func (fpr FFProbeResult) FormatName() string {
	return strings.Split(fpr.Format.FormatName, ",")[0]
}

// Duration probed format duration
func (fpr FFProbeResult) Duration() time.Duration {
	v, _ := strconv.ParseFloat(fpr.Format.Duration, 64)
	return time.Duration(v * float64(time.Second))
}

// DurationSeconds stream duration, false if missing or not a number
func (fps FFProbeStream) DurationSeconds() (float64, bool) {
	if fps.Duration == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(fps.Duration, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseFrameRate evaluates a ffprobe rational like "30000/1001" by integer
// division. Plain integers are accepted as "n/1". Anything else is an error,
// the value is never evaluated as an expression.
func ParseFrameRate(s string) (float64, error) {
	numStr, denStr := strings.TrimSpace(s), "1"
	if i := strings.IndexByte(numStr, '/'); i >= 0 {
		numStr, denStr = numStr[:i], numStr[i+1:]
	}
	num, err := strconv.ParseInt(numStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid frame rate numerator %q", s)
	}
	den, err := strconv.ParseInt(denStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid frame rate denominator %q", s)
	}
	if den == 0 {
		return 0, fmt.Errorf("invalid frame rate %q: zero denominator", s)
	}
	return float64(num) / float64(den), nil
}

// FFProbeCmd is a ffprobe command
type FFProbeCmd struct {
	Path  string // defaults to FFprobePath
	Input string

	ProbeResult FFProbeResult

	Context             context.Context
	StderrBufferNrLines int
	DebugLog            Printer

	stderrLastLines *linebuffer.LastLines
}

// Args for ffprobe, quiet json output with format and streams
func (fp *FFProbeCmd) Args() []string {
	return []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		fp.Input,
	}
}

// Run ffprobe and decode result into ProbeResult
// Note that the error message might include command details that are sensitive
func (fp *FFProbeCmd) Run() error {
	path := fp.Path
	if path == "" {
		path = FFprobePath
	}
	var cmd *exec.Cmd
	if fp.Context != nil {
		cmd = exec.CommandContext(fp.Context, path, fp.Args()...)
	} else {
		cmd = exec.Command(path, fp.Args()...)
	}

	nrLines := fp.StderrBufferNrLines
	if nrLines == 0 {
		nrLines = 100
	}
	fp.stderrLastLines = linebuffer.NewLastLines(nrLines)
	stdout := &bytes.Buffer{}
	cmd.Stdout = stdout
	cmd.Stderr = fp.stderrLastLines

	if fp.DebugLog != nil {
		fp.DebugLog.Printf("%s %s\n", path, strings.Join(fp.Args(), " "))
	}

	err := cmd.Run()
	fp.stderrLastLines.Close()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Err: exitErr, Stderr: fp.stderrLastLines.String()}
		}
		return err
	}

	r, err := ParseProbeJSON(stdout.Bytes())
	if err != nil {
		return err
	}
	fp.ProbeResult = r

	return nil
}

// Result runs ffprobe and returns the result
// Note that the error message might include command details that are sensitive
func (fp *FFProbeCmd) Result() (FFProbeResult, error) {
	if err := fp.Run(); err != nil {
		return FFProbeResult{}, err
	}
	return fp.ProbeResult, nil
}
