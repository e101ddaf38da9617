package convert

import (
	"context"

	"github.com/pkg/errors"
	"github.com/wader/vid2webp/internal/goffmpeg"
)

// VideoInfo of the first video stream. Zero value when probing failed.
type VideoInfo struct {
	Found     bool
	Duration  float64 // seconds
	Width     int
	Height    int
	FrameRate float64
}

// Prober inspects a media file
type Prober interface {
	Probe(ctx context.Context, path string) (VideoInfo, error)
}

// FFprobeProber runs ffprobe
type FFprobeProber struct {
	Path     string // defaults to goffmpeg.FFprobePath
	DebugLog goffmpeg.Printer
}

// Probe returns the zero VideoInfo and an error wrapping ErrProbeParse on
// any failure
func (p FFprobeProber) Probe(ctx context.Context, path string) (VideoInfo, error) {
	fp := goffmpeg.FFProbeCmd{
		Path:     p.Path,
		Input:    path,
		Context:  ctx,
		DebugLog: p.DebugLog,
	}
	r, err := fp.Result()
	if err != nil {
		return VideoInfo{}, errors.Wrap(ErrProbeParse, err.Error())
	}
	return VideoInfoFromProbe(r)
}

// VideoInfoFromProbe picks the first video stream. Stream duration is used
// when present, otherwise the container duration.
func VideoInfoFromProbe(r goffmpeg.FFProbeResult) (VideoInfo, error) {
	s, ok := r.FindFirstStreamCodecType("video")
	if !ok {
		return VideoInfo{}, errors.Wrap(ErrProbeParse, "no video stream")
	}

	fps, err := goffmpeg.ParseFrameRate(s.RFrameRate)
	if err != nil {
		return VideoInfo{}, errors.Wrap(ErrProbeParse, err.Error())
	}

	duration, ok := s.DurationSeconds()
	if !ok {
		duration = r.Duration().Seconds()
	}

	return VideoInfo{
		Found:     true,
		Duration:  duration,
		Width:     int(s.Width),
		Height:    int(s.Height),
		FrameRate: fps,
	}, nil
}

// LogVideoInfo prints info the way the CLI shows it
func LogVideoInfo(log Logger, info VideoInfo) {
	log.Info("📹 Video Info:")
	log.Info("   Duration: %.2f seconds", info.Duration)
	log.Info("   Resolution: %dx%d", info.Width, info.Height)
	log.Info("   Frame rate: %.2f fps", info.FrameRate)
}
