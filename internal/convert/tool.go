package convert

import (
	"context"

	"github.com/pkg/errors"
	"github.com/wader/vid2webp/internal/goffmpeg"
)

// InstallHint is shown when ffmpeg is missing
const InstallHint = `FFmpeg not found. To install:
• Ubuntu/Debian: apt install ffmpeg
• CentOS/RHEL: yum install ffmpeg
• macOS: brew install ffmpeg
• Or download from: https://ffmpeg.org/download.html`

// ToolChecker reports whether ffmpeg can be run
type ToolChecker interface {
	Available(ctx context.Context) error
}

// FFmpegChecker runs "ffmpeg -version"
type FFmpegChecker struct {
	Path string // defaults to goffmpeg.FFmpegPath
	Log  Logger
}

// Available returns an error wrapping ErrToolMissing if ffmpeg could not be
// started or exited with non-zero status
func (c FFmpegChecker) Available(ctx context.Context) error {
	v, err := goffmpeg.Version(ctx, c.Path)
	if err != nil {
		return errors.Wrap(ErrToolMissing, err.Error())
	}
	if c.Log != nil {
		c.Log.Debug("ffmpeg %s", v.Release)
	}
	return nil
}
