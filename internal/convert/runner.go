package convert

import (
	"context"

	"github.com/wader/vid2webp/internal/goffmpeg"
)

// Runner runs ffmpeg with args and returns its captured stderr
type Runner interface {
	Run(ctx context.Context, args []string) (stderr []string, err error)
}

// ExecRunner runs ffmpeg as a subprocess. Args are passed as a list,
// never through a shell. The process is killed if ctx is cancelled.
type ExecRunner struct {
	Path     string           // defaults to goffmpeg.FFmpegPath
	DebugLog goffmpeg.Printer // gets the command line and live stderr
}

// Run returns *goffmpeg.ExitError on non-zero exit, ctx.Err() on cancel
// and any other error if the process could not be started
func (r ExecRunner) Run(ctx context.Context, args []string) ([]string, error) {
	c := &goffmpeg.FFmpegCmd{
		Path:     r.Path,
		Args:     args,
		Context:  ctx,
		DebugLog: r.DebugLog,
	}
	err := c.Run()
	return c.StderrLines(), err
}
