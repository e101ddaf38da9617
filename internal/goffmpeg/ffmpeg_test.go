package goffmpeg_test

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/wader/vid2webp/internal/goffmpeg"
)

func TestFFmpegCmdArgsPassedVerbatim(t *testing.T) {
	t.Cleanup(leakChecks(t))

	ff := fakeTool(t, "ffmpeg", `printf '%s\n' "$@"`)
	args := []string{"-i", "my clip; rm -rf $HOME.mkv", "-y", "out 'x'.webp"}
	c := &goffmpeg.FFmpegCmd{Path: ff, Args: args, Context: context.Background()}
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}

	actual := strings.Split(strings.TrimSuffix(c.Stdout(), "\n"), "\n")
	if !reflect.DeepEqual(args, actual) {
		t.Errorf("expected %q, got %q", args, actual)
	}
}

func TestFFmpegCmdExitError(t *testing.T) {
	t.Cleanup(leakChecks(t))

	ff := fakeTool(t, "ffmpeg", `echo "line1" >&2; echo "Invalid data found" >&2; exit 3`)
	c := &goffmpeg.FFmpegCmd{Path: ff, StderrBufferNrLines: 1}
	err := c.Run()

	var exitErr *goffmpeg.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %#v", err)
	}
	if exitErr.ExitCode() != 3 {
		t.Errorf("expected exit code 3, got %d", exitErr.ExitCode())
	}
	if !strings.Contains(err.Error(), "Invalid data found") {
		t.Errorf("expected stderr in error, got %q", err.Error())
	}
	expectedLines := []string{"Invalid data found"}
	if !reflect.DeepEqual(expectedLines, c.StderrLines()) {
		t.Errorf("expected %q, got %q", expectedLines, c.StderrLines())
	}
}

func TestFFmpegCmdStartError(t *testing.T) {
	c := &goffmpeg.FFmpegCmd{Path: "/nonexistent/ffmpeg"}
	err := c.Run()
	if err == nil {
		t.Fatal("expected start error")
	}
	var exitErr *goffmpeg.ExitError
	if errors.As(err, &exitErr) {
		t.Errorf("start error should not be an ExitError: %v", err)
	}
}

func TestFFmpegCmdContextCancel(t *testing.T) {
	t.Cleanup(leakChecks(t))

	ff := fakeTool(t, "ffmpeg", "exec sleep 10")
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	c := &goffmpeg.FFmpegCmd{Path: ff, Context: ctx}
	err := c.Run()
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
}

type recordPrinter struct{ lines []string }

func (r *recordPrinter) Printf(format string, v ...interface{}) {
	r.lines = append(r.lines, fmt.Sprintf(format, v...))
}

func TestFFmpegCmdDebugLog(t *testing.T) {
	ff := fakeTool(t, "ffmpeg", "exit 0")
	p := &recordPrinter{}
	c := &goffmpeg.FFmpegCmd{Path: ff, Args: []string{"-version"}, DebugLog: p}
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	expected := []string{ff + " -version\n"}
	if !reflect.DeepEqual(expected, p.lines) {
		t.Errorf("expected %q, got %q", expected, p.lines)
	}
	if c.String() != ff+" -version" {
		t.Errorf("unexpected command string %q", c.String())
	}
}

func TestFFmpegCmdDebugLogStderr(t *testing.T) {
	t.Cleanup(leakChecks(t))

	ff := fakeTool(t, "ffmpeg", `printf 'frame=1\rframe=2\r\nerror line\n\nlast' >&2`)
	p := &recordPrinter{}
	c := &goffmpeg.FFmpegCmd{Path: ff, DebugLog: p}
	if err := c.Run(); err != nil {
		t.Fatal(err)
	}
	expected := []string{ff + "\n", "frame=1\n", "frame=2\n", "error line\n", "last\n"}
	if !reflect.DeepEqual(expected, p.lines) {
		t.Errorf("expected %q, got %q", expected, p.lines)
	}
}
