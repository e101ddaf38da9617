package convert

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fortytw2/leaktest"
	"github.com/wader/osleaktest"
	"github.com/wader/vid2webp/internal/logging"
)

func leakChecks(t *testing.T) func() {
	leakFn := leaktest.Check(t)
	osLeakFn := osleaktest.Check(t)
	return func() {
		leakFn()
		osLeakFn()
	}
}

type fakeChecker struct {
	err   error
	calls int
}

func (f *fakeChecker) Available(ctx context.Context) error {
	f.calls++
	return f.err
}

// fakeRunner records calls, by default it writes the file after -y
type fakeRunner struct {
	calls [][]string
	fn    func(args []string) ([]string, error)
}

func (f *fakeRunner) Run(ctx context.Context, args []string) ([]string, error) {
	f.calls = append(f.calls, args)
	if f.fn != nil {
		return f.fn(args)
	}
	return nil, os.WriteFile(outputArg(args), []byte("RIFF\x00\x00\x00\x00WEBP"), 0o644)
}

func outputArg(args []string) string {
	for i, a := range args {
		if a == "-y" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}

func newTestConverter(checker ToolChecker, runner Runner) (*Converter, *bytes.Buffer) {
	b := &bytes.Buffer{}
	return &Converter{
		Checker: checker,
		Runner:  runner,
		Log:     logging.NewLogger(logging.Options{Out: b}),
	}, b
}

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte("video data"), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

// fakeTool writes an executable shell script standing in for ffmpeg/ffprobe
func fakeTool(t *testing.T, name string, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return p
}
