package goffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/wader/vid2webp/internal/goffmpeg/internal/linebuffer"
)

// FFmpegCmd is a ffmpeg command with a prebuilt argument list.
// Arguments are passed to the process as is, no shell is involved.
// With DebugLog set the command line and every stderr line are printed to it.
type FFmpegCmd struct {
	Path string   // defaults to FFmpegPath
	Args []string // arguments after the program name

	Context             context.Context
	StderrBufferNrLines int
	DebugLog            Printer

	cmd             *exec.Cmd
	stdout          bytes.Buffer
	stderrLastLines *linebuffer.LastLines
	stderrDebug     *linebuffer.Fn
}

// ExitError is returned by Wait when ffmpeg started but exited with
// non-zero status. Stderr is the last buffered stderr lines.
type ExitError struct {
	Err    *exec.ExitError
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Err, strings.TrimSpace(e.Stderr))
}

func (e *ExitError) Unwrap() error { return e.Err }

// ExitCode of the process
func (e *ExitError) ExitCode() int { return e.Err.ExitCode() }

func (fm *FFmpegCmd) path() string {
	if fm.Path != "" {
		return fm.Path
	}
	return FFmpegPath
}

// String is the command line for display only, not for a shell
func (fm *FFmpegCmd) String() string {
	return strings.Join(append([]string{fm.path()}, fm.Args...), " ")
}

// Start ffmpeg cmd
func (fm *FFmpegCmd) Start() error {
	if fm.Context != nil {
		fm.cmd = exec.CommandContext(fm.Context, fm.path(), fm.Args...)
	} else {
		fm.cmd = exec.Command(fm.path(), fm.Args...)
	}

	nrLines := fm.StderrBufferNrLines
	if nrLines == 0 {
		nrLines = 100
	}
	fm.stderrLastLines = linebuffer.NewLastLines(nrLines)
	stderrws := []io.Writer{fm.stderrLastLines}
	if fm.DebugLog != nil {
		fm.stderrDebug = linebuffer.NewFn(func(line string) {
			if l := strings.TrimRight(line, "\r\n"); l != "" {
				fm.DebugLog.Printf("%s\n", l)
			}
		})
		stderrws = append(stderrws, fm.stderrDebug)
	}
	fm.cmd.Stderr = io.MultiWriter(stderrws...)
	fm.cmd.Stdout = &fm.stdout

	if fm.DebugLog != nil {
		fm.DebugLog.Printf("%s\n", fm.String())
	}

	return fm.cmd.Start()
}

// Wait for cmd to finish. A non-zero exit is returned as *ExitError,
// context cancel as the context error.
// Note that the error message might include command details that are sensitive
func (fm *FFmpegCmd) Wait() error {
	err := fm.cmd.Wait()
	fm.stderrLastLines.Close()
	if fm.stderrDebug != nil {
		fm.stderrDebug.Close()
	}

	if err == nil {
		return nil
	}
	if fm.Context != nil && fm.Context.Err() != nil {
		return fm.Context.Err()
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Err: exitErr, Stderr: fm.stderrLastLines.String()}
	}
	return err
}

// Run starts and waits for ffmpeg to finish
// Note that the error message might include command details that are sensitive
func (fm *FFmpegCmd) Run() error {
	if err := fm.Start(); err != nil {
		return err
	}
	return fm.Wait()
}

// StderrLines returns the last non-blank stderr lines
func (fm *FFmpegCmd) StderrLines() []string {
	if fm.stderrLastLines == nil {
		return nil
	}
	return fm.stderrLastLines.Lines()
}

// Stdout returns everything ffmpeg wrote to stdout
func (fm *FFmpegCmd) Stdout() string {
	return fm.stdout.String()
}
