package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v3"
	"github.com/wader/vid2webp/internal/convert"
	"github.com/wader/vid2webp/internal/display"
	"github.com/wader/vid2webp/internal/logging"
)

var version = "dev"

const banner = "🎬 Simple MKV to WebP Converter"

var usageExamples = []string{
	"vid2webp video.mkv",
	"vid2webp video.mkv -f 15 -w 800 -q 90",
	"vid2webp --info video.mkv",
	"vid2webp --batch ./videos",
}

func init() {
	// -v is --verbose
	cli.VersionFlag = &cli.BoolFlag{Name: "version", Usage: "Print version"}
}

// app is one invocation. Nil dependencies use ffmpeg and ffprobe from PATH.
type app struct {
	stdout  io.Writer
	checker convert.ToolChecker
	runner  convert.Runner
	prober  convert.Prober

	exitCode int
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:      "vid2webp",
		Usage:     "Convert videos to animated WebP using FFmpeg",
		ArgsUsage: "<input file or directory>",
		Version:   version,
		Writer:    a.stdout,
		ErrWriter: a.stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "Output WebP file, or directory in batch mode"},
			&cli.StringFlag{Name: "start", Aliases: []string{"s"}, Usage: "Start time, seconds or [[hh:]mm:]ss"},
			&cli.StringFlag{Name: "duration", Aliases: []string{"d"}, Usage: "Duration, seconds or [[hh:]mm:]ss"},
			&cli.IntFlag{Name: "fps", Aliases: []string{"f"}, Value: 12, Usage: "Frame rate"},
			&cli.IntFlag{Name: "width", Aliases: []string{"w"}, Usage: "Width in pixels"},
			&cli.IntFlag{Name: "height", Aliases: []string{"H"}, Usage: "Height in pixels"},
			&cli.IntFlag{Name: "quality", Aliases: []string{"q"}, Value: 80, Usage: "Quality 0-100"},
			&cli.BoolFlag{Name: "lossless", Usage: "Use lossless compression"},
			&cli.BoolFlag{Name: "no-loop", Usage: "Disable looping"},
			&cli.BoolFlag{Name: "batch", Usage: "Batch process directory"},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "Verbose output"},
			&cli.BoolFlag{Name: "info", Usage: "Show video info only"},
			&cli.BoolFlag{Name: "no-color", Usage: "Disable colored output"},
		},
		Action: a.action,
		OnUsageError: func(ctx context.Context, c *cli.Command, err error, isSubcommand bool) error {
			fmt.Fprintf(a.stdout, "❌ %v\n", err)
			return err
		},
		// errors are mapped to exit codes by run, never exit from inside cli
		ExitErrHandler: func(ctx context.Context, c *cli.Command, err error) {},
	}
}

func optionsFromFlags(c *cli.Command) (convert.Options, error) {
	opts := convert.DefaultOptions()

	start, err := parseSeconds(c.String("start"))
	if err != nil {
		return opts, errors.Wrap(convert.ErrInvalidOptions, err.Error())
	}
	duration, err := parseSeconds(c.String("duration"))
	if err != nil {
		return opts, errors.Wrap(convert.ErrInvalidOptions, err.Error())
	}
	if c.IsSet("duration") && duration == 0 {
		return opts, errors.Wrap(convert.ErrInvalidOptions, "duration must be positive")
	}

	opts.StartTime = start
	opts.Duration = duration
	opts.FrameRate = int(c.Int("fps"))
	opts.Width = int(c.Int("width"))
	opts.Height = int(c.Int("height"))
	opts.Quality = int(c.Int("quality"))
	opts.Lossless = c.Bool("lossless")
	opts.Loop = !c.Bool("no-loop")
	opts.Verbose = c.Bool("verbose")

	if c.IsSet("width") && opts.Width == 0 {
		return opts, errors.Wrap(convert.ErrInvalidOptions, "width must be positive")
	}
	if c.IsSet("height") && opts.Height == 0 {
		return opts, errors.Wrap(convert.ErrInvalidOptions, "height must be positive")
	}

	return opts, opts.Validate()
}

func (a *app) action(ctx context.Context, c *cli.Command) error {
	fmt.Fprintln(a.stdout, banner)
	fmt.Fprintln(a.stdout, strings.Repeat("=", 40))

	if c.NArg() == 0 {
		fmt.Fprintln(a.stdout, "Usage examples:")
		for _, e := range usageExamples {
			fmt.Fprintf(a.stdout, "  %s\n", e)
		}
		fmt.Fprintln(a.stdout, "\nRun with --help for all options")
		a.exitCode = convert.ExitUsage
		return nil
	}

	log := logging.NewLogger(logging.Options{
		Out:     a.stdout,
		NoColor: c.Bool("no-color"),
		Verbose: c.Bool("verbose"),
	})

	if c.NArg() > 1 {
		log.Error("Expected one input, got %d: %s", c.NArg(), strings.Join(c.Args().Slice(), " "))
		a.exitCode = convert.ExitInvalidOptions
		return nil
	}
	input := c.Args().First()
	output := c.String("output")

	conv := convert.New(log, log)
	if a.checker != nil {
		conv.Checker = a.checker
	}
	if a.runner != nil {
		conv.Runner = a.runner
	}
	var prober convert.Prober = convert.FFprobeProber{DebugLog: log}
	if a.prober != nil {
		prober = a.prober
	}

	if c.Bool("info") {
		if fi, err := os.Stat(input); err != nil || !fi.Mode().IsRegular() {
			log.Error("Please provide a video file for --info")
			a.exitCode = convert.ExitInvalidOptions
			return nil
		}
		a.showInfo(ctx, log, prober, input)
		return nil
	}

	opts, err := optionsFromFlags(c)
	if err != nil {
		log.Error("%v", err)
		a.exitCode = convert.ExitCode(err)
		return nil
	}

	if c.Bool("batch") || isDir(input) {
		br, err := conv.ConvertDir(ctx, input, output, opts)
		switch {
		case err != nil:
			a.exitCode = convert.ExitCode(err)
		case br.Succeeded() == 0:
			a.exitCode = convert.ExitCode(br.Err())
		case br.Succeeded() < br.Total():
			a.exitCode = convert.ExitPartialBatch
		}
		return nil
	}

	log.Info("📹 Analyzing input video...")
	a.showInfo(ctx, log, prober, input)
	log.Info("")
	if ctx.Err() != nil {
		log.Error("Cancelled by user")
		a.exitCode = convert.ExitCancelled
		return nil
	}

	r := conv.Convert(ctx, input, output, opts)
	if r.Err != nil {
		a.exitCode = convert.ExitCode(r.Err)
		return nil
	}

	if fi, err := os.Stat(input); err == nil {
		log.Info("")
		log.Info("📊 Compression:")
		log.Info("   Original: %s", display.FormatMB(fi.Size()))
		log.Info("   WebP: %s", display.FormatMB(r.Size))
		log.Info("   Saved: %s", display.FormatSaved(fi.Size(), r.Size))
	}

	return nil
}

// showInfo probes input and prints what it found. Probe failures are only
// reported, they never fail the invocation.
func (a *app) showInfo(ctx context.Context, log *logging.Logger, prober convert.Prober, input string) {
	info, err := prober.Probe(ctx, input)
	if err != nil {
		log.Warn("%v", err)
		return
	}
	convert.LogVideoInfo(log, info)
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}

// run parses args (args[0] is the program name) and returns the process exit code
func run(ctx context.Context, args []string, a *app) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(a.stdout, "❌ Error: %v\n", r)
			exitCode = convert.ExitUsage
		}
	}()

	if err := a.command().Run(ctx, args); err != nil {
		if a.exitCode != convert.ExitOK {
			return a.exitCode
		}
		return convert.ExitInvalidOptions
	}

	return a.exitCode
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	exitCode := run(ctx, os.Args, &app{stdout: os.Stdout})
	stop()
	os.Exit(exitCode)
}
