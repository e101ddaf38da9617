package convert

import (
	"reflect"
	"strconv"
	"testing"
)

func indexOf(args []string, flag string) int {
	for i, a := range args {
		if a == flag {
			return i
		}
	}
	return -1
}

func TestScaleFilter(t *testing.T) {
	testCases := []struct {
		width, height int
		expected      string
	}{
		{width: 800, height: 600, expected: "scale=800:600"},
		{width: 800, expected: "scale=800:-1"},
		{height: 480, expected: "scale=-1:480"},
		{expected: ""},
	}
	for i, tC := range testCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			opts := DefaultOptions()
			opts.Width, opts.Height = tC.width, tC.height

			if actual := ScaleFilter(tC.width, tC.height); actual != tC.expected {
				t.Errorf("expected %q, got %q", tC.expected, actual)
			}

			args := BuildArgs(opts, "in.mkv", "out.webp")
			vf := indexOf(args, "-vf")
			if tC.expected == "" {
				if vf >= 0 {
					t.Errorf("expected no -vf, got %q", args)
				}
				return
			}
			if vf < 0 || args[vf+1] != tC.expected {
				t.Errorf("expected -vf %q, got %q", tC.expected, args)
			}
		})
	}
}

func TestBuildArgsOrder(t *testing.T) {
	opts := Options{
		StartTime: 1.5,
		Duration:  3,
		FrameRate: 15,
		Width:     800,
		Quality:   90,
		Loop:      true,
	}
	expected := []string{
		"-i", "clip.mkv",
		"-ss", "1.5",
		"-t", "3",
		"-r", "15",
		"-vf", "scale=800:-1",
		"-quality", "90",
		"-loop", "0",
		"-y", "clip_algorithm_viz.webp",
		"-loglevel", "error",
	}
	actual := BuildArgs(opts, "clip.mkv", "clip_algorithm_viz.webp")
	if !reflect.DeepEqual(expected, actual) {
		t.Errorf("expected %q, got %q", expected, actual)
	}
}

func TestBuildArgsMinimal(t *testing.T) {
	opts := DefaultOptions()
	opts.Loop = false
	opts.Verbose = true
	expected := []string{"-i", "a b.mkv", "-r", "12", "-quality", "80", "-y", "o.webp"}
	actual := BuildArgs(opts, "a b.mkv", "o.webp")
	if !reflect.DeepEqual(expected, actual) {
		t.Errorf("expected %q, got %q", expected, actual)
	}
}

func TestBuildArgsQualityLosslessExclusive(t *testing.T) {
	for _, lossless := range []bool{false, true} {
		opts := DefaultOptions()
		opts.Lossless = lossless
		args := BuildArgs(opts, "in.mkv", "out.webp")
		q, l := indexOf(args, "-quality"), indexOf(args, "-lossless")
		if lossless {
			if q >= 0 || l < 0 || args[l+1] != "1" {
				t.Errorf("lossless: unexpected args %q", args)
			}
		} else {
			if l >= 0 || q < 0 || args[q+1] != "80" {
				t.Errorf("lossy: unexpected args %q", args)
			}
		}
	}
}

func TestBuildArgsLoop(t *testing.T) {
	for _, loop := range []bool{false, true} {
		opts := DefaultOptions()
		opts.Loop = loop
		args := BuildArgs(opts, "in.mkv", "out.webp")
		i := indexOf(args, "-loop")
		if loop != (i >= 0) {
			t.Errorf("loop=%v: unexpected args %q", loop, args)
		}
		if i >= 0 && args[i+1] != "0" {
			t.Errorf("expected -loop 0, got %q", args[i+1])
		}
	}
}

func TestBuildArgsOverwriteAndLogLevel(t *testing.T) {
	for _, verbose := range []bool{false, true} {
		opts := DefaultOptions()
		opts.Verbose = verbose
		args := BuildArgs(opts, "in.mkv", "out.webp")
		y := indexOf(args, "-y")
		if y < 0 || args[y+1] != "out.webp" {
			t.Errorf("expected -y out.webp, got %q", args)
		}
		if ll := indexOf(args, "-loglevel"); verbose == (ll >= 0) {
			t.Errorf("verbose=%v: unexpected args %q", verbose, args)
		}
	}
}

func TestBuildArgsStartZeroOmitted(t *testing.T) {
	args := BuildArgs(DefaultOptions(), "in.mkv", "out.webp")
	if indexOf(args, "-ss") >= 0 || indexOf(args, "-t") >= 0 {
		t.Errorf("expected no -ss/-t, got %q", args)
	}
}
