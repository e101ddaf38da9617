// Package goffmpeg runs ffmpeg and ffprobe as subprocesses
package goffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
)

// FFmpegPath to ffmpeg binary. Will be used as name to exec.Command.
var FFmpegPath = "ffmpeg"

// FFprobePath to ffprobe binary. Will be used as name to exec.Command.
var FFprobePath = "ffprobe"

// Printer is something that printfs (used for debug logging)
type Printer interface {
	Printf(format string, v ...interface{})
}

// VersionParts ffmpeg version
type VersionParts struct {
	Full    string
	Release string
	Major   uint
	Minor   uint
	Patch   uint
}

var versionLineRe = regexp.MustCompile(`` +
	`^ffmpeg version ` +
	`(?P<release>` +
	`(?:\w*?(?P<major>\d+))` +
	`(?:\.(?P<minor>\d+))` +
	`(?:\.(?P<patch>\d+))?` +
	`)` +
	`.*$` +
	``)

func reMatchNamedGroups(re *regexp.Regexp, s string) map[string]string {
	match := re.FindStringSubmatch(s)
	if match == nil {
		return nil
	}

	result := map[string]string{}
	for i, name := range re.SubexpNames() {
		if i != 0 {
			result[name] = match[i]
		}
	}

	return result
}

// ParseVersion parses "ffmpeg -version" output. Git builds like
// "ffmpeg version N-112345-gabcdef" have no numeric parts, release is
// then the raw version token.
func ParseVersion(full string) VersionParts {
	firstLine := strings.SplitN(full, "\n", 2)[0]
	v := VersionParts{Full: full}

	m := reMatchNamedGroups(versionLineRe, firstLine)
	if m == nil {
		if fields := strings.Fields(firstLine); len(fields) > 2 {
			v.Release = fields[2]
		}
		return v
	}

	major, _ := strconv.Atoi(m["major"])
	minor, _ := strconv.Atoi(m["minor"])
	patch, _ := strconv.Atoi(m["patch"])
	v.Release = m["release"]
	v.Major = uint(major)
	v.Minor = uint(minor)
	v.Patch = uint(patch)

	return v
}

// Version runs "ffmpeg -version". An error means the binary could not be
// started or exited with non-zero status.
func Version(ctx context.Context, ffmpegPath string) (VersionParts, error) {
	if ffmpegPath == "" {
		ffmpegPath = FFmpegPath
	}
	out, err := exec.CommandContext(ctx, ffmpegPath, "-version").Output()
	if err != nil {
		return VersionParts{}, err
	}
	if len(strings.TrimSpace(string(out))) == 0 {
		return VersionParts{}, fmt.Errorf("%s: empty version output", ffmpegPath)
	}

	return ParseVersion(string(out)), nil
}
