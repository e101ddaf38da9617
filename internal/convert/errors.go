package convert

import "github.com/pkg/errors"

// Failure kinds. Returned errors wrap one of these, test with errors.Is.
var (
	ErrInvalidOptions    = errors.New("invalid options")
	ErrToolMissing       = errors.New("ffmpeg not found")
	ErrInputNotFound     = errors.New("input file not found")
	ErrDirectoryNotFound = errors.New("directory not found")
	ErrNoMatchingFiles   = errors.New("no matching files found")
	ErrOutputNotCreated  = errors.New("output file was not created")
	ErrNonZeroToolExit   = errors.New("ffmpeg exited with error")
	ErrLaunchFailure     = errors.New("could not run ffmpeg")
	ErrProbeParse        = errors.New("could not get video info")
	ErrCancelled         = errors.New("cancelled by user")
)

// Process exit codes, one per failure kind
const (
	ExitOK             = 0
	ExitUsage          = 1
	ExitInvalidOptions = 2
	ExitToolMissing    = 3
	ExitInputNotFound  = 4
	ExitDirNotFound    = 5
	ExitNoMatchingFile = 6
	ExitOutputMissing  = 7
	ExitToolFailed     = 8
	ExitLaunchFailure  = 9
	ExitPartialBatch   = 10
	ExitCancelled      = 130
)

var exitCodes = []struct {
	kind error
	code int
}{
	{ErrCancelled, ExitCancelled},
	{ErrInvalidOptions, ExitInvalidOptions},
	{ErrToolMissing, ExitToolMissing},
	{ErrInputNotFound, ExitInputNotFound},
	{ErrDirectoryNotFound, ExitDirNotFound},
	{ErrNoMatchingFiles, ExitNoMatchingFile},
	{ErrOutputNotCreated, ExitOutputMissing},
	{ErrNonZeroToolExit, ExitToolFailed},
	{ErrLaunchFailure, ExitLaunchFailure},
}

// ExitCode maps an error to a process exit code. Unknown errors are 1.
// ErrProbeParse is informational only and maps to 0.
func ExitCode(err error) int {
	if err == nil || errors.Is(err, ErrProbeParse) {
		return ExitOK
	}
	for _, ec := range exitCodes {
		if errors.Is(err, ec.kind) {
			return ec.code
		}
	}
	return ExitUsage
}
