// Package linebuffer splits written bytes into lines
package linebuffer

import (
	"bytes"
	"strings"
)

// Fn calls function for each complete line written
type Fn struct {
	buf bytes.Buffer
	fn  func(line string)
}

// NewFn create new buffer that calls fn for each line written
func NewFn(fn func(line string)) *Fn {
	return &Fn{fn: fn}
}

func (f *Fn) Write(p []byte) (n int, err error) {
	f.buf.Write(p)
	b := f.buf.Bytes()
	pos := 0

	for {
		i := bytes.IndexAny(b[pos:], "\n\r")
		if i < 0 {
			break
		}
		f.fn(string(b[pos : pos+i+1]))
		pos += i + 1
	}
	rest := append([]byte(nil), b[pos:]...)
	f.buf.Reset()
	f.buf.Write(rest)

	return len(p), nil
}

// Close flushes any data left in the buffer as a line
func (f *Fn) Close() error {
	if f.buf.Len() > 0 {
		f.fn(f.buf.String())
	}
	f.buf.Reset()
	return nil
}

// LastLines keeps the last n lines written to it, ffmpeg progress
// lines ending with \r count as lines too
type LastLines struct {
	Fn
	next  int
	count int
	lines []string
}

// NewLastLines creates a buffer that keeps the last limit lines
func NewLastLines(limit int) *LastLines {
	if limit < 1 {
		limit = 1
	}
	ll := &LastLines{lines: make([]string, limit)}
	ll.fn = ll.addLine
	return ll
}

func (ll *LastLines) addLine(line string) {
	ll.lines[ll.next] = line
	ll.next = (ll.next + 1) % len(ll.lines)
	if ll.count < len(ll.lines) {
		ll.count++
	}
}

// Lines returns the kept lines, oldest first, without line endings.
// Blank lines are skipped.
func (ll *LastLines) Lines() []string {
	var ls []string
	start := (ll.next - ll.count + len(ll.lines)) % len(ll.lines)
	for i := 0; i < ll.count; i++ {
		l := strings.TrimRight(ll.lines[(start+i)%len(ll.lines)], "\r\n")
		if l == "" {
			continue
		}
		ls = append(ls, l)
	}
	return ls
}

// String returns the kept lines as written
func (ll *LastLines) String() string {
	var sb strings.Builder
	start := (ll.next - ll.count + len(ll.lines)) % len(ll.lines)
	for i := 0; i < ll.count; i++ {
		sb.WriteString(ll.lines[(start+i)%len(ll.lines)])
	}
	return sb.String()
}
