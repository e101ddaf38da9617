package linebuffer_test

import (
	"reflect"
	"strconv"
	"strings"
	"testing"

	"github.com/wader/vid2webp/internal/goffmpeg/internal/linebuffer"
)

func TestLastLines(t *testing.T) {
	testCases := []struct {
		writes        string
		expected      string
		expectedLines []string
	}{
		{writes: "", expected: "", expectedLines: nil},
		{writes: "a\n,b\n", expected: "a\nb\n", expectedLines: []string{"a", "b"}},
		{writes: "a\r", expected: "a\r", expectedLines: []string{"a"}},
		{writes: "a\n,b\n,c\n,d\n", expected: "b\nc\nd\n", expectedLines: []string{"b", "c", "d"}},
		{writes: "a\n,b\n,c\n,1\n,2\n,3\n", expected: "1\n2\n3\n", expectedLines: []string{"1", "2", "3"}},
		{writes: "a,b,c\nd", expected: "abc\nd", expectedLines: []string{"abc", "d"}},
		{writes: "\n,x\n", expected: "\nx\n", expectedLines: []string{"x"}},
	}
	for i, tC := range testCases {
		t.Run(strconv.Itoa(i), func(t *testing.T) {
			lb := linebuffer.NewLastLines(3)
			for _, w := range strings.Split(tC.writes, ",") {
				lb.Write([]byte(w))
			}
			lb.Close()

			if tC.expected != lb.String() {
				t.Errorf("expected %q, got %q", tC.expected, lb.String())
			}
			if !reflect.DeepEqual(tC.expectedLines, lb.Lines()) {
				t.Errorf("expected lines %q, got %q", tC.expectedLines, lb.Lines())
			}
		})
	}
}

func TestFn(t *testing.T) {
	var got []string
	f := linebuffer.NewFn(func(line string) { got = append(got, line) })
	f.Write([]byte("frame=1\nfr"))
	f.Write([]byte("ame=2\rtail"))
	f.Close()

	expected := []string{"frame=1\n", "frame=2\r", "tail"}
	if !reflect.DeepEqual(expected, got) {
		t.Errorf("expected %q, got %q", expected, got)
	}
}
