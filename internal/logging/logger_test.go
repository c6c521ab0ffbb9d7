package logging

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestLoggerDisabled(t *testing.T) {
	var buf bytes.Buffer
	l := New(false)
	l.SetOutput(&buf)
	l.Log("hello %d", 1)
	l.Section("x")
	if buf.Len() != 0 {
		t.Fatalf("disabled logger wrote %q", buf.String())
	}
}

func TestLoggerNamedPrefix(t *testing.T) {
	var buf bytes.Buffer
	l := New(true)
	l.SetOutput(&buf)
	l.Named("SVG").Named("worker 2").Log("frame %04d", 7)
	want := "[lindenmayer][SVG][worker 2] frame 0007\n"
	if buf.String() != want {
		t.Fatalf("got %q want %q", buf.String(), want)
	}
}

func TestLoggerLinesSkipsBlank(t *testing.T) {
	var buf bytes.Buffer
	l := New(true)
	l.SetOutput(&buf)
	l.Lines("first\n\n   \nsecond\r\n")
	got := strings.Count(buf.String(), "\n")
	if got != 2 {
		t.Fatalf("want 2 lines, got %d: %q", got, buf.String())
	}
}

func TestLoggerConcurrent(t *testing.T) {
	var buf bytes.Buffer
	l := New(true)
	l.SetOutput(&buf)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			w := l.Named("w")
			for j := 0; j < 50; j++ {
				w.Log("%d/%d", n, j)
			}
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 400 {
		t.Fatalf("want 400 lines, got %d", len(lines))
	}
	for _, ln := range lines {
		if !strings.HasPrefix(ln, "[lindenmayer][w] ") {
			t.Fatalf("torn line %q", ln)
		}
	}
}
