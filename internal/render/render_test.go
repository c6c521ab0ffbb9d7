package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"lindenmayer/internal/logging"
	"lindenmayer/internal/turtle"
)

func seg(x1, y1, x2, y2 float64, base, blend string) turtle.Segment {
	return turtle.Segment{
		From:   turtle.Point{X: x1, Y: y1},
		To:     turtle.Point{X: x2, Y: y2},
		Stroke: turtle.Stroke{Base: base, Blend: blend},
	}
}

func TestBlend(t *testing.T) {
	tests := []struct {
		base, blend string
		t           float64
		want        string
	}{
		{"#000000", "", 0.7, "#000000"},
		{"", "", 0, "#000000"},
		{"#000000", "#003895", 0, "#000000"},
		{"#000000", "#003895", 1, "#003895"},
		{"#000000", "#ffffff", 0.5, "#808080"},
		{"#fff", "", 0, "#ffffff"},
	}
	for _, tt := range tests {
		got, err := Blend(tt.base, tt.blend, tt.t)
		if err != nil {
			t.Fatal(err)
		}
		if got != tt.want {
			t.Errorf("Blend(%q, %q, %v) = %q, want %q", tt.base, tt.blend, tt.t, got, tt.want)
		}
	}
	for _, bad := range []string{"red", "#12345", "#gggggg"} {
		if _, err := Blend(bad, "", 0); err == nil {
			t.Errorf("Blend(%q) accepted", bad)
		}
	}
}

func TestCheckColor(t *testing.T) {
	for _, ok := range []string{"#000", "#003895"} {
		if err := CheckColor(ok); err != nil {
			t.Errorf("CheckColor(%q): %v", ok, err)
		}
	}
	for _, bad := range []string{"", "blue", "003895", "#0038951"} {
		if err := CheckColor(bad); err == nil {
			t.Errorf("CheckColor(%q) accepted", bad)
		}
	}
}

func TestWriteSVGOnePathPerStroke(t *testing.T) {
	segs := []turtle.Segment{
		seg(0, 0, 1, 0, "#000000", ""),
		seg(1, 0, 1, 1, "#000000", ""),
		seg(0, 0, 0, 1, "#000000", "#ffffff"),
		seg(5, 5, 6, 6, "#000000", ""),
	}
	var buf bytes.Buffer
	if err := WriteSVG(&buf, segs, 0.5, DefaultStyle); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if n := strings.Count(out, "<path "); n != 2 {
		t.Fatalf("want 2 paths, got %d:\n%s", n, out)
	}
	if !strings.Contains(out, `d="M0,0L1,0L1,-1M5,-5L6,-6"`) {
		t.Errorf("first path not joined or flipped:\n%s", out)
	}
	if !strings.Contains(out, `stroke="#808080"`) {
		t.Errorf("blended colour missing:\n%s", out)
	}
	if !strings.Contains(out, `viewBox="-0.5 -0.5 1 1"`) {
		t.Errorf("view box missing:\n%s", out)
	}
}

func TestWriteSVGBadColour(t *testing.T) {
	var buf bytes.Buffer
	err := WriteSVG(&buf, []turtle.Segment{seg(0, 0, 1, 1, "blue", "")}, 0, DefaultStyle)
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestFit(t *testing.T) {
	if v := Fit(nil, 0.1); v != DefaultViewBox {
		t.Fatalf("empty fit %v", v)
	}
	v := Fit([]turtle.Segment{seg(0, 0, 2, 1, "", "")}, 0)
	if v.W != 2 || v.H != 2 || v.X != 0 || v.Y != -1.5 {
		t.Fatalf("fit %+v", v)
	}
}

func TestSaveSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame0000.svg")
	if err := SaveSVG(path, []turtle.Segment{seg(0, 0, 0, 0.25, "", "")}, 0, DefaultStyle); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "<svg") {
		t.Fatalf("not an svg: %q", data)
	}
}

func TestPoolRunsEveryJob(t *testing.T) {
	var mu sync.Mutex
	seen := map[int]bool{}
	p := NewPool("test", 4, logging.Discard(), func(job int, _ *logging.Logger) error {
		mu.Lock()
		seen[job] = true
		mu.Unlock()
		return nil
	})
	for i := 0; i < 100; i++ {
		p.Submit(i)
	}
	if err := p.Close(); err != nil {
		t.Fatal(err)
	}
	if len(seen) != 100 {
		t.Fatalf("ran %d of 100 jobs", len(seen))
	}
	if err := p.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestPoolCountsFailures(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(true)
	log.SetOutput(&buf)
	p := NewPool("svg", 2, log, func(job int, _ *logging.Logger) error {
		if job%3 == 0 {
			return errors.New("boom")
		}
		return nil
	})
	for i := 0; i < 9; i++ {
		p.Submit(i)
	}
	err := p.Close()
	if err == nil || !strings.Contains(err.Error(), "3 of 9 jobs failed") {
		t.Fatalf("got %v", err)
	}
	if !strings.Contains(buf.String(), "[svg ") || !strings.Contains(buf.String(), "boom") {
		t.Fatalf("failures not logged by worker:\n%s", buf.String())
	}
}

func TestPoolReportsErrorsWhenQuiet(t *testing.T) {
	var buf bytes.Buffer
	log := logging.New(false)
	log.SetOutput(&buf)
	errPop := errors.New("cannot pop the last turtle")
	p := NewPool("SVG", 1, log, func(job int, _ *logging.Logger) error {
		return fmt.Errorf("frame%04d.svg: %w", job, errPop)
	})
	p.Submit(7)
	err := p.Close()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "SVG: 1 of 1 jobs failed") || !strings.Contains(err.Error(), "frame0007.svg: cannot pop the last turtle") {
		t.Fatalf("error does not carry the job error: %v", err)
	}
	if !errors.Is(err, errPop) {
		t.Fatalf("errors.Is failed for %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("quiet logger wrote %q", buf.String())
	}
}

func TestConverterArgs(t *testing.T) {
	ink, err := Converter{Program: "/usr/bin/inkscape", Width: 10, Height: 20}.Args("a.svg", "a.png")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(ink, " ") != "a.svg -o a.png -w 10 -h 20 -b white" {
		t.Errorf("inkscape args %q", ink)
	}
	rsvg, err := Converter{Program: "rsvg-convert", Width: 10, Height: 20}.Args("a.svg", "a.png")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(rsvg, " ") != "-w 10 -h 20 -b white -o a.png a.svg" {
		t.Errorf("rsvg args %q", rsvg)
	}
	if _, err := (Converter{Program: "gimp"}).Args("a", "b"); err == nil {
		t.Error("unknown converter accepted")
	}
}

func TestConvertMissingProgram(t *testing.T) {
	c := Converter{Program: filepath.Join(t.TempDir(), "inkscape"), Width: 1, Height: 1}
	if err := c.Convert(context.Background(), "a.svg", "a.png", logging.Discard()); err == nil {
		t.Fatal("expected error running a missing program")
	}
}

func TestPreview(t *testing.T) {
	// an L: down the left edge, then along the bottom
	segs := []turtle.Segment{
		seg(0, 4, 0, 0, "", ""),
		seg(0, 0, 4, 0, "", ""),
	}
	var buf bytes.Buffer
	if err := Preview(&buf, segs, 5, 5); err != nil {
		t.Fatal(err)
	}
	want := "#....\n#....\n#....\n#....\n#####\n"
	if buf.String() != want {
		t.Fatalf("got\n%s\nwant\n%s", buf.String(), want)
	}
}
