package atlas

import (
	"strings"
	"testing"
)

const sampleAtlas = `
sprites.png
size: 192, 64
format: RGBA8888
filter: Nearest, Nearest
repeat: none
banana
  rotate: false
  xy: 0, 0
  size: 64, 64
  orig: 64, 64
  offset: 0, 0
  index: -1
cherries
  rotate: false
  xy: 64, 0
  size: 64, 64
  orig: 64, 64
  offset: 0, 0
  index: -1
orange
  rotate: false
  xy: 128, 0
  size: 64, 64
  orig: 64, 64
  offset: 0, 0
  index: -1
`

func TestParse(t *testing.T) {
	a, err := Parse(strings.NewReader(sampleAtlas))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if len(a.Pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(a.Pages))
	}
	if a.Pages[0].Image != "sprites.png" || a.Pages[0].Width != 192 || a.Pages[0].Height != 64 {
		t.Fatalf("bad page: %+v", a.Pages[0])
	}

	want := []struct {
		name string
		x    int
	}{
		{"banana", 0},
		{"cherries", 64},
		{"orange", 128},
	}
	if len(a.Regions) != len(want) {
		t.Fatalf("got %d regions, want %d", len(a.Regions), len(want))
	}
	for _, w := range want {
		r, ok := a.Region(w.name)
		if !ok {
			t.Fatalf("region %q missing", w.name)
		}
		if r.X != w.x || r.Y != 0 || r.Width != 64 || r.Height != 64 {
			t.Fatalf("region %q geometry: %+v", w.name, r)
		}
		if r.Page != "sprites.png" {
			t.Fatalf("region %q page: %q", w.name, r.Page)
		}
	}

	names := a.Names()
	if len(names) != 3 || names[0] != "banana" || names[1] != "cherries" || names[2] != "orange" {
		t.Fatalf("names: %v", names)
	}
}

func TestParseDefaultsAndMultiplePages(t *testing.T) {
	src := "page1.png\nsize: 32, 32\napple\n  xy: 0, 0\n  size: 16, 16\n\npage2.png\nsize: 8, 8\npear\n  xy: 1, 2\n  size: 4, 4\n"
	a, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(a.Pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(a.Pages))
	}
	apple, ok := a.Region("apple")
	if !ok {
		t.Fatal("apple missing")
	}
	// orig defaults to size when the packer omits it
	if apple.OrigWidth != 16 || apple.OrigHeight != 16 {
		t.Fatalf("apple orig: %+v", apple)
	}
	if apple.Index != -1 {
		t.Fatalf("apple index: %d, want -1 default", apple.Index)
	}
	pear, ok := a.Region("pear")
	if !ok || pear.Page != "page2.png" {
		t.Fatalf("pear: %+v ok=%v", pear, ok)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"attr_before_page", "size: 1, 2\n"},
		{"region_without_size", "p.png\nsize: 8, 8\nghost\n  xy: 0, 0\n"},
		{"bad_pair", "p.png\nsize: 8\n"},
		{"bad_index", "p.png\nsize: 8, 8\nr\n  size: 1, 1\n  index: x\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(c.src)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
