// Package atlas reads the text region-description file that accompanies a
// packed sprite sheet (the libGDX / TexturePacker format: one page header
// per image followed by indented named regions).
package atlas

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Page is one packed sheet image referenced by the atlas file.
type Page struct {
	Image  string
	Width  int
	Height int
}

// Region is a named rectangle within a page.
type Region struct {
	Name string
	Page string

	X, Y          int
	Width, Height int

	// Original (pre-trim) size and trim offset; equal to Width/Height and
	// zero for untrimmed regions.
	OrigWidth, OrigHeight int
	OffsetX, OffsetY      int

	Index  int
	Rotate bool
}

// Atlas is a parsed region-description file.
type Atlas struct {
	Pages   []Page
	Regions []Region

	byName map[string]int
}

// Parse reads an atlas description from r.
func Parse(r io.Reader) (*Atlas, error) {
	a := &Atlas{byName: make(map[string]int)}

	var page *Page
	var region *Region
	lineNo := 0

	flush := func() {
		if region != nil {
			a.byName[region.Name] = len(a.Regions)
			a.Regions = append(a.Regions, *region)
			region = nil
		}
	}

	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineNo++
		raw := sc.Text()
		line := strings.TrimSpace(raw)
		if line == "" {
			// blank line ends the current page
			flush()
			page = nil
			continue
		}

		indented := strings.HasPrefix(raw, " ") || strings.HasPrefix(raw, "\t")

		if page == nil {
			if strings.Contains(line, ":") {
				return nil, fmt.Errorf("atlas: line %d: expected page image name, got %q", lineNo, line)
			}
			a.Pages = append(a.Pages, Page{Image: line})
			page = &a.Pages[len(a.Pages)-1]
			continue
		}

		key, value, hasKV := cutKV(line)

		switch {
		case hasKV && region == nil && !indented:
			// page attribute
			if key == "size" {
				w, h, err := parsePair(value)
				if err != nil {
					return nil, fmt.Errorf("atlas: line %d: page size: %w", lineNo, err)
				}
				page.Width, page.Height = w, h
			}
			// format, filter and repeat only matter to the packer

		case hasKV && indented:
			if region == nil {
				return nil, fmt.Errorf("atlas: line %d: attribute %q outside a region", lineNo, key)
			}
			if err := setRegionAttr(region, key, value); err != nil {
				return nil, fmt.Errorf("atlas: line %d: %w", lineNo, err)
			}

		case !hasKV:
			// new region name
			flush()
			region = &Region{Name: line, Page: page.Image, Index: -1}

		default:
			return nil, fmt.Errorf("atlas: line %d: unexpected %q", lineNo, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("atlas: read: %w", err)
	}
	flush()

	if len(a.Pages) == 0 {
		return nil, fmt.Errorf("atlas: no pages")
	}
	for i := range a.Regions {
		reg := &a.Regions[i]
		if reg.Width <= 0 || reg.Height <= 0 {
			return nil, fmt.Errorf("atlas: region %q has no size", reg.Name)
		}
		if reg.OrigWidth == 0 && reg.OrigHeight == 0 {
			reg.OrigWidth, reg.OrigHeight = reg.Width, reg.Height
		}
	}
	return a, nil
}

// Region looks up a region by name.
func (a *Atlas) Region(name string) (Region, bool) {
	if a == nil {
		return Region{}, false
	}
	i, ok := a.byName[name]
	if !ok {
		return Region{}, false
	}
	return a.Regions[i], true
}

// Names returns all region names in sorted order.
func (a *Atlas) Names() []string {
	if a == nil {
		return nil
	}
	names := make([]string, 0, len(a.byName))
	for name := range a.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func setRegionAttr(r *Region, key, value string) error {
	switch key {
	case "xy":
		x, y, err := parsePair(value)
		if err != nil {
			return fmt.Errorf("region %s xy: %w", r.Name, err)
		}
		r.X, r.Y = x, y
	case "size":
		w, h, err := parsePair(value)
		if err != nil {
			return fmt.Errorf("region %s size: %w", r.Name, err)
		}
		r.Width, r.Height = w, h
	case "orig":
		w, h, err := parsePair(value)
		if err != nil {
			return fmt.Errorf("region %s orig: %w", r.Name, err)
		}
		r.OrigWidth, r.OrigHeight = w, h
	case "offset":
		x, y, err := parsePair(value)
		if err != nil {
			return fmt.Errorf("region %s offset: %w", r.Name, err)
		}
		r.OffsetX, r.OffsetY = x, y
	case "index":
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("region %s index: %w", r.Name, err)
		}
		r.Index = i
	case "rotate":
		r.Rotate = value == "true" || value == "90"
	}
	// unknown keys (split, pad) are skipped
	return nil
}

func cutKV(line string) (key, value string, ok bool) {
	key, value, ok = strings.Cut(line, ":")
	if !ok {
		return "", "", false
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), true
}

func parsePair(s string) (int, int, error) {
	first, second, ok := strings.Cut(s, ",")
	if !ok {
		return 0, 0, fmt.Errorf("expected two comma-separated ints, got %q", s)
	}
	a, err := strconv.Atoi(strings.TrimSpace(first))
	if err != nil {
		return 0, 0, err
	}
	b, err := strconv.Atoi(strings.TrimSpace(second))
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}
