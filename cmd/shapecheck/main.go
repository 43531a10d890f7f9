// Command shapecheck cross-checks the shape template file against the
// sprite atlas: every template needs a region, every region a template, and
// every polygon must be convex and inside its sprite's bounds. Run it after
// editing prefabs/shapes.yaml.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/milk9111/fruitfall/atlas"
	"github.com/milk9111/fruitfall/prefabs"
)

func main() {
	atlasPath := flag.String("atlas", "assets/sprites.atlas", "atlas description file")
	shapesPath := flag.String("shapes", "prefabs/shapes.yaml", "shape template file")
	flag.Parse()

	af, err := os.Open(*atlasPath)
	if err != nil {
		log.Fatalf("open atlas: %v", err)
	}
	a, err := atlas.Parse(af)
	af.Close()
	if err != nil {
		log.Fatal(err)
	}

	data, err := os.ReadFile(*shapesPath)
	if err != nil {
		log.Fatalf("read shapes: %v", err)
	}
	cache, err := prefabs.ParseShapes(data)
	if err != nil {
		log.Fatal(err)
	}

	problems := 0
	report := func(format string, args ...interface{}) {
		problems++
		fmt.Printf("  ! "+format+"\n", args...)
	}

	for _, name := range cache.Names() {
		def, _ := cache.Def(name)
		fmt.Printf("%s: %d polygon(s), density %g, friction %g\n", name, len(def.Polygons), def.Density, def.Friction)

		region, ok := a.Region(name)
		if !ok {
			report("no atlas region named %q", name)
			continue
		}
		for i, poly := range def.Polygons {
			if !convex(poly) {
				report("polygon %d is not convex", i)
			}
			for _, p := range poly {
				if p[0] < 0 || p[1] < 0 || p[0] > float64(region.Width) || p[1] > float64(region.Height) {
					report("polygon %d vertex (%g, %g) outside the %dx%d sprite", i, p[0], p[1], region.Width, region.Height)
					break
				}
			}
		}
	}

	for _, name := range a.Names() {
		if _, ok := cache.Def(name); !ok {
			fmt.Printf("%s: atlas region has no shape template\n", name)
			problems++
		}
	}

	if problems > 0 {
		fmt.Printf("%d problem(s)\n", problems)
		os.Exit(1)
	}
	fmt.Println("ok")
}

// convex reports whether the polygon's turns all go the same way.
func convex(poly []prefabs.Point) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	sign := 0.0
	for i := 0; i < n; i++ {
		a, b, c := poly[i], poly[(i+1)%n], poly[(i+2)%n]
		cross := (b[0]-a[0])*(c[1]-b[1]) - (b[1]-a[1])*(c[0]-b[0])
		if cross == 0 {
			continue
		}
		if sign == 0 {
			sign = cross
		} else if (sign > 0) != (cross > 0) {
			return false
		}
	}
	return sign != 0
}
