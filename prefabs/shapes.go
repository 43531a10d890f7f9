package prefabs

import (
	"fmt"
	"sort"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"
)

// Point is a polygon vertex in sprite-pixel coordinates, bottom-left origin.
type Point [2]float64

// ShapeDef is one named collision-shape template: material properties plus
// one or more convex polygon vertex sets.
type ShapeDef struct {
	Density    float64   `yaml:"density"`
	Friction   float64   `yaml:"friction"`
	Elasticity float64   `yaml:"elasticity"`
	Polygons   [][]Point `yaml:"polygons"`
}

type shapeFile struct {
	Shapes map[string]ShapeDef `yaml:"shapes"`
}

// ShapeCache maps template names to shape definitions and instantiates
// dynamic bodies from them. Read-only after load; reloading builds a new
// cache.
type ShapeCache struct {
	defs map[string]ShapeDef
}

// LoadShapes loads the default shape template file.
func LoadShapes() (*ShapeCache, error) {
	return LoadShapesFile("shapes.yaml")
}

// LoadShapesFile loads and validates a shape template file from the prefab
// content pack.
func LoadShapesFile(name string) (*ShapeCache, error) {
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", name, err)
	}
	return ParseShapes(data)
}

// ParseShapes decodes and validates shape templates from yaml.
func ParseShapes(data []byte) (*ShapeCache, error) {
	var file shapeFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("prefabs: unmarshal shapes: %w", err)
	}
	if len(file.Shapes) == 0 {
		return nil, fmt.Errorf("prefabs: shape file defines no shapes")
	}

	for name, def := range file.Shapes {
		if len(def.Polygons) == 0 {
			return nil, fmt.Errorf("prefabs: shape %q has no polygons", name)
		}
		for i, poly := range def.Polygons {
			if len(poly) < 3 {
				return nil, fmt.Errorf("prefabs: shape %q polygon %d has %d vertices, need at least 3", name, i, len(poly))
			}
		}
		if def.Density <= 0 {
			def.Density = 1
		}
		if def.Friction < 0 {
			def.Friction = 0
		}
		file.Shapes[name] = def
	}

	return &ShapeCache{defs: file.Shapes}, nil
}

// Names returns all template names in sorted order.
func (c *ShapeCache) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.defs))
	for name := range c.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Def returns the definition for a template name.
func (c *ShapeCache) Def(name string) (ShapeDef, bool) {
	if c == nil {
		return ShapeDef{}, false
	}
	def, ok := c.defs[name]
	return def, ok
}

// CreateBody instantiates a dynamic body for a named template, scaling the
// template's pixel-space vertices by scale, and adds it with its shapes to
// space. Mass and moment come from the polygon areas and the template
// density.
func (c *ShapeCache) CreateBody(space *cp.Space, name string, scale float64) (*cp.Body, error) {
	def, ok := c.Def(name)
	if !ok {
		return nil, fmt.Errorf("prefabs: unknown shape template %q", name)
	}
	if space == nil {
		return nil, fmt.Errorf("prefabs: nil space")
	}
	if scale <= 0 {
		scale = 1
	}

	polys := make([][]cp.Vector, len(def.Polygons))
	mass := 0.0
	moment := 0.0
	for i, poly := range def.Polygons {
		verts := make([]cp.Vector, len(poly))
		for j, p := range poly {
			verts[j] = cp.Vector{X: p[0] * scale, Y: p[1] * scale}
		}
		// chipmunk wants counter-clockwise winding; authored polygons may
		// come in either orientation
		if cp.AreaForPoly(len(verts), verts, 0) < 0 {
			for l, r := 0, len(verts)-1; l < r; l, r = l+1, r-1 {
				verts[l], verts[r] = verts[r], verts[l]
			}
		}
		area := cp.AreaForPoly(len(verts), verts, 0)
		if area <= 0 {
			return nil, fmt.Errorf("prefabs: shape %q polygon %d is degenerate", name, i)
		}
		polyMass := def.Density * area
		mass += polyMass
		moment += cp.MomentForPoly(polyMass, len(verts), verts, cp.Vector{}, 0)
		polys[i] = verts
	}

	body := space.AddBody(cp.NewBody(mass, moment))
	for _, verts := range polys {
		shape := space.AddShape(cp.NewPolyShapeRaw(body, len(verts), verts, 0))
		shape.SetFriction(def.Friction)
		shape.SetElasticity(def.Elasticity)
	}
	return body, nil
}
