package prefabs

import (
	"fmt"
	"math/rand"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// SpawnScript is the default spawn pattern script name.
const SpawnScript = "spawn.tengo"

// SpawnPoint is one scripted spawn entry: which template to instantiate and
// the initial pose.
type SpawnPoint struct {
	Name  string
	X     float64
	Y     float64
	Angle float64
}

// RunSpawnScript executes a tengo spawn script. The script sees __names,
// __count, __world_w, __world_h and __seed, and must assign an array of
// {name, x, y, angle} maps to __points.
func RunSpawnScript(src []byte, names []string, count int, worldW, worldH float64, seed int64) ([]SpawnPoint, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("prefabs: spawn script given no template names")
	}
	if count <= 0 {
		return nil, nil
	}

	nameVals := make([]interface{}, len(names))
	for i, n := range names {
		nameVals[i] = n
	}

	script := tengo.NewScript(src)
	mods := stdlib.GetModuleMap("math")
	mods.AddBuiltinModule("rand", randModuleAttrs(seed))
	script.SetImports(mods)
	if err := script.Add("__names", nameVals); err != nil {
		return nil, fmt.Errorf("prefabs: spawn script: %w", err)
	}
	if err := script.Add("__count", count); err != nil {
		return nil, fmt.Errorf("prefabs: spawn script: %w", err)
	}
	if err := script.Add("__world_w", worldW); err != nil {
		return nil, fmt.Errorf("prefabs: spawn script: %w", err)
	}
	if err := script.Add("__world_h", worldH); err != nil {
		return nil, fmt.Errorf("prefabs: spawn script: %w", err)
	}
	if err := script.Add("__seed", seed); err != nil {
		return nil, fmt.Errorf("prefabs: spawn script: %w", err)
	}
	if err := script.Add("__points", nil); err != nil {
		return nil, fmt.Errorf("prefabs: spawn script: %w", err)
	}

	compiled, err := script.Run()
	if err != nil {
		return nil, fmt.Errorf("prefabs: run spawn script: %w", err)
	}

	raw, ok := compiled.Get("__points").Value().([]interface{})
	if !ok {
		return nil, fmt.Errorf("prefabs: spawn script did not assign an array to __points")
	}

	points := make([]SpawnPoint, 0, len(raw))
	for i, entry := range raw {
		m, ok := entry.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("prefabs: spawn entry %d is not a map", i)
		}
		p := SpawnPoint{}
		if p.Name, ok = m["name"].(string); !ok || p.Name == "" {
			return nil, fmt.Errorf("prefabs: spawn entry %d has no name", i)
		}
		if p.X, ok = toFloat(m["x"]); !ok {
			return nil, fmt.Errorf("prefabs: spawn entry %d has non-numeric x", i)
		}
		if p.Y, ok = toFloat(m["y"]); !ok {
			return nil, fmt.Errorf("prefabs: spawn entry %d has non-numeric y", i)
		}
		if angle, ok := toFloat(m["angle"]); ok {
			p.Angle = angle
		}
		points = append(points, p)
	}
	return points, nil
}

// DefaultSpawn is the built-in fallback pattern used when no spawn script is
// available: uniform random template over the top band of the world.
func DefaultSpawn(names []string, count int, worldW, worldH float64, rng *rand.Rand) []SpawnPoint {
	if len(names) == 0 || count <= 0 {
		return nil
	}
	points := make([]SpawnPoint, count)
	for i := range points {
		points[i] = SpawnPoint{
			Name: names[rng.Intn(len(names))],
			X:    rng.Float64() * worldW,
			Y:    worldH + rng.Float64()*worldH,
		}
	}
	return points
}

// randModuleAttrs builds the script's rand module over a private source
// seeded per run. The stdlib module wraps the package-level math/rand
// functions, whose Seed is a no-op in current Go, which would make
// rand.seed(__seed) silently nondeterministic.
func randModuleAttrs(seed int64) map[string]tengo.Object {
	rng := rand.New(rand.NewSource(seed))
	return map[string]tengo.Object{
		"seed": &tengo.UserFunction{
			Name: "seed",
			Value: func(args ...tengo.Object) (tengo.Object, error) {
				if len(args) != 1 {
					return nil, tengo.ErrWrongNumArguments
				}
				n, ok := tengo.ToInt64(args[0])
				if !ok {
					return nil, tengo.ErrInvalidArgumentType{Name: "first", Expected: "int(compatible)", Found: args[0].TypeName()}
				}
				rng.Seed(n)
				return tengo.UndefinedValue, nil
			},
		},
		"float": &tengo.UserFunction{
			Name: "float",
			Value: func(args ...tengo.Object) (tengo.Object, error) {
				if len(args) != 0 {
					return nil, tengo.ErrWrongNumArguments
				}
				return &tengo.Float{Value: rng.Float64()}, nil
			},
		},
		"int": &tengo.UserFunction{
			Name: "int",
			Value: func(args ...tengo.Object) (tengo.Object, error) {
				if len(args) != 0 {
					return nil, tengo.ErrWrongNumArguments
				}
				return &tengo.Int{Value: rng.Int63()}, nil
			},
		},
		"intn": &tengo.UserFunction{
			Name: "intn",
			Value: func(args ...tengo.Object) (tengo.Object, error) {
				if len(args) != 1 {
					return nil, tengo.ErrWrongNumArguments
				}
				n, ok := tengo.ToInt64(args[0])
				if !ok {
					return nil, tengo.ErrInvalidArgumentType{Name: "first", Expected: "int(compatible)", Found: args[0].TypeName()}
				}
				if n <= 0 {
					return nil, tengo.ErrInvalidArgumentType{Name: "first", Expected: "positive int", Found: args[0].TypeName()}
				}
				return &tengo.Int{Value: rng.Int63n(n)}, nil
			},
		},
	}
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}
