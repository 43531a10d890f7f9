package prefabs

import (
	"math/rand"
	"testing"
)

func TestRunSpawnScriptEmbedded(t *testing.T) {
	src, err := LoadScript(SpawnScript)
	if err != nil {
		t.Fatalf("load script: %v", err)
	}

	names := []string{"banana", "cherries", "orange"}
	known := make(map[string]bool, len(names))
	for _, n := range names {
		known[n] = true
	}

	points, err := RunSpawnScript(src, names, 25, 50, 50, 7)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(points) != 25 {
		t.Fatalf("got %d points, want 25", len(points))
	}
	for i, p := range points {
		if !known[p.Name] {
			t.Fatalf("point %d has unknown template %q", i, p.Name)
		}
		if p.X < 0 || p.X > 50 {
			t.Fatalf("point %d x %v out of [0, 50]", i, p.X)
		}
		// fruit spawns in the band above the visible world
		if p.Y < 50 || p.Y > 100 {
			t.Fatalf("point %d y %v out of [50, 100]", i, p.Y)
		}
	}

	// same seed, same pattern
	again, err := RunSpawnScript(src, names, 25, 50, 50, 7)
	if err != nil {
		t.Fatalf("rerun: %v", err)
	}
	for i := range points {
		if points[i] != again[i] {
			t.Fatalf("point %d differs across identical seeds: %+v vs %+v", i, points[i], again[i])
		}
	}

	// the seed actually drives the pattern: a different seed must not
	// reproduce all 25 poses
	other, err := RunSpawnScript(src, names, 25, 50, 50, 8)
	if err != nil {
		t.Fatalf("other seed: %v", err)
	}
	same := true
	for i := range points {
		if points[i] != other[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("seeds 7 and 8 produced identical spawn patterns")
	}
}

func TestSpawnScriptRandModuleIsolated(t *testing.T) {
	// each run gets a private random source; a script that never calls
	// seed still follows the seed passed to RunSpawnScript
	src := []byte(`
rand := import("rand")
__points = [{name: "a", x: rand.float(), y: rand.float() + 50.0, angle: 0.0}]
`)
	first, err := RunSpawnScript(src, []string{"a"}, 1, 50, 50, 42)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	second, err := RunSpawnScript(src, []string{"a"}, 1, 50, 50, 42)
	if err != nil {
		t.Fatalf("rerun: %v", err)
	}
	if first[0] != second[0] {
		t.Fatalf("unseeded script not reproducible: %+v vs %+v", first[0], second[0])
	}
}

func TestRunSpawnScriptErrors(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		names []string
		count int
	}{
		{"no_names", `__points = []`, nil, 5},
		{"syntax_error", `for {`, []string{"a"}, 5},
		{"no_points_assigned", `x := 1`, []string{"a"}, 5},
		{"entry_not_map", `__points = [1, 2]`, []string{"a"}, 5},
		{"entry_missing_name", `__points = [{x: 1.0, y: 2.0}]`, []string{"a"}, 5},
		{"entry_bad_coord", `__points = [{name: "a", x: "left", y: 2.0}]`, []string{"a"}, 5},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := RunSpawnScript([]byte(c.src), c.names, c.count, 50, 50, 1); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestRunSpawnScriptZeroCount(t *testing.T) {
	points, err := RunSpawnScript([]byte(`__points = []`), []string{"a"}, 0, 50, 50, 1)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(points) != 0 {
		t.Fatalf("got %d points, want 0", len(points))
	}
}

func TestDefaultSpawn(t *testing.T) {
	names := []string{"banana", "orange"}
	rng := rand.New(rand.NewSource(3))

	points := DefaultSpawn(names, 10, 50, 50, rng)
	if len(points) != 10 {
		t.Fatalf("got %d points, want 10", len(points))
	}
	for i, p := range points {
		if p.Name != "banana" && p.Name != "orange" {
			t.Fatalf("point %d name %q", i, p.Name)
		}
		if p.X < 0 || p.X > 50 || p.Y < 50 || p.Y > 100 {
			t.Fatalf("point %d pose out of range: %+v", i, p)
		}
		if p.Angle != 0 {
			t.Fatalf("point %d angle %v, want 0", i, p.Angle)
		}
	}

	if got := DefaultSpawn(nil, 10, 50, 50, rng); got != nil {
		t.Fatalf("expected nil for empty names, got %v", got)
	}
}
