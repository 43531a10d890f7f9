package main

import (
	"bytes"
	"fmt"
	"image"
	"log"
	"math/rand"
	"time"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/milk9111/fruitfall/assets"
	"github.com/milk9111/fruitfall/atlas"
	"github.com/milk9111/fruitfall/common"
	"github.com/milk9111/fruitfall/obj"
	"github.com/milk9111/fruitfall/prefabs"
)

// Game is the application lifecycle object: load once, resize the viewport
// as the window changes, step and draw every frame, dispose on exit.
type Game struct {
	debug bool
	count int
	seed  int64
	rng   *rand.Rand

	pages   []*ebiten.Image
	sprites map[string]*obj.Sprite
	shapes  *prefabs.ShapeCache
	world   *obj.World
	view    *obj.Viewport
	acc     *common.Accumulator
	watcher *prefabs.Watcher

	// fruit i is fruitBodies[i] simulated and fruitSprites[i] drawn; the
	// slices stay in lock-step
	fruitBodies  []*cp.Body
	fruitSprites []*obj.Sprite

	lastTick time.Time
	paused   bool
	quit     bool
	pauseUI  *ebitenui.UI

	disposed bool
}

// NewGame loads the atlas and shape templates and spawns the first batch of
// fruit.
func NewGame(count int, seed int64, debug, watch bool) (*Game, error) {
	if count <= 0 {
		count = common.FruitCount
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	g := &Game{
		debug: debug,
		count: count,
		seed:  seed,
		rng:   rand.New(rand.NewSource(seed)),
		view:  obj.NewViewport(common.MinWorldWidth, common.MinWorldHeight),
		acc:   common.NewAccumulator(common.StepTime, common.MaxFrameDelta),
		world: obj.NewWorld(),
	}

	if err := g.loadSprites(); err != nil {
		return nil, err
	}

	shapes, err := prefabs.LoadShapes()
	if err != nil {
		return nil, err
	}
	g.shapes = shapes

	if watch {
		w, err := prefabs.NewWatcher("prefabs", "prefabs/scripts")
		if err != nil {
			log.Printf("prefab watcher disabled: %v", err)
		} else {
			g.watcher = w
		}
	}

	g.pauseUI = NewPauseUI(g)
	g.spawnFruit()
	g.lastTick = time.Now()
	return g, nil
}

// loadSprites parses the atlas description and caches one sprite per region,
// pre-scaled to world units.
func (g *Game) loadSprites() error {
	data, err := assets.LoadFile("sprites.atlas")
	if err != nil {
		return fmt.Errorf("load atlas description: %w", err)
	}
	a, err := atlas.Parse(bytes.NewReader(data))
	if err != nil {
		return err
	}

	pages := make(map[string]*ebiten.Image, len(a.Pages))
	for _, page := range a.Pages {
		img, err := assets.LoadImage(page.Image)
		if err != nil {
			return fmt.Errorf("load atlas page %s: %w", page.Image, err)
		}
		pages[page.Image] = img
		g.pages = append(g.pages, img)
	}

	g.sprites = make(map[string]*obj.Sprite, len(a.Regions))
	for _, region := range a.Regions {
		page := pages[region.Page]
		if page == nil {
			return fmt.Errorf("region %s references missing page %s", region.Name, region.Page)
		}
		rect := image.Rect(region.X, region.Y, region.X+region.Width, region.Y+region.Height)
		sub, ok := page.SubImage(rect).(*ebiten.Image)
		if !ok {
			return fmt.Errorf("region %s: bad sub-image", region.Name)
		}
		g.sprites[region.Name] = obj.NewSprite(sub, common.SpriteScale)
	}
	return nil
}

// spawnFruit replaces the current fruit with a fresh batch, pairing each new
// body with a clone of the cached sprite for its template name.
func (g *Game) spawnFruit() {
	for _, body := range g.fruitBodies {
		g.world.RemoveBody(body)
	}
	g.fruitBodies = g.fruitBodies[:0]
	g.fruitSprites = g.fruitSprites[:0]

	names := g.spawnableNames()
	if len(names) == 0 {
		log.Print("no shape templates with matching atlas regions; nothing to spawn")
		return
	}

	worldW, worldH := g.view.WorldSize()
	if worldW <= 0 || worldH <= 0 {
		worldW, worldH = common.MinWorldWidth, common.MinWorldHeight
	}

	points := g.spawnPoints(names, worldW, worldH)
	for _, p := range points {
		tmpl := g.sprites[p.Name]
		if tmpl == nil {
			log.Printf("spawn: no sprite for template %q", p.Name)
			continue
		}
		body, err := g.shapes.CreateBody(g.world.Space(), p.Name, common.SpriteScale)
		if err != nil {
			log.Printf("spawn: %v", err)
			continue
		}
		body.SetPosition(cp.Vector{X: p.X, Y: p.Y})
		body.SetAngle(p.Angle)

		g.fruitBodies = append(g.fruitBodies, body)
		g.fruitSprites = append(g.fruitSprites, tmpl.Clone())
	}
}

// spawnableNames returns the shape template names that also have a sprite.
func (g *Game) spawnableNames() []string {
	var names []string
	for _, name := range g.shapes.Names() {
		if g.sprites[name] != nil {
			names = append(names, name)
		}
	}
	return names
}

// spawnPoints runs the tengo spawn script, falling back to the built-in
// random pattern when the script is missing or broken.
func (g *Game) spawnPoints(names []string, worldW, worldH float64) []prefabs.SpawnPoint {
	src, err := prefabs.LoadScript(prefabs.SpawnScript)
	if err == nil {
		points, err := prefabs.RunSpawnScript(src, names, g.count, worldW, worldH, g.rng.Int63())
		if err == nil {
			return points
		}
		log.Printf("spawn script failed, using built-in pattern: %v", err)
	}
	return prefabs.DefaultSpawn(names, g.count, worldW, worldH, g.rng)
}

// reloadPrefabs re-reads the shape templates after a watcher event and
// respawns. A broken edit keeps the previous templates.
func (g *Game) reloadPrefabs(name string) {
	shapes, err := prefabs.LoadShapes()
	if err != nil {
		log.Printf("reload after %s failed: %v", name, err)
		return
	}
	g.shapes = shapes
	g.spawnFruit()
	log.Printf("reloaded prefabs after %s", name)
}

func (g *Game) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reloadPrefabs(name)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("prefab watcher: %v", err)
		default:
			return
		}
	}
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
		if !g.paused {
			// rebase the clock so pause time never floods the accumulator
			g.lastTick = time.Now()
		}
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.spawnFruit()
	}
	g.drainWatcher()

	now := time.Now()
	delta := now.Sub(g.lastTick).Seconds()
	g.lastTick = now
	g.acc.Tick(delta, g.world.Step)

	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Skyblue)

	// read each body's last-stepped pose into its paired sprite, then draw
	for i, body := range g.fruitBodies {
		pos := body.Position()
		g.fruitSprites[i].SetPose(pos.X, pos.Y, body.Angle())
		g.fruitSprites[i].Draw(screen, g.view)
	}

	if g.debug {
		g.world.DebugDraw(screen, g.view)
	}

	ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS: %.0f  FPS: %.0f  fruit: %d", ebiten.ActualTPS(), ebiten.ActualFPS(), len(g.fruitBodies)))

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

// Layout tracks the window size. When the visible world width changes the
// ground is rebuilt to span it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.view.Resize(outsideWidth, outsideHeight) {
		worldW, _ := g.view.WorldSize()
		g.world.RebuildGround(worldW)
	}
	return outsideWidth, outsideHeight
}

// Dispose releases everything the game loaded: watcher, physics space and
// atlas pages. Safe to call more than once.
func (g *Game) Dispose() {
	if g == nil || g.disposed {
		return
	}
	g.disposed = true

	if g.watcher != nil {
		_ = g.watcher.Close()
		g.watcher = nil
	}

	for _, body := range g.fruitBodies {
		g.world.RemoveBody(body)
	}
	g.fruitBodies = nil
	g.fruitSprites = nil
	g.world.Dispose()

	g.sprites = nil
	for _, page := range g.pages {
		page.Deallocate()
	}
	g.pages = nil
}
