package main

import (
	"fmt"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jinzhu/copier"
	"github.com/sirupsen/logrus"

	"wolfcast/config"
	"wolfcast/hud"
	"wolfcast/level"
	"wolfcast/model"
	"wolfcast/raycast"
	"wolfcast/render"
	"wolfcast/texture"
)

// Game is the ebiten.Game running the split screen view: the top-down map on the
// left half and the raycast scene on the right half.
type Game struct {
	cfg config.Config
	log logrus.FieldLogger

	level    *level.Level
	textures *texture.Table

	player *model.Player
	// spawn is a pristine copy of the player taken at load time
	spawn model.Player
	input model.InputState

	caster   *raycast.Caster
	frameCtx raycast.FrameContext
	frame    raycast.Frame

	renderer *render.Renderer
	minimap  *Minimap
	hud      *hud.HUD

	paused  bool
	showMap bool

	screenWidth  int
	screenHeight int
}

// NewGame loads textures and the level and sets up the casters and renderer.
func NewGame(cfg config.Config, log logrus.FieldLogger) (*Game, error) {
	g := &Game{
		cfg:          cfg,
		log:          log,
		showMap:      true,
		screenWidth:  cfg.Screen.Width,
		screenHeight: cfg.Screen.Height,
	}

	caster, err := raycast.NewCaster(raycast.Settings{
		ScreenWidth:  cfg.Screen.Width,
		ScreenHeight: cfg.Screen.Height,
		RayDensity:   cfg.Render.RayDensity,
	})
	if err != nil {
		return nil, fmt.Errorf("create caster: %w", err)
	}
	g.caster = caster
	halfWidth := caster.Settings().HalfWidth()

	g.textures, err = loadTextures(cfg.Textures, log)
	if err != nil {
		return nil, fmt.Errorf("load textures: %w", err)
	}

	g.level, err = loadLevel(cfg.Level, halfWidth, g.textures, log)
	if err != nil {
		return nil, fmt.Errorf("load level: %w", err)
	}

	g.player = g.level.NewPlayer(cfg.Player.Model())
	if err := copier.Copy(&g.spawn, g.player); err != nil {
		return nil, fmt.Errorf("snapshot spawn: %w", err)
	}

	face, err := hud.LoadFace(cfg.HUD.Font, cfg.HUD.FontSize)
	if err != nil {
		return nil, fmt.Errorf("load hud font: %w", err)
	}
	g.hud = hud.New(face, halfWidth, cfg.Screen.Height)

	g.renderer = render.NewRenderer(g.textures, halfWidth, cfg.Screen.Height)
	g.minimap = NewMinimap(g.renderer, g.level, cfg.Render.ShowRays)

	g.frameCtx = raycast.FrameContext{
		Grid:     g.level.Grid,
		Player:   g.player,
		Textures: g.textures,
		Elements: g.level.Elements,
		Depth:    raycast.NewDepthBuffer(halfWidth),
	}

	return g, nil
}

// Layout returns the fixed logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenWidth, g.screenHeight
}

// Update polls input and moves the player by one tick.
func (g *Game) Update() error {
	if err := g.handleInput(); err != nil {
		return err
	}

	if !g.paused {
		wasRunning := g.player.IsRunning
		g.player.Update(g.input, g.tickSeconds(), g.level.Grid)
		if g.player.IsRunning != wasRunning {
			g.log.WithField("running", g.player.IsRunning).Debug("sprint toggled")
		}
	}

	if fps, changed := g.hud.Update(time.Now(), g.status()); changed {
		g.log.WithField("fps", fmt.Sprintf("%.1f", fps)).Debug("fps sample")
	}
	return nil
}

// Draw casts the scene and draws it: floor and ceiling first, then walls, then sprites
// farthest to nearest, then the map and HUD on top.
func (g *Game) Draw(screen *ebiten.Image) {
	g.frame = g.caster.Cast(&g.frameCtx)

	if err := g.renderer.DrawFloor(screen, g.frame.Floor); err != nil {
		g.log.WithError(err).Error("draw floor")
	}
	g.renderer.DrawWalls(screen, g.frame.Walls)
	g.renderer.DrawSprites(screen, g.frame.Sprites)

	if g.cfg.Render.ShowSpriteBoxes {
		g.renderer.DrawSpriteBoxes(screen, g.frame.Sprites)
	}

	if g.showMap {
		g.minimap.Draw(screen, g.player, g.frame.Walls)
	}

	g.hud.Draw(screen)

	if g.paused {
		halfWidth := g.caster.Settings().HalfWidth()
		ebitenutil.DebugPrintAt(screen, "PAUSED", halfWidth+halfWidth/2-20, g.screenHeight/2-8)
	}
}

// Close releases GPU resources.
func (g *Game) Close() {
	g.minimap.Close()
	g.renderer.Close()
}

func (g *Game) respawn() {
	if err := copier.Copy(g.player, &g.spawn); err != nil {
		g.log.WithError(err).Error("respawn")
		return
	}
	g.player.Moved = true

	gp := g.player.GridPos()
	g.log.WithFields(logrus.Fields{"x": gp.X, "y": gp.Y}).Info("respawn")
}

func (g *Game) tickSeconds() float64 {
	return 1 / float64(ebiten.TPS())
}

func (g *Game) status() hud.Status {
	gp := g.player.GridPos()
	return hud.Status{
		Paused:  g.paused,
		Running: g.player.IsRunning,
		CellX:   int(math.Floor(gp.X)),
		CellY:   int(math.Floor(gp.Y)),
		Heading: headingDegrees(g.player.Heading()),
		Sprites: visibleElements(g.frame.Sprites),
	}
}

// headingDegrees maps a heading in radians to [0, 360).
func headingDegrees(rad float64) float64 {
	deg := math.Mod(rad*180/math.Pi, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// visibleElements counts distinct elements with at least one visible run.
func visibleElements(draws []raycast.SpriteDraw) int {
	seen := make(map[int]struct{}, len(draws))
	for _, d := range draws {
		seen[d.Element] = struct{}{}
	}
	return len(seen)
}
