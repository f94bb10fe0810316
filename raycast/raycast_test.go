package raycast_test

import (
	"image"
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/harbdog/raycaster-go"
	"github.com/harbdog/raycaster-go/geom"

	"wolfcast/level"
	"wolfcast/model"
	"wolfcast/raycast"
	"wolfcast/texture"
)

const (
	testScreenW = 64
	testScreenH = 48
	testHalfW   = testScreenW / 2
	planeRatio  = 0.66
)

// bordered returns a w x h wall layer with code 1 around the edge.
func bordered(w, h int) [][]int {
	g := make([][]int, h)
	for y := range g {
		g[y] = make([]int, w)
		for x := range g[y] {
			if x == 0 || y == 0 || x == w-1 || y == h-1 {
				g[y][x] = 1
			}
		}
	}
	return g
}

func filled(w, h, code int) [][]int {
	g := make([][]int, h)
	for y := range g {
		g[y] = make([]int, w)
		for x := range g[y] {
			g[y][x] = code
		}
	}
	return g
}

func newGrid(t *testing.T, wall [][]int) *level.GridMap {
	t.Helper()
	w, h := len(wall[0]), len(wall)
	g, err := level.NewGridMap(wall, filled(w, h, 0), filled(w, h, 0), 1)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

// facingX is a player looking along +X with tile size 1, so world and grid units match.
func facingX(x, y float64) *model.Player {
	return &model.Player{
		Position:   geom.Vector2{X: x, Y: y},
		Direction:  geom.Vector2{X: 1, Y: 0},
		Plane:      geom.Vector2{X: 0, Y: planeRatio},
		TileSize:   1,
		PlaneRatio: planeRatio,
	}
}

func newCaster(t *testing.T, density int) *raycast.Caster {
	t.Helper()
	c, err := raycast.NewCaster(raycast.Settings{ScreenWidth: testScreenW, ScreenHeight: testScreenH, RayDensity: density})
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func solidTexture(id int, c color.RGBA) *texture.Texture {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return &texture.Texture{ID: id, Image: img}
}

func TestNewCasterValidates(t *testing.T) {
	for _, s := range []raycast.Settings{
		{ScreenWidth: 0, ScreenHeight: 10, RayDensity: 1},
		{ScreenWidth: 63, ScreenHeight: 10, RayDensity: 1},
		{ScreenWidth: 64, ScreenHeight: 10, RayDensity: 0},
	} {
		if _, err := raycast.NewCaster(s); err == nil {
			t.Errorf("NewCaster(%+v) succeeded, want error", s)
		}
	}
}

func TestCastRayTerminates(t *testing.T) {
	const w, h = 16, 12
	grid := newGrid(t, bordered(w, h))
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < 5000; i++ {
		pos := geom.Vector2{X: 1 + rng.Float64()*(w-2), Y: 1 + rng.Float64()*(h-2)}
		angle := rng.Float64() * 2 * math.Pi
		dir := geom.Vector2{X: math.Cos(angle), Y: math.Sin(angle)}
		// exercise the exact zero components too
		switch i % 50 {
		case 0:
			dir = geom.Vector2{X: 0, Y: 1}
		case 1:
			dir = geom.Vector2{X: -1, Y: 0}
		}

		hit := raycast.CastRay(grid, pos, dir)
		if hit.Tile == 0 {
			t.Fatalf("ray from %+v along %+v escaped the bordered grid", pos, dir)
		}
		if hit.Steps > w+h {
			t.Fatalf("ray from %+v along %+v took %d steps, want <= %d", pos, dir, hit.Steps, w+h)
		}
		if math.IsNaN(hit.PerpDistance) || math.IsNaN(hit.WallX) {
			t.Fatalf("ray from %+v along %+v produced NaN: %+v", pos, dir, hit)
		}
	}
}

func TestCastRayAxisAligned(t *testing.T) {
	grid := newGrid(t, bordered(10, 10))
	tests := []struct {
		dir      geom.Vector2
		wantX    int
		wantY    int
		wantSide int
		wantDist float64
	}{
		{geom.Vector2{X: 1, Y: 0}, 9, 4, 0, 5.5},
		{geom.Vector2{X: -1, Y: 0}, 0, 4, 0, 2.5},
		{geom.Vector2{X: 0, Y: 1}, 3, 9, 1, 4.5},
		{geom.Vector2{X: 0, Y: -1}, 3, 0, 1, 3.5},
	}
	for _, tt := range tests {
		hit := raycast.CastRay(grid, geom.Vector2{X: 3.5, Y: 4.5}, tt.dir)
		if hit.MapX != tt.wantX || hit.MapY != tt.wantY || hit.Side != tt.wantSide {
			t.Errorf("dir %+v: hit cell (%d, %d) side %d, want (%d, %d) side %d",
				tt.dir, hit.MapX, hit.MapY, hit.Side, tt.wantX, tt.wantY, tt.wantSide)
		}
		if hit.PerpDistance != tt.wantDist {
			t.Errorf("dir %+v: distance %v, want %v", tt.dir, hit.PerpDistance, tt.wantDist)
		}
		if hit.WallX != 0.5 {
			t.Errorf("dir %+v: wallX %v, want 0.5", tt.dir, hit.WallX)
		}
	}
}

func TestCastRayLeavingOpenGrid(t *testing.T) {
	grid := newGrid(t, filled(4, 4, 0))
	hit := raycast.CastRay(grid, geom.Vector2{X: 1.5, Y: 1.5}, geom.Vector2{X: 1, Y: 0.2})
	if hit.Tile != 0 {
		t.Fatalf("tile = %d, want 0 for a ray leaving the grid", hit.Tile)
	}
	if hit.Steps > 8 {
		t.Errorf("steps = %d, want <= 8", hit.Steps)
	}
}

func TestWallsHaveNoFisheye(t *testing.T) {
	wall := bordered(16, 12)
	for y := range wall {
		wall[y][10] = 1
	}
	fc := &raycast.FrameContext{
		Grid:   newGrid(t, wall),
		Player: facingX(4.5, 5.5),
	}

	slices := newCaster(t, 1).CastWalls(fc)

	if len(fc.Depth) != testHalfW {
		t.Fatalf("depth buffer has %d columns, want %d", len(fc.Depth), testHalfW)
	}
	for x, d := range fc.Depth {
		if math.Abs(d-5.5) > 1e-9 {
			t.Errorf("column %d: distance %v, want 5.5", x, d)
		}
	}
	if len(slices) != testHalfW {
		t.Fatalf("slices = %d, want %d", len(slices), testHalfW)
	}
	first := slices[0]
	if first.ScreenX != testHalfW || first.Width != 1 {
		t.Errorf("first slice at x=%d width %d, want x=%d width 1", first.ScreenX, first.Width, testHalfW)
	}
	if first.Shade != 1 || first.Side != 0 {
		t.Errorf("x side hit has shade %v side %d", first.Shade, first.Side)
	}
	if first.V0 != 0 || math.Abs(first.V1-1) > 1e-12 {
		t.Errorf("fully visible wall samples V %v..%v, want 0..1", first.V0, first.V1)
	}
}

func TestWallSliceClipsTallWalls(t *testing.T) {
	wall := bordered(8, 8)
	for y := range wall {
		wall[y][4] = 2
	}
	fc := &raycast.FrameContext{Grid: newGrid(t, wall), Player: facingX(3.5, 3.5)}

	slices := newCaster(t, 1).CastWalls(fc)
	center := slices[testHalfW/2]
	if center.Distance != 0.5 || center.TextureID != 2 {
		t.Fatalf("center slice = %+v, want distance 0.5 on texture 2", center)
	}
	// line height 96 on a 48 pixel screen: the middle half of the texture shows
	if center.DrawStart != 0 || center.DrawEnd != testScreenH {
		t.Errorf("draw range %v..%v, want 0..%d", center.DrawStart, center.DrawEnd, testScreenH)
	}
	if center.LineStart != -24 || center.LineEnd != 72 {
		t.Errorf("line range %v..%v, want -24..72", center.LineStart, center.LineEnd)
	}
	if math.Abs(center.V0-0.25) > 1e-12 || math.Abs(center.V1-0.75) > 1e-12 {
		t.Errorf("V range %v..%v, want 0.25..0.75", center.V0, center.V1)
	}
}

func TestSideYWallsAreShaded(t *testing.T) {
	fc := &raycast.FrameContext{Grid: newGrid(t, bordered(8, 8)), Player: facingX(3.5, 3.5)}
	fc.Player.Direction = geom.Vector2{X: 0, Y: 1}
	fc.Player.Plane = geom.Vector2{X: -planeRatio, Y: 0}

	slices := newCaster(t, 1).CastWalls(fc)
	center := slices[testHalfW/2]
	if center.Side != 1 || center.Shade != 0.5 {
		t.Errorf("center slice side %d shade %v, want side 1 shade 0.5", center.Side, center.Shade)
	}
}

func TestRayDensityFillsEveryColumn(t *testing.T) {
	fc := &raycast.FrameContext{Grid: newGrid(t, bordered(8, 8)), Player: facingX(3.5, 3.5)}
	slices := newCaster(t, 3).CastWalls(fc)

	// 32 columns in steps of 3: 11 rays, the last one 2 columns wide
	if len(slices) != 11 {
		t.Fatalf("slices = %d, want 11", len(slices))
	}
	if last := slices[len(slices)-1]; last.Width != 2 || last.ScreenX != testHalfW+30 {
		t.Errorf("last slice at %d width %d, want at %d width 2", last.ScreenX, last.Width, testHalfW+30)
	}
	for x, d := range fc.Depth {
		if d <= 0 {
			t.Errorf("column %d left without depth", x)
		}
	}
}

func TestTextureXContinuousAtCellBoundary(t *testing.T) {
	wall := bordered(12, 8)
	for y := 1; y < 7; y++ {
		wall[y][5] = 1
	}
	grid := newGrid(t, wall)

	fromWest := raycast.CastRay(grid, geom.Vector2{X: 3.5, Y: 2.25}, geom.Vector2{X: 1, Y: 0.5})
	fromEast := raycast.CastRay(grid, geom.Vector2{X: 7.5, Y: 2.25}, geom.Vector2{X: -1, Y: 0.5})

	for name, hit := range map[string]raycast.Hit{"west": fromWest, "east": fromEast} {
		if hit.MapX != 5 || hit.MapY != 3 || hit.Side != 0 {
			t.Fatalf("%s: hit cell (%d, %d) side %d, want (5, 3) side 0", name, hit.MapX, hit.MapY, hit.Side)
		}
		if math.Abs(hit.Point.Y-3) > 1e-12 {
			t.Fatalf("%s: hit y %v, want the cell boundary 3", name, hit.Point.Y)
		}
		// 0 and 1 are the same texture edge
		if frac := math.Mod(hit.WallX, 1); frac > 1e-9 && frac < 1-1e-9 {
			t.Errorf("%s: wallX %v, want 0 mod 1", name, hit.WallX)
		}
	}
	if math.Abs(fromWest.WallX-fromEast.WallX) > 1e-9 {
		t.Errorf("wallX differs by approach: %v vs %v", fromWest.WallX, fromEast.WallX)
	}
}

func TestFloorCeilingStaysInBounds(t *testing.T) {
	const w, h = 3, 3
	wall := filled(w, h, 0)
	floor := filled(w, h, 1)
	ceiling := filled(w, h, 0)
	ceiling[1][2] = 2
	grid, err := level.NewGridMap(wall, floor, ceiling, 1)
	if err != nil {
		t.Fatal(err)
	}
	red := color.RGBA{200, 0, 0, 255}
	blue := color.RGBA{0, 0, 200, 255}
	fc := &raycast.FrameContext{
		Grid:     grid,
		Player:   facingX(1.5, 1.5),
		Textures: texture.NewTable(solidTexture(1, red), solidTexture(2, blue)),
	}

	c := newCaster(t, 1)
	buf := c.CastFloorCeiling(fc)

	if len(buf) != testHalfW*testScreenH*3 {
		t.Fatalf("buffer = %d bytes, want %d", len(buf), testHalfW*testScreenH*3)
	}
	pixel := func(x, y int) color.RGBA {
		i := (y*testHalfW + x) * 3
		return color.RGBA{buf[i], buf[i+1], buf[i+2], 255}
	}

	// just below the horizon the floor point is far outside the 3x3 grid
	if p := pixel(testHalfW/2, testScreenH/2+1); p != (color.RGBA{A: 255}) {
		t.Errorf("out of bounds floor pixel = %v, want untouched", p)
	}
	// the bottom row lands one tile ahead, inside the grid
	if p := pixel(testHalfW/2, testScreenH-1); p != red {
		t.Errorf("bottom floor pixel = %v, want red", p)
	}
	// its mirror is the ceiling of cell (2, 1)
	if p := pixel(testHalfW/2, 0); p != blue {
		t.Errorf("top ceiling pixel = %v, want blue", p)
	}
	// ceiling code 0 is skipped
	if p := pixel(0, 0); p != (color.RGBA{A: 255}) {
		t.Errorf("ceiling pixel over code 0 = %v, want untouched", p)
	}

	// the buffer is reused and cleared
	fc.Textures = texture.NewTable()
	if again := c.CastFloorCeiling(fc); &again[0] != &buf[0] || again[(testScreenH-1)*testHalfW*3] != 0 {
		t.Error("buffer must be reused and cleared between frames")
	}
}

func TestSortSprites(t *testing.T) {
	order := []int{0, 1, 2}
	dist := []float64{1, 9, 4}

	raycast.SortSprites(order, dist)

	wantDist := []float64{9, 4, 1}
	wantOrder := []int{1, 2, 0}
	for i := range wantDist {
		if dist[i] != wantDist[i] || order[i] != wantOrder[i] {
			t.Fatalf("got dist %v order %v, want dist %v order %v", dist, order, wantDist, wantOrder)
		}
	}
}

func TestSortSpritesRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for n := 0; n < 40; n++ {
		order := make([]int, n)
		dist := make([]float64, n)
		orig := make([]float64, n)
		for i := range order {
			order[i] = i
			dist[i] = rng.Float64() * 100
			orig[i] = dist[i]
		}
		raycast.SortSprites(order, dist)
		for i := 1; i < n; i++ {
			if dist[i-1] < dist[i] {
				t.Fatalf("n=%d: not descending at %d: %v", n, i, dist)
			}
		}
		for i := range order {
			if orig[order[i]] != dist[i] {
				t.Fatalf("n=%d: order does not follow distances", n)
			}
		}
	}
}

func spriteFrame(t *testing.T, elements ...model.Element) (*raycast.Caster, *raycast.FrameContext) {
	t.Helper()
	fc := &raycast.FrameContext{
		Grid:     newGrid(t, bordered(16, 12)),
		Player:   facingX(2.5, 5.5),
		Elements: elements,
	}
	c := newCaster(t, 1)
	c.CastWalls(fc)
	return c, fc
}

func element(x, y float64, id int) model.Element {
	return model.Element{
		Position:  geom.Vector2{X: x, Y: y},
		Scale:     1,
		TextureID: id,
		Color:     color.RGBA{255, 255, 255, 255},
		Anchor:    raycaster.AnchorCenter,
	}
}

func TestSpriteProjection(t *testing.T) {
	c, fc := spriteFrame(t, element(6.5, 5.5, 6))

	draws := c.CastSprites(fc)
	if len(draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(draws))
	}
	d := draws[0]
	// depth 4 on a 48 pixel screen: a 12 pixel billboard centered in the right half
	if math.Abs(d.Depth-4) > 1e-12 || math.Abs(d.Height-12) > 1e-9 {
		t.Errorf("depth %v height %v, want 4 and 12", d.Depth, d.Height)
	}
	if d.X0 != 42 || d.X1 != 54 {
		t.Errorf("columns %d..%d, want 42..54", d.X0, d.X1)
	}
	if math.Abs(d.U0) > 1e-9 || math.Abs(d.U1-1) > 1e-9 {
		t.Errorf("U %v..%v, want 0..1", d.U0, d.U1)
	}
	if math.Abs(d.Top-18) > 1e-9 {
		t.Errorf("top %v, want 18", d.Top)
	}
	if d.TextureID != 6 || d.Element != 0 {
		t.Errorf("draw = %+v", d)
	}
}

func TestSpriteOccludedPerColumn(t *testing.T) {
	c, fc := spriteFrame(t, element(6.5, 5.5, 6))
	// a nearer wall covers screen columns 46..49
	for x := 46; x < 50; x++ {
		fc.Depth[x-testHalfW] = 1
	}

	draws := c.CastSprites(fc)
	if len(draws) != 2 {
		t.Fatalf("draws = %d, want 2 runs around the occluder", len(draws))
	}
	left, right := draws[0], draws[1]
	if left.X0 != 42 || left.X1 != 46 || right.X0 != 50 || right.X1 != 54 {
		t.Errorf("runs %d..%d and %d..%d, want 42..46 and 50..54", left.X0, left.X1, right.X0, right.X1)
	}
	if math.Abs(left.U1-4.0/12) > 1e-9 || math.Abs(right.U0-8.0/12) > 1e-9 {
		t.Errorf("U split at %v and %v, want 1/3 and 2/3", left.U1, right.U0)
	}
}

func TestSpriteBehindWallIsHidden(t *testing.T) {
	c, fc := spriteFrame(t, element(6.5, 5.5, 6))
	for i := range fc.Depth {
		fc.Depth[i] = 3
	}
	if draws := c.CastSprites(fc); len(draws) != 0 {
		t.Fatalf("draws = %d, want 0", len(draws))
	}
}

func TestSpriteBehindCameraIsCulled(t *testing.T) {
	c, fc := spriteFrame(t, element(1.5, 5.5, 6))
	if draws := c.CastSprites(fc); len(draws) != 0 {
		t.Fatalf("draws = %d, want 0 for a sprite behind the camera", len(draws))
	}
}

func TestSpritePartlyOffScreen(t *testing.T) {
	// lateral offset equal to depth * plane: the center lands on the left edge of the view
	c, fc := spriteFrame(t, element(6.5, 5.5-4*planeRatio, 6))

	draws := c.CastSprites(fc)
	if len(draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(draws))
	}
	d := draws[0]
	if d.X0 != testHalfW {
		t.Errorf("X0 = %d, want clamped to %d", d.X0, testHalfW)
	}
	if math.Abs(d.U0-0.5) > 1e-6 {
		t.Errorf("U0 = %v, want 0.5 (only the right half is visible)", d.U0)
	}
}

func TestSpritesDrawFarthestFirst(t *testing.T) {
	c, fc := spriteFrame(t, element(4.5, 5.5, 6), element(8.5, 5.5, 7))

	draws := c.CastSprites(fc)
	if len(draws) != 2 {
		t.Fatalf("draws = %d, want 2", len(draws))
	}
	if draws[0].Element != 1 || draws[1].Element != 0 {
		t.Errorf("draw order %d, %d, want 1, 0", draws[0].Element, draws[1].Element)
	}
}

func TestSpriteAnchors(t *testing.T) {
	tests := []struct {
		anchor  raycaster.SpriteAnchor
		wantTop float64
	}{
		// depth 4: full size 12, scaled size 6, horizon at 24
		{raycaster.AnchorCenter, 21},
		{raycaster.AnchorBottom, 24},
		{raycaster.AnchorTop, 18},
	}
	for _, tt := range tests {
		e := element(6.5, 5.5, 6)
		e.Scale = 0.5
		e.Anchor = tt.anchor
		c, fc := spriteFrame(t, e)

		draws := c.CastSprites(fc)
		if len(draws) != 1 {
			t.Fatalf("anchor %v: draws = %d, want 1", tt.anchor, len(draws))
		}
		if math.Abs(draws[0].Top-tt.wantTop) > 1e-9 {
			t.Errorf("anchor %v: top %v, want %v", tt.anchor, draws[0].Top, tt.wantTop)
		}
	}
}

func TestCastRunsAllStages(t *testing.T) {
	c, fc := spriteFrame(t, element(6.5, 5.5, 6))
	frame := c.Cast(fc)
	if len(frame.Walls) == 0 || len(frame.Floor) == 0 || len(frame.Sprites) != 1 {
		t.Errorf("frame = %d walls, %d floor bytes, %d sprites", len(frame.Walls), len(frame.Floor), len(frame.Sprites))
	}
}
