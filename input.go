package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"wolfcast/model"
)

var keyBindings = map[model.Key][]ebiten.Key{
	model.KeyForward:     {ebiten.KeyW, ebiten.KeyUp},
	model.KeyBackward:    {ebiten.KeyS, ebiten.KeyDown},
	model.KeyRotateLeft:  {ebiten.KeyA, ebiten.KeyLeft},
	model.KeyRotateRight: {ebiten.KeyD, ebiten.KeyRight},
	model.KeyStrafeLeft:  {ebiten.KeyQ},
	model.KeyStrafeRight: {ebiten.KeyE},
	model.KeySprint:      {ebiten.KeyShift},
}

// pollKeys fills the key-state table from the keyboard.
func pollKeys(in *model.InputState) {
	for k, keys := range keyBindings {
		pressed := false
		for _, key := range keys {
			if ebiten.IsKeyPressed(key) {
				pressed = true
				break
			}
		}
		in.Set(k, pressed)
	}
}

// handleInput processes the toggles and polls movement keys. It returns
// ebiten.Termination when the game should exit.
func (g *Game) handleInput() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	// if p, pause game
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paused = !g.paused
		g.input.Reset()
		g.log.WithField("paused", g.paused).Debug("pause toggled")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		g.showMap = !g.showMap
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.hud.Visible = !g.hud.Visible
	}

	if g.paused {
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.respawn()
	}

	pollKeys(&g.input)
	return nil
}
