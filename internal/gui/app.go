package gui

import (
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/attractors/internal/audio"
	"github.com/san-kum/attractors/internal/config"
	"github.com/san-kum/attractors/internal/gui/widget"
	"github.com/san-kum/attractors/internal/physics"
	"github.com/san-kum/attractors/internal/sim"
	"github.com/san-kum/attractors/internal/sonify"
	"github.com/san-kum/attractors/internal/viz"
)

// Theme Colors (Monochrome Hyper-Minimalist)
var (
	ColBg      = rl.NewColor(0, 0, 0, 255)       // Black, as the trail gradient expects
	ColAccent  = rl.NewColor(180, 180, 180, 255) // Soft White
	ColSelect  = rl.NewColor(255, 255, 255, 255) // Bright White
	ColText    = rl.NewColor(140, 140, 140, 255) // Neutral Gray
	ColTextDim = rl.NewColor(60, 60, 60, 255)    // Dark Gray (Subtle)
)

type App struct {
	Ctrl   *sim.Controller
	Logger *slog.Logger
	Width  int32
	Height int32
	Font   rl.Font

	InMenu      bool
	Selected    int
	ShowSliders bool
	ShowHead    bool

	Sliders []widget.Slider
	Editor  *widget.Editor
	Theme   viz.Theme
	Audio   *audio.Player

	pointer widget.Pointer
	segs    []sim.Segment
}

// initWindow opens the window at the configured screen size, targets 60
// FPS and frees Escape for the menu.
func initWindow(w, h int32) {
	rl.SetConfigFlags(rl.FlagMsaa4xHint)
	rl.InitWindow(w, h, "strange attractors")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// loadFont loads the Liberation Mono font from the system path and enables
// bilinear filtering. raylib falls back to its built-in font when the file
// is missing.
func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp wraps ctrl. With interactive set the window opens on the family
// menu, otherwise the controller's active family runs immediately.
func NewApp(ctrl *sim.Controller, cfg *config.Config, logger *slog.Logger, interactive bool) *App {
	w, h := float64(cfg.Screen.Width), float64(cfg.Screen.Height)
	return &App{
		Ctrl:     ctrl,
		Logger:   logger,
		Width:    int32(cfg.Screen.Width),
		Height:   int32(cfg.Screen.Height),
		Font:     loadFont(),
		InMenu:   interactive,
		Selected: int(ctrl.Active()),
		ShowHead: cfg.Render.HeadMarker,
		Sliders:  widget.Row(sim.ParamRanges(), w, h),
		Editor:   widget.NewEditor(ctrl.Gradient(), w, h),
		Theme:    viz.ThemeClassic,
		Audio:    audio.NewPlayer(sonify.NewSynth()),
	}
}

// Run opens the window and blocks until it is closed. The observed
// bounds and the midpoint estimated from them are logged on exit, ready
// to paste into a family's midpoint setting.
func Run(ctrl *sim.Controller, cfg *config.Config, logger *slog.Logger, interactive bool) {
	initWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height))
	defer rl.CloseWindow()

	app := NewApp(ctrl, cfg, logger, interactive)
	app.RunLoop()
	app.Audio.Stop()

	b := ctrl.Bounds()
	logger.Info("estimated midpoint",
		"family", ctrl.Active().String(),
		"midpoint", b.Midpoint().String(),
		"bounds", b.String(),
	)
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if !a.Update() {
			return
		}
		a.Draw()
	}
}

// Update handles one frame of input and reports false once the user quits.
func (a *App) Update() bool {
	if rl.IsKeyPressed(rl.KeyQ) {
		return false
	}
	a.readPointer()

	if a.InMenu {
		a.updateMenu()
		return true
	}

	if rl.IsKeyPressed(rl.KeyEscape) {
		a.InMenu = true
		a.Selected = int(a.Ctrl.Active())
		return true
	}

	for i, key := range []int32{rl.KeyOne, rl.KeyTwo, rl.KeyThree, rl.KeyFour, rl.KeyFive, rl.KeySix} {
		if rl.IsKeyPressed(key) {
			a.switchTo(physics.Family(i))
		}
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.switchTo(a.Ctrl.Active())
	}
	if rl.IsKeyPressed(rl.KeyS) {
		a.ShowSliders = !a.ShowSliders
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHead = !a.ShowHead
	}
	if rl.IsKeyPressed(rl.KeyT) {
		a.Theme = viz.NextTheme(a.Theme.Name)
		a.setGradient(a.Theme.Trail)
	}
	if rl.IsKeyPressed(rl.KeyA) {
		a.toggleAudio()
	}
	if rl.IsKeyPressed(rl.KeyC) {
		if a.Ctrl.TogglePause() == sim.Paused {
			a.Editor.Gradient = a.Ctrl.Gradient()
		}
	}

	if a.Ctrl.State() == sim.Paused {
		if a.Editor.Drag(a.pointer) {
			a.Ctrl.SetGradient(a.Editor.Gradient)
		}
		return true
	}

	if a.ShowSliders {
		ranges := sim.ParamRanges()
		for i := range a.Sliders {
			if v, ok := a.Sliders[i].Drag(a.pointer); ok {
				a.Ctrl.Set(ranges[i].Param, v)
			}
		}
	}

	a.segs = a.Ctrl.Frame()
	if a.Audio.Active() {
		a.Audio.Synth.SetDrive(sonify.Drive(a.Ctrl.Head(), a.Ctrl.Bounds()))
	}
	return true
}

func (a *App) toggleAudio() {
	if a.Audio.Active() {
		a.Audio.Stop()
		return
	}
	if err := a.Audio.Start(); err != nil {
		a.Logger.Warn("sonification unavailable", "error", err)
	}
}

func (a *App) updateMenu() {
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.Selected = (a.Selected + 1) % physics.Count
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.Selected = (a.Selected + physics.Count - 1) % physics.Count
	}
	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySpace) {
		a.switchTo(physics.Family(a.Selected))
		a.InMenu = false
	}
}

func (a *App) switchTo(f physics.Family) {
	if err := a.Ctrl.Reset(f); err != nil {
		a.Logger.Warn("switch family", "error", err)
	}
	a.segs = nil
}

func (a *App) setGradient(g viz.Gradient) {
	a.Ctrl.SetGradient(g)
	a.Editor.Gradient = a.Ctrl.Gradient()
}

func (a *App) readPointer() {
	pos := rl.GetMousePosition()
	a.pointer.X, a.pointer.Y = float64(pos.X), float64(pos.Y)
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		a.pointer.DownX, a.pointer.DownY = a.pointer.X, a.pointer.Y
	}
	a.pointer.Down = rl.IsMouseButtonDown(rl.MouseLeftButton)
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	switch {
	case a.InMenu:
		a.drawMenu()
	case a.Ctrl.State() == sim.Paused:
		a.drawEditor()
	default:
		a.drawTrail()
		if a.ShowSliders {
			a.drawSliders()
		}
		a.drawHUD()
	}

	rl.EndDrawing()
}

func (a *App) drawHUD() {
	a.drawText(a.Ctrl.Active().String(), 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %d points", a.Ctrl.Len()), 30, 60, 14, ColText)

	if a.Audio.Active() {
		a.drawText("AUDIO", int(a.Width)-90, 30, 16, ColAccent)
	}

	a.drawText("[1-6] FAMILY  [R] RESTART  [S] SLIDERS  [C] COLOUR  [T] THEME  [H] HEAD  [A] AUDIO  [ESC] MENU  [Q] QUIT",
		int(a.Width)-850, int(a.Height)-40, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 30, int(a.Height)-40, 14, ColTextDim)
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) drawMenu() {
	a.drawText("strange attractors", 50, 50, 40, ColSelect)
	a.drawText("Select Attractor", 50, 100, 16, ColTextDim)

	y := 160
	for _, f := range physics.Families() {
		if int(f) == a.Selected {
			a.drawText(fmt.Sprintf("> %d %s", int(f)+1, f), 50, y, 20, ColSelect)
		} else {
			a.drawText(fmt.Sprintf("  %d %s", int(f)+1, f), 50, y, 20, ColText)
		}
		y += 28
	}

	a.drawText("ARROWS: NAVIGATE  ENTER: SELECT  Q: QUIT", int(a.Width)-430, int(a.Height)-40, 14, ColTextDim)
}
