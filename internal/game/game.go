// Package game hosts the circle selector in an ebiten window with a few
// demo controls around it.
package game

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/circle-selector/internal/circle"
	"github.com/iburimskiy/circle-selector/internal/config"
	"github.com/iburimskiy/circle-selector/internal/frame"
	"github.com/iburimskiy/circle-selector/internal/icons"
	"github.com/iburimskiy/circle-selector/internal/logging"
	"github.com/iburimskiy/circle-selector/internal/sound"
)

var background = color.RGBA{R: 18, G: 20, B: 28, A: 255}

// Options are the collaborators of a Game.
type Options struct {
	Config      *config.Config
	Density     circle.Density
	Icons       circle.IconProvider
	DefaultIcon image.Image
	// Player is optional; nil disables click sounds
	Player *sound.Player
	Logger *logging.Logger
}

type reload struct {
	cfg *config.Config
	err error
}

// Game is the ebiten.Game running the selector demo.
type Game struct {
	cfg     *config.Config
	density circle.Density
	log     *logging.Logger

	view    *circle.View
	sched   *frame.Scheduler
	surface *surface
	player  *sound.Player

	// offscreen copy of the widget, redrawn on invalidate
	canvas     *ebiten.Image
	canvasSize image.Point
	dirty      bool

	screenW, screenH int
	area             image.Rectangle // space available to the widget
	origin           image.Point     // widget top-left on screen

	addButton   button
	fileButton  button
	colorButton button
	soundButton button
	radius      slider
	levelRect   image.Rectangle

	tracking    bool
	activeTouch ebiten.TouchID
	touching    bool
	touchIDs    []ebiten.TouchID

	nextIcon int
	reloads  chan reload
	status   string
	lastErr  error
}

// New creates a Game showing the configured items.
func New(opts Options) (*Game, error) {
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	log := opts.Logger
	if log == nil {
		log = logging.NopLogger()
	}

	surf, err := newSurface()
	if err != nil {
		return nil, fmt.Errorf("failed to create surface: %w", err)
	}

	g := &Game{
		cfg:     opts.Config,
		density: opts.Density,
		log:     log.WithComponent("game"),
		sched:   frame.New(nil),
		surface: surf,
		player:  opts.Player,
		dirty:   true,
		reloads: make(chan reload, 1),
		status:  "Tap a sector to toggle it",
	}

	g.view = circle.New(opts.Config.Circle.ToCircle(opts.Density), circle.Deps{
		Icons:       opts.Icons,
		DefaultIcon: opts.DefaultIcon,
		Scheduler:   g.sched,
		Invalidate:  func() { g.dirty = true },
		Density:     opts.Density,
		Logger:      log,
	})
	g.view.SetItems(opts.Config.CircleItems())
	g.view.OnToggle = g.onToggle
	g.view.OnClick = g.onClick

	g.addButton = button{label: "Add part"}
	g.fileButton = button{label: "Icon file"}
	g.colorButton = button{label: "Color"}
	g.soundButton = button{label: "Sound"}
	g.radius = slider{min: config.SliderMinDp, max: config.SliderMaxDp, value: opts.Config.Circle.RadiusDp}

	return g, nil
}

// View returns the hosted widget.
func (g *Game) View() *circle.View { return g.view }

// QueueReload hands a reloaded configuration to the UI loop. It is safe
// to call from any goroutine.
func (g *Game) QueueReload(cfg *config.Config, err error) {
	select {
	case g.reloads <- reload{cfg: cfg, err: err}:
	default:
		g.log.Warn("config reload dropped, previous one still pending")
	}
}

func (g *Game) onToggle(index int, checked bool) {
	g.log.Debug("sector toggled", "index", index, "checked", checked)
	if g.player != nil && g.cfg.Sound.Enabled {
		g.player.Click(checked)
	}
	state := "unchecked"
	if checked {
		state = "checked"
	}
	g.status = fmt.Sprintf("Sector %d %s", index, state)
}

func (g *Game) onClick(items []circle.Item) {
	g.log.Info("click", "items", items)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.applyReloads()

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		c := randomColor()
		g.view.SetColor(c)
		g.status = "Color " + hexColor(c)
	}

	g.handleMouse()
	g.handleTouches()

	g.sched.Advance()
	return nil
}

func (g *Game) applyReloads() {
	for {
		select {
		case r := <-g.reloads:
			if r.err != nil {
				g.lastErr = fmt.Errorf("config reload: %w", r.err)
				g.log.Error("config reload failed", "error", r.err)
				continue
			}
			g.applyConfig(r.cfg)
		default:
			return
		}
	}
}

// applyConfig pushes the reloadable circle attributes into the view.
func (g *Game) applyConfig(cfg *config.Config) {
	cc := cfg.Circle.ToCircle(g.density)
	g.view.SetColor(cc.Color)
	g.view.SetShadowRadius(cc.ShadowRadius)
	g.view.SetScaleOnClick(cc.ScaleOnClick)
	if cfg.Circle.RadiusDp != g.cfg.Circle.RadiusDp {
		g.view.SetRadius(cc.Radius)
		g.relayout()
	}
	if g.player != nil {
		g.player.SetVolume(cfg.Sound.Volume)
	}

	g.cfg = cfg
	g.lastErr = nil
	g.status = "Config reloaded"
	g.log.Info("config reloaded", "color", cfg.Circle.Color.String(), "radius_dp", cfg.Circle.RadiusDp)
}

func (g *Game) handleMouse() {
	mx, my := ebiten.CursorPosition()
	justPressed := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	justReleased := inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)

	if g.addButton.update(mx, my, justPressed, justReleased) {
		g.addPart()
	}
	if g.fileButton.update(mx, my, justPressed, justReleased) {
		g.addIconFromFile()
	}
	if g.colorButton.update(mx, my, justPressed, justReleased) {
		g.chooseColor()
	}
	if g.soundButton.update(mx, my, justPressed, justReleased) {
		g.chooseSound()
	}
	if v, done := g.radius.update(mx, my, justPressed, justReleased); done {
		g.view.SetRadius(g.density.Px(v))
		g.relayout()
	}

	if justPressed {
		g.pointerDown(mx, my)
	}
	if justReleased {
		g.pointerUp(mx, my)
	}
}

func (g *Game) handleTouches() {
	g.touchIDs = inpututil.AppendJustPressedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		if g.touching {
			break
		}
		x, y := ebiten.TouchPosition(id)
		if g.pointerDown(x, y) {
			g.activeTouch, g.touching = id, true
		}
	}

	g.touchIDs = inpututil.AppendJustReleasedTouchIDs(g.touchIDs[:0])
	for _, id := range g.touchIDs {
		if g.touching && id == g.activeTouch {
			x, y := inpututil.TouchPositionInPreviousTick(id)
			g.pointerUp(x, y)
			g.touching = false
		}
	}
}

// pointerDown starts a gesture when (x, y) lies on the widget.
func (g *Game) pointerDown(x, y int) bool {
	p := image.Pt(x, y)
	if !p.In(image.Rectangle{Min: g.origin, Max: g.origin.Add(g.canvasSize)}) {
		return false
	}
	local := p.Sub(g.origin)
	g.tracking = g.view.PointerDown(float64(local.X), float64(local.Y))
	return g.tracking
}

func (g *Game) pointerUp(x, y int) {
	if !g.tracking {
		return
	}
	g.tracking = false
	local := image.Pt(x, y).Sub(g.origin)
	if _, ok := g.view.PointerUp(float64(local.X), float64(local.Y)); !ok {
		g.status = "Missed"
	}
}

func (g *Game) addPart() {
	names := icons.MaterialNames()
	name := names[g.nextIcon%len(names)]
	g.nextIcon++
	g.view.AddItem(circle.Item{Icon: circle.IconRef(icons.SchemeMaterial + ":" + name)})
	g.status = fmt.Sprintf("Added %s (%d parts)", name, len(g.view.Items()))
}

func (g *Game) addIconFromFile() {
	path, ok, err := pickIconFile()
	if err != nil {
		g.lastErr = err
		g.log.Error("icon dialog failed", "error", err)
		return
	}
	if !ok {
		return
	}
	g.view.AddItem(circle.Item{Icon: circle.IconRef(icons.SchemeFile + ":" + path)})
	g.status = "Added icon " + path
}

func (g *Game) chooseColor() {
	c, ok, err := pickColor(g.view.Color())
	if err != nil {
		// no dialog backend, fall back to a random color
		g.log.Warn("color dialog failed, using a random color", "error", err)
		c, ok = randomColor(), true
	}
	if !ok {
		return
	}
	g.view.SetColor(c)
	g.status = "Color " + hexColor(c)
}

func (g *Game) chooseSound() {
	if g.player == nil {
		g.lastErr = errors.New("sound is disabled")
		return
	}
	path, ok, err := pickClickSound()
	if err != nil {
		g.lastErr = err
		g.log.Error("sound dialog failed", "error", err)
		return
	}
	if !ok {
		return
	}
	clip, err := sound.LoadClip(nil, path)
	if err != nil {
		g.lastErr = err
		g.log.Error("failed to load click sound", "path", path, "error", err)
		return
	}
	g.player.SetClip(clip)
	g.status = fmt.Sprintf("Click sound %s (%v)", path, clip.Duration())
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)

	if g.canvasSize.X > 0 && g.canvasSize.Y > 0 {
		if g.canvas == nil || g.canvas.Bounds().Size() != g.canvasSize {
			if g.canvas != nil {
				g.canvas.Deallocate()
			}
			g.canvas = ebiten.NewImage(g.canvasSize.X, g.canvasSize.Y)
			g.dirty = true
		}
		if g.dirty {
			g.surface.render(g.canvas, g.view)
			g.dirty = false
		}
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(float64(g.origin.X), float64(g.origin.Y))
		screen.DrawImage(g.canvas, op)
	}

	g.addButton.draw(screen)
	g.fileButton.draw(screen)
	g.colorButton.draw(screen)
	g.soundButton.draw(screen)
	g.radius.draw(screen, "Radius dp")

	if g.player != nil {
		drawLevel(screen, g.levelRect, g.player.Level())
	}

	status := g.status
	if g.lastErr != nil {
		status += " | Error: " + g.lastErr.Error()
	}
	ebitenutil.DebugPrintAt(screen, status, g.px(config.StatusPadding), g.screenH-charHeight-g.px(config.StatusPadding))
}

// Layout implements ebiten.Game. The screen is rendered at device
// resolution, so dp lengths are converted with the monitor density.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := int(math.Ceil(float64(outsideWidth) * float64(g.density.Px(1))))
	h := int(math.Ceil(float64(outsideHeight) * float64(g.density.Px(1))))
	if w != g.screenW || h != g.screenH {
		g.screenW, g.screenH = w, h
		g.arrange()
	}
	return w, h
}

func (g *Game) px(dp float64) int {
	return int(math.Round(g.density.Px(dp)))
}

// arrange places the controls and gives the rest of the screen to the widget.
func (g *Game) arrange() {
	x, y := g.px(config.ButtonX), g.px(config.ButtonY)
	bw, bh, gap := g.px(config.ButtonWidth), g.px(config.ButtonHeight), g.px(config.ButtonGap)

	for i, b := range []*button{&g.addButton, &g.fileButton, &g.colorButton, &g.soundButton} {
		bx := x + i*(bw+gap)
		b.rect = image.Rect(bx, y, bx+bw, y+bh)
	}

	sy := y + bh + gap
	g.radius.rect = image.Rect(x, sy, g.screenW-x, sy+g.px(config.SliderHeight))
	g.levelRect = image.Rect(g.screenW-x-g.px(60), g.screenH-g.px(config.StatusPadding)-g.px(10), g.screenW-x, g.screenH-g.px(config.StatusPadding))

	top := g.radius.rect.Max.Y + charHeight + gap
	bottom := g.screenH - charHeight - 2*g.px(config.StatusPadding)
	g.area = image.Rect(0, top, g.screenW, max(top, bottom))

	g.relayout()
}

// relayout measures the widget against the free area, lays it out and
// centers it there.
func (g *Game) relayout() {
	aw, ah := float64(g.area.Dx()), float64(g.area.Dy())
	if aw <= 0 || ah <= 0 {
		return
	}
	w, h := g.view.Measure(
		circle.MeasureSpec{Mode: circle.AtMost, Size: aw},
		circle.MeasureSpec{Mode: circle.AtMost, Size: ah},
	)
	g.view.Layout(w, h)

	g.canvasSize = image.Pt(int(math.Ceil(w)), int(math.Ceil(h)))
	g.origin = g.area.Min.Add(image.Pt((g.area.Dx()-g.canvasSize.X)/2, (g.area.Dy()-g.canvasSize.Y)/2))
	g.radius.value = g.density.Dp(g.view.Radius())
	g.dirty = true
}
