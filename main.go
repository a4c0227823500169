package main

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"keyframe/anim"
	"keyframe/config"
	"keyframe/timeline"
	"keyframe/vmath"
)

// Game drives one animated quad from three keyframe timelines.
type Game struct {
	cfg config.Config

	animator *anim.Animator
	target   *anim.Transform2
	frame    anim.Frame

	// world positions reached at each position keyframe
	markers []vmath.Vec2

	// audio
	audioCtx *audio.Context
	fwdPCM   []byte
	backPCM  []byte
}

// demoAnimation builds the position, rotation and scale timelines. Values
// are deltas from the previous keyframe; rotations are unit complex numbers.
func demoAnimation() (anim.Animation, error) {
	deg := math.Pi / 180
	keys := []struct {
		tl     *timeline.Timeline
		frames []timeline.Point
	}{
		{timeline.New(), []timeline.Point{
			{Time: 0, Value: vmath.Vec2{X: 0, Y: 0}},
			{Time: 2, Value: vmath.Vec2{X: 250, Y: 0}},
			{Time: 4, Value: vmath.Vec2{X: -250, Y: 0}},
			{Time: 5, Value: vmath.Vec2{X: 50, Y: 0}},
			{Time: 7, Value: vmath.Vec2{X: -200, Y: 50}},
			{Time: 9, Value: vmath.Vec2{X: 50, Y: 100}},
		}},
		{timeline.New(), []timeline.Point{
			{Time: 0, Value: vmath.Identity},
			{Time: 10, Value: vmath.FromAngle(45 * deg)},
			{Time: 6, Value: vmath.FromAngle(-90 * deg)},
		}},
		{timeline.New(), []timeline.Point{
			{Time: 0, Value: vmath.Vec2{X: 0, Y: 0}},
			{Time: 4, Value: vmath.Vec2{X: 2, Y: 2}},
			{Time: 8, Value: vmath.Vec2{X: -2, Y: -2}},
		}},
	}
	for _, k := range keys {
		for _, p := range k.frames {
			if _, err := k.tl.Insert(p.Time, p.Value); err != nil {
				return anim.Animation{}, err
			}
		}
	}
	return anim.Animation{Position: keys[0].tl, Rotation: keys[1].tl, Scale: keys[2].tl}, nil
}

func NewGame(cfg config.Config) (*Game, error) {
	a, err := demoAnimation()
	if err != nil {
		return nil, fmt.Errorf("build timelines: %w", err)
	}

	target := anim.NewTransform2()
	animator, err := anim.NewAnimator(a, &target)
	if err != nil {
		return nil, fmt.Errorf("attach animator: %w", err)
	}
	animator.Loop = cfg.Loop
	animator.SetTimeScale(cfg.TimeScale)

	// Markers replay the position accumulation once, up front
	var markers []vmath.Vec2
	base := target.Position
	for i, p := range a.Position.Points() {
		if i > 0 {
			base = anim.Linear.Combine(base, p.Value)
		}
		markers = append(markers, base)
	}

	g := &Game{
		cfg:      cfg,
		animator: animator,
		target:   &target,
		markers:  markers,
	}
	if !cfg.Mute {
		g.audioCtx = audio.NewContext(cfg.SampleRate)
		g.fwdPCM = generateBlipPCM(cfg.SampleRate, forwardBlip)
		g.backPCM = generateBlipPCM(cfg.SampleRate, backwardBlip)
	}

	animator.Start(time.Now())
	log.Printf("[INFO] Animating %d position, %d rotation, %d scale keyframes over %.1fs (loop=%v)",
		a.Position.Len(), a.Rotation.Len(), a.Scale.Len(), animator.Duration(), cfg.Loop)
	return g, nil
}

func (g *Game) Update() error {
	now := time.Now()
	dt := 1.0 / 60.0 // Ebiten Update is 60 FPS logic

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if g.animator.Running() {
			g.animator.Stop()
		} else {
			g.animator.Resume(now)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.animator.Start(now)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyL) {
		g.animator.Loop = !g.animator.Loop
	}

	// Arrows scrub at 2x, both directions exercise the catch-up walks
	scrub := 0.0
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		scrub -= 2 * dt
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		scrub += 2 * dt
	}

	var f anim.Frame
	if scrub != 0 {
		f = g.animator.Seek(now, g.animator.Elapsed()+scrub)
	} else {
		f = g.animator.Tick(now)
	}
	// Stopped ticks repeat the previous frame
	if f.Position.Crossed > 0 && f != g.frame {
		g.playBlip(f.Backward)
	}
	g.frame = f
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Fill background
	screen.Fill(color.RGBA{0x0D, 0x0D, 0x10, 0xFF})

	origin := vmath.Vec2{X: float64(g.cfg.Width) / 2, Y: float64(g.cfg.Height) / 2}

	// Keyframe path
	for i, m := range g.markers {
		p := origin.Add(m)
		if i > 0 {
			prev := origin.Add(g.markers[i-1])
			vector.StrokeLine(screen, float32(prev.X), float32(prev.Y), float32(p.X), float32(p.Y), 1, color.RGBA{0x44, 0x44, 0x66, 0xFF}, true)
		}
		drawCross(screen, p, 6, color.RGBA{0xFF, 0xEE, 0xAA, 0xFF})
	}

	// Animated quad
	const half = 20.0
	corners := []vmath.Vec2{{X: -half, Y: -half}, {X: half, Y: -half}, {X: half, Y: half}, {X: -half, Y: half}}
	quadColor := color.RGBA{0x66, 0xFF, 0x66, 0xFF}
	if !g.frame.Position.InRange {
		quadColor = color.RGBA{0xFF, 0x66, 0x66, 0xFF}
	}
	for i := range corners {
		a := origin.Add(g.target.Apply(corners[i]))
		b := origin.Add(g.target.Apply(corners[(i+1)%len(corners)]))
		vector.StrokeLine(screen, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), 2, quadColor, true)
	}
	// heading
	c := origin.Add(g.target.Position)
	tip := origin.Add(g.target.Apply(vmath.Vec2{X: half * 1.5}))
	vector.StrokeLine(screen, float32(c.X), float32(c.Y), float32(tip.X), float32(tip.Y), 1.5, color.RGBA{0x66, 0x66, 0xFF, 0xFF}, true)

	// HUD text
	msg := "Space: pause/resume  R: restart  L: loop  Left/Right: scrub  ESC: quit\n"
	msg += fmt.Sprintf("t=%.2fs/%.1fs  loop:%v  running:%v\n", g.frame.Elapsed, g.animator.Duration(), g.animator.Loop, g.animator.Running())
	msg += fmt.Sprintf("pos:(%.1f, %.1f)  rot:%.1f°  scale:(%.2f, %.2f)",
		g.target.Position.X, g.target.Position.Y,
		g.target.Rotation.Angle()*180/math.Pi,
		g.target.Scale.X, g.target.Scale.Y)
	ebitenutil.DebugPrint(screen, msg)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.Width, g.cfg.Height
}

func drawCross(dst *ebiten.Image, p vmath.Vec2, size float64, col color.Color) {
	// Two lines crossing at p
	vector.StrokeLine(dst, float32(p.X-size), float32(p.Y), float32(p.X+size), float32(p.Y), 1.5, col, true)
	vector.StrokeLine(dst, float32(p.X), float32(p.Y-size), float32(p.X), float32(p.Y+size), 1.5, col, true)
}

func (g *Game) playBlip(backward bool) {
	if g.audioCtx == nil {
		return
	}
	pcm := g.fwdPCM
	if backward {
		pcm = g.backPCM
	}
	// Create a new player each trigger to allow overlapping blips
	pl := g.audioCtx.NewPlayerFromBytes(pcm)
	_ = pl.Rewind()
	pl.Play()
	// Let the player GC when done; ebiten stops it automatically once finished.
}

func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}

	game, err := NewGame(cfg)
	if err != nil {
		log.Fatalf("[ERROR] %v", err)
	}
	// Basic window setup
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
