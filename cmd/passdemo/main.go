// Command passdemo records a scene on a canvas, renders it with the
// software backend and writes the result as a PNG.
package main

import (
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"log/slog"
	"math"
	"os"
	"runtime"

	"github.com/gogpu/compositor"
	"github.com/gogpu/compositor/backend"
	"github.com/gogpu/compositor/backend/software"
	"github.com/gogpu/compositor/canvas"
	"github.com/gogpu/compositor/entity"
	"github.com/gogpu/compositor/geom"
	"github.com/gogpu/compositor/gpu"
	"github.com/gogpu/compositor/recording"
	"github.com/gogpu/compositor/text"
)

func main() {
	var (
		output       = flag.String("out", "passdemo.png", "output file")
		size         = flag.Int("size", 256, "image width and height")
		msaa         = flag.Bool("msaa", false, "use multisampled offscreen targets")
		fetch        = flag.Bool("fetch", false, "enable framebuffer fetch")
		checkerboard = flag.Bool("checkerboard", false, "tint offscreen layers")
		workers      = flag.Int("workers", runtime.GOMAXPROCS(0), "shading goroutines")
		verbose      = flag.Bool("v", false, "log passes and print recording stats")
	)
	flag.Parse()

	if *verbose {
		compositor.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}
	if *size <= 0 {
		log.Fatalf("invalid size %d", *size)
	}

	ctx, err := backend.New(backend.Software, backend.Config{
		MSAA:             *msaa,
		FramebufferFetch: *fetch,
		Workers:          *workers,
	})
	if err != nil {
		log.Fatalf("Failed to create context: %v", err)
	}
	if c, ok := ctx.(io.Closer); ok {
		defer c.Close()
	}
	rec := recording.New(ctx)
	r := entity.NewContentContext(rec)

	s := float64(*size)
	c := canvas.New(
		canvas.WithCullRect(geom.MakeXYWH(0, 0, s, s)),
		canvas.WithOffscreenCheckerboard(*checkerboard),
	)
	drawScene(c, s)
	pic := c.EndRecordingAsPicture()

	target, err := gpu.CreateRenderTarget(rec, "Onscreen", gpu.RenderTargetConfig{
		Size:       geom.ISize{Width: *size, Height: *size},
		HasStencil: true,
	})
	if err != nil {
		log.Fatalf("Failed to create target: %v", err)
	}
	if err := pic.Render(r, target); err != nil {
		log.Fatalf("Failed to render: %v", err)
	}

	if err := writePNG(*output, target.RenderTargetTexture()); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	if *verbose {
		printStats(rec.Recording())
	}
	log.Printf("Demo saved to %s (%dx%d)\n", *output, *size, *size)
}

func drawScene(c *canvas.Canvas, s float64) {
	// Background
	bg := canvas.NewPaint(geom.White)
	bg.ColorSource = canvas.LinearGradient(geom.Pt(0, 0), geom.Pt(0, s),
		[]geom.Color{geom.RGBA(0.1, 0.2, 0.4, 1), geom.RGBA(0.5, 0.5, 0.6, 1)}, nil,
		gpu.TileClamp, geom.Identity())
	c.DrawPaint(bg)

	// Overlapping translucent circles
	c.DrawCircle(geom.Pt(s*0.3, s*0.3), s*0.18, canvas.NewPaint(geom.RGBA(1, 0.3, 0.3, 0.8)))
	c.DrawCircle(geom.Pt(s*0.42, s*0.3), s*0.18, canvas.NewPaint(geom.RGBA(0.3, 1, 0.3, 0.8)))
	c.DrawCircle(geom.Pt(s*0.36, s*0.42), s*0.18, canvas.NewPaint(geom.RGBA(0.3, 0.3, 1, 0.8)))

	// A half transparent group of disjoint shapes collapses into its parent.
	c.SaveLayer(canvas.NewPaint(geom.White.WithAlpha(0.5)), nil, nil)
	c.DrawRRect(geom.MakeXYWH(s*0.62, s*0.1, s*0.3, s*0.2), geom.Size{Width: 8, Height: 8}, canvas.NewPaint(geom.RGBA(1, 0.8, 0, 1)))
	c.DrawRect(geom.MakeXYWH(s*0.62, s*0.35, s*0.3, s*0.1), canvas.NewPaint(geom.RGBA(1, 0.5, 0, 1)))
	c.Restore()

	// Rotated squares under nested clips
	c.Save()
	c.ClipOval(geom.MakeXYWH(s*0.05, s*0.55, s*0.4, s*0.4), canvas.ClipIntersect)
	c.ClipRect(geom.MakeXYWH(s*0.2, s*0.7, s*0.1, s*0.1), canvas.ClipDifference)
	for i := 0; i < 6; i++ {
		c.Save()
		c.Translate(s*0.25, s*0.75)
		c.Rotate(float64(i) * math.Pi / 12)
		p := canvas.NewPaint(geom.RGBA(0.9, 0.9, 1, 0.35))
		c.DrawRect(geom.MakeXYWH(-s*0.15, -s*0.15, s*0.3, s*0.3), p)
		c.Restore()
	}
	c.Restore()

	// Dots along the top edge
	dots := make([]geom.Point, 8)
	for i := range dots {
		dots[i] = geom.Pt(s*0.06+float64(i)*s*0.035, s*0.04)
	}
	c.DrawPoints(dots, s*0.01, canvas.NewPaint(geom.White.WithAlpha(0.9)), canvas.PointRound)

	// Sweep gradient ring
	ring := canvas.NewPaint(geom.White)
	ring.Style = canvas.StyleStroke
	ring.StrokeWidth = s * 0.04
	ring.ColorSource = canvas.SweepGradient(geom.Pt(s*0.75, s*0.72), 0, 2*math.Pi,
		[]geom.Color{geom.Red, geom.Green, geom.Blue, geom.Red}, nil,
		gpu.TileClamp, geom.Identity())
	c.DrawCircle(geom.Pt(s*0.75, s*0.72), s*0.14, ring)

	// Frosted glass panel over the lower half
	c.SaveLayer(nil, nil, canvas.NewBlurImageFilter(6, 6, gpu.TileClamp))
	c.DrawRRect(geom.MakeXYWH(s*0.5, s*0.52, s*0.45, s*0.15), geom.Size{Width: 6, Height: 6},
		canvas.NewPaint(geom.White.WithAlpha(0.2)))
	c.Restore()

	// Label
	label := text.Shape("compositor", nil, s*0.08)
	shadow := canvas.NewPaint(geom.Black.WithAlpha(0.6))
	shadow.MaskBlur = &canvas.MaskBlur{Sigma: 2}
	c.DrawTextFrame(label, geom.Pt(s*0.53, s*0.62), shadow)
	c.DrawTextFrame(label, geom.Pt(s*0.52, s*0.61), canvas.NewPaint(geom.White))
}

func writePNG(path string, tex gpu.Texture) error {
	img, err := software.ReadPixels(tex)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printStats(rc *recording.Recording) {
	fmt.Printf("render passes: %d\n", len(rc.RenderPasses()))
	fmt.Printf("blit passes:   %d\n", len(rc.BlitPasses()))
	fmt.Printf("commands:      %d\n", rc.CommandCount())
	for _, p := range rc.RenderPasses() {
		fmt.Printf("  %-24s %4dx%-4d samples=%d commands=%d\n",
			p.Label, p.Size.Width, p.Size.Height, p.SampleCount, len(p.Commands))
	}
}
