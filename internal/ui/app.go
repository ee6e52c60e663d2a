// Package ui runs the viewer inside an ebiten game loop: it polls input,
// uploads decoded images to surfaces and draws each frame.
package ui

import (
	"context"
	"fmt"
	"image"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/nicky-ayoub/ebitview/internal/config"
	"github.com/nicky-ayoub/ebitview/internal/pixels"
	"github.com/nicky-ayoub/ebitview/internal/service"
	"github.com/nicky-ayoub/ebitview/internal/view"
)

// App implements ebiten.Game for a single image.
type App struct {
	cfg    *config.Config
	logger *log.Logger

	images *service.ImageService
	loader *service.Loader
	viewer *view.Viewer

	currentImage       *ebiten.Image
	currentImagePath   string // Track the source of the image in currentImage
	currentInfo        *service.ImageInfo
	placeholder        *ebiten.Image
	imagesToDeallocate []*ebiten.Image

	showHUD  bool
	viewport view.Size
}

// NewApp creates the viewer. loader may be nil, in which case LoadAsync
// decodes synchronously.
func NewApp(cfg *config.Config, logger *log.Logger, images *service.ImageService, loader *service.Loader) *App {
	return &App{
		cfg:     cfg,
		logger:  logger,
		images:  images,
		loader:  loader,
		viewer:  view.NewViewer(),
		showHUD: cfg.ShowHUD,
	}
}

// Viewer returns the view state owner.
func (a *App) Viewer() *view.Viewer { return a.viewer }

// GetImageFullPath returns the source of the currently displayed image.
func (a *App) GetImageFullPath() string {
	return a.currentImagePath
}

// Load decodes the image at path and displays it. On error the previous
// image and its view are kept.
func (a *App) Load(path string) error {
	tok := a.viewer.BeginLoad(path)
	buf, err := a.images.LoadFromPath(path)
	if err != nil {
		return a.fail(tok, err)
	}
	info, _ := a.images.GetImageInfo(path)
	return a.show(tok, buf, nil, info)
}

// LoadRaw displays an already decoded buffer, RGBA when hasAlpha is set and
// RGB otherwise.
func (a *App) LoadRaw(data []byte, w, h int, hasAlpha bool) error {
	tok := a.viewer.BeginLoad(fmt.Sprintf("raw %dx%d", w, h))
	buf, err := a.images.LoadFromRaw(data, w, h, hasAlpha)
	if err != nil {
		return a.fail(tok, err)
	}
	return a.show(tok, buf, nil, nil)
}

// LoadAsync queues path on the background loader. The result is applied by
// Update once it arrives, unless a newer load has started by then.
func (a *App) LoadAsync(ctx context.Context, path string) error {
	if a.loader == nil {
		return a.Load(path)
	}
	tok := a.viewer.BeginLoad(path)
	if err := a.loader.Submit(ctx, service.Job{Token: uint64(tok), Path: path}); err != nil {
		return a.fail(tok, fmt.Errorf("queueing %s: %w", path, err))
	}
	return nil
}

// LoadPlaceholder sets the image drawn while a load is in flight.
func (a *App) LoadPlaceholder(path string) error {
	buf, err := a.images.LoadFromPath(path)
	if err != nil {
		return err
	}
	rgba, err := pixels.Premultiply(buf)
	if err != nil {
		return err
	}
	img, err := allocateSurface(rgba, a.cfg.MaxSurfaceSize)
	if err != nil {
		return err
	}
	if a.placeholder != nil {
		a.imagesToDeallocate = append(a.imagesToDeallocate, a.placeholder)
	}
	a.placeholder = img
	return nil
}

func (a *App) fail(tok view.Token, err error) error {
	if a.viewer.LoadFailed(tok) {
		a.logger.Printf("Error loading image: %v", err)
	}
	return err
}

// show uploads buf, or its already premultiplied form rgba, and makes it
// the active image.
func (a *App) show(tok view.Token, buf *pixels.ImageBuffer, rgba *image.RGBA, info *service.ImageInfo) error {
	if rgba == nil {
		var err error
		if rgba, err = pixels.Premultiply(buf); err != nil {
			return a.fail(tok, err)
		}
	}
	surface, err := allocateSurface(rgba, a.cfg.MaxSurfaceSize)
	if err != nil {
		return a.fail(tok, err)
	}
	if err := a.viewer.ImageLoaded(tok, sizeOf(surface)); err != nil {
		surface.Deallocate()
		return a.fail(tok, err)
	}
	// The old image may still be referenced by this frame's draw; release
	// it at the start of the next update.
	if a.currentImage != nil {
		a.imagesToDeallocate = append(a.imagesToDeallocate, a.currentImage)
	}
	a.currentImage = surface
	a.currentImagePath = a.viewer.Source()
	a.currentInfo = info
	a.logger.Printf("Loaded %s (%v, scale %.3f)", a.currentImagePath, a.viewer.State().ImageSize, a.viewer.State().Scale)
	return nil
}

// drainResults applies finished background loads. Stale results are dropped.
func (a *App) drainResults() {
	if a.loader == nil {
		return
	}
	for {
		select {
		case res := <-a.loader.Results():
			tok := view.Token(res.Token)
			if !a.viewer.IsCurrent(tok) {
				a.logger.Printf("Discarding stale result for %s", res.Path)
				continue
			}
			if res.Err != nil {
				a.fail(tok, res.Err)
				continue
			}
			a.show(tok, res.Buffer, res.Pixels, res.Info)
		default:
			return
		}
	}
}

// Update processes one tick of the game loop.
func (a *App) Update() error {
	// Deallocate images that were replaced in the previous frame.
	// This is done at the start of the frame to ensure they're not in use by Draw.
	for _, img := range a.imagesToDeallocate {
		img.Deallocate()
	}
	a.imagesToDeallocate = a.imagesToDeallocate[:0]

	if !a.viewport.Empty() {
		a.viewer.Handle(view.Resize{W: a.viewport.W, H: a.viewport.H})
	}

	a.drainResults()

	input := PollInput()
	if input.Quit {
		return ebiten.Termination
	}
	if input.ToggleFullscreen {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}
	if input.ToggleHUD {
		a.showHUD = !a.showHUD
	}
	for _, ev := range input.Events() {
		a.viewer.Handle(ev)
		if in, ok := ev.(view.Inspect); ok {
			a.logInspection(in)
		}
	}
	return nil
}

// logInspection logs the image pixel found under the cursor.
func (a *App) logInspection(in view.Inspect) {
	p, ok := a.viewer.Inspected()
	if !ok {
		return
	}
	a.logger.Printf("Pixel at (%.0f, %.0f): image (%.1f, %.1f)", in.X, in.Y, p.X, p.Y)
}

// Draw renders the current frame.
func (a *App) Draw(screen *ebiten.Image) {
	dc := a.viewer.Frame()
	render(screen, a.currentImage, a.placeholder, dc)
	if a.showHUD || dc.Loading && a.placeholder == nil {
		path := a.GetImageFullPath()
		if dc.Loading {
			path = a.viewer.Source()
		}
		drawHUD(screen, hudText(path, a.viewer.State(), dc, a.currentInfo))
	}
}

// Layout records the window size and uses it as the logical screen size,
// giving a 1:1 pixel mapping.
func (a *App) Layout(outsideWidth, outsideHeight int) (screenWidth, screenHeight int) {
	a.viewport = view.Size{W: outsideWidth, H: outsideHeight}
	return outsideWidth, outsideHeight
}
