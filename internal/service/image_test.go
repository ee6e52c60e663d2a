package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/nicky-ayoub/ebitview/internal/pixels"
	"golang.org/x/image/bmp"
)

func writePNG(t *testing.T, dir string, w, h int) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: 7, A: 128})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "test.png")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadFromPathPNG(t *testing.T) {
	path := writePNG(t, t.TempDir(), 4, 3)

	buf, err := NewImageService().LoadFromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	if buf.Size() != image.Pt(4, 3) {
		t.Fatalf("size = %v, want (4,3)", buf.Size())
	}
	r, g, b, a := buf.At(3, 2)
	if d := cmp.Diff([]uint8{3, 2, 7, 128}, []uint8{r, g, b, a}); d != "" {
		t.Errorf("pixel (3,2) (-want +got):\n%s", d)
	}
}

func TestLoadFromPathBMP(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	img.Set(1, 1, color.RGBA{R: 9, G: 8, B: 7, A: 255})
	var data bytes.Buffer
	if err := bmp.Encode(&data, img); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "test.bmp")
	if err := os.WriteFile(path, data.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	buf, err := NewImageService().LoadFromPath(path)
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, a := buf.At(1, 1)
	if d := cmp.Diff([]uint8{9, 8, 7, 255}, []uint8{r, g, b, a}); d != "" {
		t.Errorf("pixel (1,1) (-want +got):\n%s", d)
	}
}

func TestLoadFromPathErrors(t *testing.T) {
	dir := t.TempDir()
	garbage := filepath.Join(dir, "garbage.png")
	if err := os.WriteFile(garbage, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}

	for _, path := range []string{filepath.Join(dir, "missing.png"), garbage, dir} {
		_, err := NewImageService().LoadFromPath(path)
		var de *pixels.DecodeError
		if !errors.As(err, &de) {
			t.Errorf("LoadFromPath(%q) = %v, want DecodeError", path, err)
			continue
		}
		if de.Source != path {
			t.Errorf("Source = %q, want %q", de.Source, path)
		}
	}
}

func TestLoadFromRaw(t *testing.T) {
	is := NewImageService()
	buf, err := is.LoadFromRaw([]byte{1, 2, 3}, 1, 1, false)
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]byte{1, 2, 3, 255}, buf.Pix); d != "" {
		t.Errorf("pixels (-want +got):\n%s", d)
	}
	var de *pixels.DecodeError
	if _, err := is.LoadFromRaw(nil, 1<<40, 1<<40, true); !errors.As(err, &de) {
		t.Errorf("overflowing raw load = %v, want DecodeError", err)
	}
	if _, err := is.LoadFromPlanes([]byte{1, 2, 3}, []byte{4}, 1, 1); err != nil {
		t.Errorf("LoadFromPlanes: %v", err)
	}
}

func TestGetImageInfo(t *testing.T) {
	path := writePNG(t, t.TempDir(), 5, 6)
	info, err := NewImageService().GetImageInfo(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Format != "png" || info.Width != 5 || info.Height != 6 {
		t.Errorf("info = %+v, want png 5x6", info)
	}
	if info.Size == 0 {
		t.Error("file size not recorded")
	}
	if len(info.EXIFData) != 0 {
		t.Errorf("unexpected EXIF data %v", info.EXIFData)
	}
}

func TestLoader(t *testing.T) {
	dir := t.TempDir()
	path := writePNG(t, dir, 2, 2)

	l := NewLoader(NewImageService())
	defer l.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := l.Submit(ctx, Job{Token: 1, Path: filepath.Join(dir, "nope.png")}); err != nil {
		t.Fatal(err)
	}
	if err := l.Submit(ctx, Job{Token: 2, Path: path}); err != nil {
		t.Fatal(err)
	}

	var got []Result
	for len(got) < 2 {
		select {
		case res := <-l.Results():
			got = append(got, res)
		case <-ctx.Done():
			t.Fatal("timed out waiting for results")
		}
	}

	var de *pixels.DecodeError
	if got[0].Token != 1 || !errors.As(got[0].Err, &de) {
		t.Errorf("first result = %+v, want token 1 with decode error", got[0])
	}
	if got[1].Token != 2 || got[1].Err != nil {
		t.Fatalf("second result = %+v, want token 2 without error", got[1])
	}
	if got[1].Pixels.Bounds() != image.Rect(0, 0, 2, 2) {
		t.Errorf("pixels bounds = %v", got[1].Pixels.Bounds())
	}
	// 7*128/255 = 3
	if b := got[1].Pixels.Pix[2]; b != 3 {
		t.Errorf("premultiplied blue = %d, want 3", b)
	}
	if got[1].Info == nil || got[1].Info.Format != "png" {
		t.Errorf("info = %+v, want png metadata", got[1].Info)
	}
}

func TestLoaderSubmitAfterClose(t *testing.T) {
	l := NewLoader(NewImageService())
	l.Close()
	l.Close()
	if err := l.Submit(context.Background(), Job{Token: 1}); !errors.Is(err, context.Canceled) {
		t.Errorf("Submit on closed loader = %v, want context.Canceled", err)
	}
}
