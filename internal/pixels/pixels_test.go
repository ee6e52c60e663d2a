package pixels

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPremultiplyExact(t *testing.T) {
	// every (c, a) pair must match the integer formula bit for bit
	src := make([]byte, 0, 256*256*Channels)
	for a := 0; a < 256; a++ {
		for c := 0; c < 256; c++ {
			src = append(src, byte(c), byte(255-c), byte(c/2), byte(a))
		}
	}
	buf, err := NewImageBuffer(src, 256, 256, "grid")
	if err != nil {
		t.Fatal(err)
	}
	rgba, err := Premultiply(buf)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < len(src); i += Channels {
		a := int(src[i+3])
		want := []byte{
			byte(int(src[i]) * a / 255),
			byte(int(src[i+1]) * a / 255),
			byte(int(src[i+2]) * a / 255),
			byte(a),
		}
		if d := cmp.Diff(want, rgba.Pix[i:i+4]); d != "" {
			t.Fatalf("pixel %d (-want +got):\n%s", i/Channels, d)
		}
	}
}

func TestPremultiplyKnownValues(t *testing.T) {
	buf, err := NewImageBuffer([]byte{
		200, 100, 50, 128,
		255, 255, 255, 0,
		10, 20, 30, 255,
		255, 1, 254, 1,
	}, 2, 2, "known")
	if err != nil {
		t.Fatal(err)
	}
	rgba, err := Premultiply(buf)
	if err != nil {
		t.Fatal(err)
	}
	want := []byte{
		100, 50, 25, 128,
		0, 0, 0, 0,
		10, 20, 30, 255,
		1, 0, 0, 1,
	}
	if d := cmp.Diff(want, rgba.Pix); d != "" {
		t.Errorf("premultiplied pixels (-want +got):\n%s", d)
	}
}

func TestPremultiplyRejectsEmpty(t *testing.T) {
	_, err := Premultiply(&ImageBuffer{})
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("got %v, want DecodeError", err)
	}
}

func TestByteSize(t *testing.T) {
	tests := []struct {
		w, h    int
		want    int
		wantErr bool
	}{
		{w: 2, h: 3, want: 24},
		{w: 0, h: 10, want: 0},
		{w: -1, h: 10, wantErr: true},
		{w: math.MaxInt / 2, h: 3, wantErr: true},
		{w: math.MaxInt / 4, h: 1, want: math.MaxInt / 4 * 4},
	}
	for _, tt := range tests {
		got, err := ByteSize(tt.w, tt.h)
		if (err != nil) != tt.wantErr {
			t.Errorf("ByteSize(%d, %d) error = %v, wantErr %v", tt.w, tt.h, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ByteSize(%d, %d) = %d, want %d", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestFromRaw(t *testing.T) {
	rgb := []byte{1, 2, 3, 4, 5, 6}
	buf, err := FromRaw(rgb, 2, 1, false, "rgb")
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]byte{1, 2, 3, 255, 4, 5, 6, 255}, buf.Pix); d != "" {
		t.Errorf("padded alpha (-want +got):\n%s", d)
	}

	rgba := []byte{1, 2, 3, 4}
	buf, err = FromRaw(rgba, 1, 1, true, "rgba")
	if err != nil {
		t.Fatal(err)
	}
	rgba[0] = 99
	if buf.Pix[0] != 1 {
		t.Error("buffer aliases caller data")
	}
}

func TestFromRawErrors(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		w, h     int
		hasAlpha bool
	}{
		{"short", []byte{1, 2, 3}, 2, 1, true},
		{"long rgb", []byte{1, 2, 3, 4}, 1, 1, false},
		{"zero width", nil, 0, 5, true},
		{"overflow", nil, math.MaxInt / 2, math.MaxInt / 2, true},
		{"negative", nil, -2, 2, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromRaw(tt.data, tt.w, tt.h, tt.hasAlpha, tt.name)
			var de *DecodeError
			if !errors.As(err, &de) {
				t.Fatalf("got %v, want DecodeError", err)
			}
			if de.Source != tt.name {
				t.Errorf("Source = %q, want %q", de.Source, tt.name)
			}
		})
	}
}

func TestFromPlanes(t *testing.T) {
	buf, err := FromPlanes([]byte{10, 20, 30, 40, 50, 60}, []byte{7, 8}, 1, 2, "planes")
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]byte{10, 20, 30, 7, 40, 50, 60, 8}, buf.Pix); d != "" {
		t.Errorf("merged planes (-want +got):\n%s", d)
	}
	if _, err := FromPlanes([]byte{1, 2, 3}, nil, 1, 1, "planes"); err == nil {
		t.Error("missing alpha plane accepted")
	}
}

func TestFromImage(t *testing.T) {
	gray := image.NewGray(image.Rect(5, 5, 7, 6))
	gray.SetGray(5, 5, color.Gray{Y: 40})
	gray.SetGray(6, 5, color.Gray{Y: 200})

	buf, err := FromImage(gray, "gray")
	if err != nil {
		t.Fatal(err)
	}
	if buf.Size() != image.Pt(2, 1) {
		t.Fatalf("size = %v, want (2,1)", buf.Size())
	}
	if d := cmp.Diff([]byte{40, 40, 40, 255, 200, 200, 200, 255}, buf.Pix); d != "" {
		t.Errorf("converted pixels (-want +got):\n%s", d)
	}

	nrgba := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	nrgba.Pix = []byte{100, 150, 200, 50}
	buf, err = FromImage(nrgba, "nrgba")
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, a := buf.At(0, 0)
	if d := cmp.Diff([]uint8{100, 150, 200, 50}, []uint8{r, g, b, a}); d != "" {
		t.Errorf("straight alpha lost (-want +got):\n%s", d)
	}
}

func TestFromImageNRGBASubImage(t *testing.T) {
	parent := image.NewNRGBA(image.Rect(0, 0, 2, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 2; x++ {
			parent.SetNRGBA(x, y, color.NRGBA{R: uint8(10*y + x), G: 1, B: 2, A: 128})
		}
	}
	tests := []struct {
		name string
		rect image.Rectangle
		want []byte
	}{
		{
			name: "top rows",
			rect: image.Rect(0, 0, 2, 2),
			want: []byte{0, 1, 2, 128, 1, 1, 2, 128, 10, 1, 2, 128, 11, 1, 2, 128},
		},
		{
			name: "bottom rows",
			rect: image.Rect(0, 2, 2, 4),
			want: []byte{20, 1, 2, 128, 21, 1, 2, 128, 30, 1, 2, 128, 31, 1, 2, 128},
		},
		{
			name: "left column",
			rect: image.Rect(0, 0, 1, 4),
			want: []byte{0, 1, 2, 128, 10, 1, 2, 128, 20, 1, 2, 128, 30, 1, 2, 128},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := parent.SubImage(tt.rect)
			buf, err := FromImage(sub, tt.name)
			if err != nil {
				t.Fatal(err)
			}
			if d := cmp.Diff(tt.want, buf.Pix); d != "" {
				t.Errorf("pixels (-want +got):\n%s", d)
			}
		})
	}
}

func TestFromImageEmpty(t *testing.T) {
	_, err := FromImage(image.NewRGBA(image.Rectangle{}), "empty")
	var de *DecodeError
	if !errors.As(err, &de) {
		t.Fatalf("got %v, want DecodeError", err)
	}
}

func TestErrorUnwrap(t *testing.T) {
	base := errors.New("boom")
	err := error(&SurfaceAllocationError{Width: 3, Height: 4, Err: base})
	if !errors.Is(err, base) {
		t.Error("SurfaceAllocationError does not unwrap")
	}
	if got, want := err.Error(), "allocating 3x4 surface: boom"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	err = &DecodeError{Source: "a.png", Err: base}
	if !errors.Is(err, base) {
		t.Error("DecodeError does not unwrap")
	}
}
