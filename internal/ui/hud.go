package ui

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/nicky-ayoub/ebitview/internal/service"
	"github.com/nicky-ayoub/ebitview/internal/view"
)

const (
	hudLineHeight = 16
	hudCharWidth  = 6
	hudPadding    = 4
)

var hudBackground = color.RGBA{A: 0xa0}

// hudText builds the overlay text for the current frame.
func hudText(path string, st view.State, dc view.DrawCall, info *service.ImageInfo) string {
	var b strings.Builder
	switch {
	case dc.Loading:
		fmt.Fprintf(&b, "Loading: %s\n", path)
	case !dc.Image:
		b.WriteString("No image selected or image failed to load.\n")
	default:
		fmt.Fprintf(&b, "Path: %s\n", path)
	}
	if dc.Image {
		fmt.Fprintf(&b, "Size: %v\nScale: %.3f\nPan: %v\n", st.ImageSize, st.Scale, st.Pan())
	}
	if info != nil {
		fmt.Fprintf(&b, "Format: %s\nBytes: %d\n", info.Format, info.Size)
		keys := make([]string, 0, len(info.EXIFData))
		for k := range info.EXIFData {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "%s: %s\n", k, info.EXIFData[k])
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}

// drawHUD prints text in the top-left corner over a translucent box.
func drawHUD(screen *ebiten.Image, text string) {
	lines := strings.Split(text, "\n")
	width := 0
	for _, l := range lines {
		if len(l) > width {
			width = len(l)
		}
	}
	w := float32(width*hudCharWidth + 2*hudPadding)
	h := float32(len(lines)*hudLineHeight + 2*hudPadding)
	vector.DrawFilledRect(screen, 0, 0, w, h, hudBackground, false)
	ebitenutil.DebugPrintAt(screen, text, hudPadding, hudPadding)
}
