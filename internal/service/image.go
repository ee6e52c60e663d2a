// Package service provides image loading and metadata extraction services.
package service

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF decoder
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"
	"time"

	"github.com/nicky-ayoub/ebitview/internal/pixels"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// ImageInfo holds metadata about an image.
type ImageInfo struct {
	Format   string
	Width    int
	Height   int
	Size     int64
	ModTime  time.Time
	EXIFData map[string]string
}

// ImageService provides methods for loading and decoding images.
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// LoadFromPath decodes the image at path into an RGBA buffer. Any failure is
// reported as a *pixels.DecodeError.
func (is *ImageService) LoadFromPath(path string) (*pixels.ImageBuffer, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &pixels.DecodeError{Source: path, Err: fmt.Errorf("opening file: %w", err)}
	}
	defer file.Close()

	// Reject huge images before allocating anything for them.
	config, _, err := image.DecodeConfig(file)
	if err != nil {
		return nil, &pixels.DecodeError{Source: path, Err: fmt.Errorf("decoding image config: %w", err)}
	}
	if _, err := pixels.ByteSize(config.Width, config.Height); err != nil {
		return nil, &pixels.DecodeError{Source: path, Err: err}
	}

	if _, err := file.Seek(0, 0); err != nil {
		return nil, &pixels.DecodeError{Source: path, Err: fmt.Errorf("seeking file: %w", err)}
	}
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, &pixels.DecodeError{Source: path, Err: fmt.Errorf("decoding image: %w", err)}
	}
	return pixels.FromImage(img, path)
}

// LoadFromRaw accepts an already decoded pixel buffer: RGBA when hasAlpha is
// set, RGB otherwise.
func (is *ImageService) LoadFromRaw(data []byte, w, h int, hasAlpha bool) (*pixels.ImageBuffer, error) {
	return pixels.FromRaw(data, w, h, hasAlpha, rawSource(w, h))
}

// LoadFromPlanes accepts RGB data with a separate alpha plane.
func (is *ImageService) LoadFromPlanes(rgb, alpha []byte, w, h int) (*pixels.ImageBuffer, error) {
	return pixels.FromPlanes(rgb, alpha, w, h, rawSource(w, h))
}

func rawSource(w, h int) string {
	return fmt.Sprintf("raw %dx%d", w, h)
}

// GetImageInfo reads an image file and extracts metadata without decoding the full image,
// which is significantly more performant.
func (is *ImageService) GetImageInfo(path string) (*ImageInfo, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	config, format, err := image.DecodeConfig(file)
	if err != nil {
		return nil, fmt.Errorf("decoding image config: %w", err)
	}

	// Reset file pointer to read EXIF data
	if _, err := file.Seek(0, 0); err != nil {
		return nil, fmt.Errorf("seeking file for exif: %w", err)
	}

	exifData, _ := exif.Decode(file) // Ignore error, EXIF might not be present

	fileInfo, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("getting file stats: %w", err)
	}

	info := &ImageInfo{
		Format:   format,
		Width:    config.Width,
		Height:   config.Height,
		Size:     fileInfo.Size(),
		ModTime:  fileInfo.ModTime(),
		EXIFData: make(map[string]string),
	}

	if exifData != nil {
		if camModel, err := exifData.Get(exif.Model); err == nil {
			info.EXIFData["Camera Model"] = camModel.String()
		}
		if fNum, err := exifData.Get(exif.FNumber); err == nil {
			numer, denom, _ := fNum.Rat2(0)
			if denom != 0 {
				info.EXIFData["F-Number"] = fmt.Sprintf("f/%.1f", float64(numer)/float64(denom))
			}
		}
		if expTime, err := exifData.Get(exif.ExposureTime); err == nil {
			numer, denom, _ := expTime.Rat2(0)
			info.EXIFData["Exposure Time"] = fmt.Sprintf("%d/%d s", numer, denom)
		}
		if taken, err := exifData.DateTime(); err == nil {
			info.EXIFData["Taken"] = taken.Format(time.DateTime)
		}
	}

	return info, nil
}
