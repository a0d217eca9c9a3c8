package main

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	eb "github.com/hajimehoshi/ebiten/v2"

	"ribbons/misc"
)

const ScreenshotDir = "screenshots"

// TakeScreenshot saves img as a png next to the executable
// and returns the file path.
func TakeScreenshot(img *eb.Image) (string, error) {
	timeStr := time.Now().Format("0102150405")

	dirPath := misc.ExecutableRelativePath(ScreenshotDir)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("ribbons-%s.png", timeStr)
	for nameCounter := 2; ; nameCounter++ {
		exists, err := misc.CheckFileExists(filepath.Join(dirPath, filename))
		if err != nil {
			return "", err
		}
		if !exists {
			break
		}
		filename = fmt.Sprintf("ribbons-%s-(%d).png", timeStr, nameCounter)
	}

	fullPath := filepath.Join(dirPath, filename)

	buffer := &bytes.Buffer{}
	if err := png.Encode(buffer, imageFromEbImage(img)); err != nil {
		return "", err
	}

	if err := os.WriteFile(fullPath, buffer.Bytes(), 0644); err != nil {
		return "", err
	}

	return fullPath, nil
}

func imageFromEbImage(img *eb.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	// ReadPixels writes premultiplied RGBA, same as image.RGBA
	img.ReadPixels(rgba.Pix)
	return rgba
}
