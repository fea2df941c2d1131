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

	"domfx/misc"
)

func ImageImageFromEbImage(img *eb.Image) *image.RGBA {
	bounds := img.Bounds()
	rgba := image.NewRGBA(RectWH(bounds.Dx(), bounds.Dy()))
	img.ReadPixels(rgba.Pix)
	return rgba
}

// TakeScreenshot saves img as a png in dir and returns the file name.
func TakeScreenshot(img *eb.Image, dir string) (string, error) {
	timeStr := time.Now().Format("0102150405")

	filename := fmt.Sprintf("pic-%s.png", timeStr)

	for nameCounter := 2; ; nameCounter++ {
		exists, err := misc.CheckFileExists(filepath.Join(dir, filename))
		if err != nil {
			return "", err
		}
		if !exists {
			break
		}
		filename = fmt.Sprintf("pic-%s-(%d).png", timeStr, nameCounter)
	}

	fullPath := filepath.Join(dir, filename)

	buffer := &bytes.Buffer{}
	err := png.Encode(buffer, ImageImageFromEbImage(img))
	if err != nil {
		return "", err
	}

	err = os.WriteFile(fullPath, buffer.Bytes(), 0644)
	if err != nil {
		return "", err
	}

	return filename, nil
}
