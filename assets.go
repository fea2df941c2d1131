package main

import (
	"bytes"
	_ "embed"
	"image"
	"image/color"

	eb "github.com/hajimehoshi/ebiten/v2"
	ebt "github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gomono"
)

var (
	//go:embed assets/fx_shader.go
	fxShaderSrc []byte
	//go:embed assets/trail_shader.go
	trailShaderSrc []byte
	//go:embed assets/gradient_shader.go
	gradientShaderSrc []byte
)

var ClearFace *ebt.GoTextFace

var WhiteImage *eb.Image

func init() {
	whiteImg := image.NewNRGBA(RectWH(3, 3))
	for x := range 3 {
		for y := range 3 {
			whiteImg.Set(x, y, color.NRGBA{255, 255, 255, 255})
		}
	}
	wholeWhiteImage := eb.NewImageFromImage(whiteImg)
	WhiteImage = wholeWhiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*eb.Image)
}

func LoadAssets() {
	// load fonts
	{
		faceSource, err := ebt.NewGoTextFaceSource(bytes.NewReader(gomono.TTF))
		if err != nil {
			ErrorLogger.Fatalf("failed to load font : %v", err)
		}

		ClearFace = &ebt.GoTextFace{
			Source: faceSource,
			Size:   64,
		}
	}

	// shaders are compiled by the app, failing to do so is not fatal
	RegisterShader(ShaderFx, "assets/fx_shader.go", fxShaderSrc)
	RegisterShader(ShaderTrail, "assets/trail_shader.go", trailShaderSrc)
	RegisterShader(ShaderGradient, "assets/gradient_shader.go", gradientShaderSrc)
}
