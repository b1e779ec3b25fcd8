// Package render draws the planet and the satellites with the libgl
// wrappers.
package render

import (
	"log/slog"
	"path/filepath"

	"earthviewer/libgl"
	"earthviewer/libio"

	"github.com/go-gl/gl/v4.5-core/gl"
)

// Fixed texture units of the body shader.
const (
	UnitDay = iota
	UnitNight
	UnitClouds
	UnitNoise
)

// LoadTexture uploads the image at path with a full mip chain and binds it to
// unit. A file that cannot be loaded is replaced by a 1x1 black texture so
// its channel contributes nothing.
func LoadTexture(path string, unit int, logger *slog.Logger) libgl.UnboundTexture {
	img, err := libio.DecodeImage(path)
	if err != nil {
		logger.Warn("texture unavailable, using black fallback", "path", path, "unit", unit, "error", err)
		tex := blackTexture()
		tex.Bind(unit)
		return tex
	}

	w, h := img.Rect.Dx(), img.Rect.Dy()
	tex := libgl.NewTexture()
	tex.SetDebugLabel(filepath.Base(path))
	tex.Allocate(0, gl.RGBA8, w, h)
	tex.Load(0, w, h, gl.RGBA, img.Pix)
	tex.GenerateMipmap()
	tex.Bind(unit)

	logger.Debug("loaded texture", "path", path, "unit", unit, "width", w, "height", h, "levels", libgl.MipLevels(w, h))
	return tex
}

func blackTexture() libgl.UnboundTexture {
	tex := libgl.NewTexture()
	tex.SetDebugLabel("fallback")
	tex.Allocate(1, gl.RGBA8, 1, 1)
	tex.Load(0, 1, 1, gl.RGBA, []byte{0, 0, 0, 255})
	return tex
}
