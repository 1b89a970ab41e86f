// Package assets loads the embedded game sprites.
package assets

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
)

//go:embed sprites/*.svg
var spriteFS embed.FS

// ErrUnknownSprite is returned for sprite names with no embedded file.
var ErrUnknownSprite = errors.New("unknown sprite")

// Name identifies an embedded sprite.
type Name string

const (
	Ship     Name = "ship"
	Asteroid Name = "asteroid"
)

// Names lists every sprite the game needs.
var Names = []Name{Ship, Asteroid}

// baseWidth is the width sprites are rasterized at before scaling.
const baseWidth = 128

// maxCachedSizes bounds the per-sprite scaled image cache.
const maxCachedSizes = 32

// Sprite is a rasterized image with a cache of scaled copies.
// Safe for concurrent use.
type Sprite struct {
	Name   Name
	Aspect float64 // Height / width

	base *image.RGBA

	mu     sync.Mutex
	scaled map[image.Point]*image.RGBA
}

// Decode rasterizes SVG data into a sprite baseWidth pixels wide.
func Decode(name Name, svg []byte) (*Sprite, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s sprite: %w", name, err)
	}
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return nil, fmt.Errorf("sprite %s has an empty view box", name)
	}

	aspect := icon.ViewBox.H / icon.ViewBox.W
	width := baseWidth
	height := max(int(float64(width)*aspect+0.5), 1)

	icon.SetTarget(0, 0, float64(width), float64(height))
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	scanner := rasterx.NewScannerGV(width, height, img, img.Bounds())
	raster := rasterx.NewDasher(width, height, scanner)
	icon.Draw(raster, 1.0)

	return &Sprite{
		Name:   name,
		Aspect: aspect,
		base:   img,
		scaled: make(map[image.Point]*image.RGBA),
	}, nil
}

// Image returns the full-resolution raster.
func (s *Sprite) Image() *image.RGBA {
	return s.base
}

// Scaled returns the sprite resized to w x h pixels. Results are cached.
func (s *Sprite) Scaled(w, h int) *image.RGBA {
	w = max(w, 1)
	h = max(h, 1)
	key := image.Pt(w, h)

	s.mu.Lock()
	defer s.mu.Unlock()

	if img, ok := s.scaled[key]; ok {
		return img
	}
	if len(s.scaled) >= maxCachedSizes {
		clear(s.scaled)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(img, img.Bounds(), s.base, s.base.Bounds(), xdraw.Over, nil)
	s.scaled[key] = img
	return img
}

// Load decodes an embedded sprite by name.
func Load(name Name) (*Sprite, error) {
	data, err := spriteFS.ReadFile("sprites/" + string(name) + ".svg")
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSprite, name)
	}
	return Decode(name, data)
}
