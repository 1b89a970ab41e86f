package desktop

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/tomz197/spacedodge/internal/assets"
	"github.com/tomz197/spacedodge/internal/draw"
)

const lineWidth = 2

// whitePixel is the source texture for filled paths.
var whitePixel = func() *ebiten.Image {
	img := ebiten.NewImage(3, 3)
	img.Fill(color.White)
	return img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
}()

// surface draws scene primitives onto an ebiten image.
type surface struct {
	dst     *ebiten.Image
	sprites *assets.Library
	images  map[assets.Name]*ebiten.Image
	face    text.Face
	path    vector.Path
	vs      []ebiten.Vertex
	is      []uint16
}

func newSurface(sprites *assets.Library) *surface {
	return &surface{
		sprites: sprites,
		images:  make(map[assets.Name]*ebiten.Image),
		face:    text.NewGoXFace(basicfont.Face7x13),
	}
}

func (s *surface) begin(dst *ebiten.Image) {
	s.dst = dst
}

func (s *surface) FillRect(x, y, w, h float64, c color.RGBA) {
	vector.DrawFilledRect(s.dst, float32(x), float32(y), float32(w), float32(h), c, false)
}

func (s *surface) FillCircle(cx, cy, r float64, c color.RGBA) {
	vector.DrawFilledCircle(s.dst, float32(cx), float32(cy), float32(r), c, true)
}

func (s *surface) FillPolygon(points []draw.Point, c color.RGBA) {
	if len(points) < 3 {
		return
	}
	s.path = vector.Path{}
	s.path.MoveTo(float32(points[0].X), float32(points[0].Y))
	for _, p := range points[1:] {
		s.path.LineTo(float32(p.X), float32(p.Y))
	}
	s.path.Close()

	s.vs, s.is = s.path.AppendVerticesAndIndicesForFilling(s.vs[:0], s.is[:0])
	r, g, b, a := float32(c.R)/0xff, float32(c.G)/0xff, float32(c.B)/0xff, float32(c.A)/0xff
	for i := range s.vs {
		s.vs[i].SrcX = 1
		s.vs[i].SrcY = 1
		s.vs[i].ColorR = r * a
		s.vs[i].ColorG = g * a
		s.vs[i].ColorB = b * a
		s.vs[i].ColorA = a
	}

	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	s.dst.DrawTriangles(s.vs, s.is, whitePixel, op)
}

func (s *surface) StrokeLine(a, b draw.Point, c color.RGBA) {
	vector.StrokeLine(s.dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), lineWidth, c, true)
}

func (s *surface) Sprite(name assets.Name, cx, cy, w, h, angle float64) bool {
	img := s.image(name)
	if img == nil {
		return false
	}
	bounds := img.Bounds()
	bw, bh := float64(bounds.Dx()), float64(bounds.Dy())

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-bw/2, -bh/2)
	op.GeoM.Scale(w/bw, h/bh)
	op.GeoM.Rotate(angle)
	op.GeoM.Translate(cx, cy)
	op.Filter = ebiten.FilterLinear
	s.dst.DrawImage(img, op)
	return true
}

// image uploads a decoded sprite to the GPU on first use.
func (s *surface) image(name assets.Name) *ebiten.Image {
	if img, ok := s.images[name]; ok {
		return img
	}
	sprite, ok := s.sprites.Get(name)
	if !ok {
		return nil
	}
	img := ebiten.NewImageFromImage(sprite.Image())
	s.images[name] = img
	return img
}

func (s *surface) Text(x, y float64, str string, c color.RGBA) {
	drawText(s.dst, s.face, str, x, y, text.AlignCenter, c)
}

// drawText draws str with its vertical center at y.
func drawText(dst *ebiten.Image, face text.Face, str string, x, y float64, align text.Align, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c)
	op.PrimaryAlign = align
	op.SecondaryAlign = text.AlignCenter
	text.Draw(dst, str, face, op)
}
