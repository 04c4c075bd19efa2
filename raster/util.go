package raster

import (
	"image"
	"image/draw"
)

func ensureRGBA(im image.Image) *image.RGBA {
	switch im := im.(type) {
	case *image.RGBA:
		return im
	default:
		dst := image.NewRGBA(im.Bounds())
		draw.Draw(dst, im.Bounds(), im, im.Bounds().Min, draw.Src)
		return dst
	}
}

func ensureGray16(im image.Image) *image.Gray16 {
	switch im := im.(type) {
	case *image.Gray16:
		return im
	default:
		dst := image.NewGray16(im.Bounds())
		draw.Draw(dst, im.Bounds(), im, im.Bounds().Min, draw.Src)
		return dst
	}
}
