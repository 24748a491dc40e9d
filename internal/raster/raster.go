// Package raster decodes and conditions the two supported image encodings
// (PNG, JPEG) ahead of page normalization and signature embedding.
package raster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	_ "image/png"

	"golang.org/x/image/draw"
)

// Info describes a decodable raster buffer.
type Info struct {
	Format string // "png" or "jpeg"
	Width  int
	Height int
}

// Sniff decodes the image header and reports encoding and pixel size
// without decoding pixel data. Only PNG and JPEG pass.
func Sniff(data []byte) (Info, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("decode image header: %w", err)
	}
	if format != "png" && format != "jpeg" {
		return Info{}, fmt.Errorf("image format %q not supported", format)
	}
	return Info{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}

// Downsample caps the image's long edge at maxEdge, re-encoding as JPEG at
// the given quality. Images already within the bound come back untouched.
// This is purely a byte-size optimization: callers rely on it never
// changing how many pages the image produces, only how large they are.
func Downsample(data []byte, maxEdge, quality int) ([]byte, Info, error) {
	info, err := Sniff(data)
	if err != nil {
		return nil, Info{}, err
	}
	if maxEdge <= 0 || (info.Width <= maxEdge && info.Height <= maxEdge) {
		return data, info, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, Info{}, fmt.Errorf("decode image: %w", err)
	}

	w, h := info.Width, info.Height
	if w >= h {
		h = h * maxEdge / w
		w = maxEdge
	} else {
		w = w * maxEdge / h
		h = maxEdge
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}

	// Flatten onto white first: JPEG has no alpha channel.
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if quality <= 0 || quality > 100 {
		quality = jpeg.DefaultQuality
	}
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: quality}); err != nil {
		return nil, Info{}, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), Info{Format: "jpeg", Width: w, Height: h}, nil
}
