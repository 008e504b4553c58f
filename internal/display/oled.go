// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package display

import (
	"fmt"
	"image"
	"image/draw"
	"log"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/devices/v3/ssd1306"
	"periph.io/x/devices/v3/ssd1306/image1bit"

	"github.com/relabs-tech/gps_clock/internal/readout"
)

const (
	oledWidth  = 128
	oledHeight = 64

	// DefaultI2CAddr is the SSD1306 address with SA0 pulled high.
	DefaultI2CAddr = 0x3D

	textX = 8
	// baselines of the four lines
	lineY0   = 19
	lineStep = 12

	fontSize = 10
	fontDPI  = 72
)

// OLED drives a 128x64 SSD1306 panel: a white frame around a black
// interior with four left-aligned lines of text.
type OLED struct {
	dev    *ssd1306.Dev
	face   font.Face
	border int
}

// addrBus pins every transaction to one address. The ssd1306 driver talks
// to 0x3C; panels strapped to 0x3D need the rewrite.
type addrBus struct {
	i2c.Bus
	addr uint16
}

func (b *addrBus) Tx(_ uint16, w, r []byte) error {
	return b.Bus.Tx(b.addr, w, r)
}

// NewOLED initializes the panel at addr on bus.
func NewOLED(bus i2c.Bus, addr uint16, border int) (*OLED, error) {
	opts := ssd1306.DefaultOpts
	opts.W = oledWidth
	opts.H = oledHeight

	dev, err := ssd1306.NewI2C(&addrBus{Bus: bus, addr: addr}, &opts)
	if err != nil {
		return nil, fmt.Errorf("ssd1306 at 0x%02X: %w", addr, err)
	}
	log.Printf("display: ssd1306 initialized at 0x%02X", addr)

	return &OLED{dev: dev, face: loadFace(), border: border}, nil
}

// loadFace returns Go Mono at a size where 19 columns fit inside the frame.
// basicfont is too wide for the date line but is always available.
func loadFace() font.Face {
	f, err := opentype.Parse(gomono.TTF)
	if err != nil {
		log.Printf("display: gomono parse failed, using basicfont: %v", err)
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    fontSize,
		DPI:     fontDPI,
		Hinting: font.HintingFull,
	})
	if err != nil {
		log.Printf("display: gomono face failed, using basicfont: %v", err)
		return basicfont.Face7x13
	}
	return face
}

func (o *OLED) Show(f readout.Fields) error {
	return o.draw([]string{f.DateTime, f.Latitude, f.Longitude, f.Altitude})
}

// Halt blanks the panel.
func (o *OLED) Halt() error {
	return o.dev.Halt()
}

func (o *OLED) draw(lines []string) error {
	img := renderFrame(o.face, o.border, lines)
	if err := o.dev.Draw(o.dev.Bounds(), img, image.Point{}); err != nil {
		return fmt.Errorf("ssd1306 draw: %w", err)
	}
	return nil
}

func renderFrame(face font.Face, border int, lines []string) *image1bit.VerticalLSB {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, oledWidth, oledHeight))

	draw.Draw(img, img.Bounds(), &image.Uniform{image1bit.On}, image.Point{}, draw.Src)
	inner := image.Rect(border, border, oledWidth-border, oledHeight-border)
	draw.Draw(img, inner, &image.Uniform{image1bit.Off}, image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{image1bit.On},
		Face: face,
	}
	for i, line := range lines {
		drawer.Dot = fixed.P(textX, lineY0+i*lineStep)
		drawer.DrawString(line)
	}
	return img
}
