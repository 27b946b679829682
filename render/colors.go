package render

import "image/color"

var (
	Black = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Cyan  = color.RGBA{R: 0, G: 255, B: 255, A: 255}

	// bodyColors are the OpenPose colors used for the 18 body joints.  The
	// first 17 are also used for the limbs drawn between them
	bodyColors = []color.RGBA{
		{R: 255, G: 0, B: 0, A: 255},    // #FF0000
		{R: 255, G: 85, B: 0, A: 255},   // #FF5500
		{R: 255, G: 170, B: 0, A: 255},  // #FFAA00
		{R: 255, G: 255, B: 0, A: 255},  // #FFFF00
		{R: 170, G: 255, B: 0, A: 255},  // #AAFF00
		{R: 85, G: 255, B: 0, A: 255},   // #55FF00
		{R: 0, G: 255, B: 0, A: 255},    // #00FF00
		{R: 0, G: 255, B: 85, A: 255},   // #00FF55
		{R: 0, G: 255, B: 170, A: 255},  // #00FFAA
		{R: 0, G: 255, B: 255, A: 255},  // #00FFFF
		{R: 0, G: 170, B: 255, A: 255},  // #00AAFF
		{R: 0, G: 85, B: 255, A: 255},   // #0055FF
		{R: 0, G: 0, B: 255, A: 255},    // #0000FF
		{R: 85, G: 0, B: 255, A: 255},   // #5500FF
		{R: 170, G: 0, B: 255, A: 255},  // #AA00FF
		{R: 255, G: 0, B: 255, A: 255},  // #FF00FF
		{R: 255, G: 0, B: 170, A: 255},  // #FF00AA
		{R: 255, G: 0, B: 85, A: 255},   // #FF0055
	}
)
