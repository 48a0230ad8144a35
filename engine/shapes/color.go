package shapes

import "image/color"

// ColorFrom converts any image/color value into a Color.
func ColorFrom(c color.Color) Color {
	nrgba := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA(
		float32(nrgba.R)/255,
		float32(nrgba.G)/255,
		float32(nrgba.B)/255,
		float32(nrgba.A)/255,
	)
}
