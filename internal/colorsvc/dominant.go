package colorsvc

import (
	"fmt"
	"image"
	"image/color"

	"paintpick/internal/domain"
)

// Pixels outside these bounds are treated as highlights, shadows or greys
const (
	minChroma  = 20
	minChannel = 30
	maxChannel = 225
)

// DominantColor averages the saturated mid-tone pixels of the central third of img.
// The second result is false when no pixel qualifies.
func DominantColor(img image.Image) (domain.ExtractedColor, bool) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	x0, x1 := b.Min.X+w/3, b.Min.X+w*2/3
	y0, y1 := b.Min.Y+h/3, b.Min.Y+h*2/3

	var sum [3]int64
	var n int64
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			r, g, bl := int(c.R), int(c.G), int(c.B)
			if !qualifies(r, g, bl) {
				continue
			}
			sum[0] += int64(r)
			sum[1] += int64(g)
			sum[2] += int64(bl)
			n++
		}
	}
	if n == 0 {
		return domain.ExtractedColor{}, false
	}

	rgb := [3]int{int(sum[0] / n), int(sum[1] / n), int(sum[2] / n)}
	return domain.ExtractedColor{
		Hex: fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2]),
		RGB: rgb,
	}, true
}

func qualifies(r, g, b int) bool {
	hi, lo := max(r, g, b), min(r, g, b)
	if hi-lo <= minChroma {
		return false
	}
	return inRange(r) && inRange(g) && inRange(b)
}

func inRange(v int) bool {
	return v > minChannel && v < maxChannel
}
