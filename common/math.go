package common

// Base resolution of the viewer, before window scaling.
const (
	BaseWidth  = 640
	BaseHeight = 360
)

func Lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}
