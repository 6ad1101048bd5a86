package calculator

import "snowtree/model"

// Render maps brightness levels to colors: channel = base * v / steps.
// Values stay real; the sink truncates.
func Render(state State, base model.Color, steps int) []model.Color {
	return RenderInto(make([]model.Color, len(state)), state, base, steps)
}

// RenderInto 复用 dst，避免每帧分配
func RenderInto(dst []model.Color, state State, base model.Color, steps int) []model.Color {
	for i, v := range state {
		if v == 0 {
			dst[i] = model.Color{}
			continue
		}
		n, d := float64(v), float64(steps)
		dst[i] = model.Color{R: base.R * n / d, G: base.G * n / d, B: base.B * n / d}
	}
	return dst
}
