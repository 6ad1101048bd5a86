package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"snowtree/model"
)

func TestRender(t *testing.T) {
	base := model.Color{R: 255, G: 100, B: 10}
	got := Render(State{0, 1, 4, 5}, base, 5)

	assert.Equal(t, []model.Color{
		{},
		{R: 51, G: 20, B: 2},
		{R: 204, G: 80, B: 8},
		{R: 255, G: 100, B: 10},
	}, got)
}

func TestRender_RealValued(t *testing.T) {
	got := Render(State{1, 2}, model.Color{R: 255, G: 255, B: 255}, 3)
	assert.InDelta(t, 85.0, got[0].R, 1e-9)
	assert.InDelta(t, 170.0, got[1].G, 1e-9)
}

func TestRenderInto_ReusesBuffer(t *testing.T) {
	dst := []model.Color{{R: 1, G: 1, B: 1}, {R: 1, G: 1, B: 1}}
	out := RenderInto(dst, State{0, 5}, model.Color{R: 10}, 5)
	assert.Same(t, &dst[0], &out[0])
	assert.Equal(t, model.Color{}, out[0])
	assert.Equal(t, model.Color{R: 10}, out[1])
}
