package tree

import (
	"gonum.org/v1/gonum/spatial/r3"

	"snowtree/model"
)

// NeighborGraph maps each LED index to the LEDs strictly below it and
// closer than the maximum distance, in ascending index order.
type NeighborGraph [][]int

// BuildNeighborGraph O(N²) 遍历所有有序对
func BuildNeighborGraph(coords []model.Coordinate, maxDist float64) NeighborGraph {
	g := make(NeighborGraph, len(coords))
	for i, c1 := range coords {
		leds := make([]int, 0)
		for j, c2 := range coords {
			if c2.Z < c1.Z && r3.Norm(r3.Sub(c1, c2)) < maxDist {
				leds = append(leds, j)
			}
		}
		g[i] = leds
	}
	return g
}

func (g NeighborGraph) Of(i int) []int {
	return g[i]
}

// Edges 邻接关系总数
func (g NeighborGraph) Edges() int {
	n := 0
	for _, leds := range g {
		n += len(leds)
	}
	return n
}
