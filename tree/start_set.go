package tree

import (
	"math"

	"snowtree/model"
)

// StartSet 树顶三分之一高度内的 LED，雪花只从这里生成
type StartSet []int

// SelectStartSet returns the indices whose z is above
// max_z - (max_z - min_z)/3. The comparison is strict, so a layout where every
// LED has the same z yields an empty set.
func SelectStartSet(coords []model.Coordinate) StartSet {
	minZ, maxZ := math.Inf(1), math.Inf(-1)
	for _, c := range coords {
		minZ = math.Min(minZ, c.Z)
		maxZ = math.Max(maxZ, c.Z)
	}
	threshold := maxZ - (maxZ-minZ)/3

	set := make(StartSet, 0)
	for i, c := range coords {
		if c.Z > threshold {
			set = append(set, i)
		}
	}
	return set
}
