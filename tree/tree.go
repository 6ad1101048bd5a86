package tree

import (
	"errors"
	"fmt"

	log "github.com/sirupsen/logrus"
	"snowtree/model"
)

// 树的规格：LED 坐标 + 启动时预计算的邻接图和起始集合
// 坐标、邻接图、起始集合在创建之后都不再改变

var (
	ErrNoCoordinates = errors.New("no led coordinates")
	ErrFlatLayout    = errors.New("all leds share the same height, start set is empty")
)

type Tree struct {
	Coords    []model.Coordinate
	Neighbors NeighborGraph
	Start     StartSet
	MaxDist   float64
}

func New(coords []model.Coordinate, maxDist float64) (*Tree, error) {
	if len(coords) == 0 {
		return nil, ErrNoCoordinates
	}
	if maxDist <= 0 {
		return nil, fmt.Errorf("max neighbour distance must be positive, got %v", maxDist)
	}

	t := &Tree{
		Coords:    coords,
		Neighbors: BuildNeighborGraph(coords, maxDist),
		Start:     SelectStartSet(coords),
		MaxDist:   maxDist,
	}
	if len(t.Start) == 0 {
		return nil, ErrFlatLayout
	}

	log.WithFields(log.Fields{
		"leds":     t.Size(),
		"edges":    t.Neighbors.Edges(),
		"maxDist":  maxDist,
		"startSet": len(t.Start),
	}).Info("构建邻接图")
	return t, nil
}

// Load 读取坐标文件并构建树
func Load(path string, maxDist float64) (*Tree, error) {
	coords, err := LoadCoordinates(path)
	if err != nil {
		return nil, err
	}
	return New(coords, maxDist)
}

func (t *Tree) Size() int {
	return len(t.Coords)
}
