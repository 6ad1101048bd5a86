package calculator

import (
	"fmt"

	"snowtree/tree"
)

// State 每个 LED 的亮度等级 [0, steps]
type State []int

// Rand 随机数来源，测试时可注入固定序列
type Rand interface {
	Intn(n int) int
}

type Simulator struct {
	tree  *tree.Tree
	steps int
	rng   Rand

	field  State // 当前这一代，只在 Tick 中替换
	state  State // 两个缓冲区交替使用
	state1 State

	// 每计算一帧进行一次异或运算
	alternating bool

	ticks uint64
}

func NewSimulator(t *tree.Tree, steps int, rng Rand) (*Simulator, error) {
	if steps < 1 {
		return nil, fmt.Errorf("steps must be at least 1, got %d", steps)
	}
	if len(t.Start) == 0 {
		return nil, tree.ErrFlatLayout
	}
	s := &Simulator{
		tree:   t,
		steps:  steps,
		rng:    rng,
		state:  make(State, t.Size()),
		state1: make(State, t.Size()),
	}
	s.field = s.state
	return s, nil
}

// Tick computes the next generation from the current one.
//
// Pass 1 decays every LED brighter than 1 and, for an LED at full brightness,
// ignites one random downward neighbour; both writes max-merge. Pass 2 spawns
// a new flake in the start set with a plain assignment that always wins.
func (s *Simulator) Tick() {
	prev := s.field
	next := s.state1
	if s.alternating {
		next = s.state
	}
	for i := range next {
		next[i] = 0
	}

	for i, v := range prev {
		if v <= 1 {
			continue
		}
		if v == s.steps {
			if leds := s.tree.Neighbors.Of(i); len(leds) > 0 {
				n := leds[s.rng.Intn(len(leds))]
				next[n] = max(next[n], s.steps)
			}
		}
		next[i] = max(next[i], v-1)
	}

	start := s.tree.Start
	next[start[s.rng.Intn(len(start))]] = s.steps

	s.field = next
	s.alternating = !s.alternating // 仅在这里修改
	s.ticks++
}

// State 返回当前这一代的副本
func (s *Simulator) State() State {
	out := make(State, len(s.field))
	copy(out, s.field)
	return out
}

func (s *Simulator) Steps() int {
	return s.steps
}

func (s *Simulator) Ticks() uint64 {
	return s.ticks
}
