package sink

import "snowtree/model"

// Null 只在内存中保存最近一帧，不输出
type Null struct {
	buf   []model.Color
	shows int
}

func NewNull(n int) *Null {
	return &Null{buf: make([]model.Color, n)}
}

func (s *Null) Set(i int, c model.Color) {
	s.buf[i] = c
}

func (s *Null) Show() error {
	s.shows++
	return nil
}

func (s *Null) Close() error {
	return nil
}

// Frame 最近一次写入的颜色
func (s *Null) Frame() []model.Color {
	out := make([]model.Color, len(s.buf))
	copy(out, s.buf)
	return out
}

func (s *Null) Shows() int {
	return s.shows
}
