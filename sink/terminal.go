package sink

import (
	"math"
	"sync"

	"github.com/gdamore/tcell/v2"
	"snowtree/model"
)

const (
	ledRune = '●'
	offRune = '·'
)

var offStyle = tcell.StyleDefault.Foreground(tcell.NewRGBColor(48, 48, 48))

type cell struct {
	x, y int
}

// 终端预览，LED 投影到 x/z 平面，z 向上
type Terminal struct {
	screen tcell.Screen
	colors []model.Color

	mu     sync.Mutex // 保护 cells，窗口大小变化时在事件协程中重算
	coords []model.Coordinate
	cells  []cell

	quit     chan struct{}
	quitOnce sync.Once
}

func OpenTerminal(n int) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return NewTerminal(screen, n), nil
}

// screen 必须已经 Init，由 Terminal 负责 Fini
func NewTerminal(screen tcell.Screen, n int) *Terminal {
	t := &Terminal{
		screen: screen,
		colors: make([]model.Color, n),
		quit:   make(chan struct{}),
	}
	t.layout()
	go t.handleEvents()
	return t
}

func (t *Terminal) handleEvents() {
	for {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case nil:
			// 已经 Fini
			return
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC || ev.Rune() == 'q' {
				t.quitOnce.Do(func() { close(t.quit) })
			}
		case *tcell.EventResize:
			t.mu.Lock()
			t.layout()
			t.mu.Unlock()
			t.screen.Sync()
		}
	}
}

func (t *Terminal) Quit() <-chan struct{} {
	return t.quit
}

func (t *Terminal) SetPixelLocations(coords []model.Coordinate) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.coords = coords
	t.layout()
	return nil
}

// layout 计算每个 LED 在屏幕上的位置，调用方持有锁
func (t *Terminal) layout() {
	w, h := t.screen.Size()
	n := len(t.colors)
	t.cells = make([]cell, n)
	if w <= 0 || h <= 0 {
		return
	}

	if len(t.coords) != n {
		// 没有坐标时按编号逐行排列
		for i := range t.cells {
			t.cells[i] = cell{x: i % w, y: (i / w) % h}
		}
		return
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minZ, maxZ := math.Inf(1), math.Inf(-1)
	for _, c := range t.coords {
		minX, maxX = math.Min(minX, c.X), math.Max(maxX, c.X)
		minZ, maxZ = math.Min(minZ, c.Z), math.Max(maxZ, c.Z)
	}
	for i, c := range t.coords {
		t.cells[i] = cell{
			x: scale(c.X-minX, maxX-minX, w),
			y: h - 1 - scale(c.Z-minZ, maxZ-minZ, h),
		}
	}
}

// 把 [0, span] 映射到 [0, size)
func scale(v, span float64, size int) int {
	if span <= 0 {
		return size / 2
	}
	p := int(math.Round(v / span * float64(size-1)))
	return min(max(p, 0), size-1)
}

func (t *Terminal) Set(i int, c model.Color) {
	t.colors[i] = c
}

// Show 先画熄灭的 LED，再画亮的，重叠时亮的在上
func (t *Terminal) Show() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.screen.Clear()
	for i, c := range t.colors {
		if c.IsBlack() {
			t.screen.SetContent(t.cells[i].x, t.cells[i].y, offRune, nil, offStyle)
		}
	}
	for i, c := range t.colors {
		if c.IsBlack() {
			continue
		}
		r, g, b := c.Bytes()
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(r), int32(g), int32(b)))
		t.screen.SetContent(t.cells[i].x, t.cells[i].y, ledRune, nil, style)
	}
	t.screen.Show()
	return nil
}

func (t *Terminal) Close() error {
	t.screen.Fini()
	return nil
}
