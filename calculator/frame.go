package calculator

import (
	"context"
	"time"

	log "github.com/sirupsen/logrus"
	"snowtree/deque"
)

// FrameManager caps the loop rate: each iteration runs the tick and then
// sleeps for whatever is left of frameTime. A slow tick is not compensated
// for later.
type FrameManager struct {
	frameTime time.Duration

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration)

	// 最近 window 帧的周期和计算耗时，满了以后淘汰最旧的
	window  int
	periods deque.Deque
	costs   deque.Deque
	frames  uint64
}

type FrameStats struct {
	Frames   int
	Average  time.Duration
	FPS      float64
	Overruns int
}

func NewFrameManager(frameTime time.Duration, statsWindow int) *FrameManager {
	if statsWindow < 1 {
		statsWindow = 1
	}
	return &FrameManager{
		frameTime: frameTime,
		now:       time.Now,
		sleep:     sleepContext,
		window:    statsWindow,
		periods:   deque.NewArrDeque(statsWindow),
		costs:     deque.NewArrDeque(statsWindow),
	}
}

func (f *FrameManager) FrameTime() time.Duration {
	return f.frameTime
}

// Run calls tick until ctx is done or tick fails. Cancellation is checked at
// every iteration boundary and also interrupts the pacing sleep.
func (f *FrameManager) Run(ctx context.Context, tick func() error) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		start := f.now()
		if err := tick(); err != nil {
			return err
		}
		elapsed := f.now().Sub(start)
		// 本帧计算时间不足 frameTime 时等待剩余时间
		if dt := f.frameTime - elapsed; dt > 0 {
			f.sleep(ctx, dt)
		}
		f.record(f.now().Sub(start), elapsed)
	}
}

func (f *FrameManager) record(period, cost time.Duration) {
	f.periods.AddLast(period)
	f.costs.AddLast(cost)
	f.frames++
	if f.frames%uint64(f.window) != 0 {
		return
	}

	st := f.Stats()
	log.WithFields(log.Fields{
		"frames":   st.Frames,
		"average":  st.Average,
		"fps":      st.FPS,
		"overruns": st.Overruns,
	}).Debug("帧统计")
}

// Stats 统计滑动窗口内的帧，窗口未满时只统计已有的帧
func (f *FrameManager) Stats() FrameStats {
	st := FrameStats{Frames: f.periods.Size()}
	if st.Frames == 0 {
		return st
	}
	var total time.Duration
	f.periods.Traverse(func(_ int, d time.Duration) {
		total += d
	})
	// 计算耗时达到 frameTime 即为超时，这一帧没有等待
	f.costs.Traverse(func(_ int, d time.Duration) {
		if d >= f.frameTime {
			st.Overruns++
		}
	})
	st.Average = total / time.Duration(st.Frames)
	if st.Average > 0 {
		st.FPS = float64(time.Second) / float64(st.Average)
	}
	return st
}

func sleepContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
