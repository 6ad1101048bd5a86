package calculator

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"snowtree/model"
	"snowtree/sink"
	"snowtree/tree"
)

// calculator 的接口定义

type Calculator interface {
	// 推进一帧：模拟、渲染、输出
	Frame() error

	// 运行，直到 ctx 结束、Stop 被调用或某一帧出错
	Run(ctx context.Context) error

	// 停止运行
	Stop()

	// 获取CalcHub
	GetCalcHub() *CalcHub
}

var _ Calculator = (*Animation)(nil)

// Animation 把模拟器、渲染和输出设备串起来
type Animation struct {
	sim   *Simulator
	frame *FrameManager
	out   sink.Sink
	color model.Color

	colors  []model.Color
	calcHub *CalcHub
}

func NewAnimation(cfg *Config, t *tree.Tree, out sink.Sink, rng Rand) (*Animation, error) {
	sim, err := NewSimulator(t, cfg.Steps, rng)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{
		"steps":     cfg.Steps,
		"frameRate": cfg.FrameRate,
		"frameTime": cfg.FrameTime(),
		"color":     cfg.Color,
	}).Info("设置动画参数")
	return &Animation{
		sim:     sim,
		frame:   NewFrameManager(cfg.FrameTime(), cfg.StatsWindow),
		out:     out,
		color:   cfg.Color,
		colors:  make([]model.Color, t.Size()),
		calcHub: NewCalcHub(),
	}, nil
}

func (a *Animation) GetCalcHub() *CalcHub {
	return a.calcHub
}

// Frame 先写入所有 LED 的颜色，最后只调用一次 Show
func (a *Animation) Frame() error {
	a.sim.Tick()
	RenderInto(a.colors, a.sim.field, a.color, a.sim.Steps())
	for i, c := range a.colors {
		a.out.Set(i, c)
	}
	if err := a.out.Show(); err != nil {
		return fmt.Errorf("show frame %d: %w", a.sim.Ticks(), err)
	}
	a.calcHub.PushSignal(a.sim.Ticks())
	return nil
}

func (a *Animation) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-a.calcHub.Stop:
			cancel()
		case <-ctx.Done():
		}
	}()

	log.WithField("frameTime", a.frame.FrameTime()).Info("开始运行")
	err := a.frame.Run(ctx, a.Frame)
	log.WithFields(log.Fields{
		"frames": a.sim.Ticks(),
		"err":    err,
	}).Info("停止运行")
	return err
}

func (a *Animation) Stop() {
	a.calcHub.StopSignal()
}
