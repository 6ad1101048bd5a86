package calculator

import "sync"

// CalcHub 运行控制信号
type CalcHub struct {
	Stop chan struct{}
	// 每帧完成后的通知，无人接收时丢弃
	PeriodCalcResult chan uint64

	once sync.Once
}

func NewCalcHub() *CalcHub {
	return &CalcHub{
		Stop:             make(chan struct{}),
		PeriodCalcResult: make(chan uint64, 1),
	}
}

func (ch *CalcHub) PushSignal(frame uint64) {
	select {
	case ch.PeriodCalcResult <- frame:
	default:
	}
}

func (ch *CalcHub) StopSignal() {
	ch.once.Do(func() {
		close(ch.Stop)
	})
}
