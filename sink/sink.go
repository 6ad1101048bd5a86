package sink

import (
	"errors"
	"fmt"

	"snowtree/model"
)

var (
	ErrUnknownKind = errors.New("unknown sink kind")
	ErrWriteFailed = errors.New("failed to write frame")
)

const (
	KindSerial   = "serial"
	KindTerminal = "terminal"
	KindWeb      = "web"
	KindNull     = "null"
)

// 输出设备
// Set 只写缓冲区，Show 才真正输出，每帧只调用一次
type Sink interface {
	Set(i int, c model.Color)
	Show() error
	Close() error
}

// 可以使用 LED 实际坐标的设备
type Locator interface {
	SetPixelLocations(coords []model.Coordinate) error
}

// 可以请求退出程序的设备，例如终端中按下 q
type Quitter interface {
	Quit() <-chan struct{}
}

// RegisterLocations 设备不支持坐标时直接忽略
func RegisterLocations(s Sink, coords []model.Coordinate) error {
	l, ok := s.(Locator)
	if !ok {
		return nil
	}
	return l.SetPixelLocations(coords)
}

type Options struct {
	Kind   string
	Port   string
	Order  string
	Addr   string
	Serial PortOptions
}

// 按类型创建 n 个 LED 的输出设备
func Open(opts Options, n int) (Sink, error) {
	switch opts.Kind {
	case KindSerial:
		order, err := ParseChannelOrder(opts.Order)
		if err != nil {
			return nil, err
		}
		return OpenSerial(opts.Port, opts.Serial, n, order)
	case KindTerminal:
		return OpenTerminal(n)
	case KindWeb:
		return OpenWeb(opts.Addr, n)
	case KindNull:
		return NewNull(n), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, opts.Kind)
	}
}
