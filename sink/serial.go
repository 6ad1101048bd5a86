package sink

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"go.bug.st/serial"
	"snowtree/model"
)

// 串口中 LED 驱动用到的部分，测试时用内存实现
type SerialPorter interface {
	io.Writer
	io.Closer
}

const adalightHeaderLen = 6

// Serial 通过单片机驱动灯带，帧格式为 Adalight：
// "Ada" + LED 数量减一 (大端 uint16) + 校验字节，之后每个 LED 3 字节
type Serial struct {
	port  SerialPorter
	order ChannelOrder
	frame []byte
}

func NewSerial(port SerialPorter, n int, order ChannelOrder) *Serial {
	frame := make([]byte, adalightHeaderLen+3*n)
	count := n - 1
	if count < 0 {
		count = 0
	}
	hi, lo := byte(count>>8), byte(count)
	copy(frame, []byte{'A', 'd', 'a', hi, lo, hi ^ lo ^ 0x55})
	return &Serial{
		port:  port,
		order: order,
		frame: frame,
	}
}

func OpenSerial(path string, opts PortOptions, n int, order ChannelOrder) (*Serial, error) {
	if n > 1<<16 {
		return nil, fmt.Errorf("too many leds for one serial frame: %d", n)
	}
	mode, err := opts.SerialMode()
	if err != nil {
		return nil, err
	}
	port, err := serial.Open(path, mode)
	if err != nil {
		return nil, fmt.Errorf("open serial port %s: %w", path, err)
	}
	log.WithFields(log.Fields{
		"port":     path,
		"baudRate": mode.BaudRate,
		"leds":     n,
	}).Info("打开串口")
	return NewSerial(port, n, order), nil
}

func (s *Serial) Set(i int, c model.Color) {
	off := adalightHeaderLen + 3*i
	s.frame[off], s.frame[off+1], s.frame[off+2] = s.order.Apply(c.Bytes())
}

func (s *Serial) Show() error {
	n, err := s.port.Write(s.frame)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	if n != len(s.frame) {
		return fmt.Errorf("%w: short write %d of %d bytes", ErrWriteFailed, n, len(s.frame))
	}
	return nil
}

func (s *Serial) Close() error {
	return s.port.Close()
}
