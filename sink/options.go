package sink

import (
	"fmt"
	"strings"

	"go.bug.st/serial"
)

// 串口参数，零值表示使用默认值 115200 8N1
type PortOptions struct {
	BaudRate int
	DataBits int
	StopBits int
	Parity   string
}

var parities = map[string]serial.Parity{
	"N": serial.NoParity, "NONE": serial.NoParity,
	"E": serial.EvenParity, "EVEN": serial.EvenParity,
	"O": serial.OddParity, "ODD": serial.OddParity,
}

var stopBits = map[int]serial.StopBits{
	1: serial.OneStopBit,
	2: serial.TwoStopBits,
}

// Normalize 补全默认值并校验，校验失败时返回原值
func (o PortOptions) Normalize() (PortOptions, error) {
	n := o
	if n.BaudRate <= 0 {
		n.BaudRate = 115200
	}
	if n.DataBits == 0 {
		n.DataBits = 8
	}
	if n.StopBits == 0 {
		n.StopBits = 1
	}
	n.Parity = strings.ToUpper(strings.TrimSpace(n.Parity))
	if n.Parity == "" {
		n.Parity = "N"
	}

	if n.DataBits < 5 || n.DataBits > 8 {
		return o, fmt.Errorf("data bits %d out of range 5-8", n.DataBits)
	}
	if _, ok := stopBits[n.StopBits]; !ok {
		return o, fmt.Errorf("stop bits %d not supported, use 1 or 2", n.StopBits)
	}
	if _, ok := parities[n.Parity]; !ok {
		return o, fmt.Errorf("parity %q not supported, use N, E or O", o.Parity)
	}
	n.Parity = n.Parity[:1]
	return n, nil
}

// SerialMode 转换为 serial.Open 需要的参数
func (o PortOptions) SerialMode() (*serial.Mode, error) {
	n, err := o.Normalize()
	if err != nil {
		return nil, err
	}
	return &serial.Mode{
		BaudRate: n.BaudRate,
		DataBits: n.DataBits,
		StopBits: stopBits[n.StopBits],
		Parity:   parities[n.Parity],
	}, nil
}
