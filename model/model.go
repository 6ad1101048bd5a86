package model

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// LED 的三维坐标，z 为竖直方向
type Coordinate = r3.Vec

// 逻辑颜色 (R, G, B)，每个通道取值 [0, 255]，可以为小数
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
}

// Bytes 截断为输出设备需要的字节，超出范围的值会被钳制
func (c Color) Bytes() (r, g, b byte) {
	return channel(c.R), channel(c.G), channel(c.B)
}

func (c Color) IsBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

func channel(v float64) byte {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return byte(v)
}

// 前后端通信消息结构
type Msg struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

// 消息类型
const (
	MsgFrame     = "frame"
	MsgLocations = "locations"
	MsgHello     = "hello"
)
