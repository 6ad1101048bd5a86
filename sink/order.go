package sink

import (
	"fmt"
	"strings"
)

// 每个发送字节对应的逻辑通道，0=R 1=G 2=B
type ChannelOrder [3]int

var (
	RGB = ChannelOrder{0, 1, 2}
	GRB = ChannelOrder{1, 0, 2}
)

func ParseChannelOrder(s string) (ChannelOrder, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if len(s) != 3 {
		return ChannelOrder{}, fmt.Errorf("invalid channel order %q", s)
	}
	var (
		order ChannelOrder
		seen  [3]bool
	)
	for i, r := range s {
		var ch int
		switch r {
		case 'R':
			ch = 0
		case 'G':
			ch = 1
		case 'B':
			ch = 2
		default:
			return ChannelOrder{}, fmt.Errorf("invalid channel order %q", s)
		}
		if seen[ch] {
			return ChannelOrder{}, fmt.Errorf("invalid channel order %q: repeated channel", s)
		}
		seen[ch] = true
		order[i] = ch
	}
	return order, nil
}

// Apply 按设备顺序排列逻辑 RGB
func (o ChannelOrder) Apply(r, g, b byte) (byte, byte, byte) {
	rgb := [3]byte{r, g, b}
	return rgb[o[0]], rgb[o[1]], rgb[o[2]]
}
