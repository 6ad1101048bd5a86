package server

import "snowtree/model"

// EncodedFrame 按游程编码的一帧颜色
// 雪花效果中大部分 LED 是熄灭的，相同颜色连续出现的段落很长
type EncodedFrame struct {
	Frame uint64   `json:"frame"`
	Leds  int      `json:"leds"`
	Runs  [][4]int `json:"runs"` // r, g, b, 长度
}

func EncodeFrame(frame uint64, colors []model.Color) EncodedFrame {
	runs := make([][4]int, 0)
	for i := 0; i < len(colors); {
		r, g, b := colors[i].Bytes()
		length := 0
		for i < len(colors) {
			r1, g1, b1 := colors[i].Bytes()
			if r1 != r || g1 != g || b1 != b {
				break
			}
			length++
			i++
		}
		runs = append(runs, [4]int{int(r), int(g), int(b), length})
	}
	return EncodedFrame{
		Frame: frame,
		Leds:  len(colors),
		Runs:  runs,
	}
}
