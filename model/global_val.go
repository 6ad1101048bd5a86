package model

// 默认参数
// 1. 雪花颜色，白色
// 2. 帧率 10 帧/秒
// 3. 相邻 LED 的最大距离，单位与坐标文件一致
// 4. 亮度等级数，也是一颗雪花熄灭所需的帧数

const (
	DefaultColor     = "#ffffff"
	DefaultFrameRate = 10
	DefaultMaxDist   = 100.0
	DefaultSteps     = 5

	// 帧统计窗口
	DefaultStatsWindow = 50
)
