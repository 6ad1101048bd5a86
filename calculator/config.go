package calculator

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	log "github.com/sirupsen/logrus"
	"gopkg.in/ini.v1"
	"snowtree/model"
	"snowtree/sink"
)

type Config struct {
	Color       model.Color
	FrameRate   float64 // 帧/秒
	MaxDist     float64
	Steps       int
	Seed        int64 // 0 表示按时间取种子
	StatsWindow int

	Coords   string
	LogLevel log.Level
	LogFile  string

	Sink sink.Options
}

// LoadConfig 读取配置文件，文件不存在时使用默认值
func LoadConfig(path string) (*Config, error) {
	file := ini.Empty()
	if path != "" {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			log.WithField("path", path).Warn("配置文件不存在，使用默认配置")
		} else {
			f, err := ini.Load(path)
			if err != nil {
				return nil, fmt.Errorf("load config %s: %w", path, err)
			}
			file = f
		}
	}
	return loadCfg(file)
}

func loadCfg(file *ini.File) (*Config, error) {
	snow := file.Section("snow")
	out := file.Section("sink")
	r := &keyReader{}

	color, err := parseColor(snow.Key("Color").MustString(model.DefaultColor))
	if err != nil {
		return nil, err
	}
	level, err := log.ParseLevel(file.Section("log").Key("Level").MustString("info"))
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	cfg := &Config{
		Color:       color,
		FrameRate:   r.readFloat(snow, "FrameRate", model.DefaultFrameRate),
		MaxDist:     r.readFloat(snow, "MaxDist", model.DefaultMaxDist),
		Steps:       r.readInt(snow, "Steps", model.DefaultSteps),
		Seed:        r.readInt64(snow, "Seed", 0),
		StatsWindow: r.readInt(snow, "StatsWindow", model.DefaultStatsWindow),
		Coords:      snow.Key("Coords").MustString("coords.txt"),
		LogLevel:    level,
		LogFile:     file.Section("log").Key("File").MustString(""),
		Sink: sink.Options{
			Kind:  out.Key("Kind").MustString(sink.KindTerminal),
			Port:  out.Key("Port").MustString("/dev/ttyUSB0"),
			Order: out.Key("Order").MustString("GRB"),
			Addr:  out.Key("Addr").MustString(":9000"),
			Serial: sink.PortOptions{
				BaudRate: r.readInt(out, "Baud", 115200),
				DataBits: r.readInt(out, "DataBits", 8),
				StopBits: r.readInt(out, "StopBits", 1),
				Parity:   out.Key("Parity").MustString("N"),
			},
		},
	}
	if r.err != nil {
		return nil, r.err
	}
	return cfg, cfg.Validate()
}

// keyReader 读取数值配置，记录第一个解析错误
// 缺省或空值使用默认值，写了但解析不了的值是错误
type keyReader struct {
	err error
}

func (r *keyReader) key(sec *ini.Section, name string) *ini.Key {
	if r.err != nil || !sec.HasKey(name) || strings.TrimSpace(sec.Key(name).String()) == "" {
		return nil
	}
	return sec.Key(name)
}

func (r *keyReader) fail(sec *ini.Section, name string, err error) {
	r.err = fmt.Errorf("[%s] %s: %w", sec.Name(), name, err)
}

func (r *keyReader) readInt(sec *ini.Section, name string, def int) int {
	k := r.key(sec, name)
	if k == nil {
		return def
	}
	v, err := k.Int()
	if err != nil {
		r.fail(sec, name, err)
	}
	return v
}

func (r *keyReader) readInt64(sec *ini.Section, name string, def int64) int64 {
	k := r.key(sec, name)
	if k == nil {
		return def
	}
	v, err := k.Int64()
	if err != nil {
		r.fail(sec, name, err)
	}
	return v
}

func (r *keyReader) readFloat(sec *ini.Section, name string, def float64) float64 {
	k := r.key(sec, name)
	if k == nil {
		return def
	}
	v, err := k.Float64()
	if err != nil {
		r.fail(sec, name, err)
	}
	return v
}

func (c *Config) Validate() error {
	if c.Steps < 1 {
		return fmt.Errorf("steps must be at least 1, got %d", c.Steps)
	}
	if c.FrameRate <= 0 {
		return fmt.Errorf("frame rate must be positive, got %v", c.FrameRate)
	}
	if c.MaxDist <= 0 {
		return fmt.Errorf("max distance must be positive, got %v", c.MaxDist)
	}
	if c.StatsWindow < 1 {
		return fmt.Errorf("stats window must be at least 1, got %d", c.StatsWindow)
	}
	if _, err := sink.ParseChannelOrder(c.Sink.Order); err != nil {
		return err
	}
	if _, err := c.Sink.Serial.Normalize(); err != nil {
		return fmt.Errorf("serial: %w", err)
	}
	return nil
}

// FrameTime 每帧的目标时长
func (c *Config) FrameTime() time.Duration {
	return time.Duration(float64(time.Second) / c.FrameRate)
}

// ini 把 # 当作注释，配置中的颜色可以省略 #
func parseColor(s string) (model.Color, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return model.Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return model.Color{R: c.R * 255, G: c.G * 255, B: c.B * 255}, nil
}
