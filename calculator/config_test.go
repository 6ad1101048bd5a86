package calculator

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/ini.v1"
	"snowtree/sink"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.ini"))
	require.NoError(t, err)

	assert.InDelta(t, 255.0, cfg.Color.R, 1e-9)
	assert.InDelta(t, 255.0, cfg.Color.G, 1e-9)
	assert.InDelta(t, 255.0, cfg.Color.B, 1e-9)
	assert.Equal(t, 10.0, cfg.FrameRate)
	assert.Equal(t, 100*time.Millisecond, cfg.FrameTime())
	assert.Equal(t, 100.0, cfg.MaxDist)
	assert.Equal(t, 5, cfg.Steps)
	assert.Equal(t, int64(0), cfg.Seed)
	assert.Equal(t, "coords.txt", cfg.Coords)
	assert.Equal(t, log.InfoLevel, cfg.LogLevel)
	assert.Equal(t, sink.KindTerminal, cfg.Sink.Kind)
	assert.Equal(t, "GRB", cfg.Sink.Order)
	assert.Equal(t, sink.PortOptions{BaudRate: 115200, DataBits: 8, StopBits: 1, Parity: "N"}, cfg.Sink.Serial)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.ini")
	data := `
[snow]
Color     = ff8000
FrameRate = 25
MaxDist   = 42.5
Steps     = 8
Seed      = 1234

[sink]
Kind  = serial
Port  = /dev/ttyACM0
Baud     = 500000
DataBits = 7
StopBits = 2
Parity   = even
Order    = rgb

[log]
Level = debug
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.InDelta(t, 255.0, cfg.Color.R, 1e-9)
	assert.InDelta(t, 128.0, cfg.Color.G, 1e-9)
	assert.InDelta(t, 0.0, cfg.Color.B, 1e-9)
	assert.Equal(t, 40*time.Millisecond, cfg.FrameTime())
	assert.Equal(t, 42.5, cfg.MaxDist)
	assert.Equal(t, 8, cfg.Steps)
	assert.Equal(t, int64(1234), cfg.Seed)
	assert.Equal(t, sink.KindSerial, cfg.Sink.Kind)
	assert.Equal(t, "/dev/ttyACM0", cfg.Sink.Port)
	assert.Equal(t, sink.PortOptions{BaudRate: 500000, DataBits: 7, StopBits: 2, Parity: "even"}, cfg.Sink.Serial)
	assert.Equal(t, log.DebugLevel, cfg.LogLevel)
}

func TestLoadConfig_Unparsable(t *testing.T) {
	cases := map[string]string{
		"steps":      "[snow]\nSteps = abc\n",
		"frame rate": "[snow]\nFrameRate = fast\n",
		"distance":   "[snow]\nMaxDist = 1,5\n",
		"seed":       "[snow]\nSeed = 0x\n",
		"window":     "[snow]\nStatsWindow = 5.5\n",
		"baud":       "[sink]\nBaud = high\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			file, err := ini.Load([]byte(data))
			require.NoError(t, err)
			cfg, err := loadCfg(file)
			assert.Error(t, err)
			assert.Nil(t, cfg)
		})
	}

	t.Run("empty value uses default", func(t *testing.T) {
		file, err := ini.Load([]byte("[snow]\nSteps =\nSeed =\n"))
		require.NoError(t, err)
		cfg, err := loadCfg(file)
		require.NoError(t, err)
		assert.Equal(t, 5, cfg.Steps)
		assert.Equal(t, int64(0), cfg.Seed)
	})
}

func TestParseColor(t *testing.T) {
	for name, data := range map[string]string{
		"bare hex":  "[snow]\nColor = 00ff00\n",
		"backticks": "[snow]\nColor = `#00ff00`\n",
		"short":     "[snow]\nColor = 0f0\n",
	} {
		t.Run(name, func(t *testing.T) {
			file, err := ini.Load([]byte(data))
			require.NoError(t, err)
			cfg, err := loadCfg(file)
			require.NoError(t, err)
			assert.InDelta(t, 0.0, cfg.Color.R, 1e-9)
			assert.InDelta(t, 255.0, cfg.Color.G, 1e-9)
			assert.InDelta(t, 0.0, cfg.Color.B, 1e-9)
		})
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	cases := map[string]string{
		"steps":      "[snow]\nSteps = 0\n",
		"frame rate": "[snow]\nFrameRate = 0\n",
		"distance":   "[snow]\nMaxDist = -1\n",
		"color":      "[snow]\nColor = white\n",
		"order":      "[sink]\nOrder = RGX\n",
		"log level":  "[log]\nLevel = loud\n",
		"window":     "[snow]\nStatsWindow = 0\n",
		"data bits":  "[sink]\nDataBits = 9\n",
		"stop bits":  "[sink]\nStopBits = 3\n",
		"parity":     "[sink]\nParity = mark\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			file, err := ini.Load([]byte(data))
			require.NoError(t, err)
			_, err = loadCfg(file)
			assert.Error(t, err)
		})
	}
}
