package sink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial"
)

func TestPortOptions_Normalize(t *testing.T) {
	opts, err := PortOptions{}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, PortOptions{BaudRate: 115200, DataBits: 8, StopBits: 1, Parity: "N"}, opts)

	opts, err = PortOptions{BaudRate: 9600, Parity: " even "}.Normalize()
	require.NoError(t, err)
	assert.Equal(t, "E", opts.Parity)
	assert.Equal(t, 9600, opts.BaudRate)

	for name, bad := range map[string]PortOptions{
		"data bits": {DataBits: 9},
		"stop bits": {StopBits: 3},
		"parity":    {Parity: "mark"},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := bad.Normalize()
			assert.Error(t, err)
		})
	}
}

func TestPortOptions_SerialMode(t *testing.T) {
	mode, err := PortOptions{StopBits: 2, Parity: "O"}.SerialMode()
	require.NoError(t, err)
	assert.Equal(t, &serial.Mode{
		BaudRate: 115200,
		DataBits: 8,
		Parity:   serial.OddParity,
		StopBits: serial.TwoStopBits,
	}, mode)

	mode, err = PortOptions{}.SerialMode()
	require.NoError(t, err)
	assert.Equal(t, serial.OneStopBit, mode.StopBits)
	assert.Equal(t, serial.NoParity, mode.Parity)
}
