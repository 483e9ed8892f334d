// internal/writer/modbus/client_test.go
package modbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackRegisters_BigEndian(t *testing.T) {
	got := packRegisters([]uint16{0x0102, 0xA0B0, 0x0000})
	assert.Equal(t, []byte{0x01, 0x02, 0xA0, 0xB0, 0x00, 0x00}, got)
}

func TestWriteRegisters_RejectsNonHoldingArea(t *testing.T) {
	c := &EndpointClient{}
	err := c.WriteRegisters(4, 1, 0, []uint16{1})
	assert.Error(t, err)
}

func TestWriteRegisters_EmptyRunIsNoop(t *testing.T) {
	c := &EndpointClient{}
	assert.NoError(t, c.WriteRegisters(areaHoldingRegisters, 1, 0, nil))
}

func TestNewEndpointClient_RequiresEndpoint(t *testing.T) {
	_, err := NewEndpointClient(Config{})
	assert.Error(t, err)
}
