package blockio_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xaionaro-go/bytesextra"

	"github.com/gofat32/shell/internal/blockio"
)

func TestReadWriteSectorRoundTrip(t *testing.T) {
	raw := make([]byte, 4*512)
	stream := bytesextra.NewReadWriteSeeker(raw)
	dev := blockio.New(stream, 512)

	payload := make([]byte, 512)
	for i := range payload {
		payload[i] = byte(i)
	}
	require.NoError(t, dev.WriteSector(2, payload))

	got := make([]byte, 512)
	require.NoError(t, dev.ReadSector(2, got))
	assert.Equal(t, payload, got)
}

func TestReadSectorRejectsWrongBufferSize(t *testing.T) {
	raw := make([]byte, 2*512)
	stream := bytesextra.NewReadWriteSeeker(raw)
	dev := blockio.New(stream, 512)

	err := dev.ReadSector(0, make([]byte, 10))
	assert.Error(t, err)
}

func TestWriteSectorRejectsWrongBufferSize(t *testing.T) {
	raw := make([]byte, 2*512)
	stream := bytesextra.NewReadWriteSeeker(raw)
	dev := blockio.New(stream, 512)

	err := dev.WriteSector(0, make([]byte, 10))
	assert.Error(t, err)
}
