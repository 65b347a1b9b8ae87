package sessionid

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	id, err := New()
	require.NoError(t, err)
	assert.Len(t, id, Length)
	require.NoError(t, Validate(id))
}

func TestNew_Unique(t *testing.T) {
	ids := make(map[string]bool)
	for range 100 {
		id, err := New()
		require.NoError(t, err)
		assert.False(t, ids[id], "duplicate id %s", id)
		ids[id] = true
	}
}

func TestGenerator_SortsByTime(t *testing.T) {
	clock := quartz.NewMock(t)
	clock.Set(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	g := NewGenerator(clock, nil)

	var ids []string
	for range 10 {
		id, err := g.New()
		require.NoError(t, err)
		ids = append(ids, id)
		clock.Advance(time.Millisecond)
	}

	for i := 1; i < len(ids); i++ {
		assert.Less(t, ids[i-1], ids[i])
	}
}

func TestGenerator_Deterministic(t *testing.T) {
	clock := quartz.NewMock(t)
	clock.Set(time.UnixMilli(0x0123456789ab))

	random := bytes.Repeat([]byte{0xff}, 10)
	id, err := NewGenerator(clock, bytes.NewReader(random)).New()
	require.NoError(t, err)

	again, err := NewGenerator(clock, bytes.NewReader(random)).New()
	require.NoError(t, err)
	assert.Equal(t, id, again)
	require.NoError(t, Validate(id))

	raw, err := encoding.DecodeString(id)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x23, 0x45, 0x67, 0x89, 0xab}, raw[:6])
	assert.Equal(t, byte(0x7f), raw[6])
	assert.Equal(t, byte(0xbf), raw[8])
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("no entropy") }

func TestGenerator_RandomFailure(t *testing.T) {
	_, err := NewGenerator(nil, failingReader{}).New()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no entropy")
}

func TestValidate(t *testing.T) {
	valid, err := New()
	require.NoError(t, err)

	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"generated", valid, false},
		{"too short", valid[:20], true},
		{"too long", valid + "00", true},
		{"uppercase", "01H5N0ET5Q6MT3V7MS1234ABCD", true},
		{"excluded letter", "01h5n0et5q6mt3v7ms1234abci", true},
		{"not version 7", "00000000000000000000000000", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.id)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
