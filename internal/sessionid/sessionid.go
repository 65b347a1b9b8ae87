// Package sessionid creates sortable identifiers for play sessions. An id is
// a UUIDv7 written as 26 characters of lowercase Crockford base32, so ids
// created later sort after earlier ones.
package sessionid

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
	"io"
	"strings"

	"github.com/coder/quartz"
)

// Crockford's base32 alphabet, lowercase
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

// Length is the number of characters in an id
const Length = 26

var encoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// Generator creates ids from a clock and a source of random bytes
type Generator struct {
	clock quartz.Clock
	rand  io.Reader
}

// NewGenerator creates a generator. Nil arguments use the real clock and
// crypto/rand.
func NewGenerator(clock quartz.Clock, random io.Reader) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	if random == nil {
		random = rand.Reader
	}
	return &Generator{clock: clock, rand: random}
}

// New creates an id with the real clock and crypto/rand
func New() (string, error) {
	return NewGenerator(nil, nil).New()
}

// New creates an id for the current time
func (g *Generator) New() (string, error) {
	var uuid [16]byte

	// 48-bit millisecond timestamp, then random bits
	now := g.clock.Now().UnixMilli()
	for i := range 6 {
		uuid[i] = byte(now >> (40 - 8*i))
	}
	if _, err := io.ReadFull(g.rand, uuid[6:]); err != nil {
		return "", fmt.Errorf("session id: %w", err)
	}

	uuid[6] = (uuid[6] & 0x0f) | 0x70 // version 7
	uuid[8] = (uuid[8] & 0x3f) | 0x80 // variant 10

	return encoding.EncodeToString(uuid[:]), nil
}

// Validate checks that id looks like one this package created
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("session id must be exactly %d characters, got %d", Length, len(id))
	}
	for i, char := range id {
		if !strings.ContainsRune(alphabet, char) {
			return fmt.Errorf("invalid character %c at position %d", char, i)
		}
	}
	raw, err := encoding.DecodeString(id)
	if err != nil {
		return fmt.Errorf("session id: %w", err)
	}
	if raw[6]>>4 != 7 {
		return fmt.Errorf("session id is not a version 7 uuid")
	}
	return nil
}
