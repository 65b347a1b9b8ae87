package deck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardString(t *testing.T) {
	assert.Equal(t, "A♠", NewCard(Ace, Spades).String())
	assert.Equal(t, "10♥", NewCard(Ten, Hearts).String())
	assert.Equal(t, "K♣", NewCard(King, Clubs).String())
	assert.Equal(t, "7♦", NewCard(Seven, Diamonds).String())
}

func TestRankPoints(t *testing.T) {
	tests := []struct {
		rank Rank
		want int
	}{
		{Ace, 11},
		{Two, 2},
		{Nine, 9},
		{Ten, 10},
		{Jack, 10},
		{Queen, 10},
		{King, 10},
	}
	for _, tt := range tests {
		t.Run(tt.rank.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rank.Points())
		})
	}
}

func TestCardPredicates(t *testing.T) {
	assert.True(t, NewCard(Ace, Spades).IsAce())
	assert.True(t, NewCard(Two, Diamonds).IsRed())
	assert.False(t, NewCard(Two, Clubs).IsRed())
}

func TestParseCards(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:     "suit symbols",
			input:    "A♠ K♥",
			expected: []Card{{Ace, Spades}, {King, Hearts}},
		},
		{
			name:     "letter suits",
			input:    "9d 7c",
			expected: []Card{{Nine, Diamonds}, {Seven, Clubs}},
		},
		{
			name:     "ten as T and 10",
			input:    "Ts 10h",
			expected: []Card{{Ten, Spades}, {Ten, Hearts}},
		},
		{
			name:     "case insensitive",
			input:    "aS qD",
			expected: []Card{{Ace, Spades}, {Queen, Diamonds}},
		},
		{
			name:     "empty string",
			input:    "",
			expected: []Card{},
		},
		{
			name:    "invalid rank",
			input:   "X♠",
			wantErr: true,
		},
		{
			name:    "invalid suit",
			input:   "Ax",
			wantErr: true,
		},
		{
			name:    "missing rank",
			input:   "♠",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestParseCardRoundTrip(t *testing.T) {
	for _, suit := range Suits {
		for _, rank := range Ranks {
			c := NewCard(rank, suit)
			got, err := ParseCard(c.String())
			require.NoError(t, err)
			assert.Equal(t, c, got)
		}
	}
}
