package seatmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRowLabel(t *testing.T) {
	cases := map[int]string{
		-1:  "",
		0:   "A",
		1:   "B",
		25:  "Z",
		26:  "AA",
		27:  "AB",
		51:  "AZ",
		52:  "BA",
		701: "ZZ",
		702: "AAA",
	}
	for in, want := range cases {
		assert.Equal(t, want, RowLabel(in), "index %d", in)
	}
}

func TestRowIndex_RoundTrip(t *testing.T) {
	for i := 0; i < 800; i++ {
		got, ok := RowIndex(RowLabel(i))
		assert.True(t, ok)
		assert.Equal(t, i, got)
	}
	got, ok := RowIndex(" ab ")
	assert.True(t, ok)
	assert.Equal(t, 27, got)

	for _, bad := range []string{"", "A1", "Ä"} {
		_, ok := RowIndex(bad)
		assert.False(t, ok, bad)
	}
}

func TestSeatLabel(t *testing.T) {
	assert.Equal(t, "1", ColumnLabel(0))
	assert.Equal(t, "B3", Seat{Row: 1, Column: 2}.Label())
	assert.Equal(t, "AA10", Seat{Row: 26, Column: 9}.Label())
}
