package editor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/cinema-seat-editor/internal/seatmap"
)

func TestPendingAction_Describe(t *testing.T) {
	cases := []struct {
		action PendingAction
		want   string
	}{
		{PendingAction{AddRow, 1}, "insert a new row after row B"},
		{PendingAction{AddRow, -1}, "insert a new row before row A"},
		{PendingAction{AddColumn, 0}, "insert a new column after column 1"},
		{PendingAction{AddColumn, -1}, "insert a new column before column 1"},
		{PendingAction{RemoveRow, 27}, "remove row AB"},
		{PendingAction{RemoveColumn, 2}, "remove column 3"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.action.Describe())
	}
}

func TestConfirmer_Lifecycle(t *testing.T) {
	m, err := seatmap.Generate(2, 2)
	require.NoError(t, err)
	var c Confirmer

	assert.False(t, c.Busy())
	assert.Empty(t, c.Prompt())

	prompt, err := c.Request(PendingAction{Type: RemoveRow, Index: 1}, m)
	require.NoError(t, err)
	assert.Equal(t, "remove row B", prompt)
	assert.Equal(t, prompt, c.Prompt())
	assert.True(t, c.Busy())

	a, err := c.Confirm(&m)
	require.NoError(t, err)
	assert.Equal(t, RemoveRow, a.Type)
	assert.Equal(t, 1, m.Rows())
	assert.False(t, c.Busy())
}

func TestMode_Toggle(t *testing.T) {
	assert.Equal(t, ModePreview, ModeEdit.Toggle())
	assert.Equal(t, ModeEdit, ModePreview.Toggle())
	assert.Equal(t, ModePreview, Mode("").Toggle())
	assert.True(t, ModeEdit.Editable())
	assert.False(t, ModePreview.Editable())
}

func TestMode_Controls(t *testing.T) {
	assert.Equal(t, Controls{SeatClicks: true, Structural: true, RowType: true, BatchApply: true}, ModeEdit.Controls(false))
	assert.Equal(t, Controls{SeatClicks: true, RowType: true, BatchApply: true}, ModeEdit.Controls(true))
	assert.Equal(t, Controls{}, ModePreview.Controls(false))
}

func TestSelection(t *testing.T) {
	s := Selection{}
	assert.True(t, s.Toggle("1-0"))
	assert.True(t, s.Toggle("0-1"))
	assert.False(t, s.Toggle("1-0"))
	assert.True(t, s.Has("0-1"))
	assert.Equal(t, []string{"0-1"}, s.IDs())

	b, err := json.Marshal(Selection{"b": {}, "a": {}})
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(b))

	var back Selection
	require.NoError(t, json.Unmarshal(b, &back))
	assert.True(t, back.Has("a"))

	s.Clear()
	assert.Empty(t, s.IDs())
}
