package ledger

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestSelectFromList(t *testing.T) {
	tests := []struct {
		name     string
		items    []string
		position int
		want     string
		wantErr  error
	}{
		{
			name:     "empty list",
			items:    nil,
			position: 1,
			wantErr:  &EmptySelectionError{},
		},
		{
			name:     "position past end",
			items:    []string{"a", "b", "c"},
			position: 5,
			wantErr:  &OutOfRangeError{Position: 5, Length: 3},
		},
		{
			name:     "position zero",
			items:    []string{"a", "b", "c"},
			position: 0,
			wantErr:  &OutOfRangeError{Position: 0, Length: 3},
		},
		{
			name:     "negative position",
			items:    []string{"a"},
			position: -1,
			wantErr:  &OutOfRangeError{Position: -1, Length: 1},
		},
		{
			name:     "second of three",
			items:    []string{"a", "b", "c"},
			position: 2,
			want:     "b",
		},
		{
			name:     "first element",
			items:    []string{"a", "b"},
			position: 1,
			want:     "a",
		},
		{
			name:     "last element",
			items:    []string{"a", "b"},
			position: 2,
			want:     "b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectFromList(tt.items, tt.position)

			if tt.wantErr != nil {
				assert.Error(t, err)
				assert.Equal(t, tt.wantErr.Error(), err.Error())
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectFromList_DoesNotRemove(t *testing.T) {
	items := []int{10, 20, 30}

	got, err := SelectFromList(items, 3)
	assert.NoError(t, err)
	assert.Equal(t, 30, got)
	assert.Equal(t, []int{10, 20, 30}, items)
}

func TestSelectFromList_TypedErrors(t *testing.T) {
	_, err := SelectFromList([]int(nil), 1)
	_, ok := err.(*EmptySelectionError)
	assert.True(t, ok, "should be EmptySelectionError")

	_, err = SelectFromList([]int{1}, 2)
	oor, ok := err.(*OutOfRangeError)
	assert.True(t, ok, "should be OutOfRangeError")
	assert.Equal(t, 2, oor.Position)
	assert.Equal(t, 1, oor.Length)
}
