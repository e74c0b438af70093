package navigation

import "testing"

func TestCursorAtStartAtEnd(t *testing.T) {
	tests := []struct {
		name      string
		cursor    Cursor
		wantStart bool
		wantEnd   bool
	}{
		{
			name:      "empty list",
			cursor:    Cursor{Index: 0, Count: 0},
			wantStart: true,
			wantEnd:   true,
		},
		{
			name:      "single POI",
			cursor:    Cursor{Index: 0, Count: 1},
			wantStart: true,
			wantEnd:   true,
		},
		{
			name:      "first of several",
			cursor:    Cursor{Index: 0, Count: 3},
			wantStart: true,
			wantEnd:   false,
		},
		{
			name:      "interior",
			cursor:    Cursor{Index: 1, Count: 3},
			wantStart: false,
			wantEnd:   false,
		},
		{
			name:      "last of several",
			cursor:    Cursor{Index: 2, Count: 3},
			wantStart: false,
			wantEnd:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cursor.AtStart(); got != tt.wantStart {
				t.Errorf("AtStart() = %v, want %v", got, tt.wantStart)
			}
			if got := tt.cursor.AtEnd(); got != tt.wantEnd {
				t.Errorf("AtEnd() = %v, want %v", got, tt.wantEnd)
			}
		})
	}
}
