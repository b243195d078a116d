package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageCursor_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cursor  PageCursor
		wantErr bool
	}{
		{"minimum limit", PageCursor{Offset: 0, Limit: 1}, false},
		{"maximum limit", PageCursor{Offset: 400, Limit: 200}, false},
		{"zero limit", PageCursor{Offset: 0, Limit: 0}, true},
		{"limit over maximum", PageCursor{Offset: 0, Limit: 201}, true},
		{"negative offset", PageCursor{Offset: -20, Limit: 20}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cursor.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidPaging))
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPageCursor_Navigation(t *testing.T) {
	c := NewPageCursor(20)
	assert.True(t, c.AtStart())

	c = c.Next()
	assert.Equal(t, PageCursor{Offset: 20, Limit: 20}, c)

	c = c.Next()
	assert.Equal(t, 40, c.Offset)

	c = c.Prev()
	assert.Equal(t, 20, c.Offset)

	c = c.Reset()
	assert.Equal(t, PageCursor{Offset: 0, Limit: 20}, c)
}

func TestPageCursor_PrevClampsAtZero(t *testing.T) {
	c := PageCursor{Offset: 0, Limit: 50}
	assert.Equal(t, 0, c.Prev().Offset)
}

func TestPageCursor_WithLimitResetsOffset(t *testing.T) {
	c := PageCursor{Offset: 60, Limit: 20}.WithLimit(50)
	assert.Equal(t, PageCursor{Offset: 0, Limit: 50}, c)
}

func TestPageCursor_OffsetStaysMultipleOfLimit(t *testing.T) {
	c := NewPageCursor(7)
	for i := 0; i < 5; i++ {
		c = c.Next()
	}
	c = c.Prev().Prev()
	assert.Zero(t, c.Offset%c.Limit)
}
