package shared

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBaseEntity(t *testing.T) {
	e := NewBaseEntity()

	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.False(t, e.CreatedAt.IsZero())
	assert.Equal(t, e.CreatedAt, e.UpdatedAt)
}

func TestBaseEntity_Touch(t *testing.T) {
	e := NewBaseEntity()
	before := e.UpdatedAt

	time.Sleep(time.Millisecond)
	e.Touch()

	assert.True(t, e.UpdatedAt.After(before))
	assert.Equal(t, before, e.CreatedAt, "Touch must not move CreatedAt")
}

func TestDefaultFilter(t *testing.T) {
	f := DefaultFilter()

	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.PageSize)
	assert.Equal(t, "created_at", f.OrderBy)
	assert.Equal(t, "desc", f.OrderDir)
	require.NotNil(t, f.Filters)
}

func TestNewPaginated(t *testing.T) {
	tests := []struct {
		name       string
		total      int64
		pageSize   int
		totalPages int
	}{
		{"exact fit", 40, 20, 2},
		{"partial last page", 41, 20, 3},
		{"single page", 5, 20, 1},
		{"empty", 0, 20, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPaginated([]string{}, tt.total, 1, tt.pageSize)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.totalPages, p.TotalPages)
			assert.Equal(t, tt.pageSize, p.PageSize)
		})
	}
}
