package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeLimit(0))
	assert.Equal(t, DefaultLimit, NormalizeLimit(-5))
	assert.Equal(t, 40, NormalizeLimit(40))
	assert.Equal(t, MaxLimit, NormalizeLimit(500))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Params{Page: 1, Limit: 20}.Offset())
	assert.Equal(t, 40, Params{Page: 3, Limit: 20}.Offset())
	assert.Equal(t, 0, Params{Page: 0, Limit: 0}.Offset())
}

func TestBuildMeta(t *testing.T) {
	meta := BuildMeta(Params{Page: 2, Limit: 20}, 45)
	assert.Equal(t, 2, meta.CurrentPage)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, int64(45), meta.TotalItems)
	assert.True(t, meta.HasNext)
	assert.True(t, meta.HasPrev)

	last := BuildMeta(Params{Page: 3, Limit: 20}, 45)
	assert.False(t, last.HasNext)
	assert.True(t, last.HasPrev)
}

func TestBuildMetaEmpty(t *testing.T) {
	meta := BuildMeta(Params{Page: 1, Limit: 20}, 0)
	assert.Equal(t, 1, meta.CurrentPage)
	assert.Equal(t, 0, meta.TotalPages)
	assert.Equal(t, int64(0), meta.TotalItems)
	assert.False(t, meta.HasNext)
	assert.False(t, meta.HasPrev)
}
