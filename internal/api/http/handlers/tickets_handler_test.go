package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginationDefaults(t *testing.T) {
	limit, offset := pagination("", "")
	assert.Equal(t, defaultPageSize, limit)
	assert.Equal(t, 0, offset)
}

func TestPaginationCapsPageSize(t *testing.T) {
	limit, offset := pagination("1", "1000000")
	assert.Equal(t, maxPageSize, limit)
	assert.Equal(t, 0, offset)

	limit, offset = pagination("3", "1000000")
	assert.Equal(t, maxPageSize, limit)
	assert.Equal(t, 2*maxPageSize, offset)
}

func TestPaginationIgnoresBadValues(t *testing.T) {
	limit, offset := pagination("zero", "-5")
	assert.Equal(t, defaultPageSize, limit)
	assert.Equal(t, 0, offset)

	limit, offset = pagination("2", "10")
	assert.Equal(t, 10, limit)
	assert.Equal(t, 10, offset)
}
