package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/playabrava/gestor-camping/internal/application/dto"
)

func TestPaginate(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, items, dto.Paginate(items, dto.PageRequest{}))
	assert.Equal(t, []int{1, 2}, dto.Paginate(items, dto.PageRequest{Limit: 2}))
	assert.Equal(t, []int{3, 4}, dto.Paginate(items, dto.PageRequest{Limit: 2, Offset: 2}))
	assert.Equal(t, []int{5}, dto.Paginate(items, dto.PageRequest{Limit: 2, Offset: 4}))
	assert.Empty(t, dto.Paginate(items, dto.PageRequest{Offset: 9}))
	assert.Equal(t, items, dto.Paginate(items, dto.PageRequest{Limit: -1, Offset: -3}))
}

func TestPageRequest_NormalizeAplicaTope(t *testing.T) {
	p := dto.PageRequest{Limit: 500, Offset: -1}
	p.Normalize()
	assert.Equal(t, dto.MaxPageLimit, p.Limit)
	assert.Equal(t, 0, p.Offset)
}
