package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePage(t *testing.T) {
	tests := []struct {
		name                string
		page, limit         int
		wantPage, wantLimit int
	}{
		{"defaults", 0, 0, 1, 10},
		{"negative values", -3, -1, 1, 10},
		{"explicit values pass through", 2, 25, 2, 25},
		{"no upper bound on limit", 1, 100000, 1, 100000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := normalizePage(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestPaginate(t *testing.T) {
	tests := []struct {
		name                string
		page, limit, total  int
		wantPages           int
	}{
		{"exact division", 1, 10, 30, 3},
		{"partial last page", 1, 10, 31, 4},
		{"empty result", 1, 10, 0, 0},
		{"single row", 1, 10, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := paginate(tt.page, tt.limit, tt.total)
			assert.Equal(t, tt.page, p.Page)
			assert.Equal(t, tt.limit, p.Limit)
			assert.Equal(t, tt.total, p.Total)
			assert.Equal(t, tt.wantPages, p.Pages)
		})
	}
}
