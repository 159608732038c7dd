package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePagination(t *testing.T) {
	tests := []struct {
		name      string
		page      int
		limit     int
		wantPage  int
		wantLimit int
	}{
		{name: "defaults", page: 0, limit: 0, wantPage: 1, wantLimit: 10},
		{name: "negative page clamps to one", page: -3, limit: 20, wantPage: 1, wantLimit: 20},
		{name: "limit above cap lowered silently", page: 2, limit: 500, wantPage: 2, wantLimit: 50},
		{name: "limit at cap kept", page: 1, limit: 50, wantPage: 1, wantLimit: 50},
		{name: "negative limit gets default", page: 1, limit: -1, wantPage: 1, wantLimit: 10},
		{name: "in range untouched", page: 7, limit: 25, wantPage: 7, wantLimit: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, limit := NormalizePagination(tt.page, tt.limit)
			assert.Equal(t, tt.wantPage, page)
			assert.Equal(t, tt.wantLimit, limit)
		})
	}
}

func TestTotalPages(t *testing.T) {
	tests := []struct {
		name  string
		total int64
		limit int
		want  int
	}{
		{name: "zero results", total: 0, limit: 10, want: 0},
		{name: "exact multiple", total: 20, limit: 10, want: 2},
		{name: "partial last page", total: 21, limit: 10, want: 3},
		{name: "single result", total: 1, limit: 50, want: 1},
		{name: "zero limit", total: 10, limit: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TotalPages(tt.total, tt.limit))
		})
	}
}
