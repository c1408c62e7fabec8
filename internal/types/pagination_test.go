package types

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	tests := []struct {
		name          string
		contentLen    int
		pageNumber    int
		pageSize      int
		totalElements int
		wantPages     int
		wantFirst     bool
		wantLast      bool
	}{
		{
			name:          "single full page",
			contentLen:    20,
			pageNumber:    0,
			pageSize:      20,
			totalElements: 20,
			wantPages:     1,
			wantFirst:     true,
			wantLast:      true,
		},
		{
			name:          "first of three",
			contentLen:    20,
			pageNumber:    0,
			pageSize:      20,
			totalElements: 45,
			wantPages:     3,
			wantFirst:     true,
			wantLast:      false,
		},
		{
			name:          "middle page",
			contentLen:    20,
			pageNumber:    1,
			pageSize:      20,
			totalElements: 45,
			wantPages:     3,
			wantFirst:     false,
			wantLast:      false,
		},
		{
			name:          "partial last page",
			contentLen:    5,
			pageNumber:    2,
			pageSize:      20,
			totalElements: 45,
			wantPages:     3,
			wantFirst:     false,
			wantLast:      true,
		},
		{
			name:          "empty result set",
			contentLen:    0,
			pageNumber:    0,
			pageSize:      20,
			totalElements: 0,
			wantPages:     0,
			wantFirst:     true,
			wantLast:      true,
		},
		{
			name:          "page past the end",
			contentLen:    0,
			pageNumber:    7,
			pageSize:      20,
			totalElements: 45,
			wantPages:     3,
			wantFirst:     false,
			wantLast:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content := make([]string, tt.contentLen)
			for i := range content {
				content[i] = strconv.Itoa(i)
			}

			page := NewPage(content, tt.pageNumber, tt.pageSize, tt.totalElements)

			assert.Equal(t, tt.pageNumber, page.PageNumber)
			assert.Equal(t, tt.pageSize, page.PageSize)
			assert.Equal(t, tt.totalElements, page.TotalElements)
			assert.Equal(t, tt.wantPages, page.TotalPages)
			assert.Equal(t, tt.wantFirst, page.First)
			assert.Equal(t, tt.wantLast, page.Last)
			assert.Len(t, page.Content, tt.contentLen)
		})
	}
}

func TestMapPage(t *testing.T) {
	page := NewPage([]int{1, 2, 3}, 1, 3, 10)

	mapped := MapPage(page, func(n int) string {
		return strconv.Itoa(n * 10)
	})

	assert.Equal(t, []string{"10", "20", "30"}, mapped.Content)
	assert.Equal(t, page.PageNumber, mapped.PageNumber)
	assert.Equal(t, page.TotalElements, mapped.TotalElements)
	assert.Equal(t, page.TotalPages, mapped.TotalPages)
	assert.Equal(t, page.First, mapped.First)
	assert.Equal(t, page.Last, mapped.Last)
}
