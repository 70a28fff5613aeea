package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPaginatedResponse(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		limit      int
		total      int64
		totalPages int
		previous   *int
		next       *int
	}{
		{name: "first of three", page: 1, limit: 5, total: 12, totalPages: 3, previous: nil, next: intp(2)},
		{name: "middle page", page: 2, limit: 5, total: 12, totalPages: 3, previous: intp(1), next: intp(3)},
		{name: "last page", page: 3, limit: 5, total: 12, totalPages: 3, previous: intp(2), next: nil},
		{name: "past the end", page: 4, limit: 5, total: 12, totalPages: 3, previous: intp(3), next: nil},
		{name: "empty store", page: 1, limit: 5, total: 0, totalPages: 0, previous: nil, next: nil},
		{name: "exact multiple", page: 1, limit: 5, total: 10, totalPages: 2, previous: nil, next: intp(2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewPaginatedResponse([]int(nil), tt.page, tt.limit, tt.total)
			require.NotNil(t, resp.Data)

			assert.Equal(t, tt.totalPages, resp.Pagination.TotalPages)
			assert.Equal(t, tt.page, resp.Pagination.CurrentPage)
			assert.Equal(t, tt.previous, resp.Pagination.PreviousPage)
			assert.Equal(t, tt.next, resp.Pagination.NextPage)
		})
	}
}

func intp(n int) *int { return &n }
