package response

import "user-account/pkg/utils"

type PaginatedResponse[T any] struct {
	Data       []T            `json:"data"`
	Pagination PaginationMeta `json:"pagination"`
}

type PaginationMeta struct {
	TotalPages   int  `json:"totalPages"`
	CurrentPage  int  `json:"currentPage"`
	PreviousPage *int `json:"previousPage"`
	NextPage     *int `json:"nextPage"`
}

func NewPaginatedResponse[T any](data []T, page, limit int, total int64) *PaginatedResponse[T] {
	if data == nil {
		data = []T{}
	}
	totalPages := utils.CalculateTotalPages(total, limit)

	return &PaginatedResponse[T]{
		Data: data,
		Pagination: PaginationMeta{
			TotalPages:   totalPages,
			CurrentPage:  page,
			PreviousPage: utils.PreviousPage(page),
			NextPage:     utils.NextPage(page, totalPages),
		},
	}
}
