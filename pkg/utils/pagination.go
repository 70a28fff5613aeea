package utils

func CalculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

func CalculateOffset(page, perPage int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * perPage
}

// PreviousPage returns page-1, or nil on the first page.
func PreviousPage(page int) *int {
	if page-1 > 0 {
		return IntPtr(page - 1)
	}
	return nil
}

// NextPage returns page+1 while it does not run past totalPages.
func NextPage(page, totalPages int) *int {
	if page+1 <= totalPages {
		return IntPtr(page + 1)
	}
	return nil
}
