package engine

// Paginate slices one page out of records. Out-of-range pages, including
// page < 1, yield an empty page. perPage must be positive.
func Paginate[T any](records []T, page, perPage int) ([]T, PaginationInfo) {
	total := len(records)
	info := PaginationInfo{
		TotalItems: total,
		TotalPages: TotalPages(total, perPage),
	}

	start := (page - 1) * perPage
	if start < 0 || start >= total {
		return []T{}, info
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return records[start:end:end], info
}

// TotalPages is ceil(totalItems / perPage).
func TotalPages(totalItems, perPage int) int {
	return (totalItems + perPage - 1) / perPage
}
