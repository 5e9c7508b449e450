package pagination

// CalculateOffset returns the index of the first item on page.
// Page numbers are 1-based, so page 1 has offset 0.
func CalculateOffset(page, limit int) int {
	return (page - 1) * limit
}

// CalculateTotalPages returns ceil(total / limit), and 1 for an empty list.
//
// Examples:
//   - Total 0, Limit 12 -> 1 page
//   - Total 12, Limit 12 -> 1 page
//   - Total 13, Limit 12 -> 2 pages
func CalculateTotalPages(total int64, limit int) int {
	if total == 0 {
		return 1
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// Apply returns the items on the page described by p together with the
// page metadata. A page past the end yields an empty, non-nil slice.
func Apply[T any](items []T, p Params) ([]T, Metadata) {
	total := len(items)
	meta := Metadata{
		Total:      int64(total),
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: CalculateTotalPages(int64(total), p.Limit),
	}

	start := CalculateOffset(p.Page, p.Limit)
	if start >= total {
		return []T{}, meta
	}
	end := start + p.Limit
	if end > total {
		end = total
	}
	return items[start:end], meta
}
