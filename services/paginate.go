package services

// PageCount returns ceil(total/perPage); 0 when the list is empty.
func PageCount(total, perPage int) int {
	if total <= 0 || perPage <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// PageBounds returns the [start,end) slice indices for a 1-based page.
// Out-of-range pages yield an empty window.
func PageBounds(total, page, perPage int) (int, int) {
	if page < 1 || page > PageCount(total, perPage) {
		return 0, 0
	}
	start := (page - 1) * perPage
	end := start + perPage
	if end > total {
		end = total
	}
	return start, end
}

// ClampPage pulls page back into [1, pageCount] so the current page always
// shows at least one item while the list is non-empty.
func ClampPage(page, pageCount int) int {
	if pageCount < 1 {
		return 1
	}
	if page < 1 {
		return 1
	}
	if page > pageCount {
		return pageCount
	}
	return page
}

// PageLinks returns the page numbers to offer: a window of up to five pages
// centered on current, never extending outside [1, total]. Nil when there is
// a single page or none.
func PageLinks(current, total int) []int {
	if total <= 1 {
		return nil
	}
	start := current - 2
	if start < 1 {
		start = 1
	}
	end := current + 2
	if end > total {
		end = total
	}
	links := make([]int, 0, end-start+1)
	for p := start; p <= end; p++ {
		links = append(links, p)
	}
	return links
}
