package utils

// PageBounds возвращает границы среза [start, end) для страницы page (с нуля).
// Страницы за пределами total дают пустой срез.
func PageBounds(total, page, size int) (start, end int) {
	if size <= 0 || page < 0 {
		return 0, 0
	}
	start = page * size
	if start >= total {
		return total, total
	}
	end = start + size
	if end > total {
		end = total
	}
	return start, end
}

// TotalPages - количество страниц для total элементов
func TotalPages(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}
