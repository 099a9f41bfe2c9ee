package pagination

// Paginate возвращает страницу среза. offset начинается с 1.
// Выход за границы не считается ошибкой — возвращается пустой срез.
func Paginate[T any](data []T, offset, limit int) []T {
	start := (offset - 1) * limit
	end := start + limit
	if start < 0 || start >= len(data) {
		return nil
	}
	if end > len(data) {
		end = len(data)
	}
	return data[start:end]
}
