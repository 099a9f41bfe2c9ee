package pagination

import (
	"reflect"
	"testing"
)

func TestPaginate(t *testing.T) {
	data := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}

	tests := []struct {
		name          string
		offset, limit int
		want          []int
	}{
		{name: "first page", offset: 1, limit: 3, want: []int{0, 1, 2}},
		{name: "second page", offset: 2, limit: 3, want: []int{3, 4, 5}},
		{name: "partial last page", offset: 4, limit: 3, want: []int{9}},
		{name: "out of range offset", offset: 10, limit: 3, want: nil},
		{name: "limit past the end", offset: 1, limit: 100, want: data},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Paginate(data, tt.offset, tt.limit)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Paginate(offset=%d, limit=%d) = %v, want %v", tt.offset, tt.limit, got, tt.want)
			}
		})
	}
}

func TestPaginateEmptyInput(t *testing.T) {
	if got := Paginate([]string(nil), 1, 5); len(got) != 0 {
		t.Errorf("empty input must yield empty page, got %v", got)
	}
}
