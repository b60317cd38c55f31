package pagination

import "testing"

func TestDefaults(t *testing.T) {
	tests := []struct {
		name         string
		in           PageRequest
		wantPage     int
		wantPageSize int
	}{
		{"empty", PageRequest{}, 1, 20},
		{"explicit", PageRequest{Page: 3, PageSize: 10}, 3, 10},
		{"negative", PageRequest{Page: -1, PageSize: -5}, 1, 20},
		{"oversized", PageRequest{Page: 1, PageSize: 500}, 1, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tt.in
			req.Defaults()
			if req.Page != tt.wantPage || req.PageSize != tt.wantPageSize {
				t.Errorf("got page=%d size=%d, want page=%d size=%d", req.Page, req.PageSize, tt.wantPage, tt.wantPageSize)
			}
		})
	}
}

func TestOffset(t *testing.T) {
	req := PageRequest{Page: 3, PageSize: 20}
	if got := req.Offset(); got != 40 {
		t.Errorf("Offset() = %d, want 40", got)
	}
}

func TestNewPageResponse(t *testing.T) {
	resp := NewPageResponse[string](nil, 1, 20, 41)

	if resp.Data == nil {
		t.Error("expected non-nil data slice")
	}
	if resp.TotalPages != 3 {
		t.Errorf("expected 3 pages, got %d", resp.TotalPages)
	}

	empty := NewPageResponse([]int{}, 1, 0, 5)
	if empty.TotalPages != 0 {
		t.Errorf("expected 0 pages for zero page size, got %d", empty.TotalPages)
	}
}
