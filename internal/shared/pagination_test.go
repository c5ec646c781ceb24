package shared

import "testing"

func TestNewPaginationDefaults(t *testing.T) {
	p := NewPagination(0, 0, 45)
	if p.Page != 1 || p.PerPage != 20 {
		t.Fatalf("unexpected defaults: %+v", p)
	}
	if p.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", p.TotalPages)
	}
	if p.Offset() != 0 {
		t.Fatalf("expected offset 0, got %d", p.Offset())
	}
}

func TestPaginationOffset(t *testing.T) {
	p := NewPagination(3, 10, 100)
	if p.Offset() != 20 {
		t.Fatalf("expected offset 20, got %d", p.Offset())
	}
	if p.TotalPages != 10 {
		t.Fatalf("expected 10 pages, got %d", p.TotalPages)
	}
}

func TestPaginationEmpty(t *testing.T) {
	p := NewPagination(1, 20, 0)
	if p.TotalPages != 0 {
		t.Fatalf("expected 0 pages, got %d", p.TotalPages)
	}
}
