package financiermock

import (
	"context"
	"errors"
	"testing"

	domain "invoice-financing/internal/domain/financier"
)

func TestRepo_Defaults(t *testing.T) {
	m := &Repo{}
	if err := m.Create(context.Background(), &domain.Financier{}); err != nil {
		t.Fatalf("Create default: %v", err)
	}
	if _, err := m.GetByName(context.Background(), "RichBank"); !errors.Is(err, errUnimplemented) {
		t.Fatalf("GetByName default: want errUnimplemented, got %v", err)
	}
	if _, err := m.FindAll(context.Background()); !errors.Is(err, errUnimplemented) {
		t.Fatalf("FindAll default: want errUnimplemented, got %v", err)
	}
}

func TestStatic(t *testing.T) {
	m := Static(domain.Financier{ID: 1, Name: "RichBank"}, domain.Financier{ID: 2, Name: "FatBank"})
	got, err := m.FindAll(context.Background())
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(got) != 2 || got[1].Name != "FatBank" {
		t.Fatalf("unexpected roster: %+v", got)
	}
}
