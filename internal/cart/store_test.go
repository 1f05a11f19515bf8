package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/models"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/pkg/logger"
)

// fakeCatalog resolves product ids from a fixed set.
type fakeCatalog struct {
	products map[int64]models.Product
}

func (f *fakeCatalog) FindByID(id int64) (models.Product, bool) {
	p, ok := f.products[id]
	return p, ok
}

// fakePersister records cart writes.
type fakePersister struct {
	loaded []models.CartLine
	saves  int
	last   []models.CartLine
}

func (f *fakePersister) SaveCart(ctx context.Context, lines []models.CartLine) error {
	f.saves++
	f.last = lines
	return nil
}

func (f *fakePersister) LoadCart(ctx context.Context) ([]models.CartLine, error) {
	if f.loaded == nil {
		return []models.CartLine{}, nil
	}
	return f.loaded, nil
}

func newTestStore() (*Store, *fakePersister) {
	catalog := &fakeCatalog{products: map[int64]models.Product{
		1: {ID: 1, Name: "Tee", Price: 10, Image: "tee.jpg", Variants: []string{"S", "M"}},
		2: {ID: 2, Name: "Cap", Price: 25.50, Image: "cap.jpg", Variants: []string{"One Size"}},
	}}
	persister := &fakePersister{}
	return NewStore(catalog, persister, logger.New("error")), persister
}

func TestStore_AddMergesSameProductVariant(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	if err := store.Add(ctx, 1, "S", 2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Add(ctx, 1, "S", 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := store.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected a single merged line, got %d", len(lines))
	}
	if lines[0].Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", lines[0].Quantity)
	}
	if store.Subtotal() != 50 {
		t.Errorf("expected subtotal 50, got %f", store.Subtotal())
	}
}

func TestStore_AddDifferentVariantsStaySeparate(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()

	store.Add(ctx, 1, "S", 1)
	store.Add(ctx, 1, "M", 1)

	if len(store.Lines()) != 2 {
		t.Errorf("expected 2 lines for distinct variants, got %d", len(store.Lines()))
	}
}

func TestStore_AddSnapshotsProductFields(t *testing.T) {
	store, _ := newTestStore()
	store.Add(context.Background(), 2, "One Size", 1)

	line := store.Lines()[0]
	if line.Price != 25.50 || line.Name != "Cap" || line.Image != "cap.jpg" {
		t.Errorf("expected product snapshot on line, got %+v", line)
	}
}

func TestStore_AddUnknownProduct(t *testing.T) {
	store, persister := newTestStore()

	err := store.Add(context.Background(), 99, "S", 1)
	if !errors.Is(err, ErrProductNotFound) {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
	if len(store.Lines()) != 0 {
		t.Error("expected cart unchanged")
	}
	if persister.saves != 0 {
		t.Error("expected no persistence write for a rejected add")
	}
}

func TestStore_AddInvalidQuantity(t *testing.T) {
	store, _ := newTestStore()

	for _, quantity := range []int{0, -1} {
		if err := store.Add(context.Background(), 1, "S", quantity); !errors.Is(err, ErrInvalidQuantity) {
			t.Errorf("quantity %d: expected ErrInvalidQuantity, got %v", quantity, err)
		}
	}
}

func TestStore_ChangeQuantity(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()
	store.Add(ctx, 1, "S", 2)

	if err := store.ChangeQuantity(ctx, 0, 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.Lines()[0].Quantity != 3 {
		t.Errorf("expected quantity 3, got %d", store.Lines()[0].Quantity)
	}
}

func TestStore_ChangeQuantityBelowOneRemovesLine(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()
	store.Add(ctx, 1, "S", 2)
	store.Add(ctx, 2, "One Size", 1)

	// Dropping the full quantity removes exactly one line
	if err := store.ChangeQuantity(ctx, 0, -2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := store.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected 1 line remaining, got %d", len(lines))
	}
	if lines[0].ProductID != 2 {
		t.Errorf("expected the cap line to remain, got %+v", lines[0])
	}
}

func TestStore_ChangeQuantityBadIndex(t *testing.T) {
	store, _ := newTestStore()

	if err := store.ChangeQuantity(context.Background(), 3, 1); !errors.Is(err, ErrLineNotFound) {
		t.Errorf("expected ErrLineNotFound, got %v", err)
	}
}

func TestStore_RemoveShiftsPositions(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()
	store.Add(ctx, 1, "S", 1)
	store.Add(ctx, 1, "M", 1)
	store.Add(ctx, 2, "One Size", 1)

	if err := store.Remove(ctx, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := store.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0].Variant != "M" {
		t.Errorf("expected positions to shift after removal, got %+v", lines)
	}
}

func TestStore_ClearEmptiesEverything(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()
	store.Add(ctx, 1, "S", 2)
	store.Add(ctx, 2, "One Size", 1)

	store.Clear(ctx)

	if len(store.Lines()) != 0 {
		t.Error("expected empty cart after clear")
	}
	if store.Subtotal() != 0 {
		t.Errorf("expected subtotal 0 after clear, got %f", store.Subtotal())
	}
	if store.ItemCount() != 0 {
		t.Errorf("expected item count 0 after clear, got %d", store.ItemCount())
	}
}

func TestStore_ItemCountSumsQuantities(t *testing.T) {
	store, _ := newTestStore()
	ctx := context.Background()
	store.Add(ctx, 1, "S", 2)
	store.Add(ctx, 2, "One Size", 3)

	if store.ItemCount() != 5 {
		t.Errorf("expected item count 5, got %d", store.ItemCount())
	}
}

func TestStore_PersistsAfterEveryMutation(t *testing.T) {
	store, persister := newTestStore()
	ctx := context.Background()

	store.Add(ctx, 1, "S", 1)
	store.ChangeQuantity(ctx, 0, 1)
	store.Remove(ctx, 0)
	store.Clear(ctx)

	if persister.saves != 4 {
		t.Errorf("expected 4 persistence writes, got %d", persister.saves)
	}
	if len(persister.last) != 0 {
		t.Errorf("expected final persisted cart to be empty, got %+v", persister.last)
	}
}

func TestStore_LoadRestoresPersistedCart(t *testing.T) {
	catalog := &fakeCatalog{products: map[int64]models.Product{}}
	persister := &fakePersister{loaded: []models.CartLine{
		{ProductID: 1, Variant: "S", Quantity: 2, Price: 10, Name: "Tee"},
	}}
	store := NewStore(catalog, persister, logger.New("error"))

	store.Load(context.Background())

	if store.ItemCount() != 2 {
		t.Errorf("expected restored cart with 2 items, got %d", store.ItemCount())
	}
}

// A line keeps working even after its product leaves the catalog: the
// snapshot is self-contained.
func TestStore_LinesSurviveProductDeletion(t *testing.T) {
	catalog := &fakeCatalog{products: map[int64]models.Product{
		1: {ID: 1, Name: "Tee", Price: 10},
	}}
	store := NewStore(catalog, &fakePersister{}, logger.New("error"))
	ctx := context.Background()

	store.Add(ctx, 1, "S", 2)
	delete(catalog.products, 1)

	if store.Subtotal() != 20 {
		t.Errorf("expected subtotal 20 from snapshot, got %f", store.Subtotal())
	}
	if store.Lines()[0].Name != "Tee" {
		t.Errorf("expected snapshot name, got %q", store.Lines()[0].Name)
	}
}
