package handlers

import (
	"context"
	"log/slog"
	"testing"

	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/admin"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/cart"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/catalog"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/checkout"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/models"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/view"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/pkg/logger"
)

// fakeCatalogPersister seeds the catalog and reports a configurable
// durability outcome on writes.
type fakeCatalogPersister struct {
	loaded  []models.Product
	durable bool
}

func (f *fakeCatalogPersister) Load(ctx context.Context) []models.Product {
	return f.loaded
}

func (f *fakeCatalogPersister) Write(ctx context.Context, products []models.Product) bool {
	return f.durable
}

type nopCartPersister struct{}

func (nopCartPersister) SaveCart(ctx context.Context, lines []models.CartLine) error {
	return nil
}

func (nopCartPersister) LoadCart(ctx context.Context) ([]models.CartLine, error) {
	return []models.CartLine{}, nil
}

// fixture wires the full handler stack over in-memory stores.
type fixture struct {
	catalog  *catalog.Store
	cart     *cart.Store
	views    *view.Controller
	products *ProductHandler
	carts    *CartHandler
	checkout *CheckoutHandler
	admin    *AdminHandler
	view     *ViewHandler
	logger   *slog.Logger
}

func seedProducts() []models.Product {
	return []models.Product{
		{ID: 1, Name: "Tee", Price: 10, Image: "tee.jpg", Variants: []string{"S", "M"}, Description: "A classic tee.", Category: "Apparel"},
		{ID: 2, Name: "Cap", Price: 25.50, Image: "cap.jpg", Variants: []string{"One Size"}, Description: "A classic cap.", Category: "Accessories"},
	}
}

func newFixture(t *testing.T, durable bool) *fixture {
	t.Helper()

	log := logger.New("error")

	catalogStore := catalog.NewStore(&fakeCatalogPersister{loaded: seedProducts(), durable: durable})
	catalogStore.Load(context.Background())

	cartStore := cart.NewStore(catalogStore, nopCartPersister{}, log)

	views := view.NewController()

	return &fixture{
		catalog:  catalogStore,
		cart:     cartStore,
		views:    views,
		products: NewProductHandler(catalogStore, views, log),
		carts:    NewCartHandler(cartStore, views, log),
		checkout: NewCheckoutHandler(checkout.NewService(cartStore), views, log),
		admin:    NewAdminHandler(admin.NewWorkflow(catalogStore), catalogStore, views, log),
		view:     NewViewHandler(views, log),
		logger:   log,
	}
}
