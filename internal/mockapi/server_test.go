package mockapi_test

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JWebCreation/wizishop-sdk/internal/mockapi"
	"github.com/JWebCreation/wizishop-sdk/pkg/wizishop"
)

type sleeps struct {
	mu    sync.Mutex
	calls []time.Duration
}

func (s *sleeps) sleep(_ context.Context, d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, d)
}

func (s *sleeps) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func startMock(t *testing.T, cfg mockapi.Config, seed *mockapi.Seed) (*mockapi.Server, *httptest.Server) {
	t.Helper()

	m := mockapi.New(cfg, mockapi.NewStore(seed), quietLogger())
	srv := httptest.NewServer(m.Handler())
	t.Cleanup(srv.Close)
	return m, srv
}

func login(t *testing.T, srv *httptest.Server, cfg mockapi.Config, opts ...wizishop.Option) *wizishop.Client {
	t.Helper()

	opts = append([]wizishop.Option{
		wizishop.WithEndpoint(srv.URL),
		wizishop.WithLogger(quietLogger()),
	}, opts...)
	c, err := wizishop.Authenticate(context.Background(), cfg.Username, cfg.Password, opts...)
	require.NoError(t, err)
	return c
}

func demoSeed(t *testing.T) *mockapi.Seed {
	t.Helper()

	seed, err := mockapi.DemoSeed()
	require.NoError(t, err)
	return seed
}

func TestDemoSeed(t *testing.T) {
	t.Parallel()

	seed := demoSeed(t)
	assert.Len(t, seed.Brands, 3)
	assert.Equal(t, "https://cdn.example.com/brands/acme.png", seed.Brands[0].ImageURL)
	assert.Equal(t, int64(10), seed.Categories[1].ParentID)
	assert.InDelta(t, 0.35, seed.Skus[1].Weight, 0.0001)
	assert.Equal(t, "2024-03-02 11:00:00", seed.Orders[0].CreatedAt)
}

func TestLoadSeed_Invalid(t *testing.T) {
	t.Parallel()

	_, err := mockapi.LoadSeed(strings.NewReader("brands: [{id: x}]"))
	require.Error(t, err)

	seed, err := mockapi.LoadSeed(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, seed.Brands)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	cfg := mockapi.DefaultConfig()
	_, srv := startMock(t, cfg, nil)

	c := login(t, srv, cfg)
	assert.Equal(t, "7", c.AccountID())
	assert.Equal(t, "42", c.ShopID())
	assert.Equal(t, srv.URL+"/v3/shops/42/", c.BaseURI())
	assert.False(t, c.Token().Expired(time.Now()))

	_, err := wizishop.Authenticate(context.Background(), cfg.Username, "wrong",
		wizishop.WithEndpoint(srv.URL), wizishop.WithLogger(quietLogger()))
	var authErr *wizishop.AuthenticationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
}

func TestUnauthenticatedRequest(t *testing.T) {
	t.Parallel()

	_, srv := startMock(t, mockapi.DefaultConfig(), nil)

	resp, err := http.Get(srv.URL + "/v3/shops/42/brands")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestPaginationAcrossPages(t *testing.T) {
	t.Parallel()

	seed := &mockapi.Seed{}
	for i := 1; i <= 250; i++ {
		seed.Brands = append(seed.Brands, wizishop.Brand{ID: int64(i), Name: fmt.Sprintf("brand-%03d", i)})
	}

	cfg := mockapi.DefaultConfig()
	_, srv := startMock(t, cfg, seed)
	c := login(t, srv, cfg)

	brands, err := c.ListBrands(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, brands, 250)
	for i, b := range brands {
		assert.Equal(t, int64(i+1), b.ID)
	}

	page, err := c.ListBrands(context.Background(), url.Values{"page": {"3"}, "limit": {"100"}})
	require.NoError(t, err)
	assert.Len(t, page, 50)

	past, err := c.ListBrands(context.Background(), url.Values{"page": {"4"}})
	require.NoError(t, err)
	assert.Empty(t, past)
}

func TestEmptyCollection(t *testing.T) {
	t.Parallel()

	cfg := mockapi.DefaultConfig()
	_, srv := startMock(t, cfg, nil)
	c := login(t, srv, cfg)

	orders, err := c.ListOrders(context.Background(), wizishop.OrderFilter{})
	require.NoError(t, err)
	assert.NotNil(t, orders)
	assert.Empty(t, orders)

	o, err := c.GetOrder(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Nil(t, o)
}

func TestThrottleAgainstBudget(t *testing.T) {
	t.Parallel()

	cfg := mockapi.DefaultConfig()
	cfg.RateBudget = 53
	_, srv := startMock(t, cfg, demoSeed(t))

	rec := &sleeps{}
	c := login(t, srv, cfg, wizishop.WithSleepFunc(rec.sleep))

	// Remaining counts 52, 51, 50 stay at or above the floor.
	for range 3 {
		_, err := c.GetBrand(context.Background(), 1, nil)
		require.NoError(t, err)
	}
	assert.Equal(t, 0, rec.count())

	_, err := c.GetBrand(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.count(), "remaining 49 is below the floor")

	remaining, ok := c.Throttle().Remaining()
	assert.True(t, ok)
	assert.Equal(t, int64(49), remaining)
}

func TestBudgetExhausted(t *testing.T) {
	t.Parallel()

	cfg := mockapi.DefaultConfig()
	cfg.RateBudget = 1
	_, srv := startMock(t, cfg, demoSeed(t))
	c := login(t, srv, cfg, wizishop.WithSleepFunc(func(context.Context, time.Duration) {}))

	_, err := c.GetBrand(context.Background(), 1, nil)
	require.NoError(t, err)

	_, err = c.GetBrand(context.Background(), 1, nil)
	var apiErr *wizishop.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.NotEmpty(t, apiErr.RequestID)
}

func TestBrandLifecycle(t *testing.T) {
	t.Parallel()

	cfg := mockapi.DefaultConfig()
	_, srv := startMock(t, cfg, demoSeed(t))
	c := login(t, srv, cfg)
	ctx := context.Background()

	created, err := c.CreateBrand(ctx, "Fabrikam", "https://cdn.example.com/f.png")
	require.NoError(t, err)
	assert.Equal(t, "Fabrikam", created.Name)

	updated, err := c.UpdateBrand(ctx, created.ID, wizishop.BrandUpdate{Name: "Fabrikam Inc", URL: "fabrikam"})
	require.NoError(t, err)
	assert.Equal(t, "Fabrikam Inc", updated.Name)
	assert.Equal(t, "https://cdn.example.com/f.png", updated.ImageURL, "empty image keeps the stored one")

	require.NoError(t, c.DeleteBrand(ctx, created.ID))

	gone, err := c.GetBrand(ctx, created.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, gone)

	err = c.DeleteBrand(ctx, created.ID)
	var apiErr *wizishop.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.NotFound())
}

func TestProducts(t *testing.T) {
	t.Parallel()

	cfg := mockapi.DefaultConfig()
	_, srv := startMock(t, cfg, demoSeed(t))

	failures := t.TempDir()
	sink, err := wizishop.NewDirFailureSink(failures)
	require.NoError(t, err)
	c := login(t, srv, cfg, wizishop.WithFailureSink(sink))
	ctx := context.Background()

	active, err := c.ListProducts(ctx, url.Values{"status": {"active"}})
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, "TSHIRT-01", active[0].SKU)

	p, err := c.CreateProduct(ctx, wizishop.Fields{"sku": "CAP-01", "name": "Cap", "price": 9.5})
	require.NoError(t, err)
	assert.Equal(t, "CAP-01", p.SKU)

	p, err = c.UpdateProduct(ctx, p.ID, wizishop.Fields{"stock": 7})
	require.NoError(t, err)
	assert.Equal(t, 7, p.Stock)
	assert.Equal(t, "Cap", p.Name)

	_, err = c.CreateProduct(ctx, wizishop.Fields{"sku": "CAP-01", "name": "Duplicate"})
	require.Error(t, err)
	assert.FileExists(t, sink.Path("product", "CAP-01"))
}

func TestCustomers(t *testing.T) {
	t.Parallel()

	cfg := mockapi.DefaultConfig()
	_, srv := startMock(t, cfg, demoSeed(t))
	c := login(t, srv, cfg)
	ctx := context.Background()

	res, err := c.CreateCustomer(ctx, wizishop.Fields{"email": "jane@example.com"})
	require.NoError(t, err)
	assert.True(t, res.Exists)
	assert.Equal(t, "501", res.ID)

	res, err = c.CreateCustomer(ctx, wizishop.Fields{"email": "new@example.com", "firstname": "New"})
	require.NoError(t, err)
	assert.False(t, res.Exists)
	require.NotNil(t, res.Customer)

	got, err := c.GetCustomer(ctx, res.Customer.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", got.Email)

	_, err = c.CreateCustomer(ctx, wizishop.Fields{"firstname": "NoEmail"})
	var apiErr *wizishop.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestCategoriesAndNewsletter(t *testing.T) {
	t.Parallel()

	cfg := mockapi.DefaultConfig()
	m, srv := startMock(t, cfg, demoSeed(t))
	c := login(t, srv, cfg)
	ctx := context.Background()

	cats, err := c.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 3)

	cat, err := c.CreateCategory(ctx, wizishop.Fields{"name": "Hats", "parent_id": 10})
	require.NoError(t, err)
	assert.Equal(t, int64(10), cat.ParentID)

	raw, err := m.IssueToken()
	require.NoError(t, err)
	account, err := wizishop.NewWithToken(raw, "7", "",
		wizishop.WithEndpoint(srv.URL), wizishop.WithLogger(quietLogger()))
	require.NoError(t, err)

	subs, err := account.ListNewsletterSubscribers(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, subs, 2)
}

func TestSkus(t *testing.T) {
	t.Parallel()

	cfg := mockapi.DefaultConfig()
	_, srv := startMock(t, cfg, demoSeed(t))
	c := login(t, srv, cfg)
	ctx := context.Background()

	plain, err := c.ListSkus(ctx, nil)
	require.NoError(t, err)
	require.Len(t, plain, 2)
	assert.Zero(t, plain[0].Weight)

	detailed, err := c.ListDetailedSkus(ctx, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.2, detailed[0].Weight, 0.0001)

	k, err := c.UpdateSkuStock(ctx, "TSHIRT-01", 8, wizishop.StockIncrease)
	require.NoError(t, err)
	assert.Equal(t, 50, k.Stock)

	k, err = c.UpdateSkuStock(ctx, "TSHIRT-01", 100, wizishop.StockDecrease)
	require.NoError(t, err)
	assert.Equal(t, 0, k.Stock)

	missing, err := c.GetSku(ctx, "NOPE/1", nil)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestOrders(t *testing.T) {
	t.Parallel()

	cfg := mockapi.DefaultConfig()
	m, srv := startMock(t, cfg, demoSeed(t))
	c := login(t, srv, cfg)
	ctx := context.Background()

	pending, err := c.ListOrders(ctx, wizishop.OrderFilter{}.WithStatusCode(20))
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, int64(9001), pending[0].ID)

	abandoned, err := c.ListOrders(ctx, wizishop.OrderFilter{}.WithStatusCode(wizishop.StatusCodeAbandoned))
	require.NoError(t, err)
	require.Len(t, abandoned, 1)

	since, err := c.ListOrders(ctx, wizishop.OrderFilter{
		StartDate: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Len(t, since, 2)

	o, err := c.SetOrderStatus(ctx, 9001, wizishop.StatusPreparing)
	require.NoError(t, err)
	assert.Equal(t, 25, o.StatusCode)

	tracking := []wizishop.TrackingNumber{{ShippingID: 1, TrackingNumber: "6A123"}}
	o, err = c.ShipOrder(ctx, 9001, tracking)
	require.NoError(t, err)
	assert.Equal(t, 30, o.StatusCode)
	assert.Equal(t, tracking, m.Store().Shipments(9001))

	pdf, err := c.GetOrderInvoice(ctx, 9001, nil)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(pdf), "%PDF-"))

	none, err := c.GetOrderDeliverySlip(ctx, 1, nil)
	require.NoError(t, err)
	assert.Nil(t, none)

	state, err := c.CreateOrderCustomState(ctx, wizishop.Fields{"name": "Awaiting pickup"})
	require.NoError(t, err)
	assert.Equal(t, "Awaiting pickup", state["name"])
	assert.NotNil(t, state["id"])
}

func TestWrongShop(t *testing.T) {
	t.Parallel()

	cfg := mockapi.DefaultConfig()
	_, srv := startMock(t, cfg, demoSeed(t))
	c := login(t, srv, cfg, wizishop.WithShopID("99"))

	brands, err := c.ListBrands(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, brands)
}
