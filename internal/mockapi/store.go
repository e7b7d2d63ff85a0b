package mockapi

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/JWebCreation/wizishop-sdk/pkg/wizishop"
)

// Seed is the initial content of a Store. Seed files are YAML documents
// whose keys follow the API's JSON field names.
type Seed struct {
	Brands      []wizishop.Brand      `json:"brands"`
	Products    []wizishop.Product    `json:"products"`
	Categories  []wizishop.Category   `json:"categories"`
	Customers   []wizishop.Customer   `json:"customers"`
	Subscribers []wizishop.Subscriber `json:"subscribers"`
	Skus        []wizishop.Sku        `json:"skus"`
	Orders      []wizishop.Order      `json:"orders"`
}

// LoadSeed decodes a YAML seed document.
func LoadSeed(r io.Reader) (*Seed, error) {
	var doc any
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && err != io.EOF {
		return nil, fmt.Errorf("parsing seed: %w", err)
	}

	// The API types carry JSON tags only; go through JSON to honour them.
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("converting seed: %w", err)
	}

	var seed Seed
	if doc != nil {
		if err := json.Unmarshal(data, &seed); err != nil {
			return nil, fmt.Errorf("decoding seed: %w", err)
		}
	}
	return &seed, nil
}

// Store is the mock API's in-memory state. All methods are safe for
// concurrent use and return copies.
type Store struct {
	mu           sync.Mutex
	data         Seed
	customStates []wizishop.Fields
	shipments    map[int64][]wizishop.TrackingNumber
	nextID       int64
	now          func() time.Time
}

// NewStore creates a Store holding a copy of seed. A nil seed starts empty.
func NewStore(seed *Seed) *Store {
	s := &Store{
		shipments: make(map[int64][]wizishop.TrackingNumber),
		nextID:    1000,
		now:       time.Now,
	}
	if seed == nil {
		return s
	}

	s.data = Seed{
		Brands:      slices.Clone(seed.Brands),
		Products:    slices.Clone(seed.Products),
		Categories:  slices.Clone(seed.Categories),
		Customers:   slices.Clone(seed.Customers),
		Subscribers: slices.Clone(seed.Subscribers),
		Skus:        slices.Clone(seed.Skus),
		Orders:      slices.Clone(seed.Orders),
	}

	for _, b := range s.data.Brands {
		s.bump(b.ID)
	}
	for _, p := range s.data.Products {
		s.bump(p.ID)
	}
	for _, c := range s.data.Categories {
		s.bump(c.ID)
	}
	for _, c := range s.data.Customers {
		s.bump(c.ID)
	}
	for _, o := range s.data.Orders {
		s.bump(o.ID)
	}
	return s
}

func (s *Store) bump(id int64) {
	if id >= s.nextID {
		s.nextID = id + 1
	}
}

func (s *Store) id() int64 {
	id := s.nextID
	s.nextID++
	return id
}

func (s *Store) stamp() string {
	return s.now().UTC().Format(wizishop.DateLayout)
}

// Brands returns all brands.
func (s *Store) Brands() []wizishop.Brand {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.data.Brands)
}

// Brand returns the brand with id.
func (s *Store) Brand(id int64) (wizishop.Brand, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.data.Brands, func(b wizishop.Brand) bool { return b.ID == id })
	if i < 0 {
		return wizishop.Brand{}, false
	}
	return s.data.Brands[i], true
}

// AddBrand stores b under a new id.
func (s *Store) AddBrand(b wizishop.Brand) wizishop.Brand {
	s.mu.Lock()
	defer s.mu.Unlock()
	b.ID = s.id()
	s.data.Brands = append(s.data.Brands, b)
	return b
}

// PatchBrand applies the non-empty fields of u.
func (s *Store) PatchBrand(id int64, u wizishop.BrandUpdate) (wizishop.Brand, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.data.Brands, func(b wizishop.Brand) bool { return b.ID == id })
	if i < 0 {
		return wizishop.Brand{}, false
	}
	b := &s.data.Brands[i]
	if u.Name != "" {
		b.Name = u.Name
	}
	if u.URL != "" {
		b.URL = u.URL
	}
	if u.ImageURL != "" {
		b.ImageURL = u.ImageURL
	}
	return *b, true
}

// DeleteBrand removes the brand with id.
func (s *Store) DeleteBrand(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.data.Brands)
	s.data.Brands = slices.DeleteFunc(s.data.Brands, func(b wizishop.Brand) bool { return b.ID == id })
	return len(s.data.Brands) < n
}

// Products returns all products.
func (s *Store) Products() []wizishop.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.data.Products)
}

// Product returns the product with id.
func (s *Store) Product(id int64) (wizishop.Product, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.data.Products, func(p wizishop.Product) bool { return p.ID == id })
	if i < 0 {
		return wizishop.Product{}, false
	}
	return s.data.Products[i], true
}

// AddProduct stores p under a new id. It fails when the SKU is already
// used by another product.
func (s *Store) AddProduct(p wizishop.Product) (wizishop.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if slices.ContainsFunc(s.data.Products, func(o wizishop.Product) bool { return o.SKU == p.SKU }) {
		return wizishop.Product{}, fmt.Errorf("sku %s is already used", p.SKU)
	}
	p.ID = s.id()
	p.CreatedAt = s.stamp()
	p.UpdatedAt = p.CreatedAt
	s.data.Products = append(s.data.Products, p)
	return p, nil
}

// UpdateProduct overlays fields on the product with id. The id itself
// cannot change.
func (s *Store) UpdateProduct(id int64, fields wizishop.Fields) (wizishop.Product, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.data.Products, func(p wizishop.Product) bool { return p.ID == id })
	if i < 0 {
		return wizishop.Product{}, false, nil
	}

	merged, err := overlay(s.data.Products[i], fields)
	if err != nil {
		return wizishop.Product{}, true, err
	}
	merged.ID = id
	merged.UpdatedAt = s.stamp()
	s.data.Products[i] = merged
	return merged, true, nil
}

// overlay writes fields over the JSON form of v.
func overlay[T any](v T, fields wizishop.Fields) (T, error) {
	var out T

	data, err := json.Marshal(v)
	if err != nil {
		return out, err
	}
	m := map[string]any{}
	if err := json.Unmarshal(data, &m); err != nil {
		return out, err
	}
	for k, val := range fields {
		m[k] = val
	}

	data, err = json.Marshal(m)
	if err != nil {
		return out, err
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return out, fmt.Errorf("invalid field value: %w", err)
	}
	return out, nil
}

// Categories returns all categories.
func (s *Store) Categories() []wizishop.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.data.Categories)
}

// AddCategory stores c under a new id.
func (s *Store) AddCategory(c wizishop.Category) wizishop.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = s.id()
	s.data.Categories = append(s.data.Categories, c)
	return c
}

// Customers returns all customers.
func (s *Store) Customers() []wizishop.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.data.Customers)
}

// Customer returns the customer with id.
func (s *Store) Customer(id int64) (wizishop.Customer, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.data.Customers, func(c wizishop.Customer) bool { return c.ID == id })
	if i < 0 {
		return wizishop.Customer{}, false
	}
	return s.data.Customers[i], true
}

// AddCustomer stores c under a new id. When the email is already
// registered nothing is stored and the existing customer is returned with
// created false.
func (s *Store) AddCustomer(c wizishop.Customer) (out wizishop.Customer, created bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.data.Customers, func(o wizishop.Customer) bool { return o.Email == c.Email })
	if i >= 0 {
		return s.data.Customers[i], false
	}
	c.ID = s.id()
	c.CreatedAt = s.stamp()
	s.data.Customers = append(s.data.Customers, c)
	return c, true
}

// Subscribers returns all newsletter subscribers.
func (s *Store) Subscribers() []wizishop.Subscriber {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.data.Subscribers)
}

// Skus returns all SKUs.
func (s *Store) Skus() []wizishop.Sku {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.data.Skus)
}

// Sku returns the SKU with the given code.
func (s *Store) Sku(code string) (wizishop.Sku, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.data.Skus, func(k wizishop.Sku) bool { return k.SKU == code })
	if i < 0 {
		return wizishop.Sku{}, false
	}
	return s.data.Skus[i], true
}

// AdjustStock applies a stock update to a SKU. Stock never goes below zero.
func (s *Store) AdjustStock(code string, method wizishop.StockMethod, n int) (wizishop.Sku, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.data.Skus, func(k wizishop.Sku) bool { return k.SKU == code })
	if i < 0 {
		return wizishop.Sku{}, false
	}
	k := &s.data.Skus[i]
	switch method {
	case wizishop.StockIncrease:
		k.Stock += n
	case wizishop.StockDecrease:
		k.Stock = max(k.Stock-n, 0)
	default:
		k.Stock = n
	}
	return *k, true
}

// Orders returns all orders.
func (s *Store) Orders() []wizishop.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.data.Orders)
}

// Order returns the order with id.
func (s *Store) Order(id int64) (wizishop.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.data.Orders, func(o wizishop.Order) bool { return o.ID == id })
	if i < 0 {
		return wizishop.Order{}, false
	}
	return s.data.Orders[i], true
}

// SetOrderStatus moves an order to code and records tracking numbers when
// some are given.
func (s *Store) SetOrderStatus(id int64, code int, tracking []wizishop.TrackingNumber) (wizishop.Order, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := slices.IndexFunc(s.data.Orders, func(o wizishop.Order) bool { return o.ID == id })
	if i < 0 {
		return wizishop.Order{}, false
	}
	o := &s.data.Orders[i]
	o.StatusCode = code
	o.UpdatedAt = s.stamp()
	if len(tracking) > 0 {
		s.shipments[id] = append(s.shipments[id], tracking...)
	}
	return *o, true
}

// Shipments returns the tracking numbers recorded for an order.
func (s *Store) Shipments(id int64) []wizishop.TrackingNumber {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.shipments[id])
}

// AddCustomState stores a custom order state and returns it with its id.
func (s *Store) AddCustomState(f wizishop.Fields) wizishop.Fields {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(wizishop.Fields, len(f)+1)
	for k, v := range f {
		out[k] = v
	}
	out["id"] = s.id()
	s.customStates = append(s.customStates, out)
	return out
}
