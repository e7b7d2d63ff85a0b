package wizishop

// Fields is a free-form JSON object sent as-is to create and update routes
// whose bodies carry too many optional attributes to type.
type Fields map[string]any

// Brand is a product brand.
type Brand struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	URL      string `json:"url,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// BrandUpdate is the PATCH body of UpdateBrand. Empty URL and ImageURL are
// left out so that the stored values are kept.
type BrandUpdate struct {
	Name     string `json:"name"`
	URL      string `json:"url,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// Product is a catalog product.
type Product struct {
	ID          int64   `json:"id"`
	SKU         string  `json:"sku"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	BrandID     int64   `json:"brand_id,omitempty"`
	Status      string  `json:"status,omitempty"`
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

// Category is a catalog category.
type Category struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	ParentID int64  `json:"parent_id,omitempty"`
	Position int    `json:"position,omitempty"`
	URL      string `json:"url,omitempty"`
}

// Customer is a shop customer account.
type Customer struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstname,omitempty"`
	LastName  string `json:"lastname,omitempty"`
	Phone     string `json:"phone,omitempty"`
	CreatedAt string `json:"created_at,omitempty"`
}

// CustomerCreateResult is the outcome of CreateCustomer. Exists is true
// when the API refused the creation because the customer is already
// registered; ID then holds the existing customer's id and Customer is nil.
type CustomerCreateResult struct {
	Exists   bool
	ID       string
	Customer *Customer
}

// Subscriber is a newsletter subscription.
type Subscriber struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at,omitempty"`
}

// Sku is a stock keeping unit of a product or variation.
type Sku struct {
	SKU       string  `json:"sku"`
	ProductID int64   `json:"product_id,omitempty"`
	Name      string  `json:"name,omitempty"`
	Stock     int     `json:"stock"`
	Price     float64 `json:"price,omitempty"`
	Weight    float64 `json:"weight,omitempty"`
}

// StockMethod selects how UpdateSkuStock applies its value.
type StockMethod string

// Stock update methods.
const (
	StockReplace  StockMethod = "replace"
	StockIncrease StockMethod = "increase"
	StockDecrease StockMethod = "decrease"
)

// Valid reports whether m is one of the methods accepted by the API.
func (m StockMethod) Valid() bool {
	switch m {
	case StockReplace, StockIncrease, StockDecrease:
		return true
	}
	return false
}

type stockUpdate struct {
	Method StockMethod `json:"method"`
	Stock  int         `json:"stock"`
}

// Order is a customer order.
type Order struct {
	ID         int64   `json:"id"`
	Reference  string  `json:"reference,omitempty"`
	StatusCode int     `json:"status_code"`
	CustomerID int64   `json:"customer_id,omitempty"`
	Email      string  `json:"email,omitempty"`
	Total      float64 `json:"total,omitempty"`
	Currency   string  `json:"currency,omitempty"`
	CreatedAt  string  `json:"created_at,omitempty"`
	UpdatedAt  string  `json:"updated_at,omitempty"`
}

// TrackingNumber attaches a parcel tracking number to one shipping of an
// order.
type TrackingNumber struct {
	ShippingID     int64  `json:"shipping_id"`
	TrackingNumber string `json:"tracking_number"`
}

type shipment struct {
	TrackingNumbers []TrackingNumber `json:"tracking_numbers"`
}
