package mockapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/JWebCreation/wizishop-sdk/pkg/wizishop"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token         string `json:"token"`
	AccountID     int64  `json:"account_id"`
	DefaultShopID int64  `json:"default_shop_id"`
}

// message answers with the API's error body shape.
func message(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"message": msg})
}

func notFound(c echo.Context) error {
	return message(c, http.StatusNotFound, "no result")
}

// decodeJSON reads the request body only. echo's binder would also copy
// path parameters into map targets.
func decodeJSON(c echo.Context, v any) error {
	return json.NewDecoder(c.Request().Body).Decode(v)
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := decodeJSON(c, &req); err != nil {
		return message(c, http.StatusBadRequest, "invalid login payload")
	}
	if req.Username != s.cfg.Username || req.Password != s.cfg.Password {
		return message(c, http.StatusUnauthorized, "invalid credentials")
	}

	raw, err := s.IssueToken()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{
		Token:         raw,
		AccountID:     s.cfg.AccountID,
		DefaultShopID: s.cfg.ShopID,
	})
}

func queryInt(c echo.Context, name string, def int) int {
	v, err := strconv.Atoi(c.QueryParam(name))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

// paginate answers with one page of items in the results envelope. A page
// past the end, or any page of an empty collection, is a 404.
func paginate[T any](c echo.Context, items []T) error {
	limit := queryInt(c, "limit", wizishop.PageSize)
	page := queryInt(c, "page", 1)

	pages := (len(items) + limit - 1) / limit
	if page > pages {
		return notFound(c)
	}

	start := (page - 1) * limit
	end := min(start+limit, len(items))
	return c.JSON(http.StatusOK, wizishop.Page[T]{Results: items[start:end], Pages: pages})
}

func pathID(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	return id, err == nil
}

func (s *Server) listBrands(c echo.Context) error {
	return paginate(c, s.store.Brands())
}

func (s *Server) getBrand(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c)
	}
	b, ok := s.store.Brand(id)
	if !ok {
		return notFound(c)
	}
	return c.JSON(http.StatusOK, b)
}

func (s *Server) createBrand(c echo.Context) error {
	var b wizishop.Brand
	if err := decodeJSON(c, &b); err != nil {
		return message(c, http.StatusBadRequest, "invalid brand payload")
	}
	if b.Name == "" {
		return message(c, http.StatusBadRequest, "name is required")
	}
	return c.JSON(http.StatusCreated, s.store.AddBrand(b))
}

func (s *Server) updateBrand(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c)
	}
	var u wizishop.BrandUpdate
	if err := decodeJSON(c, &u); err != nil {
		return message(c, http.StatusBadRequest, "invalid brand payload")
	}
	b, ok := s.store.PatchBrand(id, u)
	if !ok {
		return notFound(c)
	}
	return c.JSON(http.StatusOK, b)
}

func (s *Server) deleteBrand(c echo.Context) error {
	id, ok := pathID(c)
	if !ok || !s.store.DeleteBrand(id) {
		return notFound(c)
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) listProducts(c echo.Context) error {
	products := s.store.Products()
	if status := c.QueryParam("status"); status != "" {
		products = slices.DeleteFunc(products, func(p wizishop.Product) bool { return p.Status != status })
	}
	return paginate(c, products)
}

func (s *Server) getProduct(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c)
	}
	p, ok := s.store.Product(id)
	if !ok {
		return notFound(c)
	}
	return c.JSON(http.StatusOK, p)
}

func (s *Server) createProduct(c echo.Context) error {
	var p wizishop.Product
	if err := decodeJSON(c, &p); err != nil {
		return message(c, http.StatusBadRequest, "invalid product payload")
	}
	if p.SKU == "" {
		return message(c, http.StatusBadRequest, "sku is required")
	}
	created, err := s.store.AddProduct(p)
	if err != nil {
		return message(c, http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) updateProduct(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c)
	}
	var fields wizishop.Fields
	if err := decodeJSON(c, &fields); err != nil {
		return message(c, http.StatusBadRequest, "invalid product payload")
	}
	p, found, err := s.store.UpdateProduct(id, fields)
	if !found {
		return notFound(c)
	}
	if err != nil {
		return message(c, http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

// listCategories answers with a bare array; the route is not paginated.
func (s *Server) listCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.Categories())
}

func (s *Server) createCategory(c echo.Context) error {
	var cat wizishop.Category
	if err := decodeJSON(c, &cat); err != nil {
		return message(c, http.StatusBadRequest, "invalid category payload")
	}
	if cat.Name == "" {
		return message(c, http.StatusBadRequest, "name is required")
	}
	return c.JSON(http.StatusCreated, s.store.AddCategory(cat))
}

func (s *Server) listCustomers(c echo.Context) error {
	return paginate(c, s.store.Customers())
}

func (s *Server) getCustomer(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c)
	}
	cu, ok := s.store.Customer(id)
	if !ok {
		return notFound(c)
	}
	return c.JSON(http.StatusOK, cu)
}

// createCustomer refuses known emails with the API's 400 message ending in
// "#<id>" of the registered customer.
func (s *Server) createCustomer(c echo.Context) error {
	var cu wizishop.Customer
	if err := decodeJSON(c, &cu); err != nil {
		return message(c, http.StatusBadRequest, "invalid customer payload")
	}
	if cu.Email == "" {
		return message(c, http.StatusBadRequest, "email is required")
	}
	out, created := s.store.AddCustomer(cu)
	if !created {
		return message(c, http.StatusBadRequest, fmt.Sprintf("Customer already exists #%d", out.ID))
	}
	return c.JSON(http.StatusCreated, out)
}

func (s *Server) listSubscribers(c echo.Context) error {
	return paginate(c, s.store.Subscribers())
}

func skuParam(c echo.Context) string {
	raw := c.Param("sku")
	if v, err := url.PathUnescape(raw); err == nil {
		return v
	}
	return raw
}

func (s *Server) listSkus(c echo.Context) error {
	skus := s.store.Skus()
	if c.QueryParam("detailed") != "1" {
		for i := range skus {
			skus[i].Weight = 0
		}
	}
	return paginate(c, skus)
}

func (s *Server) getSku(c echo.Context) error {
	k, ok := s.store.Sku(skuParam(c))
	if !ok {
		return notFound(c)
	}
	return c.JSON(http.StatusOK, k)
}

func (s *Server) updateSkuStock(c echo.Context) error {
	var body struct {
		Method wizishop.StockMethod `json:"method"`
		Stock  int                  `json:"stock"`
	}
	if err := decodeJSON(c, &body); err != nil {
		return message(c, http.StatusBadRequest, "invalid stock payload")
	}
	if !body.Method.Valid() {
		return message(c, http.StatusBadRequest, "unknown stock method")
	}
	k, ok := s.store.AdjustStock(skuParam(c), body.Method, body.Stock)
	if !ok {
		return notFound(c)
	}
	return c.JSON(http.StatusOK, k)
}

func (s *Server) listOrders(c echo.Context) error {
	orders := s.store.Orders()

	if v := c.QueryParam("status_code"); v != "" {
		code, err := strconv.Atoi(v)
		if err != nil {
			return message(c, http.StatusBadRequest, "invalid status_code")
		}
		orders = slices.DeleteFunc(orders, func(o wizishop.Order) bool { return o.StatusCode != code })
	}

	for param, keep := range map[string]func(created, bound time.Time) bool{
		"start_date": func(created, bound time.Time) bool { return !created.Before(bound) },
		"end_date":   func(created, bound time.Time) bool { return !created.After(bound) },
	} {
		v := c.QueryParam(param)
		if v == "" {
			continue
		}
		bound, err := time.Parse(wizishop.DateLayout, v)
		if err != nil {
			return message(c, http.StatusBadRequest, "invalid "+param)
		}
		orders = slices.DeleteFunc(orders, func(o wizishop.Order) bool {
			created, err := time.Parse(wizishop.DateLayout, o.CreatedAt)
			return err != nil || !keep(created, bound)
		})
	}

	return paginate(c, orders)
}

func (s *Server) getOrder(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c)
	}
	o, ok := s.store.Order(id)
	if !ok {
		return notFound(c)
	}
	return c.JSON(http.StatusOK, o)
}

// orderDocument serves a small placeholder PDF naming the document kind.
func (s *Server) orderDocument(kind string) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, ok := pathID(c)
		if !ok {
			return notFound(c)
		}
		o, ok := s.store.Order(id)
		if !ok {
			return notFound(c)
		}
		doc := fmt.Sprintf("%%PDF-1.4\n%% mock %s for order %s\n%%%%EOF\n", kind, o.Reference)
		return c.Blob(http.StatusOK, "application/pdf", []byte(doc))
	}
}

func (s *Server) setOrderStatus(c echo.Context) error {
	id, ok := pathID(c)
	if !ok {
		return notFound(c)
	}

	status := wizishop.OrderStatus(c.Param("status"))
	code, known := status.Code()
	if !known {
		return message(c, http.StatusBadRequest, "unknown status "+string(status))
	}

	var body struct {
		TrackingNumbers []wizishop.TrackingNumber `json:"tracking_numbers"`
	}
	if err := decodeJSON(c, &body); err != nil && !errors.Is(err, io.EOF) {
		return message(c, http.StatusBadRequest, "invalid status payload")
	}

	o, ok := s.store.SetOrderStatus(id, code, body.TrackingNumbers)
	if !ok {
		return notFound(c)
	}
	return c.JSON(http.StatusOK, o)
}

func (s *Server) createCustomState(c echo.Context) error {
	var fields wizishop.Fields
	if err := decodeJSON(c, &fields); err != nil {
		return message(c, http.StatusBadRequest, "invalid state payload")
	}
	if len(fields) == 0 {
		return message(c, http.StatusBadRequest, "empty state")
	}
	return c.JSON(http.StatusCreated, s.store.AddCustomState(fields))
}
