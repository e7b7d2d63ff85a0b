package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/JWebCreation/wizishop-sdk/pkg/wizishop"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printBrandTable(w io.Writer, brands []wizishop.Brand) error {
	tw := newTabWriter(w)
	tw.writef("ID\tNAME\tURL\tIMAGE\n")
	for i := range brands {
		tw.writef("%d\t%s\t%s\t%s\n",
			brands[i].ID,
			truncate(brands[i].Name, 40),
			brands[i].URL,
			truncate(brands[i].ImageURL, 40),
		)
	}
	return tw.finish()
}

func printBrandDetail(w io.Writer, b *wizishop.Brand) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%d\n", b.ID)
	tw.writef("Name:\t%s\n", b.Name)
	tw.writef("URL:\t%s\n", b.URL)
	tw.writef("Image:\t%s\n", b.ImageURL)
	return tw.finish()
}

func printProductTable(w io.Writer, products []wizishop.Product) error {
	tw := newTabWriter(w)
	tw.writef("ID\tSKU\tNAME\tPRICE\tSTOCK\tSTATUS\n")
	for i := range products {
		tw.writef("%d\t%s\t%s\t%.2f\t%d\t%s\n",
			products[i].ID,
			products[i].SKU,
			truncate(products[i].Name, 40),
			products[i].Price,
			products[i].Stock,
			products[i].Status,
		)
	}
	return tw.finish()
}

func printProductDetail(w io.Writer, p *wizishop.Product) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%d\n", p.ID)
	tw.writef("SKU:\t%s\n", p.SKU)
	tw.writef("Name:\t%s\n", p.Name)
	tw.writef("Price:\t%.2f\n", p.Price)
	tw.writef("Stock:\t%d\n", p.Stock)
	tw.writef("Brand:\t%d\n", p.BrandID)
	tw.writef("Status:\t%s\n", p.Status)
	tw.writef("Updated:\t%s\n", p.UpdatedAt)
	return tw.finish()
}

func printCategoryTable(w io.Writer, cats []wizishop.Category) error {
	tw := newTabWriter(w)
	tw.writef("ID\tNAME\tPARENT\tPOSITION\n")
	for i := range cats {
		tw.writef("%d\t%s\t%d\t%d\n",
			cats[i].ID,
			truncate(cats[i].Name, 40),
			cats[i].ParentID,
			cats[i].Position,
		)
	}
	return tw.finish()
}

func printCustomerTable(w io.Writer, customers []wizishop.Customer) error {
	tw := newTabWriter(w)
	tw.writef("ID\tEMAIL\tNAME\tCREATED\n")
	for i := range customers {
		tw.writef("%d\t%s\t%s\t%s\n",
			customers[i].ID,
			customers[i].Email,
			truncate(customers[i].FirstName+" "+customers[i].LastName, 30),
			customers[i].CreatedAt,
		)
	}
	return tw.finish()
}

func printCustomerDetail(w io.Writer, c *wizishop.Customer) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%d\n", c.ID)
	tw.writef("Email:\t%s\n", c.Email)
	tw.writef("First name:\t%s\n", c.FirstName)
	tw.writef("Last name:\t%s\n", c.LastName)
	tw.writef("Phone:\t%s\n", c.Phone)
	tw.writef("Created:\t%s\n", c.CreatedAt)
	return tw.finish()
}

func printSubscriberTable(w io.Writer, subs []wizishop.Subscriber) error {
	tw := newTabWriter(w)
	tw.writef("ID\tEMAIL\tSUBSCRIBED\n")
	for i := range subs {
		tw.writef("%d\t%s\t%s\n", subs[i].ID, subs[i].Email, subs[i].CreatedAt)
	}
	return tw.finish()
}

func printSkuTable(w io.Writer, skus []wizishop.Sku) error {
	tw := newTabWriter(w)
	tw.writef("SKU\tPRODUCT\tNAME\tSTOCK\tPRICE\n")
	for i := range skus {
		tw.writef("%s\t%d\t%s\t%d\t%.2f\n",
			skus[i].SKU,
			skus[i].ProductID,
			truncate(skus[i].Name, 40),
			skus[i].Stock,
			skus[i].Price,
		)
	}
	return tw.finish()
}

func printSkuDetail(w io.Writer, s *wizishop.Sku) error {
	tw := newTabWriter(w)
	tw.writef("SKU:\t%s\n", s.SKU)
	tw.writef("Product:\t%d\n", s.ProductID)
	tw.writef("Name:\t%s\n", s.Name)
	tw.writef("Stock:\t%d\n", s.Stock)
	tw.writef("Price:\t%.2f\n", s.Price)
	return tw.finish()
}

func printOrderTable(w io.Writer, orders []wizishop.Order) error {
	tw := newTabWriter(w)
	tw.writef("ID\tREFERENCE\tSTATUS\tEMAIL\tTOTAL\tCREATED\n")
	for i := range orders {
		tw.writef("%d\t%s\t%d\t%s\t%.2f %s\t%s\n",
			orders[i].ID,
			orders[i].Reference,
			orders[i].StatusCode,
			orders[i].Email,
			orders[i].Total,
			orders[i].Currency,
			orders[i].CreatedAt,
		)
	}
	return tw.finish()
}

func printOrderDetail(w io.Writer, o *wizishop.Order) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%d\n", o.ID)
	tw.writef("Reference:\t%s\n", o.Reference)
	tw.writef("Status:\t%d\n", o.StatusCode)
	tw.writef("Customer:\t%d\n", o.CustomerID)
	tw.writef("Email:\t%s\n", o.Email)
	tw.writef("Total:\t%.2f %s\n", o.Total, o.Currency)
	tw.writef("Created:\t%s\n", o.CreatedAt)
	tw.writef("Updated:\t%s\n", o.UpdatedAt)
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
