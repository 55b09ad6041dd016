package lists

import (
	"github.com/shopspring/decimal"

	"github.com/JonMunkholm/storefront/internal/core"
	"github.com/JonMunkholm/storefront/internal/i18n"
)

// Discount is a coupon code.
type Discount struct {
	ID         int64           `json:"id"`
	Code       string          `json:"code"`
	Title      i18n.Text       `json:"title"`
	Type       string          `json:"type"` // percentage, fixed
	Value      decimal.Decimal `json:"value"`
	MinOrder   decimal.Decimal `json:"min_order"`
	Used       int             `json:"used"`
	UsageLimit *int            `json:"usage_limit"`
	Starts     core.Date       `json:"starts"`
	Ends       *core.Date      `json:"ends"`
	Active     bool            `json:"active"`
}

func (d Discount) RecordID() int64 { return d.ID }

// FAQ is a storefront help entry.
type FAQ struct {
	ID        int64     `json:"id"`
	Question  i18n.Text `json:"question"`
	Answer    i18n.Text `json:"answer"`
	Category  string    `json:"category"`
	Position  int       `json:"position"`
	Published bool      `json:"published"`
	Updated   core.Date `json:"updated"`
}

func (f FAQ) RecordID() int64 { return f.ID }

// Plan is a seller subscription plan.
type Plan struct {
	ID          int64           `json:"id"`
	Name        i18n.Text       `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Interval    string          `json:"interval"`     // monthly, yearly
	MaxProducts *int            `json:"max_products"` // nil means unlimited
	Commission  decimal.Decimal `json:"commission"`
	Subscribers int             `json:"subscribers"`
	Active      bool            `json:"active"`
}

func (p Plan) RecordID() int64 { return p.ID }

// FlashSale is a time-boxed price cut on one product.
type FlashSale struct {
	ID       int64           `json:"id"`
	Title    i18n.Text       `json:"title"`
	Product  i18n.Text       `json:"product"`
	Discount decimal.Decimal `json:"discount"` // percent
	Starts   core.Date       `json:"starts"`
	Ends     core.Date       `json:"ends"`
	Stock    int             `json:"stock"`
	Sold     int             `json:"sold"`
	Status   string          `json:"status"`
}

func (f FlashSale) RecordID() int64 { return f.ID }

// InventoryItem is the stock of one SKU in one warehouse.
type InventoryItem struct {
	ID        int64           `json:"id"`
	SKU       string          `json:"sku"`
	Product   i18n.Text       `json:"product"`
	Seller    string          `json:"seller"`
	Warehouse string          `json:"warehouse"`
	Quantity  int             `json:"quantity"`
	Reserved  int             `json:"reserved"`
	Reorder   int             `json:"reorder_level"`
	Price     decimal.Decimal `json:"price"`
	Updated   core.Date       `json:"updated"`
}

func (i InventoryItem) RecordID() int64 { return i.ID }

// Available is the quantity not held by open orders.
func (i InventoryItem) Available() int {
	return i.Quantity - i.Reserved
}

// StockLevel classifies the available quantity against the reorder level.
func (i InventoryItem) StockLevel() string {
	switch avail := i.Available(); {
	case avail <= 0:
		return "out"
	case avail <= i.Reorder:
		return "low"
	default:
		return "ok"
	}
}

// Order is a customer order placed with one seller.
type Order struct {
	ID           string          `json:"id"`
	Customer     string          `json:"customer"`
	CustomerName string          `json:"customer_name"`
	Seller       string          `json:"seller"`
	Items        int             `json:"items"`
	Total        decimal.Decimal `json:"total"`
	Payment      string          `json:"payment"`
	Status       string          `json:"status"`
	Placed       core.Date       `json:"placed"`
}

func (o Order) RecordID() string { return o.ID }

// Return is a customer's request to send back an order item.
type Return struct {
	ID           string          `json:"id"`
	Order        string          `json:"order"`
	Customer     string          `json:"customer"`
	CustomerName string          `json:"customer_name"`
	Seller       string          `json:"seller"`
	Product      i18n.Text       `json:"product"`
	Reason       string          `json:"reason"`
	Amount       decimal.Decimal `json:"amount"`
	Status       string          `json:"status"`
	Requested    core.Date       `json:"requested"`
}

func (r Return) RecordID() string { return r.ID }

// Shipment tracks the delivery of one order.
type Shipment struct {
	ID          string     `json:"id"`
	Order       string     `json:"order"`
	Carrier     string     `json:"carrier"`
	Tracking    string     `json:"tracking"`
	Destination i18n.Text  `json:"destination"`
	Status      string     `json:"status"`
	Shipped     *core.Date `json:"shipped"`
	Delivered   *core.Date `json:"delivered"`
}

func (s Shipment) RecordID() string { return s.ID }

// Tag labels products for search and collections.
type Tag struct {
	ID       int64     `json:"id"`
	Name     i18n.Text `json:"name"`
	Slug     string    `json:"slug"`
	Products int       `json:"products"`
	Created  core.Date `json:"created"`
}

func (t Tag) RecordID() int64 { return t.ID }

// SpecGroup groups the specification attributes shown on product pages.
type SpecGroup struct {
	ID         int64     `json:"id"`
	Name       i18n.Text `json:"name"`
	Category   i18n.Text `json:"category"`
	Attributes []string  `json:"attributes"`
	Position   int       `json:"position"`
	Visible    bool      `json:"visible"`
}

func (s SpecGroup) RecordID() int64 { return s.ID }
