package dataset

import (
	"time"
)

// Transaction represents a single sales transaction as loaded from sales.csv.
// Revenue is taken as given from the source data and never re-derived from
// units and price.
type Transaction struct {
	TransactionID string    `json:"transaction_id" validate:"required"`
	ProductID     string    `json:"product_id" validate:"required"`
	Date          time.Time `json:"date" validate:"required"`
	UnitsSold     float64   `json:"units_sold" validate:"gte=0"`
	AvgPrice      float64   `json:"avg_price" validate:"gte=0"`
	DiscountPct   float64   `json:"discount_pct" validate:"gte=0,lte=100"`
	Revenue       float64   `json:"revenue" validate:"gte=0"`
	Channel       string    `json:"channel"`
	Region        string    `json:"region"`
}

// Product represents a row of the product master table. LaunchDate anchors
// all lifecycle and attribution windowing.
type Product struct {
	ProductID   string    `json:"product_id" validate:"required"`
	ProductName string    `json:"product_name" validate:"required"`
	Brand       string    `json:"brand" validate:"required"`
	Type        string    `json:"type" validate:"required"`
	LaunchDate  time.Time `json:"launch_date" validate:"required"`
	BasePrice   float64   `json:"base_price" validate:"gte=0"`
}

// Campaign represents a marketing spend record. Loaded and summarized for
// reporting; the attribution and forecasting engines do not consume it.
type Campaign struct {
	CampaignID string    `json:"campaign_id" validate:"required"`
	ProductID  string    `json:"product_id" validate:"required"`
	Spend      float64   `json:"spend" validate:"gte=0"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
}

// Review represents a customer review record. Loaded and summarized for
// reporting only.
type Review struct {
	ReviewID  string    `json:"review_id" validate:"required"`
	ProductID string    `json:"product_id" validate:"required"`
	Date      time.Time `json:"date"`
	Rating    float64   `json:"rating" validate:"gte=0,lte=5"`
	Sentiment string    `json:"sentiment"`
	Comment   string    `json:"comment"`
	Platform  string    `json:"platform"`
}

// Sale is an integrated transaction: the raw transaction joined with the
// product attributes needed by the analytic engines.
type Sale struct {
	Transaction
	ProductName string    `json:"product_name"`
	Brand       string    `json:"brand"`
	Type        string    `json:"type"`
	LaunchDate  time.Time `json:"launch_date"`
}

// Month returns the first day of the sale's calendar month, used for
// monthly grouping.
func (s Sale) Month() time.Time {
	return time.Date(s.Date.Year(), s.Date.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// Dataset bundles all loaded tables plus the integrated sales view.
// Immutable after Load.
type Dataset struct {
	Transactions []Transaction
	Products     []Product
	Campaigns    []Campaign
	Reviews      []Review

	// Sales is the integrated view: transactions with product attributes
	// attached. Transactions referencing an unknown product are excluded
	// here (they remain in Transactions).
	Sales []Sale

	byProduct map[string]Product
}

// Product looks up a product by ID.
func (d *Dataset) Product(id string) (Product, bool) {
	p, ok := d.byProduct[id]
	return p, ok
}

// MaxDate returns the latest transaction date in the integrated sales view.
// Zero time when the dataset is empty.
func (d *Dataset) MaxDate() time.Time {
	var max time.Time
	for _, s := range d.Sales {
		if s.Date.After(max) {
			max = s.Date
		}
	}
	return max
}

// MinDate returns the earliest transaction date in the integrated sales
// view. Zero time when the dataset is empty.
func (d *Dataset) MinDate() time.Time {
	var min time.Time
	for _, s := range d.Sales {
		if min.IsZero() || s.Date.Before(min) {
			min = s.Date
		}
	}
	return min
}
