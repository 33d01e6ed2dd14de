package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// File names expected inside the data directory.
const (
	SalesFile     = "sales.csv"
	ProductsFile  = "products.csv"
	MarketingFile = "marketing.csv"
	ReviewsFile   = "reviews.csv"
)

var validate = validator.New()

// Load reads all four data sources from dir and builds the integrated
// sales view. Malformed rows are logged and skipped; a missing marketing
// or reviews file is tolerated (those tables are reporting-only), but
// sales and products are required.
func Load(ctx context.Context, dir string, logger *slog.Logger) (*Dataset, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, fmt.Errorf("data directory does not exist: %s", dir)
	}

	ds := &Dataset{byProduct: make(map[string]Product)}

	transactions, err := loadTransactions(filepath.Join(dir, SalesFile), logger)
	if err != nil {
		return nil, fmt.Errorf("load sales: %w", err)
	}
	ds.Transactions = transactions

	products, err := loadProducts(filepath.Join(dir, ProductsFile), logger)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	ds.Products = products
	for _, p := range products {
		ds.byProduct[p.ProductID] = p
	}

	if campaigns, err := loadCampaigns(filepath.Join(dir, MarketingFile), logger); err != nil {
		logger.WarnContext(ctx, "marketing data unavailable", "error", err)
	} else {
		ds.Campaigns = campaigns
	}

	if reviews, err := loadReviews(filepath.Join(dir, ReviewsFile), logger); err != nil {
		logger.WarnContext(ctx, "reviews data unavailable", "error", err)
	} else {
		ds.Reviews = reviews
	}

	integrate(ctx, ds, logger)

	logger.InfoContext(ctx, "datasets loaded",
		"transactions", len(ds.Transactions),
		"products", len(ds.Products),
		"campaigns", len(ds.Campaigns),
		"reviews", len(ds.Reviews),
		"integrated_sales", len(ds.Sales),
	)

	return ds, nil
}

// integrate joins transactions to product attributes by ProductID.
// Transactions referencing an unknown product are excluded from the
// integrated view and counted in the log.
func integrate(ctx context.Context, ds *Dataset, logger *slog.Logger) {
	sales := make([]Sale, 0, len(ds.Transactions))
	unknown := 0

	for _, tx := range ds.Transactions {
		p, ok := ds.byProduct[tx.ProductID]
		if !ok {
			unknown++
			continue
		}
		sales = append(sales, Sale{
			Transaction: tx,
			ProductName: p.ProductName,
			Brand:       p.Brand,
			Type:        p.Type,
			LaunchDate:  p.LaunchDate,
		})
	}

	if unknown > 0 {
		logger.WarnContext(ctx, "transactions with unknown product excluded from integrated view",
			"count", unknown,
		)
	}

	ds.Sales = sales
}

// columnIndex maps header names (case-insensitive, with aliases) to their
// positions in the CSV header row.
type columnIndex map[string]int

func indexColumns(header []string) columnIndex {
	idx := make(columnIndex, len(header))
	for i, col := range header {
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	return idx
}

// get returns the value of the first matching column name, or "" when none
// of the aliases exist in the header.
func (ci columnIndex) get(record []string, names ...string) string {
	for _, name := range names {
		if i, ok := ci[name]; ok && i < len(record) {
			return strings.TrimSpace(record[i])
		}
	}
	return ""
}

func loadTransactions(path string, logger *slog.Logger) ([]Transaction, error) {
	var transactions []Transaction

	err := readCSV(path, func(idx columnIndex, record []string, line int) {
		date, err := parseDate(idx.get(record, "date"))
		if err != nil {
			logger.Warn("skipping sales row with bad date", "file", filepath.Base(path), "line", line, "error", err)
			return
		}

		tx := Transaction{
			TransactionID: idx.get(record, "transaction_id"),
			ProductID:     idx.get(record, "product_id"),
			Date:          date,
			UnitsSold:     parseFloat(idx.get(record, "units_sold")),
			AvgPrice:      parseFloat(idx.get(record, "avg_price")),
			DiscountPct:   parseFloat(idx.get(record, "discount_pct")),
			Revenue:       parseFloat(idx.get(record, "revenue")),
			Channel:       idx.get(record, "channel"),
			Region:        idx.get(record, "region"),
		}

		if err := validate.Struct(tx); err != nil {
			logger.Warn("skipping invalid sales row", "file", filepath.Base(path), "line", line, "error", err)
			return
		}

		transactions = append(transactions, tx)
	})
	if err != nil {
		return nil, err
	}

	if len(transactions) == 0 {
		return nil, fmt.Errorf("no valid transactions in %s", path)
	}

	return transactions, nil
}

func loadProducts(path string, logger *slog.Logger) ([]Product, error) {
	var products []Product

	err := readCSV(path, func(idx columnIndex, record []string, line int) {
		launch, err := parseDate(idx.get(record, "launch_date"))
		if err != nil {
			logger.Warn("skipping product row with bad launch date", "file", filepath.Base(path), "line", line, "error", err)
			return
		}

		p := Product{
			ProductID:   idx.get(record, "product_id"),
			ProductName: idx.get(record, "product_name"),
			Brand:       idx.get(record, "brand"),
			Type:        idx.get(record, "type", "category"),
			LaunchDate:  launch,
			BasePrice:   parseFloat(idx.get(record, "base_price")),
		}

		if err := validate.Struct(p); err != nil {
			logger.Warn("skipping invalid product row", "file", filepath.Base(path), "line", line, "error", err)
			return
		}

		products = append(products, p)
	})
	if err != nil {
		return nil, err
	}

	if len(products) == 0 {
		return nil, fmt.Errorf("no valid products in %s", path)
	}

	return products, nil
}

func loadCampaigns(path string, logger *slog.Logger) ([]Campaign, error) {
	var campaigns []Campaign

	err := readCSV(path, func(idx columnIndex, record []string, line int) {
		start, _ := parseDate(idx.get(record, "start_date"))
		end, _ := parseDate(idx.get(record, "end_date"))

		c := Campaign{
			CampaignID: idx.get(record, "campaign_id"),
			ProductID:  idx.get(record, "product_id"),
			Spend:      parseFloat(idx.get(record, "spend", "spend_idr")),
			StartDate:  start,
			EndDate:    end,
		}

		if err := validate.Struct(c); err != nil {
			logger.Warn("skipping invalid marketing row", "file", filepath.Base(path), "line", line, "error", err)
			return
		}

		campaigns = append(campaigns, c)
	})
	if err != nil {
		return nil, err
	}

	return campaigns, nil
}

func loadReviews(path string, logger *slog.Logger) ([]Review, error) {
	var reviews []Review

	err := readCSV(path, func(idx columnIndex, record []string, line int) {
		date, _ := parseDate(idx.get(record, "date"))

		r := Review{
			ReviewID:  idx.get(record, "review_id"),
			ProductID: idx.get(record, "product_id"),
			Date:      date,
			Rating:    parseFloat(idx.get(record, "rating")),
			Sentiment: idx.get(record, "sentiment"),
			Comment:   idx.get(record, "comment", "review_text"),
			Platform:  idx.get(record, "platform"),
		}

		if err := validate.Struct(r); err != nil {
			logger.Warn("skipping invalid review row", "file", filepath.Base(path), "line", line, "error", err)
			return
		}

		reviews = append(reviews, r)
	})
	if err != nil {
		return nil, err
	}

	return reviews, nil
}

// readCSV streams a headered CSV file, calling fn for each data row.
func readCSV(path string, fn func(idx columnIndex, record []string, line int)) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}
	idx := indexColumns(header)

	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read CSV records: %w", err)
		}
		line++
		fn(idx, record, line)
	}

	return nil
}

// parseDate attempts to parse date strings in multiple formats.
func parseDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	dateFormats := []string{
		"2006-01-02",
		"2006-01-02 15:04:05",
		"2006/01/02",
		"01/02/2006",
		"02/01/2006",
	}

	for _, format := range dateFormats {
		if date, err := time.Parse(format, dateStr); err == nil {
			return date, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse date: %s", dateStr)
}

func parseFloat(str string) float64 {
	if str == "" {
		return 0
	}
	value, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0
	}
	return value
}
