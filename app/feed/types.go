package feed

import (
	"github.com/shopspring/decimal"
)

// Import modes

type Mode string

const (
	ModeFullImport Mode = "full_import" // replace every mapped field, create new SKUs
	ModeStockOnly  Mode = "stock_only"  // availability-only updates for known SKUs
)

func (m Mode) Valid() bool {
	return m == ModeFullImport || m == ModeStockOnly
}

// Configuration types

type Config struct {
	Name     string         // Derived from filename (without .yml extension)
	URL      string         `yaml:"url"`
	Settings ConfigSettings `yaml:"settings"`
	Fields   ConfigFields   `yaml:"fields"`
}

type ConfigSettings struct {
	Enabled         bool `yaml:"enabled"`
	Mode            Mode `yaml:"mode"`
	RefreshInterval int  `yaml:"refresh_interval"` // seconds
	Timeout         int  `yaml:"timeout"`          // seconds, fetch bound
}

// ConfigFields maps dotted paths in the parsed supplier document to product fields.
type ConfigFields struct {
	Items       string   `yaml:"items"`      // path to the list of offers
	Categories  string   `yaml:"categories"` // path to the supplier category listing
	SKU         string   `yaml:"sku"`
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Price       string   `yaml:"price"`
	Available   string   `yaml:"available"`
	Photos      []string `yaml:"photos"` // one multi-value path or numbered variants
	CategoryRef string   `yaml:"category_ref"`
}

// Record is the canonical write-ready product assembled from one offer.
type Record struct {
	SKU         string
	Name        string
	Description string
	Price       decimal.Decimal
	Available   bool
	ImageURL    string
	Gallery     []string
	CategoryRef string  // supplier-side category reference, resolved during the run
	CategoryID  *string // canonical category id once resolved
}

// SkipReason marks an offer that cannot become a usable record. Non-fatal;
// absorbed into run counters.
type SkipReason string

const (
	SkipNone         SkipReason = ""
	SkipMissingSKU   SkipReason = "missing_sku"
	SkipMissingName  SkipReason = "missing_name"
	SkipInvalidPrice SkipReason = "invalid_price"
)

// RunResult summarizes one feed import run. Ephemeral; condensed into the
// feed's status string after the run.
type RunResult struct {
	Offers         int
	Created        int
	Updated        int
	SkippedNoSKU   int
	SkippedNoName  int
	SkippedNoPrice int
	Errors         []string
}

// Written returns the number of successfully written records.
func (r *RunResult) Written() int {
	return r.Created + r.Updated
}
