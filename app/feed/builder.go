package feed

import (
	"strings"
)

// Fallback labels tried when the configured SKU path yields nothing. Supplier
// exports frequently carry the article number only as a named <param>.
var skuParamLabels = []string{"Артикул", "Артикул товара", "Artikul", "SKU"}

// Builder assembles a canonical product record from one parsed offer
// according to the feed's field mapping.
type Builder struct {
	config *Config
}

func NewBuilder(config *Config) *Builder {
	return &Builder{config: config}
}

// Run produces a write-ready record or the reason the offer is skipped.
// Under stock_only the record carries SKU and availability only; name and
// price are not required because stock_only never creates products.
func (b *Builder) Run(offer map[string]interface{}, mode Mode) (*Record, SkipReason) {
	sku := b.resolveSKU(offer)
	if sku == "" {
		return nil, SkipMissingSKU
	}

	record := &Record{
		SKU:       sku,
		Available: NormalizeAvailability(Lookup(offer, b.config.Fields.Available)),
	}

	if mode == ModeStockOnly {
		return record, SkipNone
	}

	record.Name = LookupString(offer, b.config.Fields.Name)
	if record.Name == "" {
		return nil, SkipMissingName
	}

	price, ok := NormalizePrice(Lookup(offer, b.config.Fields.Price))
	if !ok {
		return nil, SkipInvalidPrice
	}
	record.Price = price

	record.Description = LookupString(offer, b.config.Fields.Description)
	record.CategoryRef = LookupString(offer, b.config.Fields.CategoryRef)

	var photoValues []interface{}
	for _, path := range b.config.Fields.Photos {
		photoValues = append(photoValues, LookupList(offer, path)...)
	}
	record.ImageURL, record.Gallery = NormalizePhotos(photoValues)

	return record, SkipNone
}

// resolveSKU tries the configured path, then the vendorCode element, then the
// named param fallbacks, in fixed priority order. First non-blank wins.
func (b *Builder) resolveSKU(offer map[string]interface{}) string {
	if sku := LookupString(offer, b.config.Fields.SKU); sku != "" {
		return sku
	}

	if sku := LookupString(offer, "vendorCode"); sku != "" {
		return sku
	}

	for _, param := range LookupList(offer, "param") {
		entry, ok := param.(map[string]interface{})
		if !ok {
			continue
		}
		label := scalarString(entry["name"])
		for _, candidate := range skuParamLabels {
			if strings.EqualFold(label, candidate) {
				if sku := scalarString(entry["#text"]); sku != "" {
					return sku
				}
			}
		}
	}

	return ""
}
