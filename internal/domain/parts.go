package domain

import (
	"strconv"
	"strings"
)

// UnknownDistributor is used when an offer does not name its seller
const UnknownDistributor = "Unknown Distributor"

// Result cap bounds for a parts search
const (
	DefaultMaxResults = 20
	MinMaxResults     = 1
	MaxMaxResults     = 100
)

// DefaultCountryCode is sent upstream when the caller gives none
const DefaultCountryCode = "US"

// Offer is one distributor's sale terms for a part
type Offer struct {
	Distributor  string   `json:"distributor" yaml:"distributor"`
	SKU          *string  `json:"sku" yaml:"sku"`
	Stock        *uint64  `json:"stock" yaml:"stock"`
	MOQ          *uint64  `json:"moq" yaml:"moq"`
	Currency     *string  `json:"currency" yaml:"currency"`
	UnitPrice    *float64 `json:"unitPrice" yaml:"unitPrice"`
	BuyURL       *string  `json:"buyUrl" yaml:"buyUrl"`
	DatasheetURL *string  `json:"datasheetUrl" yaml:"datasheetUrl"`
}

// StockOrZero returns the stock level, treating an unknown level as zero
func (o *Offer) StockOrZero() uint64 {
	if o.Stock == nil {
		return 0
	}
	return *o.Stock
}

// Key identifies offers that describe the same listing:
// lower(distributor)::lower(sku)::price, with -1 standing in for no price.
func (o *Offer) Key() string {
	sku := ""
	if o.SKU != nil {
		sku = *o.SKU
	}
	price := -1.0
	if o.UnitPrice != nil {
		price = *o.UnitPrice
	}
	return strings.ToLower(o.Distributor) + "::" + strings.ToLower(sku) + "::" +
		strconv.FormatFloat(price, 'f', -1, 64)
}

// PartHit is one canonical part assembled from a search response
type PartHit struct {
	MPN             string  `json:"mpn" yaml:"mpn"`
	Manufacturer    *string `json:"manufacturer" yaml:"manufacturer"`
	Description     *string `json:"description" yaml:"description"`
	LifecycleStatus *string `json:"lifecycleStatus" yaml:"lifecycleStatus"`
	CategoryHint    string  `json:"categoryHint" yaml:"categoryHint"`
	Offers          []Offer `json:"offers" yaml:"offers"`
}

// Key identifies the logical part: lower(manufacturer)::lower(mpn)
func (p *PartHit) Key() string {
	manufacturer := ""
	if p.Manufacturer != nil {
		manufacturer = *p.Manufacturer
	}
	return strings.ToLower(manufacturer) + "::" + strings.ToLower(p.MPN)
}

// MaxStock returns the highest known stock across the part's offers
func (p *PartHit) MaxStock() uint64 {
	var best uint64
	for i := range p.Offers {
		if s := p.Offers[i].StockOrZero(); s > best {
			best = s
		}
	}
	return best
}

// SearchRequest is an inventory search as submitted by the desktop shell.
// Credentials left blank fall back to the configured ones.
type SearchRequest struct {
	CompanyID   string `json:"companyId"`
	APIKey      string `json:"apiKey"`
	SearchToken string `json:"searchToken"`
	CountryCode string `json:"countryCode,omitempty"`
	ExactMatch  *bool  `json:"exactMatch,omitempty"`
	InStockOnly *bool  `json:"inStockOnly,omitempty"`
	MaxResults  *int   `json:"maxResults,omitempty"`
}

// PartsQuery is a validated upstream query with all defaults applied
type PartsQuery struct {
	CompanyID   string
	APIKey      string
	SearchToken string
	CountryCode string
	ExactMatch  bool
	InStockOnly bool
}
