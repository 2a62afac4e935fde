package normalize

import (
	"slices"
	"strings"

	"github.com/aha-designer/backend/internal/domain"
	"github.com/aha-designer/backend/internal/jsontree"
)

// ExtractPart builds a canonical part from a candidate object. It reports
// false when the candidate has no usable manufacturer part number.
func ExtractPart(candidate jsontree.Value) (domain.PartHit, bool) {
	mpn := lookupString(candidate, mpnKeys)
	if mpn == nil {
		return domain.PartHit{}, false
	}

	description := lookupString(candidate, descriptionKeys)
	datasheet := lookupString(candidate, datasheetKeys)

	desc := ""
	if description != nil {
		desc = *description
	}

	offers := ExtractOffers(candidate, datasheet)
	sortOffers(offers)

	return domain.PartHit{
		MPN:             *mpn,
		Manufacturer:    lookupString(candidate, manufacturerKeys),
		Description:     description,
		LifecycleStatus: lookupString(candidate, lifecycleKeys),
		CategoryHint:    Classify(*mpn, desc),
		Offers:          offers,
	}, true
}

// ExtractOffers collects offers from every array found under an offer alias
// key. When none are found the candidate itself is read as a single offer,
// which covers flat schemas that put stock and price next to the MPN.
func ExtractOffers(candidate jsontree.Value, fallbackDatasheet *string) []domain.Offer {
	offers := []domain.Offer{}

	for _, alias := range offerArrayKeys {
		for _, m := range candidate.Members() {
			if !m.Value.IsArray() || !jsontree.EqualFoldASCII(m.Key, alias) {
				continue
			}
			for _, entry := range m.Value.Elements() {
				if !entry.IsObject() {
					continue
				}
				if offer, ok := ParseOffer(entry, fallbackDatasheet); ok {
					offers = append(offers, offer)
				}
			}
		}
	}

	if len(offers) == 0 {
		if offer, ok := ParseOffer(candidate, fallbackDatasheet); ok {
			offers = append(offers, offer)
		}
	}

	return offers
}

// ParseOffer reads one offer object. Offers without stock, price, buy URL
// and datasheet carry nothing actionable and are rejected.
func ParseOffer(obj jsontree.Value, fallbackDatasheet *string) (domain.Offer, bool) {
	distributor := domain.UnknownDistributor
	if name := lookupString(obj, distributorKeys); name != nil {
		distributor = *name
	}

	stock := lookupUint(obj, stockKeys)
	unitPrice, currency := extractUnitPrice(obj)
	buyURL := lookupString(obj, buyURLKeys)

	datasheetURL := lookupString(obj, datasheetKeys)
	if datasheetURL == nil && fallbackDatasheet != nil {
		inherited := *fallbackDatasheet
		datasheetURL = &inherited
	}

	if stock == nil && unitPrice == nil && buyURL == nil && datasheetURL == nil {
		return domain.Offer{}, false
	}

	return domain.Offer{
		Distributor:  distributor,
		SKU:          lookupString(obj, skuKeys),
		Stock:        stock,
		MOQ:          lookupUint(obj, moqKeys),
		Currency:     currency,
		UnitPrice:    unitPrice,
		BuyURL:       buyURL,
		DatasheetURL: datasheetURL,
	}, true
}

// extractUnitPrice tries, in order: a scalar price with an optional
// currency, then a Prices/PriceBreaks container of any nesting.
func extractUnitPrice(obj jsontree.Value) (*float64, *string) {
	if price := lookupFloat(obj, priceKeys); price != nil {
		return price, lookupString(obj, currencyKeys)
	}

	if container, ok := jsontree.Lookup(obj, priceContainerKeys...); ok {
		if price, currency, ok := parsePriceContainer(container); ok {
			return &price, currency
		}
	}

	return nil, nil
}

// parsePriceContainer handles the two common container layouts:
//
//	{"USD": [{"Quantity": 1, "Price": 1.23}]}   currency-keyed map
//	[{"Quantity": 1, "Price": 1.23, "Currency": "USD"}, 0.98]
func parsePriceContainer(v jsontree.Value) (float64, *string, bool) {
	switch v.Kind() {
	case jsontree.Object:
		for _, m := range v.Members() {
			if price, ok := parsePriceValue(m.Value); ok {
				currency := m.Key
				return price, &currency, true
			}
		}
		return 0, nil, false
	case jsontree.Array:
		for _, entry := range v.Elements() {
			if entry.IsObject() {
				if price := lookupFloat(entry, priceKeys); price != nil {
					return *price, lookupString(entry, currencyKeys), true
				}
				continue
			}
			if price, ok := parsePriceValue(entry); ok {
				return price, nil, true
			}
		}
		return 0, nil, false
	}

	price, ok := parsePriceValue(v)
	return price, nil, ok
}

// parsePriceValue digs through arrays and one level of object wrapping
// until it finds a number
func parsePriceValue(v jsontree.Value) (float64, bool) {
	if price, ok := jsontree.AsFloat(v); ok {
		return price, true
	}

	switch v.Kind() {
	case jsontree.Array:
		for _, entry := range v.Elements() {
			if price, ok := parsePriceValue(entry); ok {
				return price, true
			}
		}
	case jsontree.Object:
		if price := lookupFloat(v, priceKeys); price != nil {
			return *price, true
		}
	}
	return 0, false
}

// sortOffers orders offers by stock descending, then distributor name
func sortOffers(offers []domain.Offer) {
	slices.SortStableFunc(offers, func(a, b domain.Offer) int {
		sa, sb := a.StockOrZero(), b.StockOrZero()
		if sa != sb {
			if sa > sb {
				return -1
			}
			return 1
		}
		return strings.Compare(a.Distributor, b.Distributor)
	})
}

func lookupString(obj jsontree.Value, aliases []string) *string {
	v, ok := jsontree.Lookup(obj, aliases...)
	if !ok {
		return nil
	}
	s, ok := jsontree.AsString(v)
	if !ok {
		return nil
	}
	return &s
}

func lookupUint(obj jsontree.Value, aliases []string) *uint64 {
	v, ok := jsontree.Lookup(obj, aliases...)
	if !ok {
		return nil
	}
	n, ok := jsontree.AsUint(v)
	if !ok {
		return nil
	}
	return &n
}

func lookupFloat(obj jsontree.Value, aliases []string) *float64 {
	v, ok := jsontree.Lookup(obj, aliases...)
	if !ok {
		return nil
	}
	f, ok := jsontree.AsFloat(v)
	if !ok {
		return nil
	}
	return &f
}
