package normalize

// Alias tables for every logical field. Matching is ASCII case-insensitive,
// so each spelling only needs to appear once regardless of casing.
var (
	mpnKeys = []string{"ManufacturerPartNumber", "MPN", "PartNumber", "Sku"}

	// partContextKeys must accompany an MPN key for an object to be a candidate
	partContextKeys = []string{
		"Manufacturer", "ManufacturerName", "Description",
		"Offers", "SellerOffers", "DistributorOffers", "DatasheetUrl",
	}

	manufacturerKeys = []string{"Manufacturer", "ManufacturerName", "Mfr", "Brand", "Maker"}
	descriptionKeys  = []string{"Description", "ShortDescription", "Name", "Title"}
	lifecycleKeys    = []string{"LifecycleStatus", "Lifecycle", "Status", "PartStatus"}
	datasheetKeys    = []string{"DatasheetUrl", "Datasheet"}

	offerArrayKeys = []string{
		"Offers", "SellerOffers", "DistributorOffers",
		"Distributors", "Sellers", "Sources",
	}

	distributorKeys = []string{
		"Distributor", "DistributorName", "Seller", "SellerName",
		"Supplier", "SupplierName", "Source", "Store",
	}
	skuKeys      = []string{"SKU", "PartNumber", "SellerPartNumber", "SupplierPartNumber"}
	stockKeys    = []string{"InStockQuantity", "QuantityAvailable", "Stock", "QtyAvailable", "AvailableQuantity"}
	moqKeys      = []string{"MinimumOrderQuantity", "MinOrderQty", "MOQ", "MinimumQuantity"}
	buyURLKeys   = []string{"BuyUrl", "ProductUrl", "Url", "Link", "PurchaseUrl"}
	priceKeys    = []string{"UnitPrice", "Price"}
	currencyKeys = []string{"Currency"}

	priceContainerKeys = []string{"Prices", "PriceBreaks"}

	errorMessageKeys = []string{"message", "error", "detail", "details"}
)
