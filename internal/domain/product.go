package domain

import "strconv"

// ProductRef identifies a product in the storefront platform.
// The platform owns the catalog; this is the minimal handle resolution needs.
type ProductRef struct {
	ID  int64  `json:"id"`
	SKU string `json:"sku,omitempty"`
}

// String returns the numeric product ID as a string for keys and logging.
func (r ProductRef) String() string {
	return strconv.FormatInt(r.ID, 10)
}

// ProductImage is one entry in a product's ordered image list.
// Index 0 is the primary image; the gallery follows.
type ProductImage struct {
	URL    string `json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}
