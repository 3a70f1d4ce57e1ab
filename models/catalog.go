package models

import "encoding/json"

// CatalogExport is the object form of a JSON catalog export. Records stay raw
// and are decoded one at a time.
type CatalogExport struct {
	Products []json.RawMessage `json:"products"`
}

// ItemList is a schema.org ItemList as published by storefront listing pages
type ItemList struct {
	Context         string          `json:"@context"`
	Type            string          `json:"@type"`
	ItemListElement []ListedProduct `json:"itemListElement"`
	NumberOfItems   int             `json:"numberOfItems"`
}

// ListedProduct is one schema.org Product entry of an ItemList
type ListedProduct struct {
	Type     string      `json:"@type"`
	Image    string      `json:"image"`
	Name     string      `json:"name"`
	URL      string      `json:"url"`
	Brand    ListedBrand `json:"brand"`
	Offers   ListedOffer `json:"offers"`
	Position int         `json:"position"`
}

// ListedBrand is the brand block of a listed product
type ListedBrand struct {
	Name string `json:"name"`
}

// ListedOffer carries the price as published, in the listing currency
type ListedOffer struct {
	Price         string `json:"price"`
	PriceCurrency string `json:"priceCurrency"`
}

// DriveFile is a catalog export stored in Google Drive
type DriveFile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	MimeType     string `json:"mimeType"`
	ModifiedTime string `json:"modifiedTime"`
}
