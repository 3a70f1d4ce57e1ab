package models

// EditPage identifies one rendered edit page artifact on disk
type EditPage struct {
	ProductID int    `json:"productId"`
	Slug      string `json:"slug"`
	Filename  string `json:"filename"`
	Legacy    bool   `json:"legacy,omitempty"` // hyphen-separated name from older generators
}
