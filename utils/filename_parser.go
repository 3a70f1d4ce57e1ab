package utils

import (
	"fmt"
	"regexp"
	"strconv"

	"apparel-editpages/models"
)

// EditPagePrefix is the fixed literal every artifact name starts with
const EditPagePrefix = "product-edit-product-"

// EditPageGlob matches every artifact in a pages directory
const EditPageGlob = EditPagePrefix + "*.html"

var editPageRegex = regexp.MustCompile(`^product-edit-product-(\d+)([_-])(.+)\.html$`)

// EditPageFileName builds the artifact name: product-edit-product-{id}_{slug}.html
func EditPageFileName(id int, slug string) string {
	return fmt.Sprintf("%s%d_%s.html", EditPagePrefix, id, slug)
}

// ParseEditPageFileName recovers the product id and slug from an artifact name.
// Only the digits after the prefix are needed for the id; zero padding is accepted.
// The hyphen-separated variant written by older generators is reported as Legacy.
func ParseEditPageFileName(filename string) (*models.EditPage, error) {
	matches := editPageRegex.FindStringSubmatch(filename)
	if len(matches) != 4 {
		return nil, fmt.Errorf("invalid edit page filename: expected %s{id}_{slug}.html, got %s", EditPagePrefix, filename)
	}

	id, err := strconv.Atoi(matches[1])
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("invalid product id in filename %s", filename)
	}

	return &models.EditPage{
		ProductID: id,
		Slug:      matches[3],
		Filename:  filename,
		Legacy:    matches[2] == "-",
	}, nil
}
