package editpage

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"apparel-editpages/models"
	"apparel-editpages/presets"
)

// PayloadElementID is the id of the script element holding the product JSON
const PayloadElementID = "product-payload"

// ParsePayload reads the product record embedded in a page
func ParsePayload(document string) (models.ProductRecord, error) {
	var product models.ProductRecord
	root, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return product, fmt.Errorf("failed to parse edit page: %w", err)
	}

	script := findElement(root, func(n *html.Node) bool {
		return n.Data == "script" && attr(n, "id") == PayloadElementID
	})
	if script == nil {
		return product, models.ErrPayloadNotFound
	}

	if err := json.Unmarshal([]byte(textContent(script)), &product); err != nil {
		return product, fmt.Errorf("%w: failed to decode payload: %v", models.ErrPayloadNotFound, err)
	}
	return product, nil
}

// Selections is what the visible form of a page shows as selected
type Selections struct {
	Category       string
	Colors         []string
	Sizes          []string
	Features       map[string]bool
	Specifications map[string]string
	GarmentType    string
	SizeChart      presets.Table
}

// ParseSelections reads the checked and filled-in values of the visible form
func ParseSelections(document string) (*Selections, error) {
	root, err := html.Parse(strings.NewReader(document))
	if err != nil {
		return nil, fmt.Errorf("failed to parse edit page: %w", err)
	}

	sel := &Selections{
		Features:       make(map[string]bool),
		Specifications: make(map[string]string),
	}
	walk(root, func(n *html.Node) {
		switch n.Data {
		case "input":
			readInput(sel, n)
		case "select":
			value := selectedOption(n)
			switch attr(n, "id") {
			case "product-category":
				sel.Category = value
			case "garment-type":
				sel.GarmentType = value
			}
		}
	})
	return sel, nil
}

func readInput(sel *Selections, n *html.Node) {
	_, checked := attrOK(n, "checked")
	switch attr(n, "name") {
	case "colors":
		if checked {
			sel.Colors = append(sel.Colors, attr(n, "value"))
		}
		return
	case "sizes":
		if checked {
			sel.Sizes = append(sel.Sizes, attr(n, "value"))
		}
		return
	case "features":
		sel.Features[attr(n, "value")] = checked
		return
	}

	if strings.HasPrefix(attr(n, "id"), "spec-") {
		sel.Specifications[attr(n, "name")] = attr(n, "value")
		return
	}
	if size := attr(n, "data-chart-size"); size != "" {
		if sel.SizeChart == nil {
			sel.SizeChart = make(presets.Table)
		}
		m := sel.SizeChart[size]
		switch attr(n, "data-chart-dimension") {
		case "chest":
			m.Chest = attr(n, "value")
		case "length":
			m.Length = attr(n, "value")
		}
		sel.SizeChart[size] = m
	}
}

func selectedOption(sel *html.Node) string {
	first := ""
	found := ""
	walk(sel, func(n *html.Node) {
		if n.Data != "option" || found != "" {
			return
		}
		if first == "" {
			first = attr(n, "value")
		}
		if _, ok := attrOK(n, "selected"); ok {
			found = attr(n, "value")
		}
	})
	if found != "" {
		return found
	}
	return first
}

func walk(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode {
		visit(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func findElement(n *html.Node, match func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && match(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, match); found != nil {
			return found
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

func attr(n *html.Node, key string) string {
	v, _ := attrOK(n, key)
	return v
}

func attrOK(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}
