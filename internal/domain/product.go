package domain

import "encoding/json"

// OrderProduct is one line of an order. Details holds the attributes that
// only exist for some categories.
type OrderProduct struct {
	ID       string
	Category string
	Name     string
	Quantity float64
	Unit     string
	Details  ProductDetails
}

// ProductDetails is the closed set of category-specific attributes:
// PaperDetails, PotDetails or PlainDetails.
type ProductDetails interface {
	isProductDetails()
}

// PaperDetails carries the print colours of thermal and waxed paper.
type PaperDetails struct {
	Colors []string
}

// PotDetails carries the lid and print colour of pots.
type PotDetails struct {
	CouvAT          string
	ImpressionColor string
}

type PlainDetails struct{}

func (PaperDetails) isProductDetails() {}
func (PotDetails) isProductDetails()   {}
func (PlainDetails) isProductDetails() {}

// DetailsFor returns the empty details variant matching a category.
func DetailsFor(category string) ProductDetails {
	switch category {
	case CategoryPapierThermo, CategoryPapierParaffine:
		return PaperDetails{}
	case CategoryPots:
		return PotDetails{}
	default:
		return PlainDetails{}
	}
}

// productWire is the stored/transported shape of an order line.
type productWire struct {
	ID              string   `json:"id"`
	Category        string   `json:"category"`
	Name            string   `json:"name"`
	Quantity        float64  `json:"quantity"`
	Unit            string   `json:"unit"`
	Color           string   `json:"color,omitempty"`
	Colors          []string `json:"colors,omitempty"`
	CouvAT          string   `json:"couvAT,omitempty"`
	ImpressionColor string   `json:"impressionColor,omitempty"`
}

func (p OrderProduct) MarshalJSON() ([]byte, error) {
	w := productWire{
		ID:       p.ID,
		Category: p.Category,
		Name:     p.Name,
		Quantity: p.Quantity,
		Unit:     p.Unit,
	}

	switch d := p.Details.(type) {
	case PaperDetails:
		w.Colors = d.Colors
	case PotDetails:
		w.CouvAT = d.CouvAT
		w.ImpressionColor = d.ImpressionColor
	}

	return json.Marshal(w)
}

func (p *OrderProduct) UnmarshalJSON(data []byte) error {
	var w productWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*p = OrderProduct{
		ID:       w.ID,
		Category: w.Category,
		Name:     w.Name,
		Quantity: w.Quantity,
		Unit:     w.Unit,
	}

	switch DetailsFor(w.Category).(type) {
	case PaperDetails:
		colors := w.Colors
		// older orders stored a single colour
		if len(colors) == 0 && w.Color != "" {
			colors = []string{w.Color}
		}
		p.Details = PaperDetails{Colors: colors}
	case PotDetails:
		p.Details = PotDetails{CouvAT: w.CouvAT, ImpressionColor: w.ImpressionColor}
	default:
		p.Details = PlainDetails{}
	}

	return nil
}
