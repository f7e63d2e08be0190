package domain

const (
	CategoryPapierThermo    = "papier_thermo"
	CategoryPapierParaffine = "papier_paraffine"
	CategoryPots            = "pots"
	CategoryBretelles       = "bretelles"
	CategoryCabasKraftPP    = "cabas_kraft_pp"
	CategoryCabasKraftPT    = "cabas_kraft_pt"
	CategoryReutilisable    = "reutilisable"
	CategoryIsotherme       = "isotherme"
	CategoryObjetPub        = "objet_pub"

	UnitKg   = "kg"
	UnitItem = "unité"

	// OtherProduct is the free-form entry available in every category.
	OtherProduct = "Autre"
)

// Category is a product line of the catalogue
type Category struct {
	Key      string   `json:"key"`
	Name     string   `json:"name"`
	Unit     string   `json:"unit"`
	Products []string `json:"products"`
}

// Catalog lists the product lines in display order.
var Catalog = []Category{
	{Key: CategoryPapierThermo, Name: "Papier Thermo", Unit: UnitKg,
		Products: []string{"Bob 35", "Bob 50", "50x70", "35x50", "25x35", "32x35", OtherProduct}},
	{Key: CategoryPapierParaffine, Name: "Papier Paraffiné", Unit: UnitKg,
		Products: []string{"25x32", "32x50", "50x65", "32x32,5", "Bob 32,5", "Bob 50", OtherProduct}},
	{Key: CategoryPots, Name: "Pots", Unit: UnitItem,
		Products: []string{"125gr", "250gr", "500gr", OtherProduct}},
	{Key: CategoryBretelles, Name: "Bretelles", Unit: UnitItem,
		Products: []string{"210+60x400", "260+60x460", "280+70x500", "300+70x540", "300+80x600", OtherProduct}},
	{Key: CategoryCabasKraftPP, Name: "Cabas Kraft PP", Unit: UnitItem,
		Products: []string{"18+8x22", "22+10x28", "26+14x32", "32+14x42", OtherProduct}},
	{Key: CategoryCabasKraftPT, Name: "Cabas Kraft PT", Unit: UnitItem,
		Products: []string{"18+8x22", "24+10x32", "34+14x42", OtherProduct}},
	{Key: CategoryReutilisable, Name: "Réutilisable", Unit: UnitItem,
		Products: []string{"Nylon", "Polypropylène tissé", "Toile de jute", "Tote bags", "Thermosoudé", OtherProduct}},
	{Key: CategoryIsotherme, Name: "Isotherme", Unit: UnitItem,
		Products: []string{"36x20x30", "36x15x38", OtherProduct}},
	{Key: CategoryObjetPub, Name: "Objet Pub", Unit: UnitItem,
		Products: []string{"Stylos", "Limonadier", "Planche bois", OtherProduct}},
}

// LookupCategory finds a catalogue category by key.
func LookupCategory(key string) (Category, bool) {
	for _, c := range Catalog {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}

// HasProduct reports whether name is one of the listed products.
func (c Category) HasProduct(name string) bool {
	for _, p := range c.Products {
		if p == name {
			return true
		}
	}
	return false
}
