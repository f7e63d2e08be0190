// backend-go/internal/domain/models.go
package domain

import "time"

// Client represents a customer account
type Client struct {
	ID            string    `json:"id" db:"id"`
	Nom           string    `json:"nom" db:"nom"`
	Prenom        string    `json:"prenom" db:"prenom"`
	NomEntreprise string    `json:"nom_entreprise" db:"nom_entreprise"`
	Email         string    `json:"email" db:"email"`
	Telephone     string    `json:"telephone" db:"telephone"`
	CodePostal    string    `json:"code_postal" db:"code_postal"`
	Rue           string    `json:"rue" db:"rue"`
	Ville         string    `json:"ville" db:"ville"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// DisplayName returns the company name, falling back to the contact name.
func (c Client) DisplayName() string {
	if c.NomEntreprise != "" {
		return c.NomEntreprise
	}
	return c.Nom
}

// Order is a client order placed in a given week. Products is nil for
// legacy orders that only carry a total.
type Order struct {
	ID                   string         `json:"id"`
	ClientID             string         `json:"client_id"`
	OrderNumber          string         `json:"order_number,omitempty"`
	WeekNumber           int            `json:"week_number"`
	Year                 int            `json:"year"`
	DeliveryWeek         int            `json:"delivery_week,omitempty"`
	DeliveryYear         int            `json:"delivery_year,omitempty"`
	DayOfWeek            string         `json:"day_of_week,omitempty"`
	ClosureDays          []string       `json:"closure_days,omitempty"`
	DeliveryInstructions string         `json:"delivery_instructions,omitempty"`
	Products             []OrderProduct `json:"products"`
	Total                float64        `json:"total"`
}

// Product returns the first line carrying the given product name.
func (o Order) Product(name string) (OrderProduct, bool) {
	for _, p := range o.Products {
		if p.Name == name {
			return p, true
		}
	}
	return OrderProduct{}, false
}

// WeekYear is a position on the 52-week calendar used by predictions.
type WeekYear struct {
	Week int `json:"week"`
	Year int `json:"year"`
}

// ClientStats holds the aggregate consumption figures of one client
type ClientStats struct {
	TotalOrders               int       `json:"total_orders"`
	AverageWeeksBetweenOrders float64   `json:"average_weeks_between_orders"`
	WeeklyConsumption         float64   `json:"weekly_consumption"`
	MonthlyConsumption        float64   `json:"monthly_consumption"`
	LastOrderDuration         float64   `json:"last_order_duration"`
	NextOrderPrediction       *WeekYear `json:"next_order_prediction"`
	LastOrder                 *WeekYear `json:"last_order"`
	WeeksUntilNextOrder       float64   `json:"weeks_until_next_order"`
}

// ProductPrediction is the reorder forecast of a single product line
type ProductPrediction struct {
	ProductName         string   `json:"product_name"`
	ProductCategory     string   `json:"product_category"`
	NextOrderPrediction WeekYear `json:"next_order_prediction"`
	WeeklyConsumption   float64  `json:"weekly_consumption"`
	WeeksUntilNextOrder float64  `json:"weeks_until_next_order"`
}

// NextProductPrediction is the product expected to be reordered first,
// with WeeksUntilNextOrder measured from the current week.
type NextProductPrediction struct {
	ProductName         string   `json:"product_name"`
	ProductCategory     string   `json:"product_category"`
	NextOrderPrediction WeekYear `json:"next_order_prediction"`
	WeeksUntilNextOrder int      `json:"weeks_until_next_order"`
}

// ClientInsight bundles every prediction computed for one client
type ClientInsight struct {
	Client      Client                 `json:"client"`
	Stats       ClientStats            `json:"stats"`
	Status      *WeekStatus            `json:"status"`
	Products    []ProductPrediction    `json:"products"`
	NextProduct *NextProductPrediction `json:"next_product"`
}
