package ecommerce

import "time"

// Customer is one amazon_customers row.
type Customer struct {
	ID             string
	SignupDate     time.Time
	Region         string
	AgeBand        string
	LoyaltyTier    string
	MarketingOptIn bool
	LifetimeValue  float64
	AddressHash    string
}

// Values implements schema.Record.
func (c Customer) Values() []any {
	return []any{c.ID, c.SignupDate, c.Region, c.AgeBand, c.LoyaltyTier, c.MarketingOptIn,
		c.LifetimeValue, c.AddressHash}
}

// Product is one amazon_products row.
type Product struct {
	ID           string
	SKU          string
	Category1    string
	Category2    string
	Category3    string
	Brand        string
	Price        float64
	Cost         float64
	StockQty     int
	WeightG      int
	DimensionsCM string
	SupplierID   string
	LaunchDate   time.Time
}

// Values implements schema.Record.
func (p Product) Values() []any {
	return []any{p.ID, p.SKU, p.Category1, p.Category2, p.Category3, p.Brand, p.Price, p.Cost,
		p.StockQty, p.WeightG, p.DimensionsCM, p.SupplierID, p.LaunchDate}
}

// Order is one amazon_orders row.
type Order struct {
	ID                string
	CustomerID        string
	OrderTS           time.Time
	Channel           string
	PaymentMethod     string
	Status            string
	Total             float64
	Tax               float64
	Shipping          float64
	PromoCode         *string
	WarehouseID       string
	EstimatedDelivery time.Time
}

// Values implements schema.Record.
func (o Order) Values() []any {
	return []any{o.ID, o.CustomerID, o.OrderTS, o.Channel, o.PaymentMethod, o.Status, o.Total,
		o.Tax, o.Shipping, o.PromoCode, o.WarehouseID, o.EstimatedDelivery}
}

// OrderItem is one amazon_order_items row.
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	Quantity    int
	UnitPrice   float64
	DiscountPct float64
	Tax         float64
	LineTotal   float64
}

// Values implements schema.Record.
func (i OrderItem) Values() []any {
	return []any{i.ID, i.OrderID, i.ProductID, i.Quantity, i.UnitPrice, i.DiscountPct, i.Tax, i.LineTotal}
}

// Discount returns the amount taken off the line.
func (i OrderItem) Discount() float64 {
	return float64(i.Quantity) * i.UnitPrice * i.DiscountPct / 100
}

// OrderEvent is one amazon_order_events row.
type OrderEvent struct {
	ID          string
	OrderID     string
	EventType   string
	Actor       string
	EventTS     time.Time
	Channel     string
	RiskScore   float64
	GeoLocation string
	SessionID   string
	UserAgent   string
}

// Values implements schema.Record.
func (e OrderEvent) Values() []any {
	return []any{e.ID, e.OrderID, e.EventType, e.Actor, e.EventTS, e.Channel, e.RiskScore,
		e.GeoLocation, e.SessionID, e.UserAgent}
}

// DailySales is one amazon_daily_sales_agg row.
type DailySales struct {
	Date              time.Time
	Category          string
	Region            string
	Orders            int
	UnitsSold         int
	GrossRevenue      float64
	Discounts         float64
	Returns           float64
	AvgOrderValue     float64
	ReturnRate        float64
	DistinctCustomers int
}

// Values implements schema.Record.
func (d DailySales) Values() []any {
	return []any{d.Date, d.Category, d.Region, d.Orders, d.UnitsSold, d.GrossRevenue, d.Discounts,
		d.Returns, d.AvgOrderValue, d.ReturnRate, d.DistinctCustomers}
}

// CategorySales is one agg_amazon_daily_sales row.
type CategorySales struct {
	Date          time.Time
	Category      string
	Orders        int
	UnitsSold     int
	AvgOrderValue float64
	GrossRevenue  float64
	Returns       int
	ReturnRate    float64
}

// Values implements schema.Record.
func (c CategorySales) Values() []any {
	return []any{c.Date, c.Category, c.Orders, c.UnitsSold, c.AvgOrderValue, c.GrossRevenue,
		c.Returns, c.ReturnRate}
}

// StagedOrder is one staging_amazon_orders row.
type StagedOrder struct {
	OrderID           string
	CustomerID        string
	OrderTS           time.Time
	ItemsCount        int
	Subtotal          float64
	Shipping          float64
	Tax               float64
	Total             float64
	FulfillmentCenter string
	Channel           string
	BatchID           string
	ProcessedTS       time.Time
}

// Values implements schema.Record.
func (o StagedOrder) Values() []any {
	return []any{o.OrderID, o.CustomerID, o.OrderTS, o.ItemsCount, o.Subtotal, o.Shipping, o.Tax,
		o.Total, o.FulfillmentCenter, o.Channel, o.BatchID, o.ProcessedTS}
}

// OrderFeatures is one features_amazon_order row.
type OrderFeatures struct {
	OrderID       string
	CustomerLTV   float64
	ItemsCount    int
	DiscountPct   float64
	LabelReturned int
}

// Values implements schema.Record.
func (f OrderFeatures) Values() []any {
	return []any{f.OrderID, f.CustomerLTV, f.ItemsCount, f.DiscountPct, f.LabelReturned}
}
