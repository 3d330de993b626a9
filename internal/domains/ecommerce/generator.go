package ecommerce

import (
	"fmt"
	"strings"
	"time"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/datagen/profiles"
	"github.com/pgEdge/pgedge-datalab/internal/olap"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// Reference data
var (
	regions = datagen.MustWeighted(
		[]string{"UAE", "KSA", "Egypt", "Qatar", "Kuwait", "Bahrain", "Oman"},
		[]float64{0.30, 0.25, 0.20, 0.10, 0.06, 0.05, 0.04})
	ageBands = datagen.MustWeighted(
		[]string{"18-25", "26-35", "36-45", "46-55", "56+"},
		[]float64{0.20, 0.35, 0.25, 0.15, 0.05})
	loyaltyTiers = datagen.MustWeighted(
		[]string{"Bronze", "Silver", "Gold", "Prime"},
		[]float64{0.40, 0.30, 0.20, 0.10})

	categories = []string{
		"Electronics", "Fashion", "Home", "Books", "Sports", "Beauty", "Automotive",
		"Toys", "Health", "Garden", "Tools", "Grocery", "Baby", "Pet Supplies", "Office",
	}
	subcategories = []string{"A", "B", "C", "D"}

	channels = datagen.MustWeighted(
		[]string{"web", "mobile", "app"},
		[]float64{0.45, 0.35, 0.20})
	paymentMethods = datagen.MustWeighted(
		[]string{"credit_card", "debit_card", "wallet", "cod"},
		[]float64{0.50, 0.25, 0.15, 0.10})
	orderStatuses = datagen.MustWeighted(
		[]string{StatusCompleted, StatusCancelled, StatusReturned, StatusPending},
		[]float64{0.80, 0.10, 0.08, 0.02})
	itemsPerOrder = datagen.MustWeighted(
		[]int{1, 2, 3, 4, 5, 6},
		[]float64{0.50, 0.25, 0.15, 0.06, 0.03, 0.01})
	quantities = datagen.MustWeighted(
		[]int{1, 2, 3},
		[]float64{0.80, 0.15, 0.05})
	discounts = datagen.MustWeighted(
		[]float64{0, 5, 10, 15, 20, 25},
		[]float64{0.60, 0.15, 0.10, 0.08, 0.05, 0.02})

	actors = datagen.MustWeighted(
		[]string{"customer", "system", "warehouse"},
		[]float64{0.30, 0.60, 0.10})
	eventChannels = []string{"web", "mobile", "app", "api"}

	retail = profiles.MustGet("retail")
)

// Order statuses.
const (
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusReturned  = "returned"
	StatusPending   = "pending"
)

// Constants
const (
	// MaxItemsPerOrder bounds the lines of one order.
	MaxItemsPerOrder = 6

	// VATRate applies to every line.
	VATRate = 0.05

	// FreeShippingAbove is the subtotal from which shipping is free.
	FreeShippingAbove = 200.0
	shippingFee       = 15.0
)

// lifecycles lists the events an order goes through for each final status.
var lifecycles = map[string][]string{
	StatusCompleted: {"created", "paid", "shipped", "delivered"},
	StatusReturned:  {"created", "paid", "shipped", "delivered", "returned"},
	StatusCancelled: {"created", "paid", "cancelled"},
	StatusPending:   {"created"},
}

// Counts are the row counts of one bigdata run.
type Counts struct {
	Customers int
	Products  int
	Orders    int
}

// baseCounts are the counts at scale small.
var baseCounts = Counts{Customers: 1000, Products: 500, Orders: 2000}

// CountsFor returns the row counts at scale.
func CountsFor(scale datagen.Scale) Counts {
	return Counts{
		Customers: scale.Apply(baseCounts.Customers),
		Products:  scale.Apply(baseCounts.Products),
		Orders:    scale.Apply(baseCounts.Orders),
	}
}

// GenerateCustomers generates n customers who signed up within the last
// three years.
func GenerateCustomers(s *datagen.Session, n int) ([]Customer, error) {
	if err := datagen.RequireCount("customer", n); err != nil {
		return nil, err
	}

	customers := make([]Customer, n)
	for i := range customers {
		customers[i] = Customer{
			ID:             datagen.ID("CUST", i+1, 6),
			SignupDate:     s.DateBetween(-3*365, 0),
			Region:         regions.Pick(s.Faker),
			AgeBand:        ageBands.Pick(s.Faker),
			LoyaltyTier:    loyaltyTiers.Pick(s.Faker),
			MarketingOptIn: s.Chance(0.65),
			LifetimeValue:  datagen.Round(s.Lognormal(6.0, 1.2), 2),
			AddressHash:    s.Hex(16),
		}
	}
	return customers, nil
}

// GenerateProducts generates n catalog products with distinct SKUs.
func GenerateProducts(s *datagen.Session, n int) ([]Product, error) {
	if err := datagen.RequireCount("product", n); err != nil {
		return nil, err
	}

	skus, err := datagen.SampleUnique(n, datagen.DefaultKeyAttempts, func() (string, []string) {
		sku := fmt.Sprintf("SKU%07d", s.Int(1000000, 9999999))
		return sku, []string{sku}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to draw product SKUs: %w", err)
	}

	products := make([]Product, n)
	for i := range products {
		cat1 := datagen.Choose(s.Faker, categories)
		cat2 := cat1 + "_" + datagen.Choose(s.Faker, subcategories)
		price := max(0.99, datagen.Round(s.Lognormal(4.0, 1.5), 2))
		products[i] = Product{
			ID:           datagen.ID("PROD", i+1, 7),
			SKU:          skus[i],
			Category1:    cat1,
			Category2:    cat2,
			Category3:    fmt.Sprintf("%s_%d", cat2, s.Int(1, 9)),
			Brand:        s.Company(),
			Price:        price,
			Cost:         datagen.Round(price*s.Float64(0.4, 0.8), 2),
			StockQty:     s.Poisson(50),
			WeightG:      s.Int(10, 4999),
			DimensionsCM: fmt.Sprintf("%dx%dx%d", s.Int(1, 49), s.Int(1, 29), s.Int(1, 19)),
			SupplierID:   fmt.Sprintf("SUP_%d", s.Int(1, 999)),
			LaunchDate:   s.DateBetween(-2*365, 0),
		}
	}
	return products, nil
}

// GenerateOrders generates n orders placed by the given customers over
// the last year, each with one to MaxItemsPerOrder lines of distinct
// products. Order totals are summed from their lines.
func GenerateOrders(s *datagen.Session, n int, customerIDs []string, products []Product) ([]Order, []OrderItem, error) {
	if err := datagen.RequireCount("order", n); err != nil {
		return nil, nil, err
	}
	if err := datagen.RequireKeys("customer", customerIDs); err != nil {
		return nil, nil, err
	}
	if len(products) == 0 {
		return nil, nil, fmt.Errorf("%w: no product keys to reference", datagen.ErrInvalidArgument)
	}

	orders := make([]Order, n)
	items := make([]OrderItem, 0, n*2)
	for i := range orders {
		id := datagen.ID("ORDER", i+1, 8)
		ts := s.SeasonalTime(retail, -365, 0)

		var subtotal, tax float64
		lines := itemsPerOrder.Pick(s.Faker)
		for j, p := range datagen.Sample(s.Faker, products, lines) {
			item := OrderItem{
				ID:          fmt.Sprintf("%s_ITEM_%d", id, j+1),
				OrderID:     id,
				ProductID:   p.ID,
				Quantity:    quantities.Pick(s.Faker),
				UnitPrice:   p.Price,
				DiscountPct: discounts.Pick(s.Faker),
			}
			item.LineTotal = datagen.Round(float64(item.Quantity)*item.UnitPrice*(1-item.DiscountPct/100), 2)
			item.Tax = datagen.Round(item.LineTotal*VATRate, 2)
			subtotal += item.LineTotal
			tax += item.Tax
			items = append(items, item)
		}

		shipping := 0.0
		if subtotal < FreeShippingAbove {
			shipping = shippingFee
		}
		var promo *string
		if s.Chance(0.15) {
			code := strings.ToUpper(s.Word())
			promo = &code
		}

		orders[i] = Order{
			ID:                id,
			CustomerID:        datagen.Choose(s.Faker, customerIDs),
			OrderTS:           ts,
			Channel:           channels.Pick(s.Faker),
			PaymentMethod:     paymentMethods.Pick(s.Faker),
			Status:            orderStatuses.Pick(s.Faker),
			Total:             datagen.Round(subtotal+tax+shipping, 2),
			Tax:               datagen.Round(tax, 2),
			Shipping:          shipping,
			PromoCode:         promo,
			WarehouseID:       fmt.Sprintf("WH_%d", s.Int(1, 19)),
			EstimatedDelivery: olap.Day(ts).AddDate(0, 0, s.Int(1, 6)),
		}
	}
	return orders, items, nil
}

// GenerateEvents generates the lifecycle events of each order, spaced
// roughly six hours apart and ending in the order's final status.
func GenerateEvents(s *datagen.Session, orders []Order) ([]OrderEvent, error) {
	if len(orders) == 0 {
		return nil, fmt.Errorf("%w: no order keys to reference", datagen.ErrInvalidArgument)
	}

	var events []OrderEvent
	for _, o := range orders {
		for i, eventType := range lifecycles[o.Status] {
			events = append(events, OrderEvent{
				ID:          datagen.ID("EVT", len(events)+1, 8),
				OrderID:     o.ID,
				EventType:   eventType,
				Actor:       actors.Pick(s.Faker),
				EventTS:     o.OrderTS.Add(time.Duration(i*6+s.Int(0, 5)) * time.Hour),
				Channel:     datagen.Choose(s.Faker, eventChannels),
				RiskScore:   datagen.Round(s.Beta(2, 5), 4),
				GeoLocation: fmt.Sprintf("%.4f,%.4f", s.Float64(24, 26), s.Float64(54, 56)),
				SessionID:   s.UUID(),
				UserAgent:   s.UserAgent(),
			})
		}
	}
	return events, nil
}

// Generate builds the full entity set and its daily sales rollup.
func Generate(s *datagen.Session, c Counts) (*schema.Dataset, error) {
	customers, err := GenerateCustomers(s, c.Customers)
	if err != nil {
		return nil, fmt.Errorf("failed to generate customers: %w", err)
	}
	products, err := GenerateProducts(s, c.Products)
	if err != nil {
		return nil, fmt.Errorf("failed to generate products: %w", err)
	}

	customerIDs := make([]string, len(customers))
	for i, cu := range customers {
		customerIDs[i] = cu.ID
	}
	orders, items, err := GenerateOrders(s, c.Orders, customerIDs, products)
	if err != nil {
		return nil, fmt.Errorf("failed to generate orders: %w", err)
	}
	events, err := GenerateEvents(s, orders)
	if err != nil {
		return nil, fmt.Errorf("failed to generate order events: %w", err)
	}

	ds := &schema.Dataset{}
	ds.Add(Customers, schema.Rows(customers))
	ds.Add(Products, schema.Rows(products))
	ds.Add(Orders, schema.Rows(orders))
	ds.Add(OrderItems, schema.Rows(items))
	ds.Add(OrderEvents, schema.Rows(events))
	ds.Add(DailySalesAgg, schema.Rows(RollupDailySales(customers, products, orders, items)))
	return ds, nil
}
