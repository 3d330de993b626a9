package ecommerce

import (
	"cmp"
	"time"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/olap"
)

type salesKey struct {
	date     time.Time
	category string
	region   string
}

type salesTotals struct {
	orders    olap.Set
	customers olap.Set
	units     int
	gross     float64
	discounts float64
	returns   float64
}

// RollupDailySales aggregates order lines by order day, top-level product
// category and customer region. An order with lines in two categories
// counts once in each. Returned orders contribute their line totals to
// returns as well as to gross revenue.
func RollupDailySales(customers []Customer, products []Product, orders []Order, items []OrderItem) []DailySales {
	region := make(map[string]string, len(customers))
	for _, c := range customers {
		region[c.ID] = c.Region
	}
	category := make(map[string]string, len(products))
	for _, p := range products {
		category[p.ID] = p.Category1
	}
	byID := make(map[string]*Order, len(orders))
	for i := range orders {
		byID[orders[i].ID] = &orders[i]
	}

	g := olap.NewGroup[salesKey, salesTotals]()
	for _, it := range items {
		o := byID[it.OrderID]
		if o == nil {
			continue
		}
		t := g.At(salesKey{olap.Day(o.OrderTS), category[it.ProductID], region[o.CustomerID]})
		t.orders.Add(o.ID)
		t.customers.Add(o.CustomerID)
		t.units += it.Quantity
		t.gross += it.LineTotal
		t.discounts += it.Discount()
		if o.Status == StatusReturned {
			t.returns += it.LineTotal
		}
	}

	keys := g.Sorted(func(a, b salesKey) int {
		if c := a.date.Compare(b.date); c != 0 {
			return c
		}
		if c := cmp.Compare(a.category, b.category); c != 0 {
			return c
		}
		return cmp.Compare(a.region, b.region)
	})

	out := make([]DailySales, len(keys))
	for i, k := range keys {
		t := g.At(k)
		out[i] = DailySales{
			Date:              k.date,
			Category:          k.category,
			Region:            k.region,
			Orders:            t.orders.Len(),
			UnitsSold:         t.units,
			GrossRevenue:      datagen.Round(t.gross, 2),
			Discounts:         datagen.Round(t.discounts, 2),
			Returns:           datagen.Round(t.returns, 2),
			AvgOrderValue:     datagen.Round(olap.Ratio(t.gross, float64(t.orders.Len())), 2),
			ReturnRate:        datagen.Round(olap.Ratio(t.returns, t.gross), 4),
			DistinctCustomers: t.customers.Len(),
		}
	}
	return out
}
