package ecommerce

import (
	"fmt"
	"time"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/domains"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// The oltp module holds a small normalized order-processing schema. Its
// table names overlap the bigdata ones; each module has its own store.

// OLTPCustomers holds account holders.
var OLTPCustomers = &schema.Table{
	Name:        "amazon_customers",
	Module:      domains.OLTP,
	Domain:      domains.Ecommerce,
	Pattern:     schema.OLTP,
	Description: "Customer accounts",
	Columns: []schema.Column{
		{Name: "customer_id", Type: schema.Text},
		{Name: "name", Type: schema.Text},
		{Name: "join_date", Type: schema.Date},
	},
	PrimaryKey: []string{"customer_id"},
}

// OLTPProducts is the sellable catalog.
var OLTPProducts = &schema.Table{
	Name:        "amazon_products",
	Module:      domains.OLTP,
	Domain:      domains.Ecommerce,
	Pattern:     schema.OLTP,
	Description: "Catalog entries with their list price",
	Columns: []schema.Column{
		{Name: "product_id", Type: schema.Text},
		{Name: "name", Type: schema.Text},
		{Name: "price", Type: schema.Real},
	},
	PrimaryKey: []string{"product_id"},
}

// OLTPOrders holds order headers.
var OLTPOrders = &schema.Table{
	Name:        "amazon_orders",
	Module:      domains.OLTP,
	Domain:      domains.Ecommerce,
	Pattern:     schema.OLTP,
	Description: "Orders placed by customers",
	Columns: []schema.Column{
		{Name: "order_id", Type: schema.Text},
		{Name: "customer_id", Type: schema.Text},
		{Name: "order_date", Type: schema.Timestamp},
		{Name: "status", Type: schema.Text},
	},
	PrimaryKey: []string{"order_id"},
	ForeignKeys: []schema.ForeignKey{
		{Column: "customer_id", RefTable: "amazon_customers", RefColumn: "customer_id"},
	},
	Indexes: []schema.Index{
		{Name: "idx_oltp_amazon_orders_customer", Columns: []string{"customer_id"}},
	},
}

// OLTPOrderItems holds order lines.
var OLTPOrderItems = &schema.Table{
	Name:        "amazon_order_items",
	Module:      domains.OLTP,
	Domain:      domains.Ecommerce,
	Pattern:     schema.OLTP,
	Description: "Order lines",
	Columns: []schema.Column{
		{Name: "item_id", Type: schema.Text},
		{Name: "order_id", Type: schema.Text},
		{Name: "product_id", Type: schema.Text},
		{Name: "quantity", Type: schema.Integer},
	},
	PrimaryKey: []string{"item_id"},
	ForeignKeys: []schema.ForeignKey{
		{Column: "order_id", RefTable: "amazon_orders", RefColumn: "order_id"},
		{Column: "product_id", RefTable: "amazon_products", RefColumn: "product_id"},
	},
}

// Shipments tracks parcels of shipped orders.
var Shipments = &schema.Table{
	Name:        "amazon_shipments",
	Module:      domains.OLTP,
	Domain:      domains.Ecommerce,
	Pattern:     schema.OLTP,
	Description: "Shipments with carrier tracking numbers",
	Columns: []schema.Column{
		{Name: "shipment_id", Type: schema.Text},
		{Name: "order_id", Type: schema.Text},
		{Name: "status", Type: schema.Text},
		{Name: "tracking_number", Type: schema.Text, Unique: true},
	},
	PrimaryKey: []string{"shipment_id"},
	ForeignKeys: []schema.ForeignKey{
		{Column: "order_id", RefTable: "amazon_orders", RefColumn: "order_id"},
	},
}

// OLTPCustomer is one oltp amazon_customers row.
type OLTPCustomer struct {
	ID       string
	Name     string
	JoinDate time.Time
}

// Values implements schema.Record.
func (c OLTPCustomer) Values() []any { return []any{c.ID, c.Name, c.JoinDate} }

// OLTPProduct is one oltp amazon_products row.
type OLTPProduct struct {
	ID    string
	Name  string
	Price float64
}

// Values implements schema.Record.
func (p OLTPProduct) Values() []any { return []any{p.ID, p.Name, p.Price} }

// OLTPOrder is one oltp amazon_orders row.
type OLTPOrder struct {
	ID         string
	CustomerID string
	OrderDate  time.Time
	Status     string
}

// Values implements schema.Record.
func (o OLTPOrder) Values() []any { return []any{o.ID, o.CustomerID, o.OrderDate, o.Status} }

// OLTPOrderItem is one oltp amazon_order_items row.
type OLTPOrderItem struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
}

// Values implements schema.Record.
func (i OLTPOrderItem) Values() []any { return []any{i.ID, i.OrderID, i.ProductID, i.Quantity} }

// Shipment is one amazon_shipments row.
type Shipment struct {
	ID             string
	OrderID        string
	Status         string
	TrackingNumber string
}

// Values implements schema.Record.
func (s Shipment) Values() []any { return []any{s.ID, s.OrderID, s.Status, s.TrackingNumber} }

var (
	oltpCategories    = []string{"Electronics", "Books", "Clothing", "Home", "Sports"}
	oltpOrderStatuses = datagen.MustWeighted(
		[]string{"Pending", "Processing", "Shipped", "Delivered", "Cancelled"},
		[]float64{0.10, 0.20, 0.30, 0.35, 0.05})
	shipmentStatuses = datagen.MustWeighted(
		[]string{"Preparing", "In Transit", "Delivered", "Exception"},
		[]float64{0.20, 0.40, 0.35, 0.05})
)

// OLTPCounts are the row counts of one oltp run.
type OLTPCounts struct {
	Customers int
	Products  int
	Orders    int
	Items     int
	Shipments int
}

var baseOLTPCounts = OLTPCounts{Customers: 100, Products: 200, Orders: 150, Items: 300, Shipments: 120}

// OLTPCountsFor returns the oltp row counts at scale.
func OLTPCountsFor(scale datagen.Scale) OLTPCounts {
	return OLTPCounts{
		Customers: scale.Apply(baseOLTPCounts.Customers),
		Products:  scale.Apply(baseOLTPCounts.Products),
		Orders:    scale.Apply(baseOLTPCounts.Orders),
		Items:     scale.Apply(baseOLTPCounts.Items),
		Shipments: scale.Apply(baseOLTPCounts.Shipments),
	}
}

// GenerateOLTP builds the oltp dataset. Orders reference generated
// customers, lines reference orders and products, and every order is
// shipped at most once.
func GenerateOLTP(s *datagen.Session, c OLTPCounts) (*schema.Dataset, error) {
	for _, n := range []struct {
		entity string
		count  int
	}{
		{"customer", c.Customers}, {"product", c.Products}, {"order", c.Orders},
		{"order item", c.Items}, {"shipment", c.Shipments},
	} {
		if err := datagen.RequireCount(n.entity, n.count); err != nil {
			return nil, err
		}
	}

	customers := make([]OLTPCustomer, c.Customers)
	customerIDs := make([]string, c.Customers)
	for i := range customers {
		customers[i] = OLTPCustomer{
			ID:       datagen.ID("ACUST", i+1, 6),
			Name:     s.Name(),
			JoinDate: s.DateBetween(-1095, -30),
		}
		customerIDs[i] = customers[i].ID
	}

	products := make([]OLTPProduct, c.Products)
	productIDs := make([]string, c.Products)
	for i := range products {
		products[i] = OLTPProduct{
			ID:    datagen.ID("APROD", i+1, 6),
			Name:  fmt.Sprintf("%s %s", datagen.Choose(s.Faker, oltpCategories), s.Word()),
			Price: datagen.Round(s.Float64(10, 500), 2),
		}
		productIDs[i] = products[i].ID
	}

	orders := make([]OLTPOrder, c.Orders)
	orderIDs := make([]string, c.Orders)
	for i := range orders {
		orders[i] = OLTPOrder{
			ID:         datagen.ID("AORD", i+1, 6),
			CustomerID: datagen.Choose(s.Faker, customerIDs),
			OrderDate:  s.DatetimeBetween(-90*24*time.Hour, 0),
			Status:     oltpOrderStatuses.Pick(s.Faker),
		}
		orderIDs[i] = orders[i].ID
	}

	items := make([]OLTPOrderItem, c.Items)
	for i := range items {
		items[i] = OLTPOrderItem{
			ID:        datagen.ID("AITEM", i+1, 6),
			OrderID:   datagen.Choose(s.Faker, orderIDs),
			ProductID: datagen.Choose(s.Faker, productIDs),
			Quantity:  s.Int(1, 4),
		}
	}

	shipped := datagen.Sample(s.Faker, orderIDs, c.Shipments)
	shipments := make([]Shipment, len(shipped))
	for i, orderID := range shipped {
		shipments[i] = Shipment{
			ID:             datagen.ID("ASHIP", i+1, 6),
			OrderID:        orderID,
			Status:         shipmentStatuses.Pick(s.Faker),
			TrackingNumber: fmt.Sprintf("AMZ%010d", i+1),
		}
	}

	ds := &schema.Dataset{}
	ds.Add(OLTPCustomers, schema.Rows(customers))
	ds.Add(OLTPProducts, schema.Rows(products))
	ds.Add(OLTPOrders, schema.Rows(orders))
	ds.Add(OLTPOrderItems, schema.Rows(items))
	ds.Add(Shipments, schema.Rows(shipments))
	return ds, nil
}
