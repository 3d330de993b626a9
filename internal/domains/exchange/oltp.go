package exchange

import (
	"math"
	"time"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/domains"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// Accounts holds brokerage accounts.
var Accounts = &schema.Table{
	Name:        "nyse_accounts",
	Module:      domains.OLTP,
	Domain:      domains.Exchange,
	Pattern:     schema.OLTP,
	Description: "Brokerage accounts with their cash balance",
	Columns: []schema.Column{
		{Name: "account_id", Type: schema.Text},
		{Name: "name", Type: schema.Text},
		{Name: "balance", Type: schema.Real},
	},
	PrimaryKey: []string{"account_id"},
}

// Orders holds orders placed by accounts.
var Orders = &schema.Table{
	Name:        "nyse_orders",
	Module:      domains.OLTP,
	Domain:      domains.Exchange,
	Pattern:     schema.OLTP,
	Description: "Limit orders with side, size, price and status",
	Columns: []schema.Column{
		{Name: "order_id", Type: schema.Text},
		{Name: "account_id", Type: schema.Text},
		{Name: "ticker", Type: schema.Text},
		{Name: "side", Type: schema.Text},
		{Name: "quantity", Type: schema.Integer},
		{Name: "price", Type: schema.Real},
		{Name: "status", Type: schema.Text},
	},
	PrimaryKey: []string{"order_id"},
	ForeignKeys: []schema.ForeignKey{
		{Column: "account_id", RefTable: "nyse_accounts", RefColumn: "account_id"},
	},
	Indexes: []schema.Index{
		{Name: "idx_nyse_orders_account", Columns: []string{"account_id"}},
	},
}

// Transactions holds executions of filled orders.
var Transactions = &schema.Table{
	Name:        "nyse_transactions",
	Module:      domains.OLTP,
	Domain:      domains.Exchange,
	Pattern:     schema.OLTP,
	Description: "Executions of filled and partially filled orders",
	Columns: []schema.Column{
		{Name: "transaction_id", Type: schema.Text},
		{Name: "order_id", Type: schema.Text},
		{Name: "transaction_time", Type: schema.Timestamp},
	},
	PrimaryKey: []string{"transaction_id"},
	ForeignKeys: []schema.ForeignKey{
		{Column: "order_id", RefTable: "nyse_orders", RefColumn: "order_id"},
	},
}

// Account is one nyse_accounts row.
type Account struct {
	ID      string
	Name    string
	Balance float64
}

// Values implements schema.Record.
func (a Account) Values() []any { return []any{a.ID, a.Name, a.Balance} }

// Order is one nyse_orders row.
type Order struct {
	ID        string
	AccountID string
	Ticker    string
	Side      string
	Quantity  int
	Price     float64
	Status    string
}

// Values implements schema.Record.
func (o Order) Values() []any {
	return []any{o.ID, o.AccountID, o.Ticker, o.Side, o.Quantity, o.Price, o.Status}
}

// Executed reports whether the order traded at least in part.
func (o Order) Executed() bool {
	return o.Status == OrderFilled || o.Status == OrderPartial
}

// Transaction is one nyse_transactions row.
type Transaction struct {
	ID      string
	OrderID string
	Time    time.Time
}

// Values implements schema.Record.
func (t Transaction) Values() []any { return []any{t.ID, t.OrderID, t.Time} }

// Order statuses.
const (
	OrderPending   = "pending"
	OrderFilled    = "filled"
	OrderCancelled = "cancelled"
	OrderPartial   = "partial"
)

// orderTickers is the number of catalog symbols orders are placed in.
const orderTickers = 8

var orderStatuses = datagen.MustWeighted(
	[]string{OrderPending, OrderFilled, OrderCancelled, OrderPartial},
	[]float64{0.20, 0.60, 0.10, 0.10})

// OLTPCounts are the row counts of one oltp run.
type OLTPCounts struct {
	Accounts     int
	Orders       int
	Transactions int
}

var baseOLTPCounts = OLTPCounts{Accounts: 50, Orders: 200, Transactions: 150}

// OLTPCountsFor returns the oltp row counts at scale.
func OLTPCountsFor(scale datagen.Scale) OLTPCounts {
	return OLTPCounts{
		Accounts:     scale.Apply(baseOLTPCounts.Accounts),
		Orders:       scale.Apply(baseOLTPCounts.Orders),
		Transactions: scale.Apply(baseOLTPCounts.Transactions),
	}
}

// GenerateOLTP builds the oltp dataset: accounts, their orders and the
// executions of those orders. Only filled or partially filled orders
// execute, once each, within the last week.
func GenerateOLTP(s *datagen.Session, c OLTPCounts) (*schema.Dataset, error) {
	for _, n := range []struct {
		entity string
		count  int
	}{
		{"account", c.Accounts}, {"order", c.Orders}, {"transaction", c.Transactions},
	} {
		if err := datagen.RequireCount(n.entity, n.count); err != nil {
			return nil, err
		}
	}

	accounts := make([]Account, c.Accounts)
	accountIDs := make([]string, c.Accounts)
	for i := range accounts {
		accounts[i] = Account{
			ID:      datagen.ID("NACC", i+1, 6),
			Name:    s.Name(),
			Balance: datagen.Round(s.Float64(1000, 100000), 2),
		}
		accountIDs[i] = accounts[i].ID
	}

	tickers := Tickers(orderTickers)
	orders := make([]Order, c.Orders)
	var executed []string
	for i := range orders {
		t := datagen.Choose(s.Faker, tickers)
		orders[i] = Order{
			ID:        datagen.ID("NORD", i+1, 6),
			AccountID: datagen.Choose(s.Faker, accountIDs),
			Ticker:    t.Symbol,
			Side:      sides.Pick(s.Faker),
			Quantity:  s.Int(10, 999),
			Price:     datagen.Round(math.Max(0.01, t.BasePrice*(1+s.Normal(0, 0.02))), 2),
			Status:    orderStatuses.Pick(s.Faker),
		}
		if orders[i].Executed() {
			executed = append(executed, orders[i].ID)
		}
	}

	fills := datagen.Sample(s.Faker, executed, c.Transactions)
	txns := make([]Transaction, len(fills))
	for i, orderID := range fills {
		txns[i] = Transaction{
			ID:      datagen.ID("NTXN", i+1, 6),
			OrderID: orderID,
			Time:    s.DatetimeBetween(-7*24*time.Hour, 0),
		}
	}

	ds := &schema.Dataset{}
	ds.Add(Accounts, schema.Rows(accounts))
	ds.Add(Orders, schema.Rows(orders))
	ds.Add(Transactions, schema.Rows(txns))
	return ds, nil
}
