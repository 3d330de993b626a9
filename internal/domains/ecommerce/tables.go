// Package ecommerce generates the datasets of Amazon, the simulated
// e-commerce marketplace: customers place orders of catalog products,
// and every order moves through a stream of lifecycle events.
package ecommerce

import (
	"github.com/pgEdge/pgedge-datalab/internal/domains"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// Customers holds registered shoppers.
var Customers = &schema.Table{
	Name:        "amazon_customers",
	Module:      domains.BigData,
	Domain:      domains.Ecommerce,
	Pattern:     schema.OLTP,
	Description: "Registered customers with region, loyalty tier and lifetime value",
	Columns: []schema.Column{
		{Name: "customer_id", Type: schema.Text},
		{Name: "signup_date", Type: schema.Date},
		{Name: "region", Type: schema.Text},
		{Name: "age_band", Type: schema.Text},
		{Name: "loyalty_tier", Type: schema.Text},
		{Name: "marketing_opt_in", Type: schema.Bool},
		{Name: "lifetime_value_aed", Type: schema.Real},
		{Name: "address_hash", Type: schema.Text},
	},
	PrimaryKey: []string{"customer_id"},
	Indexes: []schema.Index{
		{Name: "idx_amazon_customers_region", Columns: []string{"region"}},
	},
}

// Products is the shared product catalog.
var Products = &schema.Table{
	Name:        "amazon_products",
	Module:      domains.BigData,
	Domain:      domains.Ecommerce,
	Pattern:     schema.OLTP,
	Description: "Product catalog with three-level category tree, pricing and stock",
	Columns: []schema.Column{
		{Name: "product_id", Type: schema.Text},
		{Name: "sku", Type: schema.Text, Unique: true},
		{Name: "category_lvl1", Type: schema.Text},
		{Name: "category_lvl2", Type: schema.Text},
		{Name: "category_lvl3", Type: schema.Text},
		{Name: "brand", Type: schema.Text},
		{Name: "price_aed", Type: schema.Real},
		{Name: "cost_aed", Type: schema.Real},
		{Name: "stock_qty", Type: schema.Integer},
		{Name: "weight_g", Type: schema.Integer},
		{Name: "dimensions_cm", Type: schema.Text},
		{Name: "supplier_id", Type: schema.Text},
		{Name: "launch_date", Type: schema.Date},
	},
	PrimaryKey: []string{"product_id"},
}

// Orders holds order headers.
var Orders = &schema.Table{
	Name:        "amazon_orders",
	Module:      domains.BigData,
	Domain:      domains.Ecommerce,
	Pattern:     schema.OLTP,
	Description: "Order headers with channel, payment, status and totals",
	Columns: []schema.Column{
		{Name: "order_id", Type: schema.Text},
		{Name: "customer_id", Type: schema.Text},
		{Name: "order_ts", Type: schema.Timestamp},
		{Name: "channel", Type: schema.Text},
		{Name: "payment_method", Type: schema.Text},
		{Name: "order_status", Type: schema.Text},
		{Name: "total_aed", Type: schema.Real},
		{Name: "tax_aed", Type: schema.Real},
		{Name: "shipping_aed", Type: schema.Real},
		{Name: "promo_code", Type: schema.Text, Nullable: true},
		{Name: "warehouse_id", Type: schema.Text},
		{Name: "estimated_delivery", Type: schema.Date},
	},
	PrimaryKey: []string{"order_id"},
	ForeignKeys: []schema.ForeignKey{
		{Column: "customer_id", RefTable: "amazon_customers", RefColumn: "customer_id"},
	},
	Indexes: []schema.Index{
		{Name: "idx_amazon_orders_customer", Columns: []string{"customer_id"}},
		{Name: "idx_amazon_orders_ts", Columns: []string{"order_ts"}},
	},
}

// OrderItems holds order lines.
var OrderItems = &schema.Table{
	Name:        "amazon_order_items",
	Module:      domains.BigData,
	Domain:      domains.Ecommerce,
	Pattern:     schema.OLTP,
	Description: "Order lines: product, quantity, unit price, discount and tax",
	Columns: []schema.Column{
		{Name: "order_item_id", Type: schema.Text},
		{Name: "order_id", Type: schema.Text},
		{Name: "product_id", Type: schema.Text},
		{Name: "quantity", Type: schema.Integer},
		{Name: "unit_price_aed", Type: schema.Real},
		{Name: "discount_pct", Type: schema.Real},
		{Name: "tax_aed", Type: schema.Real},
		{Name: "line_total_aed", Type: schema.Real},
	},
	PrimaryKey: []string{"order_item_id"},
	ForeignKeys: []schema.ForeignKey{
		{Column: "order_id", RefTable: "amazon_orders", RefColumn: "order_id"},
		{Column: "product_id", RefTable: "amazon_products", RefColumn: "product_id"},
	},
	Indexes: []schema.Index{
		{Name: "idx_amazon_items_order", Columns: []string{"order_id"}},
	},
}

// OrderEvents is the order lifecycle event stream.
var OrderEvents = &schema.Table{
	Name:        "amazon_order_events",
	Module:      domains.BigData,
	Domain:      domains.Ecommerce,
	Pattern:     schema.Event,
	Description: "Order lifecycle events with actor, channel and risk score",
	Columns: []schema.Column{
		{Name: "event_id", Type: schema.Text},
		{Name: "order_id", Type: schema.Text},
		{Name: "event_type", Type: schema.Text},
		{Name: "actor", Type: schema.Text},
		{Name: "event_ts", Type: schema.Timestamp},
		{Name: "channel", Type: schema.Text},
		{Name: "risk_score", Type: schema.Real},
		{Name: "geo_location", Type: schema.Text},
		{Name: "session_id", Type: schema.Text},
		{Name: "user_agent", Type: schema.Text, Long: true},
	},
	PrimaryKey: []string{"event_id"},
	ForeignKeys: []schema.ForeignKey{
		{Column: "order_id", RefTable: "amazon_orders", RefColumn: "order_id"},
	},
	Indexes: []schema.Index{
		{Name: "idx_amazon_events_order", Columns: []string{"order_id"}},
	},
}

// DailySalesAgg is aggregated from the order lines of the same run.
var DailySalesAgg = &schema.Table{
	Name:        "amazon_daily_sales_agg",
	Module:      domains.BigData,
	Domain:      domains.Ecommerce,
	Pattern:     schema.OLAP,
	Description: "Daily sales per category and region, aggregated from the order tables",
	Columns: []schema.Column{
		{Name: "date_key", Type: schema.Date},
		{Name: "category_key", Type: schema.Text},
		{Name: "region_key", Type: schema.Text},
		{Name: "orders_count", Type: schema.Integer},
		{Name: "units_sold", Type: schema.Integer},
		{Name: "gross_revenue_aed", Type: schema.Real},
		{Name: "discounts_aed", Type: schema.Real},
		{Name: "returns_aed", Type: schema.Real},
		{Name: "avg_order_value", Type: schema.Real},
		{Name: "return_rate", Type: schema.Real},
		{Name: "distinct_customers", Type: schema.Integer},
	},
	PrimaryKey: []string{"date_key", "category_key", "region_key"},
}

// AggDailySales holds independently sampled daily sales rollups.
var AggDailySales = &schema.Table{
	Name:        "agg_amazon_daily_sales",
	Module:      domains.OLAP,
	Domain:      domains.Ecommerce,
	Pattern:     schema.OLAP,
	Description: "Sampled daily sales per category (internally consistent, not derived from detail rows)",
	Columns: []schema.Column{
		{Name: "date", Type: schema.Date},
		{Name: "category", Type: schema.Text},
		{Name: "orders", Type: schema.Integer},
		{Name: "units_sold", Type: schema.Integer},
		{Name: "avg_order_value_aed", Type: schema.Real},
		{Name: "gross_revenue_aed", Type: schema.Real},
		{Name: "returns", Type: schema.Integer},
		{Name: "return_rate", Type: schema.Real},
	},
	PrimaryKey: []string{"date", "category"},
}

// StagingOrders holds cleansed order records of the ETL staging layer.
var StagingOrders = &schema.Table{
	Name:        "staging_amazon_orders",
	Module:      domains.Processing,
	Domain:      domains.Ecommerce,
	Pattern:     schema.Staging,
	Description: "Cleansed orders awaiting load, tagged with their ETL batch",
	Columns: []schema.Column{
		{Name: "order_id", Type: schema.Text},
		{Name: "customer_id", Type: schema.Text},
		{Name: "order_ts", Type: schema.Timestamp},
		{Name: "items_count", Type: schema.Integer},
		{Name: "subtotal_aed", Type: schema.Real},
		{Name: "shipping_aed", Type: schema.Real},
		{Name: "tax_aed", Type: schema.Real},
		{Name: "total_aed", Type: schema.Real},
		{Name: "fulfillment_center", Type: schema.Text},
		{Name: "order_channel", Type: schema.Text},
		{Name: "etl_batch_id", Type: schema.Text},
		{Name: "processed_ts", Type: schema.Timestamp},
	},
	PrimaryKey: []string{"order_id"},
	Indexes: []schema.Index{
		{Name: "idx_amazon_orders_processed_ts", Columns: []string{"processed_ts"}},
		{Name: "idx_amazon_orders_customer", Columns: []string{"customer_id"}},
	},
}

// FeaturesOrder holds per-order model features.
var FeaturesOrder = &schema.Table{
	Name:        "features_amazon_order",
	Module:      domains.Features,
	Domain:      domains.Ecommerce,
	Pattern:     schema.Feature,
	Description: "Order-level features and return label for model training",
	Columns: []schema.Column{
		{Name: "order_id", Type: schema.Text},
		{Name: "customer_ltv_aed", Type: schema.Real},
		{Name: "items_count", Type: schema.Integer},
		{Name: "discount_pct", Type: schema.Real},
		{Name: "label_returned", Type: schema.Integer},
	},
	PrimaryKey: []string{"order_id"},
}
