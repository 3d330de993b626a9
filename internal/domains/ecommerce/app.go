package ecommerce

import (
	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/domains"
	"github.com/pgEdge/pgedge-datalab/internal/processing"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// Company is the simulated business.
const Company = "Amazon"

// Units returns the population units of the domain, one per module.
func Units() []domains.Unit {
	return []domains.Unit{
		domains.New(domains.Meta{
			Domain:      domains.Ecommerce,
			Company:     Company,
			Module:      domains.BigData,
			Description: "E-commerce marketplace: customers, catalog, orders, order lines and lifecycle events",
			Tables:      []*schema.Table{Customers, Products, Orders, OrderItems, OrderEvents, DailySalesAgg},
			Probe:       Orders,
		}, func(s *datagen.Session, scale datagen.Scale) (*schema.Dataset, error) {
			return Generate(s, CountsFor(scale))
		}),
		domains.New(domains.Meta{
			Domain:      domains.Ecommerce,
			Company:     Company,
			Module:      domains.OLAP,
			Description: "Sampled daily sales per category",
			Tables:      []*schema.Table{AggDailySales},
		}, generateOLAP),
		domains.New(domains.Meta{
			Domain:      domains.Ecommerce,
			Company:     Company,
			Module:      domains.Processing,
			Description: "Staged orders with their ETL job runs and manifests",
			Tables:      []*schema.Table{processing.Jobs, processing.Manifests, StagingOrders},
			Probe:       StagingOrders,
		}, generateProcessing),
		domains.New(domains.Meta{
			Domain:      domains.Ecommerce,
			Company:     Company,
			Module:      domains.Features,
			Description: "Order return features and trained models",
			Tables:      []*schema.Table{FeaturesOrder, processing.Artifacts},
		}, generateFeatures),
		domains.New(domains.Meta{
			Domain:      domains.Ecommerce,
			Company:     Company,
			Module:      domains.OLTP,
			Description: "Normalized order processing: customers, products, orders, lines and shipments",
			Tables:      []*schema.Table{OLTPCustomers, OLTPProducts, OLTPOrders, OLTPOrderItems, Shipments},
		}, func(s *datagen.Session, scale datagen.Scale) (*schema.Dataset, error) {
			return GenerateOLTP(s, OLTPCountsFor(scale))
		}),
	}
}

func init() {
	for _, u := range Units() {
		domains.Register(u)
	}
}
