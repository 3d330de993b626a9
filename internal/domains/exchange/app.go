package exchange

import (
	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/domains"
	"github.com/pgEdge/pgedge-datalab/internal/processing"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// Company is the simulated business.
const Company = "NYSE"

// Units returns the population units of the domain, one per module.
func Units() []domains.Unit {
	return []domains.Unit{
		domains.New(domains.Meta{
			Domain:      domains.Exchange,
			Company:     Company,
			Module:      domains.BigData,
			Description: "Equities market data: trades, order book snapshots and minute features",
			Tables:      []*schema.Table{TradeTicks, OrderBookSnapshots, FeaturesMinute, TickerDailyAgg},
			Probe:       TradeTicks,
		}, func(s *datagen.Session, scale datagen.Scale) (*schema.Dataset, error) {
			return Generate(s, CountsFor(scale))
		}),
		domains.New(domains.Meta{
			Domain:      domains.Exchange,
			Company:     Company,
			Module:      domains.OLAP,
			Description: "Sampled minute OHLC bars of recent sessions",
			Tables:      []*schema.Table{AggMinuteOHLC},
		}, generateOLAP),
		domains.New(domains.Meta{
			Domain:      domains.Exchange,
			Company:     Company,
			Module:      domains.Processing,
			Description: "Staged trades with their ETL job runs and manifests",
			Tables:      []*schema.Table{processing.Jobs, processing.Manifests, StagingTrades},
			Probe:       StagingTrades,
		}, generateProcessing),
		domains.New(domains.Meta{
			Domain:      domains.Exchange,
			Company:     Company,
			Module:      domains.Features,
			Description: "Minute direction features and trained models",
			Tables:      []*schema.Table{FeaturesNYSEMinute, processing.Artifacts},
		}, generateFeatures),
		domains.New(domains.Meta{
			Domain:      domains.Exchange,
			Company:     Company,
			Module:      domains.OLTP,
			Description: "Normalized brokerage: accounts, orders and executions",
			Tables:      []*schema.Table{Accounts, Orders, Transactions},
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
