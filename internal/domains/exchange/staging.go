package exchange

import (
	"fmt"
	"time"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/processing"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// Processing base counts at scale small.
const (
	stagingTrades  = 2000
	stagingTickers = 10
	etlJobs        = 50
	etlManifests   = 25
)

// AuctionRate is the share of staged trades printed in an auction.
const AuctionRate = 0.10

// StageTrades generates n cleansed trades of the given tickers, each
// executed in the hour of one of the jobs' ETL batches and processed up
// to 100 ms later.
func StageTrades(s *datagen.Session, n int, tickers []Ticker, jobs []processing.Job) ([]StagedTrade, error) {
	if err := datagen.RequireCount("staged trade", n); err != nil {
		return nil, err
	}
	if err := datagen.RequireKeys("ticker", Symbols(tickers)); err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("%w: no job batches to reference", datagen.ErrInvalidArgument)
	}

	out := make([]StagedTrade, n)
	for i := range out {
		job := datagen.Choose(s.Faker, jobs)
		tk := datagen.Choose(s.Faker, tickers)
		traded := job.StartTS.Truncate(time.Hour).Add(time.Duration(s.Int(0, 3599999)) * time.Millisecond)
		auction := 0
		if s.Chance(AuctionRate) {
			auction = 1
		}
		out[i] = StagedTrade{
			TickID:      fmt.Sprintf("nyse_tick_%08d", i),
			Ticker:      tk.Symbol,
			TimestampMS: traded.UnixMilli(),
			Price:       datagen.Round(drift(s, tk.BasePrice, 0.02), 2),
			Size:        max(1, int(s.Lognormal(4, 1.5))),
			Venue:       datagen.Choose(s.Faker, venues),
			IsAuction:   auction,
			TradeType:   sides.Pick(s.Faker),
			BatchID:     job.BatchID,
			ProcessedTS: traded.Add(time.Duration(s.Int(1, 99)) * time.Millisecond),
		}
	}
	return out, nil
}

func generateProcessing(s *datagen.Session, scale datagen.Scale) (*schema.Dataset, error) {
	ds := &schema.Dataset{}
	jobs, err := processing.AddHistory(ds, s, processing.NYSE, scale.Apply(etlJobs), scale.Apply(etlManifests))
	if err != nil {
		return nil, err
	}
	trades, err := StageTrades(s, scale.Apply(stagingTrades), Tickers(stagingTickers), jobs)
	if err != nil {
		return nil, fmt.Errorf("failed to stage trades: %w", err)
	}
	ds.Add(StagingTrades, schema.Rows(trades))
	return ds, nil
}
