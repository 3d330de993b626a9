package exchange

import (
	"fmt"
	"slices"
	"time"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/olap"
	"github.com/pgEdge/pgedge-datalab/internal/processing"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

const (
	signalRows    = 800
	signalTickers = 5
	modelCount    = 10
)

// MinuteSignalRows generates n direction-model rows over the given tickers
// and trading minutes, each (minute, ticker) pair at most once. Rows are
// ordered by minute then ticker.
func MinuteSignalRows(s *datagen.Session, n int, tickers []Ticker, minutes []time.Time) ([]MinuteSignal, error) {
	if err := datagen.RequireCount("signal row", n); err != nil {
		return nil, err
	}
	if err := datagen.RequireKeys("ticker", Symbols(tickers)); err != nil {
		return nil, err
	}
	if pairs := len(tickers) * len(minutes); n > pairs {
		return nil, fmt.Errorf("%w: %d rows requested from %d ticker-minute pairs",
			datagen.ErrInvalidArgument, n, pairs)
	}

	out, err := datagen.SampleUnique(n, datagen.DefaultKeyAttempts, func() (MinuteSignal, []string) {
		m := MinuteSignal{
			Minute: datagen.Choose(s.Faker, minutes),
			Ticker: datagen.Choose(s.Faker, tickers).Symbol,
		}
		return m, []string{m.Minute.Format(time.DateTime), m.Ticker}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sample ticker minutes: %w", err)
	}
	slices.SortFunc(out, func(a, b MinuteSignal) int {
		return olap.ByTime(a.Minute, a.Ticker, b.Minute, b.Ticker)
	})

	for i := range out {
		out[i].PriceMomentum = datagen.Round(s.Float64(-0.05, 0.05), 4)
		out[i].Volatility5min = datagen.Round(s.Float64(0.001, 0.02), 5)
		if s.Bool() {
			out[i].LabelPriceUp = 1
		}
	}
	return out, nil
}

func generateFeatures(s *datagen.Session, scale datagen.Scale) (*schema.Dataset, error) {
	n := scale.Apply(signalRows)
	tickers := Tickers(signalTickers)
	minutes := TradingMinutes(s.Now, max(FeatureWindow, 2*n/len(tickers)+1))
	rows, err := MinuteSignalRows(s, n, tickers, minutes)
	if err != nil {
		return nil, err
	}
	ds := &schema.Dataset{}
	ds.Add(FeaturesNYSEMinute, schema.Rows(rows))
	if err := processing.AddArtifacts(ds, s, processing.NYSE, scale.ApplyCapped(modelCount, 100)); err != nil {
		return nil, err
	}
	return ds, nil
}
