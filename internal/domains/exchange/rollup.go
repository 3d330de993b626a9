package exchange

import (
	"math"
	"time"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/olap"
)

type dayKey struct {
	day    time.Time
	ticker string
}

type dayTotals struct {
	first, last       TradeTick
	high, low         float64
	shares, buyShares int64
	notional          float64
	trades            int
	latency           olap.Mean
	venues            olap.Set
}

// RollupTickerDays aggregates trades by day and ticker. Open and close
// are the prices of the day's first and last trade; VWAP and the buy
// ratio weight by trade size.
func RollupTickerDays(ticks []TradeTick) []TickerDay {
	g := olap.NewGroup[dayKey, dayTotals]()
	for _, tk := range ticks {
		t := g.At(dayKey{olap.Day(tk.Timestamp), tk.Ticker})
		if t.trades == 0 {
			t.first, t.last = tk, tk
			t.high, t.low = tk.Price, tk.Price
		}
		if tk.Timestamp.Before(t.first.Timestamp) {
			t.first = tk
		}
		if !tk.Timestamp.Before(t.last.Timestamp) {
			t.last = tk
		}
		t.high = math.Max(t.high, tk.Price)
		t.low = math.Min(t.low, tk.Price)
		t.trades++
		t.shares += int64(tk.Size)
		t.notional += tk.Price * float64(tk.Size)
		if tk.Side == SideBuy {
			t.buyShares += int64(tk.Size)
		}
		t.latency.Add(float64(tk.LatencyMicrosec))
		t.venues.Add(tk.Venue)
	}

	keys := g.Sorted(func(a, b dayKey) int {
		return olap.ByTime(a.day, a.ticker, b.day, b.ticker)
	})

	out := make([]TickerDay, len(keys))
	for i, k := range keys {
		t := g.At(k)
		out[i] = TickerDay{
			Date:           k.day,
			Ticker:         k.ticker,
			Open:           t.first.Price,
			High:           t.high,
			Low:            t.low,
			Close:          t.last.Price,
			VWAP:           datagen.Round(olap.Ratio(t.notional, float64(t.shares)), 4),
			VolumeShares:   t.shares,
			TradeCount:     t.trades,
			BuyVolumeRatio: datagen.Round(olap.Ratio(float64(t.buyShares), float64(t.shares)), 4),
			AvgLatency:     datagen.Round(t.latency.Value(), 2),
			VenueCount:     t.venues.Len(),
		}
	}
	return out
}
