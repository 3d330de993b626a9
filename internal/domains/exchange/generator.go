package exchange

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/datagen/profiles"
	"github.com/pgEdge/pgedge-datalab/internal/olap"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// Reference data
var (
	venues     = []string{"NYSE", "ARCA", "BATS", "EDGX", "IEX", "NASDAQ"}
	tradeSizes = datagen.MustWeighted(
		[]int{100, 200, 500, 1000, 2000, 5000},
		[]float64{0.40, 0.25, 0.15, 0.10, 0.06, 0.04})
	sides = datagen.MustWeighted(
		[]string{SideBuy, SideSell},
		[]float64{0.52, 0.48})
	liquidity = datagen.MustWeighted(
		[]string{"add", "remove"},
		[]float64{0.45, 0.55})
	conditions = datagen.MustWeighted(
		[]string{"normal", "opening", "closing", "odd_lot"},
		[]float64{0.85, 0.05, 0.05, 0.05})

	market = profiles.MustGet("market")
)

// Trade sides.
const (
	SideBuy  = "buy"
	SideSell = "sell"
)

// DepthLevels is the number of price levels per side in a snapshot.
const DepthLevels = 5

// FeatureWindow is the minimum number of trading minutes minute features
// are drawn from.
const FeatureWindow = 1000

// Counts are the row counts of one bigdata run.
type Counts struct {
	Tickers   int
	Ticks     int
	Snapshots int
	Features  int
}

var baseCounts = Counts{Tickers: 10, Ticks: 5000, Snapshots: 2000, Features: 1500}

// CountsFor returns the row counts at scale. The ticker count is capped
// at the catalog size.
func CountsFor(scale datagen.Scale) Counts {
	return Counts{
		Tickers:   scale.ApplyCapped(baseCounts.Tickers, MaxTickers),
		Ticks:     scale.Apply(baseCounts.Ticks),
		Snapshots: scale.Apply(baseCounts.Snapshots),
		Features:  scale.Apply(baseCounts.Features),
	}
}

// tradingTime draws an instant within the sessions of the last 30 days,
// with hours following the market curve.
func tradingTime(s *datagen.Session) time.Time {
	t := s.SeasonalTime(market, -30, -1)
	if t.Hour() == OpenHour && t.Minute() < OpenMinute {
		t = t.Add(OpenMinute * time.Minute)
	}
	return t.Add(time.Duration(s.Int(0, 999)) * time.Millisecond)
}

// drift returns a price scattered around base by a relative sigma,
// floored at one cent.
func drift(s *datagen.Session, base, sigma float64) float64 {
	return math.Max(0.01, base*(1+s.Normal(0, sigma)))
}

// GenerateTicks generates n trades of the given tickers during market
// hours of the last 30 days. Prices scatter 2% around the ticker's base.
func GenerateTicks(s *datagen.Session, n int, tickers []Ticker) ([]TradeTick, error) {
	if err := datagen.RequireCount("trade tick", n); err != nil {
		return nil, err
	}
	if len(tickers) == 0 {
		return nil, fmt.Errorf("%w: no tickers to trade", datagen.ErrInvalidArgument)
	}

	ticks := make([]TradeTick, n)
	for i := range ticks {
		tk := datagen.Choose(s.Faker, tickers)
		ticks[i] = TradeTick{
			ID:              datagen.ID("TICK", i+1, 8),
			Ticker:          tk.Symbol,
			Timestamp:       tradingTime(s),
			Price:           datagen.Round(drift(s, tk.BasePrice, 0.02), 4),
			Size:            tradeSizes.Pick(s.Faker),
			Side:            sides.Pick(s.Faker),
			Venue:           datagen.Choose(s.Faker, venues),
			Liquidity:       liquidity.Pick(s.Faker),
			Condition:       conditions.Pick(s.Faker),
			OrderID:         "ORD_" + strings.ToUpper(s.Hex(8)),
			LatencyMicrosec: int(s.Exponential(50)),
		}
	}
	return ticks, nil
}

type depthLevel struct {
	Level   int     `json:"level"`
	Bid     float64 `json:"bid"`
	BidSize int     `json:"bid_size"`
	Ask     float64 `json:"ask"`
	AskSize int     `json:"ask_size"`
}

// GenerateSnapshots generates n order book snapshots. The best bid sits
// below the best ask, deeper levels step one tick further away, and the
// micro price is the size-weighted mid.
func GenerateSnapshots(s *datagen.Session, n int, tickers []Ticker) ([]Snapshot, error) {
	if err := datagen.RequireCount("snapshot", n); err != nil {
		return nil, err
	}
	if len(tickers) == 0 {
		return nil, fmt.Errorf("%w: no tickers to quote", datagen.ErrInvalidArgument)
	}

	out := make([]Snapshot, n)
	for i := range out {
		tk := datagen.Choose(s.Faker, tickers)
		mid := drift(s, tk.BasePrice, 0.02)
		spreadBps := 0.5 + s.Exponential(5)
		half := mid * spreadBps / 2 / 10000
		bid := datagen.Round(math.Max(0.01, mid-half), 4)
		ask := datagen.Round(math.Max(bid+0.0001, mid+half), 4)
		tick := math.Max(0.01, mid*0.0001)

		levels := make([]depthLevel, DepthLevels)
		for l := range levels {
			levels[l] = depthLevel{
				Level:   l + 1,
				Bid:     datagen.Round(math.Max(0.0001, bid-float64(l)*tick), 4),
				BidSize: s.Int(100, 5000),
				Ask:     datagen.Round(ask+float64(l)*tick, 4),
				AskSize: s.Int(100, 5000),
			}
		}
		depth, err := json.Marshal(levels)
		if err != nil {
			return nil, fmt.Errorf("failed to encode depth levels: %w", err)
		}

		bidSize, askSize := levels[0].BidSize, levels[0].AskSize
		total := float64(bidSize + askSize)
		out[i] = Snapshot{
			ID:             datagen.ID("SNAP", i+1, 8),
			Ticker:         tk.Symbol,
			Timestamp:      tradingTime(s),
			BestBid:        bid,
			BestAsk:        ask,
			BidSize:        bidSize,
			AskSize:        askSize,
			SpreadBps:      datagen.Round((ask-bid)/((ask+bid)/2)*10000, 4),
			DepthJSON:      string(depth),
			ImbalanceRatio: datagen.Round(float64(bidSize-askSize)/total, 6),
			QuoteCount:     s.Poisson(50),
			MicroPrice:     datagen.Round((bid*float64(askSize)+ask*float64(bidSize))/total, 4),
		}
	}
	return out, nil
}

// GenerateMinuteFeatures generates n minute rows over the given tickers
// and trading minutes. Every (minute, ticker) pair is used at most once:
// a drawn pair already taken is redrawn, and asking for more rows than
// there are pairs fails up front. Rows are ordered by minute then ticker.
func GenerateMinuteFeatures(s *datagen.Session, n int, tickers []Ticker, minutes []time.Time) ([]MinuteFeature, error) {
	if err := datagen.RequireCount("minute feature", n); err != nil {
		return nil, err
	}
	if len(tickers) == 0 || len(minutes) == 0 {
		return nil, fmt.Errorf("%w: no tickers or minutes to sample", datagen.ErrInvalidArgument)
	}
	if pairs := len(tickers) * len(minutes); n > pairs {
		return nil, fmt.Errorf("%w: %d rows requested from %d ticker-minute pairs",
			datagen.ErrInvalidArgument, n, pairs)
	}

	type pick struct {
		minute time.Time
		ticker Ticker
	}
	picks, err := datagen.SampleUnique(n, datagen.DefaultKeyAttempts, func() (pick, []string) {
		p := pick{datagen.Choose(s.Faker, minutes), datagen.Choose(s.Faker, tickers)}
		return p, []string{p.minute.Format(time.DateTime), p.ticker.Symbol}
	})
	if err != nil {
		return nil, fmt.Errorf("failed to sample ticker minutes: %w", err)
	}
	slices.SortFunc(picks, func(a, b pick) int {
		return olap.ByTime(a.minute, a.ticker.Symbol, b.minute, b.ticker.Symbol)
	})

	out := make([]MinuteFeature, n)
	for i, p := range picks {
		open := drift(s, p.ticker.BasePrice, 0.01)
		bar := olap.NewBar(open, open*s.Normal(0, 0.005), open*s.Normal(0, 0.01), open*s.Normal(0, 0.01))
		vwap := (bar.High + bar.Low + bar.Close) / 3

		ret1 := s.Normal(0, 0.001)
		ret5 := ret1*2.2 + s.Normal(0, 0.002)
		volume := int64(s.Poisson(50000))
		trades := s.Poisson(100)
		signed := volume
		if s.Chance(0.48) {
			signed = -volume
		}
		spread := s.Exponential(5)
		effective := spread * s.Float64(0.3, 0.8)
		vol5 := math.Abs(s.Normal(0.02, 0.01))
		mom5 := s.Normal(0, 0.01)
		next1 := s.Normal(0, 0.001)

		out[i] = MinuteFeature{
			Minute:              p.minute,
			Ticker:              p.ticker.Symbol,
			Open:                datagen.Round(bar.Open, 4),
			High:                datagen.Round(bar.High, 4),
			Low:                 datagen.Round(bar.Low, 4),
			Close:               datagen.Round(bar.Close, 4),
			VWAP:                datagen.Round(vwap, 4),
			Return1m:            datagen.Round(ret1, 6),
			Return5m:            datagen.Round(ret5, 6),
			Return15m:           datagen.Round(ret5*3+s.Normal(0, 0.004), 6),
			VolumeShares:        volume,
			VolumeNotional:      datagen.Round(float64(volume)*vwap, 2),
			TradeCount:          trades,
			AvgTradeSize:        datagen.Round(float64(volume)/float64(max(1, trades)), 2),
			VolumeImbalance:     datagen.Round(datagen.Clamp(s.Normal(0, 0.2), -1, 1), 6),
			SignedVolume:        signed,
			BuyVolumeRatio:      datagen.Round(s.Beta(5, 5), 4),
			SpreadBps:           datagen.Round(spread, 4),
			RealizedVol5m:       datagen.Round(vol5, 6),
			RealizedVol15m:      datagen.Round(vol5*1.7, 6),
			Momentum5m:          datagen.Round(mom5, 6),
			Momentum15m:         datagen.Round(mom5*2.8, 6),
			RSI14:               datagen.Round(s.Beta(2, 2)*100, 4),
			OrderFlowImbalance:  datagen.Round(s.Normal(0, 0.3), 6),
			EffectiveSpreadBps:  datagen.Round(effective, 4),
			PriceImprovementBps: datagen.Round(effective*s.Float64(0.1, 0.4), 4),
			ReturnNext1m:        datagen.Round(next1, 6),
			ReturnNext5m:        datagen.Round(next1*2.1+s.Normal(0, 0.002), 6),
			VolatilityNext15m:   datagen.Round(math.Abs(s.Normal(0.02, 0.005)), 6),
		}
	}
	return out, nil
}

// Generate builds ticks, snapshots, minute features and the daily ticker
// rollup for the first c.Tickers catalog symbols.
func Generate(s *datagen.Session, c Counts) (*schema.Dataset, error) {
	if err := datagen.RequireCount("ticker", c.Tickers); err != nil {
		return nil, err
	}
	tickers := Tickers(c.Tickers)

	ticks, err := GenerateTicks(s, c.Ticks, tickers)
	if err != nil {
		return nil, fmt.Errorf("failed to generate trade ticks: %w", err)
	}
	snapshots, err := GenerateSnapshots(s, c.Snapshots, tickers)
	if err != nil {
		return nil, fmt.Errorf("failed to generate order book snapshots: %w", err)
	}
	// The window holds at least twice as many pairs as rows.
	window := max(FeatureWindow, 2*c.Features/len(tickers)+1)
	features, err := GenerateMinuteFeatures(s, c.Features, tickers, TradingMinutes(s.Now, window))
	if err != nil {
		return nil, fmt.Errorf("failed to generate minute features: %w", err)
	}

	ds := &schema.Dataset{}
	ds.Add(TradeTicks, schema.Rows(ticks))
	ds.Add(OrderBookSnapshots, schema.Rows(snapshots))
	ds.Add(FeaturesMinute, schema.Rows(features))
	ds.Add(TickerDailyAgg, schema.Rows(RollupTickerDays(ticks)))
	return ds, nil
}
