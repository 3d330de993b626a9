package exchange

import "time"

// TradeTick is one nyse_trade_ticks row.
type TradeTick struct {
	ID              string
	Ticker          string
	Timestamp       time.Time
	Price           float64
	Size            int
	Side            string
	Venue           string
	Liquidity       string
	Condition       string
	OrderID         string
	LatencyMicrosec int
}

// Values implements schema.Record.
func (t TradeTick) Values() []any {
	return []any{t.ID, t.Ticker, t.Timestamp, t.Price, t.Size, t.Side, t.Venue, t.Liquidity,
		t.Condition, t.OrderID, t.LatencyMicrosec}
}

// Snapshot is one nyse_order_book_snapshots row.
type Snapshot struct {
	ID             string
	Ticker         string
	Timestamp      time.Time
	BestBid        float64
	BestAsk        float64
	BidSize        int
	AskSize        int
	SpreadBps      float64
	DepthJSON      string
	ImbalanceRatio float64
	QuoteCount     int
	MicroPrice     float64
}

// Values implements schema.Record.
func (s Snapshot) Values() []any {
	return []any{s.ID, s.Ticker, s.Timestamp, s.BestBid, s.BestAsk, s.BidSize, s.AskSize,
		s.SpreadBps, s.DepthJSON, s.ImbalanceRatio, s.QuoteCount, s.MicroPrice}
}

// MinuteFeature is one nyse_features_minute row.
type MinuteFeature struct {
	Minute              time.Time
	Ticker              string
	Open                float64
	High                float64
	Low                 float64
	Close               float64
	VWAP                float64
	Return1m            float64
	Return5m            float64
	Return15m           float64
	VolumeShares        int64
	VolumeNotional      float64
	TradeCount          int
	AvgTradeSize        float64
	VolumeImbalance     float64
	SignedVolume        int64
	BuyVolumeRatio      float64
	SpreadBps           float64
	RealizedVol5m       float64
	RealizedVol15m      float64
	Momentum5m          float64
	Momentum15m         float64
	RSI14               float64
	OrderFlowImbalance  float64
	EffectiveSpreadBps  float64
	PriceImprovementBps float64
	ReturnNext1m        float64
	ReturnNext5m        float64
	VolatilityNext15m   float64
}

// Values implements schema.Record.
func (f MinuteFeature) Values() []any {
	return []any{f.Minute, f.Ticker, f.Open, f.High, f.Low, f.Close, f.VWAP, f.Return1m, f.Return5m,
		f.Return15m, f.VolumeShares, f.VolumeNotional, f.TradeCount, f.AvgTradeSize, f.VolumeImbalance,
		f.SignedVolume, f.BuyVolumeRatio, f.SpreadBps, f.RealizedVol5m, f.RealizedVol15m, f.Momentum5m,
		f.Momentum15m, f.RSI14, f.OrderFlowImbalance, f.EffectiveSpreadBps, f.PriceImprovementBps,
		f.ReturnNext1m, f.ReturnNext5m, f.VolatilityNext15m}
}

// TickerDay is one nyse_ticker_daily_agg row.
type TickerDay struct {
	Date           time.Time
	Ticker         string
	Open           float64
	High           float64
	Low            float64
	Close          float64
	VWAP           float64
	VolumeShares   int64
	TradeCount     int
	BuyVolumeRatio float64
	AvgLatency     float64
	VenueCount     int
}

// Values implements schema.Record.
func (d TickerDay) Values() []any {
	return []any{d.Date, d.Ticker, d.Open, d.High, d.Low, d.Close, d.VWAP, d.VolumeShares,
		d.TradeCount, d.BuyVolumeRatio, d.AvgLatency, d.VenueCount}
}

// MinuteBar is one agg_nyse_minute_ohlc row.
type MinuteBar struct {
	Ticker string
	Minute time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int
}

// Values implements schema.Record.
func (b MinuteBar) Values() []any {
	return []any{b.Ticker, b.Minute, b.Open, b.High, b.Low, b.Close, b.Volume}
}

// StagedTrade is one staging_nyse_trades row.
type StagedTrade struct {
	TickID      string
	Ticker      string
	TimestampMS int64
	Price       float64
	Size        int
	Venue       string
	IsAuction   int
	TradeType   string
	BatchID     string
	ProcessedTS time.Time
}

// Values implements schema.Record.
func (t StagedTrade) Values() []any {
	return []any{t.TickID, t.Ticker, t.TimestampMS, t.Price, t.Size, t.Venue, t.IsAuction,
		t.TradeType, t.BatchID, t.ProcessedTS}
}

// MinuteSignal is one features_nyse_minute row.
type MinuteSignal struct {
	Minute         time.Time
	Ticker         string
	PriceMomentum  float64
	Volatility5min float64
	LabelPriceUp   int
}

// Values implements schema.Record.
func (m MinuteSignal) Values() []any {
	return []any{m.Minute, m.Ticker, m.PriceMomentum, m.Volatility5min, m.LabelPriceUp}
}
