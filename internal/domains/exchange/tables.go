// Package exchange generates the datasets of NYSE, the simulated stock
// exchange. Tickers are catalog keys shared by trade ticks, order book
// snapshots and minute-level features.
package exchange

import (
	"github.com/pgEdge/pgedge-datalab/internal/domains"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// TradeTicks holds executed trades.
var TradeTicks = &schema.Table{
	Name:        "nyse_trade_ticks",
	Module:      domains.BigData,
	Domain:      domains.Exchange,
	Pattern:     schema.Event,
	Description: "Executed trades with price, size, side, venue and latency",
	Columns: []schema.Column{
		{Name: "tick_id", Type: schema.Text},
		{Name: "ticker", Type: schema.Text},
		{Name: "trade_timestamp_ms", Type: schema.Timestamp},
		{Name: "trade_price", Type: schema.Real},
		{Name: "trade_size", Type: schema.Integer},
		{Name: "trade_side", Type: schema.Text},
		{Name: "venue_code", Type: schema.Text},
		{Name: "liquidity_flag", Type: schema.Text},
		{Name: "trade_condition", Type: schema.Text},
		{Name: "order_id", Type: schema.Text},
		{Name: "execution_latency_microsec", Type: schema.Integer},
	},
	PrimaryKey: []string{"tick_id"},
	Indexes: []schema.Index{
		{Name: "idx_nyse_ticks_ticker_ts", Columns: []string{"ticker", "trade_timestamp_ms"}},
	},
}

// OrderBookSnapshots holds top-of-book snapshots.
var OrderBookSnapshots = &schema.Table{
	Name:        "nyse_order_book_snapshots",
	Module:      domains.BigData,
	Domain:      domains.Exchange,
	Pattern:     schema.Event,
	Description: "Order book snapshots with best quotes, depth levels and imbalance",
	Columns: []schema.Column{
		{Name: "snapshot_id", Type: schema.Text},
		{Name: "ticker", Type: schema.Text},
		{Name: "snapshot_timestamp_ms", Type: schema.Timestamp},
		{Name: "best_bid_price", Type: schema.Real},
		{Name: "best_ask_price", Type: schema.Real},
		{Name: "bid_size_level1", Type: schema.Integer},
		{Name: "ask_size_level1", Type: schema.Integer},
		{Name: "bid_ask_spread_bps", Type: schema.Real},
		{Name: "market_depth_levels_json", Type: schema.JSON},
		{Name: "order_imbalance_ratio", Type: schema.Real},
		{Name: "quote_count", Type: schema.Integer},
		{Name: "micro_price", Type: schema.Real},
	},
	PrimaryKey: []string{"snapshot_id"},
	Indexes: []schema.Index{
		{Name: "idx_nyse_snapshots_ticker_ts", Columns: []string{"ticker", "snapshot_timestamp_ms"}},
	},
}

// FeaturesMinute holds minute-level bars and indicators, one row per
// ticker and minute.
var FeaturesMinute = &schema.Table{
	Name:        "nyse_features_minute",
	Module:      domains.BigData,
	Domain:      domains.Exchange,
	Pattern:     schema.Feature,
	Description: "Minute bars with returns, liquidity, volatility, microstructure indicators and prediction targets",
	Columns: []schema.Column{
		{Name: "minute_timestamp", Type: schema.Timestamp},
		{Name: "ticker", Type: schema.Text},
		{Name: "open_price", Type: schema.Real},
		{Name: "high_price", Type: schema.Real},
		{Name: "low_price", Type: schema.Real},
		{Name: "close_price", Type: schema.Real},
		{Name: "vwap", Type: schema.Real},
		{Name: "return_1m", Type: schema.Real},
		{Name: "return_5m", Type: schema.Real},
		{Name: "return_15m", Type: schema.Real},
		{Name: "volume_shares", Type: schema.Integer},
		{Name: "volume_notional_usd", Type: schema.Real},
		{Name: "trade_count", Type: schema.Integer},
		{Name: "avg_trade_size", Type: schema.Real},
		{Name: "volume_imbalance", Type: schema.Real},
		{Name: "signed_volume", Type: schema.Integer},
		{Name: "buy_volume_ratio", Type: schema.Real},
		{Name: "bid_ask_spread_bps", Type: schema.Real},
		{Name: "realized_volatility_5m", Type: schema.Real},
		{Name: "realized_volatility_15m", Type: schema.Real},
		{Name: "momentum_5m", Type: schema.Real},
		{Name: "momentum_15m", Type: schema.Real},
		{Name: "rsi_14", Type: schema.Real},
		{Name: "order_flow_imbalance", Type: schema.Real},
		{Name: "effective_spread_bps", Type: schema.Real},
		{Name: "price_improvement_bps", Type: schema.Real},
		{Name: "return_next_1m", Type: schema.Real},
		{Name: "return_next_5m", Type: schema.Real},
		{Name: "volatility_next_15m", Type: schema.Real},
	},
	PrimaryKey: []string{"minute_timestamp", "ticker"},
}

// TickerDailyAgg is aggregated from the trade ticks of the same run.
var TickerDailyAgg = &schema.Table{
	Name:        "nyse_ticker_daily_agg",
	Module:      domains.BigData,
	Domain:      domains.Exchange,
	Pattern:     schema.OLAP,
	Description: "Daily OHLCV, VWAP and flow per ticker, aggregated from the trade ticks",
	Columns: []schema.Column{
		{Name: "date_key", Type: schema.Date},
		{Name: "ticker_key", Type: schema.Text},
		{Name: "open_price", Type: schema.Real},
		{Name: "high_price", Type: schema.Real},
		{Name: "low_price", Type: schema.Real},
		{Name: "close_price", Type: schema.Real},
		{Name: "vwap", Type: schema.Real},
		{Name: "volume_shares", Type: schema.Integer},
		{Name: "trade_count", Type: schema.Integer},
		{Name: "buy_volume_ratio", Type: schema.Real},
		{Name: "avg_latency_microsec", Type: schema.Real},
		{Name: "venue_count", Type: schema.Integer},
	},
	PrimaryKey: []string{"date_key", "ticker_key"},
}

// AggMinuteOHLC holds independently sampled minute bars.
var AggMinuteOHLC = &schema.Table{
	Name:        "agg_nyse_minute_ohlc",
	Module:      domains.OLAP,
	Domain:      domains.Exchange,
	Pattern:     schema.OLAP,
	Description: "Sampled minute OHLC bars per ticker over recent sessions (internally consistent, not derived from detail rows)",
	Columns: []schema.Column{
		{Name: "ticker", Type: schema.Text},
		{Name: "minute_ts", Type: schema.Timestamp},
		{Name: "open", Type: schema.Real},
		{Name: "high", Type: schema.Real},
		{Name: "low", Type: schema.Real},
		{Name: "close", Type: schema.Real},
		{Name: "volume", Type: schema.Integer},
	},
	PrimaryKey: []string{"ticker", "minute_ts"},
}

// StagingTrades holds cleansed trades of the ETL staging layer.
var StagingTrades = &schema.Table{
	Name:        "staging_nyse_trades",
	Module:      domains.Processing,
	Domain:      domains.Exchange,
	Pattern:     schema.Staging,
	Description: "Cleansed trades awaiting load, tagged with their ETL batch",
	Columns: []schema.Column{
		{Name: "tick_id", Type: schema.Text},
		{Name: "ticker", Type: schema.Text},
		{Name: "timestamp_ms", Type: schema.Integer},
		{Name: "price", Type: schema.Real},
		{Name: "size", Type: schema.Integer},
		{Name: "venue", Type: schema.Text},
		{Name: "is_auction", Type: schema.Integer},
		{Name: "trade_type", Type: schema.Text},
		{Name: "etl_batch_id", Type: schema.Text},
		{Name: "processed_ts", Type: schema.Timestamp},
	},
	PrimaryKey: []string{"tick_id"},
	Indexes: []schema.Index{
		{Name: "idx_nyse_trades_processed_ts", Columns: []string{"processed_ts"}},
		{Name: "idx_nyse_trades_batch", Columns: []string{"etl_batch_id"}},
	},
}

// FeaturesNYSEMinute holds per-minute model features.
var FeaturesNYSEMinute = &schema.Table{
	Name:        "features_nyse_minute",
	Module:      domains.Features,
	Domain:      domains.Exchange,
	Pattern:     schema.Feature,
	Description: "Minute-level momentum and volatility features with next-minute direction label",
	Columns: []schema.Column{
		{Name: "minute_ts", Type: schema.Timestamp},
		{Name: "ticker", Type: schema.Text},
		{Name: "price_momentum", Type: schema.Real},
		{Name: "volatility_5min", Type: schema.Real},
		{Name: "label_price_up_next_min", Type: schema.Integer},
	},
	PrimaryKey: []string{"minute_ts", "ticker"},
}
