package exchange

import (
	"time"
)

// Ticker is a listed symbol and its reference price in USD.
type Ticker struct {
	Symbol    string
	BasePrice float64
}

// Catalog lists the liquid symbols trades are drawn from. Tickers are
// catalog keys rather than rows.
var Catalog = []Ticker{
	{"AAPL", 150}, {"GOOGL", 2500}, {"MSFT", 300}, {"AMZN", 3200}, {"TSLA", 800},
	{"META", 200}, {"NVDA", 400}, {"BRK.B", 300}, {"JNJ", 160}, {"UNH", 480},
	{"XOM", 105}, {"JPM", 140}, {"V", 240}, {"PG", 150}, {"HD", 330},
	{"CVX", 160}, {"MA", 390}, {"BAC", 32}, {"ABBV", 155}, {"PFE", 38},
	{"KO", 60}, {"AVGO", 850}, {"PEP", 175}, {"TMO", 540}, {"COST", 560},
	{"DIS", 95}, {"ABT", 105}, {"ACN", 310}, {"MRK", 110}, {"NFLX", 440},
	{"CRM", 210}, {"VZ", 38}, {"ADBE", 490}, {"DHR", 240}, {"CMCSA", 42},
	{"NKE", 105}, {"TXN", 170}, {"NEE", 70}, {"RTX", 95}, {"QCOM", 130},
	{"HON", 200}, {"AMGN", 260}, {"UPS", 175}, {"LOW", 210}, {"IBM", 140},
	{"SPGI", 390}, {"GE", 110}, {"CAT", 260}, {"MDT", 85}, {"INTU", 450},
}

// MaxTickers is the size of the catalog.
var MaxTickers = len(Catalog)

// Trading session bounds, in exchange wall-clock time.
const (
	OpenHour       = 9
	OpenMinute     = 30
	SessionMinutes = 390
)

// Tickers returns the first n catalog entries, capped at the catalog size.
func Tickers(n int) []Ticker {
	return Catalog[:min(max(n, 0), len(Catalog))]
}

// Symbols returns the symbols of tickers.
func Symbols(tickers []Ticker) []string {
	out := make([]string, len(tickers))
	for i, t := range tickers {
		out[i] = t.Symbol
	}
	return out
}

// TradingDay reports whether the exchange opens on day.
func TradingDay(day time.Time) bool {
	wd := day.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// SessionOpen returns the opening bell of day.
func SessionOpen(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, OpenHour, OpenMinute, 0, 0, time.UTC)
}

// TradingMinutes returns the last n trading minutes of the sessions
// before now's day, in ascending order.
func TradingMinutes(now time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	var days []time.Time
	need := (n + SessionMinutes - 1) / SessionMinutes
	for day := now.UTC().Truncate(24*time.Hour).AddDate(0, 0, -1); len(days) < need; day = day.AddDate(0, 0, -1) {
		if TradingDay(day) {
			days = append(days, day)
		}
	}

	out := make([]time.Time, 0, need*SessionMinutes)
	for i := len(days) - 1; i >= 0; i-- {
		open := SessionOpen(days[i])
		for m := 0; m < SessionMinutes; m++ {
			out = append(out, open.Add(time.Duration(m)*time.Minute))
		}
	}
	return out[len(out)-n:]
}

// SessionMinutesIn returns the trading minutes of every trading day among
// the days calendar days before now's day, in ascending order.
func SessionMinutesIn(now time.Time, days int) []time.Time {
	today := now.UTC().Truncate(24 * time.Hour)
	var out []time.Time
	for d := days; d > 0; d-- {
		day := today.AddDate(0, 0, -d)
		if !TradingDay(day) {
			continue
		}
		open := SessionOpen(day)
		for m := 0; m < SessionMinutes; m++ {
			out = append(out, open.Add(time.Duration(m)*time.Minute))
		}
	}
	return out
}
