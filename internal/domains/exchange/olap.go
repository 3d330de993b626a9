package exchange

import (
	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/olap"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// BarDays is the calendar window of sampled bars at scale small.
const BarDays = 7

// BarTickers are the symbols the sampled bars cover.
var BarTickers = Tickers(8)

// SampleMinuteBars samples one bar per ticker for every trading minute
// of the last days calendar days. Each bar opens within 0.1% of the
// ticker's base price and its extremes bound open and close. The first
// hour after the open and the last hour and a half trade heavier.
func SampleMinuteBars(s *datagen.Session, days int, tickers []Ticker) ([]MinuteBar, error) {
	if err := datagen.RequireCount("day", days); err != nil {
		return nil, err
	}
	if err := datagen.RequireKeys("ticker", Symbols(tickers)); err != nil {
		return nil, err
	}

	minutes := SessionMinutesIn(s.Now, days)
	out := make([]MinuteBar, 0, len(minutes)*len(tickers))
	for i, minute := range minutes {
		m := i % SessionMinutes
		for _, tk := range tickers {
			open := tk.BasePrice + s.Normal(0, tk.BasePrice*0.001)
			excursion := s.Normal(0, tk.BasePrice*0.0005)
			bar := olap.NewBar(open, s.Normal(0, max(excursion, -excursion)), excursion, excursion)

			volume := s.Int(10000, 79999)
			if (m >= 60 && m <= 120) || m >= 300 {
				volume = s.Int(50000, 199999)
			}
			out = append(out, MinuteBar{
				Ticker: tk.Symbol,
				Minute: minute,
				Open:   datagen.Round(bar.Open, 2),
				High:   datagen.Round(bar.High, 2),
				Low:    datagen.Round(bar.Low, 2),
				Close:  datagen.Round(bar.Close, 2),
				Volume: volume,
			})
		}
	}
	return out, nil
}

func generateOLAP(s *datagen.Session, scale datagen.Scale) (*schema.Dataset, error) {
	rows, err := SampleMinuteBars(s, scale.ApplyCapped(BarDays, 30), BarTickers)
	if err != nil {
		return nil, err
	}
	ds := &schema.Dataset{}
	ds.Add(AggMinuteOHLC, schema.Rows(rows))
	return ds, nil
}
