package lodging

import (
	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/olap"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// OccupancyDays is the sampled history at scale small.
const OccupancyDays = 60

// OccupancyCities are the cities the sampled occupancy covers, largest
// market first.
var OccupancyCities = []string{"Dubai", "Abu Dhabi", "Sharjah", "Ajman", "Ras Al Khaimah"}

type marketSize struct {
	minNights, maxNights int
	minRate, maxRate     float64
}

// Dubai and Abu Dhabi are larger and busier than the other emirates.
var marketSizes = map[string]marketSize{
	"Dubai":     {8000, 11999, 0.65, 0.85},
	"Abu Dhabi": {3000, 5999, 0.55, 0.75},
}

var smallMarket = marketSize{1000, 2999, 0.45, 0.65}

// SampleOccupancy samples one row per city for each of the last days
// days. Occupied nights are drawn as a share of available nights, and
// the occupancy rate and daily rate are computed from the drawn counts.
func SampleOccupancy(s *datagen.Session, days int, cities []string) ([]CityOccupancy, error) {
	if err := datagen.RequireCount("day", days); err != nil {
		return nil, err
	}
	if err := datagen.RequireKeys("city", cities); err != nil {
		return nil, err
	}

	today := olap.Day(s.Now)
	out := make([]CityOccupancy, 0, days*len(cities))
	for d := days; d > 0; d-- {
		date := today.AddDate(0, 0, -d)
		for _, city := range cities {
			m, ok := marketSizes[city]
			if !ok {
				m = smallMarket
			}
			available := s.Int(m.minNights, m.maxNights)
			occupied := int(float64(available) * s.Float64(m.minRate, m.maxRate))
			revenue := datagen.Round(float64(occupied)*s.Float64(150, 800), 2)
			out = append(out, CityOccupancy{
				Date:            date,
				City:            city,
				OccupiedNights:  occupied,
				AvailableNights: available,
				OccupancyRate:   datagen.Round(olap.Ratio(float64(occupied), float64(available)), 4),
				Revenue:         revenue,
				AvgDailyRate:    datagen.Round(olap.Ratio(revenue, float64(occupied)), 2),
			})
		}
	}
	return out, nil
}

func generateOLAP(s *datagen.Session, scale datagen.Scale) (*schema.Dataset, error) {
	rows, err := SampleOccupancy(s, scale.ApplyCapped(OccupancyDays, 730), OccupancyCities)
	if err != nil {
		return nil, err
	}
	ds := &schema.Dataset{}
	ds.Add(AggOccupancy, schema.Rows(rows))
	return ds, nil
}
