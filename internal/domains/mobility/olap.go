package mobility

import (
	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/olap"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// RevenueDays is the sampled history at scale small.
const RevenueDays = 90

// RevenueCities are the cities the sampled revenue covers.
var RevenueCities = []string{"Dubai", "Abu Dhabi", "Sharjah"}

// SampleDailyRevenue samples one row per city for each of the last days
// days. Completed rides are a share of total rides, revenue scales with
// the ride count, and the derived columns follow from both.
func SampleDailyRevenue(s *datagen.Session, days int, cities []string) ([]CityRevenue, error) {
	if err := datagen.RequireCount("day", days); err != nil {
		return nil, err
	}
	if err := datagen.RequireKeys("city", cities); err != nil {
		return nil, err
	}

	today := olap.Day(s.Now)
	out := make([]CityRevenue, 0, days*len(cities))
	for d := days; d > 0; d-- {
		date := today.AddDate(0, 0, -d)
		for _, city := range cities {
			total := s.Int(500, 5000)
			completed := int(float64(total) * s.Float64(0.85, 0.98))
			revenue := datagen.Round(float64(total)*s.Float64(20, 60), 2)
			out = append(out, CityRevenue{
				Date:             date,
				City:             city,
				TotalRides:       total,
				CompletedRides:   completed,
				GrossRevenue:     revenue,
				AvgFare:          datagen.Round(olap.Ratio(revenue, float64(completed)), 2),
				CancellationRate: datagen.Round(1-float64(completed)/float64(total), 4),
			})
		}
	}
	return out, nil
}

func generateOLAP(s *datagen.Session, scale datagen.Scale) (*schema.Dataset, error) {
	rows, err := SampleDailyRevenue(s, scale.ApplyCapped(RevenueDays, 730), RevenueCities)
	if err != nil {
		return nil, err
	}
	ds := &schema.Dataset{}
	ds.Add(AggDailyRevenue, schema.Rows(rows))
	return ds, nil
}
