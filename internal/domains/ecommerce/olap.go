package ecommerce

import (
	"time"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/olap"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

var olapCategories = []string{"Electronics", "Fashion", "Home", "Books", "Sports", "Beauty", "Automotive", "Toys"}

// SalesDays is the number of days sampled at scale small.
const SalesDays = 90

// SampleDailySales samples one bucket per category for each of the last
// days days. Weekends sell 30% more. Unit counts, revenue and returns are
// drawn relative to the sampled order count, and the stored rates are
// recomputed from the rounded figures.
func SampleDailySales(s *datagen.Session, days int) ([]CategorySales, error) {
	if err := datagen.RequireCount("day", days); err != nil {
		return nil, err
	}

	start := olap.Day(s.Now).AddDate(0, 0, -days)
	out := make([]CategorySales, 0, days*len(olapCategories))
	for d := 0; d < days; d++ {
		date := start.AddDate(0, 0, d)
		multiplier := 1.0
		if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
			multiplier = 1.3
		}

		for _, category := range olapCategories {
			var base int
			switch category {
			case "Electronics":
				base = s.Int(100, 499)
			case "Fashion":
				base = s.Int(200, 799)
			default:
				base = s.Int(50, 299)
			}
			orders := int(float64(base) * multiplier)
			aov := datagen.Round(s.Float64(50, 300), 2)
			returns := int(float64(orders) * s.Float64(0.05, 0.15))
			out = append(out, CategorySales{
				Date:          date,
				Category:      category,
				Orders:        orders,
				UnitsSold:     int(float64(orders) * s.Float64(1.2, 3.0)),
				AvgOrderValue: aov,
				GrossRevenue:  datagen.Round(float64(orders)*aov, 2),
				Returns:       returns,
				ReturnRate:    datagen.Round(olap.Ratio(float64(returns), float64(orders)), 4),
			})
		}
	}
	return out, nil
}

func generateOLAP(s *datagen.Session, scale datagen.Scale) (*schema.Dataset, error) {
	rows, err := SampleDailySales(s, scale.ApplyCapped(SalesDays, 3*365))
	if err != nil {
		return nil, err
	}
	ds := &schema.Dataset{}
	ds.Add(AggDailySales, schema.Rows(rows))
	return ds, nil
}
