package streaming

import (
	"fmt"
	"time"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/olap"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// Sampled engagement at scale small.
const (
	EngagementDays = 30
	titlesPerHour  = 2
	popularTitles  = 20
)

// PopularTitles returns the ids of the titles the sampled rollup covers.
func PopularTitles(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("content_%05d", 1000+i)
	}
	return ids
}

// SampleHourlyEngagement samples perHour distinct titles for every hour
// of the last days days. A title drawn twice for the same hour is
// redrawn. Evening hours draw the most views. Unique viewers and total
// watch hours are derived from the sampled view count.
func SampleHourlyEngagement(s *datagen.Session, days, perHour int, titles []string) ([]TitleHour, error) {
	if err := datagen.RequireCount("day", days); err != nil {
		return nil, err
	}
	if err := datagen.RequireCount("title per hour", perHour); err != nil {
		return nil, err
	}
	if err := datagen.RequireKeys("content", titles); err != nil {
		return nil, err
	}

	start := olap.Day(s.Now).AddDate(0, 0, -days)
	out := make([]TitleHour, 0, days*24*perHour)
	for h := 0; h < days*24; h++ {
		hour := start.Add(time.Duration(h) * time.Hour)
		picked, err := datagen.SampleUnique(perHour, datagen.DefaultKeyAttempts, func() (string, []string) {
			id := datagen.Choose(s.Faker, titles)
			return id, []string{id}
		})
		if err != nil {
			return nil, fmt.Errorf("failed to sample titles for %s: %w", hour.Format(time.DateTime), err)
		}

		for _, id := range picked {
			var views int
			switch hod := hour.Hour(); {
			case hod >= 18:
				views = s.Int(5000, 14999)
			case hod >= 12:
				views = s.Int(2000, 7999)
			default:
				views = s.Int(500, 2999)
			}
			avgWatch := datagen.Round(s.Float64(300, 3600), 1)
			out = append(out, TitleHour{
				Hour:            hour,
				ContentID:       id,
				Views:           views,
				UniqueViewers:   int(float64(views) * s.Float64(0.6, 0.9)),
				AvgWatchSec:     avgWatch,
				TotalWatchHours: datagen.Round(float64(views)*avgWatch/3600, 2),
			})
		}
	}
	return out, nil
}

func generateOLAP(s *datagen.Session, scale datagen.Scale) (*schema.Dataset, error) {
	rows, err := SampleHourlyEngagement(s, scale.ApplyCapped(EngagementDays, 365),
		titlesPerHour, PopularTitles(popularTitles))
	if err != nil {
		return nil, err
	}
	ds := &schema.Dataset{}
	ds.Add(AggHourlyEngagement, schema.Rows(rows))
	return ds, nil
}
