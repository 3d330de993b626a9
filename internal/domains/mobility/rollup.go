package mobility

import (
	"cmp"
	"time"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/olap"
)

type cityKey struct {
	hour    time.Time
	city    string
	weather string
}

type cityTotals struct {
	requests  int
	fulfilled int
	surged    int
	cancelled int
	wait      olap.Mean
	fare      olap.Mean
	rating    olap.Mean
	drivers   olap.Set
}

// RollupCityHours aggregates rides by request hour, city and weather.
// Wait time runs from request to pickup of completed rides; fares and
// ratings average over completed rides only. The average rating is NULL
// for buckets without a rated ride.
func RollupCityHours(rides []Ride) []CityHour {
	g := olap.NewGroup[cityKey, cityTotals]()
	for _, r := range rides {
		t := g.At(cityKey{olap.Hour(r.RequestTS), r.City, r.Weather})
		t.requests++
		if r.SurgeMultiplier > 1 {
			t.surged++
		}
		if !r.Completed() {
			t.cancelled++
			continue
		}
		t.fulfilled++
		t.drivers.Add(r.DriverID)
		t.wait.Add(r.PickupTS.Sub(r.RequestTS).Minutes())
		t.fare.Add(r.FinalFare)
		if r.RatingDriver != nil {
			t.rating.Add(float64(*r.RatingDriver))
		}
	}

	keys := g.Sorted(func(a, b cityKey) int {
		if c := olap.ByTime(a.hour, a.city, b.hour, b.city); c != 0 {
			return c
		}
		return cmp.Compare(a.weather, b.weather)
	})

	out := make([]CityHour, len(keys))
	for i, k := range keys {
		t := g.At(k)
		var rating *float64
		if t.rating.Count > 0 {
			v := datagen.Round(t.rating.Value(), 2)
			rating = &v
		}
		out[i] = CityHour{
			Hour:                    k.hour,
			City:                    k.city,
			Weather:                 k.weather,
			TotalRequests:           t.requests,
			FulfilledRides:          t.fulfilled,
			AvgWaitMinutes:          datagen.Round(t.wait.Value(), 2),
			AvgFare:                 datagen.Round(t.fare.Value(), 2),
			AvgRating:               rating,
			SurgedRides:             t.surged,
			CancellationRate:        datagen.Round(olap.Ratio(float64(t.cancelled), float64(t.requests)), 4),
			ActiveDrivers:           t.drivers.Len(),
			CompletedTripsPerDriver: datagen.Round(olap.Ratio(float64(t.fulfilled), float64(t.drivers.Len())), 2),
		}
	}
	return out
}
