package lodging

import (
	"cmp"
	"time"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/olap"
)

type marketKey struct {
	day      time.Time
	city     string
	propType string
}

type listingKey struct {
	city     string
	propType string
}

type marketTotals struct {
	bookings   int
	cancelled  int
	nights     int
	revenue    float64
	stay       olap.Mean
	booked     olap.Set
	response   olap.Mean
	reviewMean olap.Mean
}

// RollupMarketDays aggregates bookings by check-in day, city and
// property type. Cancelled bookings count towards the cancellation rate
// only. Occupancy is the share of the market's listings with a stay
// starting that day, and the daily rate is accommodation revenue per
// booked night.
func RollupMarketDays(hosts []Host, props []Property, bookings []Booking, reviews []Review) []MarketDay {
	responseRate := make(map[string]float64, len(hosts))
	for _, h := range hosts {
		responseRate[h.ID] = h.ResponseRatePct / 100
	}
	byID := make(map[string]Property, len(props))
	listings := make(map[listingKey]int)
	newListings := make(map[marketKey]int)
	for _, p := range props {
		byID[p.ID] = p
		listings[listingKey{p.City, p.PropertyType}]++
		newListings[marketKey{p.ListingDate, p.City, p.PropertyType}]++
	}
	rating := make(map[string]int, len(reviews))
	for _, r := range reviews {
		rating[r.BookingID] = r.OverallRating
	}

	g := olap.NewGroup[marketKey, marketTotals]()
	for _, b := range bookings {
		p := byID[b.PropertyID]
		t := g.At(marketKey{olap.Day(b.Checkin), p.City, p.PropertyType})
		t.bookings++
		t.response.Add(responseRate[p.HostID])
		if b.Status == StatusCancelled {
			t.cancelled++
			continue
		}
		t.nights += b.Nights
		t.revenue += b.Stay()
		t.stay.Add(float64(b.Nights))
		t.booked.Add(b.PropertyID)
		if v, ok := rating[b.ID]; ok {
			t.reviewMean.Add(float64(v))
		}
	}

	keys := g.Sorted(func(a, b marketKey) int {
		if c := olap.ByTime(a.day, a.city, b.day, b.city); c != 0 {
			return c
		}
		return cmp.Compare(a.propType, b.propType)
	})

	out := make([]MarketDay, len(keys))
	for i, k := range keys {
		t := g.At(k)
		available := listings[listingKey{k.city, k.propType}]
		var satisfaction *float64
		if t.reviewMean.Count > 0 {
			v := datagen.Round(t.reviewMean.Value(), 2)
			satisfaction = &v
		}
		out[i] = MarketDay{
			Date:                  k.day,
			City:                  k.city,
			PropertyType:          k.propType,
			Season:                Season(k.day),
			AvailableListings:     available,
			BookedNights:          t.nights,
			OccupancyRate:         datagen.Round(olap.Ratio(float64(t.booked.Len()), float64(available)), 4),
			AvgDailyRate:          datagen.Round(olap.Ratio(t.revenue, float64(t.nights)), 2),
			RevenuePerAvailable:   datagen.Round(olap.Ratio(t.revenue, float64(available)), 2),
			AvgLengthOfStay:       datagen.Round(t.stay.Value(), 2),
			NewListings:           newListings[k],
			CancelledBookingsRate: datagen.Round(olap.Ratio(float64(t.cancelled), float64(t.bookings)), 4),
			HostResponseRate:      datagen.Round(t.response.Value(), 4),
			GuestSatisfaction:     satisfaction,
		}
	}
	return out
}
