package lodging

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/olap"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// Cities are the markets properties are listed in.
var Cities = []string{"Dubai", "Riyadh", "Cairo", "Doha", "Kuwait City", "Manama", "Muscat", "Abu Dhabi"}

// Reference data
var (
	hostPolicies = datagen.MustWeighted(
		[]string{"Flexible", "Moderate", "Strict", "Super Strict"},
		[]float64{0.40, 0.35, 0.20, 0.05})
	guestCountries = datagen.MustWeighted(
		[]string{"US", "UK", "Canada", "Germany", "France", "Japan", "India", "Brazil", "Australia", "UAE"},
		[]float64{0.25, 0.15, 0.10, 0.08, 0.07, 0.05, 0.05, 0.05, 0.05, 0.15})

	neighborhoods = []string{"Downtown", "Marina", "Beach", "Airport", "Mall", "Business"}
	propertyTypes = datagen.MustWeighted(
		[]string{"Apartment", "House", "Townhouse", "Villa", "Studio", "Loft", "Condo"},
		[]float64{0.40, 0.20, 0.15, 0.10, 0.08, 0.05, 0.02})
	roomTypes = datagen.MustWeighted(
		[]string{"Entire place", "Private room", "Shared room", "Hotel room"},
		[]float64{0.70, 0.25, 0.03, 0.02})
	bedroomCounts = datagen.MustWeighted(
		[]int{0, 1, 2, 3, 4, 5},
		[]float64{0.15, 0.35, 0.30, 0.15, 0.04, 0.01})
	extraBaths = datagen.MustWeighted(
		[]float64{0, 0.5, 1.0},
		[]float64{0.10, 0.20, 0.70})
	amenities     = []string{"WiFi", "AC", "Kitchen", "Parking", "Pool", "Gym", "Balcony", "Sea View", "Pet Friendly"}
	minimumNights = datagen.MustWeighted(
		[]int{1, 2, 3, 7, 30},
		[]float64{0.50, 0.25, 0.15, 0.08, 0.02})
	maximumNights = datagen.MustWeighted(
		[]int{30, 90, 365, 1000},
		[]float64{0.30, 0.40, 0.25, 0.05})
	listingPolicies = datagen.MustWeighted(
		[]string{"Flexible", "Moderate", "Strict"},
		[]float64{0.40, 0.40, 0.20})

	stayLengths = datagen.MustWeighted(
		[]int{1, 2, 3, 4, 5, 6, 7, 14, 30},
		[]float64{0.20, 0.25, 0.20, 0.15, 0.08, 0.05, 0.03, 0.03, 0.01})
	bookingStatuses = datagen.MustWeighted(
		[]string{StatusConfirmed, StatusCancelled, StatusPending, StatusCompleted},
		[]float64{0.70, 0.15, 0.05, 0.10})
	channels = datagen.MustWeighted(
		[]string{"web", "mobile", "app", "partner"},
		[]float64{0.45, 0.35, 0.15, 0.05})
	overallRatings = datagen.MustWeighted(
		[]int{1, 2, 3, 4, 5},
		[]float64{0.02, 0.03, 0.10, 0.30, 0.55})
)

// Booking statuses.
const (
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Pricing rules.
const (
	HostFeeRate    = 0.03
	ServiceFeeRate = 0.12
	TourismTaxRate = 0.10
	WeeklyNights   = 7
	MonthlyNights  = 28
	WeeklyDiscount = 0.10
	// MonthlyDiscount replaces the weekly one for stays of MonthlyNights
	// or more.
	MonthlyDiscount = 0.20
)

// Seasons.
const (
	SeasonHigh     = "high"
	SeasonShoulder = "shoulder"
	SeasonLow      = "low"
)

// Counts are the row counts of one bigdata run. Reviews follow from the
// completed bookings.
type Counts struct {
	Hosts      int
	Guests     int
	Properties int
	Bookings   int
}

var baseCounts = Counts{Hosts: 250, Guests: 750, Properties: 500, Bookings: 2500}

// CountsFor returns the row counts at scale.
func CountsFor(scale datagen.Scale) Counts {
	return Counts{
		Hosts:      scale.Apply(baseCounts.Hosts),
		Guests:     scale.Apply(baseCounts.Guests),
		Properties: scale.Apply(baseCounts.Properties),
		Bookings:   scale.Apply(baseCounts.Bookings),
	}
}

// Season returns the tourist season of a day: winter months are high
// season and summer months low.
func Season(t time.Time) string {
	switch t.Month() {
	case time.November, time.December, time.January, time.February:
		return SeasonHigh
	case time.June, time.July, time.August:
		return SeasonLow
	default:
		return SeasonShoulder
	}
}

// DiscountRate returns the length-of-stay discount for a stay.
func DiscountRate(nights int) float64 {
	switch {
	case nights >= MonthlyNights:
		return MonthlyDiscount
	case nights >= WeeklyNights:
		return WeeklyDiscount
	default:
		return 0
	}
}

// GenerateHosts generates n hosts. One in five is a superhost, who
// responds faster and more reliably.
func GenerateHosts(s *datagen.Session, n int) ([]Host, error) {
	if err := datagen.RequireCount("host", n); err != nil {
		return nil, err
	}

	hosts := make([]Host, n)
	for i := range hosts {
		super := s.Chance(0.20)
		responseTime, rate := s.Exponential(8), s.ClampedNormal(85, 20, 0, 100)
		if super {
			responseTime, rate = s.Exponential(2), s.ClampedNormal(95, 10, 0, 100)
		}
		hosts[i] = Host{
			ID:                 datagen.ID("HOST", i+1, 5),
			Name:               s.Name(),
			HostSince:          s.DateBetween(-5*365, -182),
			Superhost:          super,
			ResponseTimeHours:  datagen.Round(responseTime, 2),
			ResponseRatePct:    datagen.Round(rate, 1),
			CancellationPolicy: hostPolicies.Pick(s.Faker),
		}
	}
	return hosts, nil
}

// GenerateGuests generates n guests who signed up within three years.
func GenerateGuests(s *datagen.Session, n int) ([]Guest, error) {
	if err := datagen.RequireCount("guest", n); err != nil {
		return nil, err
	}

	guests := make([]Guest, n)
	for i := range guests {
		guests[i] = Guest{
			ID:               datagen.ID("GUEST", i+1, 6),
			SignupDate:       s.DateBetween(-3*365, 0),
			Country:          guestCountries.Pick(s.Faker),
			PriorBookings:    s.Poisson(3),
			AvgReviewScore:   datagen.Round(s.ClampedNormal(4.5, 0.5, 1, 5), 2),
			CancelHistoryCnt: s.Poisson(0.5),
		}
	}
	return guests, nil
}

// GenerateProperties generates n listings owned by the given hosts. Base
// prices grow with bedrooms and amenities and carry a premium in Dubai.
func GenerateProperties(s *datagen.Session, n int, hostIDs []string) ([]Property, error) {
	if err := datagen.RequireCount("property", n); err != nil {
		return nil, err
	}
	if err := datagen.RequireKeys("host", hostIDs); err != nil {
		return nil, err
	}

	props := make([]Property, n)
	for i := range props {
		city := datagen.Choose(s.Faker, Cities)
		bedrooms := bedroomCounts.Pick(s.Faker)
		features := datagen.Sample(s.Faker, amenities, s.Int(3, 7))
		featuresJSON, err := json.Marshal(features)
		if err != nil {
			return nil, fmt.Errorf("failed to encode amenities: %w", err)
		}

		multiplier := 1.0
		if city == "Dubai" {
			multiplier = 1.5
		}
		base := multiplier * (50 + float64(bedrooms)*100 + float64(len(features))*20 + s.Exponential(100))
		deposit := 0.0
		if s.Chance(0.60) {
			deposit = base * 2
		}
		listed := s.DateBetween(-2*365, -30)

		props[i] = Property{
			ID:                 datagen.ID("PROP", i+1, 6),
			HostID:             datagen.Choose(s.Faker, hostIDs),
			City:               city,
			Neighborhood:       city + "_" + datagen.Choose(s.Faker, neighborhoods),
			PropertyType:       propertyTypes.Pick(s.Faker),
			RoomType:           roomTypes.Pick(s.Faker),
			Bedrooms:           bedrooms,
			Bathrooms:          float64(bedrooms)*0.8 + extraBaths.Pick(s.Faker),
			MaxGuests:          max(1, bedrooms*2+s.Int(0, 2)),
			AmenitiesJSON:      string(featuresJSON),
			BasePrice:          datagen.Round(base, 2),
			CleaningFee:        datagen.Round(base*0.15+s.Float64(20, 100), 2),
			SecurityDeposit:    datagen.Round(deposit, 2),
			MinimumNights:      minimumNights.Pick(s.Faker),
			MaximumNights:      maximumNights.Pick(s.Faker),
			InstantBook:        s.Chance(0.35),
			CancellationPolicy: listingPolicies.Pick(s.Faker),
			ListingDate:        listed,
			LastUpdated:        s.DatetimeBetween(listed.Sub(s.Now), 0),
		}
	}
	return props, nil
}

// GenerateBookings generates n reservations checking in between a year
// ago and three months ahead. Stays honour the listing's minimum nights.
// The nightly rate is the listing's base price, raised 30% in high season
// or 20% on weekend check-ins. Stays that have ended are completed unless
// cancelled; stays not yet ended cannot be completed.
func GenerateBookings(s *datagen.Session, n int, guestIDs []string, props []Property) ([]Booking, error) {
	if err := datagen.RequireCount("booking", n); err != nil {
		return nil, err
	}
	if err := datagen.RequireKeys("guest", guestIDs); err != nil {
		return nil, err
	}
	if len(props) == 0 {
		return nil, fmt.Errorf("%w: no properties to book", datagen.ErrInvalidArgument)
	}

	today := olap.Day(s.Now)
	bookings := make([]Booking, n)
	for i := range bookings {
		p := datagen.Choose(s.Faker, props)
		checkin := s.DateBetween(-365, 90)
		nights := max(stayLengths.Pick(s.Faker), p.MinimumNights)
		checkout := checkin.AddDate(0, 0, nights)

		status := bookingStatuses.Pick(s.Faker)
		switch {
		case status == StatusCancelled:
		case !checkout.After(today):
			status = StatusCompleted
		case status == StatusCompleted:
			status = StatusConfirmed
		}

		rate := p.BasePrice * s.Float64(0.9, 1.1)
		switch {
		case Season(checkin) == SeasonHigh:
			rate *= 1.3
		case checkin.Weekday() == time.Friday || checkin.Weekday() == time.Saturday:
			rate *= 1.2
		}
		rate = datagen.Round(rate, 2)
		subtotal := rate * float64(nights)
		discount := subtotal * DiscountRate(nights)
		hostFee := subtotal * HostFeeRate
		serviceFee := subtotal * ServiceFeeRate
		taxes := subtotal * TourismTaxRate

		var requests *string
		if s.Chance(0.30) {
			text := s.Sentence(s.Int(8, 30))
			requests = &text
		}

		bookings[i] = Booking{
			ID:              datagen.ID("BOOK", i+1, 7),
			GuestID:         datagen.Choose(s.Faker, guestIDs),
			PropertyID:      p.ID,
			Checkin:         checkin,
			Checkout:        checkout,
			Nights:          nights,
			GuestsCount:     s.Int(1, min(4, p.MaxGuests)),
			Status:          status,
			NightlyRate:     rate,
			TotalPrice:      datagen.Round(subtotal-discount+hostFee+serviceFee+taxes, 2),
			HostFee:         datagen.Round(hostFee, 2),
			ServiceFee:      datagen.Round(serviceFee, 2),
			Taxes:           datagen.Round(taxes, 2),
			Discount:        datagen.Round(discount, 2),
			Channel:         channels.Pick(s.Faker),
			SpecialRequests: requests,
		}
	}
	return bookings, nil
}

// GenerateReviews reviews about 60% of completed stays, each at most
// once, between one and fourteen days after checkout and never in the
// future. Category ratings stay within one star of the overall rating.
func GenerateReviews(s *datagen.Session, bookings []Booking) ([]Review, error) {
	if len(bookings) == 0 {
		return nil, fmt.Errorf("%w: no bookings to review", datagen.ErrInvalidArgument)
	}

	today := olap.Day(s.Now)
	var out []Review
	for _, b := range bookings {
		if b.Status != StatusCompleted || !s.Chance(0.60) {
			continue
		}
		date := b.Checkout.AddDate(0, 0, s.Int(1, 14))
		if date.After(today) {
			continue
		}
		overall := overallRatings.Pick(s.Faker)
		near := func() int { return datagen.ClampInt(overall+s.Int(-1, 1), 1, 5) }

		r := Review{
			ID:                  datagen.ID("REV", len(out)+1, 7),
			BookingID:           b.ID,
			ReviewerType:        "guest",
			OverallRating:       overall,
			CleanlinessRating:   near(),
			CommunicationRating: near(),
			CheckinRating:       near(),
			AccuracyRating:      near(),
			LocationRating:      near(),
			ValueRating:         near(),
			Text:                s.Sentence(s.Int(10, 40)),
			Date:                date,
		}
		if s.Chance(0.40) {
			text := s.Sentence(s.Int(6, 20))
			respDate := date.AddDate(0, 0, s.Int(0, 7))
			if respDate.After(today) {
				respDate = today
			}
			r.ResponseText, r.ResponseDate = &text, &respDate
		}
		out = append(out, r)
	}
	return out, nil
}

// Generate builds the full entity set and its daily market rollup.
func Generate(s *datagen.Session, c Counts) (*schema.Dataset, error) {
	hosts, err := GenerateHosts(s, c.Hosts)
	if err != nil {
		return nil, fmt.Errorf("failed to generate hosts: %w", err)
	}
	guests, err := GenerateGuests(s, c.Guests)
	if err != nil {
		return nil, fmt.Errorf("failed to generate guests: %w", err)
	}

	hostIDs := make([]string, len(hosts))
	for i, h := range hosts {
		hostIDs[i] = h.ID
	}
	props, err := GenerateProperties(s, c.Properties, hostIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to generate properties: %w", err)
	}

	guestIDs := make([]string, len(guests))
	for i, g := range guests {
		guestIDs[i] = g.ID
	}
	bookings, err := GenerateBookings(s, c.Bookings, guestIDs, props)
	if err != nil {
		return nil, fmt.Errorf("failed to generate bookings: %w", err)
	}
	reviews, err := GenerateReviews(s, bookings)
	if err != nil {
		return nil, fmt.Errorf("failed to generate reviews: %w", err)
	}

	ds := &schema.Dataset{}
	ds.Add(Hosts, schema.Rows(hosts))
	ds.Add(Guests, schema.Rows(guests))
	ds.Add(Properties, schema.Rows(props))
	ds.Add(Bookings, schema.Rows(bookings))
	ds.Add(Reviews, schema.Rows(reviews))
	ds.Add(MarketDailyAgg, schema.Rows(RollupMarketDays(hosts, props, bookings, reviews)))
	return ds, nil
}
