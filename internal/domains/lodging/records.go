package lodging

import "time"

// Host is one airbnb_hosts row.
type Host struct {
	ID                 string
	Name               string
	HostSince          time.Time
	Superhost          bool
	ResponseTimeHours  float64
	ResponseRatePct    float64
	CancellationPolicy string
}

// Values implements schema.Record.
func (h Host) Values() []any {
	return []any{h.ID, h.Name, h.HostSince, h.Superhost, h.ResponseTimeHours, h.ResponseRatePct, h.CancellationPolicy}
}

// Guest is one airbnb_guests row.
type Guest struct {
	ID               string
	SignupDate       time.Time
	Country          string
	PriorBookings    int
	AvgReviewScore   float64
	CancelHistoryCnt int
}

// Values implements schema.Record.
func (g Guest) Values() []any {
	return []any{g.ID, g.SignupDate, g.Country, g.PriorBookings, g.AvgReviewScore, g.CancelHistoryCnt}
}

// Property is one airbnb_properties row.
type Property struct {
	ID                 string
	HostID             string
	City               string
	Neighborhood       string
	PropertyType       string
	RoomType           string
	Bedrooms           int
	Bathrooms          float64
	MaxGuests          int
	AmenitiesJSON      string
	BasePrice          float64
	CleaningFee        float64
	SecurityDeposit    float64
	MinimumNights      int
	MaximumNights      int
	InstantBook        bool
	CancellationPolicy string
	ListingDate        time.Time
	LastUpdated        time.Time
}

// Values implements schema.Record.
func (p Property) Values() []any {
	return []any{p.ID, p.HostID, p.City, p.Neighborhood, p.PropertyType, p.RoomType, p.Bedrooms,
		p.Bathrooms, p.MaxGuests, p.AmenitiesJSON, p.BasePrice, p.CleaningFee, p.SecurityDeposit,
		p.MinimumNights, p.MaximumNights, p.InstantBook, p.CancellationPolicy, p.ListingDate, p.LastUpdated}
}

// Booking is one airbnb_bookings row.
type Booking struct {
	ID              string
	GuestID         string
	PropertyID      string
	Checkin         time.Time
	Checkout        time.Time
	Nights          int
	GuestsCount     int
	Status          string
	NightlyRate     float64
	TotalPrice      float64
	HostFee         float64
	ServiceFee      float64
	Taxes           float64
	Discount        float64
	Channel         string
	SpecialRequests *string
}

// Values implements schema.Record.
func (b Booking) Values() []any {
	return []any{b.ID, b.GuestID, b.PropertyID, b.Checkin, b.Checkout, b.Nights, b.GuestsCount,
		b.Status, b.NightlyRate, b.TotalPrice, b.HostFee, b.ServiceFee, b.Taxes, b.Discount,
		b.Channel, b.SpecialRequests}
}

// Stay returns the accommodation revenue: nightly rate over the stay
// less discounts, before fees and taxes.
func (b Booking) Stay() float64 {
	return b.NightlyRate*float64(b.Nights) - b.Discount
}

// Review is one airbnb_reviews row.
type Review struct {
	ID                  string
	BookingID           string
	ReviewerType        string
	OverallRating       int
	CleanlinessRating   int
	CommunicationRating int
	CheckinRating       int
	AccuracyRating      int
	LocationRating      int
	ValueRating         int
	Text                string
	Date                time.Time
	ResponseText        *string
	ResponseDate        *time.Time
}

// Values implements schema.Record.
func (r Review) Values() []any {
	return []any{r.ID, r.BookingID, r.ReviewerType, r.OverallRating, r.CleanlinessRating,
		r.CommunicationRating, r.CheckinRating, r.AccuracyRating, r.LocationRating, r.ValueRating,
		r.Text, r.Date, r.ResponseText, r.ResponseDate}
}

// MarketDay is one airbnb_market_daily_agg row.
type MarketDay struct {
	Date                  time.Time
	City                  string
	PropertyType          string
	Season                string
	AvailableListings     int
	BookedNights          int
	OccupancyRate         float64
	AvgDailyRate          float64
	RevenuePerAvailable   float64
	AvgLengthOfStay       float64
	NewListings           int
	CancelledBookingsRate float64
	HostResponseRate      float64
	GuestSatisfaction     *float64
}

// Values implements schema.Record.
func (m MarketDay) Values() []any {
	return []any{m.Date, m.City, m.PropertyType, m.Season, m.AvailableListings, m.BookedNights,
		m.OccupancyRate, m.AvgDailyRate, m.RevenuePerAvailable, m.AvgLengthOfStay, m.NewListings,
		m.CancelledBookingsRate, m.HostResponseRate, m.GuestSatisfaction}
}

// CityOccupancy is one agg_airbnb_occupancy row.
type CityOccupancy struct {
	Date            time.Time
	City            string
	OccupiedNights  int
	AvailableNights int
	OccupancyRate   float64
	Revenue         float64
	AvgDailyRate    float64
}

// Values implements schema.Record.
func (c CityOccupancy) Values() []any {
	return []any{c.Date, c.City, c.OccupiedNights, c.AvailableNights, c.OccupancyRate, c.Revenue, c.AvgDailyRate}
}

// StagedReservation is one staging_airbnb_reservations row.
type StagedReservation struct {
	BookingID    string
	HostID       string
	GuestID      string
	PropertyID   string
	Checkin      time.Time
	Checkout     time.Time
	Nights       int
	Price        float64
	Status       string
	PropertyType string
	City         string
	BatchID      string
	ProcessedTS  time.Time
}

// Values implements schema.Record.
func (r StagedReservation) Values() []any {
	return []any{r.BookingID, r.HostID, r.GuestID, r.PropertyID, r.Checkin, r.Checkout, r.Nights,
		r.Price, r.Status, r.PropertyType, r.City, r.BatchID, r.ProcessedTS}
}

// BookingFeatures is one features_airbnb_booking row.
type BookingFeatures struct {
	BookingID              string
	HostResponseTimeH      float64
	GuestPastCancellations int
	PriceSensitivity       float64
	LabelCancelled         int
}

// Values implements schema.Record.
func (f BookingFeatures) Values() []any {
	return []any{f.BookingID, f.HostResponseTimeH, f.GuestPastCancellations, f.PriceSensitivity, f.LabelCancelled}
}
