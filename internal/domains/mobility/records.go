package mobility

import "time"

// Driver is one uber_drivers row.
type Driver struct {
	ID               string
	OnboardDate      time.Time
	HomeCity         string
	LicenseExpiry    time.Time
	VehicleType      string
	VehicleYear      int
	RatingAvg        float64
	TripsCompleted   int
	AcceptanceRate   float64
	CancellationRate float64
	EarningsYTD      float64
	Status           string
}

// Values implements schema.Record.
func (d Driver) Values() []any {
	return []any{d.ID, d.OnboardDate, d.HomeCity, d.LicenseExpiry, d.VehicleType, d.VehicleYear,
		d.RatingAvg, d.TripsCompleted, d.AcceptanceRate, d.CancellationRate, d.EarningsYTD, d.Status}
}

// Rider is one uber_riders row.
type Rider struct {
	ID            string
	SignupDate    time.Time
	HomeCity      string
	DeviceOS      string
	WalletBalance float64
	RatingAvg     float64
}

// Values implements schema.Record.
func (r Rider) Values() []any {
	return []any{r.ID, r.SignupDate, r.HomeCity, r.DeviceOS, r.WalletBalance, r.RatingAvg}
}

// Ride is one uber_rides row. Pickup and dropoff times and ratings are
// only set for completed rides.
type Ride struct {
	ID              string
	RiderID         string
	DriverID        string
	City            string
	Weather         string
	RequestTS       time.Time
	AcceptTS        time.Time
	PickupTS        *time.Time
	DropoffTS       *time.Time
	PickupLat       float64
	PickupLng       float64
	DropoffLat      float64
	DropoffLng      float64
	DistanceKM      float64
	DurationSec     int
	FareBase        float64
	SurgeMultiplier float64
	Tips            float64
	Tolls           float64
	FinalFare       float64
	RatingRider     *int
	RatingDriver    *int
	Status          string
}

// Values implements schema.Record.
func (r Ride) Values() []any {
	return []any{r.ID, r.RiderID, r.DriverID, r.City, r.Weather, r.RequestTS, r.AcceptTS, r.PickupTS,
		r.DropoffTS, r.PickupLat, r.PickupLng, r.DropoffLat, r.DropoffLng, r.DistanceKM, r.DurationSec,
		r.FareBase, r.SurgeMultiplier, r.Tips, r.Tolls, r.FinalFare, r.RatingRider, r.RatingDriver, r.Status}
}

// Completed reports whether the ride reached its destination.
func (r Ride) Completed() bool {
	return r.Status == StatusCompleted
}

// RideEvent is one uber_ride_events row.
type RideEvent struct {
	ID            string
	RideID        string
	EventType     string
	Timestamp     time.Time
	Lat           float64
	Lng           float64
	SurgeZone     string
	ETASeconds    int
	DriverHeading int
	SpeedKMH      float64
	BatteryLevel  int
	AppVersion    string
	NetworkType   string
}

// Values implements schema.Record.
func (e RideEvent) Values() []any {
	return []any{e.ID, e.RideID, e.EventType, e.Timestamp, e.Lat, e.Lng, e.SurgeZone, e.ETASeconds,
		e.DriverHeading, e.SpeedKMH, e.BatteryLevel, e.AppVersion, e.NetworkType}
}

// CityHour is one uber_city_hourly_agg row.
type CityHour struct {
	Hour                    time.Time
	City                    string
	Weather                 string
	TotalRequests           int
	FulfilledRides          int
	AvgWaitMinutes          float64
	AvgFare                 float64
	AvgRating               *float64
	SurgedRides             int
	CancellationRate        float64
	ActiveDrivers           int
	CompletedTripsPerDriver float64
}

// Values implements schema.Record.
func (c CityHour) Values() []any {
	return []any{c.Hour, c.City, c.Weather, c.TotalRequests, c.FulfilledRides, c.AvgWaitMinutes,
		c.AvgFare, c.AvgRating, c.SurgedRides, c.CancellationRate, c.ActiveDrivers, c.CompletedTripsPerDriver}
}

// CityRevenue is one agg_uber_daily_revenue row.
type CityRevenue struct {
	Date             time.Time
	City             string
	TotalRides       int
	CompletedRides   int
	GrossRevenue     float64
	AvgFare          float64
	CancellationRate float64
}

// Values implements schema.Record.
func (c CityRevenue) Values() []any {
	return []any{c.Date, c.City, c.TotalRides, c.CompletedRides, c.GrossRevenue, c.AvgFare, c.CancellationRate}
}

// StagedRide is one staging_uber_rides row.
type StagedRide struct {
	RideID          string
	DriverID        string
	RiderID         string
	PickupTS        time.Time
	DropoffTS       time.Time
	PickupCoord     string
	DropoffCoord    string
	DistanceKM      float64
	Fare            float64
	FareBase        float64
	FareTaxes       float64
	Status          string
	IngestLatencyMS int
	BatchID         string
	ProcessedTS     time.Time
}

// Values implements schema.Record.
func (r StagedRide) Values() []any {
	return []any{r.RideID, r.DriverID, r.RiderID, r.PickupTS, r.DropoffTS, r.PickupCoord, r.DropoffCoord,
		r.DistanceKM, r.Fare, r.FareBase, r.FareTaxes, r.Status, r.IngestLatencyMS, r.BatchID, r.ProcessedTS}
}

// RideFeatures is one features_uber_ride row.
type RideFeatures struct {
	RideID           string
	PickupHour       int
	IsPeak           int
	DriverAcceptRate float64
	PredictedFare    float64
	LabelCancelled   int
}

// Values implements schema.Record.
func (f RideFeatures) Values() []any {
	return []any{f.RideID, f.PickupHour, f.IsPeak, f.DriverAcceptRate, f.PredictedFare, f.LabelCancelled}
}
