package mobility

import (
	"fmt"
	"math"
	"time"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/datagen/profiles"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// City is a service area and the centre its coordinates scatter around.
type City struct {
	Name string
	Lat  float64
	Lng  float64
}

// Cities are the service areas rides take place in.
var Cities = []City{
	{"Dubai", 25.2048, 55.2708},
	{"Riyadh", 24.7136, 46.6753},
	{"Cairo", 30.0444, 31.2357},
	{"Doha", 25.2854, 51.5310},
	{"Kuwait City", 29.3759, 47.9774},
	{"Manama", 26.2285, 50.5860},
	{"Muscat", 23.5880, 58.3829},
	{"Abu Dhabi", 24.4539, 54.3773},
}

// Reference data
var (
	vehicleTypes = datagen.MustWeighted(
		[]string{"Economy", "Comfort", "Premium", "SUV"},
		[]float64{0.60, 0.25, 0.10, 0.05})
	driverStatuses = datagen.MustWeighted(
		[]string{"Active", "Inactive", "Suspended"},
		[]float64{0.80, 0.15, 0.05})
	deviceOS = datagen.MustWeighted(
		[]string{"iOS", "Android"},
		[]float64{0.45, 0.55})

	weathers = datagen.MustWeighted(
		[]string{"Clear", "Cloudy", "Rain", "Sandstorm"},
		[]float64{0.70, 0.15, 0.10, 0.05})
	rideStatuses = datagen.MustWeighted(
		[]string{StatusCompleted, StatusCancelledRider, StatusCancelledDriver, StatusNoShow},
		[]float64{0.85, 0.08, 0.05, 0.02})
	surges = datagen.MustWeighted(
		[]float64{1.0, 1.2, 1.5, 2.0},
		[]float64{0.50, 0.30, 0.15, 0.05})
	tolls = datagen.MustWeighted(
		[]float64{0, 4, 8},
		[]float64{0.70, 0.20, 0.10})
	riderRatings = datagen.MustWeighted(
		[]int{3, 4, 5},
		[]float64{0.05, 0.25, 0.70})
	driverRatings = datagen.MustWeighted(
		[]int{3, 4, 5},
		[]float64{0.05, 0.20, 0.75})
	networks = datagen.MustWeighted(
		[]string{"4G", "5G", "WiFi"},
		[]float64{0.50, 0.40, 0.10})

	commute = profiles.MustGet("commute")
)

// Ride statuses.
const (
	StatusCompleted       = "completed"
	StatusCancelledRider  = "cancelled_rider"
	StatusCancelledDriver = "cancelled_driver"
	StatusNoShow          = "no_show"
)

// Ride event types.
const (
	EventRequested = "requested"
	EventAccepted  = "accepted"
	EventArrived   = "arrived"
	EventStarted   = "started"
	EventCompleted = "completed"
	EventCancelled = "cancelled"
)

// Fare components in AED.
const (
	BaseFare      = 5.0
	PerKM         = 2.5
	PerMinute     = 0.5
	surgeHourMask = 1<<7 | 1<<8 | 1<<17 | 1<<18 | 1<<19
)

// Counts are the row counts of one bigdata run. Events follow from the
// rides.
type Counts struct {
	Drivers int
	Riders  int
	Rides   int
}

var baseCounts = Counts{Drivers: 300, Riders: 1000, Rides: 3000}

// CountsFor returns the row counts at scale.
func CountsFor(scale datagen.Scale) Counts {
	return Counts{
		Drivers: scale.Apply(baseCounts.Drivers),
		Riders:  scale.Apply(baseCounts.Riders),
		Rides:   scale.Apply(baseCounts.Rides),
	}
}

// SurgeHour reports whether rides requested in the hour may be surged.
func SurgeHour(hour int) bool {
	return hour >= 0 && hour < 24 && surgeHourMask&(1<<hour) != 0
}

// Fare returns the base fare of a trip before surge, tips and tolls.
func Fare(distanceKM float64, durationSec int) float64 {
	return BaseFare + distanceKM*PerKM + float64(durationSec)/60*PerMinute
}

// GenerateDrivers generates n drivers onboarded between two years and a
// month ago.
func GenerateDrivers(s *datagen.Session, n int) ([]Driver, error) {
	if err := datagen.RequireCount("driver", n); err != nil {
		return nil, err
	}

	drivers := make([]Driver, n)
	for i := range drivers {
		drivers[i] = Driver{
			ID:               datagen.ID("DRV", i+1, 6),
			OnboardDate:      s.DateBetween(-2*365, -30),
			HomeCity:         datagen.Choose(s.Faker, Cities).Name,
			LicenseExpiry:    s.DateBetween(0, 3*365),
			VehicleType:      vehicleTypes.Pick(s.Faker),
			VehicleYear:      s.Int(2015, 2023),
			RatingAvg:        datagen.Round(s.ClampedNormal(4.3, 0.4, 1, 5), 2),
			TripsCompleted:   s.Poisson(500),
			AcceptanceRate:   datagen.Round(s.ClampedNormal(85, 15, 0, 100), 1),
			CancellationRate: datagen.Round(math.Min(s.Exponential(5), 30), 1),
			EarningsYTD:      datagen.Round(s.Lognormal(9, 0.8), 2),
			Status:           driverStatuses.Pick(s.Faker),
		}
	}
	return drivers, nil
}

// GenerateRiders generates n riders who signed up within two years.
func GenerateRiders(s *datagen.Session, n int) ([]Rider, error) {
	if err := datagen.RequireCount("rider", n); err != nil {
		return nil, err
	}

	riders := make([]Rider, n)
	for i := range riders {
		riders[i] = Rider{
			ID:            datagen.ID("RDR", i+1, 6),
			SignupDate:    s.DateBetween(-2*365, 0),
			HomeCity:      datagen.Choose(s.Faker, Cities).Name,
			DeviceOS:      deviceOS.Pick(s.Faker),
			WalletBalance: datagen.Round(s.Exponential(100), 2),
			RatingAvg:     datagen.Round(s.ClampedNormal(4.7, 0.3, 1, 5), 2),
		}
	}
	return riders, nil
}

// GenerateRides generates n rides requested over the last three months
// with hours following the commute curve. Only completed rides carry
// pickup and dropoff times, tips and ratings. Rides requested in the
// morning and evening peaks may be surged.
func GenerateRides(s *datagen.Session, n int, riderIDs, driverIDs []string) ([]Ride, error) {
	if err := datagen.RequireCount("ride", n); err != nil {
		return nil, err
	}
	if err := datagen.RequireKeys("rider", riderIDs); err != nil {
		return nil, err
	}
	if err := datagen.RequireKeys("driver", driverIDs); err != nil {
		return nil, err
	}

	rides := make([]Ride, n)
	for i := range rides {
		city := datagen.Choose(s.Faker, Cities)
		request := s.SeasonalTime(commute, -90, 0)
		accept := request.Add(time.Duration(1+s.Exponential(120)) * time.Second)

		distance := datagen.Round(math.Max(0.5, s.Exponential(8)), 2)
		duration := int(distance*180 + s.Exponential(300))
		pickupLat := city.Lat + s.Normal(0, 0.1)
		pickupLng := city.Lng + s.Normal(0, 0.1)
		// One degree is roughly 111 km.
		angle := s.Float64(0, 2*math.Pi)
		dropoffLat := pickupLat + distance/111*math.Cos(angle)
		dropoffLng := pickupLng + distance/111*math.Sin(angle)

		surge := 1.0
		if SurgeHour(request.Hour()) {
			surge = surges.Pick(s.Faker)
		}
		base := datagen.Round(Fare(distance, duration), 2)
		toll := tolls.Pick(s.Faker)
		status := rideStatuses.Pick(s.Faker)

		r := Ride{
			ID:              datagen.ID("RIDE", i+1, 8),
			RiderID:         datagen.Choose(s.Faker, riderIDs),
			DriverID:        datagen.Choose(s.Faker, driverIDs),
			City:            city.Name,
			Weather:         weathers.Pick(s.Faker),
			RequestTS:       request,
			AcceptTS:        accept,
			PickupLat:       datagen.Round(pickupLat, 6),
			PickupLng:       datagen.Round(pickupLng, 6),
			DropoffLat:      datagen.Round(dropoffLat, 6),
			DropoffLng:      datagen.Round(dropoffLng, 6),
			DistanceKM:      distance,
			DurationSec:     duration,
			FareBase:        base,
			SurgeMultiplier: surge,
			Tolls:           toll,
			Status:          status,
		}
		if status == StatusCompleted {
			pickup := accept.Add(time.Duration(1+s.Exponential(300)) * time.Second)
			dropoff := pickup.Add(time.Duration(duration) * time.Second)
			r.PickupTS, r.DropoffTS = &pickup, &dropoff
			if s.Chance(0.25) {
				r.Tips = datagen.Round(s.Exponential(5), 2)
			}
			if s.Chance(0.80) {
				v := riderRatings.Pick(s.Faker)
				r.RatingRider = &v
			}
			if s.Chance(0.85) {
				v := driverRatings.Pick(s.Faker)
				r.RatingDriver = &v
			}
			r.FinalFare = datagen.Round(base*surge+r.Tips+toll, 2)
		}
		rides[i] = r
	}
	return rides, nil
}

// GenerateEvents generates the telemetry trail of each ride: the full
// lifecycle for completed rides, a request and a cancellation otherwise.
func GenerateEvents(s *datagen.Session, rides []Ride) ([]RideEvent, error) {
	if len(rides) == 0 {
		return nil, fmt.Errorf("%w: no rides to trace", datagen.ErrInvalidArgument)
	}

	var out []RideEvent
	for _, r := range rides {
		type step struct {
			kind string
			at   time.Time
			lat  float64
			lng  float64
		}
		var steps []step
		if r.Completed() {
			steps = []step{
				{EventRequested, r.RequestTS, r.PickupLat, r.PickupLng},
				{EventAccepted, r.AcceptTS, r.PickupLat, r.PickupLng},
				{EventArrived, *r.PickupTS, r.PickupLat, r.PickupLng},
				{EventStarted, r.PickupTS.Add(time.Duration(s.Int(10, 60)) * time.Second), r.PickupLat, r.PickupLng},
				{EventCompleted, *r.DropoffTS, r.DropoffLat, r.DropoffLng},
			}
		} else {
			steps = []step{
				{EventRequested, r.RequestTS, r.PickupLat, r.PickupLng},
				{EventCancelled, r.AcceptTS.Add(time.Duration(s.Int(10, 300)) * time.Second), r.PickupLat, r.PickupLng},
			}
		}

		app := s.AppVersion()
		battery := s.Int(30, 100)
		for _, st := range steps {
			speed := 0.0
			if st.kind == EventStarted || st.kind == EventCompleted {
				speed = datagen.Round(s.Float64(0, 80), 1)
			}
			eta := 0
			if st.kind == EventRequested || st.kind == EventAccepted {
				eta = s.Int(60, 900)
			}
			out = append(out, RideEvent{
				ID:            datagen.ID("REVT", len(out)+1, 9),
				RideID:        r.ID,
				EventType:     st.kind,
				Timestamp:     st.at.Add(time.Duration(s.Int(0, 999)) * time.Millisecond),
				Lat:           datagen.Round(st.lat, 6),
				Lng:           datagen.Round(st.lng, 6),
				SurgeZone:     fmt.Sprintf("%s-Z%d", r.City, s.Int(1, 5)),
				ETASeconds:    eta,
				DriverHeading: s.Int(0, 359),
				SpeedKMH:      speed,
				BatteryLevel:  datagen.ClampInt(battery, 10, 100),
				AppVersion:    app,
				NetworkType:   networks.Pick(s.Faker),
			})
			battery -= s.Int(0, 3)
		}
	}
	return out, nil
}

// Generate builds the full entity set and its hourly city rollup.
func Generate(s *datagen.Session, c Counts) (*schema.Dataset, error) {
	drivers, err := GenerateDrivers(s, c.Drivers)
	if err != nil {
		return nil, fmt.Errorf("failed to generate drivers: %w", err)
	}
	riders, err := GenerateRiders(s, c.Riders)
	if err != nil {
		return nil, fmt.Errorf("failed to generate riders: %w", err)
	}

	driverIDs := make([]string, len(drivers))
	for i, d := range drivers {
		driverIDs[i] = d.ID
	}
	riderIDs := make([]string, len(riders))
	for i, r := range riders {
		riderIDs[i] = r.ID
	}
	rides, err := GenerateRides(s, c.Rides, riderIDs, driverIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to generate rides: %w", err)
	}
	events, err := GenerateEvents(s, rides)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ride events: %w", err)
	}

	ds := &schema.Dataset{}
	ds.Add(Drivers, schema.Rows(drivers))
	ds.Add(Riders, schema.Rows(riders))
	ds.Add(Rides, schema.Rows(rides))
	ds.Add(RideEvents, schema.Rows(events))
	ds.Add(CityHourlyAgg, schema.Rows(RollupCityHours(rides)))
	return ds, nil
}
