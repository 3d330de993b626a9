package mobility

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/processing"
	"github.com/pgEdge/pgedge-datalab/internal/testutil"
)

var anchor = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newSession() *datagen.Session {
	return datagen.NewSession(11, anchor)
}

func TestGenerate(t *testing.T) {
	ds, err := Generate(newSession(), Counts{Drivers: 40, Riders: 120, Rides: 800})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	testutil.CheckDataset(t, ds)

	if n := testutil.Rows(ds, "uber_rides"); n != 800 {
		t.Errorf("rides = %d, want 800", n)
	}
	if n := testutil.Rows(ds, "uber_ride_events"); n < 2*800 || n > 5*800 {
		t.Errorf("ride events = %d, want between %d and %d", n, 2*800, 5*800)
	}

	testutil.InRange(t, ds, "uber_drivers", "rating_avg", 1, 5)
	testutil.InRange(t, ds, "uber_drivers", "acceptance_rate", 0, 100)
	testutil.InRange(t, ds, "uber_drivers", "cancellation_rate", 0, 30)
	testutil.InRange(t, ds, "uber_riders", "rating_avg", 1, 5)
	testutil.InRange(t, ds, "uber_rides", "surge_multiplier", 1, 2)
	testutil.InRange(t, ds, "uber_rides", "rating_driver", 3, 5)
	testutil.InRange(t, ds, "uber_ride_events", "driver_heading", 0, 359)
	testutil.InRange(t, ds, "uber_ride_events", "battery_level", 10, 100)
	testutil.InRange(t, ds, "uber_city_hourly_agg", "cancellation_rate", 0, 1)
}

func TestRideInvariants(t *testing.T) {
	s := newSession()
	rides, err := GenerateRides(s, 1000, []string{"RDR_000001", "RDR_000002"}, []string{"DRV_000001"})
	if err != nil {
		t.Fatalf("GenerateRides failed: %v", err)
	}

	for _, r := range rides {
		if !r.RequestTS.Before(anchor) || r.RequestTS.Before(anchor.AddDate(0, 0, -91)) {
			t.Errorf("ride %s requested at %v, outside the last three months", r.ID, r.RequestTS)
		}
		if r.AcceptTS.Before(r.RequestTS) {
			t.Errorf("ride %s accepted before it was requested", r.ID)
		}
		if r.SurgeMultiplier > 1 && !SurgeHour(r.RequestTS.Hour()) {
			t.Errorf("ride %s surged at %d:00", r.ID, r.RequestTS.Hour())
		}
		if !r.Completed() {
			if r.PickupTS != nil || r.DropoffTS != nil || r.RatingRider != nil || r.RatingDriver != nil {
				t.Errorf("%s ride %s has trip details", r.Status, r.ID)
			}
			if r.Tips != 0 || r.FinalFare != 0 {
				t.Errorf("%s ride %s charged %.2f", r.Status, r.ID, r.FinalFare)
			}
			continue
		}
		if r.PickupTS == nil || r.DropoffTS == nil {
			t.Fatalf("completed ride %s lacks pickup or dropoff", r.ID)
		}
		if r.PickupTS.Before(r.AcceptTS) || !r.DropoffTS.After(*r.PickupTS) {
			t.Errorf("ride %s timestamps out of order", r.ID)
		}
		want := datagen.Round(r.FareBase*r.SurgeMultiplier+r.Tips+r.Tolls, 2)
		if r.FinalFare != want {
			t.Errorf("ride %s final fare = %.2f, want %.2f", r.ID, r.FinalFare, want)
		}
	}
}

func TestEventTrail(t *testing.T) {
	s := newSession()
	rides, _ := GenerateRides(s, 200, []string{"RDR_000001"}, []string{"DRV_000001"})
	events, err := GenerateEvents(s, rides)
	if err != nil {
		t.Fatalf("GenerateEvents failed: %v", err)
	}

	trails := make(map[string][]RideEvent)
	for _, e := range events {
		trails[e.RideID] = append(trails[e.RideID], e)
	}
	for _, r := range rides {
		trail := trails[r.ID]
		want := []string{EventRequested, EventCancelled}
		if r.Completed() {
			want = []string{EventRequested, EventAccepted, EventArrived, EventStarted, EventCompleted}
		}
		if len(trail) != len(want) {
			t.Fatalf("ride %s has %d events, want %d", r.ID, len(trail), len(want))
		}
		for i, e := range trail {
			if e.EventType != want[i] {
				t.Errorf("ride %s event %d = %s, want %s", r.ID, i, e.EventType, want[i])
			}
			if i > 0 && e.Timestamp.Before(trail[i-1].Timestamp) {
				t.Errorf("ride %s event %s precedes %s", r.ID, e.EventType, trail[i-1].EventType)
			}
		}
	}
}

func TestRollupCityHours(t *testing.T) {
	rides, _ := GenerateRides(newSession(), 600, []string{"RDR_000001"}, []string{"DRV_000001", "DRV_000002"})

	completed := 0
	for _, r := range rides {
		if r.Completed() {
			completed++
		}
	}
	requests, fulfilled := 0, 0
	for _, c := range RollupCityHours(rides) {
		requests += c.TotalRequests
		fulfilled += c.FulfilledRides
		if c.FulfilledRides > c.TotalRequests {
			t.Errorf("bucket %v/%s fulfilled %d of %d", c.Hour, c.City, c.FulfilledRides, c.TotalRequests)
		}
		if c.ActiveDrivers > 2 {
			t.Errorf("bucket %v/%s has %d drivers, want at most 2", c.Hour, c.City, c.ActiveDrivers)
		}
		if c.FulfilledRides == 0 && c.AvgRating != nil {
			t.Errorf("bucket %v/%s rated without completed rides", c.Hour, c.City)
		}
	}
	if requests != len(rides) || fulfilled != completed {
		t.Errorf("rollup = %d requests / %d fulfilled, want %d / %d", requests, fulfilled, len(rides), completed)
	}
}

func TestSampledRevenue(t *testing.T) {
	rows, err := SampleDailyRevenue(newSession(), 10, RevenueCities)
	if err != nil {
		t.Fatalf("SampleDailyRevenue failed: %v", err)
	}
	if len(rows) != 10*len(RevenueCities) {
		t.Fatalf("got %d rows, want %d", len(rows), 10*len(RevenueCities))
	}
	for _, r := range rows {
		if r.CompletedRides > r.TotalRides || r.TotalRides < 500 {
			t.Errorf("%v/%s: %d of %d rides completed", r.Date, r.City, r.CompletedRides, r.TotalRides)
		}
		if r.CancellationRate < 0.01 || r.CancellationRate > 0.16 {
			t.Errorf("%v/%s cancellation rate %.4f out of range", r.Date, r.City, r.CancellationRate)
		}
		if !r.Date.Before(anchor) {
			t.Errorf("sampled date %v is not in the past", r.Date)
		}
	}
}

func TestStageRides(t *testing.T) {
	s := newSession()
	jobs, err := processing.GenerateJobs(s, processing.Uber, 5)
	if err != nil {
		t.Fatalf("GenerateJobs failed: %v", err)
	}
	batches := make(map[string]bool)
	for _, id := range processing.BatchIDs(jobs) {
		batches[id] = true
	}

	rides, err := StageRides(s, 300, jobs)
	if err != nil {
		t.Fatalf("StageRides failed: %v", err)
	}
	for _, r := range rides {
		if !batches[r.BatchID] {
			t.Errorf("ride %s references unknown batch %s", r.RideID, r.BatchID)
		}
		if processing.BatchID(r.PickupTS) != r.BatchID {
			t.Errorf("ride %s picked up outside its batch hour", r.RideID)
		}
		if r.FareBase < 10 || r.Fare != datagen.Round(r.FareBase+r.FareTaxes, 2) {
			t.Errorf("ride %s fare %.2f = base %.2f + taxes %.2f", r.RideID, r.Fare, r.FareBase, r.FareTaxes)
		}
		var c coord
		if err := json.Unmarshal([]byte(r.PickupCoord), &c); err != nil || c.Lat == 0 {
			t.Errorf("ride %s pickup %q is not a coordinate: %v", r.RideID, r.PickupCoord, err)
		}
	}
}

func TestPeakFeatures(t *testing.T) {
	rows, err := RideFeatureRows(newSession(), 200)
	if err != nil {
		t.Fatalf("RideFeatureRows failed: %v", err)
	}
	for _, r := range rows {
		if (r.IsPeak == 1) != PeakHour(r.PickupHour) {
			t.Errorf("ride %s hour %d is_peak = %d", r.RideID, r.PickupHour, r.IsPeak)
		}
	}
}

func TestUnits(t *testing.T) {
	for _, u := range Units() {
		t.Run(u.Module(), func(t *testing.T) {
			ds, err := u.Generate(newSession().Fork(u.Module()), datagen.Small)
			if err != nil {
				t.Fatalf("Generate failed: %v", err)
			}
			testutil.CheckDataset(t, ds)
			if testutil.Rows(ds, u.Probe().Name) == 0 {
				t.Errorf("probe table %s is empty", u.Probe().Name)
			}
		})
	}
}

func TestInvalidArguments(t *testing.T) {
	s := newSession()
	tests := []struct {
		name string
		fn   func() error
	}{
		{"zero drivers", func() error { _, err := GenerateDrivers(s, 0); return err }},
		{"negative riders", func() error { _, err := GenerateRiders(s, -1); return err }},
		{"no riders", func() error { _, err := GenerateRides(s, 5, nil, []string{"DRV_000001"}); return err }},
		{"no drivers", func() error { _, err := GenerateRides(s, 5, []string{"RDR_000001"}, nil); return err }},
		{"no rides", func() error { _, err := GenerateEvents(s, nil); return err }},
		{"no cities", func() error { _, err := SampleDailyRevenue(s, 3, nil); return err }},
		{"no staging batches", func() error { _, err := StageRides(s, 5, nil); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, datagen.ErrInvalidArgument) {
				t.Errorf("err = %v, want ErrInvalidArgument", err)
			}
		})
	}
}

func TestGenerateOLTP(t *testing.T) {
	ds, err := GenerateOLTP(newSession(), OLTPCountsFor(datagen.Small))
	if err != nil {
		t.Fatalf("GenerateOLTP failed: %v", err)
	}
	testutil.CheckDataset(t, ds)

	for table, want := range map[string]int{
		"uber_users":    100,
		"uber_drivers":  50,
		"uber_rides":    200,
		"uber_payments": 200,
	} {
		if n := testutil.Rows(ds, table); n != want {
			t.Errorf("%s = %d rows, want %d", table, n, want)
		}
	}
	testutil.InRange(t, ds, "uber_drivers", "rating", 4, 5)
	testutil.InRange(t, ds, "uber_payments", "amount", 10, 100)

	rides, _ := ds.Get("uber_rides")
	status := make(map[string]string, len(rides.Rows))
	for _, r := range rides.Rows {
		trip := r.(Trip)
		status[trip.ID] = trip.Status
	}
	payments, _ := ds.Get("uber_payments")
	charged := make(map[string]bool)
	for _, r := range payments.Rows {
		p := r.(Payment)
		if charged[p.RideID] {
			t.Errorf("ride %s charged twice", p.RideID)
		}
		charged[p.RideID] = true

		switch status[p.RideID] {
		case TripCancelled:
			if p.Status != PaymentFailed {
				t.Errorf("cancelled ride %s has payment %s", p.RideID, p.Status)
			}
		case TripOngoing:
			if p.Status != PaymentPending {
				t.Errorf("ongoing ride %s has payment %s", p.RideID, p.Status)
			}
		case TripCompleted:
			if p.Status == PaymentFailed {
				t.Errorf("completed ride %s has a failed payment", p.RideID)
			}
		}
	}
}

func TestGenerateOLTPCapsPayments(t *testing.T) {
	ds, err := GenerateOLTP(newSession(), OLTPCounts{Users: 5, Drivers: 2, Rides: 10, Payments: 40})
	if err != nil {
		t.Fatalf("GenerateOLTP failed: %v", err)
	}
	testutil.CheckDataset(t, ds)
	if n := testutil.Rows(ds, "uber_payments"); n != 10 {
		t.Errorf("uber_payments = %d rows, want one per ride (10)", n)
	}
}
