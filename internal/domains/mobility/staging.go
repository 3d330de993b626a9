package mobility

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/processing"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// Staging coordinates scatter around Downtown Dubai.
const (
	stagingLat = 25.1972
	stagingLng = 55.2744
	// TaxRate is the VAT charged on staged fares.
	TaxRate = 0.05
)

var stagingStatuses = datagen.MustWeighted(
	[]string{"completed", "cancelled", "ongoing"},
	[]float64{0.85, 0.12, 0.03})

// Processing base counts at scale small.
const (
	stagingRides = 1600
	etlJobs      = 40
	etlManifests = 15
)

type coord struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// StageRides generates n cleansed rides, each ingested in the hour of one
// of the jobs' ETL batches. Fares carry a minimum base of 10 AED and
// TaxRate on top.
func StageRides(s *datagen.Session, n int, jobs []processing.Job) ([]StagedRide, error) {
	if err := datagen.RequireCount("staged ride", n); err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("%w: no job batches to reference", datagen.ErrInvalidArgument)
	}

	out := make([]StagedRide, n)
	for i := range out {
		job := datagen.Choose(s.Faker, jobs)
		pickupTS := job.StartTS.Truncate(time.Hour).Add(time.Duration(s.Int(0, 3599)) * time.Second)
		dropoffTS := pickupTS.Add(time.Duration(s.Gamma(2, 15) * float64(time.Minute)))

		pickup := coord{datagen.Round(stagingLat+s.Normal(0, 0.1), 6), datagen.Round(stagingLng+s.Normal(0, 0.1), 6)}
		dropoff := coord{datagen.Round(pickup.Lat+s.Normal(0, 0.05), 6), datagen.Round(pickup.Lng+s.Normal(0, 0.05), 6)}
		pickupJSON, err := json.Marshal(pickup)
		if err != nil {
			return nil, fmt.Errorf("failed to encode pickup: %w", err)
		}
		dropoffJSON, err := json.Marshal(dropoff)
		if err != nil {
			return nil, fmt.Errorf("failed to encode dropoff: %w", err)
		}

		distance := datagen.Round(s.Lognormal(2, 1), 2)
		base := datagen.Round(math.Max(10, distance*s.Float64(2, 4)), 2)
		taxes := datagen.Round(base*TaxRate, 2)
		out[i] = StagedRide{
			RideID:          fmt.Sprintf("uber_ride_%08d", i),
			DriverID:        fmt.Sprintf("driver_%d", s.Int(1000, 9999)),
			RiderID:         fmt.Sprintf("rider_%d", s.Int(10000, 99999)),
			PickupTS:        pickupTS,
			DropoffTS:       dropoffTS,
			PickupCoord:     string(pickupJSON),
			DropoffCoord:    string(dropoffJSON),
			DistanceKM:      distance,
			Fare:            datagen.Round(base+taxes, 2),
			FareBase:        base,
			FareTaxes:       taxes,
			Status:          stagingStatuses.Pick(s.Faker),
			IngestLatencyMS: s.Int(100, 4999),
			BatchID:         job.BatchID,
			ProcessedTS:     pickupTS.Add(time.Duration(s.Int(5, 29)) * time.Minute),
		}
	}
	return out, nil
}

func generateProcessing(s *datagen.Session, scale datagen.Scale) (*schema.Dataset, error) {
	ds := &schema.Dataset{}
	jobs, err := processing.AddHistory(ds, s, processing.Uber, scale.Apply(etlJobs), scale.Apply(etlManifests))
	if err != nil {
		return nil, err
	}
	rides, err := StageRides(s, scale.Apply(stagingRides), jobs)
	if err != nil {
		return nil, fmt.Errorf("failed to stage rides: %w", err)
	}
	ds.Add(StagingRides, schema.Rows(rides))
	return ds, nil
}
