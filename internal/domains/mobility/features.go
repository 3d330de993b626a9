package mobility

import (
	"fmt"
	"time"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/processing"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

const (
	featureRows = 500
	modelCount  = 10
)

// PeakHour reports whether a pickup hour is in the morning or evening
// rush.
func PeakHour(hour int) bool {
	return (hour >= 7 && hour <= 9) || (hour >= 17 && hour <= 19)
}

// RideFeatureRows generates n training rows for the cancellation model
// from pickups over the last thirty days.
func RideFeatureRows(s *datagen.Session, n int) ([]RideFeatures, error) {
	if err := datagen.RequireCount("feature row", n); err != nil {
		return nil, err
	}

	out := make([]RideFeatures, n)
	for i := range out {
		hour := s.Now.Add(-time.Duration(s.Int(0, 719)) * time.Hour).Hour()
		peak, label := 0, 0
		if PeakHour(hour) {
			peak = 1
		}
		if s.Chance(0.10) {
			label = 1
		}
		out[i] = RideFeatures{
			RideID:           fmt.Sprintf("ride_%06d", i),
			PickupHour:       hour,
			IsPeak:           peak,
			DriverAcceptRate: datagen.Round(s.Float64(0.7, 0.99), 3),
			PredictedFare:    datagen.Round(s.Float64(15, 150), 2),
			LabelCancelled:   label,
		}
	}
	return out, nil
}

func generateFeatures(s *datagen.Session, scale datagen.Scale) (*schema.Dataset, error) {
	rows, err := RideFeatureRows(s, scale.Apply(featureRows))
	if err != nil {
		return nil, err
	}
	ds := &schema.Dataset{}
	ds.Add(FeaturesRide, schema.Rows(rows))
	if err := processing.AddArtifacts(ds, s, processing.Uber, scale.ApplyCapped(modelCount, 100)); err != nil {
		return nil, err
	}
	return ds, nil
}
