package lodging

import (
	"fmt"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/processing"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

const (
	featureRows = 300
	modelCount  = 10
)

// BookingFeatureRows generates n training rows for the cancellation
// model. About 12% of rows are labelled cancelled.
func BookingFeatureRows(s *datagen.Session, n int) ([]BookingFeatures, error) {
	if err := datagen.RequireCount("feature row", n); err != nil {
		return nil, err
	}

	out := make([]BookingFeatures, n)
	for i := range out {
		label := 0
		if s.Chance(0.12) {
			label = 1
		}
		out[i] = BookingFeatures{
			BookingID:              fmt.Sprintf("airbnb_booking_%06d", i),
			HostResponseTimeH:      datagen.Round(s.Exponential(2), 1),
			GuestPastCancellations: s.Int(0, 4),
			PriceSensitivity:       datagen.Round(s.Float64(0, 1), 3),
			LabelCancelled:         label,
		}
	}
	return out, nil
}

func generateFeatures(s *datagen.Session, scale datagen.Scale) (*schema.Dataset, error) {
	rows, err := BookingFeatureRows(s, scale.Apply(featureRows))
	if err != nil {
		return nil, err
	}
	ds := &schema.Dataset{}
	ds.Add(FeaturesBooking, schema.Rows(rows))
	if err := processing.AddArtifacts(ds, s, processing.Airbnb, scale.ApplyCapped(modelCount, 100)); err != nil {
		return nil, err
	}
	return ds, nil
}
