package ecommerce

import (
	"fmt"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/processing"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// Features base counts at scale small.
const (
	featureRows = 350
	modelCount  = 10
)

// OrderFeatureRows generates n training rows for the return model. About
// one order in ten is labelled returned.
func OrderFeatureRows(s *datagen.Session, n int) ([]OrderFeatures, error) {
	if err := datagen.RequireCount("feature row", n); err != nil {
		return nil, err
	}

	out := make([]OrderFeatures, n)
	for i := range out {
		label := 0
		if s.Chance(0.1) {
			label = 1
		}
		out[i] = OrderFeatures{
			OrderID:       fmt.Sprintf("amazon_order_%06d", i),
			CustomerLTV:   datagen.Round(s.Lognormal(5, 1), 2),
			ItemsCount:    s.Int(1, 9),
			DiscountPct:   datagen.Round(s.Float64(0, 0.5), 3),
			LabelReturned: label,
		}
	}
	return out, nil
}

func generateFeatures(s *datagen.Session, scale datagen.Scale) (*schema.Dataset, error) {
	rows, err := OrderFeatureRows(s, scale.Apply(featureRows))
	if err != nil {
		return nil, err
	}
	ds := &schema.Dataset{}
	ds.Add(FeaturesOrder, schema.Rows(rows))
	if err := processing.AddArtifacts(ds, s, processing.Amazon, scale.ApplyCapped(modelCount, 100)); err != nil {
		return nil, err
	}
	return ds, nil
}
