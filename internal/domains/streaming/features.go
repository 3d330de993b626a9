package streaming

import (
	"fmt"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/processing"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

const (
	featureRows = 400
	modelCount  = 10
)

// SessionFeatureRows generates n training rows for the churn model.
func SessionFeatureRows(s *datagen.Session, n int) ([]SessionFeatures, error) {
	if err := datagen.RequireCount("feature row", n); err != nil {
		return nil, err
	}

	out := make([]SessionFeatures, n)
	for i := range out {
		label := 0
		if s.Chance(0.15) {
			label = 1
		}
		out[i] = SessionFeatures{
			SessionID:             fmt.Sprintf("netflix_session_%06d", i),
			UserAvgWatch7d:        datagen.Round(s.Float64(0.5, 8.0), 2),
			ContentPopularityRank: s.Int(1, 999),
			DeviceTypeEnc:         s.Int(0, 4),
			LabelChurnRisk:        label,
		}
	}
	return out, nil
}

func generateFeatures(s *datagen.Session, scale datagen.Scale) (*schema.Dataset, error) {
	rows, err := SessionFeatureRows(s, scale.Apply(featureRows))
	if err != nil {
		return nil, err
	}
	ds := &schema.Dataset{}
	ds.Add(FeaturesSession, schema.Rows(rows))
	if err := processing.AddArtifacts(ds, s, processing.Netflix, scale.ApplyCapped(modelCount, 100)); err != nil {
		return nil, err
	}
	return ds, nil
}
