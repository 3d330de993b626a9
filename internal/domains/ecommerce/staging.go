package ecommerce

import (
	"fmt"
	"time"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/processing"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

var fulfillmentCenters = []string{"DXB1", "AUH2", "SHJ3", "RAK1", "ALN1"}

var stagingChannels = []string{"website", "mobile_app", "alexa", "marketplace"}

// Processing base counts at scale small.
const (
	stagingOrders = 1500
	etlJobs       = 60
	etlManifests  = 20
)

// StageOrders generates n cleansed orders. Every order belongs to the ETL
// batch of one of jobs and was ingested during that batch's hour.
func StageOrders(s *datagen.Session, n int, jobs []processing.Job) ([]StagedOrder, error) {
	if err := datagen.RequireCount("staged order", n); err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("%w: no job batches to reference", datagen.ErrInvalidArgument)
	}

	out := make([]StagedOrder, n)
	for i := range out {
		job := datagen.Choose(s.Faker, jobs)
		ts := job.StartTS.Truncate(time.Hour).Add(time.Duration(s.Int(0, 3599)) * time.Second)

		subtotal := datagen.Round(s.Lognormal(4, 1.2), 2)
		shipping := 15.0
		if subtotal > 100 {
			shipping = datagen.Round(subtotal*0.1, 2)
		}
		tax := datagen.Round(subtotal*VATRate, 2)

		out[i] = StagedOrder{
			OrderID:           fmt.Sprintf("amazon_order_%08d", i),
			CustomerID:        fmt.Sprintf("customer_%07d", s.Int(1000000, 9999999)),
			OrderTS:           ts,
			ItemsCount:        s.Poisson(2.5) + 1,
			Subtotal:          subtotal,
			Shipping:          shipping,
			Tax:               tax,
			Total:             datagen.Round(subtotal+shipping+tax, 2),
			FulfillmentCenter: datagen.Choose(s.Faker, fulfillmentCenters),
			Channel:           datagen.Choose(s.Faker, stagingChannels),
			BatchID:           job.BatchID,
			ProcessedTS:       ts.Add(time.Duration(s.Int(5, 29)) * time.Minute),
		}
	}
	return out, nil
}

func generateProcessing(s *datagen.Session, scale datagen.Scale) (*schema.Dataset, error) {
	ds := &schema.Dataset{}
	jobs, err := processing.AddHistory(ds, s, processing.Amazon, scale.Apply(etlJobs), scale.Apply(etlManifests))
	if err != nil {
		return nil, err
	}
	orders, err := StageOrders(s, scale.Apply(stagingOrders), jobs)
	if err != nil {
		return nil, fmt.Errorf("failed to stage orders: %w", err)
	}
	ds.Add(StagingOrders, schema.Rows(orders))
	return ds, nil
}
