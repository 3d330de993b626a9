package lodging

import (
	"fmt"
	"time"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/processing"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

var (
	stagingTypes    = []string{"Apartment", "Villa", "Studio", "Penthouse", "Townhouse"}
	stagingStatuses = datagen.MustWeighted(
		[]string{StatusConfirmed, StatusCancelled, StatusPending},
		[]float64{0.85, 0.12, 0.03})
)

// Processing base counts at scale small.
const (
	stagingReservations = 1200
	etlJobs             = 25
	etlManifests        = 10
)

// StageReservations generates n cleansed reservations, each processed in
// the hour of one of the jobs' ETL batches. Check-ins fall between a
// month ago and three months ahead; stays average four nights.
func StageReservations(s *datagen.Session, n int, jobs []processing.Job) ([]StagedReservation, error) {
	if err := datagen.RequireCount("staged reservation", n); err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("%w: no job batches to reference", datagen.ErrInvalidArgument)
	}

	out := make([]StagedReservation, n)
	for i := range out {
		job := datagen.Choose(s.Faker, jobs)
		checkin := s.DateBetween(-30, 89)
		nights := s.Poisson(3) + 1
		out[i] = StagedReservation{
			BookingID:    fmt.Sprintf("airbnb_booking_%08d", i),
			HostID:       fmt.Sprintf("host_%d", s.Int(10000, 99999)),
			GuestID:      fmt.Sprintf("guest_%d", s.Int(100000, 999999)),
			PropertyID:   fmt.Sprintf("property_%d", s.Int(100000, 999999)),
			Checkin:      checkin,
			Checkout:     checkin.AddDate(0, 0, nights),
			Nights:       nights,
			Price:        datagen.Round(s.Lognormal(5, 0.8)*float64(nights), 2),
			Status:       stagingStatuses.Pick(s.Faker),
			PropertyType: datagen.Choose(s.Faker, stagingTypes),
			City:         datagen.Choose(s.Faker, OccupancyCities),
			BatchID:      job.BatchID,
			ProcessedTS:  job.StartTS.Truncate(time.Hour).Add(time.Duration(s.Int(0, 3599)) * time.Second),
		}
	}
	return out, nil
}

func generateProcessing(s *datagen.Session, scale datagen.Scale) (*schema.Dataset, error) {
	ds := &schema.Dataset{}
	jobs, err := processing.AddHistory(ds, s, processing.Airbnb, scale.Apply(etlJobs), scale.Apply(etlManifests))
	if err != nil {
		return nil, err
	}
	rows, err := StageReservations(s, scale.Apply(stagingReservations), jobs)
	if err != nil {
		return nil, fmt.Errorf("failed to stage reservations: %w", err)
	}
	ds.Add(StagingReservations, schema.Rows(rows))
	return ds, nil
}
