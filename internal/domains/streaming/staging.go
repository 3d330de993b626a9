package streaming

import (
	"fmt"
	"time"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/processing"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

var (
	stagingGenres    = []string{"Drama", "Comedy", "Action", "Horror", "Documentary", "Romance", "Thriller", "Sci-Fi"}
	stagingDevices   = []string{"SmartTV", "Mobile", "Desktop", "Tablet", "Console"}
	stagingCountries = []string{"US", "UK", "Canada", "Brazil", "India", "Australia", "Germany", "France"}
	videoQualities   = []string{"4K", "HD", "SD", "Auto"}
)

// Processing base counts at scale small.
const (
	stagingEvents = 1200
	etlJobs       = 30
	etlManifests  = 12
)

// StageEvents generates n cleansed playback events, each ingested in the
// hour of one of the jobs' ETL batches. Playback lengths are gamma
// distributed with a mean of 50 minutes.
func StageEvents(s *datagen.Session, n int, jobs []processing.Job) ([]StagedEvent, error) {
	if err := datagen.RequireCount("staged event", n); err != nil {
		return nil, err
	}
	if len(jobs) == 0 {
		return nil, fmt.Errorf("%w: no job batches to reference", datagen.ErrInvalidArgument)
	}

	out := make([]StagedEvent, n)
	for i := range out {
		job := datagen.Choose(s.Faker, jobs)
		ts := job.StartTS.Truncate(time.Hour).Add(time.Duration(s.Int(0, 3599)) * time.Second)
		out[i] = StagedEvent{
			EventID:      fmt.Sprintf("netflix_event_%08d", i),
			UserID:       fmt.Sprintf("user_%d", s.Int(100000, 999999)),
			ContentID:    fmt.Sprintf("content_%d", s.Int(10000, 99999)),
			Genre:        datagen.Choose(s.Faker, stagingGenres),
			Device:       datagen.Choose(s.Faker, stagingDevices),
			EventTS:      ts,
			PlaybackSec:  int(s.Gamma(2, 25) * 60),
			Country:      datagen.Choose(s.Faker, stagingCountries),
			SessionID:    fmt.Sprintf("session_%d", s.Int(1000000, 9999999)),
			VideoQuality: datagen.Choose(s.Faker, videoQualities),
			BatchID:      job.BatchID,
			ProcessedTS:  ts.Add(time.Duration(s.Int(5, 29)) * time.Minute),
		}
	}
	return out, nil
}

func generateProcessing(s *datagen.Session, scale datagen.Scale) (*schema.Dataset, error) {
	ds := &schema.Dataset{}
	jobs, err := processing.AddHistory(ds, s, processing.Netflix, scale.Apply(etlJobs), scale.Apply(etlManifests))
	if err != nil {
		return nil, err
	}
	events, err := StageEvents(s, scale.Apply(stagingEvents), jobs)
	if err != nil {
		return nil, fmt.Errorf("failed to stage events: %w", err)
	}
	ds.Add(StagingEvents, schema.Rows(events))
	return ds, nil
}
