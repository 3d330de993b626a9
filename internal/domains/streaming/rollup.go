package streaming

import (
	"cmp"
	"time"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/olap"
)

type engagementKey struct {
	hour    time.Time
	content string
	country string
	device  string
}

type engagementTotals struct {
	viewers   olap.Set
	events    int
	completes int
	rebuffers int
	starts    int
	watchSec  int
	bitrate   olap.Mean
}

// RollupHourlyEngagement aggregates viewing events by hour, title, the
// country of the viewing account and device.
func RollupHourlyEngagement(users []User, profs []Profile, titles []Title, events []ViewingEvent) []HourlyEngagement {
	userCountry := make(map[string]string, len(users))
	for _, u := range users {
		userCountry[u.ID] = u.Country
	}
	profileCountry := make(map[string]string, len(profs))
	for _, p := range profs {
		profileCountry[p.ID] = userCountry[p.UserID]
	}
	score := make(map[string]float64, len(titles))
	for _, t := range titles {
		score[t.ID] = t.IMDBScore
	}

	g := olap.NewGroup[engagementKey, engagementTotals]()
	for _, e := range events {
		t := g.At(engagementKey{olap.Hour(e.Timestamp), e.ContentID, profileCountry[e.ProfileID], e.DeviceType})
		t.viewers.Add(e.ProfileID)
		t.events++
		t.watchSec += e.WatchSeconds
		t.bitrate.Add(float64(e.BitrateKbps))
		switch e.EventType {
		case EventComplete:
			t.completes++
		case EventPlay:
			t.starts++
		}
		if e.BufferEvents > 0 {
			t.rebuffers++
		}
	}

	keys := g.Sorted(func(a, b engagementKey) int {
		if c := a.hour.Compare(b.hour); c != 0 {
			return c
		}
		if c := cmp.Compare(a.content, b.content); c != 0 {
			return c
		}
		if c := cmp.Compare(a.country, b.country); c != 0 {
			return c
		}
		return cmp.Compare(a.device, b.device)
	})

	out := make([]HourlyEngagement, len(keys))
	for i, k := range keys {
		t := g.At(k)
		out[i] = HourlyEngagement{
			Hour:            k.hour,
			ContentID:       k.content,
			Country:         k.country,
			Device:          k.device,
			UniqueViewers:   t.viewers.Len(),
			TotalWatchHours: datagen.Round(float64(t.watchSec)/3600, 2),
			CompletionRate:  datagen.Round(olap.Ratio(float64(t.completes), float64(t.events)), 4),
			AvgBitrate:      int(t.bitrate.Value()),
			RebufferRatio:   datagen.Round(olap.Ratio(float64(t.rebuffers), float64(t.events)), 4),
			SessionStarts:   t.starts,
			AvgIMDBScore:    score[k.content],
		}
	}
	return out
}
