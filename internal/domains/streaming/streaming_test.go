package streaming

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/testutil"
)

var anchor = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func newSession() *datagen.Session {
	return datagen.NewSession(7, anchor)
}

func TestGenerate(t *testing.T) {
	ds, err := Generate(newSession(), Counts{Users: 80, Titles: 40, Viewing: 600})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	testutil.CheckDataset(t, ds)

	if n := testutil.Rows(ds, "netflix_users"); n != 80 {
		t.Errorf("users = %d, want 80", n)
	}
	if n := testutil.Rows(ds, "netflix_viewing_events"); n != 600 {
		t.Errorf("viewing events = %d, want 600", n)
	}
	if n := testutil.Rows(ds, "netflix_profiles"); n < 80 || n > 80*MaxProfilesPerUser {
		t.Errorf("profiles = %d, want between 80 and %d", n, 80*MaxProfilesPerUser)
	}

	testutil.InRange(t, ds, "netflix_users", "churn_risk_score", 0, 1)
	testutil.InRange(t, ds, "netflix_content_catalog", "imdb_score", 1, 10)
	testutil.InRange(t, ds, "netflix_hourly_engagement_agg", "completion_rate", 0, 1)
	testutil.InRange(t, ds, "netflix_hourly_engagement_agg", "rebuffer_ratio", 0, 1)

	for _, v := range testutil.Column(t, ds, "netflix_profiles", "device_types") {
		var kinds []string
		if err := json.Unmarshal([]byte(v.(string)), &kinds); err != nil {
			t.Fatalf("device_types %q is not a JSON array: %v", v, err)
		}
		if len(kinds) < 1 || len(kinds) > 3 {
			t.Errorf("device_types %q has %d entries, want 1..3", v, len(kinds))
		}
	}
}

func TestPrimaryProfiles(t *testing.T) {
	profs, err := GenerateProfiles(newSession(), []string{"USER_000001", "USER_000002"})
	if err != nil {
		t.Fatalf("GenerateProfiles failed: %v", err)
	}
	primaries := make(map[string]int)
	for _, p := range profs {
		if p.ProfileType == "Primary" {
			primaries[p.UserID]++
		}
		if p.AgeRating == "Kids" && p.ViewingRestrictions != "Parental Control" {
			t.Errorf("kids profile %s has restrictions %q", p.ID, p.ViewingRestrictions)
		}
	}
	for _, id := range []string{"USER_000001", "USER_000002"} {
		if primaries[id] != 1 {
			t.Errorf("user %s has %d primary profiles, want 1", id, primaries[id])
		}
	}
}

func TestRollupCountsEvents(t *testing.T) {
	s := newSession()
	users, _ := GenerateUsers(s, 20)
	ids := make([]string, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}
	profs, _ := GenerateProfiles(s, ids)
	titles, _ := GenerateTitles(s, 5)
	profileIDs := make([]string, len(profs))
	for i, p := range profs {
		profileIDs[i] = p.ID
	}
	events, err := GenerateViewing(s, 500, profileIDs, []string{titles[0].ID, titles[1].ID})
	if err != nil {
		t.Fatalf("GenerateViewing failed: %v", err)
	}

	starts := 0
	for _, e := range events {
		if e.EventType == EventPlay {
			starts++
		}
	}
	aggStarts := 0
	for _, r := range RollupHourlyEngagement(users, profs, titles, events) {
		aggStarts += r.SessionStarts
		if r.UniqueViewers < 1 {
			t.Errorf("bucket %v/%s has no viewers", r.Hour, r.ContentID)
		}
	}
	if aggStarts != starts {
		t.Errorf("rollup session starts = %d, want %d", aggStarts, starts)
	}
}

func TestSampledEngagement(t *testing.T) {
	titles := PopularTitles(4)
	rows, err := SampleHourlyEngagement(newSession(), 3, 3, titles)
	if err != nil {
		t.Fatalf("SampleHourlyEngagement failed: %v", err)
	}
	if len(rows) != 3*24*3 {
		t.Fatalf("got %d rows, want %d", len(rows), 3*24*3)
	}

	keys := datagen.NewKeySet()
	for _, r := range rows {
		if !keys.Claim(r.Hour.String(), r.ContentID) {
			t.Errorf("duplicate bucket %v/%s", r.Hour, r.ContentID)
		}
		if r.UniqueViewers > r.Views {
			t.Errorf("bucket %v/%s: %d viewers for %d views", r.Hour, r.ContentID, r.UniqueViewers, r.Views)
		}
		if h := r.Hour.Hour(); h >= 18 && r.Views < 5000 {
			t.Errorf("evening bucket %v has only %d views", r.Hour, r.Views)
		}
	}

	// More titles per hour than titles cannot be satisfied.
	if _, err := SampleHourlyEngagement(newSession(), 1, 5, titles); !errors.Is(err, datagen.ErrKeyCollision) {
		t.Errorf("err = %v, want ErrKeyCollision", err)
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
		{"zero users", func() error { _, err := GenerateUsers(s, 0); return err }},
		{"no users", func() error { _, err := GenerateProfiles(s, nil); return err }},
		{"zero titles", func() error { _, err := GenerateTitles(s, 0); return err }},
		{"no profiles", func() error { _, err := GenerateViewing(s, 5, nil, []string{"CONTENT_00001"}); return err }},
		{"no content", func() error { _, err := GenerateViewing(s, 5, []string{"P"}, nil); return err }},
		{"no staging batches", func() error { _, err := StageEvents(s, 5, nil); return err }},
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
		"netflix_users":           100,
		"netflix_profiles":        150,
		"netflix_subscriptions":   100,
		"netflix_content_catalog": 50,
		"netflix_views":           300,
	} {
		if n := testutil.Rows(ds, table); n != want {
			t.Errorf("%s = %d rows, want %d", table, n, want)
		}
	}

	emails := make(map[any]bool)
	for _, v := range testutil.Column(t, ds, "netflix_users", "email") {
		if emails[v] {
			t.Errorf("email %v reused", v)
		}
		emails[v] = true
	}
	for _, v := range testutil.Column(t, ds, "netflix_views", "view_date") {
		ts := v.(time.Time)
		if ts.Before(anchor.AddDate(0, 0, -30)) || ts.After(anchor) {
			t.Errorf("view_date %v outside the last 30 days", ts)
		}
	}

	if _, err := GenerateOLTP(newSession(), OLTPCounts{Users: 1, Profiles: 1, Subscriptions: 1, Titles: 0, Views: 1}); !errors.Is(err, datagen.ErrInvalidArgument) {
		t.Errorf("zero titles: err = %v, want ErrInvalidArgument", err)
	}
}
