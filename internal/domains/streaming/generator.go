package streaming

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/datagen/profiles"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// Reference data
var (
	countries = datagen.MustWeighted(
		[]string{"US", "UK", "Canada", "Germany", "France", "Japan", "India", "Brazil", "Australia", "UAE"},
		[]float64{0.40, 0.10, 0.08, 0.07, 0.06, 0.05, 0.05, 0.04, 0.04, 0.11})
	plans = datagen.MustWeighted(
		[]string{"Basic", "Standard", "Premium"},
		[]float64{0.40, 0.35, 0.25})
	billingStatuses = datagen.MustWeighted(
		[]string{"active", "past_due", "cancelled"},
		[]float64{0.85, 0.10, 0.05})
	paymentMethods = datagen.MustWeighted(
		[]string{"credit_card", "debit_card", "paypal", "gift_card"},
		[]float64{0.50, 0.25, 0.20, 0.05})

	profilesPerUser = datagen.MustWeighted(
		[]int{1, 2, 3, 4, 5},
		[]float64{0.20, 0.40, 0.25, 0.10, 0.05})
	ageRatings = datagen.MustWeighted(
		[]string{"Kids", "Teen", "Adult"},
		[]float64{0.25, 0.25, 0.50})
	languages = datagen.MustWeighted(
		[]string{"en", "ar", "es", "fr", "de", "ja"},
		[]float64{0.60, 0.15, 0.10, 0.05, 0.05, 0.05})
	deviceKinds = []string{"TV", "Mobile", "Desktop", "Tablet"}

	genres = []string{
		"Action", "Comedy", "Drama", "Horror", "Romance", "Sci-Fi", "Documentary",
		"Animation", "Thriller", "Crime", "Fantasy", "Adventure", "Mystery", "War", "Western",
	}
	contentTypes = datagen.MustWeighted(
		[]string{"Movie", "Series", "Documentary"},
		[]float64{0.60, 0.30, 0.10})
	maturityRatings = datagen.MustWeighted(
		[]string{"G", "PG", "PG-13", "R", "NC-17"},
		[]float64{0.20, 0.25, 0.30, 0.20, 0.05})
	productionCountries = []string{"US", "UK", "Canada", "France", "Germany", "Japan", "India"}

	devices = datagen.MustWeighted(
		deviceKinds,
		[]float64{0.45, 0.30, 0.20, 0.05})
	eventTypes = datagen.MustWeighted(
		[]string{EventPlay, EventPause, EventStop, EventSeek, EventComplete},
		[]float64{0.40, 0.20, 0.15, 0.15, 0.10})
	bitrates = datagen.MustWeighted(
		[]int{480, 720, 1080, 1440, 2160},
		[]float64{0.10, 0.30, 0.40, 0.15, 0.05})
	cdnPops   = []string{"US-East", "US-West", "EU-West", "APAC", "ME"}
	subtitles = datagen.MustWeighted(
		[]string{"en", "ar", "es", "fr", ""},
		[]float64{0.40, 0.20, 0.10, 0.10, 0.20})

	evening = profiles.MustGet("evening")
)

// Playback event types.
const (
	EventPlay     = "play"
	EventPause    = "pause"
	EventStop     = "stop"
	EventSeek     = "seek"
	EventComplete = "complete"
)

// MaxProfilesPerUser bounds the profiles of one account.
const MaxProfilesPerUser = 5

// Counts are the row counts of one bigdata run. Profiles follow from
// the users.
type Counts struct {
	Users   int
	Titles  int
	Viewing int
}

var baseCounts = Counts{Users: 500, Titles: 300, Viewing: 5000}

// CountsFor returns the row counts at scale.
func CountsFor(scale datagen.Scale) Counts {
	return Counts{
		Users:   scale.Apply(baseCounts.Users),
		Titles:  scale.Apply(baseCounts.Titles),
		Viewing: scale.Apply(baseCounts.Viewing),
	}
}

// GenerateUsers generates n subscribers who signed up within the last
// three years. Four in five had a 30 day trial.
func GenerateUsers(s *datagen.Session, n int) ([]User, error) {
	if err := datagen.RequireCount("user", n); err != nil {
		return nil, err
	}

	users := make([]User, n)
	for i := range users {
		signup := s.DateBetween(-3*365, 0)
		var trialEnd *time.Time
		if s.Chance(0.80) {
			end := signup.AddDate(0, 0, 30)
			trialEnd = &end
		}
		users[i] = User{
			ID:             datagen.ID("USER", i+1, 6),
			SignupDate:     signup,
			Country:        countries.Pick(s.Faker),
			Plan:           plans.Pick(s.Faker),
			BillingStatus:  billingStatuses.Pick(s.Faker),
			PaymentMethod:  paymentMethods.Pick(s.Faker),
			TrialEndDate:   trialEnd,
			ChurnRiskScore: datagen.Round(s.Beta(2, 8), 3),
		}
	}
	return users, nil
}

// GenerateProfiles generates one to MaxProfilesPerUser profiles for each
// user. The first profile of an account is its primary one.
func GenerateProfiles(s *datagen.Session, userIDs []string) ([]Profile, error) {
	if err := datagen.RequireKeys("user", userIDs); err != nil {
		return nil, err
	}

	var out []Profile
	for _, userID := range userIDs {
		n := profilesPerUser.Pick(s.Faker)
		for i := 0; i < n; i++ {
			devicesJSON, err := json.Marshal(datagen.Sample(s.Faker, deviceKinds, s.Int(1, 3)))
			if err != nil {
				return nil, fmt.Errorf("failed to encode device types: %w", err)
			}
			rating := ageRatings.Pick(s.Faker)
			restrictions := "None"
			if rating == "Kids" {
				restrictions = "Parental Control"
			}
			kind := "Secondary"
			if i == 0 {
				kind = "Primary"
			}
			out = append(out, Profile{
				ID:                  fmt.Sprintf("%s_PROF_%d", userID, i+1),
				UserID:              userID,
				AgeRating:           rating,
				LanguagePref:        languages.Pick(s.Faker),
				DeviceTypes:         string(devicesJSON),
				ViewingRestrictions: restrictions,
				ProfileType:         kind,
			})
		}
	}
	return out, nil
}

// GenerateTitles generates n catalog titles. IMDb scores are a normal
// distribution around 7 clamped to [1, 10].
func GenerateTitles(s *datagen.Session, n int) ([]Title, error) {
	if err := datagen.RequireCount("title", n); err != nil {
		return nil, err
	}

	titles := make([]Title, n)
	for i := range titles {
		kind := contentTypes.Pick(s.Faker)
		primary := datagen.Choose(s.Faker, genres)
		var secondary *string
		if s.Chance(0.70) {
			g := datagen.Choose(s.Faker, genres)
			for g == primary {
				g = datagen.Choose(s.Faker, genres)
			}
			secondary = &g
		}
		runtime := s.Int(30, 89)
		if kind == "Movie" {
			runtime = s.Int(80, 179)
		}
		cast := make([]string, s.Int(3, 7))
		for j := range cast {
			cast[j] = s.Name()
		}
		castJSON, err := json.Marshal(cast)
		if err != nil {
			return nil, fmt.Errorf("failed to encode cast: %w", err)
		}

		titles[i] = Title{
			ID:                datagen.ID("CONTENT", i+1, 5),
			Title:             s.MovieName(),
			ContentType:       kind,
			GenrePrimary:      primary,
			GenreSecondary:    secondary,
			ReleaseYear:       s.Int(1990, 2025),
			RuntimeMinutes:    runtime,
			MaturityRating:    maturityRatings.Pick(s.Faker),
			ProductionCountry: datagen.Choose(s.Faker, productionCountries),
			Director:          s.Name(),
			CastJSON:          string(castJSON),
			IMDBScore:         datagen.Round(s.ClampedNormal(7.0, 1.5, 1, 10), 1),
			AwardsCount:       s.Poisson(2),
		}
	}
	return titles, nil
}

// GenerateViewing generates n playback events over the last six months,
// with hours following the prime-time evening curve.
func GenerateViewing(s *datagen.Session, n int, profileIDs, contentIDs []string) ([]ViewingEvent, error) {
	if err := datagen.RequireCount("viewing event", n); err != nil {
		return nil, err
	}
	if err := datagen.RequireKeys("profile", profileIDs); err != nil {
		return nil, err
	}
	if err := datagen.RequireKeys("content", contentIDs); err != nil {
		return nil, err
	}

	events := make([]ViewingEvent, n)
	for i := range events {
		eventType := eventTypes.Pick(s.Faker)
		buffers := 0
		if s.Chance(0.20) {
			buffers = s.Poisson(2)
		}
		seeks := 0
		if eventType == EventSeek {
			seeks = s.Poisson(3)
		}
		var subtitle *string
		if lang := subtitles.Pick(s.Faker); lang != "" {
			subtitle = &lang
		}
		ts := s.SeasonalTime(evening, -182, 0).Add(time.Duration(s.Int(0, 999)) * time.Millisecond)

		events[i] = ViewingEvent{
			ID:           datagen.ID("VIEW_EVT", i+1, 8),
			ProfileID:    datagen.Choose(s.Faker, profileIDs),
			ContentID:    datagen.Choose(s.Faker, contentIDs),
			DeviceType:   devices.Pick(s.Faker),
			EventType:    eventType,
			Timestamp:    ts,
			WatchSeconds: int(s.Exponential(1800)),
			BitrateKbps:  bitrates.Pick(s.Faker),
			BufferEvents: buffers,
			CDNPop:       "CDN_" + datagen.Choose(s.Faker, cdnPops),
			AppVersion:   fmt.Sprintf("v%d.%d.%d", s.Int(8, 11), s.Int(0, 4), s.Int(0, 9)),
			SeekEvents:   seeks,
			SubtitleLang: subtitle,
		}
	}
	return events, nil
}

// Generate builds the full entity set and its hourly engagement rollup.
func Generate(s *datagen.Session, c Counts) (*schema.Dataset, error) {
	users, err := GenerateUsers(s, c.Users)
	if err != nil {
		return nil, fmt.Errorf("failed to generate users: %w", err)
	}
	userIDs := make([]string, len(users))
	for i, u := range users {
		userIDs[i] = u.ID
	}
	profs, err := GenerateProfiles(s, userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to generate profiles: %w", err)
	}
	titles, err := GenerateTitles(s, c.Titles)
	if err != nil {
		return nil, fmt.Errorf("failed to generate titles: %w", err)
	}

	profileIDs := make([]string, len(profs))
	for i, p := range profs {
		profileIDs[i] = p.ID
	}
	contentIDs := make([]string, len(titles))
	for i, t := range titles {
		contentIDs[i] = t.ID
	}
	events, err := GenerateViewing(s, c.Viewing, profileIDs, contentIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to generate viewing events: %w", err)
	}

	ds := &schema.Dataset{}
	ds.Add(Users, schema.Rows(users))
	ds.Add(Profiles, schema.Rows(profs))
	ds.Add(Content, schema.Rows(titles))
	ds.Add(ViewingEvents, schema.Rows(events))
	ds.Add(HourlyEngagementAgg, schema.Rows(RollupHourlyEngagement(users, profs, titles, events)))
	return ds, nil
}
