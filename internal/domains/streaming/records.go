package streaming

import "time"

// User is one netflix_users row.
type User struct {
	ID             string
	SignupDate     time.Time
	Country        string
	Plan           string
	BillingStatus  string
	PaymentMethod  string
	TrialEndDate   *time.Time
	ChurnRiskScore float64
}

// Values implements schema.Record.
func (u User) Values() []any {
	return []any{u.ID, u.SignupDate, u.Country, u.Plan, u.BillingStatus, u.PaymentMethod,
		u.TrialEndDate, u.ChurnRiskScore}
}

// Profile is one netflix_profiles row.
type Profile struct {
	ID                  string
	UserID              string
	AgeRating           string
	LanguagePref        string
	DeviceTypes         string
	ViewingRestrictions string
	ProfileType         string
}

// Values implements schema.Record.
func (p Profile) Values() []any {
	return []any{p.ID, p.UserID, p.AgeRating, p.LanguagePref, p.DeviceTypes, p.ViewingRestrictions, p.ProfileType}
}

// Title is one netflix_content_catalog row.
type Title struct {
	ID                string
	Title             string
	ContentType       string
	GenrePrimary      string
	GenreSecondary    *string
	ReleaseYear       int
	RuntimeMinutes    int
	MaturityRating    string
	ProductionCountry string
	Director          string
	CastJSON          string
	IMDBScore         float64
	AwardsCount       int
}

// Values implements schema.Record.
func (t Title) Values() []any {
	return []any{t.ID, t.Title, t.ContentType, t.GenrePrimary, t.GenreSecondary, t.ReleaseYear,
		t.RuntimeMinutes, t.MaturityRating, t.ProductionCountry, t.Director, t.CastJSON, t.IMDBScore,
		t.AwardsCount}
}

// ViewingEvent is one netflix_viewing_events row.
type ViewingEvent struct {
	ID            string
	ProfileID     string
	ContentID     string
	DeviceType    string
	EventType     string
	Timestamp     time.Time
	WatchSeconds  int
	BitrateKbps   int
	BufferEvents  int
	CDNPop        string
	AppVersion    string
	SeekEvents    int
	SubtitleLang  *string
}

// Values implements schema.Record.
func (e ViewingEvent) Values() []any {
	return []any{e.ID, e.ProfileID, e.ContentID, e.DeviceType, e.EventType, e.Timestamp,
		e.WatchSeconds, e.BitrateKbps, e.BufferEvents, e.CDNPop, e.AppVersion, e.SeekEvents, e.SubtitleLang}
}

// HourlyEngagement is one netflix_hourly_engagement_agg row.
type HourlyEngagement struct {
	Hour            time.Time
	ContentID       string
	Country         string
	Device          string
	UniqueViewers   int
	TotalWatchHours float64
	CompletionRate  float64
	AvgBitrate      int
	RebufferRatio   float64
	SessionStarts   int
	AvgIMDBScore    float64
}

// Values implements schema.Record.
func (h HourlyEngagement) Values() []any {
	return []any{h.Hour, h.ContentID, h.Country, h.Device, h.UniqueViewers, h.TotalWatchHours,
		h.CompletionRate, h.AvgBitrate, h.RebufferRatio, h.SessionStarts, h.AvgIMDBScore}
}

// TitleHour is one agg_netflix_hourly_engagement row.
type TitleHour struct {
	Hour            time.Time
	ContentID       string
	Views           int
	UniqueViewers   int
	AvgWatchSec     float64
	TotalWatchHours float64
}

// Values implements schema.Record.
func (h TitleHour) Values() []any {
	return []any{h.Hour, h.ContentID, h.Views, h.UniqueViewers, h.AvgWatchSec, h.TotalWatchHours}
}

// StagedEvent is one staging_netflix_events row.
type StagedEvent struct {
	EventID      string
	UserID       string
	ContentID    string
	Genre        string
	Device       string
	EventTS      time.Time
	PlaybackSec  int
	Country      string
	SessionID    string
	VideoQuality string
	BatchID      string
	ProcessedTS  time.Time
}

// Values implements schema.Record.
func (e StagedEvent) Values() []any {
	return []any{e.EventID, e.UserID, e.ContentID, e.Genre, e.Device, e.EventTS, e.PlaybackSec,
		e.Country, e.SessionID, e.VideoQuality, e.BatchID, e.ProcessedTS}
}

// SessionFeatures is one features_netflix_session row.
type SessionFeatures struct {
	SessionID             string
	UserAvgWatch7d        float64
	ContentPopularityRank int
	DeviceTypeEnc         int
	LabelChurnRisk        int
}

// Values implements schema.Record.
func (f SessionFeatures) Values() []any {
	return []any{f.SessionID, f.UserAvgWatch7d, f.ContentPopularityRank, f.DeviceTypeEnc, f.LabelChurnRisk}
}
