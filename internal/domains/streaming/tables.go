// Package streaming generates the datasets of Netflix, the simulated
// video streaming service: subscribers own viewing profiles that play
// titles of a shared content catalog.
package streaming

import (
	"github.com/pgEdge/pgedge-datalab/internal/domains"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// Users holds subscriber accounts.
var Users = &schema.Table{
	Name:        "netflix_users",
	Module:      domains.BigData,
	Domain:      domains.Streaming,
	Pattern:     schema.OLTP,
	Description: "Subscriber accounts with plan, billing status and churn risk",
	Columns: []schema.Column{
		{Name: "user_id", Type: schema.Text},
		{Name: "signup_date", Type: schema.Date},
		{Name: "country", Type: schema.Text},
		{Name: "subscription_plan", Type: schema.Text},
		{Name: "billing_status", Type: schema.Text},
		{Name: "payment_method", Type: schema.Text},
		{Name: "trial_end_date", Type: schema.Date, Nullable: true},
		{Name: "churn_risk_score", Type: schema.Real},
	},
	PrimaryKey: []string{"user_id"},
}

// Profiles holds the viewing profiles of each account.
var Profiles = &schema.Table{
	Name:        "netflix_profiles",
	Module:      domains.BigData,
	Domain:      domains.Streaming,
	Pattern:     schema.OLTP,
	Description: "Viewing profiles with age rating, language and device preferences",
	Columns: []schema.Column{
		{Name: "profile_id", Type: schema.Text},
		{Name: "user_id", Type: schema.Text},
		{Name: "age_rating", Type: schema.Text},
		{Name: "language_pref", Type: schema.Text},
		{Name: "device_types", Type: schema.JSON},
		{Name: "viewing_restrictions", Type: schema.Text},
		{Name: "profile_type", Type: schema.Text},
	},
	PrimaryKey: []string{"profile_id"},
	ForeignKeys: []schema.ForeignKey{
		{Column: "user_id", RefTable: "netflix_users", RefColumn: "user_id"},
	},
	Indexes: []schema.Index{
		{Name: "idx_netflix_profiles_user", Columns: []string{"user_id"}},
	},
}

// Content is the shared title catalog.
var Content = &schema.Table{
	Name:        "netflix_content_catalog",
	Module:      domains.BigData,
	Domain:      domains.Streaming,
	Pattern:     schema.OLTP,
	Description: "Movies, series and documentaries with genre, rating and cast",
	Columns: []schema.Column{
		{Name: "content_id", Type: schema.Text},
		{Name: "title", Type: schema.Text},
		{Name: "content_type", Type: schema.Text},
		{Name: "genre_primary", Type: schema.Text},
		{Name: "genre_secondary", Type: schema.Text, Nullable: true},
		{Name: "release_year", Type: schema.Integer},
		{Name: "runtime_minutes", Type: schema.Integer},
		{Name: "maturity_rating", Type: schema.Text},
		{Name: "production_country", Type: schema.Text},
		{Name: "director", Type: schema.Text},
		{Name: "cast_json", Type: schema.JSON},
		{Name: "imdb_score", Type: schema.Real},
		{Name: "awards_count", Type: schema.Integer},
	},
	PrimaryKey: []string{"content_id"},
}

// ViewingEvents is the playback event stream.
var ViewingEvents = &schema.Table{
	Name:        "netflix_viewing_events",
	Module:      domains.BigData,
	Domain:      domains.Streaming,
	Pattern:     schema.Event,
	Description: "Playback events per profile and title with device, bitrate and buffering",
	Columns: []schema.Column{
		{Name: "event_id", Type: schema.Text},
		{Name: "profile_id", Type: schema.Text},
		{Name: "content_id", Type: schema.Text},
		{Name: "device_type", Type: schema.Text},
		{Name: "event_type", Type: schema.Text},
		{Name: "timestamp_ms", Type: schema.Timestamp},
		{Name: "watch_duration_sec", Type: schema.Integer},
		{Name: "bitrate_kbps", Type: schema.Integer},
		{Name: "buffer_events", Type: schema.Integer},
		{Name: "cdn_pop", Type: schema.Text},
		{Name: "app_version", Type: schema.Text},
		{Name: "seek_events", Type: schema.Integer},
		{Name: "subtitle_lang", Type: schema.Text, Nullable: true},
	},
	PrimaryKey: []string{"event_id"},
	ForeignKeys: []schema.ForeignKey{
		{Column: "profile_id", RefTable: "netflix_profiles", RefColumn: "profile_id"},
		{Column: "content_id", RefTable: "netflix_content_catalog", RefColumn: "content_id"},
	},
	Indexes: []schema.Index{
		{Name: "idx_netflix_events_profile", Columns: []string{"profile_id"}},
		{Name: "idx_netflix_events_ts", Columns: []string{"timestamp_ms"}},
	},
}

// HourlyEngagementAgg is aggregated from the viewing events of the same run.
var HourlyEngagementAgg = &schema.Table{
	Name:        "netflix_hourly_engagement_agg",
	Module:      domains.BigData,
	Domain:      domains.Streaming,
	Pattern:     schema.OLAP,
	Description: "Hourly engagement per title, country and device, aggregated from the viewing events",
	Columns: []schema.Column{
		{Name: "date_hour_key", Type: schema.Timestamp},
		{Name: "content_key", Type: schema.Text},
		{Name: "country_key", Type: schema.Text},
		{Name: "device_key", Type: schema.Text},
		{Name: "unique_viewers", Type: schema.Integer},
		{Name: "total_watch_hours", Type: schema.Real},
		{Name: "completion_rate", Type: schema.Real},
		{Name: "avg_bitrate", Type: schema.Integer},
		{Name: "rebuffer_ratio", Type: schema.Real},
		{Name: "session_starts", Type: schema.Integer},
		{Name: "avg_imdb_score", Type: schema.Real},
	},
	PrimaryKey: []string{"date_hour_key", "content_key", "country_key", "device_key"},
}

// AggHourlyEngagement holds independently sampled hourly title engagement.
var AggHourlyEngagement = &schema.Table{
	Name:        "agg_netflix_hourly_engagement",
	Module:      domains.OLAP,
	Domain:      domains.Streaming,
	Pattern:     schema.OLAP,
	Description: "Sampled hourly views of popular titles (internally consistent, not derived from detail rows)",
	Columns: []schema.Column{
		{Name: "date_hour", Type: schema.Timestamp},
		{Name: "content_id", Type: schema.Text},
		{Name: "views", Type: schema.Integer},
		{Name: "unique_viewers", Type: schema.Integer},
		{Name: "avg_watch_sec", Type: schema.Real},
		{Name: "total_watch_hours", Type: schema.Real},
	},
	PrimaryKey: []string{"date_hour", "content_id"},
}

// StagingEvents holds cleansed playback events of the ETL staging layer.
var StagingEvents = &schema.Table{
	Name:        "staging_netflix_events",
	Module:      domains.Processing,
	Domain:      domains.Streaming,
	Pattern:     schema.Staging,
	Description: "Cleansed playback events awaiting load, tagged with their ETL batch",
	Columns: []schema.Column{
		{Name: "event_id", Type: schema.Text},
		{Name: "user_id", Type: schema.Text},
		{Name: "content_id", Type: schema.Text},
		{Name: "genre", Type: schema.Text},
		{Name: "device", Type: schema.Text},
		{Name: "event_ts", Type: schema.Timestamp},
		{Name: "playback_sec", Type: schema.Integer},
		{Name: "country", Type: schema.Text},
		{Name: "session_id", Type: schema.Text},
		{Name: "video_quality", Type: schema.Text},
		{Name: "etl_batch_id", Type: schema.Text},
		{Name: "processed_ts", Type: schema.Timestamp},
	},
	PrimaryKey: []string{"event_id"},
	Indexes: []schema.Index{
		{Name: "idx_netflix_events_processed_ts", Columns: []string{"processed_ts"}},
		{Name: "idx_netflix_events_user", Columns: []string{"user_id"}},
	},
}

// FeaturesSession holds per-session model features.
var FeaturesSession = &schema.Table{
	Name:        "features_netflix_session",
	Module:      domains.Features,
	Domain:      domains.Streaming,
	Pattern:     schema.Feature,
	Description: "Session-level features and churn label for model training",
	Columns: []schema.Column{
		{Name: "session_id", Type: schema.Text},
		{Name: "user_avg_watch_7d", Type: schema.Real},
		{Name: "content_popularity_rank", Type: schema.Integer},
		{Name: "device_type_enc", Type: schema.Integer},
		{Name: "label_churn_risk", Type: schema.Integer},
	},
	PrimaryKey: []string{"session_id"},
}
