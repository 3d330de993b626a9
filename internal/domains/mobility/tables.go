// Package mobility generates the datasets of Uber, the simulated
// ride-hailing service. Drivers and riders are independent entities
// joined by rides; each ride emits a trail of telemetry events.
package mobility

import (
	"github.com/pgEdge/pgedge-datalab/internal/domains"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// Drivers holds registered drivers.
var Drivers = &schema.Table{
	Name:        "uber_drivers",
	Module:      domains.BigData,
	Domain:      domains.Mobility,
	Pattern:     schema.OLTP,
	Description: "Drivers with vehicle, rating, acceptance and earnings",
	Columns: []schema.Column{
		{Name: "driver_id", Type: schema.Text},
		{Name: "onboard_date", Type: schema.Date},
		{Name: "home_city", Type: schema.Text},
		{Name: "license_expiry", Type: schema.Date},
		{Name: "vehicle_type", Type: schema.Text},
		{Name: "vehicle_year", Type: schema.Integer},
		{Name: "rating_avg", Type: schema.Real},
		{Name: "trips_completed", Type: schema.Integer},
		{Name: "acceptance_rate", Type: schema.Real},
		{Name: "cancellation_rate", Type: schema.Real},
		{Name: "earnings_ytd_aed", Type: schema.Real},
		{Name: "status", Type: schema.Text},
	},
	PrimaryKey: []string{"driver_id"},
}

// Riders holds registered riders.
var Riders = &schema.Table{
	Name:        "uber_riders",
	Module:      domains.BigData,
	Domain:      domains.Mobility,
	Pattern:     schema.OLTP,
	Description: "Riders with home city, device and wallet balance",
	Columns: []schema.Column{
		{Name: "rider_id", Type: schema.Text},
		{Name: "signup_date", Type: schema.Date},
		{Name: "home_city", Type: schema.Text},
		{Name: "device_os", Type: schema.Text},
		{Name: "wallet_balance_aed", Type: schema.Real},
		{Name: "rating_avg", Type: schema.Real},
	},
	PrimaryKey: []string{"rider_id"},
}

// Rides joins riders and drivers.
var Rides = &schema.Table{
	Name:        "uber_rides",
	Module:      domains.BigData,
	Domain:      domains.Mobility,
	Pattern:     schema.OLTP,
	Description: "Rides with timestamps, route, fare breakdown, surge and ratings",
	Columns: []schema.Column{
		{Name: "ride_id", Type: schema.Text},
		{Name: "rider_id", Type: schema.Text},
		{Name: "driver_id", Type: schema.Text},
		{Name: "city", Type: schema.Text},
		{Name: "weather", Type: schema.Text},
		{Name: "request_ts", Type: schema.Timestamp},
		{Name: "accept_ts", Type: schema.Timestamp},
		{Name: "pickup_ts", Type: schema.Timestamp, Nullable: true},
		{Name: "dropoff_ts", Type: schema.Timestamp, Nullable: true},
		{Name: "pickup_lat", Type: schema.Real},
		{Name: "pickup_lng", Type: schema.Real},
		{Name: "dropoff_lat", Type: schema.Real},
		{Name: "dropoff_lng", Type: schema.Real},
		{Name: "distance_km", Type: schema.Real},
		{Name: "duration_sec", Type: schema.Integer},
		{Name: "fare_base_aed", Type: schema.Real},
		{Name: "surge_multiplier", Type: schema.Real},
		{Name: "tips_aed", Type: schema.Real},
		{Name: "tolls_aed", Type: schema.Real},
		{Name: "final_fare_aed", Type: schema.Real},
		{Name: "rating_rider", Type: schema.Integer, Nullable: true},
		{Name: "rating_driver", Type: schema.Integer, Nullable: true},
		{Name: "ride_status", Type: schema.Text},
	},
	PrimaryKey: []string{"ride_id"},
	ForeignKeys: []schema.ForeignKey{
		{Column: "rider_id", RefTable: "uber_riders", RefColumn: "rider_id"},
		{Column: "driver_id", RefTable: "uber_drivers", RefColumn: "driver_id"},
	},
	Indexes: []schema.Index{
		{Name: "idx_uber_rides_rider", Columns: []string{"rider_id"}},
		{Name: "idx_uber_rides_driver", Columns: []string{"driver_id"}},
		{Name: "idx_uber_rides_request_ts", Columns: []string{"request_ts"}},
	},
}

// RideEvents is the in-ride telemetry stream.
var RideEvents = &schema.Table{
	Name:        "uber_ride_events",
	Module:      domains.BigData,
	Domain:      domains.Mobility,
	Pattern:     schema.Event,
	Description: "Ride lifecycle telemetry: position, ETA, heading, speed and device state",
	Columns: []schema.Column{
		{Name: "event_id", Type: schema.Text},
		{Name: "ride_id", Type: schema.Text},
		{Name: "event_type", Type: schema.Text},
		{Name: "timestamp_ms", Type: schema.Timestamp},
		{Name: "lat", Type: schema.Real},
		{Name: "lng", Type: schema.Real},
		{Name: "surge_zone", Type: schema.Text},
		{Name: "eta_seconds", Type: schema.Integer},
		{Name: "driver_heading", Type: schema.Integer},
		{Name: "speed_kmh", Type: schema.Real},
		{Name: "battery_level", Type: schema.Integer},
		{Name: "app_version", Type: schema.Text},
		{Name: "network_type", Type: schema.Text},
	},
	PrimaryKey: []string{"event_id"},
	ForeignKeys: []schema.ForeignKey{
		{Column: "ride_id", RefTable: "uber_rides", RefColumn: "ride_id"},
	},
	Indexes: []schema.Index{
		{Name: "idx_uber_events_ride", Columns: []string{"ride_id"}},
	},
}

// CityHourlyAgg is aggregated from the rides of the same run.
var CityHourlyAgg = &schema.Table{
	Name:        "uber_city_hourly_agg",
	Module:      domains.BigData,
	Domain:      domains.Mobility,
	Pattern:     schema.OLAP,
	Description: "Hourly demand and fulfilment per city and weather, aggregated from the rides",
	Columns: []schema.Column{
		{Name: "date_hour_key", Type: schema.Timestamp},
		{Name: "city_key", Type: schema.Text},
		{Name: "weather_key", Type: schema.Text},
		{Name: "total_requests", Type: schema.Integer},
		{Name: "fulfilled_rides", Type: schema.Integer},
		{Name: "avg_wait_minutes", Type: schema.Real},
		{Name: "avg_fare_aed", Type: schema.Real},
		{Name: "avg_rating", Type: schema.Real, Nullable: true},
		{Name: "surged_rides", Type: schema.Integer},
		{Name: "cancellation_rate", Type: schema.Real},
		{Name: "active_drivers", Type: schema.Integer},
		{Name: "completed_trips_per_driver", Type: schema.Real},
	},
	PrimaryKey: []string{"date_hour_key", "city_key", "weather_key"},
}

// AggDailyRevenue holds independently sampled daily revenue per city.
var AggDailyRevenue = &schema.Table{
	Name:        "agg_uber_daily_revenue",
	Module:      domains.OLAP,
	Domain:      domains.Mobility,
	Pattern:     schema.OLAP,
	Description: "Sampled daily rides and revenue per city (internally consistent, not derived from detail rows)",
	Columns: []schema.Column{
		{Name: "date", Type: schema.Date},
		{Name: "city", Type: schema.Text},
		{Name: "total_rides", Type: schema.Integer},
		{Name: "completed_rides", Type: schema.Integer},
		{Name: "gross_revenue_aed", Type: schema.Real},
		{Name: "avg_fare_aed", Type: schema.Real},
		{Name: "cancellation_rate", Type: schema.Real},
	},
	PrimaryKey: []string{"date", "city"},
}

// StagingRides holds cleansed rides of the ETL staging layer.
var StagingRides = &schema.Table{
	Name:        "staging_uber_rides",
	Module:      domains.Processing,
	Domain:      domains.Mobility,
	Pattern:     schema.Staging,
	Description: "Cleansed rides awaiting load, tagged with their ETL batch",
	Columns: []schema.Column{
		{Name: "ride_id", Type: schema.Text},
		{Name: "driver_id", Type: schema.Text},
		{Name: "rider_id", Type: schema.Text},
		{Name: "pickup_ts", Type: schema.Timestamp},
		{Name: "dropoff_ts", Type: schema.Timestamp},
		{Name: "pickup_coord", Type: schema.JSON},
		{Name: "dropoff_coord", Type: schema.JSON},
		{Name: "distance_km", Type: schema.Real},
		{Name: "fare_aed", Type: schema.Real},
		{Name: "fare_base", Type: schema.Real},
		{Name: "fare_taxes", Type: schema.Real},
		{Name: "status", Type: schema.Text},
		{Name: "ingest_latency_ms", Type: schema.Integer},
		{Name: "etl_batch_id", Type: schema.Text},
		{Name: "processed_ts", Type: schema.Timestamp},
	},
	PrimaryKey: []string{"ride_id"},
	Indexes: []schema.Index{
		{Name: "idx_uber_rides_processed_ts", Columns: []string{"processed_ts"}},
		{Name: "idx_uber_rides_batch", Columns: []string{"etl_batch_id"}},
	},
}

// FeaturesRide holds per-ride model features.
var FeaturesRide = &schema.Table{
	Name:        "features_uber_ride",
	Module:      domains.Features,
	Domain:      domains.Mobility,
	Pattern:     schema.Feature,
	Description: "Ride-level features and cancellation label for model training",
	Columns: []schema.Column{
		{Name: "ride_id", Type: schema.Text},
		{Name: "pickup_hour", Type: schema.Integer},
		{Name: "is_peak", Type: schema.Integer},
		{Name: "driver_accept_rate", Type: schema.Real},
		{Name: "predicted_fare_aed", Type: schema.Real},
		{Name: "label_cancelled", Type: schema.Integer},
	},
	PrimaryKey: []string{"ride_id"},
}
