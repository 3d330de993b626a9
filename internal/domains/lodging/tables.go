// Package lodging generates the datasets of Airbnb, the simulated
// short-stay marketplace. Hosts list properties, guests book them, and
// completed stays may be reviewed once.
package lodging

import (
	"github.com/pgEdge/pgedge-datalab/internal/domains"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// Hosts holds property owners.
var Hosts = &schema.Table{
	Name:        "airbnb_hosts",
	Module:      domains.BigData,
	Domain:      domains.Lodging,
	Pattern:     schema.OLTP,
	Description: "Hosts with tenure, superhost flag and responsiveness",
	Columns: []schema.Column{
		{Name: "host_id", Type: schema.Text},
		{Name: "host_name", Type: schema.Text},
		{Name: "host_since", Type: schema.Date},
		{Name: "superhost_flag", Type: schema.Bool},
		{Name: "response_time_hours", Type: schema.Real},
		{Name: "response_rate_pct", Type: schema.Real},
		{Name: "cancellation_policy", Type: schema.Text},
	},
	PrimaryKey: []string{"host_id"},
}

// Guests holds registered guests.
var Guests = &schema.Table{
	Name:        "airbnb_guests",
	Module:      domains.BigData,
	Domain:      domains.Lodging,
	Pattern:     schema.OLTP,
	Description: "Guests with country, booking history and review score",
	Columns: []schema.Column{
		{Name: "guest_id", Type: schema.Text},
		{Name: "signup_date", Type: schema.Date},
		{Name: "country", Type: schema.Text},
		{Name: "n_prior_bookings", Type: schema.Integer},
		{Name: "avg_review_score", Type: schema.Real},
		{Name: "cancel_history_cnt", Type: schema.Integer},
	},
	PrimaryKey: []string{"guest_id"},
}

// Properties holds listings.
var Properties = &schema.Table{
	Name:        "airbnb_properties",
	Module:      domains.BigData,
	Domain:      domains.Lodging,
	Pattern:     schema.OLTP,
	Description: "Listings with location, layout, amenities, pricing and booking rules",
	Columns: []schema.Column{
		{Name: "property_id", Type: schema.Text},
		{Name: "host_id", Type: schema.Text},
		{Name: "city", Type: schema.Text},
		{Name: "neighborhood", Type: schema.Text},
		{Name: "property_type", Type: schema.Text},
		{Name: "room_type", Type: schema.Text},
		{Name: "bedrooms", Type: schema.Integer},
		{Name: "bathrooms", Type: schema.Real},
		{Name: "max_guests", Type: schema.Integer},
		{Name: "amenities_json", Type: schema.JSON},
		{Name: "base_price_aed", Type: schema.Real},
		{Name: "cleaning_fee_aed", Type: schema.Real},
		{Name: "security_deposit_aed", Type: schema.Real},
		{Name: "minimum_nights", Type: schema.Integer},
		{Name: "maximum_nights", Type: schema.Integer},
		{Name: "instant_book", Type: schema.Bool},
		{Name: "cancellation_policy", Type: schema.Text},
		{Name: "listing_date", Type: schema.Date},
		{Name: "last_updated", Type: schema.Timestamp},
	},
	PrimaryKey: []string{"property_id"},
	ForeignKeys: []schema.ForeignKey{
		{Column: "host_id", RefTable: "airbnb_hosts", RefColumn: "host_id"},
	},
	Indexes: []schema.Index{
		{Name: "idx_airbnb_properties_host", Columns: []string{"host_id"}},
		{Name: "idx_airbnb_properties_city", Columns: []string{"city", "property_type"}},
	},
}

// Bookings holds reservations.
var Bookings = &schema.Table{
	Name:        "airbnb_bookings",
	Module:      domains.BigData,
	Domain:      domains.Lodging,
	Pattern:     schema.OLTP,
	Description: "Reservations with stay dates, status and price breakdown",
	Columns: []schema.Column{
		{Name: "booking_id", Type: schema.Text},
		{Name: "guest_id", Type: schema.Text},
		{Name: "property_id", Type: schema.Text},
		{Name: "checkin_date", Type: schema.Date},
		{Name: "checkout_date", Type: schema.Date},
		{Name: "nights", Type: schema.Integer},
		{Name: "guests_count", Type: schema.Integer},
		{Name: "booking_status", Type: schema.Text},
		{Name: "nightly_rate_aed", Type: schema.Real},
		{Name: "total_price_aed", Type: schema.Real},
		{Name: "host_fee_aed", Type: schema.Real},
		{Name: "service_fee_aed", Type: schema.Real},
		{Name: "taxes_aed", Type: schema.Real},
		{Name: "applied_discounts_aed", Type: schema.Real},
		{Name: "booking_channel", Type: schema.Text},
		{Name: "special_requests_text", Type: schema.Text, Nullable: true, Long: true},
	},
	PrimaryKey: []string{"booking_id"},
	ForeignKeys: []schema.ForeignKey{
		{Column: "guest_id", RefTable: "airbnb_guests", RefColumn: "guest_id"},
		{Column: "property_id", RefTable: "airbnb_properties", RefColumn: "property_id"},
	},
	Indexes: []schema.Index{
		{Name: "idx_airbnb_bookings_guest", Columns: []string{"guest_id"}},
		{Name: "idx_airbnb_bookings_property", Columns: []string{"property_id"}},
		{Name: "idx_airbnb_bookings_checkin", Columns: []string{"checkin_date"}},
	},
}

// Reviews holds at most one review per booking.
var Reviews = &schema.Table{
	Name:        "airbnb_reviews",
	Module:      domains.BigData,
	Domain:      domains.Lodging,
	Pattern:     schema.OLTP,
	Description: "Guest reviews of completed stays with category ratings and host responses",
	Columns: []schema.Column{
		{Name: "review_id", Type: schema.Text},
		{Name: "booking_id", Type: schema.Text, Unique: true},
		{Name: "reviewer_type", Type: schema.Text},
		{Name: "overall_rating", Type: schema.Integer},
		{Name: "cleanliness_rating", Type: schema.Integer},
		{Name: "communication_rating", Type: schema.Integer},
		{Name: "checkin_rating", Type: schema.Integer},
		{Name: "accuracy_rating", Type: schema.Integer},
		{Name: "location_rating", Type: schema.Integer},
		{Name: "value_rating", Type: schema.Integer},
		{Name: "review_text", Type: schema.Text, Long: true},
		{Name: "review_date", Type: schema.Date},
		{Name: "response_text", Type: schema.Text, Nullable: true, Long: true},
		{Name: "response_date", Type: schema.Date, Nullable: true},
	},
	PrimaryKey: []string{"review_id"},
	ForeignKeys: []schema.ForeignKey{
		{Column: "booking_id", RefTable: "airbnb_bookings", RefColumn: "booking_id"},
	},
}

// MarketDailyAgg is aggregated from the bookings of the same run.
var MarketDailyAgg = &schema.Table{
	Name:        "airbnb_market_daily_agg",
	Module:      domains.BigData,
	Domain:      domains.Lodging,
	Pattern:     schema.OLAP,
	Description: "Daily market performance per city, property type and season, aggregated from bookings by check-in date",
	Columns: []schema.Column{
		{Name: "date_key", Type: schema.Date},
		{Name: "city_key", Type: schema.Text},
		{Name: "property_type_key", Type: schema.Text},
		{Name: "season_key", Type: schema.Text},
		{Name: "available_listings", Type: schema.Integer},
		{Name: "booked_nights", Type: schema.Integer},
		{Name: "occupancy_rate", Type: schema.Real},
		{Name: "avg_daily_rate_aed", Type: schema.Real},
		{Name: "revenue_per_available_night_aed", Type: schema.Real},
		{Name: "avg_length_of_stay", Type: schema.Real},
		{Name: "new_listings", Type: schema.Integer},
		{Name: "cancelled_bookings_rate", Type: schema.Real},
		{Name: "host_response_rate", Type: schema.Real},
		{Name: "guest_satisfaction_score", Type: schema.Real, Nullable: true},
	},
	PrimaryKey: []string{"date_key", "city_key", "property_type_key", "season_key"},
}

// AggOccupancy holds independently sampled daily occupancy per city.
var AggOccupancy = &schema.Table{
	Name:        "agg_airbnb_occupancy",
	Module:      domains.OLAP,
	Domain:      domains.Lodging,
	Pattern:     schema.OLAP,
	Description: "Sampled daily occupancy and revenue per city (internally consistent, not derived from detail rows)",
	Columns: []schema.Column{
		{Name: "date", Type: schema.Date},
		{Name: "city", Type: schema.Text},
		{Name: "occupied_nights", Type: schema.Integer},
		{Name: "available_nights", Type: schema.Integer},
		{Name: "occupancy_rate", Type: schema.Real},
		{Name: "revenue_aed", Type: schema.Real},
		{Name: "avg_daily_rate_aed", Type: schema.Real},
	},
	PrimaryKey: []string{"date", "city"},
}

// StagingReservations holds cleansed reservations of the ETL staging
// layer.
var StagingReservations = &schema.Table{
	Name:        "staging_airbnb_reservations",
	Module:      domains.Processing,
	Domain:      domains.Lodging,
	Pattern:     schema.Staging,
	Description: "Cleansed reservations awaiting load, tagged with their ETL batch",
	Columns: []schema.Column{
		{Name: "booking_id", Type: schema.Text},
		{Name: "host_id", Type: schema.Text},
		{Name: "guest_id", Type: schema.Text},
		{Name: "property_id", Type: schema.Text},
		{Name: "checkin_date", Type: schema.Date},
		{Name: "checkout_date", Type: schema.Date},
		{Name: "nights", Type: schema.Integer},
		{Name: "price_aed", Type: schema.Real},
		{Name: "status", Type: schema.Text},
		{Name: "property_type", Type: schema.Text},
		{Name: "city", Type: schema.Text},
		{Name: "etl_batch_id", Type: schema.Text},
		{Name: "processed_ts", Type: schema.Timestamp},
	},
	PrimaryKey: []string{"booking_id"},
	Indexes: []schema.Index{
		{Name: "idx_airbnb_reservations_processed_ts", Columns: []string{"processed_ts"}},
		{Name: "idx_airbnb_reservations_batch", Columns: []string{"etl_batch_id"}},
	},
}

// FeaturesBooking holds per-booking model features.
var FeaturesBooking = &schema.Table{
	Name:        "features_airbnb_booking",
	Module:      domains.Features,
	Domain:      domains.Lodging,
	Pattern:     schema.Feature,
	Description: "Booking-level features and cancellation label for model training",
	Columns: []schema.Column{
		{Name: "booking_id", Type: schema.Text},
		{Name: "host_response_time_h", Type: schema.Real},
		{Name: "guest_past_cancellations", Type: schema.Integer},
		{Name: "price_sensitivity_score", Type: schema.Real},
		{Name: "label_cancelled", Type: schema.Integer},
	},
	PrimaryKey: []string{"booking_id"},
}
