package processing

import "github.com/pgEdge/pgedge-datalab/internal/datagen"

// Profile holds the platform characteristics of one company: which jobs
// it runs, on which engines, how long they take and how they fail.
type Profile struct {
	Company string

	// Prefix starts every identifier of the company (amazon, netflix...).
	Prefix string

	JobNames []string
	JobTypes *datagen.Weighted[string]
	Engines  *datagen.Weighted[string]
	Statuses *datagen.Weighted[string]

	// Job durations are lognormal seconds.
	DurationMu, DurationSigma float64

	// Records read per job are lognormal.
	RecordsMu, RecordsSigma float64

	// Efficiency (records_out / records_in) is Beta(EfficiencyA, EfficiencyB).
	EfficiencyA, EfficiencyB float64

	// Quality score is 100 * Beta(QualityA, QualityB).
	QualityA, QualityB float64

	CPUCores  []int
	MemoryGB  []int
	ErrorMsg  string
	InputURI  string
	OutputURI string

	Datasets            []string
	CreatedBy           []string
	SourceDataset       string
	Transformation      string
	QualityChecks       []string
	PartitionCols       []string
	ManifestRowsMu      float64
	ManifestBytesMu     float64
	PartitionCountRange [2]int

	// ModelTasks name the models trained on the company's features.
	ModelTasks []string
}

var statusNames = []string{StatusCompleted, StatusFailed, StatusRunning, StatusCancelled}

var jobTypes = []string{"batch", "stream", "micro-batch"}

// Job statuses.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusRunning   = "running"
	StatusCancelled = "cancelled"
)

// Amazon is the e-commerce platform profile.
var Amazon = Profile{
	Company: "Amazon",
	Prefix:  "amazon",
	JobNames: []string{
		"inventory-sync-batch", "order-processing-stream", "price-optimization",
		"fraud-detection-realtime", "recommendation-training", "supply-chain-etl",
		"customer-analytics-batch", "product-catalog-sync", "review-sentiment-analysis",
		"warehouse-optimization", "demand-forecasting", "seller-performance-etl",
	},
	JobTypes:       datagen.MustWeighted(jobTypes, []float64{0.7, 0.25, 0.05}),
	Engines:        datagen.MustWeighted([]string{"spark", "flink", "airflow", "glue", "dbt"}, []float64{0.35, 0.25, 0.2, 0.15, 0.05}),
	Statuses:       datagen.MustWeighted(statusNames, []float64{0.86, 0.10, 0.03, 0.01}),
	DurationMu:     8.2,
	DurationSigma:  1.2,
	RecordsMu:      12,
	RecordsSigma:   2.5,
	EfficiencyA:    9,
	EfficiencyB:    1.5,
	QualityA:       8.5,
	QualityB:       1.2,
	CPUCores:       []int{16, 32, 64, 128},
	MemoryGB:       []int{64, 128, 256, 512},
	ErrorMsg:       "S3Exception: Access denied to data lake",
	InputURI:       "s3://amazon-data-warehouse/raw/orders",
	OutputURI:      "s3://amazon-data-warehouse/staging/orders",
	Datasets:       []string{"raw_orders", "staging_inventory", "customer_profiles", "product_catalog", "fulfillment_data", "pricing_data"},
	CreatedBy:      []string{"order_pipeline", "inventory_service", "pricing_engine", "customer_analytics"},
	SourceDataset:  "raw_amazon_events",
	Transformation: "Order normalization, inventory tracking, customer segmentation",
	QualityChecks:  []string{"financial_validation", "inventory_consistency", "customer_privacy"},
	PartitionCols:  []string{"date", "fulfillment_center"},
	ManifestRowsMu: 14, ManifestBytesMu: 23,
	PartitionCountRange: [2]int{50, 200},
	ModelTasks:          []string{"return_prediction", "demand_forecast", "customer_ltv", "fraud_detection"},
}

// Netflix is the streaming platform profile.
var Netflix = Profile{
	Company: "Netflix",
	Prefix:  "netflix",
	JobNames: []string{
		"content-encoding-batch", "user-behavior-stream", "recommendation-training",
		"content-quality-analysis", "viewing-pattern-etl", "subscription-analytics",
		"content-popularity-batch", "user-engagement-stream", "a-b-test-analysis",
		"content-metadata-etl", "viewing-time-analytics", "churn-prediction-batch",
	},
	JobTypes:       datagen.MustWeighted(jobTypes, []float64{0.5, 0.4, 0.1}),
	Engines:        datagen.MustWeighted([]string{"spark", "flink", "airflow", "kafka-streams"}, []float64{0.45, 0.3, 0.2, 0.05}),
	Statuses:       datagen.MustWeighted(statusNames, []float64{0.88, 0.08, 0.03, 0.01}),
	DurationMu:     8.5,
	DurationSigma:  1.1,
	RecordsMu:      11,
	RecordsSigma:   2.2,
	EfficiencyA:    9,
	EfficiencyB:    2,
	QualityA:       8,
	QualityB:       1,
	CPUCores:       []int{8, 16, 32, 64},
	MemoryGB:       []int{32, 64, 128, 256},
	ErrorMsg:       "ResourceExhaustedException: Memory limit exceeded",
	InputURI:       "s3://netflix-data-lake/raw/content",
	OutputURI:      "s3://netflix-data-lake/staging/content",
	Datasets:       []string{"raw_viewing_data", "staging_content", "user_profiles", "content_metadata", "recommendation_features"},
	CreatedBy:      []string{"content_pipeline", "analytics_team", "recommendation_service"},
	SourceDataset:  "raw_netflix_events",
	Transformation: "Content metadata enrichment, user behavior aggregation",
	QualityChecks:  []string{"content_validation", "user_privacy_check", "duplicate_removal"},
	PartitionCols:  []string{"date", "country"},
	ManifestRowsMu: 13, ManifestBytesMu: 22,
	PartitionCountRange: [2]int{20, 150},
	ModelTasks:          []string{"churn_prediction", "content_recommendation", "watch_time_forecast", "thumbnail_ranking"},
}

// Uber is the ride-hailing platform profile.
var Uber = Profile{
	Company: "Uber",
	Prefix:  "uber",
	JobNames: []string{
		"rides-raw-to-staging", "driver-location-stream", "fare-calculation-batch",
		"surge-pricing-realtime", "trip-analytics-daily", "payment-reconciliation",
		"driver-performance-etl", "rider-churn-prediction", "fraud-detection-stream",
		"geo-analytics-batch", "demand-forecasting", "earnings-summary-etl",
	},
	JobTypes:       datagen.MustWeighted(jobTypes, []float64{0.6, 0.3, 0.1}),
	Engines:        datagen.MustWeighted([]string{"spark", "flink", "airflow", "kafka-streams"}, []float64{0.4, 0.25, 0.25, 0.1}),
	Statuses:       datagen.MustWeighted(statusNames, []float64{0.85, 0.10, 0.03, 0.02}),
	DurationMu:     8,
	DurationSigma:  1.2,
	RecordsMu:      10,
	RecordsSigma:   2,
	EfficiencyA:    8,
	EfficiencyB:    2,
	QualityA:       9,
	QualityB:       1,
	CPUCores:       []int{4, 8, 16, 32},
	MemoryGB:       []int{16, 32, 64, 128},
	ErrorMsg:       "OutOfMemoryError: Java heap space",
	InputURI:       "s3://uber-data-lake/raw/rides",
	OutputURI:      "s3://uber-data-lake/staging/rides",
	Datasets:       []string{"raw_rides", "staging_rides", "aggregated_rides", "driver_metrics", "surge_data"},
	CreatedBy:      []string{"etl_service", "data_engineer", "airflow_dag"},
	SourceDataset:  "raw_uber_events",
	Transformation: "Clean nulls, standardize timestamps, calculate fares",
	QualityChecks:  []string{"null_check", "schema_validation", "row_count_validation"},
	PartitionCols:  []string{"date", "city"},
	ManifestRowsMu: 12, ManifestBytesMu: 20,
	PartitionCountRange: [2]int{10, 100},
	ModelTasks:          []string{"fare_prediction", "cancellation_prediction", "driver_matching", "surge_prediction"},
}

// Airbnb is the lodging marketplace profile.
var Airbnb = Profile{
	Company: "Airbnb",
	Prefix:  "airbnb",
	JobNames: []string{
		"pricing-model-batch", "host-quality-score", "booking-prediction",
		"search-ranking-etl", "trust-safety-analysis", "property-analytics",
		"guest-behavior-stream", "revenue-optimization", "availability-sync",
		"review-processing", "market-analysis", "fraud-detection",
	},
	JobTypes:       datagen.MustWeighted(jobTypes, []float64{0.65, 0.3, 0.05}),
	Engines:        datagen.MustWeighted([]string{"spark", "flink", "airflow", "kafka-streams"}, []float64{0.4, 0.25, 0.3, 0.05}),
	Statuses:       datagen.MustWeighted(statusNames, []float64{0.87, 0.09, 0.03, 0.01}),
	DurationMu:     7.5,
	DurationSigma:  1.4,
	RecordsMu:      9.5,
	RecordsSigma:   2,
	EfficiencyA:    8.5,
	EfficiencyB:    2,
	QualityA:       8.2,
	QualityB:       1.3,
	CPUCores:       []int{4, 8, 16, 32},
	MemoryGB:       []int{16, 32, 64, 128},
	ErrorMsg:       "TimeoutException: Spark job timed out",
	InputURI:       "s3://airbnb-data-lake/raw/bookings",
	OutputURI:      "s3://airbnb-data-lake/staging/bookings",
	Datasets:       []string{"raw_bookings", "staging_properties", "host_profiles", "guest_reviews", "pricing_data"},
	CreatedBy:      []string{"booking_service", "host_platform", "search_ranking"},
	SourceDataset:  "raw_airbnb_events",
	Transformation: "Booking validation, property enrichment, pricing optimization",
	QualityChecks:  []string{"booking_validation", "property_verification", "pricing_consistency"},
	PartitionCols:  []string{"date", "city"},
	ManifestRowsMu: 11, ManifestBytesMu: 19,
	PartitionCountRange: [2]int{15, 80},
	ModelTasks:          []string{"booking_cancellation", "price_suggestion", "search_ranking", "host_quality"},
}

// NYSE is the exchange profile.
var NYSE = Profile{
	Company: "NYSE",
	Prefix:  "nyse",
	JobNames: []string{
		"market-data-processing", "trade-settlement-stream", "risk-calculation",
		"order-matching-realtime", "price-discovery-batch", "compliance-monitoring",
		"market-surveillance", "volatility-calculation", "index-computation",
		"clearing-settlement", "regulatory-reporting", "liquidity-analysis",
	},
	JobTypes:       datagen.MustWeighted([]string{"stream", "micro-batch", "batch"}, []float64{0.6, 0.3, 0.1}),
	Engines:        datagen.MustWeighted([]string{"flink", "kafka-streams", "spark", "storm"}, []float64{0.4, 0.3, 0.25, 0.05}),
	Statuses:       datagen.MustWeighted(statusNames, []float64{0.92, 0.05, 0.02, 0.01}),
	DurationMu:     5.5,
	DurationSigma:  1.5,
	RecordsMu:      13,
	RecordsSigma:   2,
	EfficiencyA:    9.5,
	EfficiencyB:    1,
	QualityA:       9.5,
	QualityB:       1,
	CPUCores:       []int{16, 32, 64, 128},
	MemoryGB:       []int{64, 128, 256, 512},
	ErrorMsg:       "KafkaException: Broker not available",
	InputURI:       "kafka://nyse-market-data/trades",
	OutputURI:      "s3://nyse-processed-data/settlements",
	Datasets:       []string{"raw_trades", "order_book", "settlement_data", "risk_metrics", "market_indices"},
	CreatedBy:      []string{"market_data_service", "risk_engine", "compliance_team"},
	SourceDataset:  "raw_nyse_feed",
	Transformation: "Trade normalization, settlement matching, risk aggregation",
	QualityChecks:  []string{"price_validation", "sequence_check", "regulatory_compliance"},
	PartitionCols:  []string{"date", "ticker"},
	ManifestRowsMu: 15, ManifestBytesMu: 24,
	PartitionCountRange: [2]int{100, 500},
	ModelTasks:          []string{"price_direction", "volatility_forecast", "liquidity_score", "anomaly_detection"},
}
