// Package processing generates the synthetic execution history of a
// hypothetical data platform: ETL job runs, dataset lineage manifests and
// trained model artifacts. The tables are shared by every domain and
// partitioned by company.
package processing

import "github.com/pgEdge/pgedge-datalab/internal/schema"

// Jobs records ETL job executions.
var Jobs = &schema.Table{
	Name:        "processing_jobs",
	Module:      "processing",
	Pattern:     schema.Metadata,
	Description: "Synthetic ETL job executions (engine, duration, records in/out, status)",
	Columns: []schema.Column{
		{Name: "job_id", Type: schema.Text},
		{Name: "company", Type: schema.Text},
		{Name: "job_name", Type: schema.Text},
		{Name: "job_type", Type: schema.Text},
		{Name: "engine", Type: schema.Text},
		{Name: "input_path", Type: schema.Text},
		{Name: "output_path", Type: schema.Text},
		{Name: "records_in", Type: schema.Integer},
		{Name: "records_out", Type: schema.Integer},
		{Name: "start_ts", Type: schema.Timestamp},
		{Name: "end_ts", Type: schema.Timestamp, Nullable: true},
		{Name: "duration_ms", Type: schema.Integer, Nullable: true},
		{Name: "status", Type: schema.Text},
		{Name: "error_msg", Type: schema.Text, Nullable: true},
		{Name: "resource_cpu_cores", Type: schema.Integer},
		{Name: "resource_memory_gb", Type: schema.Integer},
		{Name: "data_quality_score", Type: schema.Real, Nullable: true},
		{Name: "batch_id", Type: schema.Text},
	},
	PrimaryKey: []string{"job_id"},
	Indexes: []schema.Index{
		{Name: "idx_jobs_company", Columns: []string{"company"}},
		{Name: "idx_jobs_start_ts", Columns: []string{"start_ts"}},
		{Name: "idx_jobs_status", Columns: []string{"status"}},
		{Name: "idx_jobs_engine", Columns: []string{"engine"}},
		{Name: "idx_jobs_batch_id", Columns: []string{"batch_id"}},
	},
	Partition: "company",
}

// Manifests records dataset lineage.
var Manifests = &schema.Table{
	Name:        "etl_manifests",
	Module:      "processing",
	Pattern:     schema.Metadata,
	Description: "Dataset lineage: schema version, size, source and quality checks",
	Columns: []schema.Column{
		{Name: "manifest_id", Type: schema.Text},
		{Name: "company", Type: schema.Text},
		{Name: "dataset_name", Type: schema.Text},
		{Name: "schema_version", Type: schema.Text},
		{Name: "row_count", Type: schema.Integer},
		{Name: "size_bytes", Type: schema.Integer},
		{Name: "created_by", Type: schema.Text},
		{Name: "created_ts", Type: schema.Timestamp},
		{Name: "source_dataset", Type: schema.Text},
		{Name: "transformation_logic", Type: schema.Text, Long: true},
		{Name: "data_quality_checks", Type: schema.JSON},
		{Name: "partition_info", Type: schema.JSON},
	},
	PrimaryKey: []string{"manifest_id"},
	Indexes: []schema.Index{
		{Name: "idx_manifests_dataset", Columns: []string{"dataset_name"}},
		{Name: "idx_manifests_created_ts", Columns: []string{"created_ts"}},
	},
	Partition: "company",
}

// Artifacts records trained models.
var Artifacts = &schema.Table{
	Name:        "model_artifacts",
	Module:      "features",
	Pattern:     schema.Metadata,
	Description: "Trained model versions with hyperparameters and evaluation metrics",
	Columns: []schema.Column{
		{Name: "model_id", Type: schema.Text},
		{Name: "company", Type: schema.Text},
		{Name: "model_name", Type: schema.Text},
		{Name: "version", Type: schema.Text},
		{Name: "train_ts", Type: schema.Timestamp},
		{Name: "hyperparameters", Type: schema.JSON},
		{Name: "metrics", Type: schema.JSON},
		{Name: "artifact_path", Type: schema.Text},
		{Name: "split", Type: schema.Text},
		{Name: "seed", Type: schema.Integer},
	},
	PrimaryKey: []string{"model_id"},
	Indexes: []schema.Index{
		{Name: "idx_artifacts_company", Columns: []string{"company"}},
	},
	Partition: "company",
}
