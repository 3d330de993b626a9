package processing

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// Job is one processing_jobs row.
type Job struct {
	JobID        string
	Company      string
	JobName      string
	JobType      string
	Engine       string
	InputPath    string
	OutputPath   string
	RecordsIn    int64
	RecordsOut   int64
	StartTS      time.Time
	EndTS        *time.Time
	DurationMS   *int64
	Status       string
	ErrorMsg     *string
	CPUCores     int
	MemoryGB     int
	QualityScore *float64
	BatchID      string
}

// Values implements schema.Record.
func (j Job) Values() []any {
	return []any{
		j.JobID, j.Company, j.JobName, j.JobType, j.Engine, j.InputPath, j.OutputPath,
		j.RecordsIn, j.RecordsOut, j.StartTS, j.EndTS, j.DurationMS, j.Status, j.ErrorMsg,
		j.CPUCores, j.MemoryGB, j.QualityScore, j.BatchID,
	}
}

// Manifest is one etl_manifests row.
type Manifest struct {
	ManifestID     string
	Company        string
	DatasetName    string
	SchemaVersion  string
	RowCount       int64
	SizeBytes      int64
	CreatedBy      string
	CreatedTS      time.Time
	SourceDataset  string
	Transformation string
	QualityChecks  string
	PartitionInfo  string
}

// Values implements schema.Record.
func (m Manifest) Values() []any {
	return []any{
		m.ManifestID, m.Company, m.DatasetName, m.SchemaVersion, m.RowCount, m.SizeBytes,
		m.CreatedBy, m.CreatedTS, m.SourceDataset, m.Transformation, m.QualityChecks, m.PartitionInfo,
	}
}

// Artifact is one model_artifacts row.
type Artifact struct {
	ModelID         string
	Company         string
	ModelName       string
	Version         string
	TrainTS         time.Time
	Hyperparameters string
	Metrics         string
	ArtifactPath    string
	Split           string
	Seed            int
}

// Values implements schema.Record.
func (a Artifact) Values() []any {
	return []any{
		a.ModelID, a.Company, a.ModelName, a.Version, a.TrainTS, a.Hyperparameters,
		a.Metrics, a.ArtifactPath, a.Split, a.Seed,
	}
}

// BatchID returns the ETL batch identifier of the hour t falls in.
func BatchID(t time.Time) string {
	return "batch_" + t.Format("20060102_15")
}

// GenerateJobs generates n job executions started within the last week.
func GenerateJobs(s *datagen.Session, p Profile, n int) ([]Job, error) {
	if err := datagen.RequireCount("job", n); err != nil {
		return nil, err
	}

	jobs := make([]Job, n)
	for i := range jobs {
		start := s.Now.Add(-time.Duration(s.Int(0, 167)) * time.Hour).Truncate(time.Second)
		duration := int64(s.Lognormal(p.DurationMu, p.DurationSigma) * 1000)
		recordsIn := int64(s.Lognormal(p.RecordsMu, p.RecordsSigma))
		efficiency := s.Beta(p.EfficiencyA, p.EfficiencyB)
		status := p.Statuses.Pick(s.Faker)
		day := start.Format("2006/01/02")

		j := Job{
			JobID:      fmt.Sprintf("%s_job_%06d_%s", p.Prefix, i, start.Format("20060102_150405")),
			Company:    p.Company,
			JobName:    datagen.Choose(s.Faker, p.JobNames),
			JobType:    p.JobTypes.Pick(s.Faker),
			Engine:     p.Engines.Pick(s.Faker),
			InputPath:  p.InputURI + "/" + day,
			OutputPath: p.OutputURI + "/" + day,
			RecordsIn:  recordsIn,
			StartTS:    start,
			Status:     status,
			CPUCores:   datagen.Choose(s.Faker, p.CPUCores),
			MemoryGB:   datagen.Choose(s.Faker, p.MemoryGB),
			BatchID:    BatchID(start),
		}

		switch status {
		case StatusCompleted:
			j.RecordsOut = int64(float64(recordsIn) * efficiency)
			quality := datagen.Round(s.Beta(p.QualityA, p.QualityB)*100, 2)
			j.QualityScore = &quality
		case StatusFailed:
			msg := p.ErrorMsg
			j.ErrorMsg = &msg
		}
		if status == StatusCompleted || status == StatusFailed {
			end := start.Add(time.Duration(duration) * time.Millisecond).Truncate(time.Second)
			j.EndTS = &end
			j.DurationMS = &duration
		}
		jobs[i] = j
	}
	return jobs, nil
}

// BatchIDs returns the distinct batch identifiers of jobs in order.
func BatchIDs(jobs []Job) []string {
	seen := make(map[string]bool, len(jobs))
	var ids []string
	for _, j := range jobs {
		if !seen[j.BatchID] {
			seen[j.BatchID] = true
			ids = append(ids, j.BatchID)
		}
	}
	return ids
}

// GenerateManifests generates n lineage manifests created within the
// last month.
func GenerateManifests(s *datagen.Session, p Profile, n int) ([]Manifest, error) {
	if err := datagen.RequireCount("manifest", n); err != nil {
		return nil, err
	}

	checks := make(map[string]string, len(p.QualityChecks))
	for _, c := range p.QualityChecks {
		checks[c] = "passed"
	}
	checksJSON, err := json.Marshal(checks)
	if err != nil {
		return nil, fmt.Errorf("failed to encode quality checks: %w", err)
	}

	manifests := make([]Manifest, n)
	for i := range manifests {
		partitions, err := json.Marshal(map[string]any{
			"partition_cols":  p.PartitionCols,
			"partition_count": s.Int(p.PartitionCountRange[0], p.PartitionCountRange[1]),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to encode partition info: %w", err)
		}
		manifests[i] = Manifest{
			ManifestID:     fmt.Sprintf("%s_manifest_%04d", p.Prefix, i),
			Company:        p.Company,
			DatasetName:    datagen.Choose(s.Faker, p.Datasets),
			SchemaVersion:  fmt.Sprintf("v%d.%d", s.Int(1, 5), s.Int(0, 9)),
			RowCount:       int64(s.Lognormal(p.ManifestRowsMu, 1.5)),
			SizeBytes:      int64(s.Lognormal(p.ManifestBytesMu, 2)),
			CreatedBy:      datagen.Choose(s.Faker, p.CreatedBy),
			CreatedTS:      s.DatetimeBetween(-30*24*time.Hour, 0),
			SourceDataset:  p.SourceDataset,
			Transformation: p.Transformation,
			QualityChecks:  string(checksJSON),
			PartitionInfo:  string(partitions),
		}
	}
	return manifests, nil
}

var splits = []string{"train", "validation", "test"}

// GenerateArtifacts generates n trained model versions.
func GenerateArtifacts(s *datagen.Session, p Profile, n int) ([]Artifact, error) {
	if err := datagen.RequireCount("model", n); err != nil {
		return nil, err
	}

	artifacts := make([]Artifact, n)
	for i := range artifacts {
		hyper, err := json.Marshal(map[string]any{
			"learning_rate": datagen.Round(s.Float64(0.001, 0.1), 3),
			"n_estimators":  s.Int(100, 999),
			"max_depth":     s.Int(3, 9),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to encode hyperparameters: %w", err)
		}
		metrics, err := json.Marshal(map[string]float64{
			"accuracy":  datagen.Round(s.Float64(0.8, 0.95), 3),
			"precision": datagen.Round(s.Float64(0.7, 0.9), 3),
			"recall":    datagen.Round(s.Float64(0.6, 0.85), 3),
			"f1_score":  datagen.Round(s.Float64(0.65, 0.88), 3),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to encode metrics: %w", err)
		}
		artifacts[i] = Artifact{
			ModelID:         fmt.Sprintf("model_%s_%04d", p.Prefix, i),
			Company:         p.Company,
			ModelName:       p.Company + "_" + datagen.Choose(s.Faker, p.ModelTasks),
			Version:         fmt.Sprintf("v%d.%d", s.Int(1, 4), s.Int(0, 9)),
			TrainTS:         s.DatetimeBetween(-60*24*time.Hour, 0),
			Hyperparameters: string(hyper),
			Metrics:         string(metrics),
			ArtifactPath:    fmt.Sprintf("s3://ml-artifacts/%s/model_%04d.pkl", p.Company, i),
			Split:           datagen.Choose(s.Faker, splits),
			Seed:            s.Int(1, 999),
		}
	}
	return artifacts, nil
}

// AddHistory generates the job runs and manifests of a company into ds.
// The jobs are returned so staging rows can reference their batches.
func AddHistory(ds *schema.Dataset, s *datagen.Session, p Profile, jobs, manifests int) ([]Job, error) {
	js, err := GenerateJobs(s, p, jobs)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s jobs: %w", p.Company, err)
	}
	ms, err := GenerateManifests(s, p, manifests)
	if err != nil {
		return nil, fmt.Errorf("failed to generate %s manifests: %w", p.Company, err)
	}
	ds.Add(Jobs, schema.Rows(js))
	ds.Add(Manifests, schema.Rows(ms))
	return js, nil
}

// AddArtifacts generates the model artifacts of a company into ds.
func AddArtifacts(ds *schema.Dataset, s *datagen.Session, p Profile, n int) error {
	as, err := GenerateArtifacts(s, p, n)
	if err != nil {
		return fmt.Errorf("failed to generate %s models: %w", p.Company, err)
	}
	ds.Add(Artifacts, schema.Rows(as))
	return nil
}
