package processing

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
	"github.com/pgEdge/pgedge-datalab/internal/testutil"
)

var anchor = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

var profiles = []Profile{Amazon, Netflix, Uber, Airbnb, NYSE}

func TestJobs(t *testing.T) {
	for _, p := range profiles {
		t.Run(p.Company, func(t *testing.T) {
			jobs, err := GenerateJobs(datagen.NewSession(3, anchor), p, 300)
			if err != nil {
				t.Fatalf("GenerateJobs failed: %v", err)
			}
			for _, j := range jobs {
				if j.Company != p.Company || !strings.HasPrefix(j.JobID, p.Prefix+"_job_") {
					t.Errorf("job %s belongs to %s", j.JobID, j.Company)
				}
				if j.StartTS.After(anchor) || anchor.Sub(j.StartTS) > 168*time.Hour {
					t.Errorf("job %s started %v, want within the last week", j.JobID, j.StartTS)
				}
				if j.BatchID != BatchID(j.StartTS) {
					t.Errorf("job %s batch %s, want %s", j.JobID, j.BatchID, BatchID(j.StartTS))
				}

				finished := j.Status == StatusCompleted || j.Status == StatusFailed
				if finished != (j.EndTS != nil && j.DurationMS != nil) {
					t.Errorf("%s job %s: end %v duration %v", j.Status, j.JobID, j.EndTS, j.DurationMS)
				}
				if (j.Status == StatusFailed) != (j.ErrorMsg != nil) {
					t.Errorf("%s job %s error message %v", j.Status, j.JobID, j.ErrorMsg)
				}
				if j.Status == StatusCompleted {
					if j.RecordsOut > j.RecordsIn {
						t.Errorf("job %s wrote %d of %d records", j.JobID, j.RecordsOut, j.RecordsIn)
					}
					if j.QualityScore == nil || *j.QualityScore < 0 || *j.QualityScore > 100 {
						t.Errorf("job %s quality score %v", j.JobID, j.QualityScore)
					}
				}
			}
		})
	}
}

func TestBatchID(t *testing.T) {
	got := BatchID(time.Date(2026, 3, 9, 7, 45, 12, 0, time.UTC))
	if got != "batch_20260309_07" {
		t.Errorf("BatchID = %q", got)
	}

	jobs := []Job{{BatchID: "b1"}, {BatchID: "b2"}, {BatchID: "b1"}}
	ids := BatchIDs(jobs)
	if len(ids) != 2 || ids[0] != "b1" || ids[1] != "b2" {
		t.Errorf("BatchIDs = %v, want [b1 b2]", ids)
	}
}

func TestManifestsCarryLineage(t *testing.T) {
	manifests, err := GenerateManifests(datagen.NewSession(3, anchor), NYSE, 20)
	if err != nil {
		t.Fatalf("GenerateManifests failed: %v", err)
	}
	for _, m := range manifests {
		var checks map[string]string
		if err := json.Unmarshal([]byte(m.QualityChecks), &checks); err != nil {
			t.Fatalf("manifest %s checks: %v", m.ManifestID, err)
		}
		if len(checks) != len(NYSE.QualityChecks) {
			t.Errorf("manifest %s has %d checks, want %d", m.ManifestID, len(checks), len(NYSE.QualityChecks))
		}
		var partitions struct {
			Cols  []string `json:"partition_cols"`
			Count int      `json:"partition_count"`
		}
		if err := json.Unmarshal([]byte(m.PartitionInfo), &partitions); err != nil {
			t.Fatalf("manifest %s partitions: %v", m.ManifestID, err)
		}
		lo, hi := NYSE.PartitionCountRange[0], NYSE.PartitionCountRange[1]
		if partitions.Count < lo || partitions.Count > hi {
			t.Errorf("manifest %s partition count %d outside [%d, %d]", m.ManifestID, partitions.Count, lo, hi)
		}
	}
}

func TestArtifacts(t *testing.T) {
	artifacts, err := GenerateArtifacts(datagen.NewSession(3, anchor), Uber, 25)
	if err != nil {
		t.Fatalf("GenerateArtifacts failed: %v", err)
	}
	for _, a := range artifacts {
		if !strings.HasPrefix(a.ModelName, "Uber_") {
			t.Errorf("model %s named %s", a.ModelID, a.ModelName)
		}
		var metrics map[string]float64
		if err := json.Unmarshal([]byte(a.Metrics), &metrics); err != nil {
			t.Fatalf("model %s metrics: %v", a.ModelID, err)
		}
		if acc := metrics["accuracy"]; acc < 0.8 || acc > 0.95 {
			t.Errorf("model %s accuracy %.3f", a.ModelID, acc)
		}
	}
}

func TestSharedTablesArePartitioned(t *testing.T) {
	for _, table := range []*schema.Table{Jobs, Manifests, Artifacts} {
		if !table.Shared() || table.Partition != "company" {
			t.Errorf("%s partition = %q, want company", table.Name, table.Partition)
		}
		if err := table.Validate(); err != nil {
			t.Errorf("%s: %v", table.Name, err)
		}
	}
}

func TestAddHistory(t *testing.T) {
	ds := &schema.Dataset{}
	jobs, err := AddHistory(ds, datagen.NewSession(3, anchor), Airbnb, 12, 4)
	if err != nil {
		t.Fatalf("AddHistory failed: %v", err)
	}
	if err := AddArtifacts(ds, datagen.NewSession(4, anchor), Airbnb, 3); err != nil {
		t.Fatalf("AddArtifacts failed: %v", err)
	}
	testutil.CheckDataset(t, ds)

	if len(jobs) != 12 {
		t.Errorf("got %d jobs, want 12", len(jobs))
	}
	for table, want := range map[string]int{"processing_jobs": 12, "etl_manifests": 4, "model_artifacts": 3} {
		if n := testutil.Rows(ds, table); n != want {
			t.Errorf("%s = %d rows, want %d", table, n, want)
		}
	}
}

func TestInvalidCounts(t *testing.T) {
	s := datagen.NewSession(3, anchor)
	tests := []struct {
		name string
		fn   func() error
	}{
		{"jobs", func() error { _, err := GenerateJobs(s, Amazon, 0); return err }},
		{"manifests", func() error { _, err := GenerateManifests(s, Amazon, -2); return err }},
		{"artifacts", func() error { _, err := GenerateArtifacts(s, Amazon, 0); return err }},
		{"history", func() error { _, err := AddHistory(&schema.Dataset{}, s, Amazon, 0, 1); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.fn(); !errors.Is(err, datagen.ErrInvalidArgument) {
				t.Errorf("err = %v, want ErrInvalidArgument", err)
			}
		})
	}
}
