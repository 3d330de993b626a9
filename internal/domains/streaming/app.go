package streaming

import (
	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/domains"
	"github.com/pgEdge/pgedge-datalab/internal/processing"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// Company is the simulated business.
const Company = "Netflix"

// Units returns the population units of the domain, one per module.
func Units() []domains.Unit {
	return []domains.Unit{
		domains.New(domains.Meta{
			Domain:      domains.Streaming,
			Company:     Company,
			Module:      domains.BigData,
			Description: "Video streaming: subscribers, profiles, content catalog and playback events",
			Tables:      []*schema.Table{Users, Profiles, Content, ViewingEvents, HourlyEngagementAgg},
			Probe:       ViewingEvents,
		}, func(s *datagen.Session, scale datagen.Scale) (*schema.Dataset, error) {
			return Generate(s, CountsFor(scale))
		}),
		domains.New(domains.Meta{
			Domain:      domains.Streaming,
			Company:     Company,
			Module:      domains.OLAP,
			Description: "Sampled hourly engagement of popular titles",
			Tables:      []*schema.Table{AggHourlyEngagement},
		}, generateOLAP),
		domains.New(domains.Meta{
			Domain:      domains.Streaming,
			Company:     Company,
			Module:      domains.Processing,
			Description: "Staged playback events with their ETL job runs and manifests",
			Tables:      []*schema.Table{processing.Jobs, processing.Manifests, StagingEvents},
			Probe:       StagingEvents,
		}, generateProcessing),
		domains.New(domains.Meta{
			Domain:      domains.Streaming,
			Company:     Company,
			Module:      domains.Features,
			Description: "Session churn features and trained models",
			Tables:      []*schema.Table{FeaturesSession, processing.Artifacts},
		}, generateFeatures),
		domains.New(domains.Meta{
			Domain:      domains.Streaming,
			Company:     Company,
			Module:      domains.OLTP,
			Description: "Normalized accounts: users, profiles, subscriptions, catalog and views",
			Tables:      []*schema.Table{OLTPUsers, OLTPProfiles, Subscriptions, OLTPContent, Views},
		}, func(s *datagen.Session, scale datagen.Scale) (*schema.Dataset, error) {
			return GenerateOLTP(s, OLTPCountsFor(scale))
		}),
	}
}

func init() {
	for _, u := range Units() {
		domains.Register(u)
	}
}
