package mobility

import (
	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/domains"
	"github.com/pgEdge/pgedge-datalab/internal/processing"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// Company is the simulated business.
const Company = "Uber"

// Units returns the population units of the domain, one per module.
func Units() []domains.Unit {
	return []domains.Unit{
		domains.New(domains.Meta{
			Domain:      domains.Mobility,
			Company:     Company,
			Module:      domains.BigData,
			Description: "Ride hailing: drivers, riders, rides and in-ride telemetry",
			Tables:      []*schema.Table{Drivers, Riders, Rides, RideEvents, CityHourlyAgg},
			Probe:       Rides,
		}, func(s *datagen.Session, scale datagen.Scale) (*schema.Dataset, error) {
			return Generate(s, CountsFor(scale))
		}),
		domains.New(domains.Meta{
			Domain:      domains.Mobility,
			Company:     Company,
			Module:      domains.OLAP,
			Description: "Sampled daily ride revenue per city",
			Tables:      []*schema.Table{AggDailyRevenue},
		}, generateOLAP),
		domains.New(domains.Meta{
			Domain:      domains.Mobility,
			Company:     Company,
			Module:      domains.Processing,
			Description: "Staged rides with their ETL job runs and manifests",
			Tables:      []*schema.Table{processing.Jobs, processing.Manifests, StagingRides},
			Probe:       StagingRides,
		}, generateProcessing),
		domains.New(domains.Meta{
			Domain:      domains.Mobility,
			Company:     Company,
			Module:      domains.Features,
			Description: "Ride cancellation features and trained models",
			Tables:      []*schema.Table{FeaturesRide, processing.Artifacts},
		}, generateFeatures),
		domains.New(domains.Meta{
			Domain:      domains.Mobility,
			Company:     Company,
			Module:      domains.OLTP,
			Description: "Normalized ride booking: users, drivers, rides and payments",
			Tables:      []*schema.Table{Users, OLTPDrivers, OLTPRides, Payments},
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
