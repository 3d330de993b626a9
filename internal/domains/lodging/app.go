package lodging

import (
	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/domains"
	"github.com/pgEdge/pgedge-datalab/internal/processing"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// Company is the simulated business.
const Company = "Airbnb"

// Units returns the population units of the domain, one per module.
func Units() []domains.Unit {
	return []domains.Unit{
		domains.New(domains.Meta{
			Domain:      domains.Lodging,
			Company:     Company,
			Module:      domains.BigData,
			Description: "Short-stay marketplace: hosts, guests, listings, bookings and reviews",
			Tables:      []*schema.Table{Hosts, Guests, Properties, Bookings, Reviews, MarketDailyAgg},
			Probe:       Bookings,
		}, func(s *datagen.Session, scale datagen.Scale) (*schema.Dataset, error) {
			return Generate(s, CountsFor(scale))
		}),
		domains.New(domains.Meta{
			Domain:      domains.Lodging,
			Company:     Company,
			Module:      domains.OLAP,
			Description: "Sampled daily occupancy per city",
			Tables:      []*schema.Table{AggOccupancy},
		}, generateOLAP),
		domains.New(domains.Meta{
			Domain:      domains.Lodging,
			Company:     Company,
			Module:      domains.Processing,
			Description: "Staged reservations with their ETL job runs and manifests",
			Tables:      []*schema.Table{processing.Jobs, processing.Manifests, StagingReservations},
			Probe:       StagingReservations,
		}, generateProcessing),
		domains.New(domains.Meta{
			Domain:      domains.Lodging,
			Company:     Company,
			Module:      domains.Features,
			Description: "Booking cancellation features and trained models",
			Tables:      []*schema.Table{FeaturesBooking, processing.Artifacts},
		}, generateFeatures),
		domains.New(domains.Meta{
			Domain:      domains.Lodging,
			Company:     Company,
			Module:      domains.OLTP,
			Description: "Normalized reservations: guests, hosts, properties, bookings and reviews",
			Tables:      []*schema.Table{OLTPGuests, OLTPHosts, OLTPProperties, OLTPBookings, OLTPReviews},
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
