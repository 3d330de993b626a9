package lodging

import (
	"fmt"
	"time"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/domains"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// OLTPGuests holds guest accounts of the oltp store.
var OLTPGuests = &schema.Table{
	Name:        "airbnb_guests",
	Module:      domains.OLTP,
	Domain:      domains.Lodging,
	Pattern:     schema.OLTP,
	Description: "Guest accounts",
	Columns: []schema.Column{
		{Name: "guest_id", Type: schema.Text},
		{Name: "name", Type: schema.Text},
		{Name: "member_since", Type: schema.Date},
	},
	PrimaryKey: []string{"guest_id"},
}

// OLTPHosts holds host accounts of the oltp store.
var OLTPHosts = &schema.Table{
	Name:        "airbnb_hosts",
	Module:      domains.OLTP,
	Domain:      domains.Lodging,
	Pattern:     schema.OLTP,
	Description: "Host accounts",
	Columns: []schema.Column{
		{Name: "host_id", Type: schema.Text},
		{Name: "name", Type: schema.Text},
		{Name: "is_superhost", Type: schema.Bool},
	},
	PrimaryKey: []string{"host_id"},
}

// OLTPProperties holds listings.
var OLTPProperties = &schema.Table{
	Name:        "airbnb_properties",
	Module:      domains.OLTP,
	Domain:      domains.Lodging,
	Pattern:     schema.OLTP,
	Description: "Listed properties",
	Columns: []schema.Column{
		{Name: "property_id", Type: schema.Text},
		{Name: "host_id", Type: schema.Text},
		{Name: "title", Type: schema.Text},
		{Name: "city", Type: schema.Text},
	},
	PrimaryKey: []string{"property_id"},
	ForeignKeys: []schema.ForeignKey{
		{Column: "host_id", RefTable: "airbnb_hosts", RefColumn: "host_id"},
	},
}

// OLTPBookings holds reservations.
var OLTPBookings = &schema.Table{
	Name:        "airbnb_bookings",
	Module:      domains.OLTP,
	Domain:      domains.Lodging,
	Pattern:     schema.OLTP,
	Description: "Reservations of a property by a guest",
	Columns: []schema.Column{
		{Name: "booking_id", Type: schema.Text},
		{Name: "guest_id", Type: schema.Text},
		{Name: "property_id", Type: schema.Text},
		{Name: "checkin_date", Type: schema.Date},
		{Name: "checkout_date", Type: schema.Date},
	},
	PrimaryKey: []string{"booking_id"},
	ForeignKeys: []schema.ForeignKey{
		{Column: "guest_id", RefTable: "airbnb_guests", RefColumn: "guest_id"},
		{Column: "property_id", RefTable: "airbnb_properties", RefColumn: "property_id"},
	},
}

// OLTPReviews holds guest reviews of past stays.
var OLTPReviews = &schema.Table{
	Name:        "airbnb_reviews",
	Module:      domains.OLTP,
	Domain:      domains.Lodging,
	Pattern:     schema.OLTP,
	Description: "Reviews of completed stays",
	Columns: []schema.Column{
		{Name: "review_id", Type: schema.Text},
		{Name: "booking_id", Type: schema.Text, Unique: true},
		{Name: "rating", Type: schema.Integer},
		{Name: "comment", Type: schema.Text},
	},
	PrimaryKey: []string{"review_id"},
	ForeignKeys: []schema.ForeignKey{
		{Column: "booking_id", RefTable: "airbnb_bookings", RefColumn: "booking_id"},
	},
}

// GuestAccount is one oltp airbnb_guests row.
type GuestAccount struct {
	ID          string
	Name        string
	MemberSince time.Time
}

// Values implements schema.Record.
func (g GuestAccount) Values() []any { return []any{g.ID, g.Name, g.MemberSince} }

// HostAccount is one oltp airbnb_hosts row.
type HostAccount struct {
	ID        string
	Name      string
	Superhost bool
}

// Values implements schema.Record.
func (h HostAccount) Values() []any { return []any{h.ID, h.Name, h.Superhost} }

// Listing is one oltp airbnb_properties row.
type Listing struct {
	ID     string
	HostID string
	Title  string
	City   string
}

// Values implements schema.Record.
func (l Listing) Values() []any { return []any{l.ID, l.HostID, l.Title, l.City} }

// Stay is one oltp airbnb_bookings row.
type Stay struct {
	ID         string
	GuestID    string
	PropertyID string
	Checkin    time.Time
	Checkout   time.Time
}

// Values implements schema.Record.
func (s Stay) Values() []any { return []any{s.ID, s.GuestID, s.PropertyID, s.Checkin, s.Checkout} }

// StayReview is one oltp airbnb_reviews row.
type StayReview struct {
	ID        string
	BookingID string
	Rating    int
	Comment   string
}

// Values implements schema.Record.
func (r StayReview) Values() []any { return []any{r.ID, r.BookingID, r.Rating, r.Comment} }

var (
	listingCities  = []string{"Dubai", "Abu Dhabi", "Sharjah", "Ajman", "Ras Al Khaimah"}
	listingTypes   = []string{"Apartment", "Villa", "Studio", "Penthouse"}
	reviewComments = []string{"Great place!", "Clean and comfortable", "Perfect location", "Would stay again", "Amazing host"}
)

// OLTPCounts are the row counts of one oltp run.
type OLTPCounts struct {
	Guests     int
	Hosts      int
	Properties int
	Bookings   int
	Reviews    int
}

var baseOLTPCounts = OLTPCounts{Guests: 100, Hosts: 50, Properties: 80, Bookings: 120, Reviews: 80}

// OLTPCountsFor returns the oltp row counts at scale.
func OLTPCountsFor(scale datagen.Scale) OLTPCounts {
	return OLTPCounts{
		Guests:     scale.Apply(baseOLTPCounts.Guests),
		Hosts:      scale.Apply(baseOLTPCounts.Hosts),
		Properties: scale.Apply(baseOLTPCounts.Properties),
		Bookings:   scale.Apply(baseOLTPCounts.Bookings),
		Reviews:    scale.Apply(baseOLTPCounts.Reviews),
	}
}

// GenerateOLTP builds the oltp dataset. Check-ins fall between a month
// ago and three months ahead. Only stays checked out by now are
// reviewed, each at most once, so fewer than c.Reviews reviews may be
// written.
func GenerateOLTP(s *datagen.Session, c OLTPCounts) (*schema.Dataset, error) {
	for _, n := range []struct {
		entity string
		count  int
	}{
		{"guest", c.Guests}, {"host", c.Hosts}, {"property", c.Properties},
		{"booking", c.Bookings}, {"review", c.Reviews},
	} {
		if err := datagen.RequireCount(n.entity, n.count); err != nil {
			return nil, err
		}
	}

	guests := make([]GuestAccount, c.Guests)
	guestIDs := make([]string, c.Guests)
	for i := range guests {
		guests[i] = GuestAccount{
			ID:          datagen.ID("AGST", i+1, 6),
			Name:        s.Name(),
			MemberSince: s.DateBetween(-1825, -30),
		}
		guestIDs[i] = guests[i].ID
	}

	hosts := make([]HostAccount, c.Hosts)
	hostIDs := make([]string, c.Hosts)
	for i := range hosts {
		hosts[i] = HostAccount{
			ID:        datagen.ID("AHST", i+1, 6),
			Name:      s.Name(),
			Superhost: s.Chance(0.20),
		}
		hostIDs[i] = hosts[i].ID
	}

	listings := make([]Listing, c.Properties)
	listingIDs := make([]string, c.Properties)
	for i := range listings {
		city := datagen.Choose(s.Faker, listingCities)
		listings[i] = Listing{
			ID:     datagen.ID("APRP", i+1, 6),
			HostID: datagen.Choose(s.Faker, hostIDs),
			Title:  fmt.Sprintf("%s in %s %d", datagen.Choose(s.Faker, listingTypes), city, i+1),
			City:   city,
		}
		listingIDs[i] = listings[i].ID
	}

	stays := make([]Stay, c.Bookings)
	var past []string
	today := s.Now.UTC().Truncate(24 * time.Hour)
	for i := range stays {
		checkin := s.DateBetween(-30, 89)
		stays[i] = Stay{
			ID:         datagen.ID("ABKG", i+1, 6),
			GuestID:    datagen.Choose(s.Faker, guestIDs),
			PropertyID: datagen.Choose(s.Faker, listingIDs),
			Checkin:    checkin,
			Checkout:   checkin.AddDate(0, 0, s.Int(1, 13)),
		}
		if !stays[i].Checkout.After(today) {
			past = append(past, stays[i].ID)
		}
	}

	reviewed := datagen.Sample(s.Faker, past, c.Reviews)
	reviews := make([]StayReview, len(reviewed))
	for i, bookingID := range reviewed {
		reviews[i] = StayReview{
			ID:        datagen.ID("ARVW", i+1, 6),
			BookingID: bookingID,
			Rating:    s.Int(3, 5),
			Comment:   datagen.Choose(s.Faker, reviewComments),
		}
	}

	ds := &schema.Dataset{}
	ds.Add(OLTPGuests, schema.Rows(guests))
	ds.Add(OLTPHosts, schema.Rows(hosts))
	ds.Add(OLTPProperties, schema.Rows(listings))
	ds.Add(OLTPBookings, schema.Rows(stays))
	ds.Add(OLTPReviews, schema.Rows(reviews))
	return ds, nil
}
