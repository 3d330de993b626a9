package mobility

import (
	"time"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/domains"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// Users holds rider accounts of the oltp store.
var Users = &schema.Table{
	Name:        "uber_users",
	Module:      domains.OLTP,
	Domain:      domains.Mobility,
	Pattern:     schema.OLTP,
	Description: "Rider accounts",
	Columns: []schema.Column{
		{Name: "user_id", Type: schema.Text},
		{Name: "name", Type: schema.Text},
		{Name: "signup_date", Type: schema.Date},
	},
	PrimaryKey: []string{"user_id"},
}

// OLTPDrivers holds driver accounts of the oltp store.
var OLTPDrivers = &schema.Table{
	Name:        "uber_drivers",
	Module:      domains.OLTP,
	Domain:      domains.Mobility,
	Pattern:     schema.OLTP,
	Description: "Driver accounts with their rating",
	Columns: []schema.Column{
		{Name: "driver_id", Type: schema.Text},
		{Name: "name", Type: schema.Text},
		{Name: "rating", Type: schema.Real},
	},
	PrimaryKey: []string{"driver_id"},
}

// OLTPRides holds ride requests.
var OLTPRides = &schema.Table{
	Name:        "uber_rides",
	Module:      domains.OLTP,
	Domain:      domains.Mobility,
	Pattern:     schema.OLTP,
	Description: "Rides between a user and a driver",
	Columns: []schema.Column{
		{Name: "ride_id", Type: schema.Text},
		{Name: "user_id", Type: schema.Text},
		{Name: "driver_id", Type: schema.Text},
		{Name: "status", Type: schema.Text},
	},
	PrimaryKey: []string{"ride_id"},
	ForeignKeys: []schema.ForeignKey{
		{Column: "user_id", RefTable: "uber_users", RefColumn: "user_id"},
		{Column: "driver_id", RefTable: "uber_drivers", RefColumn: "driver_id"},
	},
}

// Payments holds the charge of a ride.
var Payments = &schema.Table{
	Name:        "uber_payments",
	Module:      domains.OLTP,
	Domain:      domains.Mobility,
	Pattern:     schema.OLTP,
	Description: "Ride charges",
	Columns: []schema.Column{
		{Name: "payment_id", Type: schema.Text},
		{Name: "ride_id", Type: schema.Text},
		{Name: "amount", Type: schema.Real},
		{Name: "status", Type: schema.Text},
	},
	PrimaryKey: []string{"payment_id"},
	ForeignKeys: []schema.ForeignKey{
		{Column: "ride_id", RefTable: "uber_rides", RefColumn: "ride_id"},
	},
}

// User is one uber_users row.
type User struct {
	ID         string
	Name       string
	SignupDate time.Time
}

// Values implements schema.Record.
func (u User) Values() []any { return []any{u.ID, u.Name, u.SignupDate} }

// DriverAccount is one oltp uber_drivers row.
type DriverAccount struct {
	ID     string
	Name   string
	Rating float64
}

// Values implements schema.Record.
func (d DriverAccount) Values() []any { return []any{d.ID, d.Name, d.Rating} }

// Trip is one oltp uber_rides row.
type Trip struct {
	ID       string
	UserID   string
	DriverID string
	Status   string
}

// Values implements schema.Record.
func (t Trip) Values() []any { return []any{t.ID, t.UserID, t.DriverID, t.Status} }

// Payment is one uber_payments row.
type Payment struct {
	ID     string
	RideID string
	Amount float64
	Status string
}

// Values implements schema.Record.
func (p Payment) Values() []any { return []any{p.ID, p.RideID, p.Amount, p.Status} }

// Trip and payment statuses.
const (
	TripCompleted  = "completed"
	TripCancelled  = "cancelled"
	TripOngoing    = "ongoing"
	PaymentPaid    = "paid"
	PaymentPending = "pending"
	PaymentFailed  = "failed"
)

var tripStatuses = datagen.MustWeighted(
	[]string{TripCompleted, TripCancelled, TripOngoing},
	[]float64{0.80, 0.15, 0.05})

// OLTPCounts are the row counts of one oltp run.
type OLTPCounts struct {
	Users    int
	Drivers  int
	Rides    int
	Payments int
}

var baseOLTPCounts = OLTPCounts{Users: 100, Drivers: 50, Rides: 200, Payments: 200}

// OLTPCountsFor returns the oltp row counts at scale.
func OLTPCountsFor(scale datagen.Scale) OLTPCounts {
	return OLTPCounts{
		Users:    scale.Apply(baseOLTPCounts.Users),
		Drivers:  scale.Apply(baseOLTPCounts.Drivers),
		Rides:    scale.Apply(baseOLTPCounts.Rides),
		Payments: scale.Apply(baseOLTPCounts.Payments),
	}
}

// paymentStatus settles the charge of a ride: completed rides are mostly
// paid, ongoing rides are pending and cancelled rides fail.
func paymentStatus(s *datagen.Session, trip string) string {
	switch trip {
	case TripCompleted:
		if s.Chance(0.95) {
			return PaymentPaid
		}
		return PaymentPending
	case TripOngoing:
		return PaymentPending
	default:
		return PaymentFailed
	}
}

// GenerateOLTP builds the oltp dataset. Each ride is charged at most
// once, so payments are capped at the ride count.
func GenerateOLTP(s *datagen.Session, c OLTPCounts) (*schema.Dataset, error) {
	for _, n := range []struct {
		entity string
		count  int
	}{
		{"user", c.Users}, {"driver", c.Drivers}, {"ride", c.Rides}, {"payment", c.Payments},
	} {
		if err := datagen.RequireCount(n.entity, n.count); err != nil {
			return nil, err
		}
	}

	users := make([]User, c.Users)
	userIDs := make([]string, c.Users)
	for i := range users {
		users[i] = User{
			ID:         datagen.ID("USR", i+1, 5),
			Name:       s.Name(),
			SignupDate: s.DateBetween(-730, -1),
		}
		userIDs[i] = users[i].ID
	}

	drivers := make([]DriverAccount, c.Drivers)
	driverIDs := make([]string, c.Drivers)
	for i := range drivers {
		drivers[i] = DriverAccount{
			ID:     datagen.ID("DRV", i+1, 4),
			Name:   s.Name(),
			Rating: datagen.Round(s.Float64(4.0, 5.0), 2),
		}
		driverIDs[i] = drivers[i].ID
	}

	trips := make([]Trip, c.Rides)
	for i := range trips {
		trips[i] = Trip{
			ID:       datagen.ID("RIDE", i+1, 6),
			UserID:   datagen.Choose(s.Faker, userIDs),
			DriverID: datagen.Choose(s.Faker, driverIDs),
			Status:   tripStatuses.Pick(s.Faker),
		}
	}

	charged := datagen.Sample(s.Faker, trips, c.Payments)
	payments := make([]Payment, len(charged))
	for i, t := range charged {
		payments[i] = Payment{
			ID:     datagen.ID("PAY", i+1, 6),
			RideID: t.ID,
			Amount: datagen.Round(s.Float64(10, 100), 2),
			Status: paymentStatus(s, t.Status),
		}
	}

	ds := &schema.Dataset{}
	ds.Add(Users, schema.Rows(users))
	ds.Add(OLTPDrivers, schema.Rows(drivers))
	ds.Add(OLTPRides, schema.Rows(trips))
	ds.Add(Payments, schema.Rows(payments))
	return ds, nil
}
