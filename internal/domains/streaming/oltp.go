package streaming

import (
	"fmt"
	"time"

	"github.com/pgEdge/pgedge-datalab/internal/datagen"
	"github.com/pgEdge/pgedge-datalab/internal/domains"
	"github.com/pgEdge/pgedge-datalab/internal/schema"
)

// OLTPUsers holds account owners of the oltp store.
var OLTPUsers = &schema.Table{
	Name:        "netflix_users",
	Module:      domains.OLTP,
	Domain:      domains.Streaming,
	Pattern:     schema.OLTP,
	Description: "Account owners",
	Columns: []schema.Column{
		{Name: "user_id", Type: schema.Text},
		{Name: "name", Type: schema.Text},
		{Name: "email", Type: schema.Text, Unique: true},
	},
	PrimaryKey: []string{"user_id"},
}

// OLTPProfiles holds the profiles of each account.
var OLTPProfiles = &schema.Table{
	Name:        "netflix_profiles",
	Module:      domains.OLTP,
	Domain:      domains.Streaming,
	Pattern:     schema.OLTP,
	Description: "Viewing profiles of an account",
	Columns: []schema.Column{
		{Name: "profile_id", Type: schema.Text},
		{Name: "user_id", Type: schema.Text},
		{Name: "name", Type: schema.Text},
	},
	PrimaryKey: []string{"profile_id"},
	ForeignKeys: []schema.ForeignKey{
		{Column: "user_id", RefTable: "netflix_users", RefColumn: "user_id"},
	},
}

// Subscriptions holds billing plans.
var Subscriptions = &schema.Table{
	Name:        "netflix_subscriptions",
	Module:      domains.OLTP,
	Domain:      domains.Streaming,
	Pattern:     schema.OLTP,
	Description: "Plan subscriptions and their status",
	Columns: []schema.Column{
		{Name: "subscription_id", Type: schema.Text},
		{Name: "user_id", Type: schema.Text},
		{Name: "plan", Type: schema.Text},
		{Name: "status", Type: schema.Text},
	},
	PrimaryKey: []string{"subscription_id"},
	ForeignKeys: []schema.ForeignKey{
		{Column: "user_id", RefTable: "netflix_users", RefColumn: "user_id"},
	},
}

// OLTPContent is the playable catalog.
var OLTPContent = &schema.Table{
	Name:        "netflix_content_catalog",
	Module:      domains.OLTP,
	Domain:      domains.Streaming,
	Pattern:     schema.OLTP,
	Description: "Titles available to play",
	Columns: []schema.Column{
		{Name: "content_id", Type: schema.Text},
		{Name: "title", Type: schema.Text},
		{Name: "type", Type: schema.Text},
	},
	PrimaryKey: []string{"content_id"},
}

// Views records each time a profile plays a title.
var Views = &schema.Table{
	Name:        "netflix_views",
	Module:      domains.OLTP,
	Domain:      domains.Streaming,
	Pattern:     schema.OLTP,
	Description: "Plays of a title by a profile",
	Columns: []schema.Column{
		{Name: "view_id", Type: schema.Text},
		{Name: "profile_id", Type: schema.Text},
		{Name: "content_id", Type: schema.Text},
		{Name: "view_date", Type: schema.Timestamp},
	},
	PrimaryKey: []string{"view_id"},
	ForeignKeys: []schema.ForeignKey{
		{Column: "profile_id", RefTable: "netflix_profiles", RefColumn: "profile_id"},
		{Column: "content_id", RefTable: "netflix_content_catalog", RefColumn: "content_id"},
	},
	Indexes: []schema.Index{
		{Name: "idx_netflix_views_profile", Columns: []string{"profile_id"}},
	},
}

// Account is one oltp netflix_users row.
type Account struct {
	ID    string
	Name  string
	Email string
}

// Values implements schema.Record.
func (a Account) Values() []any { return []any{a.ID, a.Name, a.Email} }

// AccountProfile is one oltp netflix_profiles row.
type AccountProfile struct {
	ID     string
	UserID string
	Name   string
}

// Values implements schema.Record.
func (p AccountProfile) Values() []any { return []any{p.ID, p.UserID, p.Name} }

// Subscription is one netflix_subscriptions row.
type Subscription struct {
	ID     string
	UserID string
	Plan   string
	Status string
}

// Values implements schema.Record.
func (s Subscription) Values() []any { return []any{s.ID, s.UserID, s.Plan, s.Status} }

// CatalogEntry is one oltp netflix_content_catalog row.
type CatalogEntry struct {
	ID    string
	Title string
	Type  string
}

// Values implements schema.Record.
func (c CatalogEntry) Values() []any { return []any{c.ID, c.Title, c.Type} }

// View is one netflix_views row.
type View struct {
	ID        string
	ProfileID string
	ContentID string
	ViewDate  time.Time
}

// Values implements schema.Record.
func (v View) Values() []any { return []any{v.ID, v.ProfileID, v.ContentID, v.ViewDate} }

var (
	profileNames        = []string{"Main", "Kids", "Personal", "Work", "Guest"}
	subscriptionPlans   = []string{"Basic", "Standard", "Premium"}
	subscriptionStatus  = datagen.MustWeighted([]string{"Active", "Cancelled", "Paused"}, []float64{0.85, 0.10, 0.05})
	catalogContentTypes = []string{"Movie", "Series", "Documentary", "Stand-up"}
)

// OLTPCounts are the row counts of one oltp run.
type OLTPCounts struct {
	Users         int
	Profiles      int
	Subscriptions int
	Titles        int
	Views         int
}

var baseOLTPCounts = OLTPCounts{Users: 100, Profiles: 150, Subscriptions: 100, Titles: 50, Views: 300}

// OLTPCountsFor returns the oltp row counts at scale.
func OLTPCountsFor(scale datagen.Scale) OLTPCounts {
	return OLTPCounts{
		Users:         scale.Apply(baseOLTPCounts.Users),
		Profiles:      scale.Apply(baseOLTPCounts.Profiles),
		Subscriptions: scale.Apply(baseOLTPCounts.Subscriptions),
		Titles:        scale.Apply(baseOLTPCounts.Titles),
		Views:         scale.Apply(baseOLTPCounts.Views),
	}
}

// GenerateOLTP builds the oltp dataset. Views in the last 30 days
// reference generated profiles and titles.
func GenerateOLTP(s *datagen.Session, c OLTPCounts) (*schema.Dataset, error) {
	for _, n := range []struct {
		entity string
		count  int
	}{
		{"user", c.Users}, {"profile", c.Profiles}, {"subscription", c.Subscriptions},
		{"title", c.Titles}, {"view", c.Views},
	} {
		if err := datagen.RequireCount(n.entity, n.count); err != nil {
			return nil, err
		}
	}

	users := make([]Account, c.Users)
	userIDs := make([]string, c.Users)
	for i := range users {
		users[i] = Account{
			ID:    datagen.ID("NUSR", i+1, 6),
			Name:  s.Name(),
			Email: fmt.Sprintf("user%d@example.com", i+1),
		}
		userIDs[i] = users[i].ID
	}

	profiles := make([]AccountProfile, c.Profiles)
	profileIDs := make([]string, c.Profiles)
	for i := range profiles {
		profiles[i] = AccountProfile{
			ID:     datagen.ID("NPRF", i+1, 6),
			UserID: datagen.Choose(s.Faker, userIDs),
			Name:   fmt.Sprintf("%s_%d", datagen.Choose(s.Faker, profileNames), i+1),
		}
		profileIDs[i] = profiles[i].ID
	}

	subs := make([]Subscription, c.Subscriptions)
	for i := range subs {
		subs[i] = Subscription{
			ID:     datagen.ID("NSUB", i+1, 6),
			UserID: datagen.Choose(s.Faker, userIDs),
			Plan:   datagen.Choose(s.Faker, subscriptionPlans),
			Status: subscriptionStatus.Pick(s.Faker),
		}
	}

	titles := make([]CatalogEntry, c.Titles)
	titleIDs := make([]string, c.Titles)
	for i := range titles {
		titles[i] = CatalogEntry{
			ID:    datagen.ID("NCNT", i+1, 5),
			Title: s.MovieName(),
			Type:  datagen.Choose(s.Faker, catalogContentTypes),
		}
		titleIDs[i] = titles[i].ID
	}

	views := make([]View, c.Views)
	for i := range views {
		views[i] = View{
			ID:        datagen.ID("NVW", i+1, 6),
			ProfileID: datagen.Choose(s.Faker, profileIDs),
			ContentID: datagen.Choose(s.Faker, titleIDs),
			ViewDate:  s.DatetimeBetween(-30*24*time.Hour, 0),
		}
	}

	ds := &schema.Dataset{}
	ds.Add(OLTPUsers, schema.Rows(users))
	ds.Add(OLTPProfiles, schema.Rows(profiles))
	ds.Add(Subscriptions, schema.Rows(subs))
	ds.Add(OLTPContent, schema.Rows(titles))
	ds.Add(Views, schema.Rows(views))
	return ds, nil
}
