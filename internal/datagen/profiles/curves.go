package profiles

import "time"

// curve is a Profile backed by a fixed weight vector.
type curve struct {
	name        string
	description string
	hours       []float64
	weekend     float64
	weekdayOnly bool
}

func (c *curve) Name() string           { return c.name }
func (c *curve) Description() string    { return c.description }
func (c *curve) HourWeights() []float64 { return c.hours }

func (c *curve) DayFactor(day time.Weekday) float64 {
	if day == time.Saturday || day == time.Sunday {
		if c.weekdayOnly {
			return 0
		}
		return c.weekend
	}
	return 1.0
}

// NewCommute creates the ride-hailing profile.
// Morning peak: 7AM - 10AM
// Evening peak: 5PM - 9PM
// Otherwise low, steady demand
func NewCommute() Profile {
	return &curve{
		name:        "commute",
		description: "Ride demand (7-9AM and 5-8PM commute peaks)",
		hours: normalize(concat(
			repeat(0.02, 7),
			[]float64{0.12, 0.15, 0.08},
			repeat(0.04, 7),
			[]float64{0.10, 0.12, 0.15, 0.08},
			repeat(0.04, 3),
		)),
		weekend: 0.8,
	}
}

// NewEvening creates the streaming profile.
// Night: 12AM - 9AM (low)
// Daytime: 9AM - 5PM (moderate)
// Prime time: 5PM - 9PM (peak)
// Late evening: 9PM - 12AM
func NewEvening() Profile {
	return &curve{
		name:        "evening",
		description: "Streaming views (prime-time evening peak)",
		hours: normalize(concat(
			repeat(0.02, 6),
			repeat(0.03, 3),
			repeat(0.04, 8),
			repeat(0.15, 4),
			repeat(0.08, 3),
		)),
		weekend: 1.3,
	}
}

// NewRetail creates the online store profile.
// Night: 12AM - 6AM (15%)
// Morning: 6AM - 12PM (40%)
// Afternoon: 12PM - 5PM (60%)
// Evening peak: 5PM - 10PM (100%)
// Late night: 10PM - 12AM (70%)
// Weekend: 120% of weekday
func NewRetail() Profile {
	return &curve{
		name:        "retail",
		description: "Online store orders (evening peak, busier weekends)",
		hours: normalize(concat(
			repeat(0.15, 6),
			repeat(0.40, 6),
			repeat(0.60, 5),
			repeat(1.00, 5),
			repeat(0.70, 2),
		)),
		weekend: 1.2,
	}
}

// NewMarket creates the exchange profile: trading between 9AM and 4PM
// with heavier open and close hours, no weekend activity. The 9AM bucket
// covers the 9:30 opening half hour.
func NewMarket() Profile {
	return &curve{
		name:        "market",
		description: "Exchange trading hours (9:30AM-4PM, weekdays)",
		hours: normalize(concat(
			repeat(0, 9),
			[]float64{0.10, 0.16, 0.12, 0.10, 0.10, 0.12, 0.20},
			repeat(0, 8),
		)),
		weekdayOnly: true,
	}
}

// NewFlat creates a uniform profile.
func NewFlat() Profile {
	return &curve{
		name:        "flat",
		description: "Uniform activity around the clock",
		hours:       normalize(repeat(1, 24)),
		weekend:     1.0,
	}
}
