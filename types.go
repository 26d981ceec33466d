package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

type LogKind string

const (
	KindGeneral LogKind = "general"
	KindFeeding LogKind = "feeding"
	KindSleep   LogKind = "sleep"
	KindDiaper  LogKind = "diaper"
)

// milestone categories
const (
	CategoryPhysical  = "physical"
	CategorySocial    = "social"
	CategoryLanguage  = "language"
	CategoryCognitive = "cognitive"
	CategoryOther     = "other"
)

var Categories = []string{
	CategoryPhysical,
	CategorySocial,
	CategoryLanguage,
	CategoryCognitive,
	CategoryOther,
}

type Child struct {
	ID            string
	Name          string
	Birthdate     time.Time
	Gender        string
	Notes         string
	GrowthRecords []GrowthRecord
	Milestones    []Milestone
	DailyLogs     []DailyLog
}

type GrowthRecord struct {
	ID                string
	ChildID           string
	Date              time.Time
	Weight            *float64 // kg
	Height            *float64 // cm
	HeadCircumference *float64 // cm
	Notes             string
}

type AgeRange struct {
	MinMonths int
	MaxMonths int
}

type Milestone struct {
	ID            string
	ChildID       string
	Name          string
	Category      string
	AchievedDate  *time.Time
	ExpectedRange *AgeRange
	Notes         string
}

// Clock is a time of day with minute precision.
type Clock struct {
	Hour   int
	Minute int
}

type FeedingDetails struct {
	Type            string // breast, bottle, solid
	Amount          *float64
	DurationMinutes *int
}

type SleepDetails struct {
	Start   Clock
	End     *Clock
	Quality string
}

type DiaperDetails struct {
	Type string // wet, soiled, both
}

// DailyLog is one care event. At most one of Feeding, Sleep and Diaper is
// set and it always matches Kind; generic and unrecognised kinds carry none.
type DailyLog struct {
	ID      string
	ChildID string
	Date    time.Time
	Time    Clock
	Kind    LogKind
	Notes   string

	Feeding *FeedingDetails
	Sleep   *SleepDetails
	Diaper  *DiaperDetails

	// stored kind-specific fields of an unrecognised kind, written back as read
	unknown *dailyLogDoc
}

type Age struct {
	Years     int
	Months    int
	Days      int
	TotalDays int
}

// NewChild returns a child with a fresh ID and empty collections.
func NewChild(name string, birthdate time.Time, gender, notes string) *Child {
	return &Child{
		ID:            uuid.NewString(),
		Name:          name,
		Birthdate:     dateOnly(birthdate),
		Gender:        gender,
		Notes:         notes,
		GrowthRecords: []GrowthRecord{},
		Milestones:    []Milestone{},
		DailyLogs:     []DailyLog{},
	}
}

func NewGrowthRecord(childID string, date time.Time, weight, height, head *float64, notes string) GrowthRecord {
	return GrowthRecord{
		ID:                uuid.NewString(),
		ChildID:           childID,
		Date:              dateOnly(date),
		Weight:            weight,
		Height:            height,
		HeadCircumference: head,
		Notes:             notes,
	}
}

func NewMilestone(childID, name, category string, achieved *time.Time, expected *AgeRange, notes string) Milestone {
	if achieved != nil {
		d := dateOnly(*achieved)
		achieved = &d
	}
	return Milestone{
		ID:            uuid.NewString(),
		ChildID:       childID,
		Name:          name,
		Category:      category,
		AchievedDate:  achieved,
		ExpectedRange: expected,
		Notes:         notes,
	}
}

func newDailyLog(childID string, date time.Time, at Clock, kind LogKind, notes string) DailyLog {
	return DailyLog{
		ID:      uuid.NewString(),
		ChildID: childID,
		Date:    dateOnly(date),
		Time:    at,
		Kind:    kind,
		Notes:   notes,
	}
}

func NewFeedingLog(childID string, date time.Time, at Clock, feedingType string, amount *float64, duration *int, notes string) DailyLog {
	l := newDailyLog(childID, date, at, KindFeeding, notes)
	l.Feeding = &FeedingDetails{Type: feedingType, Amount: amount, DurationMinutes: duration}
	return l
}

func NewSleepLog(childID string, date time.Time, start Clock, end *Clock, quality, notes string) DailyLog {
	l := newDailyLog(childID, date, start, KindSleep, notes)
	l.Sleep = &SleepDetails{Start: start, End: end, Quality: quality}
	return l
}

func NewDiaperLog(childID string, date time.Time, at Clock, diaperType, notes string) DailyLog {
	l := newDailyLog(childID, date, at, KindDiaper, notes)
	l.Diaper = &DiaperDetails{Type: diaperType}
	return l
}

func NewGeneralLog(childID string, date time.Time, at Clock, notes string) DailyLog {
	return newDailyLog(childID, date, at, KindGeneral, notes)
}

// AgeAt approximates age with 365-day years and 30-day months.
func (c *Child) AgeAt(asOf time.Time) Age {
	days := int(dateOnly(asOf).Sub(c.Birthdate).Hours() / 24)
	if days < 0 {
		days = 0
	}
	rem := days % 365
	return Age{
		Years:     days / 365,
		Months:    rem / 30,
		Days:      rem % 30,
		TotalDays: days,
	}
}

func (c *Child) AgeInMonths(asOf time.Time) int {
	return c.AgeAt(asOf).TotalDays / 30
}

func (a Age) String() string {
	var parts []string
	if a.Years > 0 {
		parts = append(parts, fmt.Sprintf("%d year(s)", a.Years))
	}
	if a.Months > 0 {
		parts = append(parts, fmt.Sprintf("%d month(s)", a.Months))
	}
	if a.Days > 0 {
		parts = append(parts, fmt.Sprintf("%d day(s)", a.Days))
	}
	if len(parts) == 0 {
		return "newborn"
	}
	return strings.Join(parts, " ")
}

func (m Milestone) Achieved() bool {
	return m.AchievedDate != nil
}

// AchievedOnTime reports whether the milestone was reached inside its
// expected range. known is false when it is not achieved or has no range.
func (m Milestone) AchievedOnTime(birthdate time.Time) (onTime, known bool) {
	if !m.Achieved() || m.ExpectedRange == nil {
		return false, false
	}
	days := int(m.AchievedDate.Sub(dateOnly(birthdate)).Hours() / 24)
	months := days / 30
	return months >= m.ExpectedRange.MinMonths && months <= m.ExpectedRange.MaxMonths, true
}

// NormalizeCategory maps anything outside the known set to "other".
func NormalizeCategory(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	for _, known := range Categories {
		if c == known {
			return c
		}
	}
	return CategoryOther
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour, c.Minute)
}

func (c Clock) Minutes() int {
	return c.Hour*60 + c.Minute
}

func ClockOf(t time.Time) Clock {
	return Clock{Hour: t.Hour(), Minute: t.Minute()}
}

// Duration returns the sleep length in minutes. An end before the start
// means the sleep crossed midnight.
func (s SleepDetails) Duration() (int, bool) {
	if s.End == nil {
		return 0, false
	}
	d := s.End.Minutes() - s.Start.Minutes()
	if d < 0 {
		d += 24 * 60
	}
	return d, true
}

// dateOnly drops the time of day, keeping the calendar date in UTC.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
