package main

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// When is the date and time of a log entry, given either parsed or as
// text. Non-empty text wins over the parsed value.
type When struct {
	Date     time.Time
	Time     Clock
	DateText string // YYYY-MM-DD
	TimeText string // HH:MM
}

func At(date time.Time, at Clock) When {
	return When{Date: date, Time: at}
}

func AtText(date, at string) When {
	return When{DateText: date, TimeText: at}
}

func (w When) resolve() (time.Time, Clock, error) {
	date := w.Date
	if w.DateText != "" {
		d, err := ParseDate(w.DateText)
		if err != nil {
			return time.Time{}, Clock{}, err
		}
		date = d
	}
	if date.IsZero() {
		return time.Time{}, Clock{}, fmt.Errorf("%w: date is required", ErrInvalidValue)
	}

	at := w.Time
	if w.TimeText != "" {
		c, err := ParseClock(w.TimeText)
		if err != nil {
			return time.Time{}, Clock{}, err
		}
		at = c
	}
	return date, at, nil
}

type FeedingInput struct {
	When
	Type            string
	Amount          *float64
	DurationMinutes *int
	Notes           string
}

type SleepInput struct {
	When
	End     *Clock
	EndText string // HH:MM, used when End is nil
	Quality string
	Notes   string
}

type DiaperInput struct {
	When
	Type  string
	Notes string
}

type DaySummary struct {
	Date          time.Time
	Feedings      int
	FeedAmount    float64
	Sleeps        int
	SleepMinutes  int
	OpenSleeps    int // sleeps with no end time yet
	Diapers       int
	DiapersByType map[string]int
	Other         int
}

type DailyLogController struct {
	store Store
}

func NewDailyLogController(store Store) *DailyLogController {
	return &DailyLogController{store: store}
}

func (d *DailyLogController) AddFeeding(childID string, in FeedingInput) (*DailyLog, error) {
	date, at, err := in.resolve()
	if err != nil {
		return nil, err
	}
	return d.add(childID, NewFeedingLog(childID, date, at, in.Type, in.Amount, in.DurationMinutes, in.Notes))
}

func (d *DailyLogController) AddSleep(childID string, in SleepInput) (*DailyLog, error) {
	date, start, err := in.resolve()
	if err != nil {
		return nil, err
	}
	end := in.End
	if end == nil && in.EndText != "" {
		if end, err = parseOptionalClock(in.EndText); err != nil {
			return nil, err
		}
	}
	return d.add(childID, NewSleepLog(childID, date, start, end, in.Quality, in.Notes))
}

func (d *DailyLogController) AddDiaper(childID string, in DiaperInput) (*DailyLog, error) {
	date, at, err := in.resolve()
	if err != nil {
		return nil, err
	}
	return d.add(childID, NewDiaperLog(childID, date, at, in.Type, in.Notes))
}

// AddNote records a generic log entry with only notes.
func (d *DailyLogController) AddNote(childID string, when When, notes string) (*DailyLog, error) {
	date, at, err := when.resolve()
	if err != nil {
		return nil, err
	}
	return d.add(childID, NewGeneralLog(childID, date, at, notes))
}

func (d *DailyLogController) add(childID string, entry DailyLog) (*DailyLog, error) {
	child, err := loadChild(d.store, childID)
	if err != nil {
		return nil, err
	}

	child.DailyLogs = append(child.DailyLogs, entry)
	if err := d.store.Save(child); err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns every log ordered by date and time.
func (d *DailyLogController) List(childID string) ([]DailyLog, error) {
	child, err := loadChild(d.store, childID)
	if err != nil {
		return nil, err
	}
	return sortDailyLogs(child.DailyLogs), nil
}

// ListOn returns the logs for one calendar date.
func (d *DailyLogController) ListOn(childID string, date time.Time) ([]DailyLog, error) {
	logs, err := d.List(childID)
	if err != nil {
		return nil, err
	}
	day := dateOnly(date)

	var out []DailyLog
	for _, l := range logs {
		if l.Date.Equal(day) {
			out = append(out, l)
		}
	}
	return out, nil
}

func (d *DailyLogController) Get(childID, logID string) (*DailyLog, error) {
	child, err := loadChild(d.store, childID)
	if err != nil {
		return nil, err
	}
	i := findDailyLog(child, logID)
	if i < 0 {
		return nil, ErrRecordNotFound
	}
	entry := child.DailyLogs[i]
	return &entry, nil
}

func (d *DailyLogController) Update(childID, logID string, fields Fields) (*DailyLog, error) {
	child, err := loadChild(d.store, childID)
	if err != nil {
		return nil, err
	}
	i := findDailyLog(child, logID)
	if i < 0 {
		return nil, ErrRecordNotFound
	}

	entry := &child.DailyLogs[i]
	if err := applyDailyLogFields(entry, fields); err != nil {
		return nil, err
	}

	if err := d.store.Save(child); err != nil {
		return nil, err
	}
	updated := *entry
	return &updated, nil
}

func (d *DailyLogController) Delete(childID, logID string) error {
	child, err := loadChild(d.store, childID)
	if err != nil {
		return err
	}
	i := findDailyLog(child, logID)
	if i < 0 {
		return ErrRecordNotFound
	}

	child.DailyLogs = append(child.DailyLogs[:i], child.DailyLogs[i+1:]...)
	return d.store.Save(child)
}

// Summarize totals one day's feedings, sleeps and diaper changes.
func (d *DailyLogController) Summarize(childID string, date time.Time) (DaySummary, error) {
	logs, err := d.ListOn(childID, date)
	if err != nil {
		return DaySummary{}, err
	}

	s := DaySummary{Date: dateOnly(date), DiapersByType: map[string]int{}}
	for _, l := range logs {
		switch {
		case l.Feeding != nil:
			s.Feedings++
			if l.Feeding.Amount != nil {
				s.FeedAmount += *l.Feeding.Amount
			}
		case l.Sleep != nil:
			s.Sleeps++
			if minutes, ok := l.Sleep.Duration(); ok {
				s.SleepMinutes += minutes
			} else {
				s.OpenSleeps++
			}
		case l.Diaper != nil:
			s.Diapers++
			s.DiapersByType[l.Diaper.Type]++
		default:
			s.Other++
		}
	}
	return s, nil
}

func findDailyLog(child *Child, logID string) int {
	for i, l := range child.DailyLogs {
		if l.ID == logID {
			return i
		}
	}
	return -1
}

func sortDailyLogs(logs []DailyLog) []DailyLog {
	sorted := make([]DailyLog, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].Time.Minutes() < sorted[j].Time.Minutes()
	})
	return sorted
}

var errWrongKind = errors.New("field does not apply to this log kind")

// applyDailyLogFields edits common fields and the ones belonging to the
// log's own kind. Fields of other kinds are ignored like unknown names.
func applyDailyLogFields(l *DailyLog, fields Fields) error {
	for key, value := range fields {
		err := applyDailyLogField(l, key, value)
		if errors.Is(err, errWrongKind) {
			continue
		}
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

func applyDailyLogField(l *DailyLog, key, value string) error {
	switch key {
	case "date":
		date, err := ParseDate(value)
		if err != nil {
			return err
		}
		l.Date = date
	case "time":
		at, err := ParseClock(value)
		if err != nil {
			return err
		}
		l.Time = at
		if l.Sleep != nil {
			l.Sleep.Start = at
		}
	case "notes":
		l.Notes = value

	case "feeding_type", "amount", "duration":
		if l.Feeding == nil {
			return errWrongKind
		}
		var err error
		switch key {
		case "feeding_type":
			l.Feeding.Type = strings.TrimSpace(value)
		case "amount":
			l.Feeding.Amount, err = parseOptionalFloat(value)
		case "duration":
			l.Feeding.DurationMinutes, err = parseOptionalInt(value)
		}
		return err

	case "end_time", "quality":
		if l.Sleep == nil {
			return errWrongKind
		}
		if key == "quality" {
			l.Sleep.Quality = strings.TrimSpace(value)
			return nil
		}
		end, err := parseOptionalClock(value)
		if err != nil {
			return err
		}
		l.Sleep.End = end

	case "diaper_type":
		if l.Diaper == nil {
			return errWrongKind
		}
		l.Diaper.Type = strings.TrimSpace(value)
	}
	return nil
}
