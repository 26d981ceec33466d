package main

import (
	"encoding/json"
	"fmt"
)

// On-disk shapes. Dates are YYYY-MM-DD, times of day HH:MM, absent
// optional values null.
type (
	childDocument struct {
		ID            string           `json:"id"`
		Name          string           `json:"name"`
		Birthdate     string           `json:"birthdate"`
		Gender        *string          `json:"gender"`
		Notes         *string          `json:"notes"`
		GrowthRecords []growthDocument `json:"growth_records"`
		Milestones    []milestoneDoc   `json:"milestones"`
		DailyLogs     []dailyLogDoc    `json:"daily_logs"`
	}

	growthDocument struct {
		ID                string   `json:"id"`
		ChildID           string   `json:"baby_id"`
		Date              string   `json:"date"`
		Weight            *float64 `json:"weight"`
		Height            *float64 `json:"height"`
		HeadCircumference *float64 `json:"head_circumference"`
		Notes             *string  `json:"notes"`
	}

	ageRangeDoc struct {
		MinMonths int `json:"min_months"`
		MaxMonths int `json:"max_months"`
	}

	milestoneDoc struct {
		ID            string       `json:"id"`
		ChildID       string       `json:"baby_id"`
		Name          string       `json:"name"`
		Category      string       `json:"category"`
		AchievedDate  *string      `json:"achieved_date"`
		ExpectedRange *ageRangeDoc `json:"expected_range"`
		Notes         *string      `json:"notes"`
	}

	// dailyLogDoc flattens every kind into one record; log_type says
	// which of the kind-specific fields apply.
	dailyLogDoc struct {
		ID      string  `json:"id"`
		ChildID string  `json:"baby_id"`
		Date    string  `json:"date"`
		Time    string  `json:"time"`
		LogType string  `json:"log_type"`
		Notes   *string `json:"notes"`

		FeedingType *string  `json:"feeding_type,omitempty"`
		Amount      *float64 `json:"amount,omitempty"`
		Duration    *int     `json:"duration,omitempty"`

		StartTime *string `json:"start_time,omitempty"`
		EndTime   *string `json:"end_time,omitempty"`
		Quality   *string `json:"quality,omitempty"`

		DiaperType *string `json:"diaper_type,omitempty"`
	}
)

func encodeChild(c *Child) ([]byte, error) {
	doc := childDocument{
		ID:            c.ID,
		Name:          c.Name,
		Birthdate:     formatDate(c.Birthdate),
		Gender:        optString(c.Gender),
		Notes:         optString(c.Notes),
		GrowthRecords: make([]growthDocument, 0, len(c.GrowthRecords)),
		Milestones:    make([]milestoneDoc, 0, len(c.Milestones)),
		DailyLogs:     make([]dailyLogDoc, 0, len(c.DailyLogs)),
	}

	for _, r := range c.GrowthRecords {
		doc.GrowthRecords = append(doc.GrowthRecords, growthDocument{
			ID:                r.ID,
			ChildID:           r.ChildID,
			Date:              formatDate(r.Date),
			Weight:            r.Weight,
			Height:            r.Height,
			HeadCircumference: r.HeadCircumference,
			Notes:             optString(r.Notes),
		})
	}

	for _, m := range c.Milestones {
		md := milestoneDoc{
			ID:       m.ID,
			ChildID:  m.ChildID,
			Name:     m.Name,
			Category: m.Category,
			Notes:    optString(m.Notes),
		}
		if m.AchievedDate != nil {
			s := formatDate(*m.AchievedDate)
			md.AchievedDate = &s
		}
		if m.ExpectedRange != nil {
			md.ExpectedRange = &ageRangeDoc{
				MinMonths: m.ExpectedRange.MinMonths,
				MaxMonths: m.ExpectedRange.MaxMonths,
			}
		}
		doc.Milestones = append(doc.Milestones, md)
	}

	for _, l := range c.DailyLogs {
		doc.DailyLogs = append(doc.DailyLogs, encodeDailyLog(l))
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func encodeDailyLog(l DailyLog) dailyLogDoc {
	d := dailyLogDoc{
		ID:      l.ID,
		ChildID: l.ChildID,
		Date:    formatDate(l.Date),
		Time:    l.Time.String(),
		LogType: string(l.Kind),
		Notes:   optString(l.Notes),
	}

	switch l.Kind {
	case KindFeeding:
		if f := l.Feeding; f != nil {
			d.FeedingType = &f.Type
			d.Amount = f.Amount
			d.Duration = f.DurationMinutes
		}
	case KindSleep:
		if s := l.Sleep; s != nil {
			start := s.Start.String()
			d.StartTime = &start
			if s.End != nil {
				end := s.End.String()
				d.EndTime = &end
			}
			d.Quality = optString(s.Quality)
		}
	case KindDiaper:
		if dp := l.Diaper; dp != nil {
			d.DiaperType = &dp.Type
		}
	default:
		if u := l.unknown; u != nil {
			d.FeedingType, d.Amount, d.Duration = u.FeedingType, u.Amount, u.Duration
			d.StartTime, d.EndTime, d.Quality = u.StartTime, u.EndTime, u.Quality
			d.DiaperType = u.DiaperType
		}
	}
	return d
}

func decodeChild(data []byte) (*Child, error) {
	var doc childDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.ID == "" {
		return nil, fmt.Errorf("document has no id")
	}

	birthdate, err := ParseDate(doc.Birthdate)
	if err != nil {
		return nil, fmt.Errorf("birthdate: %w", err)
	}

	c := &Child{
		ID:            doc.ID,
		Name:          doc.Name,
		Birthdate:     birthdate,
		Gender:        derefString(doc.Gender),
		Notes:         derefString(doc.Notes),
		GrowthRecords: make([]GrowthRecord, 0, len(doc.GrowthRecords)),
		Milestones:    make([]Milestone, 0, len(doc.Milestones)),
		DailyLogs:     make([]DailyLog, 0, len(doc.DailyLogs)),
	}

	for _, r := range doc.GrowthRecords {
		date, err := ParseDate(r.Date)
		if err != nil {
			return nil, fmt.Errorf("growth record %s: %w", r.ID, err)
		}
		c.GrowthRecords = append(c.GrowthRecords, GrowthRecord{
			ID:                r.ID,
			ChildID:           r.ChildID,
			Date:              date,
			Weight:            r.Weight,
			Height:            r.Height,
			HeadCircumference: r.HeadCircumference,
			Notes:             derefString(r.Notes),
		})
	}

	for _, md := range doc.Milestones {
		m := Milestone{
			ID:       md.ID,
			ChildID:  md.ChildID,
			Name:     md.Name,
			Category: md.Category,
			Notes:    derefString(md.Notes),
		}
		if md.AchievedDate != nil {
			achieved, err := ParseDate(*md.AchievedDate)
			if err != nil {
				return nil, fmt.Errorf("milestone %s: %w", md.ID, err)
			}
			m.AchievedDate = &achieved
		}
		if md.ExpectedRange != nil {
			m.ExpectedRange = &AgeRange{
				MinMonths: md.ExpectedRange.MinMonths,
				MaxMonths: md.ExpectedRange.MaxMonths,
			}
		}
		c.Milestones = append(c.Milestones, m)
	}

	for _, ld := range doc.DailyLogs {
		l, err := decodeDailyLog(ld)
		if err != nil {
			return nil, fmt.Errorf("daily log %s: %w", ld.ID, err)
		}
		c.DailyLogs = append(c.DailyLogs, l)
	}

	return c, nil
}

// decodeDailyLog rebuilds the kind-specific details from log_type. Unknown
// tags come back as generic logs that keep their tag and stored fields.
func decodeDailyLog(d dailyLogDoc) (DailyLog, error) {
	date, err := ParseDate(d.Date)
	if err != nil {
		return DailyLog{}, err
	}
	at, err := ParseClock(d.Time)
	if err != nil {
		return DailyLog{}, err
	}

	l := DailyLog{
		ID:      d.ID,
		ChildID: d.ChildID,
		Date:    date,
		Time:    at,
		Kind:    LogKind(d.LogType),
		Notes:   derefString(d.Notes),
	}
	if l.Kind == "" {
		l.Kind = KindGeneral
	}

	switch l.Kind {
	case KindFeeding:
		l.Feeding = &FeedingDetails{
			Type:            derefString(d.FeedingType),
			Amount:          d.Amount,
			DurationMinutes: d.Duration,
		}
	case KindSleep:
		start := at
		if d.StartTime != nil {
			if start, err = ParseClock(*d.StartTime); err != nil {
				return DailyLog{}, err
			}
		}
		var end *Clock
		if d.EndTime != nil {
			if end, err = parseOptionalClock(*d.EndTime); err != nil {
				return DailyLog{}, err
			}
		}
		l.Sleep = &SleepDetails{Start: start, End: end, Quality: derefString(d.Quality)}
	case KindDiaper:
		l.Diaper = &DiaperDetails{Type: derefString(d.DiaperType)}
	case KindGeneral:
	default:
		extra := d
		l.unknown = &extra
	}

	return l, nil
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

