package main

import (
	"fmt"
	"sort"
	"time"
)

type GrowthController struct {
	store Store
}

func NewGrowthController(store Store) *GrowthController {
	return &GrowthController{store: store}
}

// Measurement is the input for a new growth record. Nil values were not
// measured.
type Measurement struct {
	Date              time.Time
	Weight            *float64
	Height            *float64
	HeadCircumference *float64
	Notes             string
}

func (g *GrowthController) Add(childID string, m Measurement) (*GrowthRecord, error) {
	child, err := loadChild(g.store, childID)
	if err != nil {
		return nil, err
	}

	record := NewGrowthRecord(child.ID, m.Date, m.Weight, m.Height, m.HeadCircumference, m.Notes)
	child.GrowthRecords = append(child.GrowthRecords, record)

	if err := g.store.Save(child); err != nil {
		return nil, err
	}
	return &record, nil
}

// List returns the child's records ordered by date, oldest first.
func (g *GrowthController) List(childID string) ([]GrowthRecord, error) {
	child, err := loadChild(g.store, childID)
	if err != nil {
		return nil, err
	}
	return sortGrowthRecords(child.GrowthRecords), nil
}

func (g *GrowthController) Get(childID, recordID string) (*GrowthRecord, error) {
	child, err := loadChild(g.store, childID)
	if err != nil {
		return nil, err
	}
	i := findGrowthRecord(child, recordID)
	if i < 0 {
		return nil, ErrRecordNotFound
	}
	record := child.GrowthRecords[i]
	return &record, nil
}

func (g *GrowthController) Update(childID, recordID string, fields Fields) (*GrowthRecord, error) {
	child, err := loadChild(g.store, childID)
	if err != nil {
		return nil, err
	}
	i := findGrowthRecord(child, recordID)
	if i < 0 {
		return nil, ErrRecordNotFound
	}

	record := &child.GrowthRecords[i]
	if err := applyGrowthFields(record, fields); err != nil {
		return nil, err
	}

	if err := g.store.Save(child); err != nil {
		return nil, err
	}
	updated := *record
	return &updated, nil
}

func (g *GrowthController) Delete(childID, recordID string) error {
	child, err := loadChild(g.store, childID)
	if err != nil {
		return err
	}
	i := findGrowthRecord(child, recordID)
	if i < 0 {
		return ErrRecordNotFound
	}

	child.GrowthRecords = append(child.GrowthRecords[:i], child.GrowthRecords[i+1:]...)
	return g.store.Save(child)
}

func findGrowthRecord(child *Child, recordID string) int {
	for i, r := range child.GrowthRecords {
		if r.ID == recordID {
			return i
		}
	}
	return -1
}

func sortGrowthRecords(records []GrowthRecord) []GrowthRecord {
	sorted := make([]GrowthRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})
	return sorted
}

func applyGrowthFields(r *GrowthRecord, fields Fields) error {
	for key, value := range fields {
		var err error
		switch key {
		case "date":
			var date time.Time
			if date, err = ParseDate(value); err == nil {
				r.Date = date
			}
		case "weight":
			r.Weight, err = parseOptionalFloat(value)
		case "height":
			r.Height, err = parseOptionalFloat(value)
		case "head_circumference":
			r.HeadCircumference, err = parseOptionalFloat(value)
		case "notes":
			r.Notes = value
		}
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}
