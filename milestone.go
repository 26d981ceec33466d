package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// suggestionWindow is how many months ahead Suggest looks.
const suggestionWindow = 3

type CatalogEntry struct {
	Name  string
	Range AgeRange
}

// milestoneCatalog is the built-in reference table of typical milestones.
var milestoneCatalog = map[string][]CatalogEntry{
	CategoryPhysical: {
		{"Holds head up", AgeRange{1, 4}},
		{"Rolls over", AgeRange{3, 7}},
		{"Sits without support", AgeRange{5, 8}},
		{"Crawls", AgeRange{6, 10}},
		{"Pulls to stand", AgeRange{8, 12}},
		{"Walks alone", AgeRange{9, 18}},
		{"Climbs stairs", AgeRange{12, 18}},
		{"Kicks a ball", AgeRange{18, 24}},
	},
	CategorySocial: {
		{"Smiles", AgeRange{1, 3}},
		{"Laughs", AgeRange{3, 6}},
		{"Recognizes familiar people", AgeRange{3, 6}},
		{"Stranger anxiety", AgeRange{6, 12}},
		{"Plays peek-a-boo", AgeRange{6, 12}},
		{"Waves bye-bye", AgeRange{8, 12}},
		{"Plays with others", AgeRange{12, 24}},
		{"Shows empathy", AgeRange{18, 36}},
	},
	CategoryLanguage: {
		{"Coos", AgeRange{1, 4}},
		{"Babbles", AgeRange{4, 8}},
		{"Says first word", AgeRange{8, 14}},
		{"Says 2-3 words", AgeRange{12, 18}},
		{"Points to objects", AgeRange{12, 18}},
		{"Follows simple instructions", AgeRange{12, 24}},
		{"Speaks in 2-word phrases", AgeRange{18, 24}},
		{"Uses 3-word sentences", AgeRange{24, 36}},
	},
	CategoryCognitive: {
		{"Follows moving objects", AgeRange{1, 3}},
		{"Recognizes familiar objects", AgeRange{3, 6}},
		{"Finds hidden objects", AgeRange{6, 12}},
		{"Explores objects", AgeRange{6, 12}},
		{"Scribbles", AgeRange{12, 18}},
		{"Sorts shapes", AgeRange{18, 24}},
		{"Follows 2-step commands", AgeRange{18, 24}},
		{"Engages in pretend play", AgeRange{24, 36}},
	},
}

// catalogCategories fixes the order categories are reported in.
var catalogCategories = []string{CategoryPhysical, CategorySocial, CategoryLanguage, CategoryCognitive}

// Suggestions maps a category to the catalog entries due soon. Categories
// with nothing due are absent.
type Suggestions map[string][]CatalogEntry

type MilestoneController struct {
	store Store
}

func NewMilestoneController(store Store) *MilestoneController {
	return &MilestoneController{store: store}
}

// MilestoneInput is the input for a new milestone.
type MilestoneInput struct {
	Name          string
	Category      string
	AchievedDate  *time.Time
	ExpectedRange *AgeRange
	Notes         string
}

func (mc *MilestoneController) Add(childID string, in MilestoneInput) (*Milestone, error) {
	child, err := loadChild(mc.store, childID)
	if err != nil {
		return nil, err
	}

	m := NewMilestone(child.ID, in.Name, in.Category, in.AchievedDate, in.ExpectedRange, in.Notes)
	child.Milestones = append(child.Milestones, m)

	if err := mc.store.Save(child); err != nil {
		return nil, err
	}
	return &m, nil
}

// AddFromCatalog records a catalog milestone with its expected range filled in.
func (mc *MilestoneController) AddFromCatalog(childID, category string, entry CatalogEntry, achieved *time.Time, notes string) (*Milestone, error) {
	r := entry.Range
	return mc.Add(childID, MilestoneInput{
		Name:          entry.Name,
		Category:      category,
		AchievedDate:  achieved,
		ExpectedRange: &r,
		Notes:         notes,
	})
}

// List returns milestones in achievement order, see ListSorted.
func (mc *MilestoneController) List(childID string) ([]Milestone, error) {
	return mc.ListSorted(childID)
}

// ListSorted orders by achieved date with unachieved milestones last,
// then by name.
func (mc *MilestoneController) ListSorted(childID string) ([]Milestone, error) {
	child, err := loadChild(mc.store, childID)
	if err != nil {
		return nil, err
	}
	return sortMilestones(child.Milestones), nil
}

func (mc *MilestoneController) Get(childID, milestoneID string) (*Milestone, error) {
	child, err := loadChild(mc.store, childID)
	if err != nil {
		return nil, err
	}
	i := findMilestone(child, milestoneID)
	if i < 0 {
		return nil, ErrRecordNotFound
	}
	m := child.Milestones[i]
	return &m, nil
}

func (mc *MilestoneController) Update(childID, milestoneID string, fields Fields) (*Milestone, error) {
	child, err := loadChild(mc.store, childID)
	if err != nil {
		return nil, err
	}
	i := findMilestone(child, milestoneID)
	if i < 0 {
		return nil, ErrRecordNotFound
	}

	m := &child.Milestones[i]
	if err := applyMilestoneFields(m, fields); err != nil {
		return nil, err
	}

	if err := mc.store.Save(child); err != nil {
		return nil, err
	}
	updated := *m
	return &updated, nil
}

func (mc *MilestoneController) Delete(childID, milestoneID string) error {
	child, err := loadChild(mc.store, childID)
	if err != nil {
		return err
	}
	i := findMilestone(child, milestoneID)
	if i < 0 {
		return ErrRecordNotFound
	}

	child.Milestones = append(child.Milestones[:i], child.Milestones[i+1:]...)
	return mc.store.Save(child)
}

// Suggest returns catalog milestones whose expected range overlaps
// [ageInMonths, ageInMonths+3].
func (mc *MilestoneController) Suggest(ageInMonths int) Suggestions {
	suggestions := Suggestions{}
	for _, category := range catalogCategories {
		var due []CatalogEntry
		for _, entry := range milestoneCatalog[category] {
			if entry.Range.MinMonths <= ageInMonths+suggestionWindow && entry.Range.MaxMonths >= ageInMonths {
				due = append(due, entry)
			}
		}
		if len(due) > 0 {
			suggestions[category] = due
		}
	}
	return suggestions
}

// SuggestFor runs Suggest for the child's age on asOf.
func (mc *MilestoneController) SuggestFor(childID string, asOf time.Time) (Suggestions, int, error) {
	child, err := loadChild(mc.store, childID)
	if err != nil {
		return nil, 0, err
	}
	months := child.AgeInMonths(asOf)
	return mc.Suggest(months), months, nil
}

func findMilestone(child *Child, milestoneID string) int {
	for i, m := range child.Milestones {
		if m.ID == milestoneID {
			return i
		}
	}
	return -1
}

// sentinelDate stands in for the achieved date of unachieved milestones.
var sentinelDate = time.Date(9999, time.December, 31, 0, 0, 0, 0, time.UTC)

func milestoneSortKey(m Milestone) time.Time {
	if m.AchievedDate == nil {
		return sentinelDate
	}
	return *m.AchievedDate
}

func sortMilestones(milestones []Milestone) []Milestone {
	sorted := make([]Milestone, len(milestones))
	copy(sorted, milestones)
	sort.SliceStable(sorted, func(i, j int) bool {
		ki, kj := milestoneSortKey(sorted[i]), milestoneSortKey(sorted[j])
		if !ki.Equal(kj) {
			return ki.Before(kj)
		}
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}

func applyMilestoneFields(m *Milestone, fields Fields) error {
	for key, value := range fields {
		var err error
		switch key {
		case "name":
			m.Name = value
		case "category":
			m.Category = value
		case "achieved_date":
			m.AchievedDate, err = parseOptionalDate(value)
		case "min_months", "max_months":
			err = setRangeBound(m, key, value)
		case "notes":
			m.Notes = value
		}
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
	}
	return nil
}

// setRangeBound edits one end of the expected range. Clearing both ends
// drops the range.
func setRangeBound(m *Milestone, key, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		if m.ExpectedRange == nil {
			return nil
		}
		if key == "min_months" {
			m.ExpectedRange.MinMonths = 0
		} else {
			m.ExpectedRange.MaxMonths = 0
		}
		if m.ExpectedRange.MinMonths == 0 && m.ExpectedRange.MaxMonths == 0 {
			m.ExpectedRange = nil
		}
		return nil
	}

	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fmt.Errorf("%w: months %q", ErrInvalidValue, value)
	}
	if m.ExpectedRange == nil {
		m.ExpectedRange = &AgeRange{}
	}
	if key == "min_months" {
		m.ExpectedRange.MinMonths = n
	} else {
		m.ExpectedRange.MaxMonths = n
	}
	return nil
}
