package main

import (
	"testing"
	"time"
)

func TestChild_AgeAt(t *testing.T) {
	child := NewChild("Ava", date(2023, 1, 1), "", "")

	tests := []struct {
		name string
		asOf string
		want Age
		text string
	}{
		{"birth day", "2023-01-01", Age{}, "newborn"},
		{"before birth clamps", "2022-12-01", Age{}, "newborn"},
		{"weeks old", "2023-01-20", Age{Days: 19, TotalDays: 19}, "19 day(s)"},
		{"over a year", "2024-02-15", Age{Years: 1, Months: 1, Days: 15, TotalDays: 410}, "1 year(s) 1 month(s) 15 day(s)"},
		{"exact months", "2023-03-02", Age{Months: 2, TotalDays: 60}, "2 month(s)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asOf, err := ParseDate(tt.asOf)
			if err != nil {
				t.Fatalf("ParseDate: %v", err)
			}
			got := child.AgeAt(asOf)
			if got != tt.want {
				t.Errorf("AgeAt = %+v, want %+v", got, tt.want)
			}
			if got.String() != tt.text {
				t.Errorf("String = %q, want %q", got.String(), tt.text)
			}
		})
	}
}

func TestChild_AgeInMonths(t *testing.T) {
	child := NewChild("Ava", date(2023, 1, 1), "", "")
	if got := child.AgeInMonths(date(2024, 2, 15)); got != 13 {
		t.Fatalf("AgeInMonths = %d, want 13", got)
	}
}

func TestSleepDetails_Duration(t *testing.T) {
	clock := func(h, m int) *Clock { return &Clock{Hour: h, Minute: m} }

	tests := []struct {
		name   string
		sleep  SleepDetails
		want   int
		wantOK bool
	}{
		{"same day", SleepDetails{Start: Clock{13, 0}, End: clock(14, 30)}, 90, true},
		{"overnight", SleepDetails{Start: Clock{21, 0}, End: clock(6, 0)}, 540, true},
		{"zero length", SleepDetails{Start: Clock{9, 0}, End: clock(9, 0)}, 0, true},
		{"no end", SleepDetails{Start: Clock{21, 0}}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.sleep.Duration()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Duration = %d, %v; want %d, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestNormalizeCategory(t *testing.T) {
	tests := map[string]string{
		"physical":  CategoryPhysical,
		" Social ":  CategorySocial,
		"LANGUAGE":  CategoryLanguage,
		"cognitive": CategoryCognitive,
		"motor":     CategoryOther,
		"":          CategoryOther,
		"other":     CategoryOther,
	}
	for in, want := range tests {
		if got := NormalizeCategory(in); got != want {
			t.Errorf("NormalizeCategory(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMilestone_AchievedOnTime(t *testing.T) {
	birth := date(2023, 1, 1)
	achieved := func(y int, m time.Month, d int) *Milestone {
		at := date(y, m, d)
		ms := NewMilestone("c", "Smiles", CategorySocial, &at, &AgeRange{MinMonths: 1, MaxMonths: 3}, "")
		return &ms
	}

	if onTime, known := achieved(2023, 2, 15).AchievedOnTime(birth); !known || !onTime {
		t.Errorf("expected on time, got onTime=%v known=%v", onTime, known)
	}
	if onTime, known := achieved(2023, 8, 1).AchievedOnTime(birth); !known || onTime {
		t.Errorf("expected late, got onTime=%v known=%v", onTime, known)
	}

	pending := NewMilestone("c", "Crawls", CategoryPhysical, nil, &AgeRange{MinMonths: 6, MaxMonths: 10}, "")
	if _, known := pending.AchievedOnTime(birth); known {
		t.Error("expected unknown for unachieved milestone")
	}

	at := date(2023, 2, 1)
	noRange := NewMilestone("c", "Claps", CategoryOther, &at, nil, "")
	if _, known := noRange.AchievedOnTime(birth); known {
		t.Error("expected unknown for milestone without range")
	}
}

func TestNewChild_StartsEmpty(t *testing.T) {
	a := NewChild("Ava", date(2023, 1, 1), "", "")
	b := NewChild("Ava", date(2023, 1, 1), "", "")
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct non-empty IDs, got %q and %q", a.ID, b.ID)
	}
	if len(a.GrowthRecords) != 0 || len(a.Milestones) != 0 || len(a.DailyLogs) != 0 {
		t.Fatalf("expected empty collections, got %+v", a)
	}
}
