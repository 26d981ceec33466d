package main

import (
	"errors"
	"reflect"
	"testing"
)

func TestDailyLogController_TextAndParsedInputsAgree(t *testing.T) {
	store := newTestFileStore(t)
	child := newTestChild(t, store)
	logs := NewDailyLogController(store)

	fromText, err := logs.AddSleep(child.ID, SleepInput{
		When:    AtText("2023-06-02", "21:00"),
		EndText: "06:00",
		Quality: "good",
	})
	if err != nil {
		t.Fatalf("AddSleep text: %v", err)
	}
	end := Clock{Hour: 6}
	parsed, err := logs.AddSleep(child.ID, SleepInput{
		When:    At(date(2023, 6, 2), Clock{Hour: 21}),
		End:     &end,
		Quality: "good",
	})
	if err != nil {
		t.Fatalf("AddSleep parsed: %v", err)
	}

	fromText.ID, parsed.ID = "", ""
	if !reflect.DeepEqual(fromText, parsed) {
		t.Fatalf("text and parsed inputs differ\ntext:   %+v\nparsed: %+v", fromText, parsed)
	}
	if minutes, ok := parsed.Sleep.Duration(); !ok || minutes != 540 {
		t.Fatalf("Duration = %d, %v", minutes, ok)
	}
}

func TestDailyLogController_RejectsBadInput(t *testing.T) {
	store := newTestFileStore(t)
	child := newTestChild(t, store)
	logs := NewDailyLogController(store)

	tests := []struct {
		name string
		add  func() error
	}{
		{"bad date", func() error {
			_, err := logs.AddDiaper(child.ID, DiaperInput{When: AtText("02/06/2023", "08:00"), Type: "wet"})
			return err
		}},
		{"bad time", func() error {
			_, err := logs.AddFeeding(child.ID, FeedingInput{When: AtText("2023-06-02", "8am"), Type: "bottle"})
			return err
		}},
		{"missing date", func() error {
			_, err := logs.AddNote(child.ID, When{Time: Clock{Hour: 8}}, "bath")
			return err
		}},
		{"bad end", func() error {
			_, err := logs.AddSleep(child.ID, SleepInput{When: AtText("2023-06-02", "21:00"), EndText: "late"})
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.add(); !errors.Is(err, ErrInvalidValue) {
				t.Fatalf("expected ErrInvalidValue, got %v", err)
			}
		})
	}

	all, err := logs.List(child.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 0 {
		t.Fatalf("expected nothing saved, got %d logs", len(all))
	}

	if _, err := logs.AddNote("nope", AtText("2023-06-02", "08:00"), "x"); !errors.Is(err, ErrChildNotFound) {
		t.Fatalf("expected ErrChildNotFound, got %v", err)
	}
}

func TestDailyLogController_ListOrderAndDay(t *testing.T) {
	store := newTestFileStore(t)
	child := newTestChild(t, store)
	logs := NewDailyLogController(store)

	add := func(day, at, notes string) {
		t.Helper()
		if _, err := logs.AddNote(child.ID, AtText(day, at), notes); err != nil {
			t.Fatalf("AddNote: %v", err)
		}
	}
	add("2023-06-03", "07:00", "d")
	add("2023-06-02", "18:00", "c")
	add("2023-06-02", "06:30", "a")
	add("2023-06-02", "12:00", "b")

	all, err := logs.List(child.ID)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var order string
	for _, l := range all {
		order += l.Notes
	}
	if order != "abcd" {
		t.Fatalf("List order = %q, want abcd", order)
	}

	day, err := logs.ListOn(child.ID, date(2023, 6, 2))
	if err != nil {
		t.Fatalf("ListOn: %v", err)
	}
	if len(day) != 3 {
		t.Fatalf("ListOn returned %d logs, want 3", len(day))
	}
}

func TestDailyLogController_Summarize(t *testing.T) {
	store := newTestFileStore(t)
	child := newTestChild(t, store)
	logs := NewDailyLogController(store)
	day := At(date(2023, 6, 2), Clock{Hour: 8})

	steps := []func() (*DailyLog, error){
		func() (*DailyLog, error) {
			return logs.AddFeeding(child.ID, FeedingInput{When: day, Type: "bottle", Amount: floatPtr(120)})
		},
		func() (*DailyLog, error) {
			return logs.AddFeeding(child.ID, FeedingInput{When: day, Type: "breast", DurationMinutes: intPtr(15)})
		},
		func() (*DailyLog, error) {
			return logs.AddFeeding(child.ID, FeedingInput{When: day, Type: "bottle", Amount: floatPtr(90)})
		},
		func() (*DailyLog, error) {
			return logs.AddSleep(child.ID, SleepInput{When: AtText("2023-06-02", "13:00"), EndText: "14:30"})
		},
		func() (*DailyLog, error) {
			return logs.AddSleep(child.ID, SleepInput{When: AtText("2023-06-02", "21:00"), EndText: "06:00"})
		},
		func() (*DailyLog, error) {
			return logs.AddSleep(child.ID, SleepInput{When: AtText("2023-06-02", "23:00")})
		},
		func() (*DailyLog, error) {
			return logs.AddDiaper(child.ID, DiaperInput{When: day, Type: "wet"})
		},
		func() (*DailyLog, error) {
			return logs.AddDiaper(child.ID, DiaperInput{When: day, Type: "wet"})
		},
		func() (*DailyLog, error) {
			return logs.AddDiaper(child.ID, DiaperInput{When: day, Type: "soiled"})
		},
		func() (*DailyLog, error) {
			return logs.AddNote(child.ID, day, "bath")
		},
		func() (*DailyLog, error) {
			return logs.AddDiaper(child.ID, DiaperInput{When: AtText("2023-06-03", "08:00"), Type: "wet"})
		},
	}
	for _, step := range steps {
		if _, err := step(); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	s, err := logs.Summarize(child.ID, date(2023, 6, 2))
	if err != nil {
		t.Fatalf("Summarize: %v", err)
	}
	want := DaySummary{
		Date:          date(2023, 6, 2),
		Feedings:      3,
		FeedAmount:    210,
		Sleeps:        3,
		SleepMinutes:  630,
		OpenSleeps:    1,
		Diapers:       3,
		DiapersByType: map[string]int{"wet": 2, "soiled": 1},
		Other:         1,
	}
	if !reflect.DeepEqual(s, want) {
		t.Fatalf("Summarize = %+v\nwant %+v", s, want)
	}
}

func TestDailyLogController_Update(t *testing.T) {
	store := newTestFileStore(t)
	child := newTestChild(t, store)
	logs := NewDailyLogController(store)

	entry, err := logs.AddFeeding(child.ID, FeedingInput{
		When:   AtText("2023-06-02", "07:30"),
		Type:   "bottle",
		Amount: floatPtr(120),
	})
	if err != nil {
		t.Fatalf("AddFeeding: %v", err)
	}

	// sleep and diaper fields do not apply to a feeding and are ignored
	updated, err := logs.Update(child.ID, entry.ID, Fields{
		"amount":      "150",
		"duration":    "20",
		"quality":     "restless",
		"diaper_type": "wet",
		"notes":       "burped",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Kind != KindFeeding || updated.Sleep != nil || updated.Diaper != nil {
		t.Fatalf("update changed the log kind: %+v", updated)
	}
	if *updated.Feeding.Amount != 150 || *updated.Feeding.DurationMinutes != 20 || updated.Notes != "burped" {
		t.Fatalf("unexpected update result: %+v %+v", updated, updated.Feeding)
	}

	stored, err := logs.Get(child.ID, entry.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !reflect.DeepEqual(stored, updated) {
		t.Fatalf("stored log differs from update result")
	}

	if _, err := logs.Update(child.ID, entry.ID, Fields{"amount": "lots"}); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}

func TestDailyLogController_UpdateSleep(t *testing.T) {
	store := newTestFileStore(t)
	child := newTestChild(t, store)
	logs := NewDailyLogController(store)

	entry, err := logs.AddSleep(child.ID, SleepInput{When: AtText("2023-06-02", "20:00")})
	if err != nil {
		t.Fatalf("AddSleep: %v", err)
	}
	if _, ok := entry.Sleep.Duration(); ok {
		t.Fatal("expected open sleep without duration")
	}

	updated, err := logs.Update(child.ID, entry.ID, Fields{"time": "21:00", "end_time": "06:30"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Sleep.Start != (Clock{Hour: 21}) || updated.Time != (Clock{Hour: 21}) {
		t.Fatalf("start not moved with time: %+v", updated.Sleep)
	}
	if minutes, ok := updated.Sleep.Duration(); !ok || minutes != 570 {
		t.Fatalf("Duration = %d, %v", minutes, ok)
	}
}

func TestDailyLogController_Delete(t *testing.T) {
	store := newTestFileStore(t)
	child := newTestChild(t, store)
	logs := NewDailyLogController(store)

	entry, err := logs.AddDiaper(child.ID, DiaperInput{When: AtText("2023-06-02", "08:00"), Type: "wet"})
	if err != nil {
		t.Fatalf("AddDiaper: %v", err)
	}
	if err := logs.Delete(child.ID, entry.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := logs.Get(child.ID, entry.ID); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if err := logs.Delete(child.ID, entry.ID); !errors.Is(err, ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}
