package main

import (
	"fmt"
	"strconv"
)

var (
	feedingTypes   = []string{"breast", "bottle", "solid"}
	sleepQualities = []string{"good", "fair", "poor"}
	diaperTypes    = []string{"wet", "soiled", "both"}
)

// +---------------------+
// |                     |
// |       Growth        |
// |                     |
// +---------------------+

func (a *App) trackGrowth() error {
	return a.submenu("Track Growth", []action{
		{"add", "Add Growth Record", a.addGrowth},
		{"list", "View Growth Records", a.listGrowth},
		{"update", "Update Growth Record", a.updateGrowth},
		{"delete", "Delete Growth Record", a.deleteGrowth},
	})()
}

func (a *App) addGrowth() error {
	child, err := a.pickChild()
	if err != nil || child == nil {
		return err
	}

	fmt.Fprintln(a.out, "\n===== Add Growth Record =====")
	var m Measurement
	if m.Date, err = a.prompt.AskDateOr("Date", a.today()); err != nil {
		return err
	}
	if m.Weight, err = a.prompt.AskFloat("Weight in kg (optional)"); err != nil {
		return err
	}
	if m.Height, err = a.prompt.AskFloat("Height in cm (optional)"); err != nil {
		return err
	}
	if m.HeadCircumference, err = a.prompt.AskFloat("Head circumference in cm (optional)"); err != nil {
		return err
	}
	if m.Notes, err = a.prompt.Ask("Notes (optional)"); err != nil {
		return err
	}

	if _, err := a.growth.Add(child.ID, m); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Growth record added successfully!")
	return nil
}

func (a *App) listGrowth() error {
	child, err := a.pickChild()
	if err != nil || child == nil {
		return err
	}
	records, err := a.growth.List(child.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "\n===== Growth Records for %s =====\n", child.Name)
	printGrowthTable(a.out, records)
	return nil
}

func (a *App) pickGrowth(child *Child) (*GrowthRecord, error) {
	records, err := a.growth.List(child.ID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		fmt.Fprintln(a.out, "No growth records found.")
		return nil, nil
	}

	items := make([]MenuItem, len(records))
	for i, r := range records {
		label := fmt.Sprintf("%s  weight %s  height %s", formatDate(r.Date), formatOptionalFloat(r.Weight), formatOptionalFloat(r.Height))
		items[i] = MenuItem{Key: r.ID, Label: label}
	}
	id, err := a.menu.Choose("Select Growth Record", items, "Cancel")
	if err != nil || id == "" {
		return nil, err
	}
	return a.growth.Get(child.ID, id)
}

func (a *App) updateGrowth() error {
	child, err := a.pickChild()
	if err != nil || child == nil {
		return err
	}
	record, err := a.pickGrowth(child)
	if err != nil || record == nil {
		return err
	}

	fields, err := a.askFields([]fieldPrompt{
		{"date", "Date (YYYY-MM-DD)", formatDate(record.Date)},
		{"weight", "Weight in kg", formatOptionalFloat(record.Weight)},
		{"height", "Height in cm", formatOptionalFloat(record.Height)},
		{"head_circumference", "Head circumference in cm", formatOptionalFloat(record.HeadCircumference)},
		{"notes", "Notes", record.Notes},
	})
	if err != nil {
		return err
	}

	if _, err := a.growth.Update(child.ID, record.ID, fields); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Growth record updated.")
	return nil
}

func (a *App) deleteGrowth() error {
	child, err := a.pickChild()
	if err != nil || child == nil {
		return err
	}
	record, err := a.pickGrowth(child)
	if err != nil || record == nil {
		return err
	}
	ok, err := a.confirm("Delete growth record from " + formatDate(record.Date))
	if err != nil || !ok {
		return err
	}

	if err := a.growth.Delete(child.ID, record.ID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Growth record deleted.")
	return nil
}

// +---------------------+
// |                     |
// |     Milestones      |
// |                     |
// +---------------------+

func (a *App) trackMilestones() error {
	return a.submenu("Track Milestones", []action{
		{"add", "Add Milestone", a.addMilestone},
		{"list", "View Milestones", a.listMilestones},
		{"suggest", "Milestone Suggestions", a.suggestMilestones},
		{"update", "Update Milestone", a.updateMilestone},
		{"delete", "Delete Milestone", a.deleteMilestone},
	})()
}

func (a *App) addMilestone() error {
	child, err := a.pickChild()
	if err != nil || child == nil {
		return err
	}

	fmt.Fprintln(a.out, "\n===== Add Milestone =====")
	var in MilestoneInput
	if in.Name, err = a.prompt.AskRequired("Name"); err != nil {
		return err
	}
	if in.Category, err = a.prompt.AskOneOf("Category", Categories, true); err != nil {
		return err
	}
	if in.Category == "" {
		in.Category = CategoryOther
	}
	if in.AchievedDate, err = a.prompt.AskDate("Achieved date (optional)", true); err != nil {
		return err
	}
	minMonths, err := a.prompt.AskInt("Expected from month (optional)")
	if err != nil {
		return err
	}
	maxMonths, err := a.prompt.AskInt("Expected by month (optional)")
	if err != nil {
		return err
	}
	if minMonths != nil || maxMonths != nil {
		in.ExpectedRange = &AgeRange{}
		if minMonths != nil {
			in.ExpectedRange.MinMonths = *minMonths
		}
		if maxMonths != nil {
			in.ExpectedRange.MaxMonths = *maxMonths
		}
	}
	if in.Notes, err = a.prompt.Ask("Notes (optional)"); err != nil {
		return err
	}

	if _, err := a.milestones.Add(child.ID, in); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Milestone added successfully!")
	return nil
}

func (a *App) listMilestones() error {
	child, err := a.pickChild()
	if err != nil || child == nil {
		return err
	}
	milestones, err := a.milestones.ListSorted(child.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "\n===== Milestones for %s =====\n", child.Name)
	printMilestoneTable(a.out, milestones, child.Birthdate)
	return nil
}

// suggestMilestones shows what is due and offers to record one of them.
func (a *App) suggestMilestones() error {
	child, err := a.pickChild()
	if err != nil || child == nil {
		return err
	}
	suggestions, months, err := a.milestones.SuggestFor(child.ID, a.now())
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out)
	printSuggestions(a.out, suggestions, months)
	if len(suggestions) == 0 {
		return nil
	}

	type pick struct {
		category string
		entry    CatalogEntry
	}
	var picks []pick
	var items []MenuItem
	for _, category := range catalogCategories {
		for _, e := range suggestions[category] {
			items = append(items, MenuItem{Key: strconv.Itoa(len(picks)), Label: fmt.Sprintf("%s (%s)", e.Name, category)})
			picks = append(picks, pick{category, e})
		}
	}

	key, err := a.menu.Choose("Record a Suggested Milestone", items, "Done")
	if err != nil || key == "" {
		return err
	}
	i, _ := strconv.Atoi(key)
	chosen := picks[i]

	achieved, err := a.prompt.AskDate("Achieved date (optional)", true)
	if err != nil {
		return err
	}
	notes, err := a.prompt.Ask("Notes (optional)")
	if err != nil {
		return err
	}
	if _, err := a.milestones.AddFromCatalog(child.ID, chosen.category, chosen.entry, achieved, notes); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Milestone %s added.\n", chosen.entry.Name)
	return nil
}

func (a *App) pickMilestone(child *Child) (*Milestone, error) {
	milestones, err := a.milestones.ListSorted(child.ID)
	if err != nil {
		return nil, err
	}
	if len(milestones) == 0 {
		fmt.Fprintln(a.out, "No milestones found.")
		return nil, nil
	}

	items := make([]MenuItem, len(milestones))
	for i, m := range milestones {
		items[i] = MenuItem{Key: m.ID, Label: fmt.Sprintf("%s (%s)", m.Name, formatOptionalDate(m.AchievedDate))}
	}
	id, err := a.menu.Choose("Select Milestone", items, "Cancel")
	if err != nil || id == "" {
		return nil, err
	}
	return a.milestones.Get(child.ID, id)
}

func (a *App) updateMilestone() error {
	child, err := a.pickChild()
	if err != nil || child == nil {
		return err
	}
	m, err := a.pickMilestone(child)
	if err != nil || m == nil {
		return err
	}

	var minMonths, maxMonths string
	if m.ExpectedRange != nil {
		minMonths = strconv.Itoa(m.ExpectedRange.MinMonths)
		maxMonths = strconv.Itoa(m.ExpectedRange.MaxMonths)
	}
	fields, err := a.askFields([]fieldPrompt{
		{"name", "Name", m.Name},
		{"category", "Category", m.Category},
		{"achieved_date", "Achieved date (YYYY-MM-DD)", formatOptionalDate(m.AchievedDate)},
		{"min_months", "Expected from month", minMonths},
		{"max_months", "Expected by month", maxMonths},
		{"notes", "Notes", m.Notes},
	})
	if err != nil {
		return err
	}
	if c, ok := fields["category"]; ok && c != "" {
		fields["category"] = NormalizeCategory(c)
	}

	if _, err := a.milestones.Update(child.ID, m.ID, fields); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Milestone updated.")
	return nil
}

func (a *App) deleteMilestone() error {
	child, err := a.pickChild()
	if err != nil || child == nil {
		return err
	}
	m, err := a.pickMilestone(child)
	if err != nil || m == nil {
		return err
	}
	ok, err := a.confirm("Delete milestone " + m.Name)
	if err != nil || !ok {
		return err
	}

	if err := a.milestones.Delete(child.ID, m.ID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Milestone deleted.")
	return nil
}

// +---------------------+
// |                     |
// |     Daily Logs      |
// |                     |
// +---------------------+

func (a *App) dailyLogs() error {
	return a.submenu("Daily Logs", []action{
		{"feeding", "Log Feeding", a.logFeeding},
		{"sleep", "Log Sleep", a.logSleep},
		{"diaper", "Log Diaper Change", a.logDiaper},
		{"note", "Log Note", a.logNote},
		{"list", "View Logs for a Day", a.listLogs},
		{"update", "Update Log", a.updateLog},
		{"delete", "Delete Log", a.deleteLog},
	})()
}

// askWhen asks for a date and time, defaulting to now.
func (a *App) askWhen(timeLabel string) (When, error) {
	now := a.now()
	date, err := a.prompt.AskDateOr("Date", now)
	if err != nil {
		return When{}, err
	}
	at, err := a.prompt.AskClockOr(timeLabel, ClockOf(now))
	if err != nil {
		return When{}, err
	}
	return At(date, at), nil
}

func (a *App) logFeeding() error {
	child, err := a.pickChild()
	if err != nil || child == nil {
		return err
	}

	fmt.Fprintln(a.out, "\n===== Log Feeding =====")
	var in FeedingInput
	if in.When, err = a.askWhen("Time"); err != nil {
		return err
	}
	if in.Type, err = a.prompt.AskOneOf("Feeding type", feedingTypes, false); err != nil {
		return err
	}
	if in.Amount, err = a.prompt.AskFloat("Amount (optional)"); err != nil {
		return err
	}
	if in.DurationMinutes, err = a.prompt.AskInt("Duration in minutes (optional)"); err != nil {
		return err
	}
	if in.Notes, err = a.prompt.Ask("Notes (optional)"); err != nil {
		return err
	}

	if _, err := a.logs.AddFeeding(child.ID, in); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Feeding logged.")
	return nil
}

func (a *App) logSleep() error {
	child, err := a.pickChild()
	if err != nil || child == nil {
		return err
	}

	fmt.Fprintln(a.out, "\n===== Log Sleep =====")
	var in SleepInput
	if in.When, err = a.askWhen("Start time"); err != nil {
		return err
	}
	if in.End, err = a.prompt.AskClock("End time (optional)", true); err != nil {
		return err
	}
	if in.Quality, err = a.prompt.AskOneOf("Quality (optional)", sleepQualities, true); err != nil {
		return err
	}
	if in.Notes, err = a.prompt.Ask("Notes (optional)"); err != nil {
		return err
	}

	entry, err := a.logs.AddSleep(child.ID, in)
	if err != nil {
		return err
	}
	if minutes, ok := entry.Sleep.Duration(); ok {
		fmt.Fprintf(a.out, "Sleep logged (%s).\n", FormatMinutes(minutes))
		return nil
	}
	fmt.Fprintln(a.out, "Sleep logged.")
	return nil
}

func (a *App) logDiaper() error {
	child, err := a.pickChild()
	if err != nil || child == nil {
		return err
	}

	fmt.Fprintln(a.out, "\n===== Log Diaper Change =====")
	var in DiaperInput
	if in.When, err = a.askWhen("Time"); err != nil {
		return err
	}
	if in.Type, err = a.prompt.AskOneOf("Diaper type", diaperTypes, false); err != nil {
		return err
	}
	if in.Notes, err = a.prompt.Ask("Notes (optional)"); err != nil {
		return err
	}

	if _, err := a.logs.AddDiaper(child.ID, in); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Diaper change logged.")
	return nil
}

func (a *App) logNote() error {
	child, err := a.pickChild()
	if err != nil || child == nil {
		return err
	}

	when, err := a.askWhen("Time")
	if err != nil {
		return err
	}
	notes, err := a.prompt.AskRequired("Notes")
	if err != nil {
		return err
	}

	if _, err := a.logs.AddNote(child.ID, when, notes); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Note logged.")
	return nil
}

func (a *App) listLogs() error {
	child, err := a.pickChild()
	if err != nil || child == nil {
		return err
	}
	date, err := a.prompt.AskDateOr("Date", a.today())
	if err != nil {
		return err
	}

	logs, err := a.logs.ListOn(child.ID, date)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "\n===== Logs for %s on %s =====\n", child.Name, formatDate(date))
	printLogTable(a.out, logs)
	return nil
}

func (a *App) pickLog(child *Child) (*DailyLog, error) {
	logs, err := a.logs.List(child.ID)
	if err != nil {
		return nil, err
	}
	if len(logs) == 0 {
		fmt.Fprintln(a.out, "No daily logs found.")
		return nil, nil
	}

	items := make([]MenuItem, len(logs))
	for i, l := range logs {
		label := fmt.Sprintf("%s %s %s %s", formatDate(l.Date), l.Time, l.Kind, logDetails(l))
		items[i] = MenuItem{Key: l.ID, Label: label}
	}
	id, err := a.menu.Choose("Select Log", items, "Cancel")
	if err != nil || id == "" {
		return nil, err
	}
	return a.logs.Get(child.ID, id)
}

func (a *App) updateLog() error {
	child, err := a.pickChild()
	if err != nil || child == nil {
		return err
	}
	l, err := a.pickLog(child)
	if err != nil || l == nil {
		return err
	}

	prompts := []fieldPrompt{
		{"date", "Date (YYYY-MM-DD)", formatDate(l.Date)},
		{"time", "Time (HH:MM)", l.Time.String()},
	}
	switch {
	case l.Feeding != nil:
		prompts = append(prompts,
			fieldPrompt{"feeding_type", "Feeding type", l.Feeding.Type},
			fieldPrompt{"amount", "Amount", formatOptionalFloat(l.Feeding.Amount)},
			fieldPrompt{"duration", "Duration in minutes", formatOptionalInt(l.Feeding.DurationMinutes)},
		)
	case l.Sleep != nil:
		end := "-"
		if l.Sleep.End != nil {
			end = l.Sleep.End.String()
		}
		prompts = append(prompts,
			fieldPrompt{"end_time", "End time (HH:MM)", end},
			fieldPrompt{"quality", "Quality", l.Sleep.Quality},
		)
	case l.Diaper != nil:
		prompts = append(prompts, fieldPrompt{"diaper_type", "Diaper type", l.Diaper.Type})
	}
	prompts = append(prompts, fieldPrompt{"notes", "Notes", l.Notes})

	fields, err := a.askFields(prompts)
	if err != nil {
		return err
	}

	if _, err := a.logs.Update(child.ID, l.ID, fields); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Log updated.")
	return nil
}

func (a *App) deleteLog() error {
	child, err := a.pickChild()
	if err != nil || child == nil {
		return err
	}
	l, err := a.pickLog(child)
	if err != nil || l == nil {
		return err
	}
	ok, err := a.confirm(fmt.Sprintf("Delete %s log from %s %s", l.Kind, formatDate(l.Date), l.Time))
	if err != nil || !ok {
		return err
	}

	if err := a.logs.Delete(child.ID, l.ID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Log deleted.")
	return nil
}
