package main

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"
)

func printChildren(w io.Writer, children []*Child, now time.Time) {
	if len(children) == 0 {
		fmt.Fprintln(w, "No babies found.")
		return
	}

	headers := []string{"#", "Name", "Born", "Age", "Gender"}
	var rows [][]string
	for i, c := range children {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			c.Name,
			formatDate(c.Birthdate),
			c.AgeAt(now).String(),
			orDash(c.Gender),
		})
	}
	PrintTable(w, headers, rows, nil)
}

func printChildDetails(w io.Writer, c *Child, now time.Time) {
	fmt.Fprintf(w, "\n===== %s =====\n", c.Name)
	fmt.Fprintf(w, "ID: %s\n", c.ID)
	fmt.Fprintf(w, "Birthdate: %s\n", formatDate(c.Birthdate))
	fmt.Fprintf(w, "Age: %s\n", c.AgeAt(now))
	if c.Gender != "" {
		fmt.Fprintf(w, "Gender: %s\n", c.Gender)
	}
	if c.Notes != "" {
		fmt.Fprintf(w, "Notes: %s\n", c.Notes)
	}

	achieved := 0
	for _, m := range c.Milestones {
		if m.Achieved() {
			achieved++
		}
	}
	fmt.Fprintf(w, "Growth records: %d\n", len(c.GrowthRecords))
	fmt.Fprintf(w, "Milestones: %d (%d achieved)\n", len(c.Milestones), achieved)
	fmt.Fprintf(w, "Daily logs: %d\n", len(c.DailyLogs))
}

func printGrowthTable(w io.Writer, records []GrowthRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No growth records found.")
		return
	}

	headers := []string{"Date", "Weight (kg)", "Height (cm)", "Head (cm)", "Notes"}
	var rows [][]string
	for _, r := range records {
		rows = append(rows, []string{
			formatDate(r.Date),
			formatOptionalFloat(r.Weight),
			formatOptionalFloat(r.Height),
			formatOptionalFloat(r.HeadCircumference),
			r.Notes,
		})
	}
	PrintTable(w, headers, rows, nil)
}

func printMilestoneTable(w io.Writer, milestones []Milestone, birthdate time.Time) {
	if len(milestones) == 0 {
		fmt.Fprintln(w, "No milestones found.")
		return
	}

	headers := []string{"Milestone", "Category", "Achieved", "Expected", "On time", "Notes"}
	var rows [][]string
	achieved := 0
	for _, m := range milestones {
		if m.Achieved() {
			achieved++
		}
		rows = append(rows, []string{
			m.Name,
			NormalizeCategory(m.Category),
			formatOptionalDate(m.AchievedDate),
			formatRange(m.ExpectedRange),
			formatOnTime(m, birthdate),
			m.Notes,
		})
	}
	footers := []string{"", "Achieved:", fmt.Sprintf("%d/%d", achieved, len(milestones)), "", "", ""}
	PrintTable(w, headers, rows, footers)
}

func printLogTable(w io.Writer, logs []DailyLog) {
	if len(logs) == 0 {
		fmt.Fprintln(w, "No daily logs found.")
		return
	}

	headers := []string{"Day", "Time", "Kind", "Details", "Notes"}
	var rows [][]string
	var lastDay string
	for _, l := range logs {
		day := formatDate(l.Date)
		shown := day
		if day == lastDay {
			shown = ""
		}
		lastDay = day

		rows = append(rows, []string{shown, l.Time.String(), string(l.Kind), logDetails(l), l.Notes})
	}
	PrintTable(w, headers, rows, nil)
}

func printSuggestions(w io.Writer, s Suggestions, months int) {
	fmt.Fprintf(w, "Milestones to watch for at %d month(s):\n", months)
	if len(s) == 0 {
		fmt.Fprintln(w, "  none in the catalog")
		return
	}
	for _, category := range catalogCategories {
		entries, ok := s[category]
		if !ok {
			continue
		}
		fmt.Fprintf(w, "\n%s\n", strings.ToUpper(category[:1])+category[1:])
		for _, e := range entries {
			fmt.Fprintf(w, "  - %s (%s)\n", e.Name, formatRange(&e.Range))
		}
	}
}

func printDaySummary(w io.Writer, s DaySummary) {
	fmt.Fprintf(w, "Summary for %s\n", formatDate(s.Date))

	feeds := fmt.Sprintf("%d", s.Feedings)
	if s.FeedAmount > 0 {
		feeds += fmt.Sprintf(" (total amount %g)", s.FeedAmount)
	}
	sleeps := fmt.Sprintf("%d, %s asleep", s.Sleeps, FormatMinutes(s.SleepMinutes))
	if s.OpenSleeps > 0 {
		sleeps += fmt.Sprintf(", %d still open", s.OpenSleeps)
	}

	var types []string
	for t := range s.DiapersByType {
		types = append(types, t)
	}
	sort.Strings(types)
	var byType []string
	for _, t := range types {
		byType = append(byType, fmt.Sprintf("%s %d", orDash(t), s.DiapersByType[t]))
	}
	diapers := fmt.Sprintf("%d", s.Diapers)
	if len(byType) > 0 {
		diapers += " (" + strings.Join(byType, ", ") + ")"
	}

	rows := [][]string{
		{"Feedings", feeds},
		{"Sleeps", sleeps},
		{"Diapers", diapers},
	}
	if s.Other > 0 {
		rows = append(rows, []string{"Other", fmt.Sprintf("%d", s.Other)})
	}
	PrintTable(w, []string{"Activity", "Total"}, rows, nil)
}

// logDetails describes the kind-specific part of a log entry.
func logDetails(l DailyLog) string {
	switch {
	case l.Feeding != nil:
		parts := []string{orDash(l.Feeding.Type)}
		if l.Feeding.Amount != nil {
			parts = append(parts, "amount "+formatOptionalFloat(l.Feeding.Amount))
		}
		if l.Feeding.DurationMinutes != nil {
			parts = append(parts, formatOptionalInt(l.Feeding.DurationMinutes)+" min")
		}
		return strings.Join(parts, ", ")
	case l.Sleep != nil:
		desc := l.Sleep.Start.String() + "-"
		if l.Sleep.End != nil {
			desc += l.Sleep.End.String()
		} else {
			desc += "?"
		}
		if minutes, ok := l.Sleep.Duration(); ok {
			desc += " (" + FormatMinutes(minutes) + ")"
		}
		if l.Sleep.Quality != "" {
			desc += ", " + l.Sleep.Quality
		}
		return desc
	case l.Diaper != nil:
		return orDash(l.Diaper.Type)
	default:
		return ""
	}
}

func formatRange(r *AgeRange) string {
	if r == nil {
		return "-"
	}
	return fmt.Sprintf("%d-%d mo", r.MinMonths, r.MaxMonths)
}

func formatOnTime(m Milestone, birthdate time.Time) string {
	onTime, known := m.AchievedOnTime(birthdate)
	switch {
	case !known:
		return "-"
	case onTime:
		return "yes"
	default:
		return "no"
	}
}
