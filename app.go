package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

type App struct {
	profiles   *ProfileController
	growth     *GrowthController
	milestones *MilestoneController
	logs       *DailyLogController

	prompt *Prompter
	menu   Chooser
	out    io.Writer
	now    func() time.Time
	ctx    context.Context
}

// action is one entry of a menu loop.
type action struct {
	key   string
	label string
	run   func() error
}

func NewApp(store Store, in io.Reader, out io.Writer, plain bool) *App {
	prompt := NewPrompter(in, out)

	var menu Chooser = selectMenu{}
	if plain {
		menu = &numberedMenu{prompt: prompt}
	}

	return &App{
		profiles:   NewProfileController(store),
		growth:     NewGrowthController(store),
		milestones: NewMilestoneController(store),
		logs:       NewDailyLogController(store),
		prompt:     prompt,
		menu:       menu,
		out:        out,
		now:        time.Now,
		ctx:        context.Background(),
	}
}

// Run shows the main menu until the user exits, input ends or ctx is done.
func (a *App) Run(ctx context.Context) error {
	a.ctx = ctx
	actions := []action{
		{"babies", "Manage Babies", a.manageBabies},
		{"growth", "Track Growth", a.trackGrowth},
		{"milestones", "Track Milestones", a.trackMilestones},
		{"logs", "Daily Logs", a.dailyLogs},
		{"reports", "Reports", a.reports},
	}

	err := a.loop(ctx, "Baby Tracker", actions, "Exit")
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	fmt.Fprintln(a.out, "Goodbye!")
	return nil
}

// loop runs a menu until its back item is chosen. Handler errors are
// printed and the menu is shown again; only input errors end the loop.
func (a *App) loop(ctx context.Context, title string, actions []action, back string) error {
	items := make([]MenuItem, len(actions))
	for i, act := range actions {
		items[i] = MenuItem{Key: act.key, Label: act.label}
	}

	for {
		if ctx.Err() != nil {
			return nil
		}

		choice, err := a.menu.Choose(title, items, back)
		if err != nil {
			return err
		}
		if choice == "" {
			return nil
		}

		for _, act := range actions {
			if act.key != choice {
				continue
			}
			if err := act.run(); err != nil {
				if errors.Is(err, io.EOF) {
					return err
				}
				a.printError(err)
			}
		}
	}
}

func (a *App) submenu(title string, actions []action) func() error {
	return func() error {
		return a.loop(a.ctx, title, actions, "Back to Main Menu")
	}
}

func (a *App) printError(err error) {
	switch {
	case errors.Is(err, ErrChildNotFound):
		fmt.Fprintln(a.out, "Baby not found.")
	case errors.Is(err, ErrRecordNotFound):
		fmt.Fprintln(a.out, "Record not found.")
	default:
		fmt.Fprintf(a.out, "Error: %v\n", err)
	}
}

func (a *App) today() time.Time {
	return dateOnly(a.now())
}

// +---------------------+
// |                     |
// |    Manage Babies    |
// |                     |
// +---------------------+

func (a *App) manageBabies() error {
	return a.submenu("Manage Babies", []action{
		{"add", "Add New Baby", a.addBaby},
		{"list", "View All Babies", a.listBabies},
		{"view", "View Baby Details", a.viewBaby},
		{"update", "Update Baby Information", a.updateBaby},
		{"delete", "Delete Baby", a.deleteBaby},
	})()
}

func (a *App) addBaby() error {
	fmt.Fprintln(a.out, "\n===== Add New Baby =====")
	name, err := a.prompt.AskRequired("Name")
	if err != nil {
		return err
	}
	born, err := a.prompt.AskDate("Birthdate", false)
	if err != nil {
		return err
	}
	gender, err := a.prompt.Ask("Gender (optional)")
	if err != nil {
		return err
	}
	notes, err := a.prompt.Ask("Notes (optional)")
	if err != nil {
		return err
	}

	child, err := a.profiles.CreateChild(name, *born, gender, notes)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Baby %s added successfully!\n", child.Name)
	return nil
}

func (a *App) listBabies() error {
	children, err := a.profiles.List()
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "\n===== All Babies =====")
	printChildren(a.out, children, a.now())
	return nil
}

func (a *App) viewBaby() error {
	child, err := a.pickChild()
	if err != nil || child == nil {
		return err
	}
	printChildDetails(a.out, child, a.now())
	return nil
}

func (a *App) updateBaby() error {
	child, err := a.pickChild()
	if err != nil || child == nil {
		return err
	}

	fields, err := a.askFields([]fieldPrompt{
		{"name", "Name", child.Name},
		{"birthdate", "Birthdate (YYYY-MM-DD)", formatDate(child.Birthdate)},
		{"gender", "Gender", child.Gender},
		{"notes", "Notes", child.Notes},
	})
	if err != nil {
		return err
	}

	updated, err := a.profiles.Update(child.ID, fields)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Baby %s updated.\n", updated.Name)
	return nil
}

func (a *App) deleteBaby() error {
	child, err := a.pickChild()
	if err != nil || child == nil {
		return err
	}
	ok, err := a.confirm(fmt.Sprintf("Delete %s and all records", child.Name))
	if err != nil || !ok {
		return err
	}

	existed, err := a.profiles.Delete(child.ID)
	if err != nil {
		return err
	}
	if !existed {
		return ErrChildNotFound
	}
	fmt.Fprintf(a.out, "Baby %s deleted.\n", child.Name)
	return nil
}

// +---------------------+
// |                     |
// |       Reports       |
// |                     |
// +---------------------+

func (a *App) reports() error {
	child, err := a.pickChild()
	if err != nil || child == nil {
		return err
	}
	date, err := a.prompt.AskDateOr("Summary date", a.today())
	if err != nil {
		return err
	}
	return a.Report(child.ID, date)
}

// Report prints growth, milestone progress and the daily summary for date.
func (a *App) Report(childID string, date time.Time) error {
	child, err := a.profiles.Get(childID)
	if err != nil {
		return err
	}
	printChildDetails(a.out, child, a.now())

	records, err := a.growth.List(childID)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "\n--- Growth ---")
	printGrowthTable(a.out, records)

	milestones, err := a.milestones.ListSorted(childID)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "\n--- Milestones ---")
	printMilestoneTable(a.out, milestones, child.Birthdate)

	summary, err := a.logs.Summarize(childID, date)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, "\n--- Daily Logs ---")
	printDaySummary(a.out, summary)
	return nil
}

// ListBabies prints every child as a table.
func (a *App) ListBabies() error {
	return a.listBabies()
}

// Suggest prints catalog milestones due for the child's current age.
func (a *App) Suggest(childID string) error {
	suggestions, months, err := a.milestones.SuggestFor(childID, a.now())
	if err != nil {
		return err
	}
	printSuggestions(a.out, suggestions, months)
	return nil
}

// +---------------------+
// |                     |
// |   Prompt helpers    |
// |                     |
// +---------------------+

func (a *App) pickChild() (*Child, error) {
	children, err := a.profiles.List()
	if err != nil {
		return nil, err
	}
	if len(children) == 0 {
		fmt.Fprintln(a.out, "\nNo babies found.")
		return nil, nil
	}

	items := make([]MenuItem, len(children))
	for i, c := range children {
		items[i] = MenuItem{Key: c.ID, Label: fmt.Sprintf("%s (born %s)", c.Name, formatDate(c.Birthdate))}
	}
	id, err := a.menu.Choose("Select Baby", items, "Cancel")
	if err != nil || id == "" {
		return nil, err
	}
	for _, c := range children {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, ErrChildNotFound
}

type fieldPrompt struct {
	key     string
	label   string
	current string
}

// requiredFields cannot be cleared from an update prompt.
var requiredFields = map[string]bool{
	"name":      true,
	"birthdate": true,
	"date":      true,
	"time":      true,
}

// askFields asks for each field showing its current value. A blank answer
// keeps the value and "-" clears it, except for required fields.
func (a *App) askFields(prompts []fieldPrompt) (Fields, error) {
	fmt.Fprintln(a.out, "Leave blank to keep the current value, enter - to clear it.")
	fields := Fields{}
	for _, fp := range prompts {
		answer, err := a.prompt.Ask(fmt.Sprintf("%s [%s]", fp.label, fp.current))
		if err != nil {
			return nil, err
		}
		switch answer {
		case "":
		case "-":
			if requiredFields[fp.key] {
				fmt.Fprintf(a.out, "%s is required, keeping %s.\n", fp.label, fp.current)
				continue
			}
			fields[fp.key] = ""
		default:
			fields[fp.key] = answer
		}
	}
	return fields, nil
}

func (a *App) confirm(question string) (bool, error) {
	answer, err := a.prompt.Ask(question + "? (y/N)")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}
