package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/nexidian/gocliselect"
)

// Prompter reads answers line by line. Every Ask method returns io.EOF
// once input is exhausted.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *Prompter) AskRequired(label string) (string, error) {
	for {
		answer, err := p.Ask(label)
		if err != nil {
			return "", err
		}
		if answer != "" {
			return answer, nil
		}
		fmt.Fprintln(p.out, "This field is required.")
	}
}

// AskDate re-prompts until the answer is a YYYY-MM-DD date. Optional
// prompts accept a blank answer and return nil.
func (p *Prompter) AskDate(label string, optional bool) (*time.Time, error) {
	for {
		answer, err := p.Ask(label + " (YYYY-MM-DD)")
		if err != nil {
			return nil, err
		}
		if answer == "" && optional {
			return nil, nil
		}
		d, err := ParseDate(answer)
		if err == nil {
			return &d, nil
		}
		fmt.Fprintln(p.out, "Invalid date format. Please use YYYY-MM-DD.")
	}
}

// AskDateOr returns def on a blank answer.
func (p *Prompter) AskDateOr(label string, def time.Time) (time.Time, error) {
	d, err := p.AskDate(fmt.Sprintf("%s [%s]", label, formatDate(def)), true)
	if err != nil {
		return time.Time{}, err
	}
	if d == nil {
		return dateOnly(def), nil
	}
	return *d, nil
}

func (p *Prompter) AskClock(label string, optional bool) (*Clock, error) {
	for {
		answer, err := p.Ask(label + " (HH:MM)")
		if err != nil {
			return nil, err
		}
		if answer == "" && optional {
			return nil, nil
		}
		c, err := ParseClock(answer)
		if err == nil {
			return &c, nil
		}
		fmt.Fprintln(p.out, "Invalid time format. Please use HH:MM.")
	}
}

// AskClockOr returns def on a blank answer.
func (p *Prompter) AskClockOr(label string, def Clock) (Clock, error) {
	c, err := p.AskClock(fmt.Sprintf("%s [%s]", label, def), true)
	if err != nil {
		return Clock{}, err
	}
	if c == nil {
		return def, nil
	}
	return *c, nil
}

func (p *Prompter) AskFloat(label string) (*float64, error) {
	for {
		answer, err := p.Ask(label)
		if err != nil {
			return nil, err
		}
		f, err := parseOptionalFloat(answer)
		if err == nil {
			return f, nil
		}
		fmt.Fprintln(p.out, "Please enter a number or leave blank.")
	}
}

func (p *Prompter) AskInt(label string) (*int, error) {
	for {
		answer, err := p.Ask(label)
		if err != nil {
			return nil, err
		}
		n, err := parseOptionalInt(answer)
		if err == nil {
			return n, nil
		}
		fmt.Fprintln(p.out, "Please enter a whole number or leave blank.")
	}
}

// AskOneOf accepts one of the allowed answers, case-insensitively.
func (p *Prompter) AskOneOf(label string, allowed []string, optional bool) (string, error) {
	for {
		answer, err := p.Ask(fmt.Sprintf("%s (%s)", label, strings.Join(allowed, "/")))
		if err != nil {
			return "", err
		}
		answer = strings.ToLower(answer)
		if answer == "" && optional {
			return "", nil
		}
		for _, a := range allowed {
			if answer == a {
				return answer, nil
			}
		}
		fmt.Fprintf(p.out, "Please choose one of: %s\n", strings.Join(allowed, ", "))
	}
}

type MenuItem struct {
	Key   string
	Label string
}

// Chooser shows a menu and returns the chosen item's key, or "" when the
// user picks the back item.
type Chooser interface {
	Choose(title string, items []MenuItem, back string) (string, error)
}

// numberedMenu prints items as 1..n with the back item as 0 and reads the
// number from the prompter.
type numberedMenu struct {
	prompt *Prompter
}

func (m *numberedMenu) Choose(title string, items []MenuItem, back string) (string, error) {
	for {
		fmt.Fprintf(m.prompt.out, "\n===== %s =====\n", title)
		for i, item := range items {
			fmt.Fprintf(m.prompt.out, "%d. %s\n", i+1, item.Label)
		}
		fmt.Fprintf(m.prompt.out, "0. %s\n", back)

		answer, err := m.prompt.Ask("\nEnter your choice")
		if err != nil {
			return "", err
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n == 0 {
			return "", nil
		}
		if err == nil && n >= 1 && n <= len(items) {
			return items[n-1].Key, nil
		}
		fmt.Fprintln(m.prompt.out, "Invalid choice. Please try again.")
	}
}

// selectMenu renders an arrow-key menu on the terminal.
type selectMenu struct{}

func (selectMenu) Choose(title string, items []MenuItem, back string) (string, error) {
	menu := gocliselect.NewMenu(title)
	for _, item := range items {
		menu.AddItem(item.Label, item.Key)
	}
	menu.EnableSkip(back)

	id, err := menu.Display()
	if err != nil {
		return "", err
	}
	return menuKey(id), nil
}

// menuKey turns a selected item ID into a key. The skip item and escape
// come back as nil or "" and both mean back.
func menuKey(id any) string {
	key, _ := id.(string)
	return key
}
