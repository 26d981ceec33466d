package main

import (
	"bytes"
	"strings"
	"testing"
)

var (
	_ Chooser = selectMenu{}
	_ Chooser = (*numberedMenu)(nil)
)

func TestMenuKey(t *testing.T) {
	tests := []struct {
		name string
		id   any
		want string
	}{
		{"item", "child-1", "child-1"},
		{"skip item", nil, ""},
		{"escape", "", ""},
		{"foreign id", 42, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := menuKey(tt.id); got != tt.want {
				t.Errorf("menuKey(%v) = %q, want %q", tt.id, got, tt.want)
			}
		})
	}
}

func TestNumberedMenu_Choose(t *testing.T) {
	var out bytes.Buffer
	prompt := NewPrompter(strings.NewReader("3\n2\n0\n"), &out)
	menu := &numberedMenu{prompt: prompt}
	items := []MenuItem{{Key: "a", Label: "First"}, {Key: "b", Label: "Second"}}

	key, err := menu.Choose("Pick", items, "Back")
	if err != nil {
		t.Fatalf("Choose: %v", err)
	}
	if key != "b" {
		t.Fatalf("Choose = %q, want b", key)
	}
	if !strings.Contains(out.String(), "Invalid choice. Please try again.") {
		t.Fatalf("expected out of range choice to be rejected:\n%s", out.String())
	}

	key, err = menu.Choose("Pick", items, "Back")
	if err != nil || key != "" {
		t.Fatalf("back = %q, %v", key, err)
	}
}

func TestPrompter_AskFloatRejectsNonFinite(t *testing.T) {
	var out bytes.Buffer
	prompt := NewPrompter(strings.NewReader("NaN\n+Inf\n7.5\n"), &out)

	f, err := prompt.AskFloat("Weight")
	if err != nil {
		t.Fatalf("AskFloat: %v", err)
	}
	if f == nil || *f != 7.5 {
		t.Fatalf("AskFloat = %v", f)
	}
	if got := strings.Count(out.String(), "Please enter a number or leave blank."); got != 2 {
		t.Fatalf("expected 2 re-prompts, got %d", got)
	}
}
