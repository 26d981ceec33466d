package main

import (
	"fmt"
	"time"
)

// Fields holds textual updates keyed by field name. Names a record does
// not have are ignored; an empty value clears an optional field.
type Fields map[string]string

type ProfileController struct {
	store Store
}

func NewProfileController(store Store) *ProfileController {
	return &ProfileController{store: store}
}

// Create parses birthdate as YYYY-MM-DD and saves a new child.
func (p *ProfileController) Create(name, birthdate, gender, notes string) (*Child, error) {
	born, err := ParseDate(birthdate)
	if err != nil {
		return nil, err
	}
	return p.CreateChild(name, born, gender, notes)
}

func (p *ProfileController) CreateChild(name string, birthdate time.Time, gender, notes string) (*Child, error) {
	child := NewChild(name, birthdate, gender, notes)
	if err := p.store.Save(child); err != nil {
		return nil, err
	}
	return child, nil
}

func (p *ProfileController) Get(id string) (*Child, error) {
	return loadChild(p.store, id)
}

func (p *ProfileController) List() ([]*Child, error) {
	return p.store.LoadAll()
}

// FindByName returns the first child whose name matches exactly.
func (p *ProfileController) FindByName(name string) (*Child, error) {
	children, err := p.store.LoadAll()
	if err != nil {
		return nil, err
	}
	for _, c := range children {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, ErrChildNotFound
}

func (p *ProfileController) Update(id string, fields Fields) (*Child, error) {
	child, err := loadChild(p.store, id)
	if err != nil {
		return nil, err
	}

	if err := applyChildFields(child, fields); err != nil {
		return nil, err
	}

	if err := p.store.Save(child); err != nil {
		return nil, err
	}
	return child, nil
}

// Delete reports whether the child existed.
func (p *ProfileController) Delete(id string) (bool, error) {
	return p.store.Delete(id)
}

func applyChildFields(child *Child, fields Fields) error {
	for key, value := range fields {
		switch key {
		case "name":
			child.Name = value
		case "birthdate":
			born, err := ParseDate(value)
			if err != nil {
				return fmt.Errorf("birthdate: %w", err)
			}
			child.Birthdate = born
		case "gender":
			child.Gender = value
		case "notes":
			child.Notes = value
		}
	}
	return nil
}

// loadChild maps a missing document to ErrChildNotFound.
func loadChild(store Store, id string) (*Child, error) {
	child, err := store.Load(id)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, ErrChildNotFound
	}
	return child, nil
}
