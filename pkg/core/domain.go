// Package core holds the domain types shared by the note and snackbar stores
// and the contract their storage backends implement.
package core

import (
	"fmt"
	"slices"
)

// CategoryType classifies a note.
type CategoryType string

const (
	CategoryActiveDuty          CategoryType = "Active Duty"
	CategoryGoalEvidence        CategoryType = "Goal Evidence"
	CategorySupportCoordination CategoryType = "Support Coordination"
)

var knownCategories = []CategoryType{
	CategoryActiveDuty,
	CategoryGoalEvidence,
	CategorySupportCoordination,
}

// Valid reports whether c belongs to the fixed set of categories.
func (c CategoryType) Valid() bool {
	return slices.Contains(knownCategories, c)
}

// Client is the person a note is written about.
type Client struct {
	ID   int    `json:"id" yaml:"id"`
	Name string `json:"name" yaml:"name"`
}

// IsZero reports whether the client carries no data.
func (c Client) IsZero() bool {
	return c.ID == 0 && c.Name == ""
}

// Note is a user-authored record linking a client, a category and free text.
// ID is assigned by the caller and identifies the note within a collection.
type Note struct {
	ID       int          `json:"id" yaml:"id"`
	Client   Client       `json:"client" yaml:"client"`
	Category CategoryType `json:"category" yaml:"category"`
	Text     string       `json:"note" yaml:"note"`
}

// Merge returns n with every non-zero field of patch applied on top.
// The ID is never changed.
func (n Note) Merge(patch Note) Note {
	if !patch.Client.IsZero() {
		n.Client = patch.Client
	}
	if patch.Category != "" {
		n.Category = patch.Category
	}
	if patch.Text != "" {
		n.Text = patch.Text
	}
	return n
}

func (n Note) String() string {
	return fmt.Sprintf("#%d [%s] %s: %s", n.ID, n.Category, n.Client.Name, n.Text)
}

// Record is the persisted shape of a note store.
// The selected note is transient and never part of it.
type Record struct {
	Notes      []Note         `json:"notes" yaml:"notes"`
	Categories []CategoryType `json:"categories" yaml:"categories"`
	ClientList []Client       `json:"clientList" yaml:"clientList"`
}

// Normalize replaces nil sequences with empty ones so that records written by
// older versions (or by hand) load as empty collections.
func (r *Record) Normalize() {
	if r.Notes == nil {
		r.Notes = []Note{}
	}
	if r.Categories == nil {
		r.Categories = []CategoryType{}
	}
	if r.ClientList == nil {
		r.ClientList = []Client{}
	}
}

// DefaultClients returns a fresh copy of the built-in client list.
func DefaultClients() []Client {
	return []Client{
		{ID: 1, Name: "Imran Ali"},
		{ID: 2, Name: "Charmaine Thum"},
		{ID: 3, Name: "Gary Mohan"},
	}
}

// DefaultCategories returns a fresh copy of the built-in category list.
func DefaultCategories() []CategoryType {
	return slices.Clone(knownCategories)
}

// Severity tells the UI how to present a snack.
type Severity string

const (
	SeverityError   Severity = "Error"
	SeveritySuccess Severity = "Success"
	SeverityWarning Severity = "Warning"
	SeverityInfo    Severity = "Info"
)

// Valid reports whether s is one of the four known severities.
func (s Severity) Valid() bool {
	switch s {
	case SeverityError, SeveritySuccess, SeverityWarning, SeverityInfo:
		return true
	}
	return false
}

// Snack is a transient user notification.
// ID is assigned by the snackbar store on enqueue and is unique per store.
type Snack struct {
	ID       uint64   `json:"id"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}
