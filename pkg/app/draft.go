package app

import (
	"fmt"
	"slices"
	"strings"

	"github.com/imran-moonward/mynote/pkg/core"
)

// DefaultCategory is preselected by the editor.
const DefaultCategory = core.CategoryGoalEvidence

// Draft is the content of the note editor before it becomes a Note.
type Draft struct {
	ClientName string
	Category   core.CategoryType
	Text       string
}

// FromNote fills a draft with the fields of an existing note.
func FromNote(n core.Note) Draft {
	return Draft{ClientName: n.Client.Name, Category: n.Category, Text: n.Text}
}

// resolve turns the draft into a note with the given id, applying the editor
// defaults: the first known client and DefaultCategory.
func (d Draft) resolve(id int, clients []core.Client, categories []core.CategoryType) (core.Note, error) {
	text := strings.TrimSpace(d.Text)
	if text == "" {
		return core.Note{}, fmt.Errorf("%w: text is empty", core.ErrInvalidNote)
	}

	client, err := d.client(clients)
	if err != nil {
		return core.Note{}, err
	}
	if client.IsZero() {
		if len(clients) == 0 {
			return core.Note{}, fmt.Errorf("%w: no clients configured", core.ErrInvalidNote)
		}
		client = clients[0]
	}

	category := d.Category
	if category == "" {
		category = DefaultCategory
	}
	if err := checkCategory(category, categories); err != nil {
		return core.Note{}, err
	}

	return core.Note{ID: id, Client: client, Category: category, Text: text}, nil
}

// patch turns the draft into a partial note for UpdateNote. Empty fields are
// left zero so the stored values are kept.
func (d Draft) patch(id int, clients []core.Client, categories []core.CategoryType) (core.Note, error) {
	client, err := d.client(clients)
	if err != nil {
		return core.Note{}, err
	}
	if d.Category != "" {
		if err := checkCategory(d.Category, categories); err != nil {
			return core.Note{}, err
		}
	}
	return core.Note{ID: id, Client: client, Category: d.Category, Text: strings.TrimSpace(d.Text)}, nil
}

func (d Draft) client(clients []core.Client) (core.Client, error) {
	name := strings.TrimSpace(d.ClientName)
	if name == "" {
		return core.Client{}, nil
	}
	i := slices.IndexFunc(clients, func(c core.Client) bool { return c.Name == name })
	if i < 0 {
		return core.Client{}, fmt.Errorf("%w: unknown client %q", core.ErrInvalidNote, name)
	}
	return clients[i], nil
}

func checkCategory(c core.CategoryType, categories []core.CategoryType) error {
	if c.Valid() || slices.Contains(categories, c) {
		return nil
	}
	return fmt.Errorf("%w: unknown category %q", core.ErrInvalidNote, c)
}
