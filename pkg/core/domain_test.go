package core_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imran-moonward/mynote/pkg/core"
)

func TestNote_Merge(t *testing.T) {
	base := core.Note{
		ID:       7,
		Client:   core.Client{ID: 1, Name: "Imran Ali"},
		Category: core.CategoryGoalEvidence,
		Text:     "original",
	}

	tests := []struct {
		name  string
		patch core.Note
		want  core.Note
	}{
		{
			name:  "empty patch keeps everything",
			patch: core.Note{ID: 7},
			want:  base,
		},
		{
			name:  "text only",
			patch: core.Note{ID: 7, Text: "edited"},
			want:  core.Note{ID: 7, Client: base.Client, Category: base.Category, Text: "edited"},
		},
		{
			name:  "client and category",
			patch: core.Note{ID: 7, Client: core.Client{ID: 3, Name: "Gary Mohan"}, Category: core.CategoryActiveDuty},
			want:  core.Note{ID: 7, Client: core.Client{ID: 3, Name: "Gary Mohan"}, Category: core.CategoryActiveDuty, Text: "original"},
		},
		{
			name:  "id is never rewritten",
			patch: core.Note{ID: 99, Text: "x"},
			want:  core.Note{ID: 7, Client: base.Client, Category: base.Category, Text: "x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Merge(tt.patch))
		})
	}
}

func TestCategoryType_Valid(t *testing.T) {
	for _, c := range core.DefaultCategories() {
		assert.True(t, c.Valid(), c)
	}
	assert.False(t, core.CategoryType("Lunch").Valid())
	assert.False(t, core.CategoryType("").Valid())
}

func TestDefaults_AreCopies(t *testing.T) {
	clients := core.DefaultClients()
	clients[0].Name = "changed"
	assert.Equal(t, "Imran Ali", core.DefaultClients()[0].Name)

	cats := core.DefaultCategories()
	cats[0] = "changed"
	assert.Equal(t, core.CategoryActiveDuty, core.DefaultCategories()[0])
}

func TestRecord_WireFormat(t *testing.T) {
	rec := core.Record{
		Notes: []core.Note{{
			ID:       1,
			Client:   core.Client{ID: 1, Name: "A"},
			Category: core.CategoryGoalEvidence,
			Text:     "hi",
		}},
		Categories: []core.CategoryType{core.CategoryGoalEvidence},
		ClientList: []core.Client{{ID: 1, Name: "A"}},
	}

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"notes": [{"id":1,"client":{"id":1,"name":"A"},"category":"Goal Evidence","note":"hi"}],
		"categories": ["Goal Evidence"],
		"clientList": [{"id":1,"name":"A"}]
	}`, string(data))
}

func TestRecord_Normalize(t *testing.T) {
	var rec core.Record
	rec.Normalize()
	assert.NotNil(t, rec.Notes)
	assert.NotNil(t, rec.Categories)
	assert.NotNil(t, rec.ClientList)
	assert.Empty(t, rec.Notes)
}

func TestSeverity_Valid(t *testing.T) {
	assert.True(t, core.SeverityError.Valid())
	assert.True(t, core.SeverityInfo.Valid())
	assert.False(t, core.Severity("Fatal").Valid())
}
