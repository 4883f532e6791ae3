package dataset

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

const checklistJSON = `[
  {"ID": "C001", "Category": "Match Statistics", "Component": "First serve percentage (last 10 matches)",
   "Accessibility": "Publicly Available", "Real_Time_Available": "Yes",
   "Data_Source": "Official ATP/WTA Statistics", "Evidence_Based": "Yes"},
  {"ID": "C002", "Category": "Match Statistics", "Component": "Second serve percentage (last 10 matches)",
   "Accessibility": "Publicly Available", "Real_Time_Available": "No",
   "Data_Source": "Official ATP/WTA Statistics", "Evidence_Based": "Yes"}
]`

const checklistYAML = `
- ID: C001
  Category: Match Statistics
  Component: First serve percentage (last 10 matches)
  Accessibility: Publicly Available
  Real_Time_Available: "Yes"
  Data_Source: Official ATP/WTA Statistics
  Evidence_Based: "Yes"
- ID: C002
  Category: Match Statistics
  Component: Second serve percentage (last 10 matches)
  Accessibility: Publicly Available
  Real_Time_Available: "No"
  Data_Source: Official ATP/WTA Statistics
  Evidence_Based: "Yes"
`

func TestFileSource_JSONAndYAMLAgree(t *testing.T) {
	fsys := fstest.MapFS{
		"checklist.json": &fstest.MapFile{Data: []byte(checklistJSON)},
		"checklist.yaml": &fstest.MapFile{Data: []byte(checklistYAML)},
	}
	ctx := context.Background()

	fromJSON, err := NewFileSource(fsys, "checklist.json").ComponentRows(ctx)
	if err != nil {
		t.Fatalf("json ComponentRows() error = %v", err)
	}
	fromYAML, err := NewFileSource(fsys, "checklist.yaml").ComponentRows(ctx)
	if err != nil {
		t.Fatalf("yaml ComponentRows() error = %v", err)
	}
	if len(fromJSON) != 2 {
		t.Fatalf("json rows = %d, want 2", len(fromJSON))
	}
	if diff := cmp.Diff(fromJSON, fromYAML); diff != "" {
		t.Errorf("json and yaml rows differ (-json +yaml):\n%s", diff)
	}
}

func TestFileSource_Errors(t *testing.T) {
	fsys := fstest.MapFS{
		"null.json":      &fstest.MapFile{Data: []byte(`null`)},
		"object.json":    &fstest.MapFile{Data: []byte(`{"ID": "C001"}`)},
		"truncated.json": &fstest.MapFile{Data: []byte(`[{"ID": "C001",`)},
		"empty.yaml":     &fstest.MapFile{Data: []byte(``)},
		"lowercase.json": &fstest.MapFile{Data: []byte(`[
			{"Date": "2024-01-28", "Tournament": "Australian Open", "Category": "Men's Singles",
			 "Player1": "Jannik Sinner", "Player2": "Daniil Medvedev", "Winner": "Jannik Sinner"},
			{"Date": "2024-06-09", "Tournament": "French Open", "Category": "Men's Singles",
			 "Player1": "Carlos Alcaraz", "Player2": "Alexander Zverev", "winner": "Carlos Alcaraz"}
		]`)},
	}

	tests := []struct {
		name    string
		file    string
		wantErr string
	}{
		{"missing file", "absent.json", "read absent.json"},
		{"null document", "null.json", "not a list"},
		{"object instead of list", "object.json", "parse json"},
		{"truncated", "truncated.json", "parse json"},
		{"empty yaml", "empty.yaml", "not a list"},
		{"key in wrong case", "lowercase.json", `record 1: key "winner" must be spelled "Winner"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFileSource(fsys, tt.file).MatchRows(context.Background())
			if err == nil {
				t.Fatal("MatchRows() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestFileSource_UnrelatedKeysIgnored(t *testing.T) {
	fsys := fstest.MapFS{"matches.json": &fstest.MapFile{Data: []byte(`[
		{"Date": "2024-01-28", "Tournament": "Australian Open", "Category": "Men's Singles",
		 "Player1": "Jannik Sinner", "Player2": "Daniil Medvedev", "Winner": "Jannik Sinner", "Score": "3-6 3-6 6-4 6-4 6-3"}
	]`)}}
	rows, err := NewFileSource(fsys, "matches.json").MatchRows(context.Background())
	if err != nil {
		t.Fatalf("MatchRows() error = %v", err)
	}
	if len(rows) != 1 || rows[0].Winner != "Jannik Sinner" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestFileSource_EmptyListIsValid(t *testing.T) {
	fsys := fstest.MapFS{"matches.json": &fstest.MapFile{Data: []byte(`[]`)}}
	rows, err := NewFileSource(fsys, "matches.json").MatchRows(context.Background())
	if err != nil {
		t.Fatalf("MatchRows() error = %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("rows = %d, want 0", len(rows))
	}
}
