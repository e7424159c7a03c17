package dashboard

import (
	"reflect"
	"testing"
	"time"

	"github.com/adanyl0v/agua-vida/internal/fixtures"
	"github.com/adanyl0v/agua-vida/internal/models"
)

func done(spent int64) models.Task {
	return models.Task{Completed: true, TimeSpent: spent}
}

func TestSummarizeFixtures(t *testing.T) {
	lists := fixtures.TaskLists()

	s := Summarize(lists)
	if s.Completed != 1 || s.InProgress != 3 || s.Open != 0 {
		t.Fatalf("Summarize() = %+v", s)
	}
	if avg, ok := s.AverageCompletion(); !ok || avg != 1310*time.Second {
		t.Errorf("AverageCompletion() = %v, %v", avg, ok)
	}
	if got := s.AverageLabel(); got != "21m" {
		t.Errorf("AverageLabel() = %q, want 21m", got)
	}

	want := []Slice{
		{Status: models.StatusCompleted, Label: "Completed", Count: 1, Share: 0.25},
		{Status: models.StatusInProgress, Label: "In Progress", Count: 3, Share: 0.75},
	}
	if got := s.Breakdown(); !reflect.DeepEqual(got, want) {
		t.Errorf("Breakdown() = %+v", got)
	}
}

func TestSummarizeStacksFlattensTasks(t *testing.T) {
	s := SummarizeStacks(fixtures.TaskLists())

	if s.Completed != 0 || s.InProgress != 2 || s.Open != 0 {
		t.Fatalf("SummarizeStacks() = %+v", s)
	}
	if got := s.AverageLabel(); got != "N/A" {
		t.Errorf("AverageLabel() = %q, want N/A", got)
	}
}

func TestAverageCompletion(t *testing.T) {
	tests := []struct {
		name  string
		lists []models.TaskList
		want  string
	}{
		{
			name:  "no lists",
			lists: nil,
			want:  "N/A",
		},
		{
			name:  "completed without time",
			lists: []models.TaskList{{Tasks: []models.Task{done(0)}}},
			want:  "N/A",
		},
		{
			name: "zero time lists are skipped",
			lists: []models.TaskList{
				{Tasks: []models.Task{done(0)}},
				{Tasks: []models.Task{done(60), done(60)}},
			},
			want: "2m",
		},
		{
			name:  "hours and minutes",
			lists: []models.TaskList{{Tasks: []models.Task{done(3600), done(300)}}},
			want:  "1h 5m",
		},
		{
			name:  "under a minute",
			lists: []models.TaskList{{Tasks: []models.Task{done(42)}}},
			want:  "0m",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Summarize(tt.lists).AverageLabel(); got != tt.want {
				t.Errorf("AverageLabel() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEmptyCollections(t *testing.T) {
	s := Summarize([]models.TaskList{{ID: "empty"}})
	if s.Open != 1 || s.Total() != 1 {
		t.Fatalf("empty list classified as %+v", s)
	}
	if got := Summarize(nil).Breakdown(); len(got) != 0 {
		t.Errorf("Breakdown() of nothing = %+v", got)
	}
}

func TestGroupByStack(t *testing.T) {
	lists := []models.TaskList{
		{ID: "a", Stack: "Work"},
		{ID: "b"},
		{ID: "c", Stack: "Work"},
	}

	stacks := GroupByStack(lists)
	if len(stacks) != 2 {
		t.Fatalf("%d stacks, want 2", len(stacks))
	}
	if stacks[0].Name != "Work" || len(stacks[0].Lists) != 2 {
		t.Errorf("first stack = %+v", stacks[0])
	}
	if stacks[1].Name != UncategorizedStack || stacks[1].Lists[0].ID != "b" {
		t.Errorf("second stack = %+v", stacks[1])
	}
}
