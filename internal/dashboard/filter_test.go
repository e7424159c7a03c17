package dashboard

import (
	"testing"

	"github.com/adanyl0v/agua-vida/internal/fixtures"
	"github.com/adanyl0v/agua-vida/internal/models"
)

func ids(lists []models.TaskList) []string {
	out := make([]string, len(lists))
	for i, l := range lists {
		out[i] = l.ID
	}
	return out
}

func TestFilterApply(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{"zero value keeps all", Filter{}, []string{"tl1", "tl2", "tl3", "tl5"}},
		{"query ignores case", Filter{Query: "RENOV"}, []string{"tl2"}},
		{"completed", Filter{Status: FilterCompleted}, []string{"tl5"}},
		{"in progress", Filter{Status: FilterInProgress}, []string{"tl1", "tl2", "tl3"}},
		{"financial only", Filter{FinancialOnly: true}, []string{"tl2"}},
		{"combined", Filter{Query: "o", Status: FilterCompleted, FinancialOnly: true}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ids(tt.filter.Apply(fixtures.TaskLists()))
			if len(got) != len(tt.want) {
				t.Fatalf("Apply() = %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Apply() = %v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestParseStatusFilter(t *testing.T) {
	for in, want := range map[string]StatusFilter{
		"":            FilterAll,
		"all":         FilterAll,
		"Completed":   FilterCompleted,
		"in-progress": FilterInProgress,
	} {
		got, err := ParseStatusFilter(in)
		if err != nil || got != want {
			t.Errorf("ParseStatusFilter(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := ParseStatusFilter("open"); err == nil {
		t.Error("expected an error for an unknown filter")
	}
}
