package dashboard

import (
	"fmt"
	"strings"

	"github.com/adanyl0v/agua-vida/internal/models"
)

type StatusFilter string

const (
	FilterAll        StatusFilter = "all"
	FilterInProgress StatusFilter = "in-progress"
	FilterCompleted  StatusFilter = "completed"
)

func ParseStatusFilter(s string) (StatusFilter, error) {
	switch f := StatusFilter(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FilterAll:
		return FilterAll, nil
	case FilterInProgress, FilterCompleted:
		return f, nil
	}
	return "", fmt.Errorf("unknown status filter %q", s)
}

type Filter struct {
	Query         string
	Status        StatusFilter
	FinancialOnly bool
}

func (f Filter) Match(l models.TaskList) bool {
	if q := strings.TrimSpace(f.Query); q != "" &&
		!strings.Contains(strings.ToLower(l.Title), strings.ToLower(q)) {
		return false
	}
	if f.FinancialOnly && !l.IsFinancial {
		return false
	}
	switch f.Status {
	case FilterInProgress:
		return l.Status() == models.StatusInProgress
	case FilterCompleted:
		return l.Status() == models.StatusCompleted
	}
	return true
}

// Apply returns the matching lists in input order.
func (f Filter) Apply(lists []models.TaskList) []models.TaskList {
	out := make([]models.TaskList, 0, len(lists))
	for _, l := range lists {
		if f.Match(l) {
			out = append(out, l)
		}
	}
	return out
}

func (c *Coordinator) Filtered(f Filter) []models.TaskList {
	return f.Apply(c.Snapshot())
}
