// Package fixtures holds the demo data set. New accounts are seeded
// with it and the dashboard's demo mode runs on it.
package fixtures

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/adanyl0v/agua-vida/internal/models"
)

//go:embed tasklists.yaml
var rawFixtures []byte

type document struct {
	User      models.User       `yaml:"user"`
	TaskLists []models.TaskList `yaml:"taskLists"`
}

var (
	loadOnce sync.Once
	loaded   document
	loadErr  error
)

func load() (document, error) {
	loadOnce.Do(func() {
		loadErr = yaml.Unmarshal(rawFixtures, &loaded)
		if loadErr != nil {
			loadErr = fmt.Errorf("failed to decode fixtures: %w", loadErr)
		}
	})
	return loaded, loadErr
}

// TaskLists returns a fresh deep copy of the demo lists on every call.
func TaskLists() []models.TaskList {
	doc, err := load()
	if err != nil {
		// The file is embedded at build time; a decode failure is a
		// programming error.
		panic(err)
	}
	return models.CloneTaskLists(doc.TaskLists)
}

func DemoUser() models.User {
	doc, err := load()
	if err != nil {
		panic(err)
	}
	return doc.User
}
