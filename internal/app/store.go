package app

import (
	"github.com/adanyl0v/agua-vida/internal/store"
)

var globalStore *store.Memory

// InitStore creates the process-wide task list store. Its contents live
// as long as the process does.
func InitStore() {
	globalStore = store.NewMemory()
	globalLogger.Info().Msg("initialized in-memory store")
}
