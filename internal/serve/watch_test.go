package serve

import (
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
)

func TestRelevantEvent(t *testing.T) {
	tests := []struct {
		name     string
		event    fsnotify.Event
		expected bool
	}{
		{"page write", fsnotify.Event{Name: "docs/fr/manual/intro.md", Op: fsnotify.Write}, true},
		{"page create", fsnotify.Event{Name: "docs/en/manual/new.md", Op: fsnotify.Create}, true},
		{"page remove", fsnotify.Event{Name: "docs/en/index.md", Op: fsnotify.Remove}, true},
		{"chmod only", fsnotify.Event{Name: "docs/en/index.md", Op: fsnotify.Chmod}, false},
		{"editor swap file", fsnotify.Event{Name: "docs/en/.index.md.swp", Op: fsnotify.Write}, false},
		{"backup file", fsnotify.Event{Name: "docs/en/index.md~", Op: fsnotify.Write}, false},
		{"hidden file", fsnotify.Event{Name: "docs/en/.DS_Store", Op: fsnotify.Create}, false},
		{"own scratch tree churn", fsnotify.Event{Name: "docs/fr_tmp/index.md", Op: fsnotify.Write}, false},
		{"nested scratch tree churn", fsnotify.Event{Name: "docs/fr_tmp/manual/intro.md", Op: fsnotify.Write}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, relevantEvent(test.event))
		})
	}
}
