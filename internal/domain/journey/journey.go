// Package journey tracks long trips and quests as a stack: the journey on
// top is the one currently in progress, entries below it are deferred.
package journey

import (
	"fmt"
	"strings"

	dnderr "github.com/KirkDiggler/roleplay-toolkit/internal/errors"
)

// Journey is a single quest with a fixed number of steps and a difficulty rating
type Journey struct {
	Name       string `yaml:"name"`
	TotalSteps int    `yaml:"total_steps"`
	Difficulty int    `yaml:"difficulty"`
	Progress   int    `yaml:"progress"`
}

// New creates a journey, validating its fields
func New(name string, totalSteps, difficulty int) (*Journey, error) {
	name = strings.TrimSpace(name)

	if name == "" {
		return nil, dnderr.InvalidArgument("journey name cannot be empty")
	}
	if totalSteps <= 0 {
		return nil, dnderr.InvalidArgument("total steps must be a positive number")
	}
	if difficulty < 0 {
		return nil, dnderr.InvalidArgument("difficulty must be a positive number or zero")
	}

	return &Journey{
		Name:       name,
		TotalSteps: totalSteps,
		Difficulty: difficulty,
	}, nil
}

// IsCompleted reports whether the journey has reached its final step
func (j *Journey) IsCompleted() bool {
	return j.Progress >= j.TotalSteps
}

// RemainingSteps returns how many steps are left
func (j *Journey) RemainingSteps() int {
	if remaining := j.TotalSteps - j.Progress; remaining > 0 {
		return remaining
	}
	return 0
}

// PercentComplete returns progress as a percentage
func (j *Journey) PercentComplete() float64 {
	return float64(j.Progress) / float64(j.TotalSteps) * 100
}

// Advance moves the journey forward by steps, clamped at the total
func (j *Journey) Advance(steps int) (string, error) {
	if steps <= 0 {
		return "", dnderr.InvalidArgument("progress must be a positive number")
	}

	wasComplete := j.IsCompleted()
	j.Progress += steps
	if j.Progress > j.TotalSteps {
		j.Progress = j.TotalSteps
	}

	if j.IsCompleted() && !wasComplete {
		return fmt.Sprintf("Journey '%s' completed! (%d/%d)", j.Name, j.Progress, j.TotalSteps), nil
	}
	return fmt.Sprintf("Progress on '%s': %d/%d", j.Name, j.Progress, j.TotalSteps), nil
}

// String renders the journey like `"Crossing Moria" (3/10 steps, difficulty 4)`
func (j *Journey) String() string {
	return fmt.Sprintf("%q (%d/%d steps, difficulty %d)", j.Name, j.Progress, j.TotalSteps, j.Difficulty)
}

// Manager holds the journey stack. The current journey is the top of the
// stack; starting a new one defers whatever was in progress.
type Manager struct {
	journeys []*Journey
}

// NewManager creates an empty journey manager
func NewManager() *Manager {
	return &Manager{}
}

// Current returns the journey on top of the stack, or nil if there are none
func (m *Manager) Current() *Journey {
	if len(m.journeys) == 0 {
		return nil
	}
	return m.journeys[len(m.journeys)-1]
}

// Count returns the number of journeys on the stack
func (m *Manager) Count() int {
	return len(m.journeys)
}

// HasActive reports whether any journey is in progress
func (m *Manager) HasActive() bool {
	return len(m.journeys) > 0
}

// All returns the journeys, current first, then deferred in reverse start order
func (m *Manager) All() []*Journey {
	out := make([]*Journey, 0, len(m.journeys))
	for i := len(m.journeys) - 1; i >= 0; i-- {
		out = append(out, m.journeys[i])
	}
	return out
}

// Start pushes a new journey onto the stack
func (m *Manager) Start(name string, totalSteps, difficulty int) (*Journey, error) {
	for _, existing := range m.journeys {
		if existing.Name == strings.TrimSpace(name) {
			return nil, dnderr.AlreadyExistsf("journey with name '%s' already exists", name)
		}
	}

	journey, err := New(name, totalSteps, difficulty)
	if err != nil {
		return nil, err
	}

	m.journeys = append(m.journeys, journey)
	return journey, nil
}

// Advance progresses the current journey, popping it off the stack if it completes
func (m *Manager) Advance(steps int) (string, error) {
	current := m.Current()
	if current == nil {
		return "", dnderr.NotFound("No active journeys")
	}

	message, err := current.Advance(steps)
	if err != nil {
		return "", err
	}

	if current.IsCompleted() {
		m.journeys = m.journeys[:len(m.journeys)-1]
	}

	return message, nil
}

// StopCurrent removes and returns the current journey
func (m *Manager) StopCurrent() (*Journey, error) {
	if len(m.journeys) == 0 {
		return nil, dnderr.NotFound("No active journeys")
	}

	stopped := m.journeys[len(m.journeys)-1]
	m.journeys = m.journeys[:len(m.journeys)-1]
	return stopped, nil
}

// StopAll removes every journey and returns them, current first
func (m *Manager) StopAll() []*Journey {
	stopped := m.All()
	m.journeys = nil
	return stopped
}

// StopByName removes a named journey regardless of its stack position
func (m *Manager) StopByName(name string) *Journey {
	needle := strings.ToLower(strings.TrimSpace(name))
	for i, journey := range m.journeys {
		if strings.ToLower(journey.Name) == needle {
			m.journeys = append(m.journeys[:i], m.journeys[i+1:]...)
			return journey
		}
	}
	return nil
}

// StatusSummary renders all journeys with progress bars, current journey marked
func (m *Manager) StatusSummary() string {
	if len(m.journeys) == 0 {
		return "No journeys in progress."
	}

	lines := []string{fmt.Sprintf("Journeys in progress (%d):", len(m.journeys))}
	for i, journey := range m.All() {
		marker := "  "
		if i == 0 {
			marker = "➤ "
		}
		lines = append(lines, fmt.Sprintf("%s%s: %d/%d steps %s (difficulty %d)",
			marker, journey.Name, journey.Progress, journey.TotalSteps,
			progressBar(journey, 10), journey.Difficulty))
	}

	return strings.Join(lines, "\n")
}

func progressBar(j *Journey, width int) string {
	if j.TotalSteps == 0 {
		return "[" + strings.Repeat("#", width) + "]"
	}

	filled := j.Progress * width / j.TotalSteps
	return "[" + strings.Repeat("#", filled) + strings.Repeat(".", width-filled) + "]"
}

// Snapshot is the serialized form of the journey stack, current journey first
type Snapshot struct {
	Journeys []*Journey `yaml:"journeys"`
}

// Snapshot captures the stack for persistence
func (m *Manager) Snapshot() Snapshot {
	return Snapshot{Journeys: m.All()}
}

// Restore rebuilds a manager from a snapshot
func Restore(snapshot Snapshot) *Manager {
	manager := NewManager()
	// Reverse so the first snapshot entry ends up back on top of the stack
	for i := len(snapshot.Journeys) - 1; i >= 0; i-- {
		manager.journeys = append(manager.journeys, snapshot.Journeys[i])
	}
	return manager
}
