package suspense

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TaskMsg carries a scheduled task back into the Bubble Tea update loop.
type TaskMsg struct {
	task func()
}

// Run executes the task. Call it from Update.
func (m TaskMsg) Run() {
	if m.task != nil {
		m.task()
	}
}

// TeaScheduler turns scheduled tasks into tea.Tick commands so that every
// task runs inside Update, on the program's event loop.
type TeaScheduler struct {
	pending []tea.Cmd
}

// Schedule implements Scheduler. The tick is not armed until Flush's command
// is returned from Update.
func (s *TeaScheduler) Schedule(delay time.Duration, task func()) {
	s.pending = append(s.pending, tea.Tick(delay, func(time.Time) tea.Msg {
		return TaskMsg{task: task}
	}))
}

// Flush returns the commands for tasks scheduled since the last Flush.
func (s *TeaScheduler) Flush() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := s.pending
	s.pending = nil
	return tea.Batch(cmds...)
}
