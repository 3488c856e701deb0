// SPDX-License-Identifier: EPL-2.0

package main

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ik5/wavstream/player"
)

// controller is the part of player.Controller the TUI drives.
type controller interface {
	Pause() error
	Resume() error
	Stop() error
	State() player.State
	Session() (player.SessionInfo, bool)
	Done() <-chan struct{}
	Err() error
}

type tickMsg time.Time

type doneMsg struct{}

// playModel shows the session and maps keys to player intents.
type playModel struct {
	ctl     controller
	name    string
	state   player.State
	started time.Time
	elapsed time.Duration
	err     error
	done    bool
}

func newPlayModel(ctl controller, name string) playModel {
	return playModel{
		ctl:     ctl,
		name:    name,
		state:   ctl.State(),
		started: time.Now(),
	}
}

func tick() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func waitDone(ctl controller) tea.Cmd {
	return func() tea.Msg {
		<-ctl.Done()
		return doneMsg{}
	}
}

func (m playModel) Init() tea.Cmd {
	return tea.Batch(tick(), waitDone(m.ctl))
}

func (m playModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tickMsg:
		m.state = m.ctl.State()
		m.elapsed = time.Time(msg).Sub(m.started).Truncate(time.Second)
		return m, tick()
	case doneMsg:
		m.done = true
		m.state = m.ctl.State()
		m.err = m.ctl.Err()
		return m, tea.Quit
	}
	return m, nil
}

func (m playModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case " ", "p":
		if m.ctl.State() == player.Paused {
			m.err = m.ctl.Resume()
		} else {
			m.err = m.ctl.Pause()
		}
	case "s":
		m.err = m.ctl.Stop()
	case "q", "ctrl+c":
		// quitting drains the transport first; doneMsg ends the program
		_ = m.ctl.Stop()
	}
	m.state = m.ctl.State()
	return m, nil
}

func (m playModel) View() string {
	s := "┌─ wavstream ──────────────────────────────────────────┐\n"
	s += fmt.Sprintf("│ File:   %-44s │\n", truncate(m.name, 44))

	if info, ok := m.ctl.Session(); ok {
		loop := ""
		if info.Loop {
			loop = " (loop)"
		}
		s += fmt.Sprintf("│ Format: %-44s │\n", info.Format.String()+loop)
	}

	s += fmt.Sprintf("│ State:  %-44s │\n", m.state)
	s += fmt.Sprintf("│ Time:   %-44s │\n", m.elapsed)
	if m.err != nil {
		s += fmt.Sprintf("│ Error:  %-44s │\n", truncate(m.err.Error(), 44))
	}
	s += "├──────────────────────────────────────────────────────┤\n"
	s += "│ space: pause/resume   s: stop   q: quit              │\n"
	s += "└──────────────────────────────────────────────────────┘\n"
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
