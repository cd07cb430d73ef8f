/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Seednode/triviabox/games"
)

func newTestModel(t *testing.T, id string, players int) terminalModel {
	t.Helper()

	catalog, err := newCatalog(newTestConfig())
	if err != nil {
		t.Fatal(err)
	}

	def, err := catalog.Get(id)
	if err != nil {
		t.Fatal(err)
	}

	return newTerminalModel(def.NewEngine(3), players, time.Second)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m terminalModel, msg tea.Msg) (terminalModel, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)

	tm, ok := next.(terminalModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}

	return tm, cmd
}

func TestTerminalStartScreen(t *testing.T) {
	m := newTestModel(t, games.AgeGameID, 2)

	m, _ = press(t, m, runes("4"))
	if m.players != 4 {
		t.Errorf("players = %d after pressing 4", m.players)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if m.players != games.MaxPlayers {
		t.Errorf("players = %d, want capped at %d", m.players, games.MaxPlayers)
	}

	m, _ = press(t, m, runes("9"))
	if m.players != games.MaxPlayers {
		t.Errorf("players = %d after an out-of-range digit", m.players)
	}

	if !strings.Contains(m.View(), "Jugadores") {
		t.Error("start view does not ask for players")
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.session.Phase != games.PhasePlaying || len(m.session.Players) != games.MaxPlayers {
		t.Fatalf("after enter: phase=%s players=%d", m.session.Phase, len(m.session.Players))
	}
}

func TestTerminalFeedbackTimer(t *testing.T) {
	m := newTestModel(t, games.AgeGameID, 2)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, cmd := press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.session.Step != games.StepShowingFeedback {
		t.Fatalf("step = %s after a guess, want feedback", m.session.Step)
	}
	if cmd == nil {
		t.Fatal("guess scheduled no settle timer")
	}

	// A second guess during feedback is ignored and schedules nothing.
	m, cmd = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if cmd != nil || m.guesses != 1 {
		t.Error("guess during feedback was accepted")
	}

	m, _ = press(t, m, settleMsg{guess: 0})
	if m.session.Step != games.StepShowingFeedback {
		t.Error("stale settle moved the session")
	}

	m, _ = press(t, m, settleMsg{guess: 1})
	if m.session.Step != games.StepAwaitingNext {
		t.Errorf("step = %s after settle, want next", m.session.Step)
	}
}

func TestTerminalNextBeforeSettle(t *testing.T) {
	m := newTestModel(t, games.ChronologyGameID, 1)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	// Enter before any guess is a no-op.
	before := m.session.Round
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.session.Round.Left.ID != before.Left.ID || m.session.Step != games.StepAwaitingGuess {
		t.Fatal("enter before a guess changed the round")
	}

	m, _ = press(t, m, runes("1"))
	if m.session.Step != games.StepShowingFeedback {
		t.Fatalf("step = %s after picking the left item", m.session.Step)
	}

	hit := m.session.Round.Feedback == games.ResultCorrect

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	// A late settle for the old guess is harmless.
	m, _ = press(t, m, settleMsg{guess: 1})

	if hit {
		if m.session.Phase != games.PhasePlaying || m.session.Step != games.StepAwaitingGuess {
			t.Errorf("after a hit: phase=%s step=%s", m.session.Phase, m.session.Step)
		}
		return
	}

	if m.session.Phase != games.PhaseGameOver {
		t.Fatalf("phase = %s after a solo miss, want gameover", m.session.Phase)
	}
	if !strings.Contains(m.View(), "Tabla de Posiciones") {
		t.Error("game over view has no leaderboard")
	}

	m, _ = press(t, m, runes("r"))
	if m.session.Phase != games.PhaseStart {
		t.Errorf("phase = %s after r, want start", m.session.Phase)
	}
}

func TestTerminalChoiceKeys(t *testing.T) {
	m := newTestModel(t, games.MatchGameID, 2)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, cmd := press(t, m, runes("7"))
	if cmd != nil || m.session.Step != games.StepAwaitingGuess {
		t.Fatal("out-of-range option was accepted")
	}

	m, _ = press(t, m, runes("3"))
	if m.session.Step != games.StepShowingFeedback {
		t.Fatalf("step = %s after picking option 3", m.session.Step)
	}

	view := m.View()
	if !strings.Contains(view, m.session.Round.Prompt.Prompt) {
		t.Error("view does not show the emoji prompt")
	}
}

func TestTerminalEscapeAndQuit(t *testing.T) {
	m := newTestModel(t, games.AgeGameID, 3)
	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.session.Phase != games.PhaseStart || len(m.session.Players) != 0 {
		t.Errorf("esc left session in %s", m.session.Phase)
	}

	_, cmd := press(t, m, runes("q"))
	if cmd == nil {
		t.Fatal("q returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q does not quit")
	}
}
