/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Seednode/triviabox/games"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	activeStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	goodStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	badStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	cardStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 2).Width(30)
)

// settleMsg fires once the feedback delay elapses. guess identifies the
// guess it belongs to; a stale one is dropped.
type settleMsg struct {
	guess int
}

type terminalModel struct {
	engine  *games.Engine
	session games.Session
	delay   time.Duration
	players int
	guesses int
	notice  string
}

func newTerminalModel(engine *games.Engine, players int, delay time.Duration) terminalModel {
	return terminalModel{
		engine:  engine,
		players: players,
		delay:   delay,
	}
}

func (m terminalModel) Init() tea.Cmd {
	return nil
}

func (m terminalModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case settleMsg:
		if msg.guess == m.guesses {
			m.session = m.engine.Settle(m.session)
		}
	}

	return m, nil
}

func (m terminalModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "esc":
		m.session = m.engine.Reset(m.session)
		m.notice = ""
		return m, nil
	}

	switch m.session.Phase {
	case games.PhaseStart:
		return m.handleStart(key)
	case games.PhaseGameOver:
		if key == "r" || key == "enter" {
			m.session = m.engine.Reset(m.session)
		}
		return m, nil
	}

	if m.session.Step == games.StepAwaitingGuess {
		g, ok := m.guessFor(key)
		if !ok {
			return m, nil
		}
		return m.submit(g)
	}

	if key == "enter" || key == " " || key == "n" {
		m.session = m.engine.Next(m.session)
	}

	return m, nil
}

func (m terminalModel) handleStart(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "left", "down":
		if m.players > games.MinPlayers {
			m.players--
		}
	case "right", "up":
		if m.players < games.MaxPlayers {
			m.players++
		}
	case "enter", " ":
		s, err := m.engine.Start(m.session, m.players)
		if err != nil {
			m.notice = err.Error()
			return m, nil
		}
		m.session = s
		m.notice = ""
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= games.MinPlayers && n <= games.MaxPlayers {
			m.players = n
		}
	}

	return m, nil
}

// guessFor maps a key press to a guess for the round on screen.
func (m terminalModel) guessFor(key string) (games.Guess, bool) {
	round := m.session.Round

	if round.Kind == games.RoundChoice {
		n, err := strconv.Atoi(key)
		if err != nil || n < 1 || n > len(round.Options) {
			return games.Guess{}, false
		}
		return games.Guess{ItemID: round.Options[n-1].ID}, true
	}

	if m.engine.Definition().ID == games.AgeGameID {
		switch key {
		case "up", "m":
			return games.Guess{Direction: games.Older}, true
		case "down", "n":
			return games.Guess{Direction: games.Younger}, true
		}
		return games.Guess{}, false
	}

	switch key {
	case "left", "1":
		return games.Guess{ItemID: round.Left.ID}, true
	case "right", "2":
		return games.Guess{ItemID: round.Right.ID}, true
	}

	return games.Guess{}, false
}

func (m terminalModel) submit(g games.Guess) (tea.Model, tea.Cmd) {
	next := m.engine.Submit(m.session, g)
	if next.Step == m.session.Step {
		return m, nil
	}

	m.session = next
	m.guesses++

	guess := m.guesses

	return m, tea.Tick(m.delay, func(time.Time) tea.Msg {
		return settleMsg{guess: guess}
	})
}

func (m terminalModel) View() string {
	def := m.engine.Definition()

	var sb strings.Builder

	sb.WriteString(titleStyle.Render(def.Title))
	sb.WriteString("\n")
	sb.WriteString(mutedStyle.Render(def.Instructions))
	sb.WriteString("\n\n")

	switch m.session.Phase {
	case games.PhaseStart:
		sb.WriteString(fmt.Sprintf("Jugadores: %s\n\n", activeStyle.Render(strconv.Itoa(m.players))))
		sb.WriteString(mutedStyle.Render("1-6 o flechas para elegir, enter para empezar, q para salir"))
	case games.PhaseGameOver:
		sb.WriteString(titleStyle.Render("Tabla de Posiciones"))
		sb.WriteString("\n")
		for i, p := range m.session.Standings() {
			sb.WriteString(fmt.Sprintf("%d. %s: %d\n", i+1, p.Name, p.Score))
		}
		sb.WriteString("\n")
		sb.WriteString(mutedStyle.Render("r para jugar otra vez, q para salir"))
	default:
		m.viewRound(&sb, def)
	}

	if m.notice != "" {
		sb.WriteString("\n")
		sb.WriteString(badStyle.Render(m.notice))
	}

	return sb.String() + "\n"
}

func (m terminalModel) viewRound(sb *strings.Builder, def *games.Definition) {
	s := m.session
	answered := s.Round.Feedback != games.ResultNone

	if p, ok := s.ActivePlayer(); ok {
		turn := "Turno de " + p.Name
		if s.TurnChanged {
			turn += " ¡cambio de turno!"
		}
		sb.WriteString(activeStyle.Render(turn))
		sb.WriteString("\n\n")
	}

	switch s.Round.Kind {
	case games.RoundChoice:
		sb.WriteString(s.Round.Prompt.Prompt)
		sb.WriteString("\n\n")
		for i, o := range s.Round.Options {
			line := fmt.Sprintf("%d. %s", i+1, o.Name)
			if answered && o.ID == s.Round.Prompt.ID {
				line = goodStyle.Render(line)
			}
			sb.WriteString(line)
			sb.WriteString("\n")
		}
	default:
		left := m.card(def, s.Round.Left, answered || def.RevealAnchor)
		right := m.card(def, s.Round.Right, answered)
		sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")

	switch s.Round.Feedback {
	case games.ResultCorrect:
		sb.WriteString(goodStyle.Render("¡Correcto!"))
	case games.ResultIncorrect:
		sb.WriteString(badStyle.Render("Incorrecto"))
	default:
		sb.WriteString(mutedStyle.Render(m.hint(def)))
	}
	sb.WriteString("\n\n")

	for i, p := range s.Players {
		line := fmt.Sprintf("%s: %d", p.Name, p.Score)
		if i == s.Active {
			line = activeStyle.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	if answered {
		sb.WriteString("\n")
		sb.WriteString(mutedStyle.Render("enter para continuar"))
	}
}

func (m terminalModel) card(def *games.Definition, it games.Item, reveal bool) string {
	value := "?"
	if reveal {
		value = def.FormatValue(it.Value)
	}

	body := it.Name
	if it.Role != "" {
		body += "\n" + mutedStyle.Render(it.Role)
	}
	body += "\n" + titleStyle.Render(value)

	return cardStyle.Render(body)
}

func (m terminalModel) hint(def *games.Definition) string {
	switch {
	case def.Kind == games.RoundChoice:
		return "1-6 para elegir"
	case def.ID == games.AgeGameID:
		return "↑ MAYOR, ↓ MENOR"
	default:
		return "← o 1 izquierda, → o 2 derecha"
	}
}

// PlayTerminal runs one hot-seat session of the named game in the terminal.
func PlayTerminal(cfg *Config, id string) error {
	catalog, err := newCatalog(cfg)
	if err != nil {
		return err
	}

	def, err := catalog.Get(id)
	if err != nil {
		return err
	}

	model := newTerminalModel(def.NewEngine(sessionSeed(cfg)), cfg.players, cfg.feedbackDelay)

	_, err = tea.NewProgram(model, tea.WithAltScreen()).Run()

	return err
}
