/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Trivia game sessions over websockets.
//
// Every browser screen that opens /games/:game/ws gets its own session:
// the server keeps the session value for that connection only, applies the
// player actions in the order they arrive, and answers each one with a
// full state snapshot. Closing the connection discards the session. Players
// share the one screen (hot-seat); there is no lobby and nothing is stored.
//
// Routes:
//   - $path/:game       → HTML client
//   - $path/:game/ws    → websocket for one session
//   - $path/:game/qr    → PNG QR code for the game URL

package main

import (
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"

	"github.com/Seednode/triviabox/games"
)

const writeWait = 10 * time.Second

// ClientMessage is one player action.
type ClientMessage struct {
	Type      string `json:"type"`                // "start", "guess", "settle", "next", "reset"
	Players   int    `json:"players,omitempty"`   // start
	Direction string `json:"direction,omitempty"` // guess (age game)
	Item      string `json:"item,omitempty"`      // guess (chronology and matching games)
}

// HelloMessage is sent once on connect.
type HelloMessage struct {
	Type          string `json:"type"` // "hello"
	Session       string `json:"session"`
	Game          string `json:"game"`
	Title         string `json:"title"`
	Instructions  string `json:"instructions"`
	FeedbackDelay int64  `json:"feedback_delay_ms"`
	MinPlayers    int    `json:"min_players"`
	MaxPlayers    int    `json:"max_players"`
}

// ErrorMessage goes to the offending client only; the session is kept.
type ErrorMessage struct {
	Type    string `json:"type"` // "error"
	Message string `json:"message"`
}

type PlayerView struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

type ItemView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image,omitempty"`
	Role  string `json:"role,omitempty"`
	Value string `json:"value,omitempty"` // empty while hidden
}

type RoundView struct {
	Kind     string     `json:"kind"` // "pair" or "choice"
	Left     *ItemView  `json:"left,omitempty"`
	Right    *ItemView  `json:"right,omitempty"`
	Prompt   string     `json:"prompt,omitempty"`
	Options  []ItemView `json:"options,omitempty"`
	Answer   string     `json:"answer,omitempty"` // correct option id, after the guess
	Feedback string     `json:"feedback,omitempty"`
}

// StateMessage is a full snapshot sent after every action.
type StateMessage struct {
	Type        string       `json:"type"` // "state"
	Phase       string       `json:"phase"`
	Step        string       `json:"step,omitempty"`
	Active      int          `json:"active"`
	TurnChanged bool         `json:"turn_changed,omitempty"`
	Players     []PlayerView `json:"players"`
	Round       *RoundView   `json:"round,omitempty"`
	Standings   []PlayerView `json:"standings,omitempty"`
}

func playerViews(players []games.Player) []PlayerView {
	out := make([]PlayerView, 0, len(players))
	for _, p := range players {
		out = append(out, PlayerView{Name: p.Name, Score: p.Score})
	}
	return out
}

func itemView(def *games.Definition, it games.Item, reveal bool) *ItemView {
	v := &ItemView{
		ID:    it.ID,
		Name:  it.Name,
		Image: it.Image,
		Role:  it.Role,
	}
	if reveal {
		v.Value = def.FormatValue(it.Value)
	}
	return v
}

// newStateMessage renders a session for the browser. Values stay hidden
// until the guess is in, except the anchor when the game reveals it.
func newStateMessage(def *games.Definition, s games.Session) StateMessage {
	msg := StateMessage{
		Type:        "state",
		Phase:       s.Phase.String(),
		Active:      s.Active,
		TurnChanged: s.TurnChanged,
		Players:     playerViews(s.Players),
	}

	switch s.Phase {
	case games.PhasePlaying:
		msg.Step = s.Step.String()
	case games.PhaseGameOver:
		msg.Standings = playerViews(s.Standings())
		return msg
	default:
		return msg
	}

	answered := s.Round.Feedback != games.ResultNone

	rv := &RoundView{Feedback: s.Round.Feedback.String()}

	switch s.Round.Kind {
	case games.RoundChoice:
		rv.Kind = "choice"
		rv.Prompt = s.Round.Prompt.Prompt
		for _, o := range s.Round.Options {
			rv.Options = append(rv.Options, ItemView{ID: o.ID, Name: o.Name, Image: o.Image})
		}
		if answered {
			rv.Answer = s.Round.Prompt.ID
		}
	default:
		rv.Kind = "pair"
		rv.Left = itemView(def, s.Round.Left, answered || def.RevealAnchor)
		rv.Right = itemView(def, s.Round.Right, answered)
	}

	msg.Round = rv

	return msg
}

type Client struct {
	conn    *websocket.Conn
	send    chan any
	done    chan struct{}
	id      string
	engine  *games.Engine
	session games.Session
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

var errUnknownMessage = errors.New("unknown message type")

// apply runs one client action against the session.
func (c *Client) apply(cfg *Config, msg ClientMessage) error {
	e := c.engine
	before := c.session

	switch msg.Type {
	case "start":
		s, err := e.Start(c.session, msg.Players)
		if err != nil {
			return err
		}
		c.session = s
		if before.Phase == games.PhaseStart {
			logf(cfg, "GAMES: Session %s started %s with %d players", c.id, e.Definition().ID, msg.Players)
		}
	case "guess":
		c.session = e.Submit(c.session, games.Guess{
			Direction: games.Direction(msg.Direction),
			ItemID:    msg.Item,
		})
	case "settle":
		c.session = e.Settle(c.session)
	case "next":
		c.session = e.Next(c.session)
		if before.Phase == games.PhasePlaying && c.session.Phase == games.PhaseGameOver {
			leader := c.session.Standings()[0]
			logf(cfg, "GAMES: Session %s finished %s, %q leads with %d", c.id, e.Definition().ID, leader.Name, leader.Score)
		}
	case "reset":
		c.session = e.Reset(c.session)
	default:
		return errUnknownMessage
	}

	return nil
}

// queue hands a message to the write pump, waiting while the pump catches
// up. It reports false once the pump has stopped.
func (c *Client) queue(msg any) bool {
	select {
	case c.send <- msg:
		return true
	case <-c.done:
		return false
	}
}

func (c *Client) readPump(cfg *Config) {
	defer close(c.send)

	def := c.engine.Definition()

	for {
		deadline := time.Time{}
		if cfg.sessionTimeout > 0 {
			deadline = time.Now().Add(cfg.sessionTimeout)
		}
		_ = c.conn.SetReadDeadline(deadline)

		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			if !c.queue(ErrorMessage{Type: "error", Message: "malformed message"}) {
				return
			}
			continue
		}

		if err := c.apply(cfg, msg); err != nil {
			if !c.queue(ErrorMessage{Type: "error", Message: err.Error()}) {
				return
			}
			continue
		}

		if !c.queue(newStateMessage(def, c.session)) {
			return
		}
	}
}

func (c *Client) writePump() {
	defer close(c.done)
	defer c.conn.Close()

	for msg := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

// serveSession upgrades the request and runs one session until the
// connection closes.
func serveSession(cfg *Config, catalog *games.Catalog) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		def, err := catalog.Get(ps.ByName("game"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logf(cfg, "GAMES: Upgrade failed for %s: %v", realIP(r), err)
			return
		}

		client := &Client{
			conn:   conn,
			send:   make(chan any, 8),
			done:   make(chan struct{}),
			id:     uuid.NewString(),
			engine: def.NewEngine(sessionSeed(cfg)),
		}

		logf(cfg, "GAMES: Session %s opened %s for %s", client.id, def.ID, realIP(r))

		client.send <- HelloMessage{
			Type:          "hello",
			Session:       client.id,
			Game:          def.ID,
			Title:         def.Title,
			Instructions:  def.Instructions,
			FeedbackDelay: cfg.feedbackDelay.Milliseconds(),
			MinPlayers:    games.MinPlayers,
			MaxPlayers:    games.MaxPlayers,
		}
		client.send <- newStateMessage(def, client.session)

		go client.writePump()
		client.readPump(cfg)

		logf(cfg, "GAMES: Session %s closed", client.id)
	}
}

type gamePage struct {
	Prefix       string
	Favicon      template.HTML
	ID           string
	Title        string
	Instructions string
	Socket       string
	QR           string
	MaxPlayers   int
}

func serveGamePage(cfg *Config, catalog *games.Catalog, path string, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		startTime := time.Now()

		def, err := catalog.Get(ps.ByName("game"))
		if err != nil {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			securityHeaders(cfg, w)
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(newPage(cfg, "Not Found", "Ese juego no existe. Volver al inicio.")))

			return
		}

		base := cfg.prefix + path + "/" + def.ID

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		securityHeaders(cfg, w)

		cw := &countingWriter{w: w}
		err = templates.ExecuteTemplate(cw, "game.html", gamePage{
			Prefix:       cfg.prefix,
			Favicon:      template.HTML(getFavicon(cfg)),
			ID:           def.ID,
			Title:        def.Title,
			Instructions: def.Instructions,
			Socket:       base + "/ws",
			QR:           base + "/qr",
			MaxPlayers:   games.MaxPlayers,
		})
		if err != nil {
			errs <- err

			return
		}

		logf(cfg, "SERVE: Game page %s (%s) to %s in %s",
			def.ID,
			humanReadableSize(cw.n),
			realIP(r),
			time.Since(startTime).Round(time.Microsecond),
		)
	}
}

// qrHandler renders the game page URL as a PNG, so another screen can
// open the same game.
func qrHandler(cfg *Config, catalog *games.Catalog) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if _, err := catalog.Get(ps.ByName("game")); err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		url, ok := qrURL(cfg, r)
		if !ok {
			http.Error(w, "invalid host", http.StatusBadRequest)
			return
		}

		const qrSize = 320
		png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		securityHeaders(cfg, w)
		_, _ = w.Write(png)
	}
}

// qrURL is the game page address a QR request points at. X-Forwarded-Proto
// is only honored with --trust-proxy.
func qrURL(cfg *Config, r *http.Request) (string, bool) {
	if !validHost(r.Host) {
		return "", false
	}

	scheme := cfg.scheme()
	if cfg.trustProxy {
		switch proto := strings.ToLower(r.Header.Get("X-Forwarded-Proto")); proto {
		case "http", "https":
			scheme = proto
		}
	}

	return scheme + "://" + r.Host + strings.TrimSuffix(r.URL.Path, "/qr"), true
}

// validHost accepts a bare host or host:port, nothing that would change
// the meaning of the URL built around it.
func validHost(host string) bool {
	if host == "" || strings.ContainsAny(host, "/\\@?#% \t\r\n") {
		return false
	}

	u, err := neturl.Parse("http://" + host)
	if err != nil {
		return false
	}

	return u.Host == host && u.User == nil && u.Path == ""
}

// registerGames sets up the routes for every game in the catalog.
func registerGames(cfg *Config, catalog *games.Catalog, path string, mux *httprouter.Router, errs chan<- error) {
	mux.GET(cfg.prefix+path+"/:game", serveGamePage(cfg, catalog, path, errs))

	mux.GET(cfg.prefix+path+"/:game/ws", serveSession(cfg, catalog))

	mux.GET(cfg.prefix+path+"/:game/qr", qrHandler(cfg, catalog))
}
