package http

import (
	"cmp"
	"context"
	"errors"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/pdrpinto/gridpath"
	"github.com/pdrpinto/gridpath/grid"
)

var (
	errSessionNotFound = errors.New("session not found")
	errTooManySessions = errors.New("too many open sessions")
)

const sessionIdleTimeout = 10 * time.Minute

type session struct {
	mu       sync.Mutex
	stepper  *gridpath.Stepper[grid.Cell]
	lastUsed time.Time
}

// step advances the search under the session lock.
func (sess *session) step() (gridpath.StepSnapshot[grid.Cell], error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()
	sess.lastUsed = time.Now()
	return sess.stepper.Step()
}

type sessionStore struct {
	mu       sync.Mutex
	max      int
	sessions map[string]*session
}

func newSessionStore(limit int) *sessionStore {
	return &sessionStore{max: limit, sessions: make(map[string]*session)}
}

func (st *sessionStore) add(sess *session) (string, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	now := time.Now()
	for id, existing := range st.sessions {
		existing.mu.Lock()
		idle := now.Sub(existing.lastUsed) > sessionIdleTimeout
		existing.mu.Unlock()
		if idle {
			existing.stepper.Close()
			delete(st.sessions, id)
		}
	}
	if st.max > 0 && len(st.sessions) >= st.max {
		return "", errTooManySessions
	}
	id := uuid.NewString()
	st.sessions[id] = sess
	return id, nil
}

func (st *sessionStore) get(id string) (*session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, ok := st.sessions[id]
	if !ok {
		return nil, errSessionNotFound
	}
	return sess, nil
}

func (st *sessionStore) remove(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	sess, ok := st.sessions[id]
	if !ok {
		return errSessionNotFound
	}
	sess.stepper.Close()
	delete(st.sessions, id)
	return nil
}

func (st *sessionStore) closeAll() {
	st.mu.Lock()
	defer st.mu.Unlock()
	for id, sess := range st.sessions {
		sess.stepper.Close()
		delete(st.sessions, id)
	}
}

type sessionResponse struct {
	ID     string      `json:"id"`
	Width  int         `json:"w"`
	Height int         `json:"h"`
	Start  grid.Cell   `json:"start"`
	Goal   grid.Cell   `json:"goal"`
	Walls  []grid.Cell `json:"walls"`
}

type snapshot struct {
	Step    int         `json:"step"`
	Current grid.Cell   `json:"current"`
	Open    []grid.Cell `json:"open"`
	Closed  []grid.Cell `json:"closed"`
	Done    bool        `json:"done"`
	Found   bool        `json:"found"`
	Path    []grid.Cell `json:"path,omitempty"`
	Cost    float64     `json:"cost"`
}

func toSnapshot(st gridpath.StepSnapshot[grid.Cell]) snapshot {
	s := snapshot{
		Step:    st.StepIndex,
		Current: st.Current,
		Open:    setToList(st.Open),
		Closed:  setToList(st.Closed),
		Done:    st.Done,
		Found:   st.Found,
		Cost:    st.TotalCost,
	}
	if st.Found && len(st.Path) > 0 {
		s.Path = st.Path
	}
	return s
}

// setToList returns the members of m in row-major order.
func setToList(m map[grid.Cell]bool) []grid.Cell {
	res := make([]grid.Cell, 0, len(m))
	for p, ok := range m {
		if ok {
			res = append(res, p)
		}
	}
	slices.SortFunc(res, func(a, b grid.Cell) int {
		if c := cmp.Compare(a.Row, b.Row); c != 0 {
			return c
		}
		return cmp.Compare(a.Col, b.Col)
	})
	return res
}

func wallList(g *grid.Grid) []grid.Cell {
	walls := []grid.Cell{}
	for row := 0; row < g.Height(); row++ {
		for col := 0; col < g.Width(); col++ {
			if c := (grid.Cell{Col: col, Row: row}); g.IsBlocked(c) {
				walls = append(walls, c)
			}
		}
	}
	return walls
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	g, ok := s.decodeGrid(w, r)
	if !ok {
		return
	}
	// The stepper outlives the request, so it must not inherit its context.
	stepper, err := s.solver.NewStepper(context.Background(), g)
	if err != nil {
		s.writeError(w, err)
		return
	}
	id, err := s.sessions.add(&session{stepper: stepper, lastUsed: time.Now()})
	if err != nil {
		stepper.Close()
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{
		ID:     id,
		Width:  g.Width(),
		Height: g.Height(),
		Start:  g.Start(),
		Goal:   g.Goal(),
		Walls:  wallList(g),
	})
}

func (s *Server) stepSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	st, err := sess.step()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toSnapshot(st))
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.remove(chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// streamSession upgrades to a websocket and sends one snapshot per expansion
// until the search is done. The optional interval query parameter (milliseconds)
// paces the stream.
func (s *Server) streamSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.get(chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	var interval time.Duration
	if v, err := strconv.Atoi(r.URL.Query().Get("interval")); err == nil && v > 0 {
		interval = time.Duration(v) * time.Millisecond
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	for {
		st, err := sess.step()
		if err != nil {
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Error()))
			return
		}
		if err := conn.WriteJSON(toSnapshot(st)); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				s.logger.Warn("websocket write failed", "error", err)
			}
			return
		}
		if st.Done {
			_ = conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, "done"))
			return
		}
		if interval > 0 {
			select {
			case <-r.Context().Done():
				return
			case <-time.After(interval):
			}
		}
	}
}
