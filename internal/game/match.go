package game

import (
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"
)

// MatchMode selects how many balls are in play and who drives them.
type MatchMode string

const (
	// ModeSolo: one ball, driven by the local player. No turn state.
	ModeSolo MatchMode = "SOLO"
	// ModeDemo: one ball, driven by the remote planner. No turn state.
	ModeDemo MatchMode = "DEMO"
	// ModeVersus: two balls, player and planner alternate turns.
	ModeVersus MatchMode = "VERSUS"
)

// Turn identifies whose launch is expected next in versus mode.
type Turn string

const (
	TurnPlayer   Turn = "PLAYER"
	TurnRival    Turn = "RIVAL"
	TurnFinished Turn = "FINISHED"
)

// Seat names a competitor for stroke recording.
type Seat string

const (
	SeatPlayer Seat = "PLAYER"
	SeatRival  Seat = "RIVAL"
)

// Match owns the full state of one hole: course, wind, one or two balls,
// stroke counts, win flags and the turn state machine.
type Match struct {
	ID     string      `json:"id"`
	Mode   MatchMode   `json:"mode"`
	Status MatchStatus `json:"status"`

	PlayerBall *Ball `json:"player_ball"`
	RivalBall  *Ball `json:"rival_ball,omitempty"` // versus only

	Wind     *Wind `json:"wind"`
	HolePos  Vec2  `json:"hole_pos"`
	HasHole  bool  `json:"has_hole"`
	StartPos Vec2  `json:"start_pos"`

	PlayerStrokes int  `json:"player_strokes"`
	RivalStrokes  int  `json:"rival_strokes"`
	PlayerWon     bool `json:"player_won"`
	RivalWon      bool `json:"rival_won"`

	CurrentTurn Turn `json:"current_turn"`

	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	LastActivity time.Time  `json:"last_activity"`

	course *Course
	mu     sync.RWMutex
}

// NewMatch creates a match on the given course. The random source seeds the
// wind process and nothing else.
func NewMatch(id string, mode MatchMode, course *Course, rng *rand.Rand) *Match {
	start := course.FindStart()
	hole, hasHole := course.FindHole()
	if !hasHole {
		log.Printf("[MATCH] Course has no hole marker; win detection disabled")
	}

	m := &Match{
		ID:           id,
		Mode:         mode,
		Status:       StatusInProgress,
		PlayerBall:   NewBall(start),
		Wind:         NewWind(rng),
		HolePos:      hole,
		HasHole:      hasHole,
		StartPos:     start,
		CurrentTurn:  TurnPlayer,
		CreatedAt:    time.Now(),
		LastActivity: time.Now(),
		course:       course,
	}
	if mode == ModeVersus {
		m.RivalBall = NewBall(start)
	}
	return m
}

// Course returns the terrain model the match plays on.
func (m *Match) Course() *Course {
	return m.course
}

// Tick advances the whole match by one fixed timestep: wind, then each ball,
// then win detection and the turn guards.
func (m *Match) Tick(dt float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Wind.Tick(dt)
	StepBall(m.PlayerBall, m.course, m.Wind, dt)
	if m.RivalBall != nil {
		StepBall(m.RivalBall, m.course, m.Wind, dt)
	}

	m.evaluateWins()
	m.applyTurnGuards()
}

// evaluateWins checks each resting ball against the hole. Idempotent: a
// competitor that has already won is never re-evaluated, and win flags only
// ever go from false to true.
func (m *Match) evaluateWins() {
	if !m.HasHole {
		return
	}

	if !m.PlayerWon && !m.PlayerBall.IsMoving && m.PlayerBall.Position().DistanceTo(m.HolePos) < HoleRadius {
		m.PlayerWon = true
		log.Printf("[MATCH] %s: player holed out in %d strokes", m.ID, m.PlayerStrokes)
		if m.Mode == ModeVersus && !m.RivalWon {
			// The unfinished competitor gets the turn immediately.
			m.CurrentTurn = TurnRival
		}
		if Manager != nil {
			Manager.publishEvent(m, "player_holed")
		}
	}

	if m.RivalBall != nil && !m.RivalWon && !m.RivalBall.IsMoving && m.RivalBall.Position().DistanceTo(m.HolePos) < HoleRadius {
		m.RivalWon = true
		log.Printf("[MATCH] %s: rival holed out in %d strokes", m.ID, m.RivalStrokes)
		if !m.PlayerWon {
			m.CurrentTurn = TurnPlayer
		}
		if Manager != nil {
			Manager.publishEvent(m, "rival_holed")
		}
	}
}

// applyTurnGuards resolves the turn each tick in fixed priority order:
// completion first, then the one-unfinished-competitor overrides. With both
// competitors still in play the turn is left to launch-time alternation.
func (m *Match) applyTurnGuards() {
	if m.Mode != ModeVersus {
		if m.PlayerWon && m.Status == StatusInProgress {
			m.complete()
		}
		return
	}

	switch {
	case m.PlayerWon && m.RivalWon:
		if m.Status == StatusInProgress {
			m.CurrentTurn = TurnFinished
			m.complete()
		}
	case m.PlayerWon && !m.PlayerBall.IsMoving:
		m.CurrentTurn = TurnRival
	case m.RivalWon && m.RivalBall != nil && !m.RivalBall.IsMoving:
		m.CurrentTurn = TurnPlayer
	}
}

func (m *Match) complete() {
	m.Status = StatusCompleted
	now := time.Now()
	m.CompletedAt = &now
	log.Printf("[MATCH] %s finished: player=%d rival=%d strokes", m.ID, m.PlayerStrokes, m.RivalStrokes)
	if Manager != nil {
		Manager.SaveFinalRound(m)
		Manager.publishEvent(m, "match_completed")
	}
}

var (
	ErrMatchOver    = errors.New("match is already finished")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrBallMoving   = errors.New("ball is still moving")
	ErrAlreadyHoled = errors.New("competitor has already holed out")
	ErrWrongMode    = errors.New("operation not available in this mode")
)

// ShootPlayer launches the player's ball. Numeric inputs are clamped, never
// rejected; only turn and motion preconditions can fail.
func (m *Match) ShootPlayer(dirX, dirY, power, loft float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Mode == ModeDemo {
		return ErrWrongMode
	}
	if m.Status != StatusInProgress {
		return ErrMatchOver
	}
	if m.PlayerWon {
		return ErrAlreadyHoled
	}
	if m.Mode == ModeVersus && m.CurrentTurn != TurnPlayer {
		return ErrNotYourTurn
	}
	if m.PlayerBall.IsMoving {
		return ErrBallMoving
	}

	m.PlayerBall.Shoot(m.course, dirX, dirY, power, loft)
	m.PlayerStrokes++
	m.LastActivity = time.Now()
	log.Printf("[MATCH] %s: player shot #%d dir=(%.3f,%.3f) power=%.1f loft=%.1f",
		m.ID, m.PlayerStrokes, dirX, dirY, power, loft)

	// Launch completes the turn unless the rival has already finished.
	if m.Mode == ModeVersus && !m.RivalWon {
		m.CurrentTurn = TurnRival
	}

	if Manager != nil {
		Manager.RecordShot(m.ID, SeatPlayer, m.PlayerStrokes, dirX, dirY, power, loft)
	}
	return nil
}

// ShootRival launches the planner-driven ball with a full shot command. In
// demo mode the planner drives the primary ball instead.
func (m *Match) ShootRival(dirX, dirY, loft, power, spinX, spinY float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Status != StatusInProgress {
		return ErrMatchOver
	}

	ball := m.RivalBall
	if m.Mode == ModeDemo {
		ball = m.PlayerBall
		if m.PlayerWon {
			return ErrAlreadyHoled
		}
	} else {
		if m.Mode != ModeVersus {
			return ErrWrongMode
		}
		if m.RivalWon {
			return ErrAlreadyHoled
		}
		if m.CurrentTurn != TurnRival {
			return ErrNotYourTurn
		}
	}
	if ball.IsMoving {
		return ErrBallMoving
	}

	if spinX != 0 || spinY != 0 {
		ball.AddSpin(spinX, spinY)
	}
	ball.Shoot(m.course, dirX, dirY, power, loft)
	m.LastActivity = time.Now()

	seat := SeatRival
	if m.Mode == ModeDemo {
		m.PlayerStrokes++
		seat = SeatPlayer
		log.Printf("[MATCH] %s: planner shot #%d dir=(%.3f,%.3f) power=%.1f loft=%.1f",
			m.ID, m.PlayerStrokes, dirX, dirY, power, loft)
	} else {
		m.RivalStrokes++
		log.Printf("[MATCH] %s: rival shot #%d dir=(%.3f,%.3f) power=%.1f loft=%.1f",
			m.ID, m.RivalStrokes, dirX, dirY, power, loft)
		if !m.PlayerWon {
			m.CurrentTurn = TurnPlayer
		}
	}

	if Manager != nil {
		stroke := m.RivalStrokes
		if seat == SeatPlayer {
			stroke = m.PlayerStrokes
		}
		Manager.RecordShot(m.ID, seat, stroke, dirX, dirY, power, loft)
	}
	return nil
}

// AdjustLoft sets the player's stored loft angle between shots.
func (m *Match) AdjustLoft(deg float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PlayerBall.IsMoving {
		return ErrBallMoving
	}
	m.PlayerBall.SetLoft(deg)
	return nil
}

// ApplySpin adds deliberate pre-shot spin to the player's ball.
func (m *Match) ApplySpin(dx, dy float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PlayerBall.IsMoving {
		return ErrBallMoving
	}
	m.PlayerBall.AddSpin(dx, dy)
	return nil
}

// StoredLoft returns the player's current loft setting.
func (m *Match) StoredLoft() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.PlayerBall.Loft
}

// Reset reinitializes both balls at the start position and clears strokes and
// win flags. The wind is environmental state and persists across resets.
func (m *Match) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.PlayerBall = NewBall(m.StartPos)
	if m.Mode == ModeVersus {
		m.RivalBall = NewBall(m.StartPos)
	}
	m.PlayerStrokes = 0
	m.RivalStrokes = 0
	m.PlayerWon = false
	m.RivalWon = false
	m.CurrentTurn = TurnPlayer
	m.Status = StatusInProgress
	m.CompletedAt = nil
	m.LastActivity = time.Now()
	log.Printf("[MATCH] %s reset", m.ID)
}

// SideState is one competitor's view in a snapshot.
type SideState struct {
	Ball    Ball      `json:"ball"`
	Phase   BallPhase `json:"phase"`
	Strokes int       `json:"strokes"`
	Won     bool      `json:"won"`
}

// MatchSnapshot is the externally published view of the match.
type MatchSnapshot struct {
	ID          string      `json:"id"`
	Mode        MatchMode   `json:"mode"`
	Status      MatchStatus `json:"status"`
	CurrentTurn Turn        `json:"current_turn"`
	HolePos     Vec2        `json:"hole_pos"`
	HasHole     bool        `json:"has_hole"`
	Wind        Wind        `json:"wind"`
	Player      SideState   `json:"player"`
	Rival       *SideState  `json:"rival,omitempty"`
}

// Snapshot returns a copy of the externally visible match state.
func (m *Match) Snapshot() MatchSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	snap := MatchSnapshot{
		ID:          m.ID,
		Mode:        m.Mode,
		Status:      m.Status,
		CurrentTurn: m.CurrentTurn,
		HolePos:     m.HolePos,
		HasHole:     m.HasHole,
		Wind:        *m.Wind,
		Player: SideState{
			Ball:    *m.PlayerBall,
			Phase:   m.PlayerBall.Phase(),
			Strokes: m.PlayerStrokes,
			Won:     m.PlayerWon,
		},
	}
	if m.RivalBall != nil {
		snap.Rival = &SideState{
			Ball:    *m.RivalBall,
			Phase:   m.RivalBall.Phase(),
			Strokes: m.RivalStrokes,
			Won:     m.RivalWon,
		}
	}
	return snap
}

// PlannerState is the outbound record for the remote planner: the state of
// whichever ball the planner drives.
type PlannerState struct {
	BallX, BallY, BallZ        float64
	HoleX, HoleY               float64
	WindX, WindY, WindStrength float64
	Strokes                    int
	Stopped                    bool
	Won                        bool
}

// PlannerView returns the planner-facing state. ok is false when nothing
// should be published this tick: the planner's ball is still moving, or the
// planner has already finished in versus mode. In versus mode the won flag is
// always reported false so the remote planner keeps playing until its own
// ball is in.
func (m *Match) PlannerView() (PlannerState, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var ball *Ball
	var strokes int
	var won bool
	switch m.Mode {
	case ModeDemo:
		ball = m.PlayerBall
		strokes = m.PlayerStrokes
		won = m.PlayerWon
	case ModeVersus:
		if m.RivalWon {
			return PlannerState{}, false
		}
		ball = m.RivalBall
		strokes = m.RivalStrokes
		won = false
	default:
		return PlannerState{}, false
	}

	if ball.IsMoving {
		return PlannerState{}, false
	}

	return PlannerState{
		BallX:        ball.X,
		BallY:        ball.Y,
		BallZ:        ball.Z,
		HoleX:        m.HolePos.X,
		HoleY:        m.HolePos.Y,
		WindX:        m.Wind.Dir.X,
		WindY:        m.Wind.Dir.Y,
		WindStrength: m.Wind.AppliedStrength,
		Strokes:      strokes,
		Stopped:      !ball.IsMoving,
		Won:          won,
	}, true
}

// RivalMayCommand reports whether a planner command would be accepted right
// now; the runner uses it to leave commands unread otherwise.
func (m *Match) RivalMayCommand() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.Status != StatusInProgress {
		return false
	}
	switch m.Mode {
	case ModeDemo:
		return !m.PlayerBall.IsMoving && !m.PlayerWon
	case ModeVersus:
		return m.CurrentTurn == TurnRival && m.RivalBall != nil &&
			!m.RivalBall.IsMoving && !m.RivalWon
	default:
		return false
	}
}
