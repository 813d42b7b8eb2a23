package game

import (
	"context"
	"log"
	"time"

	"github.com/golfero/backend/internal/pipe"
)

// StartRunner drives the fixed-timestep loop for one match and bridges the
// planner channel. The channel and snapshot callback are both optional; the
// loop never blocks on either. Returns immediately; the loop runs until ctx
// is cancelled.
func StartRunner(ctx context.Context, m *Match, ch *pipe.Channel, snapshotInterval int, onSnapshot func(MatchSnapshot)) {
	if snapshotInterval <= 0 {
		snapshotInterval = 60
	}

	log.Printf("[RUNNER] Match loop started for %s (dt=%.0fms)", m.ID, FixedDT*1000)
	go func() {
		ticker := time.NewTicker(time.Duration(FixedDT * float64(time.Second)))
		defer ticker.Stop()

		tick := 0
		plannerTick := 0
		for {
			select {
			case <-ctx.Done():
				log.Printf("[RUNNER] Match loop stopping for %s", m.ID)
				return
			case <-ticker.C:
				m.Tick(FixedDT)
				tick++

				if tick%snapshotInterval == 0 {
					if onSnapshot != nil {
						onSnapshot(m.Snapshot())
					}
					if Manager != nil {
						Manager.SaveMatchToRedis(m)
					}
				}

				if ch == nil || !ch.Connected() {
					continue
				}

				// Publish to the planner at a bounded rate, and only while
				// its ball is at rest.
				if st, ok := m.PlannerView(); ok {
					if plannerTick%snapshotInterval == 0 {
						ch.WriteSnapshot(pipe.Snapshot{
							BallX:        float32(st.BallX),
							BallY:        float32(st.BallY),
							BallZ:        float32(st.BallZ),
							HoleX:        float32(st.HoleX),
							HoleY:        float32(st.HoleY),
							WindX:        float32(st.WindX),
							WindY:        float32(st.WindY),
							WindStrength: float32(st.WindStrength),
							Strokes:      int32(st.Strokes),
							Stopped:      st.Stopped,
							Won:          st.Won,
						})
					}
					plannerTick++
				}

				// Leave commands unread unless a launch would be accepted;
				// the pipe buffers them until it is the planner's turn.
				if m.RivalMayCommand() {
					if cmd, ok := ch.ReadCommand(); ok {
						err := m.ShootRival(
							float64(cmd.DirX), float64(cmd.DirY),
							float64(cmd.Loft), float64(cmd.Power),
							float64(cmd.SpinX), float64(cmd.SpinY))
						if err != nil {
							log.Printf("[RUNNER] Planner command rejected: %v", err)
						}
					}
				}
			}
		}
	}()
}
