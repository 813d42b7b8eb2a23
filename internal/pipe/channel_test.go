package pipe

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestChannelBeforeConnect(t *testing.T) {
	dir := t.TempDir()
	ch := New(filepath.Join(dir, "cmd.fifo"), filepath.Join(dir, "state.fifo"))
	if err := ch.Setup(); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	defer ch.Close()

	for _, p := range []string{filepath.Join(dir, "cmd.fifo"), filepath.Join(dir, "state.fifo")} {
		info, err := os.Stat(p)
		if err != nil {
			t.Fatalf("fifo %s not created: %v", p, err)
		}
		if info.Mode()&os.ModeNamedPipe == 0 {
			t.Errorf("%s is not a named pipe", p)
		}
	}

	if ch.Connected() {
		t.Error("channel should not report connected before the peer opens")
	}
	if _, ok := ch.ReadCommand(); ok {
		t.Error("read before connect should yield no command")
	}
	// Writes before connect are silently dropped.
	ch.WriteSnapshot(Snapshot{BallX: 1})
}

func TestChannelHandshakeAndTransfer(t *testing.T) {
	dir := t.TempDir()
	cmdPath := filepath.Join(dir, "cmd.fifo")
	statePath := filepath.Join(dir, "state.fifo")

	ch := New(cmdPath, statePath)
	if err := ch.Setup(); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	defer ch.Close()

	// Peer opens its ends in the same order the channel does: command pipe
	// first, then state pipe. Both opens unblock the handshake goroutine.
	peerCmd, err := os.OpenFile(cmdPath, os.O_WRONLY, 0)
	if err != nil {
		t.Fatalf("peer open command pipe: %v", err)
	}
	defer peerCmd.Close()
	peerState, err := os.OpenFile(statePath, os.O_RDONLY, 0)
	if err != nil {
		t.Fatalf("peer open state pipe: %v", err)
	}
	defer peerState.Close()

	deadline := time.Now().Add(5 * time.Second)
	for !ch.Connected() {
		if time.Now().After(deadline) {
			t.Fatal("handshake never completed")
		}
		time.Sleep(5 * time.Millisecond)
	}

	// Peer sends one command record.
	want := ShotCommand{DirX: 1, DirY: 0, Loft: 40, Power: 75, SpinX: 0.1, SpinY: -0.2}
	packed := want.Pack()
	if _, err := peerCmd.Write(packed[:]); err != nil {
		t.Fatalf("peer write: %v", err)
	}

	var got ShotCommand
	ok := false
	for i := 0; i < 100 && !ok; i++ {
		got, ok = ch.ReadCommand()
		if !ok {
			time.Sleep(5 * time.Millisecond)
		}
	}
	if !ok {
		t.Fatal("command never arrived")
	}
	if got != want {
		t.Errorf("command mismatch: got %+v want %+v", got, want)
	}

	// Channel publishes one snapshot record.
	ch.WriteSnapshot(Snapshot{BallX: 110, HoleX: 510, Strokes: 2, Stopped: true})
	buf := make([]byte, SnapshotSize)
	if _, err := readFull(peerState, buf, 5*time.Second); err != nil {
		t.Fatalf("peer read: %v", err)
	}
	snap, ok := UnpackSnapshot(buf)
	if !ok {
		t.Fatal("snapshot record did not parse")
	}
	if snap.BallX != 110 || snap.HoleX != 510 || snap.Strokes != 2 || !snap.Stopped {
		t.Errorf("snapshot mismatch: %+v", snap)
	}
}

// readFull reads exactly len(buf) bytes, retrying short reads until deadline.
func readFull(f *os.File, buf []byte, timeout time.Duration) (int, error) {
	deadline := time.Now().Add(timeout)
	total := 0
	for total < len(buf) {
		n, err := f.Read(buf[total:])
		total += n
		if err != nil && time.Now().After(deadline) {
			return total, err
		}
	}
	return total, nil
}
