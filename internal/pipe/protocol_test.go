package pipe

import (
	"bytes"
	"testing"
)

func TestRecordSizesArePinned(t *testing.T) {
	// The planner's struct layout depends on these exact sizes.
	if CommandSize != 24 {
		t.Errorf("CommandSize = %d, want 24", CommandSize)
	}
	if SnapshotSize != 40 {
		t.Errorf("SnapshotSize = %d, want 40", SnapshotSize)
	}
}

func TestCommandRoundTrip(t *testing.T) {
	in := ShotCommand{DirX: 0.707, DirY: -0.707, Loft: 35, Power: 31.2, SpinX: -0.5, SpinY: 1.25}
	buf := in.Pack()

	out, ok := UnpackCommand(buf[:])
	if !ok {
		t.Fatal("full command record should parse")
	}
	if out != in {
		t.Errorf("round trip mismatch: in=%+v out=%+v", in, out)
	}
}

func TestCommandWireLayout(t *testing.T) {
	buf := ShotCommand{DirX: 1, Power: 2}.Pack()

	// float32(1) little-endian
	if !bytes.Equal(buf[0:4], []byte{0, 0, 0x80, 0x3f}) {
		t.Errorf("dir_x bytes % x, want 00 00 80 3f", buf[0:4])
	}
	// float32(2) at the power offset
	if !bytes.Equal(buf[12:16], []byte{0, 0, 0, 0x40}) {
		t.Errorf("power bytes % x, want 00 00 00 40", buf[12:16])
	}
	for i, b := range buf[4:12] {
		if b != 0 {
			t.Errorf("byte %d nonzero in zeroed fields", 4+i)
		}
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	in := Snapshot{
		BallX: 110.5, BallY: 490, BallZ: 3.25,
		HoleX: 510, HoleY: 90,
		WindX: -0.6, WindY: 0.8, WindStrength: 12.5,
		Strokes: 7, Stopped: true, Won: false,
	}
	buf := in.Pack()

	out, ok := UnpackSnapshot(buf[:])
	if !ok {
		t.Fatal("full snapshot record should parse")
	}
	if out != in {
		t.Errorf("round trip mismatch: in=%+v out=%+v", in, out)
	}
}

func TestSnapshotWireLayout(t *testing.T) {
	buf := Snapshot{BallX: 1, Strokes: 3, Stopped: true, Won: false}.Pack()

	if !bytes.Equal(buf[0:4], []byte{0, 0, 0x80, 0x3f}) {
		t.Errorf("ball_x bytes % x, want 00 00 80 3f", buf[0:4])
	}
	if !bytes.Equal(buf[32:36], []byte{3, 0, 0, 0}) {
		t.Errorf("strokes bytes % x, want 03 00 00 00", buf[32:36])
	}
	if buf[36] != 1 || buf[37] != 0 {
		t.Errorf("flag bytes stopped=%d won=%d, want 1 and 0", buf[36], buf[37])
	}
	if buf[38] != 0 || buf[39] != 0 {
		t.Errorf("padding bytes % x, want zero", buf[38:40])
	}
}

func TestShortBuffersMeanNoRecord(t *testing.T) {
	if _, ok := UnpackCommand(make([]byte, CommandSize-1)); ok {
		t.Error("short command buffer should not parse")
	}
	if _, ok := UnpackSnapshot(make([]byte, SnapshotSize-1)); ok {
		t.Error("short snapshot buffer should not parse")
	}
	if _, ok := UnpackCommand(nil); ok {
		t.Error("nil buffer should not parse")
	}
}
