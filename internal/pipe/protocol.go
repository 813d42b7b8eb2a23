// Package pipe implements the byte-stream channel to the external shot
// planner: two named FIFOs carrying fixed-layout little-endian records with
// no framing. Message boundaries are implicit in the record sizes, so both
// sides must read and write whole records.
package pipe

import (
	"encoding/binary"
	"math"
)

// Record sizes in bytes. These are pinned to the planner's struct layout and
// must never change independently of it.
const (
	CommandSize  = 24 // 6 float32
	SnapshotSize = 40 // 8 float32 + int32 + 2 uint8 + 2 pad
)

// ShotCommand is the inbound shot request. Field order matches the wire
// layout exactly.
type ShotCommand struct {
	DirX  float32
	DirY  float32
	Loft  float32
	Power float32
	SpinX float32
	SpinY float32
}

// Snapshot is the outbound match state record.
type Snapshot struct {
	BallX        float32
	BallY        float32
	BallZ        float32
	HoleX        float32
	HoleY        float32
	WindX        float32
	WindY        float32
	WindStrength float32
	Strokes      int32
	Stopped      bool
	Won          bool
}

func putFloat32(buf []byte, v float32) {
	binary.LittleEndian.PutUint32(buf, math.Float32bits(v))
}

func getFloat32(buf []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(buf))
}

// Pack serializes the command into its wire layout.
func (c ShotCommand) Pack() [CommandSize]byte {
	var buf [CommandSize]byte
	putFloat32(buf[0:], c.DirX)
	putFloat32(buf[4:], c.DirY)
	putFloat32(buf[8:], c.Loft)
	putFloat32(buf[12:], c.Power)
	putFloat32(buf[16:], c.SpinX)
	putFloat32(buf[20:], c.SpinY)
	return buf
}

// UnpackCommand parses one command record. A short buffer yields ok=false;
// per the channel contract that means "no command", not an error.
func UnpackCommand(buf []byte) (ShotCommand, bool) {
	if len(buf) < CommandSize {
		return ShotCommand{}, false
	}
	return ShotCommand{
		DirX:  getFloat32(buf[0:]),
		DirY:  getFloat32(buf[4:]),
		Loft:  getFloat32(buf[8:]),
		Power: getFloat32(buf[12:]),
		SpinX: getFloat32(buf[16:]),
		SpinY: getFloat32(buf[20:]),
	}, true
}

// Pack serializes the snapshot into its wire layout. The two boolean flags
// ride as single bytes followed by two bytes of padding, matching the
// planner's struct alignment.
func (s Snapshot) Pack() [SnapshotSize]byte {
	var buf [SnapshotSize]byte
	putFloat32(buf[0:], s.BallX)
	putFloat32(buf[4:], s.BallY)
	putFloat32(buf[8:], s.BallZ)
	putFloat32(buf[12:], s.HoleX)
	putFloat32(buf[16:], s.HoleY)
	putFloat32(buf[20:], s.WindX)
	putFloat32(buf[24:], s.WindY)
	putFloat32(buf[28:], s.WindStrength)
	binary.LittleEndian.PutUint32(buf[32:], uint32(s.Strokes))
	if s.Stopped {
		buf[36] = 1
	}
	if s.Won {
		buf[37] = 1
	}
	return buf
}

// UnpackSnapshot parses one snapshot record; the inverse of Pack.
func UnpackSnapshot(buf []byte) (Snapshot, bool) {
	if len(buf) < SnapshotSize {
		return Snapshot{}, false
	}
	return Snapshot{
		BallX:        getFloat32(buf[0:]),
		BallY:        getFloat32(buf[4:]),
		BallZ:        getFloat32(buf[8:]),
		HoleX:        getFloat32(buf[12:]),
		HoleY:        getFloat32(buf[16:]),
		WindX:        getFloat32(buf[20:]),
		WindY:        getFloat32(buf[24:]),
		WindStrength: getFloat32(buf[28:]),
		Strokes:      int32(binary.LittleEndian.Uint32(buf[32:])),
		Stopped:      buf[36] != 0,
		Won:          buf[37] != 0,
	}, true
}
