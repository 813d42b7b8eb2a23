package pipe

import (
	"log"
	"os"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

// Channel is the planner endpoint: one inbound FIFO for shot commands, one
// outbound FIFO for state snapshots. Opening a FIFO blocks until the peer
// opens the other end, so the handshake runs in a background goroutine that
// flips the connected flag when both ends are up. The simulation loop only
// ever performs non-blocking reads and writes.
type Channel struct {
	commandPath string
	statePath   string

	cmd   *os.File
	state *os.File

	connected  atomic.Bool
	connecting atomic.Bool
}

// New creates a channel for the given FIFO paths. Call Setup to create the
// FIFOs and start the handshake.
func New(commandPath, statePath string) *Channel {
	return &Channel{
		commandPath: commandPath,
		statePath:   statePath,
	}
}

// Setup creates both FIFOs (reusing ones that already exist) and starts the
// blocking handshake in the background.
func (c *Channel) Setup() error {
	if err := unix.Mkfifo(c.commandPath, 0o666); err != nil && err != unix.EEXIST {
		return err
	}
	if err := unix.Mkfifo(c.statePath, 0o666); err != nil && err != unix.EEXIST {
		return err
	}

	c.connecting.Store(true)
	log.Printf("[PIPE] FIFOs ready; waiting for planner (cmd=%s state=%s)", c.commandPath, c.statePath)
	go c.connect()
	return nil
}

// connect performs the blocking open of both ends, then switches the
// descriptors to non-blocking for the simulation loop.
func (c *Channel) connect() {
	cmd, err := os.OpenFile(c.commandPath, os.O_RDONLY, 0)
	if err != nil {
		log.Printf("[PIPE] Failed to open command pipe: %v", err)
		c.connecting.Store(false)
		return
	}

	state, err := os.OpenFile(c.statePath, os.O_WRONLY, 0)
	if err != nil {
		log.Printf("[PIPE] Failed to open state pipe: %v", err)
		cmd.Close()
		c.connecting.Store(false)
		return
	}

	if err := unix.SetNonblock(int(cmd.Fd()), true); err != nil {
		log.Printf("[PIPE] Failed to set command pipe non-blocking: %v", err)
	}
	if err := unix.SetNonblock(int(state.Fd()), true); err != nil {
		log.Printf("[PIPE] Failed to set state pipe non-blocking: %v", err)
	}

	c.cmd = cmd
	c.state = state
	c.connected.Store(true)
	c.connecting.Store(false)
	log.Printf("[PIPE] Planner connected")
}

// Connected reports whether both pipe ends are open. The simulation loop
// polls this; it is the only state shared with the handshake goroutine.
func (c *Channel) Connected() bool {
	return c.connected.Load()
}

// Connecting reports whether the handshake is still in progress.
func (c *Channel) Connecting() bool {
	return c.connecting.Load()
}

// ReadCommand attempts a non-blocking read of one command record. Any error
// or short read means "no command this tick".
func (c *Channel) ReadCommand() (ShotCommand, bool) {
	if !c.connected.Load() {
		return ShotCommand{}, false
	}
	buf := make([]byte, CommandSize)
	n, err := c.cmd.Read(buf)
	if err != nil || n < CommandSize {
		return ShotCommand{}, false
	}
	return UnpackCommand(buf)
}

// WriteSnapshot attempts a non-blocking write of one snapshot record. A
// failed write is logged and dropped; the absence of a reading peer is a
// recoverable condition, never fatal.
func (c *Channel) WriteSnapshot(s Snapshot) {
	if !c.connected.Load() {
		return
	}
	buf := s.Pack()
	if _, err := c.state.Write(buf[:]); err != nil {
		log.Printf("[PIPE] Dropped snapshot: %v", err)
	}
}

// Close shuts both ends and removes the FIFOs.
func (c *Channel) Close() {
	if c.cmd != nil {
		c.cmd.Close()
	}
	if c.state != nil {
		c.state.Close()
	}
	os.Remove(c.commandPath)
	os.Remove(c.statePath)
	c.connected.Store(false)
}
