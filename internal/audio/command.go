package audio

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Command plays a sound file through an external player process, e.g.
// ["paplay", "--volume={volume}"] or ["afplay", "-v", "{volume}"]. The
// placeholders {file} and {volume} are expanded per playback; the file is
// appended when the template does not mention it. {volume} expands to the
// volume scaled for the player (see VolumeScale).
type Command struct {
	mu sync.Mutex

	argv        []string
	file        string
	volumeScale float64
	logger      zerolog.Logger

	loop    bool
	muted   bool
	playing bool
	volume  float64

	cmd *exec.Cmd
	run uint64 // bumped whenever the current process is superseded
}

// NewCommand builds a player-backed channel. volumeScale maps the 0..1 cue
// volume onto the player's range (65536 for paplay, 1 for afplay).
func NewCommand(argv []string, file string, volumeScale float64, logger zerolog.Logger) *Command {
	if volumeScale <= 0 {
		volumeScale = 1
	}
	return &Command{
		argv:        argv,
		file:        file,
		volumeScale: volumeScale,
		logger:      logger.With().Str("component", "audio").Str("file", file).Logger(),
	}
}

func (c *Command) Restart(volume float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.killLocked()
	c.run++
	c.volume = volume
	c.playing = true
	if c.muted {
		if !c.loop {
			c.playing = false
		}
		return nil
	}
	return c.spawnLocked(c.run)
}

func (c *Command) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.run++
	c.playing = false
	c.killLocked()
}

// SetMuted silences the channel. A muted loop keeps its playing state and is
// respawned from the start when unmuted. The focus engine pauses its ambient
// loop before muting, so only direct callers rely on the resume.
func (c *Command) SetMuted(muted bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.muted == muted {
		return
	}
	c.muted = muted
	if muted {
		if c.cmd != nil {
			c.run++
			c.killLocked()
		}
		if !c.loop {
			c.playing = false
		}
		return
	}
	if c.playing && c.loop && c.cmd == nil {
		if err := c.spawnLocked(c.run); err != nil {
			c.logger.Debug().Err(err).Msg("resume after unmute failed")
		}
	}
}

func (c *Command) SetLoop(loop bool) {
	c.mu.Lock()
	c.loop = loop
	c.mu.Unlock()
}

func (c *Command) Paused() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.playing
}

func (c *Command) spawnLocked(run uint64) error {
	args := c.expand()
	if len(args) == 0 {
		c.playing = false
		return ErrPlaybackDenied
	}

	cmd := exec.Command(args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		c.playing = false
		return fmt.Errorf("start player %q: %w", args[0], err)
	}
	c.cmd = cmd
	go c.wait(cmd, run)
	return nil
}

func (c *Command) wait(cmd *exec.Cmd, run uint64) {
	err := cmd.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	if run != c.run || c.cmd != cmd {
		return
	}
	c.cmd = nil
	if err != nil {
		c.logger.Debug().Err(err).Msg("player exited with error")
		c.playing = false
		return
	}
	if c.loop && c.playing && !c.muted {
		if err := c.spawnLocked(run); err != nil {
			c.logger.Debug().Err(err).Msg("loop respawn failed")
		}
		return
	}
	c.playing = false
}

func (c *Command) killLocked() {
	if c.cmd != nil && c.cmd.Process != nil {
		_ = c.cmd.Process.Kill()
	}
	c.cmd = nil
}

func (c *Command) expand() []string {
	if len(c.argv) == 0 || c.file == "" {
		return nil
	}
	vol := strconv.FormatFloat(c.volume*c.volumeScale, 'f', -1, 64)
	if c.volumeScale > 1 {
		vol = strconv.Itoa(int(c.volume * c.volumeScale))
	}

	args := make([]string, 0, len(c.argv)+1)
	sawFile := false
	for _, a := range c.argv {
		if strings.Contains(a, "{file}") {
			sawFile = true
		}
		a = strings.ReplaceAll(a, "{file}", c.file)
		a = strings.ReplaceAll(a, "{volume}", vol)
		args = append(args, a)
	}
	if !sawFile {
		args = append(args, c.file)
	}
	return args
}
