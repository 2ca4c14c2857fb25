// Command platview runs the platform engine in a terminal with an autopilot
// climber. It is a debugging aid for streaming, ghosts and behaviours.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/lavaclimb/common"
	"github.com/milk9111/lavaclimb/ecs/component"
	"github.com/milk9111/lavaclimb/platform"
	"github.com/milk9111/lavaclimb/prefabs"
)

const frame = 16 * time.Millisecond

var kindStyles = map[component.PlatformKind]tcell.Style{
	component.KindNormal:  tcell.StyleDefault.Foreground(tcell.ColorGray),
	component.KindFragile: tcell.StyleDefault.Foreground(tcell.ColorTan),
	component.KindTimed:   tcell.StyleDefault.Foreground(tcell.ColorYellow),
	component.KindDodger:  tcell.StyleDefault.Foreground(tcell.ColorPurple),
	component.KindIce:     tcell.StyleDefault.Foreground(tcell.ColorLightCyan),
	component.KindBouncy:  tcell.StyleDefault.Foreground(tcell.ColorGreen),
	component.KindInvertX: tcell.StyleDefault.Foreground(tcell.ColorHotPink),
	component.KindInversa: tcell.StyleDefault.Foreground(tcell.ColorOrange),
}

type viewer struct {
	screen tcell.Screen
	sim    *sim
	paused bool
	speed  int
}

func main() {
	seed := flag.Uint64("seed", 1, "random seed")
	logPath := flag.String("log", "", "write logs to this file")
	debug := flag.Bool("debug", false, "debug logging")
	flag.Parse()

	common.SetDebug(*debug)
	var logOut io.Writer = io.Discard
	if *logPath != "" {
		f, err := os.Create(*logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}
	common.SetLogOutput(logOut)

	s, err := loadSim(*seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	v := &viewer{screen: screen, sim: s, speed: 1}
	v.run()
}

func loadSim(seed uint64) (*sim, error) {
	spec, err := prefabs.LoadPlatformSpec()
	if err != nil {
		return nil, err
	}
	catalog, err := platform.CatalogFromSpec(spec)
	if err != nil {
		return nil, err
	}
	var modifier platform.WeightModifier
	if spec.DifficultyScript != "" {
		m, err := platform.LoadScriptModifier(spec.DifficultyScript)
		if err != nil {
			return nil, err
		}
		modifier = m
	}
	return newSim(catalog, platform.TuningFromSpec(spec.Tuning), modifier, seed)
}

func (v *viewer) run() {
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	for {
		select {
		case ev := <-eventChan:
			if !v.handleInput(ev) {
				v.sim.engine.Shutdown()
				return
			}
		case <-ticker.C:
			if !v.paused {
				for i := 0; i < v.speed; i++ {
					v.sim.step(frame)
				}
			}
			v.draw()
		}
	}
}

func (v *viewer) handleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
			return false
		}
		if ev.Key() == tcell.KeyRune {
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				v.paused = !v.paused
			case '+':
				v.speed = min(v.speed+1, 8)
			case '-':
				v.speed = max(v.speed-1, 1)
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return true
}

func (v *viewer) draw() {
	v.screen.Clear()
	cols, rows := v.screen.Size()
	rows-- // status line
	if cols <= 0 || rows <= 0 {
		v.screen.Show()
		return
	}
	s := v.sim
	sx := float64(cols) / s.tuning.ScreenWidth
	sy := float64(rows) / s.tuning.ScreenHeight

	owner := s.engine.Controls().Owner()
	for _, tag := range s.engine.RenderTags() {
		if !tag.Visible {
			continue
		}
		row := int((tag.Y - s.viewTop) * sy)
		if row < 0 || row >= rows {
			continue
		}
		style, ok := kindStyles[tag.Kind]
		if !ok {
			style = tcell.StyleDefault
		}
		if tag.Alpha < 1 {
			style = style.Dim(true)
		}
		if tag.Entity == owner && owner != 0 {
			style = style.Reverse(true)
		}
		ch := '='
		switch {
		case tag.Ghost:
			ch = '~'
		case tag.IsMoving:
			ch = '-'
		}
		left := int((tag.X - tag.Width/2) * sx)
		right := int((tag.X + tag.Width/2) * sx)
		for c := left; c < right; c++ {
			if c >= 0 && c < cols {
				v.screen.SetContent(c, row, ch, nil, style)
			}
		}
	}

	b := s.bot
	brow := int((b.feet - s.viewTop) * sy)
	bcol := int(b.x * sx)
	if brow > 0 && brow <= rows && bcol >= 0 && bcol < cols {
		v.screen.SetContent(bcol, brow-1, '@', nil, tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true))
	}

	st := s.engine.Stats()
	status := fmt.Sprintf(" alt %5.0f  live %2d ghosts %d spawned %d destroyed %d respawns %d  timers %d  falls %d bounces %d  x%d",
		s.engine.Altitude(), st.Live, st.Ghosts, st.Spawned, st.Destroyed, st.PendingRespawns, s.space.Pending(), s.falls, s.bounces, v.speed)
	if v.paused {
		status += "  [paused]"
	}
	for i, r := range status {
		if i >= cols {
			break
		}
		v.screen.SetContent(i, rows, r, nil, tcell.StyleDefault.Reverse(true))
	}
	v.screen.Show()
}
