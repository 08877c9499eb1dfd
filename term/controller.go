package term

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"pkt.systems/tpp"
)

// Controller owns one backend instance and one Navigator, and turns
// operator keys or a timer into navigation. Reload replaces the
// Document but keeps the backend and its state.
type Controller struct {
	backend *Backend
	nav     *tpp.Navigator
	path    string
	runner  tpp.CommandRunner
	status  string
}

// NewController loads the source file and prepares an interactive
// session rendering it.
func NewController(path string, runner tpp.CommandRunner) (*Controller, error) {
	if runner == nil {
		runner = tpp.ExecRunner{}
	}
	doc, err := tpp.LoadFile(path, runner)
	if err != nil {
		return nil, err
	}
	b := New(runner)
	return &Controller{
		backend: b,
		nav:     tpp.NewNavigator(doc, b),
		path:    path,
		runner:  runner,
	}, nil
}

// RunInteractive presents the document until the operator quits.
func (c *Controller) RunInteractive() error {
	if err := c.backend.Open(); err != nil {
		return err
	}
	defer c.backend.Close()

	c.nav.EnterPage()
	for {
		c.nav.RunPage()
		c.drawStatus()
		c.backend.Refresh()
		if quit := c.handleEvent(c.backend.screen.PollEvent()); quit {
			return nil
		}
	}
}

// RunTimed presents the document on autopilot: after every pause or
// end of page it waits the interval and resumes, wrapping to the first
// page past the last. Quit keys still work; everything else is left to
// the timer.
func (c *Controller) RunTimed(interval time.Duration) error {
	if err := c.backend.Open(); err != nil {
		return err
	}
	defer c.backend.Close()

	events := make(chan tcell.Event, 8)
	go func() {
		for {
			ev := c.backend.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	c.nav.EnterPage()
	for {
		paused := c.nav.RunPage()
		c.drawStatus()
		c.backend.Refresh()
		select {
		case ev := <-events:
			switch act, _ := classify(ev); act {
			case tpp.ActionQuit:
				return nil
			case tpp.ActionResize:
				c.backend.resize()
				c.nav.EnterPage()
				continue
			}
		case <-time.After(interval):
		}
		if !paused {
			c.nav.AdvanceWrap()
			c.nav.EnterPage()
		}
	}
}

// handleEvent applies one classified event and reports whether the
// session should end.
func (c *Controller) handleEvent(ev tcell.Event) bool {
	act, digit := classify(ev)
	c.status = ""
	switch act {
	case tpp.ActionQuit:
		return true
	case tpp.ActionRetreat:
		c.nav.Retreat()
		c.nav.EnterPage()
	case tpp.ActionFirst:
		c.nav.First()
		c.nav.EnterPage()
	case tpp.ActionReload:
		c.reload()
	case tpp.ActionJump:
		c.jump(digit)
	case tpp.ActionHelp:
		c.help()
	case tpp.ActionEdit:
		c.edit()
	case tpp.ActionResize:
		c.backend.resize()
		c.nav.EnterPage()
	default: // advance
		if c.nav.Page().EOP() && c.nav.Advance() {
			c.nav.EnterPage()
		}
	}
	return false
}

// reload builds a fresh Document from the source. On failure the old
// document stays live and the error lands on the status line.
func (c *Controller) reload() {
	doc, err := tpp.LoadFile(c.path, c.runner)
	if err != nil {
		c.status = fmt.Sprintf("reload: %v", err)
		return
	}
	c.nav.SetDocument(doc)
	c.nav.EnterPage()
}

// jump collects a page number typed by the operator, first digit
// already in hand, and jumps on enter. Escape cancels.
func (c *Controller) jump(first rune) {
	buf := string(first)
	for {
		c.status = "page: " + buf
		c.drawStatus()
		c.backend.Refresh()
		ev, ok := c.backend.screen.PollEvent().(*tcell.EventKey)
		if !ok {
			continue
		}
		switch ev.Key() {
		case tcell.KeyEnter:
			c.status = ""
			n, err := strconv.Atoi(buf)
			if err == nil && c.nav.Jump(n-1) {
				c.nav.EnterPage()
			}
			return
		case tcell.KeyEscape:
			c.status = ""
			return
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
			}
		case tcell.KeyRune:
			if r := ev.Rune(); r >= '0' && r <= '9' {
				buf += string(r)
			}
		}
	}
}

var helpLines = []string{
	"space/enter/down  advance",
	"left/up/b/p       previous page",
	"1..9 + enter      go to page",
	"s/home            first page",
	"r                 reload source",
	"e                 edit source",
	"h/?               this help",
	"q/escape          quit",
	"",
	"press any key to continue",
}

// help shows the key bindings until any key is pressed, then replays
// the current page.
func (c *Controller) help() {
	b := c.backend
	b.screen.Clear()
	style := b.pageStyle()
	for i, line := range helpLines {
		b.drawPlain(leftMargin, topRows+i, line, style)
	}
	b.Refresh()
	b.screen.PollEvent()
	c.nav.EnterPage()
}

// edit suspends the screen, opens the source in $EDITOR and reloads
// when the editor exits.
func (c *Controller) edit() {
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}
	if err := c.backend.screen.Suspend(); err != nil {
		c.status = fmt.Sprintf("edit: %v", err)
		return
	}
	cmd := exec.Command(editor, c.path)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	runErr := cmd.Run()
	if err := c.backend.screen.Resume(); err != nil {
		c.status = fmt.Sprintf("edit: %v", err)
		return
	}
	if runErr != nil {
		c.status = fmt.Sprintf("editor: %v", runErr)
		return
	}
	c.reload()
}

// drawStatus paints the bottom status line: page position and title on
// the left, an end-of-page marker on the right.
func (c *Controller) drawStatus() {
	b := c.backend
	y := b.height - 1
	style := b.pageStyle().Reverse(true)
	for x := 0; x < b.width; x++ {
		b.screen.SetContent(x, y, ' ', nil, style)
	}
	left := c.status
	if left == "" {
		left = fmt.Sprintf("[%d/%d] %s",
			c.nav.PageIndex()+1, c.nav.PageCount(), c.nav.Page().Title)
	}
	b.drawPlain(0, y, fitStatus(left, b.width), style)
	if c.status == "" && c.nav.Page().EOP() {
		marker := "[end]"
		if c.nav.PageIndex()+1 == c.nav.PageCount() {
			marker = "[end of presentation]"
		}
		b.drawPlain(b.width-runewidth.StringWidth(marker), y, marker, style)
	}
}

func fitStatus(text string, limit int) string {
	if runewidth.StringWidth(text) <= limit {
		return text
	}
	if limit <= 1 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-1]) + "…"
}
