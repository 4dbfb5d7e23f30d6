package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// Pager shows long text full screen
type Pager interface {
	Show(title, content string) error
}

// OvPager runs the ov pager in place of the Bubble Tea screen
type OvPager struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewOvPager creates a pager bound to p. A nil program makes Show fail so
// callers fall back to an in-app popup.
func NewOvPager(p *tea.Program) *OvPager {
	return &OvPager{program: p}
}

// SetProgram sets the program whose terminal is borrowed while paging
func (o *OvPager) SetProgram(p *tea.Program) {
	o.program = p
}

// Show displays content in ov until the user quits it. The title is only
// used by pagers that have somewhere to show it.
func (o *OvPager) Show(title, content string) error {
	if o.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := o.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = o.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
