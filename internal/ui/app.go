package ui

import (
	"context"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/darkidle/internal/game"
)

// App runs the terminal front-end: it renders the session after every
// change and turns key presses into game events.
type App struct {
	screen   *Screen
	renderer *Renderer
	game     *game.Game
	itemIDs  []string
	status   func() string
}

// NewApp creates an app drawing g onto screen. status, when non-nil, supplies
// the title-bar status line on each redraw.
func NewApp(screen *Screen, g *game.Game, status func() string) *App {
	catalog := g.Engine().Catalog()
	return &App{
		screen:   screen,
		renderer: NewRenderer(screen, catalog),
		game:     g,
		itemIDs:  catalog.IDs(),
		status:   status,
	}
}

// Run draws and handles input until the player quits or ctx is cancelled.
// It closes the screen before returning.
func (a *App) Run(ctx context.Context) error {
	defer a.screen.Close()

	a.game.OnChange(func(game.Result) { a.screen.Interrupt() })

	stop := context.AfterFunc(ctx, a.screen.Interrupt)
	defer stop()

	for {
		if ctx.Err() != nil {
			return nil
		}
		a.draw()

		switch ev := a.screen.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventResize:
			a.screen.Sync()
		case *tcell.EventKey:
			action, gev := KeyAction(ev, a.itemIDs)
			switch action {
			case ActionQuit:
				slog.InfoContext(ctx, "player quit")
				return nil
			case ActionRedraw:
				a.screen.Sync()
			case ActionDispatch:
				a.game.Dispatch(ctx, gev)
			}
		}
	}
}

func (a *App) draw() {
	status := ""
	if a.status != nil {
		status = a.status()
	}
	a.renderer.Render(a.game.Session(), status)
}
