// internal/state/level_state.go
package state

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/font/basicfont"

	"herbicide/internal/app"
	"herbicide/internal/config"
	"herbicide/internal/event"
	"herbicide/internal/levelwatch"
	"herbicide/internal/ui"
	"herbicide/pkg/render"
	"herbicide/pkg/tilegrid"
)

var numberKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// LevelState: просмотр и редактирование уровня
type LevelState struct {
	sm       *StateMachine
	settings config.Settings
	logger   *slog.Logger

	level     *app.Level
	renderer  *render.GridRenderer
	infoPanel *ui.InfoPanel
	book      *ui.ModelBook
	watcher   *levelwatch.Watcher

	hover       *tilegrid.Coord
	path        []tilegrid.Coord
	pathVersion uint64
	pathValid   bool

	running   bool
	stepTimer float64
	arrived   int
	message   string

	lastClickTime time.Time
}

// NewLevelState opens the level named in settings. With settings.Watch the
// level and definition directories are watched and reloaded on change.
func NewLevelState(sm *StateMachine, settings config.Settings, logger *slog.Logger) (*LevelState, error) {
	ls := &LevelState{
		sm:        sm,
		settings:  settings,
		logger:    logger,
		infoPanel: ui.NewInfoPanel(basicfont.Face7x13),
	}
	if err := ls.load(); err != nil {
		return nil, err
	}
	if settings.Watch {
		dirs := []string{filepath.Dir(settings.Level)}
		if d := filepath.Dir(settings.Definitions); d != dirs[0] {
			dirs = append(dirs, d)
		}
		w, err := levelwatch.New(dirs...)
		if err != nil {
			return nil, fmt.Errorf("watch %v: %w", dirs, err)
		}
		ls.watcher = w
		logger.Info("watching for level changes", "dirs", dirs)
	}
	return ls, nil
}

// load opens the level and swaps it in; on error the current level stays.
func (s *LevelState) load() error {
	lv, err := app.Open(s.settings, s.logger)
	if err != nil {
		return err
	}
	s.level = lv
	s.renderer = render.NewGridRenderer(lv.Grid, palette(), config.TileSize, config.ScreenWidth, config.ScreenHeight)
	s.book = ui.NewModelBook(10, 30, 200, basicfont.Face7x13, lv.Library.IDs())
	s.pathValid = false
	s.running = false
	s.arrived = 0
	s.subscribe()
	return nil
}

func (s *LevelState) subscribe() {
	ev := s.level.Events
	ev.SubscribeFunc(event.AgentArrived, func(event.Event) { s.arrived++ })
	ev.SubscribeFunc(event.AgentStuck, func(e event.Event) {
		s.logger.Debug("agent stuck", "agent", e.Data.(app.AgentData).ID)
	})
	ev.SubscribeFunc(event.LevelReloaded, func(event.Event) {
		s.message = "reloaded " + filepath.Base(s.settings.Level)
	})
}

func (s *LevelState) reload() {
	if err := s.load(); err != nil {
		s.logger.Error("reload failed", "err", err)
		s.message = "reload failed: " + err.Error()
		return
	}
	s.level.Events.Dispatch(event.Event{Type: event.LevelReloaded, Data: s.settings.Level})
}

func palette() render.Palette {
	return render.Palette{
		Background:  config.BackgroundColor,
		Grass:       config.GrassColor,
		Water:       config.WaterColor,
		Shore:       config.ShoreColor,
		Soil:        config.SoilColor,
		Structure:   config.StructureColor,
		Spawn:       config.SpawnColor,
		Goal:        config.GoalColor,
		Agent:       config.AgentColor,
		Path:        config.PathColor,
		Text:        config.TextLightColor,
		StrokeWidth: float32(config.StrokeWidth),
	}
}

func (s *LevelState) Enter() {}

func (s *LevelState) Update(deltaTime float64) {
	s.pollWatcher()
	s.infoPanel.Update()

	if inpututil.IsKeyJustPressed(ebiten.KeyP) || inpututil.IsKeyJustPressed(ebiten.KeyF9) {
		s.sm.SetState(NewPauseState(s.sm, s))
		return
	}
	s.handleKeys()
	s.updateHover()

	if s.running {
		s.stepTimer += deltaTime
		for s.stepTimer >= config.StepInterval {
			s.stepTimer -= config.StepInterval
			s.step()
		}
	}

	if time.Since(s.lastClickTime) < config.ClickDebounceTime*time.Millisecond {
		return
	}
	x, y := ebiten.CursorPosition()
	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		s.lastClickTime = time.Now()
		if !s.infoPanel.Contains(x, y) {
			s.handlePlace(x, y)
		}
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight):
		s.lastClickTime = time.Now()
		s.handleRemove(x, y)
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonMiddle):
		s.lastClickTime = time.Now()
		if c, ok := s.renderer.View().ToCoord(float64(x), float64(y)); ok {
			s.infoPanel.SetTarget(c)
		} else {
			s.infoPanel.Hide()
		}
	}
}

func (s *LevelState) pollWatcher() {
	if s.watcher == nil {
		return
	}
	select {
	case name, ok := <-s.watcher.Events:
		if ok {
			s.logger.Info("level file changed", "file", name)
			s.reload()
		}
	case err, ok := <-s.watcher.Errors:
		if ok {
			s.logger.Warn("watcher error", "err", err)
		}
	default:
	}
}

func (s *LevelState) handleKeys() {
	for i, key := range numberKeys {
		if inpututil.IsKeyJustPressed(key) {
			s.book.Select(i)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		s.book.Next(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		s.book.Toggle()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		agents := s.level.SpawnAgents()
		s.message = fmt.Sprintf("spawned %d agents", len(agents))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		s.running = !s.running
		s.stepTimer = 0
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		s.step()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		s.reload()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.infoPanel.Hide()
	}
}

func (s *LevelState) step() {
	report := s.level.Step()
	if report.Stuck > 0 {
		s.message = fmt.Sprintf("%d agents stuck", report.Stuck)
	}
}

func (s *LevelState) updateHover() {
	x, y := ebiten.CursorPosition()
	if c, ok := s.renderer.View().ToCoord(float64(x), float64(y)); ok {
		s.hover = &c
	} else {
		s.hover = nil
	}
}

func (s *LevelState) handlePlace(x, y int) {
	c, ok := s.renderer.View().ToCoord(float64(x), float64(y))
	if !ok {
		return
	}
	id, flooring := s.book.Selected()
	var err error
	if flooring {
		err = s.level.Floor(c, tilegrid.Soil)
	} else {
		err = s.level.Place(c, id)
	}
	switch {
	case err == nil:
		s.message = ""
	case errors.Is(err, app.ErrPathBlocked):
		s.message = "that would block every path"
	default:
		s.message = err.Error()
	}
}

func (s *LevelState) handleRemove(x, y int) {
	c, ok := s.renderer.View().ToCoord(float64(x), float64(y))
	if !ok {
		return
	}
	if _, err := s.level.Remove(c); err == nil {
		return
	}
	if err := s.level.Unfloor(c); err != nil && !errors.Is(err, app.ErrNothingToRemove) {
		s.message = err.Error()
	}
}

// currentPath is the route from the first spawn to its nearest goal,
// recomputed only when the grid changes.
func (s *LevelState) currentPath() []tilegrid.Coord {
	g := s.level.Grid
	if s.pathValid && s.pathVersion == g.Version() {
		return s.path
	}
	s.path, s.pathVersion, s.pathValid = nil, g.Version(), true
	spawns := g.SpawnMarkers()
	if len(spawns) == 0 {
		return nil
	}
	if goal, _, ok := s.level.NearestGoal(spawns[0].Coord); ok {
		s.path, _ = s.level.Pathfinder.FindPath(spawns[0].Coord, goal)
	}
	return s.path
}

func (s *LevelState) Draw(screen *ebiten.Image) {
	overlay := render.Overlay{Path: s.currentPath()}
	for _, a := range s.level.Agents() {
		if c, ok := s.level.Grid.AgentCell(a.ID); ok {
			overlay.Agents = append(overlay.Agents, c)
		}
	}
	if s.hover != nil {
		id, flooring := s.book.Selected()
		overlay.Hover = s.hover
		if flooring {
			overlay.HoverSize = tilegrid.Unit
			overlay.HoverOK = s.level.Grid.CanFloorAt(*s.hover, tilegrid.Soil)
		} else if def, ok := s.level.Library.Get(id); ok {
			overlay.HoverSize = def.Footprint()
			overlay.HoverOK = s.level.CanPlace(*s.hover, id)
		}
	}
	s.renderer.Draw(screen, overlay)
	s.book.Draw(screen)
	s.infoPanel.Draw(screen, s.level)

	status := "paused"
	if s.running {
		status = "running"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("agents: %d  arrived: %d  [%s]  path: %d  %s",
		len(s.level.Agents()), s.arrived, status, len(s.path), s.message))
}

func (s *LevelState) Exit() {}

// Close stops the file watcher.
func (s *LevelState) Close() error {
	if s.watcher == nil {
		return nil
	}
	return s.watcher.Close()
}
