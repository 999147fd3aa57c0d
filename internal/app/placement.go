// internal/app/placement.go
package app

import (
	"errors"
	"fmt"

	"herbicide/internal/event"
	"herbicide/pkg/tilegrid"
)

var (
	// ErrRejected is returned when the grid refuses a placement or flooring.
	ErrRejected = errors.New("placement rejected")
	// ErrPathBlocked is returned when a placement would cut spawns off from every goal.
	ErrPathBlocked = errors.New("placement blocks the path")
	// ErrNothingToRemove is returned when the target cell is empty.
	ErrNothingToRemove = errors.New("nothing to remove")
)

// PlacementData is the payload of placement events.
type PlacementData struct {
	Coord tilegrid.Coord
	Model tilegrid.Model
}

// FlooringData is the payload of flooring events.
type FlooringData struct {
	Coord tilegrid.Coord
	Kind  tilegrid.FlooringKind
}

// Place builds model id and puts it at c.
func (lv *Level) Place(c tilegrid.Coord, id string) error {
	m, err := lv.Library.NewModel(id)
	if err != nil {
		return err
	}
	if !lv.Grid.PlaceAt(c, m) {
		return fmt.Errorf("%s at %s: %w", id, c, ErrRejected)
	}
	if lv.keepPathOpen && !lv.spawnsConnected() {
		lv.Grid.RemoveAt(c)
		lv.logger.Debug("placement refused, path blocked", "model", id, "coord", c)
		return fmt.Errorf("%s at %s: %w", id, c, ErrPathBlocked)
	}

	lv.logger.Debug("model placed", "model", id, "coord", c)
	lv.Events.Dispatch(event.Event{Type: event.ModelPlaced, Data: PlacementData{Coord: c, Model: m}})
	return nil
}

// CanPlace reports whether id could be placed at c, path rule excluded.
func (lv *Level) CanPlace(c tilegrid.Coord, id string) bool {
	m, err := lv.Library.NewModel(id)
	if err != nil {
		return false
	}
	return lv.Grid.GhostPlaceAt(c, m)
}

// Remove takes the topmost model off c.
func (lv *Level) Remove(c tilegrid.Coord) (tilegrid.Model, error) {
	m, ok := lv.Grid.RemoveAt(c)
	if !ok {
		return nil, fmt.Errorf("%s: %w", c, ErrNothingToRemove)
	}
	lv.logger.Debug("model removed", "kind", m.Kind(), "coord", c)
	lv.Events.Dispatch(event.Event{Type: event.ModelRemoved, Data: PlacementData{Coord: c, Model: m}})
	return m, nil
}

// Floor lays flooring of the given kind at c.
func (lv *Level) Floor(c tilegrid.Coord, kind tilegrid.FlooringKind) error {
	if !lv.Grid.FloorAt(c, kind) {
		return fmt.Errorf("%s flooring at %s: %w", kind, c, ErrRejected)
	}
	lv.logger.Debug("cell floored", "kind", kind, "coord", c)
	lv.Events.Dispatch(event.Event{Type: event.CellFloored, Data: FlooringData{Coord: c, Kind: kind}})
	return nil
}

// Unfloor removes an unoccupied flooring at c.
func (lv *Level) Unfloor(c tilegrid.Coord) error {
	cell, ok := lv.Grid.Cell(c)
	if !ok || cell.Flooring() == nil {
		return fmt.Errorf("%s: %w", c, ErrNothingToRemove)
	}
	kind := cell.Flooring().FlooringKind()
	if !lv.Grid.RemoveFloorAt(c) {
		return fmt.Errorf("%s flooring at %s: %w", kind, c, ErrRejected)
	}
	lv.Events.Dispatch(event.Event{Type: event.FlooringRemoved, Data: FlooringData{Coord: c, Kind: kind}})
	return nil
}
