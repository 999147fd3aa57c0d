// internal/app/agents.go
package app

import (
	"strconv"
	"strings"

	"herbicide/internal/event"
	"herbicide/pkg/tilegrid"
)

// Agent is a mobile enemy walking from a spawn marker toward a goal.
type Agent struct {
	ID    tilegrid.AgentID
	Spawn tilegrid.Marker
	Enemy string
	Goal  tilegrid.Coord
}

// AgentData is the payload of agent events.
type AgentData struct {
	ID       tilegrid.AgentID
	From, To tilegrid.Coord
}

// StepReport summarizes one Step.
type StepReport struct {
	Moved, Arrived, Stuck int
}

// ParsePayload reads the "key=value;key=value" text attached to spawn markers.
// Malformed pairs are skipped.
func ParsePayload(payload string) map[string]string {
	out := make(map[string]string)
	for _, pair := range strings.Split(payload, ";") {
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			continue
		}
		out[key] = strings.TrimSpace(value)
	}
	return out
}

// Agents returns the agents still walking, in spawn order.
func (lv *Level) Agents() []*Agent {
	return append([]*Agent(nil), lv.agents...)
}

// SpawnAgents creates the agents described by every spawn marker and targets
// each at its nearest reachable goal. Spawns with no reachable goal are skipped.
func (lv *Level) SpawnAgents() []*Agent {
	var spawned []*Agent
	for _, marker := range lv.Grid.SpawnMarkers() {
		goal, _, ok := lv.NearestGoal(marker.Coord)
		if !ok {
			lv.logger.Warn("spawn has no reachable goal", "spawn", marker.Name, "coord", marker.Coord)
			continue
		}
		payload := ParsePayload(marker.Payload)
		count := 1
		if n, err := strconv.Atoi(payload["count"]); err == nil && n > 0 {
			count = n
		}
		for i := 0; i < count; i++ {
			lv.nextAgent++
			a := &Agent{ID: lv.nextAgent, Spawn: marker, Enemy: payload["enemy"], Goal: goal}
			if !lv.Grid.TrackAgent(a.ID, marker.Coord) {
				continue
			}
			lv.agents = append(lv.agents, a)
			spawned = append(spawned, a)
			lv.Events.Dispatch(event.Event{Type: event.AgentSpawned, Data: AgentData{ID: a.ID, From: marker.Coord, To: marker.Coord}})
		}
	}
	lv.logger.Debug("agents spawned", "count", len(spawned))
	return spawned
}

// Step moves every agent one cell toward its goal. An agent whose next step is
// the goal itself arrives and stops being tracked.
func (lv *Level) Step() StepReport {
	var report StepReport
	remaining := make([]*Agent, 0, len(lv.agents))
	for _, a := range lv.agents {
		at, ok := lv.Grid.AgentCell(a.ID)
		if !ok {
			continue
		}
		next, ok := lv.Pathfinder.NextStepToward(at, a.Goal)
		switch {
		case !ok:
			report.Stuck++
			lv.Events.Dispatch(event.Event{Type: event.AgentStuck, Data: AgentData{ID: a.ID, From: at, To: at}})
			remaining = append(remaining, a)
		case next == a.Goal:
			report.Arrived++
			lv.Grid.UntrackAgent(a.ID)
			lv.Events.Dispatch(event.Event{Type: event.AgentArrived, Data: AgentData{ID: a.ID, From: at, To: next}})
		default:
			report.Moved++
			lv.Grid.MoveAgent(a.ID, next)
			lv.Events.Dispatch(event.Event{Type: event.AgentMoved, Data: AgentData{ID: a.ID, From: at, To: next}})
			remaining = append(remaining, a)
		}
	}
	lv.agents = remaining
	return report
}
