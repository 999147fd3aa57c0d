// internal/event/types.go
package event

const (
	ModelPlaced     EventType = "ModelPlaced"     // модель поставлена на клетку
	ModelRemoved    EventType = "ModelRemoved"    // модель снята
	CellFloored     EventType = "CellFloored"     // на клетку положено покрытие
	FlooringRemoved EventType = "FlooringRemoved" // покрытие снято
	AgentSpawned    EventType = "AgentSpawned"
	AgentMoved      EventType = "AgentMoved"
	AgentArrived    EventType = "AgentArrived" // агент дошёл до цели
	AgentStuck      EventType = "AgentStuck"   // пути к цели нет
	LevelReloaded   EventType = "LevelReloaded"
)
