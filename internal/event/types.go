// internal/event/types.go
package event

const (
	EnvironmentGenerated EventType = "EnvironmentGenerated" // Карта (пере)сгенерирована
	ValidationFailed     EventType = "ValidationFailed"     // Карта сохранена с нарушениями
	WaveStarted          EventType = "WaveStarted"          // Волна началась
	WaveCleared          EventType = "WaveCleared"          // Волна зачищена
	SpawnSkipped         EventType = "SpawnSkipped"         // Нечего спавнить
	EnemySpawned         EventType = "EnemySpawned"         // Враг создан
	EnemyDestroyed       EventType = "EnemyDestroyed"       // Враг уничтожен
)

// EnemyRef identifies one spawned enemy. Wave and Lane let the director
// discard notifications that belong to a wave it already left behind.
type EnemyRef struct {
	SpawnID uint64
	Wave    int
	Lane    int
}

// WaveInfo is the payload of WaveStarted, WaveCleared and SpawnSkipped.
type WaveInfo struct {
	Number  int
	Budget  float64
	Focus   string
	Pool    []string
	Planned int
}

// MapInfo is the payload of EnvironmentGenerated and ValidationFailed.
type MapInfo struct {
	Seed     int64
	Lanes    int
	Attempts int
	Valid    bool
}
