package gamedata

// EnemyDef defines an enemy name entry loaded from JSON.
// Combat numbers are not stored here; they scale with the stage at spawn time.
type EnemyDef struct {
	ID          string `json:"id"`          // Unique identifier (e.g., "gloomrat")
	Name        string `json:"name"`        // Display name (e.g., "Gloomrat")
	Boss        bool   `json:"boss"`        // Drawn only for boss encounters
	SpawnWeight int    `json:"spawnWeight"` // Relative spawn frequency (higher = more common)
}

// EnemiesFile represents the structure of enemies.json.
type EnemiesFile struct {
	Enemies []EnemyDef `json:"enemies"`
}

// LoadEnemies loads enemy definitions from the embedded enemies.json file.
func LoadEnemies() ([]EnemyDef, error) {
	file, err := Load[EnemiesFile]("enemies.json")
	if err != nil {
		return nil, err
	}
	return file.Enemies, nil
}
