package config

// Difficulty levels map directly to search depth: level 1 (novice) searches
// 1 ply, level 5 (master) searches 5. Depth clamping happens here; the
// engine assumes it receives an in-range depth.
const (
	LevelMin     = 1
	LevelMax     = 5
	LevelDefault = 1
)

// levelElo gives the approximate playing strength per level, for display.
var levelElo = map[int]int{
	1: 800,
	2: 1100,
	3: 1400,
	4: 1700,
	5: 2000,
}

// ClampLevel limits a level to the allowed range.
func ClampLevel(level int) int {
	if level < LevelMin {
		return LevelMin
	}
	if level > LevelMax {
		return LevelMax
	}
	return level
}

// DepthForLevel returns the search depth for a difficulty level.
func DepthForLevel(level int) int {
	return ClampLevel(level)
}

// EloForLevel returns the approximate ELO rating for a difficulty level.
func EloForLevel(level int) int {
	if elo, ok := levelElo[ClampLevel(level)]; ok {
		return elo
	}
	return levelElo[LevelDefault]
}
