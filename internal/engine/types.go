package engine

// GameID names a mini-game in the high score table.
type GameID string

const (
	GameRunner      GameID = "runner"
	GameMemoryMatch GameID = "memoryMatch"
)

// Games lists every game with a high score slot.
var Games = []GameID{GameRunner, GameMemoryMatch}

func (g GameID) IsValid() bool {
	switch g {
	case GameRunner, GameMemoryMatch:
		return true
	default:
		return false
	}
}

// ScorePolicy decides which of two scores is the better record.
type ScorePolicy int

const (
	// HigherIsBetter: runner distance score.
	HigherIsBetter ScorePolicy = iota
	// LowerIsBetter: match move count. A stored 0 means no record yet.
	LowerIsBetter
)

func (g GameID) Policy() ScorePolicy {
	if g == GameMemoryMatch {
		return LowerIsBetter
	}
	return HigherIsBetter
}

// Improves reports whether score should replace current. Ties never replace.
func (p ScorePolicy) Improves(current, score int) bool {
	switch p {
	case LowerIsBetter:
		if score <= 0 {
			return false
		}
		return current <= 0 || score < current
	default:
		return score > current
	}
}
