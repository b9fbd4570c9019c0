package engine

// LevelXPThreshold is the flat XP span of every level.
const LevelXPThreshold = 1000

// LevelForXP maps total XP to a level: floor(xp/1000)+1. Negative XP is level 1.
func LevelForXP(totalXP int) int {
	if totalXP <= 0 {
		return 1
	}
	return totalXP/LevelXPThreshold + 1
}

// XPForLevel returns the total XP at which the given level starts.
func XPForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return (level - 1) * LevelXPThreshold
}

// LevelProgress returns XP earned into the current level and the span of the level.
func LevelProgress(totalXP int) (into int, span int) {
	lvl := LevelForXP(totalXP)
	into = totalXP - XPForLevel(lvl)
	if into < 0 {
		into = 0
	}
	return into, LevelXPThreshold
}

// XPToNextLevel returns how much XP is still needed for the next level.
func XPToNextLevel(totalXP int) int {
	next := XPForLevel(LevelForXP(totalXP) + 1)
	if totalXP < 0 {
		totalXP = 0
	}
	return next - totalXP
}
