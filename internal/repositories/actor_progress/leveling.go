package actorprogress

import "fmt"

// levelState is the part of progress that xp touches
type levelState struct {
	Level         int
	XP            int
	XPToNextLevel int
	Skill         int
	Stamina       int
	Health        int
}

// applyXP adds xp and levels up as many times as it covers. Leftover xp
// carries into the next level. Each level up raises skill and stamina and
// refills health to the new stamina.
func applyXP(state levelState, amount int) (levelState, []string) {
	if state.Level < 1 {
		state.Level = 1
	}
	if state.XPToNextLevel <= 0 {
		state.XPToNextLevel = XPPerLevel * state.Level
	}

	state.XP += amount

	var messages []string
	for state.XP >= state.XPToNextLevel {
		state.XP -= state.XPToNextLevel
		state.Level++
		state.Skill += SkillPerLevel
		state.Stamina += StaminaPerLevel
		state.Health = state.Stamina
		state.XPToNextLevel = XPPerLevel * state.Level

		messages = append(messages, fmt.Sprintf(
			"Level up! You are now level %d. Skill +%d, stamina +%d, health restored.",
			state.Level, SkillPerLevel, StaminaPerLevel,
		))
	}

	return state, messages
}
