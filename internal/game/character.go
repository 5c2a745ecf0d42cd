package game

// StatNames lists the primary character stats in display order.
var StatNames = []string{"STR", "INT", "DEX", "CON", "CHA", "WIS"}

// Attribute keys used by character sheets.
const (
	AttrAge           = "age"
	AttrLevel         = "level"
	AttrHitPoints     = "hit_points"
	AttrManaPoints    = "mana_points"
	AttrMovePoints    = "move_points"
	AttrMaxHitPoints  = "max_hit_points"
	AttrMaxManaPoints = "max_mana_points"
	AttrMaxMovePoints = "max_move_points"
	AttrAttackPower   = "attack_power"
	AttrHitRegenRate  = "hit_regen_rate"
	AttrManaRegenRate = "mana_regen_rate"
	AttrMoveRegenRate = "move_regen_rate"
	AttrRace          = "race"
	AttrClasses       = "classes"
	AttrStats         = "stats"
	AttrPrompt        = "prompt"
	AttrPromptEnabled = "prompt_enabled"
	AttrAttackable    = "attackable"
	AttrCanAttack     = "can_attack"
	AttrExamined      = "examined"
)

func characterDefaults() map[string]any {
	stats := make(map[string]int, len(StatNames))
	for _, name := range StatNames {
		stats[name] = 0
	}
	return map[string]any{
		GenderAttribute:   string(GenderAmbiguous),
		AttrAge:           5,
		AttrLevel:         1,
		AttrHitPoints:     0,
		AttrManaPoints:    0,
		AttrMovePoints:    0,
		AttrMaxHitPoints:  100,
		AttrMaxManaPoints: 100,
		AttrMaxMovePoints: 100,
		AttrAttackPower:   1,
		AttrHitRegenRate:  5,
		AttrManaRegenRate: 5,
		AttrMoveRegenRate: 5,
		AttrRace:          "human",
		AttrClasses:       []string{},
		AttrStats:         stats,
		AttrPromptEnabled: true,
		AttrAttackable:    true,
		AttrCanAttack:     true,
	}
}

// InitCharacter fills in every character attribute that is not already set.
// It returns the number of attributes written.
func InitCharacter(attrs *Attributes) int {
	if attrs == nil {
		return 0
	}
	written := 0
	for key, value := range characterDefaults() {
		if attrs.SetDefault(key, value) {
			written++
		}
	}
	return written
}

// Vitals returns hit, mana and move points. ok is false when any of them is
// missing, which marks an entity that cannot be diagnosed.
func Vitals(attrs *Attributes) (hp, mana, move int, ok bool) {
	hp, okHP := attrs.Int(AttrHitPoints)
	mana, okMana := attrs.Int(AttrManaPoints)
	move, okMove := attrs.Int(AttrMovePoints)
	return hp, mana, move, okHP && okMana && okMove
}

// Abilities derives strength, agility and magic from the stats block.
func Abilities(attrs *Attributes) (str, agi, mag int) {
	stats, ok := attrs.IntMap(AttrStats)
	if !ok {
		return 0, 0, 0
	}
	return stats["STR"], stats["DEX"], stats["INT"]
}
