// README: Regulation regime resolution from project-type keys.
package regulation

// Regulation selects which of the two rate/rule regimes governs a trip.
type Regulation string

const (
	// StateDecree is Decreto 42/2025 (Junta de Extremadura). Default regime.
	StateDecree Regulation = "decreto_42_2025"
	// NationalStatute is R.D. 462/2002. Dinner allowance needs a receipt.
	NationalStatute Regulation = "rd_462_2002"
)

// Resolve maps a project-type key to its regime. Keys listed in the statute
// membership table resolve to NationalStatute; everything else, including
// unknown keys, falls back to StateDecree. Never fails.
func Resolve(projectType string, statuteTypes []string) Regulation {
	for _, k := range statuteTypes {
		if k == projectType {
			return NationalStatute
		}
	}
	return StateDecree
}
