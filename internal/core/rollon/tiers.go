package rollon

// Tier is one graduated difficulty with the codes for passing or missing it.
type Tier struct {
	Difficulty  int
	SuccessCode string
	FailureCode string
}

// EvaluateTiers judges quality against every tier and combines the results.
func EvaluateTiers(quality Quality, tiers ...Tier) (*ExtendedRollOnSuccess, error) {
	if len(tiers) == 0 {
		return nil, ErrMissingResults
	}
	rolls := make([]RollOnSuccess, 0, len(tiers))
	for _, tier := range tiers {
		rolls = append(rolls, NewSimpleRollOnSuccess(tier.Difficulty, quality, tier.SuccessCode, tier.FailureCode))
	}
	return NewExtended(rolls[0], rolls[1:]...)
}
