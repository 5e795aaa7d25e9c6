package domain

import "time"

// MaxMatchScore is the number of attribute pairs the scorer counts.
const MaxMatchScore = 17

// MatchScore counts how many of the viewer's stored preferences the
// candidate satisfies. Each pair contributes exactly 0 or 1, so the result
// is always in [0, MaxMatchScore]. A pair with either side unset
// contributes 0: absence means "no preference / unknown", never a
// mismatch. Scalar pairs compare with exact, case-sensitive equality.
func MatchScore(candidate, viewer *User) int {
	return MatchScoreAt(candidate, viewer, time.Now())
}

// MatchScoreAt is MatchScore with an explicit clock for the age-range pair.
func MatchScoreAt(candidate, viewer *User, now time.Time) int {
	score := 0
	score += matchScalar(candidate.Gender, viewer.PrefGender)
	score += matchAgeRange(candidate, viewer.PrefAgeMin, viewer.PrefAgeMax, now)
	score += matchScalar(candidate.CountryOfBirth, viewer.PrefCountry)
	score += matchSets(candidate.Languages, viewer.PrefLanguages)
	score += matchScalar(candidate.Religion, viewer.PrefReligion)
	score += matchInt(candidate.Height, viewer.PrefHeight)
	score += matchScalar(candidate.BodyType, viewer.PrefBodyType)
	score += matchScalar(candidate.SkinColor, viewer.PrefSkinColor)
	score += matchScalar(candidate.Ethnicity, viewer.PrefEthnicity)
	score += matchScalar(candidate.Diet, viewer.PrefDiet)
	score += matchScalar(candidate.Smoking, viewer.PrefSmoking)
	score += matchScalar(candidate.Drinking, viewer.PrefDrinking)
	score += matchScalar(candidate.Exercise, viewer.PrefExercise)
	score += matchScalar(candidate.Pets, viewer.PrefPets)
	score += matchScalar(candidate.Children, viewer.PrefChildren)
	score += matchScalar(candidate.LivingSituation, viewer.PrefLivingSituation)
	score += matchScalar(candidate.WillingToRelocate, viewer.PrefWillingToRelocate)
	return score
}

func matchScalar(value, pref *string) int {
	if value == nil || pref == nil {
		return 0
	}
	if *value == *pref {
		return 1
	}
	return 0
}

func matchInt(value, pref *int) int {
	if value == nil || pref == nil {
		return 0
	}
	if *value == *pref {
		return 1
	}
	return 0
}

// matchSets contributes 1 iff the two sets share at least one element.
func matchSets(values, prefs []string) int {
	if len(values) == 0 || len(prefs) == 0 {
		return 0
	}
	seen := make(map[string]struct{}, len(prefs))
	for _, p := range prefs {
		seen[p] = struct{}{}
	}
	for _, v := range values {
		if _, ok := seen[v]; ok {
			return 1
		}
	}
	return 0
}

// matchAgeRange contributes 1 iff the candidate's age falls inside
// [min, max] inclusive. A missing date of birth or a missing bound on
// either end contributes 0.
func matchAgeRange(candidate *User, min, max *int, now time.Time) int {
	if candidate.DOB == nil || min == nil || max == nil {
		return 0
	}
	age := candidate.AgeAt(now)
	if age >= *min && age <= *max {
		return 1
	}
	return 0
}
