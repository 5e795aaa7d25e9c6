package domain

import "time"

// IdentitySubmission is the payload of the identity verification stage.
// All three assets are required for the stage to complete.
type IdentitySubmission struct {
	NationalIDNumber *string
	IDFront          MediaRef
	IDBack           MediaRef
	LivenessVideo    MediaRef
}

// PersonalInfo is the payload of the personal details stage. Every field is
// optional; media refs are nil when the user did not (re)upload that asset,
// in which case the stored one is kept.
type PersonalInfo struct {
	FullName            *string
	DOB                 *time.Time
	Gender              *string
	Orientation         *string
	CountryOfBirth      *string
	CountryOfResidence  *string
	CountyOfResidence   *string
	WillingToRelocate   *string
	Languages           []string
	PreferredLanguage   *string
	Education           *string
	Occupation          *string
	EmploymentType      *string
	Religion            *string
	ReligiousImportance *string
	PoliticalViews      *string
	Height              *int
	Weight              *int
	SkinColor           *string
	BodyType            *string
	EyeColor            *string
	HairColor           *string
	Ethnicity           *string
	Diet                *string
	Smoking             *string
	Drinking            *string
	Exercise            *string
	Pets                *string
	LivingSituation     *string
	Children            *string
	ProfilePhoto        *MediaRef
	ProfileVideo        *MediaRef
}

// Preferences is the payload of the match preferences stage.
type Preferences struct {
	PrefGender             *string
	PrefAgeMin             *int
	PrefAgeMax             *int
	PrefCountryOfBirth     *string
	PrefCountryOfResidence *string
	PrefCountyOfResidence  *string
	PrefCountry            *string
	PrefLanguages          []string
	PrefReligion           *string
	PrefReligionImportance *string
	PrefHeight             *int
	PrefWeight             *int
	PrefBodyType           *string
	PrefSkinColor          *string
	PrefEthnicity          *string
	PrefDiet               *string
	PrefSmoking            *string
	PrefDrinking           *string
	PrefExercise           *string
	PrefPets               *string
	PrefChildren           *string
	PrefLivingSituation    *string
	PrefWillingToRelocate  *string
	PrefRelationshipType   *string
}
