package domain

import (
	"time"

	"github.com/lib/pq"
)

type User struct {
	ID           int       `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CurrentStep  Step      `json:"current_step" db:"current_step"`
	Status       Status    `json:"status" db:"status"`
	IsComplete   bool      `json:"is_complete" db:"is_complete"`
	AdminMessage *string   `json:"admin_message" db:"admin_message"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`

	// Identity stage
	NationalIDNumber *string `json:"national_id_number,omitempty" db:"national_id_number"`
	IDFrontURL       *string `json:"id_front_url" db:"id_front_url"`
	IDFrontPublicID  *string `json:"-" db:"id_front_public_id"`
	IDBackURL        *string `json:"id_back_url" db:"id_back_url"`
	IDBackPublicID   *string `json:"-" db:"id_back_public_id"`
	LivenessVideoURL *string `json:"liveness_video_url" db:"liveness_video_url"`
	LivenessPublicID *string `json:"-" db:"liveness_public_id"`

	// Personal stage
	FullName             *string    `json:"full_name" db:"full_name"`
	DOB                  *time.Time `json:"dob" db:"dob"`
	Gender               *string    `json:"gender" db:"gender"`
	Orientation          *string    `json:"orientation" db:"orientation"`
	CountryOfBirth       *string    `json:"country_of_birth" db:"country_of_birth"`
	CountryOfResidence   *string    `json:"country_of_residence" db:"country_of_residence"`
	CountyOfResidence    *string    `json:"county_of_residence" db:"county_of_residence"`
	WillingToRelocate    *string    `json:"willing_to_relocate" db:"willing_to_relocate"`
	Languages            pq.StringArray `json:"languages" db:"languages"`
	PreferredLanguage    *string    `json:"preferred_language" db:"preferred_language"`
	Education            *string    `json:"education" db:"education"`
	Occupation           *string    `json:"occupation" db:"occupation"`
	EmploymentType       *string    `json:"employment_type" db:"employment_type"`
	Religion             *string    `json:"religion" db:"religion"`
	ReligiousImportance  *string    `json:"religious_importance" db:"religious_importance"`
	PoliticalViews       *string    `json:"political_views" db:"political_views"`
	Height               *int       `json:"height" db:"height"`
	Weight               *int       `json:"weight" db:"weight"`
	SkinColor            *string    `json:"skin_color" db:"skin_color"`
	BodyType             *string    `json:"body_type" db:"body_type"`
	EyeColor             *string    `json:"eye_color" db:"eye_color"`
	HairColor            *string    `json:"hair_color" db:"hair_color"`
	Ethnicity            *string    `json:"ethnicity" db:"ethnicity"`
	Diet                 *string    `json:"diet" db:"diet"`
	Smoking              *string    `json:"smoking" db:"smoking"`
	Drinking             *string    `json:"drinking" db:"drinking"`
	Exercise             *string    `json:"exercise" db:"exercise"`
	Pets                 *string    `json:"pets" db:"pets"`
	LivingSituation      *string    `json:"living_situation" db:"living_situation"`
	Children             *string    `json:"children" db:"children"`
	ProfilePhotoURL      *string    `json:"profile_photo_url" db:"profile_photo_url"`
	ProfilePhotoPublicID *string    `json:"-" db:"profile_photo_public_id"`
	ProfileVideoURL      *string    `json:"profile_video_url" db:"profile_video_url"`
	ProfileVideoPublicID *string    `json:"-" db:"profile_video_public_id"`

	// Preferences stage
	PrefGender             *string  `json:"pref_gender" db:"pref_gender"`
	PrefAgeMin             *int     `json:"pref_age_min" db:"pref_age_min"`
	PrefAgeMax             *int     `json:"pref_age_max" db:"pref_age_max"`
	PrefCountryOfBirth     *string  `json:"pref_country_of_birth" db:"pref_country_of_birth"`
	PrefCountryOfResidence *string  `json:"pref_country_of_residence" db:"pref_country_of_residence"`
	PrefCountyOfResidence  *string  `json:"pref_county_of_residence" db:"pref_county_of_residence"`
	PrefCountry            *string  `json:"pref_country" db:"pref_country"`
	PrefLanguages          pq.StringArray `json:"pref_languages" db:"pref_languages"`
	PrefReligion           *string  `json:"pref_religion" db:"pref_religion"`
	PrefReligionImportance *string  `json:"pref_religion_importance" db:"pref_religion_importance"`
	PrefHeight             *int     `json:"pref_height" db:"pref_height"`
	PrefWeight             *int     `json:"pref_weight" db:"pref_weight"`
	PrefBodyType           *string  `json:"pref_body_type" db:"pref_body_type"`
	PrefSkinColor          *string  `json:"pref_skin_color" db:"pref_skin_color"`
	PrefEthnicity          *string  `json:"pref_ethnicity" db:"pref_ethnicity"`
	PrefDiet               *string  `json:"pref_diet" db:"pref_diet"`
	PrefSmoking            *string  `json:"pref_smoking" db:"pref_smoking"`
	PrefDrinking           *string  `json:"pref_drinking" db:"pref_drinking"`
	PrefExercise           *string  `json:"pref_exercise" db:"pref_exercise"`
	PrefPets               *string  `json:"pref_pets" db:"pref_pets"`
	PrefChildren           *string  `json:"pref_children" db:"pref_children"`
	PrefLivingSituation    *string  `json:"pref_living_situation" db:"pref_living_situation"`
	PrefWillingToRelocate  *string  `json:"pref_willing_to_relocate" db:"pref_willing_to_relocate"`
	PrefRelationshipType   *string  `json:"pref_relationship_type" db:"pref_relationship_type"`
}

// AgeAt returns the user's age in full years at the given instant, or -1
// when the date of birth is not set.
func (u *User) AgeAt(now time.Time) int {
	if u.DOB == nil {
		return -1
	}
	years := now.Year() - u.DOB.Year()
	anniversary := u.DOB.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}

func (u *User) Age() int {
	return u.AgeAt(time.Now())
}

// MediaRef pairs a hosted URL with the provider asset id needed to delete it.
type MediaRef struct {
	URL      string
	PublicID string
}

// UserSummary is the admin list projection.
type UserSummary struct {
	ID        int       `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	FullName  *string   `json:"full_name" db:"full_name"`
	Status    Status    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
