package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/takeyours/takeyours-backend/internal/domain"
	"github.com/takeyours/takeyours-backend/internal/usecase/onboarding"
)

type OnboardingHandler struct {
	onboardingUseCase *onboarding.OnboardingUseCase
}

func NewOnboardingHandler(onboardingUseCase *onboarding.OnboardingUseCase) *OnboardingHandler {
	return &OnboardingHandler{
		onboardingUseCase: onboardingUseCase,
	}
}

// PersonalRequest is the multipart form of the personal stage. The photo
// and video parts are read separately.
type PersonalRequest struct {
	FullName            *string  `form:"full_name"`
	DOB                 *string  `form:"dob"`
	Gender              *string  `form:"gender"`
	Orientation         *string  `form:"orientation"`
	CountryOfBirth      *string  `form:"country_of_birth"`
	CountryOfResidence  *string  `form:"country_of_residence"`
	CountyOfResidence   *string  `form:"county_of_residence"`
	WillingToRelocate   *string  `form:"willing_to_relocate"`
	Languages           []string `form:"languages"`
	PreferredLanguage   *string  `form:"preferred_language"`
	Education           *string  `form:"education"`
	Occupation          *string  `form:"occupation"`
	EmploymentType      *string  `form:"employment_type"`
	Religion            *string  `form:"religion"`
	ReligiousImportance *string  `form:"religious_importance"`
	PoliticalViews      *string  `form:"political_views"`
	Height              *int     `form:"height"`
	Weight              *int     `form:"weight"`
	SkinColor           *string  `form:"skin_color"`
	BodyType            *string  `form:"body_type"`
	EyeColor            *string  `form:"eye_color"`
	HairColor           *string  `form:"hair_color"`
	Ethnicity           *string  `form:"ethnicity"`
	Diet                *string  `form:"diet"`
	Smoking             *string  `form:"smoking"`
	Drinking            *string  `form:"drinking"`
	Exercise            *string  `form:"exercise"`
	Pets                *string  `form:"pets"`
	LivingSituation     *string  `form:"living_situation"`
	Children            *string  `form:"children"`
}

// PreferencesRequest is the JSON body of the preferences stage.
type PreferencesRequest struct {
	PrefGender             *string  `json:"pref_gender"`
	PrefAgeMin             *int     `json:"pref_age_min"`
	PrefAgeMax             *int     `json:"pref_age_max"`
	PrefCountryOfBirth     *string  `json:"pref_country_of_birth"`
	PrefCountryOfResidence *string  `json:"pref_country_of_residence"`
	PrefCountyOfResidence  *string  `json:"pref_county_of_residence"`
	PrefCountry            *string  `json:"pref_country"`
	PrefLanguages          []string `json:"pref_languages"`
	PrefReligion           *string  `json:"pref_religion"`
	PrefReligionImportance *string  `json:"pref_religion_importance"`
	PrefHeight             *int     `json:"pref_height"`
	PrefWeight             *int     `json:"pref_weight"`
	PrefBodyType           *string  `json:"pref_body_type"`
	PrefSkinColor          *string  `json:"pref_skin_color"`
	PrefEthnicity          *string  `json:"pref_ethnicity"`
	PrefDiet               *string  `json:"pref_diet"`
	PrefSmoking            *string  `json:"pref_smoking"`
	PrefDrinking           *string  `json:"pref_drinking"`
	PrefExercise           *string  `json:"pref_exercise"`
	PrefPets               *string  `json:"pref_pets"`
	PrefChildren           *string  `json:"pref_children"`
	PrefLivingSituation    *string  `json:"pref_living_situation"`
	PrefWillingToRelocate  *string  `json:"pref_willing_to_relocate"`
	PrefRelationshipType   *string  `json:"pref_relationship_type"`
}

// Progress tells the client which page to show.
func (h *OnboardingHandler) Progress(c *gin.Context) {
	email, ok := currentEmail(c)
	if !ok {
		return
	}
	progress, err := h.onboardingUseCase.Progress(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, progress)
}

// Status returns just the moderation state and message.
func (h *OnboardingHandler) Status(c *gin.Context) {
	email, ok := currentEmail(c)
	if !ok {
		return
	}
	progress, err := h.onboardingUseCase.Progress(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":       progress.Status,
		"adminMessage": progress.AdminMessage,
	})
}

// ProfilePhoto returns the caller's own photo URL for the navbar avatar.
func (h *OnboardingHandler) ProfilePhoto(c *gin.Context) {
	email, ok := currentEmail(c)
	if !ok {
		return
	}
	url, err := h.onboardingUseCase.ProfilePhoto(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile_photo_url": url})
}

// UploadIdentity takes the identity documents as a multipart form with
// parts idFront, idBack and video.
func (h *OnboardingHandler) UploadIdentity(c *gin.Context) {
	email, ok := currentEmail(c)
	if !ok {
		return
	}

	front, frontClose, ok := openFormFile(c, "idFront", true)
	if !ok {
		return
	}
	defer frontClose()
	back, backClose, ok := openFormFile(c, "idBack", true)
	if !ok {
		return
	}
	defer backClose()
	video, videoClose, ok := openFormFile(c, "video", true)
	if !ok {
		return
	}
	defer videoClose()

	var nationalID *string
	if v := c.PostForm("national_id_number"); v != "" {
		nationalID = &v
	}

	err := h.onboardingUseCase.SaveIdentity(c.Request.Context(), email, &onboarding.IdentityUpload{
		NationalIDNumber: nationalID,
		IDFront:          front,
		IDBack:           back,
		LivenessVideo:    video,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "identity submitted"})
}

// SavePersonal takes the personal details plus optional photo and video
// parts.
func (h *OnboardingHandler) SavePersonal(c *gin.Context) {
	email, ok := currentEmail(c)
	if !ok {
		return
	}

	var req PersonalRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid form data"})
		return
	}

	info, err := req.toDomain()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid date of birth"})
		return
	}

	photo, photoClose, ok := openFormFile(c, "photo", false)
	if !ok {
		return
	}
	if photoClose != nil {
		defer photoClose()
	}
	video, videoClose, ok := openFormFile(c, "video", false)
	if !ok {
		return
	}
	if videoClose != nil {
		defer videoClose()
	}

	err = h.onboardingUseCase.SavePersonal(c.Request.Context(), email, &onboarding.PersonalUpload{
		Info:         *info,
		ProfilePhoto: photo,
		ProfileVideo: video,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "personal info saved"})
}

// SavePreferences stores the final stage and completes the profile.
func (h *OnboardingHandler) SavePreferences(c *gin.Context) {
	email, ok := currentEmail(c)
	if !ok {
		return
	}

	var req PreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	err := h.onboardingUseCase.SavePreferences(c.Request.Context(), email, req.toDomain())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "preferences saved"})
}

func (h *OnboardingHandler) ResetFull(c *gin.Context) {
	h.reset(c, domain.ResetFull)
}

func (h *OnboardingHandler) ResetIdentity(c *gin.Context) {
	h.reset(c, domain.ResetIdentity)
}

func (h *OnboardingHandler) ResetPersonal(c *gin.Context) {
	h.reset(c, domain.ResetPersonal)
}

func (h *OnboardingHandler) reset(c *gin.Context, scope domain.ResetScope) {
	email, ok := currentEmail(c)
	if !ok {
		return
	}
	if err := h.onboardingUseCase.Reset(c.Request.Context(), email, scope); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: "submission reset"})
}

func (req *PersonalRequest) toDomain() (*domain.PersonalInfo, error) {
	info := &domain.PersonalInfo{
		FullName:            req.FullName,
		Gender:              req.Gender,
		Orientation:         req.Orientation,
		CountryOfBirth:      req.CountryOfBirth,
		CountryOfResidence:  req.CountryOfResidence,
		CountyOfResidence:   req.CountyOfResidence,
		WillingToRelocate:   req.WillingToRelocate,
		Languages:           req.Languages,
		PreferredLanguage:   req.PreferredLanguage,
		Education:           req.Education,
		Occupation:          req.Occupation,
		EmploymentType:      req.EmploymentType,
		Religion:            req.Religion,
		ReligiousImportance: req.ReligiousImportance,
		PoliticalViews:      req.PoliticalViews,
		Height:              req.Height,
		Weight:              req.Weight,
		SkinColor:           req.SkinColor,
		BodyType:            req.BodyType,
		EyeColor:            req.EyeColor,
		HairColor:           req.HairColor,
		Ethnicity:           req.Ethnicity,
		Diet:                req.Diet,
		Smoking:             req.Smoking,
		Drinking:            req.Drinking,
		Exercise:            req.Exercise,
		Pets:                req.Pets,
		LivingSituation:     req.LivingSituation,
		Children:            req.Children,
	}
	if req.DOB != nil && *req.DOB != "" {
		dob, err := time.Parse("2006-01-02", *req.DOB)
		if err != nil {
			return nil, err
		}
		info.DOB = &dob
	}
	return info, nil
}

func (req *PreferencesRequest) toDomain() *domain.Preferences {
	return &domain.Preferences{
		PrefGender:             req.PrefGender,
		PrefAgeMin:             req.PrefAgeMin,
		PrefAgeMax:             req.PrefAgeMax,
		PrefCountryOfBirth:     req.PrefCountryOfBirth,
		PrefCountryOfResidence: req.PrefCountryOfResidence,
		PrefCountyOfResidence:  req.PrefCountyOfResidence,
		PrefCountry:            req.PrefCountry,
		PrefLanguages:          req.PrefLanguages,
		PrefReligion:           req.PrefReligion,
		PrefReligionImportance: req.PrefReligionImportance,
		PrefHeight:             req.PrefHeight,
		PrefWeight:             req.PrefWeight,
		PrefBodyType:           req.PrefBodyType,
		PrefSkinColor:          req.PrefSkinColor,
		PrefEthnicity:          req.PrefEthnicity,
		PrefDiet:               req.PrefDiet,
		PrefSmoking:            req.PrefSmoking,
		PrefDrinking:           req.PrefDrinking,
		PrefExercise:           req.PrefExercise,
		PrefPets:               req.PrefPets,
		PrefChildren:           req.PrefChildren,
		PrefLivingSituation:    req.PrefLivingSituation,
		PrefWillingToRelocate:  req.PrefWillingToRelocate,
		PrefRelationshipType:   req.PrefRelationshipType,
	}
}

// openFormFile opens one multipart part. A missing optional part returns a
// nil reader; a missing required part writes a 400 and reports failure.
func openFormFile(c *gin.Context, name string, required bool) (io.Reader, func(), bool) {
	header, err := c.FormFile(name)
	if err != nil {
		if !required {
			return nil, nil, true
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: name + " file is required"})
		return nil, nil, false
	}
	file, err := header.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "failed to read " + name + " file"})
		return nil, nil, false
	}
	return file, closeFile(file), true
}

func closeFile(f multipart.File) func() {
	return func() { _ = f.Close() }
}
