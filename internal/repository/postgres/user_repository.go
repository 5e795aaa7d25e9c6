package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/takeyours/takeyours-backend/internal/domain"
	"github.com/takeyours/takeyours-backend/internal/repository"
)

type userRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	user := &domain.User{
		Email:        email,
		PasswordHash: passwordHash,
		CurrentStep:  domain.StepIdentity,
		Status:       domain.StatusPending,
	}
	query := `
		INSERT INTO users (email, password_hash, current_step, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query, email, passwordHash, user.CurrentStep, user.Status).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, domain.ErrUserAlreadyExists
		}
		return nil, err
	}
	return user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE email = $1`
	err := r.db.GetContext(ctx, &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int) (*domain.User, error) {
	var user domain.User
	query := `SELECT * FROM users WHERE id = $1`
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	query := `UPDATE users SET password_hash = $1, updated_at = CURRENT_TIMESTAMP WHERE email = $2`
	result, err := r.db.ExecContext(ctx, query, passwordHash, email)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *userRepository) SaveIdentity(ctx context.Context, email string, sub *domain.IdentitySubmission) error {
	query := `
		UPDATE users SET
			national_id_number = $1,
			id_front_url = $2, id_front_public_id = $3,
			id_back_url = $4, id_back_public_id = $5,
			liveness_video_url = $6, liveness_public_id = $7,
			current_step = 'personal',
			updated_at = CURRENT_TIMESTAMP
		WHERE email = $8
	`
	result, err := r.db.ExecContext(ctx, query,
		sub.NationalIDNumber,
		sub.IDFront.URL, sub.IDFront.PublicID,
		sub.IDBack.URL, sub.IDBack.PublicID,
		sub.LivenessVideo.URL, sub.LivenessVideo.PublicID,
		email,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *userRepository) SavePersonal(ctx context.Context, email string, info *domain.PersonalInfo) error {
	var photoURL, photoID, videoURL, videoID *string
	if info.ProfilePhoto != nil {
		photoURL, photoID = &info.ProfilePhoto.URL, &info.ProfilePhoto.PublicID
	}
	if info.ProfileVideo != nil {
		videoURL, videoID = &info.ProfileVideo.URL, &info.ProfileVideo.PublicID
	}

	query := `
		UPDATE users SET
			full_name = $1, dob = $2, gender = $3, orientation = $4,
			country_of_birth = $5, country_of_residence = $6, county_of_residence = $7,
			willing_to_relocate = $8, languages = $9, preferred_language = $10,
			education = $11, occupation = $12, employment_type = $13,
			religion = $14, religious_importance = $15, political_views = $16,
			height = $17, weight = $18, skin_color = $19, body_type = $20,
			eye_color = $21, hair_color = $22, ethnicity = $23,
			diet = $24, smoking = $25, drinking = $26, exercise = $27,
			pets = $28, living_situation = $29, children = $30,
			profile_photo_url = COALESCE($31, profile_photo_url),
			profile_photo_public_id = COALESCE($32, profile_photo_public_id),
			profile_video_url = COALESCE($33, profile_video_url),
			profile_video_public_id = COALESCE($34, profile_video_public_id),
			current_step = 'preferences',
			updated_at = CURRENT_TIMESTAMP
		WHERE email = $35
	`
	result, err := r.db.ExecContext(ctx, query,
		info.FullName, info.DOB, info.Gender, info.Orientation,
		info.CountryOfBirth, info.CountryOfResidence, info.CountyOfResidence,
		info.WillingToRelocate, pq.Array(info.Languages), info.PreferredLanguage,
		info.Education, info.Occupation, info.EmploymentType,
		info.Religion, info.ReligiousImportance, info.PoliticalViews,
		info.Height, info.Weight, info.SkinColor, info.BodyType,
		info.EyeColor, info.HairColor, info.Ethnicity,
		info.Diet, info.Smoking, info.Drinking, info.Exercise,
		info.Pets, info.LivingSituation, info.Children,
		photoURL, photoID, videoURL, videoID,
		email,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *userRepository) SavePreferences(ctx context.Context, email string, prefs *domain.Preferences) error {
	query := `
		UPDATE users SET
			pref_gender = $1, pref_age_min = $2, pref_age_max = $3,
			pref_country_of_birth = $4, pref_country_of_residence = $5, pref_county_of_residence = $6,
			pref_country = $7, pref_languages = $8,
			pref_religion = $9, pref_religion_importance = $10,
			pref_height = $11, pref_weight = $12, pref_body_type = $13,
			pref_skin_color = $14, pref_ethnicity = $15, pref_diet = $16,
			pref_smoking = $17, pref_drinking = $18, pref_exercise = $19,
			pref_pets = $20, pref_children = $21, pref_living_situation = $22,
			pref_willing_to_relocate = $23, pref_relationship_type = $24,
			current_step = 'submission', is_complete = true,
			updated_at = CURRENT_TIMESTAMP
		WHERE email = $25
	`
	result, err := r.db.ExecContext(ctx, query,
		prefs.PrefGender, prefs.PrefAgeMin, prefs.PrefAgeMax,
		prefs.PrefCountryOfBirth, prefs.PrefCountryOfResidence, prefs.PrefCountyOfResidence,
		prefs.PrefCountry, pq.Array(prefs.PrefLanguages),
		prefs.PrefReligion, prefs.PrefReligionImportance,
		prefs.PrefHeight, prefs.PrefWeight, prefs.PrefBodyType,
		prefs.PrefSkinColor, prefs.PrefEthnicity, prefs.PrefDiet,
		prefs.PrefSmoking, prefs.PrefDrinking, prefs.PrefExercise,
		prefs.PrefPets, prefs.PrefChildren, prefs.PrefLivingSituation,
		prefs.PrefWillingToRelocate, prefs.PrefRelationshipType,
		email,
	)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *userRepository) ResetFull(ctx context.Context, email string) error {
	query := `
		UPDATE users SET
			national_id_number = NULL,
			id_front_url = NULL, id_front_public_id = NULL,
			id_back_url = NULL, id_back_public_id = NULL,
			liveness_video_url = NULL, liveness_public_id = NULL,
			full_name = NULL, dob = NULL, gender = NULL, orientation = NULL,
			country_of_birth = NULL, country_of_residence = NULL, county_of_residence = NULL,
			willing_to_relocate = NULL, languages = NULL, preferred_language = NULL,
			education = NULL, occupation = NULL, employment_type = NULL,
			religion = NULL, religious_importance = NULL, political_views = NULL,
			height = NULL, weight = NULL, skin_color = NULL, body_type = NULL,
			eye_color = NULL, hair_color = NULL, ethnicity = NULL,
			diet = NULL, smoking = NULL, drinking = NULL, exercise = NULL,
			pets = NULL, living_situation = NULL, children = NULL,
			profile_photo_url = NULL, profile_photo_public_id = NULL,
			profile_video_url = NULL, profile_video_public_id = NULL,
			pref_gender = NULL, pref_age_min = NULL, pref_age_max = NULL,
			pref_country_of_birth = NULL, pref_country_of_residence = NULL, pref_county_of_residence = NULL,
			pref_country = NULL, pref_languages = NULL,
			pref_religion = NULL, pref_religion_importance = NULL,
			pref_height = NULL, pref_weight = NULL, pref_body_type = NULL,
			pref_skin_color = NULL, pref_ethnicity = NULL, pref_diet = NULL,
			pref_smoking = NULL, pref_drinking = NULL, pref_exercise = NULL,
			pref_pets = NULL, pref_children = NULL, pref_living_situation = NULL,
			pref_willing_to_relocate = NULL, pref_relationship_type = NULL,
			admin_message = NULL,
			is_complete = false, current_step = 'identity', status = 'pending',
			updated_at = CURRENT_TIMESTAMP
		WHERE email = $1
	`
	result, err := r.db.ExecContext(ctx, query, email)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *userRepository) ResetIdentity(ctx context.Context, email string) error {
	query := `
		UPDATE users SET
			national_id_number = NULL,
			id_front_url = NULL, id_front_public_id = NULL,
			id_back_url = NULL, id_back_public_id = NULL,
			liveness_video_url = NULL, liveness_public_id = NULL,
			is_complete = false, current_step = 'identity', status = 'pending',
			updated_at = CURRENT_TIMESTAMP
		WHERE email = $1
	`
	result, err := r.db.ExecContext(ctx, query, email)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *userRepository) ResetPersonal(ctx context.Context, email string) error {
	query := `
		UPDATE users SET
			full_name = NULL, dob = NULL, gender = NULL, orientation = NULL,
			country_of_birth = NULL, country_of_residence = NULL, county_of_residence = NULL,
			willing_to_relocate = NULL, languages = NULL, preferred_language = NULL,
			education = NULL, occupation = NULL, employment_type = NULL,
			religion = NULL, religious_importance = NULL, political_views = NULL,
			height = NULL, weight = NULL, skin_color = NULL, body_type = NULL,
			eye_color = NULL, hair_color = NULL, ethnicity = NULL,
			diet = NULL, smoking = NULL, drinking = NULL, exercise = NULL,
			pets = NULL, living_situation = NULL, children = NULL,
			profile_photo_url = NULL, profile_photo_public_id = NULL,
			profile_video_url = NULL, profile_video_public_id = NULL,
			is_complete = false, current_step = 'personal', status = 'pending',
			updated_at = CURRENT_TIMESTAMP
		WHERE email = $1
	`
	result, err := r.db.ExecContext(ctx, query, email)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *userRepository) UpdateStatus(ctx context.Context, id int, status domain.Status, adminMessage *string) error {
	query := `
		UPDATE users SET
			status = $1,
			admin_message = $2,
			current_step = CASE WHEN $1 = 'approved' THEN 'dashboard' ELSE current_step END,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $3
	`
	result, err := r.db.ExecContext(ctx, query, status, adminMessage, id)
	if err != nil {
		return err
	}
	return requireRow(result)
}

func (r *userRepository) ListAll(ctx context.Context) ([]*domain.UserSummary, error) {
	var users []*domain.UserSummary
	query := `
		SELECT id, email, full_name, status, created_at
		FROM users
		ORDER BY created_at DESC
	`
	err := r.db.SelectContext(ctx, &users, query)
	return users, err
}

func (r *userRepository) ListCandidates(ctx context.Context, excludeUserID int) ([]*domain.User, error) {
	var users []*domain.User
	query := `
		SELECT * FROM users
		WHERE id != $1 AND is_complete = true AND status = 'approved'
		ORDER BY id
	`
	err := r.db.SelectContext(ctx, &users, query, excludeUserID)
	return users, err
}

func requireRow(result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
