package domain

import (
	"context"
	"time"
)

// Skill proficiency levels
const (
	SkillLevelBeginner     = "BEGINNER"
	SkillLevelIntermediate = "INTERMEDIATE"
	SkillLevelAdvanced     = "ADVANCED"
	SkillLevelExpert       = "EXPERT"
)

type CandidateProfile struct {
	ID                int64     `json:"id"`
	UserID            string    `json:"user_id" validate:"required"`
	PhoneNumber       string    `json:"phone_number" validate:"required,max=20"`
	Location          string    `json:"location" validate:"required,max=100"`
	CurrentPosition   string    `json:"current_position" validate:"max=100"`
	YearsOfExperience int       `json:"years_of_experience" validate:"gte=0,lte=60"`
	Skills            []string  `json:"skills"` // free-form summary tags
	Education         string    `json:"education"`
	ResumeURL         string    `json:"resume_url" validate:"omitempty,url"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`

	// Nested collections, populated on detail reads
	SkillRecords []CandidateSkill      `json:"skill_records,omitempty"`
	Experiences  []CandidateExperience `json:"experiences,omitempty"`
}

type CandidateSkill struct {
	ID                int64  `json:"id"`
	ProfileID         int64  `json:"profile_id"`
	SkillName         string `json:"skill_name" validate:"required,max=100"`
	SkillLevel        string `json:"skill_level" validate:"required,oneof=BEGINNER INTERMEDIATE ADVANCED EXPERT"`
	YearsOfExperience int    `json:"years_of_experience" validate:"gte=0,lte=60"`
}

type CandidateExperience struct {
	ID          int64      `json:"id"`
	ProfileID   int64      `json:"profile_id"`
	CompanyName string     `json:"company_name" validate:"required,max=100"`
	Position    string     `json:"position" validate:"required,max=100"`
	StartDate   time.Time  `json:"start_date" validate:"required"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	CurrentJob  bool       `json:"current_job"`
	Description string     `json:"description"`
}

type CandidateRepository interface {
	GetByUserID(ctx context.Context, userID string) (*CandidateProfile, error)
	Fetch(ctx context.Context, limit, offset int) ([]CandidateProfile, int64, error)
	Create(ctx context.Context, profile *CandidateProfile) error
	Update(ctx context.Context, profile *CandidateProfile) error
	AddSkill(ctx context.Context, skill *CandidateSkill) error
	DeleteSkill(ctx context.Context, profileID, skillID int64) error
	AddExperience(ctx context.Context, exp *CandidateExperience) error
	DeleteExperience(ctx context.Context, profileID, expID int64) error
}

type CandidateUsecase interface {
	GetProfile(ctx context.Context, userID string) (*CandidateProfile, error)
	UpsertProfile(ctx context.Context, profile *CandidateProfile) error
	ListProfiles(ctx context.Context, page, pageSize int) ([]CandidateProfile, int64, error)
	AddSkill(ctx context.Context, skill *CandidateSkill) (*CandidateSkill, error)
	RemoveSkill(ctx context.Context, skillID int64) error
	AddExperience(ctx context.Context, exp *CandidateExperience) (*CandidateExperience, error)
	RemoveExperience(ctx context.Context, expID int64) error
}
