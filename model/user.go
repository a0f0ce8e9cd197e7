package model

type User struct {
	DTO
	Name     string `gorm:"not null" json:"name"`
	Email    string `gorm:"uniqueIndex;not null" json:"email"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"not null;default:'customer'" json:"role"`
}

type Users []User

type RegisterUserInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty,oneof=admin organizer customer entry_manager support"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type OrganizerProfile struct {
	DTO
	UserId            uint   `gorm:"uniqueIndex;not null" json:"userId"`
	CompanyName       string `json:"companyName"`
	Bio               string `gorm:"type:text" json:"bio"`
	YearsOfExperience int    `json:"yearsOfExperience"`
	Specialization    string `json:"specialization"`
	IsVerified        bool   `gorm:"default:false" json:"isVerified"`
	User              User   `gorm:"foreignKey:UserId" json:"-"`
}

type UpdateProfileInput struct {
	CompanyName       string `json:"companyName" validate:"required"`
	Bio               string `json:"bio"`
	YearsOfExperience int    `json:"yearsOfExperience" validate:"gte=0"`
	Specialization    string `json:"specialization"`
}
