package models

import "time"

// Experience is one employment record. Order in User.Experience is the
// display order (most recent first, maintained by the admin surface).
type Experience struct {
	ID          string `bson:"id" json:"id"`
	Company     string `bson:"company" json:"company"`
	Position    string `bson:"position" json:"position"`
	StartDate   string `bson:"startDate" json:"startDate"`
	EndDate     string `bson:"endDate,omitempty" json:"endDate,omitempty"`
	Current     bool   `bson:"current" json:"current"`
	Description string `bson:"description" json:"description"`
}

type Education struct {
	ID          string  `bson:"id" json:"id"`
	Institution string  `bson:"institution" json:"institution"`
	Degree      string  `bson:"degree" json:"degree"`
	Field       string  `bson:"field" json:"field"`
	StartDate   string  `bson:"startDate" json:"startDate"`
	EndDate     string  `bson:"endDate,omitempty" json:"endDate,omitempty"`
	GPA         float64 `bson:"gpa,omitempty" json:"gpa,omitempty"`
	Description string  `bson:"description,omitempty" json:"description,omitempty"`
}

// User is one tenant of the platform. PortfolioDomain and AdminDomain each
// bind a host name to this user; at most one user may claim a given host
// across both fields (enforced at write time by the domains service).
type User struct {
	ID                string            `bson:"_id,omitempty" json:"id"`
	Username          string            `bson:"username" json:"username"`
	FullName          string            `bson:"fullName" json:"fullName"`
	Email             string            `bson:"email" json:"email"`
	Headline          string            `bson:"headline" json:"headline"`
	Bio               string            `bson:"bio" json:"bio"`
	ProfilePictureURL string            `bson:"profilePictureUrl" json:"profilePictureUrl"`
	PortfolioDomain   string            `bson:"portfolioDomain" json:"portfolioDomain"`
	AdminDomain       string            `bson:"adminDomain" json:"adminDomain"`
	SocialLinks       map[string]string `bson:"socialLinks,omitempty" json:"socialLinks,omitempty"`
	Skills            []string          `bson:"skills,omitempty" json:"skills,omitempty"`
	Experience        []Experience      `bson:"experience,omitempty" json:"experience,omitempty"`
	Education         []Education       `bson:"education,omitempty" json:"education,omitempty"`
	ProjectIDs        []string          `bson:"projectIds,omitempty" json:"projectIds,omitempty"`
	CreatedAt         time.Time         `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time         `bson:"updatedAt" json:"updatedAt"`
}
