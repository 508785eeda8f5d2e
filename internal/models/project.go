package models

import "time"

// Project is owned by exactly one user. Author fields are denormalized at
// creation time so portfolio pages render without a join. CreatedAt is
// assigned by the repository at insert, never taken from the client.
type Project struct {
	ID             string    `bson:"_id,omitempty" json:"id"`
	Title          string    `bson:"title" json:"title"`
	Description    string    `bson:"description" json:"description"`
	CoverImageURL  string    `bson:"coverImageUrl,omitempty" json:"coverImageUrl,omitempty"`
	LiveURL        string    `bson:"liveUrl,omitempty" json:"liveUrl,omitempty"`
	SourceCodeURL  string    `bson:"sourceCodeUrl,omitempty" json:"sourceCodeUrl,omitempty"`
	Technologies   []string  `bson:"technologies" json:"technologies"`
	AuthorID       string    `bson:"authorId" json:"authorId"`
	AuthorUsername string    `bson:"authorUsername" json:"authorUsername"`
	AuthorAvatar   string    `bson:"authorAvatar,omitempty" json:"authorAvatar,omitempty"`
	CreatedAt      time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt      time.Time `bson:"updatedAt" json:"updatedAt"`
}
