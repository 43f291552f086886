// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// SocialNetwork is one of the keys allowed in a user's social links.
type SocialNetwork string

const (
	SocialFacebook SocialNetwork = "facebook"
	SocialTwitter  SocialNetwork = "twitter"
	SocialLinkedIn SocialNetwork = "linkedin"
	SocialGitHub   SocialNetwork = "github"
	SocialWebsite  SocialNetwork = "website"
)

// SocialNetworks lists every accepted social link key.
var SocialNetworks = []SocialNetwork{SocialFacebook, SocialTwitter, SocialLinkedIn, SocialGitHub, SocialWebsite}

// SocialLinks maps a social network to a profile URL.
type SocialLinks map[SocialNetwork]string

// User is the persisted account record. PasswordHash is only populated by
// lookups that explicitly need the credential (signin, password change).
type User struct {
	ID           uuid.UUID
	Firstname    string
	Lastname     string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	Bio          string
	Title        string
	Experience   *int
	SocialLinks  SocialLinks
	ProfileImage string

	EnrolledCourses []CourseSummary
	CreatedCourses  []CourseSummary
	Wishlist        []CourseSummary

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CourseSummary is the display projection of a course referenced by a user.
// Courses are owned by the course subsystem; this core only reads them.
type CourseSummary struct {
	ID        uuid.UUID
	Title     string
	Thumbnail string
	Progress  int
}
