package response

import (
	"time"

	"identity/internal/domain/entity"

	"github.com/google/uuid"
)

// UserView is the sanitized projection of a user. It has no credential field.
type UserView struct {
	ID           uuid.UUID          `json:"id"`
	Firstname    string             `json:"firstname"`
	Lastname     string             `json:"lastname"`
	Username     string             `json:"username"`
	Email        string             `json:"email"`
	Role         entity.Role        `json:"role"`
	ProfileImage string             `json:"profileImage,omitempty"`
	Bio          string             `json:"bio,omitempty"`
	Title        string             `json:"title,omitempty"`
	Experience   *int               `json:"experience,omitempty"`
	SocialLinks  entity.SocialLinks `json:"socialLinks,omitempty"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// ProfileView adds the resolved course relations to UserView.
type ProfileView struct {
	UserView

	EnrolledCourses []CourseView `json:"enrolledCourses"`
	CreatedCourses  []CourseView `json:"createdCourses"`
	Wishlist        []CourseView `json:"wishlist"`
}

// CourseView is a course summary as shown on a profile.
type CourseView struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Thumbnail string    `json:"thumbnail,omitempty"`
	Progress  int       `json:"progress"`
}

// NewUserView projects a user for signup, signin and profile updates.
func NewUserView(user *entity.User) *UserView {
	if user == nil {
		return nil
	}

	return &UserView{
		ID:           user.ID,
		Firstname:    user.Firstname,
		Lastname:     user.Lastname,
		Username:     user.Username,
		Email:        user.Email,
		Role:         user.Role,
		ProfileImage: user.ProfileImage,
		Bio:          user.Bio,
		Title:        user.Title,
		Experience:   user.Experience,
		SocialLinks:  user.SocialLinks,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

// NewProfileView projects a user together with its course relations.
func NewProfileView(user *entity.User) *ProfileView {
	if user == nil {
		return nil
	}

	return &ProfileView{
		UserView:        *NewUserView(user),
		EnrolledCourses: toCourseViews(user.EnrolledCourses),
		CreatedCourses:  toCourseViews(user.CreatedCourses),
		Wishlist:        toCourseViews(user.Wishlist),
	}
}

func toCourseViews(courses []entity.CourseSummary) []CourseView {
	views := make([]CourseView, 0, len(courses))
	for _, course := range courses {
		views = append(views, CourseView{
			ID:        course.ID,
			Title:     course.Title,
			Thumbnail: course.Thumbnail,
			Progress:  course.Progress,
		})
	}

	return views
}
