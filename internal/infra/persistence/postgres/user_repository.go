// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/errors"
	"identity/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const colPasswordHash = "password_hash"

// userRepository implements repository.UserRepository using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (repo *userRepository) FindByIdentifier(ctx context.Context, username, email string) (*entity.User, error) {
	if username == "" && email == "" {
		return nil, repository.ErrUserNotFound
	}

	query := repo.db.WithContext(ctx).Model(&model.UserModel{})
	switch {
	case username != "" && email != "":
		// A username match wins when two different rows match.
		query = query.Where("username = ? OR email = ?", username, email).
			Order(clause.OrderBy{Expression: clause.Expr{SQL: "username = ? DESC", Vars: []any{username}, WithoutParentheses: true}})
	case username != "":
		query = query.Where("username = ?", username)
	default:
		query = query.Where("email = ?", email)
	}

	var userM model.UserModel
	if err := query.First(&userM).Error; err != nil {
		return nil, repo.notFoundOr(err, "failed to find user by identifier")
	}

	return toUserDomain(&userM), nil
}

func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Omit(colPasswordHash).
		Where("id = ?", id).
		First(&userM).Error
	if err != nil {
		return nil, repo.notFoundOr(err, "failed to find user by id")
	}

	return toUserDomain(&userM), nil
}

func (repo *userRepository) FindProfileByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Omit(colPasswordHash).
		Preload("EnrolledCourses").
		Preload("CreatedCourses").
		Preload("Wishlist").
		Where("id = ?", id).
		First(&userM).Error
	if err != nil {
		return nil, repo.notFoundOr(err, "failed to find user profile")
	}

	return toUserDomain(&userM), nil
}

func (repo *userRepository) FindCredentialByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var userM model.UserModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&userM).Error; err != nil {
		return nil, repo.notFoundOr(err, "failed to find user credential")
	}

	return toUserDomain(&userM), nil
}

func (repo *userRepository) LockByID(ctx context.Context, id uuid.UUID) error {
	var userM model.UserModel
	err := repo.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}).
		Select("id").
		Where("id = ?", id).
		First(&userM).Error
	if err != nil {
		return repo.notFoundOr(err, "failed to lock user")
	}

	return nil
}

// Create inserts the user. Collisions on username or email surface as the
// matching domain error; username is reported when both collide.
func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	userM := fromUserDomain(user)

	if err := repo.db.WithContext(ctx).Omit(clause.Associations).Create(userM).Error; err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			return repo.classifyConflict(ctx, user, constraint)
		}
		if isCheckViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "user violates a check constraint")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	user.CreatedAt = userM.CreatedAt
	user.UpdatedAt = userM.UpdatedAt

	return nil
}

func (repo *userRepository) classifyConflict(ctx context.Context, user *entity.User, constraint string) error {
	var count int64
	err := repo.db.WithContext(ctx).Model(&model.UserModel{}).
		Where("username = ?", user.Username).
		Count(&count).Error
	if err == nil {
		if count > 0 {
			return domainerrors.ErrUsernameTaken
		}

		return domainerrors.ErrEmailTaken
	}

	// The lookup fails inside an aborted transaction; fall back to the constraint name.
	if constraint == emailUniqueConstraint {
		return domainerrors.ErrEmailTaken
	}

	return domainerrors.ErrUsernameTaken
}

func (repo *userRepository) UpdateProfile(ctx context.Context, id uuid.UUID, update repository.ProfileUpdate) error {
	if update.IsEmpty() {
		return nil
	}

	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Updates(profileColumns(update))
	if result.Error != nil {
		if isCheckViolation(result.Error) {
			return domainerrors.NewDatabaseExecuteError(result.Error, "profile violates a check constraint")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update profile")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

func (repo *userRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.UserModel{}).
		Where("id = ?", id).
		Update(colPasswordHash, hash)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update password")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}

func (repo *userRepository) notFoundOr(err error, msg string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrUserNotFound
	}

	return errors.Wrap(err, msg)
}

// profileColumns maps a sparse update onto column names. Map updates write
// zero values, which is how optional fields are cleared.
func profileColumns(update repository.ProfileUpdate) map[string]any {
	cols := make(map[string]any)
	if update.Firstname != nil {
		cols["firstname"] = *update.Firstname
	}
	if update.Lastname != nil {
		cols["lastname"] = *update.Lastname
	}
	if update.Bio != nil {
		cols["bio"] = *update.Bio
	}
	if update.Title != nil {
		cols["title"] = *update.Title
	}
	if update.Experience != nil {
		cols["experience"] = *update.Experience
	}
	if update.SocialLinks != nil {
		cols["social_links"] = datatypes.NewJSONType(fromSocialLinks(*update.SocialLinks))
	}
	if update.ProfileImage != nil {
		cols["profile_image"] = *update.ProfileImage
	}

	return cols
}

// --- Mapper Functions ---

func toUserDomain(data *model.UserModel) *entity.User {
	if data == nil {
		return nil
	}

	return &entity.User{
		ID:              data.ID,
		Firstname:       data.Firstname,
		Lastname:        data.Lastname,
		Username:        data.Username,
		Email:           data.Email,
		PasswordHash:    data.PasswordHash,
		Role:            entity.Role(data.Role),
		Bio:             data.Bio,
		Title:           data.Title,
		Experience:      data.Experience,
		SocialLinks:     toSocialLinks(data.SocialLinks.Data()),
		ProfileImage:    data.ProfileImage,
		EnrolledCourses: toCourseSummaries(data.EnrolledCourses),
		CreatedCourses:  toCourseSummaries(data.CreatedCourses),
		Wishlist:        toCourseSummaries(data.Wishlist),
		CreatedAt:       data.CreatedAt,
		UpdatedAt:       data.UpdatedAt,
	}
}

func fromUserDomain(data *entity.User) *model.UserModel {
	if data == nil {
		return nil
	}

	return &model.UserModel{
		ID:           data.ID,
		Firstname:    data.Firstname,
		Lastname:     data.Lastname,
		Username:     data.Username,
		Email:        data.Email,
		PasswordHash: data.PasswordHash,
		Role:         data.Role.String(),
		Bio:          data.Bio,
		Title:        data.Title,
		Experience:   data.Experience,
		SocialLinks:  datatypes.NewJSONType(fromSocialLinks(data.SocialLinks)),
		ProfileImage: data.ProfileImage,
	}
}

func toSocialLinks(raw map[string]string) entity.SocialLinks {
	links := make(entity.SocialLinks, len(raw))
	for k, v := range raw {
		links[entity.SocialNetwork(k)] = v
	}

	return links
}

func fromSocialLinks(links entity.SocialLinks) map[string]string {
	raw := make(map[string]string, len(links))
	for k, v := range links {
		raw[string(k)] = v
	}

	return raw
}

func toCourseSummaries(courses []model.CourseModel) []entity.CourseSummary {
	out := make([]entity.CourseSummary, 0, len(courses))
	for _, c := range courses {
		out = append(out, entity.CourseSummary{
			ID:        c.ID,
			Title:     c.Title,
			Thumbnail: c.Thumbnail,
			Progress:  c.Progress,
		})
	}

	return out
}
