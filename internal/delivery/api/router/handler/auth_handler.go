// Package handler contains the HTTP handlers for the application.
package handler

import (
	"encoding/json"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"identity/internal/delivery/api/response"
	"identity/internal/delivery/api/validator"
	deliverycontext "identity/internal/delivery/context"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/service"
	"identity/internal/errors"
	"identity/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	profileImageField = "profileImage"
	multipartMemory   = 4 << 20
)

// AuthHandler serves the /api/auth routes and stored profile images.
type AuthHandler struct {
	auth    usecase.AuthUsecase
	profile usecase.ProfileUsecase
	images  service.ImageStorage
	logger  *slog.Logger
}

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	Auth    usecase.AuthUsecase
	Profile usecase.ProfileUsecase
	Images  service.ImageStorage
	Logger  *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		auth:    params.Auth,
		profile: params.Profile,
		images:  params.Images,
		logger:  params.Logger,
	}
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(c echo.Context) error {
	req := new(SignupRequest)
	decoded, err := bindJSON(c, req)
	if err != nil {
		return response.BadRequest(c, "Invalid signup input")
	}
	if err := validator.Merge(req, decoded, c.Validate(req)); err != nil {
		return err
	}

	output, err := h.auth.Signup(c.Request().Context(), req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, response.Envelope{
		Message: "User Created Successfully",
		User:    response.NewUserView(output.User),
	})
}

// Signin handles POST /api/auth/signin.
func (h *AuthHandler) Signin(c echo.Context) error {
	req := new(SigninRequest)
	decoded, err := bindJSON(c, req)
	if err != nil {
		return response.BadRequest(c, "Invalid signin input")
	}
	if err := validator.Merge(req, decoded, c.Validate(req)); err != nil {
		return err
	}

	output, err := h.auth.Signin(c.Request().Context(), req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	expiresAt := output.ExpiresAt

	return response.Success(c, http.StatusOK, response.Envelope{
		Message:   "Login successful",
		Token:     output.Token,
		ExpiresAt: &expiresAt,
		User:      response.NewUserView(output.User),
	})
}

// GetProfile handles GET /api/auth/profile.
func (h *AuthHandler) GetProfile(c echo.Context) error {
	identity, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return domainerrors.ErrTokenMissing
	}

	user, err := h.profile.GetProfile(c.Request().Context(), identity)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, response.Envelope{
		Message: "Profile fetched successfully",
		User:    response.NewProfileView(user),
	})
}

// UpdateProfile handles PUT /api/auth/profile. The body is JSON, or
// multipart/form-data when a profileImage file is attached.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	identity, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return domainerrors.ErrTokenMissing
	}

	var (
		req     *ProfileUpdateRequest
		upload  *service.ImageUpload
		decoded []domainerrors.FieldViolation
		err     error
	)
	if isMultipart(c) {
		var cleanup func()
		req, upload, decoded, cleanup, err = h.bindProfileForm(c)
		defer cleanup()
		if err != nil {
			return err
		}
	} else {
		req = new(ProfileUpdateRequest)
		decoded, err = bindJSON(c, req)
		if err != nil {
			return response.BadRequest(c, "Invalid profile input")
		}
	}

	if err := validator.Merge(req, decoded, c.Validate(req)); err != nil {
		return err
	}

	patch := req.toPatch()
	patch.ImageUpload = upload

	user, err := h.profile.UpdateProfile(c.Request().Context(), identity, patch)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, response.Envelope{
		Message: "Profile updated successfully",
		User:    response.NewProfileView(user),
	})
}

// UpdatePassword handles PUT /api/auth/password.
func (h *AuthHandler) UpdatePassword(c echo.Context) error {
	identity, ok := deliverycontext.GetIdentity(c)
	if !ok {
		return domainerrors.ErrTokenMissing
	}

	req := new(PasswordUpdateRequest)
	decoded, err := bindJSON(c, req)
	if err != nil {
		return response.BadRequest(c, "Invalid password input")
	}
	if err := validator.Merge(req, decoded, c.Validate(req)); err != nil {
		return err
	}

	if err := h.profile.UpdatePassword(c.Request().Context(), identity, req.toInput()); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, response.Envelope{
		Message: "Password updated successfully",
	})
}

// ServeProfileImage handles GET /uploads/profile-images/:name.
func (h *AuthHandler) ServeProfileImage(c echo.Context) error {
	body, contentType, err := h.images.OpenProfileImage(c.Request().Context(), c.Param("name"))
	if err != nil {
		return errors.WithStack(err)
	}
	defer body.Close()

	c.Response().Header().Set("Cache-Control", "public, max-age=86400")

	return c.Stream(http.StatusOK, contentType, body)
}

func isMultipart(c echo.Context) bool {
	return strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEMultipartForm)
}

// bindJSON decodes the request body into req. A value of the wrong JSON type
// becomes a field violation so it is reported together with rule failures.
func bindJSON(c echo.Context, req any) ([]domainerrors.FieldViolation, error) {
	err := c.Bind(req)
	if err == nil {
		return nil, nil
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		field, _, _ := strings.Cut(typeErr.Field, ".")

		return []domainerrors.FieldViolation{validator.TypeViolation(req, field)}, nil
	}

	return nil, err
}

// bindProfileForm reads a multipart profile update. Only fields present in the
// form are set; socialLinks arrives as a JSON object encoded in a single value.
// Values that cannot be decoded are returned as violations.
func (h *AuthHandler) bindProfileForm(c echo.Context) (*ProfileUpdateRequest, *service.ImageUpload, []domainerrors.FieldViolation, func(), error) {
	if err := c.Request().ParseMultipartForm(multipartMemory); err != nil {
		return nil, nil, nil, h.cleanup(c, nil), echo.NewHTTPError(http.StatusBadRequest, "Invalid profile input")
	}
	values := c.Request().MultipartForm.Value

	req := &ProfileUpdateRequest{
		Firstname:    formValue(values, "firstname"),
		Lastname:     formValue(values, "lastname"),
		Bio:          formValue(values, "bio"),
		Title:        formValue(values, "title"),
		ProfileImage: formValue(values, profileImageField),
	}

	var violations []domainerrors.FieldViolation
	if raw := formValue(values, "experience"); raw != nil && strings.TrimSpace(*raw) != "" {
		experience, err := strconv.Atoi(strings.TrimSpace(*raw))
		if err != nil {
			violations = append(violations, validator.TypeViolation(req, "experience"))
		} else {
			req.Experience = &experience
		}
	}
	if raw := formValue(values, "socialLinks"); raw != nil {
		links := map[string]string{}
		if strings.TrimSpace(*raw) != "" {
			if err := json.Unmarshal([]byte(*raw), &links); err != nil {
				violations = append(violations, validator.TypeViolation(req, "socialLinks"))
			}
		}
		req.SocialLinks = &links
	}
	if len(violations) > 0 {
		return req, nil, violations, h.cleanup(c, nil), nil
	}

	header, err := c.FormFile(profileImageField)
	if errors.Is(err, http.ErrMissingFile) {
		return req, nil, nil, h.cleanup(c, nil), nil
	}
	if err != nil {
		return nil, nil, nil, h.cleanup(c, nil), echo.NewHTTPError(http.StatusBadRequest, "Invalid profile image")
	}

	file, err := header.Open()
	if err != nil {
		return nil, nil, nil, h.cleanup(c, nil), errors.Wrap(err, "failed to open uploaded image")
	}

	return req, toImageUpload(header, file), nil, h.cleanup(c, file), nil
}

// cleanup closes the uploaded file and removes any temporary files the
// multipart reader spilled to disk.
func (h *AuthHandler) cleanup(c echo.Context, file multipart.File) func() {
	return func() {
		var errs []error
		if file != nil {
			errs = append(errs, file.Close())
		}
		if form := c.Request().MultipartForm; form != nil {
			errs = append(errs, form.RemoveAll())
		}

		if err := errors.Join(errs...); err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).
				Warn("Failed to clean up profile upload", slog.Any("error", err))
		}
	}
}

func toImageUpload(header *multipart.FileHeader, file multipart.File) *service.ImageUpload {
	return &service.ImageUpload{
		Filename:    header.Filename,
		ContentType: header.Header.Get(echo.HeaderContentType),
		Size:        header.Size,
		Content:     file,
	}
}

func formValue(values map[string][]string, key string) *string {
	v, ok := values[key]
	if !ok || len(v) == 0 {
		return nil
	}

	value := v[0]

	return &value
}
