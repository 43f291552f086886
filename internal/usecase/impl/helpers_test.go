package impl

import (
	"io"
	"log/slog"
	"time"

	"identity/config"
	"identity/internal/domain/entity"

	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth.LookupTimeout = time.Second

	return cfg
}

func newStoredUser() *entity.User {
	return &entity.User{
		ID:           uuid.New(),
		Firstname:    "Ada",
		Lastname:     "Lovelace",
		Username:     "ada123",
		Email:        "ada@x.com",
		PasswordHash: "$argon2id$stored",
		Role:         entity.RoleStudent,
		SocialLinks:  entity.SocialLinks{},
	}
}
