package daemon

import (
	"context"
	"errors"
	"fmt"

	"github.com/dchest/uniuri"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/GoACL-Admin/GoACL-Admin/internal/config"
	"github.com/GoACL-Admin/GoACL-Admin/internal/db/controller/namespace"
	"github.com/GoACL-Admin/GoACL-Admin/internal/db/controller/user"
	"github.com/GoACL-Admin/GoACL-Admin/internal/db/repository"
	"github.com/GoACL-Admin/GoACL-Admin/internal/web/handler"
)

const (
	defaultNamespace = "default"
	adminName        = "Administrator"

	generatedPasswordLen = 20
)

// Seed creates the bootstrap namespace and admin user when they are missing.
// An empty admin password is replaced by a random one which is logged once.
// A configured admin user or password failing the user validation rules is an error.
func Seed(ctx context.Context, db *gorm.DB, cfg config.Seed) error {
	ns := cfg.Namespace
	if ns == "" {
		ns = defaultNamespace
	}

	namespaces := namespace.New(db)

	_, err := namespaces.FindByName(ctx, ns)
	if errors.Is(err, repository.ErrNotFound) {
		_, err = namespaces.Create(ctx, namespace.Input{Namespace: ns, Description: "created on first start"})
		if err == nil {
			log.Info().Str("namespace", ns).Msg("seeded namespace")
		}
	}

	if err != nil {
		return err
	}

	if cfg.AdminUser == "" {
		return nil
	}

	users := user.New(db)

	_, err = users.FindByUsername(ctx, ns, cfg.AdminUser)
	if err == nil {
		return nil
	}

	if !errors.Is(err, repository.ErrNotFound) {
		return err
	}

	password := cfg.AdminPassword
	if password == "" {
		password = uniuri.NewLen(generatedPasswordLen)

		log.Warn().
			Str("namespace", ns).
			Str("user", cfg.AdminUser).
			Str("password", password).
			Msg("generated admin password, change it after the first login")
	}

	in := user.Input{
		Namespace: ns,
		User:      cfg.AdminUser,
		Name:      adminName,
		Password:  password,
	}

	// same rules as POST /user
	if err := handler.Validate(in); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}

	if _, err := users.Create(ctx, in); err != nil {
		return err
	}

	log.Info().Str("namespace", ns).Str("user", cfg.AdminUser).Msg("seeded admin user")

	return nil
}
