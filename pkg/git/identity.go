package git

import (
	"context"
	"errors"
	"strings"

	"github.com/CodeMonkeyCybersecurity/ship/pkg/ship_err"
	"github.com/go-playground/validator/v10"
	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
)

var validate = validator.New()

// ResolveIdentity reads the committer identity from git configuration.
// committer.name/committer.email take precedence over user.name/user.email.
func (r *Repository) ResolveIdentity(ctx context.Context) (Identity, error) {
	logger := otelzap.Ctx(ctx)

	cfg, err := r.repo.ConfigScoped(r.configScope)
	if err != nil {
		return Identity{}, ship_err.NewConfigError("failed to read git configuration", err)
	}

	id := Identity{
		Name:  strings.TrimSpace(firstNonEmpty(cfg.Committer.Name, cfg.User.Name)),
		Email: strings.TrimSpace(firstNonEmpty(cfg.Committer.Email, cfg.User.Email)),
	}

	if err := validate.Struct(id); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return Identity{}, identityError(verrs[0].Field())
		}
		return Identity{}, ship_err.NewConfigError("invalid git identity", err)
	}

	// Git itself accepts any email string, so a malformed one is only noted.
	if err := validate.Var(id.Email, "email"); err != nil {
		logger.Warn("Configured email does not look like an address",
			zap.String("user.email", id.Email),
			zap.Error(err))
	}

	logger.Debug("Identity resolved",
		zap.String("user.name", id.Name),
		zap.String("user.email", id.Email))
	return id, nil
}

func identityError(field string) error {
	key := "user.name"
	if field == "Email" {
		key = "user.email"
	}
	return ship_err.NewConfigError("git identity not configured: "+key+" is not set", nil,
		`git config --global user.name "Your Name"`,
		`git config --global user.email "your.email@example.com"`)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
