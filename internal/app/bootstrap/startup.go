// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"

	"github.com/dalemusser/waffle/config"
	adminstore "github.com/ihsb/ihsbsite/internal/app/store/admins"
	"github.com/ihsb/ihsbsite/internal/app/system/apperr"
	"github.com/ihsb/ihsbsite/internal/app/system/timeouts"
	"github.com/ihsb/ihsbsite/internal/domain/models"
	"go.uber.org/zap"
)

// seededBy attributes accounts created at startup.
const seededBy = "system"

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
//
// It logs the timeouts ConnectDB applied and makes sure every configured
// superadmin has an account record, so they appear in the admin list.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	cur := timeouts.Current()
	logger.Info("timeouts configured",
		zap.Duration("store", cur.Store),
		zap.Duration("upstream", cur.Upstream),
		zap.Duration("notify", cur.Notify))

	admins := adminstore.New(deps.Store)
	for _, email := range appCfg.SuperadminEmails {
		if err := ensureSuperadmin(ctx, admins, email, logger); err != nil {
			return err
		}
	}
	return nil
}

// ensureSuperadmin creates an active superadmin account for email when none
// exists. An existing account is left as stored; the configured list grants
// superadmin regardless.
func ensureSuperadmin(ctx context.Context, admins *adminstore.Store, email string, logger *zap.Logger) error {
	_, err := admins.Get(ctx, email)
	switch {
	case err == nil:
		return nil
	case !apperr.Is(err, apperr.NotFound):
		logger.Error("superadmin lookup failed", zap.String("email", email), zap.Error(err))
		return err
	}

	_, err = admins.Create(ctx, models.AdminAccount{
		Email: email,
		Role:  models.RoleSuperadmin,
	}, seededBy)
	if errors.Is(err, adminstore.ErrExists) {
		return nil
	}
	if err != nil {
		logger.Error("superadmin seed failed", zap.String("email", email), zap.Error(err))
		return err
	}
	logger.Info("superadmin account created", zap.String("email", email))
	return nil
}
