package migrate

import (
	"context"

	"github.com/rakibulhaque/trendibay-backend/pkg/config"
	"github.com/rakibulhaque/trendibay-backend/pkg/db"
	"github.com/rakibulhaque/trendibay-backend/pkg/logger"
)

// MaybeRunDev applies migrations at boot when the auto-migrate flag is
// on. Only honored in dev so production stays on the migrate binary.
func MaybeRunDev(ctx context.Context, cfg *config.Config, client *db.Client, logg *logger.Logger) error {
	if !cfg.IsDev() || !cfg.Features.AutoMigrate {
		return nil
	}

	sqlDB, err := client.Gorm().DB()
	if err != nil {
		return err
	}

	logg.Info("running startup migrations")
	return Up(ctx, sqlDB, DefaultDir)
}
