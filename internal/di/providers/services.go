package providers

import (
	"github.com/samber/do/v2"

	"github.com/momentumapp/momentum-server/internal/auth"
	"github.com/momentumapp/momentum-server/internal/config"
	"github.com/momentumapp/momentum-server/internal/logger"
	"github.com/momentumapp/momentum-server/internal/service"
)

// ProvideGoogleClient provides the Google OAuth client.
// Returns nil when credentials are absent; the auth endpoints answer 503.
func ProvideGoogleClient(i do.Injector) (*auth.GoogleClient, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	client := auth.NewGoogleClient(cfg.Google)
	if client == nil {
		log.Warn("Google sign-in not configured - set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET")
	}

	return client, nil
}

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	google := do.MustInvoke[*auth.GoogleClient](i)
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, google, cfg.Session, log.Logger), nil
}

// ProvideTaskService provides the task service.
func ProvideTaskService(i do.Injector) (*service.TaskService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewTaskService(storeHandle.Store, log.Logger), nil
}

// ProvideDiaryService provides the diary service.
func ProvideDiaryService(i do.Injector) (*service.DiaryService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewDiaryService(storeHandle.Store, log.Logger), nil
}

// ProvideStatsService provides the statistics service.
func ProvideStatsService(i do.Injector) (*service.StatsService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewStatsService(storeHandle.Store, log.Logger), nil
}

// ProvideAccountService provides the account service.
func ProvideAccountService(i do.Injector) (*service.AccountService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAccountService(storeHandle.Store, log.Logger), nil
}
