package api

import (
	"github.com/momentumapp/momentum-server/internal/service"
)

// Services groups all business logic services used by the API server.
type Services struct {
	Auth    *service.AuthService
	Task    *service.TaskService
	Diary   *service.DiaryService
	Stats   *service.StatsService
	Account *service.AccountService
}
