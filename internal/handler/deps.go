package handler

import (
	"thinkle/internal/app/api"
	"thinkle/internal/app/game"
	"thinkle/internal/app/storage"
	"thinkle/internal/configs"
	"thinkle/internal/pkg/limiter"
	"thinkle/internal/web"
)

type AppDeps struct {
	Config  *configs.AppConfig
	Manager *game.Manager
	API     *api.Client
	Vault   *storage.Vault
	Views   *web.Renderer
	Limiter *limiter.IPRateLimiter
}
