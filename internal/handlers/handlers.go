package handlers

import (
	"go.uber.org/zap"

	"github.com/shard-legends/codex-service/internal/database"
	"github.com/shard-legends/codex-service/internal/handlers/public"
	"github.com/shard-legends/codex-service/internal/service"
)

// Handlers содержит все HTTP обработчики
type Handlers struct {
	Health    *HealthHandler
	Admin     *AdminHandler
	Codex     *public.CodexHandler
	Inventory *public.InventoryHandler
	Snapshot  *public.SnapshotHandler
}

// HandlerDependencies содержит зависимости для создания handlers.
// DB и Redis могут быть nil, если не настроены.
type HandlerDependencies struct {
	Service *service.Service
	DB      *database.DB
	Redis   *database.RedisClient
	Logger  *zap.Logger
}

// NewHandlers создает новый экземпляр Handlers со всеми обработчиками
func NewHandlers(deps *HandlerDependencies) *Handlers {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		Health:    NewHealthHandler(deps.Service.Dataset, deps.DB, deps.Redis),
		Admin:     NewAdminHandler(deps.Service.Codex, logger),
		Codex:     public.NewCodexHandler(deps.Service.Codex, logger),
		Inventory: public.NewInventoryHandler(deps.Service.Codex, logger),
		Snapshot:  public.NewSnapshotHandler(deps.Service.Snapshots, logger),
	}
}
