package client

import (
	"go.uber.org/fx"

	"github.com/billfold/billfold/internal/client/service"
)

var Module = fx.Module("client.service",
	fx.Provide(service.NewService),
)
