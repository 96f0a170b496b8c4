package suggestion

import (
	"go.uber.org/fx"

	"github.com/billfold/billfold/internal/suggestion/service"
)

var Module = fx.Module("suggestion.service",
	fx.Provide(service.NewService),
)
