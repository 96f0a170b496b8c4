package invoice

import (
	"go.uber.org/fx"

	"github.com/billfold/billfold/internal/invoice/render"
	"github.com/billfold/billfold/internal/invoice/service"
)

var Module = fx.Module("invoice.service",
	fx.Provide(
		render.NewPreviewRenderer,
		render.NewExportRenderer,
		service.NewService,
	),
)
