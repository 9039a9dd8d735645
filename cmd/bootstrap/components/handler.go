package components

import (
	"rentshare/internal/handler"
	"rentshare/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewBookingHandler,
		api.NewItemHandler,
	),
	fx.Invoke(handler.NewRouter),
)
