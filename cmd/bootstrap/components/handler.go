package components

import (
	"storefront/internal/handler"
	"storefront/internal/handler/api"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewOrderHandler,
		api.NewDiscountHandler,
		api.NewProductHandler,
	),
	fx.Invoke(handler.NewRouter),
)
