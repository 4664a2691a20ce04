package bootstrap

import (
	"carshare/internal/infra/stripegw"
	"carshare/internal/pkg/config"
	"carshare/internal/usecase/commands"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		NewPaymentGateway,
	),
)

func NewPaymentGateway(cfg config.Config) commands.PaymentGateway {
	return stripegw.NewGateway(cfg.Stripe)
}
