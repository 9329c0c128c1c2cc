package cmd

import (
	"time"

	"github.com/bitego/snipcart-webhook-app/internal/config"
	"github.com/bitego/snipcart-webhook-app/internal/helpers"
)

var envMapString = map[*string]boundEnvVar[string]{
	&config.Snipcart.APIBase: {
		Name:        "snipcart-api-base",
		Description: "The Snipcart API root used for the request token handshake",
		Env:         helpers.Ptr("SNIPCART_API_BASE"),
	},
	&config.Snipcart.ValidationPath: {
		Name:        "snipcart-validation-path",
		Description: "The request validation resource under the Snipcart API root",
	},
	&config.Taxes.Provider: {
		Name:        "taxes-provider",
		Description: "The store tax provider. Only 'integrated' enables the tax engine",
	},
	&config.Taxes.ShippingMode: {
		Name:        "taxes-shipping-mode",
		Description: "The shipping tax strategy. Supported values are 'none', 'fixed', 'highest' and 'split'",
	},
	&config.Service.Path: {
		Name:        "service-path",
		Description: "The HTTP path serving the webhook endpoint",
	},
	&config.Service.Addr: {
		Name:        "service-addr",
		Description: "The address to bind the HTTP service to",
	},
	&config.Service.Port: {
		Name:        "service-port",
		Description: "The port to bind the HTTP service to",
		Short:       helpers.Ptr("p"),
	},
}

var envMapBool = map[*bool]boundEnvVar[bool]{
	&config.Global.Logging.CallerTrace: {
		Name:        "verbosity-caller-trace",
		Description: "Enable caller trace in logs",
		Short:       helpers.Ptr("V"),
	},
	&config.Global.LocalDevelopment: {
		Name:        "local-development",
		Description: "Skip the request token handshake. For local testing only",
		Env:         helpers.Ptr("LOCAL_DEVELOPMENT"),
	},
	&config.Taxes.IncludedInPrice: {
		Name:        "taxes-included-in-price",
		Description: "Treat all configured taxes as already contained in item prices",
	},
	&config.Service.Metrics: {
		Name:        "service-metrics",
		Description: "Expose Prometheus metrics on /metrics",
	},
}

var envMapCount = map[*int]boundEnvVar[int]{
	&config.Global.Logging.Verbosity: {
		Name:        "verbosity",
		Description: "Increase logger verbosity (default WarnLevel)",
		Short:       helpers.Ptr("v"),
	},
}

var envMapDuration = map[*time.Duration]boundEnvVar[time.Duration]{
	&config.Snipcart.HandshakeTimeout: {
		Name:        "snipcart-handshake-timeout",
		Description: "Upper bound on the synchronous request token handshake",
	},
	&config.Service.Timeout: {
		Name:        "service-timeout",
		Description: "Read/write/idle timeout of the HTTP service",
	},
}
