package cmd

import (
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/bitego/snipcart-webhook-app/internal/config"
	"github.com/bitego/snipcart-webhook-app/internal/handler"
	"github.com/bitego/snipcart-webhook-app/internal/metrics"
	"github.com/bitego/snipcart-webhook-app/internal/runtime"
	"github.com/bitego/snipcart-webhook-app/internal/snipcart"
	"github.com/bitego/snipcart-webhook-app/internal/taxes"
)

func cmdServe() *cobra.Command {
	return &cobra.Command{
		Use:     "serve",
		Aliases: []string{"s", "service", "standalone", "server"},
		PreRunE: func(_ *cobra.Command, _ []string) error {
			logger = logger.With("mode", "serve")
			logger.Info("Spawning...")

			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger.Debug("Creating Snipcart client...")
			client := snipcart.NewClient(
				snipcart.WithAPIBase(config.Snipcart.APIBase),
				snipcart.WithValidationPath(config.Snipcart.ValidationPath),
				snipcart.WithTimeout(config.Snipcart.HandshakeTimeout),
				snipcart.WithLogger(logger.With("component", "snipcart-client")))

			logger.Debug("Creating tax engine...")
			engine := taxes.NewEngine(config.Taxes.Definitions,
				taxes.WithShippingTaxMode(taxes.ShippingTaxMode(config.Taxes.ShippingMode)),
				taxes.WithTaxesIncludedInPrice(config.Taxes.IncludedInPrice),
				taxes.WithLogger(logger.With("component", "tax-engine")))

			logger.Debug("Creating webhook handler...")
			hdl, err := handler.NewWebhookHandler(
				handler.WithSnipcartClient(client),
				handler.WithTaxEngine(engine),
				handler.WithTaxProvider(config.Taxes.Provider),
				handler.WithLocalDevelopment(config.Global.LocalDevelopment),
				handler.WithContext(cmd.Context()),
				handler.WithLogger(logger.With("component", "webhook-handler")))
			if err != nil {
				return err
			}

			logger.Debug("Creating runtime...")
			rt := runtime.NewRuntime(hdl,
				runtime.WithLogger(logger.With("component", "runtime")))

			logger.Debug("Creating HTTP server...")
			mux := http.NewServeMux()
			mux.Handle(config.Service.Path, rt)
			if config.Service.Metrics {
				metrics.RegisterDefault()
				mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))
			}

			s := &http.Server{
				Handler:      mux,
				Addr:         net.JoinHostPort(config.Service.Addr, config.Service.Port),
				WriteTimeout: config.Service.Timeout,
				ReadTimeout:  config.Service.Timeout,
				IdleTimeout:  config.Service.Timeout,
			}

			logger.Info("Serving...", "address", s.Addr, "path", config.Service.Path, "timeout", config.Service.Timeout.String())
			return s.ListenAndServe()
		},
	}
}
