// internal/app/bootstrap/metrics.go
package bootstrap

import (
	"errors"

	"github.com/dalemusser/meditrip/internal/app/system/fallback"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// registerMetrics adds the app's collectors to the default registry.
// Registering twice (tests build several handlers) is not an error.
func registerMetrics(logger *zap.Logger) {
	for _, c := range []prometheus.Collector{fallback.Transitions} {
		if err := prometheus.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				logger.Warn("metrics registration failed", zap.Error(err))
			}
		}
	}
}
