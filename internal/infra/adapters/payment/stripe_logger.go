package payment

import (
	"github.com/rs/zerolog"
	"github.com/stripe/stripe-go/v82"
)

var _ stripe.LeveledLoggerInterface = (*stripeLogger)(nil)

// stripeLogger forwards stripe-go's internal logging into zerolog.
type stripeLogger struct {
	log zerolog.Logger
}

func newStripeLogger(logger *zerolog.Logger) *stripeLogger {
	if logger == nil {
		return &stripeLogger{log: zerolog.Nop()}
	}
	return &stripeLogger{log: logger.With().Str("component", "stripe").Logger()}
}

func (l *stripeLogger) Debugf(format string, v ...interface{}) { l.log.Debug().Msgf(format, v...) }
func (l *stripeLogger) Infof(format string, v ...interface{})  { l.log.Debug().Msgf(format, v...) }
func (l *stripeLogger) Warnf(format string, v ...interface{})  { l.log.Warn().Msgf(format, v...) }
func (l *stripeLogger) Errorf(format string, v ...interface{}) { l.log.Error().Msgf(format, v...) }
