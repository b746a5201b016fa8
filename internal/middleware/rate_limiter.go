package middleware

import (
	"net/http"

	"posbuddy/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// RateLimiter limits requests per client IP. formatted follows the
// limiter syntax, e.g. "20-M" for twenty requests per minute.
func RateLimiter(formatted, mensaje string) gin.HandlerFunc {
	rate, err := limiter.NewRateFromFormatted(formatted)
	if err != nil {
		log.Fatal().Err(err).Str("rate", formatted).Msg("invalid rate limit")
	}
	store := memory.NewStore()
	return mgin.NewMiddleware(limiter.New(store, rate),
		mgin.WithLimitReachedHandler(func(c *gin.Context) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New(mensaje))
		}),
	)
}

// LoginRateLimiter throttles login attempts.
func LoginRateLimiter(formatted string) gin.HandlerFunc {
	return RateLimiter(formatted, "Demasiados intentos de login. Intente en un minuto.")
}

// APIRateLimiter is the general limiter for the authenticated API.
func APIRateLimiter(formatted string) gin.HandlerFunc {
	return RateLimiter(formatted, "Demasiadas solicitudes. Intente nuevamente en un momento.")
}
