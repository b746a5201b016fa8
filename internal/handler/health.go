package handler

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
)

// Chequeo reports whether one dependency is reachable.
type Chequeo func(ctx context.Context) error

// Health runs every chequeo with a shared 3s budget and answers 503 when any
// of them fails. Only "connected" or "error" is reported per dependency.
func Health(chequeos map[string]Chequeo) gin.HandlerFunc {
	nombres := make([]string, 0, len(chequeos))
	for n := range chequeos {
		nombres = append(nombres, n)
	}
	sort.Strings(nombres)

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		body := gin.H{}
		status := http.StatusOK
		for _, n := range nombres {
			if err := chequeos[n](ctx); err != nil {
				body[n] = "error"
				status = http.StatusServiceUnavailable
				continue
			}
			body[n] = "connected"
		}
		body["ok"] = status == http.StatusOK
		c.JSON(status, body)
	}
}
