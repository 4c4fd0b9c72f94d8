package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"priestconnect-api/internal/domain/models"
	"priestconnect-api/internal/http/middleware"
	"priestconnect-api/internal/services"
	"priestconnect-api/internal/store"
)

// GET /api/bookings/stream — SSE feed of booking snapshots for the actor's
// role filter. Every event carries the full current set, never a delta;
// clients replace their state with each snapshot.
func (h Handlers) StreamBookings(c *gin.Context) {
	sess, _ := middleware.GetSession(c)
	ctx := c.Request.Context()

	snapshots := make(chan []models.Booking, 8)
	errs := make(chan error, 1)

	cancel := h.Store.Subscribe(store.Bookings, services.RolePredicates(sess),
		func(docs []store.Document) {
			bookings, err := store.DecodeAll[models.Booking](docs)
			if err != nil {
				select {
				case errs <- err:
				default:
				}
				return
			}
			select {
			case snapshots <- bookings:
			case <-ctx.Done():
			}
		},
		func(err error) {
			select {
			case errs <- err:
			default:
			}
		},
	)
	defer cancel()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case err := <-errs:
			// surfaced out-of-band; the subscription stays up and the
			// client decides whether to reconnect
			c.SSEvent("error", gin.H{"error": err.Error()})
			return true
		case snap := <-snapshots:
			c.SSEvent("snapshot", gin.H{"bookings": snap})
			return true
		}
	})
}
