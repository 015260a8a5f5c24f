package location

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func NewHandler(client client) Handler {
	return Handler{client: client}
}

type Handler struct {
	client client
}

type client interface {
	Search(ctx context.Context, query string) ([]Place, error)
}

// Search locations
func (h Handler) Search(c *gin.Context) {
	// swagger:route GET /search-location searchLocation
	//
	// Search locations
	//
	// City autocomplete backed by a geocoding service. Queries shorter than
	// two characters return an empty result without an upstream call.
	//
	// responses:
	//   200: []Place
	//   500: Error
	query := strings.TrimSpace(c.Query("q"))
	if len(query) < 2 {
		c.JSON(http.StatusOK, gin.H{"results": []Place{}})
		return
	}

	results, err := h.client.Search(c.Request.Context(), query)
	if err != nil {
		_ = c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

func Routes(r *gin.Engine, handler Handler) {
	r.GET("/search-location", handler.Search)
}
