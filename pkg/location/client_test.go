package location

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "bled", r.URL.Query().Get("q"))
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("addressdetails"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"display_name": "Bled, Upper Carniola, Slovenia", "address": {"town": "Bled", "country": "Slovenia"}},
			{"display_name": "Bled, Somewhere, France", "address": {"country": "France"}}
		]`))
	}))
	defer server.Close()

	client := NewClient(server.URL)

	places, err := client.Search(context.Background(), "bled")

	require.NoError(t, err)
	require.Len(t, places, 2)
	assert.Equal(t, Place{Name: "Bled", Country: "Slovenia"}, places[0])
	// no locality in the address, first display name segment wins
	assert.Equal(t, Place{Name: "Bled", Country: "France"}, places[1])
}

func TestClient_Search_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL)

	_, err := client.Search(context.Background(), "bled")

	require.Error(t, err)
}

func TestPlaceName_FallbackOrder(t *testing.T) {
	place := nominatimPlace{DisplayName: "Center, Ljubljana, Slovenia"}
	place.Address.City = "Ljubljana"
	place.Address.Suburb = "Center"
	assert.Equal(t, "Ljubljana", placeName(place))

	place.Address.City = ""
	assert.Equal(t, "Center", placeName(place))

	place.Address.Suburb = ""
	assert.Equal(t, "Center", placeName(place))
}

func TestHandler_Search_ShortQuery(t *testing.T) {
	handler := NewHandler(NewClient("http://invalid.localhost"))

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	request, err := http.NewRequest(http.MethodGet, "/search-location?q=a", nil)
	require.NoError(t, err)
	c.Request = request

	handler.Search(c)

	require.Len(t, c.Errors.Errors(), 0)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"results": []}`, recorder.Body.String())
}
