package location

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type Client struct {
	baseURL string
	client  *http.Client
}

// Place is a city suggestion returned by the location search.
// swagger:model
type Place struct {
	Name    string `json:"name"`
	Country string `json:"country"`
}

type nominatimPlace struct {
	DisplayName string `json:"display_name"`
	Address     struct {
		City         string `json:"city"`
		Town         string `json:"town"`
		Village      string `json:"village"`
		Municipality string `json:"municipality"`
		Suburb       string `json:"suburb"`
		County       string `json:"county"`
		Country      string `json:"country"`
	} `json:"address"`
}

// Search asks the geocoding service for places matching the query.
func (c *Client) Search(ctx context.Context, query string) ([]Place, error) {
	values := url.Values{}
	values.Set("q", query)
	values.Set("format", "json")
	values.Set("addressdetails", "1")
	values.Set("limit", "5")

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+values.Encode(), nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Accept", "application/json")

	response, err := c.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("location search failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("location search failed: %s", response.Status)
	}

	var places []nominatimPlace
	if err := json.NewDecoder(response.Body).Decode(&places); err != nil {
		return nil, fmt.Errorf("failed to decode location search response: %v", err)
	}

	results := make([]Place, 0, len(places))
	for _, place := range places {
		results = append(results, Place{
			Name:    placeName(place),
			Country: place.Address.Country,
		})
	}

	return results, nil
}

// placeName picks the most specific locality name the address carries,
// falling back to the first segment of the display name.
func placeName(place nominatimPlace) string {
	address := place.Address
	for _, name := range []string{address.City, address.Town, address.Village, address.Municipality, address.Suburb, address.County} {
		if name != "" {
			return name
		}
	}

	name, _, _ := strings.Cut(place.DisplayName, ",")
	return strings.TrimSpace(name)
}
