package services

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sync"
	"time"

	"dinner-backend/models"
	"dinner-backend/utils"

	"gorm.io/datatypes"
)

const defaultPlacesBaseURL = "https://maps.googleapis.com/maps/api/place"

// PlacesProvider abstracts the third-party places API so the restaurant
// service and the photo proxy can be tested against fakes.
type PlacesProvider interface {
	NearbyRestaurants(lat, lng float64, radiusMeters int) ([]models.Restaurant, error)
	Photo(photoRef, maxWidth, maxHeight string) (*http.Response, error)
}

// GooglePlacesService wraps the Google Places REST API.
type GooglePlacesService struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

func NewGooglePlacesService(apiKey string) *GooglePlacesService {
	return &GooglePlacesService{
		APIKey:  apiKey,
		BaseURL: utils.EnvOrDefault("PLACES_BASE_URL", defaultPlacesBaseURL),
		Client:  &http.Client{Timeout: 30 * time.Second},
	}
}

type nearbySearchResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		PlaceID string `json:"place_id"`
	} `json:"results"`
}

type placeDetailsResponse struct {
	Status       string       `json:"status"`
	ErrorMessage string       `json:"error_message"`
	Result       placeDetails `json:"result"`
}

type placeDetails struct {
	Name       string   `json:"name"`
	Rating     *float64 `json:"rating"`
	PriceLevel *int     `json:"price_level"`
	URL        string   `json:"url"`
	Geometry   struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	Photos []struct {
		PhotoReference   string   `json:"photo_reference"`
		HTMLAttributions []string `json:"html_attributions"`
	} `json:"photos"`
}

// NearbyRestaurants runs a nearby search restricted to restaurants, then a
// details call per result. Details calls run concurrently; a failed details
// call is logged and that place dropped rather than failing the batch.
// A ZERO_RESULTS status is a valid empty outcome.
func (s *GooglePlacesService) NearbyRestaurants(lat, lng float64, radiusMeters int) ([]models.Restaurant, error) {
	q := url.Values{}
	q.Set("location", fmt.Sprintf("%f,%f", lat, lng))
	q.Set("radius", fmt.Sprintf("%d", radiusMeters))
	q.Set("type", "restaurant")
	q.Set("key", s.APIKey)

	var nearby nearbySearchResponse
	if err := s.getJSON(s.BaseURL+"/nearbysearch/json?"+q.Encode(), &nearby); err != nil {
		return nil, fmt.Errorf("nearby search request failed: %w", err)
	}

	if nearby.Status == "ZERO_RESULTS" {
		return []models.Restaurant{}, nil
	}
	if nearby.Status != "OK" {
		return nil, fmt.Errorf("nearby search status %s: %s", nearby.Status, nearby.ErrorMessage)
	}

	restaurants := make([]models.Restaurant, 0, len(nearby.Results))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, result := range nearby.Results {
		placeID := result.PlaceID
		if placeID == "" {
			continue
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			restaurant, err := s.placeDetails(placeID)
			if err != nil {
				log.Printf("⚠️  dropping place %s: %v", placeID, err)
				return
			}
			mu.Lock()
			restaurants = append(restaurants, restaurant)
			mu.Unlock()
		}()
	}
	wg.Wait()

	return restaurants, nil
}

func (s *GooglePlacesService) placeDetails(placeID string) (models.Restaurant, error) {
	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", "name,rating,price_level,geometry/location,photo,url")
	q.Set("key", s.APIKey)

	var details placeDetailsResponse
	if err := s.getJSON(s.BaseURL+"/details/json?"+q.Encode(), &details); err != nil {
		return models.Restaurant{}, err
	}
	if details.Status != "OK" {
		return models.Restaurant{}, fmt.Errorf("details status %s: %s", details.Status, details.ErrorMessage)
	}

	r := models.Restaurant{
		ID:         placeID,
		Name:       details.Result.Name,
		Rating:     details.Result.Rating,
		PriceLevel: details.Result.PriceLevel,
		Lat:        details.Result.Geometry.Location.Lat,
		Lng:        details.Result.Geometry.Location.Lng,
		MapsURL:    details.Result.URL,
	}
	if len(details.Result.Photos) > 0 {
		ref := details.Result.Photos[0].PhotoReference
		r.PhotoRef = &ref
		if attrs, err := json.Marshal(details.Result.Photos[0].HTMLAttributions); err == nil {
			r.PhotoAttributions = datatypes.JSON(attrs)
		}
	}
	return r, nil
}

// Photo forwards a photo-reference request to the provider's photo
// endpoint. The caller owns the response body.
func (s *GooglePlacesService) Photo(photoRef, maxWidth, maxHeight string) (*http.Response, error) {
	q := url.Values{}
	q.Set("photoreference", photoRef)
	if maxWidth != "" {
		q.Set("maxwidth", maxWidth)
	}
	if maxHeight != "" {
		q.Set("maxheight", maxHeight)
	}
	q.Set("key", s.APIKey)

	resp, err := s.Client.Get(s.BaseURL + "/photo?" + q.Encode())
	if err != nil {
		return nil, fmt.Errorf("photo request failed: %w", err)
	}
	return resp, nil
}

func (s *GooglePlacesService) getJSON(rawURL string, out interface{}) error {
	resp, err := s.Client.Get(rawURL)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("HTTP error %d: %s", resp.StatusCode, string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("JSON parse error: %w", err)
	}
	return nil
}
