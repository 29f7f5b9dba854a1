package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"ticketscan-service/internal/domain/entity"
	"ticketscan-service/internal/domain/repository"
	"ticketscan-service/pkg/logger"
)

// HTTPFlightLookupRepository calls the flight-data service over HTTP
type HTTPFlightLookupRepository struct {
	logger      logger.Logger
	baseURL     string
	bearerToken string
}

// NewHTTPFlightLookupRepository creates a new flight lookup client
func NewHTTPFlightLookupRepository(logger logger.Logger, baseURL, bearerToken string) repository.FlightLookupRepository {
	return &HTTPFlightLookupRepository{
		logger:      logger,
		baseURL:     baseURL,
		bearerToken: bearerToken,
	}
}

// Lookup asks the flight-data service about one journey leg
func (r *HTTPFlightLookupRepository) Lookup(ctx context.Context, lookupReq *entity.FlightLookupRequest) (*entity.FlightLookupResult, error) {
	jsonData, err := json.Marshal(lookupReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal lookup request: %w", err)
	}

	url := fmt.Sprintf("%s/api/v1/flights/lookup", r.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+r.bearerToken)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var errorBody map[string]interface{}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return nil, fmt.Errorf("flight lookup service returned status %d: %v", resp.StatusCode, errorBody)
	}

	var response struct {
		Success bool                      `json:"success"`
		Data    entity.FlightLookupResult `json:"data"`
		Error   struct {
			Message string `json:"message"`
			Code    string `json:"code"`
		} `json:"error"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if !response.Success {
		return nil, fmt.Errorf("flight lookup failed: %s (code: %s)", response.Error.Message, response.Error.Code)
	}

	r.logger.Debug("Flight lookup resolved",
		"flightNumber", lookupReq.FlightNumber,
		"enhanced", response.Data.Enhanced,
		"airline", response.Data.Airline)

	return &response.Data, nil
}
