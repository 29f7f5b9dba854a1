package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"ticketscan-service/internal/domain/entity"
	"ticketscan-service/internal/usecase"
	"ticketscan-service/pkg/logger"
	"ticketscan-service/pkg/ticket"

	"github.com/gin-gonic/gin"
)

// TicketHandler serves the ticket extraction API
type TicketHandler struct {
	processor *usecase.TicketProcessor
	maxUpload int64
	logger    logger.Logger
}

// NewTicketHandler creates a new ticket handler
func NewTicketHandler(processor *usecase.TicketProcessor, maxUploadMB int64, logger logger.Logger) *TicketHandler {
	return &TicketHandler{
		processor: processor,
		maxUpload: maxUploadMB * 1024 * 1024,
		logger:    logger,
	}
}

// matchedLeg is a journey with its itinerary cross-check outcome
type matchedLeg struct {
	*ticket.Journey
	Matched       bool                 `json:"matched"`
	Discrepancies []ticket.Discrepancy `json:"discrepancies"`
}

// extractResponse is the output contract of the extract endpoint
type extractResponse struct {
	Success        bool              `json:"success"`
	RecordID       string            `json:"record_id,omitempty"`
	TicketCategory string            `json:"ticket_category"`
	JourneysFound  int               `json:"journeys_found"`
	AllJourneys    []*ticket.Journey `json:"all_journeys"`
	Onward         *matchedLeg       `json:"onward"`
	Return         *matchedLeg       `json:"return"`
	Confidence     int               `json:"confidence"`
	RawTextSample  string            `json:"raw_text_sample"`
	ErrorCode      string            `json:"error_code,omitempty"`
	Error          string            `json:"error,omitempty"`
}

// ExtractTicket handles POST /api/v1/tickets/extract
func (h *TicketHandler) ExtractTicket(c *gin.Context) {
	file, err := c.FormFile("ticket")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "ticket file is required"})
		return
	}
	if file.Size > h.maxUpload {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   fmt.Sprintf("ticket file exceeds the %d MB limit", h.maxUpload/(1024*1024)),
		})
		return
	}

	category := ticket.TripCategory(c.DefaultPostForm("trip_category", string(ticket.TripOneWay)))
	if !category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "trip_category must be one_way, round_trip or multi_city",
		})
		return
	}

	onward, err := parseRequestedLeg(c.PostForm("requested_onward"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "requested_onward is not valid JSON"})
		return
	}
	ret, err := parseRequestedLeg(c.PostForm("requested_return"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "requested_return is not valid JSON"})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "could not read ticket file"})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "could not read ticket file"})
		return
	}

	input := &usecase.ExtractTicketInput{
		Data:        data,
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Category:    category,
		Onward:      onward,
		Return:      ret,
	}

	result, err := h.processor.ProcessTicket(c.Request.Context(), input)
	if err != nil {
		if ee, ok := entity.AsExtractionError(err); ok {
			c.JSON(http.StatusUnprocessableEntity, extractResponse{
				Success:        false,
				TicketCategory: string(category),
				AllJourneys:    []*ticket.Journey{},
				ErrorCode:      ee.Code,
				Error:          ee.Message,
			})
			return
		}
		h.logger.Error("Ticket processing failed", "filename", file.Filename, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal error"})
		return
	}

	journeys := result.Journeys
	if journeys == nil {
		journeys = []*ticket.Journey{}
	}

	c.JSON(http.StatusOK, extractResponse{
		Success:        true,
		RecordID:       result.RecordID,
		TicketCategory: string(result.Category),
		JourneysFound:  len(result.Journeys),
		AllJourneys:    journeys,
		Onward:         toMatchedLeg(result.Onward),
		Return:         toMatchedLeg(result.Return),
		Confidence:     result.Confidence,
		RawTextSample:  result.RawTextSample,
	})
}

// GetExtraction handles GET /api/v1/tickets/extractions/:id
func (h *TicketHandler) GetExtraction(c *gin.Context) {
	id := c.Param("id")

	record, err := h.processor.GetExtraction(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to load extraction record", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "internal error"})
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "extraction not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": record})
}

func parseRequestedLeg(raw string) (*ticket.RequestedLeg, error) {
	if raw == "" {
		return nil, nil
	}
	var leg ticket.RequestedLeg
	if err := json.Unmarshal([]byte(raw), &leg); err != nil {
		return nil, err
	}
	return &leg, nil
}

func toMatchedLeg(res *ticket.MatchResult) *matchedLeg {
	if res == nil {
		return nil
	}
	discs := res.Discrepancies
	if discs == nil {
		discs = []ticket.Discrepancy{}
	}
	return &matchedLeg{
		Journey:       res.Journey,
		Matched:       res.Matched,
		Discrepancies: discs,
	}
}
