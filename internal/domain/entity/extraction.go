package entity

import (
	"time"

	"ticketscan-service/pkg/ticket"
)

// Extraction process status
const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusCompleted  = "COMPLETED"
	StatusFailed     = "FAILED"
)

// ExtractionRecord is the stored outcome of one ticket extraction request
type ExtractionRecord struct {
	ID             string           `json:"id" bson:"_id"`
	Filename       string           `json:"filename" bson:"filename"`
	ContentType    string           `json:"content_type" bson:"contentType"`
	TicketCategory string           `json:"ticket_category" bson:"ticketCategory"`
	Status         string           `json:"status" bson:"status"`
	JourneysFound  int              `json:"journeys_found" bson:"journeysFound"`
	Journeys       []ticket.Journey `json:"journeys,omitempty" bson:"journeys,omitempty"`
	OnwardMatched  *bool            `json:"onward_matched,omitempty" bson:"onwardMatched,omitempty"`
	ReturnMatched  *bool            `json:"return_matched,omitempty" bson:"returnMatched,omitempty"`
	Confidence     int              `json:"confidence" bson:"confidence"`
	ErrorCode      string           `json:"error_code,omitempty" bson:"errorCode,omitempty"`
	ErrorDetail    string           `json:"error_detail,omitempty" bson:"errorDetail,omitempty"`
	RawTextSample  string           `json:"raw_text_sample,omitempty" bson:"rawTextSample,omitempty"`
	ProcessingMs   int64            `json:"processing_ms" bson:"processingMs"`
	CreatedAt      time.Time        `json:"created_at" bson:"createdAt"`
	ProcessedAt    time.Time        `json:"processed_at" bson:"processedAt"`
}
