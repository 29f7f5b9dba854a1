package usecase

import (
	"context"
	"strings"
	"time"

	"ticketscan-service/internal/domain/entity"
	"ticketscan-service/internal/domain/repository"
	"ticketscan-service/pkg/logger"
	"ticketscan-service/pkg/metrics"
	"ticketscan-service/pkg/ticket"

	"github.com/google/uuid"
)

// minTextLength is the usable-character floor below which extraction fails
const minTextLength = 20

// rawSampleLength caps the raw text sample stored and returned
const rawSampleLength = 500

// ExtractTicketInput is one uploaded ticket plus the requested itinerary
type ExtractTicketInput struct {
	Data        []byte
	Filename    string
	ContentType string
	Category    ticket.TripCategory
	Onward      *ticket.RequestedLeg
	Return      *ticket.RequestedLeg
}

// ExtractTicketResult is the pipeline outcome for one ticket
type ExtractTicketResult struct {
	RecordID      string
	Category      ticket.TripCategory
	Journeys      []*ticket.Journey
	Onward        *ticket.MatchResult
	Return        *ticket.MatchResult
	Confidence    int
	RawTextSample string
}

// TicketProcessor handles the ticket extraction pipeline
type TicketProcessor struct {
	extractorRouter *ExtractorRouter
	parser          *ticket.Parser
	matcher         *ticket.Matcher
	flightLookup    repository.FlightLookupRepository
	airlineRepo     repository.AirlineRepository
	airportRepo     repository.AirportRepository
	extractionRepo  repository.ExtractionRepository
	metrics         *metrics.Metrics
	logger          logger.Logger
}

// NewTicketProcessor creates a new ticket processor. flightLookup,
// airlineRepo, airportRepo and extractionRepo may be nil; pipeline
// steps without a collaborator are skipped.
func NewTicketProcessor(
	extractorRouter *ExtractorRouter,
	flightLookup repository.FlightLookupRepository,
	airlineRepo repository.AirlineRepository,
	airportRepo repository.AirportRepository,
	extractionRepo repository.ExtractionRepository,
	metrics *metrics.Metrics,
	logger logger.Logger,
) *TicketProcessor {
	return &TicketProcessor{
		extractorRouter: extractorRouter,
		parser:          ticket.NewParser(logger),
		matcher:         ticket.NewMatcher(logger),
		flightLookup:    flightLookup,
		airlineRepo:     airlineRepo,
		airportRepo:     airportRepo,
		extractionRepo:  extractionRepo,
		metrics:         metrics,
		logger:          logger,
	}
}

// ProcessTicket runs the full pipeline: extract text, reconstruct
// journeys, enrich them, match against the requested itinerary, score
// and persist. Terminal failures return an *entity.ExtractionError.
func (tp *TicketProcessor) ProcessTicket(ctx context.Context, input *ExtractTicketInput) (*ExtractTicketResult, error) {
	start := time.Now()
	recordID := uuid.NewString()

	tp.logger.Info("Starting ticket processing",
		"recordId", recordID,
		"filename", input.Filename,
		"category", string(input.Category))

	text, err := tp.extractorRouter.ExtractText(ctx, input.Data, input.Filename, input.ContentType)
	if err != nil {
		return nil, tp.failExtraction(ctx, recordID, input, start, err)
	}

	normalized := ticket.Normalize(text)
	if len(strings.TrimSpace(normalized)) < minTextLength {
		err := entity.NewExtractionError(entity.ErrCodeInsufficientText,
			"Could not extract text from the ticket. Please make sure the document is clear and readable.")
		return nil, tp.failExtraction(ctx, recordID, input, start, err)
	}

	journeys := tp.parser.AssembleJourneys(normalized)
	tp.logger.Info("Journeys assembled", "recordId", recordID, "count", len(journeys))

	tp.enrichJourneys(ctx, journeys)

	onwardRes, returnRes := tp.matcher.MatchItinerary(input.Category, journeys, input.Onward, input.Return)
	confidence := ticket.ConfidenceScore(onwardRes, returnRes)

	result := &ExtractTicketResult{
		RecordID:      recordID,
		Category:      input.Category,
		Journeys:      journeys,
		Onward:        onwardRes,
		Return:        returnRes,
		Confidence:    confidence,
		RawTextSample: sampleText(normalized, rawSampleLength),
	}

	tp.persistResult(ctx, recordID, input, result, start)

	tp.metrics.TicketsProcessed.Inc()
	tp.metrics.ExtractionTime.Observe(time.Since(start).Seconds())
	tp.metrics.JourneysFound.Observe(float64(len(journeys)))
	tp.metrics.ConfidenceScore.Observe(float64(confidence))

	tp.logger.Info("Ticket processed",
		"recordId", recordID,
		"journeys", len(journeys),
		"confidence", confidence,
		"durationMs", time.Since(start).Milliseconds())

	return result, nil
}

// GetExtraction loads a stored extraction record, nil when absent
func (tp *TicketProcessor) GetExtraction(ctx context.Context, id string) (*entity.ExtractionRecord, error) {
	if tp.extractionRepo == nil {
		return nil, nil
	}
	return tp.extractionRepo.FindByID(ctx, id)
}

// enrichJourneys fills journey gaps from the flight-data service and
// the local reference tables. Enrichment never fails the extraction;
// lookup errors leave the journey with its scanned fields.
func (tp *TicketProcessor) enrichJourneys(ctx context.Context, journeys []*ticket.Journey) {
	for _, j := range journeys {
		if tp.flightLookup != nil && j.FlightNumber != "" {
			tp.enrichFromLookup(ctx, j)
		}
		if tp.airlineRepo != nil && j.Airline == "" && j.FlightNumber != "" {
			tp.fillAirlineName(ctx, j)
		}
		if tp.airportRepo != nil {
			tp.fillCityNames(ctx, j)
		}

		if ticket.ClearImpossibleTimes(j) {
			tp.logger.Warn("Cleared impossible times after enrichment", "flight", j.FlightNumber)
		}
	}
}

func (tp *TicketProcessor) enrichFromLookup(ctx context.Context, j *ticket.Journey) {
	req := &entity.FlightLookupRequest{
		FlightNumber:     j.FlightNumber,
		DepartureAirport: j.DepartureAirport,
		ArrivalAirport:   j.ArrivalAirport,
		DepartureTime:    j.DepartureTime,
		ArrivalTime:      j.ArrivalTime,
	}

	res, err := tp.flightLookup.Lookup(ctx, req)
	if err != nil {
		tp.metrics.ErrorsCount.WithLabelValues("flight_lookup").Inc()
		tp.logger.Warn("Flight lookup failed, keeping scanned fields",
			"flight", j.FlightNumber, "error", err)
		return
	}
	if !res.Enhanced {
		return
	}

	// Lookup times are authoritative; other fields only fill gaps
	if res.DepartureTime != "" {
		j.DepartureTime = res.DepartureTime
	}
	if res.ArrivalTime != "" {
		j.ArrivalTime = res.ArrivalTime
	}
	if j.Airline == "" && res.Airline != "" {
		j.Airline = res.Airline
	}
	if j.DepartureCity == "" && res.DepartureCity != "" {
		j.DepartureCity = res.DepartureCity
	}
	if j.ArrivalCity == "" && res.ArrivalCity != "" {
		j.ArrivalCity = res.ArrivalCity
	}
}

func (tp *TicketProcessor) fillAirlineName(ctx context.Context, j *ticket.Journey) {
	prefix := j.FlightNumber
	if idx := strings.Index(prefix, "-"); idx > 0 {
		prefix = prefix[:idx]
	}

	airline, err := tp.airlineRepo.GetByCode(ctx, prefix)
	if err != nil {
		tp.logger.Debug("Airline lookup missed", "code", prefix, "error", err)
		return
	}
	j.Airline = airline.Name
}

func (tp *TicketProcessor) fillCityNames(ctx context.Context, j *ticket.Journey) {
	if j.DepartureCity == "" && j.DepartureAirport != "" {
		if airport, err := tp.airportRepo.GetByCode(ctx, j.DepartureAirport); err == nil {
			j.DepartureCity = airport.CityName
		}
	}
	if j.ArrivalCity == "" && j.ArrivalAirport != "" {
		if airport, err := tp.airportRepo.GetByCode(ctx, j.ArrivalAirport); err == nil {
			j.ArrivalCity = airport.CityName
		}
	}
}

// failExtraction records a terminal failure and passes the error through
func (tp *TicketProcessor) failExtraction(ctx context.Context, recordID string, input *ExtractTicketInput, start time.Time, err error) error {
	code := ""
	if ee, ok := entity.AsExtractionError(err); ok {
		code = ee.Code
	}

	tp.metrics.ErrorsCount.WithLabelValues("extract_text").Inc()
	tp.logger.Warn("Ticket extraction failed",
		"recordId", recordID,
		"filename", input.Filename,
		"errorCode", code,
		"error", err)

	tp.saveRecord(ctx, &entity.ExtractionRecord{
		ID:             recordID,
		Filename:       input.Filename,
		ContentType:    input.ContentType,
		TicketCategory: string(input.Category),
		Status:         entity.StatusFailed,
		ErrorCode:      code,
		ErrorDetail:    err.Error(),
		ProcessingMs:   time.Since(start).Milliseconds(),
		CreatedAt:      start,
		ProcessedAt:    time.Now(),
	})

	return err
}

func (tp *TicketProcessor) persistResult(ctx context.Context, recordID string, input *ExtractTicketInput, result *ExtractTicketResult, start time.Time) {
	record := &entity.ExtractionRecord{
		ID:             recordID,
		Filename:       input.Filename,
		ContentType:    input.ContentType,
		TicketCategory: string(input.Category),
		Status:         entity.StatusCompleted,
		JourneysFound:  len(result.Journeys),
		Confidence:     result.Confidence,
		RawTextSample:  result.RawTextSample,
		ProcessingMs:   time.Since(start).Milliseconds(),
		CreatedAt:      start,
		ProcessedAt:    time.Now(),
	}

	for _, j := range result.Journeys {
		record.Journeys = append(record.Journeys, *j)
	}
	if result.Onward != nil {
		record.OnwardMatched = &result.Onward.Matched
	}
	if result.Return != nil {
		record.ReturnMatched = &result.Return.Matched
	}

	tp.saveRecord(ctx, record)
}

// saveRecord persists best-effort; a failed save never fails the request
func (tp *TicketProcessor) saveRecord(ctx context.Context, record *entity.ExtractionRecord) {
	if tp.extractionRepo == nil {
		return
	}
	if err := tp.extractionRepo.Save(ctx, record); err != nil {
		tp.metrics.ErrorsCount.WithLabelValues("persist").Inc()
		tp.logger.Error("Failed to save extraction record", "recordId", record.ID, "error", err)
	}
}

// sampleText returns the first max runes of s
func sampleText(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
