// Package flow implements the conversation engine: a fixed dialogue state
// machine that walks a user from greeting through location, service, and
// budget capture to ranked results, comparison, details, and confirmation.
//
// The engine is the only writer of session state. Messages for the same
// session are serialized on a per-session lock, so state transitions are
// atomic per message; messages for different sessions run concurrently.
package flow

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hudumahub/HudumaFinder/internal/catalog"
	"github.com/hudumahub/HudumaFinder/internal/models"
	"github.com/hudumahub/HudumaFinder/internal/rank"
	"github.com/hudumahub/HudumaFinder/internal/store"
)

// DefaultMaxShown is how many ranked results one page shows.
const DefaultMaxShown = 3

// LocationResolver is the geocoding capability the engine needs.
type LocationResolver interface {
	// Geocode resolves free text, possibly via a live backend.
	Geocode(ctx context.Context, text string) (models.Location, error)
	// RecognizeStatic resolves coordinates and known place names without
	// network calls; used where a lookup must never block on a backend.
	RecognizeStatic(text string) (models.Location, bool)
}

// Finder is the provider search capability the engine needs.
type Finder interface {
	Find(ctx context.Context, serviceType models.ServiceType, near models.Location, radiusKm float64, budget *models.BudgetRange) []models.ServiceProvider
}

// Engine drives the dialogue flow over a session store, a provider
// catalog, and a location resolver.
type Engine struct {
	store    store.Store
	finder   Finder
	resolver LocationResolver
	maxShown int

	locks sync.Map // session id -> *sync.Mutex
}

// Option configures the conversation engine.
type Option func(*Engine)

// WithMaxShown overrides how many results are rendered per page.
func WithMaxShown(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxShown = n
		}
	}
}

// NewEngine creates a conversation engine.
func NewEngine(st store.Store, finder Finder, resolver LocationResolver, opts ...Option) *Engine {
	e := &Engine{
		store:    st,
		finder:   finder,
		resolver: resolver,
		maxShown: DefaultMaxShown,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Handle processes one inbound message and returns the reply.
//
// Failures past input validation never reach the caller: the user gets a
// generic retry message and the session state is left as it was before the
// message, so the user can simply try again.
func (e *Engine) Handle(ctx context.Context, msg models.InboundMessage) (out models.OutboundMessage, err error) {
	if verr := msg.Validate(); verr != nil {
		return models.OutboundMessage{}, fmt.Errorf("invalid inbound message: %w", verr)
	}

	mu := e.sessionLock(msg.SessionID)
	mu.Lock()
	defer mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			slog.Error("Handle recovered from panic", "session_id", msg.SessionID, "panic", r)
			out = models.OutboundMessage{Body: tryAgainMessage}
			err = nil
		}
	}()

	state, serr := e.store.GetOrCreate(msg.SessionID)
	if serr != nil {
		slog.Error("Handle failed to load session", "session_id", msg.SessionID, "error", serr)
		return models.OutboundMessage{Body: tryAgainMessage}, nil
	}

	// Transitions run on a working copy; the stored state is only replaced
	// after the handler succeeds, so a failed message leaves no trace.
	work := *state
	reply := e.dispatch(ctx, &work, msg)

	work.UpdatedAt = time.Now()
	*state = work
	if serr := e.store.Save(state); serr != nil {
		slog.Error("Handle failed to save session", "session_id", msg.SessionID, "error", serr)
		return models.OutboundMessage{Body: tryAgainMessage}, nil
	}

	slog.Debug("Handle processed message", "session_id", msg.SessionID, "stage", state.Stage, "kind", msg.Kind)
	return reply, nil
}

func (e *Engine) sessionLock(sessionID string) *sync.Mutex {
	v, _ := e.locks.LoadOrStore(sessionID, &sync.Mutex{})
	return v.(*sync.Mutex)
}

func (e *Engine) dispatch(ctx context.Context, s *models.SessionState, msg models.InboundMessage) models.OutboundMessage {
	// Restart keywords work from any stage.
	if msg.Kind == models.MessageKindText && isRestart(msg.Text) {
		s.Reset()
		return e.handleWelcome(ctx, s, msg)
	}

	switch s.Stage {
	case models.StageWelcome:
		return e.handleWelcome(ctx, s, msg)
	case models.StageAskLocation:
		return e.handleAskLocation(ctx, s, msg)
	case models.StageAskService:
		return e.handleAskService(s, msg)
	case models.StageAskBudget:
		return e.handleAskBudget(ctx, s, msg)
	case models.StageShowResults:
		return e.handleShowResults(ctx, s, msg)
	case models.StageCompareOptions:
		return e.handleCompareOptions(s, msg)
	case models.StageGetMoreDetails:
		return e.handleGetMoreDetails(ctx, s, msg)
	case models.StageConfirmChoice:
		return e.handleConfirmChoice(s)
	default:
		// Unknown persisted stage; recover by restarting the dialogue.
		slog.Warn("dispatch found unknown stage, resetting", "session_id", s.SessionID, "stage", s.Stage)
		s.Reset()
		return e.handleWelcome(ctx, s, msg)
	}
}

// handleWelcome greets the user. A first message that already carries a
// usable location (a shared pin, coordinates, or a known place name) skips
// the location question entirely.
func (e *Engine) handleWelcome(ctx context.Context, s *models.SessionState, msg models.InboundMessage) models.OutboundMessage {
	if msg.Kind == models.MessageKindLocation {
		return e.acceptLocation(s, sharedLocation(msg))
	}
	if loc, ok := e.resolver.RecognizeStatic(msg.Text); ok {
		return e.acceptLocation(s, loc)
	}

	s.Stage = models.StageAskLocation
	return models.OutboundMessage{Body: welcomeMessage}
}

// handleAskLocation resolves the user's answer to the location question.
// A shared location pin bypasses geocoding; unrecognized text re-prompts
// with examples and keeps the stage.
func (e *Engine) handleAskLocation(ctx context.Context, s *models.SessionState, msg models.InboundMessage) models.OutboundMessage {
	if msg.Kind == models.MessageKindLocation {
		return e.acceptLocation(s, sharedLocation(msg))
	}

	loc, err := e.resolver.Geocode(ctx, msg.Text)
	if err != nil {
		slog.Debug("handleAskLocation could not resolve input", "session_id", s.SessionID, "error", err)
		return models.OutboundMessage{Body: locationRetryMessage}
	}
	return e.acceptLocation(s, loc)
}

func (e *Engine) acceptLocation(s *models.SessionState, loc models.Location) models.OutboundMessage {
	s.UserLocation = &loc
	s.Stage = models.StageAskService
	return models.OutboundMessage{Body: locationConfirmMessage(loc)}
}

// handleAskService matches the answer against the service synonym table,
// which covers English and Swahili phrasings.
func (e *Engine) handleAskService(s *models.SessionState, msg models.InboundMessage) models.OutboundMessage {
	st, ok := catalog.ResolveServiceType(msg.Text)
	if !ok {
		return models.OutboundMessage{Body: serviceRetryMessage()}
	}
	s.ServiceType = st
	s.Stage = models.StageAskBudget
	return models.OutboundMessage{Body: budgetPromptMessage(st)}
}

// handleAskBudget always advances: a recognizable answer selects a bucket,
// anything else (including "no preference") searches without one.
func (e *Engine) handleAskBudget(ctx context.Context, s *models.SessionState, msg models.InboundMessage) models.OutboundMessage {
	s.Budget = parseBudget(msg.Text)
	s.Stage = models.StageShowResults
	return e.showResults(ctx, s)
}

// showResults runs the search + ranking pipeline and renders the first
// page. An empty result at the default radius is retried once at the
// widened radius without the budget filter before giving up.
func (e *Engine) showResults(ctx context.Context, s *models.SessionState) models.OutboundMessage {
	loc := *s.UserLocation
	results := e.finder.Find(ctx, s.ServiceType, loc, catalog.DefaultSearchRadiusKm, s.Budget)
	if len(results) == 0 {
		slog.Debug("showResults retrying with widened radius", "session_id", s.SessionID, "service_type", s.ServiceType)
		results = e.finder.Find(ctx, s.ServiceType, loc, catalog.WidenedSearchRadiusKm, nil)
	}

	ranked := rank.Rank(results, loc, s.Budget)
	s.SetResults(ranked)

	if len(ranked) == 0 {
		return models.OutboundMessage{Body: noResultsMessage}
	}
	return models.OutboundMessage{Body: resultsMessage(ranked, loc, 0, e.maxShown)}
}

// handleShowResults routes interactions with a rendered result list. With
// an empty list the user can name a different service and search again.
func (e *Engine) handleShowResults(ctx context.Context, s *models.SessionState, msg models.InboundMessage) models.OutboundMessage {
	if msg.Kind == models.MessageKindLocation {
		// Moving the pin restarts the search around the new position.
		loc := sharedLocation(msg)
		s.UserLocation = &loc
		return e.showResults(ctx, s)
	}

	text := normalize(msg.Text)
	switch {
	case text == "compare" || text == "comparison":
		if len(s.LastResults) < 2 {
			return models.OutboundMessage{Body: "I need at least 2 options to compare. Type a number for details or \"new\" for a new search."}
		}
		s.Stage = models.StageCompareOptions
		return models.OutboundMessage{Body: comparisonMessage(s.LastResults, *s.UserLocation, e.maxShown)}
	case text == "more":
		if len(s.LastResults) <= e.maxShown {
			return models.OutboundMessage{Body: "No more results to show. Type \"compare\" to compare options or \"new\" for a new search."}
		}
		return models.OutboundMessage{Body: resultsMessage(s.LastResults, *s.UserLocation, e.maxShown, e.maxShown)}
	case text == "new":
		s.Reset()
		s.Stage = models.StageAskLocation
		return models.OutboundMessage{Body: welcomeMessage}
	}

	if i, ok := parseSelection(text); ok {
		return e.selectOption(s, i)
	}

	// With no results on record, accept a changed service type or budget
	// directly and search again.
	if len(s.LastResults) == 0 {
		if st, ok := catalog.ResolveServiceType(msg.Text); ok {
			s.ServiceType = st
			return e.showResults(ctx, s)
		}
		if b, ok := parseBudgetChange(msg.Text); ok {
			s.Budget = b
			return e.showResults(ctx, s)
		}
		return models.OutboundMessage{Body: noResultsMessage}
	}
	return models.OutboundMessage{Body: resultsHelpMessage}
}

// selectOption resolves a 1-based option number into GET_MORE_DETAILS.
func (e *Engine) selectOption(s *models.SessionState, i int) models.OutboundMessage {
	p, err := rank.ByIndex(s.LastResults, i)
	if err != nil {
		slog.Debug("selectOption rejected index", "session_id", s.SessionID, "index", i, "error", err)
		return models.OutboundMessage{Body: "Invalid option number. Please choose a valid number from the list."}
	}
	s.SelectedIndex = i
	s.Stage = models.StageGetMoreDetails
	return models.OutboundMessage{Body: detailMessage(p, *s.UserLocation)}
}

func (e *Engine) handleCompareOptions(s *models.SessionState, msg models.InboundMessage) models.OutboundMessage {
	text := normalize(msg.Text)
	switch {
	case text == "back":
		s.Stage = models.StageShowResults
		return models.OutboundMessage{Body: resultsMessage(s.LastResults, *s.UserLocation, 0, e.maxShown)}
	case text == "compare" || text == "comparison":
		return models.OutboundMessage{Body: comparisonMessage(s.LastResults, *s.UserLocation, e.maxShown)}
	}
	if i, ok := parseSelection(text); ok {
		return e.selectOption(s, i)
	}
	return models.OutboundMessage{Body: "Please type a valid option number or \"back\" to return."}
}

func (e *Engine) handleGetMoreDetails(ctx context.Context, s *models.SessionState, msg models.InboundMessage) models.OutboundMessage {
	p := s.SelectedProvider()
	if p == nil {
		// Selection lost (e.g. state replaced underneath); fall back to the list.
		s.Stage = models.StageShowResults
		return models.OutboundMessage{Body: resultsMessage(s.LastResults, *s.UserLocation, 0, e.maxShown)}
	}

	text := normalize(msg.Text)
	switch {
	case text == "call":
		return models.OutboundMessage{Body: callMessage(*p)}
	case text == "directions":
		return models.OutboundMessage{
			Body: directionsMessage(*p, *s.UserLocation),
			Attachments: []models.Attachment{
				{Kind: models.AttachmentMapPin, Latitude: p.Location.Latitude, Longitude: p.Location.Longitude, Name: p.Name},
				{Kind: models.AttachmentLink, URL: mapsLink(p.Location), Name: "Google Maps"},
			},
		}
	case text == "compare":
		if len(s.LastResults) >= 2 {
			s.Stage = models.StageCompareOptions
			return models.OutboundMessage{Body: comparisonMessage(s.LastResults, *s.UserLocation, e.maxShown)}
		}
		s.Stage = models.StageShowResults
		return models.OutboundMessage{Body: resultsMessage(s.LastResults, *s.UserLocation, 0, e.maxShown)}
	case text == "back":
		s.Stage = models.StageShowResults
		return models.OutboundMessage{Body: resultsMessage(s.LastResults, *s.UserLocation, 0, e.maxShown)}
	case text == "new":
		s.Reset()
		s.Stage = models.StageAskLocation
		return models.OutboundMessage{Body: welcomeMessage}
	case isConfirm(text):
		s.Stage = models.StageConfirmChoice
		return e.handleConfirmChoice(s)
	}
	return models.OutboundMessage{Body: detailsHelpMessage}
}

// handleConfirmChoice emits the final confirmation, then resets the
// dialogue for a follow-up search. The user's location is kept so they are
// not asked for it again; the next question is the first unanswered one.
func (e *Engine) handleConfirmChoice(s *models.SessionState) models.OutboundMessage {
	p := s.SelectedProvider()
	loc := s.UserLocation

	body := confirmationMessage(p, loc != nil)
	if p != nil {
		slog.Info("choice confirmed", "session_id", s.SessionID, "provider_id", p.ID, "service_type", s.ServiceType)
	}

	s.Reset()
	s.UserLocation = loc
	if loc != nil {
		s.Stage = models.StageAskService
	} else {
		s.Stage = models.StageAskLocation
	}
	return models.OutboundMessage{Body: body}
}

// sharedLocation builds a Location from a shared WhatsApp pin.
func sharedLocation(msg models.InboundMessage) models.Location {
	return models.Location{
		Latitude:  msg.Latitude,
		Longitude: msg.Longitude,
		AreaName:  "your shared location",
	}
}
