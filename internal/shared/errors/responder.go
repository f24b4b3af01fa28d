package errors

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Responder writes envelopes and turns errors into failure envelopes.
type Responder struct {
	logger *slog.Logger
}

// NewResponder creates a responder. A nil logger disables failure logging.
func NewResponder(logger *slog.Logger) *Responder {
	return &Responder{logger: logger}
}

// DefaultResponder does not log.
var DefaultResponder = NewResponder(nil)

// Respond sends an APIError as a failure envelope.
func (r *Responder) Respond(c *gin.Context, apiErr APIError) {
	if r.logger != nil && apiErr.Status >= http.StatusInternalServerError {
		attrs := []slog.Attr{slog.String("path", c.Request.URL.Path), slog.Int("status", apiErr.Status)}
		if apiErr.Cause != nil {
			attrs = append(attrs, slog.String("error", apiErr.Cause.Error()))
		}
		r.logger.LogAttrs(c.Request.Context(), slog.LevelError, "request failed", attrs...)
	}
	c.JSON(apiErr.Status, apiErr.Envelope())
}

// RespondError converts a standard error to an APIError and responds.
// Unknown errors become 500s and their text is kept out of the body.
func (r *Responder) RespondError(c *gin.Context, err error) {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		r.Respond(c, apiErr)
		return
	}
	r.Respond(c, ErrInternal.WithCause(err))
}

// Success sends a success envelope.
func (r *Responder) Success(c *gin.Context, status int, message string, content any) {
	c.JSON(status, Envelope{Success: true, Message: message, Content: content})
}

// SuccessWithSummary sends a success envelope with a summary block.
func (r *Responder) SuccessWithSummary(c *gin.Context, status int, message string, content, summary any) {
	c.JSON(status, Envelope{Success: true, Message: message, Content: content, Summary: summary})
}

// BadRequest sends a 400 envelope.
func (r *Responder) BadRequest(c *gin.Context, message string) {
	r.Respond(c, ErrValidation.WithMessage(message))
}

// Respond is a convenience function using the default responder.
func Respond(c *gin.Context, apiErr APIError) {
	DefaultResponder.Respond(c, apiErr)
}

// RespondError is a convenience function using the default responder.
func RespondError(c *gin.Context, err error) {
	DefaultResponder.RespondError(c, err)
}

// Success is a convenience function using the default responder.
func Success(c *gin.Context, status int, message string, content any) {
	DefaultResponder.Success(c, status, message, content)
}

// ErrorMapper maps domain/application errors to APIError.
type ErrorMapper func(err error) (APIError, bool)

// ChainedResponder supports custom error mapping.
type ChainedResponder struct {
	*Responder
	mappers []ErrorMapper
}

// NewChainedResponder creates a responder with custom error mappers.
func NewChainedResponder(logger *slog.Logger, mappers ...ErrorMapper) *ChainedResponder {
	return &ChainedResponder{
		Responder: NewResponder(logger),
		mappers:   mappers,
	}
}

// AddMapper adds an error mapper to the chain.
func (r *ChainedResponder) AddMapper(mapper ErrorMapper) {
	r.mappers = append(r.mappers, mapper)
}

// RespondError tries each mapper before falling back to default handling.
func (r *ChainedResponder) RespondError(c *gin.Context, err error) {
	if apiErr, ok := r.Map(err); ok {
		r.Respond(c, apiErr)
		return
	}
	r.Responder.RespondError(c, err)
}

// Map runs the mapper chain without writing a response.
func (r *ChainedResponder) Map(err error) (APIError, bool) {
	for _, mapper := range r.mappers {
		if apiErr, ok := mapper(err); ok {
			return apiErr.WithCause(err), true
		}
	}
	return APIError{}, false
}

// HTTPStatusFromError extracts HTTP status from an error if possible.
func HTTPStatusFromError(err error) int {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return http.StatusInternalServerError
}
