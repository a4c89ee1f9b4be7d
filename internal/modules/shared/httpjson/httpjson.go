// Package httpjson holds the request body and error conventions of the
// service's raw JSON routes: every failure is answered as {"error": "..."}.
package httpjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gaborage/go-bricks/logger"
	"github.com/gaborage/go-bricks/server"
	"github.com/labstack/echo/v5"
)

const bodyKey = "httpjson.body"

var (
	// ErrBodyNotCaptured means the route was registered without CaptureBody.
	ErrBodyNotCaptured = errors.New("request body was not captured")
	// ErrNotObject means the body is valid JSON but not an object.
	ErrNotObject = errors.New("request body is not a JSON object")
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Response lets a handler choose its status code in raw response mode.
type Response = server.Result[any]

// OK wraps a 200 body.
func OK(data any) Response {
	return server.NewResult[any](http.StatusOK, data)
}

// Error wraps a failure status with an {"error": message} body.
func Error(status int, message string) Response {
	return server.NewResult[any](status, ErrorResponse{Error: message})
}

type capturedBody struct {
	data []byte
	err  error
}

// CaptureBody buffers the request body for Decode and hands the framework
// binder an empty request, so any content type reaches the handler,
// application/cloudevents+json included.
func CaptureBody() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) error {
			req := c.Request()
			data, err := io.ReadAll(req.Body)
			_ = req.Body.Close()

			c.Set(bodyKey, capturedBody{data: data, err: err})
			req.Body = http.NoBody
			req.ContentLength = 0

			return next(c)
		}
	}
}

// Decode unmarshals the captured body, which must be a JSON object, into v.
func Decode(c *echo.Context, v any) error {
	captured, ok := c.Get(bodyKey).(capturedBody)
	if !ok {
		return ErrBodyNotCaptured
	}
	if captured.err != nil {
		return fmt.Errorf("failed to read request body: %w", captured.err)
	}

	trimmed := bytes.TrimSpace(captured.data)
	if len(trimmed) > 0 && trimmed[0] != '{' {
		if !json.Valid(trimmed) {
			return fmt.Errorf("failed to decode request body: invalid JSON")
		}
		return ErrNotObject
	}
	if err := json.Unmarshal(trimmed, v); err != nil {
		return fmt.Errorf("failed to decode request body: %w", err)
	}
	return nil
}

// Recover answers a panic in the route's handler with a 500 and message.
func Recover(log logger.Logger, message string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c *echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				log.Error().
					Str("panic", fmt.Sprint(r)).
					Str("path", c.Request().URL.Path).
					Msg("Recovered from handler panic")

				if resp, uErr := echo.UnwrapResponse(c.Response()); uErr == nil && resp.Committed {
					err = nil
					return
				}
				err = c.JSON(http.StatusInternalServerError, ErrorResponse{Error: message})
			}()
			return next(c)
		}
	}
}

// Guard returns a registrar whose routes answer panics with message.
func Guard(r server.RouteRegistrar, log logger.Logger, message string) server.RouteRegistrar {
	return r.Group("", Recover(log, message))
}

// GuardWithBody is Guard for routes that Decode their own body.
func GuardWithBody(r server.RouteRegistrar, log logger.Logger, message string) server.RouteRegistrar {
	return r.Group("", Recover(log, message), CaptureBody())
}
