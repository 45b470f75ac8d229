package http

import (
	"net/http"
	"strings"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/actor"
	"fulfillment/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/labstack/echo/v4"
)

// ActorHeader names the operator performing a request.
const ActorHeader = "X-Actor"

// WithActor copies the X-Actor header into the request context.
func WithActor() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if name := strings.TrimSpace(ctx.Request().Header.Get(ActorHeader)); name != "" {
				req := ctx.Request()
				ctx.SetRequest(req.WithContext(actor.WithActor(req.Context(), name)))
			}
			return next(ctx)
		}
	}
}

// Requires rejects the request unless the authorizer allows its actor to
// perform action. Requests without an actor are unauthorized.
func Requires(authorizer ports.Authorizer, action ports.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			name := strings.TrimSpace(ctx.Request().Header.Get(ActorHeader))
			if name == "" {
				return respondStatus(ctx, http.StatusUnauthorized, "unauthorized", ActorHeader+" header is required")
			}

			allowed, err := authorizer.MayPerform(ctx.Request().Context(), name, action)
			if err != nil {
				return respondError(ctx, err)
			}
			if !allowed {
				return respondStatus(ctx, http.StatusForbidden, "forbidden",
					name+" may not perform "+string(action))
			}
			return next(ctx)
		}
	}
}

// ValidateRequests checks documented requests against the OpenAPI document.
// Paths the document does not describe pass through.
func ValidateRequests(router routers.Router) echo.MiddlewareFunc {
	options := &openapi3filter.Options{AuthenticationFunc: openapi3filter.NoopAuthenticationFunc}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			req := ctx.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				return next(ctx)
			}

			err = openapi3filter.ValidateRequest(req.Context(), &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			})
			if err != nil {
				return respondError(ctx, errs.NewValueIsInvalidErrorWithCause("request", err))
			}
			return next(ctx)
		}
	}
}
