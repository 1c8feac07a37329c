// Package server wires the HTTP transport: one echo instance, the bearer
// middleware and the route groups.
package server

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/okonst/portfolio-server/internal/api/rest/handler"
	"github.com/okonst/portfolio-server/internal/api/rest/middleware"
	"github.com/okonst/portfolio-server/internal/model"
)

// Handlers carries every route group the server mounts.
type Handlers struct {
	Auth     *handler.Auth
	Account  *handler.Account
	Project  *handler.Project
	Settings *handler.Settings
}

// Server wraps an echo instance with address and lifecycle methods.
type Server struct {
	echo *echo.Echo
	addr string
}

// New builds the router. Auth endpoints stay anonymous; account and project
// groups require a valid token; settings additionally require the admin role.
func New(addr string, readTimeout, writeTimeout time.Duration, authenticate *middleware.Authenticate, h Handlers) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.Server.ReadTimeout = readTimeout
	e.Server.WriteTimeout = writeTimeout

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(authenticate.Middleware())

	api := e.Group("/api/v1")
	h.Auth.RegisterRoutes(api)

	authed := api.Group("", middleware.RequireAuth())
	h.Account.RegisterRoutes(authed)
	h.Project.RegisterRoutes(authed)

	admin := api.Group("", middleware.RequireAuth(), middleware.RequireRole(model.RoleAdmin))
	h.Settings.RegisterRoutes(admin)

	return &Server{echo: e, addr: addr}
}

// Start begins serving on the configured address. Blocks until shutdown.
func (s *Server) Start() error {
	return s.echo.Start(s.addr)
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}

// Address returns the configured listen address.
func (s *Server) Address() string {
	return s.addr
}
