// Package server exposes the triage engine and account operations over HTTP.
// The routing layer is deliberately thin: request parsing, error-to-status
// translation, and JSON shaping. All decisions happen in the engine.
package server

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/advice"
	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/audit"
	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/auth"
	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/engine"
	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/engine/classifier"
	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/engine/matcher"
	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/model"
	"github.com/Pervaiz-Sarfraz/healthcare-chatbot/internal/refdata"
)

// Server bundles the HTTP app with its dependencies. users and tokens may be
// nil, which disables the auth routes.
type Server struct {
	app      *fiber.App
	engine   *engine.Engine
	narrator *advice.Narrator
	trail    audit.Sink
	users    *auth.Store
	tokens   *auth.TokenIssuer
}

// New constructs a Server and registers all routes. A nil trail disables
// diagnosis auditing.
func New(eng *engine.Engine, narrator *advice.Narrator, trail audit.Sink, users *auth.Store, tokens *auth.TokenIssuer) *Server {
	if trail == nil {
		trail = audit.Nop{}
	}
	s := &Server{
		app:      fiber.New(fiber.Config{AppName: "chatdoctor", DisableStartupMessage: true}),
		engine:   eng,
		narrator: narrator,
		trail:    trail,
		users:    users,
		tokens:   tokens,
	}

	s.app.Use(cors)

	api := s.app.Group("/api")
	api.Post("/symptom", s.handleSymptom)
	api.Post("/followups", s.handleFollowups)
	api.Post("/diagnose", s.handleDiagnose)

	if s.users != nil && s.tokens != nil {
		api.Post("/auth/register", s.handleRegister)
		api.Post("/auth/login", s.handleLogin)
	}

	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	return s
}

// App returns the underlying fiber app, used by tests via app.Test.
func (s *Server) App() *fiber.App { return s.app }

// Listen serves on addr until Shutdown.
func (s *Server) Listen(addr string) error { return s.app.Listen(addr) }

// Shutdown drains connections and stops the server.
func (s *Server) Shutdown(timeout time.Duration) error {
	return s.app.ShutdownWithTimeout(timeout)
}

func cors(c *fiber.Ctx) error {
	c.Set("Access-Control-Allow-Origin", "*")
	c.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	c.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
	if c.Method() == fiber.MethodOptions {
		return c.SendStatus(fiber.StatusOK)
	}
	return c.Next()
}

type symptomRequest struct {
	Symptom string `json:"symptom"`
}

func (s *Server) handleSymptom(c *fiber.Ctx) error {
	var req symptomRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body.")
	}
	if req.Symptom == "" {
		return badRequest(c, "Symptom parameter missing.")
	}

	matches, err := s.engine.MatchSymptoms(req.Symptom)
	if errors.Is(err, matcher.ErrNoMatch) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "No matching symptoms found."})
	}
	if err != nil {
		return s.internalError(c, err)
	}
	return c.JSON(fiber.Map{"matches": matches})
}

type followupsRequest struct {
	SelectedSymptom string `json:"selected_symptom"`
}

func (s *Server) handleFollowups(c *fiber.Ctx) error {
	var req followupsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body.")
	}
	if req.SelectedSymptom == "" {
		return badRequest(c, "No symptom provided.")
	}

	disease, followups, err := s.engine.Followups(req.SelectedSymptom)
	if errors.Is(err, matcher.ErrNoMatch) {
		return badRequest(c, "Could not predict disease from symptom.")
	}
	if err != nil {
		return s.internalError(c, err)
	}
	if followups == nil {
		followups = []string{}
	}
	return c.JSON(fiber.Map{"disease": disease, "additional_symptoms": followups})
}

type diagnoseRequest struct {
	Name               string   `json:"name"`
	SelectedSymptom    string   `json:"selected_symptom"`
	Days               int      `json:"days"`
	AdditionalSymptoms []string `json:"additional_symptoms"`
}

type diagnoseResponse struct {
	model.Report
	Message string `json:"message,omitempty"`
}

func (s *Server) handleDiagnose(c *fiber.Ctx) error {
	var req diagnoseRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body.")
	}
	if req.SelectedSymptom == "" || req.Days <= 0 {
		return badRequest(c, "Invalid symptom or days.")
	}

	rep, err := s.engine.Diagnose(engine.Request{
		Symptom:    req.SelectedSymptom,
		Days:       req.Days,
		Additional: req.AdditionalSymptoms,
	})
	switch {
	case errors.Is(err, matcher.ErrNoMatch), errors.Is(err, engine.ErrInvalidDuration):
		return badRequest(c, "Invalid symptom or days.")
	case errors.Is(err, refdata.ErrNotReady), errors.Is(err, classifier.ErrModelNotLoaded):
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Service not ready."})
	case err != nil:
		return s.internalError(c, err)
	}

	if err := s.trail.Write(c.Context(), audit.NewEntry(req.Name, rep)); err != nil {
		slog.Warn("audit write failed", "err", err)
	}

	return c.JSON(diagnoseResponse{
		Report:  rep,
		Message: s.narrator.Narrate(c.Context(), rep, req.Name),
	})
}

type registerRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body.")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password are required.")
	}

	if _, err := s.users.Register(c.Context(), req.Email, req.Username, req.Password); err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			return badRequest(c, "Email already registered.")
		}
		return s.internalError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "User created"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body.")
	}

	u, err := s.users.Authenticate(c.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials."})
	}
	if err != nil {
		return s.internalError(c, err)
	}

	pair, err := s.tokens.Issue(u)
	if err != nil {
		return s.internalError(c, err)
	}
	return c.JSON(fiber.Map{
		"access":   pair.Access,
		"refresh":  pair.Refresh,
		"id":       u.ID,
		"username": u.Username,
		"email":    u.Email,
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func (s *Server) internalError(c *fiber.Ctx, err error) error {
	slog.Error("request failed", "path", c.Path(), "err", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error."})
}
