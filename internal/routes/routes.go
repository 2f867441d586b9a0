package routes

import (
	"time"

	"github.com/coffeechat/coffeechat-api/internal/config"
	"github.com/coffeechat/coffeechat-api/internal/handlers"
	"github.com/coffeechat/coffeechat-api/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	profileHandler *handlers.ProfileHandler,
	matchHandler *handlers.MatchHandler,
	appointmentHandler *handlers.AppointmentHandler,
	adminHandler *handlers.AdminHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — mock OAuth is public, phone verification needs the session.
	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/refresh", authHandler.Refresh)
	auth.Post("/logout", middleware.JWTProtected(cfg), authHandler.Logout)
	auth.Post("/phone/request", middleware.JWTProtected(cfg), authHandler.RequestPhoneCode)
	auth.Post("/phone/verify", middleware.JWTProtected(cfg), authHandler.VerifyPhone)
	auth.Post("/:provider", authHandler.SignIn)

	// Profile & availability (protected)
	me := api.Group("/me", middleware.JWTProtected(cfg))
	me.Get("/", profileHandler.Me)
	me.Put("/profile", profileHandler.UpdateProfile)
	me.Put("/interests", profileHandler.UpdateInterests)
	me.Get("/availability", profileHandler.ListAvailability)
	me.Post("/availability", profileHandler.AddAvailability)
	me.Delete("/availability/:id", profileHandler.DeleteAvailability)

	// Matching (protected)
	matches := api.Group("/matches", middleware.JWTProtected(cfg))
	matches.Get("/suggestions", matchHandler.Suggestions)
	matches.Get("/proposals", matchHandler.ListProposals)
	matches.Post("/proposals", matchHandler.CreateProposal)
	matches.Post("/:id/accept", matchHandler.AcceptProposal)
	matches.Post("/:id/reject", matchHandler.RejectProposal)

	// Appointments (protected)
	appointments := api.Group("/appointments", middleware.JWTProtected(cfg))
	appointments.Get("/:id", appointmentHandler.Get)
	appointments.Post("/:id/checkin", appointmentHandler.Checkin)
	appointments.Post("/:id/no-show", appointmentHandler.ReportNoShow)
	appointments.Post("/:id/review", appointmentHandler.Review)
	appointments.Post("/:id/report", appointmentHandler.Report)

	// Admin moderation console (session + admin credential)
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(cfg))
	admin.Get("/reports", adminHandler.ListReports)
	admin.Post("/reports/:id/resolve", adminHandler.ResolveReport)
	admin.Post("/users/:id/sanction", adminHandler.Sanction)
}
