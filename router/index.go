package router

import (
	"event_ticketing/constants"
	"event_ticketing/handler"
	"event_ticketing/middleware"
	"event_ticketing/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/signup", validate.Signup(), handler.Signup)
	auth.Post("/login", handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)
	auth.Post("/logout", handler.Logout)
	auth.Get("/me", middleware.Protected(), handler.Me)

	// public catalogue
	events := v1.Group("/events", logger.New())
	events.Get("/", handler.GetUpcomingEvents)
	events.Get("/:slug", handler.GetEventBySlug)
	events.Get("/:eventId/seats", validate.GetById("eventId"), handler.GetEventSeats)
	events.Get("/:eventId/seats/live", validate.GetById("eventId"), websocket.New(handler.SeatWebsocket))

	admin := v1.Group("/admin", logger.New(), middleware.Protected(), middleware.AllowRoles(constants.ROLE_ADMIN))
	admin.Post("/venues", validate.CreateVenue(), handler.CreateVenue)
	admin.Get("/venues", handler.GetVenues)
	admin.Post("/events", validate.CreateEvent(), handler.CreateEvent)
	admin.Get("/events", handler.GetAllEvents)
	admin.Put("/events/:eventId/status", validate.GetById("eventId"), validate.UpdateEventStatus(), handler.UpdateEventStatus)
	admin.Get("/organizers", handler.GetOrganizers)
	admin.Get("/organizers/:organizerId/profile", validate.GetById("organizerId"), handler.GetOrganizerProfile)
	admin.Post("/seed", handler.SeedDemoData)

	organizer := v1.Group("/organizer", logger.New(), middleware.Protected(), middleware.AllowRoles(constants.ROLE_ORGANIZER))
	organizer.Get("/events", handler.GetOrganizerEvents)
	organizer.Get("/events/:eventId/summary", validate.GetById("eventId"), handler.GetEventSummary)
	organizer.Put("/events/:eventId/close", validate.GetById("eventId"), handler.CloseEvent)
	organizer.Post("/events/:eventId/seats", validate.GetById("eventId"), validate.ExpandSeats(), handler.CreateSeats)
	organizer.Post("/offers", validate.CreateOffer(), handler.CreateOffer)
	organizer.Get("/profile", handler.GetMyProfile)
	organizer.Put("/profile", validate.UpdateProfile(), handler.UpsertMyProfile)

	customer := v1.Group("/customer", logger.New(), middleware.Protected(), middleware.AllowRoles(constants.ROLE_CUSTOMER))
	customer.Post("/orders", validate.PlaceOrder(), handler.PlaceOrder)
	customer.Get("/orders", handler.GetMyOrders)
	customer.Post("/orders/:orderId/confirm-payment", validate.GetById("orderId"), validate.ConfirmPayment(), handler.ConfirmPayment)
	customer.Post("/orders/:orderId/gateway-intent", validate.GetById("orderId"), handler.CreateGatewayIntent)
	customer.Post("/orders/:orderId/verify-payment", validate.GetById("orderId"), validate.VerifyPayment(), handler.VerifyGatewayPayment)
	customer.Get("/tickets", handler.GetMyTickets)
	customer.Post("/refunds", validate.CreateRefund(), handler.RequestRefund)
	customer.Post("/support-cases", validate.CreateSupportCase(), handler.CreateSupportCase)
	customer.Get("/support-cases", handler.GetMySupportCases)

	entry := v1.Group("/entry", logger.New(), middleware.Protected(), middleware.AllowRoles(constants.ROLE_ENTRY_MANAGER))
	entry.Post("/validate", validate.ValidateTicket(), handler.ValidateTicket)
	entry.Post("/tickets/:ticketId/use", validate.GetById("ticketId"), handler.MarkTicketUsed)
	entry.Get("/logs", handler.GetEntryLogs)

	support := v1.Group("/support", logger.New(), middleware.Protected(), middleware.AllowRoles(constants.ROLE_SUPPORT))
	support.Get("/cases", handler.GetSupportCases)
	support.Put("/cases/:caseId", validate.GetById("caseId"), validate.UpdateSupportCase(), handler.UpdateSupportCase)
	support.Get("/refunds", handler.GetRefundRequests)
	support.Put("/refunds/:refundId", validate.GetById("refundId"), validate.ResolveRefund(), handler.ResolveRefund)
}
