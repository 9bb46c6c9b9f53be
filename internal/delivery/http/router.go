package http

import (
	"net/http"

	"ai-calling-agent/internal/delivery/http/handler"
	"ai-calling-agent/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

// Handlers groups the API handlers the router mounts.
type Handlers struct {
	Auth            *handler.AuthHandler
	Company         *handler.CompanyHandler
	Doctor          *handler.DoctorHandler
	Vacancy         *handler.VacancyHandler
	Order           *handler.OrderHandler
	Appointment     *handler.AppointmentHandler
	Feedback        *handler.FeedbackHandler
	ConversationLog *handler.ConversationLogHandler
	Conversation    *handler.ConversationHandler
	Speech          *handler.SpeechHandler
	Tool            *handler.ToolHandler
}

type Router struct {
	router            *mux.Router
	handlers          Handlers
	authMiddleware    *middleware.AuthMiddleware
	corsMiddleware    *middleware.CORSMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
}

func NewRouter(
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	return &Router{
		router:            mux.NewRouter(),
		handlers:          handlers,
		authMiddleware:    authMiddleware,
		corsMiddleware:    corsMiddleware,
		loggingMiddleware: loggingMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	h := r.handlers
	api := r.router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/signup", h.Auth.Signup).Methods(http.MethodPost)
	auth.HandleFunc("/login", h.Auth.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh", h.Auth.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", h.Auth.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", h.Auth.Me).Methods(http.MethodGet)

	// Admin routes (protected - admin only). Registered before the public
	// routes so the more specific paths win.
	admin := api.NewRoute().Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/appointments/{id}", h.Appointment.DeleteAppointment).Methods(http.MethodDelete)
	admin.HandleFunc("/orders/{id}", h.Order.DeleteOrder).Methods(http.MethodDelete)
	admin.HandleFunc("/feedback/{id}", h.Feedback.DeleteFeedback).Methods(http.MethodDelete)
	admin.HandleFunc("/logs/export", h.ConversationLog.ExportLogs).Methods(http.MethodGet)

	// Public routes; a bearer token, when sent, identifies the caller.
	public := api.NewRoute().Subrouter()
	public.Use(r.authMiddleware.Identify)

	public.HandleFunc("/companies", h.Company.CreateCompany).Methods(http.MethodPost)
	public.HandleFunc("/companies", h.Company.GetAllCompanies).Methods(http.MethodGet)
	public.HandleFunc("/companies/{id}", h.Company.GetCompany).Methods(http.MethodGet)

	public.HandleFunc("/doctors", h.Doctor.CreateDoctor).Methods(http.MethodPost)
	public.HandleFunc("/doctors", h.Doctor.GetAllDoctors).Methods(http.MethodGet)
	public.HandleFunc("/doctors/{id}", h.Doctor.GetDoctor).Methods(http.MethodGet)

	public.HandleFunc("/vacancies", h.Vacancy.CreateVacancy).Methods(http.MethodPost)
	public.HandleFunc("/vacancies", h.Vacancy.GetAllVacancies).Methods(http.MethodGet)
	public.HandleFunc("/vacancies/{id}", h.Vacancy.GetVacancy).Methods(http.MethodGet)

	public.HandleFunc("/orders", h.Order.CreateOrder).Methods(http.MethodPost)
	public.HandleFunc("/orders", h.Order.GetAllOrders).Methods(http.MethodGet)
	public.HandleFunc("/orders/{id}", h.Order.TraceOrder).Methods(http.MethodGet)
	public.HandleFunc("/orders/{id}/status", h.Order.UpdateOrderStatus).Methods(http.MethodPatch)

	public.HandleFunc("/appointments", h.Appointment.CreateAppointment).Methods(http.MethodPost)
	public.HandleFunc("/appointments", h.Appointment.GetAllAppointments).Methods(http.MethodGet)
	public.HandleFunc("/appointments/slots", h.Appointment.GetSlots).Methods(http.MethodGet)
	public.HandleFunc("/appointments/{id}/status", h.Appointment.UpdateAppointmentStatus).Methods(http.MethodPatch)

	public.HandleFunc("/feedback", h.Feedback.CreateFeedback).Methods(http.MethodPost)
	public.HandleFunc("/feedback", h.Feedback.GetAllFeedback).Methods(http.MethodGet)

	public.HandleFunc("/logs", h.ConversationLog.GetAllLogs).Methods(http.MethodGet)

	public.HandleFunc("/chat", h.Conversation.Chat).Methods(http.MethodPost)
	public.HandleFunc("/speech/transcribe", h.Speech.Transcribe).Methods(http.MethodPost)
	public.HandleFunc("/speech/synthesize", h.Speech.Synthesize).Methods(http.MethodPost)

	public.HandleFunc("/tools", h.Tool.ListTools).Methods(http.MethodGet)
	public.HandleFunc("/tools/{name}", h.Tool.InvokeTool).Methods(http.MethodPost)

	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
