package handlers

import (
	"net/http"
	"time"

	_ "github.com/GlebRadaev/recyclepay/docs"
	accounthandlers "github.com/GlebRadaev/recyclepay/internal/handlers/account"
	adminhandlers "github.com/GlebRadaev/recyclepay/internal/handlers/admin"
	authhandlers "github.com/GlebRadaev/recyclepay/internal/handlers/auth"
	"github.com/GlebRadaev/recyclepay/internal/handlers/httpx"
	"github.com/GlebRadaev/recyclepay/internal/pg"
	"github.com/GlebRadaev/recyclepay/internal/service"
	"github.com/GlebRadaev/recyclepay/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type AccountHandler interface {
	Me(w http.ResponseWriter, r *http.Request)
	UpdateProfile(w http.ResponseWriter, r *http.Request)
	UpdatePayout(w http.ResponseWriter, r *http.Request)
	GetBalance(w http.ResponseWriter, r *http.Request)
	GetPayments(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	ListAccounts(w http.ResponseWriter, r *http.Request)
	CreateAccount(w http.ResponseWriter, r *http.Request)
	DeleteAccount(w http.ResponseWriter, r *http.Request)
	AccountPayments(w http.ResponseWriter, r *http.Request)
	RecordPayment(w http.ResponseWriter, r *http.Request)
	ListPayments(w http.ResponseWriter, r *http.Request)
	GetPayment(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	GetBalances(w http.ResponseWriter, r *http.Request)
	Report(w http.ResponseWriter, r *http.Request)
	Migrate(w http.ResponseWriter, r *http.Request)
}

type Options struct {
	RequestTimeout time.Duration
	CORSOrigins    []string
}

type Handlers struct {
	AuthHandler    AuthHandler
	AccountHandler AccountHandler
	AdminHandler   AdminHandler

	jwt    auth.JWTServiceInterface
	tokens auth.TokenChecker
	opts   Options
}

func New(s *service.Services, opts Options) *Handlers {
	return &Handlers{
		AuthHandler:    authhandlers.New(s.Identity),
		AccountHandler: accounthandlers.New(s.Identity, s.Ledger),
		AdminHandler:   adminhandlers.New(s.Identity, s.Ledger, s.Report, s.Migration),
		jwt:            s.JWT,
		tokens:         s.Tokens,
		opts:           opts,
	}
}

// probeMemo makes every storage decision of one request see the same
// backend.
func probeMemo(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(pg.WithProbeMemo(r.Context())))
	})
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	timeout := h.opts.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	origins := h.opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		cors.Handler(cors.Options{
			AllowedOrigins: origins,
			AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders: []string{"Authorization"},
			MaxAge:         300,
		}),
		middleware.Timeout(timeout),
		probeMemo,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))

	authenticated := auth.AuthMiddleware(h.jwt, h.tokens)

	r.Route("/api/user", func(r chi.Router) {
		r.Post("/register", h.AuthHandler.Register)
		r.Post("/login", h.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authenticated)
			r.Post("/logout", h.AuthHandler.Logout)
			r.Get("/me", h.AccountHandler.Me)
			r.Patch("/profile", h.AccountHandler.UpdateProfile)
			r.Put("/payout", h.AccountHandler.UpdatePayout)
			r.Get("/balance", h.AccountHandler.GetBalance)
			r.Get("/payments", h.AccountHandler.GetPayments)
		})
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(authenticated, httpx.AdminOnly)
		r.Route("/accounts", func(r chi.Router) {
			r.Get("/", h.AdminHandler.ListAccounts)
			r.Post("/", h.AdminHandler.CreateAccount)
			r.Delete("/{id}", h.AdminHandler.DeleteAccount)
			r.Get("/{id}/payments", h.AdminHandler.AccountPayments)
		})
		r.Route("/payments", func(r chi.Router) {
			r.Get("/", h.AdminHandler.ListPayments)
			r.Post("/", h.AdminHandler.RecordPayment)
			r.Get("/{id}", h.AdminHandler.GetPayment)
			r.Patch("/{id}/status", h.AdminHandler.UpdateStatus)
		})
		r.Get("/balances", h.AdminHandler.GetBalances)
		r.Get("/report", h.AdminHandler.Report)
		r.Post("/migrate", h.AdminHandler.Migrate)
	})

	return r
}
