package routes

import (
	"net/http"
	"time"

	"github.com/works360/meta-partner-demos-sub000/controllers"
	"github.com/works360/meta-partner-demos-sub000/controllers/auth"
	"github.com/works360/meta-partner-demos-sub000/controllers/users"
	"github.com/works360/meta-partner-demos-sub000/middleware"

	"github.com/gorilla/mux"
)

// UsersRoutes registers the portal-facing routes on the given subrouter.
func UsersRoutes(api *mux.Router) {
	// Rate limiter for login/register: 60 per IP per 5 minutes
	loginLimiter := middleware.NewIPRateLimiter(60, 5*time.Minute)
	// General API limiter: 300 per IP per minute
	apiLimiter := middleware.NewIPRateLimiter(300, time.Minute)

	// Register & Login
	api.Handle("/register", loginLimiter.Middleware(http.HandlerFunc(auth.RegisterHandler))).Methods(http.MethodPost)
	api.Handle("/login", loginLimiter.Middleware(http.HandlerFunc(auth.LoginHandler))).Methods(http.MethodPost)
	api.Handle("/refresh", loginLimiter.Middleware(http.HandlerFunc(auth.RefreshHandler))).Methods(http.MethodPost)
	api.Handle("/logout", apiLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(auth.LogoutHandler)))).Methods(http.MethodPost)

	// Forgot password
	api.Handle("/auth/forgot-password", loginLimiter.Middleware(http.HandlerFunc(auth.ForgotPasswordHandler))).Methods(http.MethodPost)
	api.Handle("/auth/reset-password", loginLimiter.Middleware(http.HandlerFunc(auth.ResetPasswordHandler))).Methods(http.MethodPost)

	// Catalog, grouped by category for the kit builder
	api.Handle("/products", apiLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(controllers.CatalogHandler)))).Methods(http.MethodGet)

	// Kit builder drafts
	api.Handle("/drafts", apiLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.CreateDraftHandler)))).Methods(http.MethodPost)
	api.Handle("/drafts/{token}", apiLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.GetDraftHandler)))).Methods(http.MethodGet)
	api.Handle("/drafts/{token}/steps/{step}", apiLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.SetDraftStepHandler)))).Methods(http.MethodPut)

	// Orders
	api.Handle("/orders", apiLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.FinalizeOrderHandler)))).Methods(http.MethodPost)
	api.Handle("/orders", apiLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.ListMyOrdersHandler)))).Methods(http.MethodGet)
	api.Handle("/orders/{id:[0-9]+}", apiLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.GetOrderHandler)))).Methods(http.MethodGet)

	// Returns
	api.Handle("/returns", apiLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.SubmitReturnHandler)))).Methods(http.MethodPost)
	api.Handle("/orders/{id:[0-9]+}/return-status", apiLimiter.Middleware(middleware.AuthMiddleware(http.HandlerFunc(users.ReturnStatusHandler)))).Methods(http.MethodGet)
}
