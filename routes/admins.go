package routes

import (
	"net/http"

	"github.com/works360/meta-partner-demos-sub000/controllers/admins"
	"github.com/works360/meta-partner-demos-sub000/middleware"

	"github.com/gorilla/mux"
)

// SetAdminRoutes registers the back-office routes. Every route requires a
// manager role verified against both the token and the database.
func SetAdminRoutes(api *mux.Router) {
	adminRouter := api.PathPrefix("/admin").Subrouter()
	adminRouter.Use(middleware.ManagerAuthMiddleware)

	// Dashboard stats
	adminRouter.Handle("/dashboard", http.HandlerFunc(admins.DashboardHandler)).Methods(http.MethodGet)

	// Order management
	adminRouter.Handle("/orders", http.HandlerFunc(admins.ListOrdersHandler)).Methods(http.MethodGet)
	adminRouter.Handle("/orders/overdue", http.HandlerFunc(admins.ListOverdueOrdersHandler)).Methods(http.MethodGet)
	adminRouter.Handle("/orders/{id:[0-9]+}", http.HandlerFunc(admins.UpdateOrderHandler)).Methods(http.MethodPut)
	adminRouter.Handle("/orders/{id:[0-9]+}/notify", http.HandlerFunc(admins.NotifyOrderStatusHandler)).Methods(http.MethodPost)

	// Product management
	adminRouter.Handle("/products", http.HandlerFunc(admins.ListProductsHandler)).Methods(http.MethodGet)
	adminRouter.Handle("/products", http.HandlerFunc(admins.CreateProductHandler)).Methods(http.MethodPost)
	adminRouter.Handle("/products/{id:[0-9]+}", http.HandlerFunc(admins.GetProductHandler)).Methods(http.MethodGet)
	adminRouter.Handle("/products/{id:[0-9]+}", http.HandlerFunc(admins.UpdateProductHandler)).Methods(http.MethodPut)
	adminRouter.Handle("/products/{id:[0-9]+}", http.HandlerFunc(admins.DeleteProductHandler)).Methods(http.MethodDelete)
	adminRouter.Handle("/products/{id:[0-9]+}/restock", http.HandlerFunc(admins.RestockProductHandler)).Methods(http.MethodPost)

	// Return management
	adminRouter.Handle("/returns", http.HandlerFunc(admins.ListReturnsHandler)).Methods(http.MethodGet)
}
