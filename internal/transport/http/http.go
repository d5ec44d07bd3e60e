package httptransport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/minishop/order/internal/service/models/order"
	cancelorder "github.com/minishop/order/internal/transport/http/cancel_order"
	createorder "github.com/minishop/order/internal/transport/http/create_order"
	getorder "github.com/minishop/order/internal/transport/http/get_order"
	listorders "github.com/minishop/order/internal/transport/http/list_orders"
	orderbycode "github.com/minishop/order/internal/transport/http/order_by_code"
	updatestatus "github.com/minishop/order/internal/transport/http/update_status"
	userorders "github.com/minishop/order/internal/transport/http/user_orders"
	"github.com/minishop/order/pkg/http/middleware/auth"
	"github.com/minishop/order/pkg/http/middleware/trace"
	"github.com/minishop/order/pkg/logger"
	"github.com/minishop/order/pkg/metrics"
	"github.com/spf13/viper"
)

type service interface {
	Create(ctx context.Context, o order.Order) (*order.Order, error)
	GetByID(ctx context.Context, id int64) (*order.Order, error)
	GetByUserID(ctx context.Context, userID int64) ([]order.Order, error)
	GetByCode(ctx context.Context, code string) (*order.Order, error)
	List(ctx context.Context, filter *order.ListOrdersModel) ([]order.Summary, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Cancel(ctx context.Context, id int64) error
}

type HTTPTransport struct {
	server  *http.Server
	router  *chi.Mux
	service service
}

func NewHTTPTransport(service service) *HTTPTransport {
	router := newRouter()
	server := newServer(router)
	return &HTTPTransport{
		server:  server,
		router:  router,
		service: service,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Handle("/metrics", metrics.Handler())

	h.router.Route("/api", func(r chi.Router) {
		r.Get("/health", h.health)

		r.Route("/orders", func(r chi.Router) {
			r.Use(auth.Verify)

			r.With(auth.RequireAdmin).Get("/", h.listOrders)
			r.Post("/", h.createOrder)
			r.Get("/user/{userId}", h.userOrders)
			r.Get("/code/{code}", h.orderByCode)
			r.Get("/{id}", h.getOrder)
			r.Patch("/{id}/status", h.updateStatus)
			r.Delete("/{id}", h.cancelOrder)
		})
	})
}

func (h *HTTPTransport) health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if _, err := w.Write([]byte(`{"status":"OK","service":"orders"}`)); err != nil {
		slog.Error("Error writing health response", "error", err)
	}
}

func (h *HTTPTransport) createOrder(w http.ResponseWriter, r *http.Request) {
	createorder.CreateOrder(w, r, h.service)
}

func (h *HTTPTransport) getOrder(w http.ResponseWriter, r *http.Request) {
	getorder.GetOrder(w, r, h.service)
}

func (h *HTTPTransport) userOrders(w http.ResponseWriter, r *http.Request) {
	userorders.UserOrders(w, r, h.service)
}

func (h *HTTPTransport) orderByCode(w http.ResponseWriter, r *http.Request) {
	orderbycode.OrderByCode(w, r, h.service)
}

func (h *HTTPTransport) listOrders(w http.ResponseWriter, r *http.Request) {
	listorders.ListOrders(w, r, h.service)
}

func (h *HTTPTransport) updateStatus(w http.ResponseWriter, r *http.Request) {
	updatestatus.UpdateStatus(w, r, h.service)
}

func (h *HTTPTransport) cancelOrder(w http.ResponseWriter, r *http.Request) {
	cancelorder.CancelOrder(w, r, h.service)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)
	router.Use(metrics.NewServerMetrics("order").Middleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
