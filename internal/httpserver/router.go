package httpserver

import (
	"log/slog"

	"github.com/labstack/echo/v4"

	"github.com/agriconnect/marketplace/internal/auth"
	"github.com/agriconnect/marketplace/internal/logging"
)

type Deps struct {
	Logger        *slog.Logger
	Auth          *auth.Middleware
	AuthHandler   *AuthHTTP
	ProductHTTP   *ProductHTTP
	OrderHTTP     *OrderHTTP
	EventHTTP     *EventHTTP
	RequestHTTP   *RequestHTTP
	DashboardHTTP *DashboardHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	if d.Logger != nil {
		e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				ctx := logging.IntoContext(c.Request().Context(), d.Logger)
				c.SetRequest(c.Request().WithContext(ctx))
				return next(c)
			}
		})
	}

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)

	v1.GET("/products", d.ProductHTTP.ListProducts)
	v1.GET("/products/:id", d.ProductHTTP.GetProduct)
	v1.POST("/products", d.ProductHTTP.CreateProduct, d.Auth.RequireAuth)
	v1.DELETE("/products/:id", d.ProductHTTP.DeleteProduct, d.Auth.RequireAuth)
	v1.GET("/my-products", d.ProductHTTP.ListMyProducts, d.Auth.RequireAuth)

	v1.POST("/orders", d.OrderHTTP.CreateOrder, d.Auth.RequireAuth)
	v1.GET("/my-orders", d.OrderHTTP.ListMyOrders, d.Auth.RequireAuth)

	v1.GET("/events", d.EventHTTP.ListEvents)
	v1.GET("/events/:id", d.EventHTTP.GetEvent)
	v1.POST("/events", d.EventHTTP.CreateEvent, d.Auth.RequireAuth)
	v1.POST("/events/:id/rsvp", d.EventHTTP.RSVP, d.Auth.RequireAuth)
	v1.POST("/events/:id/attendance", d.EventHTTP.RecordAttendance, d.Auth.RequireAuth)

	v1.GET("/dashboard", d.DashboardHTTP.GetDashboard, d.Auth.RequireAuth)

	v1.POST("/requests", d.RequestHTTP.CreateProduceRequest, d.Auth.RequireAuth)
	v1.GET("/requests", d.RequestHTTP.ListProduceRequests, d.Auth.RequireAuth)

	v1.POST("/id-requests", d.RequestHTTP.CreateIDRequest, d.Auth.RequireAuth)
	v1.GET("/id-requests", d.RequestHTTP.ListIDRequests, d.Auth.RequireAuth)
	v1.POST("/id-requests/:id/respond", d.RequestHTTP.RespondIDRequest, d.Auth.RequireAuth)
}
