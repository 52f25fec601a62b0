package httpapi

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/gorilla/websocket"

	"atelier/internal/catalog"
	"atelier/internal/observability"
	"atelier/internal/order"
	"atelier/internal/realtime"
	"atelier/internal/resume"
)

const sessionHeader = "X-Session-ID"

// Server exposes the order flow over HTTP. Each route maps one page
// interaction of the storefront onto the order service.
type Server struct {
	orders   *order.Service
	resumes  *resume.Controller
	hub      *realtime.Hub
	metrics  *observability.Metrics
	validate *validatorv10.Validate
	upgrader websocket.Upgrader
	logf     func(format string, args ...any)
}

// New constructs the HTTP server. hub, metrics and logf may be nil.
func New(orders *order.Service, resumes *resume.Controller, hub *realtime.Hub, metrics *observability.Metrics, logf func(format string, args ...any)) *Server {
	if logf == nil {
		logf = log.Printf
	}
	return &Server{
		orders:   orders,
		resumes:  resumes,
		hub:      hub,
		metrics:  metrics,
		validate: validatorv10.New(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		logf: logf,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.spanMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/catalog/kaptans", s.handleKaptans)
	r.GET("/catalog/agbada", s.handleAgbadas)

	r.POST("/welcome", s.handleWelcome)
	r.POST("/navigate", s.handleNavigate)

	sessioned := r.Group("/", s.requireSession())
	sessioned.GET("/resume", s.handleResume)
	sessioned.POST("/orders/select", s.handleSelect)
	sessioned.POST("/orders/payment", s.handlePayment)
	sessioned.POST("/orders/payment/success", s.handlePaymentSuccess)
	sessioned.POST("/orders/payment/close", s.handlePaymentClose)
	sessioned.POST("/orders/measurements", s.handleMeasurements)
	sessioned.POST("/orders/cancel", s.handleCancel)

	if s.hub != nil {
		r.GET("/ws", s.handleDashboardFeed)
	}

	return r
}

func (s *Server) spanMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		span := s.metrics.Start(c.Request.Method + " " + c.FullPath())
		c.Next()
		var err error
		if c.Writer.Status() >= http.StatusInternalServerError {
			err = errors.New(http.StatusText(c.Writer.Status()))
		}
		span.End(err)
	}
}

func (s *Server) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetHeader(sessionHeader) == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing_session_id"})
			return
		}
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	return c.GetHeader(sessionHeader)
}

func (s *Server) handleKaptans(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": catalog.Kaptans()})
}

func (s *Server) handleAgbadas(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": catalog.Agbadas()})
}

func (s *Server) handleWelcome(c *gin.Context) {
	var req WelcomeRequest
	if err := bindAndValidate(c, &req, s.validate); err != nil {
		return
	}
	s.orders.Welcome(req.Name)
	c.JSON(http.StatusOK, gin.H{"welcome": req.Name})
}

func (s *Server) handleNavigate(c *gin.Context) {
	var req NavigateRequest
	if err := bindAndValidate(c, &req, s.validate); err != nil {
		return
	}
	s.orders.Navigate(req.Name, req.Action)
	c.JSON(http.StatusOK, gin.H{"action": req.Action})
}

func (s *Server) handleResume(c *gin.Context) {
	dec, err := s.resumes.Inspect(c.Request.Context(), sessionID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dec)
}

func (s *Server) handleSelect(c *gin.Context) {
	var req SelectRequest
	if err := bindAndValidate(c, &req, s.validate); err != nil {
		return
	}

	ctx := c.Request.Context()
	sid := sessionID(c)

	// A pending draft blocks a fresh selection; the customer must continue
	// or cancel it first.
	if err := s.resumes.EnsureFresh(ctx, sid); err != nil {
		s.writeError(c, err)
		return
	}

	item, amount, err := catalog.Resolve(order.ProductType(req.ProductType), req.ItemID, req.Sleeve)
	if err != nil {
		s.writeError(c, err)
		return
	}

	d, err := s.orders.Select(ctx, sid, item, req.Sleeve, amount, order.Customer{Name: req.Name})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"draft": d,
		// Page-to-page contract for the payment page.
		"payment_page": gin.H{
			"design": item.Image,
			"name":   item.Name,
			"amount": amount,
			"sleeve": req.Sleeve,
			"type":   req.ProductType,
		},
	})
}

func (s *Server) handlePayment(c *gin.Context) {
	var req PaymentRequest
	if err := bindAndValidate(c, &req, s.validate); err != nil {
		return
	}

	d, handle, err := s.orders.BeginPayment(c.Request.Context(), sessionID(c), order.Customer{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Location: req.Location,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": d, "payment": handle})
}

func (s *Server) handlePaymentSuccess(c *gin.Context) {
	var req PaymentSuccessRequest
	if err := bindAndValidate(c, &req, s.validate); err != nil {
		return
	}

	d, err := s.orders.PaymentSucceeded(c.Request.Context(), sessionID(c), req.Reference)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": d, "next": "/measurement"})
}

func (s *Server) handlePaymentClose(c *gin.Context) {
	d, err := s.orders.PaymentClosed(c.Request.Context(), sessionID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"draft": d})
}

func (s *Server) handleMeasurements(c *gin.Context) {
	var req MeasurementsRequest
	if err := bindAndValidate(c, &req, s.validate); err != nil {
		return
	}

	d, err := s.orders.SubmitMeasurements(c.Request.Context(), sessionID(c), order.Measurements{
		Shirt:       req.Shirt,
		Trouser:     req.Trouser,
		Hand:        req.Hand,
		Neck:        req.Neck,
		Shoulder:    req.Shoulder,
		FabricColor: req.FabricColor,
		Description: req.Description,
	})
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reference": d.PaymentReference, "order_status": "completed"})
}

func (s *Server) handleCancel(c *gin.Context) {
	if err := s.resumes.Cancel(c.Request.Context(), sessionID(c)); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cancelled": true})
}

func (s *Server) handleDashboardFeed(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logf("ws upgrade: %v", err)
		return
	}
	s.hub.Register(conn)
	go func() {
		defer s.hub.Unregister(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (s *Server) writeError(c *gin.Context, err error) {
	var unavailable *catalog.VariantUnavailableError
	switch {
	case errors.Is(err, order.ErrNoDraft):
		c.JSON(http.StatusNotFound, gin.H{"error": "no_draft"})
	case errors.Is(err, order.ErrDraftPending):
		c.JSON(http.StatusConflict, gin.H{"error": "draft_pending", "msg": err.Error()})
	case errors.As(err, &unavailable):
		c.JSON(http.StatusBadRequest, gin.H{"error": "variant_unavailable", "msg": unavailable.Error()})
	case errors.Is(err, catalog.ErrUnknownItem),
		errors.Is(err, order.ErrInvalidAmount),
		errors.Is(err, order.ErrInvalidCustomer),
		errors.Is(err, order.ErrMissingMeasurement):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "msg": err.Error()})
	case errors.Is(err, order.ErrWrongPhase), errors.Is(err, order.ErrNotCancellable):
		c.JSON(http.StatusConflict, gin.H{"error": "wrong_phase", "msg": err.Error()})
	default:
		s.logf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal"})
	}
}
