package api

import (
	"context"
	"io/fs"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/gruis/stockboard/stock"
	"github.com/gruis/stockboard/store"
)

// Listing is the payload of GET /api/stocks.
type Listing struct {
	Stocks []stock.Quote `json:"stocks"`
}

type errorBody struct {
	Message string `json:"message"`
}

// Server exposes the stored quotes over HTTP and serves the dashboard shell.
type Server struct {
	echo  *echo.Echo
	store store.Store
}

// New wires the routes. assets may be nil, in which case no static files are
// served.
func New(s store.Store, assets fs.FS) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	srv := &Server{echo: e, store: s}

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.WithFields(log.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency,
			}).Debug("request")
			return nil
		},
	}))

	e.GET("/api/stocks", srv.listStocks)
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if assets != nil {
		e.GET("/*", echo.WrapHandler(http.FileServer(http.FS(assets))))
	}

	return srv
}

func (s *Server) listStocks(c echo.Context) error {
	quotes, err := s.store.List(c.Request().Context())
	if err != nil {
		log.WithError(err).Error("listing stocks failed")
		return c.JSON(http.StatusNotFound, errorBody{Message: err.Error()})
	}
	return c.JSON(http.StatusOK, Listing{Stocks: quotes})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start blocks serving on addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	log.WithField("addr", addr).Info("application running")
	err := s.echo.Start(addr)
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.echo.Shutdown(ctx)
}
