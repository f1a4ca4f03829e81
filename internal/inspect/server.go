package inspect

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/danmuck/amqpsym/internal/amqp/buffer"
	"github.com/danmuck/amqpsym/internal/amqp/encoding"
	"github.com/danmuck/amqpsym/internal/observability"
)

type Options struct {
	Name            string
	Addr            string
	CorsOrigins     []string
	Policy          encoding.ASCIIPolicy
	MaxRequestBytes int64
}

type Server struct {
	Name     string
	Addr     string
	Policy   encoding.ASCIIPolicy
	Appeared time.Time

	codec           *Codec
	maxRequestBytes int64
	router          *gin.Engine
}

func Appear(opts Options) *Server {
	observability.RegisterMetrics()
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(observability.RequestLogger(log.Logger, opts.Name))
	r.Use(observability.RequestMetricsMiddleware(opts.Name))
	r.Use(cors.New(cors.Config{
		AllowOrigins: normalizeOrigins(opts.CorsOrigins),
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	_ = r.SetTrustedProxies([]string{"127.0.0.1", "::1"})

	return &Server{
		Name:            opts.Name,
		Addr:            opts.Addr,
		Policy:          opts.Policy,
		Appeared:        time.Now(),
		codec:           NewCodec(opts.Policy),
		maxRequestBytes: opts.MaxRequestBytes,
		router:          r,
	}
}

func (s *Server) HTTPRouter() *gin.Engine {
	return s.router
}

func (s *Server) RegisterRoutes() {
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"uptime":       time.Since(s.Appeared).String(),
			"service":      s.Name,
			"ascii_policy": s.Policy.String(),
		})
	})

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := s.router.Group("/v1/symbols")
	v1.POST("/encode", func(c *gin.Context) {
		var req EncodeRequest
		if !s.bind(c, &req) {
			return
		}
		res, err := s.codec.Encode(req)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	})

	v1.POST("/decode", func(c *gin.Context) {
		var req DecodeRequest
		if !s.bind(c, &req) {
			return
		}
		res, err := s.codec.DecodeHex(req.Hex)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	})
}

func (s *Server) Serve() error {
	s.RegisterRoutes()
	log.Info().
		Str("service", s.Name).
		Str("addr", s.Addr).
		Str("ascii_policy", s.Policy.String()).
		Msg("inspection service listening")
	return s.router.Run(s.Addr)
}

func (s *Server) bind(c *gin.Context, out any) bool {
	if s.maxRequestBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxRequestBytes)
	}
	if err := c.ShouldBindJSON(out); err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		_ = c.Error(err)
		c.JSON(status, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func (s *Server) fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(statusFor(err), gin.H{"error": err.Error(), "kind": errorKind(err)})
}

func statusFor(err error) int {
	if errorKind(err) == "internal" {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, buffer.ErrBufferUnderrun):
		return "buffer_underrun"
	case errors.Is(err, encoding.ErrInvalidFormatCode):
		return "invalid_format_code"
	case errors.Is(err, encoding.ErrNonASCII):
		return "non_ascii"
	case errors.Is(err, encoding.ErrNullArrayElement):
		return "null_array_element"
	case errors.Is(err, encoding.ErrInvalidLength), errors.Is(err, buffer.ErrInvalidLength):
		return "invalid_length"
	case errors.Is(err, encoding.ErrTypeMismatch):
		return "internal"
	default:
		return "invalid_request"
	}
}

func normalizeOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"http://localhost:3000"}
	}
	return origins
}
