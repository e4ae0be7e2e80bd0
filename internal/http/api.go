package http

import (
	"context"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"newsdesk/internal/auth"
	"newsdesk/internal/news"
	"newsdesk/internal/service"
)

// NewsService relays searches to the upstream news provider.
type NewsService interface {
	Search(ctx context.Context, q news.Query) (*news.Result, error)
	TopHeadlines(ctx context.Context, h news.Headlines) (*news.Result, error)
}

// TokenVerifier validates bearer tokens.
type TokenVerifier interface {
	Verify(token string) (*auth.Identity, error)
}

// Handler wires HTTP routes to domain services.
type Handler struct {
	users          service.UserService
	articles       service.ArticleService
	news           NewsService
	tokens         TokenVerifier
	logger         *logrus.Logger
	allowedOrigins []string
}

func NewHandler(users service.UserService, articles service.ArticleService, newsSvc NewsService, tokens TokenVerifier, logger *logrus.Logger, allowedOrigins []string) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	registerJSONFieldNames()
	return &Handler{
		users:          users,
		articles:       articles,
		news:           newsSvc,
		tokens:         tokens,
		logger:         logger,
		allowedOrigins: allowedOrigins,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestID())
	router.Use(requestLogger(h.logger))
	router.Use(corsMiddleware(h.allowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})
		api.POST("/register", h.register)
		api.POST("/login", h.login)
	}

	protected := api.Group("")
	protected.Use(AuthMiddleware(h.tokens))
	{
		protected.GET("/me", h.me)

		protected.GET("/articles", h.listArticles)
		protected.POST("/articles", h.createArticle)
		protected.PUT("/articles/:id", h.updateArticle)
		protected.DELETE("/articles/:id", h.deleteArticle)

		protected.GET("/news", h.searchNews)
		protected.GET("/news/top-headlines", h.topHeadlines)
	}
}

var fieldNamesOnce sync.Once

// registerJSONFieldNames makes binding errors report JSON field names.
func registerJSONFieldNames() {
	fieldNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
}
