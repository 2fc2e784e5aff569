package http

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/inkwell/blogapi/internal/auth"
	"github.com/inkwell/blogapi/internal/config"
	"github.com/inkwell/blogapi/internal/domain/user"
	"github.com/inkwell/blogapi/internal/http/handlers"
	"github.com/inkwell/blogapi/internal/http/middlewares"
	"github.com/inkwell/blogapi/internal/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const serviceName = "blogapi"

type UserStore interface {
	Create(ctx context.Context, u user.User) error
	GetByEmail(ctx context.Context, email string) (user.User, error)
	GetByID(ctx context.Context, id string) (user.User, error)
}

// Deps is everything the router wires together. Cache, Prom and Gatherer
// are optional.
type Deps struct {
	Config   config.Config
	Users    UserStore
	Posts    handlers.PostsStore
	Comments handlers.CommentsStore
	Tokens   *auth.Manager
	Cache    handlers.PostCache
	Prom     *observability.Prom
	Gatherer prometheus.Gatherer
	Checks   map[string]handlers.Check
}

func NewRouter(log *slog.Logger, deps Deps) *gin.Engine {
	if deps.Config.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(serviceName))
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(deps.Config.CORSOrigins))

	var authObs middlewares.FailureObserver
	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
		authObs = deps.Prom
	}

	// health
	h := handlers.NewHealthHandler(deps.Checks)
	r.GET("/", h.Welcome)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	// wire up handlers
	gate := middlewares.NewGate(deps.Tokens, deps.Users, log, authObs)
	authHandler := handlers.NewAuthHandler(deps.Users, deps.Users, deps.Tokens, log)
	postsHandler := handlers.NewPostsHandler(deps.Posts, deps.Cache, log)
	commentsHandler := handlers.NewCommentsHandler(deps.Comments, log)

	maxBody := deps.Config.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 1 << 20
	}

	api := r.Group("/api")
	api.Use(middlewares.MaxBodyBytes(maxBody))

	// auth routes report body problems through their own 400/401 envelopes
	authRoutes := api.Group("/auth")
	authRoutes.POST("/register", authHandler.Register)
	authRoutes.POST("/login", authHandler.Login)

	// the gate runs before content checks so unauthenticated calls always get 401
	posts := api.Group("/posts", gate.RequireAuth(), middlewares.RequireJSON())
	posts.GET("", postsHandler.ListPosts)
	posts.GET("/:id", postsHandler.GetPostByID)
	posts.POST("", postsHandler.CreatePost)
	posts.PUT("/:id", postsHandler.UpdatePost)
	posts.DELETE("/:id", postsHandler.DeletePost)

	comments := api.Group("/comments", gate.RequireAuth(), middlewares.RequireJSON())
	comments.POST("", commentsHandler.CreateComment)
	comments.GET("/:postId", commentsHandler.ListCommentsByPost)

	return r
}
