package router

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Idyll-Intelligent-Systems/UNIUN/config"
	"github.com/Idyll-Intelligent-Systems/UNIUN/handler"
	"github.com/Idyll-Intelligent-Systems/UNIUN/metrics"
	"github.com/Idyll-Intelligent-Systems/UNIUN/middleware"
	"github.com/Idyll-Intelligent-Systems/UNIUN/pkg/jwt"
	"github.com/Idyll-Intelligent-Systems/UNIUN/repository"
	"github.com/Idyll-Intelligent-Systems/UNIUN/service"
	"github.com/Idyll-Intelligent-Systems/UNIUN/ws"
)

// Deps is everything the HTTP surface needs wired in.
type Deps struct {
	Cfg *config.Config
	Log *logrus.Logger
	JWT *jwt.Manager

	Auth         *service.AuthService
	Posts        *service.PostService
	Interactions *service.InteractionService
	Users        *service.UserService
	Messages     *service.MessageService
	Carts        *service.CartService
	Search       *service.SearchService

	Hub *ws.Hub

	// MemStore is non-nil only on the memory backend; it enables the dev
	// seed/clear endpoints outside production.
	MemStore *repository.MemoryStore
}

// New assembles the gin engine: middleware, REST routes, the signaling
// endpoint and the operational endpoints.
func New(d Deps) *gin.Engine {
	if d.Cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.Recovery(d.Log))
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(metrics.Middleware())

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	r.Use(cors.New(corsCfg))

	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
	r.GET("/health", health)
	r.GET("/api/health", health)
	r.GET("/metrics", metrics.Handler())

	r.GET("/ws", ws.Handler(d.Hub))

	authRequired := middleware.Auth(d.JWT)

	authH := handler.NewAuthHandler(d.Auth, d.Log)
	postH := handler.NewPostHandler(d.Posts, d.Interactions, d.Log)
	interH := handler.NewInteractionHandler(d.Interactions, d.Log)
	userH := handler.NewUserHandler(d.Users, d.Log)
	msgH := handler.NewMessageHandler(d.Messages, d.Log)
	cartH := handler.NewCartHandler(d.Carts, d.Log)
	searchH := handler.NewSearchHandler(d.Search, d.Log)
	profileH := handler.NewProfileHandler(d.Interactions, d.Log)

	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)

	posts := api.Group("/posts")
	posts.GET("", postH.List)
	posts.GET("/:id", postH.Get)
	posts.POST("", authRequired, postH.Create)
	posts.PUT("/:id", authRequired, postH.Update)
	posts.DELETE("/:id", authRequired, postH.Delete)
	posts.POST("/:id/view", authRequired, postH.View)

	inter := api.Group("/interactions", authRequired)
	inter.GET("/:postId/status", interH.Status)
	inter.POST("/:postId/like", interH.Like)
	inter.POST("/:postId/repost", interH.Repost)
	inter.POST("/:postId/bookmark", interH.Bookmark)
	inter.POST("/:postId/reply", interH.Reply)

	users := api.Group("/users")
	users.GET("", userH.List)
	users.GET("/lookup", userH.Lookup)
	users.GET("/me", authRequired, userH.Me)
	users.POST("/follow/:userId", authRequired, userH.Follow)
	users.POST("/unfollow/:userId", authRequired, userH.Unfollow)
	users.GET("/:id/followers", userH.Followers)
	users.GET("/:id/following", userH.Following)

	messages := api.Group("/messages", authRequired)
	messages.GET("", msgH.List)
	messages.GET("/unread-count", msgH.UnreadCount)
	messages.GET("/:withUserId", msgH.Thread)
	messages.POST("/:withUserId", msgH.Send)

	cart := api.Group("/cart", authRequired)
	cart.POST("/add", cartH.Add)
	cart.GET("", cartH.Get)
	cart.POST("/checkout", cartH.Checkout)

	api.GET("/search", searchH.Search)

	profile := api.Group("/profile", authRequired)
	profile.GET("/bookmarks", profileH.Bookmarks)
	profile.GET("/reposts", profileH.Reposts)
	profile.GET("/replies", profileH.Replies)

	if d.MemStore != nil && !d.Cfg.Production() {
		devH := handler.NewDevHandler(d.MemStore, d.Log)
		dev := api.Group("/dev")
		dev.POST("/seed", devH.Seed)
		dev.POST("/clear", devH.Clear)
	}

	return r
}
