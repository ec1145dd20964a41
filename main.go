package main

import (
	"log"
	"strings"
	"time"

	"memorial/auth"
	"memorial/config"
	"memorial/db"
	"memorial/utils"
	"memorial/web"

	"memorial/handlers"
	"memorial/models"
	"memorial/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/autotls"
	"github.com/gin-gonic/gin"
)

const (
	sessionStoreKey       = "this is a long key" // TODO: convert to env variable
	sessionCookieName     = "token"
	sessionExpirationTime = 365 * 86400 // 1 year
)

func main() {
	db.Init()
	models.Init()
	storage.Init()

	if !config.DEBUG_MODE {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	_ = router.SetTrustedProxies([]string{})
	if config.DEBUG_MODE {
		router.Use(utils.ErrorLogMiddleware)
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"PUT", "POST", "DELETE"},
		AllowHeaders:     []string{"Origin", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           30 * 24 * time.Hour,
	}))

	// HTML templates
	router.LoadHTMLGlob("templates/*.tmpl")

	cookieStore := gormsessions.NewStore(db.Instance, true, []byte(sessionStoreKey))
	cookieStore.Options(sessions.Options{MaxAge: sessionExpirationTime})
	router.Use(sessions.Sessions(sessionCookieName, cookieStore))
	if !config.DEBUG_MODE {
		router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/memorial/photo", "/memorial/memory/photo"})))
	}
	router.Use((&utils.CacheRouter{CacheTime: utils.CacheNoCache}).Handler()) // No cache by default, individual end-points can override that
	window := time.Duration(config.RATE_LIMIT_WINDOW_SEC) * time.Second
	router.Use(utils.NewRateLimiter(window, config.RATE_LIMIT_MAX).Handler())
	authLimiter := utils.NewRateLimiter(window, config.RATE_LIMIT_AUTH_MAX).Handler()
	// Custom Auth Router
	authRouter := &auth.Router{Base: router}
	// User handlers
	router.POST("/user/register", authLimiter, handlers.UserRegister)
	router.POST("/user/login", authLimiter, handlers.UserLogin)
	authRouter.POST("/user/logout", handlers.UserLogout)
	authRouter.GET("/user/status", handlers.UserGetStatus)
	// Memorial handlers
	authRouter.POST("/memorial/create", handlers.MemorialCreate)
	authRouter.GET("/memorial/list", handlers.MemorialList)
	router.GET("/memorial/get", handlers.MemorialGet) // Anonymous visitors allowed, checks are in the model layer
	authRouter.POST("/memorial/save", handlers.MemorialSave)
	authRouter.POST("/memorial/delete", handlers.MemorialDelete)
	router.GET("/memorial/shared/:token", handlers.MemorialShared)
	authRouter.POST("/memorial/photo", handlers.MemorialPhoto)
	router.GET("/memorial/photo", handlers.MemorialPhotoFetch)
	// Access handlers
	authRouter.GET("/memorial/access/list", handlers.AccessList)
	authRouter.POST("/memorial/access/invite", handlers.AccessInvite)
	authRouter.POST("/memorial/access/save", handlers.AccessSave)
	authRouter.POST("/memorial/access/revoke", handlers.AccessRevoke)
	authRouter.GET("/memorial/share", handlers.ShareLink)
	// Life moment handlers
	authRouter.POST("/memorial/moment/create", handlers.MomentCreate)
	router.GET("/memorial/moments", handlers.MomentList)
	authRouter.POST("/memorial/moment/save", handlers.MomentSave)
	authRouter.POST("/memorial/moment/delete", handlers.MomentDelete)
	authRouter.POST("/memorial/moments/reorder", handlers.MomentsReorder)
	// Memory handlers
	authRouter.POST("/memorial/memory/create", handlers.MemoryCreate)
	authRouter.PUT("/memorial/memory/upload", handlers.MemoryUpload)
	router.GET("/memorial/memories", handlers.MemoryList)
	authRouter.POST("/memorial/memory/delete", handlers.MemoryDelete)
	router.GET("/memorial/memory/photo", handlers.MemoryPhotoFetch)
	// Visitor interaction handlers
	router.POST("/memorial/interaction/create", handlers.InteractionCreate)
	router.GET("/memorial/interactions", handlers.InteractionList)
	router.GET("/memorial/stats", handlers.MemorialStats)
	// Misc
	router.GET("/search", handlers.Search)
	router.POST("/contact", authLimiter, handlers.ContactSend)

	/*
	 *	Web interface
	 */
	router.GET("/w/memorial/:token/", web.MemorialView)
	router.GET("/robots.txt", web.DisallowRobots)

	var err error
	if config.TLS_DOMAINS != "" {
		err = autotls.Run(router, strings.Split(config.TLS_DOMAINS, ",")...)
	} else {
		err = router.Run(config.BIND_ADDRESS)
	}
	log.Fatalf("Server stopped: %v", err)
}
