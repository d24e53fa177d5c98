package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"jobmaster-backend/internal/account"
	"jobmaster-backend/internal/activity"
	"jobmaster-backend/internal/admin"
	"jobmaster-backend/internal/apikeys"
	googleauth "jobmaster-backend/internal/auth"
	"jobmaster-backend/internal/coverletters"
	"jobmaster-backend/internal/emails"
	"jobmaster-backend/internal/generate"
	"jobmaster-backend/internal/linkedin"
	"jobmaster-backend/internal/resumes"
	"jobmaster-backend/internal/shared/config"
	"jobmaster-backend/internal/shared/server/middleware"
	"jobmaster-backend/internal/shared/server/respond"
	"jobmaster-backend/internal/usage"
	"jobmaster-backend/internal/users"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config       config.Config
	Users        *users.Handler
	GoogleAuth   *googleauth.GoogleService
	Resumes      *resumes.Handler
	CoverLetters *coverletters.Handler
	LinkedIn     *linkedin.Handler
	Emails       *emails.Handler
	Generate     *generate.Handler
	Activity     *activity.Handler
	Usage        *usage.Handler
	Keys         *apikeys.Handler
	Account      *account.Handler
	Admin        *admin.Handler
}

// NewRouter constructs the gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(deps.Config.Env),
		generateRateLimit(),
	)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})

	deps.Users.RegisterAuthRoutes(api)
	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	deps.Users.RegisterRoutes(api)
	deps.Resumes.RegisterRoutes(api)
	deps.CoverLetters.RegisterRoutes(api)
	deps.LinkedIn.RegisterRoutes(api)
	deps.Emails.RegisterRoutes(api)
	deps.Generate.RegisterRoutes(api)
	deps.Activity.RegisterRoutes(api)
	deps.Usage.RegisterRoutes(api)
	deps.Keys.RegisterRoutes(api)
	deps.Account.RegisterRoutes(api)

	adminGroup := api.Group("")
	adminGroup.Use(middleware.RequireAdmin())
	deps.Admin.RegisterRoutes(adminGroup)
	deps.Usage.RegisterAdminRoutes(adminGroup)
	deps.Keys.RegisterAdminRoutes(adminGroup)

	return r
}

// generateRateLimit caps how fast one principal can hit the LLM-backed
// endpoints. Other routes pass through.
func generateRateLimit() gin.HandlerFunc {
	return middleware.RateLimit(middleware.RateLimitConfig{
		Rules: map[string]middleware.RateLimitRule{
			"GENERATE": {Rate: 0.5, Burst: 5},
		},
		GroupFor: func(c *gin.Context) string {
			if strings.HasPrefix(c.Request.URL.Path, "/api/v1/generate") {
				return "GENERATE"
			}
			return ""
		},
	})
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
