package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/momentree/momentree/internal/member/service"
	"github.com/momentree/momentree/internal/member/store"
	"github.com/momentree/momentree/pkg/httpx"
	"github.com/momentree/momentree/pkg/slogx"

	_ "github.com/momentree/momentree/api/member" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store    store.Store
	sessions store.Sessions

	AuthService   *service.AuthService
	MemberService *service.MemberService
	PostService   *service.PostService
	FeedService   *service.FeedService
	MediaService  *service.MediaService
	NotifyService *service.NotifyService
}

func NewRouter(
	buildVersion string,
	st store.Store,
	sessions store.Sessions,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		sessions:     sessions,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerMembers()
	r.registerPosts()
	r.registerMedia()
	r.registerFeed()
	r.registerDevices()
	r.registerNotifications()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Momentree Member API
//	@version		0.1.0
//	@description	Member-facing backend with external-identity login, JWT-based access tokens and a revocable refresh session store.
//	@description
//	@description				Tokens are signed with HS256. The refresh token can be revoked at any time via logout.
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	// POST /auth/login/{provider} - strict rate limit by IP (authentication attempts)
	loginHandler := &LoginHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /v1/auth/login/{provider}",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /auth/logout - moderate rate limit (session termination)
	logoutHandler := &LogoutHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(logoutHandler,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	// POST /auth/reissue - strict rate limit by IP (token minting)
	reissueHandler := &ReissueHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /v1/auth/reissue",
		httpx.Chain(reissueHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerMembers() {
	h := &MemberHandler{MemberService: r.MemberService}

	r.Mux.Handle("GET /v1/members/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			AuthMiddleware(r.AuthService),
			RequireMember(),
			httpx.RateLimitByMember(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("POST /v1/members/activate",
		httpx.Chain(http.HandlerFunc(h.HandleActivate),
			AuthMiddleware(r.AuthService),
			RequireMember(),
			httpx.RateLimitByMember(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("DELETE /v1/members/me",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			AuthMiddleware(r.AuthService),
			RequireMember(),
			httpx.RateLimitByMember(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerPosts() {
	h := &PostHandler{PostService: r.PostService}

	// Reads are public
	r.Mux.Handle("GET /v1/posts",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
	r.Mux.Handle("GET /v1/posts/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)

	// Writes require an authenticated member
	r.Mux.Handle("POST /v1/posts",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			AuthMiddleware(r.AuthService),
			RequireMember(),
			httpx.RateLimitByMember(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PUT /v1/posts/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			AuthMiddleware(r.AuthService),
			RequireMember(),
			httpx.RateLimitByMember(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /v1/posts/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			AuthMiddleware(r.AuthService),
			RequireMember(),
			httpx.RateLimitByMember(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerMedia() {
	// No object storage configured means no upload surface.
	if r.MediaService == nil {
		r.logger.Info("media route disabled (no media store configured)")
		return
	}

	h := &MediaHandler{MediaService: r.MediaService}

	r.Mux.Handle("POST /v1/media",
		httpx.Chain(h,
			AuthMiddleware(r.AuthService),
			RequireMember(),
			httpx.RateLimitByMember(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerFeed() {
	h := &FeedHandler{FeedService: r.FeedService}

	r.Mux.Handle("GET /v1/feed",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}

func (r *Router) registerDevices() {
	h := &DeviceHandler{Devices: r.store.Devices()}

	r.Mux.Handle("POST /v1/devices",
		httpx.Chain(h,
			AuthMiddleware(r.AuthService),
			RequireMember(),
			httpx.RateLimitByMember(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerNotifications() {
	h := &NotifyHandler{NotifyService: r.NotifyService}

	r.Mux.Handle("POST /v1/notifications/broadcast",
		httpx.Chain(h,
			AuthMiddleware(r.AuthService),
			RequireAdmin(),
			httpx.RateLimitByMember(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.sessions),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
