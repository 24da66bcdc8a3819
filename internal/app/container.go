package app

import (
	"net/http"

	"github.com/redis/go-redis/v9"

	"github.com/ruabo2004/totnghiep0kho-frontend/domain"
	"github.com/ruabo2004/totnghiep0kho-frontend/internal/authz"
	"github.com/ruabo2004/totnghiep0kho-frontend/internal/config"
	"github.com/ruabo2004/totnghiep0kho-frontend/internal/http/handlers"
	"github.com/ruabo2004/totnghiep0kho-frontend/internal/http/middleware"
	"github.com/ruabo2004/totnghiep0kho-frontend/internal/session"
	"github.com/ruabo2004/totnghiep0kho-frontend/internal/upstream"
)

// Container holds all dependencies with an explicit lifecycle: construction
// here, teardown in Close. Nothing in the codebase reaches for a package
// level instance.
type Container struct {
	Config *config.Config

	RedisClient *redis.Client

	AuthGateway    domain.AuthGateway
	CatalogGateway domain.CatalogGateway
	SessionRepo    domain.SessionRepository
	Sessions       domain.SessionManager
	Policy         *authz.PolicyService
	SessionMW      *middleware.SessionMW

	AuthHandlers    *handlers.AuthHandlers
	CatalogHandlers *handlers.CatalogHandlers
	AreaHandlers    *handlers.AreaHandlers
}

// NewContainer creates and initializes all dependencies.
func NewContainer(cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	c.RedisClient = redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	client := upstream.NewClient(cfg.UpstreamBaseURL, &http.Client{Timeout: cfg.UpstreamTimeout})
	c.AuthGateway = upstream.NewAuthGateway(client)
	c.CatalogGateway = upstream.NewCatalogGateway(client)

	c.SessionRepo = session.NewRepository(c.RedisClient, cfg.SessionTTL)
	manager := session.NewManager(c.SessionRepo, c.AuthGateway)
	c.Sessions = manager

	policy, err := authz.NewPolicyService()
	if err != nil {
		return nil, err
	}
	c.Policy = policy

	codec := session.NewCookieCodec(cfg.CookieSecret, "totnghiep0kho-web", cfg.SessionTTL)
	c.SessionMW = middleware.NewSessionMW(c.Sessions, codec, cfg.CookieName, cfg.CookieSecure)

	c.AuthHandlers = handlers.NewAuthHandlers(c.Sessions, c.AuthGateway, c.SessionMW)
	c.CatalogHandlers = handlers.NewCatalogHandlers(c.CatalogGateway)
	c.AreaHandlers = handlers.NewAreaHandlers(c.CatalogGateway, policy)

	return c, nil
}

// Close releases held connections.
func (c *Container) Close() error {
	if c.RedisClient != nil {
		return c.RedisClient.Close()
	}
	return nil
}
