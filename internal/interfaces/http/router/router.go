package router

import (
	"github.com/gin-gonic/gin"
)

// RouteRegistrar mounts a set of routes onto a parent group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router mounts registrars under /api/<version>. Public registrars see only
// the version group; protected ones additionally run the middleware added
// with Use, in order.
type Router struct {
	engine     *gin.Engine
	apiVersion string
	middleware []gin.HandlerFunc
	public     []RouteRegistrar
	protected  []RouteRegistrar
}

// RouterOption configures a Router
type RouterOption func(*Router)

// WithAPIVersion sets the version segment of the API prefix
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Use appends middleware that runs in front of every protected registrar
func (r *Router) Use(middleware ...gin.HandlerFunc) *Router {
	r.middleware = append(r.middleware, middleware...)
	return r
}

// RegisterPublic adds a registrar that is mounted without the protected middleware
func (r *Router) RegisterPublic(registrar RouteRegistrar) *Router {
	r.public = append(r.public, registrar)
	return r
}

// Register adds a registrar behind the protected middleware
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.protected = append(r.protected, registrar)
	return r
}

// Prefix returns the path every API route lives under
func (r *Router) Prefix() string {
	return "/api/" + r.apiVersion
}

// Setup mounts every registrar on the engine. Call it once.
func (r *Router) Setup() {
	api := r.engine.Group(r.Prefix())
	for _, registrar := range r.public {
		registrar.RegisterRoutes(api)
	}

	protected := api.Group("", r.middleware...)
	for _, registrar := range r.protected {
		registrar.RegisterRoutes(protected)
	}
}

// DomainGroup collects the routes of one resource family before they are mounted
type DomainGroup struct {
	name       string
	prefix     string
	routes     []routeDefinition
	subgroups  []*DomainGroup
	middleware []gin.HandlerFunc
}

type routeDefinition struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

// Use adds middleware to this group and its subgroups
func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

// Handle records a route for any HTTP method
func (dg *DomainGroup) Handle(method, path string, handlers ...gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, routeDefinition{method: method, path: path, handlers: handlers})
	return dg
}

func (dg *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle("GET", path, handlers...)
}

func (dg *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle("POST", path, handlers...)
}

func (dg *DomainGroup) PUT(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle("PUT", path, handlers...)
}

func (dg *DomainGroup) PATCH(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle("PATCH", path, handlers...)
}

func (dg *DomainGroup) DELETE(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return dg.Handle("DELETE", path, handlers...)
}

// Group creates a nested group that inherits this group's middleware
func (dg *DomainGroup) Group(name, prefix string) *DomainGroup {
	sub := NewDomainGroup(name, prefix)
	dg.subgroups = append(dg.subgroups, sub)
	return sub
}

// RegisterRoutes implements RouteRegistrar
func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix, dg.middleware...)
	for _, route := range dg.routes {
		group.Handle(route.method, route.path, route.handlers...)
	}
	for _, sub := range dg.subgroups {
		sub.RegisterRoutes(group)
	}
}

func (dg *DomainGroup) Name() string {
	return dg.name
}

func (dg *DomainGroup) Prefix() string {
	return dg.prefix
}

// Routes reports how many routes the group and its subgroups hold
func (dg *DomainGroup) Routes() int {
	n := len(dg.routes)
	for _, sub := range dg.subgroups {
		n += sub.Routes()
	}
	return n
}
