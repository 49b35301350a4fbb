package router

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar mounts a set of routes onto the API group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router mounts registrars under /api/<version>
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

type RouterOption func(*Router)

// WithAPIVersion overrides the default "v1" prefix
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = strings.Trim(version, "/")
	}
}

func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{engine: engine, apiVersion: "v1"}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Router) Register(registrars ...RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrars...)
	return r
}

// BasePath is the prefix every registered route is mounted under
func (r *Router) BasePath() string {
	return "/api/" + r.apiVersion
}

// Setup mounts the registrars and reports the routes now served under BasePath
func (r *Router) Setup() gin.RoutesInfo {
	api := r.engine.Group(r.BasePath())
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}

	var mounted gin.RoutesInfo
	for _, route := range r.engine.Routes() {
		if strings.HasPrefix(route.Path, r.BasePath()+"/") {
			mounted = append(mounted, route)
		}
	}
	return mounted
}

// DomainGroup collects the routes of one resource under a shared prefix.
// Middleware added with Use applies to that group only.
type DomainGroup struct {
	name       string
	prefix     string
	middleware []gin.HandlerFunc
	routes     []route
}

type route struct {
	method string
	path   string
	chain  []gin.HandlerFunc
}

func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

func (dg *DomainGroup) Use(middleware ...gin.HandlerFunc) *DomainGroup {
	dg.middleware = append(dg.middleware, middleware...)
	return dg
}

func (dg *DomainGroup) GET(path string, chain ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodGet, path, chain)
}

func (dg *DomainGroup) POST(path string, chain ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodPost, path, chain)
}

func (dg *DomainGroup) PUT(path string, chain ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodPut, path, chain)
}

func (dg *DomainGroup) PATCH(path string, chain ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodPatch, path, chain)
}

func (dg *DomainGroup) DELETE(path string, chain ...gin.HandlerFunc) *DomainGroup {
	return dg.add(http.MethodDelete, path, chain)
}

func (dg *DomainGroup) add(method, path string, chain []gin.HandlerFunc) *DomainGroup {
	dg.routes = append(dg.routes, route{method: method, path: path, chain: chain})
	return dg
}

func (dg *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(dg.prefix, dg.middleware...)
	for _, rt := range dg.routes {
		group.Handle(rt.method, rt.path, rt.chain...)
	}
}

func (dg *DomainGroup) Name() string   { return dg.name }
func (dg *DomainGroup) Prefix() string { return dg.prefix }

// chain appends the final handler to a copy of the guard chain
func chain(guards []gin.HandlerFunc, final gin.HandlerFunc) []gin.HandlerFunc {
	out := make([]gin.HandlerFunc, 0, len(guards)+1)
	return append(append(out, guards...), final)
}
