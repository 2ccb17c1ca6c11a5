// Package router declares the versioned HTTP API and mounts it on gin.
package router

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
	"github.com/ideagen/backend/internal/interfaces/http/handler"
)

// BasePath prefixes every API route.
const BasePath = "/api/v1"

// Route is a single endpoint relative to its group.
type Route struct {
	Method  string
	Path    string
	Handler gin.HandlerFunc
}

// Group is a prefix of the API, the middleware scoped to it and its routes.
type Group struct {
	Prefix     string
	Middleware []gin.HandlerFunc
	Routes     []Route
}

// Handlers serve the API. A nil handler leaves its group out.
type Handlers struct {
	Ideas  *handler.IdeaHandler
	System *handler.SystemHandler
}

// Groups returns the route table served by h.
func Groups(h Handlers) []Group {
	var groups []Group
	if h.Ideas != nil {
		groups = append(groups, Group{
			Prefix: "/sections",
			Routes: []Route{
				{http.MethodPost, "/generate", h.Ideas.Generate},
				{http.MethodGet, "", h.Ideas.List},
				{http.MethodGet, "/:id", h.Ideas.GetByID},
			},
		})
	}
	if h.System != nil {
		groups = append(groups, Group{
			Prefix: "/system",
			Routes: []Route{
				{http.MethodGet, "/info", h.System.GetSystemInfo},
				{http.MethodGet, "/ping", h.System.Ping},
			},
		})
	}
	return groups
}

// Mount registers groups under BasePath.
func Mount(r gin.IRouter, groups ...Group) *gin.RouterGroup {
	api := r.Group(BasePath)
	for _, g := range groups {
		rg := api.Group(g.Prefix, g.Middleware...)
		for _, route := range g.Routes {
			rg.Handle(route.Method, route.Path, route.Handler)
		}
	}
	return api
}

// Endpoints lists "METHOD /full/path" for every route, in table order.
func Endpoints(groups ...Group) []string {
	var out []string
	for _, g := range groups {
		for _, route := range g.Routes {
			full := path.Join(BasePath, g.Prefix, route.Path)
			out = append(out, route.Method+" "+full)
		}
	}
	return out
}
