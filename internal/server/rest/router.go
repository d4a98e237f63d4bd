package rest

import (
	"fmt"

	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.ReleaseMode)
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(requestLogging(s.logger), gin.Recovery(), cors(s.origins), s.identity())

	r.POST(auth.PathRegister, s.register)
	r.POST(auth.PathLogin, s.login)
	r.GET(auth.PathCategories, s.listCategories)

	users := r.Group("/users")
	users.POST("/logout", s.logout)
	users.GET("/me", s.me)

	todos := r.Group("/todos")
	todos.POST("/categories/:categoryId/create", s.createTodo)
	todos.GET("/categories/:categoryId", s.listTodos)
	todos.GET("/categories/:categoryId/incomplete", s.listTodos)
	todos.GET("/categories/:categoryId/completed", s.listTodos)
	todos.PUT("/categories/:categoryId", s.updateTodo)
	todos.PUT("/reorder", s.reorderTodos)
	todos.DELETE("/:id", s.deleteTodo)

	mustRouteHTTPPublicPaths(r)
	return r
}

// mustRouteHTTPPublicPaths panics when an HTTP entry of the allow-list has no
// route, so the list and the router cannot drift apart.
func mustRouteHTTPPublicPaths(r *gin.Engine) {
	routed := make(map[string]bool)
	for _, ri := range r.Routes() {
		routed[ri.Path] = true
	}
	for _, p := range auth.Public.List() {
		if isGRPCMethod(p) {
			continue
		}
		if !routed[p] {
			panic(fmt.Sprintf("public path %q has no route", p))
		}
	}
}

func isGRPCMethod(p string) bool {
	return p == auth.GRPCHealthCheck || p == auth.GRPCHealthWatch
}
