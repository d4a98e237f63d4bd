package rest

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/todokeeper/internal/common"
	"github.com/dmitrijs2005/todokeeper/internal/server/auth"
	"github.com/dmitrijs2005/todokeeper/internal/server/models"
	"github.com/gin-gonic/gin"
)

func (s *Server) listCategories(c *gin.Context) {
	list, err := s.todos.Categories(c.Request.Context())
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) createTodo(c *gin.Context) {
	userID, categoryID, ok := s.ownerAndCategory(c)
	if !ok {
		return
	}

	var todo models.Todo
	if err := c.ShouldBindJSON(&todo); err != nil {
		badRequest(c, err)
		return
	}

	created, err := s.todos.Create(c.Request.Context(), userID, categoryID, &todo)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (s *Server) listTodos(c *gin.Context) {
	userID, categoryID, ok := s.ownerAndCategory(c)
	if !ok {
		return
	}

	filter := models.AllTodos
	switch {
	case strings.HasSuffix(c.FullPath(), "/incomplete"):
		filter = models.IncompleteTodos
	case strings.HasSuffix(c.FullPath(), "/completed"):
		filter = models.CompletedTodos
	}

	list, err := s.todos.List(c.Request.Context(), userID, categoryID, filter)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) updateTodo(c *gin.Context) {
	userID, categoryID, ok := s.ownerAndCategory(c)
	if !ok {
		return
	}

	var todo models.Todo
	if err := c.ShouldBindJSON(&todo); err != nil {
		badRequest(c, err)
		return
	}

	updated, err := s.todos.Update(c.Request.Context(), userID, categoryID, &todo)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (s *Server) reorderTodos(c *gin.Context) {
	userID, ok := s.owner(c)
	if !ok {
		return
	}

	var ids []int64
	if err := c.ShouldBindJSON(&ids); err != nil {
		badRequest(c, err)
		return
	}

	list, err := s.todos.Reorder(c.Request.Context(), userID, ids)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) deleteTodo(c *gin.Context) {
	userID, ok := s.owner(c)
	if !ok {
		return
	}
	id, err := pathID(c, "id")
	if err != nil {
		s.fail(c, err)
		return
	}

	if err := s.todos.Delete(c.Request.Context(), userID, id); err != nil {
		s.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) owner(c *gin.Context) (int64, bool) {
	userID, ok := auth.UserIDFrom(c.Request.Context())
	if !ok {
		s.fail(c, common.ErrorUnauthorized)
		return 0, false
	}
	return userID, true
}

func (s *Server) ownerAndCategory(c *gin.Context) (int64, int64, bool) {
	userID, ok := s.owner(c)
	if !ok {
		return 0, 0, false
	}
	categoryID, err := pathID(c, "categoryId")
	if err != nil {
		s.fail(c, err)
		return 0, 0, false
	}
	return userID, categoryID, true
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: bad %s", common.ErrValidation, name)
	}
	return id, nil
}
