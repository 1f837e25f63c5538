package handlers

import (
	"errors"
	"net/http"
	"tasklist/internal/middleware"
	"tasklist/internal/models"
	"tasklist/internal/tasks"

	"github.com/gin-gonic/gin"
)

func (h *Handler) TasksPage(c *gin.Context) {
	data := h.page("My tasks")
	if sess, ok := middleware.SessionFrom(c); ok {
		data.Username = sess.Username
	}
	data.View = h.presenter.View()
	data.Flash = data.View.Flash
	c.HTML(http.StatusOK, "tasks.html", data)
}

func (h *Handler) CreateTask(c *gin.Context) {
	_, _ = h.presenter.Create(c.Request.Context(), c.PostForm("text"))
	backToList(c)
}

func (h *Handler) ToggleTask(c *gin.Context) {
	h.presenter.Toggle(c.Request.Context(), c.Param("id"))
	backToList(c)
}

func (h *Handler) DeleteTask(c *gin.Context) {
	h.presenter.Delete(c.Request.Context(), c.Param("id"))
	backToList(c)
}

func (h *Handler) StartEdit(c *gin.Context) {
	h.presenter.StartEdit(c.Param("id"))
	backToList(c)
}

func (h *Handler) SaveEdit(c *gin.Context) {
	_ = h.presenter.SaveEdit(c.Request.Context(), c.Param("id"), c.PostForm("text"))
	backToList(c)
}

func (h *Handler) CancelEdit(c *gin.Context) {
	h.presenter.CancelEdit()
	backToList(c)
}

func (h *Handler) KeyPress(c *gin.Context) {
	h.presenter.HandleKey(c.PostForm("key"))
	backToList(c)
}

func backToList(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, "/tasks")
}

type createTaskRequest struct {
	Text string `json:"text"`
}

func (h *Handler) APIListTasks(c *gin.Context) {
	c.JSON(http.StatusOK, h.presenter.Peek())
}

func (h *Handler) APICreateTask(c *gin.Context) {
	request := &createTaskRequest{}
	err := c.ShouldBindJSON(request)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	task, err := h.store.Create(c.Request.Context(), request.Text)
	if err != nil {
		h.writeTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, task)
}

func (h *Handler) APIUpdateTask(c *gin.Context) {
	request := &tasks.Patch{}
	err := c.ShouldBindJSON(request)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body"})
		return
	}

	task, err := h.store.Update(c.Request.Context(), c.Param("id"), *request)
	if err != nil {
		h.writeTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *Handler) APIToggleTask(c *gin.Context) {
	task, err := h.store.ToggleDone(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, task)
}

func (h *Handler) APIDeleteTask(c *gin.Context) {
	h.presenter.Delete(c.Request.Context(), c.Param("id"))
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeTaskError(c *gin.Context, err error) {
	switch {
	case tasks.IsValidation(err):
		c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, tasks.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "not found"})
	default:
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal error"})
	}
}
