package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"Backoffice/internal/service"
	"Backoffice/internal/validation"

	"github.com/gin-gonic/gin"
)

// TaskWeb serves the server-rendered task pages.
type TaskWeb struct {
	svc *service.TaskService
	log *slog.Logger
}

func NewTaskWeb(svc *service.TaskService, log *slog.Logger) *TaskWeb {
	return &TaskWeb{svc: svc, log: log}
}

func (h *TaskWeb) List(c *gin.Context) {
	tasks, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.log.Error("task list page failed", "err", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.HTML(http.StatusOK, "task_list.tmpl", gin.H{
		"Tasks": tasks,
		"Flash": takeFlash(c),
	})
}

func (h *TaskWeb) CreateForm(c *gin.Context) {
	c.HTML(http.StatusOK, "task_form.tmpl", gin.H{
		"Title":  "New Task",
		"Action": "/tasks/create",
		"Values": map[string]string{},
		"Errors": validation.Errors{},
	})
}

func (h *TaskWeb) Create(c *gin.Context) {
	title := c.PostForm("title")
	description := c.PostForm("description")
	_, err := h.svc.Create(c.Request.Context(), title, description, false)
	if err != nil {
		h.renderTaskForm(c, "New Task", "/tasks/create", taskValues(title, description, false), err)
		return
	}
	setFlash(c, "success", "Task created successfully!")
	c.Redirect(http.StatusSeeOther, "/tasks")
}

func (h *TaskWeb) UpdateForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	t, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.notFoundOrError(c, err)
		return
	}
	c.HTML(http.StatusOK, "task_form.tmpl", gin.H{
		"Title":  "Edit Task",
		"Action": c.Request.URL.Path,
		"Values": taskValues(t.Title, t.Description, t.Completed),
		"Errors": validation.Errors{},
	})
}

func (h *TaskWeb) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	title := c.PostForm("title")
	description := c.PostForm("description")
	_, completed := c.GetPostForm("completed")
	_, err := h.svc.Update(c.Request.Context(), id, title, description, completed)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.String(http.StatusNotFound, "not found")
			return
		}
		h.renderTaskForm(c, "Edit Task", c.Request.URL.Path, taskValues(title, description, completed), err)
		return
	}
	setFlash(c, "success", "Task updated successfully!")
	c.Redirect(http.StatusSeeOther, "/tasks")
}

func (h *TaskWeb) DeleteConfirm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	t, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.notFoundOrError(c, err)
		return
	}
	c.HTML(http.StatusOK, "task_confirm_delete.tmpl", gin.H{
		"Task":   t,
		"Action": c.Request.URL.Path,
	})
}

func (h *TaskWeb) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.String(http.StatusNotFound, "not found")
			return
		}
		h.log.Error("task delete failed", "id", id, "err", err)
		t, getErr := h.svc.GetByID(c.Request.Context(), id)
		if getErr != nil {
			c.String(http.StatusInternalServerError, "internal error")
			return
		}
		c.HTML(http.StatusOK, "task_confirm_delete.tmpl", gin.H{
			"Task":   t,
			"Action": c.Request.URL.Path,
			"Flash":  &Flash{Kind: "error", Message: "Error deleting task: " + err.Error()},
		})
		return
	}
	setFlash(c, "success", "Task deleted successfully!")
	c.Redirect(http.StatusSeeOther, "/tasks")
}

func (h *TaskWeb) renderTaskForm(c *gin.Context, title, action string, values map[string]string, err error) {
	data := gin.H{
		"Title":  title,
		"Action": action,
		"Values": values,
		"Errors": validation.Errors{},
	}
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		data["Errors"] = verr.Fields
	} else {
		h.log.Error("task save failed", "err", err)
		data["Flash"] = &Flash{Kind: "error", Message: "Error saving task."}
	}
	c.HTML(http.StatusOK, "task_form.tmpl", data)
}

func (h *TaskWeb) notFoundOrError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNotFound) {
		c.String(http.StatusNotFound, "not found")
		return
	}
	h.log.Error("task page failed", "err", err)
	c.String(http.StatusInternalServerError, "internal error")
}

func taskValues(title, description string, completed bool) map[string]string {
	values := map[string]string{
		"title":       title,
		"description": description,
	}
	if completed {
		values["completed"] = "on"
	}
	return values
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.String(http.StatusNotFound, "not found")
		return 0, false
	}
	return id, true
}
