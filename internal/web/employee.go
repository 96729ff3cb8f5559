package web

import (
	"errors"
	"log/slog"
	"net/http"

	dom "Backoffice/internal/domain"
	"Backoffice/internal/service"
	"Backoffice/internal/validation"

	"github.com/gin-gonic/gin"
)

// EmployeeWeb serves the server-rendered employee pages. It shares the
// EmployeeService (and therefore the validation rules) with the REST surface.
type EmployeeWeb struct {
	svc *service.EmployeeService
	log *slog.Logger
}

func NewEmployeeWeb(svc *service.EmployeeService, log *slog.Logger) *EmployeeWeb {
	return &EmployeeWeb{svc: svc, log: log}
}

func (h *EmployeeWeb) List(c *gin.Context) {
	employees, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.log.Error("employee list page failed", "err", err)
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	c.HTML(http.StatusOK, "employee_list.tmpl", gin.H{
		"Employees": employeeRows(employees),
		"Flash":     takeFlash(c),
	})
}

func (h *EmployeeWeb) CreateForm(c *gin.Context) {
	c.HTML(http.StatusOK, "employee_form.tmpl", gin.H{
		"Title":  "Register New Employee",
		"Action": "/employees/create",
		"Values": map[string]string{},
		"Errors": validation.Errors{},
	})
}

func (h *EmployeeWeb) Create(c *gin.Context) {
	in := employeeInputFromForm(c)
	_, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		h.renderEmployeeForm(c, "Register New Employee", "/employees/create", in, err)
		return
	}
	setFlash(c, "success", "Employee registered successfully!")
	c.Redirect(http.StatusSeeOther, "/employees")
}

func (h *EmployeeWeb) UpdateForm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	e, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.notFoundOrError(c, err)
		return
	}
	c.HTML(http.StatusOK, "employee_form.tmpl", gin.H{
		"Title":  "Edit Employee",
		"Action": c.Request.URL.Path,
		"Values": employeeFormValues(e),
		"Errors": validation.Errors{},
	})
}

func (h *EmployeeWeb) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	in := employeeInputFromForm(c)
	_, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.String(http.StatusNotFound, "not found")
			return
		}
		h.renderEmployeeForm(c, "Edit Employee", c.Request.URL.Path, in, err)
		return
	}
	setFlash(c, "success", "Employee updated successfully!")
	c.Redirect(http.StatusSeeOther, "/employees")
}

func (h *EmployeeWeb) DeleteConfirm(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	e, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.notFoundOrError(c, err)
		return
	}
	c.HTML(http.StatusOK, "employee_confirm_delete.tmpl", gin.H{
		"Employee": employeeRow(e),
		"Action":   c.Request.URL.Path,
	})
}

func (h *EmployeeWeb) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.String(http.StatusNotFound, "not found")
			return
		}
		h.log.Error("employee delete failed", "id", id, "err", err)
		e, getErr := h.svc.GetByID(c.Request.Context(), id)
		if getErr != nil {
			c.String(http.StatusInternalServerError, "internal error")
			return
		}
		c.HTML(http.StatusOK, "employee_confirm_delete.tmpl", gin.H{
			"Employee": employeeRow(e),
			"Action":   c.Request.URL.Path,
			"Flash":    &Flash{Kind: "error", Message: "Error deleting employee: " + err.Error()},
		})
		return
	}
	setFlash(c, "success", "Employee deleted successfully!")
	c.Redirect(http.StatusSeeOther, "/employees")
}

// renderEmployeeForm re-renders the form after a rejected submit.
// Field-level failures populate Errors; duplicate or gateway failures
// surface as a single page-level error notice instead.
func (h *EmployeeWeb) renderEmployeeForm(c *gin.Context, title, action string, in validation.EmployeeInput, err error) {
	data := gin.H{
		"Title":  title,
		"Action": action,
		"Values": inputFormValues(in),
		"Errors": validation.Errors{},
	}
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		data["Errors"] = verr.Fields
	case errors.Is(err, service.ErrDuplicateEmail), errors.Is(err, service.ErrDuplicateEmployeeID):
		data["Flash"] = &Flash{Kind: "error", Message: "Error saving employee: " + err.Error()}
	default:
		h.log.Error("employee save failed", "err", err)
		data["Flash"] = &Flash{Kind: "error", Message: "Error saving employee."}
	}
	c.HTML(http.StatusOK, "employee_form.tmpl", data)
}

func (h *EmployeeWeb) notFoundOrError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNotFound) {
		c.String(http.StatusNotFound, "not found")
		return
	}
	h.log.Error("employee page failed", "err", err)
	c.String(http.StatusInternalServerError, "internal error")
}

func employeeInputFromForm(c *gin.Context) validation.EmployeeInput {
	return validation.EmployeeInput{
		FullName:      c.PostForm("full_name"),
		DateOfBirth:   c.PostForm("date_of_birth"),
		Gender:        c.PostForm("gender"),
		PhoneNumber:   c.PostForm("phone_number"),
		Email:         c.PostForm("email"),
		Address:       c.PostForm("address"),
		JobTitle:      c.PostForm("job_title"),
		Department:    c.PostForm("department"),
		EmployeeID:    c.PostForm("employee_id"),
		DateOfJoining: c.PostForm("date_of_joining"),
		WorkLocation:  c.PostForm("work_location"),
	}
}

func inputFormValues(in validation.EmployeeInput) map[string]string {
	return map[string]string{
		"full_name":       in.FullName,
		"date_of_birth":   in.DateOfBirth,
		"gender":          in.Gender,
		"phone_number":    in.PhoneNumber,
		"email":           in.Email,
		"address":         in.Address,
		"job_title":       in.JobTitle,
		"department":      in.Department,
		"employee_id":     in.EmployeeID,
		"date_of_joining": in.DateOfJoining,
		"work_location":   in.WorkLocation,
	}
}

func employeeFormValues(e dom.Employee) map[string]string {
	return map[string]string{
		"full_name":       e.FullName,
		"date_of_birth":   e.DateOfBirth.Format(validation.DateLayout),
		"gender":          e.Gender,
		"phone_number":    e.PhoneNumber,
		"email":           e.Email,
		"address":         e.Address,
		"job_title":       e.JobTitle,
		"department":      e.Department,
		"employee_id":     e.EmployeeID,
		"date_of_joining": e.DateOfJoining.Format(validation.DateLayout),
		"work_location":   e.WorkLocation,
	}
}

// EmployeeRow is what the listing and delete pages render.
type EmployeeRow struct {
	ID            int64
	FullName      string
	Email         string
	EmployeeID    string
	JobTitle      string
	Department    string
	DateOfJoining string
	WorkLocation  string
}

func employeeRow(e dom.Employee) EmployeeRow {
	return EmployeeRow{
		ID:            e.ID,
		FullName:      e.FullName,
		Email:         e.Email,
		EmployeeID:    e.EmployeeID,
		JobTitle:      e.JobTitle,
		Department:    e.Department,
		DateOfJoining: e.DateOfJoining.Format(validation.DateLayout),
		WorkLocation:  e.WorkLocation,
	}
}

func employeeRows(list []dom.Employee) []EmployeeRow {
	rows := make([]EmployeeRow, len(list))
	for i := range list {
		rows[i] = employeeRow(list[i])
	}
	return rows
}
