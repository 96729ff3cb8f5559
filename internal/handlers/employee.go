package handlers

import (
	"errors"
	"net/http"

	dom "Backoffice/internal/domain"
	"Backoffice/internal/dto"
	"Backoffice/internal/service"
	"Backoffice/internal/validation"

	"github.com/gin-gonic/gin"
)

type EmployeeHandler struct {
	svc *service.EmployeeService
}

func NewEmployeeHandler(svc *service.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{svc: svc}
}

// Create godoc
// @Summary      Create an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        body  body      dto.EmployeeRequest  true  "Employee body"
// @Success      201   {object}  dto.EmployeeResponse
// @Failure      400   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	var req dto.EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e, err := h.svc.Create(c.Request.Context(), employeeInput(req))
	if err != nil {
		writeEmployeeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, employeeToResponse(e))
}

// List godoc
// @Summary      List all employees, newest joiners first
// @Tags         employees
// @Produce      json
// @Success      200  {object}  dto.ListEmployeesResponse
// @Failure      500  {object}  map[string]string
// @Router       /employees [get]
func (h *EmployeeHandler) List(c *gin.Context) {
	list, err := h.svc.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.ListEmployeesResponse{Items: employeesToResponses(list)})
}

// GetByID godoc
// @Summary      Get an employee by ID
// @Tags         employees
// @Produce      json
// @Param        id   path      int  true  "Employee ID"
// @Success      200  {object}  dto.EmployeeResponse
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /employees/{id} [get]
func (h *EmployeeHandler) GetByID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	e, err := h.svc.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, employeeToResponse(e))
}

// Update godoc
// @Summary      Replace an employee
// @Tags         employees
// @Accept       json
// @Produce      json
// @Param        id    path      int  true  "Employee ID"
// @Param        body  body      dto.EmployeeRequest  true  "Full replacement"
// @Success      200   {object}  dto.EmployeeResponse
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /employees/{id} [put]
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.EmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e, err := h.svc.Update(c.Request.Context(), id, employeeInput(req))
	if err != nil {
		writeEmployeeError(c, err)
		return
	}
	c.JSON(http.StatusOK, employeeToResponse(e))
}

// Delete godoc
// @Summary      Delete an employee
// @Tags         employees
// @Param        id   path  int  true  "Employee ID"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /employees/{id} [delete]
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func writeEmployeeError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"errors": verr.Fields})
	case errors.Is(err, service.ErrDuplicateEmail), errors.Is(err, service.ErrDuplicateEmployeeID):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

func employeeInput(req dto.EmployeeRequest) validation.EmployeeInput {
	return validation.EmployeeInput{
		FullName:      req.FullName,
		DateOfBirth:   req.DateOfBirth,
		Gender:        req.Gender,
		PhoneNumber:   req.PhoneNumber,
		Email:         req.Email,
		Address:       req.Address,
		JobTitle:      req.JobTitle,
		Department:    req.Department,
		EmployeeID:    req.EmployeeID,
		DateOfJoining: req.DateOfJoining,
		WorkLocation:  req.WorkLocation,
	}
}

func employeeToResponse(e dom.Employee) dto.EmployeeResponse {
	return dto.EmployeeResponse{
		ID:            e.ID,
		FullName:      e.FullName,
		DateOfBirth:   e.DateOfBirth.Format(validation.DateLayout),
		Gender:        e.Gender,
		PhoneNumber:   e.PhoneNumber,
		Email:         e.Email,
		Address:       e.Address,
		JobTitle:      e.JobTitle,
		Department:    e.Department,
		EmployeeID:    e.EmployeeID,
		DateOfJoining: e.DateOfJoining.Format(validation.DateLayout),
		WorkLocation:  e.WorkLocation,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
}

func employeesToResponses(list []dom.Employee) []dto.EmployeeResponse {
	out := make([]dto.EmployeeResponse, len(list))
	for i := range list {
		out[i] = employeeToResponse(list[i])
	}
	return out
}
