package employee

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/NazarovEvgn/lets-app/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	repo Repository
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{repo: NewRepository(db)}
}

// ListBusinessEmployees godoc
// @Summary      List active employees of a business
// @Tags         businesses
// @Produce      json
// @Param        businessID  path      int  true  "Business ID"
// @Success      200         {array}   Employee
// @Failure      400         {object}  gin.H
// @Failure      500         {object}  gin.H
// @Router       /businesses/{businessID}/employees [get]
func (h *Handler) ListBusinessEmployees(c *gin.Context) {
	businessID, err := strconv.Atoi(c.Param("businessID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid business ID"})
		return
	}

	employees, err := h.repo.ListActiveByBusiness(c.Request.Context(), businessID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch employees"})
		return
	}

	c.JSON(http.StatusOK, employees)
}

// ListMyEmployees godoc
// @Summary      List all employees of the admin's business
// @Tags         admin
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Employee
// @Failure      500  {object}  gin.H
// @Router       /admin/employees [get]
func (h *Handler) ListMyEmployees(c *gin.Context) {
	businessID, ok := auth.GetBusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	employees, err := h.repo.ListByBusiness(c.Request.Context(), businessID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch employees"})
		return
	}

	c.JSON(http.StatusOK, employees)
}

// CreateEmployee godoc
// @Summary      Add employee
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateEmployeeRequest  true  "Employee data"
// @Success      201      {object}  Employee
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /admin/employees [post]
func (h *Handler) CreateEmployee(c *gin.Context) {
	businessID, ok := auth.GetBusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	var req CreateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	employee, err := h.repo.Create(c.Request.Context(), businessID, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create employee"})
		return
	}

	c.JSON(http.StatusCreated, employee)
}

// UpdateEmployee godoc
// @Summary      Update employee
// @Tags         admin
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        employeeID  path      int                    true  "Employee ID"
// @Param        request     body      UpdateEmployeeRequest  true  "Fields to update"
// @Success      200         {object}  Employee
// @Failure      400         {object}  gin.H
// @Failure      404         {object}  gin.H
// @Failure      500         {object}  gin.H
// @Router       /admin/employees/{employeeID} [patch]
func (h *Handler) UpdateEmployee(c *gin.Context) {
	businessID, ok := auth.GetBusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	employeeID, err := strconv.Atoi(c.Param("employeeID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employee ID"})
		return
	}

	var req UpdateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	employee, err := h.repo.Update(c.Request.Context(), businessID, employeeID, req)
	if err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update employee"})
		return
	}

	c.JSON(http.StatusOK, employee)
}

// DeleteEmployee godoc
// @Summary      Remove employee
// @Tags         admin
// @Security     BearerAuth
// @Param        employeeID  path  int  true  "Employee ID"
// @Success      204
// @Failure      400  {object}  gin.H
// @Failure      404  {object}  gin.H
// @Failure      500  {object}  gin.H
// @Router       /admin/employees/{employeeID} [delete]
func (h *Handler) DeleteEmployee(c *gin.Context) {
	businessID, ok := auth.GetBusinessID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Admin not authenticated"})
		return
	}

	employeeID, err := strconv.Atoi(c.Param("employeeID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid employee ID"})
		return
	}

	if err := h.repo.Delete(c.Request.Context(), businessID, employeeID); err != nil {
		if errors.Is(err, ErrEmployeeNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete employee"})
		return
	}

	c.Status(http.StatusNoContent)
}
