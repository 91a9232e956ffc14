package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"expensetracker/internal/models"
	"expensetracker/internal/response"
	"expensetracker/internal/services"
)

// ExpenseHandler handles expense-related requests
type ExpenseHandler struct {
	expenseService services.ExpenseServicer
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService services.ExpenseServicer) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService}
}

// ExpenseRequest represents the request payload for creating or replacing an expense.
// Amount is a JSON number or numeric string with at most two decimal places.
type ExpenseRequest struct {
	Amount       *decimal.Decimal `json:"amount" binding:"omitempty,money" swaggertype:"number" example:"45.5"`
	CategoryID   *uint            `json:"category_id" example:"1"`
	Description  string           `json:"description" example:"Lunch at restaurant"`
	ExpenseDate  *models.Date     `json:"expense_date" swaggertype:"string" example:"2024-12-20"`
	ReceiptImage *string          `json:"receipt_image" binding:"omitempty,max=255"`
}

func (r ExpenseRequest) input() services.ExpenseInput {
	return services.ExpenseInput{
		Amount:       r.Amount,
		CategoryID:   r.CategoryID,
		Description:  r.Description,
		ExpenseDate:  r.ExpenseDate,
		ReceiptImage: r.ReceiptImage,
	}
}

// GetExpenses handles listing expenses
// @Summary     List expenses
// @Description List expenses with their category, filtered and sorted. Unknown sort keys fall back to expense_date.
// @Tags        expenses
// @Produce     json
// @Param       startDate  query string false "Inclusive lower bound (YYYY-MM-DD)"
// @Param       endDate    query string false "Inclusive upper bound (YYYY-MM-DD)"
// @Param       categoryId query int    false "Filter by category ID"
// @Param       sortBy     query string false "expense_date, amount or category_name"
// @Param       sortOrder  query string false "asc or desc (default desc)"
// @Success     200 {object} response.Envelope{data=[]models.ExpenseDetail} "Expenses"
// @Failure     400 {object} ErrorResponse "Invalid filter"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [get]
func (h *ExpenseHandler) GetExpenses(c *gin.Context) {
	filter, sort, err := parseExpenseFilter(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	expenses, err := h.expenseService.ListExpenses(filter, sort)
	if err != nil {
		respondWithError(c, err)
		return
	}
	response.List(c, expenses)
}

// GetExpense handles the retrieval of a specific expense
// @Summary     Get expense by ID
// @Description Get an expense with its category fields
// @Tags        expenses
// @Produce     json
// @Param       id path int true "Expense ID"
// @Success     200 {object} response.Envelope{data=models.ExpenseDetail} "Expense details"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [get]
func (h *ExpenseHandler) GetExpense(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	expense, err := h.expenseService.GetExpense(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	response.OK(c, expense)
}

// CreateExpense handles recording a new expense
// @Summary     Create an expense
// @Description Record an expense against an existing category
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Param       request body ExpenseRequest true "Expense details"
// @Success     201 {object} response.Envelope{data=models.ExpenseDetail} "Expense created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses [post]
func (h *ExpenseHandler) CreateExpense(c *gin.Context) {
	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	expense, err := h.expenseService.CreateExpense(req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}
	response.Created(c, "Expense created successfully", expense)
}

// UpdateExpense handles replacing an expense
// @Summary     Update expense
// @Description Replace every mutable field of an expense
// @Tags        expenses
// @Accept      json
// @Produce     json
// @Param       id path int true "Expense ID"
// @Param       request body ExpenseRequest true "Expense details"
// @Success     200 {object} response.Envelope{data=models.ExpenseDetail} "Updated expense"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Expense or category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [put]
func (h *ExpenseHandler) UpdateExpense(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req ExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	expense, err := h.expenseService.UpdateExpense(id, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}
	response.Message(c, "Expense updated successfully", expense)
}

// DeleteExpense handles deleting an expense
// @Summary     Delete expense
// @Description Delete an expense
// @Tags        expenses
// @Produce     json
// @Param       id path int true "Expense ID"
// @Success     200 {object} response.Envelope "Expense deleted"
// @Failure     400 {object} ErrorResponse "Invalid expense ID"
// @Failure     404 {object} ErrorResponse "Expense not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /expenses/{id} [delete]
func (h *ExpenseHandler) DeleteExpense(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.expenseService.DeleteExpense(id); err != nil {
		respondWithError(c, err)
		return
	}
	response.Message(c, "Expense deleted successfully", nil)
}
