package handlers

import (
	"github.com/gin-gonic/gin"

	"expensetracker/internal/response"
	"expensetracker/internal/services"
)

// CategoryHandler handles category-related requests
type CategoryHandler struct {
	categoryService services.CategoryServicer
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(categoryService services.CategoryServicer) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService}
}

// CategoryRequest represents the request payload for creating or updating a category.
// Omitted color and icon take the default on create and keep the stored value on update.
type CategoryRequest struct {
	Name  string  `json:"name" binding:"max=100"`
	Color *string `json:"color" binding:"omitempty,hex_color"`
	Icon  *string `json:"icon" binding:"omitempty,max=50"`
}

func (r CategoryRequest) input() services.CategoryInput {
	return services.CategoryInput{Name: r.Name, Color: r.Color, Icon: r.Icon}
}

// GetCategories handles the retrieval of all categories
// @Summary     List categories
// @Description Get every category ordered by name
// @Tags        categories
// @Produce     json
// @Success     200 {object} response.Envelope{data=[]models.Category} "List of categories"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [get]
func (h *CategoryHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories()
	if err != nil {
		respondWithError(c, err)
		return
	}
	response.List(c, categories)
}

// GetCategory handles the retrieval of a specific category
// @Summary     Get category by ID
// @Description Get a specific category by ID
// @Tags        categories
// @Produce     json
// @Param       id path int true "Category ID"
// @Success     200 {object} response.Envelope{data=models.Category} "Category details"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [get]
func (h *CategoryHandler) GetCategory(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	category, err := h.categoryService.GetCategory(id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	response.OK(c, category)
}

// CreateCategory handles the creation of a new category
// @Summary     Create a category
// @Description Create a new expense category
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       request body CategoryRequest true "Category details"
// @Success     201 {object} response.Envelope{data=models.Category} "Category created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     409 {object} ErrorResponse "Duplicate name"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories [post]
func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	category, err := h.categoryService.CreateCategory(req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}
	response.Created(c, "Category created successfully", category)
}

// UpdateCategory handles updating an existing category
// @Summary     Update category
// @Description Rename a category and optionally change its color or icon
// @Tags        categories
// @Accept      json
// @Produce     json
// @Param       id path int true "Category ID"
// @Param       request body CategoryRequest true "Updated category details"
// @Success     200 {object} response.Envelope{data=models.Category} "Updated category"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     409 {object} ErrorResponse "Duplicate name"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /categories/{id} [put]
func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindError(err))
		return
	}

	category, err := h.categoryService.UpdateCategory(id, req.input())
	if err != nil {
		respondWithError(c, err)
		return
	}
	response.Message(c, "Category updated successfully", category)
}

// DeleteCategory handles deleting a category
// @Summary     Delete category
// @Description Delete a category that no expense references
// @Tags        categories
// @Produce     json
// @Param       id path int true "Category ID"
// @Success     200 {object} response.Envelope "Category deleted"
// @Failure     400 {object} ErrorResponse "Invalid category ID"
// @Failure     404 {object} ErrorResponse "Category not found"
// @Failure     500 {object} ErrorResponse "Category in use or server error"
// @Router      /categories/{id} [delete]
func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	id, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.categoryService.DeleteCategory(id); err != nil {
		respondWithError(c, err)
		return
	}
	response.Message(c, "Category deleted successfully", nil)
}
