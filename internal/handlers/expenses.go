package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/compass/backend/internal/models"
	"github.com/compass/backend/internal/util"
)

type ExpenseHandler struct {
	DB *gorm.DB
}

func (h *ExpenseHandler) ListExpenses(c echo.Context) error {
	page := parseIntDefault(c.QueryParam("page"), 1)
	size := parseIntDefault(c.QueryParam("size"), util.DefaultPageSize)
	offset, limit := util.Calculate(page, size)

	var total int64
	if err := h.DB.Model(&models.Expense{}).Count(&total).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	var items []models.Expense
	if err := h.DB.Order("created_at DESC").Offset(offset).Limit(limit).Find(&items).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return pagedJSON(c, items, page, limit, offset, total)
}

func (h *ExpenseHandler) CreateExpense(c echo.Context) error {
	var req struct {
		Vendor   string  `json:"vendor"`
		Category string  `json:"category"`
		Amount   float64 `json:"amount"`
		Date     string  `json:"date"`
		Note     string  `json:"note"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if req.Amount <= 0 {
		return errorResponse(c, http.StatusBadRequest, errors.New("amount must be > 0"))
	}
	if req.Date == "" {
		return errorResponse(c, http.StatusBadRequest, errors.New("date required"))
	}

	expense := models.Expense{
		Vendor:   req.Vendor,
		Category: req.Category,
		Amount:   req.Amount,
		Date:     req.Date,
		Note:     req.Note,
	}
	if err := h.DB.Create(&expense).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusCreated, expense)
}

func (h *ExpenseHandler) PatchExpense(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	var expense models.Expense
	if err := h.DB.First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorResponse(c, http.StatusNotFound, err)
		}
		return errorResponse(c, http.StatusInternalServerError, err)
	}

	var req struct {
		Vendor   *string  `json:"vendor"`
		Category *string  `json:"category"`
		Amount   *float64 `json:"amount"`
		Date     *string  `json:"date"`
		Note     *string  `json:"note"`
	}
	if err := c.Bind(&req); err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}

	if req.Vendor != nil {
		expense.Vendor = *req.Vendor
	}
	if req.Category != nil {
		expense.Category = *req.Category
	}
	if req.Amount != nil {
		if *req.Amount <= 0 {
			return errorResponse(c, http.StatusBadRequest, errors.New("amount must be > 0"))
		}
		expense.Amount = *req.Amount
	}
	if req.Date != nil {
		expense.Date = *req.Date
	}
	if req.Note != nil {
		expense.Note = *req.Note
	}

	if err := h.DB.Save(&expense).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, expense)
}

func (h *ExpenseHandler) DeleteExpense(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return errorResponse(c, http.StatusBadRequest, err)
	}
	if err := h.DB.Delete(&models.Expense{}, id).Error; err != nil {
		return errorResponse(c, http.StatusInternalServerError, err)
	}
	return c.JSON(http.StatusOK, map[string]any{"ok": true})
}
