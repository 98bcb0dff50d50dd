package handler

import (
	"github.com/bayup/backend/internal/application/finance"
	"github.com/gin-gonic/gin"
)

// FinanceHandler serves the store ledger: expenses, incomes, receivables,
// payroll and the summary
type FinanceHandler struct {
	BaseHandler
	ledger *finance.LedgerService
}

// NewFinanceHandler creates a new FinanceHandler
func NewFinanceHandler(ledger *finance.LedgerService) *FinanceHandler {
	return &FinanceHandler{ledger: ledger}
}

// ListExpenses godoc
// @ID           listExpense
// @Summary      List expenses
// @Tags         finance
// @Produce      json
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size"   default(20)
// @Param        status    query string false "Status"
// @Param        category  query string false "Category"
// @Success      200 {object} APIResponse[[]finance.ExpenseResponse]
// @Security     BearerAuth
// @Router       /finance/expenses [get]
func (h *FinanceHandler) ListExpenses(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c, "status", "category")
	if !ok {
		return
	}
	page, err := h.ledger.ListExpenses(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// GetExpense godoc
// @ID           getExpense
// @Summary      Get an expense
// @Tags         finance
// @Produce      json
// @Param        id path string true "Expense ID"
// @Success      200 {object} APIResponse[finance.ExpenseResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /finance/expenses/{id} [get]
func (h *FinanceHandler) GetExpense(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	expense, err := h.ledger.GetExpense(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expense)
}

// CreateExpense godoc
// @ID           createExpense
// @Summary      Record an expense
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        request body finance.ExpenseRequest true "Expense"
// @Success      201 {object} APIResponse[finance.ExpenseResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /finance/expenses [post]
func (h *FinanceHandler) CreateExpense(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req finance.ExpenseRequest
	if !h.bindJSON(c, &req) {
		return
	}
	expense, err := h.ledger.CreateExpense(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, expense)
}

// UpdateExpense godoc
// @ID           updateExpense
// @Summary      Update an expense
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        id      path string                 true "Expense ID"
// @Param        request body finance.ExpenseRequest true "Expense"
// @Success      200 {object} APIResponse[finance.ExpenseResponse]
// @Security     BearerAuth
// @Router       /finance/expenses/{id} [put]
func (h *FinanceHandler) UpdateExpense(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req finance.ExpenseRequest
	if !h.bindJSON(c, &req) {
		return
	}
	expense, err := h.ledger.UpdateExpense(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expense)
}

// DeleteExpense godoc
// @ID           deleteExpense
// @Summary      Delete an expense
// @Tags         finance
// @Param        id path string true "Expense ID"
// @Success      204
// @Security     BearerAuth
// @Router       /finance/expenses/{id} [delete]
func (h *FinanceHandler) DeleteExpense(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.ledger.DeleteExpense(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// PayExpense godoc
// @ID           payExpense
// @Summary      Mark an expense as paid
// @Tags         finance
// @Produce      json
// @Param        id path string true "Expense ID"
// @Success      200 {object} APIResponse[finance.ExpenseResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /finance/expenses/{id}/pay [post]
func (h *FinanceHandler) PayExpense(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	expense, err := h.ledger.MarkExpensePaid(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, expense)
}

// ListIncomes godoc
// @ID           listIncome
// @Summary      List incomes
// @Tags         finance
// @Produce      json
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size"   default(20)
// @Param        category  query string false "Category"
// @Success      200 {object} APIResponse[[]finance.IncomeResponse]
// @Security     BearerAuth
// @Router       /finance/incomes [get]
func (h *FinanceHandler) ListIncomes(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c, "category")
	if !ok {
		return
	}
	page, err := h.ledger.ListIncomes(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// CreateIncome godoc
// @ID           createIncome
// @Summary      Record an income
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        request body finance.IncomeRequest true "Income"
// @Success      201 {object} APIResponse[finance.IncomeResponse]
// @Security     BearerAuth
// @Router       /finance/incomes [post]
func (h *FinanceHandler) CreateIncome(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req finance.IncomeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	income, err := h.ledger.CreateIncome(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, income)
}

// UpdateIncome godoc
// @ID           updateIncome
// @Summary      Update an income
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        id      path string                true "Income ID"
// @Param        request body finance.IncomeRequest true "Income"
// @Success      200 {object} APIResponse[finance.IncomeResponse]
// @Security     BearerAuth
// @Router       /finance/incomes/{id} [put]
func (h *FinanceHandler) UpdateIncome(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req finance.IncomeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	income, err := h.ledger.UpdateIncome(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, income)
}

// DeleteIncome godoc
// @ID           deleteIncome
// @Summary      Delete an income
// @Tags         finance
// @Param        id path string true "Income ID"
// @Success      204
// @Security     BearerAuth
// @Router       /finance/incomes/{id} [delete]
func (h *FinanceHandler) DeleteIncome(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.ledger.DeleteIncome(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListReceivables godoc
// @ID           listReceivable
// @Summary      List receivables
// @Tags         finance
// @Produce      json
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size"   default(20)
// @Param        status    query string false "Status"
// @Success      200 {object} APIResponse[[]finance.ReceivableResponse]
// @Security     BearerAuth
// @Router       /finance/receivables [get]
func (h *FinanceHandler) ListReceivables(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c, "status")
	if !ok {
		return
	}
	page, err := h.ledger.ListReceivables(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// CreateReceivable godoc
// @ID           createReceivable
// @Summary      Record a receivable
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        request body finance.ReceivableRequest true "Receivable"
// @Success      201 {object} APIResponse[finance.ReceivableResponse]
// @Security     BearerAuth
// @Router       /finance/receivables [post]
func (h *FinanceHandler) CreateReceivable(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req finance.ReceivableRequest
	if !h.bindJSON(c, &req) {
		return
	}
	receivable, err := h.ledger.CreateReceivable(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, receivable)
}

// UpdateReceivable godoc
// @ID           updateReceivable
// @Summary      Update a receivable
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        id      path string                    true "Receivable ID"
// @Param        request body finance.ReceivableRequest true "Receivable"
// @Success      200 {object} APIResponse[finance.ReceivableResponse]
// @Security     BearerAuth
// @Router       /finance/receivables/{id} [put]
func (h *FinanceHandler) UpdateReceivable(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req finance.ReceivableRequest
	if !h.bindJSON(c, &req) {
		return
	}
	receivable, err := h.ledger.UpdateReceivable(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, receivable)
}

// DeleteReceivable godoc
// @ID           deleteReceivable
// @Summary      Delete a receivable
// @Tags         finance
// @Param        id path string true "Receivable ID"
// @Success      204
// @Security     BearerAuth
// @Router       /finance/receivables/{id} [delete]
func (h *FinanceHandler) DeleteReceivable(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.ledger.DeleteReceivable(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// CollectReceivable godoc
// @ID           collectReceivable
// @Summary      Mark a receivable as collected
// @Tags         finance
// @Produce      json
// @Param        id path string true "Receivable ID"
// @Success      200 {object} APIResponse[finance.ReceivableResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /finance/receivables/{id}/collect [post]
func (h *FinanceHandler) CollectReceivable(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	receivable, err := h.ledger.MarkReceivableCollected(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, receivable)
}

// ListPayroll godoc
// @ID           listPayroll
// @Summary      List payroll entries
// @Tags         finance
// @Produce      json
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size"   default(20)
// @Success      200 {object} APIResponse[[]finance.PayrollResponse]
// @Security     BearerAuth
// @Router       /finance/payroll [get]
func (h *FinanceHandler) ListPayroll(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	page, err := h.ledger.ListPayroll(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// CreatePayroll godoc
// @ID           createPayroll
// @Summary      Record a payroll entry
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        request body finance.PayrollRequest true "Payroll"
// @Success      201 {object} APIResponse[finance.PayrollResponse]
// @Security     BearerAuth
// @Router       /finance/payroll [post]
func (h *FinanceHandler) CreatePayroll(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req finance.PayrollRequest
	if !h.bindJSON(c, &req) {
		return
	}
	entry, err := h.ledger.CreatePayroll(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// UpdatePayroll godoc
// @ID           updatePayroll
// @Summary      Update a payroll entry
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        id      path string                 true "Payroll ID"
// @Param        request body finance.PayrollRequest true "Payroll"
// @Success      200 {object} APIResponse[finance.PayrollResponse]
// @Security     BearerAuth
// @Router       /finance/payroll/{id} [put]
func (h *FinanceHandler) UpdatePayroll(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req finance.PayrollRequest
	if !h.bindJSON(c, &req) {
		return
	}
	entry, err := h.ledger.UpdatePayroll(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entry)
}

// DeletePayroll godoc
// @ID           deletePayroll
// @Summary      Delete a payroll entry
// @Tags         finance
// @Param        id path string true "Payroll ID"
// @Success      204
// @Security     BearerAuth
// @Router       /finance/payroll/{id} [delete]
func (h *FinanceHandler) DeletePayroll(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.ledger.DeletePayroll(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Summary godoc
// @ID           summaryFinance
// @Summary      Ledger totals
// @Description  Income, expense, receivable and payroll totals plus the net balance
// @Tags         finance
// @Produce      json
// @Success      200 {object} APIResponse[finance.Summary]
// @Security     BearerAuth
// @Router       /finance/summary [get]
func (h *FinanceHandler) Summary(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	summary, err := h.ledger.Summary(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}
