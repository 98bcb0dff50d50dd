package router

import (
	"github.com/bayup/backend/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// Handlers bundles the HTTP handlers mounted under the API prefix
type Handlers struct {
	Auth      *handler.AuthHandler
	Staff     *handler.StaffHandler
	Admin     *handler.AdminHandler
	Product   *handler.ProductHandler
	Sales     *handler.SalesHandler
	Finance   *handler.FinanceHandler
	Settings  *handler.SettingsHandler
	Studio    *handler.StudioHandler
	Payment   *handler.PaymentHandler
	Upload    *handler.UploadHandler
	Assistant *handler.AssistantHandler
}

// Guards are the access middleware applied per group. AuthLimit may be nil.
type Guards struct {
	Auth       gin.HandlerFunc
	SuperAdmin gin.HandlerFunc
	AuthLimit  gin.HandlerFunc
}

// APIGroups builds the route groups of the store API
func APIGroups(h Handlers, g Guards) []*DomainGroup {
	return []*DomainGroup{
		authGroup(h, g),
		publicGroup(h),
		storeGroup(h, g),
		adminGroup(h, g),
	}
}

// RegisterAPI mounts the store API on the router
func RegisterAPI(r *Router, h Handlers, g Guards) {
	for _, group := range APIGroups(h, g) {
		r.Register(group)
	}
}

func authGroup(h Handlers, g Guards) *DomainGroup {
	auth := NewDomainGroup("auth", "/auth")
	withLimit := func(fn gin.HandlerFunc) []gin.HandlerFunc {
		if g.AuthLimit == nil {
			return []gin.HandlerFunc{fn}
		}
		return []gin.HandlerFunc{g.AuthLimit, fn}
	}

	auth.POST("/register", withLimit(h.Auth.Register)...).
		POST("/login", withLimit(h.Auth.Login)...).
		POST("/idp-login", withLimit(h.Auth.IdPLogin)...).
		POST("/logout", g.Auth, h.Auth.Logout).
		GET("/me", g.Auth, h.Auth.Me)
	return auth
}

func publicGroup(h Handlers) *DomainGroup {
	public := NewDomainGroup("public", "")
	public.GET("/public/stores/:slug", h.Studio.PublicStore).
		GET("/public/stores/:slug/pages/:key", h.Studio.PublicShopPage).
		POST("/public/stores/:slug/orders", h.Sales.CreateStorefrontOrder).
		POST("/payments/webhook", h.Payment.Webhook)
	return public
}

func storeGroup(h Handlers, g Guards) *DomainGroup {
	store := NewDomainGroup("store", "").Use(g.Auth)

	store.GET("/staff", h.Staff.ListStaff).
		POST("/staff", h.Staff.InviteStaff).
		PUT("/staff/:id", h.Staff.UpdateStaff).
		DELETE("/staff/:id", h.Staff.DeleteStaff).
		GET("/roles", h.Staff.ListRoles).
		POST("/roles", h.Staff.CreateRole).
		PUT("/roles/:id", h.Staff.UpdateRole).
		DELETE("/roles/:id", h.Staff.DeleteRole)

	store.CRUD("/products", h.Product.List, h.Product.Create, h.Product.Get, h.Product.Update, h.Product.Delete).
		PUT("/variants/:id/stock", h.Product.AdjustStock).
		CRUD("/collections", h.Product.ListCollections, h.Product.CreateCollection, h.Product.GetCollection,
			h.Product.UpdateCollection, h.Product.DeleteCollection).
		GET("/product-types", h.Product.ListProductTypes).
		POST("/product-types", h.Product.CreateProductType).
		PUT("/product-types/:id", h.Product.UpdateProductType).
		DELETE("/product-types/:id", h.Product.DeleteProductType)

	store.GET("/orders", h.Sales.ListOrders).
		POST("/orders", h.Sales.CreateOrder).
		GET("/orders/:id", h.Sales.GetOrder).
		PATCH("/orders/:id/status", h.Sales.UpdateOrderStatus).
		GET("/orders/:id/receipt", h.Sales.Receipt).
		POST("/orders/:id/shipments", h.Sales.CreateShipment).
		GET("/shipments", h.Sales.ListShipments).
		PATCH("/shipments/:id/status", h.Sales.UpdateShipmentStatus).
		GET("/customers", h.Sales.ListCustomers).
		GET("/activity-logs", h.Sales.ListActivity)

	finance := store.Group("finance", "/finance")
	finance.CRUD("/expenses", h.Finance.ListExpenses, h.Finance.CreateExpense, h.Finance.GetExpense,
		h.Finance.UpdateExpense, h.Finance.DeleteExpense).
		POST("/expenses/:id/pay", h.Finance.PayExpense).
		GET("/incomes", h.Finance.ListIncomes).
		POST("/incomes", h.Finance.CreateIncome).
		PUT("/incomes/:id", h.Finance.UpdateIncome).
		DELETE("/incomes/:id", h.Finance.DeleteIncome).
		GET("/receivables", h.Finance.ListReceivables).
		POST("/receivables", h.Finance.CreateReceivable).
		PUT("/receivables/:id", h.Finance.UpdateReceivable).
		DELETE("/receivables/:id", h.Finance.DeleteReceivable).
		POST("/receivables/:id/collect", h.Finance.CollectReceivable).
		GET("/payroll", h.Finance.ListPayroll).
		POST("/payroll", h.Finance.CreatePayroll).
		PUT("/payroll/:id", h.Finance.UpdatePayroll).
		DELETE("/payroll/:id", h.Finance.DeletePayroll).
		GET("/summary", h.Finance.Summary)

	settings := store.Group("settings", "/settings")
	settings.GET("/tax-rates", h.Settings.ListTaxRates).
		POST("/tax-rates", h.Settings.CreateTaxRate).
		PUT("/tax-rates/:id", h.Settings.UpdateTaxRate).
		DELETE("/tax-rates/:id", h.Settings.DeleteTaxRate).
		GET("/shipping-options", h.Settings.ListShippingOptions).
		POST("/shipping-options", h.Settings.CreateShippingOption).
		PUT("/shipping-options/:id", h.Settings.UpdateShippingOption).
		DELETE("/shipping-options/:id", h.Settings.DeleteShippingOption)

	store.CRUD("/pages", h.Studio.ListPages, h.Studio.CreatePage, h.Studio.GetPage, h.Studio.UpdatePage, h.Studio.DeletePage).
		GET("/shop-pages", h.Studio.ListShopPages).
		GET("/shop-pages/:key", h.Studio.GetShopPage).
		PUT("/shop-pages/:key", h.Studio.SaveShopPage)

	store.POST("/payments/preference", h.Payment.CreatePreference).
		GET("/payments/transactions/:id", h.Payment.GetTransaction).
		POST("/uploads/presign", h.Upload.Presign).
		POST("/assistant/chat", h.Assistant.Chat)

	return store
}

func adminGroup(h Handlers, g Guards) *DomainGroup {
	admin := NewDomainGroup("admin", "/admin").Use(g.Auth, g.SuperAdmin)
	admin.GET("/plans", h.Admin.ListPlans).
		POST("/plans", h.Admin.CreatePlan).
		GET("/stats", h.Admin.Stats)
	return admin
}
