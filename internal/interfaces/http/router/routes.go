package router

import (
	"github.com/alexrentacar/backoffice/internal/domain/identity"
	"github.com/alexrentacar/backoffice/internal/interfaces/http/handler"
	"github.com/alexrentacar/backoffice/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// Handlers bundles every HTTP handler the back office exposes
type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Catalog    *handler.CatalogHandler
	Party      *handler.PartyHandler
	Vehicle    *handler.VehicleHandler
	Rental     *handler.RentalHandler
	Workshop   *handler.WorkshopHandler
	Report     *handler.ReportHandler
	Audit      *handler.AuditHandler
	Settlement *handler.SettlementHandler
	System     *handler.SystemHandler
}

// Guards are the cross-cutting middleware the route table needs.
// Auth resolves the actor for every protected route; LoginRate throttles
// login attempts and may be nil.
type Guards struct {
	Auth       gin.HandlerFunc
	LoginRate  gin.HandlerFunc
	Permission middleware.PermissionConfig
}

// BackOffice builds the full route table. Call Setup on the result to mount it.
func BackOffice(engine *gin.Engine, h Handlers, g Guards, opts ...RouterOption) *Router {
	r := NewRouter(engine, opts...)
	if g.Auth != nil {
		r.Use(g.Auth)
	}

	staff := middleware.RequireRolesWithConfig(g.Permission, identity.RoleAdmin, identity.RoleUser)
	workshopStaff := middleware.RequireRolesWithConfig(g.Permission, identity.RoleAdmin, identity.RoleUser, identity.RoleMechanic)
	adminOnly := middleware.RequireAdmin(g.Permission)

	login := []gin.HandlerFunc{h.Auth.Login}
	if g.LoginRate != nil {
		login = append([]gin.HandlerFunc{g.LoginRate}, login...)
	}
	r.RegisterPublic(NewDomainGroup("auth", "/auth").
		POST("/login", login...).
		POST("/refresh", h.Auth.RefreshToken))
	r.RegisterPublic(NewDomainGroup("system", "/system").
		GET("/info", h.System.Info).
		GET("/ping", h.System.Ping))

	r.Register(NewDomainGroup("session", "/auth").
		POST("/logout", h.Auth.Logout).
		GET("/me", h.Auth.GetCurrentUser).
		PUT("/profile", h.Auth.UpdateProfile).
		PUT("/password", h.Auth.ChangePassword))

	admin := NewDomainGroup("admin", "/admin").Use(adminOnly)
	admin.Group("users", "/users").
		POST("", h.User.Create).
		GET("", h.User.List).
		GET("/:id", h.User.GetByID).
		PUT("/:id", h.User.Update).
		DELETE("/:id", h.User.Delete)
	admin.GET("/access-logs", h.User.AccessLogs)
	admin.GET("/audit/:entity_type/:entity_id", h.Audit.History)
	r.Register(admin)

	r.Register(catalogRoutes(h.Catalog, staff))
	r.Register(partyRoutes(h.Party, staff))
	r.Register(fleetRoutes(h.Vehicle, h.Rental, staff))
	r.Register(workshopRoutes(h.Workshop, workshopStaff))

	r.Register(NewDomainGroup("reports", "/reports").Use(staff).
		GET("/dashboard", h.Report.Dashboard).
		POST("/dashboard/refresh", h.Report.RefreshDashboard).
		GET("/income", h.Report.Income).
		GET("/owners", h.Report.Owners).
		GET("/tenants", h.Report.Tenants))

	r.Register(settlementRoutes(h.Settlement, staff))
	return r
}

func catalogRoutes(h *handler.CatalogHandler, guard gin.HandlerFunc) *DomainGroup {
	g := NewDomainGroup("catalog", "").Use(guard)
	g.Group("brand-models", "/brand-models").
		POST("", h.CreateBrandModel).
		GET("", h.ListBrandModels).
		GET("/:id", h.GetBrandModel).
		PUT("/:id", h.UpdateBrandModel).
		DELETE("/:id", h.DeleteBrandModel).
		POST("/:id/logo", h.UploadBrandModelLogo)
	g.Group("banks", "/banks").
		POST("", h.CreateBank).
		GET("", h.ListBanks).
		GET("/:id", h.GetBank).
		PUT("/:id", h.UpdateBank).
		DELETE("/:id", h.DeleteBank).
		POST("/:id/logo", h.UploadBankLogo)
	g.Group("lookups", "/lookups").
		GET("/:kind", h.ListLookups).
		POST("/:kind", h.CreateLookup).
		GET("/:kind/:id", h.GetLookup).
		PUT("/:kind/:id", h.UpdateLookup).
		DELETE("/:kind/:id", h.DeleteLookup)
	return g
}

func partyRoutes(h *handler.PartyHandler, guard gin.HandlerFunc) *DomainGroup {
	g := NewDomainGroup("parties", "").Use(guard)
	g.Group("owners", "/owners").
		POST("", h.CreateOwner).
		GET("", h.ListOwners).
		GET("/:id", h.GetOwner).
		PUT("/:id", h.UpdateOwner).
		DELETE("/:id", h.DeleteOwner).
		POST("/:id/documents/:kind", h.UploadOwnerDocument).
		POST("/:id/references", h.AddOwnerReference).
		DELETE("/:id/references/:ref_id", h.RemoveOwnerReference)
	g.Group("tenants", "/tenants").
		POST("", h.CreateTenant).
		GET("", h.ListTenants).
		GET("/:id", h.GetTenant).
		PUT("/:id", h.UpdateTenant).
		DELETE("/:id", h.DeleteTenant).
		POST("/:id/documents/:kind", h.UploadTenantDocument).
		POST("/:id/guarantors", h.AddGuarantor).
		DELETE("/:id/guarantors/:guarantor_id", h.RemoveGuarantor).
		POST("/:id/guarantors/:guarantor_id/employment-letter", h.UploadEmploymentLetter).
		POST("/:id/references", h.AddTenantReference).
		DELETE("/:id/references/:ref_id", h.RemoveTenantReference)
	return g
}

func fleetRoutes(vh *handler.VehicleHandler, rh *handler.RentalHandler, guard gin.HandlerFunc) *DomainGroup {
	g := NewDomainGroup("fleet", "").Use(guard)
	g.Group("vehicles", "/vehicles").
		POST("", vh.Create).
		GET("", vh.List).
		GET("/:id", vh.GetByID).
		PUT("/:id", vh.Update).
		DELETE("/:id", vh.Delete).
		POST("/:id/media/:kind", vh.UploadMedia).
		GET("/:id/rentals", vh.Rentals).
		GET("/:id/repairs", vh.Repairs)
	g.Group("rentals", "/rentals").
		POST("", rh.CreateRental).
		GET("", rh.ListRentals).
		GET("/:id", rh.GetRental).
		PUT("/:id", rh.UpdateRental).
		DELETE("/:id", rh.DeleteRental)
	g.Group("payments", "/payments").
		POST("", rh.CreatePayment).
		GET("", rh.ListPayments).
		GET("/:id", rh.GetPayment).
		PUT("/:id", rh.UpdatePayment).
		DELETE("/:id", rh.DeletePayment)
	g.Group("debts", "/debts").
		POST("", rh.CreateDebt).
		GET("", rh.ListDebts).
		GET("/:id", rh.GetDebt).
		PUT("/:id", rh.UpdateDebt).
		PATCH("/:id/status", rh.ChangeDebtStatus).
		DELETE("/:id", rh.DeleteDebt)
	return g
}

func workshopRoutes(h *handler.WorkshopHandler, guard gin.HandlerFunc) *DomainGroup {
	g := NewDomainGroup("workshop", "").Use(guard)
	g.Group("mechanics", "/mechanics").
		POST("", h.CreateMechanic).
		GET("", h.ListMechanics).
		GET("/:id", h.GetMechanic).
		PUT("/:id", h.UpdateMechanic).
		DELETE("/:id", h.DeleteMechanic)
	g.Group("parts", "/parts").
		POST("", h.CreatePart).
		GET("", h.ListParts).
		GET("/:id", h.GetPart).
		PUT("/:id", h.UpdatePart).
		DELETE("/:id", h.DeletePart)
	g.Group("work-orders", "/work-orders").
		POST("", h.CreateWorkOrder).
		GET("", h.ListWorkOrders).
		GET("/:id", h.GetWorkOrder).
		PUT("/:id", h.UpdateWorkOrder).
		DELETE("/:id", h.DeleteWorkOrder).
		POST("/:id/parts", h.AddPart).
		DELETE("/:id/parts/:usage_id", h.RemovePart).
		PATCH("/:id/status", h.Transition)
	return g
}

func settlementRoutes(h *handler.SettlementHandler, guard gin.HandlerFunc) *DomainGroup {
	g := NewDomainGroup("settlement", "/settlement").Use(guard)
	g.Group("weeks", "/weeks").
		POST("", h.CreateWeek).
		GET("", h.ListWeeks).
		GET("/:id", h.GetWeek).
		PUT("/:id/items", h.BatchEdit).
		GET("/:id/available-rentals", h.AvailableRentals).
		GET("/:id/available", h.Available).
		POST("/:id/rentals", h.AddRental).
		POST("/:id/close", h.CloseWeek).
		DELETE("/:id", h.DeleteWeek).
		GET("/:id/export", h.ExportWeek)
	g.Group("items", "/items").
		PUT("/:item_id", h.EditItem).
		DELETE("/:item_id", h.RemoveItem)
	g.GET("/banks", h.Banks)
	g.Group("profit-percentages", "/profit-percentages").
		POST("", h.CreateProfitPercentage).
		GET("", h.ListProfitPercentages).
		GET("/:id", h.GetProfitPercentage).
		PUT("/:id", h.UpdateProfitPercentage).
		DELETE("/:id", h.DeleteProfitPercentage)
	return g
}
