package http

import "github.com/labstack/echo/v4"

type Handlers struct {
	Common   *Handler
	Members  *MemberHandler
	Workflow *WorkflowHandler
	Reports  *ReportHandler
}

// Register mounts every route on e. mutating guards the POST/PUT/DELETE
// routes, typically with the idempotency middleware.
func Register(e *echo.Echo, h Handlers, mutating ...echo.MiddlewareFunc) {
	e.GET("/health", h.Common.Health)
	e.GET("/dashboard", h.Common.Dashboard)
	e.GET("/organization", h.Common.Organization)

	e.PUT("/organization", h.Common.SaveOrganization, mutating...)

	e.GET("/schemes", h.Members.ListSchemes)
	e.POST("/schemes", h.Members.CreateScheme, mutating...)

	e.GET("/members", h.Members.List)
	e.POST("/members", h.Members.Create, mutating...)
	e.GET("/members/import/template", h.Members.ImportTemplate)
	e.GET("/members/export", h.Members.Export)
	e.POST("/members/import/validate", h.Members.ValidateImport, mutating...)
	e.POST("/members/import", h.Members.Import, mutating...)
	e.GET("/members/:number", h.Members.Get)
	e.DELETE("/members/:number", h.Members.Delete, mutating...)

	e.GET("/members/:number/loans/current", h.Workflow.Current)
	e.POST("/members/:number/loans", h.Workflow.Start, mutating...)
	e.POST("/members/:number/collateral", h.Workflow.CaptureCollateral, mutating...)
	e.POST("/members/:number/projects", h.Workflow.CaptureProjects, mutating...)
	e.POST("/members/:number/witnesses", h.Workflow.AddWitness, mutating...)
	e.POST("/members/:number/guarantors", h.Workflow.AddGuarantor, mutating...)
	e.POST("/members/:number/approve", h.Workflow.Approve, mutating...)
	e.POST("/members/:number/reject", h.Workflow.Reject, mutating...)

	e.GET("/reports/types", h.Reports.Types)
	e.GET("/reports/history", h.Reports.History)
	e.GET("/reports/files/:filename", h.Reports.Download)
	e.POST("/reports", h.Reports.Generate, mutating...)
}
