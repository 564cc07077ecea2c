package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"

	"farmacoplus/internal/config"
	"farmacoplus/internal/domain"
	applog "farmacoplus/internal/log"
	"farmacoplus/internal/repos"
	"farmacoplus/internal/services"
)

type Deps struct {
	Workspaces        *services.Workspaces
	HomeHandler       *HomeHandler
	MedicationHandler *CRUDHandler[domain.Medication, domain.MedicationForm]
	ClientHandler     *CRUDHandler[domain.Client, domain.ClientForm]
	SaleHandler       *SaleHandler
	QueryHandler      *QueryHandler
}

func NewDeps(db *sqlx.DB, cfg config.Config) *Deps {
	api := repos.NewBackend(cfg.APIBaseURL)
	medRepo := repos.NewMedicationRepo(api)
	cliRepo := repos.NewClientRepo(api)
	saleRepo := repos.NewSaleRepo(api)
	nlqRepo := repos.NewNLQRepo(api)
	history := repos.NewQAHistoryRepo(db)

	ws := services.NewWorkspaces(func(sid string) *services.Workspace {
		return &services.Workspace{
			Medications: services.NewMedicationPage(medRepo, cfg.PageSize, cfg.FlashTTL),
			Clients:     services.NewClientPage(cliRepo, cfg.PageSize, cfg.FlashTTL),
			Sales:       services.NewSalePage(saleRepo, cfg.PageSize, cfg.FlashTTL),
			Query:       services.NewQuerySession(nlqRepo, history.Session(sid)),
		}
	}, services.WorkspaceLimits{
		Idle: cfg.SessionIdle,
		Max:  cfg.MaxSessions,
		OnEvict: func(sid string) {
			if err := history.Purge(sid); err != nil {
				applog.Error(nil, "session.purge.fail", err, map[string]any{"sid": sid})
				return
			}
			applog.Info(nil, "session.evict", map[string]any{"sid": sid})
		},
	})

	return &Deps{
		Workspaces:  ws,
		HomeHandler: &HomeHandler{},
		MedicationHandler: &CRUDHandler[domain.Medication, domain.MedicationForm]{
			Name:     "medications",
			Base:     "/medicamentos",
			Template: "medications",
			Page:     func(w *services.Workspace) *services.MedicationPage { return w.Medications },
			Extra:    fiber.Map{"Categories": domain.MedicationCategories, "Statuses": domain.MedicationStatuses},
		},
		ClientHandler: &CRUDHandler[domain.Client, domain.ClientForm]{
			Name:     "clients",
			Base:     "/clientes",
			Template: "clients",
			Page:     func(w *services.Workspace) *services.ClientPage { return w.Clients },
			Extra:    fiber.Map{"Statuses": domain.ClientStatuses},
		},
		SaleHandler:  &SaleHandler{},
		QueryHandler: &QueryHandler{},
	}
}

// Mount registers the session middleware and every page route.
func (d *Deps) Mount(app fiber.Router) {
	app.Use(Session(d.Workspaces))

	app.Get("/", d.HomeHandler.Home)

	mountCRUD(app, d.MedicationHandler)
	mountCRUD(app, d.ClientHandler)

	app.Get("/ventas", d.SaleHandler.List)
	app.Post("/ventas/:id/eliminar", d.SaleHandler.Delete)

	app.Get("/consultas-ia", d.QueryHandler.Page)
	app.Post("/consultas-ia", d.QueryHandler.Submit)
	app.Post("/consultas-ia/nueva", d.QueryHandler.NewQuery)
	app.Post("/consultas-ia/historial/:idx/eliminar", d.QueryHandler.DeleteEntry)
}

func mountCRUD[T services.Keyed, F any](app fiber.Router, h *CRUDHandler[T, F]) {
	app.Get(h.Base, h.List)
	app.Get(h.Base+"/nuevo", h.NewForm)
	app.Get(h.Base+"/cancelar", h.Cancel)
	app.Post(h.Base, h.Create)
	app.Get(h.Base+"/:id/editar", h.EditForm)
	app.Post(h.Base+"/:id", h.Update)
	app.Post(h.Base+"/:id/eliminar", h.Delete)
}
