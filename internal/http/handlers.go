package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/alert"
	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/domain"
	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/recommendation"
	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/repository"
	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/service"
)

type Advisor interface {
	EvaluateAll(ctx context.Context) (*service.Report, error)
	EvaluateGroup(name string) (service.GroupLoad, []string, error)
}

type GroupLister interface {
	ListGroups() ([]domain.SocketGroup, error)
}

type ReportLister interface {
	ListReports(prefix string) ([]string, error)
}

type Deps struct {
	Groups   GroupLister
	Advisor  Advisor
	History  *alert.History
	Gatherer prometheus.Gatherer
	Reports  ReportLister // nil when cloud services are off
}

type groupView struct {
	Name         string             `json:"name"`
	TotalCurrent float64            `json:"total_current"`
	Overloaded   bool               `json:"overloaded"`
	Appliances   []domain.Appliance `json:"appliances"`
}

func Register(app *fiber.App, d Deps) {
	app.Get("/health", func(c *fiber.Ctx) error { return c.SendString("ok") })

	g := app.Group("/")
	g.Get("groups", func(c *fiber.Ctx) error {
		groups, err := d.Groups.ListGroups()
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		out := make([]groupView, 0, len(groups))
		for _, grp := range groups {
			total := grp.TotalCurrent()
			out = append(out, groupView{
				Name:         grp.Name,
				TotalCurrent: total,
				Overloaded:   total > recommendation.GroupLimit,
				Appliances:   grp.Appliances,
			})
		}
		return c.JSON(out)
	})
	g.Get("groups/:name/recommendations", func(c *fiber.Ctx) error {
		load, messages, err := d.Advisor.EvaluateGroup(c.Params("name"))
		if errors.Is(err, repository.ErrUnknownGroup) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"group": load, "messages": messages})
	})
	g.Post("evaluate", func(c *fiber.Ctx) error {
		report, err := d.Advisor.EvaluateAll(c.UserContext())
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(report)
	})
	g.Get("alerts", func(c *fiber.Ctx) error {
		return c.JSON(d.History.Recent())
	})
	g.Get("reports", func(c *fiber.Ctx) error {
		if d.Reports == nil {
			return c.Status(503).JSON(fiber.Map{"error": "report archive disabled"})
		}
		keys, err := d.Reports.ListReports("reports/")
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		if keys == nil {
			keys = []string{}
		}
		return c.JSON(keys)
	})
	g.Get("metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
}
