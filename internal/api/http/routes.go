package httpapi

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"

	"github.com/keante032/SB-Capstone1/internal/auth"
	"github.com/keante032/SB-Capstone1/internal/common"
	"github.com/keante032/SB-Capstone1/internal/favorites"
	"github.com/keante032/SB-Capstone1/internal/weather"
)

const searchPrompt = "Search with a latitude,longitude pair or a city name or an address."

// Deps are the collaborators the handlers need.
type Deps struct {
	Resolver    *weather.Resolver
	Presenter   *weather.Presenter
	Locations   weather.LocationStore
	Favorites   *favorites.Ledger
	Credentials *auth.CredentialStore
	Sessions    *session.Store
}

type handler struct {
	Deps
}

// RegisterRoutes wires the HTTP handlers into the Fiber app.
func RegisterRoutes(app *fiber.App, deps Deps) {
	h := handler{Deps: deps}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	v1 := app.Group("/api/v1", identityMiddleware(deps.Sessions, deps.Credentials))

	v1.Get("/", h.home)
	v1.Get("/search", h.search)
	v1.Get("/locations/:id", h.location)
	v1.Post("/locations/:id/favorite", h.favorite)
	v1.Post("/register", h.register)
	v1.Post("/login", h.login)
	v1.Post("/logout", h.logout)
	v1.Get("/users/me", h.me)
}

func locationHref(id int64) string {
	return fmt.Sprintf("/api/v1/locations/%d", id)
}

func (h handler) home(c *fiber.Ctx) error {
	body := fiber.Map{"prompt": searchPrompt}

	who := identity(c)
	if who.Authenticated() {
		favs, err := h.Favorites.List(c.UserContext(), who)
		if err != nil {
			return err
		}
		body["user"] = who
		body["favorites"] = favs
	}
	return c.JSON(body)
}

func (h handler) search(c *fiber.Ctx) error {
	var form searchForm
	if err := c.QueryParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed query string")
	}

	q, fieldErrs := form.query()
	if len(fieldErrs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  "Please correct the highlighted fields.",
			"fields": fieldErrs,
			"form":   form.echo(),
		})
	}

	loc, err := h.Resolver.Resolve(c.UserContext(), q)
	if err != nil {
		return respondError(c, err, fiber.Map{"form": form.echo()})
	}

	return c.JSON(fiber.Map{
		"location": loc,
		"label":    loc.DisplayLabel(),
		"href":     locationHref(loc.ID),
	})
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, common.ErrNotFound
	}
	return id, nil
}

func (h handler) location(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}
	ctx := c.UserContext()

	loc, err := h.Locations.Location(ctx, id)
	if err != nil {
		return err
	}

	fav, err := h.Favorites.IsFavorite(ctx, identity(c), loc.ID)
	if err != nil {
		return err
	}

	body := fiber.Map{
		"location":    loc,
		"label":       loc.DisplayLabel(),
		"is_favorite": fav,
		"forecast":    nil,
	}

	view, err := h.Presenter.ForecastFor(ctx, loc)
	switch {
	case err == nil:
		body["provider"] = view.Provider
		body["forecast"] = view.Days
	case errors.Is(err, common.ErrProviderUnavailable):
		body["message"] = msgProviderDown
	default:
		return err
	}
	return c.JSON(body)
}

func (h handler) favorite(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	created, err := h.Favorites.Add(c.UserContext(), identity(c), id)
	if err != nil {
		return err
	}

	status := fiber.StatusOK
	if created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{
		"created":     created,
		"location_id": id,
		"href":        locationHref(id),
	})
}

func (h handler) register(c *fiber.Ctx) error {
	var form credentialsForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed body")
	}

	if fieldErrs := form.validateRegister(); len(fieldErrs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  "Please correct the highlighted fields.",
			"fields": fieldErrs,
			"form":   form.echo(),
		})
	}

	u, err := h.Credentials.Register(c.UserContext(), form.Email, form.Password)
	if err != nil {
		return respondError(c, err, fiber.Map{"form": form.echo()})
	}
	if err := logIn(c, h.Sessions, u); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"user": auth.IdentityOf(u)})
}

func (h handler) login(c *fiber.Ctx) error {
	var form credentialsForm
	if err := c.BodyParser(&form); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "malformed body")
	}

	if fieldErrs := form.validateLogin(); len(fieldErrs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error":  "Please correct the highlighted fields.",
			"fields": fieldErrs,
			"form":   form.echo(),
		})
	}

	u, err := h.Credentials.Authenticate(c.UserContext(), form.Email, form.Password)
	if err != nil {
		return respondError(c, err, fiber.Map{"form": form.echo()})
	}
	if err := logIn(c, h.Sessions, u); err != nil {
		return err
	}

	return c.JSON(fiber.Map{"user": auth.IdentityOf(u)})
}

func (h handler) logout(c *fiber.Ctx) error {
	if err := logOut(c, h.Sessions); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Logged out."})
}

func (h handler) me(c *fiber.Ctx) error {
	who := identity(c)
	favs, err := h.Favorites.List(c.UserContext(), who)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"user": who, "favorites": favs})
}
