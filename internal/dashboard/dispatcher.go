package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"DeliveryDashboard/internal/catalog"
)

var (
	ErrAdminRequired  = errors.New("admin mode required")
	ErrActionDisabled = errors.New("action disabled")
	ErrUnknownCommand = errors.New("unknown command")
	ErrWrongPassword  = errors.New("wrong admin password")
)

// Catalog is the part of *catalog.Store the dispatcher drives.
type Catalog interface {
	Load(ctx context.Context) ([]catalog.Restaurant, error)
	List() []catalog.Restaurant
	FindByID(id int) (catalog.Restaurant, error)
	Create(ctx context.Context, name string, zones []catalog.ZoneInput) (catalog.Restaurant, error)
	Update(ctx context.Context, id int, name string, zones []catalog.ZoneInput) (catalog.Restaurant, error)
	Delete(ctx context.Context, id int) error
	Search(query string) []catalog.SearchResult
}

type Session interface {
	IsAdmin() bool
	Login(ctx context.Context, password string) (bool, error)
	Logout(ctx context.Context) error
}

// Renderer redraws after a command succeeded.
type Renderer interface {
	Render(ctx context.Context, cmd Command, res Result)
}

type RenderFunc func(ctx context.Context, cmd Command, res Result)

func (f RenderFunc) Render(ctx context.Context, cmd Command, res Result) { f(ctx, cmd, res) }

// Permissions switch individual admin actions on or off.
type Permissions struct {
	Create bool
	Edit   bool
	Delete bool
}

func AllowAll() Permissions {
	return Permissions{Create: true, Edit: true, Delete: true}
}

type Dispatcher struct {
	Catalog Catalog
	Session Session
	Perms   Permissions
	Render  Renderer
	Log     *zap.Logger
}

// Dispatch runs cmd to completion. Mutating commands need admin mode and the
// matching permission; the renderer only sees commands that succeeded.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command) (Result, error) {
	res, err := d.run(ctx, cmd)
	if err != nil {
		d.logf(cmd, err)
		return Result{}, err
	}
	if d.Render != nil {
		d.Render.Render(ctx, cmd, res)
	}
	return res, nil
}

func (d *Dispatcher) run(ctx context.Context, cmd Command) (Result, error) {
	switch c := cmd.(type) {
	case ListRestaurants:
		return Result{Restaurants: d.Catalog.List()}, nil

	case GetRestaurant:
		r, err := d.Catalog.FindByID(c.ID)
		if err != nil {
			return Result{}, err
		}
		return Result{Restaurant: &r}, nil

	case CreateRestaurant:
		if err := d.allow(d.Perms.Create, cmd); err != nil {
			return Result{}, err
		}
		r, err := d.Catalog.Create(ctx, c.Name, c.Zones)
		if err != nil {
			return Result{}, err
		}
		return Result{Restaurant: &r}, nil

	case UpdateRestaurant:
		if err := d.allow(d.Perms.Edit, cmd); err != nil {
			return Result{}, err
		}
		r, err := d.Catalog.Update(ctx, c.ID, c.Name, c.Zones)
		if err != nil {
			return Result{}, err
		}
		return Result{Restaurant: &r}, nil

	case DeleteRestaurant:
		if err := d.allow(d.Perms.Delete, cmd); err != nil {
			return Result{}, err
		}
		if err := d.Catalog.Delete(ctx, c.ID); err != nil {
			return Result{}, err
		}
		return Result{DeletedID: c.ID}, nil

	case SearchZones:
		out := &SearchOutcome{Query: c.Query, Results: []catalog.SearchResult{}}
		if strings.TrimSpace(c.Query) != "" {
			out.Active = true
			out.Results = d.Catalog.Search(c.Query)
		}
		return Result{Search: out}, nil

	case Refresh:
		rs, err := d.Catalog.Load(ctx)
		if err != nil {
			return Result{}, err
		}
		return Result{Restaurants: rs}, nil

	case Login:
		ok, err := d.Session.Login(ctx, c.Password)
		if err != nil {
			return Result{}, err
		}
		if !ok {
			return Result{}, ErrWrongPassword
		}
		return Result{Admin: true}, nil

	case Logout:
		if err := d.Session.Logout(ctx); err != nil {
			return Result{}, err
		}
		return Result{Admin: false}, nil

	case SessionStatus:
		return Result{Admin: d.Session.IsAdmin()}, nil

	default:
		return Result{}, fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
}

func (d *Dispatcher) allow(permitted bool, cmd Command) error {
	if !d.Session.IsAdmin() {
		return ErrAdminRequired
	}
	if !permitted {
		return fmt.Errorf("%w: %s", ErrActionDisabled, cmd.name())
	}
	return nil
}

func (d *Dispatcher) logf(cmd Command, err error) {
	if d.Log == nil {
		return
	}

	var verr *catalog.ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, catalog.ErrNotFound),
		errors.Is(err, ErrWrongPassword),
		errors.Is(err, ErrAdminRequired),
		errors.Is(err, ErrActionDisabled):
		d.Log.Debug("command rejected", zap.String("command", cmd.name()), zap.Error(err))
	default:
		d.Log.Error("command failed", zap.String("command", cmd.name()), zap.Error(err))
	}
}
