package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Shrest4647/ioe-student-utils-sub001/core/university"
)

type universityApi struct {
	svc      university.ServiceInterface
	validate *validator.Validate
}

func registerUniversityAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc university.ServiceInterface, validate *validator.Validate) {
	api := universityApi{
		svc:      svc,
		validate: validate,
	}

	ug := g.Group("/universities", jwt)
	ug.GET("", api.query)
	ug.POST("", api.create, staffMiddleware())
	ug.GET("/:id", api.retrieve)
	ug.PUT("/:id", api.update, staffMiddleware())
	ug.DELETE("/:id", api.destroy, adminMiddleware())
	ug.GET("/:id/ratings", api.queryRatings)
	ug.POST("/:id/ratings", api.rate)
}

func (api *universityApi) create(ctx echo.Context) error {
	var data university.NewUniversity
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewUniversity")
	}
	if err := data.Validate(api.validate, api.svc); err != nil {
		return err
	}

	uni, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating university")
	}
	return ctx.JSON(http.StatusCreated, uni)
}

func (api *universityApi) query(ctx echo.Context) error {
	filter := new(university.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []university.University{})
	}
	filter.Clean()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	unis, err := api.svc.Query(filter, ordering.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying universities")
	}
	if unis == nil {
		unis = []university.University{}
	}
	return ctx.JSON(http.StatusOK, unis)
}

func (api *universityApi) retrieve(ctx echo.Context) error {
	uni, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == university.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding university by ID")
	}
	return ctx.JSON(http.StatusOK, uni)
}

func (api *universityApi) update(ctx echo.Context) error {
	uni, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == university.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding university by ID")
	}

	var data university.UpdateUniversity
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateUniversity")
	}
	if err := data.Validate(api.validate, uni, api.svc); err != nil {
		return err
	}

	uni, err = api.svc.Update(uni.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating university")
	}
	return ctx.JSON(http.StatusOK, uni)
}

func (api *universityApi) destroy(ctx echo.Context) error {
	if _, err := api.svc.GetByID(ctx.Param("id")); err != nil {
		if errors.Cause(err) == university.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding university by ID")
	}
	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting university")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *universityApi) queryRatings(ctx echo.Context) error {
	ratings, err := api.svc.QueryRatings(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "querying ratings")
	}
	if ratings == nil {
		ratings = []university.Rating{}
	}
	return ctx.JSON(http.StatusOK, ratings)
}

func (api *universityApi) rate(ctx echo.Context) error {
	var data university.NewRating
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewRating")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	rating, err := api.svc.Rate(ctx.Param("id"), claims.Subject, data)
	if err != nil {
		if errors.Cause(err) == university.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "rating university")
	}
	return ctx.JSON(http.StatusCreated, rating)
}
