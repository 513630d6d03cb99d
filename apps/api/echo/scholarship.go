package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Shrest4647/ioe-student-utils-sub001/core/scholarship"
)

type scholarshipApi struct {
	svc      scholarship.ServiceInterface
	validate *validator.Validate
}

func registerScholarshipAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc scholarship.ServiceInterface, validate *validator.Validate) {
	api := scholarshipApi{
		svc:      svc,
		validate: validate,
	}

	sg := g.Group("/scholarships", jwt)
	sg.GET("", api.query)
	sg.POST("", api.create, staffMiddleware())
	sg.POST("/duplicate-check", api.checkDuplicate, staffMiddleware())
	sg.GET("/:id", api.retrieve)
	sg.PUT("/:id", api.update, staffMiddleware())
	sg.DELETE("/:id", api.destroy, staffMiddleware())
}

func (api *scholarshipApi) create(ctx echo.Context) error {
	var data scholarship.NewScholarship
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewScholarship")
	}
	if err := data.Validate(api.validate, api.svc); err != nil {
		return err
	}

	sch, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating scholarship")
	}
	return ctx.JSON(http.StatusCreated, sch)
}

func (api *scholarshipApi) query(ctx echo.Context) error {
	filter := new(scholarship.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []scholarship.Scholarship{})
	}
	filter.Clean()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	schols, err := api.svc.Query(filter, ordering.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying scholarships")
	}
	if schols == nil {
		schols = []scholarship.Scholarship{}
	}
	return ctx.JSON(http.StatusOK, schols)
}

func (api *scholarshipApi) retrieve(ctx echo.Context) error {
	sch, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == scholarship.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding scholarship by ID")
	}
	return ctx.JSON(http.StatusOK, sch)
}

func (api *scholarshipApi) update(ctx echo.Context) error {
	sch, err := api.svc.GetByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == scholarship.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding scholarship by ID")
	}

	var data scholarship.UpdateScholarship
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateScholarship")
	}
	if err := data.Validate(api.validate, sch, api.svc); err != nil {
		return err
	}

	sch, err = api.svc.Update(sch.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating scholarship")
	}
	return ctx.JSON(http.StatusOK, sch)
}

func (api *scholarshipApi) destroy(ctx echo.Context) error {
	if _, err := api.svc.GetByID(ctx.Param("id")); err != nil {
		if errors.Cause(err) == scholarship.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding scholarship by ID")
	}
	if err := api.svc.Delete(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting scholarship")
	}
	return ctx.NoContent(http.StatusNoContent)
}

// checkDuplicate reports whether a scholarship about to be created already
// exists in the catalog under a similar name.
func (api *scholarshipApi) checkDuplicate(ctx echo.Context) error {
	var data scholarship.Candidate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Candidate")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	result, err := api.svc.CheckDuplicate(data)
	if err != nil {
		return errors.Wrap(err, "checking for duplicates")
	}
	return ctx.JSON(http.StatusOK, result)
}
