package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Shrest4647/ioe-student-utils-sub001/core/letter"
	"github.com/Shrest4647/ioe-student-utils-sub001/core/user"
)

type letterApi struct {
	svc      letter.ServiceInterface
	usrSvc   user.ServiceInterface
	validate *validator.Validate
}

func registerLetterAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	svc letter.ServiceInterface,
	usrSvc user.ServiceInterface,
	validate *validator.Validate,
) {
	api := letterApi{
		svc:      svc,
		usrSvc:   usrSvc,
		validate: validate,
	}

	// templates are readable by any authed user; managed by staff
	tg := g.Group("/letters/templates", jwt)
	tg.GET("", api.queryTemplates)
	tg.POST("", api.createTemplate, staffMiddleware())
	tg.GET("/:id", api.retrieveTemplate)
	tg.PUT("/:id", api.updateTemplate, staffMiddleware())
	tg.DELETE("/:id", api.destroyTemplate, staffMiddleware())
	tg.POST("/:id/preview", api.previewTemplate)

	lg := g.Group("/letters", jwt)
	lg.POST("", api.createLetter)
	lg.GET("", api.queryLetters)
	lg.GET("/:id", api.retrieveLetter)
	lg.DELETE("/:id", api.destroyLetter)
	lg.POST("/:id/send", api.sendLetter)
}

// Template handlers

func (api *letterApi) createTemplate(ctx echo.Context) error {
	var data letter.NewTemplate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTemplate")
	}
	if err := data.Validate(api.validate, api.svc); err != nil {
		return err
	}

	tmpl, err := api.svc.CreateTemplate(data)
	if err != nil {
		return errors.Wrap(err, "creating template")
	}
	return ctx.JSON(http.StatusCreated, tmpl)
}

func (api *letterApi) queryTemplates(ctx echo.Context) error {
	filter := new(letter.TemplateQueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []letter.Template{})
	}
	filter.Clean()
	ordering := new(Ordering)
	ordering.Bind(ctx)

	tmpls, err := api.svc.QueryTemplates(filter, ordering.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying templates")
	}
	if tmpls == nil {
		tmpls = []letter.Template{}
	}
	return ctx.JSON(http.StatusOK, tmpls)
}

func (api *letterApi) retrieveTemplate(ctx echo.Context) error {
	tmpl, err := api.svc.GetTemplateByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == letter.ErrTemplateNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding template by ID")
	}
	return ctx.JSON(http.StatusOK, tmpl)
}

func (api *letterApi) updateTemplate(ctx echo.Context) error {
	tmpl, err := api.svc.GetTemplateByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == letter.ErrTemplateNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding template by ID")
	}

	var data letter.UpdateTemplate
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTemplate")
	}
	if err := data.Validate(api.validate, tmpl, api.svc); err != nil {
		return err
	}

	tmpl, err = api.svc.UpdateTemplate(tmpl.ID, data)
	if err != nil {
		return errors.Wrap(err, "updating template")
	}
	return ctx.JSON(http.StatusOK, tmpl)
}

func (api *letterApi) destroyTemplate(ctx echo.Context) error {
	if _, err := api.svc.GetTemplateByID(ctx.Param("id")); err != nil {
		if errors.Cause(err) == letter.ErrTemplateNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "finding template by ID")
	}
	if err := api.svc.DeleteTemplates(ctx.Param("id")); err != nil {
		return errors.Wrap(err, "deleting template")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *letterApi) previewTemplate(ctx echo.Context) error {
	var data letter.PreviewRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to PreviewRequest")
	}

	ctxUsr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	preview, err := api.svc.PreviewTemplate(ctx.Param("id"), data.Values, ctxUsr.LetterInfo())
	if err != nil {
		if errors.Cause(err) == letter.ErrTemplateNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "previewing template")
	}
	return ctx.JSON(http.StatusOK, preview)
}

// Letter handlers

func (api *letterApi) createLetter(ctx echo.Context) error {
	var data letter.NewLetter
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewLetter")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	ctxUsr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}

	ltr, err := api.svc.CreateLetter(ctxUsr.ID, ctxUsr.LetterInfo(), data)
	if err != nil {
		if errors.Cause(err) == letter.ErrTemplateNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "creating letter")
	}
	return ctx.JSON(http.StatusCreated, ltr)
}

func (api *letterApi) queryLetters(ctx echo.Context) error {
	filter := new(letter.LetterQueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return ctx.JSON(http.StatusOK, []letter.Letter{})
	}
	ordering := new(Ordering)
	ordering.Bind(ctx)

	// non-admins only see their own letters
	ctxUsr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return errors.Wrap(err, "getting context user")
	}
	if !ctxUsr.IsAdmin() {
		filter.AuthorID = ctxUsr.ID
	}

	ltrs, err := api.svc.QueryLetters(filter, ordering.Orderings...)
	if err != nil {
		return errors.Wrap(err, "querying letters")
	}
	if ltrs == nil {
		ltrs = []letter.Letter{}
	}
	return ctx.JSON(http.StatusOK, ltrs)
}

func (api *letterApi) retrieveLetter(ctx echo.Context) error {
	ltr, err := api.getOwnLetter(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ltr)
}

func (api *letterApi) destroyLetter(ctx echo.Context) error {
	ltr, err := api.getOwnLetter(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.DeleteLetters(ltr.ID); err != nil {
		return errors.Wrap(err, "deleting letter")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *letterApi) sendLetter(ctx echo.Context) error {
	ltr, err := api.getOwnLetter(ctx)
	if err != nil {
		return err
	}

	ltr, err = api.svc.SendLetter(ltr.ID)
	if err != nil {
		return errors.Wrap(err, "sending letter")
	}
	return ctx.JSON(http.StatusOK, ltr)
}

// getOwnLetter fetches the letter and ensures the caller owns it or is an admin.
func (api *letterApi) getOwnLetter(ctx echo.Context) (letter.Letter, error) {
	ltr, err := api.svc.GetLetterByID(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == letter.ErrLetterNotFound {
			return letter.Letter{}, errHttpNotFound
		}
		return letter.Letter{}, errors.Wrap(err, "finding letter by ID")
	}

	ctxUsr, err := getContextUser(ctx, api.usrSvc)
	if err != nil {
		return letter.Letter{}, errors.Wrap(err, "getting context user")
	}
	if ltr.AuthorID != ctxUsr.ID && !ctxUsr.IsAdmin() {
		return letter.Letter{}, errHttpNotFound
	}
	return ltr, nil
}
