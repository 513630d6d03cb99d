package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/Shrest4647/ioe-student-utils-sub001/core"
	"github.com/Shrest4647/ioe-student-utils-sub001/core/gpa"
)

type gpaApi struct {
	validate *validator.Validate
}

func registerGpaAPI(g *echo.Group, jwt echo.MiddlewareFunc, validate *validator.Validate) {
	api := gpaApi{validate: validate}

	gg := g.Group("/gpa", jwt)
	gg.GET("/scale", api.scale)
	gg.POST("/convert", api.convert)
}

type (
	ConvertRequest struct {
		Percentages []float64 `json:"percentages" validate:"required,min=1"`
	}

	ConvertResponse struct {
		// Average is the grade-point average across all percentages.
		Average float64     `json:"average"`
		Grades  []gpa.Grade `json:"grades"`
	}
)

func (api *gpaApi) scale(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, gpa.Scale())
}

func (api *gpaApi) convert(ctx echo.Context) error {
	var data ConvertRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ConvertRequest")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	grades := make([]gpa.Grade, 0, len(data.Percentages))
	for _, pct := range data.Percentages {
		grade, err := gpa.Convert(pct)
		if err != nil {
			return core.NewValidationError(err)
		}
		grades = append(grades, grade)
	}

	avg, err := gpa.Average(data.Percentages)
	if err != nil {
		return core.NewValidationError(err)
	}

	return ctx.JSON(http.StatusOK, ConvertResponse{
		Average: avg,
		Grades:  grades,
	})
}
