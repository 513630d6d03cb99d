package letter

import (
	"fmt"
	"regexp"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/Shrest4647/ioe-student-utils-sub001/core"
)

var (
	varTypeTag  = "vartype"
	varTypeText = fmt.Sprintf("type must be one of: %s", strings.Join(VariableTypes, ", "))

	// must stay in sync with placeholderRegex so every declared name
	// can actually appear in a template body
	varNameTag   = "varname"
	varNameText  = "must contain only letters, digits and underscores"
	varNameRegex = regexp.MustCompile(`^\w+$`)

	uniqueVarNamesTag  = "unique_var_names"
	uniqueVarNamesText = "variable names must be unique"

	choiceOptionsTag  = "choice_options"
	choiceOptionsText = "choice variables must declare options"
)

// InitValidators registers the letter domain's custom validators.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = validate.RegisterValidation(varTypeTag, varTypeValidation)
	core.RegisterCustomTranslation(validate, translator, varTypeTag, varTypeText)

	_ = validate.RegisterValidation(varNameTag, varNameValidation)
	core.RegisterCustomTranslation(validate, translator, varNameTag, varNameText)

	validate.RegisterStructValidation(templateStructValidation, NewTemplate{})
	validate.RegisterStructValidation(templateStructValidation, UpdateTemplate{})
	core.RegisterCustomTranslation(validate, translator, uniqueVarNamesTag, uniqueVarNamesText)
	core.RegisterCustomTranslation(validate, translator, choiceOptionsTag, choiceOptionsText)
}

// varNameValidation checks that a variable name matches a template
// placeholder identifier.
func varNameValidation(fl validator.FieldLevel) bool {
	return varNameRegex.MatchString(fl.Field().String())
}

// varTypeValidation checks that a variable type is one of VariableTypes.
func varTypeValidation(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, typ := range VariableTypes {
		if val == typ {
			return true
		}
	}
	return false
}

// templateStructValidation does struct level validation on NewTemplate and
// UpdateTemplate variable lists.
func templateStructValidation(sl validator.StructLevel) {
	var vars []VariableSpec
	switch tmpl := sl.Current().Interface().(type) {
	case NewTemplate:
		vars = tmpl.Variables
	case UpdateTemplate:
		vars = tmpl.Variables
	}
	validateVariableSpecs(vars, sl)
}

func validateVariableSpecs(vars []VariableSpec, sl validator.StructLevel) {
	seen := make(map[string]bool, len(vars))
	for _, spec := range vars {
		if seen[spec.Name] {
			sl.ReportError(spec.Name, "variables", "Variables", uniqueVarNamesTag, "")
		}
		seen[spec.Name] = true

		isChoice := spec.Type == TypeSingleChoice || spec.Type == TypeMultiChoice
		if isChoice && len(spec.Options) == 0 {
			sl.ReportError(spec.Options, "variables", "Variables", choiceOptionsTag, "")
		}
	}
}
