package letter

import (
	"regexp"
	"strings"
	"time"
)

// Variable types supported by letter templates.
const (
	TypeShortText    = "short-text"
	TypeLongText     = "long-text"
	TypeDate         = "date"
	TypeSingleChoice = "single-choice"
	TypeMultiChoice  = "multi-choice"
)

var (
	VariableTypes = []string{TypeShortText, TypeLongText, TypeDate, TypeSingleChoice, TypeMultiChoice}

	NowFunc = time.Now // mockable

	placeholderRegex = regexp.MustCompile(`\{\{(\w+)\}\}`)
)

// defaultUserName stands in when the caller supplies no user; it renders as a
// visible editor hint rather than an empty hole in the letter.
const defaultUserName = "[Student Name]"

type (
	// VariableSpec describes one template variable as declared by the
	// template's author.
	VariableSpec struct {
		Name         string   `json:"name" validate:"required,varname"`
		Label        string   `json:"label" validate:"required"`
		Type         string   `json:"type" validate:"required,vartype"`
		Required     bool     `json:"required"`
		DefaultValue string   `json:"default_value,omitempty"`
		Description  string   `json:"description,omitempty"`
		Options      []string `json:"options,omitempty"`
	}

	// UserInfo is the strongly-typed user record reserved in every
	// substitution context; {{user_name}} and {{user_email}} resolve into it.
	UserInfo struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}

	// Context holds the concrete values for one substitution call: a flat
	// variable name -> value mapping plus the reserved user record.
	// Keys not referenced by the template are inert.
	Context struct {
		Values map[string]string
		User   UserInfo
	}
)

// userValue resolves the remainder of a "user_"-prefixed identifier into the
// user record. Only the literal "user" prefix is special-cased; anything it
// cannot resolve falls back to a flat context lookup.
func (ctx Context) userValue(key string) (string, bool) {
	usr := ctx.User
	if usr.Name == "" {
		usr.Name = defaultUserName
	}
	switch key {
	case "name":
		return usr.Name, true
	case "email":
		return usr.Email, true
	}
	return "", false
}

// Substitute replaces every {{identifier}} placeholder in tmpl with its
// resolved value. Resolution order: the user record (for "user_"-prefixed
// identifiers), then the flat context including the injected current_date and
// current_year built-ins. Unresolved placeholders are left verbatim;
// Substitute never fails, partial output is always usable.
func Substitute(tmpl string, ctx Context) string {
	now := NowFunc()
	builtins := map[string]string{
		"current_date": now.Format("January 2, 2006"),
		"current_year": now.Format("2006"),
	}

	return placeholderRegex.ReplaceAllStringFunc(tmpl, func(m string) string {
		name := m[2 : len(m)-2]

		if rest, ok := strings.CutPrefix(name, "user_"); ok {
			if val, ok := ctx.userValue(rest); ok {
				return val
			}
		}
		if val, ok := builtins[name]; ok {
			return val
		}
		if val, ok := ctx.Values[name]; ok {
			return val
		}
		return m // unresolved: keep the placeholder as-is
	})
}

// ExtractVariableNames returns every distinct identifier appearing inside
// {{...}} in tmpl. Duplicates collapse; order follows first appearance.
func ExtractVariableNames(tmpl string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, m := range placeholderRegex.FindAllStringSubmatch(tmpl, -1) {
		if name := m[1]; !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}
	return names
}

// ValidateRequired reports the labels of required variables that have no
// usable value in ctx, in spec order. A spec with a non-empty DefaultValue is
// considered satisfied since the default applies at substitution time.
// Missing fields are data, not an error: the editor shows them to the user.
func ValidateRequired(vars []VariableSpec, ctx Context) []string {
	var missing []string
	for _, spec := range vars {
		if !spec.Required {
			continue
		}
		if strings.TrimSpace(ctx.Values[spec.Name]) != "" {
			continue
		}
		if strings.TrimSpace(spec.DefaultValue) != "" {
			continue
		}
		missing = append(missing, spec.Label)
	}
	return missing
}

// BuildDefaultContext pre-fills a context from the specs' default values,
// resolving each default (which may itself reference {{user_name}}-style
// built-ins) against a user-only context.
func BuildDefaultContext(vars []VariableSpec, usr UserInfo) Context {
	ctx := Context{Values: make(map[string]string, len(vars)), User: usr}
	for _, spec := range vars {
		if spec.DefaultValue == "" {
			continue
		}
		ctx.Values[spec.Name] = Substitute(spec.DefaultValue, Context{User: usr})
	}
	return ctx
}
