package vgroutes

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// ValidationErrorType categorizes validation errors.
type ValidationErrorType string

const (
	// ErrorDuplicatePath indicates two siblings declare the same path.
	ErrorDuplicatePath ValidationErrorType = "DUPLICATE_PATH"

	// ErrorMissingView indicates a route with neither a view nor a redirect.
	ErrorMissingView ValidationErrorType = "MISSING_VIEW"

	// ErrorDuplicateName indicates two routes anywhere in the table share a name.
	ErrorDuplicateName ValidationErrorType = "DUPLICATE_NAME"

	// ErrorDuplicateParam indicates a composed path captures the same parameter twice.
	// Example: "/singer/:id" with a child ":id"
	ErrorDuplicateParam ValidationErrorType = "DUPLICATE_PARAM"

	// ErrorInvalidPath indicates a pattern that cannot be parsed, or a redirect
	// referencing a parameter the route does not capture.
	ErrorInvalidPath ValidationErrorType = "INVALID_PATH"
)

// ValidationError describes a single problem found in a route table.
type ValidationError struct {
	Type ValidationErrorType
	Path string // composed full path of the offending route
	Msg  string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Type, e.Msg, e.Path)
}

// Validate checks routes and returns nil or a *multierror.Error
// holding one *ValidationError per problem found.
func Validate(routes []RouteDescriptor) error {
	v := validator{names: make(map[string]string)}
	v.validate("/", routes)
	return v.errs.ErrorOrNil()
}

type validator struct {
	errs  *multierror.Error
	names map[string]string // route name -> full path that declared it
}

func (v *validator) add(t ValidationErrorType, p string, format string, args ...interface{}) {
	v.errs = multierror.Append(v.errs, &ValidationError{
		Type: t,
		Path: p,
		Msg:  fmt.Sprintf(format, args...),
	})
}

func (v *validator) validate(parent string, routes []RouteDescriptor) {

	siblings := make(map[string]bool, len(routes))

	for _, rd := range routes {

		full := joinPath(parent, rd.Path)

		if siblings[full] {
			v.add(ErrorDuplicatePath, full, "path %q declared more than once under %q", rd.Path, parent)
		}
		siblings[full] = true

		if rd.View == nil && rd.Redirect == "" {
			v.add(ErrorMissingView, full, "route has neither a view nor a redirect")
		}

		if rd.Name != "" {
			if prev, ok := v.names[rd.Name]; ok {
				v.add(ErrorDuplicateName, full, "name %q already used by %q", rd.Name, prev)
			} else {
				v.names[rd.Name] = full
			}
		}

		mp, err := parseMpath(full)
		if err != nil {
			v.add(ErrorInvalidPath, full, "%v", err)
			continue
		}

		params := mp.paramNames()
		seen := make(map[string]bool, len(params))
		for _, name := range params {
			if seen[name] {
				v.add(ErrorDuplicateParam, full, "parameter %q captured more than once", name)
			}
			seen[name] = true
		}

		if rd.Redirect != "" {
			// a redirect can only fill in parameters this route captured
			rmp, err := parseMpath(joinPath(parent, rd.Redirect))
			if err != nil {
				v.add(ErrorInvalidPath, full, "redirect: %v", err)
			} else {
				for _, name := range rmp.paramNames() {
					if !seen[name] {
						v.add(ErrorInvalidPath, full, "redirect uses parameter %q not captured by the route", name)
					}
				}
			}
		}

		v.validate(full, rd.Children)
	}
}
