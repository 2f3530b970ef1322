// Package validation holds the pure gate predicates of the onboarding flow.
// Every function is total: it never panics and never returns an error for
// bad input, it reports a Result instead.
package validation

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Result is the outcome of a form validator. Fields maps each checked field
// to whether it passed; it drives per-field hints and never blocks re-entry
// of a screen.
type Result struct {
	Valid  bool
	Fields map[string]bool
}

// Failed lists the names of failing fields in sorted order.
func (r Result) Failed() []string {
	var failed []string
	for name, ok := range r.Fields {
		if !ok {
			failed = append(failed, name)
		}
	}
	sort.Strings(failed)
	return failed
}

// Reason is a short description of the first failing fields, for logs and
// host hints. It is empty for valid results.
func (r Result) Reason() string {
	failed := r.Failed()
	if len(failed) == 0 {
		return ""
	}
	return "incomplete: " + strings.Join(failed, ", ")
}

var validate = newValidate()

func newValidate() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// check runs the struct-tag rules of rules and maps every tagged field to
// its pass/fail state.
func check(rules any) Result {
	fields := make(map[string]bool)
	t := reflect.TypeOf(rules)
	for i := range t.NumField() {
		f := t.Field(i)
		if f.Tag.Get("validate") == "" {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		fields[name] = true
	}

	err := validate.Struct(rules)
	if err == nil {
		return Result{Valid: true, Fields: fields}
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		for name := range fields {
			fields[name] = false
		}
		return Result{Valid: false, Fields: fields}
	}
	for _, fe := range ve {
		fields[fe.Field()] = false
	}
	return Result{Valid: false, Fields: fields}
}

// merge combines results; the merged result is valid only if all are.
func merge(results ...Result) Result {
	out := Result{Valid: true, Fields: make(map[string]bool)}
	for _, r := range results {
		out.Valid = out.Valid && r.Valid
		for name, ok := range r.Fields {
			out.Fields[name] = ok
		}
	}
	return out
}
