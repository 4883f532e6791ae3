package dataset

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tennisframework/tennis-api/internal/models"
)

// ComponentRow is a checklist record as stored by a source, before normalization.
type ComponentRow struct {
	ID                string `json:"ID" yaml:"ID" validate:"required"`
	Category          string `json:"Category" yaml:"Category" validate:"required,checklist_category"`
	Component         string `json:"Component" yaml:"Component" validate:"required"`
	Accessibility     string `json:"Accessibility" yaml:"Accessibility" validate:"required"`
	RealTimeAvailable string `json:"Real_Time_Available" yaml:"Real_Time_Available" validate:"required,oneof=Yes No"`
	DataSource        string `json:"Data_Source" yaml:"Data_Source"`
	EvidenceBased     string `json:"Evidence_Based" yaml:"Evidence_Based" validate:"required,oneof=Yes No"`
}

// MatchRow is a match record as stored by a source, before normalization.
type MatchRow struct {
	Date       string `json:"Date" yaml:"Date" validate:"required,datetime=2006-01-02"`
	Tournament string `json:"Tournament" yaml:"Tournament" validate:"required"`
	Category   string `json:"Category" yaml:"Category" validate:"required,match_category"`
	Player1    string `json:"Player1" yaml:"Player1" validate:"required"`
	Player2    string `json:"Player2" yaml:"Player2" validate:"required,nefield=Player1"`
	Winner     string `json:"Winner" yaml:"Winner" validate:"required"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their stored names (Real_Time_Available, not RealTimeAvailable).
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	mustRegister(v, "checklist_category", func(fl validator.FieldLevel) bool {
		return models.IsChecklistCategory(fl.Field().String())
	})
	mustRegister(v, "match_category", func(fl validator.FieldLevel) bool {
		return models.IsMatchCategory(fl.Field().String())
	})
	v.RegisterStructValidation(matchRowStructLevel, MatchRow{})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// matchRowStructLevel enforces Winner ∈ {Player1, Player2}.
func matchRowStructLevel(sl validator.StructLevel) {
	row := sl.Current().Interface().(MatchRow)
	if row.Winner == "" {
		return
	}
	if row.Winner != row.Player1 && row.Winner != row.Player2 {
		sl.ReportError(row.Winner, "Winner", "Winner", "winner_in_match", "")
	}
}

// validateRow checks one row and renders field failures into a readable error.
func validateRow(row any, index int, key string) error {
	err := validate.Struct(row)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("record %d: %w", index, err)
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, describeFieldError(fe))
	}
	if key != "" {
		return fmt.Errorf("record %d (%s): %s", index, key, strings.Join(parts, "; "))
	}
	return fmt.Errorf("record %d: %s", index, strings.Join(parts, "; "))
}

func describeFieldError(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("missing required field %s", fe.Field())
	case "oneof":
		return fmt.Sprintf("field %s must be one of [%s], got %q", fe.Field(), fe.Param(), fe.Value())
	case "datetime":
		return fmt.Sprintf("field %s must be a date in %s format, got %q", fe.Field(), fe.Param(), fe.Value())
	case "checklist_category":
		return fmt.Sprintf("unknown checklist category %q", fe.Value())
	case "match_category":
		return fmt.Sprintf("unknown match category %q", fe.Value())
	case "nefield":
		return fmt.Sprintf("field %s must differ from %s", fe.Field(), fe.Param())
	case "winner_in_match":
		return fmt.Sprintf("winner %q is neither Player1 nor Player2", fe.Value())
	}
	return fmt.Sprintf("field %s failed %s", fe.Field(), fe.Tag())
}

func yesNo(s string) bool { return s == "Yes" }

func yesNoString(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
