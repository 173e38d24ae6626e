// Package validation checks caller input before it reaches the engines or
// the journal.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"heybabyy/internal/models"
)

// Bounds outside which a reading is almost certainly a typo
const (
	maxWeightKg      = 50
	maxLengthCm      = 150
	maxAgeMonths     = 240
	maxNameLength    = 100
	maxFreeTextBytes = 4000
	maxEntryIDLength = 36
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidateName checks a child's display name
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) > maxNameLength {
		return ValidationError{Field: "name", Message: fmt.Sprintf("name must be at most %d characters", maxNameLength)}
	}
	return nil
}

// ValidateSex parses a sex value
func ValidateSex(value string) (models.Sex, error) {
	sex := models.Sex(strings.ToLower(strings.TrimSpace(value)))
	if !sex.Valid() {
		return "", ValidationError{Field: "sex", Message: "sex must be boy or girl"}
	}
	return sex, nil
}

// ValidateMeasurementType parses a weight or length selector
func ValidateMeasurementType(value string) (models.MeasurementType, error) {
	kind := models.MeasurementType(strings.ToLower(strings.TrimSpace(value)))
	if !kind.Valid() {
		return "", ValidationError{Field: "type", Message: "type must be weight or length"}
	}
	return kind, nil
}

// ValidateDate parses a YYYY-MM-DD date for the named field
func ValidateDate(field, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ValidationError{Field: field, Message: field + " is required"}
	}
	t, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return time.Time{}, ValidationError{Field: field, Message: "date must be formatted YYYY-MM-DD"}
	}
	return t, nil
}

// ValidateBirthDate parses a birth date and rejects dates after now
func ValidateBirthDate(value string, now time.Time) (time.Time, error) {
	birth, err := ValidateDate("birth_date", value)
	if err != nil {
		return time.Time{}, err
	}
	if birth.After(now) {
		return time.Time{}, ValidationError{Field: "birth_date", Message: "birth date cannot be in the future"}
	}
	return birth, nil
}

// ValidateAgeMonths checks an age in months
func ValidateAgeMonths(age float64) error {
	if math.IsNaN(age) || age < 0 || age > maxAgeMonths {
		return ValidationError{Field: "age_months", Message: fmt.Sprintf("age must be between 0 and %d months", maxAgeMonths)}
	}
	return nil
}

// ValidateWeight checks a weight in kilograms
func ValidateWeight(kg float64) error {
	if math.IsNaN(kg) || kg <= 0 || kg > maxWeightKg {
		return ValidationError{Field: "weight_kg", Message: fmt.Sprintf("weight must be greater than 0 and at most %d kg", maxWeightKg)}
	}
	return nil
}

// ValidateLength checks a length in centimetres; nil is allowed
func ValidateLength(cm *float64) error {
	if cm == nil {
		return nil
	}
	if math.IsNaN(*cm) || *cm <= 0 || *cm > maxLengthCm {
		return ValidationError{Field: "length_cm", Message: fmt.Sprintf("length must be greater than 0 and at most %d cm", maxLengthCm)}
	}
	return nil
}

// ValidateFeeding checks a caller-supplied feeding
func ValidateFeeding(f models.FeedingEntry) error {
	if err := validateEntryID(f.ID); err != nil {
		return err
	}
	if !f.Type.Valid() {
		return ValidationError{Field: "type", Message: "type must be breast, formula, solid, water or other"}
	}
	if f.Quantity != nil && (math.IsNaN(*f.Quantity) || *f.Quantity < 0) {
		return ValidationError{Field: "quantity", Message: "quantity cannot be negative"}
	}
	if f.Duration != nil && (math.IsNaN(*f.Duration) || *f.Duration < 0) {
		return ValidationError{Field: "duration", Message: "duration cannot be negative"}
	}
	return nil
}

// ValidateDiaper checks a caller-supplied diaper change
func ValidateDiaper(d models.DiaperEntry) error {
	if err := validateEntryID(d.ID); err != nil {
		return err
	}
	if !d.Wet && !d.Stool {
		return ValidationError{Field: "diaper", Message: "diaper must be wet, stool or both"}
	}
	if d.StoolType != nil {
		if !d.Stool {
			return ValidationError{Field: "stool_type", Message: "stool type requires a stool diaper"}
		}
		if !d.StoolType.Valid() {
			return ValidationError{Field: "stool_type", Message: "stool type must be normal, loose, hard or mucus"}
		}
	}
	return nil
}

func validateEntryID(id string) error {
	if len(id) > maxEntryIDLength {
		return ValidationError{Field: "id", Message: fmt.Sprintf("id must be at most %d characters", maxEntryIDLength)}
	}
	return nil
}

// ValidateFreeText checks a free-text log before parsing
func ValidateFreeText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ValidationError{Field: "text", Message: "text is required"}
	}
	if len(text) > maxFreeTextBytes {
		return ValidationError{Field: "text", Message: fmt.Sprintf("text must be at most %d bytes", maxFreeTextBytes)}
	}
	return nil
}
