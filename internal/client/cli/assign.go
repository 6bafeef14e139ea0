package cli

import (
	"fmt"
	"strings"

	"github.com/iudanet/goawx/internal/models"
	"github.com/iudanet/goawx/internal/validation"
)

// applyAssignments применяет аргументы вида field=value через валидирующий setter.
// Текст значения разбирается по объявленному типу поля.
func applyAssignments(rec *models.Record, args []string) error {
	for _, arg := range args {
		name, text, ok := strings.Cut(arg, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return fmt.Errorf("invalid assignment %q, expected field=value", arg)
		}

		value := any(text)
		if field, known := rec.Schema().Field(name); known && !field.ReadOnly {
			parsed, err := validation.ParseValue(field.Kind, text)
			if err != nil {
				return fmt.Errorf("field %q: %w", name, err)
			}
			value = parsed
		}

		if err := rec.Set(name, value); err != nil {
			return err
		}
	}
	return nil
}
