package service

import (
	"encoding/json"
	"fmt"
	"math"

	"pixel-canvas-server/internal/domain"

	"github.com/go-playground/validator/v10"
)

var coordinateRule = fmt.Sprintf("gte=0,lt=%d", domain.GridSize)

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("rgbhex", func(fl validator.FieldLevel) bool {
		return domain.IsHexColor(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// parseCoordinate accepts only a JSON number with an integral value on the grid.
func parseCoordinate(v *validator.Validate, raw json.RawMessage) (int, error) {
	var value interface{}
	if len(raw) == 0 || json.Unmarshal(raw, &value) != nil {
		return 0, ErrInvalidCoordinates
	}

	f, ok := value.(float64)
	if !ok || f != math.Trunc(f) {
		return 0, ErrInvalidCoordinates
	}
	if err := v.Var(f, coordinateRule); err != nil {
		return 0, ErrInvalidCoordinates
	}

	return int(f), nil
}

func parseColor(v *validator.Validate, raw json.RawMessage) (string, error) {
	var value interface{}
	if len(raw) == 0 || json.Unmarshal(raw, &value) != nil {
		return "", ErrInvalidColor
	}

	s, ok := value.(string)
	if !ok {
		return "", ErrInvalidColor
	}
	if err := v.Var(s, "rgbhex"); err != nil {
		return "", ErrInvalidColor
	}

	return domain.NormalizeColor(s), nil
}
