// Package handlers implements the four capability-domain specialists the
// dispatcher delegates to. Each handler validates the extracted parameters,
// calls the matching freight component, and returns a structured result;
// free text never reaches this layer.
package handlers

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	contractx "github.com/tenyyprn/logistics-quote-agent/agent/contract"
	"github.com/tenyyprn/logistics-quote-agent/freight/money"
)

func stringParam(params map[string]any, key string) (string, error) {
	raw, ok := params[key]
	if !ok {
		return "", fmt.Errorf("%w: %s is required", contractx.ErrInvalidParameters, key)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s must be a string", contractx.ErrInvalidParameters, key)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: %s is empty", contractx.ErrInvalidParameters, key)
	}
	return s, nil
}

func optionalStringParam(params map[string]any, key string) string {
	raw, ok := params[key]
	if !ok {
		return ""
	}
	s, _ := raw.(string)
	return strings.TrimSpace(s)
}

// floatParam accepts the numeric shapes a JSON extraction step can produce:
// float64, integer kinds, or a numeric string.
func floatParam(params map[string]any, key string) (float64, error) {
	raw, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%w: %s is required", contractx.ErrInvalidParameters, key)
	}
	v, err := coerceFloat(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %v", contractx.ErrInvalidParameters, key, err)
	}
	return v, nil
}

func optionalFloatParam(params map[string]any, key string) (float64, bool, error) {
	raw, ok := params[key]
	if !ok {
		return 0, false, nil
	}
	v, err := coerceFloat(raw)
	if err != nil {
		return 0, false, fmt.Errorf("%w: %s %v", contractx.ErrInvalidParameters, key, err)
	}
	return v, true, nil
}

func optionalBoolParam(params map[string]any, key string) bool {
	raw, ok := params[key]
	if !ok {
		return false
	}
	switch v := raw.(type) {
	case bool:
		return v
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		return err == nil && b
	default:
		return false
	}
}

func optionalIntParam(params map[string]any, key string, fallback int) (int, error) {
	raw, ok := params[key]
	if !ok {
		return fallback, nil
	}
	v, err := coerceFloat(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %v", contractx.ErrInvalidParameters, key, err)
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("%w: %s must be an integer", contractx.ErrInvalidParameters, key)
	}
	return int(v), nil
}

// dollarsParam reads a dollar amount and converts it to cents once.
func dollarsParam(params map[string]any, key string) (money.Cents, error) {
	v, err := floatParam(params, key)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: %s must not be negative", contractx.ErrInvalidParameters, key)
	}
	return money.Cents(math.Round(v * 100)), nil
}

func coerceFloat(raw any) (float64, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, fmt.Errorf("is not numeric")
		}
		return f, nil
	default:
		return 0, fmt.Errorf("is not numeric")
	}
}

// stringMapParam reads a map of string fields, e.g. customer profile
// updates.
func stringMapParam(params map[string]any, key string) (map[string]string, error) {
	raw, ok := params[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s is required", contractx.ErrInvalidParameters, key)
	}
	switch v := raw.(type) {
	case map[string]string:
		return v, nil
	case map[string]any:
		out := make(map[string]string, len(v))
		for k, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s.%s must be a string", contractx.ErrInvalidParameters, key, k)
			}
			out[k] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %s must be an object of strings", contractx.ErrInvalidParameters, key)
	}
}

func cargoParams(params map[string]any) (weightKg, volumeCBM float64, err error) {
	weightKg, err = floatParam(params, "weight_kg")
	if err != nil {
		return 0, 0, err
	}
	volumeCBM, err = floatParam(params, "volume_cbm")
	if err != nil {
		return 0, 0, err
	}
	if weightKg <= 0 || volumeCBM < 0 {
		return 0, 0, fmt.Errorf("%w: cargo weight must be positive and volume non-negative", contractx.ErrInvalidParameters)
	}
	return weightKg, volumeCBM, nil
}
