package selection

import (
	"fmt"

	"pickmany/internal/domain"
)

// MinSelected rejects submissions with fewer than n checked entries
func MinSelected[T any](n int) Validator[T] {
	return func(selected []domain.SelectedOption[T]) (domain.Validation, error) {
		if len(selected) < n {
			return domain.Invalid(fmt.Sprintf("Select at least %d %s", n, plural(n))), nil
		}
		return domain.Valid(), nil
	}
}

// MaxSelected rejects submissions with more than n checked entries
func MaxSelected[T any](n int) Validator[T] {
	return func(selected []domain.SelectedOption[T]) (domain.Validation, error) {
		if len(selected) > n {
			return domain.Invalid(fmt.Sprintf("Select at most %d %s", n, plural(n))), nil
		}
		return domain.Valid(), nil
	}
}

// Chain runs validators in order and returns the first rejection or error
func Chain[T any](validators ...Validator[T]) Validator[T] {
	return func(selected []domain.SelectedOption[T]) (domain.Validation, error) {
		for _, v := range validators {
			if v == nil {
				continue
			}
			res, err := v(selected)
			if err != nil || !res.IsValid() {
				return res, err
			}
		}
		return domain.Valid(), nil
	}
}

func plural(n int) string {
	if n == 1 {
		return "option"
	}
	return "options"
}
