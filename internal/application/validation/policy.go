package validation

// DropField removes every failure reported against the named field.
//
// Bulk ingestion resolves customers per record instead of rejecting the
// batch, so the customer reference rule is filtered out before failures are
// surfaced.
func DropField(errs []FieldError, field string) []FieldError {
	filtered := make([]FieldError, 0, len(errs))
	for _, e := range errs {
		if e.Field == field {
			continue
		}
		filtered = append(filtered, e)
	}
	return filtered
}
