package recognize

// Result is the outcome returned to the caller of POST /predict.
// Digits is nil exactly when NoDigit is true.
type Result struct {
	Digits      *string `json:"digits"`
	NoDigit     bool    `json:"no_digit"`
	RawResponse string  `json:"raw_response"`
}

func digitsResult(d, raw string) Result {
	return Result{Digits: &d, RawResponse: raw}
}

func noDigitResult(raw string) Result {
	return Result{NoDigit: true, RawResponse: raw}
}
