package recognize

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"digit-identifier/api/internal/util"
)

// MaxDigits bounds the length of a recognized digit sequence.
const MaxDigits = 20

var reDigits = regexp.MustCompile(fmt.Sprintf(`[0-9]{1,%d}`, MaxDigits))

// ParseReply turns the model's free-text reply into a Result. It never fails:
// anything that is neither the sentinel nor contains a digit run becomes
// a "no digit" result. RawResponse always carries the reply unmodified.
func ParseReply(raw string) Result {
	txt := strings.TrimSpace(raw)
	if strings.EqualFold(util.StripCodeFences(txt), NoDigit) {
		return noDigitResult(raw)
	}
	if d := reDigits.FindString(txt); d != "" {
		return digitsResult(d, raw)
	}
	return noDigitResult(raw)
}

// Recognize classifies one image with eng and parses the reply.
// Errors from the engine are returned as is; parsing never adds one.
func Recognize(ctx context.Context, eng Engine, img []byte, mime string) (Result, error) {
	raw, err := eng.Classify(ctx, img, mime)
	if err != nil {
		return Result{}, err
	}
	return ParseReply(raw), nil
}
