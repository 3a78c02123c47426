package recognize

// PromptVersion identifies the instruction below. The reply shapes it asks
// for (digit run or NO_DIGIT) are what ParseReply understands, so bump the
// version whenever the wording changes.
const PromptVersion = "digits-v3"

// NoDigit is the sentinel the model answers with when the image holds no digit.
const NoDigit = "NO_DIGIT"

const Prompt = `You are a strict OCR classifier for handwritten digits 0-9.
Look at the image and read every handwritten digit in it, left to right.

Answer with EXACTLY ONE of:
- the digits as one contiguous sequence with no spaces, commas or other separators (for example: 5, 42, 2025);
- the literal token ` + NoDigit + ` if the image contains no digit at all.

Do not add any explanation, punctuation, quotes or formatting. Output nothing else.`
