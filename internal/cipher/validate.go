package cipher

// Validate checks text against the admissible alphabet of scheme in the given
// direction. Empty text is always valid.
func Validate(scheme Scheme, dir Direction, text string) (ValidationResult, error) {
	codec, ok := GetCodec(scheme)
	if !ok {
		return ValidationResult{}, unknownScheme(scheme)
	}
	if _, err := ParseDirection(string(dir)); err != nil {
		return ValidationResult{}, err
	}
	if text == "" {
		return valid(), nil
	}
	return codec.Validate(text, dir), nil
}

// invalidInputMessages holds the user-facing rejection text per scheme and
// direction.
var invalidInputMessages = map[Scheme]map[Direction]string{
	SchemeA1Z26: {
		DirectionEncode: "Please enter letters only (A-Z)",
		DirectionDecode: "Please enter numbers separated by dots",
	},
	SchemeEmoji: {
		DirectionEncode: "Please enter letters only (A-Z)",
		DirectionDecode: "Please enter valid emojis",
	},
	SchemeBase64: {DirectionDecode: "Please enter valid Base64 characters"},
	SchemeMorse:  {DirectionDecode: "Please enter valid Morse code (dots, dashes, spaces)"},
	SchemeBinary: {DirectionDecode: "Please enter valid binary (0s and 1s)"},
	SchemeHex:    {DirectionDecode: "Please enter valid hexadecimal characters"},
}

// InvalidInputMessage returns the rejection message for scheme and direction.
func InvalidInputMessage(scheme Scheme, dir Direction) string {
	if msg, ok := invalidInputMessages[scheme][dir]; ok {
		return msg
	}
	return "Invalid input"
}
