// Package cipher provides classical text ciphers and encodings together with
// input validation, Caesar brute forcing, and a dispatcher.
//
// # Overview
//
// Fifteen schemes are registered at init time:
//   - Substitution: a1z26, emoji, leet, morse, atbash, caesar, vigenere
//   - Byte encodings: base64, binary, hex, url
//   - Structural: railfence, reverse
//   - Novelty: zalgo (random combining marks), invisible (zero-width steganography)
//
// Every scheme also exposes plain functions (EncodeMorse, DecodeVigenere,
// Atbash, ...) that take explicit arguments and never fail. Malformed input
// to a structural decoder yields a sentinel string such as InvalidBase64.
//
// # Quick Start
//
//	engine := cipher.NewEngine()
//	res, err := engine.Compute(cipher.Request{
//	    Scheme:    cipher.SchemeCaesar,
//	    Direction: cipher.DirectionDecode,
//	    Text:      "KHOOR",
//	})
//	// res.Output == "HELLO", res.BruteForce holds all 25 shifts
//
// Rejected input is data, not an error:
//
//	res, _ = engine.Compute(cipher.Request{
//	    Scheme:    cipher.SchemeBinary,
//	    Direction: cipher.DirectionDecode,
//	    Text:      "0100x1000",
//	})
//	// res.Valid == false, res.Suggestion == "01001000"
//
// # Auto-Detection
//
//	results, _ := cipher.NewDetector().Detect(ctx, ".... ..")
//	for _, r := range results {
//	    fmt.Printf("%s (%.0f%% confidence): %s\n",
//	        r.Scheme, r.Confidence*100, r.Reasoning)
//	}
//
// # Pipelines
//
//	p := &cipher.Pipeline{Steps: []cipher.Step{
//	    {Scheme: cipher.SchemeVigenere, Direction: cipher.DirectionEncode},
//	    {Scheme: cipher.SchemeBase64, Direction: cipher.DirectionEncode},
//	}}
//	encoded, _ := p.Execute(ctx, engine, "attack at dawn")
//	back, _ := p.Reverse()
//	plain, _ := back.Execute(ctx, engine, encoded)
//
// Pipelines containing lossy schemes (leet, railfence) cannot be reversed.
//
// # Thread Safety
//
// The codec registry is safe for concurrent use. Codecs are stateless. An
// Engine may be shared between goroutines; injected random sources are
// serialised.
package cipher
