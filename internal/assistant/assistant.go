// Package assistant answers short questions about the supported schemes with
// canned replies chosen by keyword.
package assistant

import (
	"strings"

	"github.com/RowanDark/cipherdeck/internal/cipher"
)

// Rule maps a set of keywords to a reply. A rule matches when the lower-cased
// message contains any of its keywords.
type Rule struct {
	Name     string
	Keywords []string
	Reply    string
}

func (r Rule) matches(message string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(message, kw) {
			return true
		}
	}
	return false
}

// Greeting is the opening line of a conversation.
const Greeting = "Hi! I'm Eren, your cipher assistant! 🔐 I can help you with all 15 encoding methods available on this platform. Ask me about A1Z26, Morse code, Caesar cipher, or any other cipher method!"

// rules are evaluated in order; the first match wins.
var rules = []Rule{
	{
		Name:     "a1z26",
		Keywords: []string{"a1z26", "number"},
		Reply:    "A1Z26 cipher converts letters to numbers! A=1, B=2, C=3... Z=26. It's perfect for beginners. Try encoding 'HELLO' - it becomes '8.5.12.12.15'! 🔢",
	},
	{
		Name:     "morse",
		Keywords: []string{"morse", "dot", "dash"},
		Reply:    "Morse code uses dots and dashes! Each letter has a unique pattern. For example: A = '.-', B = '-...', SOS = '... --- ...'. Great for emergency communication! 📡",
	},
	{
		Name:     "caesar",
		Keywords: []string{"caesar", "shift"},
		Reply:    "Caesar cipher shifts letters by a fixed amount! With shift 3: A→D, B→E, C→F. Julius Caesar used this! Try our brute force feature to crack any Caesar cipher automatically! ⚔\ufe0f",
	},
	{
		Name:     "emoji",
		Keywords: []string{"emoji"},
		Reply:    "Emoji cipher is fun! Each letter becomes an emoji: A=🍎, B=🐝, C=🥥. It's colorful and engaging for learning. Perfect for making secret messages look innocent! 😊",
	},
	{
		Name:     "base64",
		Keywords: []string{"base64"},
		Reply:    "Base64 encoding converts text to safe characters for data transmission. It uses A-Z, a-z, 0-9, +, /. 'Hello' becomes 'SGVsbG8='. Widely used in web development! 💻",
	},
	{
		Name:     "binary",
		Keywords: []string{"binary"},
		Reply:    "Binary uses only 0s and 1s! Each character becomes 8 bits. 'A' = '01000001'. It's how computers actually store text. Great for understanding digital systems! 🤖",
	},
	{
		Name:     "hex",
		Keywords: []string{"hex", "hexadecimal"},
		Reply:    "Hexadecimal uses 0-9 and A-F. Each character becomes 2 hex digits. 'A' = '41'. Programmers love it for debugging and memory addresses! 🔧",
	},
	{
		Name:     "atbash",
		Keywords: []string{"atbash"},
		Reply:    "Atbash is ancient! It reverses the alphabet: A=Z, B=Y, C=X. Used in Hebrew texts. It's symmetric - encoding and decoding are the same operation! 📜",
	},
	{
		Name:     "vigenere",
		Keywords: []string{"vigenere", "vigenère"},
		Reply:    "Vigenère cipher uses a keyword! Each letter shifts by the corresponding key letter. Much stronger than Caesar. With key 'KEY': H+K=R, E+E=I, etc. Unbreakable for centuries! 🗝\ufe0f",
	},
	{
		Name:     "railfence",
		Keywords: []string{"rail fence", "railfence"},
		Reply:    "Rail Fence writes text in a zigzag pattern! With 3 rails, 'HELLO' becomes 'H.L.O' on rails 1&3, 'E.L' on rail 2, reading as 'HLOEL'. Visual and fun! 🚂",
	},
	{
		Name:     "reverse",
		Keywords: []string{"reverse"},
		Reply:    "Reverse text has 3 modes: Full reverse ('HELLO'→'OLLEH'), reverse words ('HELLO WORLD'→'OLLEH DLROW'), or reverse word order ('HELLO WORLD'→'WORLD HELLO'). Simple but effective! ↩\ufe0f",
	},
	{
		Name:     "leet",
		Keywords: []string{"leet", "1337"},
		Reply:    "Leet speak replaces letters with numbers/symbols! A=4, E=3, L=1, O=0, S=5, T=7. 'HELLO' becomes 'H3110'. Popular in gaming culture! 🎮",
	},
	{
		Name:     "zalgo",
		Keywords: []string{"zalgo"},
		Reply:    "Zalgo text adds combining characters to create 'corrupted' text! Ḧ\u0334\u0330ë\u0334\u0301l\u0334\u0308l\u0334\u0308ö\u0334\u0301 \u0334\u0308Ẅ\u0334ö\u0334\u0301r\u0334\u0308l\u0334\u0308d\u0334\u0308! Adjust intensity for more chaos. Popular in internet memes! 👹",
	},
	{
		Name:     "invisible",
		Keywords: []string{"invisible", "steganography"},
		Reply:    "Invisible ink hides text using zero-width characters! The message is there but invisible. Perfect for steganography - hiding secrets in plain sight! 👁\ufe0f",
	},
	{
		Name:     "url",
		Keywords: []string{"url", "percent"},
		Reply:    "URL encoding makes text web-safe! Spaces become '%20', special characters get encoded. Essential for web development and data transmission! 🌐",
	},
	{
		Name:     "best",
		Keywords: []string{"best cipher", "strongest"},
		Reply:    "For learning: A1Z26 and Caesar are great! For security: Vigenère with long keys. For fun: Emoji and Zalgo. For steganography: Invisible ink. Each has its purpose! 🏆",
	},
	{
		Name:     "beginner",
		Keywords: []string{"beginner", "start"},
		Reply:    "Start with A1Z26 - it's simple and visual! Then try Caesar cipher with different shifts. Morse code is classic and useful. Emoji cipher makes it fun! 🌟",
	},
	{
		Name:     "history",
		Keywords: []string{"history", "ancient"},
		Reply:    "Ciphers are ancient! Caesar cipher (50 BC), Atbash (Hebrew Bible), Morse code (1830s). Modern ones: Base64 (1980s), URL encoding (1990s). Cryptography evolved with technology! 📚",
	},
	{
		Name:     "crack",
		Keywords: []string{"crack", "break", "decode"},
		Reply:    "To crack ciphers: Try frequency analysis, look for patterns, use brute force (like our Caesar tool), or analyze the context. Some ciphers are unbreakable without the key! 🔍",
	},
	{
		Name:     "help",
		Keywords: []string{"help", "how"},
		Reply:    "I can help with all 15 cipher methods! Ask about specific ciphers, their history, how they work, or which one to use. I'm here to make cryptography fun and easy! 💡",
	},
	{
		Name:     "thanks",
		Keywords: []string{"thank", "thanks"},
		Reply:    "You're welcome! I love helping with ciphers! Feel free to ask about any of the 15 methods or try encoding your name in different ciphers! 😊",
	},
}

var fallbacks = []string{
	"I'm specialized in cipher and encoding methods! Ask me about any of the 15 cipher methods available here: A1Z26, Emoji, Base64, Morse, Binary, Hex, Caesar, URL, Atbash, Vigenère, Rail Fence, Reverse, Leet, Zalgo, or Invisible Ink! 🔐",
	"I focus on cryptography and encoding! Which cipher method interests you? I can explain how any of our 15 methods work! 🔍",
	"Let's talk ciphers! I can help you understand any encoding method on this platform. What would you like to learn about? 📚",
	"I'm your cipher expert! Ask me about encryption, decryption, or any of the 15 amazing methods we have here! 🛡\ufe0f",
}

// Rules returns a copy of the ordered rule set.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	for i, r := range rules {
		r.Keywords = append([]string(nil), r.Keywords...)
		out[i] = r
	}
	return out
}

// Fallbacks returns the replies used when no rule matches.
func Fallbacks() []string {
	return append([]string(nil), fallbacks...)
}

// Respond returns the reply of the first matching rule, or the first
// fallback reply.
func Respond(message string) string {
	return New().Respond(message)
}

// Assistant picks a fallback reply with its random source when no rule
// matches.
type Assistant struct {
	rand cipher.RandSource
}

// Option configures an Assistant.
type Option func(*Assistant)

// WithRandSource rotates fallback replies using src.
func WithRandSource(src cipher.RandSource) Option {
	return func(a *Assistant) {
		a.rand = cipher.NewLockedRand(src)
	}
}

func New(opts ...Option) *Assistant {
	a := &Assistant{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Respond answers message.
func (a *Assistant) Respond(message string) string {
	reply, _ := a.Match(message)
	return reply
}

// Match returns the reply and the name of the rule that produced it. The name
// is empty for fallback replies.
func (a *Assistant) Match(message string) (reply, rule string) {
	lower := strings.ToLower(message)
	for _, r := range rules {
		if r.matches(lower) {
			return r.Reply, r.Name
		}
	}
	if a.rand == nil {
		return fallbacks[0], ""
	}
	return fallbacks[a.rand.IntN(len(fallbacks))], ""
}
