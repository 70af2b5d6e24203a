package decoder

import (
	"regexp"
	"strconv"
	"strings"

	"requestScope/internal/model"
)

// WelcomePreamble is the text the exchange asks a wallet to sign at login, followed by
// the login token.
const WelcomePreamble = "Welcome to C3:\n" +
	"Click to sign and accept the C3 Terms of Service (https://c3.io/terms)\n" +
	"This request will not trigger a blockchain transaction or cost any gas fees.\n"

var (
	welcomePattern    = regexp.MustCompile(`^[\s\p{Zs}]*Welcome to C3`)
	finalTokenPattern = regexp.MustCompile(`([A-Za-z0-9+/=]+)[\s\p{Zs}]*$`)
	urlTokenPattern   = regexp.MustCompile(`([A-Za-z0-9+/= ]+)[\s\p{Zs}]*$`)
	leadingInteger    = regexp.MustCompile(`^[\s\p{Zs}]*[+-]?[0-9]+`)
)

// IsWelcome reports whether the message is a login welcome text.
func IsWelcome(message string) bool {
	return welcomePattern.MatchString(message)
}

// DecodeWelcome extracts the login token from a welcome text. The token is base64
// of "<userID>-<creation time in ms>[-...]".
func (d *Decoder) DecodeWelcome(message string) (*model.Login, error) {
	match := finalTokenPattern.FindStringSubmatch(message)
	if match == nil {
		return nil, &WelcomeParseError{Reason: "no trailing token"}
	}

	decoded := strings.ToValidUTF8(string(decodeBase64Lenient(match[1])), "\uFFFD")
	parts := strings.Split(decoded, "-")
	if len(parts) < 2 {
		return nil, &WelcomeParseError{Reason: "token has fewer than 2 parts"}
	}

	creationTime := InvalidDate
	if digits := strings.TrimSpace(leadingInteger.FindString(parts[1])); digits != "" {
		if ms, err := strconv.ParseInt(digits, 10, 64); err == nil {
			creationTime = formatMillis(ms, d.location)
		}
	}

	return &model.Login{
		UserID:       parts[0],
		CreationTime: creationTime,
	}, nil
}

// NormalizeURLParam restores a message taken from a URL query parameter, where
// '+' characters arrive as spaces. Welcome messages are rebuilt on the canonical
// preamble.
func NormalizeURLParam(param string) string {
	if param == "" {
		return ""
	}
	if IsWelcome(param) {
		return welcomeFromURLParam(param)
	}
	return strings.ReplaceAll(param, " ", "+")
}

func welcomeFromURLParam(param string) string {
	match := urlTokenPattern.FindStringSubmatch(param)
	if match == nil {
		return ""
	}
	token := strings.ReplaceAll(strings.TrimSpace(match[1]), " ", "+")
	return WelcomePreamble + token
}
