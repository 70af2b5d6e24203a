package decoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"requestScope/internal/model"
)

// base64 of "user42-1700000000000"
const loginToken = "dXNlcjQyLTE3MDAwMDAwMDAwMDA="

func TestDecodeWelcomeLogin(t *testing.T) {
	d := newTestDecoder(t)

	msg, err := d.Decode(WelcomePreamble+loginToken, nil)
	require.NoError(t, err)

	login, ok := msg.(*model.Login)
	require.True(t, ok, "decoded type %T", msg)
	assert.Equal(t, &model.Login{UserID: "user42", CreationTime: "11/14/2023, 10:13:20 PM"}, login)
	assert.Equal(t, model.OpLogin, login.OperationType())
}

func TestDecodeWelcomeTrailingWhitespace(t *testing.T) {
	d := newTestDecoder(t)

	login, err := d.DecodeWelcome(WelcomePreamble + loginToken + "\n  ")
	require.NoError(t, err)
	assert.Equal(t, "user42", login.UserID)
}

func TestDecodeWelcomeNonBreakingSpace(t *testing.T) {
	d := newTestDecoder(t)

	msg, err := d.Decode(WelcomePreamble+loginToken+"\u00a0", nil)
	require.NoError(t, err)
	require.NotNil(t, msg)
	assert.Equal(t, "user42", msg.(*model.Login).UserID)

	got := NormalizeURLParam(WelcomePreamble + "dXNl cjQy LTE3MDAwMDAwMDAwMDA=\u00a0")
	assert.Equal(t, WelcomePreamble+"dXNl+cjQy+LTE3MDAwMDAwMDAwMDA=", got)
}

func TestDecodeWelcomeInvalidCreationTime(t *testing.T) {
	d := newTestDecoder(t)

	cases := map[string]string{
		"not a number": WelcomePreamble + "dXNlci1hYmM=",                         // "user-abc"
		"empty time":   WelcomePreamble + "dXNlci0=",                             // "user-"
		"overflow":     WelcomePreamble + "dXNlci05OTk5OTk5OTk5OTk5OTk5OTk5OQ==", // "user-99999999999999999999"
	}
	for name, message := range cases {
		msg, err := d.Decode(message, nil)
		require.NoError(t, err, name)
		assert.Equal(t, &model.Login{UserID: "user", CreationTime: InvalidDate}, msg, name)
	}
}

func TestDecodeWelcomeSoftFailures(t *testing.T) {
	d := newTestDecoder(t)

	cases := map[string]string{
		"no dash":        WelcomePreamble + "bm9kYXNo",
		"no token":       "Welcome to C3!!!",
		"leading spaces": "   Welcome to C3 ???",
	}
	for name, message := range cases {
		msg, err := d.Decode(message, nil)
		assert.NoError(t, err, name)
		assert.Nil(t, msg, name)

		_, err = d.DecodeWelcome(message)
		var parseErr *WelcomeParseError
		assert.ErrorAs(t, err, &parseErr, name)
	}
}

func TestIsWelcome(t *testing.T) {
	assert.True(t, IsWelcome(WelcomePreamble))
	assert.True(t, IsWelcome("\n Welcome to C3"))
	assert.False(t, IsWelcome("welcome to c3"))
	assert.False(t, IsWelcome("AAAA"))
}

func TestNormalizeURLParam(t *testing.T) {
	assert.Equal(t, "", NormalizeURLParam(""))
	assert.Equal(t, "ab+cd/ef==", NormalizeURLParam("ab cd/ef=="))

	mangled := "Welcome to C3: Click to sign ... gas fees. dXNl cjQy LTE3MDAwMDAwMDAwMDA="
	got := NormalizeURLParam(mangled)
	assert.Equal(t, WelcomePreamble+"dXNl+cjQy+LTE3MDAwMDAwMDAwMDA=", got)
}

func TestDecodeBase64Text(t *testing.T) {
	out, err := decodeBase64Text("aGVs\nbG8=")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out))

	out, err = decodeBase64Text("aGVsbG8")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out))

	_, err = decodeBase64Text("a")
	assert.Error(t, err)
}

func TestDecodeBase64Lenient(t *testing.T) {
	assert.Equal(t, "hello", string(decodeBase64Lenient("aGVsbG8=trailing")))
	assert.Equal(t, "hello", string(decodeBase64Lenient("aGVsbG8Ab")[:5]))
	assert.Nil(t, decodeBase64Lenient("!!!!"))
}

func TestUnwrapTransportShortPayload(t *testing.T) {
	payload, err := unwrapTransport("AAAA")
	require.NoError(t, err)
	assert.Empty(t, payload)
}
