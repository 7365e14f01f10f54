package rawmail

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// crlf converts a readable fixture into wire line endings.
func crlf(s string) []byte {
	return []byte(strings.ReplaceAll(s, "\n", "\r\n"))
}

func TestParseFlat(t *testing.T) {
	raw := crlf(`From: Auth <noreply@example.com>
To: "Test User" <Test.User@Example.com>
Subject: Your magic link
Content-Type: text/plain; charset=utf-8

Sign in: https://proj.supabase.co/auth/v1/verify?token=abc&type=magiclink
`)

	email, err := Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, []string{"test.user@example.com"}, email.Recipients)
	assert.Equal(t, "Your magic link", email.Subject)
	assert.Equal(t, ContentTypePlain, email.BodyType)
	assert.Contains(t, email.Body, "https://proj.supabase.co/auth/v1/verify?token=abc&type=magiclink")
}

func TestParseFlatWithoutContentType(t *testing.T) {
	raw := crlf(`To: someone@example.com
Subject: bare

hello https://example.com/login?token=1
`)

	email, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, ContentTypePlain, email.BodyType)
	assert.Contains(t, email.Body, "hello https://example.com/login?token=1")
}

func TestParseRecipients(t *testing.T) {
	t.Run("display names and multiple addresses", func(t *testing.T) {
		raw := crlf(`To: Alice <ALICE@example.com>, "Bob B." <bob@sub.example.org>
Cc: carol@example.net
Subject: hi

body
`)
		email, err := Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, []string{"alice@example.com", "bob@sub.example.org", "carol@example.net"}, email.Recipients)
	})

	t.Run("cc only", func(t *testing.T) {
		raw := crlf(`Cc: Tester <tester@example.com>
Subject: hi

body
`)
		email, err := Parse(raw)
		require.NoError(t, err)
		assert.True(t, email.HasRecipient("tester@example.com"))
	})

	t.Run("no recipient headers", func(t *testing.T) {
		raw := crlf(`Subject: hi

body
`)
		email, err := Parse(raw)
		require.NoError(t, err)
		assert.Empty(t, email.Recipients)
		assert.False(t, email.HasRecipient("tester@example.com"))
	})

	t.Run("encoded display name", func(t *testing.T) {
		raw := crlf(`To: =?UTF-8?Q?J=C3=BCrgen?= <juergen@example.de>
Subject: hi

body
`)
		email, err := Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, []string{"juergen@example.de"}, email.Recipients)
	})

	t.Run("internationalized address", func(t *testing.T) {
		raw := crlf(`To: Jürgen <JÜRGEN@exämple.de>
Subject: hi

body
`)
		email, err := Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, []string{"jürgen@exämple.de"}, email.Recipients)
		assert.True(t, email.HasRecipient("jürgen@exämple.de"))
	})
}

func TestHasRecipient(t *testing.T) {
	email := &Email{Recipients: []string{"test@example.com"}}

	assert.True(t, email.HasRecipient("test@example.com"))
	assert.True(t, email.HasRecipient("TEST@Example.COM"))
	assert.True(t, email.HasRecipient("  test@example.com "))
	assert.False(t, email.HasRecipient("other@example.com"))
	assert.False(t, email.HasRecipient(""))
}

func TestParseMultipartPrefersHTML(t *testing.T) {
	raw := crlf(`To: user@example.com
Subject: Confirm
MIME-Version: 1.0
Content-Type: multipart/alternative; boundary="b1"

--b1
Content-Type: text/plain; charset=utf-8

plain https://example.com/plain?token=plain
--b1
Content-Type: text/html; charset=utf-8

<a href="https://example.com/html?token=html">go</a>
--b1--
`)

	email, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, ContentTypeHTML, email.BodyType)
	assert.Contains(t, email.Body, "https://example.com/html?token=html")
	assert.NotContains(t, email.Body, "plain?token=plain")
}

func TestParseMultipartFallsBackToFirstPlain(t *testing.T) {
	raw := crlf(`To: user@example.com
Content-Type: multipart/mixed; boundary="b1"

--b1
Content-Type: text/plain

first plain
--b1
Content-Type: text/plain

second plain
--b1
Content-Type: application/octet-stream
Content-Disposition: attachment; filename="x.bin"

AAAA
--b1--
`)

	email, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, ContentTypePlain, email.BodyType)
	assert.Contains(t, email.Body, "first plain")
	assert.NotContains(t, email.Body, "second plain")
}

func TestParseNestedMultipart(t *testing.T) {
	raw := crlf(`To: user@example.com
Content-Type: multipart/mixed; boundary="outer"

--outer
Content-Type: multipart/alternative; boundary="inner"

--inner
Content-Type: text/plain

inner plain
--inner
Content-Type: text/html

<p>inner html</p>
--inner--
--outer
Content-Type: text/plain

trailing note
--outer--
`)

	email, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, ContentTypeHTML, email.BodyType)
	assert.Contains(t, email.Body, "<p>inner html</p>")
}

func TestParseAttachedMessage(t *testing.T) {
	t.Run("html inside forwarded message", func(t *testing.T) {
		raw := crlf(`To: user@example.com
Content-Type: multipart/mixed; boundary="outer"

--outer
Content-Type: message/rfc822

From: auth@example.com
Subject: Your sign-in link
Content-Type: text/html

<a href="https://proj.supabase.co/auth/v1/verify?token=fwd">Sign in</a>
--outer--
`)

		email, err := Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, ContentTypeHTML, email.BodyType)
		assert.Contains(t, email.Body, "token=fwd")
	})

	t.Run("multipart inside forwarded message", func(t *testing.T) {
		raw := crlf(`To: user@example.com
Content-Type: multipart/mixed; boundary="outer"

--outer
Content-Type: text/plain

see below
--outer
Content-Type: message/rfc822

Subject: Inner
Content-Type: multipart/alternative; boundary="inner"

--inner
Content-Type: text/plain

inner plain
--inner
Content-Type: text/html

<p>inner html</p>
--inner--
--outer--
`)

		email, err := Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, ContentTypeHTML, email.BodyType)
		assert.Contains(t, email.Body, "<p>inner html</p>")
	})
}

func TestParseMultipartWithoutBoundary(t *testing.T) {
	raw := crlf(`To: user@example.com
Content-Type: multipart/alternative

Sign in: https://example.com/login?token=abc
`)

	email, err := Parse(raw)
	require.NoError(t, err)
	assert.Contains(t, email.Body, "https://example.com/login?token=abc")
}

func TestParseMultipartWithoutTextParts(t *testing.T) {
	raw := crlf(`To: user@example.com
Content-Type: multipart/mixed; boundary="b1"

--b1
Content-Type: image/png

xxxx
--b1--
`)

	email, err := Parse(raw)
	require.NoError(t, err)
	assert.Empty(t, email.Body)
	assert.Empty(t, email.BodyType)
}

func TestParseTransferEncodings(t *testing.T) {
	t.Run("quoted-printable soft line breaks", func(t *testing.T) {
		raw := crlf(`To: user@example.com
Content-Type: text/html; charset=utf-8
Content-Transfer-Encoding: quoted-printable

<a href=3D"https://proj.supabase.co/auth/v1/verify?token=3Dabc&amp;type=3Dma=
giclink">Sign in</a>
`)
		email, err := Parse(raw)
		require.NoError(t, err)
		assert.Contains(t, email.Body, `href="https://proj.supabase.co/auth/v1/verify?token=abc&amp;type=magiclink"`)
	})

	t.Run("base64 html part", func(t *testing.T) {
		// <b>https://example.com/v?token=b64</b>
		raw := crlf(`To: user@example.com
Content-Type: multipart/alternative; boundary="b1"

--b1
Content-Type: text/html; charset=utf-8
Content-Transfer-Encoding: base64

PGI+aHR0cHM6Ly9leGFtcGxlLmNvbS92P3Rva2VuPWI2NDwvYj4=
--b1--
`)
		email, err := Parse(raw)
		require.NoError(t, err)
		assert.Equal(t, "<b>https://example.com/v?token=b64</b>", email.Body)
	})

	t.Run("latin-1 charset converted to utf-8", func(t *testing.T) {
		raw := []byte("To: user@example.com\r\nContent-Type: text/plain; charset=iso-8859-1\r\n\r\nGr\xfc\xdfe\r\n")
		email, err := Parse(raw)
		require.NoError(t, err)
		assert.Contains(t, email.Body, "Grüße")
	})
}

func TestParseLenientDecoding(t *testing.T) {
	t.Run("invalid utf-8 yields valid text", func(t *testing.T) {
		raw := []byte("To: user@example.com\r\nContent-Type: text/plain; charset=utf-8\r\n\r\nok\xff\xfe https://example.com/a?token=1\r\n")
		email, err := Parse(raw)
		require.NoError(t, err)
		assert.True(t, utf8.ValidString(email.Body))
		assert.Contains(t, email.Body, "https://example.com/a?token=1")
	})

	t.Run("unknown charset keeps payload", func(t *testing.T) {
		raw := crlf(`To: user@example.com
Content-Type: text/plain; charset=x-made-up

https://example.com/a?token=2
`)
		email, err := Parse(raw)
		require.NoError(t, err)
		assert.Contains(t, email.Body, "https://example.com/a?token=2")
	})
}
