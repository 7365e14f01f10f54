package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractMagicLink(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		want   string
		wantOK bool
	}{
		{
			name:   "supabase link in plain text",
			body:   "Click here: https://abcxyz.supabase.co/auth/v1/verify?token=tok123&type=magiclink&redirect_to=https://app.example.com now",
			want:   "https://abcxyz.supabase.co/auth/v1/verify?token=tok123&type=magiclink&redirect_to=https://app.example.com",
			wantOK: true,
		},
		{
			name:   "supabase link inside href",
			body:   `<a href="https://proj.supabase.co/auth/v1/verify?token=t1&type=signup">Confirm</a>`,
			want:   "https://proj.supabase.co/auth/v1/verify?token=t1&type=signup",
			wantOK: true,
		},
		{
			name:   "supabase link with mixed case scheme and host",
			body:   "HTTPS://Proj.SUPABASE.CO/auth/v1/verify?token=abc",
			want:   "HTTPS://Proj.SUPABASE.CO/auth/v1/verify?token=abc",
			wantOK: true,
		},
		{
			name:   "supabase link ends at angle bracket",
			body:   "<https://proj.supabase.co/auth/v1/verify?token=abc>",
			want:   "https://proj.supabase.co/auth/v1/verify?token=abc",
			wantOK: true,
		},
		{
			name:   "supabase preferred over earlier token link",
			body:   "first https://example.com/login?token=zzz then https://proj.supabase.co/auth/v1/verify?token=abc",
			want:   "https://proj.supabase.co/auth/v1/verify?token=abc",
			wantOK: true,
		},
		{
			name:   "first of several supabase links",
			body:   "https://a.supabase.co/auth/v1/verify?token=1 https://b.supabase.co/auth/v1/verify?token=2",
			want:   "https://a.supabase.co/auth/v1/verify?token=1",
			wantOK: true,
		},
		{
			name:   "fallback token as first parameter",
			body:   "Sign in: https://app.example.com/auth/callback?token=abc123",
			want:   "https://app.example.com/auth/callback?token=abc123",
			wantOK: true,
		},
		{
			name:   "fallback token after other parameter",
			body:   `<a href="http://localhost:3000/verify?email=a%40b.com&token=xyz">go</a>`,
			want:   "http://localhost:3000/verify?email=a%40b.com&token=xyz",
			wantOK: true,
		},
		{
			name:   "fallback is case-insensitive",
			body:   "HTTP://EXAMPLE.COM/verify?TOKEN=ABC",
			want:   "HTTP://EXAMPLE.COM/verify?TOKEN=ABC",
			wantOK: true,
		},
		{
			name:   "supabase host without verify path uses fallback",
			body:   "https://proj.supabase.co/other?token=abc",
			want:   "https://proj.supabase.co/other?token=abc",
			wantOK: true,
		},
		{
			name:   "verify path without query does not match",
			body:   "https://proj.supabase.co/auth/v1/verify",
			wantOK: false,
		},
		{
			name:   "http supabase link only matches fallback",
			body:   "http://proj.supabase.co/auth/v1/verify?type=signup&token=abc",
			want:   "http://proj.supabase.co/auth/v1/verify?type=signup&token=abc",
			wantOK: true,
		},
		{
			name:   "token outside query string",
			body:   "https://example.com/token=abc",
			wantOK: false,
		},
		{
			name:   "plain links only",
			body:   "Visit https://example.com/dashboard and https://example.com/unsubscribe",
			wantOK: false,
		},
		{
			name:   "supabase link ends at no-break space",
			body:   "Sign in: https://p.supabase.co/auth/v1/verify?token=abc\u00a0to continue",
			want:   "https://p.supabase.co/auth/v1/verify?token=abc",
			wantOK: true,
		},
		{
			name:   "fallback link ends at ideographic space",
			body:   "https://example.com/login?token=xyz\u3000次へ",
			want:   "https://example.com/login?token=xyz",
			wantOK: true,
		},
		{
			name:   "link ends at line separator",
			body:   "https://example.com/login?token=xyz\u2028next line",
			want:   "https://example.com/login?token=xyz",
			wantOK: true,
		},
		{
			name:   "empty body",
			body:   "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractMagicLink(tt.body)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
