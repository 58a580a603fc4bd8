package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestIssueAndParse(t *testing.T) {
	s := NewSessions("secret", time.Hour)
	tok, err := s.Issue("abc")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	sid, err := s.Parse(tok)
	if err != nil || sid != "abc" {
		t.Fatalf("parse = %q, %v", sid, err)
	}

	other := NewSessions("other", time.Hour)
	if _, err := other.Parse(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("wrong secret: %v", err)
	}
	if _, err := s.Parse("garbage"); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("garbage token: %v", err)
	}
}

func TestParseRejectsExpiredToken(t *testing.T) {
	s := NewSessions("secret", time.Hour)
	start := time.Now()
	s.now = func() time.Time { return start }
	tok, _ := s.Issue("abc")

	s.now = func() time.Time { return start.Add(2 * time.Hour) }
	if _, err := s.Parse(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token accepted: %v", err)
	}
}

func TestSessionMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s := NewSessions("secret", time.Hour)
	r := gin.New()
	r.Use(s.SessionMiddleware())
	r.GET("/whoami", func(c *gin.Context) { c.String(http.StatusOK, SessionID(c)) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	minted := w.Body.String()
	tok := w.Header().Get(TokenHeader)
	if minted == "" || tok == "" {
		t.Fatalf("no session minted: %q %q", minted, tok)
	}

	requests := map[string]*http.Request{
		"bearer": httptest.NewRequest(http.MethodGet, "/whoami", nil),
		"cookie": httptest.NewRequest(http.MethodGet, "/whoami", nil),
		"query":  httptest.NewRequest(http.MethodGet, "/whoami?token="+tok, nil),
	}
	requests["bearer"].Header.Set("Authorization", "Bearer "+tok)
	requests["cookie"].AddCookie(&http.Cookie{Name: CookieName, Value: tok})

	for name, req := range requests {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if got := w.Body.String(); got != minted {
			t.Fatalf("%s: session = %q, want %q", name, got, minted)
		}
		if w.Header().Get(TokenHeader) != "" {
			t.Fatalf("%s: reissued a token for a valid session", name)
		}
	}
}
