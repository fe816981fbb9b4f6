package quizshow

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGitHubStub(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/users/mona":
			_ = json.NewEncoder(w).Encode(map[string]string{
				"login":      "mona",
				"name":       "Mona Lisa Octocat",
				"avatar_url": "https://avatars.example/mona.png",
				"html_url":   "https://github.com/mona",
			})
		case "/users/broken":
			http.Error(w, "rate limited", http.StatusForbidden)
		case "/users/anonymous":
			_, _ = w.Write([]byte(`{"name": "no login"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGitHubResolver(t *testing.T) {
	r := NewGitHubResolver(newGitHubStub(t).URL + "/")
	ctx := context.Background()

	p, err := r.Resolve(ctx, " mona ")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "mona", p.Login)
	assert.Equal(t, "https://avatars.example/mona.png", p.AvatarURL)
	assert.Equal(t, "Mona", p.FirstName())

	p, err = r.Resolve(ctx, "ghost")
	assert.NoError(t, err)
	assert.Nil(t, p)

	p, err = r.Resolve(ctx, "")
	assert.NoError(t, err)
	assert.Nil(t, p)

	_, err = r.Resolve(ctx, "broken")
	assert.ErrorContains(t, err, "unexpected status 403")

	_, err = r.Resolve(ctx, "anonymous")
	assert.ErrorContains(t, err, "no login")
}

func TestResolveProfileSwallowsErrors(t *testing.T) {
	r := NewGitHubResolver(newGitHubStub(t).URL)
	ctx := context.Background()

	assert.Nil(t, ResolveProfile(ctx, r, "broken"))
	assert.Nil(t, ResolveProfile(ctx, nil, "mona"))
	assert.NotNil(t, ResolveProfile(ctx, r, "mona"))
}

func TestFirstName(t *testing.T) {
	var nobody *Profile
	assert.Empty(t, nobody.FirstName())
	assert.Empty(t, (&Profile{Login: "x"}).FirstName())
	assert.Equal(t, "Ada", (&Profile{Name: "Ada Lovelace"}).FirstName())
}
