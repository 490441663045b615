package main

import (
	"io"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"myceliumweb.org/lichen/envdb"
	"myceliumweb.org/lichen/internal/testutil"
	"myceliumweb.org/lichen/lichui"
)

func TestServeUI(t *testing.T) {
	ctx := testutil.Context(t)
	db := envdb.NewTestDB(t)
	newSide(t, db) // seed the db
	s := newSide(t, db)

	l := testutil.Listen(t)
	srv := lichui.New(s.env, s.tab)
	go srv.Serve(ctx, l)
	u := "http://" + l.Addr().String()

	resp, err := http.Get(u + "/")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	require.Contains(t, string(body), devRoot+"/nat")

	// the permanent path resolves through the alias.
	resp, err = http.Get(u + "/decl?path=lichen/init/nat&name=S")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = http.PostForm(u+"/eval", url.Values{"lit": {"4%nat"}})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	require.Contains(t, string(body), "(S (S (S (S O))))")
	require.Contains(t, string(body), "<td>4</td>")
}
