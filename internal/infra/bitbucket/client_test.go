package bitbucket

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/duartqx/aws-devops-open-scripts/internal/domain"
)

func newTestClient(serverURL string) *Client {
	return NewClient(domain.BitbucketConfig{
		APIBaseURL: serverURL,
		WebBaseURL: "https://bitbucket.org/team/repo",
		Workspace:  "team",
		Repository: "repo",
		Token:      "test-token",
	})
}

const pullRequestsBody = `{
	"values": [
		{
			"id": 12,
			"title": "Add login endpoint",
			"state": "MERGED",
			"source": {"branch": {"name": "feature/PROJ-12"}},
			"destination": {"branch": {"name": "develop"}},
			"links": {"html": {"href": "https://bitbucket.org/team/repo/pull-requests/12"}}
		},
		{
			"id": 13,
			"title": "Fix flaky build",
			"state": "OPEN",
			"source": {"branch": {"name": "bugfix/PROJ-13"}},
			"destination": {"branch": {"name": "develop"}},
			"links": {"html": {"href": "https://bitbucket.org/team/repo/pull-requests/13"}}
		},
		{
			"id": 14,
			"title": "Abandoned spike",
			"state": "SUPERSEDED",
			"source": {"branch": {"name": "spike/PROJ-14"}},
			"destination": {"branch": {"name": "develop"}},
			"links": {"html": {"href": "https://bitbucket.org/team/repo/pull-requests/14"}}
		}
	]
}`

func TestClient_ListMergeRequests(t *testing.T) {
	var gotPath, gotAuth string
	var gotStates []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotStates = r.URL.Query()["state"]
		fmt.Fprint(w, pullRequestsBody)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	mrs, err := client.ListMergeRequests(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "/repositories/team/repo/pullrequests/", gotPath)
	assert.Equal(t, "Bearer test-token", gotAuth)
	assert.ElementsMatch(t, []string{"OPEN", "MERGED", "DECLINED"}, gotStates)

	require.Len(t, mrs, 3)
	assert.Equal(t, domain.MergeStateMerged, mrs[0].State)
	assert.Equal(t, "feature/PROJ-12", mrs[0].SourceBranch)
	assert.Equal(t, "https://bitbucket.org/team/repo/pull-requests/12", mrs[0].URL)
	assert.Equal(t, domain.MergeStateOpen, mrs[1].State)
	assert.Equal(t, domain.MergeStateDeclined, mrs[2].State, "SUPERSEDED counts as declined")
}

func TestClient_ListPipelines(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repositories/team/repo/pipelines/", r.URL.Path)
		fmt.Fprint(w, `{
			"values": [
				{"build_number": 321, "target": {"ref_name": "feature/PROJ-12"}},
				{"build_number": 320, "target": {"ref_name": "develop"}}
			]
		}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	pipelines, err := client.ListPipelines(context.Background())

	require.NoError(t, err)
	require.Len(t, pipelines, 2)
	assert.Equal(t, 321, pipelines[0].BuildNumber)
	assert.Equal(t, "feature/PROJ-12", pipelines[0].Branch)
	assert.Equal(t, "https://bitbucket.org/team/repo/pipelines/results/321", pipelines[0].URL)
}

func TestClient_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.ListMergeRequests(context.Background())

	require.ErrorIs(t, err, domain.ErrAuthentication)
	assert.True(t, domain.Fatal(err))
}

func TestClient_RateLimitedRetriesOnce(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		fmt.Fprint(w, `{"values": []}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	mrs, err := client.ListMergeRequests(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.Empty(t, mrs)
}

func TestClient_ServerErrorIsTransient(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.ListPipelines(context.Background())

	require.ErrorIs(t, err, domain.ErrTransient)
	assert.False(t, domain.Fatal(err))
}

func TestMapStatus(t *testing.T) {
	assert.NoError(t, mapStatus(http.StatusOK))
	assert.ErrorIs(t, mapStatus(http.StatusForbidden), domain.ErrAuthentication)
	assert.ErrorIs(t, mapStatus(http.StatusNotFound), domain.ErrNotFound)
	assert.ErrorIs(t, mapStatus(http.StatusTooManyRequests), domain.ErrRateLimited)
	assert.ErrorIs(t, mapStatus(http.StatusServiceUnavailable), domain.ErrTransient)
	assert.Error(t, mapStatus(http.StatusTeapot))
}
