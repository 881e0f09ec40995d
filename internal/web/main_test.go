package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoACL-Admin/GoACL-Admin/internal/config"
	"github.com/GoACL-Admin/GoACL-Admin/internal/db/controller/namespace"
	usercontroller "github.com/GoACL-Admin/GoACL-Admin/internal/db/controller/user"
	"github.com/GoACL-Admin/GoACL-Admin/internal/db/dbtest"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type testServer struct {
	t     *testing.T
	svc   *Service
	token string
}

// newTestServer starts with a "root" namespace holding an admin account and logs it in.
func newTestServer(t *testing.T) *testServer {
	t.Helper()

	db := dbtest.Open(t, dbtest.NewClock())

	ctx := context.Background()

	_, err := namespace.New(db).Create(ctx, namespace.Input{Namespace: "root"})
	require.NoError(t, err)

	_, err = usercontroller.New(db).Create(ctx, usercontroller.Input{
		Namespace: "root", User: "admin", Name: "Administrator", Password: "admin-secret",
	})
	require.NoError(t, err)

	cfg := &config.Config{
		DevMode: true,
		Title:   "GoACL-Admin test",
		JWT:     config.JWT{Secret: "test-secret"},
		Webserver: config.Webserver{
			APIPrefix: "/v1",
			CleanPath: true,
		},
	}

	svc, err := New(cfg, db)
	require.NoError(t, err)

	ts := &testServer{t: t, svc: svc}

	status, env := ts.do(http.MethodPost, "/v1/auth/login",
		map[string]string{"user": "admin", "password": "admin-secret", "namespace": "root"})
	require.Equal(t, http.StatusOK, status, env.Message)

	var res struct {
		Token string `json:"jwt_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))

	ts.token = res.Token

	return ts
}

func (ts *testServer) do(method, target string, body any) (int, envelope) {
	ts.t.Helper()

	return ts.doWithToken(method, target, ts.token, body)
}

func (ts *testServer) doWithToken(method, target, token string, body any) (int, envelope) {
	ts.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(ts.t, err)

		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.svc.App.Test(req, -1)
	require.NoError(ts.t, err)

	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(ts.t, err)

	var env envelope
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(ts.t, json.Unmarshal(raw, &env), string(raw))
	}

	return resp.StatusCode, env
}

func (ts *testServer) create(target string, body any) uint64 {
	ts.t.Helper()

	status, env := ts.do(http.MethodPost, target, body)
	require.Equal(ts.t, http.StatusCreated, status, env.Message)
	require.True(ts.t, env.Success)
	require.Equal(ts.t, http.StatusCreated, env.Code)

	var rec struct {
		ID uint64 `json:"id"`
	}
	require.NoError(ts.t, json.Unmarshal(env.Data, &rec))
	require.NotZero(ts.t, rec.ID)

	return rec.ID
}

func TestLoginScenario(t *testing.T) {
	ts := newTestServer(t)

	ts.create("/v1/namespace", map[string]string{"namespace": "default"})
	ts.create("/v1/user", map[string]string{
		"namespace": "default", "user": "alice", "name": "Alice", "password": "secret123",
	})

	status, env := ts.doWithToken(http.MethodPost, "/v1/auth/login", "",
		map[string]string{"user": "alice", "password": "secret123", "namespace": "default"})
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)

	var res struct {
		Token string `json:"jwt_token"`
		User  string `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &res))
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "alice", res.User)

	// the token identifies alice in default
	status, env = ts.doWithToken(http.MethodGet, "/v1/auth/profile", res.Token, nil)
	require.Equal(t, http.StatusOK, status)

	var claims struct {
		ID        uint64 `json:"id"`
		User      string `json:"user"`
		Namespace string `json:"namespace"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &claims))
	assert.Equal(t, "alice", claims.User)
	assert.Equal(t, "default", claims.Namespace)
	assert.NotZero(t, claims.ID)

	status, env = ts.doWithToken(http.MethodPost, "/v1/auth/login", "",
		map[string]string{"user": "alice", "password": "wrong", "namespace": "default"})
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.False(t, env.Success)
	assert.Equal(t, http.StatusUnauthorized, env.Code)
	assert.Equal(t, "UNAUTHORIZED", env.Error)
	assert.Equal(t, "invalid username or password", env.Message)
}

func TestPermissionScenario(t *testing.T) {
	ts := newTestServer(t)

	ts.create("/v1/namespace", map[string]string{"namespace": "default"})
	roleID := ts.create("/v1/role", map[string]string{"namespace": "default", "role": "admin"})
	ts.create("/v1/resource", map[string]string{"namespace": "default", "resource": "user:read"})

	permID := ts.create("/v1/permission", map[string]string{
		"namespace": "default", "role": "admin", "resource": "user:read",
	})

	type permission struct {
		ID        uint64 `json:"id"`
		Namespace string `json:"namespace"`
		Role      string `json:"role"`
		Resource  string `json:"resource"`
	}

	status, env := ts.do(http.MethodGet, "/v1/permission", nil)
	require.Equal(t, http.StatusOK, status)

	var list []permission
	require.NoError(t, json.Unmarshal(env.Data, &list))
	require.Len(t, list, 1)
	assert.Equal(t, permission{ID: permID, Namespace: "default", Role: "admin", Resource: "user:read"}, list[0])

	path := "/v1/permission/" + strconv.FormatUint(permID, 10)

	status, env = ts.do(http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, status)

	var one permission
	require.NoError(t, json.Unmarshal(env.Data, &one))
	assert.Equal(t, list[0], one)

	status, _ = ts.do(http.MethodDelete, "/v1/role/"+strconv.FormatUint(roleID, 10), nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = ts.do(http.MethodGet, "/v1/role/"+strconv.FormatUint(roleID, 10), nil)
	assert.Equal(t, http.StatusNotFound, status)

	// removing the role leaves its permissions in place
	status, env = ts.do(http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, status)
	require.NoError(t, json.Unmarshal(env.Data, &one))
	assert.Equal(t, "admin", one.Role)
}

func TestErrors(t *testing.T) {
	ts := newTestServer(t)

	ts.create("/v1/namespace", map[string]string{"namespace": "default"})

	testCases := []struct {
		name       string
		method     string
		target     string
		token      *string
		body       any
		wantStatus int
		wantCode   string
	}{
		{
			name: "missing token", method: http.MethodGet, target: "/v1/namespace", token: new(string),
			wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED",
		},
		{
			name: "garbage token", method: http.MethodGet, target: "/v1/role", token: ptr("abc.def.ghi"),
			wantStatus: http.StatusUnauthorized, wantCode: "UNAUTHORIZED",
		},
		{
			name: "duplicate namespace", method: http.MethodPost, target: "/v1/namespace",
			body:       map[string]string{"namespace": "default"},
			wantStatus: http.StatusConflict, wantCode: "CONFLICT",
		},
		{
			name: "invalid body", method: http.MethodPost, target: "/v1/user",
			body:       map[string]string{"namespace": "default", "user": "a", "name": "A", "password": "123"},
			wantStatus: http.StatusUnprocessableEntity, wantCode: "VALIDATION_FAILED",
		},
		{
			name: "unknown namespace", method: http.MethodPost, target: "/v1/role",
			body:       map[string]string{"namespace": "nope", "role": "admin"},
			wantStatus: http.StatusUnprocessableEntity, wantCode: "VALIDATION_FAILED",
		},
		{
			name: "bad id", method: http.MethodGet, target: "/v1/user/abc",
			wantStatus: http.StatusUnprocessableEntity, wantCode: "VALIDATION_FAILED",
		},
		{
			name: "unknown id", method: http.MethodPatch, target: "/v1/resource/99",
			body:       map[string]string{"description": "x"},
			wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND",
		},
		{
			name: "unknown route", method: http.MethodGet, target: "/v2/nothing",
			wantStatus: http.StatusNotFound, wantCode: "NOT_FOUND",
		},
		{
			name: "login without namespace", method: http.MethodPost, target: "/v1/auth/login", token: new(string),
			body:       map[string]string{"user": "admin", "password": "admin-secret"},
			wantStatus: http.StatusUnprocessableEntity, wantCode: "VALIDATION_FAILED",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			token := ts.token
			if tc.token != nil {
				token = *tc.token
			}

			status, env := ts.doWithToken(tc.method, tc.target, token, tc.body)
			assert.Equal(t, tc.wantStatus, status, env.Message)
			assert.False(t, env.Success)
			assert.Equal(t, tc.wantStatus, env.Code)
			assert.Equal(t, tc.wantCode, env.Error)
			assert.NotEmpty(t, env.Message)
		})
	}
}

func TestListPagination(t *testing.T) {
	ts := newTestServer(t)

	for _, ns := range []string{"a", "b", "c"} {
		ts.create("/v1/namespace", map[string]string{"namespace": ns})
	}

	status, env := ts.do(http.MethodGet, "/v1/namespace?page=2&pageSize=2", nil)
	require.Equal(t, http.StatusOK, status)

	var page struct {
		List []struct {
			Namespace string `json:"namespace"`
		} `json:"list"`
		Pagination struct {
			Total      int64 `json:"total"`
			Page       int   `json:"page"`
			PageSize   int   `json:"pageSize"`
			TotalPages int   `json:"totalPages"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))

	// root, a, b, c
	assert.Equal(t, int64(4), page.Pagination.Total)
	assert.Equal(t, 2, page.Pagination.Page)
	assert.Equal(t, 2, page.Pagination.PageSize)
	assert.Equal(t, 2, page.Pagination.TotalPages)
	require.Len(t, page.List, 2)
	assert.Equal(t, "b", page.List[0].Namespace)
	assert.Equal(t, "c", page.List[1].Namespace)
}

func TestUserSearchAndUpdate(t *testing.T) {
	ts := newTestServer(t)

	ts.create("/v1/namespace", map[string]string{"namespace": "default"})
	id := ts.create("/v1/user", map[string]string{
		"namespace": "default", "user": "alice", "name": "Alice Liddell", "password": "secret123",
	})
	ts.create("/v1/user", map[string]string{
		"namespace": "default", "user": "bob", "name": "Bob", "password": "secret123",
	})

	status, env := ts.do(http.MethodGet, "/v1/user/search?name=LIDD&namespace=default", nil)
	require.Equal(t, http.StatusOK, status)

	var found []map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &found))
	require.Len(t, found, 1)
	assert.Equal(t, "alice", found[0]["user"])
	assert.NotContains(t, found[0], "password")

	status, env = ts.do(http.MethodPatch, "/v1/user/"+strconv.FormatUint(id, 10),
		map[string]string{"password": "new-secret"})
	require.Equal(t, http.StatusOK, status, env.Message)

	status, _ = ts.doWithToken(http.MethodPost, "/v1/auth/login", "",
		map[string]string{"user": "alice", "password": "new-secret", "namespace": "default"})
	assert.Equal(t, http.StatusOK, status)

	status, _ = ts.doWithToken(http.MethodPost, "/v1/auth/login", "",
		map[string]string{"user": "alice", "password": "secret123", "namespace": "default"})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestOperationalRoutes(t *testing.T) {
	ts := newTestServer(t)

	status, env := ts.doWithToken(http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)

	status, _ = ts.doWithToken(http.MethodGet, CheckAlivePath, "", nil)
	assert.Equal(t, http.StatusOK, status)

	// duplicate slashes are collapsed
	status, _ = ts.doWithToken(http.MethodGet, "//checkalive", "", nil)
	assert.Equal(t, http.StatusOK, status)

	resp, err := ts.svc.App.Test(httptest.NewRequest(http.MethodGet, MetricsPath, nil), -1)
	require.NoError(t, err)

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(raw), "acl_login_attempts_total")

	ts.svc.alive.Store(false)
	assert.False(t, ts.svc.Alive())

	status, _ = ts.doWithToken(http.MethodGet, CheckAlivePath, "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
}

func ptr(s string) *string { return &s }
