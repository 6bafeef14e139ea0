package cli

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/goawx/internal/client/iocli"
	"github.com/iudanet/goawx/internal/client/resource"
	"github.com/iudanet/goawx/internal/client/sync"
	"github.com/iudanet/goawx/internal/config"
	"github.com/iudanet/goawx/internal/logger"
	"github.com/iudanet/goawx/internal/models"
)

// captureIO собирает весь вывод CLI в буфер
func captureIO() (*iocli.IOMock, *bytes.Buffer) {
	var out bytes.Buffer
	mockIO := &iocli.IOMock{
		PrintlnFunc: func(a ...any) { _, _ = fmt.Fprintln(&out, a...) },
		PrintfFunc:  func(format string, a ...any) { _, _ = fmt.Fprintf(&out, format, a...) },
		ReadInputFunc: func(prompt string) (string, error) {
			return "", nil
		},
		ReadPasswordFunc: func(prompt string) (string, error) {
			return "", nil
		},
		WriteFunc: func(p []byte) (int, error) {
			return out.Write(p)
		},
	}
	return mockIO, &out
}

type testCli struct {
	*Cli
	out       *bytes.Buffer
	io        *iocli.IOMock
	auth      *AuthServiceMock
	resources *resource.ServiceMock
	sync      *sync.ServiceMock
}

func newTestCli(t *testing.T) *testCli {
	t.Helper()

	mockIO, out := captureIO()
	tc := &testCli{
		out:       out,
		io:        mockIO,
		auth:      &AuthServiceMock{},
		resources: &resource.ServiceMock{},
		sync:      &sync.ServiceMock{},
	}
	cfg := config.Default()
	cfg.URL = "https://awx.example.com"
	tc.Cli = &Cli{
		io:              mockIO,
		cfg:             cfg,
		logger:          logger.Nop(),
		authService:     tc.auth,
		resourceService: tc.resources,
		syncService:     tc.sync,
		authenticated:   true,
		ready:           true,
	}
	return tc
}

func project(id int64, name string) *models.Record {
	return models.Hydrate(models.Projects, map[string]any{
		"id":          float64(id),
		"name":        name,
		"description": "",
		"scm_type":    "git",
		"scm_branch":  "",
	})
}

func TestCli_runList_Table(t *testing.T) {
	tc := newTestCli(t)
	tc.resources.ListFunc = func(ctx context.Context, schema *models.Schema, query url.Values) ([]*models.Record, error) {
		assert.Equal(t, models.Projects, schema)
		assert.Equal(t, "1", query.Get("organization"))
		return []*models.Record{project(1, "alpha"), project(2, "beta")}, nil
	}

	err := tc.runList(context.Background(), "project", []string{"organization=1"}, renderOptions{output: outputTable})
	require.NoError(t, err)

	out := tc.out.String()
	assert.Contains(t, out, "ID")
	assert.Contains(t, out, "alpha")
	assert.Contains(t, out, "beta")
	assert.Len(t, tc.resources.ListCalls(), 1)
}

func TestCli_runList_Query(t *testing.T) {
	tc := newTestCli(t)
	tc.resources.ListFunc = func(ctx context.Context, schema *models.Schema, query url.Values) ([]*models.Record, error) {
		return []*models.Record{project(1, "alpha"), project(2, "beta")}, nil
	}

	err := tc.runList(context.Background(), "projects", nil, renderOptions{output: outputTable, query: "$[*].name"})
	require.NoError(t, err)
	assert.Equal(t, "alpha\nbeta\n", tc.out.String())
}

func TestCli_runList_JSONQuery(t *testing.T) {
	tc := newTestCli(t)
	tc.resources.ListFunc = func(ctx context.Context, schema *models.Schema, query url.Values) ([]*models.Record, error) {
		return []*models.Record{project(1, "alpha")}, nil
	}

	err := tc.runList(context.Background(), "projects", nil, renderOptions{output: outputJSON, query: "$[*].id"})
	require.NoError(t, err)
	assert.JSONEq(t, `[1]`, tc.out.String())
}

func TestCli_runList_Errors(t *testing.T) {
	tests := []struct {
		name    string
		res     string
		filters []string
		opts    renderOptions
		errMsg  string
	}{
		{name: "unknown resource", res: "widgets", opts: renderOptions{output: outputTable}, errMsg: "widgets"},
		{name: "bad filter", res: "projects", filters: []string{"nofilter"}, opts: renderOptions{output: outputTable}, errMsg: "invalid filter"},
		{name: "bad output", res: "projects", opts: renderOptions{output: "xml"}, errMsg: "unknown output format"},
		{name: "bad query", res: "projects", opts: renderOptions{output: outputTable, query: "$[["}, errMsg: "invalid query"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := newTestCli(t)
			err := tc.runList(context.Background(), tt.res, tt.filters, tt.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.Empty(t, tc.resources.ListCalls())
		})
	}
}

func TestCli_runList_NotAuthenticated(t *testing.T) {
	tc := newTestCli(t)
	tc.authenticated = false

	err := tc.runList(context.Background(), "projects", nil, renderOptions{output: outputTable})
	require.ErrorIs(t, err, errNotAuthenticated)
	assert.Empty(t, tc.resources.ListCalls())
}

func TestCli_runResources(t *testing.T) {
	tc := newTestCli(t)

	require.NoError(t, tc.runResources())
	out := tc.out.String()
	assert.Contains(t, out, "job_templates")
	assert.Contains(t, out, "/api/v2/projects/")

	tc.out.Reset()
	require.NoError(t, tc.runResourceFields("project"))
	assert.Contains(t, tc.out.String(), "scm_type")
	assert.Contains(t, tc.out.String(), `"git"`)

	require.Error(t, tc.runResourceFields("widgets"))
}

func TestCli_printVersion(t *testing.T) {
	tc := newTestCli(t)
	tc.printVersion()
	assert.Contains(t, tc.out.String(), "Version:    "+Version)
}

func TestApplyAssignments(t *testing.T) {
	rec := models.NewRecord(models.Projects, nil)

	err := applyAssignments(rec, []string{"name=demo", "organization=3", "scm_clean=true", "scm_type=git"})
	require.NoError(t, err)

	fields := rec.Export()
	assert.Equal(t, "demo", fields["name"])
	assert.Equal(t, int64(3), fields["organization"])
	assert.Equal(t, true, fields["scm_clean"])
	assert.Equal(t, []string{"name", "organization", "scm_clean", "scm_type"}, rec.Changed())

	require.Error(t, applyAssignments(rec, []string{"organization=abc"}))
	require.Error(t, applyAssignments(rec, []string{"scm_type=cvs"}))
	require.Error(t, applyAssignments(rec, []string{"=x"}))
	require.Error(t, applyAssignments(rec, []string{"noequals"}))
}

func TestNewRootCommand_OfflineCommands(t *testing.T) {
	mockIO, out := captureIO()
	c := New(mockIO)

	root := NewRootCommand(c)
	root.SetArgs([]string{"version"})
	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "awxctl")
	assert.False(t, c.ready, "offline commands must not open the local database")

	out.Reset()
	root.SetArgs([]string{"resources", "hosts"})
	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "inventory")
}

func TestNewRootCommand_Args(t *testing.T) {
	tc := newTestCli(t)
	root := NewRootCommand(tc.Cli)

	root.SetArgs([]string{"get", "projects"})
	err := root.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")

	root.SetArgs([]string{"set", "projects", "7"})
	require.Error(t, root.ExecuteContext(context.Background()))
}
