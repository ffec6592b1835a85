package component_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/litlfred/dakit/all"
	"github.com/litlfred/dakit/component"
	"github.com/litlfred/dakit/gateway"
	"github.com/litlfred/dakit/internal/core"
	"github.com/litlfred/dakit/resolve"
)

var testRepo = core.RepositoryContext{Owner: "who", Repo: "anc-dak", Branch: "main"}

// recorder implements component.Notifier and records notifications.
type recorder struct {
	calls   int
	lastTyp core.ComponentType
	fail    bool
}

func (r *recorder) ComponentChanged(ctx context.Context, t core.ComponentType, sources []core.ComponentSource) error {
	if r.fail {
		return assert.AnError
	}
	r.calls++
	r.lastTyp = t
	return nil
}

// countingGateway wraps Memory and counts content-file loads by path.
type countingGateway struct {
	*gateway.Memory
	loads map[string]int
}

func newCountingGateway() *countingGateway {
	return &countingGateway{Memory: gateway.NewMemory(), loads: make(map[string]int)}
}

func (g *countingGateway) LoadFile(ctx context.Context, path string) ([]byte, error) {
	g.loads[path]++
	return g.Memory.LoadFile(ctx, path)
}

func newManager(t *testing.T, typ core.ComponentType, gw gateway.Gateway, n component.Notifier) *component.Manager {
	t.Helper()
	if gw == nil {
		gw = gateway.NewMemory()
	}
	r := resolve.New(resolve.WithGateway(gw))
	m, err := component.New(typ, testRepo, r, gw, n)
	require.NoError(t, err)
	return m
}

func TestAddSourceRoundTrip(t *testing.T) {
	rec := &recorder{}
	m := newManager(t, core.Personas, nil, rec)

	s := core.ComponentSource{URL: "actors/clinician.json"}
	require.NoError(t, m.AddSource(context.Background(), s))

	sources := m.Sources()
	require.Len(t, sources, 1)
	assert.Equal(t, s.URL, sources[0].URL)
	assert.Equal(t, 1, rec.calls)
	assert.Equal(t, core.Personas, rec.lastTyp)

	// The returned list is a defensive copy.
	sources[0].URL = "mutated"
	assert.Equal(t, "actors/clinician.json", m.Sources()[0].URL)
}

func TestAddSourceRejectsInvalid(t *testing.T) {
	rec := &recorder{}
	m := newManager(t, core.Personas, nil, rec)

	err := m.AddSource(context.Background(), core.ComponentSource{})
	require.ErrorIs(t, err, core.ErrInvalidSource)
	assert.Empty(t, m.Sources())
	assert.Zero(t, rec.calls)

	err = m.AddSource(context.Background(), core.ComponentSource{URL: "../outside.json"})
	require.ErrorIs(t, err, core.ErrInvalidSource)
	assert.Empty(t, m.Sources())
}

func TestMutationBounds(t *testing.T) {
	m := newManager(t, core.Indicators, nil, nil)
	require.NoError(t, m.AddSource(context.Background(), core.ComponentSource{URL: "indicators/anc-1.json"}))

	before, err := json.Marshal(m.Sources())
	require.NoError(t, err)

	url := "changed.json"
	assert.ErrorIs(t, m.UpdateSource(context.Background(), -1, core.SourcePatch{URL: &url}), core.ErrIndexOutOfRange)
	assert.ErrorIs(t, m.UpdateSource(context.Background(), 1, core.SourcePatch{URL: &url}), core.ErrIndexOutOfRange)
	assert.ErrorIs(t, m.RemoveSource(context.Background(), -1), core.ErrIndexOutOfRange)
	assert.ErrorIs(t, m.RemoveSource(context.Background(), 1), core.ErrIndexOutOfRange)

	after, err := json.Marshal(m.Sources())
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after), "failed mutation must leave the list unchanged")
}

func TestUpdateSourceMergesPatch(t *testing.T) {
	m := newManager(t, core.DataElements, nil, nil)
	require.NoError(t, m.AddSource(context.Background(), core.ComponentSource{
		Canonical: "https://smart.who.int/anc/CodeSystem/anc-de",
		URL:       "dataelements/anc-de.json",
	}))

	url := "dataelements/anc-de-v2.json"
	require.NoError(t, m.UpdateSource(context.Background(), 0, core.SourcePatch{URL: &url}))

	got := m.Sources()[0]
	assert.Equal(t, url, got.URL)
	assert.Equal(t, "https://smart.who.int/anc/CodeSystem/anc-de", got.Canonical, "unpatched fields survive the merge")
}

func TestRemoveSource(t *testing.T) {
	m := newManager(t, core.Requirements, nil, nil)
	for _, u := range []string{"requirements/a.json", "requirements/b.json", "requirements/c.json"} {
		require.NoError(t, m.AddSource(context.Background(), core.ComponentSource{URL: u}))
	}

	require.NoError(t, m.RemoveSource(context.Background(), 1))

	sources := m.Sources()
	require.Len(t, sources, 2)
	assert.Equal(t, "requirements/a.json", sources[0].URL)
	assert.Equal(t, "requirements/c.json", sources[1].URL)
}

func TestNotifierFailureRollsBack(t *testing.T) {
	rec := &recorder{fail: true}
	m := newManager(t, core.Personas, nil, rec)

	err := m.AddSource(context.Background(), core.ComponentSource{URL: "actors/clinician.json"})
	require.Error(t, err)
	assert.Empty(t, m.Sources(), "failed synchronization must not leave a partial mutation")
}

func TestRetrieveAllFailSoft(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	m := newManager(t, core.Indicators, nil, nil)
	ctx := context.Background()
	require.NoError(t, m.AddSource(ctx, core.ComponentSource{Data: map[string]any{"id": "anc-1"}}))
	require.NoError(t, m.AddSource(ctx, core.ComponentSource{Canonical: server.URL + "/gone"}))
	require.NoError(t, m.AddSource(ctx, core.ComponentSource{Data: map[string]any{"id": "anc-3"}}))

	resolved := m.RetrieveAll(ctx)
	require.Len(t, resolved, 2, "the failing source is skipped, not fatal")
	assert.Equal(t, "anc-1", core.ExtractID(resolved[0].Data))
	assert.Equal(t, "anc-3", core.ExtractID(resolved[1].Data))
}

func TestRetrieveAllLoadsRelativeThroughGateway(t *testing.T) {
	gw := newCountingGateway()
	m := newManager(t, core.Personas, gw, nil)
	ctx := context.Background()

	require.NoError(t, m.AddSource(ctx, core.ComponentSource{URL: "actors/clinician.json"}))

	// Nothing stored at the path: fail-soft yields zero items, no error.
	resolved := m.RetrieveAll(ctx)
	assert.Empty(t, resolved)
	assert.Equal(t, 1, gw.loads["input/actors/clinician.json"])

	// Once the file exists the same source resolves.
	require.NoError(t, gw.SaveFile(ctx, "input/actors/clinician.json", []byte(`{"id":"clinician"}`), gateway.SaveMeta{}))
	resolved = m.RetrieveAll(ctx)
	require.Len(t, resolved, 1)
	assert.Equal(t, core.MethodURLRelative, resolved[0].Method)
	assert.Equal(t, "clinician", core.ExtractID(resolved[0].Data))
}

func TestRetrieveByID(t *testing.T) {
	m := newManager(t, core.Personas, nil, nil)
	ctx := context.Background()
	require.NoError(t, m.AddSource(ctx, core.ComponentSource{Data: map[string]any{"id": "clinician", "name": "ANC clinician"}}))

	data, err := m.RetrieveByID(ctx, "clinician")
	require.NoError(t, err)
	assert.Equal(t, "clinician", core.ExtractID(data))

	// Second lookup is served by the local by-id cache.
	data, err = m.RetrieveByID(ctx, "clinician")
	require.NoError(t, err)
	assert.Equal(t, "clinician", core.ExtractID(data))

	_, err = m.RetrieveByID(ctx, "absent")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestSaveInlineUpdatesExisting(t *testing.T) {
	m := newManager(t, core.DecisionLogic, nil, nil)
	ctx := context.Background()
	require.NoError(t, m.AddSource(ctx, core.ComponentSource{Data: map[string]any{"id": "anc-dt-1", "rules": []any{}}}))
	require.NoError(t, m.AddSource(ctx, core.ComponentSource{URL: "decision-tables/anc-dt-2.json"}))

	updated := map[string]any{"id": "anc-dt-1", "rules": []any{map[string]any{"input": "age"}}}
	require.NoError(t, m.Save(ctx, updated, component.SaveOptions{Inline: true}))

	sources := m.Sources()
	require.Len(t, sources, 2, "in-place update keeps the list length")
	assert.Equal(t, updated, sources[0].Data, "the existing inline source is replaced at its index")
	assert.NotNil(t, sources[0].Metadata)
}

func TestSaveInlineAppendsWhenNoneExists(t *testing.T) {
	m := newManager(t, core.DecisionLogic, nil, nil)
	ctx := context.Background()
	require.NoError(t, m.AddSource(ctx, core.ComponentSource{URL: "decision-tables/anc-dt-2.json"}))

	data := map[string]any{"id": "anc-dt-1"}
	require.NoError(t, m.Save(ctx, data, component.SaveOptions{Inline: true}))

	sources := m.Sources()
	require.Len(t, sources, 2, "exactly one new inline source is appended")
	assert.Equal(t, data, sources[1].Data)
	require.NotNil(t, sources[1].Metadata)
	assert.NotNil(t, sources[1].Metadata.AddedAt)
	assert.Equal(t, string(core.KindInline), sources[1].Metadata.SourceType)
}

func TestSaveToFileAutoPath(t *testing.T) {
	gw := gateway.NewMemory()
	m := newManager(t, core.Personas, gw, nil)
	ctx := context.Background()

	data := map[string]any{"id": "clinician", "name": "ANC clinician"}
	require.NoError(t, m.Save(ctx, data, component.SaveOptions{Message: "add clinician persona"}))

	content, err := gw.LoadFile(ctx, "input/actors/clinician.json")
	require.NoError(t, err)
	assert.Contains(t, string(content), `"name": "ANC clinician"`)

	sources := m.Sources()
	require.Len(t, sources, 1)
	assert.Equal(t, "actors/clinician.json", sources[0].URL)

	// Saving again refreshes the existing source instead of appending.
	require.NoError(t, m.Save(ctx, data, component.SaveOptions{}))
	assert.Len(t, m.Sources(), 1)
}

func TestSaveToFileExplicitPath(t *testing.T) {
	gw := gateway.NewMemory()
	m := newManager(t, core.TestScenarios, gw, nil)
	ctx := context.Background()

	data := map[string]any{"id": "quick-check", "feature": "Feature: quick check"}
	require.NoError(t, m.Save(ctx, data, component.SaveOptions{Path: "testing/custom.feature"}))

	content, err := gw.LoadFile(ctx, "input/testing/custom.feature")
	require.NoError(t, err)
	assert.Equal(t, "Feature: quick check", string(content))
}

func TestValidateAll(t *testing.T) {
	m := newManager(t, core.Personas, nil, nil)
	ctx := context.Background()
	require.NoError(t, m.AddSource(ctx, core.ComponentSource{Data: map[string]any{"id": "clinician", "name": "ANC clinician", "description": "Provides ANC care"}}))
	require.NoError(t, m.AddSource(ctx, core.ComponentSource{Data: map[string]any{"role": "anonymous"}}))

	results := m.ValidateAll(ctx)
	require.Len(t, results, 2)

	assert.True(t, results[0].Valid)
	assert.Empty(t, results[0].Warnings)

	assert.True(t, results[1].Valid, "warnings alone do not invalidate")
	assert.NotEmpty(t, results[1].Warnings)
}

func TestInitializeSourcesDoesNotNotify(t *testing.T) {
	rec := &recorder{}
	m := newManager(t, core.UserScenarios, nil, rec)

	m.InitializeSources([]core.ComponentSource{{URL: "scenarios/first-visit.json"}})

	assert.Len(t, m.Sources(), 1)
	assert.Zero(t, rec.calls, "bulk initialization must not trigger synchronization")
}
