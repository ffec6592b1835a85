package dakit_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/litlfred/dakit"
	_ "github.com/litlfred/dakit/all"
	"github.com/litlfred/dakit/gateway"
	"github.com/litlfred/dakit/internal/core"
	"github.com/litlfred/dakit/resolve"
)

var benchRepo = dakit.RepositoryContext{Owner: "who", Repo: "anc-dak", Branch: "main"}

func BenchmarkNew(b *testing.B) {
	gw := gateway.NewMemory()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = dakit.New(benchRepo, gw)
	}
}

func BenchmarkResolveInline(b *testing.B) {
	r := resolve.New()
	source := core.ComponentSource{Data: map[string]any{"id": "anc-1", "name": "First contact"}}
	ctx := context.Background()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = r.Resolve(ctx, source, benchRepo)
	}
}

func BenchmarkResolveCached(b *testing.B) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "anc-contact", "status": "active"}`))
	}))
	defer server.Close()

	r := resolve.New()
	source := core.ComponentSource{Canonical: server.URL + "/anc-contact"}
	ctx := context.Background()

	// Warm the cache so every iteration measures a hit.
	if _, err := r.Resolve(ctx, source, benchRepo); err != nil {
		b.Fatalf("warmup failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = r.Resolve(ctx, source, benchRepo)
	}
}

func BenchmarkCacheKey(b *testing.B) {
	source := core.ComponentSource{URL: "actors/clinician.json"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = resolve.CacheKey(source, benchRepo)
	}
}

func BenchmarkDetermineKind(b *testing.B) {
	sources := []core.ComponentSource{
		{Data: map[string]any{"id": "x"}},
		{URL: "https://example.com/doc.json"},
		{URL: "actors/clinician.json"},
		{Canonical: "https://smart.who.int/anc/StructureDefinition/anc-contact"},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = resolve.DetermineKind(sources[i%len(sources)])
	}
}

func BenchmarkValidateSource(b *testing.B) {
	source := core.ComponentSource{Canonical: "https://smart.who.int/anc/StructureDefinition/anc-contact"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = resolve.ValidateSource(source)
	}
}

func BenchmarkDocumentMarshal(b *testing.B) {
	ctx := context.Background()
	dak, err := dakit.New(benchRepo, gateway.NewMemory())
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}

	personas, _ := dak.Component(dakit.Personas)
	for i := 0; i < 50; i++ {
		if err := personas.AddSource(ctx, dakit.ComponentSource{URL: "actors/persona-" + strconv.Itoa(i) + ".json"}); err != nil {
			b.Fatalf("AddSource failed: %v", err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = json.Marshal(dak)
	}
}

func BenchmarkRetrieveAll_Inline(b *testing.B) {
	ctx := context.Background()
	dak, err := dakit.New(benchRepo, gateway.NewMemory())
	if err != nil {
		b.Fatalf("New failed: %v", err)
	}

	indicators, _ := dak.Component(dakit.Indicators)
	for i := 0; i < 20; i++ {
		if err := indicators.AddSource(ctx, dakit.ComponentSource{
			Data: map[string]any{"id": "anc-" + strconv.Itoa(i)},
		}); err != nil {
			b.Fatalf("AddSource failed: %v", err)
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = indicators.RetrieveAll(ctx)
	}
}

func BenchmarkResolveCached_Parallel(b *testing.B) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "anc-contact"}`))
	}))
	defer server.Close()

	r := resolve.New()
	source := core.ComponentSource{Canonical: server.URL + "/anc-contact"}
	ctx := context.Background()

	if _, err := r.Resolve(ctx, source, benchRepo); err != nil {
		b.Fatalf("warmup failed: %v", err)
	}

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = r.Resolve(ctx, source, benchRepo)
		}
	})
}
