package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-cmsfront/pkg/content"
)

type countingLoader struct {
	calls int
	err   error
}

func (l *countingLoader) Load(_ context.Context, src content.Source) (content.Document, error) {
	l.calls++
	if l.err != nil {
		return content.Document{}, l.err
	}
	return content.NewDocument(src, []byte(`{"locale":"en"}`))
}

func TestMemory_Expiry(t *testing.T) {
	now := time.Date(2020, 6, 12, 0, 0, 0, 0, time.UTC)
	mem := NewMemory()
	mem.now = func() time.Time { return now }

	ctx := context.Background()
	if err := mem.Set(ctx, "k", []byte("v"), time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}
	if value, ok, _ := mem.Get(ctx, "k"); !ok || string(value) != "v" {
		t.Fatalf("expected hit, got %q %v", value, ok)
	}

	now = now.Add(time.Minute)
	if _, ok, _ := mem.Get(ctx, "k"); ok {
		t.Fatal("expected entry to expire")
	}
}

func TestLoader_ReadThrough(t *testing.T) {
	next := &countingLoader{}
	l := NewLoader(next, NewMemory(), time.Hour)
	src := content.SourceFromURL("https://cms.example.org/bundle.json")

	for i := 0; i < 3; i++ {
		doc, err := l.Load(context.Background(), src)
		if err != nil {
			t.Fatalf("load %d: %v", i, err)
		}
		if string(doc.Raw()) != `{"locale":"en"}` {
			t.Fatalf("unexpected payload %q", doc.Raw())
		}
	}
	if next.calls != 1 {
		t.Fatalf("expected a single upstream load, got %d", next.calls)
	}
}

func TestLoader_PropagatesErrors(t *testing.T) {
	next := &countingLoader{err: errors.New("boom")}
	l := NewLoader(next, NewMemory(), time.Hour)
	if _, err := l.Load(context.Background(), content.SourceFromFS("x.json")); err == nil {
		t.Fatal("expected upstream error")
	}
}

func TestLoader_NilCachePassesThrough(t *testing.T) {
	next := &countingLoader{}
	l := NewLoader(next, nil, 0)
	for i := 0; i < 2; i++ {
		if _, err := l.Load(context.Background(), content.SourceFromFS("x.json")); err != nil {
			t.Fatalf("load: %v", err)
		}
	}
	if next.calls != 2 {
		t.Fatalf("expected every load to hit upstream, got %d", next.calls)
	}
}
