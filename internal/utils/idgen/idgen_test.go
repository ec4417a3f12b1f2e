package idgen

import (
	"strings"
	"sync"
	"testing"

	"github.com/oklog/ulid/v2"
)

func TestNew(t *testing.T) {
	id := New(TemplatePrefix)

	if !strings.HasPrefix(id, "tpl_") {
		t.Fatalf("New() = %v, want prefix tpl_", id)
	}
	// prefix + underscore + 26 ULID characters
	if want := len(TemplatePrefix) + 1 + 26; len(id) != want {
		t.Fatalf("New() length = %d, want %d", len(id), want)
	}
	if id != strings.ToLower(id) {
		t.Fatalf("New() = %v, want lowercase", id)
	}
	raw := strings.ToUpper(strings.TrimPrefix(id, TemplatePrefix+"_"))
	if _, err := ulid.ParseStrict(raw); err != nil {
		t.Fatalf("New() = %q is not a ULID: %v", id, err)
	}
}

func TestNewIsMonotonic(t *testing.T) {
	prev := New(TemplatePrefix)
	for i := 0; i < 1000; i++ {
		next := New(TemplatePrefix)
		if next <= prev {
			t.Fatalf("ids not increasing: %s then %s", prev, next)
		}
		prev = next
	}
}

func TestNewConcurrentUnique(t *testing.T) {
	const n = 200
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = make(map[string]struct{}, n)
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id := New(TemplatePrefix)
			mu.Lock()
			seen[id] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()

	if len(seen) != n {
		t.Fatalf("got %d unique ids, want %d", len(seen), n)
	}
}
