package id

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestGenerate(t *testing.T) {
	gen := NewGenerator()

	id1 := gen.Generate()
	id2 := gen.Generate()

	if id1.String() == id2.String() {
		t.Error("Generated IDs should be unique")
	}
}

func TestGenerateString(t *testing.T) {
	gen := NewGenerator()

	id := gen.GenerateString()

	if len(id) != 26 {
		t.Errorf("ULID should be 26 characters, got %d", len(id))
	}
}

func TestGenerateWithPrefix(t *testing.T) {
	gen := NewGenerator()

	tests := []struct {
		prefix string
	}{
		{"task"},
		{"ent"},
	}

	for _, tt := range tests {
		id := gen.GenerateWithPrefix(tt.prefix)

		if !strings.HasPrefix(id, tt.prefix+"_") {
			t.Errorf("ID should start with '%s_', got: %s", tt.prefix, id)
		}

		parts := strings.Split(id, "_")
		if len(parts) != 2 {
			t.Errorf("Prefixed ID should have format 'prefix_ulid', got: %s", id)
		}

		if !IsValid(parts[1]) {
			t.Errorf("ULID part should be valid: %s", parts[1])
		}
	}
}

func TestTypedIDGeneration(t *testing.T) {
	taskID := NewTaskID()
	entryID := NewEntryID()

	if !strings.HasPrefix(string(taskID), "task_") {
		t.Errorf("TaskID should start with 'task_', got: %s", taskID)
	}

	if !strings.HasPrefix(string(entryID), "ent_") {
		t.Errorf("EntryID should start with 'ent_', got: %s", entryID)
	}
}

func TestIsValid(t *testing.T) {
	gen := NewGenerator()

	if !IsValid(gen.GenerateString()) {
		t.Error("Fresh ULID should be valid")
	}

	if IsValid("not-a-ulid") {
		t.Error("Garbage should not validate")
	}
}

func TestTypedIsValid(t *testing.T) {
	if !NewTaskID().IsValid() {
		t.Error("Fresh TaskID should be valid")
	}

	if !NewEntryID().IsValid() {
		t.Error("Fresh EntryID should be valid")
	}

	if TaskID("task_junk").IsValid() {
		t.Error("Bad ULID payload should not validate")
	}

	if TaskID(NewEntryID()).IsValid() {
		t.Error("Wrong prefix should not validate")
	}
}

func TestTaskIDTimestamp(t *testing.T) {
	before := time.Now().Add(-time.Second)
	taskID := NewTaskID()
	after := time.Now().Add(time.Second)

	ts, err := taskID.Timestamp()
	if err != nil {
		t.Fatalf("Timestamp failed: %v", err)
	}

	if ts.Before(before) || ts.After(after) {
		t.Errorf("Embedded timestamp %v outside [%v, %v]", ts, before, after)
	}
}

func TestTimestamp(t *testing.T) {
	gen := NewGenerator()

	before := time.Now().Add(-time.Second)
	raw := gen.GenerateString()
	after := time.Now().Add(time.Second)

	ts, err := Timestamp(raw)
	if err != nil {
		t.Fatalf("Timestamp failed: %v", err)
	}

	if ts.Before(before) || ts.After(after) {
		t.Errorf("Embedded timestamp %v outside [%v, %v]", ts, before, after)
	}
}

func TestConcurrentGeneration(t *testing.T) {
	gen := NewGenerator()

	const goroutines = 10
	const perGoroutine = 100

	var mu sync.Mutex
	seen := make(map[string]bool)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				id := gen.GenerateString()
				mu.Lock()
				if seen[id] {
					t.Errorf("Duplicate ID generated: %s", id)
				}
				seen[id] = true
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != goroutines*perGoroutine {
		t.Errorf("Expected %d unique IDs, got %d", goroutines*perGoroutine, len(seen))
	}
}
