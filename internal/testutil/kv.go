package testutil

import (
	"context"
	"sync"
	"sync/atomic"
)

// MemoryKV is an in-memory key-value provider.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string]string
	sets atomic.Int32
}

// NewMemoryKV creates an empty MemoryKV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.sets.Add(1)
	return nil
}

func (m *MemoryKV) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Raw returns the stored value for key, or "" when absent.
func (m *MemoryKV) Raw(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.data[key]
}

// Put seeds a raw value without counting it as a write.
func (m *MemoryKV) Put(key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
}

// SetCalls returns how many times Set has been called.
func (m *MemoryKV) SetCalls() int {
	return int(m.sets.Load())
}

// FailingKV wraps a MemoryKV and fails selected operations.
// SetFailOn and GetFailOn count calls starting at 1; zero never fails.
type FailingKV struct {
	*MemoryKV
	SetFailOn int32
	GetFailOn int32
	Err       error

	setCount atomic.Int32
	getCount atomic.Int32
}

// NewFailingKV creates a FailingKV returning err from failed operations.
func NewFailingKV(err error) *FailingKV {
	return &FailingKV{MemoryKV: NewMemoryKV(), Err: err}
}

func (f *FailingKV) Get(ctx context.Context, key string) (string, bool, error) {
	if n := f.getCount.Add(1); n == f.GetFailOn {
		return "", false, f.Err
	}
	return f.MemoryKV.Get(ctx, key)
}

func (f *FailingKV) Set(ctx context.Context, key, value string) error {
	if n := f.setCount.Add(1); n == f.SetFailOn {
		return f.Err
	}
	return f.MemoryKV.Set(ctx, key, value)
}

