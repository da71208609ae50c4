package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/tnqbao/gau-bakery-service/entity"
	"github.com/tnqbao/gau-bakery-service/repository"
)

type nopLogger struct{}

func (nopLogger) InfoWithContextf(context.Context, string, ...interface{}) {}
func (nopLogger) WarningWithContextf(context.Context, string, ...interface{}) {}
func (nopLogger) ErrorWithContextf(context.Context, error, string, ...interface{}) {}

type fakeAssets struct {
	mu        sync.Mutex
	files     map[string][]byte
	modTimes  map[string]time.Time
	seq       int
	saveErr   error
	deleteErr error
	deleted   []string
}

func newFakeAssets() *fakeAssets {
	return &fakeAssets{files: map[string][]byte{}, modTimes: map[string]time.Time{}}
}

func (f *fakeAssets) Save(_ context.Context, data []byte, originalName, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return "", f.saveErr
	}
	f.seq++
	name := fmt.Sprintf("%d-%s", f.seq, originalName)
	f.files[name] = data
	f.modTimes[name] = time.Now()
	return name, nil
}

func (f *fakeAssets) Delete(_ context.Context, filename string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.files, filename)
	f.deleted = append(f.deleted, filename)
	return nil
}

func (f *fakeAssets) List(context.Context) ([]entity.Asset, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]entity.Asset, 0, len(f.files))
	for name, data := range f.files {
		out = append(out, entity.Asset{Name: name, Size: int64(len(data)), ModTime: f.modTimes[name]})
	}
	return out, nil
}

func (f *fakeAssets) has(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.files[name]
	return ok
}

func (f *fakeAssets) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.files)
}

type fakeItemStore struct {
	rows      map[int64]entity.Item
	nextID    int64
	createErr error
	updateErr error
	deleteErr error
	listCalls int
	// afterList runs once the snapshot is taken, before ListAll returns.
	afterList func()
}

func newFakeItemStore() *fakeItemStore {
	return &fakeItemStore{rows: map[int64]entity.Item{}}
}

func (s *fakeItemStore) Create(_ context.Context, item *entity.Item) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.nextID++
	item.ID = s.nextID
	item.CreatedAt = time.Now()
	item.UpdatedAt = item.CreatedAt
	s.rows[item.ID] = *item
	return nil
}

func (s *fakeItemStore) FindByID(_ context.Context, id int64) (*entity.Item, error) {
	item, ok := s.rows[id]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	return &item, nil
}

func (s *fakeItemStore) Update(_ context.Context, item *entity.Item) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	if _, ok := s.rows[item.ID]; !ok {
		return repository.ErrRecordNotFound
	}
	item.UpdatedAt = time.Now()
	s.rows[item.ID] = *item
	return nil
}

func (s *fakeItemStore) Delete(_ context.Context, id int64) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	if _, ok := s.rows[id]; !ok {
		return repository.ErrRecordNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *fakeItemStore) ListAll(context.Context) ([]entity.Item, error) {
	s.listCalls++
	out := make([]entity.Item, 0, len(s.rows))
	for _, item := range s.rows {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if hook := s.afterList; hook != nil {
		s.afterList = nil
		hook()
	}
	return out, nil
}

func (s *fakeItemStore) ListImages(context.Context) ([]string, error) {
	out := make([]string, 0, len(s.rows))
	for _, item := range s.rows {
		out = append(out, item.Image)
	}
	return out, nil
}

type fakeBakeryStore struct {
	rows      map[int64]entity.Bakery
	nextID    int64
	afterList func()
}

func newFakeBakeryStore() *fakeBakeryStore {
	return &fakeBakeryStore{rows: map[int64]entity.Bakery{}}
}

func (s *fakeBakeryStore) Create(_ context.Context, bakery *entity.Bakery) error {
	s.nextID++
	bakery.ID = s.nextID
	s.rows[bakery.ID] = *bakery
	return nil
}

func (s *fakeBakeryStore) FindByID(_ context.Context, id int64) (*entity.Bakery, error) {
	bakery, ok := s.rows[id]
	if !ok {
		return nil, repository.ErrRecordNotFound
	}
	return &bakery, nil
}

func (s *fakeBakeryStore) Update(_ context.Context, bakery *entity.Bakery) error {
	if _, ok := s.rows[bakery.ID]; !ok {
		return repository.ErrRecordNotFound
	}
	s.rows[bakery.ID] = *bakery
	return nil
}

func (s *fakeBakeryStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.rows[id]; !ok {
		return repository.ErrRecordNotFound
	}
	delete(s.rows, id)
	return nil
}

func (s *fakeBakeryStore) ListAll(context.Context) ([]entity.Bakery, error) {
	out := make([]entity.Bakery, 0, len(s.rows))
	for _, bakery := range s.rows {
		out = append(out, bakery)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if hook := s.afterList; hook != nil {
		s.afterList = nil
		hook()
	}
	return out, nil
}

type fakeCache struct {
	data     map[string][]byte
	counters map[string]int64
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}, counters: map[string]int64{}}
}

func (c *fakeCache) Get(_ context.Context, key string, dest interface{}) error {
	raw, ok := c.data[key]
	if !ok {
		return errors.New("miss")
	}
	return json.Unmarshal(raw, dest)
}

func (c *fakeCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func (c *fakeCache) Counter(_ context.Context, key string) (int64, error) {
	return c.counters[key], nil
}

func (c *fakeCache) Incr(_ context.Context, key string) (int64, error) {
	c.counters[key]++
	return c.counters[key], nil
}

type fakeQueue struct {
	published []string
}

func (q *fakeQueue) PublishAssetCleanup(_ context.Context, filename, _ string) error {
	q.published = append(q.published, filename)
	return nil
}
