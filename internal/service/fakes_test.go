package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/timmy/solarmatch/internal/domain"
)

type fakeJobs struct {
	mu         sync.Mutex
	jobs       map[int64]*domain.Job
	statusSets int
}

func newFakeJobs(jobs ...*domain.Job) *fakeJobs {
	f := &fakeJobs{jobs: make(map[int64]*domain.Job)}
	for _, j := range jobs {
		f.jobs[j.ID] = j
	}
	return f
}

func (f *fakeJobs) GetJob(_ context.Context, id int64) (*domain.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.jobs[id]
	if !ok {
		return nil, domain.NotFound("job", id)
	}
	cp := *j
	return &cp, nil
}

func (f *fakeJobs) SetJobStatus(_ context.Context, id int64, status domain.JobStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	j, ok := f.jobs[id]
	if !ok {
		return domain.NotFound("job", id)
	}
	j.Status = status
	f.statusSets++
	return nil
}

func (f *fakeJobs) ListJobsByStatus(_ context.Context, status domain.JobStatus, limit int) ([]domain.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Job
	for _, j := range f.jobs {
		if j.Status == status {
			out = append(out, *j)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID < out[b].ID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeJobs) status(id int64) domain.JobStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.jobs[id].Status
}

type fakeProfessionals struct {
	pool []domain.Professional
}

func (f *fakeProfessionals) GetProfessionalPool(_ context.Context, verifiedOnly bool) ([]domain.Professional, error) {
	var out []domain.Professional
	for _, p := range f.pool {
		if verifiedOnly && !p.IsVerified {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProfessionals) ProfessionalExists(_ context.Context, id int64) (bool, error) {
	for _, p := range f.pool {
		if p.ID == id {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProfessionals) GetProfessionalsByIDs(_ context.Context, ids []int64) (map[int64]*domain.Professional, error) {
	out := make(map[int64]*domain.Professional)
	for _, id := range ids {
		for i := range f.pool {
			if f.pool[i].ID == id {
				out[id] = &f.pool[i]
			}
		}
	}
	return out, nil
}

type pair struct{ job, pro int64 }

// fakeMatches enforces the (job, professional) uniqueness the database index provides.
type fakeMatches struct {
	mu      sync.Mutex
	nextID  int64
	byID    map[int64]*domain.Match
	byPair  map[pair]int64
	saveErr error
	// failOnSave makes the n-th SaveMatch call (1-based) fail with saveErr.
	failOnSave int
	saves      int
	// existsBlind makes MatchExists always report false, so duplicates reach SaveMatch.
	existsBlind bool
}

func newFakeMatches() *fakeMatches {
	return &fakeMatches{byID: make(map[int64]*domain.Match), byPair: make(map[pair]int64)}
}

func (f *fakeMatches) MatchExists(_ context.Context, jobID, professionalID int64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.existsBlind {
		return false, nil
	}
	_, ok := f.byPair[pair{jobID, professionalID}]
	return ok, nil
}

func (f *fakeMatches) SaveMatch(_ context.Context, m *domain.Match) (*domain.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.saveErr != nil && (f.failOnSave == 0 || f.saves == f.failOnSave) {
		return nil, f.saveErr
	}
	key := pair{m.JobID, m.ProfessionalID}
	if _, ok := f.byPair[key]; ok {
		return nil, domain.ErrAlreadyMatched
	}
	f.nextID++
	cp := *m
	cp.ID = f.nextID
	cp.CreatedAt = time.Now()
	f.byID[cp.ID] = &cp
	f.byPair[key] = cp.ID
	out := cp
	return &out, nil
}

func (f *fakeMatches) FindMatchesForJob(_ context.Context, jobID int64) ([]domain.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Match
	for _, m := range f.byID {
		if m.JobID == jobID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(a, b int) bool {
		if out[a].MatchScore != out[b].MatchScore {
			return out[a].MatchScore > out[b].MatchScore
		}
		return out[a].ID < out[b].ID
	})
	return out, nil
}

func (f *fakeMatches) FindMatchesForProfessional(_ context.Context, professionalID int64) ([]domain.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Match
	for _, m := range f.byID {
		if m.ProfessionalID == professionalID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ID > out[b].ID })
	return out, nil
}

func (f *fakeMatches) GetMatch(_ context.Context, id int64) (*domain.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.byID[id]
	if !ok {
		return nil, domain.NotFound("match", id)
	}
	cp := *m
	return &cp, nil
}

func (f *fakeMatches) UpdateMatchStatus(_ context.Context, id int64, status domain.MatchStatus) (*domain.Match, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.byID[id]
	if !ok {
		return nil, domain.NotFound("match", id)
	}
	m.Status = status
	cp := *m
	return &cp, nil
}

func (f *fakeMatches) DeleteMatch(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, ok := f.byID[id]
	if !ok {
		return domain.NotFound("match", id)
	}
	delete(f.byPair, pair{m.JobID, m.ProfessionalID})
	delete(f.byID, id)
	return nil
}

func (f *fakeMatches) count(jobID int64) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, m := range f.byID {
		if m.JobID == jobID {
			n++
		}
	}
	return n
}

// memStorage is an in-memory storage.ObjectStorage.
type memStorage struct {
	mu        sync.Mutex
	objects   map[string][]byte
	uploadErr error
}

func newMemStorage() *memStorage {
	return &memStorage{objects: make(map[string][]byte)}
}

func (m *memStorage) Upload(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	if m.uploadErr != nil {
		return m.uploadErr
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = body
	return nil
}

func (m *memStorage) Download(_ context.Context, key string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	body, ok := m.objects[key]
	if !ok {
		return nil, errors.New("no such key")
	}
	return io.NopCloser(bytes.NewReader(body)), nil
}

func (m *memStorage) Exists(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[key]
	return ok, nil
}

func (m *memStorage) keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.objects))
	for k := range m.objects {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
