package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/example/pawlog/internal/models"
	"github.com/example/pawlog/internal/ports/secondary"
)

// Ensure mocks implement the interfaces
var (
	_ secondary.ProfileRepository  = (*mockProfileRepo)(nil)
	_ secondary.LogRepository      = (*mockLogRepo)(nil)
	_ secondary.AnalysisRepository = (*mockAnalysisRepo)(nil)
	_ secondary.PhotoUploader      = (*mockUploader)(nil)
	_ secondary.StoolAnalyzer      = (*mockAnalyzer)(nil)
)

// mockProfileRepo implements secondary.ProfileRepository for testing.
type mockProfileRepo struct {
	profile   *models.DogProfile
	nextID    int64
	createErr error
	getErr    error
	updateErr error
	deleteErr error
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{nextID: 1}
}

func (m *mockProfileRepo) Get(ctx context.Context) (*models.DogProfile, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if m.profile == nil {
		return nil, secondary.ErrNotFound
	}
	p := *m.profile
	return &p, nil
}

func (m *mockProfileRepo) Create(ctx context.Context, p *models.DogProfile) (int64, error) {
	if m.createErr != nil {
		return 0, m.createErr
	}
	if m.profile != nil {
		return 0, secondary.ErrProfileExists
	}
	stored := *p
	stored.ID = m.nextID
	m.profile = &stored
	return stored.ID, nil
}

func (m *mockProfileRepo) Update(ctx context.Context, p *models.DogProfile) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if m.profile == nil {
		return secondary.ErrNotFound
	}
	stored := *p
	m.profile = &stored
	return nil
}

func (m *mockProfileRepo) Delete(ctx context.Context) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.profile = nil
	return nil
}

// mockLogRepo implements secondary.LogRepository for testing. Logs live in a
// map; the analysed-per-month count and the purge result are injected rather
// than derived, each test sets what its scenario needs.
type mockLogRepo struct {
	logs map[string]*models.PooLog

	createErr error
	updateErr error

	count    int
	countErr error

	purgeCount  int
	purgeErr    error
	purgeCutoff time.Time

	deleteAllCalled bool
}

func newMockLogRepo() *mockLogRepo {
	return &mockLogRepo{logs: make(map[string]*models.PooLog)}
}

func (m *mockLogRepo) Create(ctx context.Context, log *models.PooLog) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, ok := m.logs[log.ID]; ok {
		return nil
	}
	stored := *log
	stored.Analysis = nil
	m.logs[log.ID] = &stored
	return nil
}

func (m *mockLogRepo) GetByID(ctx context.Context, id string) (*models.PooLog, error) {
	log, ok := m.logs[id]
	if !ok {
		return nil, secondary.ErrNotFound
	}
	copied := *log
	return &copied, nil
}

func (m *mockLogRepo) ListRecent(ctx context.Context, limit int) ([]*models.PooLog, error) {
	var out []*models.PooLog
	for _, log := range m.logs {
		copied := *log
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *mockLogRepo) UpdateManualFields(ctx context.Context, id string, d models.LogDraft) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	log, ok := m.logs[id]
	if !ok {
		return secondary.ErrNotFound
	}
	log.ConsistencyScore = d.ConsistencyScore
	log.Color = d.Color
	log.MucusPresent = d.MucusPresent
	log.BloodVisible = d.BloodVisible
	log.WormsVisible = d.WormsVisible
	log.Notes = d.Notes
	return nil
}

func (m *mockLogRepo) Delete(ctx context.Context, id string) error {
	delete(m.logs, id)
	return nil
}

func (m *mockLogRepo) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int, error) {
	m.purgeCutoff = cutoff
	if m.purgeErr != nil {
		return 0, m.purgeErr
	}
	return m.purgeCount, nil
}

func (m *mockLogRepo) CountAnalysedInMonth(ctx context.Context, monthKey string) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	return m.count, nil
}

func (m *mockLogRepo) DeleteAll(ctx context.Context) error {
	m.deleteAllCalled = true
	m.logs = make(map[string]*models.PooLog)
	return nil
}

// mockAnalysisRepo implements secondary.AnalysisRepository for testing. When
// parent is set, Create enforces the log-must-exist rule the way the real
// store does.
type mockAnalysisRepo struct {
	analyses  map[string]*models.AIAnalysis
	parent    *mockLogRepo
	createErr error

	deleteAllCalled bool
}

func newMockAnalysisRepo(parent *mockLogRepo) *mockAnalysisRepo {
	return &mockAnalysisRepo{analyses: make(map[string]*models.AIAnalysis), parent: parent}
}

func (m *mockAnalysisRepo) Create(ctx context.Context, a *models.AIAnalysis) error {
	if m.createErr != nil {
		return m.createErr
	}
	if m.parent != nil {
		if _, ok := m.parent.logs[a.PooLogID]; !ok {
			return fmt.Errorf("log %s: %w", a.PooLogID, secondary.ErrForeignKeyViolation)
		}
	}
	stored := *a
	m.analyses[a.PooLogID] = &stored
	return nil
}

func (m *mockAnalysisRepo) GetByLogID(ctx context.Context, logID string) (*models.AIAnalysis, error) {
	a, ok := m.analyses[logID]
	if !ok {
		return nil, secondary.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (m *mockAnalysisRepo) DeleteByLogID(ctx context.Context, logID string) error {
	delete(m.analyses, logID)
	return nil
}

func (m *mockAnalysisRepo) DeleteAll(ctx context.Context) error {
	m.deleteAllCalled = true
	m.analyses = make(map[string]*models.AIAnalysis)
	return nil
}

// mockUploader implements secondary.PhotoUploader for testing.
type mockUploader struct {
	publicRef string
	err       error
	calls     int
}

func (m *mockUploader) Upload(ctx context.Context, localRef string) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	return m.publicRef, nil
}

// mockAnalyzer implements secondary.StoolAnalyzer for testing.
type mockAnalyzer struct {
	result      *models.AnalysisResult
	err         error
	calls       int
	gotPhotoURL string
}

func (m *mockAnalyzer) Analyze(ctx context.Context, photoURL string, draft models.LogDraft) (*models.AnalysisResult, error) {
	m.calls++
	m.gotPhotoURL = photoURL
	if m.err != nil {
		return nil, m.err
	}
	if m.result == nil {
		return nil, nil
	}
	copied := *m.result
	return &copied, nil
}

// logEnv bundles a LogService wired to mocks with a deterministic clock and
// id sequence.
type logEnv struct {
	logs     *mockLogRepo
	analyses *mockAnalysisRepo
	uploader *mockUploader
	analyzer *mockAnalyzer
	meter    *CreditMeter
	svc      *LogServiceImpl
}

func testTime() time.Time {
	return time.Date(2026, 8, 15, 10, 0, 0, 0, time.UTC)
}

func newLogEnv() *logEnv {
	logs := newMockLogRepo()
	analyses := newMockAnalysisRepo(logs)
	uploader := &mockUploader{publicRef: "https://storage.example.com/object/public/poo-photos/p.jpg"}
	analyzer := &mockAnalyzer{result: healthyResult()}
	meter := NewCreditMeter(logs, 30, zerolog.Nop())

	svc := NewLogService(logs, analyses, uploader, analyzer, meter, 0.85, zerolog.Nop())
	svc.now = testTime
	n := 0
	svc.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}

	return &logEnv{logs: logs, analyses: analyses, uploader: uploader, analyzer: analyzer, meter: meter, svc: svc}
}

func photoDraft() models.LogDraft {
	return models.LogDraft{
		ConsistencyScore: 3,
		Color:            models.ColorNormalBrown,
		Notes:            "after morning walk",
		PhotoURI:         "/tmp/photo.jpg",
	}
}

func manualDraft() models.LogDraft {
	d := photoDraft()
	d.PhotoURI = ""
	return d
}

func healthyResult() *models.AnalysisResult {
	return &models.AnalysisResult{
		Classification:            "Healthy, Well-Formed",
		HealthScore:               85,
		GutHealthSummary:          "No concerns.",
		Shape:                     models.TraitAnalysis{Description: "log-shaped"},
		Texture:                   models.TraitAnalysis{Description: "firm"},
		Color:                     models.TraitAnalysis{Description: "brown"},
		Moisture:                  models.TraitAnalysis{Description: "moist"},
		ParasiteCheck:             models.ParasiteCheck{VisibleSigns: "none"},
		FlagsAndObservations:      []string{},
		ActionableRecommendations: []string{"maintain diet"},
		ConfidenceScore:           0.95,
		Hydration:                 models.HydrationEstimate{Percent: 70, Interpretation: "well hydrated"},
	}
}
