package server

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"github.com/henryli127-lang/volca/internal/config"
	"github.com/henryli127-lang/volca/internal/domain"
	"github.com/henryli127-lang/volca/internal/study"
)

type mockProfileRepo struct {
	profiles map[uuid.UUID]*domain.Profile
	err      error
}

func newMockProfileRepo() *mockProfileRepo {
	return &mockProfileRepo{profiles: make(map[uuid.UUID]*domain.Profile)}
}

func (m *mockProfileRepo) Create(ctx context.Context, nickname string, birthYear int, avatar string) (*domain.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	p := &domain.Profile{
		ID:        uuid.New(),
		Nickname:  nickname,
		BirthYear: birthYear,
		Avatar:    avatar,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.profiles[p.ID] = p
	return p, nil
}

func (m *mockProfileRepo) GetByID(ctx context.Context, profileID uuid.UUID) (*domain.Profile, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.profiles[profileID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p, nil
}

func (m *mockProfileRepo) Update(ctx context.Context, profileID uuid.UUID, nickname string, birthYear int, avatar string) (*domain.Profile, error) {
	p, ok := m.profiles[profileID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	p.Nickname, p.BirthYear, p.Avatar = nickname, birthYear, avatar
	p.UpdatedAt = time.Now()
	return p, nil
}

func (m *mockProfileRepo) Delete(ctx context.Context, profileID uuid.UUID) error {
	if _, ok := m.profiles[profileID]; !ok {
		return domain.ErrProfileNotFound
	}
	delete(m.profiles, profileID)
	return nil
}

type mockWordRepo struct {
	byText    map[string]*domain.Word
	imageURLs map[uuid.UUID]string
}

func newMockWordRepo() *mockWordRepo {
	return &mockWordRepo{byText: make(map[string]*domain.Word), imageURLs: make(map[uuid.UUID]string)}
}

func (m *mockWordRepo) Upsert(ctx context.Context, entry domain.WordEntry, language string) (*domain.Word, error) {
	w := &domain.Word{ID: uuid.New(), Text: entry.Text, Language: language, Definition: entry.Definition}
	m.byText[entry.Text] = w
	return w, nil
}

func (m *mockWordRepo) GetByText(ctx context.Context, text, language string) (*domain.Word, error) {
	w, ok := m.byText[text]
	if !ok {
		return nil, domain.ErrWordNotFound
	}
	return w, nil
}

func (m *mockWordRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Word, error) {
	return nil, nil
}

func (m *mockWordRepo) SetImageURL(ctx context.Context, wordID uuid.UUID, imageURL string) error {
	m.imageURLs[wordID] = imageURL
	return nil
}

type mockArticleRepo struct {
	articles map[uuid.UUID]*domain.Article
	err      error
}

func newMockArticleRepo() *mockArticleRepo {
	return &mockArticleRepo{articles: make(map[uuid.UUID]*domain.Article)}
}

func (m *mockArticleRepo) Create(ctx context.Context, article *domain.Article) (*domain.Article, error) {
	if m.err != nil {
		return nil, m.err
	}
	article.ID = uuid.New()
	article.CreatedAt = time.Now()
	m.articles[article.ID] = article
	return article, nil
}

func (m *mockArticleRepo) GetByID(ctx context.Context, articleID uuid.UUID) (*domain.Article, error) {
	a, ok := m.articles[articleID]
	if !ok {
		return nil, domain.ErrArticleNotFound
	}
	return a, nil
}

func (m *mockArticleRepo) ListByProfile(ctx context.Context, profileID uuid.UUID, limit int) ([]domain.Article, error) {
	var out []domain.Article
	for _, a := range m.articles {
		if a.ProfileID == profileID {
			out = append(out, *a)
		}
	}
	return out, nil
}

type mockLookupService struct {
	entry *domain.WordEntry
	err   error
}

func (m *mockLookupService) Lookup(ctx context.Context, text, language string) (*domain.WordEntry, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.entry, nil
}

type mockTranslator struct {
	translation string
	err         error
}

func (m *mockTranslator) Translate(ctx context.Context, text, source, target string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return m.translation, nil
}

type mockSynthesizer struct {
	audio []byte
	err   error
}

func (m *mockSynthesizer) Synthesize(ctx context.Context, text, voice string) ([]byte, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.audio, nil
}

type mockGenerator struct {
	story   *domain.Story
	options *domain.QuizOptions
	image   *domain.GeneratedImage
	err     error
}

func (m *mockGenerator) GenerateStory(ctx context.Context, words []string, level string) (*domain.Story, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.story, nil
}

func (m *mockGenerator) GenerateOptions(ctx context.Context, word, definition string, count int) (*domain.QuizOptions, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.options, nil
}

func (m *mockGenerator) GenerateImage(ctx context.Context, prompt string) (*domain.GeneratedImage, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.image, nil
}

type mockProgressRepo struct {
	byKey map[string]*domain.Progress
	due   []domain.DueWord
}

func newMockProgressRepo() *mockProgressRepo {
	return &mockProgressRepo{byKey: make(map[string]*domain.Progress)}
}

func progressKey(profileID, wordID uuid.UUID) string {
	return profileID.String() + "/" + wordID.String()
}

func (m *mockProgressRepo) Get(ctx context.Context, profileID, wordID uuid.UUID) (*domain.Progress, error) {
	p, ok := m.byKey[progressKey(profileID, wordID)]
	if !ok {
		return nil, domain.ErrProgressNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *mockProgressRepo) Upsert(ctx context.Context, p *domain.Progress) error {
	cp := *p
	m.byKey[progressKey(p.ProfileID, p.WordID)] = &cp
	return nil
}

func (m *mockProgressRepo) ListDue(ctx context.Context, profileID uuid.UUID, now time.Time, limit int) ([]domain.DueWord, error) {
	return m.due, nil
}

type mockStudyLogRepo struct {
	appended []*domain.StudyLog
}

func (m *mockStudyLogRepo) Append(ctx context.Context, log *domain.StudyLog) error {
	m.appended = append(m.appended, log)
	return nil
}

func (m *mockStudyLogRepo) CountByDay(ctx context.Context, day time.Time) (map[uuid.UUID]domain.DayCounts, error) {
	return nil, nil
}

type mockStatsRepo struct {
	stats []domain.StudyStats
}

func (m *mockStatsRepo) Upsert(ctx context.Context, stats *domain.StudyStats) error { return nil }

func (m *mockStatsRepo) ListByProfile(ctx context.Context, profileID uuid.UUID, days int) ([]domain.StudyStats, error) {
	return m.stats, nil
}

func (m *mockStatsRepo) GetStreak(ctx context.Context, profileID uuid.UUID, before time.Time) (int, error) {
	return 0, nil
}

// testDeps bundles all the mocks a handler test might reach into.
type testDeps struct {
	profiles    *mockProfileRepo
	words       *mockWordRepo
	articles    *mockArticleRepo
	lookup      *mockLookupService
	translator  *mockTranslator
	synthesizer *mockSynthesizer
	generator   *mockGenerator
	progress    *mockProgressRepo
	logs        *mockStudyLogRepo
	stats       *mockStatsRepo
}

func newTestServer() (*Server, *testDeps) {
	deps := &testDeps{
		profiles:    newMockProfileRepo(),
		words:       newMockWordRepo(),
		articles:    newMockArticleRepo(),
		lookup:      &mockLookupService{},
		translator:  &mockTranslator{},
		synthesizer: &mockSynthesizer{},
		generator:   &mockGenerator{},
		progress:    newMockProgressRepo(),
		logs:        &mockStudyLogRepo{},
		stats:       &mockStatsRepo{},
	}

	cfg := &config.Config{
		Port:            "0",
		TranslateTarget: "zh-CN",
	}

	clock := clockwork.NewFakeClockAt(time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC))
	studyService := study.NewService(deps.progress, deps.logs, deps.stats, clock)

	srv := NewServer(cfg, Deps{
		Profiles:    deps.profiles,
		Words:       deps.words,
		Articles:    deps.articles,
		Lookup:      deps.lookup,
		Translator:  deps.translator,
		Synthesizer: deps.synthesizer,
		Generator:   deps.generator,
		Study:       studyService,
		Clock:       clock,
	})

	return srv, deps
}
