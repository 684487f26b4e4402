package services

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/clients/gcs"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/clients/redisstore"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/clients/video"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
	"github.com/vidyarthi-app/vidyarthi-backend/internal/types"
)

func testLogger() *logger.Logger {
	log, err := logger.New("test")
	if err != nil {
		panic(err)
	}
	return log
}

// ---- course repos ----

type fakeCourseMuxRepo struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]*types.CourseMux
	failAll error
}

func newFakeCourseMuxRepo() *fakeCourseMuxRepo {
	return &fakeCourseMuxRepo{rows: map[uuid.UUID]*types.CourseMux{}}
}

func (f *fakeCourseMuxRepo) Create(ctx context.Context, tx *gorm.DB, c *types.CourseMux) (*types.CourseMux, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	f.rows[c.ID] = c
	return c, nil
}

func (f *fakeCourseMuxRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CourseMux, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	return f.rows[id], nil
}

func (f *fakeCourseMuxRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.CourseMux, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	for _, c := range f.rows {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCourseMuxRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.CourseMux, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	out := []*types.CourseMux{}
	for _, c := range f.rows {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

func (f *fakeCourseMuxRepo) ListIDs(ctx context.Context, tx *gorm.DB) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	out := []uuid.UUID{}
	for id := range f.rows {
		out = append(out, id)
	}
	return out, nil
}

func (f *fakeCourseMuxRepo) ListSlugs(ctx context.Context, tx *gorm.DB) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	out := []string{}
	for _, c := range f.rows {
		out = append(out, c.Slug)
	}
	return out, nil
}

func (f *fakeCourseMuxRepo) ExistsByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return false, f.failAll
	}
	_, ok := f.rows[id]
	return ok, nil
}

func (f *fakeCourseMuxRepo) Update(ctx context.Context, tx *gorm.DB, c *types.CourseMux) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	f.rows[c.ID] = c
	return nil
}

func (f *fakeCourseMuxRepo) SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	delete(f.rows, id)
	return nil
}

type fakeCourseVimeoRepo struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]*types.CourseVimeo
	failAll error
}

func newFakeCourseVimeoRepo() *fakeCourseVimeoRepo {
	return &fakeCourseVimeoRepo{rows: map[uuid.UUID]*types.CourseVimeo{}}
}

func (f *fakeCourseVimeoRepo) Create(ctx context.Context, tx *gorm.DB, c *types.CourseVimeo) (*types.CourseVimeo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	c.CreatedAt = time.Now()
	f.rows[c.ID] = c
	return c, nil
}

func (f *fakeCourseVimeoRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CourseVimeo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	return f.rows[id], nil
}

func (f *fakeCourseVimeoRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.CourseVimeo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	for _, c := range f.rows {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCourseVimeoRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.CourseVimeo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	out := []*types.CourseVimeo{}
	for _, c := range f.rows {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Slug < out[j].Slug })
	return out, nil
}

func (f *fakeCourseVimeoRepo) ListIDs(ctx context.Context, tx *gorm.DB) ([]uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	out := []uuid.UUID{}
	for id := range f.rows {
		out = append(out, id)
	}
	return out, nil
}

func (f *fakeCourseVimeoRepo) ListSlugs(ctx context.Context, tx *gorm.DB) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	out := []string{}
	for _, c := range f.rows {
		out = append(out, c.Slug)
	}
	return out, nil
}

func (f *fakeCourseVimeoRepo) ExistsByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return false, f.failAll
	}
	_, ok := f.rows[id]
	return ok, nil
}

func (f *fakeCourseVimeoRepo) Update(ctx context.Context, tx *gorm.DB, c *types.CourseVimeo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	f.rows[c.ID] = c
	return nil
}

func (f *fakeCourseVimeoRepo) SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	delete(f.rows, id)
	return nil
}

type fakeCourseCFRepo struct {
	rows    map[uuid.UUID]*types.CourseCF
	failAll error
}

func newFakeCourseCFRepo() *fakeCourseCFRepo {
	return &fakeCourseCFRepo{rows: map[uuid.UUID]*types.CourseCF{}}
}

func (f *fakeCourseCFRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CourseCF, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	return f.rows[id], nil
}

func (f *fakeCourseCFRepo) GetBySlug(ctx context.Context, tx *gorm.DB, slug string) (*types.CourseCF, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	for _, c := range f.rows {
		if c.Slug == slug {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCourseCFRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.CourseCF, error) {
	if f.failAll != nil {
		return nil, f.failAll
	}
	out := []*types.CourseCF{}
	for _, c := range f.rows {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeCourseCFRepo) SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	if f.failAll != nil {
		return f.failAll
	}
	delete(f.rows, id)
	return nil
}

// ---- lesson repos ----

type fakeLessonMuxRepo struct {
	mu       sync.Mutex
	rows     map[uuid.UUID]*types.CourseLessonMux
	failIDs  map[uuid.UUID]error
	failAll  error
	inFlight int
	maxSeen  int
}

func newFakeLessonMuxRepo() *fakeLessonMuxRepo {
	return &fakeLessonMuxRepo{rows: map[uuid.UUID]*types.CourseLessonMux{}, failIDs: map[uuid.UUID]error{}}
}

func (f *fakeLessonMuxRepo) Create(ctx context.Context, tx *gorm.DB, l *types.CourseLessonMux) (*types.CourseLessonMux, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	f.rows[l.ID] = l
	return l, nil
}

func (f *fakeLessonMuxRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CourseLessonMux, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	return f.rows[id], nil
}

func (f *fakeLessonMuxRepo) GetByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*types.CourseLessonMux, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	out := []*types.CourseLessonMux{}
	for _, l := range f.rows {
		if l.CourseID == courseID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LessonOrder < out[j].LessonOrder })
	return out, nil
}

func (f *fakeLessonMuxRepo) Update(ctx context.Context, tx *gorm.DB, l *types.CourseLessonMux) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	f.rows[l.ID] = l
	return nil
}

func (f *fakeLessonMuxRepo) UpdateOrder(ctx context.Context, tx *gorm.DB, id uuid.UUID, order int) (int64, error) {
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxSeen {
		f.maxSeen = f.inFlight
	}
	f.mu.Unlock()

	// Let concurrent calls overlap so maxSeen observes real parallelism.
	time.Sleep(2 * time.Millisecond)

	f.mu.Lock()
	defer func() {
		f.inFlight--
		f.mu.Unlock()
	}()

	if err, ok := f.failIDs[id]; ok {
		return 0, err
	}
	l, ok := f.rows[id]
	if !ok {
		return 0, nil
	}
	l.LessonOrder = order
	return 1, nil
}

func (f *fakeLessonMuxRepo) SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeLessonMuxRepo) SoftDeleteByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return f.failAll
	}
	for id, l := range f.rows {
		if l.CourseID == courseID {
			delete(f.rows, id)
		}
	}
	return nil
}

type fakeLessonVimeoRepo struct {
	mu      sync.Mutex
	rows    map[uuid.UUID]*types.CourseLessonVimeo
	failAll error
}

func newFakeLessonVimeoRepo() *fakeLessonVimeoRepo {
	return &fakeLessonVimeoRepo{rows: map[uuid.UUID]*types.CourseLessonVimeo{}}
}

func (f *fakeLessonVimeoRepo) Create(ctx context.Context, tx *gorm.DB, l *types.CourseLessonVimeo) (*types.CourseLessonVimeo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAll != nil {
		return nil, f.failAll
	}
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	f.rows[l.ID] = l
	return l, nil
}

func (f *fakeLessonVimeoRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.CourseLessonVimeo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[id], nil
}

func (f *fakeLessonVimeoRepo) GetByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*types.CourseLessonVimeo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []*types.CourseLessonVimeo{}
	for _, l := range f.rows {
		if l.CourseID == courseID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LessonOrder < out[j].LessonOrder })
	return out, nil
}

func (f *fakeLessonVimeoRepo) Update(ctx context.Context, tx *gorm.DB, l *types.CourseLessonVimeo) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[l.ID] = l
	return nil
}

func (f *fakeLessonVimeoRepo) UpdateOrder(ctx context.Context, tx *gorm.DB, id uuid.UUID, order int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	l, ok := f.rows[id]
	if !ok {
		return 0, nil
	}
	l.LessonOrder = order
	return 1, nil
}

func (f *fakeLessonVimeoRepo) SoftDeleteByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	return nil
}

func (f *fakeLessonVimeoRepo) SoftDeleteByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for id, l := range f.rows {
		if l.CourseID == courseID {
			delete(f.rows, id)
		}
	}
	return nil
}

type fakeLessonCFRepo struct {
	rows map[uuid.UUID]*types.CourseLessonCF
}

func newFakeLessonCFRepo() *fakeLessonCFRepo {
	return &fakeLessonCFRepo{rows: map[uuid.UUID]*types.CourseLessonCF{}}
}

func (f *fakeLessonCFRepo) GetByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) ([]*types.CourseLessonCF, error) {
	out := []*types.CourseLessonCF{}
	for _, l := range f.rows {
		if l.CourseID == courseID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeLessonCFRepo) SoftDeleteByCourseID(ctx context.Context, tx *gorm.DB, courseID uuid.UUID) error {
	for id, l := range f.rows {
		if l.CourseID == courseID {
			delete(f.rows, id)
		}
	}
	return nil
}

// ---- hero slides ----

type fakeHeroSlideRepo struct {
	rows map[uuid.UUID]*types.HeroSlide
}

func newFakeHeroSlideRepo() *fakeHeroSlideRepo {
	return &fakeHeroSlideRepo{rows: map[uuid.UUID]*types.HeroSlide{}}
}

func (f *fakeHeroSlideRepo) List(ctx context.Context, tx *gorm.DB) ([]*types.HeroSlide, error) {
	out := []*types.HeroSlide{}
	for _, s := range f.rows {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (f *fakeHeroSlideRepo) Create(ctx context.Context, tx *gorm.DB, s *types.HeroSlide) (*types.HeroSlide, error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	f.rows[s.ID] = s
	return s, nil
}

func (f *fakeHeroSlideRepo) UpdateByID(ctx context.Context, tx *gorm.DB, s *types.HeroSlide) (int64, error) {
	if _, ok := f.rows[s.ID]; !ok {
		return 0, nil
	}
	f.rows[s.ID] = s
	return 1, nil
}

// ---- purchases / admins ----

type fakePurchaseRepo struct {
	rows map[uuid.UUID]*types.Purchase
}

func newFakePurchaseRepo() *fakePurchaseRepo {
	return &fakePurchaseRepo{rows: map[uuid.UUID]*types.Purchase{}}
}

func (f *fakePurchaseRepo) Create(ctx context.Context, tx *gorm.DB, p *types.Purchase) (*types.Purchase, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.rows[p.ID] = p
	return p, nil
}

func (f *fakePurchaseRepo) GetByGatewayOrderID(ctx context.Context, tx *gorm.DB, orderID string) (*types.Purchase, error) {
	for _, p := range f.rows {
		if p.GatewayOrderID == orderID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePurchaseRepo) UpdateStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string) error {
	p, ok := f.rows[id]
	if !ok {
		return fmt.Errorf("no purchase %s", id)
	}
	p.Status = status
	return nil
}

func (f *fakePurchaseRepo) ListByStatus(ctx context.Context, tx *gorm.DB, status string) ([]*types.Purchase, error) {
	out := []*types.Purchase{}
	for _, p := range f.rows {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeAdminUserRepo struct {
	rows map[uuid.UUID]*types.AdminUser
}

func newFakeAdminUserRepo() *fakeAdminUserRepo {
	return &fakeAdminUserRepo{rows: map[uuid.UUID]*types.AdminUser{}}
}

func (f *fakeAdminUserRepo) Create(ctx context.Context, tx *gorm.DB, a *types.AdminUser) (*types.AdminUser, error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	f.rows[a.ID] = a
	return a, nil
}

func (f *fakeAdminUserRepo) GetByEmail(ctx context.Context, tx *gorm.DB, email string) (*types.AdminUser, error) {
	for _, a := range f.rows {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, nil
}

func (f *fakeAdminUserRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.AdminUser, error) {
	return f.rows[id], nil
}

func (f *fakeAdminUserRepo) UpdatePasswordHash(ctx context.Context, tx *gorm.DB, id uuid.UUID, passwordHash string) error {
	a, ok := f.rows[id]
	if !ok {
		return fmt.Errorf("no admin %s", id)
	}
	a.PasswordHash = passwordHash
	return nil
}

// ---- video backend ----

type fakeBackend struct {
	mu        sync.Mutex
	deleted   []string
	deleteErr error
	uploadErr error
	handle    video.UploadHandle
	asset     video.Asset
	assetErr  error
}

func (f *fakeBackend) CreateUpload(ctx context.Context, meta video.UploadMetadata) (video.UploadHandle, error) {
	if f.uploadErr != nil {
		return video.UploadHandle{}, f.uploadErr
	}
	return f.handle, nil
}

func (f *fakeBackend) GetAsset(ctx context.Context, id string) (video.Asset, error) {
	if f.assetErr != nil {
		return video.Asset{}, f.assetErr
	}
	return f.asset, nil
}

func (f *fakeBackend) DeleteAsset(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

// ---- session store ----

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]sessionEntry
	putErr   error
}

type sessionEntry struct {
	adminID string
	email   string
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: map[string]sessionEntry{}}
}

func (f *fakeSessionStore) Put(ctx context.Context, sessionID string, s redisstore.Session, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	f.sessions[sessionID] = sessionEntry{adminID: s.AdminID, email: s.Email}
	return nil
}

func (f *fakeSessionStore) Get(ctx context.Context, sessionID string) (redisstore.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.sessions[sessionID]
	if !ok {
		return redisstore.Session{}, redisstore.ErrSessionNotFound
	}
	return redisstore.Session{AdminID: e.adminID, Email: e.email}, nil
}

func (f *fakeSessionStore) Delete(ctx context.Context, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, sessionID)
	return nil
}

func (f *fakeSessionStore) Close() error { return nil }

// ---- object storage / thumbnails ----

type fakeBucketService struct {
	mu        sync.Mutex
	uploads   map[string][]byte
	deleted   []string
	uploadErr error
}

func newFakeBucketService() *fakeBucketService {
	return &fakeBucketService{uploads: map[string][]byte{}}
}

func (f *fakeBucketService) UploadFile(ctx context.Context, category gcs.BucketCategory, key string, file io.Reader) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return f.uploadErr
	}
	raw, err := io.ReadAll(file)
	if err != nil {
		return err
	}
	f.uploads[string(category)+"/"+key] = raw
	return nil
}

func (f *fakeBucketService) DeleteFile(ctx context.Context, category gcs.BucketCategory, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, key)
	delete(f.uploads, string(category)+"/"+key)
	return nil
}

func (f *fakeBucketService) ListKeys(ctx context.Context, category gcs.BucketCategory, prefix string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []string{}
	for k := range f.uploads {
		if strings.HasPrefix(k, string(category)+"/"+prefix) {
			out = append(out, strings.TrimPrefix(k, string(category)+"/"))
		}
	}
	return out, nil
}

func (f *fakeBucketService) DeletePrefix(ctx context.Context, category gcs.BucketCategory, prefix string) error {
	keys, _ := f.ListKeys(ctx, category, prefix)
	for _, k := range keys {
		_ = f.DeleteFile(ctx, category, k)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, prefix)
	return nil
}

func (f *fakeBucketService) GetPublicURL(category gcs.BucketCategory, key string) string {
	return "https://cdn.test/" + string(category) + "/" + key
}

type fakeThumbnailService struct {
	generated int
	processed int
	err       error
}

func (f *fakeThumbnailService) GenerateAndUpload(ctx context.Context, courseID uuid.UUID, title string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.generated++
	return "https://cdn.test/thumbnail/" + courseID.String() + ".png", nil
}

func (f *fakeThumbnailService) ProcessAndUpload(ctx context.Context, courseID uuid.UUID, raw []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.processed++
	return "https://cdn.test/thumbnail/" + courseID.String() + "-custom.png", nil
}

// openTestDB gives transaction support to services that wrap their writes in
// db.Transaction; the fakes behind them ignore the tx handle.
func openTestDB(t interface{ Fatalf(string, ...interface{}) }) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}
