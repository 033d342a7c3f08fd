package testutil

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	registrationstore "github.com/corsit/clubsite/internal/app/store/registrations"
	userstore "github.com/corsit/clubsite/internal/app/store/users"
	"github.com/corsit/clubsite/internal/app/system/media"
	"github.com/corsit/clubsite/internal/app/system/normalize"
	"github.com/corsit/clubsite/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RegistrationRepo is an in-memory registration repository. It enforces the
// team-number unique constraint the same way the Mongo index does, so
// allocation retry behavior can be exercised without a database.
type RegistrationRepo struct {
	mu      sync.Mutex
	records []models.WorkshopRegistration

	// BeforeInsert, when set, runs inside Insert before the uniqueness
	// check. Tests use it to slip a competing write between a handler's
	// MaxTeamNumber call and its Insert call.
	BeforeInsert func(repo *RegistrationRepo)

	// Err, when set, is returned by every method.
	Err error
}

func NewRegistrationRepo() *RegistrationRepo {
	return &RegistrationRepo{}
}

// Seed adds a registration directly, bypassing the uniqueness check.
func (f *RegistrationRepo) Seed(reg models.WorkshopRegistration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if reg.ID.IsZero() {
		reg.ID = primitive.NewObjectID()
	}
	f.records = append(f.records, reg)
}

// All returns a copy of the stored records in insertion order.
func (f *RegistrationRepo) All() []models.WorkshopRegistration {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.WorkshopRegistration, len(f.records))
	copy(out, f.records)
	return out
}

func (f *RegistrationRepo) MaxTeamNumber(ctx context.Context) (int, error) {
	if f.Err != nil {
		return 0, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxLocked(), nil
}

func (f *RegistrationRepo) maxLocked() int {
	max := 0
	for _, r := range f.records {
		n := 0
		fmt.Sscanf(r.TeamNumber, "%d", &n)
		if n > max {
			max = n
		}
	}
	return max
}

func (f *RegistrationRepo) Insert(ctx context.Context, reg *models.WorkshopRegistration) error {
	if f.Err != nil {
		return f.Err
	}
	if hook := f.BeforeInsert; hook != nil {
		f.BeforeInsert = nil
		hook(f)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.TeamNumber == reg.TeamNumber {
			return registrationstore.ErrDuplicateTeamNumber
		}
	}
	if reg.ID.IsZero() {
		reg.ID = primitive.NewObjectID()
	}
	f.records = append(f.records, *reg)
	return nil
}

func (f *RegistrationRepo) List(ctx context.Context) ([]models.WorkshopRegistration, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.WorkshopRegistration, len(f.records))
	copy(out, f.records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].RegisteredAt.After(out[j].RegisteredAt)
	})
	return out, nil
}

func (f *RegistrationRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.WorkshopRegistration, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.ID == id {
			out := r
			return &out, nil
		}
	}
	return nil, registrationstore.ErrNotFound
}

func (f *RegistrationRepo) SetVerified(ctx context.Context, id primitive.ObjectID, verified bool) (*models.WorkshopRegistration, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if f.records[i].ID == id {
			f.records[i].Payment.Verified = verified
			out := f.records[i]
			return &out, nil
		}
	}
	return nil, registrationstore.ErrNotFound
}

func (f *RegistrationRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if f.Err != nil {
		return f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if f.records[i].ID == id {
			f.records = append(f.records[:i], f.records[i+1:]...)
			return nil
		}
	}
	return registrationstore.ErrNotFound
}

// UserRepo is an in-memory user store backing the accounts, profile, team,
// and admin user features in handler tests.
type UserRepo struct {
	mu    sync.Mutex
	users []models.User

	// Err, when set, is returned by every method.
	Err error
}

func NewUserRepo() *UserRepo {
	return &UserRepo{}
}

// Seed adds a user directly, bypassing validation and normalization.
func (f *UserRepo) Seed(u models.User) models.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	f.users = append(f.users, u)
	return u
}

func (f *UserRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	if f.Err != nil {
		return models.User{}, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u.Email = normalize.Email(u.Email)
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return models.User{}, userstore.ErrDuplicateEmail
		}
	}
	u.ID = primitive.NewObjectID()
	u.AdminAuthenticated = false
	u.IsAdmin = false
	f.users = append(f.users, u)
	return u, nil
}

func (f *UserRepo) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.findLocked(id)
}

func (f *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	email = normalize.Email(email)
	for i := range f.users {
		if f.users[i].Email == email {
			out := f.users[i]
			return &out, nil
		}
	}
	return nil, userstore.ErrNotFound
}

func (f *UserRepo) List(ctx context.Context) ([]models.User, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.User, len(f.users))
	copy(out, f.users)
	return out, nil
}

func (f *UserRepo) ListVisible(ctx context.Context) ([]models.User, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.User
	for _, u := range f.users {
		if u.AdminAuthenticated {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *UserRepo) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd userstore.ProfileUpdate) (*models.User, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, err := f.findLocked(id)
	if err != nil {
		return nil, err
	}
	u.Name = normalize.Name(upd.Name)
	u.Phone = upd.Phone
	u.USN = upd.USN
	u.Year = upd.Year
	u.Designation = upd.Designation
	u.Description = upd.Description
	u.GitHub = upd.GitHub
	u.LinkedIn = upd.LinkedIn
	u.Instagram = upd.Instagram
	u.ProjectDescription = upd.ProjectDescription
	u.AbacusURL = upd.AbacusURL
	return f.saveLocked(*u)
}

func (f *UserRepo) UpdateByAdmin(ctx context.Context, id primitive.ObjectID, upd userstore.AdminUpdate) (*models.User, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, err := f.findLocked(id)
	if err != nil {
		return nil, err
	}
	u.Name = normalize.Name(upd.Name)
	u.Designation = upd.Designation
	u.AdminAuthenticated = upd.AdminAuthenticated
	u.IsAdmin = upd.IsAdmin
	return f.saveLocked(*u)
}

func (f *UserRepo) SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	if f.Err != nil {
		return f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, err := f.findLocked(id)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	_, err = f.saveLocked(*u)
	return err
}

func (f *UserRepo) SetPhotoURL(ctx context.Context, id primitive.ObjectID, url string) (*models.User, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, err := f.findLocked(id)
	if err != nil {
		return nil, err
	}
	u.PhotoURL = url
	return f.saveLocked(*u)
}

func (f *UserRepo) SetProjectPhotoURL(ctx context.Context, id primitive.ObjectID, url string) (*models.User, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	u, err := f.findLocked(id)
	if err != nil {
		return nil, err
	}
	u.ProjectPhotoURL = url
	return f.saveLocked(*u)
}

func (f *UserRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	if f.Err != nil {
		return f.Err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.users {
		if f.users[i].ID == id {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return nil
		}
	}
	return userstore.ErrNotFound
}

func (f *UserRepo) findLocked(id primitive.ObjectID) (*models.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			out := f.users[i]
			return &out, nil
		}
	}
	return nil, userstore.ErrNotFound
}

func (f *UserRepo) saveLocked(u models.User) (*models.User, error) {
	for i := range f.users {
		if f.users[i].ID == u.ID {
			f.users[i] = u
			out := u
			return &out, nil
		}
	}
	return nil, userstore.ErrNotFound
}

// MediaStore is an in-memory media.Store that records uploads and returns a
// canned URL.
type MediaStore struct {
	mu      sync.Mutex
	uploads []MediaUpload

	// URL is returned from Upload; defaults to a placeholder when empty.
	URL string
	// Err, when set, is returned from Upload.
	Err error
}

// MediaUpload records a single Upload call.
type MediaUpload struct {
	Filename string
	Folder   string
	Bytes    int64
}

func NewMediaStore() *MediaStore {
	return &MediaStore{}
}

func (f *MediaStore) Upload(ctx context.Context, r io.Reader, filename string, opts media.UploadOptions) (string, error) {
	if f.Err != nil {
		return "", f.Err
	}
	n, err := io.Copy(io.Discard, r)
	if err != nil {
		return "", err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, MediaUpload{Filename: filename, Folder: opts.Folder, Bytes: n})
	if f.URL != "" {
		return f.URL, nil
	}
	return "https://media.test/" + filename, nil
}

// Uploads returns a copy of the recorded upload calls.
func (f *MediaStore) Uploads() []MediaUpload {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]MediaUpload, len(f.uploads))
	copy(out, f.uploads)
	return out
}
