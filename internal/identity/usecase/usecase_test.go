package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sentiqlab/sentiq/internal/identity/entity"
	"github.com/sentiqlab/sentiq/internal/pkg/clock"
	"github.com/sentiqlab/sentiq/internal/pkg/config"
	"github.com/sentiqlab/sentiq/internal/pkg/goerror"
	"github.com/sentiqlab/sentiq/internal/pkg/goroutine"
	"github.com/sentiqlab/sentiq/internal/pkg/hash"
	"github.com/sentiqlab/sentiq/internal/pkg/instrument"
	"github.com/sentiqlab/sentiq/internal/pkg/token"
	"github.com/sentiqlab/sentiq/internal/pkg/uid"
	"github.com/sentiqlab/sentiq/internal/pkg/validator"
)

type fakeRepoDB struct {
	users     map[string]*entity.User
	created   []entity.NewUser
	getErr    error
	createErr error
}

func (f *fakeRepoDB) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	user, ok := f.users[email]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return user, nil
}

func (f *fakeRepoDB) CreateUser(_ context.Context, user entity.NewUser) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, user)
	return nil
}

type fakeRepoMessaging struct {
	published []UserRegisteredEvent
	err       error
}

func (f *fakeRepoMessaging) PublishUserRegistered(_ context.Context, msg UserRegisteredEvent) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, msg)
	return nil
}

func newUsecase(t *testing.T, repo *fakeRepoDB, msg *fakeRepoMessaging) (*Usecase, *goroutine.Manager) {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	cfg, err := config.NewViperFromBytes("yaml", []byte("app:\n  name: test\n"))
	if err != nil {
		t.Fatalf("new config: %v", err)
	}

	codec, err := token.New(token.Config{
		Secret: []byte("0123456789abcdef0123456789abcdef"),
		Clock:  clock.NewFixed(time.Unix(1_700_000_000, 0)),
	})
	if err != nil {
		t.Fatalf("new token codec: %v", err)
	}

	manager := goroutine.NewManager(4)

	return New(Dependency{
		RepoDB:        repo,
		RepoMessaging: msg,
		Validator:     v,
		Config:        cfg,
		Hasher:        hash.NewSHA256(),
		UUID:          uid.NewUUID(),
		Clock:         clock.NewFixed(time.Unix(1_700_000_000, 0)),
		Token:         codec,
		Instrument:    instrument.NewNoop(),
		Goroutine:     manager,
	}), manager
}

func codeOf(t *testing.T, err error) goerror.Code {
	t.Helper()

	var ge *goerror.Error
	if !errors.As(err, &ge) {
		t.Fatalf("expected *goerror.Error, got %T: %v", err, err)
	}
	return ge.Code()
}

func TestRegister(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := &fakeRepoDB{users: map[string]*entity.User{}}
		msg := &fakeRepoMessaging{}
		uc, manager := newUsecase(t, repo, msg)

		out, err := uc.Register(context.Background(), RegisterInput{
			Email:    " Alice@Example.COM ",
			Password: "Secret123!",
			FullName: "Alice Liddell",
		})
		if err != nil {
			t.Fatalf("register: %v", err)
		}

		if out.Email != "alice@example.com" {
			t.Errorf("email = %q, want normalized lowercase", out.Email)
		}
		if out.AccessToken == "" {
			t.Error("expected an access token")
		}
		if len(repo.created) != 1 {
			t.Fatalf("created %d users, want 1", len(repo.created))
		}
		if repo.created[0].Password == "Secret123!" {
			t.Error("password stored in plaintext")
		}
		if err := manager.Wait(); err != nil {
			t.Fatalf("wait for publish: %v", err)
		}
		if len(msg.published) != 1 {
			t.Fatalf("published %d events, want 1", len(msg.published))
		}
	})

	t.Run("EmailTaken", func(t *testing.T) {
		repo := &fakeRepoDB{users: map[string]*entity.User{
			"alice@example.com": {ID: "u1", Email: "alice@example.com"},
		}}
		uc, _ := newUsecase(t, repo, &fakeRepoMessaging{})

		_, err := uc.Register(context.Background(), RegisterInput{
			Email:    "alice@example.com",
			Password: "Secret123!",
			FullName: "Alice Liddell",
		})
		if codeOf(t, err) != goerror.CodeConflict {
			t.Fatalf("expected conflict, got %v", err)
		}
	})

	t.Run("DuplicateOnInsert", func(t *testing.T) {
		repo := &fakeRepoDB{users: map[string]*entity.User{}, createErr: goerror.ErrConflict}
		uc, _ := newUsecase(t, repo, &fakeRepoMessaging{})

		_, err := uc.Register(context.Background(), RegisterInput{
			Email:    "alice@example.com",
			Password: "Secret123!",
			FullName: "Alice Liddell",
		})
		if codeOf(t, err) != goerror.CodeConflict {
			t.Fatalf("expected conflict, got %v", err)
		}
	})

	t.Run("InvalidInput", func(t *testing.T) {
		uc, _ := newUsecase(t, &fakeRepoDB{}, &fakeRepoMessaging{})

		_, err := uc.Register(context.Background(), RegisterInput{
			Email:    "not-an-email",
			Password: "short",
			FullName: "Alice Liddell",
		})
		if codeOf(t, err) != goerror.CodeInvalidInput {
			t.Fatalf("expected invalid input, got %v", err)
		}
	})

	t.Run("PublishFailureIsNotFatal", func(t *testing.T) {
		repo := &fakeRepoDB{users: map[string]*entity.User{}}
		msg := &fakeRepoMessaging{err: errors.New("broker down")}
		uc, manager := newUsecase(t, repo, msg)

		if _, err := uc.Register(context.Background(), RegisterInput{
			Email:    "alice@example.com",
			Password: "Secret123!",
			FullName: "Alice Liddell",
		}); err != nil {
			t.Fatalf("register must survive a publish failure: %v", err)
		}
		if err := manager.Wait(); err != nil {
			t.Fatalf("wait: %v", err)
		}
	})
}

func TestLogin(t *testing.T) {
	hasher := hash.NewSHA256()
	hashed, err := hasher.Hash("Secret123!")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	stored := &entity.User{
		ID:       "u1",
		Email:    "alice@example.com",
		Password: string(hashed),
	}

	t.Run("Success", func(t *testing.T) {
		repo := &fakeRepoDB{users: map[string]*entity.User{stored.Email: stored}}
		uc, _ := newUsecase(t, repo, &fakeRepoMessaging{})

		out, err := uc.Login(context.Background(), LoginInput{
			Email:    "Alice@Example.com",
			Password: "Secret123!",
		})
		if err != nil {
			t.Fatalf("login: %v", err)
		}
		if out.AccessToken == "" {
			t.Fatal("expected an access token")
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		repo := &fakeRepoDB{users: map[string]*entity.User{stored.Email: stored}}
		uc, _ := newUsecase(t, repo, &fakeRepoMessaging{})

		_, err := uc.Login(context.Background(), LoginInput{
			Email:    "alice@example.com",
			Password: "WrongPass1!",
		})
		if codeOf(t, err) != goerror.CodeUnauthorized {
			t.Fatalf("expected unauthorized, got %v", err)
		}
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		repo := &fakeRepoDB{users: map[string]*entity.User{}}
		uc, _ := newUsecase(t, repo, &fakeRepoMessaging{})

		_, err := uc.Login(context.Background(), LoginInput{
			Email:    "nobody@example.com",
			Password: "Secret123!",
		})
		if codeOf(t, err) != goerror.CodeUnauthorized {
			t.Fatalf("expected unauthorized, got %v", err)
		}
	})
}

func TestProfile(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		repo := &fakeRepoDB{users: map[string]*entity.User{
			"alice@example.com": {ID: "u1", Email: "alice@example.com", FullName: "Alice Liddell"},
		}}
		uc, _ := newUsecase(t, repo, &fakeRepoMessaging{})

		out, err := uc.Profile(context.Background(), ProfileInput{Email: "alice@example.com"})
		if err != nil {
			t.Fatalf("profile: %v", err)
		}
		if out.UserID != "u1" || out.FullName != "Alice Liddell" {
			t.Fatalf("unexpected profile: %+v", out)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		uc, _ := newUsecase(t, &fakeRepoDB{users: map[string]*entity.User{}}, &fakeRepoMessaging{})

		_, err := uc.Profile(context.Background(), ProfileInput{Email: "nobody@example.com"})
		if codeOf(t, err) != goerror.CodeNotFound {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}
