package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/sentiqlab/sentiq/internal/pkg/clock"
	"github.com/sentiqlab/sentiq/internal/pkg/config"
	"github.com/sentiqlab/sentiq/internal/pkg/goerror"
	"github.com/sentiqlab/sentiq/internal/pkg/idempotency"
	"github.com/sentiqlab/sentiq/internal/pkg/instrument"
	"github.com/sentiqlab/sentiq/internal/pkg/validator"
	"github.com/sentiqlab/sentiq/internal/prediction/entity"
)

type fakeRepoDB struct {
	userIDs     map[string]string
	created     []entity.Prediction
	listed      []entity.Prediction
	listedTotal int64
	stats       []entity.StatsRow
	prediction  *entity.Prediction
	lastFilter  entity.ListFilter
	createErr   error
}

func (f *fakeRepoDB) GetUserIDByEmail(_ context.Context, email string) (string, error) {
	id, ok := f.userIDs[email]
	if !ok {
		return "", goerror.ErrNotFound
	}
	return id, nil
}

func (f *fakeRepoDB) CreatePrediction(_ context.Context, p entity.Prediction) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, p)
	return nil
}

func (f *fakeRepoDB) ListPredictions(_ context.Context, filter entity.ListFilter) ([]entity.Prediction, int64, error) {
	f.lastFilter = filter
	return f.listed, f.listedTotal, nil
}

func (f *fakeRepoDB) GetPrediction(_ context.Context, id int64, userID string) (*entity.Prediction, error) {
	if f.prediction == nil || f.prediction.ID != id || f.prediction.UserID != userID {
		return nil, goerror.ErrNotFound
	}
	return f.prediction, nil
}

func (f *fakeRepoDB) StatsRows(_ context.Context, _ string) ([]entity.StatsRow, error) {
	return f.stats, nil
}

type fakeRepoMessaging struct {
	published []PredictionCreatedEvent
}

func (f *fakeRepoMessaging) PublishPredictionCreated(_ context.Context, msg PredictionCreatedEvent) error {
	f.published = append(f.published, msg)
	return nil
}

type fakeEngine struct {
	result *EngineResult
	err    error
}

func (f *fakeEngine) Predict(context.Context, string, string) (*EngineResult, error) {
	return f.result, f.err
}

// fakeIdemp remembers keys in memory; a repeated key reports completed.
type fakeIdemp struct {
	seen map[string]struct{}
}

func (f *fakeIdemp) Acquire(_ context.Context, key string, _ time.Duration) (idempotency.State, error) {
	if _, ok := f.seen[key]; ok {
		return idempotency.StateCompleted, nil
	}
	f.seen[key] = struct{}{}
	return idempotency.StateNone, nil
}

func (f *fakeIdemp) MarkCompleted(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdemp) MarkFailed(context.Context, string, time.Duration) error { return nil }

func (f *fakeIdemp) Exec(ctx context.Context, key string, fn func(context.Context) error, _ ...idempotency.Option) error {
	state, err := f.Acquire(ctx, key, 0)
	if err != nil {
		return err
	}
	if state == idempotency.StateCompleted {
		return idempotency.ErrAlreadyCompleted
	}
	return fn(ctx)
}

type fixedNumberID struct{ id int64 }

func (f fixedNumberID) Generate() int64 { return f.id }

func newUsecase(t *testing.T, repo *fakeRepoDB, msg *fakeRepoMessaging, eng Engine) *Usecase {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("new validator: %v", err)
	}

	cfg, err := config.NewViperFromBytes("yaml", []byte("app:\n  name: test\n"))
	if err != nil {
		t.Fatalf("new config: %v", err)
	}

	return New(Dependency{
		RepoDB:        repo,
		RepoMessaging: msg,
		Engine:        eng,
		Idempotency:   &fakeIdemp{seen: map[string]struct{}{}},
		Validator:     v,
		Config:        cfg,
		UID:           fixedNumberID{id: 42},
		Clock:         clock.NewFixed(time.Unix(1_700_000_000, 0)),
		Instrument:    instrument.NewNoop(),
	})
}

func codeOf(t *testing.T, err error) goerror.Code {
	t.Helper()

	var ge *goerror.Error
	if !errors.As(err, &ge) {
		t.Fatalf("expected *goerror.Error, got %T: %v", err, err)
	}
	return ge.Code()
}

func TestCreate(t *testing.T) {
	engineResult := &EngineResult{
		Label:        entity.LabelPositive,
		Score:        0.87,
		ModelVersion: entity.ModelVersionV2,
		ElapsedMS:    1.5,
	}

	t.Run("Success", func(t *testing.T) {
		repo := &fakeRepoDB{userIDs: map[string]string{"alice@example.com": "u1"}}
		msg := &fakeRepoMessaging{}
		uc := newUsecase(t, repo, msg, &fakeEngine{result: engineResult})

		out, err := uc.Create(context.Background(), CreateInput{
			Email:        "alice@example.com",
			Text:         "what a lovely day",
			ModelVersion: "v2",
		})
		if err != nil {
			t.Fatalf("create: %v", err)
		}

		if out.ID != 42 || out.Label != entity.LabelPositive || out.Score != 0.87 {
			t.Fatalf("unexpected output: %+v", out)
		}
		if len(repo.created) != 1 {
			t.Fatalf("created %d records, want 1", len(repo.created))
		}

		stored := repo.created[0]
		if stored.UserID != "u1" {
			t.Errorf("user id = %q", stored.UserID)
		}
		if stored.Input.GetString("text") != "what a lovely day" {
			t.Errorf("input text = %q", stored.Input.GetString("text"))
		}
		if stored.Output.GetString("label") != entity.LabelPositive {
			t.Errorf("output label = %q", stored.Output.GetString("label"))
		}
		if len(msg.published) != 1 {
			t.Fatalf("published %d events, want 1", len(msg.published))
		}
	})

	t.Run("RepeatedIdempotencyKey", func(t *testing.T) {
		repo := &fakeRepoDB{userIDs: map[string]string{"alice@example.com": "u1"}}
		uc := newUsecase(t, repo, &fakeRepoMessaging{}, &fakeEngine{result: engineResult})

		in := CreateInput{
			Email:          "alice@example.com",
			Text:           "hello",
			IdempotencyKey: "req-1",
		}

		if _, err := uc.Create(context.Background(), in); err != nil {
			t.Fatalf("first create: %v", err)
		}

		_, err := uc.Create(context.Background(), in)
		if codeOf(t, err) != goerror.CodeConflict {
			t.Fatalf("expected conflict on repeated key, got %v", err)
		}
		if len(repo.created) != 1 {
			t.Fatalf("created %d records, want 1", len(repo.created))
		}
	})

	t.Run("TextTooLong", func(t *testing.T) {
		uc := newUsecase(t, &fakeRepoDB{}, &fakeRepoMessaging{}, &fakeEngine{result: engineResult})

		long := make([]byte, 5001)
		for i := range long {
			long[i] = 'a'
		}

		_, err := uc.Create(context.Background(), CreateInput{
			Email: "alice@example.com",
			Text:  string(long),
		})
		if codeOf(t, err) != goerror.CodeInvalidInput {
			t.Fatalf("expected invalid input, got %v", err)
		}
	})

	t.Run("UnknownAccount", func(t *testing.T) {
		uc := newUsecase(t, &fakeRepoDB{userIDs: map[string]string{}}, &fakeRepoMessaging{}, &fakeEngine{result: engineResult})

		_, err := uc.Create(context.Background(), CreateInput{
			Email: "nobody@example.com",
			Text:  "hello",
		})
		if codeOf(t, err) != goerror.CodeUnauthorized {
			t.Fatalf("expected unauthorized, got %v", err)
		}
	})

	t.Run("EngineFailure", func(t *testing.T) {
		uc := newUsecase(t,
			&fakeRepoDB{userIDs: map[string]string{"alice@example.com": "u1"}},
			&fakeRepoMessaging{},
			&fakeEngine{err: errors.New("model server down")},
		)

		_, err := uc.Create(context.Background(), CreateInput{
			Email: "alice@example.com",
			Text:  "hello",
		})
		if codeOf(t, err) != goerror.CodeInternal {
			t.Fatalf("expected internal error, got %v", err)
		}
	})
}

func TestList(t *testing.T) {
	t.Run("DefaultsAndFilter", func(t *testing.T) {
		repo := &fakeRepoDB{
			userIDs:     map[string]string{"alice@example.com": "u1"},
			listed:      []entity.Prediction{{ID: 1, UserID: "u1"}},
			listedTotal: 1,
		}
		uc := newUsecase(t, repo, &fakeRepoMessaging{}, &fakeEngine{})

		out, err := uc.List(context.Background(), ListInput{
			Email: "alice@example.com",
			Label: entity.LabelNegative,
		})
		if err != nil {
			t.Fatalf("list: %v", err)
		}

		if out.Page != 1 || out.Limit != defaultPageSize {
			t.Errorf("page/limit = %d/%d, want 1/%d", out.Page, out.Limit, defaultPageSize)
		}
		if repo.lastFilter.Label != entity.LabelNegative || repo.lastFilter.UserID != "u1" {
			t.Errorf("filter = %+v", repo.lastFilter)
		}
		if repo.lastFilter.Offset != 0 {
			t.Errorf("offset = %d, want 0", repo.lastFilter.Offset)
		}
	})

	t.Run("PaginationOffset", func(t *testing.T) {
		repo := &fakeRepoDB{userIDs: map[string]string{"alice@example.com": "u1"}}
		uc := newUsecase(t, repo, &fakeRepoMessaging{}, &fakeEngine{})

		if _, err := uc.List(context.Background(), ListInput{
			Email: "alice@example.com",
			Page:  3,
			Limit: 10,
		}); err != nil {
			t.Fatalf("list: %v", err)
		}

		if repo.lastFilter.Offset != 20 || repo.lastFilter.Limit != 10 {
			t.Fatalf("filter = %+v, want offset 20 limit 10", repo.lastFilter)
		}
	})

	t.Run("InvalidLabel", func(t *testing.T) {
		uc := newUsecase(t, &fakeRepoDB{}, &fakeRepoMessaging{}, &fakeEngine{})

		_, err := uc.List(context.Background(), ListInput{
			Email: "alice@example.com",
			Label: "NEUTRAL",
		})
		if codeOf(t, err) != goerror.CodeInvalidInput {
			t.Fatalf("expected invalid input, got %v", err)
		}
	})
}

func TestDetail(t *testing.T) {
	stored := &entity.Prediction{ID: 7, UserID: "u1", ModelVersion: entity.ModelVersionV1}

	t.Run("Success", func(t *testing.T) {
		repo := &fakeRepoDB{
			userIDs:    map[string]string{"alice@example.com": "u1"},
			prediction: stored,
		}
		uc := newUsecase(t, repo, &fakeRepoMessaging{}, &fakeEngine{})

		out, err := uc.Detail(context.Background(), DetailInput{Email: "alice@example.com", ID: 7})
		if err != nil {
			t.Fatalf("detail: %v", err)
		}
		if out.ID != 7 {
			t.Fatalf("id = %d", out.ID)
		}
	})

	t.Run("OtherUsersRecordIsHidden", func(t *testing.T) {
		repo := &fakeRepoDB{
			userIDs:    map[string]string{"bob@example.com": "u2"},
			prediction: stored,
		}
		uc := newUsecase(t, repo, &fakeRepoMessaging{}, &fakeEngine{})

		_, err := uc.Detail(context.Background(), DetailInput{Email: "bob@example.com", ID: 7})
		if codeOf(t, err) != goerror.CodeNotFound {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}

func TestStats(t *testing.T) {
	t.Run("Aggregates", func(t *testing.T) {
		repo := &fakeRepoDB{
			userIDs: map[string]string{"alice@example.com": "u1"},
			stats: []entity.StatsRow{
				{ModelVersion: "v1", Label: entity.LabelPositive},
				{ModelVersion: "v1", Label: entity.LabelNegative},
				{ModelVersion: "v2", Label: entity.LabelPositive},
			},
		}
		uc := newUsecase(t, repo, &fakeRepoMessaging{}, &fakeEngine{})

		out, err := uc.Stats(context.Background(), StatsInput{Email: "alice@example.com"})
		if err != nil {
			t.Fatalf("stats: %v", err)
		}

		if out.Total != 3 {
			t.Errorf("total = %d, want 3", out.Total)
		}
		if out.ByClass[entity.LabelPositive] != 2 || out.ByClass[entity.LabelNegative] != 1 {
			t.Errorf("by class = %v", out.ByClass)
		}
		if out.ByModelVersion["v1"] != 2 || out.ByModelVersion["v2"] != 1 {
			t.Errorf("by model version = %v", out.ByModelVersion)
		}
	})

	t.Run("EmptyStillListsKnownLabels", func(t *testing.T) {
		repo := &fakeRepoDB{userIDs: map[string]string{"alice@example.com": "u1"}}
		uc := newUsecase(t, repo, &fakeRepoMessaging{}, &fakeEngine{})

		out, err := uc.Stats(context.Background(), StatsInput{Email: "alice@example.com"})
		if err != nil {
			t.Fatalf("stats: %v", err)
		}

		if out.Total != 0 {
			t.Errorf("total = %d, want 0", out.Total)
		}
		pos, ok := out.ByClass[entity.LabelPositive]
		if !ok || pos != 0 {
			t.Errorf("by class = %v, POSITIVE must be present at zero", out.ByClass)
		}
		neg, ok := out.ByClass[entity.LabelNegative]
		if !ok || neg != 0 {
			t.Errorf("by class = %v, NEGATIVE must be present at zero", out.ByClass)
		}
	})
}
