package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"jobmaster-backend/internal/account"
	"jobmaster-backend/internal/activity"
	"jobmaster-backend/internal/admin"
	"jobmaster-backend/internal/apikeys"
	googleauth "jobmaster-backend/internal/auth"
	"jobmaster-backend/internal/coverletters"
	"jobmaster-backend/internal/emails"
	"jobmaster-backend/internal/generate"
	"jobmaster-backend/internal/linkedin"
	"jobmaster-backend/internal/llm"
	"jobmaster-backend/internal/resumes"
	sharedauth "jobmaster-backend/internal/shared/auth"
	"jobmaster-backend/internal/shared/config"
	"jobmaster-backend/internal/shared/secrets"
	"jobmaster-backend/internal/shared/server"
	"jobmaster-backend/internal/shared/storage/db"
	"jobmaster-backend/internal/shared/storage/object"
	localstore "jobmaster-backend/internal/shared/storage/object/local"
	s3store "jobmaster-backend/internal/shared/storage/object/s3"
	"jobmaster-backend/internal/usage"
	"jobmaster-backend/internal/users"
)

// devAPIKeySecret wraps stored provider keys when API_KEY_SECRET is
// unset in dev-like environments. Production requires a real secret.
const devAPIKeySecret = "dev-only-api-key-secret"

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	UsersService    *users.Service
	UsageService    *usage.Service
	KeysService     *apikeys.Service
	ResumesService  *resumes.Service
	GenerateService *generate.Service
	AccountService  *account.Service
	ActivityService *activity.Service
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	box, err := buildSecretsBox(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{Config: cfg, DB: sqlDB, Store: store}

	var (
		userRepo   users.Repo
		resumeRepo resumes.Repo
		clRepo     coverletters.Repo
		liRepo     linkedin.Repo
		emRepo     emails.Repo
		actRepo    activity.Repo
		keyRepo    apikeys.Repo
		usageStore usage.Store
	)
	if sqlDB != nil {
		userRepo = &users.PGRepo{DB: sqlDB}
		resumeRepo = &resumes.PGRepo{DB: sqlDB}
		clRepo = &coverletters.PGRepo{DB: sqlDB}
		liRepo = &linkedin.PGRepo{DB: sqlDB}
		emRepo = &emails.PGRepo{DB: sqlDB}
		actRepo = &activity.PGRepo{DB: sqlDB}
		keyRepo = &apikeys.PGRepo{DB: sqlDB}
		usageStore = usage.NewPGStore(sqlDB)
	} else {
		userRepo = users.NewMemoryRepo()
		resumeRepo = resumes.NewMemoryRepo()
		clRepo = coverletters.NewMemoryRepo()
		liRepo = linkedin.NewMemoryRepo()
		emRepo = emails.NewMemoryRepo()
		actRepo = activity.NewMemoryRepo()
		keyRepo = apikeys.NewMemoryRepo()
		usageStore = usage.NewMemoryStore()
	}

	passwords, err := sharedauth.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("password config: %w", err)
	}
	userSvc := users.NewService(userRepo, passwords)
	usageSvc := usage.NewService(usageStore, tierLookup{users: userSvc})
	keySvc := apikeys.NewService(keyRepo, box, llm.Catalog{})
	resumeSvc := resumes.NewService(store, resumeRepo)
	clSvc := coverletters.NewService(clRepo)
	liSvc := linkedin.NewService(liRepo)
	emSvc := emails.NewService(emRepo)
	actSvc := &activity.Service{
		Repo:         actRepo,
		Quota:        usageSvc,
		CoverLetters: clRepo,
		LinkedIn:     liRepo,
		Emails:       emRepo,
	}
	genSvc := generate.NewService(generate.Deps{
		Keys:         keySvc,
		Usage:        usageSvc,
		Tiers:        tierLookup{users: userSvc},
		Resumes:      resumeSvc,
		CoverLetters: clSvc,
		LinkedIn:     liSvc,
		Emails:       emSvc,
		Activity:     actSvc,
	})
	accountSvc := account.NewService(userSvc, resumeRepo, clRepo, liRepo, emRepo, actRepo, usageSvc, keySvc)
	adminSvc := admin.NewService(userRepo, clRepo, liRepo, emRepo, actRepo)

	googleAuth := googleauth.NewGoogleService(
		cfg.GoogleClientID,
		cfg.GoogleClientSecret,
		cfg.GoogleRedirectURL,
		cfg.UIRedirectURL,
		userSvc,
	)

	app.UsersService = userSvc
	app.UsageService = usageSvc
	app.KeysService = keySvc
	app.ResumesService = resumeSvc
	app.GenerateService = genSvc
	app.AccountService = accountSvc
	app.ActivityService = actSvc

	app.Router = server.NewRouter(server.RouterDeps{
		Config:       cfg,
		Users:        users.NewHandler(userSvc),
		GoogleAuth:   googleAuth,
		Resumes:      resumes.NewHandler(resumeSvc),
		CoverLetters: coverletters.NewHandler(clSvc),
		LinkedIn:     linkedin.NewHandler(liSvc),
		Emails:       emails.NewHandler(emSvc),
		Generate:     generate.NewHandler(genSvc),
		Activity:     activity.NewHandler(actSvc),
		Usage:        usage.NewHandler(usageSvc),
		Keys:         apikeys.NewHandler(keySvc),
		Account:      account.NewHandler(accountSvc),
		Admin:        admin.NewHandler(adminSvc, userSvc, accountSvc),
	})

	return app, nil
}

// tierLookup resolves the current tier from the user row, so admin
// tier changes apply without a fresh login.
type tierLookup struct {
	users *users.Service
}

func (t tierLookup) TierOf(ctx context.Context, userID string) (string, error) {
	user, err := t.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	return user.Tier, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, "")
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildSecretsBox(cfg config.Config) (*secrets.Box, error) {
	secret := strings.TrimSpace(cfg.APIKeySecret)
	if secret == "" {
		if !isDevLike(cfg.Env) {
			return nil, fmt.Errorf("API_KEY_SECRET is required")
		}
		log.Printf("bootstrap: API_KEY_SECRET empty; using dev default")
		secret = devAPIKeySecret
	}
	return secrets.NewBox(secret)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
