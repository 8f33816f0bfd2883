package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	sm "github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/joho/godotenv"

	"github.com/bmccool/aws-transfer-project/internal/api/rest"
	"github.com/bmccool/aws-transfer-project/internal/api/rest/handlers"
	"github.com/bmccool/aws-transfer-project/internal/api/rest/middlewares"
	"github.com/bmccool/aws-transfer-project/internal/authn"
	"github.com/bmccool/aws-transfer-project/internal/config"
	"github.com/bmccool/aws-transfer-project/internal/identityprovider"
	"github.com/bmccool/aws-transfer-project/internal/infoprovider"
	"github.com/bmccool/aws-transfer-project/internal/secretfetcher"
	"github.com/bmccool/aws-transfer-project/internal/version"
)

const (
	LambdaRuntimeAPIEnv = "AWS_LAMBDA_RUNTIME_API"

	ReadTimeout  = 5 * time.Second
	WriteTimeout = 10 * time.Second
	IdleTimeout  = 120 * time.Second
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("version", version.Version),
	)
	ctx := context.Background()

	lambdaMode := os.Getenv(LambdaRuntimeAPIEnv) != ""
	if !lambdaMode {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Fatal(err)
		}
	}

	passwordFetcher, err := newPasswordFetcher(ctx)
	if err != nil {
		log.Fatal(err)
	}

	cfg, err := config.Load(ctx, secretfetcher.FromEnv(config.UsernameEnv), passwordFetcher)
	if err != nil {
		log.Fatal(err)
	}

	authenticator := authn.NewStaticAuthenticator(cfg.Username, cfg.Password)
	if !authenticator.Hashed() {
		logger.Warn("expected password is configured in plaintext, prefer a bcrypt hash")
	}

	enforcer, err := newEnforcer(ctx, logger, cfg)
	if err != nil {
		log.Fatal(err)
	}

	handler := identityprovider.NewHandler(
		authenticator,
		enforcer,
		identityprovider.Attributes{
			RoleARN:             cfg.RoleARN,
			HomeDirectoryTarget: cfg.HomeDirectoryTarget,
		},
		logger,
	)

	if lambdaMode {
		logger.Info("starting lambda handler")
		lambda.Start(handler.HandleJSON)
		return
	}

	server := &http.Server{
		Addr: cfg.ListenAddr,
		Handler: rest.NewMuxWithHandlers(&rest.RouterConfig{
			UserConfigHandler: handlers.NewUserConfigHandler(handler, logger),
			HealthHandler:     handlers.NewHealthHandler(),
			RequestMiddleware: middlewares.NewRequestIDMiddleware(logger),
		}),
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
	}

	log.Printf("Starting server on %s (Version: %s)\n", cfg.ListenAddr, version.Version)
	log.Fatal(server.ListenAndServe())
}

// newPasswordFetcher reads the expected password from Secrets Manager when a secret ARN is
// configured and from the environment otherwise.
func newPasswordFetcher(ctx context.Context) (secretfetcher.Fetcher, error) {
	secretARN := os.Getenv(config.PasswordSecretARNEnv)
	if secretARN == "" {
		return secretfetcher.FromEnv(config.PasswordEnv), nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, err
	}

	return secretfetcher.FromSecretsManager(
		sm.NewFromConfig(awsCfg),
		secretARN,
		os.Getenv(config.PasswordSecretKeyEnv),
	), nil
}

func restrictions(cfg *config.Config) infoprovider.Restrictions {
	return infoprovider.Restrictions{
		ServerIDs:   cfg.AllowedServerIDs,
		SourceCIDRs: cfg.AllowedSourceCIDRs,
	}
}
