package secretfetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	sm "github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

var ErrSecretNotFound = errors.New("secret is not found")

type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// SecretsManagerAPI is the subset of the Secrets Manager client used to resolve secrets.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *sm.GetSecretValueInput, optFns ...func(*sm.Options)) (*sm.GetSecretValueOutput, error)
}

// From is a type definition for a function that returns a secret value and an error.
type From func(ctx context.Context) (string, error)

// Fetch calls f.
func (f From) Fetch(ctx context.Context) (string, error) {
	return f(ctx)
}

// FromEnv reads the secret from the named environment variable.
func FromEnv(key string) From {
	return func(context.Context) (string, error) {
		value := os.Getenv(key)
		if value == "" {
			return "", fmt.Errorf("%w: %s", ErrSecretNotFound, key)
		}

		return value, nil
	}
}

// FromSecretsManager reads the secret string of secretID.
// When jsonKey is not empty the secret string is decoded as a JSON object and the value
// stored under jsonKey is returned.
func FromSecretsManager(client SecretsManagerAPI, secretID, jsonKey string) From {
	return func(ctx context.Context) (string, error) {
		out, err := client.GetSecretValue(ctx, &sm.GetSecretValueInput{
			SecretId: aws.String(secretID),
		})
		if err != nil {
			return "", fmt.Errorf("failed to get secret value: %w", err)
		}

		value := strings.TrimSpace(aws.ToString(out.SecretString))
		if jsonKey != "" {
			value, err = lookupKey(value, jsonKey)
			if err != nil {
				return "", err
			}
		}

		if value == "" {
			return "", fmt.Errorf("%w: %s", ErrSecretNotFound, secretID)
		}

		return value, nil
	}
}

func lookupKey(secret, key string) (string, error) {
	fields := make(map[string]any)
	if err := json.Unmarshal([]byte(secret), &fields); err != nil {
		return "", fmt.Errorf("failed to decode secret: %w", err)
	}

	v, ok := fields[key].(string)
	if !ok {
		return "", fmt.Errorf("%w: key %q", ErrSecretNotFound, key)
	}

	return strings.TrimSpace(v), nil
}
