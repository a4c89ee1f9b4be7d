// Package secrets resolves the sidecar API token from AWS Secrets Manager.
package secrets

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/gaborage/go-bricks/logger"

	"github.com/gaborage/recommendation-service/internal/config"
	"github.com/gaborage/recommendation-service/internal/metrics"
)

// tokenSecretSuffix is appended to the configured prefix to name the secret.
const tokenSecretSuffix = "dapr/api-token"

// ErrEmptySecret indicates the secret exists but carries no value.
var ErrEmptySecret = errors.New("secret value is empty")

// SecretsManagerAPI is the subset of the Secrets Manager client used here.
type SecretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// AWSTokenSource reads the sidecar API token from AWS Secrets Manager and
// caches it for the configured TTL.
type AWSTokenSource struct {
	client     SecretsManagerAPI
	cache      *Cache[string]
	secretName string
	logger     logger.Logger
}

// NewAWSTokenSource creates a token source using the default AWS credential chain.
func NewAWSTokenSource(ctx context.Context, log logger.Logger, cfg config.SecretsConfig) (*AWSTokenSource, error) {
	if !cfg.Enabled() {
		return nil, fmt.Errorf("AWS Secrets Manager prefix cannot be empty")
	}

	awsCfg, err := loadAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return NewAWSTokenSourceWithClient(secretsmanager.NewFromConfig(awsCfg), log, cfg), nil
}

// NewAWSTokenSourceWithClient creates a token source around an existing client.
func NewAWSTokenSourceWithClient(client SecretsManagerAPI, log logger.Logger, cfg config.SecretsConfig) *AWSTokenSource {
	secretName := fmt.Sprintf("%s/%s", strings.TrimSuffix(cfg.Prefix, "/"), tokenSecretSuffix)

	log.Info().
		Str("secret", secretName).
		Dur("cache_ttl", cfg.CacheTTL).
		Msg("Initializing AWS Secrets Manager token source")

	return &AWSTokenSource{
		client:     client,
		cache:      NewCache[string](cfg.CacheTTL, cfg.CacheMaxSize),
		secretName: secretName,
		logger:     log,
	}
}

// Token returns the sidecar API token, from cache when fresh.
func (s *AWSTokenSource) Token(ctx context.Context) (string, error) {
	if token, ok := s.cache.Get(s.secretName); ok {
		metrics.TokenCacheLookups.WithLabelValues(metrics.CacheHit).Inc()
		return token, nil
	}
	metrics.TokenCacheLookups.WithLabelValues(metrics.CacheMiss).Inc()

	s.logger.Debug().
		Str("secret", s.secretName).
		Msg("Cache miss - fetching sidecar token from AWS Secrets Manager")

	token, err := s.fetch(ctx)
	metrics.TokenFetches.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("secret", s.secretName).
			Msg("Failed to fetch sidecar token")
		return "", err
	}

	s.cache.Set(s.secretName, token)
	return token, nil
}

// Invalidate drops the cached token so the next Token call refetches it.
func (s *AWSTokenSource) Invalidate() {
	s.cache.Delete(s.secretName)
}

func (s *AWSTokenSource) fetch(ctx context.Context) (string, error) {
	result, err := s.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(s.secretName),
	})
	if err != nil {
		var notFound *types.ResourceNotFoundException
		if errors.As(err, &notFound) {
			return "", fmt.Errorf("secret %s not found: %w", s.secretName, err)
		}
		return "", fmt.Errorf("failed to retrieve secret %s: %w", s.secretName, err)
	}

	if result.SecretString == nil || strings.TrimSpace(*result.SecretString) == "" {
		return "", fmt.Errorf("%w: %s", ErrEmptySecret, s.secretName)
	}

	return strings.TrimSpace(*result.SecretString), nil
}

// loadAWSConfig loads AWS configuration with support for a custom endpoint (LocalStack)
func loadAWSConfig(ctx context.Context, cfg config.SecretsConfig) (aws.Config, error) {
	result, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return result, err
	}

	if cfg.EndpointURL != "" {
		result.BaseEndpoint = aws.String(cfg.EndpointURL)
	}

	return result, nil
}
